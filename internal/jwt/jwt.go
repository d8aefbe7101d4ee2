package jwt

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/imtaco/voicelink/internal/errors"
)

var parser = jwt.NewParser()

// Inspect decodes the claims of an access token without verifying its
// signature. The token was issued for the media server, which holds the key;
// the client only reads it to learn the expiry and room.
func Inspect(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrNoToken
	}

	claims := &Claims{}
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, errors.Wrap(ErrInvalidToken, err, "parse token")
	}
	return claims, nil
}
