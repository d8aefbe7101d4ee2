package jwt

import "github.com/imtaco/voicelink/internal/errors"

const (
	ErrInvalidToken errors.Code = "invalid token"
	ErrNoToken      errors.Code = "no token"
)
