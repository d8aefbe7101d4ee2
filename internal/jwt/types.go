package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// VideoGrant is the subset of the room grant carried by issued access tokens.
type VideoGrant struct {
	Room     string `json:"room,omitempty"`
	RoomJoin bool   `json:"roomJoin,omitempty"`
}

// Claims represents the payload of a room access token
type Claims struct {
	Name  string      `json:"name,omitempty"`
	Video *VideoGrant `json:"video,omitempty"`
	jwt.RegisteredClaims
}

// Room returns the room the token grants, or "" when it carries no grant.
func (c *Claims) Room() string {
	if c.Video == nil {
		return ""
	}
	return c.Video.Room
}

// Expiry returns the exp claim. ok is false when the token never expires.
func (c *Claims) Expiry() (exp time.Time, ok bool) {
	if c.ExpiresAt == nil {
		return time.Time{}, false
	}
	return c.ExpiresAt.Time, true
}
