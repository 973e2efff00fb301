package repository

import (
	"context"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService defines the interface for bearer token operations. A token is
// a short-lived credential binding a user to one session; the session row is
// the revocation point, so validation here is purely cryptographic.
type TokenService interface {
	Generate(ctx context.Context, userID, sessionID int64) (string, error)
	Validate(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the JWT claims carried by an access token. The subject
// holds the user id in stringified form; SessionID binds the token to the
// session row it was minted for.
type Claims struct {
	SessionID int64 `json:"sid"`
	jwt.RegisteredClaims
}

// UserID parses the numeric user id out of the subject claim.
func (c *Claims) UserID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}
