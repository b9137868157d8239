package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims embedded in access tokens. The registered
// subject claim carries the user ID.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// UserID returns the subject claim parsed as a UUID.
func (c *Claims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// TokenService defines the interface for issuing and validating access tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// Sign creates a signed access token carrying the user's identity claims
	// with the configured expiry.
	Sign(userID uuid.UUID, email string, role string) (string, error)

	// Validate checks the signature and expiry of a token string.
	Validate(tokenString string) (*Claims, error)

	// AccessTokenTTL returns the configured validity window for access tokens.
	AccessTokenTTL() time.Duration
}
