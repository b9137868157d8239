// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"novacommerce/config"
	"novacommerce/internal/domain/service"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret    string        // Secret key for signing access tokens.
	accessTTL time.Duration // Time-to-live for access tokens.
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	accessTTL := time.Hour
	if cfg.Auth != nil && cfg.Auth.AccessTokenTTL > 0 {
		accessTTL = cfg.Auth.AccessTokenTTL
	}

	return &jwtService{
		secret:    cfg.SecretKey.Access,
		accessTTL: accessTTL,
	}, nil
}

// Sign creates a signed access token for the given user identity.
func (s *jwtService) Sign(userID uuid.UUID, email string, role string) (string, error) {
	now := time.Now()
	claims := &service.Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.secret))
}

// Validate checks the signature and expiry of a token string and returns its claims.
func (s *jwtService) Validate(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}

	return claims, nil
}

// AccessTokenTTL returns the configured validity window for access tokens.
func (s *jwtService) AccessTokenTTL() time.Duration {
	return s.accessTTL
}
