// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"novacommerce/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new customer account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user's public projection.
type RegisterOutput struct {
	User *entity.PublicUser
}

// LoginOutput returns the access token and the user's public projection
// after a successful login.
type LoginOutput struct {
	AccessToken string
	User        *entity.PublicUser
}

// AuthUsecase defines the interface for authentication business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)
}
