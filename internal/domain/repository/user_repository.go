// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"novacommerce/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their normalized email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// ExistsByEmail reports whether a user with the normalized email exists.
	// It selects only existence, not the full record.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Create persists a new user entity. A uniqueness violation on the email
	// column surfaces as a Conflict-mapped domain error.
	Create(ctx context.Context, user *entity.User) error
}
