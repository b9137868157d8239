// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the identity record at the center of the system. The email is the
// login identifier and is always stored trimmed and lower-cased; PasswordHash
// never leaves the persistence and auth layers.
type User struct {
	ID           uuid.UUID // The unique identifier for the user, generated on creation.
	Name         string    // The user's display name, stored trimmed.
	Email        string    // Normalized (trimmed, lower-cased) email; unique across all users.
	PasswordHash string    // bcrypt hash of the user's password. Never serialized to callers.
	Role         Role      // The user's role; defaults to CUSTOMER on registration.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this user's data.
}

// PublicUser is the subset of user fields safe to return to a caller.
type PublicUser struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Public returns the caller-safe projection of the user.
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
