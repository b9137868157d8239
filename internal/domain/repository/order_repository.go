// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"novacommerce/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOrderNotFound is returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines the operations for order persistence.
type OrderRepository interface {
	// Create persists a new order together with its items.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID retrieves a single order with its items.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// ListByUserID returns the user's orders, newest first.
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// UpdateStatus moves the order to a new lifecycle state.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error
}
