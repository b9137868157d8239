// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"novacommerce/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for cart persistence.
var (
	// ErrCartNotFound is returned when no matching cart exists.
	ErrCartNotFound = errors.New("cart not found")
	// ErrCartItemNotFound is returned when the cart has no line for a product.
	ErrCartItemNotFound = errors.New("cart item not found")
)

// CartRepository defines the operations for cart persistence.
type CartRepository interface {
	// FindActiveByUserID retrieves the user's ACTIVE cart with its items.
	FindActiveByUserID(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)

	// Create persists a new cart.
	Create(ctx context.Context, cart *entity.Cart) error

	// UpsertItem inserts the item, or adds its quantity to an existing line
	// for the same product while refreshing the unit price snapshot.
	UpsertItem(ctx context.Context, item *entity.CartItem) error

	// UpdateItemQuantity sets the quantity of an existing line.
	UpdateItemQuantity(ctx context.Context, cartID, productID uuid.UUID, quantity int) error

	// RemoveItem deletes the line for the given product.
	RemoveItem(ctx context.Context, cartID, productID uuid.UUID) error

	// UpdateStatus moves the cart to a new lifecycle state.
	UpdateStatus(ctx context.Context, cartID uuid.UUID, status entity.CartStatus) error
}
