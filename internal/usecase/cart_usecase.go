package usecase

import (
	"context"

	"novacommerce/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddCartItemInput defines the data required to add a product to the cart.
type AddCartItemInput struct {
	UserID    uuid.UUID
	ProductID uuid.UUID
	Quantity  int
}

// UpdateCartItemInput defines the data required to change a line's quantity.
// A quantity of zero removes the line.
type UpdateCartItemInput struct {
	UserID    uuid.UUID
	ProductID uuid.UUID
	Quantity  int
}

// RemoveCartItemInput identifies the line to remove.
type RemoveCartItemInput struct {
	UserID    uuid.UUID
	ProductID uuid.UUID
}

// CartOutput returns the cart together with its computed subtotal.
type CartOutput struct {
	Cart     *entity.Cart
	Subtotal decimal.Decimal
}

// CartUsecase defines the interface for shopping cart operations. Every
// operation works on the caller's single ACTIVE cart, creating it on demand.
type CartUsecase interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*CartOutput, error)
	AddItem(ctx context.Context, input AddCartItemInput) (*CartOutput, error)
	UpdateItem(ctx context.Context, input UpdateCartItemInput) (*CartOutput, error)
	RemoveItem(ctx context.Context, input RemoveCartItemInput) (*CartOutput, error)
}
