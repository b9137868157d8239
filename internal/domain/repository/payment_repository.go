// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"novacommerce/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrPaymentNotFound is returned when a payment is not found.
var ErrPaymentNotFound = errors.New("payment not found")

// PaymentRepository defines the operations for payment persistence.
type PaymentRepository interface {
	// Create persists a new payment.
	Create(ctx context.Context, payment *entity.Payment) error

	// FindByReference retrieves a payment by its provider reference.
	FindByReference(ctx context.Context, reference string) (*entity.Payment, error)

	// FindByOrderID retrieves the payment attached to an order.
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*entity.Payment, error)

	// Settle moves the payment out of REQUIRES_CONFIRMATION. The store only
	// applies the update while the payment is still awaiting confirmation, so
	// a concurrent settlement loses and surfaces as an already-settled
	// conflict rather than overwriting the first outcome.
	Settle(ctx context.Context, id uuid.UUID, status entity.PaymentStatus) error
}
