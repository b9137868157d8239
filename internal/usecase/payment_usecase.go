package usecase

import (
	"context"

	"novacommerce/internal/domain/entity"

	"github.com/google/uuid"
)

// CreatePaymentInput identifies the order the caller wants to pay.
type CreatePaymentInput struct {
	UserID  uuid.UUID
	OrderID uuid.UUID
}

// CreatePaymentOutput returns the payment together with the QR code the
// client presents to the (mock) provider.
type CreatePaymentOutput struct {
	Payment *entity.Payment
	QRCode  []byte
}

// ConfirmPaymentInput carries the provider's confirmation callback data.
type ConfirmPaymentInput struct {
	Reference string
	Outcome   entity.PaymentStatus
}

// PaymentUsecase defines the interface for mock payment operations.
type PaymentUsecase interface {
	CreatePayment(ctx context.Context, input CreatePaymentInput) (*CreatePaymentOutput, error)
	ConfirmPayment(ctx context.Context, input ConfirmPaymentInput) (*entity.Payment, error)
	GetPayment(ctx context.Context, userID, orderID uuid.UUID) (*entity.Payment, error)
}
