// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentProvider identifies the payment backend. Only the mock provider is
// implemented; the enum leaves room for real gateways.
type PaymentProvider string

// PaymentProviderMock is the built-in provider that confirms payments through
// an explicit confirmation call instead of an external gateway.
const PaymentProviderMock PaymentProvider = "MOCK"

// PaymentStatus represents the lifecycle state of a payment.
type PaymentStatus string

const (
	// PaymentStatusRequiresConfirmation is a created payment awaiting the
	// provider's (mock) confirmation callback.
	PaymentStatusRequiresConfirmation PaymentStatus = "REQUIRES_CONFIRMATION"
	// PaymentStatusSucceeded marks a confirmed, settled payment.
	PaymentStatusSucceeded PaymentStatus = "SUCCEEDED"
	// PaymentStatusFailed marks a payment the provider rejected.
	PaymentStatusFailed PaymentStatus = "FAILED"
)

// Payment records one payment attempt against an order. Reference is the
// opaque string handed to the provider and echoed back on confirmation.
type Payment struct {
	ID        uuid.UUID       `json:"id"`
	OrderID   uuid.UUID       `json:"orderId"`
	Provider  PaymentProvider `json:"provider"`
	Status    PaymentStatus   `json:"status"`
	Amount    decimal.Decimal `json:"amount"`
	Reference string          `json:"reference"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
