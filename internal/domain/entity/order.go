// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	// OrderStatusPending is a placed order awaiting payment.
	OrderStatusPending OrderStatus = "PENDING"
	// OrderStatusPaid marks an order with a successful payment.
	OrderStatusPaid OrderStatus = "PAID"
	// OrderStatusCancelled marks an order that will not be fulfilled.
	OrderStatusCancelled OrderStatus = "CANCELLED"
	// OrderStatusFulfilled marks an order that has been shipped/delivered.
	OrderStatusFulfilled OrderStatus = "FULFILLED"
)

// Order is the result of checking out a cart. Item prices and the total are
// snapshots taken at checkout time; later price changes do not affect them.
type Order struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"userId"`
	Status    OrderStatus     `json:"status"`
	Total     decimal.Decimal `json:"total"`
	Items     []*OrderItem    `json:"items"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// OrderItem is a single product line in an order.
type OrderItem struct {
	ID        uuid.UUID       `json:"id"`
	OrderID   uuid.UUID       `json:"orderId"`
	ProductID uuid.UUID       `json:"productId"`
	Title     string          `json:"title"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}
