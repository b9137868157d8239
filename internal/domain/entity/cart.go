// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartStatus represents the lifecycle state of a shopping cart.
type CartStatus string

const (
	// CartStatusActive is the single open cart a user adds items to.
	CartStatusActive CartStatus = "ACTIVE"
	// CartStatusConverted marks a cart that has been checked out into an order.
	CartStatusConverted CartStatus = "CONVERTED"
	// CartStatusAbandoned marks a cart that was discarded without checkout.
	CartStatusAbandoned CartStatus = "ABANDONED"
)

// Cart is a user's shopping cart. Each user has at most one ACTIVE cart;
// checkout converts it and a fresh one is created on the next access.
type Cart struct {
	ID        uuid.UUID   `json:"id"`
	UserID    uuid.UUID   `json:"userId"`
	Status    CartStatus  `json:"status"`
	Items     []*CartItem `json:"items"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// CartItem is a single product line in a cart. UnitPrice is a snapshot of the
// product price at the time the item was added.
type CartItem struct {
	ID        uuid.UUID       `json:"id"`
	CartID    uuid.UUID       `json:"cartId"`
	ProductID uuid.UUID       `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// IsEmpty reports whether the cart has no items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Subtotal returns the sum of quantity times unit price over all items.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	return total
}

// FindItem returns the item for the given product, or nil when absent.
func (c *Cart) FindItem(productID uuid.UUID) *CartItem {
	for _, item := range c.Items {
		if item.ProductID == productID {
			return item
		}
	}

	return nil
}
