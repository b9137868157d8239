// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category groups products for browsing. The slug is the stable public
// identifier used in URLs and filters.
type Category struct {
	ID          uuid.UUID `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Product is a sellable catalog item. Prices are exact decimals; Stock is the
// number of units available for sale.
type Product struct {
	ID             uuid.UUID        `json:"id"`
	Slug           string           `json:"slug"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	CategoryID     uuid.UUID        `json:"categoryId"`
	Price          decimal.Decimal  `json:"price"`
	CompareAtPrice *decimal.Decimal `json:"compareAtPrice,omitempty"`
	Stock          int              `json:"stock"`
	Images         []string         `json:"images"`
	Active         bool             `json:"active"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

// InStock reports whether at least quantity units are available.
func (p *Product) InStock(quantity int) bool {
	return p.Stock >= quantity
}
