// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"novacommerce/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for catalog persistence.
var (
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
	// ErrInsufficientStock is returned when a stock decrement would go negative.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ProductFilter narrows product listings.
type ProductFilter struct {
	CategorySlug string // Only products in this category when non-empty.
	ActiveOnly   bool   // Only products available for sale.
	Limit        int    // Page size; repository applies a default when zero.
	Offset       int
}

// CategoryRepository defines the operations for category persistence.
type CategoryRepository interface {
	// List returns all categories ordered by name.
	List(ctx context.Context) ([]*entity.Category, error)

	// FindBySlug retrieves a single category by its slug.
	FindBySlug(ctx context.Context, slug string) (*entity.Category, error)

	// Create persists a new category.
	Create(ctx context.Context, category *entity.Category) error
}

// ProductRepository defines the operations for product persistence.
type ProductRepository interface {
	// List returns products matching the filter, newest first.
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)

	// FindBySlug retrieves a single product by its slug.
	FindBySlug(ctx context.Context, slug string) (*entity.Product, error)

	// FindByID retrieves a single product by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// Create persists a new product. A slug collision surfaces as a
	// Conflict-mapped domain error.
	Create(ctx context.Context, product *entity.Product) error

	// DecrementStock atomically subtracts quantity from the product's stock.
	// It returns ErrInsufficientStock when fewer than quantity units remain,
	// leaving the row unchanged.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error

	// SetStock overwrites the product's stock level.
	SetStock(ctx context.Context, id uuid.UUID, stock int) error
}
