package usecase

import (
	"context"

	"novacommerce/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// ListProductsInput defines the filters for browsing the catalog.
type ListProductsInput struct {
	CategorySlug string
	Limit        int
	Offset       int
	// IncludeInactive exposes inactive products; only honored for staff roles.
	IncludeInactive bool
}

// CreateCategoryInput defines the data required to create a category.
type CreateCategoryInput struct {
	Slug        string
	Name        string
	Description string
}

// CreateProductInput defines the data required to create a product.
type CreateProductInput struct {
	Slug           string
	Title          string
	Description    string
	CategorySlug   string
	Price          decimal.Decimal
	CompareAtPrice *decimal.Decimal
	Stock          int
	Images         []string
	Active         bool
}

// SetStockInput identifies a product and its new stock level.
type SetStockInput struct {
	ProductSlug string
	Stock       int
}

// CatalogUsecase defines the interface for catalog browsing and management.
type CatalogUsecase interface {
	ListCategories(ctx context.Context) ([]*entity.Category, error)
	ListProducts(ctx context.Context, input ListProductsInput) ([]*entity.Product, error)
	GetProduct(ctx context.Context, slug string) (*entity.Product, error)

	// Management operations, restricted to staff roles by the delivery layer.
	CreateCategory(ctx context.Context, input CreateCategoryInput) (*entity.Category, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*entity.Product, error)
	SetStock(ctx context.Context, input SetStockInput) (*entity.Product, error)
}
