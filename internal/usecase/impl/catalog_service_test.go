package impl

import (
	"context"
	"testing"

	domainerrors "novacommerce/internal/domain/errors"
	"novacommerce/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type catalogServiceFixtures struct {
	service usecase.CatalogUsecase
	factory *fakeFactory
}

func createTestCatalogService(_ *testing.T) catalogServiceFixtures {
	factory := newFakeFactory()

	service := NewCatalogService(CatalogServiceParams{
		CategoryRepo: factory.categoryRepo,
		ProductRepo:  factory.productRepo,
		Logger:       testLogger(),
	})

	return catalogServiceFixtures{service: service, factory: factory}
}

func seedProduct(t *testing.T, fixtures catalogServiceFixtures, slug string, price string, stock int, active bool) {
	t.Helper()
	ctx := context.Background()

	if _, err := fixtures.factory.categoryRepo.FindBySlug(ctx, "drinks"); err != nil {
		_, err := fixtures.service.CreateCategory(ctx, usecase.CreateCategoryInput{
			Slug: "drinks",
			Name: "Drinks",
		})
		require.NoError(t, err)
	}

	_, err := fixtures.service.CreateProduct(ctx, usecase.CreateProductInput{
		Slug:         slug,
		Title:        "Product " + slug,
		CategorySlug: "drinks",
		Price:        decimal.RequireFromString(price),
		Stock:        stock,
		Active:       active,
	})
	require.NoError(t, err)
}

func TestCatalogService_ListCategories(t *testing.T) {
	fixtures := createTestCatalogService(t)
	ctx := context.Background()

	_, err := fixtures.service.CreateCategory(ctx, usecase.CreateCategoryInput{Slug: "drinks", Name: "Drinks"})
	require.NoError(t, err)
	_, err = fixtures.service.CreateCategory(ctx, usecase.CreateCategoryInput{Slug: "snacks", Name: "Snacks"})
	require.NoError(t, err)

	categories, err := fixtures.service.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 2)
}

func TestCatalogService_ListProducts_HidesInactiveByDefault(t *testing.T) {
	fixtures := createTestCatalogService(t)
	ctx := context.Background()

	seedProduct(t, fixtures, "cola", "2.50", 10, true)
	seedProduct(t, fixtures, "discontinued", "1.00", 0, false)

	products, err := fixtures.service.ListProducts(ctx, usecase.ListProductsInput{})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "cola", products[0].Slug)

	all, err := fixtures.service.ListProducts(ctx, usecase.ListProductsInput{IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCatalogService_GetProduct(t *testing.T) {
	fixtures := createTestCatalogService(t)
	ctx := context.Background()

	seedProduct(t, fixtures, "cola", "2.50", 10, true)

	product, err := fixtures.service.GetProduct(ctx, "cola")
	require.NoError(t, err)
	assert.Equal(t, "cola", product.Slug)
	assert.True(t, product.Price.Equal(decimal.RequireFromString("2.50")))
}

func TestCatalogService_GetProduct_InactiveLooksAbsent(t *testing.T) {
	fixtures := createTestCatalogService(t)
	ctx := context.Background()

	seedProduct(t, fixtures, "discontinued", "1.00", 0, false)

	_, err := fixtures.service.GetProduct(ctx, "discontinued")
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestCatalogService_GetProduct_NotFound(t *testing.T) {
	fixtures := createTestCatalogService(t)

	_, err := fixtures.service.GetProduct(context.Background(), "missing")
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestCatalogService_CreateProduct_UnknownCategory(t *testing.T) {
	fixtures := createTestCatalogService(t)

	_, err := fixtures.service.CreateProduct(context.Background(), usecase.CreateProductInput{
		Slug:         "cola",
		Title:        "Cola",
		CategorySlug: "missing",
		Price:        decimal.NewFromInt(2),
	})

	assert.ErrorIs(t, err, domainerrors.ErrCategoryNotFound)
}

func TestCatalogService_CreateProduct_NegativePrice(t *testing.T) {
	fixtures := createTestCatalogService(t)
	ctx := context.Background()

	_, err := fixtures.service.CreateCategory(ctx, usecase.CreateCategoryInput{Slug: "drinks", Name: "Drinks"})
	require.NoError(t, err)

	_, err = fixtures.service.CreateProduct(ctx, usecase.CreateProductInput{
		Slug:         "cola",
		Title:        "Cola",
		CategorySlug: "drinks",
		Price:        decimal.NewFromInt(-1),
	})

	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestCatalogService_SetStock(t *testing.T) {
	fixtures := createTestCatalogService(t)
	ctx := context.Background()

	seedProduct(t, fixtures, "cola", "2.50", 10, true)

	product, err := fixtures.service.SetStock(ctx, usecase.SetStockInput{ProductSlug: "cola", Stock: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, product.Stock)

	_, err = fixtures.service.SetStock(ctx, usecase.SetStockInput{ProductSlug: "cola", Stock: -1})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = fixtures.service.SetStock(ctx, usecase.SetStockInput{ProductSlug: "missing", Stock: 5})
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}
