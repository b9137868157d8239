package impl

import (
	"context"
	"log/slog"
	"strings"

	"novacommerce/config"
	deliverycontext "novacommerce/internal/delivery/context"
	"novacommerce/internal/domain/entity"
	domainerrors "novacommerce/internal/domain/errors"
	"novacommerce/internal/domain/repository"
	"novacommerce/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	logger       *slog.Logger
}

// CatalogServiceParams holds dependencies for catalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	CategoryRepo repository.CategoryRepository
	ProductRepo  repository.ProductRepository
	Config       *config.Config
	Logger       *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		categoryRepo: params.CategoryRepo,
		productRepo:  params.ProductRepo,
		logger:       params.Logger,
	}
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListCategories returns all categories.
func (srv *catalogService) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	categories, err := srv.categoryRepo.List(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to list categories", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list categories")
	}

	return categories, nil
}

// ListProducts returns products matching the filter. Inactive products are
// hidden unless the caller explicitly asks for them (staff only, enforced by
// the delivery layer).
func (srv *catalogService) ListProducts(ctx context.Context, input usecase.ListProductsInput) ([]*entity.Product, error) {
	products, err := srv.productRepo.List(ctx, repository.ProductFilter{
		CategorySlug: input.CategorySlug,
		ActiveOnly:   !input.IncludeInactive,
		Limit:        input.Limit,
		Offset:       input.Offset,
	})
	if err != nil {
		srv.log(ctx).Error("Failed to list products", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

// GetProduct returns a single active product by slug. Inactive products look
// absent to the public surface.
func (srv *catalogService) GetProduct(ctx context.Context, slug string) (*entity.Product, error) {
	product, err := srv.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		srv.log(ctx).Error("Failed to load product", slog.String("slug", slug), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to find product")
	}

	if !product.Active {
		return nil, domainerrors.ErrProductNotFound
	}

	return product, nil
}

// CreateCategory creates a new category.
func (srv *catalogService) CreateCategory(ctx context.Context, input usecase.CreateCategoryInput) (*entity.Category, error) {
	category := &entity.Category{
		Slug:        strings.TrimSpace(input.Slug),
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
	}

	if err := srv.categoryRepo.Create(ctx, category); err != nil {
		srv.log(ctx).Error("Failed to create category", slog.String("slug", category.Slug), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Info("Category created", slog.String("slug", category.Slug))

	return category, nil
}

// CreateProduct creates a new product under the category identified by slug.
func (srv *catalogService) CreateProduct(ctx context.Context, input usecase.CreateProductInput) (*entity.Product, error) {
	category, err := srv.categoryRepo.FindBySlug(ctx, input.CategorySlug)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, domainerrors.ErrCategoryNotFound
		}

		return nil, errors.Wrap(err, "failed to resolve category")
	}

	if input.Price.IsNegative() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("price must not be negative")
	}
	if input.Stock < 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("stock must not be negative")
	}

	product := &entity.Product{
		Slug:           strings.TrimSpace(input.Slug),
		Title:          strings.TrimSpace(input.Title),
		Description:    input.Description,
		CategoryID:     category.ID,
		Price:          input.Price,
		CompareAtPrice: input.CompareAtPrice,
		Stock:          input.Stock,
		Images:         input.Images,
		Active:         input.Active,
	}

	if err := srv.productRepo.Create(ctx, product); err != nil {
		srv.log(ctx).Error("Failed to create product", slog.String("slug", product.Slug), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Info("Product created", slog.String("slug", product.Slug))

	return product, nil
}

// SetStock overwrites a product's stock level.
func (srv *catalogService) SetStock(ctx context.Context, input usecase.SetStockInput) (*entity.Product, error) {
	if input.Stock < 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("stock must not be negative")
	}

	product, err := srv.productRepo.FindBySlug(ctx, input.ProductSlug)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product")
	}

	if err := srv.productRepo.SetStock(ctx, product.ID, input.Stock); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		srv.log(ctx).Error("Failed to set stock", slog.String("slug", input.ProductSlug), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to set stock")
	}

	product.Stock = input.Stock

	return product, nil
}
