// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"strings"

	"novacommerce/internal/domain/entity"
	domainerrors "novacommerce/internal/domain/errors"
	"novacommerce/internal/domain/repository"
	"novacommerce/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const defaultProductPageSize = 20

// categoryRepository implements the domain.CategoryRepository interface using GORM.
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository is the constructor for categoryRepository.
func NewCategoryRepository(db *gorm.DB) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

// List returns all categories ordered by name.
func (repo *categoryRepository) List(ctx context.Context) ([]*entity.Category, error) {
	var categoryModels []*model.CategoryModel
	err := repo.db.WithContext(ctx).
		Order("name").
		Find(&categoryModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	categories := make([]*entity.Category, 0, len(categoryModels))
	for _, categoryM := range categoryModels {
		categories = append(categories, toCategoryDomain(categoryM))
	}

	return categories, nil
}

// FindBySlug retrieves a single category by its slug.
func (repo *categoryRepository) FindBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	var categoryM model.CategoryModel
	err := repo.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&categoryM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCategoryNotFound
		}

		return nil, errors.Wrap(err, "failed to find category by slug")
	}

	return toCategoryDomain(&categoryM), nil
}

// Create persists a new category.
func (repo *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	categoryM := fromCategoryDomain(category)

	if err := repo.db.WithContext(ctx).Create(categoryM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("category slug already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create category")
	}

	category.ID = categoryM.ID
	category.CreatedAt = categoryM.CreatedAt
	category.UpdatedAt = categoryM.UpdatedAt

	return nil
}

// productRepository implements the domain.ProductRepository interface using GORM.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

// List returns products matching the filter, newest first.
func (repo *productRepository) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultProductPageSize
	}

	query := repo.db.WithContext(ctx).Model(&model.ProductModel{})

	if filter.CategorySlug != "" {
		query = query.
			Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}
	if filter.ActiveOnly {
		query = query.Where("products.active = ?", true)
	}

	var productModels []*model.ProductModel
	err := query.
		Order("products.created_at DESC").
		Limit(limit).
		Offset(filter.Offset).
		Find(&productModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	products := make([]*entity.Product, 0, len(productModels))
	for _, productM := range productModels {
		products = append(products, toProductDomain(productM))
	}

	return products, nil
}

// FindBySlug retrieves a single product by its slug.
func (repo *productRepository) FindBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	var productM model.ProductModel
	err := repo.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&productM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by slug")
	}

	return toProductDomain(&productM), nil
}

// FindByID retrieves a single product by its ID.
func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&productM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	return toProductDomain(&productM), nil
}

// Create persists a new product.
func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrProductSlugTaken.WrapMessage("product slug already exists")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrCategoryNotFound.WrapMessage("invalid category reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create product")
	}

	product.ID = productM.ID
	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt

	return nil
}

// DecrementStock atomically subtracts quantity from the product's stock.
// The guard in the WHERE clause keeps stock from going negative under
// concurrent checkouts; zero affected rows means insufficient stock
// (or a missing product, reported distinctly).
func (repo *productRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ? AND stock >= ?", id, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to decrement stock")
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := repo.db.WithContext(ctx).
			Model(&model.ProductModel{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return errors.Wrap(err, "failed to check product existence")
		}
		if count == 0 {
			return repository.ErrProductNotFound
		}

		return repository.ErrInsufficientStock
	}

	return nil
}

// SetStock overwrites the product's stock level.
func (repo *productRepository) SetStock(ctx context.Context, id uuid.UUID, stock int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", id).
		UpdateColumn("stock", stock)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to set stock")
	}

	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toCategoryDomain converts a GORM CategoryModel to a domain Category entity.
func toCategoryDomain(data *model.CategoryModel) *entity.Category {
	if data == nil {
		return nil
	}

	return &entity.Category{
		ID:          data.ID,
		Slug:        data.Slug,
		Name:        data.Name,
		Description: data.Description,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

// fromCategoryDomain converts a domain Category entity to a GORM CategoryModel.
func fromCategoryDomain(data *entity.Category) *model.CategoryModel {
	if data == nil {
		return nil
	}

	return &model.CategoryModel{
		ID:          data.ID,
		Slug:        data.Slug,
		Name:        data.Name,
		Description: data.Description,
	}
}

// toProductDomain converts a GORM ProductModel to a domain Product entity.
func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	return &entity.Product{
		ID:             data.ID,
		Slug:           data.Slug,
		Title:          data.Title,
		Description:    data.Description,
		CategoryID:     data.CategoryID,
		Price:          data.Price,
		CompareAtPrice: data.CompareAtPrice,
		Stock:          data.Stock,
		Images:         splitImages(data.Images),
		Active:         data.Active,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

// fromProductDomain converts a domain Product entity to a GORM ProductModel.
func fromProductDomain(data *entity.Product) *model.ProductModel {
	if data == nil {
		return nil
	}

	return &model.ProductModel{
		ID:             data.ID,
		Slug:           data.Slug,
		Title:          data.Title,
		Description:    data.Description,
		CategoryID:     data.CategoryID,
		Price:          data.Price,
		CompareAtPrice: data.CompareAtPrice,
		Stock:          data.Stock,
		Images:         joinImages(data.Images),
		Active:         data.Active,
	}
}

func splitImages(raw string) []string {
	if raw == "" {
		return nil
	}

	return strings.Split(raw, "\n")
}

func joinImages(images []string) string {
	return strings.Join(images, "\n")
}
