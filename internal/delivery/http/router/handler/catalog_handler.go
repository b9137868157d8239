package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	deliverycontext "novacommerce/internal/delivery/context"
	"novacommerce/internal/delivery/http/response"
	"novacommerce/internal/domain/entity"
	"novacommerce/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// CatalogHandler holds dependencies for catalog handlers.
type CatalogHandler struct {
	uc     usecase.CatalogUsecase
	logger *slog.Logger
}

// NewCatalogHandler is the constructor for CatalogHandler, injected by Fx.
func NewCatalogHandler(uc usecase.CatalogUsecase, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		uc:     uc,
		logger: logger,
	}
}

type createCategoryRequest struct {
	Slug        string `json:"slug" validate:"required,min=2,max=60"`
	Name        string `json:"name" validate:"required,min=2,max=80"`
	Description string `json:"description" validate:"max=500"`
}

type createProductRequest struct {
	Slug           string   `json:"slug" validate:"required,min=2,max=60"`
	Title          string   `json:"title" validate:"required,min=2,max=200"`
	Description    string   `json:"description" validate:"max=2000"`
	CategorySlug   string   `json:"categorySlug" validate:"required"`
	Price          string   `json:"price" validate:"required"`
	CompareAtPrice *string  `json:"compareAtPrice"`
	Stock          int      `json:"stock" validate:"gte=0"`
	Images         []string `json:"images" validate:"max=10"`
	Active         bool     `json:"active"`
}

type setStockRequest struct {
	Stock int `json:"stock" validate:"gte=0"`
}

// ListCategories returns all categories.
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	categories, err := h.uc.ListCategories(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, categories, "")
}

// ListProducts returns products, filterable by category slug and paginated
// with limit/offset query parameters. Staff callers may pass
// includeInactive=true to see hidden products.
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	includeInactive := false
	if c.QueryParam("includeInactive") == "true" {
		claims := deliverycontext.GetClaims(c.Request().Context())
		includeInactive = claims != nil && entity.Role(claims.Role).CanManageCatalog()
	}

	products, err := h.uc.ListProducts(c.Request().Context(), usecase.ListProductsInput{
		CategorySlug:    c.QueryParam("category"),
		Limit:           limit,
		Offset:          offset,
		IncludeInactive: includeInactive,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, products, "")
}

// GetProduct returns a single product by slug.
func (h *CatalogHandler) GetProduct(c echo.Context) error {
	product, err := h.uc.GetProduct(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "")
}

// CreateCategory handles category creation (staff only).
func (h *CatalogHandler) CreateCategory(c echo.Context) error {
	var req createCategoryRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid category input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	category, err := h.uc.CreateCategory(c.Request().Context(), usecase.CreateCategoryInput{
		Slug:        req.Slug,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, category, "Category created")
}

// CreateProduct handles product creation (staff only).
func (h *CatalogHandler) CreateProduct(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "price must be a decimal string")
	}

	var compareAt *decimal.Decimal
	if req.CompareAtPrice != nil {
		parsed, err := decimal.NewFromString(*req.CompareAtPrice)
		if err != nil {
			return response.BindingError(c, "INVALID_INPUT", "compareAtPrice must be a decimal string")
		}
		compareAt = &parsed
	}

	product, err := h.uc.CreateProduct(c.Request().Context(), usecase.CreateProductInput{
		Slug:           req.Slug,
		Title:          req.Title,
		Description:    req.Description,
		CategorySlug:   req.CategorySlug,
		Price:          price,
		CompareAtPrice: compareAt,
		Stock:          req.Stock,
		Images:         req.Images,
		Active:         req.Active,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, product, "Product created")
}

// SetStock overwrites a product's stock level (staff only).
func (h *CatalogHandler) SetStock(c echo.Context) error {
	var req setStockRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid stock input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	product, err := h.uc.SetStock(c.Request().Context(), usecase.SetStockInput{
		ProductSlug: c.Param("slug"),
		Stock:       req.Stock,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "Stock updated")
}
