package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"novacommerce/internal/delivery/http/middleware"
	"novacommerce/internal/domain/entity"
	"novacommerce/internal/domain/service"
	"novacommerce/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalogUsecase struct {
	lastListInput *usecase.ListProductsInput
}

func (f *fakeCatalogUsecase) ListCategories(_ context.Context) ([]*entity.Category, error) {
	return nil, nil
}

func (f *fakeCatalogUsecase) ListProducts(_ context.Context, input usecase.ListProductsInput) ([]*entity.Product, error) {
	f.lastListInput = &input

	return []*entity.Product{}, nil
}

func (f *fakeCatalogUsecase) GetProduct(_ context.Context, _ string) (*entity.Product, error) {
	return nil, nil
}

func (f *fakeCatalogUsecase) CreateCategory(_ context.Context, _ usecase.CreateCategoryInput) (*entity.Category, error) {
	return nil, nil
}

func (f *fakeCatalogUsecase) CreateProduct(_ context.Context, _ usecase.CreateProductInput) (*entity.Product, error) {
	return nil, nil
}

func (f *fakeCatalogUsecase) SetStock(_ context.Context, _ usecase.SetStockInput) (*entity.Product, error) {
	return nil, nil
}

// fixedClaimsTokenService hands back the same claims for any token string.
type fixedClaimsTokenService struct {
	role string
}

func (s *fixedClaimsTokenService) Sign(userID uuid.UUID, email, role string) (string, error) {
	return "unused", nil
}

func (s *fixedClaimsTokenService) Validate(_ string) (*service.Claims, error) {
	return &service.Claims{
		Role: s.role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: uuid.NewString(),
		},
	}, nil
}

func (s *fixedClaimsTokenService) AccessTokenTTL() time.Duration {
	return time.Hour
}

// listProductsVia runs ListProducts through the optional-auth middleware the
// router mounts on GET /products and returns the input the usecase received.
func listProductsVia(t *testing.T, tokenSvc service.TokenService, authHeader, target string) *usecase.ListProductsInput {
	t.Helper()

	uc := &fakeCatalogUsecase{}
	catalogHandler := NewCatalogHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	authMiddleware := middleware.NewAuthMiddleware(tokenSvc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := authMiddleware.AuthenticateOptional(catalogHandler.ListProducts)(c)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.lastListInput)

	return uc.lastListInput
}

func TestCatalogHandler_ListProducts_StaffSeesInactive(t *testing.T) {
	input := listProductsVia(t,
		&fixedClaimsTokenService{role: entity.RoleAdmin.String()},
		"Bearer staff-token",
		"/products?includeInactive=true")

	assert.True(t, input.IncludeInactive)
}

func TestCatalogHandler_ListProducts_AnonymousNeverSeesInactive(t *testing.T) {
	input := listProductsVia(t,
		&fixedClaimsTokenService{role: entity.RoleAdmin.String()},
		"",
		"/products?includeInactive=true")

	assert.False(t, input.IncludeInactive)
}

func TestCatalogHandler_ListProducts_CustomerNeverSeesInactive(t *testing.T) {
	input := listProductsVia(t,
		&fixedClaimsTokenService{role: entity.RoleCustomer.String()},
		"Bearer customer-token",
		"/products?includeInactive=true")

	assert.False(t, input.IncludeInactive)
}
