package handler

import (
	"log/slog"
	"net/http"

	"novacommerce/internal/delivery/http/response"
	"novacommerce/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// CartHandler holds dependencies for cart handlers.
type CartHandler struct {
	uc     usecase.CartUsecase
	logger *slog.Logger
}

// NewCartHandler is the constructor for CartHandler, injected by Fx.
func NewCartHandler(uc usecase.CartUsecase, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		uc:     uc,
		logger: logger,
	}
}

type addCartItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

// cartResponse wraps the cart with its computed subtotal.
type cartResponse struct {
	Cart     any             `json:"cart"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

func toCartResponse(output *usecase.CartOutput) cartResponse {
	return cartResponse{
		Cart:     output.Cart,
		Subtotal: output.Subtotal,
	}
}

// GetCart returns the caller's active cart.
func (h *CartHandler) GetCart(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	output, err := h.uc.GetCart(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCartResponse(output), "")
}

// AddItem adds a product to the caller's cart.
func (h *CartHandler) AddItem(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req addCartItemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart item input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.uc.AddItem(c.Request().Context(), usecase.AddCartItemInput{
		UserID:    userID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCartResponse(output), "Item added")
}

// UpdateItem sets a line's quantity; zero removes the line.
func (h *CartHandler) UpdateItem(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product ID")
	}

	var req updateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart item input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.uc.UpdateItem(c.Request().Context(), usecase.UpdateCartItemInput{
		UserID:    userID,
		ProductID: productID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCartResponse(output), "Item updated")
}

// RemoveItem deletes a line from the caller's cart.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product ID")
	}

	output, err := h.uc.RemoveItem(c.Request().Context(), usecase.RemoveCartItemInput{
		UserID:    userID,
		ProductID: productID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCartResponse(output), "Item removed")
}
