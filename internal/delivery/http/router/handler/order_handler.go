package handler

import (
	"log/slog"
	"net/http"

	"novacommerce/internal/delivery/http/response"
	"novacommerce/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OrderHandler holds dependencies for order handlers.
type OrderHandler struct {
	uc     usecase.OrderUsecase
	logger *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(uc usecase.OrderUsecase, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		uc:     uc,
		logger: logger,
	}
}

// Checkout converts the caller's active cart into an order.
func (h *OrderHandler) Checkout(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	order, err := h.uc.Checkout(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, order, "Order created")
}

// ListOrders returns the caller's orders, newest first.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	orders, err := h.uc.ListOrders(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "")
}

// GetOrder returns one of the caller's orders.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order ID")
	}

	order, err := h.uc.GetOrder(c.Request().Context(), userID, orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "")
}
