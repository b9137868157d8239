package handler

import (
	"encoding/base64"
	"log/slog"
	"net/http"

	"novacommerce/internal/delivery/http/response"
	"novacommerce/internal/domain/entity"
	"novacommerce/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// PaymentHandler holds dependencies for payment handlers.
type PaymentHandler struct {
	uc     usecase.PaymentUsecase
	logger *slog.Logger
}

// NewPaymentHandler is the constructor for PaymentHandler, injected by Fx.
func NewPaymentHandler(uc usecase.PaymentUsecase, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{
		uc:     uc,
		logger: logger,
	}
}

type confirmPaymentRequest struct {
	Reference string `json:"reference" validate:"required"`
	Outcome   string `json:"outcome" validate:"required,oneof=SUCCEEDED FAILED"`
}

// createPaymentResponse carries the payment and its QR code as base64 PNG.
type createPaymentResponse struct {
	Payment *entity.Payment `json:"payment"`
	QRCode  string          `json:"qrCode"`
}

// CreatePayment opens a mock payment for one of the caller's orders.
func (h *PaymentHandler) CreatePayment(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order ID")
	}

	output, err := h.uc.CreatePayment(c.Request().Context(), usecase.CreatePaymentInput{
		UserID:  userID,
		OrderID: orderID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, createPaymentResponse{
		Payment: output.Payment,
		QRCode:  base64.StdEncoding.EncodeToString(output.QRCode),
	}, "Payment created")
}

// GetPayment returns the payment attached to one of the caller's orders.
func (h *PaymentHandler) GetPayment(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order ID")
	}

	payment, err := h.uc.GetPayment(c.Request().Context(), userID, orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, payment, "")
}

// ConfirmPayment handles the mock provider's confirmation callback. It is
// unauthenticated like a real provider webhook; the opaque reference is the
// credential.
func (h *PaymentHandler) ConfirmPayment(c echo.Context) error {
	var req confirmPaymentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid confirmation input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	payment, err := h.uc.ConfirmPayment(c.Request().Context(), usecase.ConfirmPaymentInput{
		Reference: req.Reference,
		Outcome:   entity.PaymentStatus(req.Outcome),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, payment, "Payment settled")
}
