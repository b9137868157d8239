package usecase

import (
	"context"

	"novacommerce/internal/domain/entity"

	"github.com/google/uuid"
)

// OrderUsecase defines the interface for order operations. Checkout converts
// the caller's ACTIVE cart into a PENDING order in one transaction.
type OrderUsecase interface {
	Checkout(ctx context.Context, userID uuid.UUID) (*entity.Order, error)
	GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*entity.Order, error)
	ListOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)
}
