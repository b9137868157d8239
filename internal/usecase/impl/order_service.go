package impl

import (
	"context"
	"log/slog"

	"novacommerce/config"
	deliverycontext "novacommerce/internal/delivery/context"
	"novacommerce/internal/domain/entity"
	domainerrors "novacommerce/internal/domain/errors"
	"novacommerce/internal/domain/repository"
	"novacommerce/internal/infra/metrics"
	"novacommerce/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager repository.TransactionManager
	orderRepo repository.OrderRepository
	logger    *slog.Logger
}

// OrderServiceParams holds dependencies for orderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	OrderRepo repository.OrderRepository
	Config    *config.Config
	Logger    *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager: params.TxManager,
		orderRepo: params.OrderRepo,
		logger:    params.Logger,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Checkout converts the user's ACTIVE cart into a PENDING order. Stock is
// decremented atomically per line inside the transaction, so a concurrent
// checkout that would oversell rolls the whole order back. Item titles and
// prices are snapshotted; the cart moves to CONVERTED.
func (srv *orderService) Checkout(ctx context.Context, userID uuid.UUID) (*entity.Order, error) {
	var createdOrder *entity.Order
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.CartRepo()
		productRepo := repoFactory.ProductRepo()
		orderRepo := repoFactory.OrderRepo()

		cart, err := cartRepo.FindActiveByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrCartNotFound) {
				return domainerrors.ErrCartEmpty
			}

			return errors.Wrap(err, "failed to load active cart")
		}
		if cart.IsEmpty() {
			return domainerrors.ErrCartEmpty
		}

		orderItems := make([]*entity.OrderItem, 0, len(cart.Items))
		for _, item := range cart.Items {
			product, err := productRepo.FindByID(ctx, item.ProductID)
			if err != nil {
				if errors.Is(err, repository.ErrProductNotFound) {
					return domainerrors.ErrProductNotFound.WrapMessage("cart references a removed product")
				}

				return errors.Wrap(err, "failed to load product for checkout")
			}

			if err := productRepo.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
				if errors.Is(err, repository.ErrInsufficientStock) {
					return domainerrors.ErrInsufficientStock.WithDetails(product.Slug)
				}
				if errors.Is(err, repository.ErrProductNotFound) {
					return domainerrors.ErrProductNotFound.WrapMessage("cart references a removed product")
				}

				return errors.Wrap(err, "failed to decrement stock")
			}

			orderItems = append(orderItems, &entity.OrderItem{
				ProductID: item.ProductID,
				Title:     product.Title,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
			})
		}

		order := &entity.Order{
			UserID: userID,
			Status: entity.OrderStatusPending,
			Total:  cart.Subtotal(),
			Items:  orderItems,
		}

		if err := orderRepo.Create(ctx, order); err != nil {
			return errors.Wrap(err, "failed to create order")
		}

		if err := cartRepo.UpdateStatus(ctx, cart.ID, entity.CartStatusConverted); err != nil {
			return errors.Wrap(err, "failed to convert cart")
		}

		createdOrder = order

		return nil
	})

	if err != nil {
		return nil, err
	}

	metrics.OrdersCreatedTotal.Inc()
	srv.log(ctx).Info("Order created",
		slog.Any("orderID", createdOrder.ID),
		slog.Any("userID", userID),
		slog.String("total", createdOrder.Total.String()))

	return createdOrder, nil
}

// GetOrder returns one of the caller's orders. Orders belonging to other
// users look absent.
func (srv *orderService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	if order.UserID != userID {
		return nil, domainerrors.ErrOrderNotFound
	}

	return order, nil
}

// ListOrders returns the caller's orders, newest first.
func (srv *orderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.ListByUserID(ctx, userID)
	if err != nil {
		srv.log(ctx).Error("Failed to list orders", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}
