package impl

import (
	"context"
	"log/slog"

	"novacommerce/config"
	deliverycontext "novacommerce/internal/delivery/context"
	"novacommerce/internal/domain/entity"
	domainerrors "novacommerce/internal/domain/errors"
	"novacommerce/internal/domain/repository"
	"novacommerce/internal/domain/service"
	"novacommerce/internal/infra/metrics"
	"novacommerce/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// paymentService implements the PaymentUsecase interface.
type paymentService struct {
	txManager   repository.TransactionManager
	orderRepo   repository.OrderRepository
	paymentRepo repository.PaymentRepository
	qrService   service.QRCodeService
	logger      *slog.Logger
}

// PaymentServiceParams holds dependencies for paymentService, injected by Fx.
type PaymentServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	OrderRepo   repository.OrderRepository
	PaymentRepo repository.PaymentRepository
	QRService   service.QRCodeService
	Config      *config.Config
	Logger      *slog.Logger
}

// NewPaymentService is the constructor for paymentService.
func NewPaymentService(params PaymentServiceParams) usecase.PaymentUsecase {
	return &paymentService{
		txManager:   params.TxManager,
		orderRepo:   params.OrderRepo,
		paymentRepo: params.PaymentRepo,
		qrService:   params.QRService,
		logger:      params.Logger,
	}
}

func (srv *paymentService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreatePayment opens a mock payment for a PENDING order the caller owns.
// The payment starts in REQUIRES_CONFIRMATION with a fresh opaque reference,
// and the returned QR code encodes that reference for the provider.
func (srv *paymentService) CreatePayment(ctx context.Context, input usecase.CreatePaymentInput) (*usecase.CreatePaymentOutput, error) {
	var createdPayment *entity.Payment
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()
		paymentRepo := repoFactory.PaymentRepo()

		order, err := orderRepo.FindByID(ctx, input.OrderID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return domainerrors.ErrOrderNotFound
			}

			return errors.Wrap(err, "failed to find order")
		}
		if order.UserID != input.UserID {
			return domainerrors.ErrOrderNotFound
		}
		if order.Status != entity.OrderStatusPending {
			return domainerrors.ErrOrderNotPayable
		}

		if _, err := paymentRepo.FindByOrderID(ctx, order.ID); err == nil {
			return domainerrors.ErrPaymentAlreadyExists
		} else if !errors.Is(err, repository.ErrPaymentNotFound) {
			return errors.Wrap(err, "failed to check existing payment")
		}

		payment := &entity.Payment{
			OrderID:   order.ID,
			Provider:  entity.PaymentProviderMock,
			Status:    entity.PaymentStatusRequiresConfirmation,
			Amount:    order.Total,
			Reference: uuid.NewString(),
		}

		if err := paymentRepo.Create(ctx, payment); err != nil {
			return errors.Wrap(err, "failed to create payment")
		}

		createdPayment = payment

		return nil
	})

	if err != nil {
		return nil, err
	}

	qrCode, err := srv.qrService.GeneratePaymentQR(createdPayment.Reference)
	if err != nil {
		srv.log(ctx).Error("Failed to generate payment QR code", slog.Any("paymentID", createdPayment.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate payment QR code")
	}

	metrics.PaymentsTotal.WithLabelValues(metrics.PaymentEventCreated).Inc()
	srv.log(ctx).Info("Payment created",
		slog.Any("paymentID", createdPayment.ID),
		slog.Any("orderID", createdPayment.OrderID))

	return &usecase.CreatePaymentOutput{
		Payment: createdPayment,
		QRCode:  qrCode,
	}, nil
}

// ConfirmPayment settles a payment from the provider's callback. A payment
// can only be settled once; the first confirmation wins and later ones get a
// conflict. A SUCCEEDED outcome moves the order to PAID.
func (srv *paymentService) ConfirmPayment(ctx context.Context, input usecase.ConfirmPaymentInput) (*entity.Payment, error) {
	if input.Outcome != entity.PaymentStatusSucceeded && input.Outcome != entity.PaymentStatusFailed {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("outcome must be SUCCEEDED or FAILED")
	}

	var settledPayment *entity.Payment
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		paymentRepo := repoFactory.PaymentRepo()
		orderRepo := repoFactory.OrderRepo()

		payment, err := paymentRepo.FindByReference(ctx, input.Reference)
		if err != nil {
			if errors.Is(err, repository.ErrPaymentNotFound) {
				return domainerrors.ErrPaymentNotFound
			}

			return errors.Wrap(err, "failed to find payment")
		}
		if payment.Status != entity.PaymentStatusRequiresConfirmation {
			return domainerrors.ErrPaymentAlreadySettled
		}

		// The settle itself is guarded too: a confirmation racing past the
		// status check above loses here instead of overwriting the winner.
		if err := paymentRepo.Settle(ctx, payment.ID, input.Outcome); err != nil {
			if errors.Is(err, domainerrors.ErrPaymentAlreadySettled) {
				return err
			}

			return errors.Wrap(err, "failed to settle payment")
		}

		if input.Outcome == entity.PaymentStatusSucceeded {
			if err := orderRepo.UpdateStatus(ctx, payment.OrderID, entity.OrderStatusPaid); err != nil {
				return errors.Wrap(err, "failed to mark order paid")
			}
		}

		payment.Status = input.Outcome
		settledPayment = payment

		return nil
	})

	if err != nil {
		return nil, err
	}

	if settledPayment.Status == entity.PaymentStatusSucceeded {
		metrics.PaymentsTotal.WithLabelValues(metrics.PaymentEventSucceeded).Inc()
	} else {
		metrics.PaymentsTotal.WithLabelValues(metrics.PaymentEventFailed).Inc()
	}

	srv.log(ctx).Info("Payment settled",
		slog.Any("paymentID", settledPayment.ID),
		slog.String("status", string(settledPayment.Status)))

	return settledPayment, nil
}

// GetPayment returns the payment attached to one of the caller's orders.
func (srv *paymentService) GetPayment(ctx context.Context, userID, orderID uuid.UUID) (*entity.Payment, error) {
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

	payment, err := srv.paymentRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return nil, domainerrors.ErrPaymentNotFound
		}

		return nil, errors.Wrap(err, "failed to find payment")
	}

	return payment, nil
}
