package impl

import (
	"context"
	"testing"

	"novacommerce/internal/domain/entity"
	domainerrors "novacommerce/internal/domain/errors"
	"novacommerce/internal/domain/repository"
	"novacommerce/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type paymentServiceFixtures struct {
	service      usecase.PaymentUsecase
	orderService usecase.OrderUsecase
	cartService  usecase.CartUsecase
	factory      *fakeFactory
	qrService    *fakeQRService
}

func createTestPaymentService(_ *testing.T) paymentServiceFixtures {
	factory := newFakeFactory()
	txManager := &fakeTxManager{factory: factory}
	qrService := &fakeQRService{}

	cartService := NewCartService(CartServiceParams{
		TxManager:   txManager,
		CartRepo:    factory.cartRepo,
		ProductRepo: factory.productRepo,
		Logger:      testLogger(),
	})

	orderService := NewOrderService(OrderServiceParams{
		TxManager: txManager,
		OrderRepo: factory.orderRepo,
		Logger:    testLogger(),
	})

	service := NewPaymentService(PaymentServiceParams{
		TxManager:   txManager,
		OrderRepo:   factory.orderRepo,
		PaymentRepo: factory.paymentRepo,
		QRService:   qrService,
		Logger:      testLogger(),
	})

	return paymentServiceFixtures{
		service:      service,
		orderService: orderService,
		cartService:  cartService,
		factory:      factory,
		qrService:    qrService,
	}
}

func placeOrder(t *testing.T, fixtures paymentServiceFixtures, userID uuid.UUID) *entity.Order {
	t.Helper()
	ctx := context.Background()

	product := seedCartProduct(t, fixtures.factory, "cola-"+uuid.NewString()[:8], "2.50", 10, true)
	_, err := fixtures.cartService.AddItem(ctx, usecase.AddCartItemInput{
		UserID:    userID,
		ProductID: product.ID,
		Quantity:  2,
	})
	require.NoError(t, err)

	order, err := fixtures.orderService.Checkout(ctx, userID)
	require.NoError(t, err)

	return order
}

func TestPaymentService_CreatePayment(t *testing.T) {
	fixtures := createTestPaymentService(t)
	ctx := context.Background()
	userID := uuid.New()
	order := placeOrder(t, fixtures, userID)

	output, err := fixtures.service.CreatePayment(ctx, usecase.CreatePaymentInput{
		UserID:  userID,
		OrderID: order.ID,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusRequiresConfirmation, output.Payment.Status)
	assert.Equal(t, entity.PaymentProviderMock, output.Payment.Provider)
	assert.True(t, output.Payment.Amount.Equal(order.Total))
	assert.NotEmpty(t, output.Payment.Reference)
	assert.Equal(t, []byte("png:"+output.Payment.Reference), output.QRCode)
}

func TestPaymentService_CreatePayment_OrderNotFound(t *testing.T) {
	fixtures := createTestPaymentService(t)

	_, err := fixtures.service.CreatePayment(context.Background(), usecase.CreatePaymentInput{
		UserID:  uuid.New(),
		OrderID: uuid.New(),
	})

	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}

func TestPaymentService_CreatePayment_OwnershipEnforced(t *testing.T) {
	fixtures := createTestPaymentService(t)
	userID := uuid.New()
	order := placeOrder(t, fixtures, userID)

	_, err := fixtures.service.CreatePayment(context.Background(), usecase.CreatePaymentInput{
		UserID:  uuid.New(),
		OrderID: order.ID,
	})

	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}

func TestPaymentService_CreatePayment_Duplicate(t *testing.T) {
	fixtures := createTestPaymentService(t)
	ctx := context.Background()
	userID := uuid.New()
	order := placeOrder(t, fixtures, userID)

	_, err := fixtures.service.CreatePayment(ctx, usecase.CreatePaymentInput{UserID: userID, OrderID: order.ID})
	require.NoError(t, err)

	_, err = fixtures.service.CreatePayment(ctx, usecase.CreatePaymentInput{UserID: userID, OrderID: order.ID})
	assert.ErrorIs(t, err, domainerrors.ErrPaymentAlreadyExists)
}

func TestPaymentService_CreatePayment_OrderNotPayable(t *testing.T) {
	fixtures := createTestPaymentService(t)
	ctx := context.Background()
	userID := uuid.New()
	order := placeOrder(t, fixtures, userID)

	require.NoError(t, fixtures.factory.orderRepo.UpdateStatus(ctx, order.ID, entity.OrderStatusCancelled))

	_, err := fixtures.service.CreatePayment(ctx, usecase.CreatePaymentInput{UserID: userID, OrderID: order.ID})
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotPayable)
}

func TestPaymentService_ConfirmPayment_Succeeded(t *testing.T) {
	fixtures := createTestPaymentService(t)
	ctx := context.Background()
	userID := uuid.New()
	order := placeOrder(t, fixtures, userID)

	created, err := fixtures.service.CreatePayment(ctx, usecase.CreatePaymentInput{UserID: userID, OrderID: order.ID})
	require.NoError(t, err)

	settled, err := fixtures.service.ConfirmPayment(ctx, usecase.ConfirmPaymentInput{
		Reference: created.Payment.Reference,
		Outcome:   entity.PaymentStatusSucceeded,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusSucceeded, settled.Status)

	paidOrder, err := fixtures.orderService.GetOrder(ctx, userID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPaid, paidOrder.Status)
}

func TestPaymentService_ConfirmPayment_Failed(t *testing.T) {
	fixtures := createTestPaymentService(t)
	ctx := context.Background()
	userID := uuid.New()
	order := placeOrder(t, fixtures, userID)

	created, err := fixtures.service.CreatePayment(ctx, usecase.CreatePaymentInput{UserID: userID, OrderID: order.ID})
	require.NoError(t, err)

	settled, err := fixtures.service.ConfirmPayment(ctx, usecase.ConfirmPaymentInput{
		Reference: created.Payment.Reference,
		Outcome:   entity.PaymentStatusFailed,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusFailed, settled.Status)

	// a failed confirmation leaves the order payable state untouched
	pendingOrder, err := fixtures.orderService.GetOrder(ctx, userID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, pendingOrder.Status)
}

func TestPaymentService_ConfirmPayment_FirstConfirmationWins(t *testing.T) {
	fixtures := createTestPaymentService(t)
	ctx := context.Background()
	userID := uuid.New()
	order := placeOrder(t, fixtures, userID)

	created, err := fixtures.service.CreatePayment(ctx, usecase.CreatePaymentInput{UserID: userID, OrderID: order.ID})
	require.NoError(t, err)

	_, err = fixtures.service.ConfirmPayment(ctx, usecase.ConfirmPaymentInput{
		Reference: created.Payment.Reference,
		Outcome:   entity.PaymentStatusSucceeded,
	})
	require.NoError(t, err)

	_, err = fixtures.service.ConfirmPayment(ctx, usecase.ConfirmPaymentInput{
		Reference: created.Payment.Reference,
		Outcome:   entity.PaymentStatusFailed,
	})
	assert.ErrorIs(t, err, domainerrors.ErrPaymentAlreadySettled)
}

// staleReadPaymentRepo reports every payment as still awaiting confirmation,
// reproducing a reader whose snapshot predates a concurrent settlement.
type staleReadPaymentRepo struct {
	*fakePaymentRepo
}

func (r *staleReadPaymentRepo) FindByReference(ctx context.Context, reference string) (*entity.Payment, error) {
	payment, err := r.fakePaymentRepo.FindByReference(ctx, reference)
	if err != nil {
		return nil, err
	}

	payment.Status = entity.PaymentStatusRequiresConfirmation

	return payment, nil
}

type staleReadFactory struct {
	*fakeFactory
}

func (f *staleReadFactory) PaymentRepo() repository.PaymentRepository {
	return &staleReadPaymentRepo{fakePaymentRepo: f.fakeFactory.paymentRepo}
}

func TestPaymentService_ConfirmPayment_ConcurrentSettlementLoses(t *testing.T) {
	fixtures := createTestPaymentService(t)
	ctx := context.Background()
	userID := uuid.New()
	order := placeOrder(t, fixtures, userID)

	created, err := fixtures.service.CreatePayment(ctx, usecase.CreatePaymentInput{UserID: userID, OrderID: order.ID})
	require.NoError(t, err)

	_, err = fixtures.service.ConfirmPayment(ctx, usecase.ConfirmPaymentInput{
		Reference: created.Payment.Reference,
		Outcome:   entity.PaymentStatusSucceeded,
	})
	require.NoError(t, err)

	// A second confirmation whose read happened before the first one
	// committed passes the status check but must lose at the store.
	racingService := NewPaymentService(PaymentServiceParams{
		TxManager:   &fakeTxManager{factory: &staleReadFactory{fakeFactory: fixtures.factory}},
		OrderRepo:   fixtures.factory.orderRepo,
		PaymentRepo: fixtures.factory.paymentRepo,
		QRService:   fixtures.qrService,
		Logger:      testLogger(),
	})

	_, err = racingService.ConfirmPayment(ctx, usecase.ConfirmPaymentInput{
		Reference: created.Payment.Reference,
		Outcome:   entity.PaymentStatusFailed,
	})
	assert.ErrorIs(t, err, domainerrors.ErrPaymentAlreadySettled)

	stored, err := fixtures.factory.paymentRepo.FindByReference(ctx, created.Payment.Reference)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusSucceeded, stored.Status)

	paidOrder, err := fixtures.orderService.GetOrder(ctx, userID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPaid, paidOrder.Status)
}

func TestPaymentService_ConfirmPayment_UnknownReference(t *testing.T) {
	fixtures := createTestPaymentService(t)

	_, err := fixtures.service.ConfirmPayment(context.Background(), usecase.ConfirmPaymentInput{
		Reference: uuid.NewString(),
		Outcome:   entity.PaymentStatusSucceeded,
	})

	assert.ErrorIs(t, err, domainerrors.ErrPaymentNotFound)
}

func TestPaymentService_ConfirmPayment_InvalidOutcome(t *testing.T) {
	fixtures := createTestPaymentService(t)

	_, err := fixtures.service.ConfirmPayment(context.Background(), usecase.ConfirmPaymentInput{
		Reference: uuid.NewString(),
		Outcome:   entity.PaymentStatusRequiresConfirmation,
	})

	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestPaymentService_GetPayment(t *testing.T) {
	fixtures := createTestPaymentService(t)
	ctx := context.Background()
	userID := uuid.New()
	order := placeOrder(t, fixtures, userID)

	created, err := fixtures.service.CreatePayment(ctx, usecase.CreatePaymentInput{UserID: userID, OrderID: order.ID})
	require.NoError(t, err)

	payment, err := fixtures.service.GetPayment(ctx, userID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Payment.ID, payment.ID)

	_, err = fixtures.service.GetPayment(ctx, uuid.New(), order.ID)
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}
