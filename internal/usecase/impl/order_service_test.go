package impl

import (
	"context"
	"testing"

	"novacommerce/internal/domain/entity"
	domainerrors "novacommerce/internal/domain/errors"
	"novacommerce/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderServiceFixtures struct {
	service     usecase.OrderUsecase
	cartService usecase.CartUsecase
	factory     *fakeFactory
}

func createTestOrderService(_ *testing.T) orderServiceFixtures {
	factory := newFakeFactory()
	txManager := &fakeTxManager{factory: factory}

	cartService := NewCartService(CartServiceParams{
		TxManager:   txManager,
		CartRepo:    factory.cartRepo,
		ProductRepo: factory.productRepo,
		Logger:      testLogger(),
	})

	service := NewOrderService(OrderServiceParams{
		TxManager: txManager,
		OrderRepo: factory.orderRepo,
		Logger:    testLogger(),
	})

	return orderServiceFixtures{service: service, cartService: cartService, factory: factory}
}

func fillCart(t *testing.T, fixtures orderServiceFixtures, userID uuid.UUID, slug string, price string, stock, quantity int) *entity.Product {
	t.Helper()

	product := seedCartProduct(t, fixtures.factory, slug, price, stock, true)
	_, err := fixtures.cartService.AddItem(context.Background(), usecase.AddCartItemInput{
		UserID:    userID,
		ProductID: product.ID,
		Quantity:  quantity,
	})
	require.NoError(t, err)

	return product
}

func TestOrderService_Checkout(t *testing.T) {
	fixtures := createTestOrderService(t)
	ctx := context.Background()
	userID := uuid.New()

	product := fillCart(t, fixtures, userID, "cola", "2.50", 10, 2)
	fillCart(t, fixtures, userID, "chips", "1.25", 5, 4)

	order, err := fixtures.service.Checkout(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.Len(t, order.Items, 2)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("10.00")), "got total %s", order.Total)

	// stock was decremented
	stored, err := fixtures.factory.productRepo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, stored.Stock)

	// the cart converted; the next access starts fresh
	fresh, err := fixtures.cartService.GetCart(ctx, userID)
	require.NoError(t, err)
	assert.True(t, fresh.Cart.IsEmpty())
}

func TestOrderService_Checkout_SnapshotsTitleAndPrice(t *testing.T) {
	fixtures := createTestOrderService(t)
	ctx := context.Background()
	userID := uuid.New()

	fillCart(t, fixtures, userID, "cola", "2.50", 10, 1)

	order, err := fixtures.service.Checkout(ctx, userID)
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Product cola", order.Items[0].Title)
	assert.True(t, order.Items[0].UnitPrice.Equal(decimal.RequireFromString("2.50")))
}

func TestOrderService_Checkout_EmptyCart(t *testing.T) {
	fixtures := createTestOrderService(t)
	userID := uuid.New()

	_, err := fixtures.service.Checkout(context.Background(), userID)
	assert.ErrorIs(t, err, domainerrors.ErrCartEmpty)

	// an existing but empty cart behaves the same
	_, err = fixtures.cartService.GetCart(context.Background(), userID)
	require.NoError(t, err)
	_, err = fixtures.service.Checkout(context.Background(), userID)
	assert.ErrorIs(t, err, domainerrors.ErrCartEmpty)
}

func TestOrderService_Checkout_InsufficientStock(t *testing.T) {
	fixtures := createTestOrderService(t)
	ctx := context.Background()
	userID := uuid.New()

	product := fillCart(t, fixtures, userID, "cola", "2.50", 5, 5)

	// someone else bought most of the stock after the item went into the cart
	require.NoError(t, fixtures.factory.productRepo.SetStock(ctx, product.ID, 1))

	_, err := fixtures.service.Checkout(ctx, userID)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, domainerrors.ErrInsufficientStock.ErrorCode(), appErr.ErrorCode())
	assert.Equal(t, "cola", appErr.Details())

	// no order was created
	orders, err := fixtures.service.ListOrders(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderService_GetOrder_OwnershipEnforced(t *testing.T) {
	fixtures := createTestOrderService(t)
	ctx := context.Background()
	owner := uuid.New()
	stranger := uuid.New()

	fillCart(t, fixtures, owner, "cola", "2.50", 10, 1)
	order, err := fixtures.service.Checkout(ctx, owner)
	require.NoError(t, err)

	found, err := fixtures.service.GetOrder(ctx, owner, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)

	_, err = fixtures.service.GetOrder(ctx, stranger, order.ID)
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}

func TestOrderService_ListOrders_NewestFirst(t *testing.T) {
	fixtures := createTestOrderService(t)
	ctx := context.Background()
	userID := uuid.New()

	fillCart(t, fixtures, userID, "cola", "2.50", 10, 1)
	first, err := fixtures.service.Checkout(ctx, userID)
	require.NoError(t, err)

	fillCart(t, fixtures, userID, "chips", "1.25", 10, 1)
	second, err := fixtures.service.Checkout(ctx, userID)
	require.NoError(t, err)

	orders, err := fixtures.service.ListOrders(ctx, userID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)
}
