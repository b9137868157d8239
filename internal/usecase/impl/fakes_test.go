package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"novacommerce/internal/domain/entity"
	domainerrors "novacommerce/internal/domain/errors"
	"novacommerce/internal/domain/repository"
	"novacommerce/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// In-memory fakes standing in for the GORM repositories. They reproduce the
// error mapping of the real implementations (not-found sentinels, conflict
// on duplicate email) so the services under test see the same behavior.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- user repository ---

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if user, ok := r.users[id]; ok {
		copied := *user
		return &copied, nil
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, user := range r.users {
		if user.Email == email {
			return true, nil
		}
	}

	return false, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return domainerrors.ErrEmailAlreadyInUse
		}
	}

	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	copied := *user
	r.users[user.ID] = &copied

	return nil
}

// --- category repository ---

type fakeCategoryRepo struct {
	categories map[uuid.UUID]*entity.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[uuid.UUID]*entity.Category)}
}

func (r *fakeCategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	out := make([]*entity.Category, 0, len(r.categories))
	for _, category := range r.categories {
		copied := *category
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}

func (r *fakeCategoryRepo) FindBySlug(_ context.Context, slug string) (*entity.Category, error) {
	for _, category := range r.categories {
		if category.Slug == slug {
			copied := *category
			return &copied, nil
		}
	}

	return nil, repository.ErrCategoryNotFound
}

func (r *fakeCategoryRepo) Create(_ context.Context, category *entity.Category) error {
	for _, existing := range r.categories {
		if existing.Slug == category.Slug {
			return domainerrors.ErrConflict
		}
	}

	category.ID = uuid.New()
	copied := *category
	r.categories[category.ID] = &copied

	return nil
}

// --- product repository ---

type fakeProductRepo struct {
	products map[uuid.UUID]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*entity.Product)}
}

func (r *fakeProductRepo) List(_ context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.products))
	for _, product := range r.products {
		if filter.ActiveOnly && !product.Active {
			continue
		}
		copied := *product
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })

	return out, nil
}

func (r *fakeProductRepo) FindBySlug(_ context.Context, slug string) (*entity.Product, error) {
	for _, product := range r.products {
		if product.Slug == slug {
			copied := *product
			return &copied, nil
		}
	}

	return nil, repository.ErrProductNotFound
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	if product, ok := r.products[id]; ok {
		copied := *product
		return &copied, nil
	}

	return nil, repository.ErrProductNotFound
}

func (r *fakeProductRepo) Create(_ context.Context, product *entity.Product) error {
	for _, existing := range r.products {
		if existing.Slug == product.Slug {
			return domainerrors.ErrProductSlugTaken
		}
	}

	product.ID = uuid.New()
	copied := *product
	r.products[product.ID] = &copied

	return nil
}

func (r *fakeProductRepo) DecrementStock(_ context.Context, id uuid.UUID, quantity int) error {
	product, ok := r.products[id]
	if !ok {
		return repository.ErrProductNotFound
	}
	if product.Stock < quantity {
		return repository.ErrInsufficientStock
	}

	product.Stock -= quantity

	return nil
}

func (r *fakeProductRepo) SetStock(_ context.Context, id uuid.UUID, stock int) error {
	product, ok := r.products[id]
	if !ok {
		return repository.ErrProductNotFound
	}

	product.Stock = stock

	return nil
}

// --- cart repository ---

type fakeCartRepo struct {
	carts map[uuid.UUID]*entity.Cart
	items map[uuid.UUID][]*entity.CartItem
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{
		carts: make(map[uuid.UUID]*entity.Cart),
		items: make(map[uuid.UUID][]*entity.CartItem),
	}
}

func (r *fakeCartRepo) FindActiveByUserID(_ context.Context, userID uuid.UUID) (*entity.Cart, error) {
	for _, cart := range r.carts {
		if cart.UserID == userID && cart.Status == entity.CartStatusActive {
			copied := *cart
			copied.Items = make([]*entity.CartItem, 0, len(r.items[cart.ID]))
			for _, item := range r.items[cart.ID] {
				itemCopy := *item
				copied.Items = append(copied.Items, &itemCopy)
			}

			return &copied, nil
		}
	}

	return nil, repository.ErrCartNotFound
}

func (r *fakeCartRepo) Create(_ context.Context, cart *entity.Cart) error {
	cart.ID = uuid.New()
	copied := *cart
	copied.Items = nil
	r.carts[cart.ID] = &copied

	return nil
}

func (r *fakeCartRepo) UpsertItem(_ context.Context, item *entity.CartItem) error {
	for _, existing := range r.items[item.CartID] {
		if existing.ProductID == item.ProductID {
			existing.Quantity += item.Quantity
			existing.UnitPrice = item.UnitPrice

			return nil
		}
	}

	item.ID = uuid.New()
	copied := *item
	r.items[item.CartID] = append(r.items[item.CartID], &copied)

	return nil
}

func (r *fakeCartRepo) UpdateItemQuantity(_ context.Context, cartID, productID uuid.UUID, quantity int) error {
	for _, existing := range r.items[cartID] {
		if existing.ProductID == productID {
			existing.Quantity = quantity

			return nil
		}
	}

	return repository.ErrCartItemNotFound
}

func (r *fakeCartRepo) RemoveItem(_ context.Context, cartID, productID uuid.UUID) error {
	lines := r.items[cartID]
	for i, existing := range lines {
		if existing.ProductID == productID {
			r.items[cartID] = append(lines[:i], lines[i+1:]...)

			return nil
		}
	}

	return repository.ErrCartItemNotFound
}

func (r *fakeCartRepo) UpdateStatus(_ context.Context, cartID uuid.UUID, status entity.CartStatus) error {
	cart, ok := r.carts[cartID]
	if !ok {
		return repository.ErrCartNotFound
	}

	cart.Status = status

	return nil
}

// --- order repository ---

type fakeOrderRepo struct {
	orders  map[uuid.UUID]*entity.Order
	created []uuid.UUID
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*entity.Order)}
}

func (r *fakeOrderRepo) Create(_ context.Context, order *entity.Order) error {
	order.ID = uuid.New()
	for _, item := range order.Items {
		item.ID = uuid.New()
		item.OrderID = order.ID
	}
	order.CreatedAt = time.Now()

	copied := *order
	r.orders[order.ID] = &copied
	r.created = append(r.created, order.ID)

	return nil
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	if order, ok := r.orders[id]; ok {
		copied := *order
		return &copied, nil
	}

	return nil, repository.ErrOrderNotFound
}

func (r *fakeOrderRepo) ListByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	out := make([]*entity.Order, 0)
	for i := len(r.created) - 1; i >= 0; i-- {
		order := r.orders[r.created[i]]
		if order.UserID == userID {
			copied := *order
			out = append(out, &copied)
		}
	}

	return out, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.OrderStatus) error {
	order, ok := r.orders[id]
	if !ok {
		return repository.ErrOrderNotFound
	}

	order.Status = status

	return nil
}

// --- payment repository ---

type fakePaymentRepo struct {
	payments map[uuid.UUID]*entity.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[uuid.UUID]*entity.Payment)}
}

func (r *fakePaymentRepo) Create(_ context.Context, payment *entity.Payment) error {
	for _, existing := range r.payments {
		if existing.OrderID == payment.OrderID {
			return domainerrors.ErrPaymentAlreadyExists
		}
	}

	payment.ID = uuid.New()
	copied := *payment
	r.payments[payment.ID] = &copied

	return nil
}

func (r *fakePaymentRepo) FindByReference(_ context.Context, reference string) (*entity.Payment, error) {
	for _, payment := range r.payments {
		if payment.Reference == reference {
			copied := *payment
			return &copied, nil
		}
	}

	return nil, repository.ErrPaymentNotFound
}

func (r *fakePaymentRepo) FindByOrderID(_ context.Context, orderID uuid.UUID) (*entity.Payment, error) {
	for _, payment := range r.payments {
		if payment.OrderID == orderID {
			copied := *payment
			return &copied, nil
		}
	}

	return nil, repository.ErrPaymentNotFound
}

func (r *fakePaymentRepo) Settle(_ context.Context, id uuid.UUID, status entity.PaymentStatus) error {
	payment, ok := r.payments[id]
	if !ok {
		return repository.ErrPaymentNotFound
	}
	if payment.Status != entity.PaymentStatusRequiresConfirmation {
		return domainerrors.ErrPaymentAlreadySettled.WrapMessage("payment already settled")
	}

	payment.Status = status

	return nil
}

// --- transaction manager ---

// fakeFactory hands out the same repository instances whether inside or
// outside a transaction, which is enough for services under test.
type fakeFactory struct {
	userRepo     *fakeUserRepo
	categoryRepo *fakeCategoryRepo
	productRepo  *fakeProductRepo
	cartRepo     *fakeCartRepo
	orderRepo    *fakeOrderRepo
	paymentRepo  *fakePaymentRepo
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{
		userRepo:     newFakeUserRepo(),
		categoryRepo: newFakeCategoryRepo(),
		productRepo:  newFakeProductRepo(),
		cartRepo:     newFakeCartRepo(),
		orderRepo:    newFakeOrderRepo(),
		paymentRepo:  newFakePaymentRepo(),
	}
}

func (f *fakeFactory) UserRepo() repository.UserRepository         { return f.userRepo }
func (f *fakeFactory) CategoryRepo() repository.CategoryRepository { return f.categoryRepo }
func (f *fakeFactory) ProductRepo() repository.ProductRepository   { return f.productRepo }
func (f *fakeFactory) CartRepo() repository.CartRepository         { return f.cartRepo }
func (f *fakeFactory) OrderRepo() repository.OrderRepository       { return f.orderRepo }
func (f *fakeFactory) PaymentRepo() repository.PaymentRepository   { return f.paymentRepo }

type fakeTxManager struct {
	factory repository.RepositoryFactory
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.factory)
}

// --- domain services ---

type fakePasswordHasher struct {
	hashErr error
}

func (h *fakePasswordHasher) Hash(password string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}

	return "hashed:" + password, nil
}

func (h *fakePasswordHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

type fakeTokenService struct {
	signErr error
	ttl     time.Duration
}

func (s *fakeTokenService) Sign(userID uuid.UUID, email, role string) (string, error) {
	if s.signErr != nil {
		return "", s.signErr
	}

	return fmt.Sprintf("token.%s.%s.%s", userID, email, role), nil
}

func (s *fakeTokenService) Validate(tokenString string) (*service.Claims, error) {
	return &service.Claims{RegisteredClaims: jwt.RegisteredClaims{ID: tokenString}}, nil
}

func (s *fakeTokenService) AccessTokenTTL() time.Duration {
	if s.ttl > 0 {
		return s.ttl
	}

	return time.Hour
}

type fakeQRService struct {
	generateErr error
}

func (s *fakeQRService) GeneratePaymentQR(reference string) ([]byte, error) {
	if s.generateErr != nil {
		return nil, s.generateErr
	}

	return []byte("png:" + reference), nil
}
