package impl

import (
	"context"
	"log/slog"

	"novacommerce/config"
	deliverycontext "novacommerce/internal/delivery/context"
	"novacommerce/internal/domain/entity"
	domainerrors "novacommerce/internal/domain/errors"
	"novacommerce/internal/domain/repository"
	"novacommerce/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// cartService implements the CartUsecase interface.
type cartService struct {
	txManager   repository.TransactionManager
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	logger      *slog.Logger
}

// CartServiceParams holds dependencies for cartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	CartRepo    repository.CartRepository
	ProductRepo repository.ProductRepository
	Config      *config.Config
	Logger      *slog.Logger
}

// NewCartService is the constructor for cartService.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		txManager:   params.TxManager,
		cartRepo:    params.CartRepo,
		productRepo: params.ProductRepo,
		logger:      params.Logger,
	}
}

func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// getOrCreateActiveCart loads the user's ACTIVE cart, creating a fresh one
// when none exists (first access, or right after a checkout converted it).
func getOrCreateActiveCart(ctx context.Context, cartRepo repository.CartRepository, userID uuid.UUID) (*entity.Cart, error) {
	cart, err := cartRepo.FindActiveByUserID(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, repository.ErrCartNotFound) {
		return nil, errors.Wrap(err, "failed to load active cart")
	}

	cart = &entity.Cart{
		UserID: userID,
		Status: entity.CartStatusActive,
	}
	if err := cartRepo.Create(ctx, cart); err != nil {
		return nil, errors.Wrap(err, "failed to create cart")
	}

	return cart, nil
}

func cartOutput(cart *entity.Cart) *usecase.CartOutput {
	return &usecase.CartOutput{
		Cart:     cart,
		Subtotal: cart.Subtotal(),
	}
}

// GetCart returns the user's ACTIVE cart, creating an empty one on demand.
func (srv *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*usecase.CartOutput, error) {
	cart, err := getOrCreateActiveCart(ctx, srv.cartRepo, userID)
	if err != nil {
		srv.log(ctx).Error("Failed to get cart", slog.Any("userID", userID), slog.Any("error", err))

		return nil, err
	}

	return cartOutput(cart), nil
}

// AddItem adds a product line to the user's ACTIVE cart, merging quantities
// when the product is already present. The unit price snapshot is taken at
// add time.
func (srv *cartService) AddItem(ctx context.Context, input usecase.AddCartItemInput) (*usecase.CartOutput, error) {
	if input.Quantity < 1 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("quantity must be at least 1")
	}

	var cartID uuid.UUID
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.CartRepo()
		productRepo := repoFactory.ProductRepo()

		product, err := productRepo.FindByID(ctx, input.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound
			}

			return errors.Wrap(err, "failed to load product")
		}
		if !product.Active {
			return domainerrors.ErrProductInactive
		}

		cart, err := getOrCreateActiveCart(ctx, cartRepo, input.UserID)
		if err != nil {
			return err
		}

		requested := input.Quantity
		if existing := cart.FindItem(input.ProductID); existing != nil {
			requested += existing.Quantity
		}
		if !product.InStock(requested) {
			return domainerrors.ErrInsufficientStock
		}

		cartID = cart.ID

		return cartRepo.UpsertItem(ctx, &entity.CartItem{
			CartID:    cart.ID,
			ProductID: product.ID,
			Quantity:  input.Quantity,
			UnitPrice: product.Price,
		})
	})

	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Cart item added", slog.Any("cartID", cartID), slog.Any("productID", input.ProductID))

	return srv.GetCart(ctx, input.UserID)
}

// UpdateItem sets a line's quantity. A quantity of zero removes the line.
func (srv *cartService) UpdateItem(ctx context.Context, input usecase.UpdateCartItemInput) (*usecase.CartOutput, error) {
	if input.Quantity < 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("quantity must not be negative")
	}
	if input.Quantity == 0 {
		return srv.RemoveItem(ctx, usecase.RemoveCartItemInput{
			UserID:    input.UserID,
			ProductID: input.ProductID,
		})
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.CartRepo()
		productRepo := repoFactory.ProductRepo()

		cart, err := cartRepo.FindActiveByUserID(ctx, input.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrCartNotFound) {
				return domainerrors.ErrCartItemNotFound
			}

			return errors.Wrap(err, "failed to load active cart")
		}

		product, err := productRepo.FindByID(ctx, input.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound
			}

			return errors.Wrap(err, "failed to load product")
		}
		if !product.InStock(input.Quantity) {
			return domainerrors.ErrInsufficientStock
		}

		if err := cartRepo.UpdateItemQuantity(ctx, cart.ID, input.ProductID, input.Quantity); err != nil {
			if errors.Is(err, repository.ErrCartItemNotFound) {
				return domainerrors.ErrCartItemNotFound
			}

			return errors.Wrap(err, "failed to update cart item")
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return srv.GetCart(ctx, input.UserID)
}

// RemoveItem deletes a product line from the user's ACTIVE cart.
func (srv *cartService) RemoveItem(ctx context.Context, input usecase.RemoveCartItemInput) (*usecase.CartOutput, error) {
	cart, err := srv.cartRepo.FindActiveByUserID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return nil, domainerrors.ErrCartItemNotFound
		}

		return nil, errors.Wrap(err, "failed to load active cart")
	}

	if err := srv.cartRepo.RemoveItem(ctx, cart.ID, input.ProductID); err != nil {
		if errors.Is(err, repository.ErrCartItemNotFound) {
			return nil, domainerrors.ErrCartItemNotFound
		}

		return nil, errors.Wrap(err, "failed to remove cart item")
	}

	return srv.GetCart(ctx, input.UserID)
}
