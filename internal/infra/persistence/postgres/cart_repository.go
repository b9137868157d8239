package postgres

import (
	"context"

	"novacommerce/internal/domain/entity"
	domainerrors "novacommerce/internal/domain/errors"
	"novacommerce/internal/domain/repository"
	"novacommerce/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// cartRepository implements the domain.CartRepository interface using GORM.
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository is the constructor for cartRepository.
func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepository{db: db}
}

// FindActiveByUserID retrieves the user's ACTIVE cart together with its items.
func (repo *cartRepository) FindActiveByUserID(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	var cartM model.CartModel
	err := repo.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ? AND status = ?", userID, entity.CartStatusActive).
		First(&cartM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCartNotFound
		}

		return nil, errors.Wrap(err, "failed to find active cart")
	}

	return toCartDomain(&cartM), nil
}

// Create persists a new cart.
func (repo *cartRepository) Create(ctx context.Context, cart *entity.Cart) error {
	cartM := fromCartDomain(cart)

	if err := repo.db.WithContext(ctx).Create(cartM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create cart")
	}

	cart.ID = cartM.ID
	cart.CreatedAt = cartM.CreatedAt
	cart.UpdatedAt = cartM.UpdatedAt

	return nil
}

// UpsertItem inserts the line, or on conflict adds the quantity to the
// existing line and refreshes the unit price snapshot. The conflict target
// is the (cart_id, product_id) unique index.
func (repo *cartRepository) UpsertItem(ctx context.Context, item *entity.CartItem) error {
	itemM := fromCartItemDomain(item)

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"quantity":   gorm.Expr("cart_items.quantity + ?", item.Quantity),
				"unit_price": item.UnitPrice,
			}),
		}).
		Create(itemM).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert cart item")
	}

	return nil
}

// UpdateItemQuantity sets the quantity of an existing line.
func (repo *cartRepository) UpdateItemQuantity(ctx context.Context, cartID, productID uuid.UUID, quantity int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CartItemModel{}).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Update("quantity", quantity)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update cart item quantity")
	}

	if result.RowsAffected == 0 {
		return repository.ErrCartItemNotFound
	}

	return nil
}

// RemoveItem deletes the line for the given product.
func (repo *cartRepository) RemoveItem(ctx context.Context, cartID, productID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&model.CartItemModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to remove cart item")
	}

	if result.RowsAffected == 0 {
		return repository.ErrCartItemNotFound
	}

	return nil
}

// UpdateStatus moves the cart to a new lifecycle state.
func (repo *cartRepository) UpdateStatus(ctx context.Context, cartID uuid.UUID, status entity.CartStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CartModel{}).
		Where("id = ?", cartID).
		Update("status", status)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update cart status")
	}

	if result.RowsAffected == 0 {
		return repository.ErrCartNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toCartDomain converts a GORM CartModel to a domain Cart entity.
func toCartDomain(data *model.CartModel) *entity.Cart {
	if data == nil {
		return nil
	}

	items := make([]*entity.CartItem, 0, len(data.Items))
	for _, itemM := range data.Items {
		items = append(items, toCartItemDomain(itemM))
	}

	return &entity.Cart{
		ID:        data.ID,
		UserID:    data.UserID,
		Status:    entity.CartStatus(data.Status),
		Items:     items,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromCartDomain converts a domain Cart entity to a GORM CartModel.
// Items are persisted through their own operations, not by cascade.
func fromCartDomain(data *entity.Cart) *model.CartModel {
	if data == nil {
		return nil
	}

	return &model.CartModel{
		ID:     data.ID,
		UserID: data.UserID,
		Status: string(data.Status),
	}
}

// toCartItemDomain converts a GORM CartItemModel to a domain CartItem entity.
func toCartItemDomain(data *model.CartItemModel) *entity.CartItem {
	if data == nil {
		return nil
	}

	return &entity.CartItem{
		ID:        data.ID,
		CartID:    data.CartID,
		ProductID: data.ProductID,
		Quantity:  data.Quantity,
		UnitPrice: data.UnitPrice,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromCartItemDomain converts a domain CartItem entity to a GORM CartItemModel.
func fromCartItemDomain(data *entity.CartItem) *model.CartItemModel {
	if data == nil {
		return nil
	}

	return &model.CartItemModel{
		ID:        data.ID,
		CartID:    data.CartID,
		ProductID: data.ProductID,
		Quantity:  data.Quantity,
		UnitPrice: data.UnitPrice,
	}
}
