package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartModel mirrors the 'carts' table. The composite index supports the
// lookup of a user's single ACTIVE cart.
type CartModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_carts_user_status"`
	Status    string    `gorm:"type:varchar(20);not null;default:ACTIVE;index:idx_carts_user_status"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Items []*CartItemModel `gorm:"foreignKey:CartID"`
}

// TableName explicitly sets the table name for GORM.
func (CartModel) TableName() string {
	return "carts"
}

// BeforeCreate generates the UUID application-side when none is set.
func (m *CartModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}

// CartItemModel mirrors the 'cart_items' table. One line per product per cart.
type CartItemModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	CartID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_cart_product"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_cart_product"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CartItemModel) TableName() string {
	return "cart_items"
}

// BeforeCreate generates the UUID application-side when none is set.
func (m *CartItemModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}
