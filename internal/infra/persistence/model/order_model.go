package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderModel mirrors the 'orders' table.
type OrderModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status    string          `gorm:"type:varchar(20);not null;default:PENDING"`
	Total     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Items []*OrderItemModel `gorm:"foreignKey:OrderID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// BeforeCreate generates the UUID application-side when none is set.
func (m *OrderModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}

// OrderItemModel mirrors the 'order_items' table. Title and unit price are
// checkout-time snapshots, independent of later product edits.
type OrderItemModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Title     string          `gorm:"type:varchar(200);not null"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}

// BeforeCreate generates the UUID application-side when none is set.
func (m *OrderItemModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}
