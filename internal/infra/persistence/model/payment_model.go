package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentModel mirrors the 'payments' table. One payment per order; the
// reference column is what the provider echoes back on confirmation.
type PaymentModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID   uuid.UUID       `gorm:"type:uuid;unique;not null"`
	Provider  string          `gorm:"type:varchar(20);not null"`
	Status    string          `gorm:"type:varchar(30);not null"`
	Amount    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Reference string          `gorm:"type:varchar(64);unique;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (PaymentModel) TableName() string {
	return "payments"
}

// BeforeCreate generates the UUID application-side when none is set.
func (m *PaymentModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}
