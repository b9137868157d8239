package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CategoryModel mirrors the 'categories' table.
type CategoryModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	Slug        string    `gorm:"type:varchar(100);unique;not null"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Products []*ProductModel `gorm:"foreignKey:CategoryID"`
}

// TableName explicitly sets the table name for GORM.
func (CategoryModel) TableName() string {
	return "categories"
}

// BeforeCreate generates the UUID application-side when none is set.
func (m *CategoryModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}

// ProductModel mirrors the 'products' table. Prices are numeric(12,2);
// Images is a newline-joined list to keep the schema driver-agnostic.
type ProductModel struct {
	ID             uuid.UUID        `gorm:"type:uuid;primary_key"`
	Slug           string           `gorm:"type:varchar(100);unique;not null"`
	Title          string           `gorm:"type:varchar(200);not null"`
	Description    string           `gorm:"type:text"`
	CategoryID     uuid.UUID        `gorm:"type:uuid;not null;index"`
	Price          decimal.Decimal  `gorm:"type:numeric(12,2);not null"`
	CompareAtPrice *decimal.Decimal `gorm:"type:numeric(12,2)"`
	Stock          int              `gorm:"not null;default:0"`
	Images         string           `gorm:"type:text"`
	Active         bool             `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}

// BeforeCreate generates the UUID application-side when none is set.
func (m *ProductModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}
