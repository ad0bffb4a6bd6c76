package models

import (
	"time"

	"gorm.io/gorm"
)

// MaxProductImages caps how many images a product may carry.
const MaxProductImages = 5

// Product represents a catalog entry. ImageURLs holds 0-5 public URLs,
// each pointing at an asset held by the configured asset store.
type Product struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `json:"description"`
	Price       float64        `gorm:"not null;check:price >= 0" json:"price"`
	ImageURLs   []string       `gorm:"serializer:json" json:"imageUrls"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Product model
func (Product) TableName() string {
	return "products"
}
