package models

import (
	"time"
)

// Order status values. Status starts as Pending and is only ever
// changed through the admin status-update route.
const (
	OrderStatusPending   = "Pending"
	OrderStatusCompleted = "Completed"
)

// OrderItem is a single cart line item. Items are stored inline on the
// order as JSON so an order is always read and written as one record.
type OrderItem struct {
	Product  string `json:"product"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

// Order represents a checkout submission
type Order struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	CustomerName string      `gorm:"not null" json:"customerName"`
	Email        string      `gorm:"not null" json:"email"`
	PhoneNumber  string      `gorm:"not null" json:"phoneNumber"`
	Address      string      `gorm:"not null" json:"address"`
	Items        []OrderItem `gorm:"serializer:json" json:"items"`
	Status       string      `gorm:"not null;default:'Pending'" json:"status"`
	CreatedAt    time.Time   `json:"createdAt"` // set at creation, never updated
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// ValidStatus reports whether s is an accepted order status.
func ValidStatus(s string) bool {
	return s == OrderStatusPending || s == OrderStatusCompleted
}
