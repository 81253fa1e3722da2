package model

import (
	"time"

	"gorm.io/datatypes"
)

// Canonical order statuses. Input is case-insensitive and "canceled"
// is accepted as an alias of "cancelled".
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// OrderItem is a single line item stored inside the order's JSON column
type OrderItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Order represents a customer order
type Order struct {
	BaseModel
	CustomerName    string         `gorm:"type:varchar(128);not null" json:"customer_name"`
	CustomerEmail   string         `gorm:"type:varchar(255);not null" json:"customer_email"`
	Date            time.Time      `gorm:"index" json:"date"`
	Total           float64        `gorm:"type:decimal(12,2);not null;default:0" json:"total"`
	Status          string         `gorm:"type:varchar(32);not null;default:'pending';index" json:"status"`
	PaymentMethod   string         `gorm:"type:varchar(64)" json:"payment_method"`
	ShippingAddress string         `gorm:"type:varchar(512)" json:"shipping_address"`
	ItemsJSON       datatypes.JSON `gorm:"column:items_json;type:json" json:"items"`
}

// TableName specifies the table name for Order model
func (Order) TableName() string {
	return "orders"
}
