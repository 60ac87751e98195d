package models

import (
	"time"
)

// Order status constants
const (
	OrderStatusPlaced     = "Placed"
	OrderStatusPaid       = "Paid"
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

type Order struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	Reference       string      `gorm:"uniqueIndex;not null" json:"reference"`
	UserID          uint        `json:"user_id"`
	User            User        `json:"user" gorm:"foreignKey:UserID"`
	Subtotal        float64     `json:"subtotal"`
	Discount        float64     `json:"discount"`
	FinalTotal      float64     `json:"final_total"`
	PaymentMethod   string      `json:"payment_method"`
	RazorpayOrderID string      `json:"razorpay_order_id,omitempty"`
	Status          string      `json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
	OrderItems      []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
}

// OrderItem captures the unit price and discount at the moment the order
// was placed, so later discount changes never rewrite order history.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `json:"order_id"`
	ProductID uint    `json:"product_id"`
	Product   Product `json:"product"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Discount  float64 `json:"discount"`
	Total     float64 `json:"total"`
}
