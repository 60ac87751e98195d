package models

import (
	"time"
)

// ProductDiscount is the single promotional discount attached to a product.
// The unique index on ProductID is the store-level guarantee that a product
// never carries more than one discount row, including under concurrent
// create calls.
type ProductDiscount struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ProductID  uint      `json:"product_id" gorm:"not null;uniqueIndex"`
	Percentage float64   `json:"percentage" gorm:"not null"`
	StartDate  time.Time `json:"start_date" gorm:"not null"`
	EndDate    time.Time `json:"end_date" gorm:"not null"`
	Active     bool      `json:"active" gorm:"default:true"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
