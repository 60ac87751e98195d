package models

import (
	"time"

	"gorm.io/gorm"
)

// Product represents a listing owned by a seller. DiscountID is a
// back-reference column only; the ProductDiscount row owns the
// relationship and carries the unique product_id foreign key.
type Product struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"not null"`
	Description string         `json:"description"`
	Price       float64        `json:"price" gorm:"not null"`
	Stock       int            `json:"stock" gorm:"default:0"`
	CategoryID  uint           `json:"category_id"`
	Category    Category       `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	SellerID    uint           `json:"seller_id"`
	Seller      User           `json:"seller,omitempty" gorm:"foreignKey:SellerID"`
	ImageURL    string         `json:"image_url"`
	Images      []ProductImage `json:"images" gorm:"foreignKey:ProductID"`
	DiscountID  *uint          `json:"discount_id,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

// ProductImage represents an additional image attached to a product
type ProductImage struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	ProductID uint   `json:"product_id" gorm:"index;not null"`
	URL       string `json:"url" gorm:"not null"`
}
