package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered user. Any user may list products for sale;
// product ownership is tracked through Product.SellerID.
type User struct {
	gorm.Model
	Username    string    `gorm:"uniqueIndex;not null" json:"username"`
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	Password    string    `json:"-"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Phone       string    `json:"phone"`
	IsBlocked   bool      `json:"is_blocked"`
	IsAdmin     bool      `json:"is_admin" gorm:"default:false"`
	GoogleID    string    `gorm:"default:null" json:"google_id"`
	LastLoginAt time.Time `json:"last_login_at"`

	Products []Product `json:"products,omitempty" gorm:"foreignKey:SellerID"`
}

// Category represents a product category
type Category struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"not null;uniqueIndex"`
	Description string         `json:"description"`
	Blocked     bool           `json:"blocked" gorm:"default:false"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}
