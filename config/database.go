package config

import (
	"github.com/Govind-619/MarketSphere/models"
	"gorm.io/gorm"
)

// Migrate runs the schema migrations. The unique index on
// product_discounts.product_id is created here; it is the store-level
// guarantee behind the one-discount-per-product rule.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.ProductImage{},
		&models.ProductDiscount{},
		&models.Order{},
		&models.OrderItem{},
	)
}
