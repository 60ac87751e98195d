package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Govind-619/MarketSphere/config"
	"github.com/Govind-619/MarketSphere/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

func seedSellerAndProduct(t *testing.T, db *gorm.DB, email string, price float64) (*models.User, *models.Product) {
	t.Helper()
	seller := &models.User{
		Username: email,
		Email:    email,
		Password: "hashed",
	}
	require.NoError(t, db.Create(seller).Error)

	product := &models.Product{
		Name:     "Test Product",
		Price:    price,
		Stock:    10,
		SellerID: seller.ID,
	}
	require.NoError(t, db.Create(product).Error)
	return seller, product
}

func testInput(productID uint, pct float64, now time.Time) *discountInput {
	return &discountInput{
		ProductID:  productID,
		Percentage: pct,
		StartDate:  now.Add(-time.Hour),
		EndDate:    now.Add(24 * time.Hour),
		Active:     true,
	}
}

func TestUpsertDiscountForProduct(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	t.Run("creates a discount and links the product", func(t *testing.T) {
		db := setupTestDB(t)
		_, product := seedSellerAndProduct(t, db, "seller@example.com", 100)

		discount, appErr := upsertDiscountForProduct(db, product.ID, testInput(product.ID, 20, now))
		require.Nil(t, appErr)
		assert.Equal(t, product.ID, discount.ProductID)
		assert.Equal(t, 20.0, discount.Percentage)
		assert.True(t, discount.Active)

		var fresh models.Product
		require.NoError(t, db.First(&fresh, product.ID).Error)
		require.NotNil(t, fresh.DiscountID)
		assert.Equal(t, discount.ID, *fresh.DiscountID)
	})

	t.Run("repeated creates overwrite the single row", func(t *testing.T) {
		db := setupTestDB(t)
		_, product := seedSellerAndProduct(t, db, "seller@example.com", 100)

		first, appErr := upsertDiscountForProduct(db, product.ID, testInput(product.ID, 10, now))
		require.Nil(t, appErr)

		second, appErr := upsertDiscountForProduct(db, product.ID, testInput(product.ID, 35, now))
		require.Nil(t, appErr)

		assert.Equal(t, first.ID, second.ID, "the existing row is updated, never duplicated")
		assert.Equal(t, 35.0, second.Percentage)

		var count int64
		require.NoError(t, db.Model(&models.ProductDiscount{}).Where("product_id = ?", product.ID).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("unknown product is a not found error", func(t *testing.T) {
		db := setupTestDB(t)
		_, appErr := upsertDiscountForProduct(db, 9999, testInput(9999, 20, now))
		require.NotNil(t, appErr)
		assert.Equal(t, http.StatusNotFound, appErr.Code)
	})
}

func TestConcurrentDiscountCreateRecovery(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	db := setupTestDB(t)
	_, product := seedSellerAndProduct(t, db, "seller@example.com", 100)

	// The winner of the race has already committed its row and link.
	winner := &models.ProductDiscount{
		ProductID:  product.ID,
		Percentage: 10,
		StartDate:  now.Add(-time.Hour),
		EndDate:    now.Add(24 * time.Hour),
		Active:     true,
	}
	require.NoError(t, writeDiscountAndLink(db, winner, true))

	t.Run("losing insert surfaces a duplicate key error", func(t *testing.T) {
		loser := &models.ProductDiscount{
			ProductID:  product.ID,
			Percentage: 40,
			StartDate:  now.Add(-time.Hour),
			EndDate:    now.Add(24 * time.Hour),
			Active:     true,
		}
		err := writeDiscountAndLink(db, loser, true)
		require.Error(t, err)
		assert.True(t, isDuplicateKeyError(err))
	})

	t.Run("retry updates the surviving row in a fresh transaction", func(t *testing.T) {
		in := testInput(product.ID, 40, now)
		resolved, appErr := resolveDiscountCreateRace(db, product.ID, in)
		require.Nil(t, appErr)
		assert.Equal(t, winner.ID, resolved.ID)
		assert.Equal(t, 40.0, resolved.Percentage)

		var count int64
		require.NoError(t, db.Model(&models.ProductDiscount{}).Where("product_id = ?", product.ID).Count(&count).Error)
		assert.Equal(t, int64(1), count)

		var fresh models.Product
		require.NoError(t, db.First(&fresh, product.ID).Error)
		require.NotNil(t, fresh.DiscountID)
		assert.Equal(t, winner.ID, *fresh.DiscountID)
	})
}

func TestUpdateDiscount(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	t.Run("overwrites the mutable fields", func(t *testing.T) {
		db := setupTestDB(t)
		_, product := seedSellerAndProduct(t, db, "seller@example.com", 100)

		created, appErr := upsertDiscountForProduct(db, product.ID, testInput(product.ID, 10, now))
		require.Nil(t, appErr)

		in := testInput(product.ID, 50, now)
		in.Active = false
		updated, appErr := updateDiscount(db, created.ID, in)
		require.Nil(t, appErr)
		assert.Equal(t, 50.0, updated.Percentage)
		assert.False(t, updated.Active)
	})

	t.Run("unknown discount leaves the store untouched", func(t *testing.T) {
		db := setupTestDB(t)
		_, product := seedSellerAndProduct(t, db, "seller@example.com", 100)
		created, appErr := upsertDiscountForProduct(db, product.ID, testInput(product.ID, 10, now))
		require.Nil(t, appErr)

		_, appErr = updateDiscount(db, created.ID+100, testInput(product.ID, 99, now))
		require.NotNil(t, appErr)
		assert.Equal(t, http.StatusNotFound, appErr.Code)

		fresh, err := findDiscountByProduct(db, product.ID)
		require.NoError(t, err)
		assert.Equal(t, 10.0, fresh.Percentage)
	})

	t.Run("re-links the discount to another product", func(t *testing.T) {
		db := setupTestDB(t)
		seller, product := seedSellerAndProduct(t, db, "seller@example.com", 100)
		other := &models.Product{Name: "Other", Price: 50, SellerID: seller.ID}
		require.NoError(t, db.Create(other).Error)

		created, appErr := upsertDiscountForProduct(db, product.ID, testInput(product.ID, 10, now))
		require.Nil(t, appErr)

		updated, appErr := updateDiscount(db, created.ID, testInput(other.ID, 10, now))
		require.Nil(t, appErr)
		assert.Equal(t, other.ID, updated.ProductID)

		var oldOwner, newOwner models.Product
		require.NoError(t, db.First(&oldOwner, product.ID).Error)
		require.NoError(t, db.First(&newOwner, other.ID).Error)
		assert.Nil(t, oldOwner.DiscountID, "old owner loses the back-reference")
		require.NotNil(t, newOwner.DiscountID)
		assert.Equal(t, created.ID, *newOwner.DiscountID)
	})
}

func TestSetDiscountActive(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	db := setupTestDB(t)
	_, product := seedSellerAndProduct(t, db, "seller@example.com", 100)

	created, appErr := upsertDiscountForProduct(db, product.ID, testInput(product.ID, 15, now))
	require.Nil(t, appErr)

	deactivated, appErr := setDiscountActive(db, created.ID, false)
	require.Nil(t, appErr)
	assert.False(t, deactivated.Active)
	assert.Equal(t, created.Percentage, deactivated.Percentage, "only the flag changes")
	assert.True(t, created.StartDate.Equal(deactivated.StartDate))
	assert.True(t, created.EndDate.Equal(deactivated.EndDate))

	reactivated, appErr := setDiscountActive(db, created.ID, true)
	require.Nil(t, appErr)
	assert.True(t, reactivated.Active)
}

func TestDeleteDiscount(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	t.Run("removes the row and clears the product link", func(t *testing.T) {
		db := setupTestDB(t)
		_, product := seedSellerAndProduct(t, db, "seller@example.com", 100)

		created, appErr := upsertDiscountForProduct(db, product.ID, testInput(product.ID, 15, now))
		require.Nil(t, appErr)

		require.Nil(t, deleteDiscount(db, created.ID))

		gone, err := findDiscountByProduct(db, product.ID)
		require.NoError(t, err)
		assert.Nil(t, gone)

		var fresh models.Product
		require.NoError(t, db.First(&fresh, product.ID).Error)
		assert.Nil(t, fresh.DiscountID)
	})

	t.Run("unknown discount is a not found error", func(t *testing.T) {
		db := setupTestDB(t)
		appErr := deleteDiscount(db, 424242)
		require.NotNil(t, appErr)
		assert.Equal(t, http.StatusNotFound, appErr.Code)
	})
}

func TestParseDiscountRequest(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	pct := func(v float64) *float64 { return &v }

	t.Run("valid payload", func(t *testing.T) {
		in, appErr := parseDiscountRequest(DiscountRequest{
			ProductID:  1,
			Percentage: pct(25),
			StartDate:  now.Add(-time.Hour).Format(time.RFC3339),
			EndDate:    now.Add(time.Hour).Format(time.RFC3339),
		}, now)
		require.Nil(t, appErr)
		assert.Equal(t, 25.0, in.Percentage)
		assert.True(t, in.Active, "active defaults to true")
	})

	t.Run("future start is normalized so the discount applies immediately", func(t *testing.T) {
		start := now.Add(2 * time.Hour)
		end := start.Add(10 * 24 * time.Hour)
		in, appErr := parseDiscountRequest(DiscountRequest{
			ProductID:  1,
			Percentage: pct(25),
			StartDate:  start.Format(time.RFC3339),
			EndDate:    end.Format(time.RFC3339),
		}, now)
		require.Nil(t, appErr)
		assert.True(t, in.StartDate.Equal(now))
		assert.True(t, in.EndDate.Equal(end.Add(-2*time.Hour)))
	})

	t.Run("percentage out of range is rejected", func(t *testing.T) {
		_, appErr := parseDiscountRequest(DiscountRequest{
			ProductID:  1,
			Percentage: pct(150),
			StartDate:  now.Format(time.RFC3339),
			EndDate:    now.Add(time.Hour).Format(time.RFC3339),
		}, now)
		require.NotNil(t, appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
	})

	t.Run("missing dates are rejected", func(t *testing.T) {
		_, appErr := parseDiscountRequest(DiscountRequest{ProductID: 1, Percentage: pct(10)}, now)
		require.NotNil(t, appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
	})

	t.Run("malformed dates are rejected", func(t *testing.T) {
		_, appErr := parseDiscountRequest(DiscountRequest{
			ProductID:  1,
			Percentage: pct(10),
			StartDate:  "30-08-2026",
			EndDate:    "31-08-2026",
		}, now)
		require.NotNil(t, appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
	})
}

func TestInvalidInputNeverReachesTheStore(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	pct := func(v float64) *float64 { return &v }

	db := setupTestDB(t)
	_, product := seedSellerAndProduct(t, db, "seller@example.com", 100)

	_, appErr := parseDiscountRequest(DiscountRequest{
		ProductID:  product.ID,
		Percentage: pct(150),
		StartDate:  now.Format(time.RFC3339),
		EndDate:    now.Add(time.Hour).Format(time.RFC3339),
	}, now)
	require.NotNil(t, appErr)

	var count int64
	require.NoError(t, db.Model(&models.ProductDiscount{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAssertProductOwner(t *testing.T) {
	db := setupTestDB(t)
	_, product := seedSellerAndProduct(t, db, "owner@example.com", 100)

	t.Run("owner passes", func(t *testing.T) {
		assert.Nil(t, assertProductOwner(db, product.ID, "owner@example.com"))
	})

	t.Run("another seller is rejected", func(t *testing.T) {
		appErr := assertProductOwner(db, product.ID, "intruder@example.com")
		require.NotNil(t, appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
	})

	t.Run("unknown product is a not found error", func(t *testing.T) {
		appErr := assertProductOwner(db, 9999, "owner@example.com")
		require.NotNil(t, appErr)
		assert.Equal(t, http.StatusNotFound, appErr.Code)
	})

	t.Run("product without a seller is rejected", func(t *testing.T) {
		orphan := &models.Product{Name: "Orphan", Price: 10}
		require.NoError(t, db.Create(orphan).Error)
		appErr := assertProductOwner(db, orphan.ID, "owner@example.com")
		require.NotNil(t, appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
	})
}

func TestAssertDiscountOwner(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	db := setupTestDB(t)
	_, product := seedSellerAndProduct(t, db, "owner@example.com", 100)

	created, appErr := upsertDiscountForProduct(db, product.ID, testInput(product.ID, 10, now))
	require.Nil(t, appErr)

	t.Run("owner gets the discount back", func(t *testing.T) {
		discount, appErr := assertDiscountOwner(db, created.ID, "owner@example.com")
		require.Nil(t, appErr)
		assert.Equal(t, created.ID, discount.ID)
	})

	t.Run("another seller is rejected", func(t *testing.T) {
		_, appErr := assertDiscountOwner(db, created.ID, "intruder@example.com")
		require.NotNil(t, appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
	})

	t.Run("unknown discount is a not found error", func(t *testing.T) {
		_, appErr := assertDiscountOwner(db, 9999, "owner@example.com")
		require.NotNil(t, appErr)
		assert.Equal(t, http.StatusNotFound, appErr.Code)
	})
}
