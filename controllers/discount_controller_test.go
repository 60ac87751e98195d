package controllers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Govind-619/MarketSphere/config"
)

func TestGetDiscountStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	db := setupTestDB(t)
	prev := config.DB
	config.DB = db
	t.Cleanup(func() { config.DB = prev })

	_, product := seedSellerAndProduct(t, db, "seller@example.com", 100)
	created, appErr := upsertDiscountForProduct(db, product.ID, testInput(product.ID, 20, now))
	require.Nil(t, appErr)

	router := gin.New()
	router.GET("/discounts/:id", GetDiscount)

	get := func(id string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/discounts/"+id, nil)
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("existing discount returns 200", func(t *testing.T) {
		w := get(fmt.Sprintf("%d", created.ID))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing discount returns 404", func(t *testing.T) {
		w := get("424242")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("store fault returns 500, not 404", func(t *testing.T) {
		sqlDB, err := db.DB()
		require.NoError(t, err)
		require.NoError(t, sqlDB.Close())

		w := get(fmt.Sprintf("%d", created.ID))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
