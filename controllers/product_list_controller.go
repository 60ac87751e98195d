package controllers

import (
	"time"

	"github.com/Govind-619/MarketSphere/config"
	"github.com/Govind-619/MarketSphere/models"
	"github.com/Govind-619/MarketSphere/utils"
	"github.com/gin-gonic/gin"
)

// GetProducts lists products with pagination and current sale prices
// GET /products
func GetProducts(c *gin.Context) {
	utils.LogInfo("GetProducts called")

	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.Product{})
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if sellerID := c.Query("seller_id"); sellerID != "" {
		query = query.Where("seller_id = ?", sellerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count products: %v", err)
		utils.InternalServerError(c, "Failed to fetch products", err.Error())
		return
	}
	pagination.SetTotal(total)

	var products []models.Product
	if err := query.Preload("Images").
		Order("created_at DESC").
		Limit(pagination.Limit).Offset(pagination.Offset).
		Find(&products).Error; err != nil {
		utils.LogError("Failed to fetch products: %v", err)
		utils.InternalServerError(c, "Failed to fetch products", err.Error())
		return
	}
	utils.LogDebug("Retrieved %d products", len(products))

	now := time.Now()
	formatted := make([]gin.H, 0, len(products))
	for i := range products {
		resp, err := productResponse(config.DB, &products[i], now)
		if err != nil {
			utils.LogError("Failed to build view for product %d: %v", products[i].ID, err)
			utils.InternalServerError(c, "Failed to fetch products", err.Error())
			return
		}
		formatted = append(formatted, resp)
	}

	utils.SendPaginatedResponse(c, formatted, pagination)
}

// GetProductDetails returns a single product with its current sale price
// GET /products/:id
func GetProductDetails(c *gin.Context) {
	utils.LogInfo("GetProductDetails called")

	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var product models.Product
	if err := config.DB.Preload("Images").Preload("Category").First(&product, productID).Error; err != nil {
		utils.LogError("Product not found: %v", err)
		utils.NotFound(c, "Product not found")
		return
	}

	resp, err := productResponse(config.DB, &product, time.Now())
	if err != nil {
		utils.InternalServerError(c, "Failed to build product view", err.Error())
		return
	}
	resp["category"] = gin.H{
		"id":   product.Category.ID,
		"name": product.Category.Name,
	}

	utils.Success(c, "Product retrieved successfully", gin.H{"product": resp})
}
