package controllers

import (
	"errors"
	"time"

	"github.com/Govind-619/MarketSphere/config"
	"github.com/Govind-619/MarketSphere/models"
	"github.com/Govind-619/MarketSphere/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ProductRequest is the wire payload for product create/update calls
type ProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	CategoryID  uint     `json:"category_id"`
	ImageURL    string   `json:"image_url"`
	Images      []string `json:"images"`
}

// productResponse builds the external view of a product. The discount is
// always re-read from the store so the price reflects the current
// activation state and window, never a cached association.
func productResponse(db *gorm.DB, p *models.Product, now time.Time) (gin.H, error) {
	discount, err := findDiscountByProduct(db, p.ID)
	if err != nil {
		return nil, err
	}
	pricing := utils.BuildPriceBreakdown(p.Price, discount, now)

	images := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, img.URL)
	}

	resp := gin.H{
		"id":          p.ID,
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price,
		"stock":       p.Stock,
		"category_id": p.CategoryID,
		"seller_id":   p.SellerID,
		"image_url":   p.ImageURL,
		"images":      images,
		"pricing":     pricing,
	}
	if discount != nil {
		resp["discount"] = discountResponse(discount, now)
	}
	return resp, nil
}

func validateProductRequest(req *ProductRequest) *utils.AppError {
	req.Name = utils.SanitizeString(req.Name)
	req.Description = utils.SanitizeString(req.Description)

	if err := utils.ValidateStringLength(req.Name, 2, 200); err != nil {
		return utils.BadRequestError("Invalid product name", err)
	}
	if req.Price == nil {
		return utils.BadRequestError("Price is required", nil)
	}
	if err := utils.ValidatePrice(*req.Price); err != nil {
		return utils.BadRequestError(err.Error(), nil)
	}
	if req.Stock != nil {
		if err := utils.ValidateStock(*req.Stock); err != nil {
			return utils.BadRequestError(err.Error(), nil)
		}
	}
	return nil
}

// CreateProduct creates a product owned by the calling user
// POST /user/products
func CreateProduct(c *gin.Context) {
	utils.LogInfo("CreateProduct called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request data: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	if appErr := validateProductRequest(&req); appErr != nil {
		utils.AppErrorResponse(c, appErr)
		return
	}

	if req.CategoryID != 0 {
		var category models.Category
		if err := config.DB.First(&category, req.CategoryID).Error; err != nil {
			utils.LogError("Category not found: %v", err)
			utils.NotFound(c, "Category not found")
			return
		}
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		CategoryID:  req.CategoryID,
		SellerID:    user.ID,
		ImageURL:    req.ImageURL,
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	for _, url := range req.Images {
		product.Images = append(product.Images, models.ProductImage{URL: url})
	}

	if err := config.DB.Create(&product).Error; err != nil {
		utils.LogError("Failed to create product: %v", err)
		utils.InternalServerError(c, "Failed to create product", err.Error())
		return
	}

	utils.LogInfo("Product %d created by user %d", product.ID, user.ID)
	resp, err := productResponse(config.DB, &product, time.Now())
	if err != nil {
		utils.InternalServerError(c, "Failed to build product view", err.Error())
		return
	}
	utils.Created(c, "Product created successfully", gin.H{"product": resp})
}

// UpdateProduct updates a product the calling user owns
// PUT /user/products/:id
func UpdateProduct(c *gin.Context) {
	utils.LogInfo("UpdateProduct called")

	user, ok := currentUser(c)
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if appErr := assertProductOwner(config.DB, productID, user.Email); appErr != nil {
		utils.AppErrorResponse(c, appErr)
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request data: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var product models.Product
	if err := config.DB.Preload("Images").First(&product, productID).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	if req.Name != "" {
		product.Name = utils.SanitizeString(req.Name)
	}
	if req.Description != "" {
		product.Description = utils.SanitizeString(req.Description)
	}
	if req.Price != nil {
		if err := utils.ValidatePrice(*req.Price); err != nil {
			utils.BadRequest(c, err.Error(), nil)
			return
		}
		product.Price = *req.Price
	}
	if req.Stock != nil {
		if err := utils.ValidateStock(*req.Stock); err != nil {
			utils.BadRequest(c, err.Error(), nil)
			return
		}
		product.Stock = *req.Stock
	}
	if req.CategoryID != 0 {
		var category models.Category
		if err := config.DB.First(&category, req.CategoryID).Error; err != nil {
			utils.NotFound(c, "Category not found")
			return
		}
		product.CategoryID = req.CategoryID
	}
	if req.ImageURL != "" {
		product.ImageURL = req.ImageURL
	}

	if err := config.DB.Save(&product).Error; err != nil {
		utils.LogError("Failed to update product: %v", err)
		utils.InternalServerError(c, "Failed to update product", err.Error())
		return
	}

	resp, err := productResponse(config.DB, &product, time.Now())
	if err != nil {
		utils.InternalServerError(c, "Failed to build product view", err.Error())
		return
	}
	utils.Success(c, "Product updated successfully", gin.H{"product": resp})
}

// DeleteProduct removes a product the calling user owns. Any attached
// discount is torn down first so no discount row is left orphaned.
// DELETE /user/products/:id
func DeleteProduct(c *gin.Context) {
	utils.LogInfo("DeleteProduct called")

	user, ok := currentUser(c)
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if appErr := assertProductOwner(config.DB, productID, user.Email); appErr != nil {
		utils.AppErrorResponse(c, appErr)
		return
	}

	var product models.Product
	if err := config.DB.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Product not found")
			return
		}
		utils.InternalServerError(c, "Failed to load product", err.Error())
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start transaction: %v", tx.Error)
		utils.InternalServerError(c, "Failed to process deletion", nil)
		return
	}

	if err := tx.Where("product_id = ?", productID).Delete(&models.ProductDiscount{}).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to delete product discount: %v", err)
		utils.InternalServerError(c, "Failed to delete product discount", nil)
		return
	}
	if err := tx.Where("product_id = ?", productID).Delete(&models.ProductImage{}).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to delete product images: %v", err)
		utils.InternalServerError(c, "Failed to delete product images", nil)
		return
	}
	if err := tx.Delete(&product).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to delete product: %v", err)
		utils.InternalServerError(c, "Failed to delete product", nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit transaction: %v", err)
		utils.InternalServerError(c, "Failed to complete deletion", nil)
		return
	}

	utils.LogInfo("Product %d deleted by user %d", productID, user.ID)
	utils.Success(c, "Product deleted successfully", nil)
}
