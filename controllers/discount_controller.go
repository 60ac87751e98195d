package controllers

import (
	"strconv"
	"time"

	"github.com/Govind-619/MarketSphere/config"
	"github.com/Govind-619/MarketSphere/models"
	"github.com/Govind-619/MarketSphere/utils"
	"github.com/gin-gonic/gin"
)

func discountResponse(d *models.ProductDiscount, now time.Time) gin.H {
	return gin.H{
		"id":            d.ID,
		"product_id":    d.ProductID,
		"percentage":    d.Percentage,
		"start_date":    d.StartDate.Format(time.RFC3339),
		"end_date":      d.EndDate.Format(time.RFC3339),
		"active":        d.Active,
		"is_applicable": utils.IsDiscountApplicable(d, now),
	}
}

func currentUser(c *gin.Context) (models.User, bool) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return models.User{}, false
	}
	user, ok := userVal.(models.User)
	if !ok {
		utils.InternalServerError(c, "Invalid user type in context", nil)
		return models.User{}, false
	}
	return user, true
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid ID", nil)
		return 0, false
	}
	return uint(id), true
}

// CreateProductDiscount creates the discount for a product, or updates the
// existing one in place when the product already carries a discount.
// POST /user/products/:id/discount
func CreateProductDiscount(c *gin.Context) {
	utils.LogInfo("CreateProductDiscount called")

	user, ok := currentUser(c)
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request data: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	if appErr := assertProductOwner(config.DB, productID, user.Email); appErr != nil {
		utils.AppErrorResponse(c, appErr)
		return
	}

	now := time.Now()
	in, appErr := parseDiscountRequest(req, now)
	if appErr != nil {
		utils.LogError("Invalid discount payload for product %d: %s", productID, appErr.Message)
		utils.AppErrorResponse(c, appErr)
		return
	}

	if exists, err := discountExistsForProduct(config.DB, productID); err == nil && exists {
		utils.LogInfo("Product %d already has a discount, applying update semantics", productID)
	}

	discount, appErr := upsertDiscountForProduct(config.DB, productID, in)
	if appErr != nil {
		utils.LogError("Failed to save discount for product %d: %v", productID, appErr)
		utils.AppErrorResponse(c, appErr)
		return
	}

	utils.LogInfo("Discount %d saved for product %d", discount.ID, productID)
	utils.Created(c, "Discount saved successfully", gin.H{
		"discount": discountResponse(discount, now),
	})
}

// UpdateProductDiscount overwrites a discount's fields, re-linking it to a
// different product when the payload asks for one.
// PUT /user/discounts/:id
func UpdateProductDiscount(c *gin.Context) {
	utils.LogInfo("UpdateProductDiscount called")

	user, ok := currentUser(c)
	if !ok {
		return
	}
	discountID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request data: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	if _, appErr := assertDiscountOwner(config.DB, discountID, user.Email); appErr != nil {
		utils.AppErrorResponse(c, appErr)
		return
	}

	now := time.Now()
	in, appErr := parseDiscountRequest(req, now)
	if appErr != nil {
		utils.AppErrorResponse(c, appErr)
		return
	}

	// Re-linking moves the discount to another product the caller owns.
	if in.ProductID != 0 {
		if appErr := assertProductOwner(config.DB, in.ProductID, user.Email); appErr != nil {
			utils.AppErrorResponse(c, appErr)
			return
		}
	}

	discount, appErr := updateDiscount(config.DB, discountID, in)
	if appErr != nil {
		utils.LogError("Failed to update discount %d: %v", discountID, appErr)
		utils.AppErrorResponse(c, appErr)
		return
	}

	utils.LogInfo("Discount %d updated", discountID)
	utils.Success(c, "Discount updated successfully", gin.H{
		"discount": discountResponse(discount, now),
	})
}

// GetDiscount returns a discount by its own id
// GET /discounts/:id
func GetDiscount(c *gin.Context) {
	discountID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	discount, appErr := loadDiscount(config.DB, discountID)
	if appErr != nil {
		utils.AppErrorResponse(c, appErr)
		return
	}

	utils.Success(c, "Discount retrieved successfully", gin.H{
		"discount": discountResponse(discount, time.Now()),
	})
}

// GetDiscountForProduct returns the discount attached to a product
// GET /products/:id/discount
func GetDiscountForProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	discount, err := findDiscountByProduct(config.DB, productID)
	if err != nil {
		utils.LogError("Failed to fetch discount for product %d: %v", productID, err)
		utils.InternalServerError(c, "Failed to fetch discount", err.Error())
		return
	}
	if discount == nil {
		utils.NotFound(c, "Product has no discount")
		return
	}

	utils.Success(c, "Discount retrieved successfully", gin.H{
		"discount": discountResponse(discount, time.Now()),
	})
}

// ListProductDiscounts returns all discounts, paginated
// GET /admin/discounts
func ListProductDiscounts(c *gin.Context) {
	utils.LogInfo("ListProductDiscounts called")

	pagination := utils.NewPagination(c)

	var total int64
	if err := config.DB.Model(&models.ProductDiscount{}).Count(&total).Error; err != nil {
		utils.LogError("Failed to count discounts: %v", err)
		utils.InternalServerError(c, "Failed to fetch discounts", err.Error())
		return
	}
	pagination.SetTotal(total)

	var discounts []models.ProductDiscount
	if err := config.DB.Order("created_at DESC").
		Limit(pagination.Limit).Offset(pagination.Offset).
		Find(&discounts).Error; err != nil {
		utils.LogError("Failed to fetch discounts: %v", err)
		utils.InternalServerError(c, "Failed to fetch discounts", err.Error())
		return
	}

	now := time.Now()
	formatted := make([]gin.H, 0, len(discounts))
	for i := range discounts {
		formatted = append(formatted, discountResponse(&discounts[i], now))
	}

	utils.SendPaginatedResponse(c, formatted, pagination)
}

// ActivateProductDiscount turns a discount on without touching its window
// PATCH /user/discounts/:id/activate
func ActivateProductDiscount(c *gin.Context) {
	toggleDiscountActive(c, true)
}

// DeactivateProductDiscount turns a discount off without touching its window
// PATCH /user/discounts/:id/deactivate
func DeactivateProductDiscount(c *gin.Context) {
	toggleDiscountActive(c, false)
}

func toggleDiscountActive(c *gin.Context, active bool) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	discountID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, appErr := assertDiscountOwner(config.DB, discountID, user.Email); appErr != nil {
		utils.AppErrorResponse(c, appErr)
		return
	}

	discount, appErr := setDiscountActive(config.DB, discountID, active)
	if appErr != nil {
		utils.AppErrorResponse(c, appErr)
		return
	}

	message := "Discount deactivated successfully"
	if active {
		message = "Discount activated successfully"
	}
	utils.LogInfo("Discount %d active flag set to %v", discountID, active)
	utils.Success(c, message, gin.H{
		"discount": discountResponse(discount, time.Now()),
	})
}

// DeleteProductDiscount removes a discount and clears the product link
// DELETE /user/discounts/:id
func DeleteProductDiscount(c *gin.Context) {
	utils.LogInfo("DeleteProductDiscount called")

	user, ok := currentUser(c)
	if !ok {
		return
	}
	discountID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, appErr := assertDiscountOwner(config.DB, discountID, user.Email); appErr != nil {
		utils.AppErrorResponse(c, appErr)
		return
	}

	if appErr := deleteDiscount(config.DB, discountID); appErr != nil {
		utils.LogError("Failed to delete discount %d: %v", discountID, appErr)
		utils.AppErrorResponse(c, appErr)
		return
	}

	utils.Success(c, "Discount deleted successfully", nil)
}
