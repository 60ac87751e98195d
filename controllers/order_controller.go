package controllers

import (
	"fmt"
	"time"

	"github.com/Govind-619/MarketSphere/config"
	"github.com/Govind-619/MarketSphere/models"
	"github.com/Govind-619/MarketSphere/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrderRequest is the wire payload for order creation
type OrderRequest struct {
	Items []struct {
		ProductID uint `json:"product_id" binding:"required"`
		Quantity  int  `json:"quantity" binding:"required"`
	} `json:"items" binding:"required"`
	PaymentMethod string `json:"payment_method"`
}

func orderResponse(o *models.Order) gin.H {
	items := make([]gin.H, 0, len(o.OrderItems))
	for _, item := range o.OrderItems {
		items = append(items, gin.H{
			"product_id": item.ProductID,
			"name":       item.Product.Name,
			"quantity":   item.Quantity,
			"price":      item.Price,
			"discount":   item.Discount,
			"total":      item.Total,
		})
	}
	return gin.H{
		"id":             o.ID,
		"reference":      o.Reference,
		"subtotal":       o.Subtotal,
		"discount":       o.Discount,
		"final_total":    o.FinalTotal,
		"payment_method": o.PaymentMethod,
		"status":         o.Status,
		"created_at":     o.CreatedAt.Format(time.RFC3339),
		"items":          items,
	}
}

// CreateOrder places an order. Unit prices go through the same price
// computation as the product read paths, so an applicable discount at
// order time is captured onto the order items permanently.
// POST /user/orders
func CreateOrder(c *gin.Context) {
	utils.LogInfo("CreateOrder called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request data: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	if len(req.Items) == 0 {
		utils.BadRequest(c, "Order must contain at least one item", nil)
		return
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			utils.BadRequest(c, "Item quantity must be positive", nil)
			return
		}
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "COD"
	}

	now := time.Now()
	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start transaction: %v", tx.Error)
		utils.InternalServerError(c, "Failed to place order", nil)
		return
	}

	order := models.Order{
		Reference:     uuid.New().String(),
		UserID:        user.ID,
		PaymentMethod: paymentMethod,
		Status:        models.OrderStatusPlaced,
	}

	for _, item := range req.Items {
		var product models.Product
		if err := tx.First(&product, item.ProductID).Error; err != nil {
			tx.Rollback()
			utils.LogError("Product %d not found: %v", item.ProductID, err)
			utils.NotFound(c, fmt.Sprintf("Product %d not found", item.ProductID))
			return
		}
		if product.Stock < item.Quantity {
			tx.Rollback()
			utils.BadRequest(c, fmt.Sprintf("Insufficient stock for product %d", product.ID), nil)
			return
		}

		discount, err := findDiscountByProduct(tx, product.ID)
		if err != nil {
			tx.Rollback()
			utils.InternalServerError(c, "Failed to resolve product pricing", err.Error())
			return
		}
		pricing := utils.BuildPriceBreakdown(product.Price, discount, now)

		lineDiscount := utils.RoundMoney(pricing.DiscountAmount * float64(item.Quantity))
		lineTotal := utils.RoundMoney(pricing.FinalPrice * float64(item.Quantity))

		order.OrderItems = append(order.OrderItems, models.OrderItem{
			ProductID: product.ID,
			Quantity:  item.Quantity,
			Price:     product.Price,
			Discount:  lineDiscount,
			Total:     lineTotal,
		})
		order.Subtotal = utils.RoundMoney(order.Subtotal + product.Price*float64(item.Quantity))
		order.Discount = utils.RoundMoney(order.Discount + lineDiscount)

		product.Stock -= item.Quantity
		if err := tx.Save(&product).Error; err != nil {
			tx.Rollback()
			utils.InternalServerError(c, "Failed to update stock", err.Error())
			return
		}
	}
	order.FinalTotal = utils.RoundMoney(order.Subtotal - order.Discount)

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to create order: %v", err)
		utils.InternalServerError(c, "Failed to place order", err.Error())
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit order: %v", err)
		utils.InternalServerError(c, "Failed to place order", err.Error())
		return
	}

	if err := utils.SendOrderConfirmation(user.Email, order.Reference, order.FinalTotal); err != nil {
		utils.LogError("Failed to send order confirmation for order %d: %v", order.ID, err)
	}

	if err := config.DB.Preload("OrderItems.Product").First(&order, order.ID).Error; err != nil {
		utils.LogError("Failed to reload order %d: %v", order.ID, err)
	}

	utils.LogInfo("Order %d placed by user %d, total %.2f", order.ID, user.ID, order.FinalTotal)
	utils.Created(c, "Order placed successfully", gin.H{"order": orderResponse(&order)})
}

// GetOrders lists the calling user's orders
// GET /user/orders
func GetOrders(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	pagination := utils.NewPagination(c)

	var total int64
	if err := config.DB.Model(&models.Order{}).Where("user_id = ?", user.ID).Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch orders", err.Error())
		return
	}
	pagination.SetTotal(total)

	var orders []models.Order
	if err := config.DB.Where("user_id = ?", user.ID).
		Preload("OrderItems.Product").
		Order("created_at DESC").
		Limit(pagination.Limit).Offset(pagination.Offset).
		Find(&orders).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch orders", err.Error())
		return
	}

	formatted := make([]gin.H, 0, len(orders))
	for i := range orders {
		formatted = append(formatted, orderResponse(&orders[i]))
	}

	utils.SendPaginatedResponse(c, formatted, pagination)
}

// GetOrderDetails returns a single order owned by the calling user
// GET /user/orders/:id
func GetOrderDetails(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var order models.Order
	if err := config.DB.Preload("OrderItems.Product").
		Where("id = ? AND user_id = ?", orderID, user.ID).
		First(&order).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	utils.Success(c, "Order retrieved successfully", gin.H{"order": orderResponse(&order)})
}
