package controllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"os"

	"github.com/Govind-619/MarketSphere/config"
	"github.com/Govind-619/MarketSphere/models"
	"github.com/Govind-619/MarketSphere/utils"
	"github.com/gin-gonic/gin"
	razorpay "github.com/razorpay/razorpay-go"
)

// amountInPaise converts a rupee amount to the smallest currency unit.
// Rounds rather than truncates: totals like 19.99 sit just below an
// integer paise count in floating point and would otherwise come out one
// paisa short.
func amountInPaise(amount float64) int {
	return int(math.Round(amount * 100))
}

// InitiateRazorpayPayment creates a Razorpay order for an unpaid order
// POST /user/payment/initiate
func InitiateRazorpayPayment(c *gin.Context) {
	utils.LogInfo("InitiateRazorpayPayment called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		OrderID uint `json:"order_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request: %v", err)
		utils.BadRequest(c, "Invalid request. order_id is required", err.Error())
		return
	}

	var order models.Order
	if err := config.DB.Where("id = ? AND user_id = ?", req.OrderID, user.ID).First(&order).Error; err != nil {
		utils.LogError("Order not found for ID: %d, user ID: %d", req.OrderID, user.ID)
		utils.NotFound(c, "Order not found")
		return
	}

	if order.Status != models.OrderStatusPlaced {
		utils.BadRequest(c, "Payment for this order has already been completed", nil)
		return
	}
	if order.RazorpayOrderID != "" {
		utils.BadRequest(c, "A payment is already in progress for this order", nil)
		return
	}

	// Razorpay expects the amount in the smallest currency unit.
	amountPaise := amountInPaise(order.FinalTotal)

	client := razorpay.NewClient(os.Getenv("RAZORPAY_KEY"), os.Getenv("RAZORPAY_SECRET"))
	orderData := map[string]interface{}{
		"amount":          amountPaise,
		"currency":        "INR",
		"receipt":         "order_rcptid_" + order.Reference,
		"payment_capture": 1,
	}
	rzOrder, err := client.Order.Create(orderData, nil)
	if err != nil {
		utils.LogError("Failed to create Razorpay order for order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to create Razorpay order", err.Error())
		return
	}

	if err := config.DB.Model(&order).Updates(map[string]interface{}{
		"payment_method":    "RAZORPAY",
		"razorpay_order_id": fmt.Sprintf("%v", rzOrder["id"]),
	}).Error; err != nil {
		utils.LogError("Failed to update order with Razorpay details: %v", err)
		utils.InternalServerError(c, "Failed to update order details", err.Error())
		return
	}

	utils.LogInfo("Razorpay order created for order %d", order.ID)
	utils.Success(c, "Payment initiated successfully", gin.H{
		"order": gin.H{
			"id":                order.ID,
			"reference":         order.Reference,
			"razorpay_order_id": rzOrder["id"],
			"amount":            fmt.Sprintf("%.2f", order.FinalTotal),
		},
		"key": os.Getenv("RAZORPAY_KEY"),
		"user": gin.H{
			"name":  user.Username,
			"email": user.Email,
		},
	})
}

// VerifyRazorpayPayment verifies the payment signature and marks the order paid
// POST /user/payment/verify
func VerifyRazorpayPayment(c *gin.Context) {
	utils.LogInfo("VerifyRazorpayPayment called")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
		RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
		RazorpaySignature string `json:"razorpay_signature" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var order models.Order
	if err := config.DB.Where("razorpay_order_id = ? AND user_id = ?", req.RazorpayOrderID, user.ID).First(&order).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	mac := hmac.New(sha256.New, []byte(os.Getenv("RAZORPAY_SECRET")))
	mac.Write([]byte(req.RazorpayOrderID + "|" + req.RazorpayPaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(req.RazorpaySignature)) {
		utils.LogError("Payment signature mismatch for order %d", order.ID)
		utils.BadRequest(c, "Invalid payment signature", nil)
		return
	}

	if err := config.DB.Model(&order).Update("status", models.OrderStatusPaid).Error; err != nil {
		utils.InternalServerError(c, "Failed to update order status", err.Error())
		return
	}

	utils.LogInfo("Payment verified for order %d", order.ID)
	utils.Success(c, "Payment verified successfully", gin.H{
		"order": gin.H{
			"id":     order.ID,
			"status": models.OrderStatusPaid,
		},
	})
}
