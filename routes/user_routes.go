package routes

import (
	"github.com/Govind-619/MarketSphere/controllers"
	"github.com/Govind-619/MarketSphere/middleware"
	"github.com/gin-gonic/gin"
)

// initUserRoutes initializes public and user routes
func initUserRoutes(router *gin.RouterGroup) {
	// Public routes (no authentication required)
	router.POST("/register", controllers.RegisterUser)
	router.POST("/login", controllers.LoginUser)

	// Catalog routes
	router.GET("/products", controllers.GetProducts)
	router.GET("/products/:id", controllers.GetProductDetails)
	router.GET("/products/:id/discount", controllers.GetDiscountForProduct)
	router.GET("/discounts/:id", controllers.GetDiscount)
	router.GET("/categories", controllers.ListCategories)

	// Protected routes (require authentication)
	protected := router.Group("/user")
	protected.Use(middleware.AuthMiddleware())
	{
		// Product management (seller-owned)
		protected.POST("/products", controllers.CreateProduct)
		protected.PUT("/products/:id", controllers.UpdateProduct)
		protected.DELETE("/products/:id", controllers.DeleteProduct)

		// Discount lifecycle (seller-owned)
		protected.POST("/products/:id/discount", controllers.CreateProductDiscount)
		protected.PUT("/discounts/:id", controllers.UpdateProductDiscount)
		protected.PATCH("/discounts/:id/activate", controllers.ActivateProductDiscount)
		protected.PATCH("/discounts/:id/deactivate", controllers.DeactivateProductDiscount)
		protected.DELETE("/discounts/:id", controllers.DeleteProductDiscount)

		// Orders
		protected.POST("/orders", controllers.CreateOrder)
		protected.GET("/orders", controllers.GetOrders)
		protected.GET("/orders/:id", controllers.GetOrderDetails)
		protected.GET("/orders/:id/invoice", controllers.DownloadInvoice)

		// Payments
		protected.POST("/payment/initiate", controllers.InitiateRazorpayPayment)
		protected.POST("/payment/verify", controllers.VerifyRazorpayPayment)
	}
}
