package routes

import (
	"github.com/Govind-619/MarketSphere/controllers"
	"github.com/Govind-619/MarketSphere/middleware"
	"github.com/gin-gonic/gin"
)

// initAdminRoutes initializes all admin-related routes
func initAdminRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		// User management
		admin.GET("/users", controllers.GetUsers)
		admin.PATCH("/users/:id/block", controllers.BlockUser)
		admin.PATCH("/users/:id/unblock", controllers.UnblockUser)

		// Category management
		admin.POST("/categories", controllers.CreateCategory)
		admin.PUT("/categories/:id", controllers.UpdateCategory)
		admin.DELETE("/categories/:id", controllers.DeleteCategory)

		// Discount overview
		admin.GET("/discounts", controllers.ListProductDiscounts)

		// Reporting
		admin.GET("/sales-report/excel", controllers.DownloadSalesReportExcel)
	}
}
