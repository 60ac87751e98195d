package controllers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"

	"github.com/Govind-619/MarketSphere/config"
	"github.com/Govind-619/MarketSphere/models"
	"github.com/Govind-619/MarketSphere/utils"
)

// DownloadSalesReportExcel generates an Excel sales report
// GET /admin/sales-report/excel?period=day|week|month
func DownloadSalesReportExcel(c *gin.Context) {
	utils.LogInfo("DownloadSalesReportExcel called")

	period := c.DefaultQuery("period", "day")
	now := time.Now()
	var startDate, endDate time.Time

	switch period {
	case "day":
		startDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		endDate = time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999999, now.Location())
	case "week":
		endDate = time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999999, now.Location())
		startDate = endDate.AddDate(0, 0, -6)
		startDate = time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, startDate.Location())
	case "month":
		startDate = now.AddDate(0, 0, -30).Truncate(24 * time.Hour)
		endDate = now.Add(24 * time.Hour)
	default:
		utils.LogError("Invalid period specified: %s", period)
		utils.BadRequest(c, "Invalid period", "Period must be day, week, or month")
		return
	}

	var orders []models.Order
	if err := config.DB.Where("created_at >= ? AND created_at <= ?", startDate, endDate).
		Preload("User").
		Preload("OrderItems.Product").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		utils.LogError("Failed to fetch orders: %v", err)
		utils.InternalServerError(c, "Failed to fetch orders", err.Error())
		return
	}
	utils.LogDebug("Retrieved %d orders for Excel report", len(orders))

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Sales Report")
	if err != nil {
		utils.InternalServerError(c, "Failed to create report", err.Error())
		return
	}

	header := sheet.AddRow()
	for _, title := range []string{"Order", "Date", "Customer", "Status", "Subtotal", "Discount", "Total"} {
		cell := header.AddCell()
		cell.Value = title
		style := xlsx.NewStyle()
		font := xlsx.DefaultFont()
		font.Bold = true
		style.Font = *font
		cell.SetStyle(style)
	}

	var totalRevenue, totalDiscount float64
	for _, order := range orders {
		row := sheet.AddRow()
		row.AddCell().Value = order.Reference
		row.AddCell().Value = order.CreatedAt.Format("2006-01-02 15:04")
		row.AddCell().Value = order.User.Email
		row.AddCell().Value = order.Status
		row.AddCell().Value = fmt.Sprintf("%.2f", order.Subtotal)
		row.AddCell().Value = fmt.Sprintf("%.2f", order.Discount)
		row.AddCell().Value = fmt.Sprintf("%.2f", order.FinalTotal)
		totalRevenue += order.FinalTotal
		totalDiscount += order.Discount
	}

	summary := sheet.AddRow()
	summary.AddCell().Value = "TOTAL"
	summary.AddCell()
	summary.AddCell()
	summary.AddCell().Value = fmt.Sprintf("%d orders", len(orders))
	summary.AddCell()
	summary.AddCell().Value = fmt.Sprintf("%.2f", totalDiscount)
	summary.AddCell().Value = fmt.Sprintf("%.2f", totalRevenue)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=sales-report-%s.xlsx", period))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel report: %v", err)
	}
}
