package controllers

import (
	"strings"

	"github.com/Govind-619/MarketSphere/config"
	"github.com/Govind-619/MarketSphere/models"
	"github.com/Govind-619/MarketSphere/utils"
	"github.com/gin-gonic/gin"
)

// CategoryRequest is the wire payload for category create/update calls
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreateCategory creates a new category
// POST /admin/categories
func CreateCategory(c *gin.Context) {
	utils.LogInfo("CreateCategory called")

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request data: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	name := strings.TrimSpace(utils.SanitizeString(req.Name))
	if err := utils.ValidateStringLength(name, 2, 100); err != nil {
		utils.BadRequest(c, "Invalid category name", err.Error())
		return
	}

	var existing models.Category
	if err := config.DB.Where("LOWER(name) = LOWER(?)", name).First(&existing).Error; err == nil {
		utils.BadRequest(c, "Category already exists", nil)
		return
	}

	category := models.Category{
		Name:        name,
		Description: utils.SanitizeString(req.Description),
	}
	if err := config.DB.Create(&category).Error; err != nil {
		utils.LogError("Failed to create category: %v", err)
		utils.InternalServerError(c, "Failed to create category", err.Error())
		return
	}

	utils.LogInfo("Category %d created", category.ID)
	utils.Created(c, "Category created successfully", gin.H{"category": category})
}

// ListCategories returns all non-blocked categories
// GET /categories
func ListCategories(c *gin.Context) {
	var categories []models.Category
	if err := config.DB.Where("blocked = ?", false).Order("name ASC").Find(&categories).Error; err != nil {
		utils.LogError("Failed to fetch categories: %v", err)
		utils.InternalServerError(c, "Failed to fetch categories", err.Error())
		return
	}

	utils.Success(c, "Categories retrieved successfully", gin.H{"categories": categories})
}

// UpdateCategory updates a category
// PUT /admin/categories/:id
func UpdateCategory(c *gin.Context) {
	utils.LogInfo("UpdateCategory called")

	categoryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var category models.Category
	if err := config.DB.First(&category, categoryID).Error; err != nil {
		utils.NotFound(c, "Category not found")
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	if req.Name != "" {
		category.Name = strings.TrimSpace(utils.SanitizeString(req.Name))
	}
	if req.Description != "" {
		category.Description = utils.SanitizeString(req.Description)
	}

	if err := config.DB.Save(&category).Error; err != nil {
		utils.LogError("Failed to update category: %v", err)
		utils.InternalServerError(c, "Failed to update category", err.Error())
		return
	}

	utils.Success(c, "Category updated successfully", gin.H{"category": category})
}

// DeleteCategory soft-deletes a category with no products
// DELETE /admin/categories/:id
func DeleteCategory(c *gin.Context) {
	utils.LogInfo("DeleteCategory called")

	categoryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var category models.Category
	if err := config.DB.First(&category, categoryID).Error; err != nil {
		utils.NotFound(c, "Category not found")
		return
	}

	var productCount int64
	if err := config.DB.Model(&models.Product{}).Where("category_id = ?", categoryID).Count(&productCount).Error; err != nil {
		utils.InternalServerError(c, "Failed to check category usage", err.Error())
		return
	}
	if productCount > 0 {
		utils.BadRequest(c, "Cannot delete category with products", nil)
		return
	}

	if err := config.DB.Delete(&category).Error; err != nil {
		utils.LogError("Failed to delete category: %v", err)
		utils.InternalServerError(c, "Failed to delete category", err.Error())
		return
	}

	utils.Success(c, "Category deleted successfully", nil)
}
