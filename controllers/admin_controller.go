package controllers

import (
	"os"

	"github.com/Govind-619/MarketSphere/config"
	"github.com/Govind-619/MarketSphere/models"
	"github.com/Govind-619/MarketSphere/utils"
	"github.com/gin-gonic/gin"
)

// CreateSampleAdmin seeds an admin account on first boot
func CreateSampleAdmin() error {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@marketsphere.local"
	}

	var existing models.User
	if err := config.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "Admin@1234"
	}
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.User{
		Username: "admin",
		Email:    email,
		Password: hashedPassword,
		IsAdmin:  true,
	}
	return config.DB.Create(&admin).Error
}

// CreateDefaultCategory ensures at least one category exists
func CreateDefaultCategory() error {
	var count int64
	if err := config.DB.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return config.DB.Create(&models.Category{
		Name:        "General",
		Description: "Default category",
	}).Error
}

// GetUsers lists users for the admin panel
// GET /admin/users
func GetUsers(c *gin.Context) {
	utils.LogInfo("GetUsers called")

	pagination := utils.NewPagination(c)

	var total int64
	if err := config.DB.Model(&models.User{}).Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch users", err.Error())
		return
	}
	pagination.SetTotal(total)

	var users []models.User
	if err := config.DB.Order("created_at DESC").
		Limit(pagination.Limit).Offset(pagination.Offset).
		Find(&users).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch users", err.Error())
		return
	}

	formatted := make([]gin.H, 0, len(users))
	for _, user := range users {
		formatted = append(formatted, gin.H{
			"id":         user.ID,
			"username":   user.Username,
			"email":      user.Email,
			"is_blocked": user.IsBlocked,
			"is_admin":   user.IsAdmin,
		})
	}

	utils.SendPaginatedResponse(c, formatted, pagination)
}

// BlockUser blocks a user account
// PATCH /admin/users/:id/block
func BlockUser(c *gin.Context) {
	setUserBlocked(c, true)
}

// UnblockUser unblocks a user account
// PATCH /admin/users/:id/unblock
func UnblockUser(c *gin.Context) {
	setUserBlocked(c, false)
}

func setUserBlocked(c *gin.Context, blocked bool) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	user.IsBlocked = blocked
	if err := config.DB.Save(&user).Error; err != nil {
		utils.LogError("Failed to update user %d: %v", userID, err)
		utils.InternalServerError(c, "Failed to update user", err.Error())
		return
	}

	message := "User unblocked successfully"
	if blocked {
		message = "User blocked successfully"
	}
	utils.LogInfo("User %d blocked=%v", userID, blocked)
	utils.Success(c, message, nil)
}
