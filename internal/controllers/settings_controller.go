package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/logsage/backend/internal/logger"
	"github.com/logsage/backend/internal/models"
	"github.com/logsage/backend/internal/services"
	"gorm.io/gorm"
)

type SettingsController struct {
	db      *gorm.DB
	service *services.AnalysisService
}

func NewSettingsController(db *gorm.DB, service *services.AnalysisService) *SettingsController {
	return &SettingsController{db: db, service: service}
}

type UpdateSettingsRequest struct {
	DefaultSanitize *bool           `json:"defaultSanitize"`
	DefaultLogType  *models.LogType `json:"defaultLogType"`
	DefaultDepth    *models.Depth   `json:"defaultDepth"`
}

// GetSettings returns the caller's analysis preferences and current usage.
func (sc *SettingsController) GetSettings(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var user models.User
	if err := sc.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	usage, err := sc.service.GetDailyUsage(user.ID)
	if err != nil {
		logger.WithError(err, "settings_controller").Error("Failed to read daily usage")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"defaultSanitize": user.DefaultSanitize,
		"defaultLogType":  user.DefaultLogType,
		"defaultDepth":    user.DefaultDepth,
		"usage":           usage,
	})
}

// UpdateSettings updates whichever preferences the request carries. Enum
// values outside the closed sets are rejected.
func (sc *SettingsController) UpdateSettings(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.DefaultLogType != nil && !req.DefaultLogType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "defaultLogType must be JAVA or SPRING"})
		return
	}
	if req.DefaultDepth != nil && !req.DefaultDepth.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "defaultDepth must be FAST or DEEP"})
		return
	}

	var user models.User
	if err := sc.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if req.DefaultSanitize != nil {
		user.DefaultSanitize = *req.DefaultSanitize
	}
	if req.DefaultLogType != nil {
		user.DefaultLogType = *req.DefaultLogType
	}
	if req.DefaultDepth != nil {
		user.DefaultDepth = *req.DefaultDepth
	}

	if err := sc.db.Save(&user).Error; err != nil {
		logger.WithError(err, "settings_controller").Error("Failed to update settings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Settings updated successfully",
		"defaultSanitize": user.DefaultSanitize,
		"defaultLogType":  user.DefaultLogType,
		"defaultDepth":    user.DefaultDepth,
	})
}
