package controllers

import (
	"errors"
	"net/http"
	"strings"
	"templekovan-backend/config"
	"templekovan-backend/models"
	"templekovan-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UpdateServiceLimitInput defines the expected JSON structure
type UpdateServiceLimitInput struct {
	ServiceType string `json:"serviceType" binding:"required"`
	DailyLimit  *int   `json:"dailyLimit" binding:"omitempty,min=0"`
	MaxPrice    *int   `json:"maxPrice" binding:"omitempty,min=0"`
}

// GetServiceLimits lists the per-type capacity and price caps
func GetServiceLimits(c *gin.Context) {
	var limits []models.ServiceLimit
	if err := config.DB.Order("service_type ASC").Find(&limits).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve limits")
		return
	}

	c.JSON(http.StatusOK, limits)
}

// UpsertServiceLimit creates or updates the singleton row for a ritual type
func UpsertServiceLimit(c *gin.Context) {
	var input UpdateServiceLimitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	serviceType := strings.ToLower(strings.TrimSpace(input.ServiceType))
	if serviceType == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Service type is required")
		return
	}

	var limit models.ServiceLimit
	err := config.DB.Where("service_type = ?", serviceType).First(&limit).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		limit = models.ServiceLimit{ServiceType: serviceType}
	}
	if input.DailyLimit != nil {
		limit.DailyLimit = *input.DailyLimit
	}
	if input.MaxPrice != nil {
		limit.MaxPrice = *input.MaxPrice
	}

	if err := config.DB.Save(&limit).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save limit")
		return
	}

	c.JSON(http.StatusOK, limit)
}
