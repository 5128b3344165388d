// controllers/catalog.go
package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"templekovan-backend/config"
	"templekovan-backend/models"
	"templekovan-backend/utils"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const activeCatalogCacheKey = "catalog:active"
const activeCatalogCacheTTL = 5 * time.Minute

// CreateCatalogEntryInput defines the expected JSON structure for creating a catalog entry
type CreateCatalogEntryInput struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description"`
	Image       string     `json:"image"`
	IsSeva      *bool      `json:"isSeva"`
	MinAmount   int        `json:"minAmount" binding:"min=0"`
	MaxCount    int        `json:"maxCount" binding:"min=0"`
	TargetDate  *time.Time `json:"targetDate"`
	TargetPrice int        `json:"targetPrice" binding:"min=0"`
}

// UpdateCatalogEntryInput defines the expected JSON structure for updating a catalog entry
type UpdateCatalogEntryInput struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Image       *string    `json:"image"`
	IsSeva      *bool      `json:"isSeva"`
	MinAmount   *int       `json:"minAmount"`
	MaxCount    *int       `json:"maxCount"`
	TargetDate  *time.Time `json:"targetDate"`
	TargetPrice *int       `json:"targetPrice"`
	IsActive    *bool      `json:"isActive"`
}

// GetActiveCatalog lists active sevas and special events for the public
// booking page. Served from cache when possible.
func GetActiveCatalog(c *gin.Context) {
	if cached := config.CacheGet(c.Request.Context(), activeCatalogCacheKey); cached != nil {
		c.Data(http.StatusOK, "application/json", cached)
		return
	}

	var entries []models.ServiceAdd
	if err := config.DB.Where("is_active = ?", true).Order("name ASC").Find(&entries).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	if payload, err := json.Marshal(entries); err == nil {
		config.CacheSet(c.Request.Context(), activeCatalogCacheKey, payload, activeCatalogCacheTTL)
	}

	c.JSON(http.StatusOK, entries)
}

// GetCatalog lists every catalog entry, active or not, for the admin panel
func GetCatalog(c *gin.Context) {
	var entries []models.ServiceAdd
	if err := config.DB.Order("name ASC").Find(&entries).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	c.JSON(http.StatusOK, entries)
}

// CreateCatalogEntry creates a new seva/special event definition
func CreateCatalogEntry(c *gin.Context) {
	var input CreateCatalogEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var existing models.ServiceAdd
	if err := config.DB.Where("name = ?", input.Name).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "A service with this name already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	entry := models.ServiceAdd{
		Name:        input.Name,
		Description: input.Description,
		Image:       input.Image,
		IsSeva:      true,
		MinAmount:   input.MinAmount,
		MaxCount:    input.MaxCount,
		TargetDate:  input.TargetDate,
		TargetPrice: input.TargetPrice,
		IsActive:    true,
	}
	if input.IsSeva != nil {
		entry.IsSeva = *input.IsSeva
	}

	if err := config.DB.Create(&entry).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create service")
		return
	}

	config.CacheDelete(c.Request.Context(), activeCatalogCacheKey)

	c.JSON(http.StatusCreated, entry)
}

// UpdateCatalogEntry updates an existing catalog entry
func UpdateCatalogEntry(c *gin.Context) {
	entryUUID, err := uuid.Parse(c.Query("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	var input UpdateCatalogEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var entry models.ServiceAdd
	if err := config.DB.First(&entry, "id = ?", entryUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		entry.Name = *input.Name
	}
	if input.Description != nil {
		entry.Description = *input.Description
	}
	if input.Image != nil {
		entry.Image = *input.Image
	}
	if input.IsSeva != nil {
		entry.IsSeva = *input.IsSeva
	}
	if input.MinAmount != nil {
		entry.MinAmount = *input.MinAmount
	}
	if input.MaxCount != nil {
		entry.MaxCount = *input.MaxCount
	}
	if input.TargetDate != nil {
		entry.TargetDate = input.TargetDate
	}
	if input.TargetPrice != nil {
		entry.TargetPrice = *input.TargetPrice
	}
	if input.IsActive != nil {
		entry.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&entry).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update service")
		return
	}

	config.CacheDelete(c.Request.Context(), activeCatalogCacheKey)

	c.JSON(http.StatusOK, entry)
}

// DeleteCatalogEntry soft deletes a catalog entry. Entries that still have
// bookings referencing them are kept so the booking history stays joinable.
func DeleteCatalogEntry(c *gin.Context) {
	entryUUID, err := uuid.Parse(c.Query("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	var bookingCount int64
	if err := config.DB.Model(&models.Booking{}).
		Where("catalog_id = ?", entryUUID).
		Count(&bookingCount).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if bookingCount > 0 {
		utils.RespondWithError(c, http.StatusConflict, "Service has existing bookings; deactivate it instead")
		return
	}

	result := config.DB.Delete(&models.ServiceAdd{}, "id = ?", entryUUID)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete service")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}

	config.CacheDelete(c.Request.Context(), activeCatalogCacheKey)

	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}
