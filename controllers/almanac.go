package controllers

import (
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

// UpsertNallaNeramInput defines the expected JSON structure
type UpsertNallaNeramInput struct {
	Date        string `json:"date" binding:"required"` // "2006-01-02"
	StartTime   string `json:"startTime" binding:"required"`
	EndTime     string `json:"endTime" binding:"required"`
	Description string `json:"description"`
}

// GetNallaNeram returns the auspicious window for a date (defaults to today)
func GetNallaNeram(c *gin.Context) {
	day := time.Now()
	if q := c.Query("date"); q != "" {
		parsed, err := time.ParseInLocation("2006-01-02", q, time.Local)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date")
			return
		}
		day = parsed
	}

	var entry models.NallaNeram
	if err := config.DB.Where("date = ?", utils.BeginningOfDay(day)).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "No almanac entry for this date")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, entry)
}

// UpsertNallaNeram creates or replaces the window for a date
func UpsertNallaNeram(c *gin.Context) {
	var input UpsertNallaNeramInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	day, err := time.ParseInLocation("2006-01-02", input.Date, time.Local)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date")
		return
	}

	var entry models.NallaNeram
	err = config.DB.Where("date = ?", utils.BeginningOfDay(day)).First(&entry).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		entry = models.NallaNeram{Date: utils.BeginningOfDay(day)}
	}
	entry.StartTime = input.StartTime
	entry.EndTime = input.EndTime
	entry.Description = input.Description

	if err := config.DB.Save(&entry).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save almanac entry")
		return
	}

	c.JSON(http.StatusOK, entry)
}

// DeleteNallaNeram removes an almanac entry
func DeleteNallaNeram(c *gin.Context) {
	entryUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid entry ID format")
		return
	}

	result := config.DB.Delete(&models.NallaNeram{}, "id = ?", entryUUID)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete almanac entry")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Almanac entry not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Almanac entry deleted successfully"})
}
