package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"templekovan-backend/config"
	"templekovan-backend/models"
	"templekovan-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var validRoles = map[string]bool{
	models.RoleUser:       true,
	models.RolePosUser:    true,
	models.RoleApprover:   true,
	models.RoleAdmin:      true,
	models.RoleSuperAdmin: true,
}

// GetUsers lists users for the admin panel, with optional search on email,
// phone or devotee name.
func GetUsers(c *gin.Context) {
	search := c.Query("search")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	query := config.DB.Model(&models.User{}).Preload("PersonalInfo")
	if search != "" {
		like := "%" + utils.EscapeLike(search) + "%"
		query = query.
			Joins("LEFT JOIN personal_infos ON personal_infos.user_id = users.id AND personal_infos.deleted_at IS NULL").
			Where("users.email ILIKE ? OR users.phone ILIKE ? OR personal_infos.first_name ILIKE ? OR personal_infos.last_name ILIKE ?",
				like, like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count users")
		return
	}

	var users []models.User
	if err := query.Limit(limit).Offset(offset).Order("created_at DESC").Find(&users).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve users")
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users, "total": total})
}

// UpdateUserRoles replaces a user's role set
func UpdateUserRoles(c *gin.Context) {
	targetUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	var input struct {
		Roles []string `json:"role" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	for _, r := range input.Roles {
		if !validRoles[r] {
			utils.RespondWithError(c, http.StatusBadRequest, "Unknown role: "+r)
			return
		}
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", targetUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "User not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := config.DB.Model(&user).Update("roles", models.StringArray(input.Roles)).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update roles")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Roles updated successfully", "role": input.Roles})
}

// AssignUniqueID hand-assigns the sequential devotee number to a user's
// profile. The number must be unique across devotees.
func AssignUniqueID(c *gin.Context) {
	targetUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	var input struct {
		UniqueID int `json:"uniqueId" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var info models.PersonalInfo
	if err := config.DB.Where("user_id = ?", targetUUID).First(&info).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Profile not completed for this user")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var taken models.PersonalInfo
	if err := config.DB.Where("unique_id = ? AND user_id <> ?", input.UniqueID, targetUUID).
		First(&taken).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Devotee number already assigned")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	if err := config.DB.Model(&info).Update("unique_id", input.UniqueID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to assign devotee number")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Devotee number assigned", "uniqueId": input.UniqueID})
}

// DeactivateUser disables a user account without removing its records
func DeactivateUser(c *gin.Context) {
	targetUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	result := config.DB.Model(&models.User{}).Where("id = ?", targetUUID).Update("is_active", false)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to deactivate user")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deactivated successfully"})
}

// GetProfileHistory returns the append-only audit trail for a user's profile
func GetProfileHistory(c *gin.Context) {
	targetUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	var history []models.PersonalInfoHistory
	if err := config.DB.Where("user_id = ?", targetUUID).
		Order("created_at DESC").
		Find(&history).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve profile history")
		return
	}

	c.JSON(http.StatusOK, history)
}
