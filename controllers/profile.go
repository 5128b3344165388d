package controllers

import (
	"errors"
	"net/http"
	"templekovan-backend/config"
	"templekovan-backend/models"
	"templekovan-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateProfileInput defines the expected JSON structure for profile completion
type CreateProfileInput struct {
	Salutation   string `json:"salutation"`
	FirstName    string `json:"firstName" binding:"required"`
	LastName     string `json:"lastName"`
	AddressLine1 string `json:"addressLine1" binding:"required"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city" binding:"required"`
	State        string `json:"state"`
	Country      string `json:"country"`
	Pincode      string `json:"pincode" binding:"required"`
}

// UpdateProfileInput defines the expected JSON structure for profile updates
type UpdateProfileInput struct {
	Salutation   *string `json:"salutation"`
	FirstName    *string `json:"firstName"`
	LastName     *string `json:"lastName"`
	AddressLine1 *string `json:"addressLine1"`
	AddressLine2 *string `json:"addressLine2"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	Country      *string `json:"country"`
	Pincode      *string `json:"pincode"`
}

func callerUUID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return uuid.Nil, false
	}
	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return uuid.Nil, false
	}
	return userUUID, true
}

// GetProfile returns the caller's personal info
func GetProfile(c *gin.Context) {
	userUUID, ok := callerUUID(c)
	if !ok {
		return
	}

	var info models.PersonalInfo
	if err := config.DB.Where("user_id = ?", userUUID).First(&info).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Profile not completed")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, info)
}

// CreateProfile completes the caller's profile. One PersonalInfo row per user.
func CreateProfile(c *gin.Context) {
	userUUID, ok := callerUUID(c)
	if !ok {
		return
	}

	var input CreateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePincode(input.Pincode) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid pincode")
		return
	}

	var existing models.PersonalInfo
	if err := config.DB.Where("user_id = ?", userUUID).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Profile already completed")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	info := models.PersonalInfo{
		UserID:       userUUID,
		Salutation:   input.Salutation,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		AddressLine1: input.AddressLine1,
		AddressLine2: input.AddressLine2,
		City:         input.City,
		State:        input.State,
		Country:      input.Country,
		Pincode:      input.Pincode,
	}
	if info.Country == "" {
		info.Country = "India"
	}

	if err := config.DB.Create(&info).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create profile")
		return
	}

	c.JSON(http.StatusCreated, info)
}

// UpdateProfile mutates the caller's personal info, snapshotting the previous
// values into the history table within the same transaction.
func UpdateProfile(c *gin.Context) {
	userUUID, ok := callerUUID(c)
	if !ok {
		return
	}

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var info models.PersonalInfo
	if err := config.DB.Where("user_id = ?", userUUID).First(&info).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Profile not completed")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	snapshot := info.Snapshot(userUUID)

	if input.Salutation != nil {
		info.Salutation = *input.Salutation
	}
	if input.FirstName != nil {
		info.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		info.LastName = *input.LastName
	}
	if input.AddressLine1 != nil {
		info.AddressLine1 = *input.AddressLine1
	}
	if input.AddressLine2 != nil {
		info.AddressLine2 = *input.AddressLine2
	}
	if input.City != nil {
		info.City = *input.City
	}
	if input.State != nil {
		info.State = *input.State
	}
	if input.Country != nil {
		info.Country = *input.Country
	}
	if input.Pincode != nil {
		if !utils.ValidatePincode(*input.Pincode) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid pincode")
			return
		}
		info.Pincode = *input.Pincode
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&snapshot).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to record profile history")
		return
	}

	if err := tx.Save(&info).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, info)
}

// GetFamily lists users linked to the caller as family members
func GetFamily(c *gin.Context) {
	userUUID, ok := callerUUID(c)
	if !ok {
		return
	}

	var members []models.User
	if err := config.DB.Preload("PersonalInfo").
		Where("parent_id = ?", userUUID).
		Find(&members).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve family members")
		return
	}

	c.JSON(http.StatusOK, members)
}

// LinkFamilyMember attaches an existing user (looked up by phone) to the
// caller's family.
func LinkFamilyMember(c *gin.Context) {
	userUUID, ok := callerUUID(c)
	if !ok {
		return
	}

	var input struct {
		Phone string `json:"phone" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var member models.User
	if err := config.DB.Where("phone = ?", input.Phone).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "User not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if member.ID == userUUID {
		utils.RespondWithError(c, http.StatusBadRequest, "Cannot link yourself as a family member")
		return
	}

	if err := config.DB.Model(&member).Update("parent_id", userUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to link family member")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Family member linked successfully"})
}
