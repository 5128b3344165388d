// controllers/booking.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"templekovan-backend/config"
	"templekovan-backend/models"
	"templekovan-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DateCheckInput defines the expected JSON structure for an availability check
type DateCheckInput struct {
	CatalogID   uuid.UUID `json:"nameOfTheServiceId" binding:"required"`
	ServiceDate string    `json:"serviceDate" binding:"required"`
}

// CreateBookingInput defines the expected JSON structure for creating a booking
type CreateBookingInput struct {
	UserID        *uuid.UUID `json:"userId"`
	CatalogID     uuid.UUID  `json:"nameOfTheServiceId" binding:"required"`
	Description   string     `json:"description" binding:"required"`
	Amount        int        `json:"amount" binding:"required,min=1"`
	Image         string     `json:"image"`
	PaymentMode   string     `json:"paymentMode" binding:"required"`
	TransactionID string     `json:"transactionId" binding:"required"`
	ServiceDate   string     `json:"serviceDate" binding:"required"`
	PosUserID     *uuid.UUID `json:"posUserId"`
}

// DecideBookingInput defines the expected JSON structure for an approval decision
type DecideBookingInput struct {
	BookingID  uuid.UUID  `json:"serviceId" binding:"required"`
	Status     string     `json:"status" binding:"required"`
	ApproverID *uuid.UUID `json:"approverId"`
}

// BookingRow is a booking joined with display fields for history listings
type BookingRow struct {
	models.Booking
	ServiceName   string `json:"serviceName"`
	DevoteeName   string `json:"devoteeName"`
	ApproverEmail string `json:"approverEmail,omitempty"`
	PosUserPhone  string `json:"posUserPhone,omitempty"`
}

// parseServiceDate accepts a plain date or an RFC3339 timestamp and always
// returns local midnight of the named calendar day, so capacity windows
// bucket the same regardless of the input's zone.
func parseServiceDate(value string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", value, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local), nil
}

// availableForDate applies the capacity rule: dates before today are never
// available; a limit of 0 means unlimited; otherwise the existing count must
// stay below the limit.
func availableForDate(limit int, booked int64, serviceDate, now time.Time) bool {
	if serviceDate.Before(utils.BeginningOfDay(now)) {
		return false
	}
	if limit <= 0 {
		return true
	}
	return booked < int64(limit)
}

// effectiveDailyLimit resolves the per-day cap for a catalog entry: a
// ServiceLimit row matching the entry's name wins over the entry's own
// MaxCount.
func effectiveDailyLimit(db *gorm.DB, entry *models.ServiceAdd) (int, *models.ServiceLimit, error) {
	var limit models.ServiceLimit
	err := db.Where("service_type = ?", strings.ToLower(entry.Name)).First(&limit).Error
	if err == nil {
		return limit.DailyLimit, &limit, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entry.MaxCount, nil, nil
	}
	return 0, nil, err
}

func countBookingsForDay(db *gorm.DB, catalogID uuid.UUID, day time.Time) (int64, error) {
	var count int64
	err := db.Model(&models.Booking{}).
		Where("catalog_id = ? AND service_date >= ? AND service_date < ? AND status <> ?",
			catalogID, utils.BeginningOfDay(day), utils.BeginningOfDay(day).AddDate(0, 0, 1), models.StatusRejected).
		Count(&count).Error
	return count, err
}

// DateCheck reports whether capacity remains for a service on a date. The
// check is advisory; booking creation re-runs it inside a transaction.
func DateCheck(c *gin.Context) {
	var input DateCheckInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	serviceDate, err := parseServiceDate(input.ServiceDate)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service date")
		return
	}

	var entry models.ServiceAdd
	if err := config.DB.Where("id = ? AND is_active = ?", input.CatalogID, true).
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	limit, _, err := effectiveDailyLimit(config.DB, &entry)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	booked, err := countBookingsForDay(config.DB, entry.ID, serviceDate)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"isAvailable": availableForDate(limit, booked, serviceDate, time.Now())})
}

// CreateBooking submits a seva booking with its payment proof. The capacity
// check runs again inside the insert transaction with the catalog row locked,
// so two submissions racing for the last slot serialize. One path serves both
// the devotee and the POS-proxy flow.
func CreateBooking(c *gin.Context) {
	callerID, ok := callerUUID(c)
	if !ok {
		return
	}

	var input CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	serviceDate, err := parseServiceDate(input.ServiceDate)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service date")
		return
	}

	// Resolve who the booking is for. A proxy submission requires the
	// posuser role and records the staff member alongside the devotee.
	devoteeID := callerID
	var posUserID *uuid.UUID
	if input.PosUserID != nil {
		if !utils.HasAnyRole(utils.ContextRoles(c), []string{models.RolePosUser, models.RoleAdmin}) {
			utils.RespondWithError(c, http.StatusForbidden, "POS role required to book on behalf of a devotee")
			return
		}
		if *input.PosUserID != callerID {
			utils.RespondWithError(c, http.StatusForbidden, "POS user must be the authenticated caller")
			return
		}
		if input.UserID == nil {
			utils.RespondWithError(c, http.StatusBadRequest, "userId is required for POS bookings")
			return
		}
		devoteeID = *input.UserID
		posUserID = input.PosUserID
	} else if input.UserID != nil && *input.UserID != callerID {
		utils.RespondWithError(c, http.StatusForbidden, "Cannot book on behalf of another devotee")
		return
	}

	var devotee models.User
	if err := config.DB.First(&devotee, "id = ?", devoteeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Devotee not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// Lock the catalog row to serialize bookings of the same service.
	var entry models.ServiceAdd
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND is_active = ?", input.CatalogID, true).
		First(&entry).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if entry.MinAmount > 0 && input.Amount < entry.MinAmount {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusBadRequest,
			"Amount below the minimum contribution of "+strconv.Itoa(entry.MinAmount))
		return
	}

	limit, limitRow, err := effectiveDailyLimit(tx, &entry)
	if err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if limitRow != nil && limitRow.MaxPrice > 0 && input.Amount > limitRow.MaxPrice {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusBadRequest,
			"Amount exceeds the cap of "+strconv.Itoa(limitRow.MaxPrice)+" for this service")
		return
	}

	booked, err := countBookingsForDay(tx, entry.ID, serviceDate)
	if err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if !availableForDate(limit, booked, serviceDate, time.Now()) {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusConflict, "No capacity remaining for the requested date")
		return
	}

	booking := models.Booking{
		CatalogID:     entry.ID,
		UserID:        devoteeID,
		PosUserID:     posUserID,
		Description:   input.Description,
		Amount:        input.Amount,
		Image:         input.Image,
		ServiceDate:   utils.BeginningOfDay(serviceDate),
		PaymentMode:   input.PaymentMode,
		TransactionID: input.TransactionID,
		ReceiptNumber: "SVA-" + time.Now().Format("20060102") + "-" + utils.GenerateRandomString(6),
	}

	if err := tx.Create(&booking).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create booking")
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create booking")
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// GetUserBookings returns a paginated booking history joined with catalog,
// approver and POS display fields. Devotees may only read their own history.
func GetUserBookings(c *gin.Context) {
	callerID, ok := callerUUID(c)
	if !ok {
		return
	}

	targetID := callerID
	if q := c.Query("userId"); q != "" {
		parsed, err := uuid.Parse(q)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID format")
			return
		}
		targetID = parsed
	}

	if targetID != callerID &&
		!utils.HasAnyRole(utils.ContextRoles(c), []string{models.RoleAdmin, models.RoleApprover, models.RolePosUser}) {
		utils.RespondWithError(c, http.StatusForbidden, "Cannot read another devotee's bookings")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	query := config.DB.Table("services").
		Joins("JOIN service_adds ON service_adds.id = services.catalog_id").
		Joins("LEFT JOIN personal_infos ON personal_infos.user_id = services.user_id AND personal_infos.deleted_at IS NULL").
		Joins("LEFT JOIN users AS approvers ON approvers.id = services.approved_by_id").
		Joins("LEFT JOIN users AS pos_users ON pos_users.id = services.pos_user_id").
		Where("services.user_id = ? AND services.deleted_at IS NULL", targetID)

	if serviceName := c.Query("serviceName"); serviceName != "" {
		query = query.Where("service_adds.name = ?", serviceName)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + utils.EscapeLike(search) + "%"
		query = query.Where("services.description ILIKE ? OR services.transaction_id ILIKE ? OR service_adds.name ILIKE ?",
			like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count bookings")
		return
	}

	var rows []BookingRow
	if err := query.
		Select(`services.*,
			service_adds.name AS service_name,
			COALESCE(personal_infos.first_name, '') AS devotee_name,
			COALESCE(approvers.email, '') AS approver_email,
			COALESCE(pos_users.phone, '') AS pos_user_phone`).
		Order("services.created_at DESC").
		Limit(limit).Offset(offset).
		Scan(&rows).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve bookings")
		return
	}

	c.JSON(http.StatusOK, gin.H{"services": rows, "total": total})
}

// GetPendingBookings is the approver work queue
func GetPendingBookings(c *gin.Context) {
	var rows []BookingRow
	if err := config.DB.Table("services").
		Select(`services.*,
			service_adds.name AS service_name,
			COALESCE(personal_infos.first_name, '') AS devotee_name`).
		Joins("JOIN service_adds ON service_adds.id = services.catalog_id").
		Joins("LEFT JOIN personal_infos ON personal_infos.user_id = services.user_id AND personal_infos.deleted_at IS NULL").
		Where("services.status = ? AND services.deleted_at IS NULL", models.StatusPending).
		Order("services.created_at ASC").
		Scan(&rows).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve pending bookings")
		return
	}

	c.JSON(http.StatusOK, rows)
}

// DecideBooking records an approval decision. The transition is guarded by a
// compare-and-swap on PENDING, so a booking is decided at most once and
// concurrent or repeated decisions are rejected rather than overwritten.
func DecideBooking(c *gin.Context) {
	approverID, ok := callerUUID(c)
	if !ok {
		return
	}

	var input DecideBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !models.IsDecision(input.Status) {
		utils.RespondWithError(c, http.StatusBadRequest, "Status must be APPROVED or REJECTED")
		return
	}

	// The recorded approver is always the authenticated caller.
	if input.ApproverID != nil && *input.ApproverID != approverID {
		utils.RespondWithError(c, http.StatusForbidden, "Approver ID must match the authenticated caller")
		return
	}

	result := config.DB.Model(&models.Booking{}).
		Where("id = ? AND status = ?", input.BookingID, models.StatusPending).
		Updates(map[string]interface{}{
			"status":         input.Status,
			"approved_by_id": approverID,
		})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to record decision")
		return
	}

	if result.RowsAffected == 0 {
		var booking models.Booking
		if err := config.DB.First(&booking, "id = ?", input.BookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}
		utils.RespondWithError(c, http.StatusConflict, "Booking already decided: "+booking.Status)
		return
	}

	var booking models.Booking
	if err := config.DB.First(&booking, "id = ?", input.BookingID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, booking)
}
