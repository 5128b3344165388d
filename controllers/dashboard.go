package controllers

import (
	"net/http"
	"templekovan-backend/config"
	"templekovan-backend/models"
	"templekovan-backend/utils"
	"time"

	"github.com/gin-gonic/gin"
)

// DashboardSummary is the admin landing-page payload
type DashboardSummary struct {
	PendingCount    int64              `json:"pendingCount"`
	ApprovedCount   int64              `json:"approvedCount"`
	RejectedCount   int64              `json:"rejectedCount"`
	DevoteeCount    int64              `json:"devoteeCount"`
	MonthCollection int                `json:"monthCollection"`
	TopSevas        []ServiceBreakdown `json:"topSevas"`
}

// GetDashboardOverview returns booking status counts, the current month's
// approved collection and the month's most booked sevas.
func GetDashboardOverview(c *gin.Context) {
	var summary DashboardSummary

	statusCounts := map[string]*int64{
		models.StatusPending:  &summary.PendingCount,
		models.StatusApproved: &summary.ApprovedCount,
		models.StatusRejected: &summary.RejectedCount,
	}
	for status, dest := range statusCounts {
		if err := config.DB.Model(&models.Booking{}).
			Where("status = ?", status).
			Count(dest).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count bookings")
			return
		}
	}

	if err := config.DB.Model(&models.User{}).
		Where("is_active = ?", true).
		Count(&summary.DevoteeCount).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count devotees")
		return
	}

	now := time.Now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	nextMonth := firstOfMonth.AddDate(0, 1, 0)

	if err := config.DB.Model(&models.Booking{}).
		Where("status = ? AND service_date >= ? AND service_date < ?",
			models.StatusApproved, firstOfMonth, nextMonth).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&summary.MonthCollection).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to sum collection")
		return
	}

	if err := config.DB.Table("services").
		Select("service_adds.name, COUNT(services.id) AS count, SUM(services.amount) AS amount").
		Joins("JOIN service_adds ON service_adds.id = services.catalog_id").
		Where("services.status = ? AND services.service_date >= ? AND services.service_date < ? AND services.deleted_at IS NULL",
			models.StatusApproved, firstOfMonth, nextMonth).
		Group("service_adds.name").
		Order("amount DESC").
		Limit(4).
		Scan(&summary.TopSevas).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get top sevas")
		return
	}

	c.JSON(http.StatusOK, summary)
}
