// controllers/report.go
package controllers

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"templekovan-backend/config"
	"templekovan-backend/models"
	"templekovan-backend/utils"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReportController handles all reporting functions
type ReportController struct{}

// ReportRow is one booking in a report, flattened with display fields
type ReportRow struct {
	ReceiptNumber string    `json:"receiptNumber"`
	ServiceName   string    `json:"serviceName"`
	DevoteeName   string    `json:"devoteeName"`
	DevoteePhone  string    `json:"devoteePhone"`
	Amount        int       `json:"amount"`
	ServiceDate   time.Time `json:"serviceDate"`
	PaymentMode   string    `json:"paymentMode"`
	TransactionID string    `json:"transactionId"`
	PosUserPhone  string    `json:"posUserPhone,omitempty"`
}

// ServiceBreakdown aggregates a report by catalog entry
type ServiceBreakdown struct {
	Name   string `json:"name"`
	Count  int    `json:"count"`
	Amount int    `json:"amount"`
}

// ReportSummary is the aggregated report payload
type ReportSummary struct {
	Services           []ReportRow        `json:"services"`
	TotalAmount        int                `json:"totalAmount"`
	TotalCount         int                `json:"totalCount"`
	BreakdownByService []ServiceBreakdown `json:"breakdownByService"`
}

// reportRange turns reportType + anchor date into a half-open [start, end)
// interval: daily covers the day, weekly the 7 days ending on it, monthly the
// calendar month containing it.
func reportRange(reportType string, anchor time.Time) (time.Time, time.Time) {
	day := utils.BeginningOfDay(anchor)
	switch reportType {
	case "weekly":
		return day.AddDate(0, 0, -6), day.AddDate(0, 0, 1)
	case "monthly":
		first := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		return first, first.AddDate(0, 1, 0)
	default: // daily
		return day, day.AddDate(0, 0, 1)
	}
}

func (rc *ReportController) baseQuery(c *gin.Context, start, end time.Time) (*gorm.DB, bool) {
	query := config.DB.Table("services").
		Joins("JOIN service_adds ON service_adds.id = services.catalog_id").
		Joins("LEFT JOIN personal_infos ON personal_infos.user_id = services.user_id AND personal_infos.deleted_at IS NULL").
		Joins("JOIN users ON users.id = services.user_id").
		Joins("LEFT JOIN users AS pos_users ON pos_users.id = services.pos_user_id").
		Where("services.status = ? AND services.deleted_at IS NULL", models.StatusApproved).
		Where("services.service_date >= ? AND services.service_date < ?", start, end)

	if serviceID := c.Query("serviceId"); serviceID != "" {
		parsed, err := uuid.Parse(serviceID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
			return nil, false
		}
		query = query.Where("services.catalog_id = ?", parsed)
	}
	if posUserID := c.Query("posUserId"); posUserID != "" {
		parsed, err := uuid.Parse(posUserID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid POS user ID format")
			return nil, false
		}
		query = query.Where("services.pos_user_id = ?", parsed)
	}
	return query, true
}

func (rc *ReportController) fetchRows(c *gin.Context, start, end time.Time) ([]ReportRow, bool) {
	query, ok := rc.baseQuery(c, start, end)
	if !ok {
		return nil, false
	}

	var rows []ReportRow
	if err := query.
		Select(`services.receipt_number,
			service_adds.name AS service_name,
			COALESCE(personal_infos.first_name, '') AS devotee_name,
			users.phone AS devotee_phone,
			services.amount,
			services.service_date,
			services.payment_mode,
			services.transaction_id AS transaction_id,
			COALESCE(pos_users.phone, '') AS pos_user_phone`).
		Order("services.service_date ASC").
		Scan(&rows).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to build report")
		return nil, false
	}
	return rows, true
}

// summarize totals the rows and groups them by service name.
func summarize(rows []ReportRow) ReportSummary {
	summary := ReportSummary{Services: rows, TotalCount: len(rows)}

	byService := map[string]*ServiceBreakdown{}
	order := []string{}
	for _, row := range rows {
		summary.TotalAmount += row.Amount
		entry, ok := byService[row.ServiceName]
		if !ok {
			entry = &ServiceBreakdown{Name: row.ServiceName}
			byService[row.ServiceName] = entry
			order = append(order, row.ServiceName)
		}
		entry.Count++
		entry.Amount += row.Amount
	}
	summary.BreakdownByService = make([]ServiceBreakdown, 0, len(order))
	for _, name := range order {
		summary.BreakdownByService = append(summary.BreakdownByService, *byService[name])
	}
	return summary
}

func (rc *ReportController) parseAnchor(c *gin.Context) time.Time {
	if q := c.Query("date"); q != "" {
		if t, err := time.ParseInLocation("2006-01-02", q, time.Local); err == nil {
			return t
		}
	}
	return time.Now()
}

// GetReport returns approved bookings aggregated over the requested range,
// optionally filtered by catalog entry and POS user.
func (rc *ReportController) GetReport(c *gin.Context) {
	start, end := reportRange(c.DefaultQuery("reportType", "daily"), rc.parseAnchor(c))

	rows, ok := rc.fetchRows(c, start, end)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, summarize(rows))
}

// ExportReport renders the same report as a CSV attachment
func (rc *ReportController) ExportReport(c *gin.Context) {
	start, end := reportRange(c.DefaultQuery("reportType", "daily"), rc.parseAnchor(c))

	rows, ok := rc.fetchRows(c, start, end)
	if !ok {
		return
	}

	filename := "seva-report-" + start.Format("20060102") + ".csv"
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", "text/csv")

	if err := writeReportCSV(c.Writer, rows); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to write CSV")
	}
}

func writeReportCSV(w gin.ResponseWriter, rows []ReportRow) error {
	return renderReportCSV(csv.NewWriter(w), rows)
}

func renderReportCSV(writer *csv.Writer, rows []ReportRow) error {
	header := []string{"Receipt", "Service", "Devotee", "Phone", "Date", "Amount", "Payment Mode", "Transaction ID", "POS Phone"}
	if err := writer.Write(header); err != nil {
		return err
	}

	total := 0
	for _, row := range rows {
		total += row.Amount
		record := []string{
			row.ReceiptNumber,
			row.ServiceName,
			row.DevoteeName,
			row.DevoteePhone,
			row.ServiceDate.Format("2006-01-02"),
			strconv.Itoa(row.Amount),
			row.PaymentMode,
			row.TransactionID,
			row.PosUserPhone,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	if err := writer.Write([]string{"Total", "", "", "", "", strconv.Itoa(total), "", "", ""}); err != nil {
		return err
	}

	writer.Flush()
	return writer.Error()
}
