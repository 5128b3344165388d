// services/reminder_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"templekovan-backend/models"
	"templekovan-backend/utils"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// ReminderService sends devotees an SMS the evening before their approved
// seva and records every attempt.
type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
	from   string
}

func NewReminderService(db *gorm.DB) *ReminderService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	var client *twilio.RestClient
	if accountSid != "" && authToken != "" {
		client = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		})
	}

	return &ReminderService{
		db:     db,
		client: client,
		from:   os.Getenv("TWILIO_FROM_NUMBER"),
	}
}

func (s *ReminderService) StartScheduler() {
	if s.client == nil {
		log.Println("Twilio not configured, seva reminders disabled")
		return
	}

	c := cron.New()

	// Run every day at 7 AM
	c.AddFunc("0 7 * * *", func() {
		s.SendSevaReminders(time.Now())
	})

	c.Start()
	log.Println("Seva reminder scheduler started")
}

// SendSevaReminders messages every devotee with an approved booking dated the
// day after now.
func (s *ReminderService) SendSevaReminders(now time.Time) {
	log.Println("Starting seva reminder processing...")

	tomorrow := utils.BeginningOfDay(now).AddDate(0, 0, 1)

	type reminderRow struct {
		BookingID   uuid.UUID
		UserID      uuid.UUID
		Phone       string
		ServiceName string
		ServiceDate time.Time
	}

	var rows []reminderRow
	if err := s.db.Table("services").
		Select(`services.id AS booking_id,
			services.user_id AS user_id,
			users.phone,
			service_adds.name AS service_name,
			services.service_date`).
		Joins("JOIN users ON users.id = services.user_id").
		Joins("JOIN service_adds ON service_adds.id = services.catalog_id").
		Where("services.status = ? AND services.service_date >= ? AND services.service_date < ? AND services.deleted_at IS NULL",
			models.StatusApproved, tomorrow, tomorrow.AddDate(0, 0, 1)).
		Scan(&rows).Error; err != nil {
		log.Printf("Failed to fetch tomorrow's bookings: %v", err)
		return
	}

	for _, row := range rows {
		s.sendReminder(row.BookingID, row.UserID, row.Phone, row.ServiceName, row.ServiceDate)
	}

	log.Printf("Seva reminder processing finished, %d bookings handled", len(rows))
}

func (s *ReminderService) sendReminder(bookingID, userID uuid.UUID, phone, serviceName string, serviceDate time.Time) {
	message := fmt.Sprintf("Vanakkam! Your %s seva at the temple is confirmed for %s. Please arrive 30 minutes early.",
		serviceName, serviceDate.Format("02 Jan 2006"))

	entry := models.ReminderLog{
		BookingID: bookingID,
		UserID:    userID,
		Phone:     phone,
		Message:   message,
		SentAt:    time.Now(),
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(phone)
	params.SetFrom(s.from)
	params.SetBody(message)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		log.Printf("Failed to send reminder to %s: %v", phone, err)
		entry.Status = "failed"
		entry.ErrorMessage = err.Error()
	} else {
		entry.Status = "sent"
	}

	if err := s.db.Create(&entry).Error; err != nil {
		log.Printf("Failed to log reminder for booking %s: %v", bookingID, err)
	}
}
