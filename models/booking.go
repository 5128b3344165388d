package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Booking statuses. A booking starts PENDING and is decided at most once;
// APPROVED and REJECTED are terminal.
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// IsDecision reports whether status is a valid terminal decision.
func IsDecision(status string) bool {
	return status == StatusApproved || status == StatusRejected
}

// Booking is a submitted seva request with its payment proof. Kept on the
// legacy "services" table name.
type Booking struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CatalogID uuid.UUID `gorm:"type:uuid;index;not null" json:"nameOfTheServiceId"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`
	// Staff member who submitted on the devotee's behalf, if any.
	PosUserID *uuid.UUID `gorm:"type:uuid;index" json:"posUserId,omitempty"`

	Description   string    `gorm:"not null" json:"description"`
	Amount        int       `gorm:"not null" json:"amount"`
	Image         string    `json:"image"` // payment screenshot
	ServiceDate   time.Time `gorm:"index;not null" json:"serviceDate"`
	PaymentMode   string    `gorm:"not null" json:"paymentMode"`
	TransactionID string    `gorm:"not null" json:"transactionId"`
	ReceiptNumber string    `gorm:"uniqueIndex" json:"receiptNumber"`

	Status       string     `gorm:"type:varchar(10);default:'PENDING';index" json:"status"`
	ApprovedByID *uuid.UUID `gorm:"type:uuid;index" json:"approvedBy,omitempty"`

	Catalog ServiceAdd `gorm:"foreignKey:CatalogID" json:"-"`
	User    User       `gorm:"foreignKey:UserID" json:"-"`

	gorm.Model
}

func (Booking) TableName() string {
	return "services"
}

func (b *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	b.ID = uuid.New()
	b.Status = StatusPending
	b.ApprovedByID = nil
	return
}
