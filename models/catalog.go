package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceAdd is a catalog entry: a bookable seva when IsSeva is true, or a
// special (fundraising-style) event when it is false.
type ServiceAdd struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Image       string    `json:"image"`

	IsSeva    bool `gorm:"default:true" json:"isSeva"`
	MinAmount int  `gorm:"default:0" json:"minAmount"`
	// Per-day booking cap. 0 means unlimited. A matching ServiceLimit row
	// takes precedence over this value.
	MaxCount int `gorm:"default:0" json:"maxCount"`

	TargetDate  *time.Time `json:"targetDate,omitempty"`
	TargetPrice int        `gorm:"default:0" json:"targetPrice"`

	IsActive bool `gorm:"default:true" json:"isActive"`

	Bookings []Booking `gorm:"foreignKey:CatalogID" json:"-"`

	gorm.Model
}

func (s *ServiceAdd) BeforeCreate(tx *gorm.DB) (err error) {
	s.ID = uuid.New()
	return
}
