package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NallaNeram is the auspicious-time window published for a calendar day.
type NallaNeram struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Date time.Time `gorm:"type:date;uniqueIndex;not null" json:"date"`

	StartTime   string `gorm:"type:varchar(8);not null" json:"startTime"` // "HH:MM"
	EndTime     string `gorm:"type:varchar(8);not null" json:"endTime"`
	Description string `gorm:"type:text" json:"description"`

	gorm.Model
}

func (n *NallaNeram) BeforeCreate(tx *gorm.DB) (err error) {
	n.ID = uuid.New()
	return
}
