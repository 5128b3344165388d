package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceLimit holds the per-type daily capacity and price cap for the named
// ritual types (e.g. thirumanjanam, abhisekam). One row per type, edited by
// the approver role only.
type ServiceLimit struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ServiceType string    `gorm:"uniqueIndex;not null" json:"serviceType"`
	DailyLimit  int       `gorm:"default:0" json:"dailyLimit"` // 0 = unlimited
	MaxPrice    int       `gorm:"default:0" json:"maxPrice"`   // 0 = uncapped

	gorm.Model
}

func (l *ServiceLimit) BeforeCreate(tx *gorm.DB) (err error) {
	l.ID = uuid.New()
	return
}
