package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PersonalInfo struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"userId"`

	Salutation string `gorm:"type:varchar(10)" json:"salutation"`
	FirstName  string `gorm:"not null" json:"firstName"`
	LastName   string `json:"lastName"`

	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"`
	State        string `json:"state"`
	Country      string `gorm:"default:'India'" json:"country"`
	Pincode      string `gorm:"type:varchar(10)" json:"pincode"`

	// Sequential devotee number, hand-assigned by an admin.
	UniqueID *int `gorm:"uniqueIndex" json:"uniqueId,omitempty"`

	gorm.Model
}

func (p *PersonalInfo) BeforeCreate(tx *gorm.DB) (err error) {
	p.ID = uuid.New()
	return
}

// PersonalInfoHistory is an append-only snapshot of the pre-update values,
// written in the same transaction as every PersonalInfo update. Rows are
// never mutated or deleted.
type PersonalInfoHistory struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	PersonalInfoID uuid.UUID `gorm:"type:uuid;index;not null" json:"personalInfoId"`
	UserID         uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`

	Salutation   string `json:"salutation"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"`
	State        string `json:"state"`
	Country      string `json:"country"`
	Pincode      string `json:"pincode"`
	UniqueID     *int   `json:"uniqueId,omitempty"`

	ChangedByID uuid.UUID `gorm:"type:uuid;not null" json:"changedBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (h *PersonalInfoHistory) BeforeCreate(tx *gorm.DB) (err error) {
	h.ID = uuid.New()
	return
}

// Snapshot copies the current values into a history row.
func (p *PersonalInfo) Snapshot(changedBy uuid.UUID) PersonalInfoHistory {
	return PersonalInfoHistory{
		PersonalInfoID: p.ID,
		UserID:         p.UserID,
		Salutation:     p.Salutation,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		AddressLine1:   p.AddressLine1,
		AddressLine2:   p.AddressLine2,
		City:           p.City,
		State:          p.State,
		Country:        p.Country,
		Pincode:        p.Pincode,
		UniqueID:       p.UniqueID,
		ChangedByID:    changedBy,
	}
}
