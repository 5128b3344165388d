package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"templekovan-backend/utils"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role tags. A user can hold several at once; checks are always additive.
const (
	RoleUser       = "user"
	RolePosUser    = "posuser"
	RoleApprover   = "approver"
	RoleAdmin      = "Admin"
	RoleSuperAdmin = "superadmin"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email    string    `gorm:"uniqueIndex;not null" json:"email"`
	Phone    string    `gorm:"uniqueIndex;not null" json:"phone"`
	Password string    `gorm:"not null" json:"-"`

	Roles StringArray `gorm:"type:jsonb" json:"role"`

	// Self-referential family link (head of family -> members).
	ParentID *uuid.UUID `gorm:"type:uuid;index" json:"parentId,omitempty"`
	Children []User     `gorm:"foreignKey:ParentID" json:"-"`

	PersonalInfo *PersonalInfo `gorm:"foreignKey:UserID" json:"personalInfo,omitempty"`

	LastLogin *time.Time `json:"lastLogin,omitempty"`
	IsActive  bool       `gorm:"default:true" json:"isActive"`

	gorm.Model
}

// Initialize UUID, hash the password and default the role set before creating
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	u.ID = uuid.New()
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	if len(u.Roles) == 0 {
		u.Roles = StringArray{RoleUser}
	}
	return
}

// Custom JSONB-backed string set, used for role tags
type StringArray []string

func (a StringArray) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *StringArray) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, a)
}
