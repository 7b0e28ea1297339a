package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Participant is an enrolled member of the Cash for Trash program.
type Participant struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	FirstName      string         `gorm:"type:varchar(80);not null;index" json:"first_name"`
	LastName       string         `gorm:"type:varchar(80);not null;index" json:"last_name"`
	PreferredName  *string        `gorm:"type:varchar(80)" json:"preferred_name,omitempty"`
	Phone          *string        `gorm:"type:varchar(32)" json:"phone,omitempty"`
	Email          *string        `gorm:"type:varchar(120)" json:"email,omitempty"`
	Notes          *string        `json:"notes,omitempty"`
	EnrollmentDate time.Time      `gorm:"index;not null" json:"enrollment_date"`
	IsActive       bool           `gorm:"not null;default:true;index" json:"is_active"`
	CreatedByID    *uint          `gorm:"index" json:"created_by_id,omitempty"`
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	CreatedBy      *User          `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
}

// TableName sets the table name.
func (Participant) TableName() string {
	return "participants"
}

// DisplayName returns the preferred name when set, otherwise first + last.
func (p Participant) DisplayName() string {
	if p.PreferredName != nil && strings.TrimSpace(*p.PreferredName) != "" {
		return strings.TrimSpace(*p.PreferredName)
	}
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}
