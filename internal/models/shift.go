package models

import (
	"time"

	"gorm.io/gorm"
)

// Shift is a single trash-collection work session. ClockOut stays nil while
// the shift is active; at most one active shift exists per participant.
type Shift struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	ParticipantID uint           `gorm:"index;not null" json:"participant_id"`
	ClockIn       time.Time      `gorm:"index;not null" json:"clock_in"`
	ClockOut      *time.Time     `gorm:"index" json:"clock_out"`
	BagsCollected int            `gorm:"not null;default:0" json:"bags_collected"`
	Location      *string        `gorm:"type:varchar(120)" json:"location,omitempty"`
	Notes         *string        `json:"notes,omitempty"`
	CreatedByID   *uint          `gorm:"index" json:"created_by_id,omitempty"`
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	Participant   *Participant   `gorm:"foreignKey:ParticipantID" json:"participant,omitempty"`
	CreatedBy     *User          `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
}

// TableName sets the table name.
func (Shift) TableName() string {
	return "shifts"
}

// IsActive reports whether the shift has not been clocked out yet.
func (s Shift) IsActive() bool {
	return s.ClockOut == nil
}
