package models

import (
	"time"

	"gorm.io/gorm"
)

// HomeworkAssignment is a self-sufficiency task assigned to a participant,
// e.g. "Get California ID" or "Apply for SNAP benefits".
type HomeworkAssignment struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	ParticipantID uint           `gorm:"index;not null" json:"participant_id"`
	Title         string         `gorm:"type:varchar(160);not null" json:"title"`
	Description   *string        `json:"description,omitempty"`
	AssignedDate  time.Time      `gorm:"index;not null" json:"assigned_date"`
	DueDate       *time.Time     `gorm:"index" json:"due_date"`
	IsCompleted   bool           `gorm:"not null;default:false;index" json:"is_completed"`
	CompletedDate *time.Time     `json:"completed_date"`
	Notes         *string        `json:"notes,omitempty"`
	AssignedByID  *uint          `gorm:"index" json:"assigned_by_id,omitempty"`
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	Participant   *Participant   `gorm:"foreignKey:ParticipantID" json:"participant,omitempty"`
	AssignedBy    *User          `gorm:"foreignKey:AssignedByID" json:"assigned_by,omitempty"`
}

// TableName sets the table name.
func (HomeworkAssignment) TableName() string {
	return "homework_assignments"
}

// IsOverdue reports whether an incomplete assignment is past its due date.
func (h HomeworkAssignment) IsOverdue(now time.Time) bool {
	return !h.IsCompleted && h.DueDate != nil && h.DueDate.Before(now)
}
