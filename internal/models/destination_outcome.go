package models

import (
	"time"
)

// DestinationOutcome is a point-in-time record of a participant's housing and
// employment situation, plus benefits and documents obtained. Benefits and
// DocumentsObtained store comma-separated value lists.
type DestinationOutcome struct {
	ID                  uint         `gorm:"primarykey" json:"id"`
	ParticipantID       uint         `gorm:"index;not null" json:"participant_id"`
	HousingStatus       string       `gorm:"type:varchar(24);index;not null" json:"housing_status"`
	OtherHousingDetails *string      `gorm:"type:varchar(160)" json:"other_housing_details,omitempty"`
	EmploymentStatus    string       `gorm:"type:varchar(24);index;not null" json:"employment_status"`
	Benefits            *string      `gorm:"type:varchar(160)" json:"benefits,omitempty"`
	DocumentsObtained   *string      `gorm:"type:varchar(160)" json:"documents_obtained,omitempty"`
	Notes               *string      `json:"notes,omitempty"`
	RecordedAt          time.Time    `gorm:"index;not null" json:"recorded_at"`
	RecordedByID        *uint        `gorm:"index" json:"recorded_by_id,omitempty"`
	CreatedAt           time.Time    `gorm:"index" json:"created_at"`
	Participant         *Participant `gorm:"foreignKey:ParticipantID" json:"participant,omitempty"`
	RecordedBy          *User        `gorm:"foreignKey:RecordedByID" json:"recorded_by,omitempty"`
}

// TableName sets the table name.
func (DestinationOutcome) TableName() string {
	return "destination_outcomes"
}
