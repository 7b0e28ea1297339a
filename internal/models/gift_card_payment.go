package models

import (
	"time"
)

// GiftCardPayment records one gift card handed to a participant. Rows are
// written once by the issuance flow and never updated or deleted; corrections
// happen administratively outside this system.
type GiftCardPayment struct {
	ID            uint         `gorm:"primarykey" json:"id"`
	ParticipantID uint         `gorm:"index;not null" json:"participant_id"`
	Amount        Money        `gorm:"type:decimal(20,2);not null" json:"amount"`
	IssuedAt      time.Time    `gorm:"index;not null" json:"issued_at"`
	IssuedByID    uint         `gorm:"index;not null" json:"issued_by_id"`
	ShiftID       *uint        `gorm:"index" json:"shift_id,omitempty"`
	Notes         *string      `json:"notes,omitempty"`
	CreatedAt     time.Time    `gorm:"index" json:"created_at"`
	Participant   *Participant `gorm:"foreignKey:ParticipantID" json:"participant,omitempty"`
	IssuedBy      *User        `gorm:"foreignKey:IssuedByID" json:"issued_by,omitempty"`
	Shift         *Shift       `gorm:"foreignKey:ShiftID" json:"shift,omitempty"`
}

// TableName sets the table name.
func (GiftCardPayment) TableName() string {
	return "gift_card_payments"
}
