package repository

import "time"

// ParticipantListFilter filters the participant list.
type ParticipantListFilter struct {
	Page       int
	PageSize   int
	Search     string
	OnlyActive bool
}

// ShiftListFilter filters the shift list.
type ShiftListFilter struct {
	Page          int
	PageSize      int
	ParticipantID uint
	ActiveOnly    bool
	ClockInFrom   *time.Time
	ClockInTo     *time.Time
}

// PaymentListFilter filters the payment list.
type PaymentListFilter struct {
	Page          int
	PageSize      int
	ParticipantID uint
	IssuedByID    uint
	IssuedFrom    *time.Time
	IssuedTo      *time.Time
}

// HomeworkListFilter filters the homework list.
type HomeworkListFilter struct {
	Page          int
	PageSize      int
	ParticipantID uint
	Filter        string // pending / overdue / completed
	Now           time.Time
}

// OutcomeListFilter filters the destination outcome list.
type OutcomeListFilter struct {
	Page          int
	PageSize      int
	ParticipantID uint
}

// UserListFilter filters the staff user list.
type UserListFilter struct {
	Page     int
	PageSize int
	Keyword  string
	Role     string
}
