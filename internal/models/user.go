package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a staff account that can sign in to the system.
type User struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	Email              string         `gorm:"uniqueIndex;not null" json:"email"`
	Name               string         `gorm:"type:varchar(120);not null" json:"name"`
	PasswordHash       string         `gorm:"not null" json:"-"`
	Role               string         `gorm:"type:varchar(16);not null;default:'STAFF'" json:"role"` // ADMIN / STAFF
	IsActive           bool           `gorm:"not null;default:true" json:"is_active"`
	TokenVersion       uint64         `gorm:"not null;default:0" json:"-"`
	TokenInvalidBefore *time.Time     `gorm:"index" json:"-"` // tokens issued before this instant are revoked
	LastLoginAt        *time.Time     `json:"last_login_at"`
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (User) TableName() string {
	return "users"
}
