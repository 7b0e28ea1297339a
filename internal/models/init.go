package models

import (
	"strings"

	"github.com/sdrescue/trashtrack/internal/constants"
	"github.com/sdrescue/trashtrack/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// InitDefaultAdmin creates the initial admin account when no users exist.
func InitDefaultAdmin(email, password string) error {
	var count int64
	DB.Model(&User{}).Count(&count)

	// With existing users, make sure the default admin keeps the ADMIN role.
	if count > 0 {
		if err := DB.Model(&User{}).Where("email = ?", "admin@sdrescue.org").
			Update("role", constants.RoleAdmin).Error; err != nil {
			logger.Warnw("ensure_default_admin_role_failed", "error", err)
		}
		return nil
	}

	if email == "" {
		email = "admin@sdrescue.org"
	}
	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := User{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		Name:         "Admin User",
		PasswordHash: string(hash),
		Role:         constants.RoleAdmin,
		IsActive:     true,
	}

	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	if password == "admin123" {
		logger.Warnw("default_admin_created_with_default_password", "email", admin.Email)
		logger.Warnw("default_admin_password_change_required", "email", admin.Email)
	} else {
		logger.Warnw("default_admin_created", "email", admin.Email, "password_hidden", true)
	}

	return nil
}
