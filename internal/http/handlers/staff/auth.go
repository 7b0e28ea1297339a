package staff

import (
	"time"

	"github.com/sdrescue/trashtrack/internal/http/response"

	"github.com/gin-gonic/gin"
)

// LoginRequest carries the staff login credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordRequest carries a password change.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// Login authenticates a staff member and returns a JWT.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "email and password are required", err)
		return
	}

	user, token, expiresAt, err := h.AuthService.Login(req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err, "login failed")
		return
	}

	requestLog(c).Infow("staff_login",
		"user_id", user.ID,
		"email", user.Email,
	)
	response.Success(c, gin.H{
		"token":      token,
		"user":       user,
		"expires_at": expiresAt.Format(time.RFC3339),
	})
}

// Me returns the authenticated staff member's profile.
func (h *Handler) Me(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	user, err := h.UserService.GetUser(userID)
	if err != nil {
		respondServiceError(c, err, "failed to load profile")
		return
	}

	response.Success(c, user)
}

// ChangePassword rotates the authenticated staff member's password and
// revokes previously issued tokens.
func (h *Handler) ChangePassword(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "old and new passwords are required", err)
		return
	}

	if err := h.AuthService.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		respondServiceError(c, err, "failed to change password")
		return
	}

	response.SuccessWithMsg(c, "password updated, please sign in again", nil)
}
