package staff

import (
	"strings"

	"github.com/sdrescue/trashtrack/internal/http/response"
	"github.com/sdrescue/trashtrack/internal/repository"
	"github.com/sdrescue/trashtrack/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateUserRequest creates a staff account.
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// UpdateUserRequest carries partial staff account changes.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
	Password *string `json:"password"`
}

// GetUsers lists staff accounts.
func (h *Handler) GetUsers(c *gin.Context) {
	page, pageSize := pageFromQuery(c)
	keyword := strings.TrimSpace(c.Query("search"))
	role := strings.TrimSpace(strings.ToUpper(c.Query("role")))

	users, total, err := h.UserService.ListUsers(repository.UserListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  keyword,
		Role:     role,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list users", err)
		return
	}

	response.SuccessWithPage(c, users, buildPagination(page, pageSize, total))
}

// CreateUser registers a staff account and assigns its access role.
func (h *Handler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "email, name and password are required", err)
		return
	}

	user, err := h.UserService.CreateUser(service.CreateUserInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		respondServiceError(c, err, "failed to create user")
		return
	}

	if err := h.AuthzService.SetUserRoles(user.ID, []string{strings.ToLower(user.Role)}); err != nil {
		requestLog(c).Errorw("user_role_assign_failed",
			"user_id", user.ID,
			"role", user.Role,
			"error", err,
		)
	}

	requestLog(c).Infow("user_created",
		"user_id", user.ID,
		"email", user.Email,
		"role", user.Role,
	)
	response.Success(c, user)
}

// UpdateUser applies partial changes to a staff account. Role changes
// are mirrored into the access-control store.
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	user, err := h.UserService.UpdateUser(id, service.UpdateUserInput{
		Name:     req.Name,
		Role:     req.Role,
		IsActive: req.IsActive,
		Password: req.Password,
	})
	if err != nil {
		respondServiceError(c, err, "failed to update user")
		return
	}

	if req.Role != nil {
		if err := h.AuthzService.SetUserRoles(user.ID, []string{strings.ToLower(user.Role)}); err != nil {
			requestLog(c).Errorw("user_role_assign_failed",
				"user_id", user.ID,
				"role", user.Role,
				"error", err,
			)
		}
	}

	response.Success(c, user)
}
