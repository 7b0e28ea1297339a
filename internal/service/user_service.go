package service

import (
	"context"
	"strings"
	"time"

	"github.com/sdrescue/trashtrack/internal/cache"
	"github.com/sdrescue/trashtrack/internal/constants"
	"github.com/sdrescue/trashtrack/internal/models"
	"github.com/sdrescue/trashtrack/internal/repository"
)

// UserService manages staff accounts. All operations here are
// admin-only; the router enforces that.
type UserService struct {
	repo    repository.UserRepository
	authSvc *AuthService
}

// CreateUserInput holds fields for a new staff account.
type CreateUserInput struct {
	Email    string
	Name     string
	Password string
	Role     string
}

// UpdateUserInput holds optional staff account changes.
type UpdateUserInput struct {
	Name     *string
	Role     *string
	IsActive *bool
	Password *string
}

// NewUserService creates a user service.
func NewUserService(repo repository.UserRepository, authSvc *AuthService) *UserService {
	return &UserService{
		repo:    repo,
		authSvc: authSvc,
	}
}

func validRole(role string) bool {
	return role == constants.RoleAdmin || role == constants.RoleStaff
}

// GetUser returns one staff account.
func (s *UserService) GetUser(id uint) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// ListUsers queries staff accounts.
func (s *UserService) ListUsers(filter repository.UserListFilter) ([]models.User, int64, error) {
	return s.repo.List(filter)
}

// CreateUser creates a staff account with a hashed password.
func (s *UserService) CreateUser(input CreateUserInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, ErrInvalidCredentials
	}
	role := strings.ToUpper(strings.TrimSpace(input.Role))
	if role == "" {
		role = constants.RoleStaff
	}
	if !validRole(role) {
		return nil, ErrInvalidRole
	}

	existing, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	if err := s.authSvc.ValidatePassword(input.Password); err != nil {
		return nil, err
	}
	hash, err := s.authSvc.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		Name:         strings.TrimSpace(input.Name),
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser applies partial changes to a staff account. Disabling an
// account or resetting its password also invalidates outstanding
// tokens.
func (s *UserService) UpdateUser(id uint, input UpdateUserInput) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	invalidateTokens := false

	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Role != nil {
		role := strings.ToUpper(strings.TrimSpace(*input.Role))
		if !validRole(role) {
			return nil, ErrInvalidRole
		}
		if role != user.Role {
			user.Role = role
			invalidateTokens = true
		}
	}
	if input.IsActive != nil && *input.IsActive != user.IsActive {
		user.IsActive = *input.IsActive
		if !user.IsActive {
			invalidateTokens = true
		}
	}
	if input.Password != nil {
		if err := s.authSvc.ValidatePassword(*input.Password); err != nil {
			return nil, err
		}
		hash, err := s.authSvc.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
		invalidateTokens = true
	}

	if invalidateTokens {
		now := time.Now()
		user.TokenVersion++
		user.TokenInvalidBefore = &now
	}

	if err := s.repo.Update(user); err != nil {
		return nil, err
	}
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))
	return user, nil
}
