package service

import (
	"errors"
	"strings"
	"time"

	"github.com/sdrescue/trashtrack/internal/models"
	"github.com/sdrescue/trashtrack/internal/repository"
)

// ParticipantService manages program enrollment records.
type ParticipantService struct {
	repo repository.ParticipantRepository
	now  func() time.Time
}

// CreateParticipantInput holds fields for enrolling a participant.
type CreateParticipantInput struct {
	FirstName      string
	LastName       string
	PreferredName  *string
	Phone          *string
	Email          *string
	Notes          *string
	EnrollmentDate *time.Time
	CreatedByID    *uint
}

// UpdateParticipantInput holds optional participant changes.
type UpdateParticipantInput struct {
	FirstName     *string
	LastName      *string
	PreferredName *string
	Phone         *string
	Email         *string
	Notes         *string
	IsActive      *bool
}

// ErrParticipantNameRequired rejects enrollment without both names.
var ErrParticipantNameRequired = errors.New("first name and last name are required")

// NewParticipantService creates a participant service.
func NewParticipantService(repo repository.ParticipantRepository) *ParticipantService {
	return &ParticipantService{
		repo: repo,
		now:  time.Now,
	}
}

// GetParticipant returns one participant.
func (s *ParticipantService) GetParticipant(id uint) (*models.Participant, error) {
	participant, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if participant == nil {
		return nil, ErrParticipantNotFound
	}
	return participant, nil
}

// ListParticipants queries participants with shift and payment counts.
func (s *ParticipantService) ListParticipants(filter repository.ParticipantListFilter) ([]repository.ParticipantWithCounts, int64, error) {
	return s.repo.List(filter)
}

// CreateParticipant enrolls a new participant. Enrollment date defaults
// to now when not supplied.
func (s *ParticipantService) CreateParticipant(input CreateParticipantInput) (*models.Participant, error) {
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	if firstName == "" || lastName == "" {
		return nil, ErrParticipantNameRequired
	}

	enrolledAt := s.now()
	if input.EnrollmentDate != nil {
		enrolledAt = *input.EnrollmentDate
	}

	participant := &models.Participant{
		FirstName:      firstName,
		LastName:       lastName,
		PreferredName:  normalizeOptional(input.PreferredName),
		Phone:          normalizeOptional(input.Phone),
		Email:          normalizeOptional(input.Email),
		Notes:          normalizeOptional(input.Notes),
		EnrollmentDate: enrolledAt,
		IsActive:       true,
		CreatedByID:    input.CreatedByID,
	}
	if err := s.repo.Create(participant); err != nil {
		return nil, err
	}
	return participant, nil
}

// UpdateParticipant applies partial changes to a participant.
func (s *ParticipantService) UpdateParticipant(id uint, input UpdateParticipantInput) (*models.Participant, error) {
	participant, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if participant == nil {
		return nil, ErrParticipantNotFound
	}

	if input.FirstName != nil {
		name := strings.TrimSpace(*input.FirstName)
		if name == "" {
			return nil, ErrParticipantNameRequired
		}
		participant.FirstName = name
	}
	if input.LastName != nil {
		name := strings.TrimSpace(*input.LastName)
		if name == "" {
			return nil, ErrParticipantNameRequired
		}
		participant.LastName = name
	}
	if input.PreferredName != nil {
		participant.PreferredName = normalizeOptional(input.PreferredName)
	}
	if input.Phone != nil {
		participant.Phone = normalizeOptional(input.Phone)
	}
	if input.Email != nil {
		participant.Email = normalizeOptional(input.Email)
	}
	if input.Notes != nil {
		participant.Notes = normalizeOptional(input.Notes)
	}
	if input.IsActive != nil {
		participant.IsActive = *input.IsActive
	}

	if err := s.repo.Update(participant); err != nil {
		return nil, err
	}
	return participant, nil
}

// normalizeOptional trims an optional string and collapses blanks to nil.
func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
