package service

import (
	"errors"
	"strings"
	"time"

	"github.com/sdrescue/trashtrack/internal/models"
	"github.com/sdrescue/trashtrack/internal/repository"
)

// HomeworkService manages self-sufficiency assignments.
type HomeworkService struct {
	repo            repository.HomeworkRepository
	participantRepo repository.ParticipantRepository
	now             func() time.Time
}

// CreateHomeworkInput holds fields for a new assignment.
type CreateHomeworkInput struct {
	ParticipantID uint
	Title         string
	Description   *string
	DueDate       *time.Time
	Notes         *string
	AssignedByID  *uint
}

// UpdateHomeworkInput holds optional assignment changes. IsCompleted
// toggles completion; completing stamps CompletedDate, reopening
// clears it.
type UpdateHomeworkInput struct {
	Title        *string
	Description  *string
	DueDate      *time.Time
	ClearDueDate bool
	Notes        *string
	IsCompleted  *bool
}

// ErrHomeworkTitleRequired rejects assignments without a title.
var ErrHomeworkTitleRequired = errors.New("title is required")

// NewHomeworkService creates a homework service.
func NewHomeworkService(repo repository.HomeworkRepository, participantRepo repository.ParticipantRepository) *HomeworkService {
	return &HomeworkService{
		repo:            repo,
		participantRepo: participantRepo,
		now:             time.Now,
	}
}

// GetHomework returns one assignment.
func (s *HomeworkService) GetHomework(id uint) (*models.HomeworkAssignment, error) {
	assignment, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, ErrHomeworkNotFound
	}
	return assignment, nil
}

// ListHomework queries assignments. The overdue filter compares due
// dates against the filter's Now field.
func (s *HomeworkService) ListHomework(filter repository.HomeworkListFilter) ([]models.HomeworkAssignment, int64, error) {
	if filter.Now.IsZero() {
		filter.Now = s.now()
	}
	return s.repo.List(filter)
}

// CreateHomework assigns a task to a participant.
func (s *HomeworkService) CreateHomework(input CreateHomeworkInput) (*models.HomeworkAssignment, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrHomeworkTitleRequired
	}

	participant, err := s.participantRepo.GetByID(input.ParticipantID)
	if err != nil {
		return nil, err
	}
	if participant == nil {
		return nil, ErrParticipantNotFound
	}

	assignment := &models.HomeworkAssignment{
		ParticipantID: input.ParticipantID,
		Title:         title,
		Description:   normalizeOptional(input.Description),
		AssignedDate:  s.now(),
		DueDate:       input.DueDate,
		Notes:         normalizeOptional(input.Notes),
		AssignedByID:  input.AssignedByID,
	}
	if err := s.repo.Create(assignment); err != nil {
		return nil, err
	}
	return s.repo.GetByID(assignment.ID)
}

// UpdateHomework applies partial changes, including completion toggles.
func (s *HomeworkService) UpdateHomework(id uint, input UpdateHomeworkInput) (*models.HomeworkAssignment, error) {
	assignment, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, ErrHomeworkNotFound
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrHomeworkTitleRequired
		}
		assignment.Title = title
	}
	if input.Description != nil {
		assignment.Description = normalizeOptional(input.Description)
	}
	if input.ClearDueDate {
		assignment.DueDate = nil
	} else if input.DueDate != nil {
		assignment.DueDate = input.DueDate
	}
	if input.Notes != nil {
		assignment.Notes = normalizeOptional(input.Notes)
	}
	if input.IsCompleted != nil && *input.IsCompleted != assignment.IsCompleted {
		assignment.IsCompleted = *input.IsCompleted
		if assignment.IsCompleted {
			now := s.now()
			assignment.CompletedDate = &now
		} else {
			assignment.CompletedDate = nil
		}
	}

	if err := s.repo.Update(assignment); err != nil {
		return nil, err
	}
	return s.repo.GetByID(assignment.ID)
}

// DeleteHomework removes an assignment.
func (s *HomeworkService) DeleteHomework(id uint) error {
	assignment, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if assignment == nil {
		return ErrHomeworkNotFound
	}
	return s.repo.Delete(id)
}
