package service

import (
	"errors"
	"strings"
	"time"

	"github.com/sdrescue/trashtrack/internal/constants"
	"github.com/sdrescue/trashtrack/internal/models"
	"github.com/sdrescue/trashtrack/internal/repository"
)

// OutcomeService records housing and employment milestones.
type OutcomeService struct {
	repo            repository.OutcomeRepository
	participantRepo repository.ParticipantRepository
	now             func() time.Time
}

// CreateOutcomeInput holds fields for recording an outcome. Benefits
// and DocumentsObtained are stored as comma-joined lists.
type CreateOutcomeInput struct {
	ParticipantID       uint
	HousingStatus       string
	OtherHousingDetails *string
	EmploymentStatus    string
	Benefits            []string
	DocumentsObtained   []string
	Notes               *string
	RecordedByID        *uint
}

// ErrOtherHousingDetailsRequired rejects an OTHER housing status with
// no explanation.
var ErrOtherHousingDetailsRequired = errors.New("details are required for 'Other' housing status")

// NewOutcomeService creates an outcome service.
func NewOutcomeService(repo repository.OutcomeRepository, participantRepo repository.ParticipantRepository) *OutcomeService {
	return &OutcomeService{
		repo:            repo,
		participantRepo: participantRepo,
		now:             time.Now,
	}
}

// ListOutcomes queries recorded outcomes.
func (s *OutcomeService) ListOutcomes(filter repository.OutcomeListFilter) ([]models.DestinationOutcome, int64, error) {
	return s.repo.List(filter)
}

func validHousingStatus(status string) bool {
	for _, v := range constants.HousingStatuses {
		if v == status {
			return true
		}
	}
	return false
}

func validEmploymentStatus(status string) bool {
	for _, v := range constants.EmploymentStatuses {
		if v == status {
			return true
		}
	}
	return false
}

// CreateOutcome records a participant's housing and employment
// situation at the current time. Details are kept only for the OTHER
// housing status.
func (s *OutcomeService) CreateOutcome(input CreateOutcomeInput) (*models.DestinationOutcome, error) {
	participant, err := s.participantRepo.GetByID(input.ParticipantID)
	if err != nil {
		return nil, err
	}
	if participant == nil {
		return nil, ErrParticipantNotFound
	}

	housing := strings.ToUpper(strings.TrimSpace(input.HousingStatus))
	if housing == "" {
		housing = constants.HousingStatusStreet
	}
	if !validHousingStatus(housing) {
		return nil, ErrInvalidHousingStatus
	}

	employment := strings.ToUpper(strings.TrimSpace(input.EmploymentStatus))
	if employment == "" {
		employment = constants.EmploymentStatusNone
	}
	if !validEmploymentStatus(employment) {
		return nil, ErrInvalidEmploymentStatus
	}

	var details *string
	if housing == constants.HousingStatusOther {
		details = normalizeOptional(input.OtherHousingDetails)
		if details == nil {
			return nil, ErrOtherHousingDetailsRequired
		}
	}

	outcome := &models.DestinationOutcome{
		ParticipantID:       input.ParticipantID,
		HousingStatus:       housing,
		OtherHousingDetails: details,
		EmploymentStatus:    employment,
		Benefits:            joinList(input.Benefits),
		DocumentsObtained:   joinList(input.DocumentsObtained),
		Notes:               normalizeOptional(input.Notes),
		RecordedAt:          s.now(),
		RecordedByID:        input.RecordedByID,
	}
	if err := s.repo.Create(outcome); err != nil {
		return nil, err
	}
	return outcome, nil
}

// joinList joins trimmed non-empty values with commas, nil when empty.
func joinList(values []string) *string {
	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	if len(cleaned) == 0 {
		return nil
	}
	joined := strings.Join(cleaned, ",")
	return &joined
}
