package service

import (
	"time"

	"github.com/sdrescue/trashtrack/internal/models"
	"github.com/sdrescue/trashtrack/internal/repository"
)

// ShiftService manages trash-collection work sessions.
type ShiftService struct {
	repo            repository.ShiftRepository
	participantRepo repository.ParticipantRepository
	now             func() time.Time
}

// ClockInInput holds fields for starting a shift.
type ClockInInput struct {
	ParticipantID uint
	Location      *string
	Notes         *string
	CreatedByID   *uint
}

// UpdateShiftInput holds optional shift changes. ClockOut true stamps
// the clock-out time from the service clock.
type UpdateShiftInput struct {
	BagsCollected *int
	ClockOut      bool
	Location      *string
	Notes         *string
}

// NewShiftService creates a shift service.
func NewShiftService(repo repository.ShiftRepository, participantRepo repository.ParticipantRepository) *ShiftService {
	return &ShiftService{
		repo:            repo,
		participantRepo: participantRepo,
		now:             time.Now,
	}
}

// GetShift returns one shift.
func (s *ShiftService) GetShift(id uint) (*models.Shift, error) {
	shift, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, ErrShiftNotFound
	}
	return shift, nil
}

// ListShifts queries shifts.
func (s *ShiftService) ListShifts(filter repository.ShiftListFilter) ([]models.Shift, int64, error) {
	return s.repo.List(filter)
}

// ClockIn starts a shift. A participant with an open shift cannot start
// another one.
func (s *ShiftService) ClockIn(input ClockInInput) (*models.Shift, error) {
	participant, err := s.participantRepo.GetByID(input.ParticipantID)
	if err != nil {
		return nil, err
	}
	if participant == nil {
		return nil, ErrParticipantNotFound
	}

	active, err := s.repo.FindActiveByParticipant(input.ParticipantID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, ErrShiftAlreadyActive
	}

	shift := &models.Shift{
		ParticipantID: input.ParticipantID,
		ClockIn:       s.now(),
		Location:      normalizeOptional(input.Location),
		Notes:         normalizeOptional(input.Notes),
		CreatedByID:   input.CreatedByID,
	}
	if err := s.repo.Create(shift); err != nil {
		return nil, err
	}
	return s.repo.GetByID(shift.ID)
}

// UpdateShift applies partial changes to a shift, including clock-out.
func (s *ShiftService) UpdateShift(id uint, input UpdateShiftInput) (*models.Shift, error) {
	shift, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, ErrShiftNotFound
	}

	if input.BagsCollected != nil {
		shift.BagsCollected = *input.BagsCollected
	}
	if input.ClockOut {
		if shift.ClockOut != nil {
			return nil, ErrShiftAlreadyClosed
		}
		now := s.now()
		shift.ClockOut = &now
	}
	if input.Location != nil {
		shift.Location = normalizeOptional(input.Location)
	}
	if input.Notes != nil {
		shift.Notes = normalizeOptional(input.Notes)
	}

	if err := s.repo.Update(shift); err != nil {
		return nil, err
	}
	return s.repo.GetByID(shift.ID)
}

// DeleteShift removes a shift record.
func (s *ShiftService) DeleteShift(id uint) error {
	shift, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if shift == nil {
		return ErrShiftNotFound
	}
	return s.repo.Delete(id)
}
