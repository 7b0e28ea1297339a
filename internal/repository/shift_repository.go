package repository

import (
	"errors"

	"github.com/sdrescue/trashtrack/internal/models"

	"gorm.io/gorm"
)

// ShiftRepository is the shift data access interface.
type ShiftRepository interface {
	GetByID(id uint) (*models.Shift, error)
	FindActiveByParticipant(participantID uint) (*models.Shift, error)
	Create(shift *models.Shift) error
	Update(shift *models.Shift) error
	Delete(id uint) error
	List(filter ShiftListFilter) ([]models.Shift, int64, error)
}

// GormShiftRepository is the GORM implementation.
type GormShiftRepository struct {
	db *gorm.DB
}

// NewShiftRepository creates a shift repository.
func NewShiftRepository(db *gorm.DB) *GormShiftRepository {
	return &GormShiftRepository{db: db}
}

// GetByID fetches a shift by id with its participant preloaded.
func (r *GormShiftRepository) GetByID(id uint) (*models.Shift, error) {
	var shift models.Shift
	if err := r.db.Preload("Participant").First(&shift, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &shift, nil
}

// FindActiveByParticipant returns the participant's open shift, if any.
func (r *GormShiftRepository) FindActiveByParticipant(participantID uint) (*models.Shift, error) {
	var shift models.Shift
	err := r.db.Where("participant_id = ? AND clock_out IS NULL", participantID).
		Order("clock_in desc").
		First(&shift).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &shift, nil
}

// Create inserts a shift.
func (r *GormShiftRepository) Create(shift *models.Shift) error {
	return r.db.Create(shift).Error
}

// Update saves a shift.
func (r *GormShiftRepository) Update(shift *models.Shift) error {
	return r.db.Save(shift).Error
}

// Delete soft deletes a shift.
func (r *GormShiftRepository) Delete(id uint) error {
	return r.db.Delete(&models.Shift{}, id).Error
}

// List returns shifts matching the filter with participants preloaded,
// newest clock-in first.
func (r *GormShiftRepository) List(filter ShiftListFilter) ([]models.Shift, int64, error) {
	query := r.db.Model(&models.Shift{})

	if filter.ParticipantID > 0 {
		query = query.Where("participant_id = ?", filter.ParticipantID)
	}
	if filter.ActiveOnly {
		query = query.Where("clock_out IS NULL")
	}
	if filter.ClockInFrom != nil {
		query = query.Where("clock_in >= ?", *filter.ClockInFrom)
	}
	if filter.ClockInTo != nil {
		query = query.Where("clock_in <= ?", *filter.ClockInTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var shifts []models.Shift
	if err := query.Preload("Participant").Order("clock_in desc").Find(&shifts).Error; err != nil {
		return nil, 0, err
	}
	return shifts, total, nil
}
