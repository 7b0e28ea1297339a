package repository

import (
	"github.com/sdrescue/trashtrack/internal/models"

	"gorm.io/gorm"
)

// OutcomeRepository is the destination outcome data access interface.
type OutcomeRepository interface {
	Create(outcome *models.DestinationOutcome) error
	List(filter OutcomeListFilter) ([]models.DestinationOutcome, int64, error)
}

// GormOutcomeRepository is the GORM implementation.
type GormOutcomeRepository struct {
	db *gorm.DB
}

// NewOutcomeRepository creates an outcome repository.
func NewOutcomeRepository(db *gorm.DB) *GormOutcomeRepository {
	return &GormOutcomeRepository{db: db}
}

// Create inserts an outcome.
func (r *GormOutcomeRepository) Create(outcome *models.DestinationOutcome) error {
	return r.db.Create(outcome).Error
}

// List returns outcomes matching the filter, newest first.
func (r *GormOutcomeRepository) List(filter OutcomeListFilter) ([]models.DestinationOutcome, int64, error) {
	query := r.db.Model(&models.DestinationOutcome{})

	if filter.ParticipantID > 0 {
		query = query.Where("participant_id = ?", filter.ParticipantID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var outcomes []models.DestinationOutcome
	err := query.Preload("Participant").Preload("RecordedBy").
		Order("recorded_at desc").
		Find(&outcomes).Error
	if err != nil {
		return nil, 0, err
	}
	return outcomes, total, nil
}
