package repository

import (
	"errors"

	"github.com/sdrescue/trashtrack/internal/constants"
	"github.com/sdrescue/trashtrack/internal/models"

	"gorm.io/gorm"
)

// HomeworkRepository is the homework assignment data access interface.
type HomeworkRepository interface {
	GetByID(id uint) (*models.HomeworkAssignment, error)
	Create(assignment *models.HomeworkAssignment) error
	Update(assignment *models.HomeworkAssignment) error
	Delete(id uint) error
	List(filter HomeworkListFilter) ([]models.HomeworkAssignment, int64, error)
}

// GormHomeworkRepository is the GORM implementation.
type GormHomeworkRepository struct {
	db *gorm.DB
}

// NewHomeworkRepository creates a homework repository.
func NewHomeworkRepository(db *gorm.DB) *GormHomeworkRepository {
	return &GormHomeworkRepository{db: db}
}

// GetByID fetches an assignment by id.
func (r *GormHomeworkRepository) GetByID(id uint) (*models.HomeworkAssignment, error) {
	var assignment models.HomeworkAssignment
	if err := r.db.First(&assignment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &assignment, nil
}

// Create inserts an assignment.
func (r *GormHomeworkRepository) Create(assignment *models.HomeworkAssignment) error {
	return r.db.Create(assignment).Error
}

// Update saves an assignment.
func (r *GormHomeworkRepository) Update(assignment *models.HomeworkAssignment) error {
	return r.db.Save(assignment).Error
}

// Delete removes an assignment.
func (r *GormHomeworkRepository) Delete(id uint) error {
	return r.db.Delete(&models.HomeworkAssignment{}, id).Error
}

// List returns assignments matching the filter: incomplete first, then by
// due date, newest assignment last as a tiebreaker.
func (r *GormHomeworkRepository) List(filter HomeworkListFilter) ([]models.HomeworkAssignment, int64, error) {
	query := r.db.Model(&models.HomeworkAssignment{})

	if filter.ParticipantID > 0 {
		query = query.Where("participant_id = ?", filter.ParticipantID)
	}
	switch filter.Filter {
	case constants.HomeworkFilterOverdue:
		query = query.Where("is_completed = ? AND due_date IS NOT NULL AND due_date < ?", false, filter.Now)
	case constants.HomeworkFilterPending:
		query = query.Where("is_completed = ?", false)
	case constants.HomeworkFilterCompleted:
		query = query.Where("is_completed = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var assignments []models.HomeworkAssignment
	err := query.Preload("Participant").Preload("AssignedBy").
		Order("is_completed asc, due_date asc, assigned_date desc").
		Find(&assignments).Error
	if err != nil {
		return nil, 0, err
	}
	return assignments, total, nil
}
