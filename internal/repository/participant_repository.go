package repository

import (
	"errors"
	"strings"

	"github.com/sdrescue/trashtrack/internal/models"

	"gorm.io/gorm"
)

// ParticipantWithCounts pairs a participant with shift/payment tallies for
// the roster view.
type ParticipantWithCounts struct {
	models.Participant
	ShiftCount   int64 `gorm:"column:shift_count" json:"shift_count"`
	PaymentCount int64 `gorm:"column:payment_count" json:"payment_count"`
}

// ParticipantRepository is the participant data access interface.
type ParticipantRepository interface {
	GetByID(id uint) (*models.Participant, error)
	GetByIDForUpdate(tx *gorm.DB, id uint) (*models.Participant, error)
	Create(participant *models.Participant) error
	Update(participant *models.Participant) error
	List(filter ParticipantListFilter) ([]ParticipantWithCounts, int64, error)
}

// GormParticipantRepository is the GORM implementation.
type GormParticipantRepository struct {
	db *gorm.DB
}

// NewParticipantRepository creates a participant repository.
func NewParticipantRepository(db *gorm.DB) *GormParticipantRepository {
	return &GormParticipantRepository{db: db}
}

// GetByID fetches a participant by id.
func (r *GormParticipantRepository) GetByID(id uint) (*models.Participant, error) {
	var participant models.Participant
	if err := r.db.First(&participant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &participant, nil
}

// GetByIDForUpdate fetches a participant inside tx, taking a row lock where
// the engine supports one. Payment issuance serializes on this row.
func (r *GormParticipantRepository) GetByIDForUpdate(tx *gorm.DB, id uint) (*models.Participant, error) {
	if tx == nil {
		tx = r.db
	}
	var participant models.Participant
	if err := lockForUpdate(tx).First(&participant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &participant, nil
}

// Create inserts a participant.
func (r *GormParticipantRepository) Create(participant *models.Participant) error {
	return r.db.Create(participant).Error
}

// Update saves a participant.
func (r *GormParticipantRepository) Update(participant *models.Participant) error {
	return r.db.Save(participant).Error
}

// List returns participants with shift and payment counts, ordered by last
// name the way the roster page expects.
func (r *GormParticipantRepository) List(filter ParticipantListFilter) ([]ParticipantWithCounts, int64, error) {
	query := r.db.Model(&models.Participant{})

	if filter.OnlyActive {
		query = query.Where("participants.is_active = ?", true)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"participants.first_name LIKE ? OR participants.last_name LIKE ? OR participants.preferred_name LIKE ?",
			like, like, like,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Select(
		"participants.*, " +
			"(SELECT COUNT(*) FROM shifts WHERE shifts.participant_id = participants.id AND shifts.deleted_at IS NULL) AS shift_count, " +
			"(SELECT COUNT(*) FROM gift_card_payments WHERE gift_card_payments.participant_id = participants.id) AS payment_count",
	)
	query = applyPagination(query, filter.Page, filter.PageSize)

	var rows []ParticipantWithCounts
	if err := query.Order("participants.last_name asc, participants.first_name asc").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
