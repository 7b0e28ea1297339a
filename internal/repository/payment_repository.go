package repository

import (
	"errors"

	"github.com/sdrescue/trashtrack/internal/models"

	"gorm.io/gorm"
)

// PaymentRepository is the gift-card payment data access interface. Payments
// are insert-only; there is no update or delete.
type PaymentRepository interface {
	GetByID(id uint) (*models.GiftCardPayment, error)
	ListByParticipant(participantID uint) ([]models.GiftCardPayment, error)
	Create(payment *models.GiftCardPayment) error
	List(filter PaymentListFilter) ([]models.GiftCardPayment, int64, error)
	WithTx(tx *gorm.DB) *GormPaymentRepository
}

// GormPaymentRepository is the GORM implementation.
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a payment repository.
func NewPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormPaymentRepository) WithTx(tx *gorm.DB) *GormPaymentRepository {
	if tx == nil {
		return r
	}
	return &GormPaymentRepository{db: tx}
}

// GetByID fetches a payment with participant and issuer preloaded.
func (r *GormPaymentRepository) GetByID(id uint) (*models.GiftCardPayment, error) {
	var payment models.GiftCardPayment
	err := r.db.Preload("Participant").Preload("IssuedBy").First(&payment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

// ListByParticipant returns every payment for one participant; the
// eligibility engine reads amounts and issuance timestamps from this.
func (r *GormPaymentRepository) ListByParticipant(participantID uint) ([]models.GiftCardPayment, error) {
	var payments []models.GiftCardPayment
	err := r.db.Where("participant_id = ?", participantID).
		Order("issued_at asc").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

// Create inserts a payment.
func (r *GormPaymentRepository) Create(payment *models.GiftCardPayment) error {
	return r.db.Create(payment).Error
}

// List returns payments matching the filter, newest first, with participant
// and issuer preloaded for the ledger view.
func (r *GormPaymentRepository) List(filter PaymentListFilter) ([]models.GiftCardPayment, int64, error) {
	query := r.db.Model(&models.GiftCardPayment{})

	if filter.ParticipantID > 0 {
		query = query.Where("participant_id = ?", filter.ParticipantID)
	}
	if filter.IssuedByID > 0 {
		query = query.Where("issued_by_id = ?", filter.IssuedByID)
	}
	if filter.IssuedFrom != nil {
		query = query.Where("issued_at >= ?", *filter.IssuedFrom)
	}
	if filter.IssuedTo != nil {
		query = query.Where("issued_at <= ?", *filter.IssuedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var payments []models.GiftCardPayment
	err := query.Preload("Participant").Preload("IssuedBy").
		Order("issued_at desc").
		Find(&payments).Error
	if err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}
