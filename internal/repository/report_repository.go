package repository

import (
	"time"

	"github.com/sdrescue/trashtrack/internal/constants"
	"github.com/sdrescue/trashtrack/internal/models"

	"gorm.io/gorm"
)

// ReportRepository aggregates statistics for the dashboard and monthly
// reports. Aggregation only; no business rules live here.
type ReportRepository interface {
	GetShiftStats(startAt, endAt time.Time) (ShiftStatsRow, error)
	GetPaymentStats(startAt, endAt time.Time) (PaymentStatsRow, error)
	CountNewParticipants(startAt, endAt time.Time) (int64, error)
	CountHoused(startAt, endAt time.Time) (int64, error)
	GetTopContributors(startAt, endAt time.Time, limit int) ([]ContributorRow, error)
	ListParticipantsAtCap(capAmount models.Money) ([]ParticipantTotalRow, error)
	GetDashboardStats(weekStart, weekEnd time.Time) (DashboardStatsRow, error)
	GetRecentActivity(limit int) ([]models.Shift, []models.GiftCardPayment, []models.Participant, error)
}

// ShiftStatsRow is a shift count plus bag tally for a period.
type ShiftStatsRow struct {
	Shifts int64
	Bags   int64
}

// PaymentStatsRow is a payment count plus amount tally for a period.
type PaymentStatsRow struct {
	Payments int64
	Total    float64
}

// ContributorRow is one participant's shift/bag tally for a period.
type ContributorRow struct {
	ParticipantID uint
	FirstName     string
	LastName      string
	Shifts        int64
	Bags          int64
}

// ParticipantTotalRow is a participant with their lifetime payment total.
type ParticipantTotalRow struct {
	ParticipantID uint
	FirstName     string
	LastName      string
	LifetimeTotal float64
}

// DashboardStatsRow is the raw counts behind the dashboard page.
type DashboardStatsRow struct {
	ActiveParticipants int64
	ActiveShifts       int64
	BagsThisWeek       int64
	PaidThisWeek       float64
	PendingHomework    int64
}

// GormReportRepository is the GORM implementation.
type GormReportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a report repository.
func NewReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// GetShiftStats counts shifts and bags for shifts clocked in during the period.
func (r *GormReportRepository) GetShiftStats(startAt, endAt time.Time) (ShiftStatsRow, error) {
	result := ShiftStatsRow{}
	if err := r.db.Model(&models.Shift{}).
		Where("clock_in >= ? AND clock_in <= ?", startAt, endAt).
		Count(&result.Shifts).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Shift{}).
		Where("clock_in >= ? AND clock_in <= ?", startAt, endAt).
		Select("COALESCE(SUM(bags_collected), 0)").
		Scan(&result.Bags).Error; err != nil {
		return result, err
	}
	return result, nil
}

// GetPaymentStats counts payments and sums amounts issued during the period.
func (r *GormReportRepository) GetPaymentStats(startAt, endAt time.Time) (PaymentStatsRow, error) {
	result := PaymentStatsRow{}
	if err := r.db.Model(&models.GiftCardPayment{}).
		Where("issued_at >= ? AND issued_at <= ?", startAt, endAt).
		Count(&result.Payments).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.GiftCardPayment{}).
		Where("issued_at >= ? AND issued_at <= ?", startAt, endAt).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&result.Total).Error; err != nil {
		return result, err
	}
	return result, nil
}

// CountNewParticipants counts enrollments during the period.
func (r *GormReportRepository) CountNewParticipants(startAt, endAt time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Participant{}).
		Where("enrollment_date >= ? AND enrollment_date <= ?", startAt, endAt).
		Count(&count).Error
	return count, err
}

// CountHoused counts outcomes recorded during the period whose housing
// status counts as housed.
func (r *GormReportRepository) CountHoused(startAt, endAt time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.DestinationOutcome{}).
		Where("recorded_at >= ? AND recorded_at <= ?", startAt, endAt).
		Where("housing_status IN ?", constants.HousedStatuses).
		Count(&count).Error
	return count, err
}

// GetTopContributors ranks participants by bags collected during the period.
func (r *GormReportRepository) GetTopContributors(startAt, endAt time.Time, limit int) ([]ContributorRow, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []ContributorRow
	err := r.db.Model(&models.Shift{}).
		Select("shifts.participant_id AS participant_id, participants.first_name AS first_name, participants.last_name AS last_name, COUNT(*) AS shifts, COALESCE(SUM(shifts.bags_collected), 0) AS bags").
		Joins("JOIN participants ON participants.id = shifts.participant_id").
		Where("shifts.clock_in >= ? AND shifts.clock_in <= ? AND shifts.deleted_at IS NULL", startAt, endAt).
		Group("shifts.participant_id, participants.first_name, participants.last_name").
		Order("bags desc").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListParticipantsAtCap returns active participants whose lifetime payment
// total has reached the cap.
func (r *GormReportRepository) ListParticipantsAtCap(capAmount models.Money) ([]ParticipantTotalRow, error) {
	var rows []ParticipantTotalRow
	err := r.db.Model(&models.GiftCardPayment{}).
		Select("gift_card_payments.participant_id AS participant_id, participants.first_name AS first_name, participants.last_name AS last_name, COALESCE(SUM(gift_card_payments.amount), 0) AS lifetime_total").
		Joins("JOIN participants ON participants.id = gift_card_payments.participant_id").
		Where("participants.is_active = ? AND participants.deleted_at IS NULL", true).
		Group("gift_card_payments.participant_id, participants.first_name, participants.last_name").
		Having("COALESCE(SUM(gift_card_payments.amount), 0) >= ?", capAmount.InexactFloat64()).
		Order("lifetime_total desc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetDashboardStats gathers the counters shown on the dashboard page.
func (r *GormReportRepository) GetDashboardStats(weekStart, weekEnd time.Time) (DashboardStatsRow, error) {
	result := DashboardStatsRow{}

	if err := r.db.Model(&models.Participant{}).
		Where("is_active = ?", true).
		Count(&result.ActiveParticipants).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Shift{}).
		Where("clock_out IS NULL").
		Count(&result.ActiveShifts).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Shift{}).
		Where("clock_in >= ? AND clock_in <= ?", weekStart, weekEnd).
		Select("COALESCE(SUM(bags_collected), 0)").
		Scan(&result.BagsThisWeek).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.GiftCardPayment{}).
		Where("issued_at >= ? AND issued_at <= ?", weekStart, weekEnd).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&result.PaidThisWeek).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.HomeworkAssignment{}).
		Where("is_completed = ?", false).
		Count(&result.PendingHomework).Error; err != nil {
		return result, err
	}
	return result, nil
}

// GetRecentActivity returns the latest shifts, payments, and enrollments
// for the dashboard activity feed.
func (r *GormReportRepository) GetRecentActivity(limit int) ([]models.Shift, []models.GiftCardPayment, []models.Participant, error) {
	if limit <= 0 {
		limit = 5
	}
	var shifts []models.Shift
	if err := r.db.Preload("Participant").
		Order("updated_at desc").
		Limit(limit).
		Find(&shifts).Error; err != nil {
		return nil, nil, nil, err
	}
	var payments []models.GiftCardPayment
	if err := r.db.Preload("Participant").
		Order("issued_at desc").
		Limit(limit).
		Find(&payments).Error; err != nil {
		return nil, nil, nil, err
	}
	var participants []models.Participant
	if err := r.db.Order("created_at desc").
		Limit(limit).
		Find(&participants).Error; err != nil {
		return nil, nil, nil, err
	}
	return shifts, payments, participants, nil
}
