package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/sdrescue/trashtrack/internal/models"
	"github.com/sdrescue/trashtrack/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentPolicy is the fixed payout rule set. It is immutable once the
// service is constructed; changing it at runtime would corrupt remaining
// payment math for participants mid-program.
type PaymentPolicy struct {
	PaymentAmount models.Money
	LifetimeCap   models.Money
	MaxPayments   int
}

// DefaultPaymentPolicy returns the program rules: $80 per payment,
// $2,000 lifetime cap, 25 payments total.
func DefaultPaymentPolicy() PaymentPolicy {
	amount := models.NewMoneyFromInt(80)
	cap2000 := models.NewMoneyFromInt(2000)
	return PaymentPolicy{
		PaymentAmount: amount,
		LifetimeCap:   cap2000,
		MaxPayments:   int(cap2000.Decimal.Div(amount.Decimal).Floor().IntPart()),
	}
}

// EligibilityResult is a snapshot of whether a participant may receive
// a payment right now, and why not when they may not.
type EligibilityResult struct {
	Allowed            bool         `json:"allowed"`
	Reason             string       `json:"reason,omitempty"`
	LifetimeTotal      models.Money `json:"lifetime_total"`
	PaymentsCount      int          `json:"payments_count"`
	PaymentsRemaining  int          `json:"payments_remaining"`
	PaidThisWeek       bool         `json:"paid_this_week"`
	ReachedLifetimeCap bool         `json:"reached_lifetime_cap"`
}

// PaymentStatus extends EligibilityResult with the policy values and a
// progress percentage for display.
type PaymentStatus struct {
	EligibilityResult
	MaxPayments        int          `json:"max_payments"`
	PaymentAmount      models.Money `json:"payment_amount"`
	LifetimeCap        models.Money `json:"lifetime_cap"`
	ProgressPercentage int          `json:"progress_percentage"`
}

// IssuePaymentInput carries the fields for issuing one payment.
type IssuePaymentInput struct {
	ParticipantID uint
	IssuedByID    uint
	ShiftID       *uint
	Notes         *string
}

// PaymentService issues gift-card payments and answers eligibility
// questions for them.
type PaymentService struct {
	repo            repository.PaymentRepository
	participantRepo repository.ParticipantRepository
	policy          PaymentPolicy
	now             func() time.Time
}

// NewPaymentService creates a payment service bound to a policy.
func NewPaymentService(repo repository.PaymentRepository, participantRepo repository.ParticipantRepository, policy PaymentPolicy) *PaymentService {
	return &PaymentService{
		repo:            repo,
		participantRepo: participantRepo,
		policy:          policy,
		now:             time.Now,
	}
}

// Policy returns the rule set this service was constructed with.
func (s *PaymentService) Policy() PaymentPolicy {
	return s.policy
}

// weekBounds returns the Sunday 00:00:00.000 start and Saturday
// 23:59:59.999 end of the calendar week containing t, in t's location.
func weekBounds(t time.Time) (time.Time, time.Time) {
	year, month, day := t.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	start := midnight.AddDate(0, 0, -int(midnight.Weekday()))
	end := start.AddDate(0, 0, 7).Add(-time.Millisecond)
	return start, end
}

// formatThousands renders a whole dollar amount with comma separators,
// e.g. 2000 -> "2,000".
func formatThousands(d decimal.Decimal) string {
	s := d.Truncate(0).String()
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		s = "-" + s
	}
	return s
}

// evaluate applies the payout rules to a participant's payment history.
// The lifetime cap is checked before the weekly rule, so a capped
// participant is always reported as capped even when they were also
// paid this week.
func (s *PaymentService) evaluate(payments []models.GiftCardPayment, now time.Time) EligibilityResult {
	lifetimeTotal := decimal.Zero
	for _, p := range payments {
		lifetimeTotal = lifetimeTotal.Add(p.Amount.Decimal)
	}
	paymentsCount := len(payments)

	if lifetimeTotal.GreaterThanOrEqual(s.policy.LifetimeCap.Decimal) {
		return EligibilityResult{
			Allowed: false,
			Reason: fmt.Sprintf("Participant has reached the $%s lifetime limit. No more payments can be issued.",
				formatThousands(s.policy.LifetimeCap.Decimal)),
			LifetimeTotal:      models.NewMoneyFromDecimal(lifetimeTotal),
			PaymentsCount:      paymentsCount,
			PaymentsRemaining:  0,
			PaidThisWeek:       false,
			ReachedLifetimeCap: true,
		}
	}

	remaining := int(s.policy.LifetimeCap.Decimal.Sub(lifetimeTotal).Div(s.policy.PaymentAmount.Decimal).Floor().IntPart())

	weekStart, weekEnd := weekBounds(now)
	paidThisWeek := false
	for _, p := range payments {
		if !p.IssuedAt.Before(weekStart) && !p.IssuedAt.After(weekEnd) {
			paidThisWeek = true
			break
		}
	}

	if paidThisWeek {
		return EligibilityResult{
			Allowed:            false,
			Reason:             "Participant has already received a payment this week. Next payment available next Sunday.",
			LifetimeTotal:      models.NewMoneyFromDecimal(lifetimeTotal),
			PaymentsCount:      paymentsCount,
			PaymentsRemaining:  remaining,
			PaidThisWeek:       true,
			ReachedLifetimeCap: false,
		}
	}

	return EligibilityResult{
		Allowed:            true,
		LifetimeTotal:      models.NewMoneyFromDecimal(lifetimeTotal),
		PaymentsCount:      paymentsCount,
		PaymentsRemaining:  remaining,
		PaidThisWeek:       false,
		ReachedLifetimeCap: false,
	}
}

// CheckEligibility reports whether a participant may receive a payment
// right now. It reads, never writes; a participant with no payment rows
// is simply fully eligible.
func (s *PaymentService) CheckEligibility(participantID uint) (EligibilityResult, error) {
	payments, err := s.repo.ListByParticipant(participantID)
	if err != nil {
		return EligibilityResult{}, err
	}
	return s.evaluate(payments, s.now()), nil
}

// GetPaymentStatus returns the eligibility snapshot plus policy values
// and progress toward the lifetime cap.
func (s *PaymentService) GetPaymentStatus(participantID uint) (PaymentStatus, error) {
	result, err := s.CheckEligibility(participantID)
	if err != nil {
		return PaymentStatus{}, err
	}
	progress := result.LifetimeTotal.Decimal.
		Div(s.policy.LifetimeCap.Decimal).
		Mul(decimal.NewFromInt(100)).
		Round(0).IntPart()
	return PaymentStatus{
		EligibilityResult:  result,
		MaxPayments:        s.policy.MaxPayments,
		PaymentAmount:      s.policy.PaymentAmount,
		LifetimeCap:        s.policy.LifetimeCap,
		ProgressPercentage: int(progress),
	}, nil
}

// IssuePayment issues one fixed-amount payment after re-checking
// eligibility inside a transaction. The participant row is locked for
// the duration, so two staff issuing for the same participant at once
// serialize instead of both passing the check.
func (s *PaymentService) IssuePayment(input IssuePaymentInput) (*models.GiftCardPayment, error) {
	var created *models.GiftCardPayment
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		participant, err := s.participantRepo.GetByIDForUpdate(tx, input.ParticipantID)
		if err != nil {
			return err
		}
		if participant == nil {
			return ErrParticipantNotFound
		}

		txRepo := s.repo.WithTx(tx)
		payments, err := txRepo.ListByParticipant(input.ParticipantID)
		if err != nil {
			return err
		}

		result := s.evaluate(payments, s.now())
		if !result.Allowed {
			return &PaymentDeniedError{Result: result}
		}

		payment := &models.GiftCardPayment{
			ParticipantID: input.ParticipantID,
			Amount:        s.policy.PaymentAmount,
			IssuedAt:      s.now(),
			IssuedByID:    input.IssuedByID,
			ShiftID:       input.ShiftID,
			Notes:         input.Notes,
		}
		if err := txRepo.Create(payment); err != nil {
			return err
		}
		created = payment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(created.ID)
}

// GetPayment returns a payment with its relations loaded.
func (s *PaymentService) GetPayment(id uint) (*models.GiftCardPayment, error) {
	payment, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrNotFound
	}
	return payment, nil
}

// ListPayments queries the payment ledger.
func (s *PaymentService) ListPayments(filter repository.PaymentListFilter) ([]models.GiftCardPayment, int64, error) {
	return s.repo.List(filter)
}
