package service

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/sdrescue/trashtrack/internal/models"
	"github.com/sdrescue/trashtrack/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupPaymentServiceTest(t *testing.T) (*PaymentService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:payment_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Participant{},
		&models.Shift{},
		&models.GiftCardPayment{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	svc := NewPaymentService(
		repository.NewPaymentRepository(db),
		repository.NewParticipantRepository(db),
		DefaultPaymentPolicy(),
	)
	return svc, db
}

func seedPaymentStaff(t *testing.T, db *gorm.DB, id uint) {
	t.Helper()
	user := models.User{
		ID:           id,
		Email:        fmt.Sprintf("staff_%d@sdrescue.org", id),
		Name:         fmt.Sprintf("Staff %d", id),
		PasswordHash: "hash",
		Role:         "STAFF",
		IsActive:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
}

func seedPaymentParticipant(t *testing.T, db *gorm.DB, id uint) {
	t.Helper()
	participant := models.Participant{
		ID:             id,
		FirstName:      "Pat",
		LastName:       fmt.Sprintf("Tester%d", id),
		EnrollmentDate: time.Now().AddDate(0, -1, 0),
		IsActive:       true,
	}
	if err := db.Create(&participant).Error; err != nil {
		t.Fatalf("create participant failed: %v", err)
	}
}

func seedPayment(t *testing.T, db *gorm.DB, participantID, issuedByID uint, amount int64, issuedAt time.Time) {
	t.Helper()
	payment := models.GiftCardPayment{
		ParticipantID: participantID,
		Amount:        models.NewMoneyFromInt(amount),
		IssuedAt:      issuedAt,
		IssuedByID:    issuedByID,
	}
	if err := db.Create(&payment).Error; err != nil {
		t.Fatalf("create payment failed: %v", err)
	}
}

func TestDefaultPaymentPolicy(t *testing.T) {
	policy := DefaultPaymentPolicy()
	if policy.PaymentAmount.String() != "80.00" {
		t.Fatalf("expected payment amount 80.00, got: %s", policy.PaymentAmount)
	}
	if policy.LifetimeCap.String() != "2000.00" {
		t.Fatalf("expected lifetime cap 2000.00, got: %s", policy.LifetimeCap)
	}
	if policy.MaxPayments != 25 {
		t.Fatalf("expected 25 max payments, got: %d", policy.MaxPayments)
	}
}

func TestCheckEligibilityFreshParticipant(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)
	seedPaymentStaff(t, db, 1)
	seedPaymentParticipant(t, db, 1)

	result, err := svc.CheckEligibility(1)
	if err != nil {
		t.Fatalf("check eligibility failed: %v", err)
	}
	if !result.Allowed {
		t.Fatalf("expected a fresh participant to be eligible: %+v", result)
	}
	if result.Reason != "" {
		t.Fatalf("expected empty reason, got: %q", result.Reason)
	}
	if result.LifetimeTotal.String() != "0.00" {
		t.Fatalf("expected zero lifetime total, got: %s", result.LifetimeTotal)
	}
	if result.PaymentsCount != 0 || result.PaymentsRemaining != 25 {
		t.Fatalf("expected 0 payments and 25 remaining, got: %+v", result)
	}
	if result.PaidThisWeek || result.ReachedLifetimeCap {
		t.Fatalf("expected no flags set on fresh participant: %+v", result)
	}
}

func TestCheckEligibilityPaidThisWeek(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)
	seedPaymentStaff(t, db, 1)
	seedPaymentParticipant(t, db, 1)

	// Fixed clock: Wednesday 2026-01-14 12:00 local.
	now := time.Date(2026, 1, 14, 12, 0, 0, 0, time.Local)
	svc.now = func() time.Time { return now }

	// Payment issued Monday of the same week.
	seedPayment(t, db, 1, 1, 80, time.Date(2026, 1, 12, 9, 30, 0, 0, time.Local))

	result, err := svc.CheckEligibility(1)
	if err != nil {
		t.Fatalf("check eligibility failed: %v", err)
	}
	if result.Allowed {
		t.Fatalf("expected weekly denial, got: %+v", result)
	}
	if !result.PaidThisWeek || result.ReachedLifetimeCap {
		t.Fatalf("expected paid_this_week only: %+v", result)
	}
	if result.Reason != "Participant has already received a payment this week. Next payment available next Sunday." {
		t.Fatalf("unexpected reason: %q", result.Reason)
	}
	if result.PaymentsRemaining != 24 {
		t.Fatalf("expected 24 remaining, got: %d", result.PaymentsRemaining)
	}
}

func TestCheckEligibilityPaymentLastWeekAllowed(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)
	seedPaymentStaff(t, db, 1)
	seedPaymentParticipant(t, db, 1)

	// Sunday 2026-01-11 00:00:00 starts a new week; a payment issued
	// the previous Saturday must not block it.
	now := time.Date(2026, 1, 11, 0, 0, 0, 0, time.Local)
	svc.now = func() time.Time { return now }
	seedPayment(t, db, 1, 1, 80, time.Date(2026, 1, 10, 18, 0, 0, 0, time.Local))

	result, err := svc.CheckEligibility(1)
	if err != nil {
		t.Fatalf("check eligibility failed: %v", err)
	}
	if !result.Allowed {
		t.Fatalf("expected new week to allow payment: %+v", result)
	}
	if result.PaidThisWeek {
		t.Fatalf("last week's payment should not count as this week: %+v", result)
	}
}

func TestWeekBoundsSundayToSaturday(t *testing.T) {
	// Wednesday 2026-01-14.
	start, end := weekBounds(time.Date(2026, 1, 14, 15, 4, 5, 0, time.Local))
	if !start.Equal(time.Date(2026, 1, 11, 0, 0, 0, 0, time.Local)) {
		t.Fatalf("unexpected week start: %s", start)
	}
	if !end.Equal(time.Date(2026, 1, 17, 23, 59, 59, int(999*time.Millisecond), time.Local)) {
		t.Fatalf("unexpected week end: %s", end)
	}

	// A Sunday maps to itself as the start.
	start, _ = weekBounds(time.Date(2026, 1, 11, 0, 0, 0, 0, time.Local))
	if !start.Equal(time.Date(2026, 1, 11, 0, 0, 0, 0, time.Local)) {
		t.Fatalf("sunday should start its own week, got: %s", start)
	}

	// A Saturday at the last covered millisecond is still inside.
	start, end = weekBounds(time.Date(2026, 1, 17, 23, 59, 59, int(999*time.Millisecond), time.Local))
	if !start.Equal(time.Date(2026, 1, 11, 0, 0, 0, 0, time.Local)) {
		t.Fatalf("saturday should belong to the preceding sunday, got: %s", start)
	}
	if !end.Equal(time.Date(2026, 1, 17, 23, 59, 59, int(999*time.Millisecond), time.Local)) {
		t.Fatalf("unexpected week end: %s", end)
	}
}

func TestCheckEligibilitySaturdayPaymentBlocksSameWeek(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)
	seedPaymentStaff(t, db, 1)
	seedPaymentParticipant(t, db, 1)

	// Payment at the very end of the week window still blocks the same
	// Saturday.
	now := time.Date(2026, 1, 17, 23, 59, 59, int(999*time.Millisecond), time.Local)
	svc.now = func() time.Time { return now }
	seedPayment(t, db, 1, 1, 80, time.Date(2026, 1, 11, 0, 0, 0, 0, time.Local))

	result, err := svc.CheckEligibility(1)
	if err != nil {
		t.Fatalf("check eligibility failed: %v", err)
	}
	if result.Allowed || !result.PaidThisWeek {
		t.Fatalf("expected same-week denial: %+v", result)
	}
}

func TestCheckEligibilityLifetimeCapPrecedence(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)
	seedPaymentStaff(t, db, 1)
	seedPaymentParticipant(t, db, 1)

	now := time.Date(2026, 1, 14, 12, 0, 0, 0, time.Local)
	svc.now = func() time.Time { return now }

	// 24 historical payments plus one this week: $2,000 total. The cap
	// reason must win even though the weekly rule also applies.
	for i := 0; i < 24; i++ {
		seedPayment(t, db, 1, 1, 80, now.AddDate(0, 0, -7*(i+1)))
	}
	seedPayment(t, db, 1, 1, 80, now.Add(-time.Hour))

	result, err := svc.CheckEligibility(1)
	if err != nil {
		t.Fatalf("check eligibility failed: %v", err)
	}
	if result.Allowed {
		t.Fatalf("expected cap denial, got: %+v", result)
	}
	if !result.ReachedLifetimeCap {
		t.Fatalf("expected reached_lifetime_cap: %+v", result)
	}
	if result.PaidThisWeek {
		t.Fatalf("cap denial must not set paid_this_week: %+v", result)
	}
	if result.Reason != "Participant has reached the $2,000 lifetime limit. No more payments can be issued." {
		t.Fatalf("unexpected reason: %q", result.Reason)
	}
	if result.LifetimeTotal.String() != "2000.00" {
		t.Fatalf("expected lifetime total 2000.00, got: %s", result.LifetimeTotal)
	}
	if result.PaymentsCount != 25 || result.PaymentsRemaining != 0 {
		t.Fatalf("expected 25 payments and 0 remaining: %+v", result)
	}
}

func TestCheckEligibilityAfter24Payments(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)
	seedPaymentStaff(t, db, 1)
	seedPaymentParticipant(t, db, 1)

	now := time.Date(2026, 1, 14, 12, 0, 0, 0, time.Local)
	svc.now = func() time.Time { return now }
	for i := 0; i < 24; i++ {
		seedPayment(t, db, 1, 1, 80, now.AddDate(0, 0, -7*(i+1)))
	}

	result, err := svc.CheckEligibility(1)
	if err != nil {
		t.Fatalf("check eligibility failed: %v", err)
	}
	if !result.Allowed {
		t.Fatalf("expected one payment left at $1,920: %+v", result)
	}
	if result.LifetimeTotal.String() != "1920.00" {
		t.Fatalf("expected lifetime total 1920.00, got: %s", result.LifetimeTotal)
	}
	if result.PaymentsRemaining != 1 {
		t.Fatalf("expected exactly 1 remaining, got: %d", result.PaymentsRemaining)
	}
}

func TestGetPaymentStatusProgress(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)
	seedPaymentStaff(t, db, 1)
	seedPaymentParticipant(t, db, 1)

	now := time.Date(2026, 1, 14, 12, 0, 0, 0, time.Local)
	svc.now = func() time.Time { return now }
	for i := 0; i < 3; i++ {
		seedPayment(t, db, 1, 1, 80, now.AddDate(0, 0, -7*(i+1)))
	}

	status, err := svc.GetPaymentStatus(1)
	if err != nil {
		t.Fatalf("get payment status failed: %v", err)
	}
	// 240 / 2000 = 12%.
	if status.ProgressPercentage != 12 {
		t.Fatalf("expected 12%% progress, got: %d", status.ProgressPercentage)
	}
	if status.MaxPayments != 25 {
		t.Fatalf("expected max 25 payments, got: %d", status.MaxPayments)
	}
	if status.PaymentAmount.String() != "80.00" || status.LifetimeCap.String() != "2000.00" {
		t.Fatalf("unexpected policy values: %+v", status)
	}
}

func TestIssuePaymentSuccess(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)
	seedPaymentStaff(t, db, 1)
	seedPaymentParticipant(t, db, 1)

	now := time.Date(2026, 1, 14, 12, 0, 0, 0, time.Local)
	svc.now = func() time.Time { return now }

	notes := "Issued after shift"
	payment, err := svc.IssuePayment(IssuePaymentInput{
		ParticipantID: 1,
		IssuedByID:    1,
		Notes:         &notes,
	})
	if err != nil {
		t.Fatalf("issue payment failed: %v", err)
	}
	if payment == nil || payment.ID == 0 {
		t.Fatalf("invalid payment result: %+v", payment)
	}
	if payment.Amount.String() != "80.00" {
		t.Fatalf("expected amount 80.00, got: %s", payment.Amount)
	}
	if !payment.IssuedAt.Equal(now) {
		t.Fatalf("expected issued_at from service clock, got: %s", payment.IssuedAt)
	}
	if payment.Participant == nil || payment.IssuedBy == nil {
		t.Fatalf("expected relations preloaded: %+v", payment)
	}

	// And the week rule holds for an immediate second attempt.
	if _, err := svc.IssuePayment(IssuePaymentInput{ParticipantID: 1, IssuedByID: 1}); !errors.Is(err, ErrPaymentNotAllowed) {
		t.Fatalf("expected ErrPaymentNotAllowed, got: %v", err)
	}
}

func TestIssuePaymentUnknownParticipant(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)
	seedPaymentStaff(t, db, 1)

	_, err := svc.IssuePayment(IssuePaymentInput{ParticipantID: 42, IssuedByID: 1})
	if !errors.Is(err, ErrParticipantNotFound) {
		t.Fatalf("expected ErrParticipantNotFound, got: %v", err)
	}

	var count int64
	if err := db.Model(&models.GiftCardPayment{}).Count(&count).Error; err != nil {
		t.Fatalf("count payments failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no payment rows, got: %d", count)
	}
}

func TestIssuePaymentDeniedWritesNothing(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)
	seedPaymentStaff(t, db, 1)
	seedPaymentParticipant(t, db, 1)

	now := time.Date(2026, 1, 14, 12, 0, 0, 0, time.Local)
	svc.now = func() time.Time { return now }
	seedPayment(t, db, 1, 1, 80, now.Add(-time.Hour))

	_, err := svc.IssuePayment(IssuePaymentInput{ParticipantID: 1, IssuedByID: 1})
	if !errors.Is(err, ErrPaymentNotAllowed) {
		t.Fatalf("expected ErrPaymentNotAllowed, got: %v", err)
	}
	var denied *PaymentDeniedError
	if !errors.As(err, &denied) {
		t.Fatalf("expected PaymentDeniedError, got: %T", err)
	}
	if !denied.Result.PaidThisWeek {
		t.Fatalf("expected weekly denial detail: %+v", denied.Result)
	}

	var count int64
	if err := db.Model(&models.GiftCardPayment{}).Count(&count).Error; err != nil {
		t.Fatalf("count payments failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected only the seeded payment row, got: %d", count)
	}
}

func TestCheckEligibilityIsReadOnly(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)
	seedPaymentStaff(t, db, 1)
	seedPaymentParticipant(t, db, 1)

	first, err := svc.CheckEligibility(1)
	if err != nil {
		t.Fatalf("check eligibility failed: %v", err)
	}
	second, err := svc.CheckEligibility(1)
	if err != nil {
		t.Fatalf("second check failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated checks should match: %+v vs %+v", first, second)
	}

	var count int64
	if err := db.Model(&models.GiftCardPayment{}).Count(&count).Error; err != nil {
		t.Fatalf("count payments failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("eligibility check must not write rows, got: %d", count)
	}
}

func TestFormatThousands(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{80, "80"},
		{2000, "2,000"},
		{1234567, "1,234,567"},
	}
	for _, tc := range cases {
		got := formatThousands(models.NewMoneyFromInt(tc.in).Decimal)
		if got != tc.want {
			t.Fatalf("formatThousands(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
