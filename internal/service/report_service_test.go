package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/sdrescue/trashtrack/internal/constants"
	"github.com/sdrescue/trashtrack/internal/models"
	"github.com/sdrescue/trashtrack/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupReportServiceTest(t *testing.T) (*ReportService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:report_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Participant{},
		&models.Shift{},
		&models.GiftCardPayment{},
		&models.HomeworkAssignment{},
		&models.DestinationOutcome{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	svc := NewReportService(repository.NewReportRepository(db), DefaultPaymentPolicy())
	return svc, db
}

func seedShiftRow(t *testing.T, db *gorm.DB, participantID uint, clockIn time.Time, bags int, closed bool) {
	t.Helper()
	shift := models.Shift{
		ParticipantID: participantID,
		ClockIn:       clockIn,
		BagsCollected: bags,
	}
	if closed {
		out := clockIn.Add(2 * time.Hour)
		shift.ClockOut = &out
	}
	if err := db.Create(&shift).Error; err != nil {
		t.Fatalf("create shift failed: %v", err)
	}
}

func TestGetMonthlyReport(t *testing.T) {
	svc, db := setupReportServiceTest(t)
	seedPaymentStaff(t, db, 1)
	seedPaymentParticipant(t, db, 1)
	seedPaymentParticipant(t, db, 2)

	// Fixed clock mid-month.
	now := time.Date(2026, 3, 18, 12, 0, 0, 0, time.Local)
	svc.now = func() time.Time { return now }

	// This month: two shifts for participant 1, one for participant 2.
	seedShiftRow(t, db, 1, time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local), 5, true)
	seedShiftRow(t, db, 1, time.Date(2026, 3, 9, 9, 0, 0, 0, time.Local), 3, true)
	seedShiftRow(t, db, 2, time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local), 10, true)
	// Last month: one shift.
	seedShiftRow(t, db, 1, time.Date(2026, 2, 10, 9, 0, 0, 0, time.Local), 4, true)

	// Payments: two this month, one last month.
	seedPayment(t, db, 1, 1, 80, time.Date(2026, 3, 2, 12, 0, 0, 0, time.Local))
	seedPayment(t, db, 2, 1, 80, time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local))
	seedPayment(t, db, 1, 1, 80, time.Date(2026, 2, 10, 12, 0, 0, 0, time.Local))

	// One housed outcome this month, one street outcome that must not count.
	if err := db.Create(&models.DestinationOutcome{
		ParticipantID:    1,
		HousingStatus:    constants.HousingStatusPermanent,
		EmploymentStatus: constants.EmploymentStatusNone,
		RecordedAt:       time.Date(2026, 3, 5, 10, 0, 0, 0, time.Local),
	}).Error; err != nil {
		t.Fatalf("create outcome failed: %v", err)
	}
	if err := db.Create(&models.DestinationOutcome{
		ParticipantID:    2,
		HousingStatus:    constants.HousingStatusStreet,
		EmploymentStatus: constants.EmploymentStatusNone,
		RecordedAt:       time.Date(2026, 3, 6, 10, 0, 0, 0, time.Local),
	}).Error; err != nil {
		t.Fatalf("create outcome failed: %v", err)
	}

	report, err := svc.GetMonthlyReport()
	if err != nil {
		t.Fatalf("get monthly report failed: %v", err)
	}
	if report.Month != "March" || report.Year != 2026 {
		t.Fatalf("unexpected report period: %s %d", report.Month, report.Year)
	}
	if report.ThisMonth.Shifts != 3 || report.ThisMonth.Bags != 18 {
		t.Fatalf("unexpected this-month shift stats: %+v", report.ThisMonth)
	}
	if report.LastMonth.Shifts != 1 || report.LastMonth.Bags != 4 {
		t.Fatalf("unexpected last-month shift stats: %+v", report.LastMonth)
	}
	if report.ThisMonth.Payments != 2 || report.ThisMonth.PaymentTotal.String() != "160.00" {
		t.Fatalf("unexpected this-month payment stats: %+v", report.ThisMonth)
	}
	if report.ThisMonth.Housed != 1 {
		t.Fatalf("expected 1 housed outcome, got: %d", report.ThisMonth.Housed)
	}
	if len(report.TopContributors) != 2 {
		t.Fatalf("expected 2 contributors, got: %d", len(report.TopContributors))
	}
	// Participant 2 collected the most bags this month.
	if report.TopContributors[0].ParticipantID != 2 || report.TopContributors[0].Bags != 10 {
		t.Fatalf("unexpected top contributor: %+v", report.TopContributors[0])
	}
	if report.TopContributors[1].Shifts != 2 || report.TopContributors[1].Bags != 8 {
		t.Fatalf("unexpected second contributor: %+v", report.TopContributors[1])
	}
}

func TestMonthlyReportParticipantsAtCap(t *testing.T) {
	svc, db := setupReportServiceTest(t)
	seedPaymentStaff(t, db, 1)
	seedPaymentParticipant(t, db, 1)
	seedPaymentParticipant(t, db, 2)

	now := time.Date(2026, 3, 18, 12, 0, 0, 0, time.Local)
	svc.now = func() time.Time { return now }

	// Participant 1 reaches the cap; participant 2 stays under it.
	for i := 0; i < 25; i++ {
		seedPayment(t, db, 1, 1, 80, now.AddDate(0, 0, -7*(i+1)))
	}
	seedPayment(t, db, 2, 1, 80, now.AddDate(0, 0, -7))

	report, err := svc.GetMonthlyReport()
	if err != nil {
		t.Fatalf("get monthly report failed: %v", err)
	}
	if len(report.ParticipantsAtCap) != 1 {
		t.Fatalf("expected 1 capped participant, got: %+v", report.ParticipantsAtCap)
	}
	if report.ParticipantsAtCap[0].ParticipantID != 1 {
		t.Fatalf("unexpected capped participant: %+v", report.ParticipantsAtCap[0])
	}
	if report.ParticipantsAtCap[0].LifetimeTotal.String() != "2000.00" {
		t.Fatalf("unexpected lifetime total: %s", report.ParticipantsAtCap[0].LifetimeTotal)
	}
}

func TestGetDashboardStats(t *testing.T) {
	svc, db := setupReportServiceTest(t)
	seedPaymentStaff(t, db, 1)
	seedPaymentParticipant(t, db, 1)
	seedPaymentParticipant(t, db, 2)

	// Wednesday; week runs Sunday the 15th through Saturday the 21st.
	now := time.Date(2026, 3, 18, 12, 0, 0, 0, time.Local)
	svc.now = func() time.Time { return now }

	// One open shift this week, one closed shift this week, one last week.
	seedShiftRow(t, db, 1, time.Date(2026, 3, 16, 9, 0, 0, 0, time.Local), 6, false)
	seedShiftRow(t, db, 2, time.Date(2026, 3, 17, 9, 0, 0, 0, time.Local), 4, true)
	seedShiftRow(t, db, 2, time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local), 9, true)

	seedPayment(t, db, 2, 1, 80, time.Date(2026, 3, 17, 12, 0, 0, 0, time.Local))
	seedPayment(t, db, 1, 1, 80, time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local))

	if err := db.Create(&models.HomeworkAssignment{
		ParticipantID: 1,
		Title:         "Get California ID",
		AssignedDate:  now.AddDate(0, 0, -3),
	}).Error; err != nil {
		t.Fatalf("create homework failed: %v", err)
	}

	stats, err := svc.GetDashboardStats()
	if err != nil {
		t.Fatalf("get dashboard stats failed: %v", err)
	}
	if stats.ActiveParticipants != 2 {
		t.Fatalf("expected 2 active participants, got: %d", stats.ActiveParticipants)
	}
	if stats.ActiveShifts != 1 {
		t.Fatalf("expected 1 active shift, got: %d", stats.ActiveShifts)
	}
	if stats.BagsThisWeek != 10 {
		t.Fatalf("expected 10 bags this week, got: %d", stats.BagsThisWeek)
	}
	if stats.PaidThisWeek.String() != "80.00" {
		t.Fatalf("expected 80.00 paid this week, got: %s", stats.PaidThisWeek)
	}
	if stats.PendingHomework != 1 {
		t.Fatalf("expected 1 pending assignment, got: %d", stats.PendingHomework)
	}
	if len(stats.RecentActivity) == 0 {
		t.Fatalf("expected recent activity events")
	}
	for i := 1; i < len(stats.RecentActivity); i++ {
		if stats.RecentActivity[i].OccurredAt.After(stats.RecentActivity[i-1].OccurredAt) {
			t.Fatalf("activity feed out of order at %d", i)
		}
	}
}

func TestExportMonthlyReportCSV(t *testing.T) {
	svc, db := setupReportServiceTest(t)
	seedPaymentStaff(t, db, 1)
	seedPaymentParticipant(t, db, 1)

	now := time.Date(2026, 3, 18, 12, 0, 0, 0, time.Local)
	svc.now = func() time.Time { return now }

	seedShiftRow(t, db, 1, time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local), 5, true)
	seedPayment(t, db, 1, 1, 80, time.Date(2026, 3, 2, 12, 0, 0, 0, time.Local))

	payload, filename, err := svc.ExportMonthlyReportCSV()
	if err != nil {
		t.Fatalf("export csv failed: %v", err)
	}
	if filename != "cash-for-trash-report-march-2026.csv" {
		t.Fatalf("unexpected filename: %s", filename)
	}
	body := string(payload)
	if !strings.Contains(body, "Cash for Trash Monthly Report - March 2026") {
		t.Fatalf("missing report title:\n%s", body)
	}
	if !strings.Contains(body, "MONTHLY SUMMARY") || !strings.Contains(body, "TOP CONTRIBUTORS") {
		t.Fatalf("missing report sections:\n%s", body)
	}
	if !strings.Contains(body, "Total Paid,$80.00,$0.00,$80.00") {
		t.Fatalf("missing payment summary row:\n%s", body)
	}
}
