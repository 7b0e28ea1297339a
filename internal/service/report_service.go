package service

import (
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sdrescue/trashtrack/internal/models"
	"github.com/sdrescue/trashtrack/internal/repository"

	"github.com/shopspring/decimal"
)

// ReportService assembles dashboard statistics and the monthly report.
type ReportService struct {
	repo   repository.ReportRepository
	policy PaymentPolicy
	now    func() time.Time
}

// MonthStats is one month's aggregates for the monthly report.
type MonthStats struct {
	Shifts          int64        `json:"shifts"`
	Bags            int64        `json:"bags"`
	Payments        int64        `json:"payments"`
	PaymentTotal    models.Money `json:"payment_total"`
	NewParticipants int64        `json:"new_participants"`
	Housed          int64        `json:"housed"`
}

// Contributor is one ranked entry in the top-contributors table.
type Contributor struct {
	ParticipantID uint   `json:"participant_id"`
	Name          string `json:"name"`
	Shifts        int64  `json:"shifts"`
	Bags          int64  `json:"bags"`
}

// CappedParticipant is a participant who has reached the lifetime cap.
type CappedParticipant struct {
	ParticipantID uint         `json:"participant_id"`
	Name          string       `json:"name"`
	LifetimeTotal models.Money `json:"lifetime_total"`
}

// MonthlyReport is the full monthly report payload.
type MonthlyReport struct {
	Month             string              `json:"month"`
	Year              int                 `json:"year"`
	ThisMonth         MonthStats          `json:"this_month"`
	LastMonth         MonthStats          `json:"last_month"`
	TopContributors   []Contributor       `json:"top_contributors"`
	ParticipantsAtCap []CappedParticipant `json:"participants_at_cap"`
}

// ActivityEvent is one row of the dashboard activity feed.
type ActivityEvent struct {
	Type            string    `json:"type"`
	ParticipantName string    `json:"participant_name"`
	Detail          string    `json:"detail"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// DashboardStats is the dashboard payload.
type DashboardStats struct {
	ActiveParticipants int64           `json:"active_participants"`
	ActiveShifts       int64           `json:"active_shifts"`
	BagsThisWeek       int64           `json:"bags_this_week"`
	PaidThisWeek       models.Money    `json:"paid_this_week"`
	PendingHomework    int64           `json:"pending_homework"`
	RecentActivity     []ActivityEvent `json:"recent_activity"`
}

// NewReportService creates a report service.
func NewReportService(repo repository.ReportRepository, policy PaymentPolicy) *ReportService {
	return &ReportService{
		repo:   repo,
		policy: policy,
		now:    time.Now,
	}
}

func floatToDecimal(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

// monthBounds returns [start, end] of the month containing t, end being
// the last covered millisecond.
func monthBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Millisecond)
	return start, end
}

// GetDashboardStats gathers the counters and activity feed for the
// dashboard page. The weekly numbers use the Sunday-Saturday payment
// week.
func (s *ReportService) GetDashboardStats() (DashboardStats, error) {
	now := s.now()
	weekStart, weekEnd := weekBounds(now)

	row, err := s.repo.GetDashboardStats(weekStart, weekEnd)
	if err != nil {
		return DashboardStats{}, err
	}

	shifts, payments, participants, err := s.repo.GetRecentActivity(5)
	if err != nil {
		return DashboardStats{}, err
	}

	events := make([]ActivityEvent, 0, len(shifts)+len(payments)+len(participants))
	for _, shift := range shifts {
		name := ""
		if shift.Participant != nil {
			name = shift.Participant.DisplayName()
		}
		detail := "clocked in"
		occurredAt := shift.ClockIn
		if shift.ClockOut != nil {
			detail = fmt.Sprintf("clocked out with %d bags", shift.BagsCollected)
			occurredAt = *shift.ClockOut
		}
		events = append(events, ActivityEvent{
			Type:            "shift",
			ParticipantName: name,
			Detail:          detail,
			OccurredAt:      occurredAt,
		})
	}
	for _, payment := range payments {
		name := ""
		if payment.Participant != nil {
			name = payment.Participant.DisplayName()
		}
		events = append(events, ActivityEvent{
			Type:            "payment",
			ParticipantName: name,
			Detail:          fmt.Sprintf("received a $%s gift card", payment.Amount.Decimal.Truncate(0)),
			OccurredAt:      payment.IssuedAt,
		})
	}
	for _, participant := range participants {
		events = append(events, ActivityEvent{
			Type:            "enrollment",
			ParticipantName: participant.DisplayName(),
			Detail:          "enrolled in the program",
			OccurredAt:      participant.CreatedAt,
		})
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].OccurredAt.After(events[j].OccurredAt)
	})
	if len(events) > 10 {
		events = events[:10]
	}

	return DashboardStats{
		ActiveParticipants: row.ActiveParticipants,
		ActiveShifts:       row.ActiveShifts,
		BagsThisWeek:       row.BagsThisWeek,
		PaidThisWeek:       models.NewMoneyFromDecimal(floatToDecimal(row.PaidThisWeek)),
		PendingHomework:    row.PendingHomework,
		RecentActivity:     events,
	}, nil
}

// GetMonthlyReport assembles this month's report with last month as the
// comparison baseline.
func (s *ReportService) GetMonthlyReport() (*MonthlyReport, error) {
	now := s.now()
	thisStart, thisEnd := monthBounds(now)
	lastStart, lastEnd := monthBounds(thisStart.AddDate(0, 0, -1))

	thisMonth, err := s.monthStats(thisStart, thisEnd, true)
	if err != nil {
		return nil, err
	}
	lastMonth, err := s.monthStats(lastStart, lastEnd, false)
	if err != nil {
		return nil, err
	}

	contributorRows, err := s.repo.GetTopContributors(thisStart, thisEnd, 10)
	if err != nil {
		return nil, err
	}
	contributors := make([]Contributor, 0, len(contributorRows))
	for _, row := range contributorRows {
		contributors = append(contributors, Contributor{
			ParticipantID: row.ParticipantID,
			Name:          strings.TrimSpace(row.FirstName + " " + row.LastName),
			Shifts:        row.Shifts,
			Bags:          row.Bags,
		})
	}

	cappedRows, err := s.repo.ListParticipantsAtCap(s.policy.LifetimeCap)
	if err != nil {
		return nil, err
	}
	capped := make([]CappedParticipant, 0, len(cappedRows))
	for _, row := range cappedRows {
		capped = append(capped, CappedParticipant{
			ParticipantID: row.ParticipantID,
			Name:          strings.TrimSpace(row.FirstName + " " + row.LastName),
			LifetimeTotal: models.NewMoneyFromDecimal(floatToDecimal(row.LifetimeTotal)),
		})
	}

	return &MonthlyReport{
		Month:             now.Month().String(),
		Year:              now.Year(),
		ThisMonth:         thisMonth,
		LastMonth:         lastMonth,
		TopContributors:   contributors,
		ParticipantsAtCap: capped,
	}, nil
}

func (s *ReportService) monthStats(startAt, endAt time.Time, withOutcomes bool) (MonthStats, error) {
	stats := MonthStats{}

	shiftRow, err := s.repo.GetShiftStats(startAt, endAt)
	if err != nil {
		return stats, err
	}
	stats.Shifts = shiftRow.Shifts
	stats.Bags = shiftRow.Bags

	paymentRow, err := s.repo.GetPaymentStats(startAt, endAt)
	if err != nil {
		return stats, err
	}
	stats.Payments = paymentRow.Payments
	stats.PaymentTotal = models.NewMoneyFromDecimal(floatToDecimal(paymentRow.Total))

	if withOutcomes {
		if stats.NewParticipants, err = s.repo.CountNewParticipants(startAt, endAt); err != nil {
			return stats, err
		}
		if stats.Housed, err = s.repo.CountHoused(startAt, endAt); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

// ExportMonthlyReportCSV renders the monthly report as CSV and returns
// the payload with a download filename.
func (s *ReportService) ExportMonthlyReportCSV() ([]byte, string, error) {
	report, err := s.GetMonthlyReport()
	if err != nil {
		return nil, "", err
	}

	builder := &strings.Builder{}
	writer := csv.NewWriter(builder)

	rows := [][]string{
		{fmt.Sprintf("Cash for Trash Monthly Report - %s %d", report.Month, report.Year)},
		{},
		{"MONTHLY SUMMARY"},
		{"Metric", "This Month", "Last Month", "Change"},
		{"Bags Collected",
			strconv.FormatInt(report.ThisMonth.Bags, 10),
			strconv.FormatInt(report.LastMonth.Bags, 10),
			strconv.FormatInt(report.ThisMonth.Bags-report.LastMonth.Bags, 10)},
		{"Shifts Completed",
			strconv.FormatInt(report.ThisMonth.Shifts, 10),
			strconv.FormatInt(report.LastMonth.Shifts, 10),
			strconv.FormatInt(report.ThisMonth.Shifts-report.LastMonth.Shifts, 10)},
		{"Payments Issued",
			strconv.FormatInt(report.ThisMonth.Payments, 10),
			strconv.FormatInt(report.LastMonth.Payments, 10),
			strconv.FormatInt(report.ThisMonth.Payments-report.LastMonth.Payments, 10)},
		{"Total Paid",
			"$" + report.ThisMonth.PaymentTotal.String(),
			"$" + report.LastMonth.PaymentTotal.String(),
			"$" + models.NewMoneyFromDecimal(report.ThisMonth.PaymentTotal.Decimal.Sub(report.LastMonth.PaymentTotal.Decimal)).String()},
		{"New Participants", strconv.FormatInt(report.ThisMonth.NewParticipants, 10), "-", "-"},
		{"Housing Outcomes", strconv.FormatInt(report.ThisMonth.Housed, 10), "-", "-"},
		{},
		{"TOP CONTRIBUTORS"},
		{"Rank", "Name", "Shifts", "Bags Collected"},
	}
	for i, c := range report.TopContributors {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			c.Name,
			strconv.FormatInt(c.Shifts, 10),
			strconv.FormatInt(c.Bags, 10),
		})
	}
	if len(report.ParticipantsAtCap) > 0 {
		rows = append(rows,
			[]string{},
			[]string{fmt.Sprintf("PARTICIPANTS AT LIFETIME CAP ($%s)", formatThousands(s.policy.LifetimeCap.Decimal))},
			[]string{"Name"})
		for _, p := range report.ParticipantsAtCap {
			rows = append(rows, []string{p.Name})
		}
	}

	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return nil, "", err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("cash-for-trash-report-%s-%d.csv", strings.ToLower(report.Month), report.Year)
	return []byte(builder.String()), filename, nil
}
