package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sdrescue/trashtrack/internal/models"
	"github.com/sdrescue/trashtrack/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupParticipantServiceTest(t *testing.T) (*ParticipantService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:participant_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
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

	svc := NewParticipantService(repository.NewParticipantRepository(db))
	return svc, db
}

func TestCreateParticipant(t *testing.T) {
	svc, _ := setupParticipantServiceTest(t)

	preferred := "  JJ  "
	participant, err := svc.CreateParticipant(CreateParticipantInput{
		FirstName:     " James ",
		LastName:      "Johnson",
		PreferredName: &preferred,
	})
	if err != nil {
		t.Fatalf("create participant failed: %v", err)
	}
	if participant.FirstName != "James" {
		t.Fatalf("expected trimmed first name, got: %q", participant.FirstName)
	}
	if participant.PreferredName == nil || *participant.PreferredName != "JJ" {
		t.Fatalf("expected trimmed preferred name, got: %v", participant.PreferredName)
	}
	if !participant.IsActive {
		t.Fatalf("expected new participant active: %+v", participant)
	}
	if participant.EnrollmentDate.IsZero() {
		t.Fatalf("expected enrollment date default: %+v", participant)
	}
	if participant.DisplayName() != "JJ" {
		t.Fatalf("expected preferred display name, got: %q", participant.DisplayName())
	}

	if _, err := svc.CreateParticipant(CreateParticipantInput{FirstName: "Solo"}); !errors.Is(err, ErrParticipantNameRequired) {
		t.Fatalf("expected ErrParticipantNameRequired, got: %v", err)
	}
}

func TestUpdateParticipant(t *testing.T) {
	svc, _ := setupParticipantServiceTest(t)

	participant, err := svc.CreateParticipant(CreateParticipantInput{FirstName: "Maria", LastName: "Garcia"})
	if err != nil {
		t.Fatalf("create participant failed: %v", err)
	}

	phone := "415-555-0100"
	inactive := false
	updated, err := svc.UpdateParticipant(participant.ID, UpdateParticipantInput{
		Phone:    &phone,
		IsActive: &inactive,
	})
	if err != nil {
		t.Fatalf("update participant failed: %v", err)
	}
	if updated.Phone == nil || *updated.Phone != phone {
		t.Fatalf("expected phone stored, got: %v", updated.Phone)
	}
	if updated.IsActive {
		t.Fatalf("expected participant deactivated: %+v", updated)
	}

	blank := "  "
	if _, err := svc.UpdateParticipant(participant.ID, UpdateParticipantInput{LastName: &blank}); !errors.Is(err, ErrParticipantNameRequired) {
		t.Fatalf("expected ErrParticipantNameRequired, got: %v", err)
	}
	if _, err := svc.UpdateParticipant(999, UpdateParticipantInput{}); !errors.Is(err, ErrParticipantNotFound) {
		t.Fatalf("expected ErrParticipantNotFound, got: %v", err)
	}
}

func TestListParticipantsWithCounts(t *testing.T) {
	svc, db := setupParticipantServiceTest(t)
	seedPaymentStaff(t, db, 1)

	alpha, err := svc.CreateParticipant(CreateParticipantInput{FirstName: "Ann", LastName: "Avery"})
	if err != nil {
		t.Fatalf("create participant failed: %v", err)
	}
	if _, err := svc.CreateParticipant(CreateParticipantInput{FirstName: "Bob", LastName: "Zimmer"}); err != nil {
		t.Fatalf("create participant failed: %v", err)
	}

	seedShiftRow(t, db, alpha.ID, time.Now().Add(-3*time.Hour), 4, true)
	seedPayment(t, db, alpha.ID, 1, 80, time.Now().Add(-time.Hour))

	rows, total, err := svc.ListParticipants(repository.ParticipantListFilter{})
	if err != nil {
		t.Fatalf("list participants failed: %v", err)
	}
	if total != 2 || len(rows) != 2 {
		t.Fatalf("expected 2 participants, got total=%d len=%d", total, len(rows))
	}
	// Ordered by last name: Avery before Zimmer.
	if rows[0].LastName != "Avery" {
		t.Fatalf("expected Avery first, got: %s", rows[0].LastName)
	}
	if rows[0].ShiftCount != 1 || rows[0].PaymentCount != 1 {
		t.Fatalf("unexpected counts for Avery: %+v", rows[0])
	}
	if rows[1].ShiftCount != 0 || rows[1].PaymentCount != 0 {
		t.Fatalf("unexpected counts for Zimmer: %+v", rows[1])
	}

	active, total, err := svc.ListParticipants(repository.ParticipantListFilter{Search: "avery"})
	if err != nil {
		t.Fatalf("search participants failed: %v", err)
	}
	if total != 1 || active[0].LastName != "Avery" {
		t.Fatalf("expected search hit for Avery, got total=%d %+v", total, active)
	}
}
