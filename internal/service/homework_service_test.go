package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sdrescue/trashtrack/internal/constants"
	"github.com/sdrescue/trashtrack/internal/models"
	"github.com/sdrescue/trashtrack/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupHomeworkServiceTest(t *testing.T) (*HomeworkService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:homework_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Participant{},
		&models.HomeworkAssignment{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	svc := NewHomeworkService(
		repository.NewHomeworkRepository(db),
		repository.NewParticipantRepository(db),
	)
	return svc, db
}

func TestCreateHomework(t *testing.T) {
	svc, db := setupHomeworkServiceTest(t)
	seedPaymentParticipant(t, db, 1)

	due := time.Now().AddDate(0, 0, 14)
	assignment, err := svc.CreateHomework(CreateHomeworkInput{
		ParticipantID: 1,
		Title:         "Apply for SNAP benefits",
		DueDate:       &due,
	})
	if err != nil {
		t.Fatalf("create homework failed: %v", err)
	}
	if assignment.ID == 0 || assignment.IsCompleted {
		t.Fatalf("invalid assignment: %+v", assignment)
	}
	if assignment.AssignedDate.IsZero() {
		t.Fatalf("expected assigned date to be stamped: %+v", assignment)
	}

	if _, err := svc.CreateHomework(CreateHomeworkInput{ParticipantID: 1, Title: "  "}); !errors.Is(err, ErrHomeworkTitleRequired) {
		t.Fatalf("expected ErrHomeworkTitleRequired, got: %v", err)
	}
	if _, err := svc.CreateHomework(CreateHomeworkInput{ParticipantID: 99, Title: "X"}); !errors.Is(err, ErrParticipantNotFound) {
		t.Fatalf("expected ErrParticipantNotFound, got: %v", err)
	}
}

func TestHomeworkCompletionToggle(t *testing.T) {
	svc, db := setupHomeworkServiceTest(t)
	seedPaymentParticipant(t, db, 1)

	assignment, err := svc.CreateHomework(CreateHomeworkInput{ParticipantID: 1, Title: "Get California ID"})
	if err != nil {
		t.Fatalf("create homework failed: %v", err)
	}

	done := true
	updated, err := svc.UpdateHomework(assignment.ID, UpdateHomeworkInput{IsCompleted: &done})
	if err != nil {
		t.Fatalf("complete homework failed: %v", err)
	}
	if !updated.IsCompleted || updated.CompletedDate == nil {
		t.Fatalf("expected completion stamp: %+v", updated)
	}

	undone := false
	reopened, err := svc.UpdateHomework(assignment.ID, UpdateHomeworkInput{IsCompleted: &undone})
	if err != nil {
		t.Fatalf("reopen homework failed: %v", err)
	}
	if reopened.IsCompleted || reopened.CompletedDate != nil {
		t.Fatalf("expected completion stamp cleared: %+v", reopened)
	}
}

func TestListHomeworkFilters(t *testing.T) {
	svc, db := setupHomeworkServiceTest(t)
	seedPaymentParticipant(t, db, 1)

	now := time.Now()
	pastDue := now.AddDate(0, 0, -3)
	futureDue := now.AddDate(0, 0, 3)

	overdue, err := svc.CreateHomework(CreateHomeworkInput{ParticipantID: 1, Title: "Overdue task", DueDate: &pastDue})
	if err != nil {
		t.Fatalf("create homework failed: %v", err)
	}
	if _, err := svc.CreateHomework(CreateHomeworkInput{ParticipantID: 1, Title: "Upcoming task", DueDate: &futureDue}); err != nil {
		t.Fatalf("create homework failed: %v", err)
	}
	completed, err := svc.CreateHomework(CreateHomeworkInput{ParticipantID: 1, Title: "Done task"})
	if err != nil {
		t.Fatalf("create homework failed: %v", err)
	}
	done := true
	if _, err := svc.UpdateHomework(completed.ID, UpdateHomeworkInput{IsCompleted: &done}); err != nil {
		t.Fatalf("complete homework failed: %v", err)
	}

	pending, total, err := svc.ListHomework(repository.HomeworkListFilter{Filter: constants.HomeworkFilterPending})
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if total != 2 || len(pending) != 2 {
		t.Fatalf("expected 2 pending, got total=%d len=%d", total, len(pending))
	}

	overdueList, total, err := svc.ListHomework(repository.HomeworkListFilter{Filter: constants.HomeworkFilterOverdue})
	if err != nil {
		t.Fatalf("list overdue failed: %v", err)
	}
	if total != 1 || overdueList[0].ID != overdue.ID {
		t.Fatalf("expected only the overdue task, got total=%d %+v", total, overdueList)
	}

	completedList, total, err := svc.ListHomework(repository.HomeworkListFilter{Filter: constants.HomeworkFilterCompleted})
	if err != nil {
		t.Fatalf("list completed failed: %v", err)
	}
	if total != 1 || completedList[0].ID != completed.ID {
		t.Fatalf("expected only the completed task, got total=%d %+v", total, completedList)
	}
}

func TestDeleteHomework(t *testing.T) {
	svc, db := setupHomeworkServiceTest(t)
	seedPaymentParticipant(t, db, 1)

	assignment, err := svc.CreateHomework(CreateHomeworkInput{ParticipantID: 1, Title: "Temp"})
	if err != nil {
		t.Fatalf("create homework failed: %v", err)
	}
	if err := svc.DeleteHomework(assignment.ID); err != nil {
		t.Fatalf("delete homework failed: %v", err)
	}
	if _, err := svc.GetHomework(assignment.ID); !errors.Is(err, ErrHomeworkNotFound) {
		t.Fatalf("expected ErrHomeworkNotFound, got: %v", err)
	}
}
