package main

import (
	"math/rand"
	"strings"
	"time"

	"github.com/sdrescue/trashtrack/internal/config"
	"github.com/sdrescue/trashtrack/internal/constants"
	"github.com/sdrescue/trashtrack/internal/logger"
	"github.com/sdrescue/trashtrack/internal/models"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	admin := seedUser(stdLog.Printf, "admin@sdrescue.org", "Admin User", "admin123", constants.RoleAdmin)
	staff := seedUser(stdLog.Printf, "staff@sdrescue.org", "Staff Member", "staff123", constants.RoleStaff)
	if admin == nil || staff == nil {
		stdLog.Fatalf("Failed to seed staff accounts")
	}

	var participantCount int64
	models.DB.Model(&models.Participant{}).Count(&participantCount)
	if participantCount > 0 {
		stdLog.Printf("Participants already present, skipping sample data")
		printCredentials(stdLog.Printf)
		return
	}

	now := time.Now()
	participantData := []struct {
		firstName     string
		lastName      string
		preferredName string
		phone         string
	}{
		{"John", "Doe", "Johnny", "(619) 555-0101"},
		{"Maria", "Santos", "", "(619) 555-0102"},
		{"Robert", "Thompson", "Rob", ""},
		{"Sarah", "Williams", "", "(619) 555-0104"},
		{"Michael", "Johnson", "Mike", "(619) 555-0105"},
		{"Angela", "Davis", "Angie", ""},
		{"James", "Brown", "", "(619) 555-0107"},
		{"Patricia", "Miller", "Pat", "(619) 555-0108"},
	}

	participants := make([]models.Participant, 0, len(participantData))
	for _, p := range participantData {
		participant := models.Participant{
			FirstName:      p.firstName,
			LastName:       p.lastName,
			PreferredName:  optional(p.preferredName),
			Phone:          optional(p.phone),
			EnrollmentDate: now.Add(-time.Duration(rand.Intn(90*24)) * time.Hour),
			IsActive:       true,
			CreatedByID:    &admin.ID,
		}
		if err := models.DB.Create(&participant).Error; err != nil {
			stdLog.Fatalf("Failed to create participant %s %s: %v", p.firstName, p.lastName, err)
		}
		participants = append(participants, participant)
		stdLog.Printf("Created participant: %s %s", p.firstName, p.lastName)
	}

	locations := []string{"Downtown", "Beach", "Park", "City Center", "East Village"}
	for _, participant := range participants {
		numShifts := rand.Intn(8) + 2
		for i := 0; i < numShifts; i++ {
			clockIn := now.Add(-time.Duration(rand.Intn(30*24)) * time.Hour)
			clockOut := clockIn.Add(time.Duration(120+rand.Intn(240)) * time.Minute)
			location := locations[rand.Intn(len(locations))]
			shift := models.Shift{
				ParticipantID: participant.ID,
				ClockIn:       clockIn,
				ClockOut:      &clockOut,
				BagsCollected: rand.Intn(15) + 3,
				Location:      &location,
				CreatedByID:   &staff.ID,
			}
			if err := models.DB.Create(&shift).Error; err != nil {
				stdLog.Fatalf("Failed to create shift: %v", err)
			}
		}
		stdLog.Printf("Created %d shifts for %s", numShifts, participant.FirstName)
	}

	// One open shift so the dashboard shows someone on the street.
	location := "Downtown"
	activeShift := models.Shift{
		ParticipantID: participants[0].ID,
		ClockIn:       now,
		Location:      &location,
		CreatedByID:   &staff.ID,
	}
	if err := models.DB.Create(&activeShift).Error; err != nil {
		stdLog.Fatalf("Failed to create active shift: %v", err)
	}
	stdLog.Printf("Created active shift for %s", participants[0].FirstName)

	// Participant 0 sits at the lifetime cap, participant 1 just below it.
	capNote := "Final payment - cap reached"
	seedPayments(stdLog.Fatalf, participants[0].ID, staff.ID, 25, now, &capNote)
	stdLog.Printf("Created 25 payments for %s (at cap)", participants[0].FirstName)
	seedPayments(stdLog.Fatalf, participants[1].ID, staff.ID, 23, now, nil)
	stdLog.Printf("Created 23 payments for %s (near cap)", participants[1].FirstName)

	for i := 2; i < len(participants); i++ {
		numPayments := rand.Intn(10) + 1
		seedPayments(stdLog.Fatalf, participants[i].ID, staff.ID, numPayments, now, nil)
		stdLog.Printf("Created %d payments for %s", numPayments, participants[i].FirstName)
	}

	homeworkTitles := []string{
		"Get California ID",
		"Apply for SNAP benefits",
		"Complete job application",
		"Attend financial literacy workshop",
		"Get birth certificate copy",
		"Open bank account",
		"Apply for Medi-Cal",
		"Complete housing application",
	}
	for _, participant := range participants[:5] {
		numHomework := rand.Intn(3) + 1
		for i := 0; i < numHomework; i++ {
			assignedDate := now.Add(-time.Duration(rand.Intn(14*24)) * time.Hour)
			dueDate := assignedDate.Add(7 * 24 * time.Hour)
			isCompleted := rand.Intn(2) == 0
			assignment := models.HomeworkAssignment{
				ParticipantID: participant.ID,
				Title:         homeworkTitles[rand.Intn(len(homeworkTitles))],
				AssignedDate:  assignedDate,
				DueDate:       &dueDate,
				IsCompleted:   isCompleted,
				AssignedByID:  &staff.ID,
			}
			if isCompleted {
				completed := now
				assignment.CompletedDate = &completed
			}
			if err := models.DB.Create(&assignment).Error; err != nil {
				stdLog.Fatalf("Failed to create homework: %v", err)
			}
		}
		stdLog.Printf("Created homework for %s", participant.FirstName)
	}

	housingStatuses := []string{
		constants.HousingStatusStreet,
		constants.HousingStatusShelter,
		constants.HousingStatusTransitional,
		constants.HousingStatusSRO,
		constants.HousingStatusSoberLiving,
		constants.HousingStatusPermanent,
	}
	employmentStatuses := []string{
		constants.EmploymentStatusNone,
		constants.EmploymentStatusTraining,
		constants.EmploymentStatusPartTime,
		constants.EmploymentStatusFullTime,
	}
	benefitOptions := []string{"SNAP", "MEDI_CAL"}
	documentOptions := []string{"ID", "SSN_CARD", "BIRTH_CERT"}
	for _, participant := range participants {
		outcome := models.DestinationOutcome{
			ParticipantID:     participant.ID,
			HousingStatus:     housingStatuses[rand.Intn(len(housingStatuses))],
			EmploymentStatus:  employmentStatuses[rand.Intn(len(employmentStatuses))],
			Benefits:          joined(benefitOptions[:rand.Intn(len(benefitOptions)+1)]),
			DocumentsObtained: joined(documentOptions[:rand.Intn(len(documentOptions)+1)]),
			RecordedAt:        now,
			RecordedByID:      &staff.ID,
		}
		if err := models.DB.Create(&outcome).Error; err != nil {
			stdLog.Fatalf("Failed to create outcome: %v", err)
		}
		stdLog.Printf("Created outcome for %s", participant.FirstName)
	}

	successNote := "Successfully transitioned to permanent housing and full-time employment!"
	successBenefits := "SNAP,MEDI_CAL"
	successDocs := "ID,SSN_CARD,BIRTH_CERT,BANK_ACCOUNT"
	successStory := models.DestinationOutcome{
		ParticipantID:     participants[3].ID,
		HousingStatus:     constants.HousingStatusPermanent,
		EmploymentStatus:  constants.EmploymentStatusFullTime,
		Benefits:          &successBenefits,
		DocumentsObtained: &successDocs,
		Notes:             &successNote,
		RecordedAt:        now,
		RecordedByID:      &admin.ID,
	}
	if err := models.DB.Create(&successStory).Error; err != nil {
		stdLog.Fatalf("Failed to create success story outcome: %v", err)
	}
	stdLog.Printf("Created success story outcome")

	stdLog.Printf("Database seeded successfully")
	printCredentials(stdLog.Printf)
}

func seedUser(logf func(string, ...interface{}), email, name, password, role string) *models.User {
	var existing models.User
	if err := models.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		logf("User already exists: %s", email)
		return &existing
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logf("Failed to hash password for %s: %v", email, err)
		return nil
	}
	user := models.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	if err := models.DB.Create(&user).Error; err != nil {
		logf("Failed to create user %s: %v", email, err)
		return nil
	}
	logf("Created user: %s", email)
	return &user
}

func seedPayments(fatalf func(string, ...interface{}), participantID, issuedByID uint, count int, now time.Time, lastNote *string) {
	for i := 0; i < count; i++ {
		payment := models.GiftCardPayment{
			ParticipantID: participantID,
			Amount:        models.NewMoneyFromInt(80),
			IssuedAt:      now.Add(-time.Duration(count-i) * 7 * 24 * time.Hour),
			IssuedByID:    issuedByID,
		}
		if i == count-1 && lastNote != nil {
			payment.Notes = lastNote
		}
		if err := models.DB.Create(&payment).Error; err != nil {
			fatalf("Failed to create payment: %v", err)
		}
	}
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func joined(values []string) *string {
	if len(values) == 0 {
		return nil
	}
	s := strings.Join(values, ",")
	return &s
}

func printCredentials(logf func(string, ...interface{})) {
	logf("Login credentials: admin@sdrescue.org / admin123, staff@sdrescue.org / staff123")
}
