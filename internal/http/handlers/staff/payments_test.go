package staff

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sdrescue/trashtrack/internal/models"
	"github.com/sdrescue/trashtrack/internal/provider"
	"github.com/sdrescue/trashtrack/internal/repository"
	"github.com/sdrescue/trashtrack/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupPaymentHandlerTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:payment_handler_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
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

	paymentRepo := repository.NewPaymentRepository(db)
	participantRepo := repository.NewParticipantRepository(db)
	h := New(&provider.Container{
		PaymentService: service.NewPaymentService(paymentRepo, participantRepo, service.DefaultPaymentPolicy()),
	})

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", uint(1))
		c.Next()
	})
	r.POST("/payments", h.IssuePayment)
	r.GET("/payments/check", h.CheckPaymentEligibility)
	return r, db
}

func seedPaymentHandlerFixture(t *testing.T, db *gorm.DB) {
	t.Helper()
	user := models.User{
		ID:           1,
		Email:        "staff@sdrescue.org",
		Name:         "Staff Member",
		PasswordHash: "hash",
		Role:         "STAFF",
		IsActive:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	participant := models.Participant{
		ID:             1,
		FirstName:      "John",
		LastName:       "Doe",
		EnrollmentDate: time.Now(),
		IsActive:       true,
	}
	if err := db.Create(&participant).Error; err != nil {
		t.Fatalf("create participant failed: %v", err)
	}
}

func TestIssuePaymentEndpoint(t *testing.T) {
	r, db := setupPaymentHandlerTest(t)
	seedPaymentHandlerFixture(t, db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(`{"participant_id":1}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	var resp struct {
		StatusCode int             `json:"status_code"`
		Msg        string          `json:"msg"`
		Data       json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d (msg=%s)", resp.StatusCode, resp.Msg)
	}
	if !strings.Contains(resp.Msg, "issued successfully") {
		t.Fatalf("unexpected msg %q", resp.Msg)
	}

	var count int64
	db.Model(&models.GiftCardPayment{}).Count(&count)
	if count != 1 {
		t.Fatalf("payment count want 1 got %d", count)
	}
}

func TestIssuePaymentEndpointDeniedSameWeek(t *testing.T) {
	r, db := setupPaymentHandlerTest(t)
	seedPaymentHandlerFixture(t, db)

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(`{"participant_id":1}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(first, req)
	if first.Code != http.StatusOK {
		t.Fatalf("first issue status want 200 got %d", first.Code)
	}

	second := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(`{"participant_id":1}`))
	req2.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(second, req2)

	var resp struct {
		StatusCode int    `json:"status_code"`
		Msg        string `json:"msg"`
		Data       struct {
			Validation service.EligibilityResult `json:"validation"`
		} `json:"data"`
	}
	if err := json.Unmarshal(second.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Fatalf("status_code want 400 got %d", resp.StatusCode)
	}
	if !strings.Contains(resp.Msg, "already received a payment this week") {
		t.Fatalf("unexpected denial msg %q", resp.Msg)
	}
	if resp.Data.Validation.Allowed {
		t.Fatalf("validation snapshot should deny")
	}
	if !resp.Data.Validation.PaidThisWeek {
		t.Fatalf("validation snapshot should flag paid_this_week")
	}

	var count int64
	db.Model(&models.GiftCardPayment{}).Count(&count)
	if count != 1 {
		t.Fatalf("denied issue should not write, count want 1 got %d", count)
	}
}

func TestIssuePaymentEndpointUnknownParticipant(t *testing.T) {
	r, db := setupPaymentHandlerTest(t)
	seedPaymentHandlerFixture(t, db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(`{"participant_id":999}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 404 {
		t.Fatalf("status_code want 404 got %d", resp.StatusCode)
	}

	var count int64
	db.Model(&models.GiftCardPayment{}).Count(&count)
	if count != 0 {
		t.Fatalf("payment count want 0 got %d", count)
	}
}

func TestCheckPaymentEligibilityEndpoint(t *testing.T) {
	r, db := setupPaymentHandlerTest(t)
	seedPaymentHandlerFixture(t, db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/payments/check?participant_id=1", nil)
	r.ServeHTTP(w, req)

	var resp struct {
		StatusCode int                       `json:"status_code"`
		Data       service.EligibilityResult `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d", resp.StatusCode)
	}
	if !resp.Data.Allowed {
		t.Fatalf("fresh participant should be eligible")
	}
	if resp.Data.PaymentsRemaining != 25 {
		t.Fatalf("payments_remaining want 25 got %d", resp.Data.PaymentsRemaining)
	}
}
