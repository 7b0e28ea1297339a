package staff

import (
	"fmt"

	"github.com/sdrescue/trashtrack/internal/http/response"
	"github.com/sdrescue/trashtrack/internal/repository"
	"github.com/sdrescue/trashtrack/internal/service"

	"github.com/gin-gonic/gin"
)

// IssuePaymentRequest issues one gift-card payment.
type IssuePaymentRequest struct {
	ParticipantID uint    `json:"participant_id" binding:"required"`
	ShiftID       *uint   `json:"shift_id"`
	Notes         *string `json:"notes"`
}

// GetPayments lists issued gift-card payments.
func (h *Handler) GetPayments(c *gin.Context) {
	page, pageSize := pageFromQuery(c)
	participantID, ok := parseUintQuery(c, "participant_id")
	if !ok {
		return
	}
	issuedByID, ok := parseUintQuery(c, "issued_by")
	if !ok {
		return
	}

	from, err := parseTimeNullable(c.Query("from"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid from date", err)
		return
	}
	to, err := parseTimeNullable(c.Query("to"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid to date", err)
		return
	}

	payments, total, err := h.PaymentService.ListPayments(repository.PaymentListFilter{
		Page:          page,
		PageSize:      pageSize,
		ParticipantID: participantID,
		IssuedByID:    issuedByID,
		IssuedFrom:    from,
		IssuedTo:      to,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list payments", err)
		return
	}

	response.SuccessWithPage(c, payments, buildPagination(page, pageSize, total))
}

// GetPayment returns one payment record.
func (h *Handler) GetPayment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	payment, err := h.PaymentService.GetPayment(id)
	if err != nil {
		respondServiceError(c, err, "failed to load payment")
		return
	}

	response.Success(c, payment)
}

// CheckPaymentEligibility answers whether a participant can be paid
// right now, without issuing anything.
func (h *Handler) CheckPaymentEligibility(c *gin.Context) {
	participantID, ok := parseUintQuery(c, "participant_id")
	if !ok {
		return
	}
	if participantID == 0 {
		respondError(c, response.CodeBadRequest, "participant_id is required", nil)
		return
	}

	result, err := h.PaymentService.CheckEligibility(participantID)
	if err != nil {
		respondServiceError(c, err, "failed to check eligibility")
		return
	}

	response.Success(c, result)
}

// IssuePayment validates eligibility and records a payment. A denial
// comes back as a bad request carrying the eligibility snapshot.
func (h *Handler) IssuePayment(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req IssuePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "participant_id is required", err)
		return
	}

	payment, err := h.PaymentService.IssuePayment(service.IssuePaymentInput{
		ParticipantID: req.ParticipantID,
		IssuedByID:    userID,
		ShiftID:       req.ShiftID,
		Notes:         req.Notes,
	})
	if err != nil {
		respondServiceError(c, err, "failed to issue payment")
		return
	}

	requestLog(c).Infow("payment_issued",
		"payment_id", payment.ID,
		"participant_id", req.ParticipantID,
		"amount", payment.Amount.String(),
		"issued_by", userID,
	)
	msg := fmt.Sprintf("$%s payment issued successfully", payment.Amount.String())
	response.SuccessWithMsg(c, msg, payment)
}
