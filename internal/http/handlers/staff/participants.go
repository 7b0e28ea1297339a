package staff

import (
	"strings"

	"github.com/sdrescue/trashtrack/internal/http/response"
	"github.com/sdrescue/trashtrack/internal/repository"
	"github.com/sdrescue/trashtrack/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateParticipantRequest enrolls a new participant.
type CreateParticipantRequest struct {
	FirstName      string `json:"first_name" binding:"required"`
	LastName       string `json:"last_name" binding:"required"`
	PreferredName  string `json:"preferred_name"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	Notes          string `json:"notes"`
	EnrollmentDate string `json:"enrollment_date"`
}

// UpdateParticipantRequest carries partial participant changes.
type UpdateParticipantRequest struct {
	FirstName     *string `json:"first_name"`
	LastName      *string `json:"last_name"`
	PreferredName *string `json:"preferred_name"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	Notes         *string `json:"notes"`
	IsActive      *bool   `json:"is_active"`
}

// GetParticipants lists participants with shift and payment totals.
func (h *Handler) GetParticipants(c *gin.Context) {
	page, pageSize := pageFromQuery(c)
	search := strings.TrimSpace(c.Query("search"))
	onlyActive := c.DefaultQuery("active", "") == "true"

	participants, total, err := h.ParticipantService.ListParticipants(repository.ParticipantListFilter{
		Page:       page,
		PageSize:   pageSize,
		Search:     search,
		OnlyActive: onlyActive,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list participants", err)
		return
	}

	response.SuccessWithPage(c, participants, buildPagination(page, pageSize, total))
}

// GetParticipant returns one participant.
func (h *Handler) GetParticipant(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	participant, err := h.ParticipantService.GetParticipant(id)
	if err != nil {
		respondServiceError(c, err, "failed to load participant")
		return
	}

	response.Success(c, participant)
}

// GetParticipantPaymentStatus reports the participant's standing
// against the weekly and lifetime payment limits.
func (h *Handler) GetParticipantPaymentStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	status, err := h.PaymentService.GetPaymentStatus(id)
	if err != nil {
		respondServiceError(c, err, "failed to load payment status")
		return
	}

	response.Success(c, status)
}

// CreateParticipant enrolls a participant.
func (h *Handler) CreateParticipant(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req CreateParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "first name and last name are required", err)
		return
	}
	enrollmentDate, err := parseTimeNullable(req.EnrollmentDate)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid enrollment date", err)
		return
	}

	participant, err := h.ParticipantService.CreateParticipant(service.CreateParticipantInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		PreferredName:  optionalString(req.PreferredName),
		Phone:          optionalString(req.Phone),
		Email:          optionalString(req.Email),
		Notes:          optionalString(req.Notes),
		EnrollmentDate: enrollmentDate,
		CreatedByID:    &userID,
	})
	if err != nil {
		respondServiceError(c, err, "failed to enroll participant")
		return
	}

	requestLog(c).Infow("participant_enrolled",
		"participant_id", participant.ID,
		"created_by", userID,
	)
	response.Success(c, participant)
}

// UpdateParticipant applies partial changes to a participant.
func (h *Handler) UpdateParticipant(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	participant, err := h.ParticipantService.UpdateParticipant(id, service.UpdateParticipantInput{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		PreferredName: req.PreferredName,
		Phone:         req.Phone,
		Email:         req.Email,
		Notes:         req.Notes,
		IsActive:      req.IsActive,
	})
	if err != nil {
		respondServiceError(c, err, "failed to update participant")
		return
	}

	response.Success(c, participant)
}
