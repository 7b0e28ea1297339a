package staff

import (
	"github.com/sdrescue/trashtrack/internal/http/response"
	"github.com/sdrescue/trashtrack/internal/repository"
	"github.com/sdrescue/trashtrack/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateOutcomeRequest records a housing and employment outcome.
type CreateOutcomeRequest struct {
	ParticipantID       uint     `json:"participant_id" binding:"required"`
	HousingStatus       string   `json:"housing_status"`
	OtherHousingDetails string   `json:"other_housing_details"`
	EmploymentStatus    string   `json:"employment_status"`
	Benefits            []string `json:"benefits"`
	DocumentsObtained   []string `json:"documents_obtained"`
	Notes               string   `json:"notes"`
}

// GetOutcomes lists recorded outcomes, newest first.
func (h *Handler) GetOutcomes(c *gin.Context) {
	page, pageSize := pageFromQuery(c)
	participantID, ok := parseUintQuery(c, "participant_id")
	if !ok {
		return
	}

	outcomes, total, err := h.OutcomeService.ListOutcomes(repository.OutcomeListFilter{
		Page:          page,
		PageSize:      pageSize,
		ParticipantID: participantID,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list outcomes", err)
		return
	}

	response.SuccessWithPage(c, outcomes, buildPagination(page, pageSize, total))
}

// CreateOutcome records an outcome snapshot for a participant.
func (h *Handler) CreateOutcome(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req CreateOutcomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "participant_id is required", err)
		return
	}

	outcome, err := h.OutcomeService.CreateOutcome(service.CreateOutcomeInput{
		ParticipantID:       req.ParticipantID,
		HousingStatus:       req.HousingStatus,
		OtherHousingDetails: optionalString(req.OtherHousingDetails),
		EmploymentStatus:    req.EmploymentStatus,
		Benefits:            req.Benefits,
		DocumentsObtained:   req.DocumentsObtained,
		Notes:               optionalString(req.Notes),
		RecordedByID:        &userID,
	})
	if err != nil {
		respondServiceError(c, err, "failed to record outcome")
		return
	}

	response.Success(c, outcome)
}
