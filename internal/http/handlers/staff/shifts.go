package staff

import (
	"github.com/sdrescue/trashtrack/internal/http/response"
	"github.com/sdrescue/trashtrack/internal/repository"
	"github.com/sdrescue/trashtrack/internal/service"

	"github.com/gin-gonic/gin"
)

// ClockInRequest starts a work shift for a participant.
type ClockInRequest struct {
	ParticipantID uint   `json:"participant_id" binding:"required"`
	Location      string `json:"location"`
	Notes         string `json:"notes"`
}

// UpdateShiftRequest carries partial shift changes. ClockOut true
// stamps the clock-out time server side.
type UpdateShiftRequest struct {
	BagsCollected *int    `json:"bags_collected"`
	ClockOut      bool    `json:"clock_out"`
	Location      *string `json:"location"`
	Notes         *string `json:"notes"`
}

// GetShifts lists work shifts.
func (h *Handler) GetShifts(c *gin.Context) {
	page, pageSize := pageFromQuery(c)
	participantID, ok := parseUintQuery(c, "participant_id")
	if !ok {
		return
	}
	activeOnly := c.Query("active") == "true"

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

	shifts, total, err := h.ShiftService.ListShifts(repository.ShiftListFilter{
		Page:          page,
		PageSize:      pageSize,
		ParticipantID: participantID,
		ActiveOnly:    activeOnly,
		ClockInFrom:   from,
		ClockInTo:     to,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list shifts", err)
		return
	}

	response.SuccessWithPage(c, shifts, buildPagination(page, pageSize, total))
}

// GetShift returns one shift.
func (h *Handler) GetShift(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	shift, err := h.ShiftService.GetShift(id)
	if err != nil {
		respondServiceError(c, err, "failed to load shift")
		return
	}

	response.Success(c, shift)
}

// ClockIn starts a shift. A participant can only hold one open shift.
func (h *Handler) ClockIn(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req ClockInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "participant_id is required", err)
		return
	}

	shift, err := h.ShiftService.ClockIn(service.ClockInInput{
		ParticipantID: req.ParticipantID,
		Location:      optionalString(req.Location),
		Notes:         optionalString(req.Notes),
		CreatedByID:   &userID,
	})
	if err != nil {
		respondServiceError(c, err, "failed to clock in")
		return
	}

	requestLog(c).Infow("shift_clock_in",
		"shift_id", shift.ID,
		"participant_id", req.ParticipantID,
	)
	response.Success(c, shift)
}

// UpdateShift records bag counts and clock-out.
func (h *Handler) UpdateShift(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	shift, err := h.ShiftService.UpdateShift(id, service.UpdateShiftInput{
		BagsCollected: req.BagsCollected,
		ClockOut:      req.ClockOut,
		Location:      req.Location,
		Notes:         req.Notes,
	})
	if err != nil {
		respondServiceError(c, err, "failed to update shift")
		return
	}

	response.Success(c, shift)
}

// DeleteShift removes a shift record.
func (h *Handler) DeleteShift(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.ShiftService.DeleteShift(id); err != nil {
		respondServiceError(c, err, "failed to delete shift")
		return
	}

	response.SuccessWithMsg(c, "shift deleted", nil)
}
