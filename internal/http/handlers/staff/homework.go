package staff

import (
	"strings"

	"github.com/sdrescue/trashtrack/internal/http/response"
	"github.com/sdrescue/trashtrack/internal/repository"
	"github.com/sdrescue/trashtrack/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateHomeworkRequest assigns homework to a participant.
type CreateHomeworkRequest struct {
	ParticipantID uint   `json:"participant_id" binding:"required"`
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description"`
	DueDate       string `json:"due_date"`
	Notes         string `json:"notes"`
}

// UpdateHomeworkRequest carries partial assignment changes.
type UpdateHomeworkRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	DueDate      *string `json:"due_date"`
	ClearDueDate bool    `json:"clear_due_date"`
	Notes        *string `json:"notes"`
	IsCompleted  *bool   `json:"is_completed"`
}

// GetHomework lists homework assignments. The filter query accepts
// pending, overdue, or completed.
func (h *Handler) GetHomework(c *gin.Context) {
	page, pageSize := pageFromQuery(c)
	participantID, ok := parseUintQuery(c, "participant_id")
	if !ok {
		return
	}
	filter := strings.TrimSpace(strings.ToLower(c.Query("filter")))

	assignments, total, err := h.HomeworkService.ListHomework(repository.HomeworkListFilter{
		Page:          page,
		PageSize:      pageSize,
		ParticipantID: participantID,
		Filter:        filter,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list homework", err)
		return
	}

	response.SuccessWithPage(c, assignments, buildPagination(page, pageSize, total))
}

// CreateHomework assigns homework.
func (h *Handler) CreateHomework(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req CreateHomeworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "participant_id and title are required", err)
		return
	}
	dueDate, err := parseTimeNullable(req.DueDate)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid due date", err)
		return
	}

	assignment, err := h.HomeworkService.CreateHomework(service.CreateHomeworkInput{
		ParticipantID: req.ParticipantID,
		Title:         req.Title,
		Description:   optionalString(req.Description),
		DueDate:       dueDate,
		Notes:         optionalString(req.Notes),
		AssignedByID:  &userID,
	})
	if err != nil {
		respondServiceError(c, err, "failed to assign homework")
		return
	}

	response.Success(c, assignment)
}

// UpdateHomework applies partial changes, including completion toggles.
func (h *Handler) UpdateHomework(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateHomeworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	input := service.UpdateHomeworkInput{
		Title:        req.Title,
		Description:  req.Description,
		ClearDueDate: req.ClearDueDate,
		Notes:        req.Notes,
		IsCompleted:  req.IsCompleted,
	}
	if req.DueDate != nil {
		dueDate, err := parseTimeNullable(*req.DueDate)
		if err != nil {
			respondError(c, response.CodeBadRequest, "invalid due date", err)
			return
		}
		if dueDate == nil {
			input.ClearDueDate = true
		} else {
			input.DueDate = dueDate
		}
	}

	assignment, err := h.HomeworkService.UpdateHomework(id, input)
	if err != nil {
		respondServiceError(c, err, "failed to update homework")
		return
	}

	response.Success(c, assignment)
}

// DeleteHomework removes an assignment.
func (h *Handler) DeleteHomework(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.HomeworkService.DeleteHomework(id); err != nil {
		respondServiceError(c, err, "failed to delete homework")
		return
	}

	response.SuccessWithMsg(c, "homework deleted", nil)
}
