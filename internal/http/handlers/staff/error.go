package staff

import (
	"errors"

	"github.com/sdrescue/trashtrack/internal/http/response"
	"github.com/sdrescue/trashtrack/internal/logger"
	"github.com/sdrescue/trashtrack/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	if c != nil {
		if requestID, ok := c.Get("request_id"); ok {
			if id, ok := requestID.(string); ok && id != "" {
				return logger.S().With("request_id", id)
			}
		}
	}
	return logger.S()
}

func respondError(c *gin.Context, code int, msg string, err error) {
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		requestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}

// respondServiceError maps the sentinel errors services return onto
// the shared response codes. Anything unmapped is treated as internal.
func respondServiceError(c *gin.Context, err error, internalMsg string) {
	var denied *service.PaymentDeniedError
	switch {
	case errors.As(err, &denied):
		response.ErrorWithData(c, response.CodeBadRequest, denied.Result.Reason, gin.H{
			"validation": denied.Result,
		})
	case errors.Is(err, service.ErrParticipantNotFound):
		respondError(c, response.CodeNotFound, "participant not found", nil)
	case errors.Is(err, service.ErrShiftNotFound):
		respondError(c, response.CodeNotFound, "shift not found", nil)
	case errors.Is(err, service.ErrHomeworkNotFound):
		respondError(c, response.CodeNotFound, "homework assignment not found", nil)
	case errors.Is(err, service.ErrUserNotFound):
		respondError(c, response.CodeNotFound, "user not found", nil)
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "not found", nil)
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(c, response.CodeUnauthorized, "invalid email or password", nil)
	case errors.Is(err, service.ErrUserDisabled):
		respondError(c, response.CodeUnauthorized, "account is disabled", nil)
	case errors.Is(err, service.ErrInvalidPassword):
		respondError(c, response.CodeBadRequest, "current password is incorrect", nil)
	case errors.Is(err, service.ErrWeakPassword):
		respondError(c, response.CodeBadRequest, err.Error(), nil)
	case errors.Is(err, service.ErrEmailTaken):
		respondError(c, response.CodeBadRequest, "email is already in use", nil)
	case errors.Is(err, service.ErrInvalidRole):
		respondError(c, response.CodeBadRequest, "invalid role", nil)
	case errors.Is(err, service.ErrShiftAlreadyActive):
		respondError(c, response.CodeBadRequest, "participant is already clocked in", nil)
	case errors.Is(err, service.ErrShiftAlreadyClosed):
		respondError(c, response.CodeBadRequest, "shift is already clocked out", nil)
	case errors.Is(err, service.ErrParticipantNameRequired),
		errors.Is(err, service.ErrHomeworkTitleRequired),
		errors.Is(err, service.ErrOtherHousingDetailsRequired),
		errors.Is(err, service.ErrInvalidHousingStatus),
		errors.Is(err, service.ErrInvalidEmploymentStatus):
		respondError(c, response.CodeBadRequest, err.Error(), nil)
	default:
		respondError(c, response.CodeInternal, internalMsg, err)
	}
}
