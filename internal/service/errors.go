package service

import "errors"

// Sentinel errors shared across services. Handlers map these to HTTP
// status codes and response messages.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserDisabled       = errors.New("account is disabled")
	ErrInvalidPassword    = errors.New("incorrect password")
	ErrWeakPassword       = errors.New("password does not meet policy")
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidRole        = errors.New("invalid role")

	ErrNotFound            = errors.New("record not found")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrParticipantInactive = errors.New("participant is not active")
	ErrShiftNotFound       = errors.New("shift not found")
	ErrShiftAlreadyActive  = errors.New("participant already has an active shift")
	ErrShiftAlreadyClosed  = errors.New("shift is already clocked out")
	ErrHomeworkNotFound    = errors.New("homework assignment not found")
	ErrUserNotFound        = errors.New("user not found")

	ErrPaymentNotAllowed = errors.New("payment not allowed")

	ErrInvalidHousingStatus    = errors.New("invalid housing status")
	ErrInvalidEmploymentStatus = errors.New("invalid employment status")
)

// PaymentDeniedError wraps ErrPaymentNotAllowed with the eligibility
// snapshot taken at denial time, so handlers can return the detail the
// caller needs to explain the refusal.
type PaymentDeniedError struct {
	Result EligibilityResult
}

func (e *PaymentDeniedError) Error() string {
	return e.Result.Reason
}

func (e *PaymentDeniedError) Is(target error) bool {
	return target == ErrPaymentNotAllowed
}
