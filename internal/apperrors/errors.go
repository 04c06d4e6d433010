package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Category sentinels. Callers branch on these via errors.Is; the concrete
// AppError carries the stable machine-readable code.

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates that the requested mutation lost a race or is not
// allowed from the aggregate's current state.
var ErrConflict = errors.New("conflict")

// ErrForbidden indicates that the actor lacks the relationship required for
// the operation.
var ErrForbidden = errors.New("forbidden")

// ErrCorrupt indicates storage-layer corruption, such as a gap in an event
// stream. This is the only fatal category: abort, never partially recover.
var ErrCorrupt = errors.New("corrupted state")

// Stable error codes surfaced to API clients. Codes never change across
// releases; messages may.
const (
	CodeDateRequired           = "DATE_REQUIRED"
	CodeDateInFuture           = "DATE_IN_FUTURE"
	CodeCommentTooLong         = "COMMENT_TOO_LONG"
	CodeTimeAmountRequired     = "TIME_AMOUNT_REQUIRED"
	CodeTimeAmountNegative     = "TIME_AMOUNT_NEGATIVE"
	CodeTimeAmountTooLarge     = "TIME_AMOUNT_TOO_LARGE"
	CodeTimeAmountGranularity  = "TIME_AMOUNT_GRANULARITY"
	CodeRejectionReasonInvalid = "REJECTION_REASON_INVALID"
	CodeDailyCommentRequired   = "DAILY_REJECTION_COMMENT_REQUIRED"

	CodeConcurrencyConflict     = "CONCURRENCY_CONFLICT"
	CodeInvalidStatusTransition = "INVALID_STATUS_TRANSITION"
	CodeEntryNotEditable        = "ENTRY_NOT_EDITABLE"
	CodeEntryNotDeletable       = "ENTRY_NOT_DELETABLE"
	CodeAlreadySubmitted        = "ALREADY_SUBMITTED"
	CodeAlreadyApproved         = "ALREADY_APPROVED"
	CodeRecallNotAllowed        = "RECALL_NOT_ALLOWED"
	CodeRecallBlockedByApproval = "RECALL_BLOCKED_BY_APPROVAL"

	CodePermissionDenied   = "PERMISSION_DENIED"
	CodeEventStreamCorrupt = "EVENT_STREAM_CORRUPT"
	CodeNotFound           = "NOT_FOUND"
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeInternal           = "INTERNAL"
)

// AppError is the concrete error type returned by the core. Code is stable;
// Message is for humans only.
type AppError struct {
	Code    string
	Status  int
	Message string

	category error
	cause    error
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is lets errors.Is match the category sentinel.
func (e *AppError) Is(target error) bool {
	return e.category != nil && target == e.category
}

func (e *AppError) Unwrap() error {
	return e.cause
}

// NewAppError wraps an unexpected failure (storage, serialization) with an
// HTTP status. Used by repositories for infrastructure errors.
func NewAppError(status int, message string, cause error) *AppError {
	return &AppError{Code: CodeInternal, Status: status, Message: message, cause: cause}
}

// NewValidationError builds a recoverable input-validation error.
func NewValidationError(code, message string) *AppError {
	return &AppError{Code: code, Status: http.StatusBadRequest, Message: message, category: ErrValidation}
}

// NewConflictError builds a state or concurrency conflict error.
func NewConflictError(code, message string) *AppError {
	return &AppError{Code: code, Status: http.StatusConflict, Message: message, category: ErrConflict}
}

// NewForbiddenError builds a permission error.
func NewForbiddenError(message string) *AppError {
	return &AppError{Code: CodePermissionDenied, Status: http.StatusForbidden, Message: message, category: ErrForbidden}
}

// NewNotFoundError builds a missing-resource error.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: CodeNotFound, Status: http.StatusNotFound, Message: message, category: ErrNotFound}
}

// NewCorruptError marks fatal storage corruption.
func NewCorruptError(message string) *AppError {
	return &AppError{Code: CodeEventStreamCorrupt, Status: http.StatusInternalServerError, Message: message, category: ErrCorrupt}
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// CodeOf extracts the stable code from err, or CodeInternal when err carries
// no AppError.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// MessageOf extracts the human-readable message from err. Errors that carry
// no AppError collapse to a generic message so internals never leak to
// clients.
func MessageOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return "an internal error occurred"
}

// StatusOf extracts the HTTP status from err, defaulting to 500.
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Status != 0 {
		return appErr.Status
	}
	return http.StatusInternalServerError
}
