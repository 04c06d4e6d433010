package dto

import (
	"time"

	"github.com/totodo713/miometory-sub007/internal/apperrors"
)

// DateLayout is the wire format for date-only fields.
const DateLayout = "2006-01-02"

// ParseDate parses an optional wire date. A nil or empty value yields the
// zero time so the domain can report its own DATE_REQUIRED code.
func ParseDate(value *string) (time.Time, error) {
	if value == nil || *value == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(DateLayout, *value, time.UTC)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError(apperrors.CodeDateRequired, "date must use format "+DateLayout)
	}
	return t, nil
}

// FormatDate renders a date-only field, empty for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// ErrorResponse is the uniform error body returned by handlers.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
