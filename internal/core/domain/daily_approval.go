package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/totodo713/miometory-sub007/internal/apperrors"
)

// DailyApprovalStatus is the state of a supervisor's per-entry decision.
type DailyApprovalStatus string

const (
	DailyApproved DailyApprovalStatus = "APPROVED"
	DailyRejected DailyApprovalStatus = "REJECTED"
	DailyRecalled DailyApprovalStatus = "RECALLED"
)

// DailyEntryApproval is a supervisor decision layered on top of a work-log
// entry, independent of the monthly workflow. It is a plain record, not an
// event-sourced aggregate. At most one non-RECALLED row exists per entry;
// a newer decision supersedes the prior one, which is kept for audit.
type DailyEntryApproval struct {
	ID             string
	WorkLogEntryID string
	MemberID       string
	SupervisorID   string
	EntryDate      time.Time
	Status         DailyApprovalStatus
	Comment        string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewDailyEntryApproval validates and builds a decision. A REJECTED decision
// requires a comment so the member knows what to fix.
func NewDailyEntryApproval(id, workLogEntryID, memberID, supervisorID string, entryDate time.Time, status DailyApprovalStatus, comment string, now time.Time) (*DailyEntryApproval, error) {
	switch status {
	case DailyApproved:
		// ok
	case DailyRejected:
		if strings.TrimSpace(comment) == "" {
			return nil, apperrors.NewValidationError(apperrors.CodeDailyCommentRequired, "a rejection decision requires a comment")
		}
	default:
		return nil, apperrors.NewValidationError(apperrors.CodeInvalidStatusTransition, fmt.Sprintf("a new decision cannot start in status %s", status))
	}
	return &DailyEntryApproval{
		ID:             id,
		WorkLogEntryID: workLogEntryID,
		MemberID:       memberID,
		SupervisorID:   supervisorID,
		EntryDate:      DateOnly(entryDate),
		Status:         status,
		Comment:        comment,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// Recall withdraws an APPROVED decision. It is the only mutation a decision
// permits; any other starting status fails.
func (d *DailyEntryApproval) Recall(now time.Time) error {
	if d.Status != DailyApproved {
		return apperrors.NewConflictError(apperrors.CodeRecallNotAllowed, fmt.Sprintf("decision in status %s cannot be recalled", d.Status))
	}
	d.Status = DailyRecalled
	d.UpdatedAt = now
	return nil
}
