package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/totodo713/miometory-sub007/internal/apperrors"
)

// WorkLogStatus is the state of a single day/project time record.
type WorkLogStatus string

const (
	WorkLogDraft     WorkLogStatus = "DRAFT"
	WorkLogSubmitted WorkLogStatus = "SUBMITTED"
	WorkLogApproved  WorkLogStatus = "APPROVED"
	WorkLogRejected  WorkLogStatus = "REJECTED"
)

const maxCommentLength = 500

// workLogTransitions is the transition table for ChangeStatus. DRAFT is
// deliberately absent as a target everywhere: returning an entry to DRAFT
// happens only through RevertToDraft, which the monthly-rejection cascade
// alone invokes.
var workLogTransitions = map[WorkLogStatus][]WorkLogStatus{
	WorkLogDraft:     {WorkLogSubmitted},
	WorkLogSubmitted: {WorkLogApproved, WorkLogRejected},
	WorkLogRejected:  {},
	WorkLogApproved:  {},
}

// WorkLogEntry is the event-sourced time-entry aggregate. State is produced
// solely by folding its ordered event stream; commands emit events and apply
// them in the same call.
type WorkLogEntry struct {
	ID        string
	MemberID  string
	ProjectID string
	Date      time.Time
	Hours     TimeAmount
	Comment   string
	Status    WorkLogStatus
	EnteredBy string
	Version   int64
	Deleted   bool
}

// CreateWorkLogEntry validates the command and returns the new aggregate with
// its Created event. today is the clock-supplied current date.
func CreateWorkLogEntry(id, memberID, projectID string, date time.Time, hours TimeAmount, comment, enteredBy string, today, now time.Time) (*WorkLogEntry, Event, error) {
	if date.IsZero() {
		return nil, Event{}, apperrors.NewValidationError(apperrors.CodeDateRequired, "date is required")
	}
	if DateOnly(date).After(today) {
		return nil, Event{}, apperrors.NewValidationError(apperrors.CodeDateInFuture, "date must not be in the future")
	}
	if len([]rune(comment)) > maxCommentLength {
		return nil, Event{}, apperrors.NewValidationError(apperrors.CodeCommentTooLong, fmt.Sprintf("comment must be at most %d characters", maxCommentLength))
	}

	entry := &WorkLogEntry{ID: id}
	evt := entry.newEvent(EventWorkLogCreated, &WorkLogCreated{
		MemberID:  memberID,
		ProjectID: projectID,
		Date:      DateOnly(date),
		Hours:     hours,
		Comment:   comment,
		EnteredBy: enteredBy,
	}, now)
	if err := entry.apply(evt); err != nil {
		return nil, Event{}, err
	}
	return entry, evt, nil
}

// ReplayWorkLogEntry folds an ordered event stream back into aggregate state.
func ReplayWorkLogEntry(events []Event) (*WorkLogEntry, error) {
	if len(events) == 0 {
		return nil, apperrors.NewNotFoundError("work log entry not found")
	}
	if err := VerifyContiguous(events); err != nil {
		return nil, apperrors.NewCorruptError(err.Error())
	}
	entry := &WorkLogEntry{ID: events[0].AggregateID}
	for _, evt := range events {
		if err := entry.apply(evt); err != nil {
			return nil, err
		}
	}
	return entry, nil
}

// Update edits hours/comment. Allowed only while DRAFT.
func (e *WorkLogEntry) Update(hours TimeAmount, comment, updatedBy string, now time.Time) (Event, error) {
	if e.Status != WorkLogDraft {
		return Event{}, apperrors.NewConflictError(apperrors.CodeEntryNotEditable, fmt.Sprintf("entry in status %s cannot be edited", e.Status))
	}
	if len([]rune(comment)) > maxCommentLength {
		return Event{}, apperrors.NewValidationError(apperrors.CodeCommentTooLong, fmt.Sprintf("comment must be at most %d characters", maxCommentLength))
	}
	evt := e.newEvent(EventWorkLogUpdated, &WorkLogUpdated{Hours: hours, Comment: comment, UpdatedBy: updatedBy}, now)
	if err := e.apply(evt); err != nil {
		return Event{}, err
	}
	return evt, nil
}

// ChangeStatus validates against the transition table and emits
// StatusChanged. Any disallowed pair fails with a conflict carrying both
// states.
func (e *WorkLogEntry) ChangeStatus(target WorkLogStatus, changedBy string, now time.Time) (Event, error) {
	if !transitionAllowed(e.Status, target) {
		return Event{}, apperrors.NewConflictError(apperrors.CodeInvalidStatusTransition, fmt.Sprintf("transition %s -> %s is not allowed", e.Status, target))
	}
	evt := e.newEvent(EventWorkLogStatusChanged, &WorkLogStatusChanged{FromStatus: e.Status, ToStatus: target, ChangedBy: changedBy}, now)
	if err := e.apply(evt); err != nil {
		return Event{}, err
	}
	return evt, nil
}

// RevertToDraft returns a SUBMITTED or REJECTED entry to DRAFT so it can be
// corrected. This path belongs to the monthly-rejection cascade and is not
// reachable through ChangeStatus.
func (e *WorkLogEntry) RevertToDraft(changedBy string, now time.Time) (Event, error) {
	if e.Status != WorkLogSubmitted && e.Status != WorkLogRejected {
		return Event{}, apperrors.NewConflictError(apperrors.CodeInvalidStatusTransition, fmt.Sprintf("transition %s -> %s is not allowed", e.Status, WorkLogDraft))
	}
	evt := e.newEvent(EventWorkLogStatusChanged, &WorkLogStatusChanged{FromStatus: e.Status, ToStatus: WorkLogDraft, ChangedBy: changedBy}, now)
	if err := e.apply(evt); err != nil {
		return Event{}, err
	}
	return evt, nil
}

// Delete soft-deletes a DRAFT entry. The event log keeps the full history;
// projections drop the row.
func (e *WorkLogEntry) Delete(deletedBy string, now time.Time) (Event, error) {
	if e.Status != WorkLogDraft {
		return Event{}, apperrors.NewConflictError(apperrors.CodeEntryNotDeletable, fmt.Sprintf("entry in status %s cannot be deleted", e.Status))
	}
	evt := e.newEvent(EventWorkLogDeleted, &WorkLogDeleted{DeletedBy: deletedBy}, now)
	if err := e.apply(evt); err != nil {
		return Event{}, err
	}
	return evt, nil
}

// IsProxyEntry reports whether the entry was recorded on the member's behalf
// by someone else. Derived, never persisted.
func (e *WorkLogEntry) IsProxyEntry() bool {
	return e.EnteredBy != e.MemberID
}

func (e *WorkLogEntry) newEvent(eventType EventType, payload any, now time.Time) Event {
	return Event{
		EventID:       uuid.NewString(),
		AggregateID:   e.ID,
		AggregateType: AggregateWorkLogEntry,
		EventType:     eventType,
		Payload:       payload,
		Version:       e.Version + 1,
		OccurredAt:    now,
	}
}

func (e *WorkLogEntry) apply(evt Event) error {
	switch p := evt.Payload.(type) {
	case *WorkLogCreated:
		e.MemberID = p.MemberID
		e.ProjectID = p.ProjectID
		e.Date = p.Date
		e.Hours = p.Hours
		e.Comment = p.Comment
		e.EnteredBy = p.EnteredBy
		e.Status = WorkLogDraft
	case *WorkLogUpdated:
		e.Hours = p.Hours
		e.Comment = p.Comment
	case *WorkLogStatusChanged:
		e.Status = p.ToStatus
	case *WorkLogDeleted:
		e.Deleted = true
	default:
		return apperrors.NewCorruptError(fmt.Sprintf("unexpected payload %T on work log entry %s", evt.Payload, e.ID))
	}
	e.Version = evt.Version
	return nil
}

func transitionAllowed(from, to WorkLogStatus) bool {
	for _, allowed := range workLogTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
