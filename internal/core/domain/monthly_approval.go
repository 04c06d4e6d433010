package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/totodo713/miometory-sub007/internal/apperrors"
)

// MonthlyApprovalStatus is the state of a member's fiscal month.
type MonthlyApprovalStatus string

const (
	ApprovalPending   MonthlyApprovalStatus = "PENDING"
	ApprovalSubmitted MonthlyApprovalStatus = "SUBMITTED"
	ApprovalApproved  MonthlyApprovalStatus = "APPROVED"
	ApprovalRejected  MonthlyApprovalStatus = "REJECTED"
)

const maxRejectionReasonLength = 1000

// MonthlyApproval is the event-sourced aggregate governing submission and
// review of a member's fiscal month. Once APPROVED it is permanently
// immutable: no further transitions of any kind.
type MonthlyApproval struct {
	ID              string
	MemberID        string
	PeriodStart     time.Time
	PeriodEnd       time.Time
	Status          MonthlyApprovalStatus
	SubmittedAt     *time.Time
	SubmittedBy     string
	ReviewedAt      *time.Time
	ReviewedBy      string
	RejectionReason string
	WorkLogEntryIDs []string
	AbsenceIDs      []string
	Version         int64
}

// CreateMonthlyApproval opens the aggregate in PENDING state.
func CreateMonthlyApproval(id, memberID string, periodStart, periodEnd, now time.Time) (*MonthlyApproval, Event, error) {
	approval := &MonthlyApproval{ID: id}
	evt := approval.newEvent(EventMonthlyApprovalCreated, &MonthlyApprovalCreated{
		MemberID:    memberID,
		PeriodStart: DateOnly(periodStart),
		PeriodEnd:   DateOnly(periodEnd),
	}, now)
	if err := approval.apply(evt); err != nil {
		return nil, Event{}, err
	}
	return approval, evt, nil
}

// ReplayMonthlyApproval folds an ordered event stream back into aggregate
// state.
func ReplayMonthlyApproval(events []Event) (*MonthlyApproval, error) {
	if len(events) == 0 {
		return nil, apperrors.NewNotFoundError("monthly approval not found")
	}
	if err := VerifyContiguous(events); err != nil {
		return nil, apperrors.NewCorruptError(err.Error())
	}
	approval := &MonthlyApproval{ID: events[0].AggregateID}
	for _, evt := range events {
		if err := approval.apply(evt); err != nil {
			return nil, err
		}
	}
	return approval, nil
}

// Submit is allowed from PENDING or REJECTED only. The id sets are replaced
// wholesale; resubmission is not additive.
func (a *MonthlyApproval) Submit(submittedBy string, workLogEntryIDs, absenceIDs []string, now time.Time) (Event, error) {
	switch a.Status {
	case ApprovalPending, ApprovalRejected:
		// ok
	case ApprovalApproved:
		return Event{}, apperrors.NewConflictError(apperrors.CodeAlreadyApproved, "month is already approved")
	default:
		return Event{}, apperrors.NewConflictError(apperrors.CodeAlreadySubmitted, "month is already submitted")
	}
	evt := a.newEvent(EventMonthlySubmitted, &MonthlySubmitted{
		WorkLogEntryIDs: workLogEntryIDs,
		AbsenceIDs:      absenceIDs,
		SubmittedBy:     submittedBy,
	}, now)
	if err := a.apply(evt); err != nil {
		return Event{}, err
	}
	return evt, nil
}

// Approve locks the month. Allowed only from SUBMITTED; clears any rejection
// reason from a prior cycle.
func (a *MonthlyApproval) Approve(reviewedBy string, now time.Time) (Event, error) {
	if err := a.requireSubmitted(); err != nil {
		return Event{}, err
	}
	evt := a.newEvent(EventMonthlyApproved, &MonthlyApproved{ReviewedBy: reviewedBy}, now)
	if err := a.apply(evt); err != nil {
		return Event{}, err
	}
	return evt, nil
}

// Reject returns the month to the member. Allowed only from SUBMITTED; the
// reason must be non-blank and at most 1000 characters.
func (a *MonthlyApproval) Reject(reviewedBy, reason string, now time.Time) (Event, error) {
	if err := a.requireSubmitted(); err != nil {
		return Event{}, err
	}
	if strings.TrimSpace(reason) == "" || len([]rune(reason)) > maxRejectionReasonLength {
		return Event{}, apperrors.NewValidationError(apperrors.CodeRejectionReasonInvalid, fmt.Sprintf("rejection reason must be non-blank and at most %d characters", maxRejectionReasonLength))
	}
	evt := a.newEvent(EventMonthlyRejected, &MonthlyRejected{ReviewedBy: reviewedBy, RejectionReason: reason}, now)
	if err := a.apply(evt); err != nil {
		return Event{}, err
	}
	return evt, nil
}

func (a *MonthlyApproval) requireSubmitted() error {
	switch a.Status {
	case ApprovalSubmitted:
		return nil
	case ApprovalApproved:
		return apperrors.NewConflictError(apperrors.CodeAlreadyApproved, "month is already approved")
	default:
		return apperrors.NewConflictError(apperrors.CodeInvalidStatusTransition, fmt.Sprintf("month in status %s cannot be reviewed", a.Status))
	}
}

func (a *MonthlyApproval) newEvent(eventType EventType, payload any, now time.Time) Event {
	return Event{
		EventID:       uuid.NewString(),
		AggregateID:   a.ID,
		AggregateType: AggregateMonthlyApproval,
		EventType:     eventType,
		Payload:       payload,
		Version:       a.Version + 1,
		OccurredAt:    now,
	}
}

func (a *MonthlyApproval) apply(evt Event) error {
	switch p := evt.Payload.(type) {
	case *MonthlyApprovalCreated:
		a.MemberID = p.MemberID
		a.PeriodStart = p.PeriodStart
		a.PeriodEnd = p.PeriodEnd
		a.Status = ApprovalPending
	case *MonthlySubmitted:
		a.Status = ApprovalSubmitted
		at := evt.OccurredAt
		a.SubmittedAt = &at
		a.SubmittedBy = p.SubmittedBy
		a.WorkLogEntryIDs = append([]string(nil), p.WorkLogEntryIDs...)
		a.AbsenceIDs = append([]string(nil), p.AbsenceIDs...)
	case *MonthlyApproved:
		a.Status = ApprovalApproved
		at := evt.OccurredAt
		a.ReviewedAt = &at
		a.ReviewedBy = p.ReviewedBy
		a.RejectionReason = ""
	case *MonthlyRejected:
		a.Status = ApprovalRejected
		at := evt.OccurredAt
		a.ReviewedAt = &at
		a.ReviewedBy = p.ReviewedBy
		a.RejectionReason = p.RejectionReason
	default:
		return apperrors.NewCorruptError(fmt.Sprintf("unexpected payload %T on monthly approval %s", evt.Payload, a.ID))
	}
	a.Version = evt.Version
	return nil
}
