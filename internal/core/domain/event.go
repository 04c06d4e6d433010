package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// AggregateType identifies which event-sourced aggregate an event belongs to.
type AggregateType string

const (
	AggregateWorkLogEntry    AggregateType = "WORK_LOG_ENTRY"
	AggregateMonthlyApproval AggregateType = "MONTHLY_APPROVAL"
)

// EventType tags the payload union. The set is closed per aggregate type;
// payloads may only ever gain optional fields so old log entries stay
// replayable.
type EventType string

const (
	EventWorkLogCreated       EventType = "WORK_LOG_CREATED"
	EventWorkLogUpdated       EventType = "WORK_LOG_UPDATED"
	EventWorkLogStatusChanged EventType = "WORK_LOG_STATUS_CHANGED"
	EventWorkLogDeleted       EventType = "WORK_LOG_DELETED"

	EventMonthlyApprovalCreated EventType = "MONTHLY_APPROVAL_CREATED"
	EventMonthlySubmitted       EventType = "MONTHLY_SUBMITTED_FOR_APPROVAL"
	EventMonthlyApproved        EventType = "MONTHLY_APPROVED"
	EventMonthlyRejected        EventType = "MONTHLY_REJECTED"
)

// Event is an immutable domain event. For a given AggregateID, versions form
// a contiguous sequence starting at 1; the event log enforces uniqueness of
// (AggregateID, Version) at write time.
type Event struct {
	EventID       string        `json:"eventID"`
	AggregateID   string        `json:"aggregateID"`
	AggregateType AggregateType `json:"aggregateType"`
	EventType     EventType     `json:"eventType"`
	Payload       any           `json:"payload"`
	Version       int64         `json:"version"`
	OccurredAt    time.Time     `json:"occurredAt"`
}

// WorkLogCreated carries the full initial state of a work-log entry.
type WorkLogCreated struct {
	MemberID  string     `json:"memberID"`
	ProjectID string     `json:"projectID"`
	Date      time.Time  `json:"date"`
	Hours     TimeAmount `json:"hours"`
	Comment   string     `json:"comment,omitempty"`
	EnteredBy string     `json:"enteredBy"`
}

// WorkLogUpdated records an edit to a DRAFT entry.
type WorkLogUpdated struct {
	Hours     TimeAmount `json:"hours"`
	Comment   string     `json:"comment,omitempty"`
	UpdatedBy string     `json:"updatedBy"`
}

// WorkLogStatusChanged records a transition of the entry state machine.
type WorkLogStatusChanged struct {
	FromStatus WorkLogStatus `json:"fromStatus"`
	ToStatus   WorkLogStatus `json:"toStatus"`
	ChangedBy  string        `json:"changedBy"`
}

// WorkLogDeleted marks a soft delete; the log keeps history, projections
// drop the row.
type WorkLogDeleted struct {
	DeletedBy string `json:"deletedBy"`
}

// MonthlyApprovalCreated opens a member's fiscal month for approval.
type MonthlyApprovalCreated struct {
	MemberID    string    `json:"memberID"`
	PeriodStart time.Time `json:"periodStart"`
	PeriodEnd   time.Time `json:"periodEnd"`
}

// MonthlySubmitted replaces the referenced id sets wholesale; resubmission is
// not additive.
type MonthlySubmitted struct {
	WorkLogEntryIDs []string `json:"workLogEntryIDs"`
	AbsenceIDs      []string `json:"absenceIDs,omitempty"`
	SubmittedBy     string   `json:"submittedBy"`
}

// MonthlyApproved locks the aggregate permanently.
type MonthlyApproved struct {
	ReviewedBy string `json:"reviewedBy"`
}

// MonthlyRejected returns the month to the member with a reason.
type MonthlyRejected struct {
	ReviewedBy      string `json:"reviewedBy"`
	RejectionReason string `json:"rejectionReason"`
}

// EncodeEventPayload serializes the payload for storage.
func EncodeEventPayload(evt Event) ([]byte, error) {
	data, err := json.Marshal(evt.Payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload for %s: %w", evt.EventType, err)
	}
	return data, nil
}

// DecodeEventPayload deserializes a stored payload into its concrete type.
// Unknown event types are an error: the union is closed.
func DecodeEventPayload(eventType EventType, data []byte) (any, error) {
	var payload any
	switch eventType {
	case EventWorkLogCreated:
		payload = &WorkLogCreated{}
	case EventWorkLogUpdated:
		payload = &WorkLogUpdated{}
	case EventWorkLogStatusChanged:
		payload = &WorkLogStatusChanged{}
	case EventWorkLogDeleted:
		payload = &WorkLogDeleted{}
	case EventMonthlyApprovalCreated:
		payload = &MonthlyApprovalCreated{}
	case EventMonthlySubmitted:
		payload = &MonthlySubmitted{}
	case EventMonthlyApproved:
		payload = &MonthlyApproved{}
	case EventMonthlyRejected:
		payload = &MonthlyRejected{}
	default:
		return nil, fmt.Errorf("unknown event type %q", eventType)
	}
	if err := json.Unmarshal(data, payload); err != nil {
		return nil, fmt.Errorf("decode payload for %s: %w", eventType, err)
	}
	return payload, nil
}

// VerifyContiguous checks that events form a strict version sequence starting
// at 1. A gap or duplicate indicates storage corruption and is fatal.
func VerifyContiguous(events []Event) error {
	for i, evt := range events {
		if evt.Version != int64(i)+1 {
			return fmt.Errorf("event stream for %s: expected version %d, found %d", evt.AggregateID, i+1, evt.Version)
		}
	}
	return nil
}
