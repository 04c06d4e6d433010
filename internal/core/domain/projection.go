package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyEntry is the read-optimized projection row shadowing a work-log entry
// aggregate. It is always derivable from the event log and never
// authoritative.
type DailyEntry struct {
	EntryID   string        `json:"entryID"`
	MemberID  string        `json:"memberID"`
	ProjectID string        `json:"projectID"`
	Date      time.Time     `json:"date"`
	Hours     TimeAmount    `json:"hours"`
	Comment   string        `json:"comment,omitempty"`
	Status    WorkLogStatus `json:"status"`
	EnteredBy string        `json:"enteredBy"`
}

// CalendarEntry is one entry's contribution to a calendar day.
type CalendarEntry struct {
	EntryID   string        `json:"entryID"`
	ProjectID string        `json:"projectID"`
	Hours     TimeAmount    `json:"hours"`
	Status    WorkLogStatus `json:"status"`
}

// CalendarDay is the per-date rollup for a member's fiscal month. TotalHours
// is a plain decimal because a rollup is not bound by the single-entry
// 24-hour rule.
type CalendarDay struct {
	Date       time.Time       `json:"date"`
	TotalHours decimal.Decimal `json:"totalHours"`
	Entries    []CalendarEntry `json:"entries"`
}

// ProjectSummary is the per-project rollup for a member's fiscal month.
// Percentage is of the member's fiscal-month total, 0 when that total is 0.
type ProjectSummary struct {
	ProjectID  string          `json:"projectID"`
	TotalHours decimal.Decimal `json:"totalHours"`
	Percentage decimal.Decimal `json:"percentage"`
}

// MonthlyApprovalRow is the lookup projection that locates the monthly
// approval aggregate for a member and period without scanning the log.
type MonthlyApprovalRow struct {
	ApprovalID  string                `json:"approvalID"`
	MemberID    string                `json:"memberID"`
	PeriodStart time.Time             `json:"periodStart"`
	PeriodEnd   time.Time             `json:"periodEnd"`
	Status      MonthlyApprovalStatus `json:"status"`
}
