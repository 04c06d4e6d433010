package models

import "time"

// MonthlyApprovalRow is the persisted lookup row pointing at a monthly
// approval aggregate.
type MonthlyApprovalRow struct {
	ApprovalID  string    `db:"approval_id"`
	MemberID    string    `db:"member_id"`
	PeriodStart time.Time `db:"period_start"`
	PeriodEnd   time.Time `db:"period_end"`
	Status      string    `db:"status"`
}

// DailyEntryApproval is the persisted supervisor decision row.
type DailyEntryApproval struct {
	DecisionID     string    `db:"decision_id"`
	WorkLogEntryID string    `db:"work_log_entry_id"`
	MemberID       string    `db:"member_id"`
	SupervisorID   string    `db:"supervisor_id"`
	EntryDate      time.Time `db:"entry_date"`
	Status         string    `db:"status"`
	Comment        string    `db:"comment"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}
