package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyEntry is the persisted daily-entry projection row.
type DailyEntry struct {
	EntryID   string          `db:"entry_id"`
	MemberID  string          `db:"member_id"`
	ProjectID string          `db:"project_id"`
	EntryDate time.Time       `db:"entry_date"`
	Hours     decimal.Decimal `db:"hours"`
	Comment   string          `db:"comment"`
	Status    string          `db:"status"`
	EnteredBy string          `db:"entered_by"`
}
