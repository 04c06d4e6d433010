package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CalendarDay is the persisted per-date rollup of a member's fiscal month.
type CalendarDay struct {
	MemberID   string          `db:"member_id"`
	FiscalYear int             `db:"fiscal_year"`
	MonthIndex int             `db:"month_index"`
	EntryDate  time.Time       `db:"entry_date"`
	TotalHours decimal.Decimal `db:"total_hours"`
}

// CalendarDayEntry is one entry's contribution to a persisted calendar day.
type CalendarDayEntry struct {
	MemberID   string          `db:"member_id"`
	FiscalYear int             `db:"fiscal_year"`
	MonthIndex int             `db:"month_index"`
	EntryDate  time.Time       `db:"entry_date"`
	EntryID    string          `db:"entry_id"`
	ProjectID  string          `db:"project_id"`
	Hours      decimal.Decimal `db:"hours"`
	Status     string          `db:"status"`
}

// MonthlySummary is the persisted per-project rollup of a member's fiscal
// month.
type MonthlySummary struct {
	MemberID   string          `db:"member_id"`
	FiscalYear int             `db:"fiscal_year"`
	MonthIndex int             `db:"month_index"`
	ProjectID  string          `db:"project_id"`
	TotalHours decimal.Decimal `db:"total_hours"`
	Percentage decimal.Decimal `db:"percentage"`
}
