package models

// FiscalYearPattern is a persisted fiscal-year start rule for one scope.
type FiscalYearPattern struct {
	Scope      string `db:"scope"`
	ScopeID    string `db:"scope_id"`
	StartMonth int    `db:"start_month"`
	StartDay   int    `db:"start_day"`
}

// MonthlyPeriodPattern is a persisted monthly cut-over rule for one scope.
type MonthlyPeriodPattern struct {
	Scope    string `db:"scope"`
	ScopeID  string `db:"scope_id"`
	StartDay int    `db:"start_day"`
}

// HolidayRule is a persisted holiday rule for one scope. Day is used by
// FIXED rules; Nth and Weekday by NTH_WEEKDAY rules. SpecificYear zero means
// every year.
type HolidayRule struct {
	RuleID        string `db:"rule_id"`
	Scope         string `db:"scope"`
	ScopeID       string `db:"scope_id"`
	Name          string `db:"name"`
	LocalizedName string `db:"localized_name"`
	RuleType      string `db:"rule_type"`
	Month         int    `db:"month"`
	Day           int    `db:"day"`
	Nth           int    `db:"nth"`
	Weekday       int    `db:"weekday"`
	SpecificYear  int    `db:"specific_year"`
}
