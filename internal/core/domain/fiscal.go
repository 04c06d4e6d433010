package domain

import "time"

// PatternScope records which configuration level supplied a pattern. It is
// reported for traceability only, never used for control flow.
type PatternScope string

const (
	ScopeOrganization PatternScope = "ORGANIZATION"
	ScopeTenant       PatternScope = "TENANT"
	ScopeDefault      PatternScope = "DEFAULT"
)

// FiscalYearPattern defines when an organization's fiscal year begins.
type FiscalYearPattern struct {
	StartMonth time.Month
	StartDay   int
}

// MonthlyPeriodPattern defines the cut-over day-of-month for a fiscal month,
// e.g. start day 21 gives 21st-to-20th accounting windows.
type MonthlyPeriodPattern struct {
	StartDay int
}

// FiscalMonth is a resolved accounting window. Start and End are inclusive.
type FiscalMonth struct {
	Start      time.Time
	End        time.Time
	FiscalYear int
	// MonthIndex numbers months 1..12 in fiscal order, counted from the
	// fiscal year's start month.
	MonthIndex int
}

// Contains reports whether date falls inside the period.
func (m FiscalMonth) Contains(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(m.Start) && !d.After(m.End)
}

// ResolveFiscalMonth computes the fiscal month containing date. With a
// monthly start day s, the period containing a date before the s-th runs
// from the s-th of the prior calendar month through the day before the s-th
// of the current one.
func ResolveFiscalMonth(date time.Time, fy FiscalYearPattern, mp MonthlyPeriodPattern) FiscalMonth {
	d := DateOnly(date)
	year, month := d.Year(), d.Month()

	start := periodStart(year, month, mp.StartDay)
	if d.Before(start) {
		year, month = prevMonth(year, month)
		start = periodStart(year, month, mp.StartDay)
	}
	nextYear, nextMonthVal := nextMonth(year, month)
	end := periodStart(nextYear, nextMonthVal, mp.StartDay).AddDate(0, 0, -1)

	// The period is attributed to the calendar month it ends in.
	index := fiscalMonthIndex(end.Month(), fy.StartMonth)

	// Fiscal year label: the calendar year containing the fiscal year's
	// final month, reached by walking forward from the period month.
	fiscalYearEnd := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 12-index, 0)

	return FiscalMonth{
		Start:      start,
		End:        end,
		FiscalYear: fiscalYearEnd.Year(),
		MonthIndex: index,
	}
}

func fiscalMonthIndex(month, fiscalStartMonth time.Month) int {
	return (int(month)-int(fiscalStartMonth)+12)%12 + 1
}

// periodStart clamps the configured start day to the month's length so a
// pattern like "31st" still produces a valid date in February.
func periodStart(year int, month time.Month, day int) time.Time {
	if day < 1 {
		day = 1
	}
	if last := daysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()
}

func prevMonth(year int, month time.Month) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	return t.Year(), t.Month()
}

func nextMonth(year int, month time.Month) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return t.Year(), t.Month()
}
