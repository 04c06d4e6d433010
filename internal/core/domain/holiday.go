package domain

import "time"

// HolidayRuleType selects how a holiday's date is computed each year.
type HolidayRuleType string

const (
	// HolidayFixed matches a fixed month/day every year, or a single year
	// when SpecificYear is set.
	HolidayFixed HolidayRuleType = "FIXED"
	// HolidayNthWeekday matches the nth occurrence of a weekday in a month,
	// e.g. the second Monday of January.
	HolidayNthWeekday HolidayRuleType = "NTH_WEEKDAY"
)

// HolidayRule describes one holiday. A rule produces at most one date per
// calendar year.
type HolidayRule struct {
	Name          string
	LocalizedName string
	Type          HolidayRuleType
	Month         time.Month
	// Day is the day-of-month for FIXED rules.
	Day int
	// Nth and Weekday parameterize NTH_WEEKDAY rules.
	Nth     int
	Weekday time.Weekday
	// SpecificYear limits the rule to a single year; 0 means every year.
	SpecificYear int
}

// Holiday is a resolved holiday instance.
type Holiday struct {
	Date          time.Time
	Name          string
	LocalizedName string
}

// ResolveHolidays maps each date in [start, end] covered by a rule to its
// holiday. Rules whose nth occurrence does not exist in a given month are
// silently omitted for that year; when multiple rules land on the same date
// the last resolved one wins (callers keep rules disjoint in practice).
func ResolveHolidays(rules []HolidayRule, start, end time.Time) map[time.Time]Holiday {
	from, to := DateOnly(start), DateOnly(end)
	result := make(map[time.Time]Holiday)
	if to.Before(from) {
		return result
	}
	for _, rule := range rules {
		for year := from.Year(); year <= to.Year(); year++ {
			if rule.SpecificYear != 0 && rule.SpecificYear != year {
				continue
			}
			date, ok := rule.resolveForYear(year)
			if !ok {
				continue
			}
			if date.Before(from) || date.After(to) {
				continue
			}
			result[date] = Holiday{Date: date, Name: rule.Name, LocalizedName: rule.LocalizedName}
		}
	}
	return result
}

func (r HolidayRule) resolveForYear(year int) (time.Time, bool) {
	switch r.Type {
	case HolidayFixed:
		if r.Day < 1 || r.Day > daysIn(year, r.Month) {
			return time.Time{}, false
		}
		return time.Date(year, r.Month, r.Day, 0, 0, 0, 0, time.UTC), true
	case HolidayNthWeekday:
		return nthWeekdayOfMonth(year, r.Month, r.Nth, r.Weekday)
	default:
		return time.Time{}, false
	}
}

// nthWeekdayOfMonth returns false when the month has no nth occurrence of
// the weekday (e.g. a fifth Monday in a four-Monday February). That is not
// an error: the rule simply yields nothing for that year.
func nthWeekdayOfMonth(year int, month time.Month, nth int, weekday time.Weekday) (time.Time, bool) {
	if nth < 1 {
		return time.Time{}, false
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(weekday) - int(first.Weekday()) + 7) % 7
	date := first.AddDate(0, 0, offset+7*(nth-1))
	if date.Month() != month {
		return time.Time{}, false
	}
	return date, true
}
