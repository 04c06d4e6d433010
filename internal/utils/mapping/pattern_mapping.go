package mapping

import (
	"time"

	"github.com/totodo713/miometory-sub007/internal/core/domain"
	"github.com/totodo713/miometory-sub007/internal/models"
)

// ToDomainFiscalYearPattern converts a model pattern to its domain form
func ToDomainFiscalYearPattern(m models.FiscalYearPattern) domain.FiscalYearPattern {
	return domain.FiscalYearPattern{
		StartMonth: time.Month(m.StartMonth),
		StartDay:   m.StartDay,
	}
}

// ToDomainMonthlyPeriodPattern converts a model pattern to its domain form
func ToDomainMonthlyPeriodPattern(m models.MonthlyPeriodPattern) domain.MonthlyPeriodPattern {
	return domain.MonthlyPeriodPattern{
		StartDay: m.StartDay,
	}
}

// ToDomainHolidayRule converts a model rule to its domain form
func ToDomainHolidayRule(m models.HolidayRule) domain.HolidayRule {
	return domain.HolidayRule{
		Name:          m.Name,
		LocalizedName: m.LocalizedName,
		Type:          domain.HolidayRuleType(m.RuleType),
		Month:         time.Month(m.Month),
		Day:           m.Day,
		Nth:           m.Nth,
		Weekday:       time.Weekday(m.Weekday),
		SpecificYear:  m.SpecificYear,
	}
}
