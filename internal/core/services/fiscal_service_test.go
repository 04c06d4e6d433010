package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totodo713/miometory-sub007/internal/apperrors"
	"github.com/totodo713/miometory-sub007/internal/core/domain"
)

func TestResolvePeriod_BuiltinDefault(t *testing.T) {
	env := newTestEnv()

	info, err := env.services.Fiscal.ResolvePeriod(context.Background(), "org-1", "tenant-1", time.Date(2026, time.February, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), info.Month.Start)
	assert.Equal(t, time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC), info.Month.End)
	assert.Equal(t, 2026, info.Month.FiscalYear)
	assert.Equal(t, 2, info.Month.MonthIndex)
	assert.Equal(t, domain.ScopeDefault, info.FiscalYearScope)
	assert.Equal(t, domain.ScopeDefault, info.MonthlyScope)
}

func TestResolvePeriod_ScopeFallback(t *testing.T) {
	env := newTestEnv()
	// The fiscal year pattern is configured at tenant level only, the
	// monthly cut-over at organization level only; each lookup falls back
	// independently and reports where it landed.
	env.patterns.fiscalYears[scopeKey{domain.ScopeTenant, "tenant-1"}] = domain.FiscalYearPattern{StartMonth: time.April, StartDay: 1}
	env.patterns.monthlyPeriods[scopeKey{domain.ScopeOrganization, "org-1"}] = domain.MonthlyPeriodPattern{StartDay: 21}

	info, err := env.services.Fiscal.ResolvePeriod(context.Background(), "org-1", "tenant-1", time.Date(2026, time.February, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.January, 21, 0, 0, 0, 0, time.UTC), info.Month.Start)
	assert.Equal(t, time.Date(2026, time.February, 20, 0, 0, 0, 0, time.UTC), info.Month.End)
	assert.Equal(t, 2026, info.Month.FiscalYear)
	assert.Equal(t, 11, info.Month.MonthIndex)
	assert.Equal(t, domain.ScopeTenant, info.FiscalYearScope)
	assert.Equal(t, domain.ScopeOrganization, info.MonthlyScope)
}

func TestResolvePeriod_OrganizationWins(t *testing.T) {
	env := newTestEnv()
	env.patterns.fiscalYears[scopeKey{domain.ScopeTenant, "tenant-1"}] = domain.FiscalYearPattern{StartMonth: time.April, StartDay: 1}
	env.patterns.fiscalYears[scopeKey{domain.ScopeOrganization, "org-1"}] = domain.FiscalYearPattern{StartMonth: time.July, StartDay: 1}

	info, err := env.services.Fiscal.ResolvePeriod(context.Background(), "org-1", "tenant-1", time.Date(2026, time.February, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, domain.ScopeOrganization, info.FiscalYearScope)
	// July-start year: February is month 8.
	assert.Equal(t, 8, info.Month.MonthIndex)
}

func TestResolvePeriodForMember(t *testing.T) {
	env := newTestEnv()
	env.patterns.monthlyPeriods[scopeKey{domain.ScopeOrganization, "org-1"}] = domain.MonthlyPeriodPattern{StartDay: 21}

	info, err := env.services.Fiscal.ResolvePeriodForMember(context.Background(), "member-1", time.Date(2026, time.February, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.January, 21, 0, 0, 0, 0, time.UTC), info.Month.Start)

	_, err = env.services.Fiscal.ResolvePeriodForMember(context.Background(), "nobody", time.Date(2026, time.February, 15, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestHolidaysInRange_SpecificScopeWins(t *testing.T) {
	env := newTestEnv()
	env.patterns.holidayRules[scopeKey{domain.ScopeDefault, ""}] = []domain.HolidayRule{
		{Name: "Foundation Day", LocalizedName: "建国記念の日", Type: domain.HolidayFixed, Month: time.February, Day: 11},
		{Name: "New Year's Day", LocalizedName: "元日", Type: domain.HolidayFixed, Month: time.January, Day: 1},
	}
	env.patterns.holidayRules[scopeKey{domain.ScopeOrganization, "org-1"}] = []domain.HolidayRule{
		{Name: "Company Foundation Day", Type: domain.HolidayFixed, Month: time.February, Day: 11},
	}

	holidays, err := env.services.Fiscal.HolidaysInRange(context.Background(), "org-1", "tenant-1",
		time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, holidays, 1)
	day := holidays[time.Date(2026, time.February, 11, 0, 0, 0, 0, time.UTC)]
	assert.Equal(t, "Company Foundation Day", day.Name)
}
