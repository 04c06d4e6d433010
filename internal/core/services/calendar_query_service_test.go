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

func TestGetMemberCalendar_AnnotatesHolidays(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.patterns.holidayRules[scopeKey{domain.ScopeDefault, ""}] = []domain.HolidayRule{
		{Name: "Foundation Day", Type: domain.HolidayFixed, Month: time.February, Day: 11},
	}
	env.createEntry(t, "member-1", "project-1", "2026-02-11", 3)
	env.createEntry(t, "member-1", "project-1", "2026-02-12", 8)

	cal, err := env.services.CalendarQuery.GetMemberCalendar(ctx, "member-1", time.Date(2026, time.February, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "member-1", cal.MemberID)
	assert.Equal(t, 2026, cal.FiscalYear)
	assert.Equal(t, 2, cal.MonthIndex)
	assert.Equal(t, "2026-02-01", cal.PeriodStart)
	assert.Equal(t, "2026-02-28", cal.PeriodEnd)
	require.Len(t, cal.Days, 2)
	assert.Equal(t, "2026-02-11", cal.Days[0].Date)
	assert.Equal(t, "Foundation Day", cal.Days[0].Holiday)
	assert.Empty(t, cal.Days[1].Holiday)
}

func TestGetMemberSummary(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.createEntry(t, "member-1", "project-1", "2026-02-05", 6)
	env.createEntry(t, "member-1", "project-2", "2026-02-06", 2)

	summary, err := env.services.CalendarQuery.GetMemberSummary(ctx, "member-1", time.Date(2026, time.February, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 8.0, summary.TotalHours)
	require.Len(t, summary.Projects, 2)
	assert.Equal(t, "project-1", summary.Projects[0].ProjectID)
	assert.Equal(t, 75.0, summary.Projects[0].Percentage)
	assert.Equal(t, 25.0, summary.Projects[1].Percentage)
}

func TestGetMemberCalendar_UnknownMember(t *testing.T) {
	env := newTestEnv()

	_, err := env.services.CalendarQuery.GetMemberCalendar(context.Background(), "nobody", time.Date(2026, time.February, 15, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}
