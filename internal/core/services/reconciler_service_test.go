package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totodo713/miometory-sub007/internal/core/domain"
)

func TestReconcile_RepairsDriftStatusAndMissingRows(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	first := env.createEntry(t, "member-1", "project-1", "2026-02-05", 8)
	second := env.createEntry(t, "member-1", "project-2", "2026-02-10", 4)
	third := env.createEntry(t, "member-2", "project-1", "2026-02-07", 6)

	// Corrupt the projections behind the services' back: drift one row's
	// data, flip another's status, and drop the third entirely.
	drifted := env.dailyEntries.rows[first.ID]
	drifted.Hours = domain.MustTimeAmount(1)
	drifted.Comment = "tampered"
	env.dailyEntries.rows[first.ID] = drifted

	flipped := env.dailyEntries.rows[second.ID]
	flipped.Status = domain.WorkLogApproved
	env.dailyEntries.rows[second.ID] = flipped

	delete(env.dailyEntries.rows, third.ID)

	report, err := env.services.Reconciler.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.DriftRepaired)
	assert.Equal(t, 1, report.StatusRepaired)
	assert.Equal(t, 1, report.RowsBackfilled)
	assert.Equal(t, 2, report.MonthsRebuilt)
	assert.Equal(t, 3, report.EventsInspected)

	row, err := env.dailyEntries.FindByEntryID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "8", row.Hours.Decimal().String())
	assert.Empty(t, row.Comment)

	row, err = env.dailyEntries.FindByEntryID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.WorkLogDraft, row.Status)

	row, err = env.dailyEntries.FindByEntryID(ctx, third.ID)
	require.NoError(t, err)
	assert.Equal(t, "member-2", row.MemberID)
	assert.Equal(t, "6", row.Hours.Decimal().String())

	// The rebuilt rollups match the repaired rows.
	days, err := env.calendars.GetMonth(ctx, "member-1", 2026, 2)
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, "8", days[0].TotalHours.String())

	// A second run against the repaired projection is a no-op.
	report, err = env.services.Reconciler.Reconcile(ctx)
	require.NoError(t, err)
	assert.Zero(t, report.DriftRepaired)
	assert.Zero(t, report.StatusRepaired)
	assert.Zero(t, report.RowsBackfilled)
	assert.Zero(t, report.MonthsRebuilt)
	assert.Equal(t, 3, report.EventsInspected)
}

func TestReconcile_RemovesRowOfDeletedEntry(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	entry := env.createEntry(t, "member-1", "project-1", "2026-02-05", 8)
	require.NoError(t, env.services.WorkLog.DeleteEntry(ctx, entry.ID, "member-1"))

	// Resurrect the row as if the delete's projection write had been lost.
	env.dailyEntries.rows[entry.ID] = domain.DailyEntry{
		EntryID:   entry.ID,
		MemberID:  "member-1",
		ProjectID: "project-1",
		Date:      time.Date(2026, time.February, 5, 0, 0, 0, 0, time.UTC),
		Hours:     domain.MustTimeAmount(8),
		Status:    domain.WorkLogDraft,
		EnteredBy: "member-1",
	}

	report, err := env.services.Reconciler.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.DriftRepaired)
	assert.Zero(t, report.RowsBackfilled)

	_, err = env.dailyEntries.FindByEntryID(ctx, entry.ID)
	assert.Error(t, err)
}

func TestReconcile_RepairsMonthlyApprovalRow(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	entry := env.createEntry(t, "member-1", "project-1", "2026-02-05", 8)
	approval := submitFebruary(t, env, []string{entry.ID})

	row := env.monthlyRows.rows[approval.ID]
	row.Status = domain.ApprovalPending
	env.monthlyRows.rows[approval.ID] = row

	report, err := env.services.Reconciler.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.StatusRepaired)
	// Two entry events plus the monthly creation, submission, and the
	// cascade's status change on the entry.
	assert.Equal(t, 4, report.EventsInspected)

	repaired, err := env.monthlyRows.FindByApprovalID(ctx, approval.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalSubmitted, repaired.Status)
}

func TestRebuildMemberMonth(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.createEntry(t, "member-1", "project-1", "2026-02-05", 8)

	// Wipe the rollups; the daily rows are intact, so a forced rebuild
	// restores them without any repair pass.
	delete(env.calendars.months, monthKey{"member-1", 2026, 2})
	delete(env.summaries.months, monthKey{"member-1", 2026, 2})

	err := env.services.Reconciler.RebuildMemberMonth(ctx, "member-1", time.Date(2026, time.February, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	days, err := env.calendars.GetMonth(ctx, "member-1", 2026, 2)
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, "8", days[0].TotalHours.String())

	summaries, err := env.summaries.GetMonth(ctx, "member-1", 2026, 2)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "project-1", summaries[0].ProjectID)
}
