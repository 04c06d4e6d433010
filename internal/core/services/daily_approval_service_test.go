package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totodo713/miometory-sub007/internal/apperrors"
	"github.com/totodo713/miometory-sub007/internal/core/domain"
	"github.com/totodo713/miometory-sub007/internal/dto"
)

func recordDecision(t *testing.T, env *testEnv, entryID string, status domain.DailyApprovalStatus, comment string) *domain.DailyEntryApproval {
	t.Helper()
	decision, err := env.services.DailyApproval.RecordDecision(context.Background(), dto.RecordDailyApprovalRequest{
		WorkLogEntryID: entryID,
		Status:         string(status),
		Comment:        comment,
	}, "manager-1")
	require.NoError(t, err)
	return decision
}

func TestRecordDecision_RequiresManager(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	entry := env.createEntry(t, "member-1", "project-1", "2026-02-10", 8)

	_, err := env.services.DailyApproval.RecordDecision(ctx, dto.RecordDailyApprovalRequest{
		WorkLogEntryID: entry.ID,
		Status:         string(domain.DailyApproved),
	}, "member-2")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodePermissionDenied, apperrors.CodeOf(err))

	decision := recordDecision(t, env, entry.ID, domain.DailyApproved, "")
	assert.Equal(t, "manager-1", decision.SupervisorID)
	assert.Equal(t, domain.DailyApproved, decision.Status)
}

func TestRecordDecision_SupersedesPriorDecision(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	entry := env.createEntry(t, "member-1", "project-1", "2026-02-10", 8)

	first := recordDecision(t, env, entry.ID, domain.DailyApproved, "")
	second := recordDecision(t, env, entry.ID, domain.DailyRejected, "hours look wrong")

	active, err := env.dailyApprovals.FindActiveByEntryID(ctx, entry.ID)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, second.ID, active.ID)
	assert.Equal(t, domain.DailyRejected, active.Status)

	// The superseded decision stays as an audit row, flipped to RECALLED.
	superseded, err := env.dailyApprovals.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DailyRecalled, superseded.Status)
}

func TestRecallDecision_OpenMonth(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	entry := env.createEntry(t, "member-1", "project-1", "2026-02-10", 8)
	decision := recordDecision(t, env, entry.ID, domain.DailyApproved, "")

	// A peer cannot recall.
	_, err := env.services.DailyApproval.RecallDecision(ctx, decision.ID, "member-2")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodePermissionDenied, apperrors.CodeOf(err))

	// No monthly aggregate exists for February, so nothing locks the day.
	recalled, err := env.services.DailyApproval.RecallDecision(ctx, decision.ID, "manager-1")
	require.NoError(t, err)
	assert.Equal(t, domain.DailyRecalled, recalled.Status)

	active, err := env.dailyApprovals.FindActiveByEntryID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestRecallDecision_BlockedAfterMonthlySubmission(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	entry := env.createEntry(t, "member-1", "project-1", "2026-02-10", 8)
	decision := recordDecision(t, env, entry.ID, domain.DailyApproved, "")

	submitFebruary(t, env, []string{entry.ID})

	_, err := env.services.DailyApproval.RecallDecision(ctx, decision.ID, "manager-1")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeRecallBlockedByApproval, apperrors.CodeOf(err))
}

func TestRecallDecision_AllowedAfterPriorRejection(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	entry := env.createEntry(t, "member-1", "project-1", "2026-02-10", 8)

	// A rejection followed by a fresh approval leaves a recorded rejection
	// for the date even though the rejection row itself was superseded.
	recordDecision(t, env, entry.ID, domain.DailyRejected, "check the project")
	approved := recordDecision(t, env, entry.ID, domain.DailyApproved, "")

	submitFebruary(t, env, []string{entry.ID})

	recalled, err := env.services.DailyApproval.RecallDecision(ctx, approved.ID, "manager-1")
	require.NoError(t, err)
	assert.Equal(t, domain.DailyRecalled, recalled.Status)
}

func TestGetActiveDecision(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	entry := env.createEntry(t, "member-1", "project-1", "2026-02-10", 8)

	_, err := env.services.DailyApproval.GetActiveDecision(ctx, entry.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))

	recorded := recordDecision(t, env, entry.ID, domain.DailyApproved, "")
	active, err := env.services.DailyApproval.GetActiveDecision(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, recorded.ID, active.ID)

	_, err = env.services.DailyApproval.RecallDecision(ctx, recorded.ID, "manager-1")
	require.NoError(t, err)
	_, err = env.services.DailyApproval.GetActiveDecision(ctx, entry.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestRecallDecision_OnlyApproved(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	entry := env.createEntry(t, "member-1", "project-1", "2026-02-10", 8)
	decision := recordDecision(t, env, entry.ID, domain.DailyRejected, "hours look wrong")

	_, err := env.services.DailyApproval.RecallDecision(ctx, decision.ID, "manager-1")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeRecallNotAllowed, apperrors.CodeOf(err))
}
