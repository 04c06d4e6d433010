package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totodo713/miometory-sub007/internal/apperrors"
	"github.com/totodo713/miometory-sub007/internal/core/domain"
	"github.com/totodo713/miometory-sub007/internal/dto"
)

func submitFebruary(t *testing.T, env *testEnv, entryIDs []string) *domain.MonthlyApproval {
	t.Helper()
	approval, err := env.services.MonthlyApproval.SubmitMonth(context.Background(), dto.SubmitMonthRequest{
		MemberID:        "member-1",
		Date:            strPtr("2026-02-15"),
		WorkLogEntryIDs: entryIDs,
	}, "member-1")
	require.NoError(t, err)
	return approval
}

func TestSubmitMonth_CascadesEntries(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	first := env.createEntry(t, "member-1", "project-1", "2026-02-05", 8)
	second := env.createEntry(t, "member-1", "project-2", "2026-02-10", 4)

	approval := submitFebruary(t, env, []string{first.ID, second.ID})
	assert.Equal(t, domain.ApprovalSubmitted, approval.Status)
	assert.Equal(t, int64(2), approval.Version)
	assert.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), approval.PeriodStart)
	assert.Equal(t, time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC), approval.PeriodEnd)

	for _, id := range []string{first.ID, second.ID} {
		entry, err := env.services.WorkLog.GetEntry(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.WorkLogSubmitted, entry.Status)
	}

	row, err := env.monthlyRows.FindByMemberAndPeriod(ctx, "member-1", approval.PeriodStart)
	require.NoError(t, err)
	assert.Equal(t, approval.ID, row.ApprovalID)
	assert.Equal(t, domain.ApprovalSubmitted, row.Status)
}

func TestSubmitMonth_Validation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	inside := env.createEntry(t, "member-1", "project-1", "2026-02-05", 8)
	outside := env.createEntry(t, "member-1", "project-1", "2026-01-28", 8)
	foreign := env.createEntry(t, "member-2", "project-1", "2026-02-05", 8)

	_, err := env.services.MonthlyApproval.SubmitMonth(ctx, dto.SubmitMonthRequest{
		MemberID:        "member-1",
		Date:            strPtr("2026-02-15"),
		WorkLogEntryIDs: []string{inside.ID, outside.ID},
	}, "member-1")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidStatusTransition, apperrors.CodeOf(err))

	_, err = env.services.MonthlyApproval.SubmitMonth(ctx, dto.SubmitMonthRequest{
		MemberID:        "member-1",
		Date:            strPtr("2026-02-15"),
		WorkLogEntryIDs: []string{inside.ID, foreign.ID},
	}, "member-1")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodePermissionDenied, apperrors.CodeOf(err))

	// A peer may not submit on the member's behalf; the manager may.
	_, err = env.services.MonthlyApproval.SubmitMonth(ctx, dto.SubmitMonthRequest{
		MemberID:        "member-1",
		Date:            strPtr("2026-02-15"),
		WorkLogEntryIDs: []string{inside.ID},
	}, "member-2")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodePermissionDenied, apperrors.CodeOf(err))

	_, err = env.services.MonthlyApproval.SubmitMonth(ctx, dto.SubmitMonthRequest{
		MemberID:        "member-1",
		Date:            strPtr("2026-02-15"),
		WorkLogEntryIDs: []string{inside.ID},
	}, "manager-1")
	require.NoError(t, err)
}

func TestApprovalCycle_RejectCorrectResubmitApprove(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	first := env.createEntry(t, "member-1", "project-1", "2026-02-05", 8)
	second := env.createEntry(t, "member-1", "project-2", "2026-02-10", 4)

	approval := submitFebruary(t, env, []string{first.ID, second.ID})

	// Only the manager may review.
	_, err := env.services.MonthlyApproval.RejectMonth(ctx, approval.ID, "missing hours", "member-1")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodePermissionDenied, apperrors.CodeOf(err))

	rejected, err := env.services.MonthlyApproval.RejectMonth(ctx, approval.ID, "missing hours on the 10th", "manager-1")
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalRejected, rejected.Status)

	// The cascade returns the entries to DRAFT so they can be corrected.
	entry, err := env.services.WorkLog.GetEntry(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.WorkLogDraft, entry.Status)

	_, err = env.services.WorkLog.UpdateEntry(ctx, second.ID, dto.UpdateWorkLogEntryRequest{Hours: floatPtr(7.5)}, "member-1")
	require.NoError(t, err)

	resubmitted := submitFebruary(t, env, []string{first.ID, second.ID})
	assert.Equal(t, domain.ApprovalSubmitted, resubmitted.Status)
	assert.Equal(t, approval.ID, resubmitted.ID)

	approved, err := env.services.MonthlyApproval.ApproveMonth(ctx, approval.ID, "manager-1")
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalApproved, approved.Status)

	for _, id := range []string{first.ID, second.ID} {
		entry, err := env.services.WorkLog.GetEntry(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.WorkLogApproved, entry.Status)
	}

	// APPROVED is terminal.
	_, err = env.services.MonthlyApproval.ApproveMonth(ctx, approval.ID, "manager-1")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeAlreadyApproved, apperrors.CodeOf(err))
	_, err = env.services.MonthlyApproval.RejectMonth(ctx, approval.ID, "too late", "manager-1")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeAlreadyApproved, apperrors.CodeOf(err))

	row, err := env.monthlyRows.FindByApprovalID(ctx, approval.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalApproved, row.Status)
}

func TestRejectMonth_SweepsIndividuallyRejectedEntries(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	first := env.createEntry(t, "member-1", "project-1", "2026-02-05", 8)
	second := env.createEntry(t, "member-1", "project-2", "2026-02-10", 4)

	approval := submitFebruary(t, env, []string{first.ID, second.ID})

	// The manager rejects one entry individually before rejecting the
	// month; the cascade must return both to DRAFT.
	_, err := env.services.WorkLog.ChangeEntryStatus(ctx, second.ID, domain.WorkLogRejected, "manager-1")
	require.NoError(t, err)

	_, err = env.services.MonthlyApproval.RejectMonth(ctx, approval.ID, "redo the month", "manager-1")
	require.NoError(t, err)

	for _, id := range []string{first.ID, second.ID} {
		entry, err := env.services.WorkLog.GetEntry(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.WorkLogDraft, entry.Status)
	}
}

func TestGetApprovalDetail_Rollup(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	first := env.createEntry(t, "member-1", "project-1", "2026-02-05", 8)
	second := env.createEntry(t, "member-1", "project-2", "2026-02-10", 4)
	third := env.createEntry(t, "member-1", "project-1", "2026-02-12", 2)

	submitFebruary(t, env, []string{first.ID, second.ID, third.ID})

	_, err := env.services.DailyApproval.RecordDecision(ctx, dto.RecordDailyApprovalRequest{
		WorkLogEntryID: first.ID,
		Status:         string(domain.DailyApproved),
	}, "manager-1")
	require.NoError(t, err)
	_, err = env.services.DailyApproval.RecordDecision(ctx, dto.RecordDailyApprovalRequest{
		WorkLogEntryID: second.ID,
		Status:         string(domain.DailyRejected),
		Comment:        "wrong project",
	}, "manager-1")
	require.NoError(t, err)

	detail, err := env.services.MonthlyApproval.GetApprovalDetail(ctx, "member-1", time.Date(2026, time.February, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, string(domain.ApprovalSubmitted), detail.Approval.Status)
	assert.Equal(t, 1, detail.Rollup.Approved)
	assert.Equal(t, 1, detail.Rollup.Rejected)
	assert.Equal(t, 1, detail.Rollup.Undecided)
	require.Len(t, detail.UnresolvedRejections, 1)
	assert.Equal(t, second.ID, detail.UnresolvedRejections[0].WorkLogEntryID)
	assert.Equal(t, "wrong project", detail.UnresolvedRejections[0].Comment)
}

func TestGetApprovalDetail_NoApprovalYet(t *testing.T) {
	env := newTestEnv()

	_, err := env.services.MonthlyApproval.GetApprovalDetail(context.Background(), "member-1", time.Date(2026, time.February, 15, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}
