package domain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totodo713/miometory-sub007/internal/apperrors"
	"github.com/totodo713/miometory-sub007/internal/core/domain"
)

var (
	periodStart = time.Date(2026, time.January, 21, 0, 0, 0, 0, time.UTC)
	periodEnd   = time.Date(2026, time.February, 20, 0, 0, 0, 0, time.UTC)
)

func newPendingApproval(t *testing.T) *domain.MonthlyApproval {
	t.Helper()
	approval, evt, err := domain.CreateMonthlyApproval("approval-1", "member-1", periodStart, periodEnd, testNow)
	require.NoError(t, err)
	require.Equal(t, int64(1), evt.Version)
	require.Equal(t, domain.ApprovalPending, approval.Status)
	return approval
}

func submitApproval(t *testing.T, approval *domain.MonthlyApproval, entryIDs ...string) {
	t.Helper()
	_, err := approval.Submit("member-1", entryIDs, nil, testNow)
	require.NoError(t, err)
}

func TestMonthlyApproval_Submit(t *testing.T) {
	approval := newPendingApproval(t)

	_, err := approval.Submit("member-1", []string{"entry-1", "entry-2"}, []string{"absence-1"}, testNow)
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalSubmitted, approval.Status)
	assert.Equal(t, []string{"entry-1", "entry-2"}, approval.WorkLogEntryIDs)
	assert.Equal(t, []string{"absence-1"}, approval.AbsenceIDs)
	require.NotNil(t, approval.SubmittedAt)
	assert.Equal(t, testNow, *approval.SubmittedAt)

	// Double submission is a conflict.
	_, err = approval.Submit("member-1", []string{"entry-1"}, nil, testNow)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeAlreadySubmitted, apperrors.CodeOf(err))
}

func TestMonthlyApproval_ApproveIsTerminal(t *testing.T) {
	approval := newPendingApproval(t)
	submitApproval(t, approval, "entry-1")

	_, err := approval.Approve("manager-1", testNow)
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalApproved, approval.Status)
	assert.Equal(t, "manager-1", approval.ReviewedBy)

	// No transition of any kind leaves APPROVED.
	_, err = approval.Submit("member-1", []string{"entry-1"}, nil, testNow)
	assert.Equal(t, apperrors.CodeAlreadyApproved, apperrors.CodeOf(err))
	_, err = approval.Approve("manager-1", testNow)
	assert.Equal(t, apperrors.CodeAlreadyApproved, apperrors.CodeOf(err))
	_, err = approval.Reject("manager-1", "changed my mind", testNow)
	assert.Equal(t, apperrors.CodeAlreadyApproved, apperrors.CodeOf(err))
}

func TestMonthlyApproval_RejectAndResubmit(t *testing.T) {
	approval := newPendingApproval(t)
	submitApproval(t, approval, "entry-1", "entry-2")

	_, err := approval.Reject("manager-1", "missing tuesday", testNow)
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalRejected, approval.Status)
	assert.Equal(t, "missing tuesday", approval.RejectionReason)

	// Resubmission replaces the id sets wholesale.
	_, err = approval.Submit("member-1", []string{"entry-3"}, nil, testNow)
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalSubmitted, approval.Status)
	assert.Equal(t, []string{"entry-3"}, approval.WorkLogEntryIDs)

	// Approval after the second cycle clears the stale reason.
	_, err = approval.Approve("manager-1", testNow)
	require.NoError(t, err)
	assert.Empty(t, approval.RejectionReason)
}

func TestMonthlyApproval_RejectReason(t *testing.T) {
	tests := []struct {
		name    string
		reason  string
		wantErr bool
	}{
		{name: "blank reason", reason: "   ", wantErr: true},
		{name: "exactly 1000 characters", reason: strings.Repeat("a", 1000)},
		{name: "1001 characters", reason: strings.Repeat("a", 1001), wantErr: true},
		{name: "multibyte runes count as one", reason: strings.Repeat("あ", 1000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			approval := newPendingApproval(t)
			submitApproval(t, approval, "entry-1")

			_, err := approval.Reject("manager-1", tt.reason, testNow)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, apperrors.CodeRejectionReasonInvalid, apperrors.CodeOf(err))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestMonthlyApproval_ReviewRequiresSubmission(t *testing.T) {
	approval := newPendingApproval(t)

	_, err := approval.Approve("manager-1", testNow)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidStatusTransition, apperrors.CodeOf(err))

	_, err = approval.Reject("manager-1", "nothing to reject", testNow)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidStatusTransition, apperrors.CodeOf(err))
}

func TestReplayMonthlyApproval(t *testing.T) {
	approval := newPendingApproval(t)
	var events []domain.Event

	created := domain.Event{
		EventID:       "evt-1",
		AggregateID:   "approval-1",
		AggregateType: domain.AggregateMonthlyApproval,
		EventType:     domain.EventMonthlyApprovalCreated,
		Payload: &domain.MonthlyApprovalCreated{
			MemberID:    "member-1",
			PeriodStart: periodStart,
			PeriodEnd:   periodEnd,
		},
		Version:    1,
		OccurredAt: testNow,
	}
	events = append(events, created)

	evt, err := approval.Submit("member-1", []string{"entry-1"}, nil, testNow)
	require.NoError(t, err)
	events = append(events, evt)

	evt, err = approval.Reject("manager-1", "fix friday", testNow)
	require.NoError(t, err)
	events = append(events, evt)

	evt, err = approval.Submit("member-1", []string{"entry-1", "entry-2"}, nil, testNow)
	require.NoError(t, err)
	events = append(events, evt)

	replayed, err := domain.ReplayMonthlyApproval(events)
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalSubmitted, replayed.Status)
	assert.Equal(t, []string{"entry-1", "entry-2"}, replayed.WorkLogEntryIDs)
	assert.Equal(t, "fix friday", replayed.RejectionReason)
	assert.Equal(t, int64(4), replayed.Version)
}
