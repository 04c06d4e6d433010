package services

import (
	"context"
	"time"

	"github.com/totodo713/miometory-sub007/internal/core/domain"
	"github.com/totodo713/miometory-sub007/internal/dto"
)

// MonthlyApprovalSvcFacade coordinates the monthly approval aggregate and
// the status cascade onto the referenced time entries. Each command runs the
// monthly events and every entry transition in one logical transaction.
type MonthlyApprovalSvcFacade interface {
	// SubmitMonth submits the member's fiscal month containing the given
	// date, replacing the referenced id sets wholesale. Referenced DRAFT
	// entries transition to SUBMITTED.
	SubmitMonth(ctx context.Context, req dto.SubmitMonthRequest, actorID string) (*domain.MonthlyApproval, error)

	// ApproveMonth locks the month; referenced entries become APPROVED.
	ApproveMonth(ctx context.Context, approvalID string, actorID string) (*domain.MonthlyApproval, error)

	// RejectMonth returns the month to the member with a reason; referenced
	// SUBMITTED entries revert to DRAFT so they can be corrected.
	RejectMonth(ctx context.Context, approvalID string, reason string, actorID string) (*domain.MonthlyApproval, error)

	// GetApprovalDetail returns the monthly approval for the fiscal month
	// containing date, with its daily-decision rollup and any unresolved
	// daily rejections.
	GetApprovalDetail(ctx context.Context, memberID string, date time.Time) (*dto.ApprovalDetailResponse, error)
}

// DailyApprovalSvcFacade records per-entry supervisor decisions and recalls.
type DailyApprovalSvcFacade interface {
	// GetActiveDecision returns the single non-RECALLED decision for a
	// work-log entry, or ErrNotFound when the entry has none.
	GetActiveDecision(ctx context.Context, workLogEntryID string) (*domain.DailyEntryApproval, error)

	// RecordDecision stores a new decision, superseding any prior active one
	// for the same entry. The actor must be the member's manager.
	RecordDecision(ctx context.Context, req dto.RecordDailyApprovalRequest, actorID string) (*domain.DailyEntryApproval, error)

	// RecallDecision withdraws an APPROVED decision. Blocked while the
	// enclosing monthly approval is not PENDING, unless a prior daily
	// rejection for the same member/date proves the entries are still
	// mutable.
	RecallDecision(ctx context.Context, decisionID string, actorID string) (*domain.DailyEntryApproval, error)
}
