package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/totodo713/miometory-sub007/internal/apperrors"
	"github.com/totodo713/miometory-sub007/internal/core/domain"
	portsrepo "github.com/totodo713/miometory-sub007/internal/core/ports/repositories"
	portssvc "github.com/totodo713/miometory-sub007/internal/core/ports/services"
	"github.com/totodo713/miometory-sub007/internal/dto"
)

// dailyApprovalService records per-entry supervisor decisions. Decisions are
// plain rows layered on top of the work-log entries, independent of the
// monthly workflow; only recall eligibility looks across to the monthly
// approval.
type dailyApprovalService struct {
	BaseService
	clock          domain.Clock
	dailyApprovals portsrepo.DailyApprovalRepositoryWithTx
	dailyRepo      portsrepo.DailyEntryRepositoryFacade
	monthlyRepo    portsrepo.MonthlyApprovalReader
	members        portsrepo.MemberDirectory
	fiscal         portssvc.FiscalSvcFacade
}

// NewDailyApprovalService creates a new DailyApprovalService.
func NewDailyApprovalService(clock domain.Clock, dailyApprovals portsrepo.DailyApprovalRepositoryWithTx, dailyRepo portsrepo.DailyEntryRepositoryFacade, monthlyRepo portsrepo.MonthlyApprovalReader, members portsrepo.MemberDirectory, fiscal portssvc.FiscalSvcFacade) portssvc.DailyApprovalSvcFacade {
	return &dailyApprovalService{
		clock:          clock,
		dailyApprovals: dailyApprovals,
		dailyRepo:      dailyRepo,
		monthlyRepo:    monthlyRepo,
		members:        members,
		fiscal:         fiscal,
	}
}

var _ portssvc.DailyApprovalSvcFacade = (*dailyApprovalService)(nil)

// GetActiveDecision returns the entry's current non-RECALLED decision.
func (s *dailyApprovalService) GetActiveDecision(ctx context.Context, workLogEntryID string) (*domain.DailyEntryApproval, error) {
	decision, err := s.dailyApprovals.FindActiveByEntryID(ctx, workLogEntryID)
	if err != nil {
		return nil, err
	}
	if decision == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no active decision for work log entry %s", workLogEntryID))
	}
	return decision, nil
}

// RecordDecision stores a supervisor decision for one entry, superseding any
// prior active decision.
func (s *dailyApprovalService) RecordDecision(ctx context.Context, req dto.RecordDailyApprovalRequest, actorID string) (*domain.DailyEntryApproval, error) {
	entry, err := s.dailyRepo.FindByEntryID(ctx, req.WorkLogEntryID)
	if err != nil {
		return nil, err
	}
	ok, err := s.members.IsManagerOf(ctx, actorID, entry.MemberID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.NewForbiddenError("only the member's manager may record a daily decision")
	}

	decision, err := domain.NewDailyEntryApproval(uuid.NewString(), entry.EntryID, entry.MemberID, actorID, entry.Date, domain.DailyApprovalStatus(req.Status), req.Comment, s.clock.Now())
	if err != nil {
		return nil, err
	}

	tx, err := s.dailyApprovals.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.dailyApprovals.Rollback(ctx, tx)
	if err := s.dailyApprovals.SaveInTx(ctx, tx, *decision); err != nil {
		return nil, err
	}
	if err := s.dailyApprovals.Commit(ctx, tx); err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Daily decision recorded", slog.String("decision_id", decision.ID), slog.String("entry_id", decision.WorkLogEntryID), slog.String("status", string(decision.Status)))
	return decision, nil
}

// RecallDecision withdraws an APPROVED decision. Once the enclosing monthly
// approval has moved past PENDING the day is considered locked in, unless a
// daily rejection was ever recorded for the member on that date, which
// proves the day's entries are still in a correction cycle.
func (s *dailyApprovalService) RecallDecision(ctx context.Context, decisionID string, actorID string) (*domain.DailyEntryApproval, error) {
	decision, err := s.dailyApprovals.FindByID(ctx, decisionID)
	if err != nil {
		return nil, err
	}
	ok, err := s.members.IsManagerOf(ctx, actorID, decision.MemberID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.NewForbiddenError("only the member's manager may recall a daily decision")
	}

	if err := s.checkRecallEligibility(ctx, decision); err != nil {
		return nil, err
	}
	if err := decision.Recall(s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.dailyApprovals.UpdateStatus(ctx, *decision); err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Daily decision recalled", slog.String("decision_id", decision.ID), slog.String("entry_id", decision.WorkLogEntryID))
	return decision, nil
}

func (s *dailyApprovalService) checkRecallEligibility(ctx context.Context, decision *domain.DailyEntryApproval) error {
	info, err := s.fiscal.ResolvePeriodForMember(ctx, decision.MemberID, decision.EntryDate)
	if err != nil {
		return err
	}
	row, err := s.monthlyRepo.FindByMemberAndPeriod(ctx, decision.MemberID, info.Month.Start)
	if err != nil {
		if apperrors.IsNotFound(err) {
			// No monthly aggregate yet: nothing locks the day.
			return nil
		}
		return err
	}
	if row.Status == domain.ApprovalPending {
		return nil
	}
	rejected, err := s.dailyApprovals.HasRejectionForMemberDate(ctx, decision.MemberID, decision.EntryDate)
	if err != nil {
		return err
	}
	if !rejected {
		return apperrors.NewConflictError(apperrors.CodeRecallBlockedByApproval, fmt.Sprintf("month is %s; the decision can no longer be recalled", row.Status))
	}
	return nil
}
