package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/totodo713/miometory-sub007/internal/apperrors"
	"github.com/totodo713/miometory-sub007/internal/core/domain"
	portsrepo "github.com/totodo713/miometory-sub007/internal/core/ports/repositories"
	portssvc "github.com/totodo713/miometory-sub007/internal/core/ports/services"
	"github.com/totodo713/miometory-sub007/internal/dto"
)

// monthlyApprovalService coordinates the monthly approval aggregate and the
// status cascade onto the referenced work-log entries. The aggregate never
// mutates entries itself; this coordinator appends both the monthly events
// and the per-entry StatusChanged events in one transaction, so the month
// and its entries can never disagree after a crash.
type monthlyApprovalService struct {
	BaseService
	clock          domain.Clock
	eventLog       portsrepo.EventLogRepositoryWithTx
	monthlyRepo    portsrepo.MonthlyApprovalRepositoryFacade
	dailyRepo      portsrepo.DailyEntryRepositoryFacade
	dailyApprovals portsrepo.DailyApprovalRepositoryFacade
	members        portsrepo.MemberDirectory
	fiscal         portssvc.FiscalSvcFacade
	projector      *monthProjector
}

// NewMonthlyApprovalService creates a new MonthlyApprovalService.
func NewMonthlyApprovalService(clock domain.Clock, eventLog portsrepo.EventLogRepositoryWithTx, monthlyRepo portsrepo.MonthlyApprovalRepositoryFacade, dailyRepo portsrepo.DailyEntryRepositoryFacade, dailyApprovals portsrepo.DailyApprovalRepositoryFacade, members portsrepo.MemberDirectory, fiscal portssvc.FiscalSvcFacade, projector *monthProjector) portssvc.MonthlyApprovalSvcFacade {
	return &monthlyApprovalService{
		clock:          clock,
		eventLog:       eventLog,
		monthlyRepo:    monthlyRepo,
		dailyRepo:      dailyRepo,
		dailyApprovals: dailyApprovals,
		members:        members,
		fiscal:         fiscal,
		projector:      projector,
	}
}

var _ portssvc.MonthlyApprovalSvcFacade = (*monthlyApprovalService)(nil)

// SubmitMonth submits the member's fiscal month. The first submission also
// creates the aggregate; a resubmission after rejection replaces the id sets
// wholesale.
func (s *monthlyApprovalService) SubmitMonth(ctx context.Context, req dto.SubmitMonthRequest, actorID string) (*domain.MonthlyApproval, error) {
	if err := s.requireSelfOrManager(ctx, actorID, req.MemberID, "only the member or their manager may submit the month"); err != nil {
		return nil, err
	}
	date := s.clock.Today()
	if req.Date != nil && *req.Date != "" {
		parsed, err := dto.ParseDate(req.Date)
		if err != nil {
			return nil, err
		}
		date = parsed
	}
	info, err := s.fiscal.ResolvePeriodForMember(ctx, req.MemberID, date)
	if err != nil {
		return nil, err
	}
	month := info.Month

	now := s.clock.Now()
	approval, expected, events, err := s.loadOrCreate(ctx, req.MemberID, month, now)
	if err != nil {
		return nil, err
	}
	evt, err := approval.Submit(actorID, req.WorkLogEntryIDs, req.AbsenceIDs, now)
	if err != nil {
		return nil, err
	}
	events = append(events, evt)

	// Every referenced entry must be live, owned by the member, and dated
	// inside the period before the month can carry it.
	entries, err := s.loadEntries(ctx, approval, req.WorkLogEntryIDs)
	if err != nil {
		return nil, err
	}

	if err := s.commit(ctx, approval, expected, events, entries, domain.WorkLogDraft, domain.WorkLogSubmitted, actorID, now); err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Month submitted for approval", slog.String("approval_id", approval.ID), slog.String("member_id", approval.MemberID), slog.Int("entries", len(req.WorkLogEntryIDs)))
	return approval, nil
}

// ApproveMonth locks the month. Referenced SUBMITTED entries become APPROVED
// in the same transaction.
func (s *monthlyApprovalService) ApproveMonth(ctx context.Context, approvalID string, actorID string) (*domain.MonthlyApproval, error) {
	approval, err := s.load(ctx, approvalID)
	if err != nil {
		return nil, err
	}
	if err := s.requireManager(ctx, actorID, approval.MemberID, "only the member's manager may approve the month"); err != nil {
		return nil, err
	}
	expected := approval.Version
	now := s.clock.Now()
	evt, err := approval.Approve(actorID, now)
	if err != nil {
		return nil, err
	}
	entries, err := s.loadEntries(ctx, approval, approval.WorkLogEntryIDs)
	if err != nil {
		return nil, err
	}
	if err := s.commit(ctx, approval, expected, []domain.Event{evt}, entries, domain.WorkLogSubmitted, domain.WorkLogApproved, actorID, now); err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Month approved", slog.String("approval_id", approval.ID), slog.String("member_id", approval.MemberID))
	return approval, nil
}

// RejectMonth returns the month to the member. Referenced SUBMITTED entries
// revert to DRAFT so they can be corrected and resubmitted.
func (s *monthlyApprovalService) RejectMonth(ctx context.Context, approvalID string, reason string, actorID string) (*domain.MonthlyApproval, error) {
	approval, err := s.load(ctx, approvalID)
	if err != nil {
		return nil, err
	}
	if err := s.requireManager(ctx, actorID, approval.MemberID, "only the member's manager may reject the month"); err != nil {
		return nil, err
	}
	expected := approval.Version
	now := s.clock.Now()
	evt, err := approval.Reject(actorID, reason, now)
	if err != nil {
		return nil, err
	}
	entries, err := s.loadEntries(ctx, approval, approval.WorkLogEntryIDs)
	if err != nil {
		return nil, err
	}
	if err := s.commit(ctx, approval, expected, []domain.Event{evt}, entries, domain.WorkLogSubmitted, domain.WorkLogDraft, actorID, now); err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Month rejected", slog.String("approval_id", approval.ID), slog.String("member_id", approval.MemberID))
	return approval, nil
}

// GetApprovalDetail returns the monthly approval for the fiscal month
// containing date, with the rollup of active supervisor decisions over its
// entries and any rejections still awaiting correction.
func (s *monthlyApprovalService) GetApprovalDetail(ctx context.Context, memberID string, date time.Time) (*dto.ApprovalDetailResponse, error) {
	info, err := s.fiscal.ResolvePeriodForMember(ctx, memberID, date)
	if err != nil {
		return nil, err
	}
	row, err := s.monthlyRepo.FindByMemberAndPeriod(ctx, memberID, info.Month.Start)
	if err != nil {
		return nil, err
	}
	approval, err := s.load(ctx, row.ApprovalID)
	if err != nil {
		return nil, err
	}

	decisions, err := s.dailyApprovals.ListActiveByEntryIDs(ctx, approval.WorkLogEntryIDs)
	if err != nil {
		return nil, err
	}
	rollup := dto.DailyApprovalRollup{Undecided: len(approval.WorkLogEntryIDs) - len(decisions)}
	var unresolved []dto.DailyApprovalResponse
	for i := range decisions {
		switch decisions[i].Status {
		case domain.DailyApproved:
			rollup.Approved++
		case domain.DailyRejected:
			rollup.Rejected++
			unresolved = append(unresolved, dto.ToDailyApprovalResponse(&decisions[i]))
		}
	}
	return &dto.ApprovalDetailResponse{
		Approval:             dto.ToMonthlyApprovalResponse(approval),
		Rollup:               rollup,
		UnresolvedRejections: unresolved,
	}, nil
}

// load rebuilds the aggregate from its event stream.
func (s *monthlyApprovalService) load(ctx context.Context, approvalID string) (*domain.MonthlyApproval, error) {
	events, err := s.eventLog.LoadEvents(ctx, approvalID)
	if err != nil {
		return nil, err
	}
	return domain.ReplayMonthlyApproval(events)
}

// loadOrCreate returns the member's aggregate for the period, creating it in
// PENDING when this is the first submission. The returned events hold the
// creation event when one was emitted.
func (s *monthlyApprovalService) loadOrCreate(ctx context.Context, memberID string, month domain.FiscalMonth, now time.Time) (*domain.MonthlyApproval, int64, []domain.Event, error) {
	row, err := s.monthlyRepo.FindByMemberAndPeriod(ctx, memberID, month.Start)
	if err == nil {
		approval, err := s.load(ctx, row.ApprovalID)
		if err != nil {
			return nil, 0, nil, err
		}
		return approval, approval.Version, nil, nil
	}
	if !apperrors.IsNotFound(err) {
		return nil, 0, nil, err
	}
	approval, evt, err := domain.CreateMonthlyApproval(uuid.NewString(), memberID, month.Start, month.End, now)
	if err != nil {
		return nil, 0, nil, err
	}
	return approval, 0, []domain.Event{evt}, nil
}

// loadEntries replays every referenced work-log entry and verifies it may be
// carried by this month.
func (s *monthlyApprovalService) loadEntries(ctx context.Context, approval *domain.MonthlyApproval, entryIDs []string) ([]*domain.WorkLogEntry, error) {
	entries := make([]*domain.WorkLogEntry, 0, len(entryIDs))
	for _, id := range entryIDs {
		events, err := s.eventLog.LoadEvents(ctx, id)
		if err != nil {
			return nil, err
		}
		entry, err := domain.ReplayWorkLogEntry(events)
		if err != nil {
			return nil, err
		}
		if entry.Deleted {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("work log entry %s not found", id))
		}
		if entry.MemberID != approval.MemberID {
			return nil, apperrors.NewForbiddenError(fmt.Sprintf("work log entry %s does not belong to member %s", id, approval.MemberID))
		}
		if entry.Date.Before(approval.PeriodStart) || entry.Date.After(approval.PeriodEnd) {
			return nil, apperrors.NewValidationError(apperrors.CodeInvalidStatusTransition, fmt.Sprintf("work log entry %s is dated outside the fiscal month", id))
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// commit appends the monthly events, cascades entry transitions from->to,
// refreshes the touched projections, and rebuilds the month rollups, all in
// one transaction.
func (s *monthlyApprovalService) commit(ctx context.Context, approval *domain.MonthlyApproval, expectedVersion int64, events []domain.Event, entries []*domain.WorkLogEntry, from, to domain.WorkLogStatus, actorID string, now time.Time) error {
	tx, err := s.eventLog.Begin(ctx)
	if err != nil {
		return err
	}
	defer s.eventLog.Rollback(ctx, tx)

	if err := s.eventLog.AppendEventsInTx(ctx, tx, approval.ID, domain.AggregateMonthlyApproval, expectedVersion, events); err != nil {
		return err
	}
	if err := s.monthlyRepo.UpsertInTx(ctx, tx, domain.MonthlyApprovalRow{
		ApprovalID:  approval.ID,
		MemberID:    approval.MemberID,
		PeriodStart: approval.PeriodStart,
		PeriodEnd:   approval.PeriodEnd,
		Status:      approval.Status,
	}); err != nil {
		return err
	}
	if err := s.cascadeInTx(ctx, tx, entries, from, to, actorID, now); err != nil {
		return err
	}
	if err := s.projector.RebuildInTx(ctx, tx, approval.MemberID, approval.PeriodStart); err != nil {
		return err
	}
	return s.eventLog.Commit(ctx, tx)
}

// cascadeInTx transitions every entry currently in from to to. A DRAFT
// target is the rejection cascade and uses the aggregate's revert path,
// which also picks up entries a supervisor rejected individually. Entries in
// any other status are left untouched; the cascade is a side effect of the
// monthly command, not a re-validation of the whole month.
func (s *monthlyApprovalService) cascadeInTx(ctx context.Context, tx pgx.Tx, entries []*domain.WorkLogEntry, from, to domain.WorkLogStatus, actorID string, now time.Time) error {
	for _, entry := range entries {
		var evt domain.Event
		var err error
		expected := entry.Version
		switch {
		case to == domain.WorkLogDraft && (entry.Status == domain.WorkLogSubmitted || entry.Status == domain.WorkLogRejected):
			evt, err = entry.RevertToDraft(actorID, now)
		case entry.Status == from:
			evt, err = entry.ChangeStatus(to, actorID, now)
		default:
			continue
		}
		if err != nil {
			return err
		}
		if err := s.eventLog.AppendEventsInTx(ctx, tx, entry.ID, domain.AggregateWorkLogEntry, expected, []domain.Event{evt}); err != nil {
			return err
		}
		if err := s.dailyRepo.UpsertInTx(ctx, tx, dailyEntryOf(entry)); err != nil {
			return err
		}
	}
	return nil
}

func (s *monthlyApprovalService) requireSelfOrManager(ctx context.Context, actorID, memberID, message string) error {
	if actorID == memberID {
		return nil
	}
	return s.requireManager(ctx, actorID, memberID, message)
}

func (s *monthlyApprovalService) requireManager(ctx context.Context, actorID, memberID, message string) error {
	ok, err := s.members.IsManagerOf(ctx, actorID, memberID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NewForbiddenError(message)
	}
	return nil
}
