package services

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/totodo713/miometory-sub007/internal/apperrors"
	"github.com/totodo713/miometory-sub007/internal/core/domain"
	portsrepo "github.com/totodo713/miometory-sub007/internal/core/ports/repositories"
	portssvc "github.com/totodo713/miometory-sub007/internal/core/ports/services"
	"github.com/totodo713/miometory-sub007/internal/dto"
)

// reconcilerService makes the read-side tables a pure function of the event
// log. Three idempotent passes run over the log in order: repair drifted
// rows, re-apply the latest status, backfill missing rows. Every write is
// overwrite-by-latest-state, so a re-run against an already-consistent
// projection is a no-op and a partially failed run is simply redone.
type reconcilerService struct {
	BaseService
	eventLog    portsrepo.EventLogRepositoryWithTx
	dailyRepo   portsrepo.DailyEntryRepositoryFacade
	monthlyRepo portsrepo.MonthlyApprovalRepositoryFacade
	fiscal      portssvc.FiscalSvcFacade
	projector   *monthProjector
}

// NewReconcilerService creates a new ReconcilerService.
func NewReconcilerService(eventLog portsrepo.EventLogRepositoryWithTx, dailyRepo portsrepo.DailyEntryRepositoryFacade, monthlyRepo portsrepo.MonthlyApprovalRepositoryFacade, fiscal portssvc.FiscalSvcFacade, projector *monthProjector) portssvc.ReconcilerSvcFacade {
	return &reconcilerService{
		eventLog:    eventLog,
		dailyRepo:   dailyRepo,
		monthlyRepo: monthlyRepo,
		fiscal:      fiscal,
		projector:   projector,
	}
}

var _ portssvc.ReconcilerSvcFacade = (*reconcilerService)(nil)

// affectedDate marks a (member, date) pair whose fiscal month must be
// rebuilt after the repair passes.
type affectedDate struct {
	memberID string
	date     time.Time
}

// Reconcile runs the repair passes over the full log, then rebuilds the
// calendar and summary projections for every affected fiscal month. A
// corrupted stream aborts the run; nothing already repaired is rolled back
// by a later failure because every write is idempotent.
func (s *reconcilerService) Reconcile(ctx context.Context) (*dto.ReconcileReport, error) {
	report := &dto.ReconcileReport{}

	events, err := s.eventLog.LoadEventsByAggregateType(ctx, domain.AggregateWorkLogEntry)
	if err != nil {
		return nil, err
	}
	report.EventsInspected += len(events)

	ids, streams := groupByAggregate(events)
	truth := make(map[string]*domain.WorkLogEntry, len(ids))
	for _, id := range ids {
		entry, err := domain.ReplayWorkLogEntry(streams[id])
		if err != nil {
			return nil, err
		}
		truth[id] = entry
	}

	rows, err := s.dailyRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	rowByID := make(map[string]domain.DailyEntry, len(rows))
	for _, row := range rows {
		rowByID[row.EntryID] = row
	}

	tx, err := s.eventLog.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.eventLog.Rollback(ctx, tx)

	affected := make(map[affectedDate]struct{})
	touch := func(memberID string, date time.Time) {
		affected[affectedDate{memberID: memberID, date: domain.DateOnly(date)}] = struct{}{}
	}

	// Pass 1: repair drift. A row disagreeing with its replayed aggregate on
	// any data field is overwritten from the log; a row shadowing a deleted
	// aggregate is removed. Status stays untouched until pass 2 so the two
	// repairs are separately observable.
	for _, id := range ids {
		entry := truth[id]
		row, ok := rowByID[id]
		if !ok {
			continue
		}
		if entry.Deleted {
			if err := s.dailyRepo.DeleteInTx(ctx, tx, id); err != nil {
				return nil, err
			}
			delete(rowByID, id)
			touch(row.MemberID, row.Date)
			report.DriftRepaired++
			continue
		}
		if rowDrifted(row, entry) {
			repaired := dailyEntryOf(entry)
			repaired.Status = row.Status
			if err := s.dailyRepo.UpsertInTx(ctx, tx, repaired); err != nil {
				return nil, err
			}
			rowByID[id] = repaired
			touch(row.MemberID, row.Date)
			touch(entry.MemberID, entry.Date)
			report.DriftRepaired++
		}
	}

	// Pass 2: replay status. The row's status becomes the aggregate's
	// current status, which is by construction the toStatus of the latest
	// StatusChanged event (or the initial status when none exists).
	for _, id := range ids {
		entry := truth[id]
		row, ok := rowByID[id]
		if !ok || row.Status == entry.Status {
			continue
		}
		row.Status = entry.Status
		if err := s.dailyRepo.UpsertInTx(ctx, tx, row); err != nil {
			return nil, err
		}
		rowByID[id] = row
		touch(row.MemberID, row.Date)
		report.StatusRepaired++
	}

	// Pass 3: backfill rows missing entirely, skipping deleted aggregates.
	for _, id := range ids {
		entry := truth[id]
		if _, ok := rowByID[id]; ok || entry.Deleted {
			continue
		}
		row := dailyEntryOf(entry)
		if err := s.dailyRepo.UpsertInTx(ctx, tx, row); err != nil {
			return nil, err
		}
		rowByID[id] = row
		touch(entry.MemberID, entry.Date)
		report.RowsBackfilled++
	}

	if err := s.reconcileMonthlyRows(ctx, tx, report); err != nil {
		return nil, err
	}

	rebuilt, err := s.rebuildAffected(ctx, tx, affected)
	if err != nil {
		return nil, err
	}
	report.MonthsRebuilt = rebuilt

	if err := s.eventLog.Commit(ctx, tx); err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Reconciliation finished",
		slog.Int("events_inspected", report.EventsInspected),
		slog.Int("drift_repaired", report.DriftRepaired),
		slog.Int("status_repaired", report.StatusRepaired),
		slog.Int("rows_backfilled", report.RowsBackfilled),
		slog.Int("months_rebuilt", report.MonthsRebuilt))
	return report, nil
}

// RebuildMemberMonth force-rebuilds one member's fiscal month regardless of
// whether anything drifted.
func (s *reconcilerService) RebuildMemberMonth(ctx context.Context, memberID string, date time.Time) error {
	tx, err := s.eventLog.Begin(ctx)
	if err != nil {
		return err
	}
	defer s.eventLog.Rollback(ctx, tx)
	if err := s.projector.RebuildInTx(ctx, tx, memberID, date); err != nil {
		return err
	}
	return s.eventLog.Commit(ctx, tx)
}

// reconcileMonthlyRows repairs the monthly-approval lookup projection the
// same way: replay each aggregate and overwrite any row that disagrees.
func (s *reconcilerService) reconcileMonthlyRows(ctx context.Context, tx pgx.Tx, report *dto.ReconcileReport) error {
	events, err := s.eventLog.LoadEventsByAggregateType(ctx, domain.AggregateMonthlyApproval)
	if err != nil {
		return err
	}
	report.EventsInspected += len(events)

	ids, streams := groupByAggregate(events)
	for _, id := range ids {
		approval, err := domain.ReplayMonthlyApproval(streams[id])
		if err != nil {
			return err
		}
		row, err := s.monthlyRepo.FindByApprovalID(ctx, id)
		switch {
		case err == nil && row.Status == approval.Status && row.PeriodStart.Equal(approval.PeriodStart):
			continue
		case err == nil:
			report.StatusRepaired++
		case apperrors.IsNotFound(err):
			report.RowsBackfilled++
		default:
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
	}
	return nil
}

// rebuildAffected rebuilds each affected fiscal month exactly once, even
// when several repaired dates land in the same period.
func (s *reconcilerService) rebuildAffected(ctx context.Context, tx pgx.Tx, affected map[affectedDate]struct{}) (int, error) {
	type monthKey struct {
		memberID string
		start    time.Time
	}
	seen := make(map[monthKey]struct{})
	keys := make([]affectedDate, 0, len(affected))
	for key := range affected {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].memberID != keys[j].memberID {
			return keys[i].memberID < keys[j].memberID
		}
		return keys[i].date.Before(keys[j].date)
	})

	rebuilt := 0
	for _, key := range keys {
		info, err := s.fiscal.ResolvePeriodForMember(ctx, key.memberID, key.date)
		if err != nil {
			return rebuilt, err
		}
		mk := monthKey{memberID: key.memberID, start: info.Month.Start}
		if _, ok := seen[mk]; ok {
			continue
		}
		seen[mk] = struct{}{}
		if err := s.projector.RebuildInTx(ctx, tx, key.memberID, key.date); err != nil {
			return rebuilt, err
		}
		rebuilt++
	}
	return rebuilt, nil
}

func rowDrifted(row domain.DailyEntry, entry *domain.WorkLogEntry) bool {
	return !row.Date.Equal(entry.Date) ||
		!row.Hours.Equal(entry.Hours) ||
		row.Comment != entry.Comment ||
		row.ProjectID != entry.ProjectID ||
		row.MemberID != entry.MemberID ||
		row.EnteredBy != entry.EnteredBy
}

// groupByAggregate splits a type-wide event load into per-aggregate streams,
// returning ids in deterministic order. The load is ordered by (aggregate
// id, version) so each stream arrives already sorted.
func groupByAggregate(events []domain.Event) ([]string, map[string][]domain.Event) {
	streams := make(map[string][]domain.Event)
	var ids []string
	for _, evt := range events {
		if _, ok := streams[evt.AggregateID]; !ok {
			ids = append(ids, evt.AggregateID)
		}
		streams[evt.AggregateID] = append(streams[evt.AggregateID], evt)
	}
	sort.Strings(ids)
	return ids, streams
}
