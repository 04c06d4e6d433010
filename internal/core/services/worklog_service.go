package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/totodo713/miometory-sub007/internal/apperrors"
	"github.com/totodo713/miometory-sub007/internal/core/domain"
	portsrepo "github.com/totodo713/miometory-sub007/internal/core/ports/repositories"
	portssvc "github.com/totodo713/miometory-sub007/internal/core/ports/services"
	"github.com/totodo713/miometory-sub007/internal/dto"
)

// workLogService implements the time-entry commands. Each command loads the
// aggregate by replaying its events, applies the mutation, and appends the
// resulting events with an optimistic version check. The daily-entry
// projection row is kept in step within the same database transaction.
type workLogService struct {
	BaseService
	clock     domain.Clock
	eventLog  portsrepo.EventLogRepositoryWithTx
	dailyRepo portsrepo.DailyEntryRepositoryFacade
	members   portsrepo.MemberDirectory
	projector *monthProjector
}

// NewWorkLogService creates a new WorkLogService.
func NewWorkLogService(clock domain.Clock, eventLog portsrepo.EventLogRepositoryWithTx, dailyRepo portsrepo.DailyEntryRepositoryFacade, members portsrepo.MemberDirectory, projector *monthProjector) portssvc.WorkLogSvcFacade {
	return &workLogService{
		clock:     clock,
		eventLog:  eventLog,
		dailyRepo: dailyRepo,
		members:   members,
		projector: projector,
	}
}

var _ portssvc.WorkLogSvcFacade = (*workLogService)(nil)

// GetEntry rebuilds an entry aggregate from its event stream.
func (s *workLogService) GetEntry(ctx context.Context, entryID string) (*domain.WorkLogEntry, error) {
	events, err := s.eventLog.LoadEvents(ctx, entryID)
	if err != nil {
		return nil, err
	}
	entry, err := domain.ReplayWorkLogEntry(events)
	if err != nil {
		return nil, err
	}
	if entry.Deleted {
		return nil, apperrors.NewNotFoundError("work log entry not found")
	}
	return entry, nil
}

// CreateEntry records a new time entry. Implements portssvc.WorkLogWriterSvc.
func (s *workLogService) CreateEntry(ctx context.Context, req dto.CreateWorkLogEntryRequest, actorID string) (*domain.WorkLogEntry, error) {
	date, err := dto.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	hours, err := domain.NewTimeAmountFromPtr(req.Hours)
	if err != nil {
		return nil, err
	}
	if req.MemberID != actorID {
		// Proxy entry: only the member's manager may record on their behalf.
		ok, err := s.members.IsManagerOf(ctx, actorID, req.MemberID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperrors.NewForbiddenError("only the member's manager may record a proxy entry")
		}
	}

	entry, evt, err := domain.CreateWorkLogEntry(uuid.NewString(), req.MemberID, req.ProjectID, date, hours, req.Comment, actorID, s.clock.Today(), s.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := s.commit(ctx, entry, 0, []domain.Event{evt}); err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Work log entry created", slog.String("entry_id", entry.ID), slog.String("member_id", entry.MemberID), slog.Bool("proxy", entry.IsProxyEntry()))
	return entry, nil
}

// UpdateEntry edits hours/comment of a DRAFT entry.
func (s *workLogService) UpdateEntry(ctx context.Context, entryID string, req dto.UpdateWorkLogEntryRequest, actorID string) (*domain.WorkLogEntry, error) {
	hours, err := domain.NewTimeAmountFromPtr(req.Hours)
	if err != nil {
		return nil, err
	}
	entry, err := s.GetEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	expected := entry.Version
	evt, err := entry.Update(hours, req.Comment, actorID, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.commit(ctx, entry, expected, []domain.Event{evt}); err != nil {
		return nil, err
	}
	return entry, nil
}

// ChangeEntryStatus applies one transition of the entry state machine.
func (s *workLogService) ChangeEntryStatus(ctx context.Context, entryID string, target domain.WorkLogStatus, actorID string) (*domain.WorkLogEntry, error) {
	entry, err := s.GetEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if target == domain.WorkLogApproved || target == domain.WorkLogRejected {
		ok, err := s.members.IsManagerOf(ctx, actorID, entry.MemberID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperrors.NewForbiddenError("only the member's manager may review entries")
		}
	}
	expected := entry.Version
	evt, err := entry.ChangeStatus(target, actorID, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.commit(ctx, entry, expected, []domain.Event{evt}); err != nil {
		return nil, err
	}
	return entry, nil
}

// DeleteEntry soft-deletes a DRAFT entry and removes its projection row.
func (s *workLogService) DeleteEntry(ctx context.Context, entryID string, actorID string) error {
	entry, err := s.GetEntry(ctx, entryID)
	if err != nil {
		return err
	}
	expected := entry.Version
	evt, err := entry.Delete(actorID, s.clock.Now())
	if err != nil {
		return err
	}

	tx, err := s.eventLog.Begin(ctx)
	if err != nil {
		return err
	}
	defer s.eventLog.Rollback(ctx, tx)

	if err := s.eventLog.AppendEventsInTx(ctx, tx, entry.ID, domain.AggregateWorkLogEntry, expected, []domain.Event{evt}); err != nil {
		return err
	}
	if err := s.dailyRepo.DeleteInTx(ctx, tx, entry.ID); err != nil {
		return err
	}
	if err := s.projector.RebuildInTx(ctx, tx, entry.MemberID, entry.Date); err != nil {
		return err
	}
	if err := s.eventLog.Commit(ctx, tx); err != nil {
		return err
	}
	s.LogInfo(ctx, "Work log entry deleted", slog.String("entry_id", entry.ID))
	return nil
}

// commit appends the new events and refreshes the projection row plus the
// month rollups in one transaction.
func (s *workLogService) commit(ctx context.Context, entry *domain.WorkLogEntry, expectedVersion int64, events []domain.Event) error {
	tx, err := s.eventLog.Begin(ctx)
	if err != nil {
		return err
	}
	defer s.eventLog.Rollback(ctx, tx)

	if err := s.eventLog.AppendEventsInTx(ctx, tx, entry.ID, domain.AggregateWorkLogEntry, expectedVersion, events); err != nil {
		return err
	}
	if err := s.dailyRepo.UpsertInTx(ctx, tx, dailyEntryOf(entry)); err != nil {
		return err
	}
	if err := s.projector.RebuildInTx(ctx, tx, entry.MemberID, entry.Date); err != nil {
		return err
	}
	return s.eventLog.Commit(ctx, tx)
}

func dailyEntryOf(entry *domain.WorkLogEntry) domain.DailyEntry {
	return domain.DailyEntry{
		EntryID:   entry.ID,
		MemberID:  entry.MemberID,
		ProjectID: entry.ProjectID,
		Date:      entry.Date,
		Hours:     entry.Hours,
		Comment:   entry.Comment,
		Status:    entry.Status,
		EnteredBy: entry.EnteredBy,
	}
}
