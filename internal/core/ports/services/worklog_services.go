package services

import (
	"context"

	"github.com/totodo713/miometory-sub007/internal/core/domain"
	"github.com/totodo713/miometory-sub007/internal/dto"
)

// WorkLogReaderSvc defines read operations for work-log entries.
type WorkLogReaderSvc interface {
	// GetEntry rebuilds an entry aggregate from its event stream.
	GetEntry(ctx context.Context, entryID string) (*domain.WorkLogEntry, error)
}

// WorkLogWriterSvc defines the time-entry commands. Every command loads the
// aggregate at version N and appends expecting N; a concurrent writer
// surfaces CONCURRENCY_CONFLICT for the caller to refresh and retry.
type WorkLogWriterSvc interface {
	// CreateEntry records a new time entry. actorID becomes enteredBy, which
	// may differ from the member for proxy entry.
	CreateEntry(ctx context.Context, req dto.CreateWorkLogEntryRequest, actorID string) (*domain.WorkLogEntry, error)

	// UpdateEntry edits hours/comment of a DRAFT entry.
	UpdateEntry(ctx context.Context, entryID string, req dto.UpdateWorkLogEntryRequest, actorID string) (*domain.WorkLogEntry, error)

	// ChangeEntryStatus applies one transition of the entry state machine.
	// Approving or rejecting requires the actor to be the member's manager.
	ChangeEntryStatus(ctx context.Context, entryID string, target domain.WorkLogStatus, actorID string) (*domain.WorkLogEntry, error)

	// DeleteEntry soft-deletes a DRAFT entry.
	DeleteEntry(ctx context.Context, entryID string, actorID string) error
}

// WorkLogSvcFacade combines all work-log service interfaces.
type WorkLogSvcFacade interface {
	WorkLogReaderSvc
	WorkLogWriterSvc
}
