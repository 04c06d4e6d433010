package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/totodo713/miometory-sub007/internal/core/domain"
)

// EventLogReader defines read operations over the append-only event log.
type EventLogReader interface {
	// LoadEvents returns the aggregate's events in strict version order.
	// A gap or duplicate in the sequence is fatal (ErrCorrupt).
	LoadEvents(ctx context.Context, aggregateID string) ([]domain.Event, error)

	// LoadEventsByAggregateType returns all events of one aggregate type,
	// ordered by (aggregate id, version). Used by the reconciler, which may
	// scan the full log.
	LoadEventsByAggregateType(ctx context.Context, aggregateType domain.AggregateType) ([]domain.Event, error)
}

// EventLogWriter defines the single write operation of the log.
type EventLogWriter interface {
	// AppendEventsInTx appends events atomically at sequential versions
	// starting at expectedVersion+1. If another writer already committed at
	// expectedVersion+1 the call fails with CONCURRENCY_CONFLICT and nothing
	// is written. This version check is the sole concurrency-control
	// mechanism; there is no locking.
	AppendEventsInTx(ctx context.Context, tx pgx.Tx, aggregateID string, aggregateType domain.AggregateType, expectedVersion int64, events []domain.Event) error
}

// EventLogRepositoryFacade combines all event log repository interfaces.
type EventLogRepositoryFacade interface {
	EventLogReader
	EventLogWriter
}

// EventLogRepositoryWithTx extends the facade with transaction capabilities.
type EventLogRepositoryWithTx interface {
	EventLogRepositoryFacade
	TransactionManager
}
