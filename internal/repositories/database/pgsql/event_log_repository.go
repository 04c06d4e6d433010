package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/totodo713/miometory-sub007/internal/apperrors"
	"github.com/totodo713/miometory-sub007/internal/core/domain"
	portsrepo "github.com/totodo713/miometory-sub007/internal/core/ports/repositories"
	"github.com/totodo713/miometory-sub007/internal/models"
	"github.com/totodo713/miometory-sub007/internal/utils/mapping"
)

type PgxEventLogRepository struct {
	BaseRepository
}

// newPgxEventLogRepository creates a new repository over the append-only
// event log.
func newPgxEventLogRepository(pool *pgxpool.Pool) portsrepo.EventLogRepositoryWithTx {
	return &PgxEventLogRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.EventLogRepositoryWithTx = (*PgxEventLogRepository)(nil)

// AppendEventsInTx appends the batch at sequential versions following
// expectedVersion. The version check plus the unique (aggregate_id, version)
// constraint are the only concurrency control; a loser of the race gets
// CONCURRENCY_CONFLICT and nothing is written.
func (r *PgxEventLogRepository) AppendEventsInTx(ctx context.Context, tx pgx.Tx, aggregateID string, aggregateType domain.AggregateType, expectedVersion int64, events []domain.Event) error {
	if len(events) == 0 {
		return nil
	}

	var currentVersion int64
	err := tx.QueryRow(ctx, `SELECT COALESCE(MAX(version), 0) FROM events WHERE aggregate_id = $1;`, aggregateID).Scan(&currentVersion)
	if err != nil {
		return apperrors.NewAppError(500, "failed to read current version for "+aggregateID, err)
	}
	if currentVersion != expectedVersion {
		return apperrors.NewConflictError(apperrors.CodeConcurrencyConflict, fmt.Sprintf("aggregate %s is at version %d, expected %d", aggregateID, currentVersion, expectedVersion))
	}

	batch := &pgx.Batch{}
	insertQuery := `
		INSERT INTO events (event_id, aggregate_id, aggregate_type, event_type, payload, version, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	next := expectedVersion
	for _, evt := range events {
		next++
		if evt.Version != next {
			return apperrors.NewCorruptError(fmt.Sprintf("event batch for %s is not sequential at version %d", aggregateID, evt.Version))
		}
		modelEvt, err := mapping.ToModelEvent(evt)
		if err != nil {
			return apperrors.NewAppError(500, "failed to encode event "+evt.EventID, err)
		}
		batch.Queue(insertQuery,
			modelEvt.EventID,
			modelEvt.AggregateID,
			modelEvt.AggregateType,
			modelEvt.EventType,
			modelEvt.Payload,
			modelEvt.Version,
			modelEvt.OccurredAt,
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for range events {
		if _, err := results.Exec(); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
				return apperrors.NewConflictError(apperrors.CodeConcurrencyConflict, "another writer advanced aggregate "+aggregateID)
			}
			return apperrors.NewAppError(500, "failed to append events for "+aggregateID, err)
		}
	}
	return nil
}

// LoadEvents returns the aggregate's events in strict version order. A gap
// or duplicate in the stored sequence is fatal.
func (r *PgxEventLogRepository) LoadEvents(ctx context.Context, aggregateID string) ([]domain.Event, error) {
	query := `
		SELECT event_id, aggregate_id, aggregate_type, event_type, payload, version, occurred_at
		FROM events
		WHERE aggregate_id = $1
		ORDER BY version ASC;
	`
	rows, err := r.Pool.Query(ctx, query, aggregateID)
	if err != nil {
		return nil, fmt.Errorf("failed to load events for %s: %w", aggregateID, err)
	}
	defer rows.Close()

	events, err := scanEvents(rows)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, apperrors.NewNotFoundError("no events for aggregate " + aggregateID)
	}
	if err := domain.VerifyContiguous(events); err != nil {
		return nil, apperrors.NewCorruptError(err.Error())
	}
	return events, nil
}

// LoadEventsByAggregateType returns all events of one aggregate type ordered
// by (aggregate id, version), so callers can split the result into
// per-aggregate streams without re-sorting.
func (r *PgxEventLogRepository) LoadEventsByAggregateType(ctx context.Context, aggregateType domain.AggregateType) ([]domain.Event, error) {
	query := `
		SELECT event_id, aggregate_id, aggregate_type, event_type, payload, version, occurred_at
		FROM events
		WHERE aggregate_type = $1
		ORDER BY aggregate_id ASC, version ASC;
	`
	rows, err := r.Pool.Query(ctx, query, string(aggregateType))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s events: %w", aggregateType, err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

func scanEvents(rows pgx.Rows) ([]domain.Event, error) {
	var events []domain.Event
	for rows.Next() {
		var modelEvt models.Event
		if err := rows.Scan(
			&modelEvt.EventID,
			&modelEvt.AggregateID,
			&modelEvt.AggregateType,
			&modelEvt.EventType,
			&modelEvt.Payload,
			&modelEvt.Version,
			&modelEvt.OccurredAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		evt, err := mapping.ToDomainEvent(modelEvt)
		if err != nil {
			return nil, apperrors.NewCorruptError(err.Error())
		}
		events = append(events, evt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate event rows: %w", err)
	}
	return events, nil
}
