package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/totodo713/miometory-sub007/internal/apperrors"
	"github.com/totodo713/miometory-sub007/internal/core/domain"
	portsrepo "github.com/totodo713/miometory-sub007/internal/core/ports/repositories"
	"github.com/totodo713/miometory-sub007/internal/models"
	"github.com/totodo713/miometory-sub007/internal/utils/mapping"
)

const dailyEntryColumns = "entry_id, member_id, project_id, entry_date, hours, comment, status, entered_by"

type PgxDailyEntryRepository struct {
	BaseRepository
}

// newPgxDailyEntryRepository creates a new repository for the daily-entry
// projection.
func newPgxDailyEntryRepository(pool *pgxpool.Pool) portsrepo.DailyEntryRepositoryFacade {
	return &PgxDailyEntryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DailyEntryRepositoryFacade = (*PgxDailyEntryRepository)(nil)

// FindByEntryID retrieves one projection row.
func (r *PgxDailyEntryRepository) FindByEntryID(ctx context.Context, entryID string) (*domain.DailyEntry, error) {
	query := `SELECT ` + dailyEntryColumns + ` FROM daily_entries WHERE entry_id = $1;`
	var m models.DailyEntry
	err := r.Pool.QueryRow(ctx, query, entryID).Scan(
		&m.EntryID,
		&m.MemberID,
		&m.ProjectID,
		&m.EntryDate,
		&m.Hours,
		&m.Comment,
		&m.Status,
		&m.EnteredBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("daily entry " + entryID + " not found")
		}
		return nil, fmt.Errorf("failed to find daily entry %s: %w", entryID, err)
	}
	entry, err := mapping.ToDomainDailyEntry(m)
	if err != nil {
		return nil, apperrors.NewCorruptError(err.Error())
	}
	return &entry, nil
}

// ListByMemberAndRange returns a member's rows with dates in [from, to].
func (r *PgxDailyEntryRepository) ListByMemberAndRange(ctx context.Context, memberID string, from, to time.Time) ([]domain.DailyEntry, error) {
	query := `
		SELECT ` + dailyEntryColumns + `
		FROM daily_entries
		WHERE member_id = $1 AND entry_date BETWEEN $2 AND $3
		ORDER BY entry_date ASC, entry_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, memberID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily entries for %s: %w", memberID, err)
	}
	defer rows.Close()
	return scanDailyEntries(rows)
}

// ListByMemberAndRangeInTx is ListByMemberAndRange inside the caller's
// transaction.
func (r *PgxDailyEntryRepository) ListByMemberAndRangeInTx(ctx context.Context, tx pgx.Tx, memberID string, from, to time.Time) ([]domain.DailyEntry, error) {
	query := `
		SELECT ` + dailyEntryColumns + `
		FROM daily_entries
		WHERE member_id = $1 AND entry_date BETWEEN $2 AND $3
		ORDER BY entry_date ASC, entry_id ASC;
	`
	rows, err := tx.Query(ctx, query, memberID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily entries for %s: %w", memberID, err)
	}
	defer rows.Close()
	return scanDailyEntries(rows)
}

// ListAll returns every projection row for full-log reconciliation.
func (r *PgxDailyEntryRepository) ListAll(ctx context.Context) ([]domain.DailyEntry, error) {
	query := `SELECT ` + dailyEntryColumns + ` FROM daily_entries ORDER BY entry_id ASC;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily entries: %w", err)
	}
	defer rows.Close()
	return scanDailyEntries(rows)
}

// UpsertInTx writes the row by latest state, so repeated writes of the same
// state are no-ops.
func (r *PgxDailyEntryRepository) UpsertInTx(ctx context.Context, tx pgx.Tx, entry domain.DailyEntry) error {
	m := mapping.ToModelDailyEntry(entry)
	query := `
		INSERT INTO daily_entries (` + dailyEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (entry_id) DO UPDATE SET
			member_id = EXCLUDED.member_id,
			project_id = EXCLUDED.project_id,
			entry_date = EXCLUDED.entry_date,
			hours = EXCLUDED.hours,
			comment = EXCLUDED.comment,
			status = EXCLUDED.status,
			entered_by = EXCLUDED.entered_by;
	`
	_, err := tx.Exec(ctx, query,
		m.EntryID,
		m.MemberID,
		m.ProjectID,
		m.EntryDate,
		m.Hours,
		m.Comment,
		m.Status,
		m.EnteredBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert daily entry "+m.EntryID, err)
	}
	return nil
}

// DeleteInTx removes the projection row. Deleting an absent row is not an
// error; the reconciler relies on that.
func (r *PgxDailyEntryRepository) DeleteInTx(ctx context.Context, tx pgx.Tx, entryID string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM daily_entries WHERE entry_id = $1;`, entryID); err != nil {
		return apperrors.NewAppError(500, "failed to delete daily entry "+entryID, err)
	}
	return nil
}

func scanDailyEntries(rows pgx.Rows) ([]domain.DailyEntry, error) {
	var entries []domain.DailyEntry
	for rows.Next() {
		var m models.DailyEntry
		if err := rows.Scan(
			&m.EntryID,
			&m.MemberID,
			&m.ProjectID,
			&m.EntryDate,
			&m.Hours,
			&m.Comment,
			&m.Status,
			&m.EnteredBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan daily entry row: %w", err)
		}
		entry, err := mapping.ToDomainDailyEntry(m)
		if err != nil {
			return nil, apperrors.NewCorruptError(err.Error())
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate daily entry rows: %w", err)
	}
	return entries, nil
}
