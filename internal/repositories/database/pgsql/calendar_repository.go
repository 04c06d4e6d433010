package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/totodo713/miometory-sub007/internal/apperrors"
	"github.com/totodo713/miometory-sub007/internal/core/domain"
	portsrepo "github.com/totodo713/miometory-sub007/internal/core/ports/repositories"
	"github.com/totodo713/miometory-sub007/internal/models"
)

type PgxCalendarRepository struct {
	BaseRepository
}

// newPgxCalendarRepository creates a new repository for the calendar
// projection.
func newPgxCalendarRepository(pool *pgxpool.Pool) portsrepo.CalendarRepositoryFacade {
	return &PgxCalendarRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CalendarRepositoryFacade = (*PgxCalendarRepository)(nil)

// ReplaceMonthInTx deletes the month's prior rows and inserts the rebuilt
// days. Delete-then-recompute, never incremental.
func (r *PgxCalendarRepository) ReplaceMonthInTx(ctx context.Context, tx pgx.Tx, memberID string, fiscalYear, monthIndex int, days []domain.CalendarDay) error {
	deleteEntries := `DELETE FROM calendar_day_entries WHERE member_id = $1 AND fiscal_year = $2 AND month_index = $3;`
	if _, err := tx.Exec(ctx, deleteEntries, memberID, fiscalYear, monthIndex); err != nil {
		return apperrors.NewAppError(500, "failed to clear calendar entries for "+memberID, err)
	}
	deleteDays := `DELETE FROM calendar_days WHERE member_id = $1 AND fiscal_year = $2 AND month_index = $3;`
	if _, err := tx.Exec(ctx, deleteDays, memberID, fiscalYear, monthIndex); err != nil {
		return apperrors.NewAppError(500, "failed to clear calendar days for "+memberID, err)
	}

	batch := &pgx.Batch{}
	dayQuery := `
		INSERT INTO calendar_days (member_id, fiscal_year, month_index, entry_date, total_hours)
		VALUES ($1, $2, $3, $4, $5);
	`
	entryQuery := `
		INSERT INTO calendar_day_entries (member_id, fiscal_year, month_index, entry_date, entry_id, project_id, hours, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	queued := 0
	for _, day := range days {
		batch.Queue(dayQuery, memberID, fiscalYear, monthIndex, day.Date, day.TotalHours)
		queued++
		for _, entry := range day.Entries {
			batch.Queue(entryQuery, memberID, fiscalYear, monthIndex, day.Date, entry.EntryID, entry.ProjectID, entry.Hours.Decimal(), string(entry.Status))
			queued++
		}
	}
	if queued == 0 {
		return nil
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for i := 0; i < queued; i++ {
		if _, err := results.Exec(); err != nil {
			return apperrors.NewAppError(500, "failed to insert calendar rows for "+memberID, err)
		}
	}
	return nil
}

// GetMonth reassembles the stored days with their entries.
func (r *PgxCalendarRepository) GetMonth(ctx context.Context, memberID string, fiscalYear, monthIndex int) ([]domain.CalendarDay, error) {
	dayQuery := `
		SELECT entry_date, total_hours
		FROM calendar_days
		WHERE member_id = $1 AND fiscal_year = $2 AND month_index = $3
		ORDER BY entry_date ASC;
	`
	rows, err := r.Pool.Query(ctx, dayQuery, memberID, fiscalYear, monthIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to load calendar days for %s: %w", memberID, err)
	}
	defer rows.Close()

	var days []domain.CalendarDay
	index := make(map[time.Time]int)
	for rows.Next() {
		var m models.CalendarDay
		if err := rows.Scan(&m.EntryDate, &m.TotalHours); err != nil {
			return nil, fmt.Errorf("failed to scan calendar day row: %w", err)
		}
		index[domain.DateOnly(m.EntryDate)] = len(days)
		days = append(days, domain.CalendarDay{Date: m.EntryDate, TotalHours: m.TotalHours})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate calendar day rows: %w", err)
	}

	entryQuery := `
		SELECT entry_date, entry_id, project_id, hours, status
		FROM calendar_day_entries
		WHERE member_id = $1 AND fiscal_year = $2 AND month_index = $3
		ORDER BY entry_date ASC, entry_id ASC;
	`
	entryRows, err := r.Pool.Query(ctx, entryQuery, memberID, fiscalYear, monthIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to load calendar entries for %s: %w", memberID, err)
	}
	defer entryRows.Close()

	for entryRows.Next() {
		var m models.CalendarDayEntry
		if err := entryRows.Scan(&m.EntryDate, &m.EntryID, &m.ProjectID, &m.Hours, &m.Status); err != nil {
			return nil, fmt.Errorf("failed to scan calendar entry row: %w", err)
		}
		hours, err := domain.NewTimeAmount(m.Hours)
		if err != nil {
			return nil, apperrors.NewCorruptError(err.Error())
		}
		i, ok := index[domain.DateOnly(m.EntryDate)]
		if !ok {
			return nil, apperrors.NewCorruptError(fmt.Sprintf("calendar entry %s has no parent day row", m.EntryID))
		}
		days[i].Entries = append(days[i].Entries, domain.CalendarEntry{
			EntryID:   m.EntryID,
			ProjectID: m.ProjectID,
			Hours:     hours,
			Status:    domain.WorkLogStatus(m.Status),
		})
	}
	if err := entryRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate calendar entry rows: %w", err)
	}
	return days, nil
}
