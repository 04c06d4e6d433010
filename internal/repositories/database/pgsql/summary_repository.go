package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/totodo713/miometory-sub007/internal/apperrors"
	"github.com/totodo713/miometory-sub007/internal/core/domain"
	portsrepo "github.com/totodo713/miometory-sub007/internal/core/ports/repositories"
	"github.com/totodo713/miometory-sub007/internal/models"
)

type PgxSummaryRepository struct {
	BaseRepository
}

// newPgxSummaryRepository creates a new repository for the monthly summary
// projection.
func newPgxSummaryRepository(pool *pgxpool.Pool) portsrepo.SummaryRepositoryFacade {
	return &PgxSummaryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SummaryRepositoryFacade = (*PgxSummaryRepository)(nil)

// ReplaceMonthInTx deletes the month's prior rows and inserts the rebuilt
// summaries. Runs in the same transaction as the calendar replacement.
func (r *PgxSummaryRepository) ReplaceMonthInTx(ctx context.Context, tx pgx.Tx, memberID string, fiscalYear, monthIndex int, summaries []domain.ProjectSummary) error {
	deleteQuery := `DELETE FROM monthly_summaries WHERE member_id = $1 AND fiscal_year = $2 AND month_index = $3;`
	if _, err := tx.Exec(ctx, deleteQuery, memberID, fiscalYear, monthIndex); err != nil {
		return apperrors.NewAppError(500, "failed to clear monthly summaries for "+memberID, err)
	}
	if len(summaries) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	insertQuery := `
		INSERT INTO monthly_summaries (member_id, fiscal_year, month_index, project_id, total_hours, percentage)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, summary := range summaries {
		batch.Queue(insertQuery, memberID, fiscalYear, monthIndex, summary.ProjectID, summary.TotalHours, summary.Percentage)
	}
	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for range summaries {
		if _, err := results.Exec(); err != nil {
			return apperrors.NewAppError(500, "failed to insert monthly summaries for "+memberID, err)
		}
	}
	return nil
}

// GetMonth returns the stored summaries ordered by project id.
func (r *PgxSummaryRepository) GetMonth(ctx context.Context, memberID string, fiscalYear, monthIndex int) ([]domain.ProjectSummary, error) {
	query := `
		SELECT project_id, total_hours, percentage
		FROM monthly_summaries
		WHERE member_id = $1 AND fiscal_year = $2 AND month_index = $3
		ORDER BY project_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, memberID, fiscalYear, monthIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to load monthly summaries for %s: %w", memberID, err)
	}
	defer rows.Close()

	var summaries []domain.ProjectSummary
	for rows.Next() {
		var m models.MonthlySummary
		if err := rows.Scan(&m.ProjectID, &m.TotalHours, &m.Percentage); err != nil {
			return nil, fmt.Errorf("failed to scan monthly summary row: %w", err)
		}
		summaries = append(summaries, domain.ProjectSummary{
			ProjectID:  m.ProjectID,
			TotalHours: m.TotalHours,
			Percentage: m.Percentage,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate monthly summary rows: %w", err)
	}
	return summaries, nil
}
