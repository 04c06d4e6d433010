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

const dailyApprovalColumns = "decision_id, work_log_entry_id, member_id, supervisor_id, entry_date, status, comment, created_at, updated_at"

type PgxDailyApprovalRepository struct {
	BaseRepository
}

// newPgxDailyApprovalRepository creates a new repository for supervisor
// decisions.
func newPgxDailyApprovalRepository(pool *pgxpool.Pool) portsrepo.DailyApprovalRepositoryWithTx {
	return &PgxDailyApprovalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DailyApprovalRepositoryWithTx = (*PgxDailyApprovalRepository)(nil)

// FindByID retrieves one decision.
func (r *PgxDailyApprovalRepository) FindByID(ctx context.Context, decisionID string) (*domain.DailyEntryApproval, error) {
	query := `SELECT ` + dailyApprovalColumns + ` FROM daily_entry_approvals WHERE decision_id = $1;`
	m, err := r.scanOne(r.Pool.QueryRow(ctx, query, decisionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("daily decision " + decisionID + " not found")
		}
		return nil, fmt.Errorf("failed to find daily decision %s: %w", decisionID, err)
	}
	decision := mapping.ToDomainDailyEntryApproval(m)
	return &decision, nil
}

// FindActiveByEntryID retrieves the single non-RECALLED decision for an
// entry, or nil when none is active.
func (r *PgxDailyApprovalRepository) FindActiveByEntryID(ctx context.Context, workLogEntryID string) (*domain.DailyEntryApproval, error) {
	query := `
		SELECT ` + dailyApprovalColumns + `
		FROM daily_entry_approvals
		WHERE work_log_entry_id = $1 AND status <> 'RECALLED';
	`
	m, err := r.scanOne(r.Pool.QueryRow(ctx, query, workLogEntryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find active decision for entry %s: %w", workLogEntryID, err)
	}
	decision := mapping.ToDomainDailyEntryApproval(m)
	return &decision, nil
}

// ListActiveByEntryIDs returns the active decisions for the given entries.
func (r *PgxDailyApprovalRepository) ListActiveByEntryIDs(ctx context.Context, entryIDs []string) ([]domain.DailyEntryApproval, error) {
	if len(entryIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT ` + dailyApprovalColumns + `
		FROM daily_entry_approvals
		WHERE work_log_entry_id = ANY($1) AND status <> 'RECALLED'
		ORDER BY work_log_entry_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list active decisions: %w", err)
	}
	defer rows.Close()

	var decisions []domain.DailyEntryApproval
	for rows.Next() {
		var m models.DailyEntryApproval
		if err := rows.Scan(
			&m.DecisionID,
			&m.WorkLogEntryID,
			&m.MemberID,
			&m.SupervisorID,
			&m.EntryDate,
			&m.Status,
			&m.Comment,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan daily decision row: %w", err)
		}
		decisions = append(decisions, mapping.ToDomainDailyEntryApproval(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate daily decision rows: %w", err)
	}
	return decisions, nil
}

// HasRejectionForMemberDate reports whether any rejection, recalled or not,
// was ever recorded for the member on the date.
func (r *PgxDailyApprovalRepository) HasRejectionForMemberDate(ctx context.Context, memberID string, date time.Time) (bool, error) {
	// recorded_status keeps the decision as originally made, so a rejection
	// stays visible here even after supersession flips status to RECALLED.
	query := `
		SELECT EXISTS (
			SELECT 1 FROM daily_entry_approvals
			WHERE member_id = $1 AND entry_date = $2 AND recorded_status = 'REJECTED'
		);
	`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, memberID, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check rejections for member %s: %w", memberID, err)
	}
	return exists, nil
}

// SaveInTx inserts a new decision after marking any prior active decision
// for the same entry RECALLED. Prior rows are kept for audit.
func (r *PgxDailyApprovalRepository) SaveInTx(ctx context.Context, tx pgx.Tx, decision domain.DailyEntryApproval) error {
	supersede := `
		UPDATE daily_entry_approvals
		SET status = 'RECALLED', updated_at = $2
		WHERE work_log_entry_id = $1 AND status <> 'RECALLED';
	`
	if _, err := tx.Exec(ctx, supersede, decision.WorkLogEntryID, decision.CreatedAt); err != nil {
		return apperrors.NewAppError(500, "failed to supersede prior decision for "+decision.WorkLogEntryID, err)
	}

	m := mapping.ToModelDailyEntryApproval(decision)
	insert := `
		INSERT INTO daily_entry_approvals (` + dailyApprovalColumns + `, recorded_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $6);
	`
	if _, err := tx.Exec(ctx, insert,
		m.DecisionID,
		m.WorkLogEntryID,
		m.MemberID,
		m.SupervisorID,
		m.EntryDate,
		m.Status,
		m.Comment,
		m.CreatedAt,
		m.UpdatedAt,
	); err != nil {
		return apperrors.NewAppError(500, "failed to insert daily decision "+m.DecisionID, err)
	}
	return nil
}

// UpdateStatus persists a recall.
func (r *PgxDailyApprovalRepository) UpdateStatus(ctx context.Context, decision domain.DailyEntryApproval) error {
	query := `
		UPDATE daily_entry_approvals
		SET status = $2, updated_at = $3
		WHERE decision_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, decision.ID, string(decision.Status), decision.UpdatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update daily decision "+decision.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("daily decision " + decision.ID + " not found")
	}
	return nil
}

func (r *PgxDailyApprovalRepository) scanOne(row pgx.Row) (models.DailyEntryApproval, error) {
	var m models.DailyEntryApproval
	err := row.Scan(
		&m.DecisionID,
		&m.WorkLogEntryID,
		&m.MemberID,
		&m.SupervisorID,
		&m.EntryDate,
		&m.Status,
		&m.Comment,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}
