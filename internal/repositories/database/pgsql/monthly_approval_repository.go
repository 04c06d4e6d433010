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

type PgxMonthlyApprovalRepository struct {
	BaseRepository
}

// newPgxMonthlyApprovalRepository creates a new repository for the
// monthly-approval lookup projection.
func newPgxMonthlyApprovalRepository(pool *pgxpool.Pool) portsrepo.MonthlyApprovalRepositoryFacade {
	return &PgxMonthlyApprovalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.MonthlyApprovalRepositoryFacade = (*PgxMonthlyApprovalRepository)(nil)

// FindByMemberAndPeriod retrieves the row for (member, period start).
func (r *PgxMonthlyApprovalRepository) FindByMemberAndPeriod(ctx context.Context, memberID string, periodStart time.Time) (*domain.MonthlyApprovalRow, error) {
	query := `
		SELECT approval_id, member_id, period_start, period_end, status
		FROM monthly_approvals
		WHERE member_id = $1 AND period_start = $2;
	`
	return r.findOne(ctx, query, memberID, periodStart)
}

// FindByApprovalID retrieves the row by aggregate id.
func (r *PgxMonthlyApprovalRepository) FindByApprovalID(ctx context.Context, approvalID string) (*domain.MonthlyApprovalRow, error) {
	query := `
		SELECT approval_id, member_id, period_start, period_end, status
		FROM monthly_approvals
		WHERE approval_id = $1;
	`
	return r.findOne(ctx, query, approvalID)
}

// UpsertInTx writes the row by latest state alongside the aggregate append.
func (r *PgxMonthlyApprovalRepository) UpsertInTx(ctx context.Context, tx pgx.Tx, row domain.MonthlyApprovalRow) error {
	m := mapping.ToModelMonthlyApprovalRow(row)
	query := `
		INSERT INTO monthly_approvals (approval_id, member_id, period_start, period_end, status)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (approval_id) DO UPDATE SET
			member_id = EXCLUDED.member_id,
			period_start = EXCLUDED.period_start,
			period_end = EXCLUDED.period_end,
			status = EXCLUDED.status;
	`
	if _, err := tx.Exec(ctx, query, m.ApprovalID, m.MemberID, m.PeriodStart, m.PeriodEnd, m.Status); err != nil {
		return apperrors.NewAppError(500, "failed to upsert monthly approval "+m.ApprovalID, err)
	}
	return nil
}

func (r *PgxMonthlyApprovalRepository) findOne(ctx context.Context, query string, args ...any) (*domain.MonthlyApprovalRow, error) {
	var m models.MonthlyApprovalRow
	err := r.Pool.QueryRow(ctx, query, args...).Scan(
		&m.ApprovalID,
		&m.MemberID,
		&m.PeriodStart,
		&m.PeriodEnd,
		&m.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("monthly approval not found")
		}
		return nil, fmt.Errorf("failed to find monthly approval: %w", err)
	}
	row := mapping.ToDomainMonthlyApprovalRow(m)
	return &row, nil
}
