package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/totodo713/miometory-sub007/internal/apperrors"
	"github.com/totodo713/miometory-sub007/internal/core/domain"
	portsrepo "github.com/totodo713/miometory-sub007/internal/core/ports/repositories"
	"github.com/totodo713/miometory-sub007/internal/models"
	"github.com/totodo713/miometory-sub007/internal/utils/mapping"
)

type PgxMemberRepository struct {
	BaseRepository
}

// newPgxMemberRepository creates a new repository over the member directory.
func newPgxMemberRepository(pool *pgxpool.Pool) portsrepo.MemberDirectory {
	return &PgxMemberRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.MemberDirectory = (*PgxMemberRepository)(nil)

// FindMemberByID retrieves a member directory record.
func (r *PgxMemberRepository) FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	query := `
		SELECT member_id, display_name, COALESCE(manager_id, ''), organization_id, tenant_id, created_at, created_by, last_updated_at, last_updated_by
		FROM members
		WHERE member_id = $1;
	`
	var m models.Member
	err := r.Pool.QueryRow(ctx, query, memberID).Scan(
		&m.MemberID,
		&m.DisplayName,
		&m.ManagerID,
		&m.OrganizationID,
		&m.TenantID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("member " + memberID + " not found")
		}
		return nil, fmt.Errorf("failed to find member %s: %w", memberID, err)
	}
	member := mapping.ToDomainMember(m)
	return &member, nil
}

// IsManagerOf reports whether supervisorID is memberID's manager.
func (r *PgxMemberRepository) IsManagerOf(ctx context.Context, supervisorID, memberID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM members WHERE member_id = $1 AND manager_id = $2);`
	var ok bool
	if err := r.Pool.QueryRow(ctx, query, memberID, supervisorID).Scan(&ok); err != nil {
		return false, fmt.Errorf("failed to check manager relationship for %s: %w", memberID, err)
	}
	return ok, nil
}
