package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/totodo713/miometory-sub007/internal/core/domain"
	portsrepo "github.com/totodo713/miometory-sub007/internal/core/ports/repositories"
	"github.com/totodo713/miometory-sub007/internal/models"
	"github.com/totodo713/miometory-sub007/internal/utils/mapping"
)

type PgxPatternRepository struct {
	BaseRepository
}

// newPgxPatternRepository creates a new repository for fiscal calendar
// configuration.
func newPgxPatternRepository(pool *pgxpool.Pool) portsrepo.PatternRepositoryFacade {
	return &PgxPatternRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PatternRepositoryFacade = (*PgxPatternRepository)(nil)

// FindFiscalYearPattern returns nil when the scope has no pattern; the
// resolver walks the fallback chain itself.
func (r *PgxPatternRepository) FindFiscalYearPattern(ctx context.Context, scope domain.PatternScope, scopeID string) (*domain.FiscalYearPattern, error) {
	query := `
		SELECT scope, scope_id, start_month, start_day
		FROM fiscal_year_patterns
		WHERE scope = $1 AND scope_id = $2;
	`
	var m models.FiscalYearPattern
	err := r.Pool.QueryRow(ctx, query, string(scope), scopeID).Scan(&m.Scope, &m.ScopeID, &m.StartMonth, &m.StartDay)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find fiscal year pattern for %s/%s: %w", scope, scopeID, err)
	}
	pattern := mapping.ToDomainFiscalYearPattern(m)
	return &pattern, nil
}

// FindMonthlyPeriodPattern returns nil when the scope has no pattern.
func (r *PgxPatternRepository) FindMonthlyPeriodPattern(ctx context.Context, scope domain.PatternScope, scopeID string) (*domain.MonthlyPeriodPattern, error) {
	query := `
		SELECT scope, scope_id, start_day
		FROM monthly_period_patterns
		WHERE scope = $1 AND scope_id = $2;
	`
	var m models.MonthlyPeriodPattern
	err := r.Pool.QueryRow(ctx, query, string(scope), scopeID).Scan(&m.Scope, &m.ScopeID, &m.StartDay)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find monthly period pattern for %s/%s: %w", scope, scopeID, err)
	}
	pattern := mapping.ToDomainMonthlyPeriodPattern(m)
	return &pattern, nil
}

// ListHolidayRules returns the rules defined at one scope level.
func (r *PgxPatternRepository) ListHolidayRules(ctx context.Context, scope domain.PatternScope, scopeID string) ([]domain.HolidayRule, error) {
	query := `
		SELECT rule_id, scope, scope_id, name, localized_name, rule_type, month, day, nth, weekday, specific_year
		FROM holiday_rules
		WHERE scope = $1 AND scope_id = $2
		ORDER BY rule_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, string(scope), scopeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list holiday rules for %s/%s: %w", scope, scopeID, err)
	}
	defer rows.Close()

	var rules []domain.HolidayRule
	for rows.Next() {
		var m models.HolidayRule
		if err := rows.Scan(
			&m.RuleID,
			&m.Scope,
			&m.ScopeID,
			&m.Name,
			&m.LocalizedName,
			&m.RuleType,
			&m.Month,
			&m.Day,
			&m.Nth,
			&m.Weekday,
			&m.SpecificYear,
		); err != nil {
			return nil, fmt.Errorf("failed to scan holiday rule row: %w", err)
		}
		rules = append(rules, mapping.ToDomainHolidayRule(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate holiday rule rows: %w", err)
	}
	return rules, nil
}
