package repositories

import (
	"context"

	"github.com/totodo713/miometory-sub007/internal/core/domain"
)

// PatternRepositoryFacade reads fiscal calendar configuration. Each lookup
// targets one scope level; the resolver service performs the organization ->
// tenant -> default fallback and reports which scope answered.
type PatternRepositoryFacade interface {
	// FindFiscalYearPattern returns nil when the scope has no pattern.
	FindFiscalYearPattern(ctx context.Context, scope domain.PatternScope, scopeID string) (*domain.FiscalYearPattern, error)

	// FindMonthlyPeriodPattern returns nil when the scope has no pattern.
	FindMonthlyPeriodPattern(ctx context.Context, scope domain.PatternScope, scopeID string) (*domain.MonthlyPeriodPattern, error)

	// ListHolidayRules returns the rules defined at one scope level.
	ListHolidayRules(ctx context.Context, scope domain.PatternScope, scopeID string) ([]domain.HolidayRule, error)
}

// MemberDirectory is the collaborator lookup for supervisor checks and
// pattern scoping.
type MemberDirectory interface {
	// FindMemberByID retrieves a member, or ErrNotFound.
	FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error)

	// IsManagerOf reports whether supervisorID is memberID's manager.
	IsManagerOf(ctx context.Context, supervisorID, memberID string) (bool, error)
}
