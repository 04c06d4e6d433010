package services

import (
	"context"
	"time"

	"github.com/totodo713/miometory-sub007/internal/core/domain"
	portsrepo "github.com/totodo713/miometory-sub007/internal/core/ports/repositories"
	portssvc "github.com/totodo713/miometory-sub007/internal/core/ports/services"
)

// Built-in patterns used only when even the DEFAULT scope rows are missing
// from the database, so period resolution never fails outright.
var (
	builtinFiscalYearPattern    = domain.FiscalYearPattern{StartMonth: time.January, StartDay: 1}
	builtinMonthlyPeriodPattern = domain.MonthlyPeriodPattern{StartDay: 1}
)

// fiscalService resolves accounting periods and holiday calendars from the
// configured patterns, falling back organization -> tenant -> default.
type fiscalService struct {
	BaseService
	patterns portsrepo.PatternRepositoryFacade
	members  portsrepo.MemberDirectory
}

// NewFiscalService creates a new FiscalService.
func NewFiscalService(patterns portsrepo.PatternRepositoryFacade, members portsrepo.MemberDirectory) portssvc.FiscalSvcFacade {
	return &fiscalService{patterns: patterns, members: members}
}

var _ portssvc.FiscalSvcFacade = (*fiscalService)(nil)

// ResolvePeriod computes the fiscal month containing date for an
// organization. The reported scopes say which configuration level supplied
// each pattern.
func (s *fiscalService) ResolvePeriod(ctx context.Context, organizationID, tenantID string, date time.Time) (*portssvc.FiscalMonthInfo, error) {
	fy, fyScope, err := s.lookupFiscalYearPattern(ctx, organizationID, tenantID)
	if err != nil {
		return nil, err
	}
	mp, mpScope, err := s.lookupMonthlyPeriodPattern(ctx, organizationID, tenantID)
	if err != nil {
		return nil, err
	}
	return &portssvc.FiscalMonthInfo{
		Month:           domain.ResolveFiscalMonth(date, fy, mp),
		FiscalYearScope: fyScope,
		MonthlyScope:    mpScope,
	}, nil
}

// ResolvePeriodForMember resolves via the member's directory record.
func (s *fiscalService) ResolvePeriodForMember(ctx context.Context, memberID string, date time.Time) (*portssvc.FiscalMonthInfo, error) {
	member, err := s.members.FindMemberByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return s.ResolvePeriod(ctx, member.OrganizationID, member.TenantID, date)
}

// HolidaysInRange resolves holiday rules over an inclusive date range. Rules
// from more specific scopes are applied last so they win on date collisions.
func (s *fiscalService) HolidaysInRange(ctx context.Context, organizationID, tenantID string, from, to time.Time) (map[time.Time]domain.Holiday, error) {
	var rules []domain.HolidayRule
	levels := scopeChain(organizationID, tenantID)
	for i := len(levels) - 1; i >= 0; i-- {
		scoped, err := s.patterns.ListHolidayRules(ctx, levels[i].scope, levels[i].scopeID)
		if err != nil {
			return nil, err
		}
		rules = append(rules, scoped...)
	}
	return domain.ResolveHolidays(rules, from, to), nil
}

func (s *fiscalService) lookupFiscalYearPattern(ctx context.Context, organizationID, tenantID string) (domain.FiscalYearPattern, domain.PatternScope, error) {
	for _, level := range scopeChain(organizationID, tenantID) {
		pattern, err := s.patterns.FindFiscalYearPattern(ctx, level.scope, level.scopeID)
		if err != nil {
			return domain.FiscalYearPattern{}, "", err
		}
		if pattern != nil {
			return *pattern, level.scope, nil
		}
	}
	return builtinFiscalYearPattern, domain.ScopeDefault, nil
}

func (s *fiscalService) lookupMonthlyPeriodPattern(ctx context.Context, organizationID, tenantID string) (domain.MonthlyPeriodPattern, domain.PatternScope, error) {
	for _, level := range scopeChain(organizationID, tenantID) {
		pattern, err := s.patterns.FindMonthlyPeriodPattern(ctx, level.scope, level.scopeID)
		if err != nil {
			return domain.MonthlyPeriodPattern{}, "", err
		}
		if pattern != nil {
			return *pattern, level.scope, nil
		}
	}
	return builtinMonthlyPeriodPattern, domain.ScopeDefault, nil
}

type scopeLevel struct {
	scope   domain.PatternScope
	scopeID string
}

func scopeChain(organizationID, tenantID string) []scopeLevel {
	return []scopeLevel{
		{domain.ScopeOrganization, organizationID},
		{domain.ScopeTenant, tenantID},
		{domain.ScopeDefault, ""},
	}
}
