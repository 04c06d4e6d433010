package services

import (
	"context"
	"time"

	"github.com/totodo713/miometory-sub007/internal/core/domain"
	"github.com/totodo713/miometory-sub007/internal/dto"
)

// FiscalMonthInfo is a resolved fiscal month plus the configuration scope
// each pattern came from.
type FiscalMonthInfo struct {
	Month           domain.FiscalMonth
	FiscalYearScope domain.PatternScope
	MonthlyScope    domain.PatternScope
}

// FiscalSvcFacade resolves organization-specific accounting periods and
// holiday calendars.
type FiscalSvcFacade interface {
	// ResolvePeriod computes the fiscal month containing date for an
	// organization, falling back organization -> tenant -> default.
	ResolvePeriod(ctx context.Context, organizationID, tenantID string, date time.Time) (*FiscalMonthInfo, error)

	// ResolvePeriodForMember resolves via the member's directory record.
	ResolvePeriodForMember(ctx context.Context, memberID string, date time.Time) (*FiscalMonthInfo, error)

	// HolidaysInRange resolves the organization's holiday rules over an
	// inclusive date range.
	HolidaysInRange(ctx context.Context, organizationID, tenantID string, from, to time.Time) (map[time.Time]domain.Holiday, error)
}

// CalendarQuerySvcFacade exposes the read-side projections.
type CalendarQuerySvcFacade interface {
	// GetMemberCalendar returns the member's calendar projection for the
	// fiscal month containing date.
	GetMemberCalendar(ctx context.Context, memberID string, date time.Time) (*dto.CalendarResponse, error)

	// GetMemberSummary returns the member's project summary projection for
	// the fiscal month containing date.
	GetMemberSummary(ctx context.Context, memberID string, date time.Time) (*dto.SummaryResponse, error)
}

// ReconcilerSvcFacade repairs projections from the event log.
type ReconcilerSvcFacade interface {
	// Reconcile runs the three repair passes over the full log and then
	// rebuilds the calendar and summary projections for every affected
	// (member, fiscal month). Safe to re-run at any time.
	Reconcile(ctx context.Context) (*dto.ReconcileReport, error)

	// RebuildMemberMonth force-rebuilds one member's fiscal month.
	RebuildMemberMonth(ctx context.Context, memberID string, date time.Time) error
}
