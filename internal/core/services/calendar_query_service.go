package services

import (
	"context"
	"time"

	"github.com/totodo713/miometory-sub007/internal/core/domain"
	portsrepo "github.com/totodo713/miometory-sub007/internal/core/ports/repositories"
	portssvc "github.com/totodo713/miometory-sub007/internal/core/ports/services"
	"github.com/totodo713/miometory-sub007/internal/dto"
)

// calendarQueryService serves the read-side projections. It never touches
// the event log; everything it returns was materialized by the projector or
// the reconciler.
type calendarQueryService struct {
	BaseService
	calendarRepo portsrepo.CalendarRepositoryFacade
	summaryRepo  portsrepo.SummaryRepositoryFacade
	members      portsrepo.MemberDirectory
	fiscal       portssvc.FiscalSvcFacade
}

// NewCalendarQueryService creates a new CalendarQueryService.
func NewCalendarQueryService(calendarRepo portsrepo.CalendarRepositoryFacade, summaryRepo portsrepo.SummaryRepositoryFacade, members portsrepo.MemberDirectory, fiscal portssvc.FiscalSvcFacade) portssvc.CalendarQuerySvcFacade {
	return &calendarQueryService{
		calendarRepo: calendarRepo,
		summaryRepo:  summaryRepo,
		members:      members,
		fiscal:       fiscal,
	}
}

var _ portssvc.CalendarQuerySvcFacade = (*calendarQueryService)(nil)

// GetMemberCalendar returns the calendar projection for the fiscal month
// containing date, with resolved holidays annotated onto the days.
func (s *calendarQueryService) GetMemberCalendar(ctx context.Context, memberID string, date time.Time) (*dto.CalendarResponse, error) {
	member, err := s.members.FindMemberByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	info, err := s.fiscal.ResolvePeriod(ctx, member.OrganizationID, member.TenantID, date)
	if err != nil {
		return nil, err
	}
	month := info.Month

	days, err := s.calendarRepo.GetMonth(ctx, memberID, month.FiscalYear, month.MonthIndex)
	if err != nil {
		return nil, err
	}
	holidays, err := s.fiscal.HolidaysInRange(ctx, member.OrganizationID, member.TenantID, month.Start, month.End)
	if err != nil {
		return nil, err
	}

	dayResponses := make([]dto.CalendarDayResponse, len(days))
	for i, day := range days {
		resp := dto.ToCalendarDayResponse(day)
		if holiday, ok := holidays[domain.DateOnly(day.Date)]; ok {
			resp.Holiday = holiday.Name
		}
		dayResponses[i] = resp
	}
	return &dto.CalendarResponse{
		MemberID:    memberID,
		FiscalYear:  month.FiscalYear,
		MonthIndex:  month.MonthIndex,
		PeriodStart: dto.FormatDate(month.Start),
		PeriodEnd:   dto.FormatDate(month.End),
		Days:        dayResponses,
	}, nil
}

// GetMemberSummary returns the project summary projection for the fiscal
// month containing date.
func (s *calendarQueryService) GetMemberSummary(ctx context.Context, memberID string, date time.Time) (*dto.SummaryResponse, error) {
	info, err := s.fiscal.ResolvePeriodForMember(ctx, memberID, date)
	if err != nil {
		return nil, err
	}
	month := info.Month

	summaries, err := s.summaryRepo.GetMonth(ctx, memberID, month.FiscalYear, month.MonthIndex)
	if err != nil {
		return nil, err
	}

	total := 0.0
	projects := make([]dto.ProjectSummaryResponse, len(summaries))
	for i, summary := range summaries {
		projects[i] = dto.ToProjectSummaryResponse(summary)
		total += projects[i].TotalHours
	}
	return &dto.SummaryResponse{
		MemberID:    memberID,
		FiscalYear:  month.FiscalYear,
		MonthIndex:  month.MonthIndex,
		PeriodStart: dto.FormatDate(month.Start),
		PeriodEnd:   dto.FormatDate(month.End),
		TotalHours:  total,
		Projects:    projects,
	}, nil
}
