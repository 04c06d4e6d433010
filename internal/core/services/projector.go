package services

import (
	"context"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/totodo713/miometory-sub007/internal/core/domain"
	portsrepo "github.com/totodo713/miometory-sub007/internal/core/ports/repositories"
	portssvc "github.com/totodo713/miometory-sub007/internal/core/ports/services"
)

// monthProjector rebuilds the calendar and summary projections for one
// (member, fiscal month) from the daily-entry rows. The rebuild is
// delete-then-recompute, never incremental, and both projections are
// replaced inside the caller's transaction so a reader can never observe the
// calendar of one rebuild alongside the summary of another.
type monthProjector struct {
	fiscal       portssvc.FiscalSvcFacade
	dailyRepo    portsrepo.DailyEntryRepositoryFacade
	calendarRepo portsrepo.CalendarRepositoryFacade
	summaryRepo  portsrepo.SummaryRepositoryFacade
}

func newMonthProjector(fiscal portssvc.FiscalSvcFacade, dailyRepo portsrepo.DailyEntryRepositoryFacade, calendarRepo portsrepo.CalendarRepositoryFacade, summaryRepo portsrepo.SummaryRepositoryFacade) *monthProjector {
	return &monthProjector{
		fiscal:       fiscal,
		dailyRepo:    dailyRepo,
		calendarRepo: calendarRepo,
		summaryRepo:  summaryRepo,
	}
}

// RebuildInTx recomputes both projections for the fiscal month containing
// date.
func (p *monthProjector) RebuildInTx(ctx context.Context, tx pgx.Tx, memberID string, date time.Time) error {
	info, err := p.fiscal.ResolvePeriodForMember(ctx, memberID, date)
	if err != nil {
		return err
	}
	month := info.Month

	entries, err := p.dailyRepo.ListByMemberAndRangeInTx(ctx, tx, memberID, month.Start, month.End)
	if err != nil {
		return err
	}

	days := buildCalendarDays(entries)
	summaries := buildProjectSummaries(entries)

	if err := p.calendarRepo.ReplaceMonthInTx(ctx, tx, memberID, month.FiscalYear, month.MonthIndex, days); err != nil {
		return err
	}
	return p.summaryRepo.ReplaceMonthInTx(ctx, tx, memberID, month.FiscalYear, month.MonthIndex, summaries)
}

func buildCalendarDays(entries []domain.DailyEntry) []domain.CalendarDay {
	byDate := make(map[time.Time][]domain.DailyEntry)
	for _, e := range entries {
		key := domain.DateOnly(e.Date)
		byDate[key] = append(byDate[key], e)
	}

	days := make([]domain.CalendarDay, 0, len(byDate))
	for date, dayEntries := range byDate {
		sort.Slice(dayEntries, func(i, j int) bool { return dayEntries[i].EntryID < dayEntries[j].EntryID })
		total := decimal.Zero
		calEntries := make([]domain.CalendarEntry, 0, len(dayEntries))
		for _, e := range dayEntries {
			total = total.Add(e.Hours.Decimal())
			calEntries = append(calEntries, domain.CalendarEntry{
				EntryID:   e.EntryID,
				ProjectID: e.ProjectID,
				Hours:     e.Hours,
				Status:    e.Status,
			})
		}
		days = append(days, domain.CalendarDay{Date: date, TotalHours: total, Entries: calEntries})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })
	return days
}

func buildProjectSummaries(entries []domain.DailyEntry) []domain.ProjectSummary {
	byProject := make(map[string]decimal.Decimal)
	memberTotal := decimal.Zero
	for _, e := range entries {
		byProject[e.ProjectID] = byProject[e.ProjectID].Add(e.Hours.Decimal())
		memberTotal = memberTotal.Add(e.Hours.Decimal())
	}

	hundred := decimal.NewFromInt(100)
	summaries := make([]domain.ProjectSummary, 0, len(byProject))
	for projectID, total := range byProject {
		percentage := decimal.Zero
		if memberTotal.IsPositive() {
			percentage = total.Mul(hundred).Div(memberTotal).Round(2)
		}
		summaries = append(summaries, domain.ProjectSummary{
			ProjectID:  projectID,
			TotalHours: total,
			Percentage: percentage,
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ProjectID < summaries[j].ProjectID })
	return summaries
}
