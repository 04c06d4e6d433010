package services_test

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/totodo713/miometory-sub007/internal/apperrors"
	"github.com/totodo713/miometory-sub007/internal/core/domain"
	portsrepo "github.com/totodo713/miometory-sub007/internal/core/ports/repositories"
	portssvc "github.com/totodo713/miometory-sub007/internal/core/ports/services"
	"github.com/totodo713/miometory-sub007/internal/core/services"
	"github.com/totodo713/miometory-sub007/internal/dto"
)

// The fakes below are in-memory stand-ins for the pgsql repositories. They
// honor the same contracts (version check, active-decision supersession,
// not-found mapping) so the services can be exercised end to end without a
// database. Transaction handles are ignored; every write is immediate.

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time   { return c.now }
func (c *fakeClock) Today() time.Time { return domain.DateOnly(c.now) }

// --- event log ---

type fakeEventLog struct {
	streams map[string][]domain.Event
	types   map[string]domain.AggregateType
}

var _ portsrepo.EventLogRepositoryWithTx = (*fakeEventLog)(nil)

func newFakeEventLog() *fakeEventLog {
	return &fakeEventLog{
		streams: make(map[string][]domain.Event),
		types:   make(map[string]domain.AggregateType),
	}
}

func (f *fakeEventLog) Begin(ctx context.Context) (pgx.Tx, error)     { return nil, nil }
func (f *fakeEventLog) Commit(ctx context.Context, tx pgx.Tx) error   { return nil }
func (f *fakeEventLog) Rollback(ctx context.Context, tx pgx.Tx) error { return nil }

func (f *fakeEventLog) AppendEventsInTx(ctx context.Context, tx pgx.Tx, aggregateID string, aggregateType domain.AggregateType, expectedVersion int64, events []domain.Event) error {
	current := int64(len(f.streams[aggregateID]))
	if current != expectedVersion {
		return apperrors.NewConflictError(apperrors.CodeConcurrencyConflict, fmt.Sprintf("aggregate %s is at version %d, expected %d", aggregateID, current, expectedVersion))
	}
	for i, evt := range events {
		if evt.Version != expectedVersion+int64(i)+1 {
			return apperrors.NewCorruptError(fmt.Sprintf("event version %d out of sequence for %s", evt.Version, aggregateID))
		}
	}
	f.streams[aggregateID] = append(f.streams[aggregateID], events...)
	f.types[aggregateID] = aggregateType
	return nil
}

func (f *fakeEventLog) LoadEvents(ctx context.Context, aggregateID string) ([]domain.Event, error) {
	events, ok := f.streams[aggregateID]
	if !ok {
		return nil, apperrors.NewNotFoundError("no events for aggregate " + aggregateID)
	}
	return append([]domain.Event(nil), events...), nil
}

func (f *fakeEventLog) LoadEventsByAggregateType(ctx context.Context, aggregateType domain.AggregateType) ([]domain.Event, error) {
	var ids []string
	for id, typ := range f.types {
		if typ == aggregateType {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	var all []domain.Event
	for _, id := range ids {
		all = append(all, f.streams[id]...)
	}
	return all, nil
}

// --- daily entry projection ---

type fakeDailyEntries struct {
	rows map[string]domain.DailyEntry
}

var _ portsrepo.DailyEntryRepositoryFacade = (*fakeDailyEntries)(nil)

func newFakeDailyEntries() *fakeDailyEntries {
	return &fakeDailyEntries{rows: make(map[string]domain.DailyEntry)}
}

func (f *fakeDailyEntries) FindByEntryID(ctx context.Context, entryID string) (*domain.DailyEntry, error) {
	row, ok := f.rows[entryID]
	if !ok {
		return nil, apperrors.NewNotFoundError("daily entry not found")
	}
	return &row, nil
}

func (f *fakeDailyEntries) ListByMemberAndRange(ctx context.Context, memberID string, from, to time.Time) ([]domain.DailyEntry, error) {
	var out []domain.DailyEntry
	for _, row := range f.rows {
		if row.MemberID == memberID && !row.Date.Before(from) && !row.Date.After(to) {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].EntryID < out[j].EntryID
	})
	return out, nil
}

func (f *fakeDailyEntries) ListByMemberAndRangeInTx(ctx context.Context, tx pgx.Tx, memberID string, from, to time.Time) ([]domain.DailyEntry, error) {
	return f.ListByMemberAndRange(ctx, memberID, from, to)
}

func (f *fakeDailyEntries) ListAll(ctx context.Context) ([]domain.DailyEntry, error) {
	out := make([]domain.DailyEntry, 0, len(f.rows))
	for _, row := range f.rows {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EntryID < out[j].EntryID })
	return out, nil
}

func (f *fakeDailyEntries) UpsertInTx(ctx context.Context, tx pgx.Tx, entry domain.DailyEntry) error {
	f.rows[entry.EntryID] = entry
	return nil
}

func (f *fakeDailyEntries) DeleteInTx(ctx context.Context, tx pgx.Tx, entryID string) error {
	delete(f.rows, entryID)
	return nil
}

// --- calendar and summary projections ---

type monthKey struct {
	memberID   string
	fiscalYear int
	monthIndex int
}

type fakeCalendars struct {
	months map[monthKey][]domain.CalendarDay
}

var _ portsrepo.CalendarRepositoryFacade = (*fakeCalendars)(nil)

func newFakeCalendars() *fakeCalendars {
	return &fakeCalendars{months: make(map[monthKey][]domain.CalendarDay)}
}

func (f *fakeCalendars) ReplaceMonthInTx(ctx context.Context, tx pgx.Tx, memberID string, fiscalYear, monthIndex int, days []domain.CalendarDay) error {
	f.months[monthKey{memberID, fiscalYear, monthIndex}] = append([]domain.CalendarDay(nil), days...)
	return nil
}

func (f *fakeCalendars) GetMonth(ctx context.Context, memberID string, fiscalYear, monthIndex int) ([]domain.CalendarDay, error) {
	return f.months[monthKey{memberID, fiscalYear, monthIndex}], nil
}

type fakeSummaries struct {
	months map[monthKey][]domain.ProjectSummary
}

var _ portsrepo.SummaryRepositoryFacade = (*fakeSummaries)(nil)

func newFakeSummaries() *fakeSummaries {
	return &fakeSummaries{months: make(map[monthKey][]domain.ProjectSummary)}
}

func (f *fakeSummaries) ReplaceMonthInTx(ctx context.Context, tx pgx.Tx, memberID string, fiscalYear, monthIndex int, summaries []domain.ProjectSummary) error {
	f.months[monthKey{memberID, fiscalYear, monthIndex}] = append([]domain.ProjectSummary(nil), summaries...)
	return nil
}

func (f *fakeSummaries) GetMonth(ctx context.Context, memberID string, fiscalYear, monthIndex int) ([]domain.ProjectSummary, error) {
	return f.months[monthKey{memberID, fiscalYear, monthIndex}], nil
}

// --- monthly approval lookup rows ---

type fakeMonthlyRows struct {
	rows map[string]domain.MonthlyApprovalRow
}

var _ portsrepo.MonthlyApprovalRepositoryFacade = (*fakeMonthlyRows)(nil)

func newFakeMonthlyRows() *fakeMonthlyRows {
	return &fakeMonthlyRows{rows: make(map[string]domain.MonthlyApprovalRow)}
}

func (f *fakeMonthlyRows) FindByMemberAndPeriod(ctx context.Context, memberID string, periodStart time.Time) (*domain.MonthlyApprovalRow, error) {
	for _, row := range f.rows {
		if row.MemberID == memberID && row.PeriodStart.Equal(periodStart) {
			r := row
			return &r, nil
		}
	}
	return nil, apperrors.NewNotFoundError("monthly approval not found")
}

func (f *fakeMonthlyRows) FindByApprovalID(ctx context.Context, approvalID string) (*domain.MonthlyApprovalRow, error) {
	row, ok := f.rows[approvalID]
	if !ok {
		return nil, apperrors.NewNotFoundError("monthly approval not found")
	}
	return &row, nil
}

func (f *fakeMonthlyRows) UpsertInTx(ctx context.Context, tx pgx.Tx, row domain.MonthlyApprovalRow) error {
	f.rows[row.ApprovalID] = row
	return nil
}

// --- daily approval decisions ---

type decisionRecord struct {
	decision domain.DailyEntryApproval
	// recorded keeps the decision as originally made; supersession flips
	// the live status to RECALLED without touching it.
	recorded domain.DailyApprovalStatus
}

type fakeDailyApprovals struct {
	records map[string]*decisionRecord
}

var _ portsrepo.DailyApprovalRepositoryWithTx = (*fakeDailyApprovals)(nil)

func newFakeDailyApprovals() *fakeDailyApprovals {
	return &fakeDailyApprovals{records: make(map[string]*decisionRecord)}
}

func (f *fakeDailyApprovals) Begin(ctx context.Context) (pgx.Tx, error)     { return nil, nil }
func (f *fakeDailyApprovals) Commit(ctx context.Context, tx pgx.Tx) error   { return nil }
func (f *fakeDailyApprovals) Rollback(ctx context.Context, tx pgx.Tx) error { return nil }

func (f *fakeDailyApprovals) FindByID(ctx context.Context, decisionID string) (*domain.DailyEntryApproval, error) {
	rec, ok := f.records[decisionID]
	if !ok {
		return nil, apperrors.NewNotFoundError("daily approval not found")
	}
	d := rec.decision
	return &d, nil
}

func (f *fakeDailyApprovals) FindActiveByEntryID(ctx context.Context, workLogEntryID string) (*domain.DailyEntryApproval, error) {
	for _, rec := range f.records {
		if rec.decision.WorkLogEntryID == workLogEntryID && rec.decision.Status != domain.DailyRecalled {
			d := rec.decision
			return &d, nil
		}
	}
	return nil, nil
}

func (f *fakeDailyApprovals) ListActiveByEntryIDs(ctx context.Context, entryIDs []string) ([]domain.DailyEntryApproval, error) {
	var out []domain.DailyEntryApproval
	for _, id := range entryIDs {
		active, err := f.FindActiveByEntryID(ctx, id)
		if err != nil {
			return nil, err
		}
		if active != nil {
			out = append(out, *active)
		}
	}
	return out, nil
}

func (f *fakeDailyApprovals) HasRejectionForMemberDate(ctx context.Context, memberID string, date time.Time) (bool, error) {
	for _, rec := range f.records {
		if rec.decision.MemberID == memberID && rec.decision.EntryDate.Equal(domain.DateOnly(date)) && rec.recorded == domain.DailyRejected {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeDailyApprovals) SaveInTx(ctx context.Context, tx pgx.Tx, decision domain.DailyEntryApproval) error {
	for _, rec := range f.records {
		if rec.decision.WorkLogEntryID == decision.WorkLogEntryID && rec.decision.Status != domain.DailyRecalled {
			rec.decision.Status = domain.DailyRecalled
			rec.decision.UpdatedAt = decision.CreatedAt
		}
	}
	f.records[decision.ID] = &decisionRecord{decision: decision, recorded: decision.Status}
	return nil
}

func (f *fakeDailyApprovals) UpdateStatus(ctx context.Context, decision domain.DailyEntryApproval) error {
	rec, ok := f.records[decision.ID]
	if !ok {
		return apperrors.NewNotFoundError("daily approval not found")
	}
	rec.decision = decision
	return nil
}

// --- fiscal patterns ---

type scopeKey struct {
	scope   domain.PatternScope
	scopeID string
}

type fakePatterns struct {
	fiscalYears    map[scopeKey]domain.FiscalYearPattern
	monthlyPeriods map[scopeKey]domain.MonthlyPeriodPattern
	holidayRules   map[scopeKey][]domain.HolidayRule
}

var _ portsrepo.PatternRepositoryFacade = (*fakePatterns)(nil)

func newFakePatterns() *fakePatterns {
	return &fakePatterns{
		fiscalYears:    make(map[scopeKey]domain.FiscalYearPattern),
		monthlyPeriods: make(map[scopeKey]domain.MonthlyPeriodPattern),
		holidayRules:   make(map[scopeKey][]domain.HolidayRule),
	}
}

func (f *fakePatterns) FindFiscalYearPattern(ctx context.Context, scope domain.PatternScope, scopeID string) (*domain.FiscalYearPattern, error) {
	pattern, ok := f.fiscalYears[scopeKey{scope, scopeID}]
	if !ok {
		return nil, nil
	}
	return &pattern, nil
}

func (f *fakePatterns) FindMonthlyPeriodPattern(ctx context.Context, scope domain.PatternScope, scopeID string) (*domain.MonthlyPeriodPattern, error) {
	pattern, ok := f.monthlyPeriods[scopeKey{scope, scopeID}]
	if !ok {
		return nil, nil
	}
	return &pattern, nil
}

func (f *fakePatterns) ListHolidayRules(ctx context.Context, scope domain.PatternScope, scopeID string) ([]domain.HolidayRule, error) {
	return f.holidayRules[scopeKey{scope, scopeID}], nil
}

// --- member directory ---

type fakeMembers struct {
	members map[string]domain.Member
}

var _ portsrepo.MemberDirectory = (*fakeMembers)(nil)

func newFakeMembers() *fakeMembers {
	return &fakeMembers{members: make(map[string]domain.Member)}
}

func (f *fakeMembers) add(member domain.Member) {
	f.members[member.MemberID] = member
}

func (f *fakeMembers) FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	member, ok := f.members[memberID]
	if !ok {
		return nil, apperrors.NewNotFoundError("member " + memberID + " not found")
	}
	return &member, nil
}

func (f *fakeMembers) IsManagerOf(ctx context.Context, supervisorID, memberID string) (bool, error) {
	member, ok := f.members[memberID]
	if !ok {
		return false, nil
	}
	return member.ManagerID == supervisorID, nil
}

// --- wiring ---

type testEnv struct {
	clock          *fakeClock
	eventLog       *fakeEventLog
	dailyEntries   *fakeDailyEntries
	calendars      *fakeCalendars
	summaries      *fakeSummaries
	monthlyRows    *fakeMonthlyRows
	dailyApprovals *fakeDailyApprovals
	patterns       *fakePatterns
	members        *fakeMembers
	services       *portssvc.ServiceContainer
}

// newTestEnv wires the full service container over in-memory fakes, with a
// manager/member pair already in the directory and the clock fixed at
// 2026-02-15.
func newTestEnv() *testEnv {
	env := &testEnv{
		clock:          &fakeClock{now: time.Date(2026, time.February, 15, 10, 0, 0, 0, time.UTC)},
		eventLog:       newFakeEventLog(),
		dailyEntries:   newFakeDailyEntries(),
		calendars:      newFakeCalendars(),
		summaries:      newFakeSummaries(),
		monthlyRows:    newFakeMonthlyRows(),
		dailyApprovals: newFakeDailyApprovals(),
		patterns:       newFakePatterns(),
		members:        newFakeMembers(),
	}
	env.members.add(domain.Member{MemberID: "member-1", DisplayName: "Alex", ManagerID: "manager-1", OrganizationID: "org-1", TenantID: "tenant-1"})
	env.members.add(domain.Member{MemberID: "member-2", DisplayName: "Sam", ManagerID: "manager-1", OrganizationID: "org-1", TenantID: "tenant-1"})
	env.members.add(domain.Member{MemberID: "manager-1", DisplayName: "Jo", OrganizationID: "org-1", TenantID: "tenant-1"})

	env.services = services.NewServiceContainer(env.clock, portsrepo.RepositoryProvider{
		EventLogRepo:        env.eventLog,
		DailyEntryRepo:      env.dailyEntries,
		CalendarRepo:        env.calendars,
		SummaryRepo:         env.summaries,
		MonthlyApprovalRepo: env.monthlyRows,
		DailyApprovalRepo:   env.dailyApprovals,
		PatternRepo:         env.patterns,
		Members:             env.members,
	})
	return env
}

// createEntry records a self-entered entry and fails the test on any error.
func (env *testEnv) createEntry(t *testing.T, memberID, projectID, date string, hours float64) *domain.WorkLogEntry {
	t.Helper()
	entry, err := env.services.WorkLog.CreateEntry(context.Background(), dto.CreateWorkLogEntryRequest{
		MemberID:  memberID,
		ProjectID: projectID,
		Date:      strPtr(date),
		Hours:     floatPtr(hours),
	}, memberID)
	require.NoError(t, err)
	return entry
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
