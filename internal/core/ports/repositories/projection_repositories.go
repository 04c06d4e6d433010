package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/totodo713/miometory-sub007/internal/core/domain"
)

// DailyEntryReader defines read operations for the daily-entry projection.
type DailyEntryReader interface {
	// FindByEntryID retrieves one projection row, or ErrNotFound.
	FindByEntryID(ctx context.Context, entryID string) (*domain.DailyEntry, error)

	// ListByMemberAndRange returns a member's rows with dates in [from, to],
	// ordered by date then entry id.
	ListByMemberAndRange(ctx context.Context, memberID string, from, to time.Time) ([]domain.DailyEntry, error)

	// ListByMemberAndRangeInTx is ListByMemberAndRange inside the caller's
	// transaction, so a rebuild sees rows upserted moments earlier in the
	// same transaction.
	ListByMemberAndRangeInTx(ctx context.Context, tx pgx.Tx, memberID string, from, to time.Time) ([]domain.DailyEntry, error)

	// ListAll returns every projection row. Reconciliation passes run over
	// the full table.
	ListAll(ctx context.Context) ([]domain.DailyEntry, error)
}

// DailyEntryWriter defines write operations for the daily-entry projection.
// All writes are overwrite-by-latest-state so repeated runs are no-ops on
// already-consistent rows.
type DailyEntryWriter interface {
	UpsertInTx(ctx context.Context, tx pgx.Tx, entry domain.DailyEntry) error
	DeleteInTx(ctx context.Context, tx pgx.Tx, entryID string) error
}

// DailyEntryRepositoryFacade combines daily-entry projection interfaces.
type DailyEntryRepositoryFacade interface {
	DailyEntryReader
	DailyEntryWriter
}

// CalendarRepositoryFacade stores the per-date calendar projection for a
// member's fiscal month.
type CalendarRepositoryFacade interface {
	// ReplaceMonthInTx deletes the month's prior rows and inserts days in
	// one shot. Callers run it inside the same transaction as the summary
	// replacement so readers never see a half-rebuilt month.
	ReplaceMonthInTx(ctx context.Context, tx pgx.Tx, memberID string, fiscalYear, monthIndex int, days []domain.CalendarDay) error

	GetMonth(ctx context.Context, memberID string, fiscalYear, monthIndex int) ([]domain.CalendarDay, error)
}

// SummaryRepositoryFacade stores the per-project summary projection for a
// member's fiscal month.
type SummaryRepositoryFacade interface {
	ReplaceMonthInTx(ctx context.Context, tx pgx.Tx, memberID string, fiscalYear, monthIndex int, summaries []domain.ProjectSummary) error

	GetMonth(ctx context.Context, memberID string, fiscalYear, monthIndex int) ([]domain.ProjectSummary, error)
}

// MonthlyApprovalReader reads the monthly-approval lookup projection.
type MonthlyApprovalReader interface {
	// FindByMemberAndPeriod retrieves the row for (member, period start),
	// or ErrNotFound when the member has no approval aggregate yet.
	FindByMemberAndPeriod(ctx context.Context, memberID string, periodStart time.Time) (*domain.MonthlyApprovalRow, error)

	FindByApprovalID(ctx context.Context, approvalID string) (*domain.MonthlyApprovalRow, error)
}

// MonthlyApprovalWriter maintains the lookup projection alongside aggregate
// appends.
type MonthlyApprovalWriter interface {
	UpsertInTx(ctx context.Context, tx pgx.Tx, row domain.MonthlyApprovalRow) error
}

// MonthlyApprovalRepositoryFacade combines the lookup projection interfaces.
type MonthlyApprovalRepositoryFacade interface {
	MonthlyApprovalReader
	MonthlyApprovalWriter
}
