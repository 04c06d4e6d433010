package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/totodo713/miometory-sub007/internal/core/domain"
)

// DailyApprovalReader defines read operations for supervisor decisions.
type DailyApprovalReader interface {
	// FindByID retrieves one decision, or ErrNotFound.
	FindByID(ctx context.Context, decisionID string) (*domain.DailyEntryApproval, error)

	// FindActiveByEntryID retrieves the single non-RECALLED decision for a
	// work-log entry, or nil when none is active.
	FindActiveByEntryID(ctx context.Context, workLogEntryID string) (*domain.DailyEntryApproval, error)

	// ListActiveByEntryIDs returns active decisions for the given entries.
	ListActiveByEntryIDs(ctx context.Context, entryIDs []string) ([]domain.DailyEntryApproval, error)

	// HasRejectionForMemberDate reports whether any rejection decision
	// (recalled or not) was ever recorded for the member on the date. The
	// rejection cycle proves the day's entries are still mutable, which
	// re-opens recall eligibility after a monthly submission.
	HasRejectionForMemberDate(ctx context.Context, memberID string, date time.Time) (bool, error)
}

// DailyApprovalWriter defines write operations for supervisor decisions.
type DailyApprovalWriter interface {
	// SaveInTx inserts a new decision after marking any prior active
	// decision for the same entry RECALLED. Prior rows are kept for audit.
	SaveInTx(ctx context.Context, tx pgx.Tx, decision domain.DailyEntryApproval) error

	// UpdateStatus persists a recall.
	UpdateStatus(ctx context.Context, decision domain.DailyEntryApproval) error
}

// DailyApprovalRepositoryFacade combines decision repository interfaces.
type DailyApprovalRepositoryFacade interface {
	DailyApprovalReader
	DailyApprovalWriter
}

// DailyApprovalRepositoryWithTx extends the facade with transaction
// capabilities.
type DailyApprovalRepositoryWithTx interface {
	DailyApprovalRepositoryFacade
	TransactionManager
}
