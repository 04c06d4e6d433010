package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/totodo713/miometory-sub007/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		EventLogRepo:        newPgxEventLogRepository(dbPool),
		DailyEntryRepo:      newPgxDailyEntryRepository(dbPool),
		CalendarRepo:        newPgxCalendarRepository(dbPool),
		SummaryRepo:         newPgxSummaryRepository(dbPool),
		MonthlyApprovalRepo: newPgxMonthlyApprovalRepository(dbPool),
		DailyApprovalRepo:   newPgxDailyApprovalRepository(dbPool),
		PatternRepo:         newPgxPatternRepository(dbPool),
		Members:             newPgxMemberRepository(dbPool),
	}
}
