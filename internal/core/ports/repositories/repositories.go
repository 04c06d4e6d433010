package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	EventLogRepo        EventLogRepositoryWithTx
	DailyEntryRepo      DailyEntryRepositoryFacade
	CalendarRepo        CalendarRepositoryFacade
	SummaryRepo         SummaryRepositoryFacade
	MonthlyApprovalRepo MonthlyApprovalRepositoryFacade
	DailyApprovalRepo   DailyApprovalRepositoryWithTx
	PatternRepo         PatternRepositoryFacade
	Members             MemberDirectory
}
