package services

import (
	"github.com/totodo713/miometory-sub007/internal/core/domain"
	portsrepo "github.com/totodo713/miometory-sub007/internal/core/ports/repositories"
	portssvc "github.com/totodo713/miometory-sub007/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(clock domain.Clock, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Fiscal resolution comes first since nearly every other service keys
	// its work by fiscal month.
	container.Fiscal = NewFiscalService(repos.PatternRepo, repos.Members)

	// The projector is shared: worklog and monthly commands rebuild the
	// affected month inline, and the reconciler reuses the same rebuild.
	projector := newMonthProjector(container.Fiscal, repos.DailyEntryRepo, repos.CalendarRepo, repos.SummaryRepo)

	container.WorkLog = NewWorkLogService(clock, repos.EventLogRepo, repos.DailyEntryRepo, repos.Members, projector)
	container.MonthlyApproval = NewMonthlyApprovalService(clock, repos.EventLogRepo, repos.MonthlyApprovalRepo, repos.DailyEntryRepo, repos.DailyApprovalRepo, repos.Members, container.Fiscal, projector)
	container.DailyApproval = NewDailyApprovalService(clock, repos.DailyApprovalRepo, repos.DailyEntryRepo, repos.MonthlyApprovalRepo, repos.Members, container.Fiscal)
	container.CalendarQuery = NewCalendarQueryService(repos.CalendarRepo, repos.SummaryRepo, repos.Members, container.Fiscal)
	container.Reconciler = NewReconcilerService(repos.EventLogRepo, repos.DailyEntryRepo, repos.MonthlyApprovalRepo, container.Fiscal, projector)

	return container
}
