package services

import (
	"github.com/SscSPs/crew_planner/internal/core/ledger"
	portsrepo "github.com/SscSPs/crew_planner/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/crew_planner/internal/core/ports/services"
	"github.com/SscSPs/crew_planner/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, events portssvc.EventPublisher, registry *ledger.Registry) *portssvc.ServiceContainer {
	if events == nil {
		events = NoopEventPublisher{}
	}
	container := &portssvc.ServiceContainer{}

	container.Access = NewAccessService(repos.OrganizationRepo)
	container.Quota = NewQuotaService(repos.ResourceCounter, cfg.PlanLimits)

	schedule := NewScheduleService(repos.ScheduleItemRepo, repos.CrewRepo, WithScheduleEvents(events))
	container.Schedule = schedule
	container.Planner = NewPlannerService(schedule, registry)

	container.Resource = NewResourceService(
		container.Quota,
		repos.DepotRepo,
		repos.CrewRepo,
		repos.EmployeeRepo,
		repos.VehicleRepo,
		events,
	)

	container.Organization = NewOrganizationService(repos.OrganizationRepo)
	container.Team = NewTeamService(repos.OrganizationRepo, repos.InvitationRepo, cfg.InvitationTTL)
	container.Settings = NewSettingsService(repos.ColorLabelRepo, repos.SettingsStore)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.OrganizationSvc = (*organizationService)(nil)
	_ portssvc.TeamSvc         = (*teamService)(nil)
	_ portssvc.SettingsSvc     = (*settingsService)(nil)
)
