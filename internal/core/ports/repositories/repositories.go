package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	OrganizationRepo OrganizationRepositoryWithTx
	InvitationRepo   InvitationRepositoryFacade
	ResourceCounter  ResourceCounter
	DepotRepo        DepotRepositoryFacade
	CrewRepo         CrewRepositoryWithTx
	EmployeeRepo     EmployeeRepositoryFacade
	VehicleRepo      VehicleRepositoryFacade
	ScheduleItemRepo ScheduleItemRepositoryWithTx
	ColorLabelRepo   ColorLabelRepository
	SettingsStore    PlannerSettingsStore
}
