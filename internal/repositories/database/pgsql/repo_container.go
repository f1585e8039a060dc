package pgsql

import (
	portsrepo "github.com/SscSPs/crew_planner/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the Postgres repositories. settingsStore is kept outside Postgres and
// may be nil.
func NewRepositoryProvider(dbPool *pgxpool.Pool, settingsStore portsrepo.PlannerSettingsStore) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		OrganizationRepo: newPgxOrganizationRepository(dbPool),
		InvitationRepo:   newPgxInvitationRepository(dbPool),
		ResourceCounter:  newPgxResourceCounter(dbPool),
		DepotRepo:        newPgxDepotRepository(dbPool),
		CrewRepo:         newPgxCrewRepository(dbPool),
		EmployeeRepo:     newPgxEmployeeRepository(dbPool),
		VehicleRepo:      newPgxVehicleRepository(dbPool),
		ScheduleItemRepo: newPgxScheduleItemRepository(dbPool),
		ColorLabelRepo:   newPgxColorLabelRepository(dbPool),
		SettingsStore:    settingsStore,
	}
}
