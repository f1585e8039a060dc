package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/crew_planner/internal/core/domain"
)

// ResourceCounter reports live resource counts for quota checks.
type ResourceCounter interface {
	// CountResources counts resources of kind owned by the organization. Archived crews are excluded.
	CountResources(ctx context.Context, organizationID string, kind domain.ResourceKind) (int, error)
}

// DepotRepositoryFacade defines persistence for depots.
type DepotRepositoryFacade interface {
	SaveDepot(ctx context.Context, depot domain.Depot) error
	FindDepotByID(ctx context.Context, organizationID, depotID string) (*domain.Depot, error)
	ListDepots(ctx context.Context, organizationID string) ([]domain.Depot, error)
	UpdateDepot(ctx context.Context, depot domain.Depot) error
	DeleteDepot(ctx context.Context, organizationID, depotID string) error
}

// CrewReader defines read operations for crews.
type CrewReader interface {
	FindCrewByID(ctx context.Context, organizationID, crewID string) (*domain.Crew, error)
	ListCrews(ctx context.Context, organizationID string, includeArchived bool) ([]domain.Crew, error)
}

// CrewWriter defines write operations for crews.
type CrewWriter interface {
	SaveCrew(ctx context.Context, crew domain.Crew) error
	UpdateCrew(ctx context.Context, crew domain.Crew) error

	// ArchiveCrewWithFutureItems deletes the crew's schedule items dated on or after cutoff and
	// sets archivedAt, in one transaction. It returns how many items were deleted.
	ArchiveCrewWithFutureItems(ctx context.Context, organizationID, crewID, userID string, cutoff, archivedAt time.Time) (int, error)
}

// CrewRepositoryFacade combines crew repository interfaces
type CrewRepositoryFacade interface {
	CrewReader
	CrewWriter
}

// CrewRepositoryWithTx extends CrewRepositoryFacade with transaction capabilities
type CrewRepositoryWithTx interface {
	CrewRepositoryFacade
	TransactionManager
}

// EmployeeRepositoryFacade defines persistence for employees.
type EmployeeRepositoryFacade interface {
	SaveEmployee(ctx context.Context, employee domain.Employee) error
	FindEmployeeByID(ctx context.Context, organizationID, employeeID string) (*domain.Employee, error)
	ListEmployees(ctx context.Context, organizationID string, depotID *string) ([]domain.Employee, error)
	UpdateEmployee(ctx context.Context, employee domain.Employee) error
	DeleteEmployee(ctx context.Context, organizationID, employeeID string) error
}

// VehicleRepositoryFacade defines persistence for vehicles.
type VehicleRepositoryFacade interface {
	SaveVehicle(ctx context.Context, vehicle domain.Vehicle) error
	FindVehicleByID(ctx context.Context, organizationID, vehicleID string) (*domain.Vehicle, error)
	ListVehicles(ctx context.Context, organizationID string, depotID *string) ([]domain.Vehicle, error)
	UpdateVehicle(ctx context.Context, vehicle domain.Vehicle) error
	DeleteVehicle(ctx context.Context, organizationID, vehicleID string) error
}
