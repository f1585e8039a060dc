package services

import (
	"context"

	"github.com/SscSPs/crew_planner/internal/core/domain"
)

// DepotSvc manages depots.
type DepotSvc interface {
	CreateDepot(ctx context.Context, caller *domain.CallerContext, depot domain.Depot) (*domain.Depot, error)
	GetDepot(ctx context.Context, caller *domain.CallerContext, depotID string) (*domain.Depot, error)
	ListDepots(ctx context.Context, caller *domain.CallerContext) ([]domain.Depot, error)
	UpdateDepot(ctx context.Context, caller *domain.CallerContext, depot domain.Depot) (*domain.Depot, error)
	DeleteDepot(ctx context.Context, caller *domain.CallerContext, depotID string) error
}

// CrewSvc manages crews and their archival.
type CrewSvc interface {
	CreateCrew(ctx context.Context, caller *domain.CallerContext, crew domain.Crew) (*domain.Crew, error)
	GetCrew(ctx context.Context, caller *domain.CallerContext, crewID string) (*domain.Crew, error)
	ListCrews(ctx context.Context, caller *domain.CallerContext, includeArchived bool) ([]domain.Crew, error)
	UpdateCrew(ctx context.Context, caller *domain.CallerContext, crew domain.Crew) (*domain.Crew, error)

	// ArchiveCrew archives the crew and removes its items from today onwards. It returns the
	// number of removed items.
	ArchiveCrew(ctx context.Context, caller *domain.CallerContext, crewID string) (int, error)
}

// EmployeeSvc manages employees.
type EmployeeSvc interface {
	CreateEmployee(ctx context.Context, caller *domain.CallerContext, employee domain.Employee) (*domain.Employee, error)
	ListEmployees(ctx context.Context, caller *domain.CallerContext, depotID *string) ([]domain.Employee, error)
	UpdateEmployee(ctx context.Context, caller *domain.CallerContext, employee domain.Employee) (*domain.Employee, error)
	DeleteEmployee(ctx context.Context, caller *domain.CallerContext, employeeID string) error
}

// VehicleSvc manages vehicles.
type VehicleSvc interface {
	CreateVehicle(ctx context.Context, caller *domain.CallerContext, vehicle domain.Vehicle) (*domain.Vehicle, error)
	ListVehicles(ctx context.Context, caller *domain.CallerContext, depotID *string) ([]domain.Vehicle, error)
	UpdateVehicle(ctx context.Context, caller *domain.CallerContext, vehicle domain.Vehicle) (*domain.Vehicle, error)
	DeleteVehicle(ctx context.Context, caller *domain.CallerContext, vehicleID string) error
}

// ResourceSvcFacade combines all resource service interfaces
type ResourceSvcFacade interface {
	DepotSvc
	CrewSvc
	EmployeeSvc
	VehicleSvc
}
