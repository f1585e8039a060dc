package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/crew_planner/internal/apperrors"
	"github.com/SscSPs/crew_planner/internal/core/domain"
	portsrepo "github.com/SscSPs/crew_planner/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/crew_planner/internal/core/ports/services"
	"github.com/google/uuid"
)

// ResourceService manages depots, crews, employees and vehicles.
type ResourceService struct {
	BaseService
	quota     portssvc.QuotaSvc
	depots    portsrepo.DepotRepositoryFacade
	crews     portsrepo.CrewRepositoryFacade
	employees portsrepo.EmployeeRepositoryFacade
	vehicles  portsrepo.VehicleRepositoryFacade
	events    portssvc.EventPublisher
	now       func() time.Time
}

// NewResourceService creates a new ResourceService.
func NewResourceService(
	quota portssvc.QuotaSvc,
	depots portsrepo.DepotRepositoryFacade,
	crews portsrepo.CrewRepositoryFacade,
	employees portsrepo.EmployeeRepositoryFacade,
	vehicles portsrepo.VehicleRepositoryFacade,
	events portssvc.EventPublisher,
) *ResourceService {
	if events == nil {
		events = NoopEventPublisher{}
	}
	return &ResourceService{
		quota:     quota,
		depots:    depots,
		crews:     crews,
		employees: employees,
		vehicles:  vehicles,
		events:    events,
		now:       time.Now,
	}
}

var _ portssvc.ResourceSvcFacade = (*ResourceService)(nil)

// beginCreate runs the gate shared by every resource create: subscription, role, then quota.
func (s *ResourceService) beginCreate(ctx context.Context, caller *domain.CallerContext, kind domain.ResourceKind, name string) error {
	if err := s.Authorize(ctx, caller, domain.CapabilityManageResources, true); err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		return apperrors.NewValidationFailedError(string(kind) + " name is required")
	}
	return s.quota.CheckQuota(ctx, caller, kind)
}

func (s *ResourceService) requireDepot(ctx context.Context, organizationID, depotID string) error {
	if _, err := s.depots.FindDepotByID(ctx, organizationID, depotID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: depot %s does not exist", apperrors.ErrValidation, depotID)
		}
		return err
	}
	return nil
}

func (s *ResourceService) touch(audit *domain.AuditFields, userID string) {
	audit.LastUpdatedAt = s.now()
	audit.LastUpdatedBy = userID
}

// --- Depots ---

func (s *ResourceService) CreateDepot(ctx context.Context, caller *domain.CallerContext, depot domain.Depot) (*domain.Depot, error) {
	if err := s.beginCreate(ctx, caller, domain.ResourceDepot, depot.Name); err != nil {
		return nil, err
	}
	depot.DepotID = uuid.NewString()
	depot.OrganizationID = caller.OrganizationID
	depot.AuditFields = domain.NewAuditFields(caller.UserID, s.now())

	if err := s.depots.SaveDepot(ctx, depot); err != nil {
		s.LogError(ctx, err, "Failed to save depot")
		return nil, fmt.Errorf("failed to create depot: %w", err)
	}
	s.LogInfo(ctx, "Depot created", slog.String("depot_id", depot.DepotID))
	return &depot, nil
}

func (s *ResourceService) GetDepot(ctx context.Context, caller *domain.CallerContext, depotID string) (*domain.Depot, error) {
	if err := s.Authorize(ctx, caller, domain.CapabilityViewSchedule, false); err != nil {
		return nil, err
	}
	return s.depots.FindDepotByID(ctx, caller.OrganizationID, depotID)
}

func (s *ResourceService) ListDepots(ctx context.Context, caller *domain.CallerContext) ([]domain.Depot, error) {
	if err := s.Authorize(ctx, caller, domain.CapabilityViewSchedule, false); err != nil {
		return nil, err
	}
	return s.depots.ListDepots(ctx, caller.OrganizationID)
}

func (s *ResourceService) UpdateDepot(ctx context.Context, caller *domain.CallerContext, depot domain.Depot) (*domain.Depot, error) {
	if err := s.Authorize(ctx, caller, domain.CapabilityManageResources, true); err != nil {
		return nil, err
	}
	existing, err := s.depots.FindDepotByID(ctx, caller.OrganizationID, depot.DepotID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(depot.Name) != "" {
		existing.Name = depot.Name
	}
	existing.Address = depot.Address
	s.touch(&existing.AuditFields, caller.UserID)

	if err := s.depots.UpdateDepot(ctx, *existing); err != nil {
		s.LogError(ctx, err, "Failed to update depot", slog.String("depot_id", depot.DepotID))
		return nil, fmt.Errorf("failed to update depot: %w", err)
	}
	existing.Version++
	return existing, nil
}

func (s *ResourceService) DeleteDepot(ctx context.Context, caller *domain.CallerContext, depotID string) error {
	if err := s.Authorize(ctx, caller, domain.CapabilityManageResources, true); err != nil {
		return err
	}
	if err := s.depots.DeleteDepot(ctx, caller.OrganizationID, depotID); err != nil {
		s.LogError(ctx, err, "Failed to delete depot", slog.String("depot_id", depotID))
		return fmt.Errorf("failed to delete depot: %w", err)
	}
	return nil
}

// --- Crews ---

func (s *ResourceService) CreateCrew(ctx context.Context, caller *domain.CallerContext, crew domain.Crew) (*domain.Crew, error) {
	if err := s.beginCreate(ctx, caller, domain.ResourceCrew, crew.Name); err != nil {
		return nil, err
	}
	if crew.Shift == "" {
		crew.Shift = domain.ShiftDay
	}
	if crew.Shift != domain.ShiftDay && crew.Shift != domain.ShiftNight {
		return nil, apperrors.NewValidationFailedError("shift must be day or night")
	}
	if err := s.requireDepot(ctx, caller.OrganizationID, crew.DepotID); err != nil {
		return nil, err
	}

	crew.CrewID = uuid.NewString()
	crew.OrganizationID = caller.OrganizationID
	crew.ArchivedAt = nil
	crew.AuditFields = domain.NewAuditFields(caller.UserID, s.now())

	if err := s.crews.SaveCrew(ctx, crew); err != nil {
		s.LogError(ctx, err, "Failed to save crew")
		return nil, fmt.Errorf("failed to create crew: %w", err)
	}
	s.LogInfo(ctx, "Crew created", slog.String("crew_id", crew.CrewID))
	return &crew, nil
}

func (s *ResourceService) GetCrew(ctx context.Context, caller *domain.CallerContext, crewID string) (*domain.Crew, error) {
	if err := s.Authorize(ctx, caller, domain.CapabilityViewSchedule, false); err != nil {
		return nil, err
	}
	return s.crews.FindCrewByID(ctx, caller.OrganizationID, crewID)
}

func (s *ResourceService) ListCrews(ctx context.Context, caller *domain.CallerContext, includeArchived bool) ([]domain.Crew, error) {
	if err := s.Authorize(ctx, caller, domain.CapabilityViewSchedule, false); err != nil {
		return nil, err
	}
	return s.crews.ListCrews(ctx, caller.OrganizationID, includeArchived)
}

func (s *ResourceService) UpdateCrew(ctx context.Context, caller *domain.CallerContext, crew domain.Crew) (*domain.Crew, error) {
	if err := s.Authorize(ctx, caller, domain.CapabilityManageResources, true); err != nil {
		return nil, err
	}
	existing, err := s.crews.FindCrewByID(ctx, caller.OrganizationID, crew.CrewID)
	if err != nil {
		return nil, err
	}
	if existing.IsArchived() {
		return nil, apperrors.NewConflictError("crew " + crew.CrewID + " is archived")
	}
	if strings.TrimSpace(crew.Name) != "" {
		existing.Name = crew.Name
	}
	if crew.Shift != "" {
		if crew.Shift != domain.ShiftDay && crew.Shift != domain.ShiftNight {
			return nil, apperrors.NewValidationFailedError("shift must be day or night")
		}
		existing.Shift = crew.Shift
	}
	if crew.DepotID != "" && crew.DepotID != existing.DepotID {
		if err := s.requireDepot(ctx, caller.OrganizationID, crew.DepotID); err != nil {
			return nil, err
		}
		existing.DepotID = crew.DepotID
	}
	s.touch(&existing.AuditFields, caller.UserID)

	if err := s.crews.UpdateCrew(ctx, *existing); err != nil {
		s.LogError(ctx, err, "Failed to update crew", slog.String("crew_id", crew.CrewID))
		return nil, fmt.Errorf("failed to update crew: %w", err)
	}
	existing.Version++
	return existing, nil
}

// ArchiveCrew removes the crew's items from the start of today onwards and archives it, atomically.
// Earlier items stay for reporting.
func (s *ResourceService) ArchiveCrew(ctx context.Context, caller *domain.CallerContext, crewID string) (int, error) {
	if err := s.Authorize(ctx, caller, domain.CapabilityManageResources, true); err != nil {
		return 0, err
	}
	crew, err := s.crews.FindCrewByID(ctx, caller.OrganizationID, crewID)
	if err != nil {
		return 0, err
	}
	if crew.IsArchived() {
		return 0, apperrors.NewConflictError("crew " + crewID + " is already archived")
	}

	now := s.now()
	removed, err := s.crews.ArchiveCrewWithFutureItems(ctx, caller.OrganizationID, crewID, caller.UserID, domain.StartOfDay(now), now)
	if err != nil {
		s.LogError(ctx, err, "Failed to archive crew", slog.String("crew_id", crewID))
		return 0, fmt.Errorf("failed to archive crew: %w", err)
	}

	s.publish(ctx, s.events, domain.ScheduleEvent{
		Type:           domain.EventCrewArchived,
		OrganizationID: caller.OrganizationID,
		ActorID:        caller.UserID,
		CrewID:         crewID,
		Count:          removed,
		OccurredAt:     now,
	})
	s.LogInfo(ctx, "Crew archived", slog.String("crew_id", crewID), slog.Int("removed_items", removed))
	return removed, nil
}

// --- Employees ---

func (s *ResourceService) CreateEmployee(ctx context.Context, caller *domain.CallerContext, employee domain.Employee) (*domain.Employee, error) {
	if err := s.beginCreate(ctx, caller, domain.ResourceEmployee, employee.Name); err != nil {
		return nil, err
	}
	if employee.Status == "" {
		employee.Status = domain.EmployeeActive
	}
	if !validEmployeeStatus(employee.Status) {
		return nil, apperrors.NewValidationFailedError("unknown employee status " + string(employee.Status))
	}
	if err := s.requireDepot(ctx, caller.OrganizationID, employee.DepotID); err != nil {
		return nil, err
	}

	employee.EmployeeID = uuid.NewString()
	employee.OrganizationID = caller.OrganizationID
	employee.AuditFields = domain.NewAuditFields(caller.UserID, s.now())

	if err := s.employees.SaveEmployee(ctx, employee); err != nil {
		s.LogError(ctx, err, "Failed to save employee")
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}
	return &employee, nil
}

func (s *ResourceService) ListEmployees(ctx context.Context, caller *domain.CallerContext, depotID *string) ([]domain.Employee, error) {
	if err := s.Authorize(ctx, caller, domain.CapabilityViewSchedule, false); err != nil {
		return nil, err
	}
	return s.employees.ListEmployees(ctx, caller.OrganizationID, depotID)
}

func (s *ResourceService) UpdateEmployee(ctx context.Context, caller *domain.CallerContext, employee domain.Employee) (*domain.Employee, error) {
	if err := s.Authorize(ctx, caller, domain.CapabilityManageResources, true); err != nil {
		return nil, err
	}
	existing, err := s.employees.FindEmployeeByID(ctx, caller.OrganizationID, employee.EmployeeID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(employee.Name) != "" {
		existing.Name = employee.Name
	}
	if employee.Status != "" {
		if !validEmployeeStatus(employee.Status) {
			return nil, apperrors.NewValidationFailedError("unknown employee status " + string(employee.Status))
		}
		existing.Status = employee.Status
	}
	existing.JobRole = employee.JobRole
	if employee.DepotID != "" && employee.DepotID != existing.DepotID {
		if err := s.requireDepot(ctx, caller.OrganizationID, employee.DepotID); err != nil {
			return nil, err
		}
		existing.DepotID = employee.DepotID
	}
	s.touch(&existing.AuditFields, caller.UserID)

	if err := s.employees.UpdateEmployee(ctx, *existing); err != nil {
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}
	existing.Version++
	return existing, nil
}

func (s *ResourceService) DeleteEmployee(ctx context.Context, caller *domain.CallerContext, employeeID string) error {
	if err := s.Authorize(ctx, caller, domain.CapabilityManageResources, true); err != nil {
		return err
	}
	if err := s.employees.DeleteEmployee(ctx, caller.OrganizationID, employeeID); err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	return nil
}

// --- Vehicles ---

func (s *ResourceService) CreateVehicle(ctx context.Context, caller *domain.CallerContext, vehicle domain.Vehicle) (*domain.Vehicle, error) {
	if err := s.beginCreate(ctx, caller, domain.ResourceVehicle, vehicle.Name); err != nil {
		return nil, err
	}
	if vehicle.Status == "" {
		vehicle.Status = domain.VehicleActive
	}
	if !validVehicleStatus(vehicle.Status) {
		return nil, apperrors.NewValidationFailedError("unknown vehicle status " + string(vehicle.Status))
	}
	if err := s.requireDepot(ctx, caller.OrganizationID, vehicle.DepotID); err != nil {
		return nil, err
	}

	vehicle.VehicleID = uuid.NewString()
	vehicle.OrganizationID = caller.OrganizationID
	vehicle.AuditFields = domain.NewAuditFields(caller.UserID, s.now())

	if err := s.vehicles.SaveVehicle(ctx, vehicle); err != nil {
		s.LogError(ctx, err, "Failed to save vehicle")
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}
	return &vehicle, nil
}

func (s *ResourceService) ListVehicles(ctx context.Context, caller *domain.CallerContext, depotID *string) ([]domain.Vehicle, error) {
	if err := s.Authorize(ctx, caller, domain.CapabilityViewSchedule, false); err != nil {
		return nil, err
	}
	return s.vehicles.ListVehicles(ctx, caller.OrganizationID, depotID)
}

func (s *ResourceService) UpdateVehicle(ctx context.Context, caller *domain.CallerContext, vehicle domain.Vehicle) (*domain.Vehicle, error) {
	if err := s.Authorize(ctx, caller, domain.CapabilityManageResources, true); err != nil {
		return nil, err
	}
	existing, err := s.vehicles.FindVehicleByID(ctx, caller.OrganizationID, vehicle.VehicleID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(vehicle.Name) != "" {
		existing.Name = vehicle.Name
	}
	if vehicle.Status != "" {
		if !validVehicleStatus(vehicle.Status) {
			return nil, apperrors.NewValidationFailedError("unknown vehicle status " + string(vehicle.Status))
		}
		existing.Status = vehicle.Status
	}
	existing.VehicleType = vehicle.VehicleType
	if vehicle.DepotID != "" && vehicle.DepotID != existing.DepotID {
		if err := s.requireDepot(ctx, caller.OrganizationID, vehicle.DepotID); err != nil {
			return nil, err
		}
		existing.DepotID = vehicle.DepotID
	}
	s.touch(&existing.AuditFields, caller.UserID)

	if err := s.vehicles.UpdateVehicle(ctx, *existing); err != nil {
		return nil, fmt.Errorf("failed to update vehicle: %w", err)
	}
	existing.Version++
	return existing, nil
}

func (s *ResourceService) DeleteVehicle(ctx context.Context, caller *domain.CallerContext, vehicleID string) error {
	if err := s.Authorize(ctx, caller, domain.CapabilityManageResources, true); err != nil {
		return err
	}
	if err := s.vehicles.DeleteVehicle(ctx, caller.OrganizationID, vehicleID); err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	return nil
}

func validEmployeeStatus(s domain.EmployeeStatus) bool {
	return s == domain.EmployeeActive || s == domain.EmployeeHoliday || s == domain.EmployeeSick
}

func validVehicleStatus(s domain.VehicleStatus) bool {
	return s == domain.VehicleActive || s == domain.VehicleOffRoad || s == domain.VehicleMaintenance
}
