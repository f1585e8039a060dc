package handlers_test

import (
	"context"

	"github.com/SscSPs/crew_planner/internal/core/domain"
	portsrepo "github.com/SscSPs/crew_planner/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/crew_planner/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccessService ---
type MockAccessService struct {
	mock.Mock
}

func (m *MockAccessService) ResolveCaller(ctx context.Context, userID, organizationID string) (*domain.CallerContext, error) {
	args := m.Called(ctx, userID, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CallerContext), args.Error(1)
}
func (m *MockAccessService) Authorize(ctx context.Context, caller *domain.CallerContext, capability domain.Capability, mutating bool) error {
	args := m.Called(ctx, caller, capability, mutating)
	return args.Error(0)
}

var _ portssvc.AccessSvc = (*MockAccessService)(nil)

// --- Mock ScheduleService ---
type MockScheduleService struct {
	mock.Mock
}

func (m *MockScheduleService) ListItems(ctx context.Context, caller *domain.CallerContext, filter portsrepo.ScheduleItemFilter) ([]domain.ScheduleItem, error) {
	args := m.Called(ctx, caller, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ScheduleItem), args.Error(1)
}
func (m *MockScheduleService) PendingItemsFor(ctx context.Context, caller *domain.CallerContext, limit int, nextToken *string) ([]domain.ScheduleItem, *string, error) {
	args := m.Called(ctx, caller, limit, nextToken)
	var next *string
	if v := args.Get(1); v != nil {
		next = v.(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.ScheduleItem), next, args.Error(2)
}
func (m *MockScheduleService) CreateItem(ctx context.Context, caller *domain.CallerContext, item domain.ScheduleItem) (*domain.ScheduleItem, error) {
	args := m.Called(ctx, caller, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduleItem), args.Error(1)
}
func (m *MockScheduleService) RestoreItem(ctx context.Context, caller *domain.CallerContext, item domain.ScheduleItem) (*domain.ScheduleItem, error) {
	args := m.Called(ctx, caller, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduleItem), args.Error(1)
}
func (m *MockScheduleService) UpdateItem(ctx context.Context, caller *domain.CallerContext, item domain.ScheduleItem, expectedVersion int) (*domain.ScheduleItem, error) {
	args := m.Called(ctx, caller, item, expectedVersion)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduleItem), args.Error(1)
}
func (m *MockScheduleService) DeleteItem(ctx context.Context, caller *domain.CallerContext, itemID string, expectedVersion int) error {
	args := m.Called(ctx, caller, itemID, expectedVersion)
	return args.Error(0)
}
func (m *MockScheduleService) ReorderItems(ctx context.Context, caller *domain.CallerContext, updates []portsrepo.PositionUpdate) error {
	args := m.Called(ctx, caller, updates)
	return args.Error(0)
}
func (m *MockScheduleService) ApproveItem(ctx context.Context, caller *domain.CallerContext, itemID string) (*domain.ScheduleItem, error) {
	args := m.Called(ctx, caller, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduleItem), args.Error(1)
}
func (m *MockScheduleService) RejectItem(ctx context.Context, caller *domain.CallerContext, itemID, reason string) (*domain.ScheduleItem, error) {
	args := m.Called(ctx, caller, itemID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduleItem), args.Error(1)
}

var _ portssvc.ScheduleSvcFacade = (*MockScheduleService)(nil)

// --- Mock ResourceService ---
type MockResourceService struct {
	mock.Mock
}

func (m *MockResourceService) CreateDepot(ctx context.Context, caller *domain.CallerContext, depot domain.Depot) (*domain.Depot, error) {
	args := m.Called(ctx, caller, depot)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Depot), args.Error(1)
}
func (m *MockResourceService) GetDepot(ctx context.Context, caller *domain.CallerContext, depotID string) (*domain.Depot, error) {
	args := m.Called(ctx, caller, depotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Depot), args.Error(1)
}
func (m *MockResourceService) ListDepots(ctx context.Context, caller *domain.CallerContext) ([]domain.Depot, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Depot), args.Error(1)
}
func (m *MockResourceService) UpdateDepot(ctx context.Context, caller *domain.CallerContext, depot domain.Depot) (*domain.Depot, error) {
	args := m.Called(ctx, caller, depot)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Depot), args.Error(1)
}
func (m *MockResourceService) DeleteDepot(ctx context.Context, caller *domain.CallerContext, depotID string) error {
	return m.Called(ctx, caller, depotID).Error(0)
}
func (m *MockResourceService) CreateCrew(ctx context.Context, caller *domain.CallerContext, crew domain.Crew) (*domain.Crew, error) {
	args := m.Called(ctx, caller, crew)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Crew), args.Error(1)
}
func (m *MockResourceService) GetCrew(ctx context.Context, caller *domain.CallerContext, crewID string) (*domain.Crew, error) {
	args := m.Called(ctx, caller, crewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Crew), args.Error(1)
}
func (m *MockResourceService) ListCrews(ctx context.Context, caller *domain.CallerContext, includeArchived bool) ([]domain.Crew, error) {
	args := m.Called(ctx, caller, includeArchived)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Crew), args.Error(1)
}
func (m *MockResourceService) UpdateCrew(ctx context.Context, caller *domain.CallerContext, crew domain.Crew) (*domain.Crew, error) {
	args := m.Called(ctx, caller, crew)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Crew), args.Error(1)
}
func (m *MockResourceService) ArchiveCrew(ctx context.Context, caller *domain.CallerContext, crewID string) (int, error) {
	args := m.Called(ctx, caller, crewID)
	return args.Int(0), args.Error(1)
}
func (m *MockResourceService) CreateEmployee(ctx context.Context, caller *domain.CallerContext, employee domain.Employee) (*domain.Employee, error) {
	args := m.Called(ctx, caller, employee)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}
func (m *MockResourceService) ListEmployees(ctx context.Context, caller *domain.CallerContext, depotID *string) ([]domain.Employee, error) {
	args := m.Called(ctx, caller, depotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Employee), args.Error(1)
}
func (m *MockResourceService) UpdateEmployee(ctx context.Context, caller *domain.CallerContext, employee domain.Employee) (*domain.Employee, error) {
	args := m.Called(ctx, caller, employee)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}
func (m *MockResourceService) DeleteEmployee(ctx context.Context, caller *domain.CallerContext, employeeID string) error {
	return m.Called(ctx, caller, employeeID).Error(0)
}
func (m *MockResourceService) CreateVehicle(ctx context.Context, caller *domain.CallerContext, vehicle domain.Vehicle) (*domain.Vehicle, error) {
	args := m.Called(ctx, caller, vehicle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}
func (m *MockResourceService) ListVehicles(ctx context.Context, caller *domain.CallerContext, depotID *string) ([]domain.Vehicle, error) {
	args := m.Called(ctx, caller, depotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}
func (m *MockResourceService) UpdateVehicle(ctx context.Context, caller *domain.CallerContext, vehicle domain.Vehicle) (*domain.Vehicle, error) {
	args := m.Called(ctx, caller, vehicle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}
func (m *MockResourceService) DeleteVehicle(ctx context.Context, caller *domain.CallerContext, vehicleID string) error {
	return m.Called(ctx, caller, vehicleID).Error(0)
}

var _ portssvc.ResourceSvcFacade = (*MockResourceService)(nil)

// --- Mock OrganizationService ---
type MockOrganizationService struct {
	mock.Mock
}

func (m *MockOrganizationService) CreateOrganization(ctx context.Context, userID, name string) (*domain.Organization, error) {
	args := m.Called(ctx, userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}
func (m *MockOrganizationService) ListOrganizations(ctx context.Context, userID string) ([]domain.OrganizationMembership, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OrganizationMembership), args.Error(1)
}

var _ portssvc.OrganizationSvc = (*MockOrganizationService)(nil)

// --- Mock TeamService ---
type MockTeamService struct {
	mock.Mock
}

func (m *MockTeamService) ListMembers(ctx context.Context, caller *domain.CallerContext) ([]domain.Membership, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Membership), args.Error(1)
}
func (m *MockTeamService) ChangeRole(ctx context.Context, caller *domain.CallerContext, userID string, role domain.Role) error {
	return m.Called(ctx, caller, userID, role).Error(0)
}
func (m *MockTeamService) RemoveMember(ctx context.Context, caller *domain.CallerContext, userID string) error {
	return m.Called(ctx, caller, userID).Error(0)
}
func (m *MockTeamService) CreateInvitation(ctx context.Context, caller *domain.CallerContext, email string, role domain.Role) (*domain.Invitation, string, error) {
	args := m.Called(ctx, caller, email, role)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.Invitation), args.String(1), args.Error(2)
}
func (m *MockTeamService) ListInvitations(ctx context.Context, caller *domain.CallerContext) ([]domain.Invitation, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invitation), args.Error(1)
}
func (m *MockTeamService) AcceptInvitation(ctx context.Context, userID, invitationID, code string) (*domain.Membership, error) {
	args := m.Called(ctx, userID, invitationID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}

var _ portssvc.TeamSvc = (*MockTeamService)(nil)
