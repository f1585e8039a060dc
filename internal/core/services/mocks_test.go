package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/crew_planner/internal/core/domain"
	portsrepo "github.com/SscSPs/crew_planner/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- Mock OrganizationRepository ---
type MockOrganizationRepository struct {
	mock.Mock
}

func (m *MockOrganizationRepository) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) SaveOrganizationWithOwner(ctx context.Context, org domain.Organization, owner domain.Membership) error {
	return m.Called(ctx, org, owner).Error(0)
}

func (m *MockOrganizationRepository) FindMembership(ctx context.Context, organizationID, userID string) (*domain.Membership, error) {
	args := m.Called(ctx, organizationID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}

func (m *MockOrganizationRepository) ListMembershipsByUser(ctx context.Context, userID string) ([]domain.OrganizationMembership, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OrganizationMembership), args.Error(1)
}

func (m *MockOrganizationRepository) ListMembers(ctx context.Context, organizationID string) ([]domain.Membership, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Membership), args.Error(1)
}

func (m *MockOrganizationRepository) UpdateMemberRole(ctx context.Context, organizationID, userID string, role domain.Role) error {
	return m.Called(ctx, organizationID, userID, role).Error(0)
}

func (m *MockOrganizationRepository) RemoveMember(ctx context.Context, organizationID, userID string) error {
	return m.Called(ctx, organizationID, userID).Error(0)
}

// --- Mock InvitationRepository ---
type MockInvitationRepository struct {
	mock.Mock
}

func (m *MockInvitationRepository) SaveInvitation(ctx context.Context, invitation domain.Invitation) error {
	return m.Called(ctx, invitation).Error(0)
}

func (m *MockInvitationRepository) FindInvitationByID(ctx context.Context, invitationID string) (*domain.Invitation, error) {
	args := m.Called(ctx, invitationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invitation), args.Error(1)
}

func (m *MockInvitationRepository) ListOpenInvitations(ctx context.Context, organizationID string) ([]domain.Invitation, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invitation), args.Error(1)
}

func (m *MockInvitationRepository) AcceptInvitation(ctx context.Context, invitation domain.Invitation, membership domain.Membership) error {
	return m.Called(ctx, invitation, membership).Error(0)
}

// --- Mock ResourceCounter ---
type MockResourceCounter struct {
	mock.Mock
}

func (m *MockResourceCounter) CountResources(ctx context.Context, organizationID string, kind domain.ResourceKind) (int, error) {
	args := m.Called(ctx, organizationID, kind)
	return args.Int(0), args.Error(1)
}

// --- Mock DepotRepository ---
type MockDepotRepository struct {
	mock.Mock
}

func (m *MockDepotRepository) SaveDepot(ctx context.Context, depot domain.Depot) error {
	return m.Called(ctx, depot).Error(0)
}

func (m *MockDepotRepository) FindDepotByID(ctx context.Context, organizationID, depotID string) (*domain.Depot, error) {
	args := m.Called(ctx, organizationID, depotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Depot), args.Error(1)
}

func (m *MockDepotRepository) ListDepots(ctx context.Context, organizationID string) ([]domain.Depot, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Depot), args.Error(1)
}

func (m *MockDepotRepository) UpdateDepot(ctx context.Context, depot domain.Depot) error {
	return m.Called(ctx, depot).Error(0)
}

func (m *MockDepotRepository) DeleteDepot(ctx context.Context, organizationID, depotID string) error {
	return m.Called(ctx, organizationID, depotID).Error(0)
}

// --- Mock CrewRepository ---
type MockCrewRepository struct {
	mock.Mock
}

func (m *MockCrewRepository) FindCrewByID(ctx context.Context, organizationID, crewID string) (*domain.Crew, error) {
	args := m.Called(ctx, organizationID, crewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Crew), args.Error(1)
}

func (m *MockCrewRepository) ListCrews(ctx context.Context, organizationID string, includeArchived bool) ([]domain.Crew, error) {
	args := m.Called(ctx, organizationID, includeArchived)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Crew), args.Error(1)
}

func (m *MockCrewRepository) SaveCrew(ctx context.Context, crew domain.Crew) error {
	return m.Called(ctx, crew).Error(0)
}

func (m *MockCrewRepository) UpdateCrew(ctx context.Context, crew domain.Crew) error {
	return m.Called(ctx, crew).Error(0)
}

func (m *MockCrewRepository) ArchiveCrewWithFutureItems(ctx context.Context, organizationID, crewID, userID string, cutoff, archivedAt time.Time) (int, error) {
	args := m.Called(ctx, organizationID, crewID, userID, cutoff, archivedAt)
	return args.Int(0), args.Error(1)
}

// --- Mock EmployeeRepository ---
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) SaveEmployee(ctx context.Context, employee domain.Employee) error {
	return m.Called(ctx, employee).Error(0)
}

func (m *MockEmployeeRepository) FindEmployeeByID(ctx context.Context, organizationID, employeeID string) (*domain.Employee, error) {
	args := m.Called(ctx, organizationID, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) ListEmployees(ctx context.Context, organizationID string, depotID *string) ([]domain.Employee, error) {
	args := m.Called(ctx, organizationID, depotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) UpdateEmployee(ctx context.Context, employee domain.Employee) error {
	return m.Called(ctx, employee).Error(0)
}

func (m *MockEmployeeRepository) DeleteEmployee(ctx context.Context, organizationID, employeeID string) error {
	return m.Called(ctx, organizationID, employeeID).Error(0)
}

// --- Mock VehicleRepository ---
type MockVehicleRepository struct {
	mock.Mock
}

func (m *MockVehicleRepository) SaveVehicle(ctx context.Context, vehicle domain.Vehicle) error {
	return m.Called(ctx, vehicle).Error(0)
}

func (m *MockVehicleRepository) FindVehicleByID(ctx context.Context, organizationID, vehicleID string) (*domain.Vehicle, error) {
	args := m.Called(ctx, organizationID, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) ListVehicles(ctx context.Context, organizationID string, depotID *string) ([]domain.Vehicle, error) {
	args := m.Called(ctx, organizationID, depotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) UpdateVehicle(ctx context.Context, vehicle domain.Vehicle) error {
	return m.Called(ctx, vehicle).Error(0)
}

func (m *MockVehicleRepository) DeleteVehicle(ctx context.Context, organizationID, vehicleID string) error {
	return m.Called(ctx, organizationID, vehicleID).Error(0)
}

// --- Mock ScheduleItemRepository ---
type MockScheduleItemRepository struct {
	mock.Mock
}

func (m *MockScheduleItemRepository) FindScheduleItemByID(ctx context.Context, organizationID, itemID string) (*domain.ScheduleItem, error) {
	args := m.Called(ctx, organizationID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduleItem), args.Error(1)
}

func (m *MockScheduleItemRepository) ListScheduleItems(ctx context.Context, filter portsrepo.ScheduleItemFilter) ([]domain.ScheduleItem, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ScheduleItem), args.Error(1)
}

func (m *MockScheduleItemRepository) ListPendingItems(ctx context.Context, organizationID string, limit int, nextToken *string) ([]domain.ScheduleItem, *string, error) {
	args := m.Called(ctx, organizationID, limit, nextToken)
	var items []domain.ScheduleItem
	if args.Get(0) != nil {
		items = args.Get(0).([]domain.ScheduleItem)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return items, token, args.Error(2)
}

func (m *MockScheduleItemRepository) SaveScheduleItem(ctx context.Context, item domain.ScheduleItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockScheduleItemRepository) UpdateScheduleItem(ctx context.Context, item domain.ScheduleItem, expectedVersion int) (*domain.ScheduleItem, error) {
	args := m.Called(ctx, item, expectedVersion)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduleItem), args.Error(1)
}

func (m *MockScheduleItemRepository) DeleteScheduleItem(ctx context.Context, organizationID, itemID string, expectedVersion int) error {
	return m.Called(ctx, organizationID, itemID, expectedVersion).Error(0)
}

func (m *MockScheduleItemRepository) UpdateApprovalStatus(ctx context.Context, organizationID, itemID string, decision portsrepo.ApprovalDecision) (*domain.ScheduleItem, error) {
	args := m.Called(ctx, organizationID, itemID, decision)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduleItem), args.Error(1)
}

func (m *MockScheduleItemRepository) UpdatePositions(ctx context.Context, organizationID, userID string, updates []portsrepo.PositionUpdate) error {
	return m.Called(ctx, organizationID, userID, updates).Error(0)
}

// --- Mock settings collaborators ---
type MockColorLabelRepository struct {
	mock.Mock
}

func (m *MockColorLabelRepository) UpsertColorLabel(ctx context.Context, label domain.ColorLabel) error {
	return m.Called(ctx, label).Error(0)
}

func (m *MockColorLabelRepository) ListColorLabels(ctx context.Context, organizationID string) ([]domain.ColorLabel, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ColorLabel), args.Error(1)
}

type MockSettingsStore struct {
	mock.Mock
}

func (m *MockSettingsStore) GetVehicleTypes(ctx context.Context, organizationID string) ([]string, bool, error) {
	args := m.Called(ctx, organizationID)
	var types []string
	if args.Get(0) != nil {
		types = args.Get(0).([]string)
	}
	return types, args.Bool(1), args.Error(2)
}

func (m *MockSettingsStore) SaveVehicleTypes(ctx context.Context, organizationID string, vehicleTypes []string) error {
	return m.Called(ctx, organizationID, vehicleTypes).Error(0)
}

// --- Mock EventPublisher ---
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event domain.ScheduleEvent) error {
	return m.Called(ctx, event).Error(0)
}

// --- Callers ---

const testOrgID = "org-1"

func callerWith(role domain.Role, plan domain.Plan, status domain.SubscriptionStatus) *domain.CallerContext {
	return &domain.CallerContext{
		UserID:             "user-" + string(role),
		OrganizationID:     testOrgID,
		Role:               role,
		Plan:               plan,
		SubscriptionStatus: status,
	}
}

func adminCaller() *domain.CallerContext {
	return callerWith(domain.RoleAdmin, domain.PlanPro, domain.SubscriptionActive)
}

func opsCaller() *domain.CallerContext {
	return callerWith(domain.RoleOperations, domain.PlanPro, domain.SubscriptionActive)
}

func userCaller(plan domain.Plan) *domain.CallerContext {
	return callerWith(domain.RoleUser, plan, domain.SubscriptionActive)
}
