package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/crew_planner/internal/apperrors"
	"github.com/SscSPs/crew_planner/internal/core/domain"
	"github.com/SscSPs/crew_planner/internal/core/ledger"
	portsrepo "github.com/SscSPs/crew_planner/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/crew_planner/internal/core/ports/services"
	"github.com/SscSPs/crew_planner/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PlannerServiceTestSuite struct {
	suite.Suite
	itemRepo *MockScheduleItemRepository
	crewRepo *MockCrewRepository
	registry *ledger.Registry
	service  portssvc.PlannerSvc
	day      time.Time
}

func (suite *PlannerServiceTestSuite) SetupTest() {
	suite.itemRepo = new(MockScheduleItemRepository)
	suite.crewRepo = new(MockCrewRepository)
	suite.registry = ledger.NewRegistry(time.Hour)
	schedule := services.NewScheduleService(suite.itemRepo, suite.crewRepo)
	suite.service = services.NewPlannerService(schedule, suite.registry)
	suite.day = time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

	suite.crewRepo.On("FindCrewByID", mock.Anything, testOrgID, "crew-1").
		Return(&domain.Crew{CrewID: "crew-1", OrganizationID: testOrgID, DepotID: "depot-1"}, nil)
}

func (suite *PlannerServiceTestSuite) open(caller *domain.CallerContext, stored ...domain.ScheduleItem) *ledger.SessionState {
	suite.itemRepo.On("ListScheduleItems", mock.Anything, mock.AnythingOfType("repositories.ScheduleItemFilter")).
		Return(stored, nil).Once()
	state, err := suite.service.OpenSession(context.Background(), caller, portsrepo.ScheduleItemFilter{From: suite.day, To: suite.day})
	suite.Require().NoError(err)
	return state
}

func (suite *PlannerServiceTestSuite) TestCreateUndoRedo() {
	ctx := context.Background()
	caller := adminCaller()
	state := suite.open(caller)
	suite.Empty(state.Items)

	suite.itemRepo.On("SaveScheduleItem", mock.Anything, mock.AnythingOfType("domain.ScheduleItem")).Return(nil).Twice()

	job := domain.ScheduleItem{CrewID: "crew-1", Type: domain.ItemTypeJob, Date: suite.day, Duration: domain.Float64Ptr(3), Customer: "Acme"}
	created, state, err := suite.service.ApplyMutation(ctx, caller, state.SessionID, ledger.MutationRequest{Kind: ledger.OpCreate, Item: &job})
	suite.Require().NoError(err)
	suite.Require().Len(state.Items, 2)
	suite.True(state.CanUndo)
	suite.InDelta(5.0, *state.Items[1].Duration, 1e-9)

	suite.itemRepo.On("DeleteScheduleItem", mock.Anything, testOrgID, created.ItemID, 1).Return(nil).Once()
	state, err = suite.service.Undo(ctx, caller, state.SessionID)
	suite.Require().NoError(err)
	suite.Empty(state.Items)
	suite.True(state.CanRedo)

	state, err = suite.service.Redo(ctx, caller, state.SessionID)
	suite.Require().NoError(err)
	suite.Require().Len(state.Items, 2)
	suite.NotEqual(created.ItemID, state.Items[0].ItemID)
	suite.False(state.CanRedo)
	suite.itemRepo.AssertExpectations(suite.T())
}

func (suite *PlannerServiceTestSuite) TestUndo_StoreFailureKeepsState() {
	ctx := context.Background()
	caller := adminCaller()
	state := suite.open(caller)

	suite.itemRepo.On("SaveScheduleItem", mock.Anything, mock.AnythingOfType("domain.ScheduleItem")).Return(nil).Once()
	job := domain.ScheduleItem{CrewID: "crew-1", Type: domain.ItemTypeJob, Date: suite.day, Duration: domain.Float64Ptr(8), Customer: "Acme"}
	created, _, err := suite.service.ApplyMutation(ctx, caller, state.SessionID, ledger.MutationRequest{Kind: ledger.OpCreate, Item: &job})
	suite.Require().NoError(err)

	suite.itemRepo.On("DeleteScheduleItem", mock.Anything, testOrgID, created.ItemID, 1).Return(apperrors.ErrNotFound).Once()
	_, err = suite.service.Undo(ctx, caller, state.SessionID)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	after, err := suite.service.GetSession(ctx, caller, state.SessionID)
	suite.Require().NoError(err)
	suite.Len(after.Items, 1)
	suite.Equal(1, after.UndoDepth)
	suite.Equal(0, after.RedoDepth)
}

func (suite *PlannerServiceTestSuite) TestApplyMutation_StoreRejectsLeavesViewUntouched() {
	ctx := context.Background()
	caller := callerWith(domain.RoleUser, domain.PlanStarter, domain.SubscriptionCanceled)
	state := suite.open(caller)

	job := domain.ScheduleItem{CrewID: "crew-1", Type: domain.ItemTypeJob, Date: suite.day, Duration: domain.Float64Ptr(2), Customer: "Acme"}
	_, _, err := suite.service.ApplyMutation(ctx, caller, state.SessionID, ledger.MutationRequest{Kind: ledger.OpCreate, Item: &job})
	suite.ErrorIs(err, apperrors.ErrSubscriptionInactive)

	after, err := suite.service.GetSession(ctx, caller, state.SessionID)
	suite.Require().NoError(err)
	suite.Empty(after.Items)
	suite.False(after.CanUndo)
}

func (suite *PlannerServiceTestSuite) TestSessionsAreScoped() {
	ctx := context.Background()
	state := suite.open(adminCaller())

	_, err := suite.service.GetSession(ctx, opsCaller(), state.SessionID)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	otherOrg := adminCaller()
	otherOrg.OrganizationID = "org-2"
	_, err = suite.service.GetSession(ctx, otherOrg, state.SessionID)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	suite.Require().NoError(suite.service.CloseSession(ctx, adminCaller(), state.SessionID))
	_, err = suite.service.GetSession(ctx, adminCaller(), state.SessionID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	assert.Equal(suite.T(), 0, suite.registry.Len())
}

func TestPlannerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PlannerServiceTestSuite))
}
