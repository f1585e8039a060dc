package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/crew_planner/internal/apperrors"
	"github.com/SscSPs/crew_planner/internal/core/domain"
	portssvc "github.com/SscSPs/crew_planner/internal/core/ports/services"
	"github.com/SscSPs/crew_planner/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccessServiceTestSuite struct {
	suite.Suite
	orgRepo *MockOrganizationRepository
	service portssvc.AccessSvc
}

func (suite *AccessServiceTestSuite) SetupTest() {
	suite.orgRepo = new(MockOrganizationRepository)
	suite.service = services.NewAccessService(suite.orgRepo)
}

func (suite *AccessServiceTestSuite) TestResolveCaller_ExplicitOrganization() {
	ctx := context.Background()
	suite.orgRepo.On("FindMembership", ctx, testOrgID, "u1").
		Return(&domain.Membership{OrganizationID: testOrgID, UserID: "u1", Role: domain.RoleOperations}, nil).Once()
	suite.orgRepo.On("FindOrganizationByID", ctx, testOrgID).
		Return(&domain.Organization{OrganizationID: testOrgID, Plan: domain.PlanPro, SubscriptionStatus: domain.SubscriptionActive}, nil).Once()

	caller, err := suite.service.ResolveCaller(ctx, "u1", testOrgID)

	suite.Require().NoError(err)
	suite.Equal(&domain.CallerContext{
		UserID:             "u1",
		OrganizationID:     testOrgID,
		Role:               domain.RoleOperations,
		Plan:               domain.PlanPro,
		SubscriptionStatus: domain.SubscriptionActive,
	}, caller)
}

func (suite *AccessServiceTestSuite) TestResolveCaller_PrimaryMembership() {
	ctx := context.Background()
	now := time.Now()
	memberships := []domain.OrganizationMembership{
		{
			Membership:   domain.Membership{OrganizationID: "org-a", UserID: "u1", Role: domain.RoleUser, AcceptedAt: now},
			Organization: domain.Organization{OrganizationID: "org-a", OwnerID: "someone", Plan: domain.PlanPro},
		},
		{
			Membership:   domain.Membership{OrganizationID: "org-b", UserID: "u1", Role: domain.RoleAdmin, AcceptedAt: now.Add(-time.Hour)},
			Organization: domain.Organization{OrganizationID: "org-b", OwnerID: "u1", Plan: domain.PlanStarter},
		},
	}
	suite.orgRepo.On("ListMembershipsByUser", ctx, "u1").Return(memberships, nil).Once()

	caller, err := suite.service.ResolveCaller(ctx, "u1", "")

	suite.Require().NoError(err)
	suite.Equal("org-b", caller.OrganizationID)
	suite.Equal(domain.RoleAdmin, caller.Role)
}

func (suite *AccessServiceTestSuite) TestResolveCaller_Failures() {
	ctx := context.Background()

	_, err := suite.service.ResolveCaller(ctx, "", testOrgID)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)

	suite.orgRepo.On("ListMembershipsByUser", ctx, "lonely").Return([]domain.OrganizationMembership{}, nil)
	_, err = suite.service.ResolveCaller(ctx, "lonely", "")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)

	suite.orgRepo.On("FindMembership", ctx, testOrgID, "lonely").Return(nil, apperrors.ErrNotFound).Once()
	_, err = suite.service.ResolveCaller(ctx, "lonely", testOrgID)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)

	suite.orgRepo.On("FindMembership", ctx, testOrgID, "outsider").Return(nil, apperrors.ErrNotFound).Once()
	suite.orgRepo.On("ListMembershipsByUser", ctx, "outsider").Return([]domain.OrganizationMembership{{}}, nil).Once()
	_, err = suite.service.ResolveCaller(ctx, "outsider", testOrgID)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *AccessServiceTestSuite) TestAuthorize_GateOrder() {
	ctx := context.Background()

	// The subscription gate is checked before the role.
	lapsed := callerWith(domain.RoleUser, domain.PlanPro, domain.SubscriptionUnpaid)
	err := suite.service.Authorize(ctx, lapsed, domain.CapabilityManageTeam, true)
	suite.ErrorIs(err, apperrors.ErrSubscriptionInactive)

	// Reads are not gated by the subscription.
	suite.NoError(suite.service.Authorize(ctx, lapsed, domain.CapabilityViewSchedule, false))

	err = suite.service.Authorize(ctx, userCaller(domain.PlanPro), domain.CapabilityApproveBookings, true)
	suite.ErrorIs(err, apperrors.ErrForbidden)

	trialing := callerWith(domain.RoleAdmin, domain.PlanStarter, domain.SubscriptionTrialing)
	suite.NoError(suite.service.Authorize(ctx, trialing, domain.CapabilityManageTeam, true))

	suite.ErrorIs(suite.service.Authorize(ctx, nil, domain.CapabilityViewSchedule, false), apperrors.ErrUnauthorized)
}

func TestAccessServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccessServiceTestSuite))
}

func TestQuotaService(t *testing.T) {
	ctx := context.Background()

	t.Run("at limit", func(t *testing.T) {
		counter := new(MockResourceCounter)
		counter.On("CountResources", ctx, testOrgID, domain.ResourceCrew).Return(3, nil).Once()
		svc := services.NewQuotaService(counter, domain.DefaultPlanLimits())

		err := svc.CheckQuota(ctx, userCaller(domain.PlanStarter), domain.ResourceCrew)

		var quotaErr *apperrors.QuotaExceededError
		assert.ErrorAs(t, err, &quotaErr)
		assert.ErrorIs(t, err, apperrors.ErrQuotaExceeded)
		assert.Equal(t, 3, quotaErr.CurrentUsage)
		assert.Equal(t, 3, quotaErr.Limit)
	})

	t.Run("below limit", func(t *testing.T) {
		counter := new(MockResourceCounter)
		counter.On("CountResources", ctx, testOrgID, domain.ResourceVehicle).Return(9, nil).Once()
		svc := services.NewQuotaService(counter, nil)

		assert.NoError(t, svc.CheckQuota(ctx, userCaller(domain.PlanStarter), domain.ResourceVehicle))
	})

	t.Run("unlimited skips counting", func(t *testing.T) {
		counter := new(MockResourceCounter)
		svc := services.NewQuotaService(counter, domain.DefaultPlanLimits())

		assert.NoError(t, svc.CheckQuota(ctx, adminCaller(), domain.ResourceDepot))
		counter.AssertNotCalled(t, "CountResources", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("counter failure", func(t *testing.T) {
		counter := new(MockResourceCounter)
		counter.On("CountResources", ctx, testOrgID, domain.ResourceEmployee).Return(0, assert.AnError).Once()
		svc := services.NewQuotaService(counter, nil)

		assert.ErrorIs(t, svc.CheckQuota(ctx, userCaller(domain.PlanStarter), domain.ResourceEmployee), assert.AnError)
	})

	t.Run("usage report", func(t *testing.T) {
		counter := new(MockResourceCounter)
		counter.On("CountResources", ctx, testOrgID, domain.ResourceDepot).Return(1, nil)
		counter.On("CountResources", ctx, testOrgID, domain.ResourceCrew).Return(2, nil)
		counter.On("CountResources", ctx, testOrgID, domain.ResourceEmployee).Return(25, nil)
		counter.On("CountResources", ctx, testOrgID, domain.ResourceVehicle).Return(0, nil)
		svc := services.NewQuotaService(counter, nil)

		usage, err := svc.QuotaUsageFor(ctx, testOrgID, domain.PlanStarter)

		assert.NoError(t, err)
		assert.Len(t, usage, len(domain.ResourceKinds))
		byKind := map[domain.ResourceKind]domain.QuotaUsage{}
		for _, u := range usage {
			byKind[u.Kind] = u
		}
		assert.False(t, byKind[domain.ResourceDepot].CanCreate)
		assert.True(t, byKind[domain.ResourceCrew].CanCreate)
		assert.False(t, byKind[domain.ResourceEmployee].CanCreate)
		assert.Equal(t, 10, byKind[domain.ResourceVehicle].Limit)
	})
}
