package services_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/SscSPs/crew_planner/internal/apperrors"
	"github.com/SscSPs/crew_planner/internal/core/domain"
	"github.com/SscSPs/crew_planner/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSettingsService_GetSettings(t *testing.T) {
	ctx := context.Background()
	labels := new(MockColorLabelRepository)
	store := new(MockSettingsStore)
	svc := services.NewSettingsService(labels, store)

	store.On("GetVehicleTypes", ctx, testOrgID).Return([]string{"jetter"}, true, nil).Once()
	labels.On("ListColorLabels", ctx, testOrgID).Return([]domain.ColorLabel{{Color: "#ff0000", Label: "Urgent"}}, nil).Once()

	settings, err := svc.GetSettings(ctx, userCaller(domain.PlanStarter))

	require.NoError(t, err)
	assert.Equal(t, []string{"jetter"}, settings.VehicleTypes)
	assert.Equal(t, map[string]string{"#ff0000": "Urgent"}, settings.ColorLabels)
}

func TestSettingsService_DefaultsWhenStoreFailsOrMissing(t *testing.T) {
	ctx := context.Background()
	labels := new(MockColorLabelRepository)
	labels.On("ListColorLabels", ctx, testOrgID).Return([]domain.ColorLabel{}, nil)

	store := new(MockSettingsStore)
	store.On("GetVehicleTypes", ctx, testOrgID).Return(nil, false, assert.AnError).Once()

	settings, err := services.NewSettingsService(labels, store).GetSettings(ctx, adminCaller())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultVehicleTypes, settings.VehicleTypes)

	settings, err = services.NewSettingsService(labels, nil).GetSettings(ctx, adminCaller())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultVehicleTypes, settings.VehicleTypes)
}

func TestSettingsService_SetVehicleTypes(t *testing.T) {
	ctx := context.Background()
	labels := new(MockColorLabelRepository)
	store := new(MockSettingsStore)
	svc := services.NewSettingsService(labels, store)

	store.On("SaveVehicleTypes", ctx, testOrgID, []string{"jetter", "tanker"}).Return(nil).Once()
	require.NoError(t, svc.SetVehicleTypes(ctx, opsCaller(), []string{" jetter", "tanker", "jetter", ""}))

	assert.ErrorIs(t, svc.SetVehicleTypes(ctx, opsCaller(), []string{" "}), apperrors.ErrValidation)
	assert.ErrorIs(t, svc.SetVehicleTypes(ctx, userCaller(domain.PlanPro), []string{"jetter"}), apperrors.ErrForbidden)

	err := services.NewSettingsService(labels, nil).SetVehicleTypes(ctx, adminCaller(), []string{"jetter"})
	assert.Equal(t, http.StatusServiceUnavailable, apperrors.StatusCode(err))
	store.AssertExpectations(t)
}

func TestSettingsService_SetColorLabel(t *testing.T) {
	ctx := context.Background()
	labels := new(MockColorLabelRepository)
	svc := services.NewSettingsService(labels, nil)

	labels.On("UpsertColorLabel", ctx, mock.MatchedBy(func(l domain.ColorLabel) bool {
		return l.OrganizationID == testOrgID && l.Color == "#00ff00" && l.Label == "Survey" && l.UpdatedBy == "user-user"
	})).Return(nil).Once()

	require.NoError(t, svc.SetColorLabel(ctx, userCaller(domain.PlanPro), "#00ff00", " Survey "))
	assert.ErrorIs(t, svc.SetColorLabel(ctx, userCaller(domain.PlanPro), "", "x"), apperrors.ErrValidation)
	labels.AssertExpectations(t)
}

func TestOrganizationService(t *testing.T) {
	ctx := context.Background()
	orgRepo := new(MockOrganizationRepository)
	svc := services.NewOrganizationService(orgRepo)

	orgRepo.On("SaveOrganizationWithOwner", ctx,
		mock.MatchedBy(func(o domain.Organization) bool {
			return o.Name == "Drain Co" && o.Plan == domain.PlanStarter && o.SubscriptionStatus == domain.SubscriptionTrialing && o.OwnerID == "u1"
		}),
		mock.MatchedBy(func(m domain.Membership) bool { return m.UserID == "u1" && m.Role == domain.RoleAdmin }),
	).Return(nil).Once()

	org, err := svc.CreateOrganization(ctx, "u1", "  Drain Co ")
	require.NoError(t, err)
	assert.NotEmpty(t, org.OrganizationID)

	_, err = svc.CreateOrganization(ctx, "u1", " ")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.CreateOrganization(ctx, "", "Drain Co")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	orgRepo.AssertExpectations(t)
}
