package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/crew_planner/internal/apperrors"
	"github.com/SscSPs/crew_planner/internal/core/domain"
	portsrepo "github.com/SscSPs/crew_planner/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/crew_planner/internal/core/ports/services"
)

const maxVehicleTypes = 50

type settingsService struct {
	BaseService
	labels portsrepo.ColorLabelRepository
	store  portsrepo.PlannerSettingsStore
	now    func() time.Time
}

// NewSettingsService creates a new SettingsService. store may be nil, in which case the default
// vehicle types are served and cannot be changed.
func NewSettingsService(labels portsrepo.ColorLabelRepository, store portsrepo.PlannerSettingsStore) portssvc.SettingsSvc {
	return &settingsService{labels: labels, store: store, now: time.Now}
}

func (s *settingsService) GetSettings(ctx context.Context, caller *domain.CallerContext) (*domain.PlannerSettings, error) {
	if err := s.Authorize(ctx, caller, domain.CapabilityViewSchedule, false); err != nil {
		return nil, err
	}
	settings := domain.DefaultPlannerSettings(caller.OrganizationID)

	if s.store != nil {
		types, ok, err := s.store.GetVehicleTypes(ctx, caller.OrganizationID)
		if err != nil {
			// Settings degrade to defaults rather than failing the planner.
			s.LogError(ctx, err, "Failed to read vehicle types")
		} else if ok {
			settings.VehicleTypes = types
		}
	}

	labels, err := s.labels.ListColorLabels(ctx, caller.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list color labels: %w", err)
	}
	for _, l := range labels {
		settings.ColorLabels[l.Color] = l.Label
	}
	return &settings, nil
}

func (s *settingsService) SetColorLabel(ctx context.Context, caller *domain.CallerContext, color, label string) error {
	if err := s.Authorize(ctx, caller, domain.CapabilityCreateBookings, true); err != nil {
		return err
	}
	color = strings.TrimSpace(color)
	if color == "" {
		return apperrors.NewValidationFailedError("color is required")
	}
	return s.labels.UpsertColorLabel(ctx, domain.ColorLabel{
		OrganizationID: caller.OrganizationID,
		Color:          color,
		Label:          strings.TrimSpace(label),
		UpdatedBy:      caller.UserID,
		UpdatedAt:      s.now(),
	})
}

func (s *settingsService) SetVehicleTypes(ctx context.Context, caller *domain.CallerContext, vehicleTypes []string) error {
	if err := s.Authorize(ctx, caller, domain.CapabilityManageResources, true); err != nil {
		return err
	}
	if s.store == nil {
		return apperrors.NewAppError(http.StatusServiceUnavailable, "settings store is not configured", nil)
	}

	seen := make(map[string]bool, len(vehicleTypes))
	cleaned := make([]string, 0, len(vehicleTypes))
	for _, t := range vehicleTypes {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		cleaned = append(cleaned, t)
	}
	if len(cleaned) == 0 {
		return apperrors.NewValidationFailedError("at least one vehicle type is required")
	}
	if len(cleaned) > maxVehicleTypes {
		return apperrors.NewValidationFailedError(fmt.Sprintf("at most %d vehicle types", maxVehicleTypes))
	}
	return s.store.SaveVehicleTypes(ctx, caller.OrganizationID, cleaned)
}
