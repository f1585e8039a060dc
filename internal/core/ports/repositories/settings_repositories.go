package repositories

import (
	"context"

	"github.com/SscSPs/crew_planner/internal/core/domain"
)

// ColorLabelRepository stores color labels keyed by (organization, color).
type ColorLabelRepository interface {
	UpsertColorLabel(ctx context.Context, label domain.ColorLabel) error
	ListColorLabels(ctx context.Context, organizationID string) ([]domain.ColorLabel, error)
}

// PlannerSettingsStore is the key-value collaborator holding planner configuration.
type PlannerSettingsStore interface {
	// GetVehicleTypes returns the saved list, or false when the organization never saved one.
	GetVehicleTypes(ctx context.Context, organizationID string) ([]string, bool, error)
	SaveVehicleTypes(ctx context.Context, organizationID string, vehicleTypes []string) error
}
