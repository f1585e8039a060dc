package domain

import "time"

// ColorLabel names a planner color for an organization.
type ColorLabel struct {
	OrganizationID string    `json:"organizationID"`
	Color          string    `json:"color"`
	Label          string    `json:"label"`
	UpdatedBy      string    `json:"updatedBy"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// PlannerSettings is the per-organization configuration injected into the planner.
type PlannerSettings struct {
	OrganizationID string            `json:"organizationID"`
	VehicleTypes   []string          `json:"vehicleTypes"`
	ColorLabels    map[string]string `json:"colorLabels"`
}

// DefaultVehicleTypes is used until an organization saves its own list.
var DefaultVehicleTypes = []string{"jetter", "tanker", "cctv_van", "combination_unit"}

// DefaultPlannerSettings returns settings for an organization that never saved any.
func DefaultPlannerSettings(orgID string) PlannerSettings {
	types := make([]string, len(DefaultVehicleTypes))
	copy(types, DefaultVehicleTypes)
	return PlannerSettings{
		OrganizationID: orgID,
		VehicleTypes:   types,
		ColorLabels:    map[string]string{},
	}
}
