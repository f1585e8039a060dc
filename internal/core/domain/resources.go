package domain

import "time"

// Depot is a physical base that crews, employees and vehicles operate from.
type Depot struct {
	DepotID        string `json:"depotID"`
	OrganizationID string `json:"organizationID"`
	Name           string `json:"name"`
	Address        string `json:"address"`
	AuditFields
}

// Shift is the working pattern of a crew.
type Shift string

const (
	ShiftDay   Shift = "day"
	ShiftNight Shift = "night"
)

// Crew is a schedulable team. Archived crews keep their past schedule items.
type Crew struct {
	CrewID         string     `json:"crewID"`
	OrganizationID string     `json:"organizationID"`
	DepotID        string     `json:"depotID"`
	Name           string     `json:"name"`
	Shift          Shift      `json:"shift"`
	ArchivedAt     *time.Time `json:"archivedAt,omitempty"`
	AuditFields
}

// IsArchived reports whether the crew has been archived.
func (c Crew) IsArchived() bool {
	return c.ArchivedAt != nil
}

type EmployeeStatus string

const (
	EmployeeActive  EmployeeStatus = "active"
	EmployeeHoliday EmployeeStatus = "holiday"
	EmployeeSick    EmployeeStatus = "sick"
)

type Employee struct {
	EmployeeID     string         `json:"employeeID"`
	OrganizationID string         `json:"organizationID"`
	DepotID        string         `json:"depotID"`
	Name           string         `json:"name"`
	Status         EmployeeStatus `json:"status"`
	JobRole        string         `json:"jobRole"`
	AuditFields
}

type VehicleStatus string

const (
	VehicleActive      VehicleStatus = "active"
	VehicleOffRoad     VehicleStatus = "off_road"
	VehicleMaintenance VehicleStatus = "maintenance"
)

type Vehicle struct {
	VehicleID      string        `json:"vehicleID"`
	OrganizationID string        `json:"organizationID"`
	DepotID        string        `json:"depotID"`
	Name           string        `json:"name"`
	Status         VehicleStatus `json:"status"`
	VehicleType    string        `json:"vehicleType"`
	AuditFields
}
