package dto

import (
	"time"

	"github.com/SscSPs/crew_planner/internal/core/domain"
)

// --- Depot DTOs ---

type CreateDepotRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
}

type UpdateDepotRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

type DepotResponse struct {
	DepotID       string    `json:"depotID"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	Version       int       `json:"version"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

func ToDepotResponse(d *domain.Depot) DepotResponse {
	return DepotResponse{
		DepotID:       d.DepotID,
		Name:          d.Name,
		Address:       d.Address,
		Version:       d.Version,
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
		LastUpdatedAt: d.LastUpdatedAt,
		LastUpdatedBy: d.LastUpdatedBy,
	}
}

type ListDepotsResponse struct {
	Depots []DepotResponse `json:"depots"`
}

func ToListDepotsResponse(depots []domain.Depot) ListDepotsResponse {
	list := make([]DepotResponse, len(depots))
	for i := range depots {
		list[i] = ToDepotResponse(&depots[i])
	}
	return ListDepotsResponse{Depots: list}
}

// --- Crew DTOs ---

type CreateCrewRequest struct {
	DepotID string `json:"depotID" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Shift   string `json:"shift" binding:"omitempty,oneof=day night"`
}

type UpdateCrewRequest struct {
	DepotID string `json:"depotID"`
	Name    string `json:"name"`
	Shift   string `json:"shift" binding:"omitempty,oneof=day night"`
}

// ListCrewsParams defines query parameters for listing crews.
type ListCrewsParams struct {
	IncludeArchived bool `form:"includeArchived"`
}

type CrewResponse struct {
	CrewID        string     `json:"crewID"`
	DepotID       string     `json:"depotID"`
	Name          string     `json:"name"`
	Shift         string     `json:"shift"`
	ArchivedAt    *time.Time `json:"archivedAt,omitempty"`
	Version       int        `json:"version"`
	CreatedAt     time.Time  `json:"createdAt"`
	LastUpdatedAt time.Time  `json:"lastUpdatedAt"`
}

func ToCrewResponse(c *domain.Crew) CrewResponse {
	return CrewResponse{
		CrewID:        c.CrewID,
		DepotID:       c.DepotID,
		Name:          c.Name,
		Shift:         string(c.Shift),
		ArchivedAt:    c.ArchivedAt,
		Version:       c.Version,
		CreatedAt:     c.CreatedAt,
		LastUpdatedAt: c.LastUpdatedAt,
	}
}

type ListCrewsResponse struct {
	Crews []CrewResponse `json:"crews"`
}

func ToListCrewsResponse(crews []domain.Crew) ListCrewsResponse {
	list := make([]CrewResponse, len(crews))
	for i := range crews {
		list[i] = ToCrewResponse(&crews[i])
	}
	return ListCrewsResponse{Crews: list}
}

// ArchiveCrewResponse reports how many future items the archival removed.
type ArchiveCrewResponse struct {
	CrewID       string `json:"crewID"`
	RemovedItems int    `json:"removedItems"`
}

// --- Employee DTOs ---

// ListByDepotParams narrows a list to one depot.
type ListByDepotParams struct {
	DepotID *string `form:"depotID"`
}

type CreateEmployeeRequest struct {
	DepotID string `json:"depotID" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Status  string `json:"status" binding:"omitempty,oneof=active holiday sick"`
	JobRole string `json:"jobRole"`
}

type UpdateEmployeeRequest struct {
	DepotID string `json:"depotID"`
	Name    string `json:"name"`
	Status  string `json:"status" binding:"omitempty,oneof=active holiday sick"`
	JobRole string `json:"jobRole"`
}

type EmployeeResponse struct {
	EmployeeID    string    `json:"employeeID"`
	DepotID       string    `json:"depotID"`
	Name          string    `json:"name"`
	Status        string    `json:"status"`
	JobRole       string    `json:"jobRole"`
	Version       int       `json:"version"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

func ToEmployeeResponse(e *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		EmployeeID:    e.EmployeeID,
		DepotID:       e.DepotID,
		Name:          e.Name,
		Status:        string(e.Status),
		JobRole:       e.JobRole,
		Version:       e.Version,
		LastUpdatedAt: e.LastUpdatedAt,
	}
}

type ListEmployeesResponse struct {
	Employees []EmployeeResponse `json:"employees"`
}

func ToListEmployeesResponse(employees []domain.Employee) ListEmployeesResponse {
	list := make([]EmployeeResponse, len(employees))
	for i := range employees {
		list[i] = ToEmployeeResponse(&employees[i])
	}
	return ListEmployeesResponse{Employees: list}
}

// --- Vehicle DTOs ---

type CreateVehicleRequest struct {
	DepotID     string `json:"depotID" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Status      string `json:"status" binding:"omitempty,oneof=active off_road maintenance"`
	VehicleType string `json:"vehicleType"`
}

type UpdateVehicleRequest struct {
	DepotID     string `json:"depotID"`
	Name        string `json:"name"`
	Status      string `json:"status" binding:"omitempty,oneof=active off_road maintenance"`
	VehicleType string `json:"vehicleType"`
}

type VehicleResponse struct {
	VehicleID     string    `json:"vehicleID"`
	DepotID       string    `json:"depotID"`
	Name          string    `json:"name"`
	Status        string    `json:"status"`
	VehicleType   string    `json:"vehicleType"`
	Version       int       `json:"version"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

func ToVehicleResponse(v *domain.Vehicle) VehicleResponse {
	return VehicleResponse{
		VehicleID:     v.VehicleID,
		DepotID:       v.DepotID,
		Name:          v.Name,
		Status:        string(v.Status),
		VehicleType:   v.VehicleType,
		Version:       v.Version,
		LastUpdatedAt: v.LastUpdatedAt,
	}
}

type ListVehiclesResponse struct {
	Vehicles []VehicleResponse `json:"vehicles"`
}

func ToListVehiclesResponse(vehicles []domain.Vehicle) ListVehiclesResponse {
	list := make([]VehicleResponse, len(vehicles))
	for i := range vehicles {
		list[i] = ToVehicleResponse(&vehicles[i])
	}
	return ListVehiclesResponse{Vehicles: list}
}
