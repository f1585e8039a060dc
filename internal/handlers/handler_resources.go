package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/crew_planner/internal/core/domain"
	portssvc "github.com/SscSPs/crew_planner/internal/core/ports/services"
	"github.com/SscSPs/crew_planner/internal/dto"
	"github.com/SscSPs/crew_planner/internal/middleware"
	"github.com/gin-gonic/gin"
)

// resourceHandler handles depots, crews, employees and vehicles.
type resourceHandler struct {
	resourceService portssvc.ResourceSvcFacade
}

// RegisterResourceRoutes registers routes for every quota-limited resource kind.
func RegisterResourceRoutes(rg *gin.RouterGroup, resourceService portssvc.ResourceSvcFacade) {
	h := &resourceHandler{resourceService: resourceService}

	depots := rg.Group("/depots")
	{
		depots.POST("", h.createDepot)
		depots.GET("", h.listDepots)
		depots.GET("/:depotID", h.getDepot)
		depots.PUT("/:depotID", h.updateDepot)
		depots.DELETE("/:depotID", h.deleteDepot)
	}

	crews := rg.Group("/crews")
	{
		crews.POST("", h.createCrew)
		crews.GET("", h.listCrews)
		crews.GET("/:crewID", h.getCrew)
		crews.PUT("/:crewID", h.updateCrew)
		crews.POST("/:crewID/archive", h.archiveCrew)
	}

	employees := rg.Group("/employees")
	{
		employees.POST("", h.createEmployee)
		employees.GET("", h.listEmployees)
		employees.PUT("/:employeeID", h.updateEmployee)
		employees.DELETE("/:employeeID", h.deleteEmployee)
	}

	vehicles := rg.Group("/vehicles")
	{
		vehicles.POST("", h.createVehicle)
		vehicles.GET("", h.listVehicles)
		vehicles.PUT("/:vehicleID", h.updateVehicle)
		vehicles.DELETE("/:vehicleID", h.deleteVehicle)
	}
}

// createDepot godoc
// @Summary Create a depot
// @Tags depots
// @Accept  json
// @Produce  json
// @Param   depot body dto.CreateDepotRequest true "Depot details"
// @Success 201 {object} dto.DepotResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 402 {object} map[string]string "Subscription inactive"
// @Failure 403 {object} map[string]string "Forbidden or quota exceeded"
// @Security BearerAuth
// @Router /depots [post]
func (h *resourceHandler) createDepot(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	var req dto.CreateDepotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	depot, err := h.resourceService.CreateDepot(c.Request.Context(), caller, domain.Depot{Name: req.Name, Address: req.Address})
	if err != nil {
		respondError(c, err, "Failed to create depot")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Depot created", slog.String("depot_id", depot.DepotID))
	c.JSON(http.StatusCreated, dto.ToDepotResponse(depot))
}

// listDepots godoc
// @Summary List depots
// @Tags depots
// @Produce  json
// @Success 200 {object} dto.ListDepotsResponse
// @Security BearerAuth
// @Router /depots [get]
func (h *resourceHandler) listDepots(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	depots, err := h.resourceService.ListDepots(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err, "Failed to list depots")
		return
	}
	c.JSON(http.StatusOK, dto.ToListDepotsResponse(depots))
}

// getDepot godoc
// @Summary Get a depot
// @Tags depots
// @Produce  json
// @Param   depotID path string true "Depot ID"
// @Success 200 {object} dto.DepotResponse
// @Failure 404 {object} map[string]string "Depot not found"
// @Security BearerAuth
// @Router /depots/{depotID} [get]
func (h *resourceHandler) getDepot(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	depot, err := h.resourceService.GetDepot(c.Request.Context(), caller, c.Param("depotID"))
	if err != nil {
		respondError(c, err, "Failed to get depot")
		return
	}
	c.JSON(http.StatusOK, dto.ToDepotResponse(depot))
}

// updateDepot godoc
// @Summary Update a depot
// @Tags depots
// @Accept  json
// @Produce  json
// @Param   depotID path string true "Depot ID"
// @Param   depot body dto.UpdateDepotRequest true "Depot details"
// @Success 200 {object} dto.DepotResponse
// @Failure 404 {object} map[string]string "Depot not found"
// @Failure 409 {object} map[string]string "Concurrent update"
// @Security BearerAuth
// @Router /depots/{depotID} [put]
func (h *resourceHandler) updateDepot(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	var req dto.UpdateDepotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	depot, err := h.resourceService.UpdateDepot(c.Request.Context(), caller, domain.Depot{
		DepotID: c.Param("depotID"),
		Name:    req.Name,
		Address: req.Address,
	})
	if err != nil {
		respondError(c, err, "Failed to update depot")
		return
	}
	c.JSON(http.StatusOK, dto.ToDepotResponse(depot))
}

// deleteDepot godoc
// @Summary Delete a depot
// @Description Fails with 409 while crews, employees or vehicles still reference it
// @Tags depots
// @Param   depotID path string true "Depot ID"
// @Success 204
// @Failure 409 {object} map[string]string "Depot in use"
// @Security BearerAuth
// @Router /depots/{depotID} [delete]
func (h *resourceHandler) deleteDepot(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	if err := h.resourceService.DeleteDepot(c.Request.Context(), caller, c.Param("depotID")); err != nil {
		respondError(c, err, "Failed to delete depot")
		return
	}
	c.Status(http.StatusNoContent)
}

// createCrew godoc
// @Summary Create a crew
// @Tags crews
// @Accept  json
// @Produce  json
// @Param   crew body dto.CreateCrewRequest true "Crew details"
// @Success 201 {object} dto.CrewResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden or quota exceeded"
// @Security BearerAuth
// @Router /crews [post]
func (h *resourceHandler) createCrew(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	var req dto.CreateCrewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	crew, err := h.resourceService.CreateCrew(c.Request.Context(), caller, domain.Crew{
		DepotID: req.DepotID,
		Name:    req.Name,
		Shift:   domain.Shift(req.Shift),
	})
	if err != nil {
		respondError(c, err, "Failed to create crew")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCrewResponse(crew))
}

// listCrews godoc
// @Summary List crews
// @Tags crews
// @Produce  json
// @Param   includeArchived query bool false "Include archived crews"
// @Success 200 {object} dto.ListCrewsResponse
// @Security BearerAuth
// @Router /crews [get]
func (h *resourceHandler) listCrews(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	var params dto.ListCrewsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	crews, err := h.resourceService.ListCrews(c.Request.Context(), caller, params.IncludeArchived)
	if err != nil {
		respondError(c, err, "Failed to list crews")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCrewsResponse(crews))
}

// getCrew godoc
// @Summary Get a crew
// @Tags crews
// @Produce  json
// @Param   crewID path string true "Crew ID"
// @Success 200 {object} dto.CrewResponse
// @Failure 404 {object} map[string]string "Crew not found"
// @Security BearerAuth
// @Router /crews/{crewID} [get]
func (h *resourceHandler) getCrew(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	crew, err := h.resourceService.GetCrew(c.Request.Context(), caller, c.Param("crewID"))
	if err != nil {
		respondError(c, err, "Failed to get crew")
		return
	}
	c.JSON(http.StatusOK, dto.ToCrewResponse(crew))
}

// updateCrew godoc
// @Summary Update a crew
// @Tags crews
// @Accept  json
// @Produce  json
// @Param   crewID path string true "Crew ID"
// @Param   crew body dto.UpdateCrewRequest true "Crew details"
// @Success 200 {object} dto.CrewResponse
// @Failure 404 {object} map[string]string "Crew not found"
// @Failure 409 {object} map[string]string "Crew archived"
// @Security BearerAuth
// @Router /crews/{crewID} [put]
func (h *resourceHandler) updateCrew(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	var req dto.UpdateCrewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	crew, err := h.resourceService.UpdateCrew(c.Request.Context(), caller, domain.Crew{
		CrewID:  c.Param("crewID"),
		DepotID: req.DepotID,
		Name:    req.Name,
		Shift:   domain.Shift(req.Shift),
	})
	if err != nil {
		respondError(c, err, "Failed to update crew")
		return
	}
	c.JSON(http.StatusOK, dto.ToCrewResponse(crew))
}

// archiveCrew godoc
// @Summary Archive a crew
// @Description Archives the crew and removes its schedule items from today onwards in one transaction
// @Tags crews
// @Produce  json
// @Param   crewID path string true "Crew ID"
// @Success 200 {object} dto.ArchiveCrewResponse
// @Failure 404 {object} map[string]string "Crew not found"
// @Failure 409 {object} map[string]string "Crew already archived"
// @Security BearerAuth
// @Router /crews/{crewID}/archive [post]
func (h *resourceHandler) archiveCrew(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	crewID := c.Param("crewID")
	removed, err := h.resourceService.ArchiveCrew(c.Request.Context(), caller, crewID)
	if err != nil {
		respondError(c, err, "Failed to archive crew")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Crew archived", slog.String("crew_id", crewID), slog.Int("removed_items", removed))
	c.JSON(http.StatusOK, dto.ArchiveCrewResponse{CrewID: crewID, RemovedItems: removed})
}

// createEmployee godoc
// @Summary Create an employee
// @Tags employees
// @Accept  json
// @Produce  json
// @Param   employee body dto.CreateEmployeeRequest true "Employee details"
// @Success 201 {object} dto.EmployeeResponse
// @Failure 403 {object} map[string]string "Forbidden or quota exceeded"
// @Security BearerAuth
// @Router /employees [post]
func (h *resourceHandler) createEmployee(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	var req dto.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	employee, err := h.resourceService.CreateEmployee(c.Request.Context(), caller, domain.Employee{
		DepotID: req.DepotID,
		Name:    req.Name,
		Status:  domain.EmployeeStatus(req.Status),
		JobRole: req.JobRole,
	})
	if err != nil {
		respondError(c, err, "Failed to create employee")
		return
	}
	c.JSON(http.StatusCreated, dto.ToEmployeeResponse(employee))
}

// listEmployees godoc
// @Summary List employees
// @Tags employees
// @Produce  json
// @Param   depotID query string false "Only this depot"
// @Success 200 {object} dto.ListEmployeesResponse
// @Security BearerAuth
// @Router /employees [get]
func (h *resourceHandler) listEmployees(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	var params dto.ListByDepotParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	employees, err := h.resourceService.ListEmployees(c.Request.Context(), caller, params.DepotID)
	if err != nil {
		respondError(c, err, "Failed to list employees")
		return
	}
	c.JSON(http.StatusOK, dto.ToListEmployeesResponse(employees))
}

// updateEmployee godoc
// @Summary Update an employee
// @Tags employees
// @Accept  json
// @Produce  json
// @Param   employeeID path string true "Employee ID"
// @Param   employee body dto.UpdateEmployeeRequest true "Employee details"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 404 {object} map[string]string "Employee not found"
// @Security BearerAuth
// @Router /employees/{employeeID} [put]
func (h *resourceHandler) updateEmployee(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	var req dto.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	employee, err := h.resourceService.UpdateEmployee(c.Request.Context(), caller, domain.Employee{
		EmployeeID: c.Param("employeeID"),
		DepotID:    req.DepotID,
		Name:       req.Name,
		Status:     domain.EmployeeStatus(req.Status),
		JobRole:    req.JobRole,
	})
	if err != nil {
		respondError(c, err, "Failed to update employee")
		return
	}
	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}

// deleteEmployee godoc
// @Summary Delete an employee
// @Tags employees
// @Param   employeeID path string true "Employee ID"
// @Success 204
// @Security BearerAuth
// @Router /employees/{employeeID} [delete]
func (h *resourceHandler) deleteEmployee(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	if err := h.resourceService.DeleteEmployee(c.Request.Context(), caller, c.Param("employeeID")); err != nil {
		respondError(c, err, "Failed to delete employee")
		return
	}
	c.Status(http.StatusNoContent)
}

// createVehicle godoc
// @Summary Create a vehicle
// @Tags vehicles
// @Accept  json
// @Produce  json
// @Param   vehicle body dto.CreateVehicleRequest true "Vehicle details"
// @Success 201 {object} dto.VehicleResponse
// @Failure 403 {object} map[string]string "Forbidden or quota exceeded"
// @Security BearerAuth
// @Router /vehicles [post]
func (h *resourceHandler) createVehicle(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	var req dto.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	vehicle, err := h.resourceService.CreateVehicle(c.Request.Context(), caller, domain.Vehicle{
		DepotID:     req.DepotID,
		Name:        req.Name,
		Status:      domain.VehicleStatus(req.Status),
		VehicleType: req.VehicleType,
	})
	if err != nil {
		respondError(c, err, "Failed to create vehicle")
		return
	}
	c.JSON(http.StatusCreated, dto.ToVehicleResponse(vehicle))
}

// listVehicles godoc
// @Summary List vehicles
// @Tags vehicles
// @Produce  json
// @Param   depotID query string false "Only this depot"
// @Success 200 {object} dto.ListVehiclesResponse
// @Security BearerAuth
// @Router /vehicles [get]
func (h *resourceHandler) listVehicles(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	var params dto.ListByDepotParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	vehicles, err := h.resourceService.ListVehicles(c.Request.Context(), caller, params.DepotID)
	if err != nil {
		respondError(c, err, "Failed to list vehicles")
		return
	}
	c.JSON(http.StatusOK, dto.ToListVehiclesResponse(vehicles))
}

// updateVehicle godoc
// @Summary Update a vehicle
// @Tags vehicles
// @Accept  json
// @Produce  json
// @Param   vehicleID path string true "Vehicle ID"
// @Param   vehicle body dto.UpdateVehicleRequest true "Vehicle details"
// @Success 200 {object} dto.VehicleResponse
// @Failure 404 {object} map[string]string "Vehicle not found"
// @Security BearerAuth
// @Router /vehicles/{vehicleID} [put]
func (h *resourceHandler) updateVehicle(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	var req dto.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	vehicle, err := h.resourceService.UpdateVehicle(c.Request.Context(), caller, domain.Vehicle{
		VehicleID:   c.Param("vehicleID"),
		DepotID:     req.DepotID,
		Name:        req.Name,
		Status:      domain.VehicleStatus(req.Status),
		VehicleType: req.VehicleType,
	})
	if err != nil {
		respondError(c, err, "Failed to update vehicle")
		return
	}
	c.JSON(http.StatusOK, dto.ToVehicleResponse(vehicle))
}

// deleteVehicle godoc
// @Summary Delete a vehicle
// @Tags vehicles
// @Param   vehicleID path string true "Vehicle ID"
// @Success 204
// @Security BearerAuth
// @Router /vehicles/{vehicleID} [delete]
func (h *resourceHandler) deleteVehicle(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	if err := h.resourceService.DeleteVehicle(c.Request.Context(), caller, c.Param("vehicleID")); err != nil {
		respondError(c, err, "Failed to delete vehicle")
		return
	}
	c.Status(http.StatusNoContent)
}
