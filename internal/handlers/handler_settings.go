package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/crew_planner/internal/core/ports/services"
	"github.com/SscSPs/crew_planner/internal/dto"
	"github.com/gin-gonic/gin"
)

type settingsHandler struct {
	settingsService portssvc.SettingsSvc
	quotaService    portssvc.QuotaSvc
}

// RegisterSettingsRoutes registers planner settings and quota usage routes.
func RegisterSettingsRoutes(rg *gin.RouterGroup, settingsService portssvc.SettingsSvc, quotaService portssvc.QuotaSvc) {
	h := &settingsHandler{settingsService: settingsService, quotaService: quotaService}

	settings := rg.Group("/settings")
	{
		settings.GET("", h.getSettings)
		settings.PUT("/color-labels/:color", h.setColorLabel)
		settings.PUT("/vehicle-types", h.setVehicleTypes)
	}
	rg.GET("/quota", h.getQuotaUsage)
}

// getSettings godoc
// @Summary Get planner settings
// @Tags settings
// @Produce  json
// @Success 200 {object} domain.PlannerSettings
// @Security BearerAuth
// @Router /settings [get]
func (h *settingsHandler) getSettings(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	settings, err := h.settingsService.GetSettings(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err, "Failed to get settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

// setColorLabel godoc
// @Summary Name a planner color
// @Tags settings
// @Accept  json
// @Param   color path string true "Color"
// @Param   label body dto.SetColorLabelRequest true "Label"
// @Success 204
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /settings/color-labels/{color} [put]
func (h *settingsHandler) setColorLabel(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	var req dto.SetColorLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if err := h.settingsService.SetColorLabel(c.Request.Context(), caller, c.Param("color"), req.Label); err != nil {
		respondError(c, err, "Failed to set color label")
		return
	}
	c.Status(http.StatusNoContent)
}

// setVehicleTypes godoc
// @Summary Replace the vehicle type list
// @Tags settings
// @Accept  json
// @Param   types body dto.SetVehicleTypesRequest true "Vehicle types"
// @Success 204
// @Failure 400 {object} map[string]string "Invalid list"
// @Failure 503 {object} map[string]string "Settings store unavailable"
// @Security BearerAuth
// @Router /settings/vehicle-types [put]
func (h *settingsHandler) setVehicleTypes(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	var req dto.SetVehicleTypesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if err := h.settingsService.SetVehicleTypes(c.Request.Context(), caller, req.VehicleTypes); err != nil {
		respondError(c, err, "Failed to set vehicle types")
		return
	}
	c.Status(http.StatusNoContent)
}

// getQuotaUsage godoc
// @Summary Get quota usage
// @Description Reports live usage against the plan ceiling for every resource kind
// @Tags settings
// @Produce  json
// @Success 200 {object} dto.QuotaUsageResponse
// @Security BearerAuth
// @Router /quota [get]
func (h *settingsHandler) getQuotaUsage(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	usage, err := h.quotaService.QuotaUsageFor(c.Request.Context(), caller.OrganizationID, caller.Plan)
	if err != nil {
		respondError(c, err, "Failed to get quota usage")
		return
	}
	c.JSON(http.StatusOK, dto.QuotaUsageResponse{Plan: string(caller.Plan), Usage: usage})
}
