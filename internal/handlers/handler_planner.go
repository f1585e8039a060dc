package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/crew_planner/internal/core/ports/services"
	"github.com/SscSPs/crew_planner/internal/dto"
	"github.com/gin-gonic/gin"
)

// plannerHandler exposes server-held planner sessions with undo and redo.
type plannerHandler struct {
	plannerService portssvc.PlannerSvc
}

// RegisterPlannerRoutes registers the planner session routes.
func RegisterPlannerRoutes(rg *gin.RouterGroup, plannerService portssvc.PlannerSvc) {
	h := &plannerHandler{plannerService: plannerService}

	sessions := rg.Group("/planner/sessions")
	{
		sessions.POST("", h.openSession)
		sessions.GET("/:sessionID", h.getSession)
		sessions.POST("/:sessionID/mutations", h.applyMutation)
		sessions.POST("/:sessionID/undo", h.undo)
		sessions.POST("/:sessionID/redo", h.redo)
		sessions.DELETE("/:sessionID", h.closeSession)
	}
}

// openSession godoc
// @Summary Open a planner session
// @Description Loads a range of the schedule into a session with an empty history
// @Tags planner
// @Accept  json
// @Produce  json
// @Param   range body dto.OpenPlannerSessionRequest true "Range"
// @Success 201 {object} dto.PlannerSessionResponse
// @Failure 400 {object} map[string]string "Invalid range"
// @Security BearerAuth
// @Router /planner/sessions [post]
func (h *plannerHandler) openSession(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	var req dto.OpenPlannerSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	filter, err := req.ToListParams().ToFilter(caller.OrganizationID)
	if err != nil {
		respondError(c, err, "Invalid planner range")
		return
	}

	state, err := h.plannerService.OpenSession(c.Request.Context(), caller, filter)
	if err != nil {
		respondError(c, err, "Failed to open planner session")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPlannerSessionResponse(state))
}

// getSession godoc
// @Summary Get a planner session
// @Tags planner
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Success 200 {object} dto.PlannerSessionResponse
// @Failure 404 {object} map[string]string "Session not found"
// @Security BearerAuth
// @Router /planner/sessions/{sessionID} [get]
func (h *plannerHandler) getSession(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	state, err := h.plannerService.GetSession(c.Request.Context(), caller, c.Param("sessionID"))
	if err != nil {
		respondError(c, err, "Failed to get planner session")
		return
	}
	c.JSON(http.StatusOK, dto.ToPlannerSessionResponse(state))
}

// applyMutation godoc
// @Summary Apply a mutation in a planner session
// @Description Writes the change to the store and records it in the session history
// @Tags planner
// @Accept  json
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Param   mutation body dto.PlannerMutationRequest true "Mutation"
// @Success 200 {object} dto.PlannerMutationResponse
// @Failure 400 {object} map[string]string "Invalid mutation"
// @Failure 402 {object} map[string]string "Subscription inactive"
// @Failure 404 {object} map[string]string "Session or item not found"
// @Security BearerAuth
// @Router /planner/sessions/{sessionID}/mutations [post]
func (h *plannerHandler) applyMutation(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	var req dto.PlannerMutationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	mutation, err := req.ToMutation()
	if err != nil {
		respondError(c, err, "Invalid planner mutation")
		return
	}

	item, state, err := h.plannerService.ApplyMutation(c.Request.Context(), caller, c.Param("sessionID"), mutation)
	if err != nil {
		respondError(c, err, "Failed to apply planner mutation")
		return
	}
	c.JSON(http.StatusOK, dto.ToPlannerMutationResponse(item, state))
}

// undo godoc
// @Summary Undo the last planner change
// @Tags planner
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Success 200 {object} dto.PlannerSessionResponse
// @Failure 404 {object} map[string]string "Session not found"
// @Security BearerAuth
// @Router /planner/sessions/{sessionID}/undo [post]
func (h *plannerHandler) undo(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	state, err := h.plannerService.Undo(c.Request.Context(), caller, c.Param("sessionID"))
	if err != nil {
		respondError(c, err, "Failed to undo")
		return
	}
	c.JSON(http.StatusOK, dto.ToPlannerSessionResponse(state))
}

// redo godoc
// @Summary Redo the last undone planner change
// @Tags planner
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Success 200 {object} dto.PlannerSessionResponse
// @Failure 404 {object} map[string]string "Session not found"
// @Security BearerAuth
// @Router /planner/sessions/{sessionID}/redo [post]
func (h *plannerHandler) redo(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	state, err := h.plannerService.Redo(c.Request.Context(), caller, c.Param("sessionID"))
	if err != nil {
		respondError(c, err, "Failed to redo")
		return
	}
	c.JSON(http.StatusOK, dto.ToPlannerSessionResponse(state))
}

// closeSession godoc
// @Summary Close a planner session
// @Tags planner
// @Param   sessionID path string true "Session ID"
// @Success 204
// @Security BearerAuth
// @Router /planner/sessions/{sessionID} [delete]
func (h *plannerHandler) closeSession(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	if err := h.plannerService.CloseSession(c.Request.Context(), caller, c.Param("sessionID")); err != nil {
		respondError(c, err, "Failed to close planner session")
		return
	}
	c.Status(http.StatusNoContent)
}
