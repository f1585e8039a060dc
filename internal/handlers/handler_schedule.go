package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/crew_planner/internal/core/ports/services"
	"github.com/SscSPs/crew_planner/internal/dto"
	"github.com/SscSPs/crew_planner/internal/middleware"
	"github.com/SscSPs/crew_planner/internal/utils"
	"github.com/gin-gonic/gin"
)

// scheduleHandler handles HTTP requests for schedule items and their approval.
type scheduleHandler struct {
	scheduleService portssvc.ScheduleSvcFacade
	posthog         *utils.PosthogClientWrapper
}

// RegisterScheduleRoutes registers schedule item and approval routes.
func RegisterScheduleRoutes(rg *gin.RouterGroup, scheduleService portssvc.ScheduleSvcFacade, posthog *utils.PosthogClientWrapper) {
	h := &scheduleHandler{scheduleService: scheduleService, posthog: posthog}

	items := rg.Group("/schedule-items")
	{
		items.GET("", h.listItems)
		items.POST("", h.createItem)
		items.PUT("/:itemID", h.updateItem)
		items.DELETE("/:itemID", h.deleteItem)
		items.POST("/reorder", h.reorderItems)

		items.GET("/pending", h.listPending)
		items.POST("/:itemID/approve", h.approveItem)
		items.POST("/:itemID/reject", h.rejectItem)
	}
}

// listItems godoc
// @Summary List schedule items
// @Description Lists the items of a date range with FREE_SLOT capacity placeholders merged in
// @Tags schedule
// @Produce  json
// @Param   from query string true "First day (YYYY-MM-DD)"
// @Param   to query string true "Last day (YYYY-MM-DD)"
// @Param   crewID query string false "Only this crew"
// @Param   depotID query string false "Only this depot"
// @Success 200 {object} dto.ListScheduleItemsResponse
// @Failure 400 {object} map[string]string "Invalid range"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to list schedule items"
// @Security BearerAuth
// @Router /schedule-items [get]
func (h *scheduleHandler) listItems(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	var params dto.ListScheduleItemsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	filter, err := params.ToFilter(caller.OrganizationID)
	if err != nil {
		respondError(c, err, "Invalid schedule range")
		return
	}

	items, err := h.scheduleService.ListItems(c.Request.Context(), caller, filter)
	if err != nil {
		respondError(c, err, "Failed to list schedule items")
		return
	}
	c.JSON(http.StatusOK, dto.ListScheduleItemsResponse{Items: dto.ToScheduleItemResponses(items)})
}

// createItem godoc
// @Summary Create a schedule item
// @Description Creates a job, assignment or note. Jobs by users on pro plans start pending.
// @Tags schedule
// @Accept  json
// @Produce  json
// @Param   item body dto.ScheduleItemInput true "Item details"
// @Success 201 {object} dto.ScheduleItemResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 402 {object} map[string]string "Subscription inactive"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to create schedule item"
// @Security BearerAuth
// @Router /schedule-items [post]
func (h *scheduleHandler) createItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	var req dto.ScheduleItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	item, err := req.ToDomain()
	if err != nil {
		respondError(c, err, "Invalid schedule item")
		return
	}

	created, err := h.scheduleService.CreateItem(c.Request.Context(), caller, item)
	if err != nil {
		respondError(c, err, "Failed to create schedule item")
		return
	}
	logger.Info("Schedule item created", slog.String("item_id", created.ItemID), slog.String("status", string(created.Status)))
	c.JSON(http.StatusCreated, dto.ToScheduleItemResponse(created))
}

// updateItem godoc
// @Summary Update a schedule item
// @Description Replaces an item's fields. The approval state is kept.
// @Tags schedule
// @Accept  json
// @Produce  json
// @Param   itemID path string true "Item ID"
// @Param   item body dto.UpdateScheduleItemRequest true "Item details"
// @Success 200 {object} dto.ScheduleItemResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Item not found"
// @Failure 409 {object} map[string]string "Version mismatch"
// @Failure 500 {object} map[string]string "Failed to update schedule item"
// @Security BearerAuth
// @Router /schedule-items/{itemID} [put]
func (h *scheduleHandler) updateItem(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	var req dto.UpdateScheduleItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	item, err := req.ToDomain()
	if err != nil {
		respondError(c, err, "Invalid schedule item")
		return
	}
	item.ItemID = c.Param("itemID")

	updated, err := h.scheduleService.UpdateItem(c.Request.Context(), caller, item, req.ExpectedVersion)
	if err != nil {
		respondError(c, err, "Failed to update schedule item")
		return
	}
	c.JSON(http.StatusOK, dto.ToScheduleItemResponse(updated))
}

// deleteItem godoc
// @Summary Delete a schedule item
// @Tags schedule
// @Param   itemID path string true "Item ID"
// @Param   expectedVersion query int false "Version the client last saw"
// @Success 204
// @Failure 404 {object} map[string]string "Item not found"
// @Failure 409 {object} map[string]string "Version mismatch"
// @Security BearerAuth
// @Router /schedule-items/{itemID} [delete]
func (h *scheduleHandler) deleteItem(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	var params dto.DeleteScheduleItemParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}

	if err := h.scheduleService.DeleteItem(c.Request.Context(), caller, c.Param("itemID"), params.ExpectedVersion); err != nil {
		respondError(c, err, "Failed to delete schedule item")
		return
	}
	c.Status(http.StatusNoContent)
}

// reorderItems godoc
// @Summary Reorder schedule items
// @Description Applies a batch of position updates atomically
// @Tags schedule
// @Accept  json
// @Param   updates body dto.ReorderScheduleItemsRequest true "Position updates"
// @Success 204
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Item not found"
// @Security BearerAuth
// @Router /schedule-items/reorder [post]
func (h *scheduleHandler) reorderItems(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	var req dto.ReorderScheduleItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.scheduleService.ReorderItems(c.Request.Context(), caller, req.ToPositionUpdates()); err != nil {
		respondError(c, err, "Failed to reorder schedule items")
		return
	}
	c.Status(http.StatusNoContent)
}

// listPending godoc
// @Summary List bookings awaiting approval
// @Tags approvals
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListPendingItemsResponse
// @Failure 400 {object} map[string]string "Invalid token"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /schedule-items/pending [get]
func (h *scheduleHandler) listPending(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	var params dto.ListPendingItemsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}

	items, next, err := h.scheduleService.PendingItemsFor(c.Request.Context(), caller, params.Limit, params.NextToken)
	if err != nil {
		respondError(c, err, "Failed to list pending items")
		return
	}
	c.JSON(http.StatusOK, dto.ListPendingItemsResponse{Items: dto.ToScheduleItemResponses(items), NextToken: next})
}

// approveItem godoc
// @Summary Approve a pending booking
// @Tags approvals
// @Produce  json
// @Param   itemID path string true "Item ID"
// @Success 200 {object} dto.ScheduleItemResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Item not found"
// @Failure 409 {object} map[string]string "Item is not pending"
// @Security BearerAuth
// @Router /schedule-items/{itemID}/approve [post]
func (h *scheduleHandler) approveItem(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}

	item, err := h.scheduleService.ApproveItem(c.Request.Context(), caller, c.Param("itemID"))
	if err != nil {
		respondError(c, err, "Failed to approve schedule item")
		return
	}
	middleware.PosthogEvent(c, h.posthog, "booking_approved", map[string]any{"item_id": item.ItemID})
	c.JSON(http.StatusOK, dto.ToScheduleItemResponse(item))
}

// rejectItem godoc
// @Summary Reject a pending booking
// @Tags approvals
// @Accept  json
// @Produce  json
// @Param   itemID path string true "Item ID"
// @Param   rejection body dto.RejectScheduleItemRequest true "Reason"
// @Success 200 {object} dto.ScheduleItemResponse
// @Failure 400 {object} map[string]string "Reason missing"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Item not found"
// @Failure 409 {object} map[string]string "Item is not pending"
// @Security BearerAuth
// @Router /schedule-items/{itemID}/reject [post]
func (h *scheduleHandler) rejectItem(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	var req dto.RejectScheduleItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	item, err := h.scheduleService.RejectItem(c.Request.Context(), caller, c.Param("itemID"), req.Reason)
	if err != nil {
		respondError(c, err, "Failed to reject schedule item")
		return
	}
	middleware.PosthogEvent(c, h.posthog, "booking_rejected", map[string]any{"item_id": item.ItemID})
	c.JSON(http.StatusOK, dto.ToScheduleItemResponse(item))
}
