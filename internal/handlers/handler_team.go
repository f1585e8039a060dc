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

// organizationHandler handles organizations, their members and invitations.
type organizationHandler struct {
	organizationService portssvc.OrganizationSvc
	teamService         portssvc.TeamSvc
}

func newOrganizationHandler(os portssvc.OrganizationSvc, ts portssvc.TeamSvc) *organizationHandler {
	return &organizationHandler{organizationService: os, teamService: ts}
}

// RegisterUserRoutes registers routes that only need an authenticated user, not an organization context.
func RegisterUserRoutes(rg *gin.RouterGroup, organizationService portssvc.OrganizationSvc, teamService portssvc.TeamSvc) {
	h := newOrganizationHandler(organizationService, teamService)

	orgs := rg.Group("/organizations")
	{
		orgs.POST("", h.createOrganization)
		orgs.GET("", h.listOrganizations)
	}
	rg.POST("/invitations/:invitationID/accept", h.acceptInvitation)
}

// RegisterTeamRoutes registers member and invitation management for the caller's organization.
func RegisterTeamRoutes(rg *gin.RouterGroup, teamService portssvc.TeamSvc) {
	h := newOrganizationHandler(nil, teamService)

	team := rg.Group("/team")
	{
		team.GET("/members", h.listMembers)
		team.PUT("/members/:userID/role", h.changeRole)
		team.DELETE("/members/:userID", h.removeMember)
		team.POST("/invitations", h.createInvitation)
		team.GET("/invitations", h.listInvitations)
	}
}

// createOrganization godoc
// @Summary Create an organization
// @Description Creates a trialing starter organization. The creator becomes its owner and admin.
// @Tags organizations
// @Accept  json
// @Produce  json
// @Param   organization body dto.CreateOrganizationRequest true "Organization details"
// @Success 201 {object} dto.OrganizationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /organizations [post]
func (h *organizationHandler) createOrganization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	var req dto.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	org, err := h.organizationService.CreateOrganization(c.Request.Context(), userID, req.Name)
	if err != nil {
		respondError(c, err, "Failed to create organization")
		return
	}
	logger.Info("Organization created", slog.String("organization_id", org.OrganizationID))
	c.JSON(http.StatusCreated, dto.ToOrganizationResponse(org))
}

// listOrganizations godoc
// @Summary List the caller's organizations
// @Tags organizations
// @Produce  json
// @Success 200 {object} dto.ListOrganizationsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /organizations [get]
func (h *organizationHandler) listOrganizations(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	memberships, err := h.organizationService.ListOrganizations(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list organizations")
		return
	}
	c.JSON(http.StatusOK, dto.ToListOrganizationsResponse(memberships))
}

// acceptInvitation godoc
// @Summary Accept an invitation
// @Tags team
// @Accept  json
// @Produce  json
// @Param   invitationID path string true "Invitation ID"
// @Param   acceptance body dto.AcceptInvitationRequest true "Invitation code"
// @Success 200 {object} dto.MembershipResponse
// @Failure 400 {object} map[string]string "Invitation expired"
// @Failure 404 {object} map[string]string "Invitation not found"
// @Failure 409 {object} map[string]string "Already accepted or already a member"
// @Security BearerAuth
// @Router /invitations/{invitationID}/accept [post]
func (h *organizationHandler) acceptInvitation(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	var req dto.AcceptInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	membership, err := h.teamService.AcceptInvitation(c.Request.Context(), userID, c.Param("invitationID"), req.Code)
	if err != nil {
		respondError(c, err, "Failed to accept invitation")
		return
	}
	c.JSON(http.StatusOK, dto.ToMembershipResponse(membership))
}

// listMembers godoc
// @Summary List organization members
// @Tags team
// @Produce  json
// @Success 200 {object} dto.ListMembersResponse
// @Security BearerAuth
// @Router /team/members [get]
func (h *organizationHandler) listMembers(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	members, err := h.teamService.ListMembers(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err, "Failed to list members")
		return
	}
	c.JSON(http.StatusOK, dto.ToListMembersResponse(members))
}

// changeRole godoc
// @Summary Change a member's role
// @Tags team
// @Accept  json
// @Param   userID path string true "Member user ID"
// @Param   role body dto.ChangeRoleRequest true "New role"
// @Success 204
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "The owner's role cannot change"
// @Security BearerAuth
// @Router /team/members/{userID}/role [put]
func (h *organizationHandler) changeRole(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	var req dto.ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if err := h.teamService.ChangeRole(c.Request.Context(), caller, c.Param("userID"), domain.Role(req.Role)); err != nil {
		respondError(c, err, "Failed to change role")
		return
	}
	c.Status(http.StatusNoContent)
}

// removeMember godoc
// @Summary Remove a member
// @Tags team
// @Param   userID path string true "Member user ID"
// @Success 204
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "The owner cannot be removed"
// @Security BearerAuth
// @Router /team/members/{userID} [delete]
func (h *organizationHandler) removeMember(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	if err := h.teamService.RemoveMember(c.Request.Context(), caller, c.Param("userID")); err != nil {
		respondError(c, err, "Failed to remove member")
		return
	}
	c.Status(http.StatusNoContent)
}

// createInvitation godoc
// @Summary Invite a user
// @Description Returns the invitation with its one-time code
// @Tags team
// @Accept  json
// @Produce  json
// @Param   invitation body dto.CreateInvitationRequest true "Invitee"
// @Success 201 {object} dto.InvitationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /team/invitations [post]
func (h *organizationHandler) createInvitation(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	var req dto.CreateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	inv, code, err := h.teamService.CreateInvitation(c.Request.Context(), caller, req.Email, domain.Role(req.Role))
	if err != nil {
		respondError(c, err, "Failed to create invitation")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Invitation created", slog.String("invitation_id", inv.InvitationID))
	c.JSON(http.StatusCreated, dto.ToInvitationResponse(inv, code))
}

// listInvitations godoc
// @Summary List open invitations
// @Tags team
// @Produce  json
// @Success 200 {object} dto.ListInvitationsResponse
// @Security BearerAuth
// @Router /team/invitations [get]
func (h *organizationHandler) listInvitations(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	invs, err := h.teamService.ListInvitations(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err, "Failed to list invitations")
		return
	}
	c.JSON(http.StatusOK, dto.ToListInvitationsResponse(invs))
}
