package dto

import (
	"time"

	"github.com/SscSPs/crew_planner/internal/core/domain"
)

// --- Organization DTOs ---

// CreateOrganizationRequest defines data for creating a new organization.
type CreateOrganizationRequest struct {
	Name string `json:"name" binding:"required"`
}

// OrganizationResponse defines data returned for an organization.
type OrganizationResponse struct {
	OrganizationID     string    `json:"organizationID"`
	Name               string    `json:"name"`
	Plan               string    `json:"plan"`
	SubscriptionStatus string    `json:"subscriptionStatus"`
	OwnerID            string    `json:"ownerID"`
	CreatedAt          time.Time `json:"createdAt"`
}

// ToOrganizationResponse converts domain.Organization to DTO.
func ToOrganizationResponse(o *domain.Organization) OrganizationResponse {
	return OrganizationResponse{
		OrganizationID:     o.OrganizationID,
		Name:               o.Name,
		Plan:               string(o.Plan),
		SubscriptionStatus: string(o.SubscriptionStatus),
		OwnerID:            o.OwnerID,
		CreatedAt:          o.CreatedAt,
	}
}

// OrganizationMembershipResponse is one organization the user belongs to.
type OrganizationMembershipResponse struct {
	Organization OrganizationResponse `json:"organization"`
	Role         string               `json:"role"`
	AcceptedAt   time.Time            `json:"acceptedAt"`
}

// ListOrganizationsResponse wraps the user's organizations.
type ListOrganizationsResponse struct {
	Organizations []OrganizationMembershipResponse `json:"organizations"`
}

// ToListOrganizationsResponse converts memberships to DTO.
func ToListOrganizationsResponse(ms []domain.OrganizationMembership) ListOrganizationsResponse {
	list := make([]OrganizationMembershipResponse, len(ms))
	for i := range ms {
		list[i] = OrganizationMembershipResponse{
			Organization: ToOrganizationResponse(&ms[i].Organization),
			Role:         string(ms[i].Role),
			AcceptedAt:   ms[i].AcceptedAt,
		}
	}
	return ListOrganizationsResponse{Organizations: list}
}

// --- Team DTOs ---

// MembershipResponse defines data returned about a user's membership.
type MembershipResponse struct {
	UserID         string    `json:"userID"`
	OrganizationID string    `json:"organizationID"`
	Role           string    `json:"role"`
	AcceptedAt     time.Time `json:"acceptedAt"`
}

// ToMembershipResponse converts domain.Membership to DTO.
func ToMembershipResponse(m *domain.Membership) MembershipResponse {
	return MembershipResponse{
		UserID:         m.UserID,
		OrganizationID: m.OrganizationID,
		Role:           string(m.Role),
		AcceptedAt:     m.AcceptedAt,
	}
}

type ListMembersResponse struct {
	Members []MembershipResponse `json:"members"`
}

func ToListMembersResponse(ms []domain.Membership) ListMembersResponse {
	list := make([]MembershipResponse, len(ms))
	for i := range ms {
		list[i] = ToMembershipResponse(&ms[i])
	}
	return ListMembersResponse{Members: list}
}

// ChangeRoleRequest defines data for changing a member's role.
type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin operations user"`
}

// CreateInvitationRequest defines data for inviting a user by email.
type CreateInvitationRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required,oneof=admin operations user"`
}

// InvitationResponse defines data returned for an invitation. Code is only set on creation.
type InvitationResponse struct {
	InvitationID string     `json:"invitationID"`
	Email        string     `json:"email"`
	Role         string     `json:"role"`
	InvitedBy    string     `json:"invitedBy"`
	CreatedAt    time.Time  `json:"createdAt"`
	ExpiresAt    time.Time  `json:"expiresAt"`
	AcceptedAt   *time.Time `json:"acceptedAt,omitempty"`
	Code         string     `json:"code,omitempty"`
}

// ToInvitationResponse converts domain.Invitation to DTO.
func ToInvitationResponse(inv *domain.Invitation, code string) InvitationResponse {
	return InvitationResponse{
		InvitationID: inv.InvitationID,
		Email:        inv.Email,
		Role:         string(inv.Role),
		InvitedBy:    inv.InvitedBy,
		CreatedAt:    inv.CreatedAt,
		ExpiresAt:    inv.ExpiresAt,
		AcceptedAt:   inv.AcceptedAt,
		Code:         code,
	}
}

type ListInvitationsResponse struct {
	Invitations []InvitationResponse `json:"invitations"`
}

func ToListInvitationsResponse(invs []domain.Invitation) ListInvitationsResponse {
	list := make([]InvitationResponse, len(invs))
	for i := range invs {
		list[i] = ToInvitationResponse(&invs[i], "")
	}
	return ListInvitationsResponse{Invitations: list}
}

// AcceptInvitationRequest carries the one-time code sent to the invitee.
type AcceptInvitationRequest struct {
	Code string `json:"code" binding:"required"`
}

// --- Settings and quota DTOs ---

// SetColorLabelRequest names one planner color.
type SetColorLabelRequest struct {
	Label string `json:"label" binding:"required"`
}

// SetVehicleTypesRequest replaces the organization's vehicle type list.
type SetVehicleTypesRequest struct {
	VehicleTypes []string `json:"vehicleTypes" binding:"required"`
}

// QuotaUsageResponse reports usage for every resource kind of the caller's plan.
type QuotaUsageResponse struct {
	Plan  string              `json:"plan"`
	Usage []domain.QuotaUsage `json:"usage"`
}
