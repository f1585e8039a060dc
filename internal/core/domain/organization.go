package domain

import "time"

// Plan is the subscription tier of an organization.
type Plan string

const (
	PlanStarter Plan = "starter"
	PlanPro     Plan = "pro"
)

// IsValid reports whether p is a known plan tier.
func (p Plan) IsValid() bool {
	return p == PlanStarter || p == PlanPro
}

// SubscriptionStatus mirrors the billing provider's subscription state. It is read-only here.
type SubscriptionStatus string

const (
	SubscriptionTrialing   SubscriptionStatus = "trialing"
	SubscriptionActive     SubscriptionStatus = "active"
	SubscriptionPastDue    SubscriptionStatus = "past_due"
	SubscriptionCanceled   SubscriptionStatus = "canceled"
	SubscriptionUnpaid     SubscriptionStatus = "unpaid"
	SubscriptionIncomplete SubscriptionStatus = "incomplete"
)

// AllowsMutations reports whether an organization in this state may change data.
func (s SubscriptionStatus) AllowsMutations() bool {
	return s == SubscriptionActive || s == SubscriptionTrialing
}

// Organization is the tenant that owns depots, crews, employees, vehicles and schedule items.
type Organization struct {
	OrganizationID     string             `json:"organizationID"`
	Name               string             `json:"name"`
	Plan               Plan               `json:"plan"`
	SubscriptionStatus SubscriptionStatus `json:"subscriptionStatus"`
	OwnerID            string             `json:"ownerID"`
	AuditFields
}

// Role defines the role a user holds inside one organization.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleOperations Role = "operations"
	RoleUser       Role = "user"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleOperations || r == RoleUser
}

// Membership represents the membership of a User in an Organization.
type Membership struct {
	OrganizationID string    `json:"organizationID"`
	UserID         string    `json:"userID"`
	Role           Role      `json:"role"`
	AcceptedAt     time.Time `json:"acceptedAt"`
}

// OrganizationMembership pairs a membership with the organization it belongs to.
type OrganizationMembership struct {
	Membership
	Organization Organization `json:"organization"`
}

// PrimaryMembership picks the membership used as a user's default organization context:
// the one whose organization the user owns, else the most recently accepted one.
func PrimaryMembership(userID string, memberships []OrganizationMembership) (OrganizationMembership, bool) {
	var primary OrganizationMembership
	found := false
	for _, m := range memberships {
		if m.Organization.OwnerID == userID {
			return m, true
		}
		if !found || m.AcceptedAt.After(primary.AcceptedAt) {
			primary = m
			found = true
		}
	}
	return primary, found
}

// CallerContext is the resolved identity of a request inside one organization.
type CallerContext struct {
	UserID             string             `json:"userID"`
	OrganizationID     string             `json:"organizationID"`
	Role               Role               `json:"role"`
	Plan               Plan               `json:"plan"`
	SubscriptionStatus SubscriptionStatus `json:"subscriptionStatus"`
}
