package domain

import "time"

// Invitation lets an admin add a user to an organization with a preset role.
// The plaintext code is only returned once at creation.
type Invitation struct {
	InvitationID   string     `json:"invitationID"`
	OrganizationID string     `json:"organizationID"`
	Email          string     `json:"email"`
	Role           Role       `json:"role"`
	CodeHash       string     `json:"-"`
	InvitedBy      string     `json:"invitedBy"`
	CreatedAt      time.Time  `json:"createdAt"`
	ExpiresAt      time.Time  `json:"expiresAt"`
	AcceptedAt     *time.Time `json:"acceptedAt,omitempty"`
	AcceptedBy     *string    `json:"acceptedBy,omitempty"`
}

func (i Invitation) IsExpired(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}

func (i Invitation) IsAccepted() bool {
	return i.AcceptedAt != nil
}
