package domain

// Capability is an action class gated by role.
type Capability string

const (
	CapabilityViewSchedule    Capability = "view_schedule"
	CapabilityCreateBookings  Capability = "create_bookings"
	CapabilityApproveBookings Capability = "approve_bookings"
	CapabilityManageResources Capability = "manage_resources"
	CapabilityManageTeam      Capability = "manage_team"
)

// The matrix is fixed and not configurable per organization.
var roleCapabilities = map[Role]map[Capability]bool{
	RoleAdmin: {
		CapabilityViewSchedule:    true,
		CapabilityCreateBookings:  true,
		CapabilityApproveBookings: true,
		CapabilityManageResources: true,
		CapabilityManageTeam:      true,
	},
	RoleOperations: {
		CapabilityViewSchedule:    true,
		CapabilityCreateBookings:  true,
		CapabilityApproveBookings: true,
		CapabilityManageResources: true,
	},
	RoleUser: {
		CapabilityViewSchedule:   true,
		CapabilityCreateBookings: true,
	},
}

// Can reports whether the role holds the capability.
func (r Role) Can(c Capability) bool {
	return roleCapabilities[r][c]
}
