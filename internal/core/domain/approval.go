package domain

// InitialApprovalStatus decides the status of a new booking. An explicit status wins but is
// normalized to approved when it is not one of the three workflow states.
func InitialApprovalStatus(role Role, plan Plan, explicit *ApprovalStatus) ApprovalStatus {
	if explicit != nil {
		return NormalizeApprovalStatus(*explicit)
	}
	if role == RoleAdmin || role == RoleOperations {
		return StatusApproved
	}
	if plan == PlanPro {
		return StatusPending
	}
	return StatusApproved
}

// NormalizeApprovalStatus maps unknown values to approved.
func NormalizeApprovalStatus(s ApprovalStatus) ApprovalStatus {
	if s.IsValid() {
		return s
	}
	return StatusApproved
}

// CanTransitionFrom reports whether approve/reject may act on an item in status s.
func CanTransitionFrom(s ApprovalStatus) bool {
	return s == StatusPending
}
