package domain

// ResourceKind identifies a quota-limited resource.
type ResourceKind string

const (
	ResourceDepot    ResourceKind = "depot"
	ResourceCrew     ResourceKind = "crew"
	ResourceEmployee ResourceKind = "employee"
	ResourceVehicle  ResourceKind = "vehicle"
)

// ResourceKinds lists every quota-limited kind in display order.
var ResourceKinds = []ResourceKind{ResourceDepot, ResourceCrew, ResourceEmployee, ResourceVehicle}

// Unlimited marks a ceiling that is never reached.
const Unlimited = -1

// PlanLimits maps a plan tier to its per-kind ceilings.
type PlanLimits map[Plan]map[ResourceKind]int

// DefaultPlanLimits returns the stock ceilings; deployments may override them through config.
func DefaultPlanLimits() PlanLimits {
	return PlanLimits{
		PlanStarter: {
			ResourceDepot:    1,
			ResourceCrew:     3,
			ResourceEmployee: 25,
			ResourceVehicle:  10,
		},
		PlanPro: {
			ResourceDepot:    Unlimited,
			ResourceCrew:     30,
			ResourceEmployee: 250,
			ResourceVehicle:  100,
		},
	}
}

// Limit returns the ceiling for kind on plan. Unknown plans fall back to starter ceilings,
// unknown kinds are unbounded.
func (l PlanLimits) Limit(plan Plan, kind ResourceKind) int {
	kinds, ok := l[plan]
	if !ok {
		kinds = l[PlanStarter]
	}
	limit, ok := kinds[kind]
	if !ok {
		return Unlimited
	}
	return limit
}

// CanCreate reports whether one more resource fits under limit.
func CanCreate(currentUsage, limit int) bool {
	if limit == Unlimited {
		return true
	}
	return currentUsage < limit
}

// QuotaUsage is the live usage of one resource kind against its ceiling.
type QuotaUsage struct {
	Kind         ResourceKind `json:"kind"`
	CurrentUsage int          `json:"currentUsage"`
	Limit        int          `json:"limit"` // -1 when unbounded
	CanCreate    bool         `json:"canCreate"`
}
