package domain_test

import (
	"testing"

	"github.com/SscSPs/crew_planner/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestRole_Can(t *testing.T) {
	matrix := map[domain.Capability][3]bool{
		// admin, operations, user
		domain.CapabilityManageResources: {true, true, false},
		domain.CapabilityApproveBookings: {true, true, false},
		domain.CapabilityManageTeam:      {true, false, false},
		domain.CapabilityCreateBookings:  {true, true, true},
		domain.CapabilityViewSchedule:    {true, true, true},
	}
	roles := []domain.Role{domain.RoleAdmin, domain.RoleOperations, domain.RoleUser}

	for capability, want := range matrix {
		for i, role := range roles {
			assert.Equal(t, want[i], role.Can(capability), "%s / %s", role, capability)
		}
	}
	assert.False(t, domain.Role("owner").Can(domain.CapabilityViewSchedule))
}

func TestSubscriptionStatus_AllowsMutations(t *testing.T) {
	assert.True(t, domain.SubscriptionActive.AllowsMutations())
	assert.True(t, domain.SubscriptionTrialing.AllowsMutations())
	assert.False(t, domain.SubscriptionPastDue.AllowsMutations())
	assert.False(t, domain.SubscriptionCanceled.AllowsMutations())
	assert.False(t, domain.SubscriptionStatus("").AllowsMutations())
}
