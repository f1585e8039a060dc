package config

import (
	"testing"
	"time"

	"github.com/SscSPs/crew_planner/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 3, cfg.PlanLimits.Limit(domain.PlanStarter, domain.ResourceCrew))
	assert.Equal(t, domain.Unlimited, cfg.PlanLimits.Limit(domain.PlanPro, domain.ResourceDepot))
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("QUOTA_STARTER_CREW", "5")
	t.Setenv("PLANNER_SESSION_TTL", "not-a-duration")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.PlanLimits.Limit(domain.PlanStarter, domain.ResourceCrew))
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "cache:6379", cfg.RedisAddr())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}
