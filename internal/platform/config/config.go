package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/SscSPs/crew_planner/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	MigrationsDir string
	JWTSecret     string

	// CORS
	AllowedOrigins []string

	// Rate limiting, in ulule/limiter format ("100-M")
	RateLimit string

	// Redis backs planner settings; empty address disables it.
	RedisHost     string
	RedisPort     int
	RedisPassword string
	RedisDB       int

	// NATS receives schedule events; empty URL disables publishing.
	NatsURL           string
	NatsSubjectPrefix string

	PosthogAPIKey   string
	PosthogEndpoint string

	SessionTTL           time.Duration
	SessionSweepInterval time.Duration
	InvitationTTL        time.Duration

	PlanLimits domain.PlanLimits
}

// RedisAddr returns host:port, or "" when Redis is not configured.
func (c *Config) RedisAddr() string {
	if c.RedisHost == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MIGRATIONS_DIR", "migrations")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("REDIS_HOST", "")
	viper.SetDefault("REDIS_PORT", 6379)
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("NATS_URL", "")
	viper.SetDefault("NATS_SUBJECT_PREFIX", "planner")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")
	viper.SetDefault("PLANNER_SESSION_TTL", "30m")
	viper.SetDefault("PLANNER_SESSION_SWEEP_INTERVAL", "1m")
	viper.SetDefault("INVITATION_TTL", "168h")

	defaults := domain.DefaultPlanLimits()
	for plan, kinds := range defaults {
		for kind, limit := range kinds {
			viper.SetDefault(limitKey(plan, kind), limit)
		}
	}

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsDir = viper.GetString("MIGRATIONS_DIR")
	cfg.AllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	cfg.RedisHost = viper.GetString("REDIS_HOST")
	cfg.RedisPort = viper.GetInt("REDIS_PORT")
	cfg.RedisPassword = viper.GetString("REDIS_PASSWORD")
	cfg.RedisDB = viper.GetInt("REDIS_DB")
	if cfg.RedisHost == "" {
		log.Println("Warning: REDIS_HOST not set. Planner vehicle types fall back to defaults.")
	}

	cfg.NatsURL = viper.GetString("NATS_URL")
	cfg.NatsSubjectPrefix = viper.GetString("NATS_SUBJECT_PREFIX")
	if cfg.NatsURL == "" {
		log.Println("Warning: NATS_URL not set. Schedule events will not be published.")
	}

	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.PosthogEndpoint = viper.GetString("POSTHOG_ENDPOINT")

	cfg.SessionTTL = parseDuration("PLANNER_SESSION_TTL", 30*time.Minute)
	cfg.SessionSweepInterval = parseDuration("PLANNER_SESSION_SWEEP_INTERVAL", time.Minute)
	cfg.InvitationTTL = parseDuration("INVITATION_TTL", 7*24*time.Hour)

	cfg.PlanLimits = domain.PlanLimits{}
	for plan, kinds := range defaults {
		cfg.PlanLimits[plan] = map[domain.ResourceKind]int{}
		for kind := range kinds {
			cfg.PlanLimits[plan][kind] = viper.GetInt(limitKey(plan, kind))
		}
	}

	return cfg, nil
}

// limitKey returns e.g. QUOTA_STARTER_CREW.
func limitKey(plan domain.Plan, kind domain.ResourceKind) string {
	return "QUOTA_" + strings.ToUpper(string(plan)) + "_" + strings.ToUpper(string(kind))
}

func parseDuration(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
