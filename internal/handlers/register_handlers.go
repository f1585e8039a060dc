package handlers

import (
	"github.com/SscSPs/crew_planner/cmd/docs"
	portssvc "github.com/SscSPs/crew_planner/internal/core/ports/services"
	"github.com/SscSPs/crew_planner/internal/middleware"
	"github.com/SscSPs/crew_planner/internal/platform/config"
	"github.com/SscSPs/crew_planner/internal/utils"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RouteDependencies carries the optional infrastructure the routes hook into.
type RouteDependencies struct {
	Posthog     *utils.PosthogClientWrapper
	RateLimiter *limiter.Limiter
	// HealthChecks are pinged by /health, keyed by dependency name.
	HealthChecks map[string]HealthChecker
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps RouteDependencies,
) {
	r.GET("/health", healthHandler(deps.HealthChecks))

	setupAPIV1Routes(r, cfg, services, deps)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group. Organization listing, creation and invitation
// acceptance only need a user; everything else runs inside a resolved organization.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps RouteDependencies,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))
	if deps.RateLimiter != nil {
		v1.Use(middleware.RateLimit(deps.RateLimiter))
	}
	v1.Use(middleware.PosthogMiddleware(deps.Posthog))

	RegisterUserRoutes(v1, services.Organization, services.Team)

	org := v1.Group("", middleware.CallerMiddleware(services.Access))
	RegisterScheduleRoutes(org, services.Schedule, deps.Posthog)
	RegisterPlannerRoutes(org, services.Planner)
	RegisterResourceRoutes(org, services.Resource)
	RegisterTeamRoutes(org, services.Team)
	RegisterSettingsRoutes(org, services.Settings, services.Quota)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
