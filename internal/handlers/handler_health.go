package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/crew_planner/internal/middleware"
	"github.com/gin-gonic/gin"
)

// HealthChecker is a dependency the health endpoint pings, such as the database pool or Redis.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// getHealth godoc
// @Summary Show the status of server and its dependencies.
// @Tags root
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func healthHandler(checks map[string]HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		results := gin.H{}
		for name, check := range checks {
			if err := check.Ping(ctx); err != nil {
				middleware.GetLoggerFromCtx(ctx).Warn("Health check failed", slog.String("dependency", name), slog.String("error", err.Error()))
				results[name] = "unavailable"
				status = http.StatusServiceUnavailable
				continue
			}
			results[name] = "ok"
		}
		c.JSON(status, gin.H{"status": http.StatusText(status), "checks": results})
	}
}
