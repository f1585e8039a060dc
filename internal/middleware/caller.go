package middleware

import (
	"log/slog"

	"github.com/SscSPs/crew_planner/internal/apperrors"
	portssvc "github.com/SscSPs/crew_planner/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// OrganizationHeader selects the organization a request acts in. Without it the caller's
// primary membership is used.
const OrganizationHeader = "X-Organization-ID"

// CallerMiddleware resolves the caller's organization context. It must run after AuthMiddleware.
func CallerMiddleware(access portssvc.AccessSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		userID, ok := GetUserIDFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(apperrors.StatusCode(apperrors.ErrUnauthorized), gin.H{"error": "Unauthorized"})
			return
		}

		caller, err := access.ResolveCaller(c.Request.Context(), userID, c.GetHeader(OrganizationHeader))
		if err != nil {
			status := apperrors.StatusCode(err)
			if status >= 500 {
				logger.Error("Failed to resolve caller", slog.String("error", err.Error()))
				c.AbortWithStatusJSON(status, gin.H{"error": "Failed to resolve organization"})
				return
			}
			logger.Warn("Caller rejected", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
			return
		}

		enriched := logger.With(
			slog.String("organization_id", caller.OrganizationID),
			slog.String("role", string(caller.Role)),
		)
		c.Request = c.Request.WithContext(WithLogger(c.Request.Context(), enriched))
		c.Set(string(callerKey), caller)

		c.Next()
	}
}
