package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/crew_planner/internal/utils"
	"github.com/gin-gonic/gin"
)

// pathsToSkip contains paths that should not be tracked by PostHog
var pathsToSkip = map[string]bool{
	"/health": true,
}

// PosthogMiddleware creates a Gin middleware handler that tracks successful API calls with PostHog.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if posthogClient == nil || !posthogClient.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}

		// "/api/v1/schedule-items/:id/approve" -> "api_v1_schedule-items_:id_approve"
		eventName := strings.ReplaceAll(strings.TrimPrefix(c.FullPath(), "/"), "/", "_")
		if eventName == "" {
			return
		}

		props := requestProperties(c)
		props["status_code"] = c.Writer.Status()
		if len(c.Params) > 0 {
			params := make(map[string]string, len(c.Params))
			for _, param := range c.Params {
				params[param.Key] = param.Value
			}
			props["params"] = params
		}

		posthogClient.Enqueue(userID, eventName, props)
	}
}

// PosthogEvent sends a custom event from a handler, such as a booking approval.
func PosthogEvent(c *gin.Context, posthogClient *utils.PosthogClientWrapper, eventName string, properties map[string]any) {
	if posthogClient == nil || !posthogClient.IsInitialized() {
		return
	}
	userID, exists := GetUserIDFromContext(c)
	if !exists {
		return
	}

	props := requestProperties(c)
	for k, v := range properties {
		props[k] = v
	}
	posthogClient.Enqueue(userID, eventName, props)
}

func requestProperties(c *gin.Context) map[string]any {
	props := map[string]any{
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
	}
	if caller, ok := GetCallerFromContext(c); ok {
		props["organization_id"] = caller.OrganizationID
		props["plan"] = string(caller.Plan)
		props["role"] = string(caller.Role)
	}
	return props
}
