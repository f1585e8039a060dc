package middleware

import (
	"github.com/SscSPs/crew_planner/internal/core/domain"
	"github.com/gin-gonic/gin"
)

const (
	// userIDKey holds the authenticated user's ID.
	userIDKey = contextKey("userID")
	// callerKey holds the resolved *domain.CallerContext.
	callerKey = contextKey("caller")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(userIDKey)); exists {
		userID, ok := v.(string)
		return userID, ok && userID != ""
	}
	if userID, ok := c.Request.Context().Value(userIDKey).(string); ok && userID != "" {
		return userID, true
	}
	return "", false
}

// GetCallerFromContext retrieves the caller resolved by CallerMiddleware.
func GetCallerFromContext(c *gin.Context) (*domain.CallerContext, bool) {
	v, exists := c.Get(string(callerKey))
	if !exists {
		return nil, false
	}
	caller, ok := v.(*domain.CallerContext)
	return caller, ok && caller != nil
}
