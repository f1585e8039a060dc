package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/crew_planner/internal/apperrors"
	"github.com/SscSPs/crew_planner/internal/core/domain"
	"github.com/SscSPs/crew_planner/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondError writes err with the status it maps to. Server errors get a generic message,
// client errors carry the error text.
func respondError(c *gin.Context, err error, failure string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := apperrors.StatusCode(err)
	if status >= http.StatusInternalServerError {
		logger.Error(failure, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": failure})
		return
	}

	logger.Warn(failure, slog.String("error", err.Error()), slog.Int("status", status))
	body := gin.H{"error": err.Error()}
	var quotaErr *apperrors.QuotaExceededError
	if errors.As(err, &quotaErr) {
		body["kind"] = quotaErr.Kind
		body["currentUsage"] = quotaErr.CurrentUsage
		body["limit"] = quotaErr.Limit
	}
	c.JSON(status, body)
}

// bindError answers a request whose body or query failed to bind.
func bindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
}

// callerFrom returns the caller resolved by CallerMiddleware, answering 401 when it is missing.
func callerFrom(c *gin.Context) (*domain.CallerContext, bool) {
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Caller not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}
	return caller, true
}
