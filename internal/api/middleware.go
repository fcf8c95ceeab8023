package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"exercise-api/internal/service"
	"exercise-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Constants for context keys
const ContextIdentityKey = "identity"

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"message": message})
}

// AuthRequired creates a Gin middleware that rejects requests without a valid
// bearer token. A missing credential is 401; a present but invalid one is 403.
func AuthRequired(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		credential := c.GetHeader("Authorization")
		if credential == "" {
			abortWithError(c, http.StatusUnauthorized, "Authentication token required")
			return
		}

		identity, err := authService.VerifyToken(credential)
		if err != nil {
			abortWithError(c, http.StatusForbidden, "Invalid token")
			return
		}

		c.Set(ContextIdentityKey, identity)
		c.Next()
	}
}

// AuthOptional resolves the caller identity when a valid token is present and
// continues anonymously otherwise. It never aborts.
func AuthOptional(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if credential := c.GetHeader("Authorization"); credential != "" {
			if identity, err := authService.VerifyToken(credential); err == nil {
				c.Set(ContextIdentityKey, identity)
			}
		}
		c.Next()
	}
}

// identityFromContext returns the caller identity set by AuthRequired or
// AuthOptional. ok is false for anonymous requests.
func identityFromContext(c *gin.Context) (service.Identity, bool) {
	raw, exists := c.Get(ContextIdentityKey)
	if !exists {
		return service.Identity{}, false
	}
	identity, ok := raw.(service.Identity)
	return identity, ok
}

// ModifyPermissionGuard loads the target exercise and evaluates the route's
// permission rule set against the authenticated caller. Must run after
// AuthRequired.
func ModifyPermissionGuard(exerciseService service.ExerciseService, rules service.PermissionRules) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := identityFromContext(c)
		if !ok {
			abortWithError(c, http.StatusUnauthorized, "Authentication token required")
			return
		}

		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			abortWithError(c, http.StatusNotFound, "Exercise not found")
			return
		}

		exercise, err := exerciseService.GetByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, service.ErrExerciseNotFound) {
				abortWithError(c, http.StatusNotFound, "Exercise not found")
			} else {
				abortWithError(c, http.StatusInternalServerError, "Permission check failed")
			}
			return
		}

		decision := service.EvaluateModifyPermission(identity.UserID, *exercise, rules)
		if !decision.Allowed {
			abortWithError(c, http.StatusForbidden, decision.Reason)
			return
		}

		c.Next()
	}
}

// RequestLogger logs one structured line per request.
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request", map[string]interface{}{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		})
	}
}
