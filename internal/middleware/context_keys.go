package middleware

import "github.com/gin-gonic/gin"

// contextKey is a private type for values stored in request and Gin contexts.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	userIDKey    = contextKey("userID")
	userRoleKey  = contextKey("userRole")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(userIDKey)); exists {
		userID, ok := v.(string)
		return userID, ok && userID != ""
	}
	// check in the request context as well
	if v, ok := c.Request.Context().Value(userIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// GetUserRoleFromContext retrieves the role claim of the authenticated user.
func GetUserRoleFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(userRoleKey)); exists {
		role, ok := v.(string)
		return role, ok
	}
	role, ok := c.Request.Context().Value(userRoleKey).(string)
	return role, ok
}
