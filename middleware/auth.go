package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"store-api/models"
	"store-api/services"
)

// Context keys set by Auth for downstream handlers.
const (
	UserIDKey   = "userId"
	UserRoleKey = "userRole"
)

// Auth verifies the Bearer token and stores the caller's identity in the
// gin context.
func Auth(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied: missing token"})
			return
		}

		claims, err := tokens.Validate(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied: invalid token"})
			return
		}

		sub, _ := claims["sub"].(string)
		role, _ := claims["role"].(string)
		c.Set(UserIDKey, sub)
		c.Set(UserRoleKey, role)
		c.Next()
	}
}

// RequireRole allows only callers whose token carries one of the given roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(UserRoleKey)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied: invalid token"})
	}
}

// IsAdmin allows only admins.
func IsAdmin() gin.HandlerFunc {
	return RequireRole(models.RoleAdmin)
}

// IsStaff allows staff and admins.
func IsStaff() gin.HandlerFunc {
	return RequireRole(models.RoleStaff, models.RoleAdmin)
}

// GetUserID returns the authenticated user id from the gin context.
func GetUserID(c *gin.Context) (string, bool) {
	id := c.GetString(UserIDKey)
	return id, id != ""
}
