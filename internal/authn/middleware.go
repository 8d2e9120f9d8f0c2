package authn

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mpcs-reservation/internal/staffdir"
)

const (
	contextStaffID = "staff_id"
	contextRole    = "staff_role"
)

// Middleware validates the bearer token on every request and sets the
// authenticated staff_id and role in the gin context.
func Middleware(issuer *Issuer, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "authorization header required"})
			c.Abort()
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")
		claims, err := issuer.Validate(token)
		if err != nil {
			logger.Debug("rejected session token", "error", err)
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "invalid or expired token"})
			c.Abort()
			return
		}
		c.Set(contextStaffID, claims.StaffID)
		c.Set(contextRole, claims.Role)
		c.Next()
	}
}

// RequireRole rejects requests from staff whose role is not in allowed.
// Call after Middleware so the role is already in context.
func RequireRole(allowed ...staffdir.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(contextRole)
		for _, r := range allowed {
			if role == r {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"detail": "insufficient role"})
		c.Abort()
	}
}

// StaffID reads the authenticated staff_id out of the gin context.
func StaffID(c *gin.Context) string {
	id, _ := c.Get(contextStaffID)
	s, _ := id.(string)
	return s
}
