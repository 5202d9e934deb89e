package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/restoerp/backend/internal/domain/shared"
)

// UserIDHeader carries the acting user's ID for audit columns. There is
// no authentication; the header is trusted as-is.
const UserIDHeader = "X-User-ID"

// AuditActor copies the X-User-ID header into the request context.
// An absent or malformed header leaves the context without an actor.
func AuditActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := c.GetHeader(UserIDHeader); raw != "" {
			if id, err := uuid.Parse(raw); err == nil {
				c.Request = c.Request.WithContext(shared.WithActor(c.Request.Context(), id))
			}
		}
		c.Next()
	}
}
