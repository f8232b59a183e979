package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const actorKey = "actorID"

// systemActor is attributed when a request carries no identity header.
const systemActor = "system"

// ActorMiddleware resolves who is performing the request from the
// X-Actor-ID header and stores it on the gin context for audit fields.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := strings.TrimSpace(c.GetHeader("X-Actor-ID"))
		if actor == "" {
			actor = systemActor
		}
		c.Set(actorKey, actor)
		c.Next()
	}
}

// GetActorFromContext returns the acting user id set by ActorMiddleware,
// defaulting to the system actor when the middleware did not run.
func GetActorFromContext(c *gin.Context) string {
	if actor, ok := c.Get(actorKey); ok {
		if s, ok := actor.(string); ok && s != "" {
			return s
		}
	}
	return systemActor
}
