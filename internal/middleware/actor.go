package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// actorIDKey is the key used to store the acting member's ID in the Gin
// context.
const actorIDKey = contextKey("actorID")

// ActorHeader is the request header naming the member performing the
// command. Identity verification happens upstream; this service only needs
// the id for permission checks against the member directory.
const ActorHeader = "X-Actor-ID"

// RequireActor rejects requests that carry no actor id.
func RequireActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID := c.GetHeader(ActorHeader)
		if actorID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ActorHeader + " header is required"})
			return
		}
		c.Set(string(actorIDKey), actorID)
		c.Next()
	}
}

// GetActorIDFromContext retrieves the acting member's ID from the Gin
// context. It returns the id and a boolean indicating if it was found.
func GetActorIDFromContext(c *gin.Context) (string, bool) {
	actorIDVal, exists := c.Get(string(actorIDKey))
	if !exists {
		return "", false
	}
	actorID, ok := actorIDVal.(string)
	if !ok {
		return "", false
	}
	return actorID, true
}
