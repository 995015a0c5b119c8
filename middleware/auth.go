package middleware

import (
	"context"
	"net/http"
	"strings"

	"pos-service/models"

	"github.com/gin-gonic/gin"
)

const ActorContextKey = "actor"

// Authenticator validates a bearer token and resolves the actor behind it.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (models.Actor, error)
}

// AuthMiddleware resolves the calling actor from the Authorization header.
func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Missing authorization token"})
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if token == "" || token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid authorization header"})
			return
		}

		actor, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired token"})
			return
		}

		c.Set(ActorContextKey, actor)
		c.Next()
	}
}

func GetActor(c *gin.Context) (models.Actor, bool) {
	if val, ok := c.Get(ActorContextKey); ok {
		if actor, ok := val.(models.Actor); ok {
			return actor, true
		}
	}
	return models.Actor{}, false
}
