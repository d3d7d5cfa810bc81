package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// SubjectKey is the gin context key holding the authenticated api key id.
const SubjectKey = "authSubject"

type KeyValidator interface {
	Validate(ctx context.Context, key string) (string, error)
	ValidateToken(token string) (string, error)
}

// AuthMiddleware accepts an x-api-key header or an Authorization bearer token.
func AuthMiddleware(keys KeyValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			subject string
			err     error
		)
		if key := c.GetHeader("x-api-key"); key != "" {
			subject, err = keys.Validate(c.Request.Context(), key)
		} else if token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); ok && token != "" {
			subject, err = keys.ValidateToken(token)
		} else {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid or missing api key"})
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid or missing api key"})
			return
		}
		c.Set(SubjectKey, subject)
		c.Next()
	}
}
