// Package middleware holds the gin middleware of the API.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/handyzentrum/shopdocs/internal/auth"
)

const operatorKey = "operator"

// Auth requires a valid bearer token on every request. A nil parser
// disables the check: single-operator deployments on localhost run open.
func Auth(parser *auth.Parser) gin.HandlerFunc {
	return func(c *gin.Context) {
		if parser == nil {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := parser.Parse(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(operatorKey, claims.Subject)
		c.Next()
	}
}

// Operator returns the authenticated operator subject, if any.
func Operator(c *gin.Context) string {
	value, _ := c.Get(operatorKey)
	operator, _ := value.(string)
	return operator
}

// RequestID tags every request with a correlation id, echoed in the
// X-Request-ID response header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
