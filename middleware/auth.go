package middleware

import (
	"net/http"
	"strings"

	"leadpilot/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthMiddleware validates the bearer token and puts the authenticated
// agent ID on the context.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		agentID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || agentID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}

		c.Set("agentID", agentID)
		c.Next()
	}
}
