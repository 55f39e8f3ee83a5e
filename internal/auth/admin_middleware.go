package auth

import (
	"net/http"

	"gamepulse/dashboard/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// AdminMiddleware creates a gin middleware that requires a valid admin token.
func AdminMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearer(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		sub, role, err := jwt.ParseToken(tokenString, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		if role != jwt.AdminRole {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}

		c.Set(SubjectKey, sub)
		c.Set(RoleKey, role)
		c.Next()
	}
}
