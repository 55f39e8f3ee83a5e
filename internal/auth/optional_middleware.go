package auth

import (
	"strings"

	"gamepulse/dashboard/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// Context keys set by the middlewares.
const (
	SubjectKey = "subject"
	RoleKey    = "role"
)

// OptionalAuthMiddleware inspects for a token and sets the subject and role if present and valid,
// but does not fail if the token is missing or invalid.
func OptionalAuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString, ok := bearer(c); ok {
			if sub, role, err := jwt.ParseToken(tokenString, secret); err == nil {
				c.Set(SubjectKey, sub)
				c.Set(RoleKey, role)
			}
		}
		c.Next()
	}
}

// IsAdmin reports whether the request carried a valid admin token.
func IsAdmin(c *gin.Context) bool {
	return c.GetString(RoleKey) == jwt.AdminRole
}

func bearer(c *gin.Context) (string, bool) {
	parts := strings.Split(c.GetHeader("Authorization"), " ")
	if len(parts) == 2 && parts[0] == "Bearer" && parts[1] != "" {
		return parts[1], true
	}
	return "", false
}
