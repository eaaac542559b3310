package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kearth1516-lgtm/my-app/internal/response"
)

// PublicPaths are reachable without a token. Entries ending in "/" match
// as prefixes.
var PublicPaths = []string{
	"/",
	"/health",
	"/api/auth/login",
	"/uploads/",
}

func isPublic(path string) bool {
	for _, p := range PublicPaths {
		if strings.HasSuffix(p, "/") && p != "/" {
			if strings.HasPrefix(path, p) {
				return true
			}
		} else if path == p {
			return true
		}
	}
	return false
}

// Middleware requires a valid bearer token on every route outside the
// public allow-list.
func Middleware(tokens *TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if isPublic(c.Request.URL.Path) {
			c.Next()
			return
		}
		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			if user, err := tokens.Validate(raw); err == nil {
				c.Set("user", user)
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, response.Unauthorized("Unauthorized"))
	}
}
