package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// TokenResolver resolves an access token to a user id. Empty string means
// the token is unknown or expired.
type TokenResolver interface {
	UserIDByAccessToken(ctx context.Context, token string) (string, error)
}

// Identity resolves the caller, in order: x-user-id header, bearer access
// token through the token store, accessToken cookie. Unresolved requests
// get a 401.
func Identity(resolver TokenResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := c.GetHeader("x-user-id"); id != "" {
			c.Set("user_id", id)
			c.Next()
			return
		}

		token := bearerToken(c)
		if token == "" {
			if cookie, err := c.Cookie("accessToken"); err == nil {
				token = cookie
			}
		}

		if token != "" && resolver != nil {
			userID, err := resolver.UserIDByAccessToken(c.Request.Context(), token)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "token lookup failed"})
				return
			}
			if userID != "" {
				c.Set("user_id", userID)
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
