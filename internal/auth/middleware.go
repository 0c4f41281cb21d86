package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RequireAuth gates a route on a valid bearer token. On failure the request
// is aborted with 401 and never reaches the handler; on success the decoded
// claims are attached to the request context.
func RequireAuth(tokens *TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			c.String(http.StatusUnauthorized, "Missing or invalid authorization header.")
			c.Abort()
			return
		}
		tokenStr := strings.TrimPrefix(h, "Bearer ")
		claims, err := tokens.Parse(tokenStr)
		if err != nil {
			c.String(http.StatusUnauthorized, "Invalid token.")
			c.Abort()
			return
		}
		c.Set("user_id", claims.UserID)
		c.Set("user_name", claims.Username)
		c.Set("user_admin", claims.Admin)
		c.Set("user_crew_leader", claims.CrewLeader)
		c.Next()
	}
}
