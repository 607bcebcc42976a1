package handlers

import (
	"net/http"
	"strings"

	"restro_pos/internal/services"

	"github.com/gin-gonic/gin"
)

// SessionAuth guards the staff API. The customer self-order routes stay
// open: guests have no account.
func SessionAuth(authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing session token"})
			return
		}
		session, err := authService.GetSession(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			return
		}
		c.Set("session", session)
		c.Next()
	}
}

func sessionToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
