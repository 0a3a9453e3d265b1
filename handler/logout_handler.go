package handler

import (
	"strings"

	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// LogoutHandler revokes the session named by the presented credential. Logout
// is deliberately forgiving: a missing, malformed, or already-revoked token
// still gets a 200, since the caller's goal (not being logged in) is met.
func LogoutHandler(registry *services.SessionRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" || token == authHeader {
			utils.Success(c, gin.H{"message": "Logged out"})
			return
		}

		claims, err := services.ParseToken(token)
		if err != nil {
			utils.Success(c, gin.H{"message": "Logged out"})
			return
		}

		if sessionID, ok := claims["session_id"].(string); ok {
			registry.RevokeByTokenID(sessionID)
		}

		utils.Success(c, gin.H{"message": "Logged out"})
	}
}
