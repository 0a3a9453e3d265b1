package middleware

import (
	"strings"

	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// StudentAuthMiddleware guards the student area. Student tokens are plain
// bearer credentials with no session tracking; expiry alone bounds them.
func StudentAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.Unauthorized(c, "No token provided")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := services.ParseToken(tokenString)
		if err != nil {
			utils.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		role, _ := claims["role"].(string)
		tokenType, _ := claims["type"].(string)
		if role != "student" && tokenType != "student_auth" {
			utils.Unauthorized(c, "Invalid token for student access")
			c.Abort()
			return
		}

		studentID, ok := claims["student_id"].(string)
		if !ok || studentID == "" {
			utils.Unauthorized(c, "Invalid token claims")
			c.Abort()
			return
		}

		c.Set("student_id", studentID)
		if email, ok := claims["email"].(string); ok {
			c.Set("student_email", email)
		}

		c.Next()
	}
}
