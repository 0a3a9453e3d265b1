package middleware

import (
	"strings"
	"time"

	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware is the access gate for admin routes. A request is admitted
// only when it carries a verifiable credential whose session is still active
// in the registry. Each step short-circuits with a distinguishable rejection
// so clients can tell "re-login" apart from "bad request".
func AuthMiddleware(registry *services.SessionRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get the token from the header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.Unauthorized(c, "No token provided")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		// Signature and expiry check. Anything past its TTL dies here,
		// regardless of registry state.
		claims, err := services.ParseToken(tokenString)
		if err != nil {
			utils.TrackAuthAttempt("failure", "invalid_token")
			utils.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		// Reject tokens minted for other audiences (students, password reset)
		if role, ok := claims["role"].(string); ok && role == "student" {
			utils.Unauthorized(c, "Invalid token type")
			c.Abort()
			return
		}
		if tokenType, ok := claims["type"].(string); ok && tokenType != "" {
			utils.Unauthorized(c, "Invalid token type")
			c.Abort()
			return
		}

		if iss, ok := claims["iss"].(string); ok && iss != utils.TokenIssuer {
			utils.Unauthorized(c, "Invalid token issuer")
			c.Abort()
			return
		}

		adminID, ok := claims["admin_id"].(string)
		if !ok || adminID == "" {
			utils.Unauthorized(c, "Invalid token claims")
			c.Abort()
			return
		}

		sessionID, ok := claims["session_id"].(string)
		if !ok || sessionID == "" {
			utils.Unauthorized(c, "Invalid token claims")
			c.Abort()
			return
		}

		// The registry is the revocation authority. A valid signature is not
		// enough once the session has been revoked.
		if !registry.IsActive(sessionID) {
			utils.TrackAuthAttempt("failure", "session_revoked")
			utils.Unauthorized(c, "Session revoked. Please login again.")
			c.Abort()
			return
		}

		// Best effort; never affects the admit decision
		registry.Touch(sessionID)

		c.Set("admin_id", adminID)
		c.Set("session_id", sessionID)
		if username, ok := claims["username"].(string); ok {
			c.Set("username", username)
		}
		if email, ok := claims["email"].(string); ok {
			c.Set("email", email)
		}
		if iat, ok := claims["iat"].(float64); ok {
			c.Set("token_issued_at", time.Unix(int64(iat), 0))
		}

		c.Next()
	}
}
