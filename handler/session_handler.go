package handler

import (
	"log"

	"main/dto"
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// GetActiveSessions lists the caller's sessions, most recently active first.
// When the Redis mirror holds a fresh list it is served directly; otherwise
// the registry is read and the mirror refreshed best-effort.
func GetActiveSessions(registry *services.SessionRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID := c.GetString("admin_id")
		currentID := c.GetString("session_id")

		if services.GlobalSessionCache != nil {
			cached, isStale, err := services.GlobalSessionCache.GetAdminSessions(adminID)
			if err == nil && cached != nil && !isStale {
				utils.TrackCacheOperation("admin_sessions", true)
				utils.Success(c, gin.H{
					"sessions": dto.ToSessionResponses(cached, currentID),
				})
				return
			}
			utils.TrackCacheOperation("admin_sessions", false)
		}

		sessions := registry.ActiveSessions(adminID)

		if services.GlobalSessionCache != nil {
			if err := services.GlobalSessionCache.CacheAdminSessions(adminID, sessions); err != nil {
				log.Printf("Warning: Failed to cache admin sessions: %v", err)
			}
		}

		utils.Success(c, gin.H{
			"sessions": dto.ToSessionResponses(sessions, currentID),
		})
	}
}

// RevokeSessionHandler revokes one of the caller's sessions by ID. A session
// that does not exist, was already revoked, or belongs to another admin is
// reported identically as not found.
func RevokeSessionHandler(registry *services.SessionRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID := c.GetString("admin_id")
		sessionID := c.Param("sessionId")

		if !registry.RevokeBySessionID(adminID, sessionID) {
			utils.NotFound(c, "Session not found")
			return
		}

		utils.Success(c, gin.H{"message": "Session revoked"})
	}
}

// LogoutAllSessions revokes every session of the caller, including the one
// that made this request.
func LogoutAllSessions(registry *services.SessionRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID := c.GetString("admin_id")

		count := registry.RevokeAllForAdmin(adminID)
		log.Printf("Revoked %d sessions for admin %s", count, adminID)

		utils.Success(c, gin.H{
			"message":          "All sessions logged out",
			"sessions_revoked": count,
		})
	}
}
