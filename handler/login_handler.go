package handler

import (
	"log"

	"main/dto"
	"main/repository"
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/pquerna/otp/totp"
)

const MaxActiveSessions = 5

// LoginHandler verifies admin credentials and issues an access credential.
// Each successful login mints a fresh session; at most MaxActiveSessions
// sessions are kept per admin, evicting the least recently used one.
func LoginHandler(registry *services.SessionRegistry, securityEvents *services.SecurityEvents) gin.HandlerFunc {
	return func(c *gin.Context) {
		var loginReq dto.LoginRequest

		if err := c.ShouldBindJSON(&loginReq); err != nil {
			utils.TrackError("auth", "invalid_request")
			utils.TrackAuthAttempt("failure", "validation")
			utils.BadRequest(c, "Invalid Request")
			return
		}
		if loginReq.Username == "" && loginReq.Email == "" {
			utils.TrackAuthAttempt("failure", "validation")
			utils.BadRequest(c, "Username or email required")
			return
		}

		adminRepo := repository.GetAdminRepo(utils.MongoClient)
		admin, err := adminRepo.FindByUsernameOrEmail(loginReq.Username, loginReq.Email)
		if err != nil {
			utils.TrackError("auth", "admin_lookup")
			utils.TrackAuthAttempt("failure", "lookup_error")
			utils.InternalError(c, "Failed to look up account")
			return
		}
		if admin == nil {
			utils.TrackAuthAttempt("failure", "admin_not_found")
			securityEvents.RecordFailedLogin(loginReq.Username, c.ClientIP())
			utils.Unauthorized(c, "Invalid credentials")
			return
		}

		checkPassword, err := services.VerifyPassword(admin.Password, loginReq.Password)
		if err != nil {
			utils.TrackError("auth", "password_verification")
			utils.TrackAuthAttempt("failure", "password_verification_error")
			utils.Unauthorized(c, "Invalid credentials")
			return
		}
		if !checkPassword {
			utils.TrackAuthAttempt("failure", "invalid_password")
			securityEvents.RecordFailedLogin(admin.Username, c.ClientIP())
			utils.Unauthorized(c, "Invalid credentials")
			return
		}

		if admin.TwoFactorEnabled {
			if loginReq.TwoFactorCode == "" {
				utils.TrackAuthAttempt("pending", "2fa_required")
				utils.Success(c, gin.H{
					"requires_2fa": true,
					"message":      "2FA code required",
				})
				return
			}

			if !totp.Validate(loginReq.TwoFactorCode, admin.TwoFactorSecret) {
				utils.TrackAuthAttempt("failure", "invalid_2fa")
				utils.TrackError("auth", "invalid_2fa_code")
				securityEvents.RecordFailedLogin(admin.Username, c.ClientIP())
				utils.Unauthorized(c, "Invalid 2FA code")
				return
			}
			utils.TrackAuthAttempt("success", "2fa")
		}

		var notice string
		if registry.CountActiveSessions(admin.AdminID) >= MaxActiveSessions {
			if registry.EndLeastActiveSession(admin.AdminID) {
				notice = "Logged out of least active session due to session limit"
				log.Printf("Ended least active session for admin %s due to session limit", admin.AdminID)
			}
		}

		token, session, err := services.IssueAdminCredential(registry, admin, c.ClientIP(), c.Request.UserAgent())
		if err != nil {
			utils.TrackError("auth", "credential_issuance")
			utils.InternalError(c, "Failed to issue credential")
			return
		}

		utils.TrackAuthAttempt("success", "login")

		response := gin.H{
			"message":    "Login successful",
			"token":      token,
			"session_id": session.SessionID,
			"expires_at": session.ExpiresAt,
			"admin": gin.H{
				"id":       admin.AdminID,
				"username": admin.Username,
				"email":    admin.Email,
			},
		}
		if notice != "" {
			response["notice"] = notice
		}

		utils.Success(c, response)
	}
}
