package handler

import (
	"log"

	"main/dto"
	"main/repository"
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// ForgotPasswordHandler starts the reset flow. The response never reveals
// whether the email is registered. The reset token would normally be sent by
// email; there is no mailer wired up, so it is logged for the operator.
func ForgotPasswordHandler(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid Request")
		return
	}

	genericResponse := gin.H{"message": "If the email is registered, a reset link has been sent"}

	adminRepo := repository.GetAdminRepo(utils.MongoClient)
	admin, err := adminRepo.FindByEmail(req.Email)
	if err != nil {
		utils.TrackError("auth", "reset_lookup_failed")
		utils.Success(c, genericResponse)
		return
	}
	if admin == nil {
		utils.Success(c, genericResponse)
		return
	}

	token, err := services.GeneratePasswordResetToken(admin)
	if err != nil {
		utils.TrackError("auth", "reset_token_generation")
		utils.Success(c, genericResponse)
		return
	}

	log.Printf("Password reset token issued for admin %s: %s", admin.AdminID, token)
	utils.Success(c, genericResponse)
}

// ResetPasswordHandler completes the reset flow. Changing the password
// revokes every session of the admin.
func ResetPasswordHandler(registry *services.SessionRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.ResetPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.BadRequest(c, "Invalid Request: password must be at least 6 characters with 1 number and 1 special character")
			return
		}

		claims, err := services.ParseToken(req.Token)
		if err != nil {
			utils.TrackError("auth", "invalid_reset_token")
			utils.Unauthorized(c, "Invalid or expired reset token")
			return
		}

		tokenType, _ := claims["type"].(string)
		adminID, _ := claims["admin_id"].(string)
		if tokenType != "password_reset" || adminID == "" {
			utils.TrackError("auth", "wrong_token_type")
			utils.Unauthorized(c, "Invalid or expired reset token")
			return
		}

		hashedPassword, err := services.HashPassword(req.NewPassword)
		if err != nil {
			utils.BadRequest(c, err.Error())
			return
		}

		adminRepo := repository.GetAdminRepo(utils.MongoClient)
		modified, err := adminRepo.UpdatePassword(adminID, hashedPassword)
		if err != nil {
			utils.TrackError("database", "password_update_failed")
			utils.InternalError(c, "Failed to update password")
			return
		}
		if modified == 0 {
			utils.NotFound(c, "Account not found")
			return
		}

		revoked := registry.RevokeAllForAdmin(adminID)
		log.Printf("Password reset for admin %s revoked %d sessions", adminID, revoked)

		utils.Success(c, gin.H{"message": "Password updated. Please login again."})
	}
}
