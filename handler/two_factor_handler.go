package handler

import (
	"main/repository"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/pquerna/otp/totp"
)

type TwoFactorRequest struct {
	Code string `json:"code" binding:"required"`
}

type RecoveryCodeRequest struct {
	RecoveryCode string `json:"recovery_code" binding:"required"`
}

// Generate2FASecretHandler mints a new TOTP secret for the caller. The secret
// is returned along with the otpauth URL for the authenticator app; 2FA stays
// disabled until the first code is confirmed via Enable2FAHandler.
func Generate2FASecretHandler(c *gin.Context) {
	adminID := c.GetString("admin_id")
	email := c.GetString("email")

	adminRepo := repository.GetAdminRepo(utils.MongoClient)
	admin, err := adminRepo.FindAdmin(adminID)
	if err != nil || admin == nil {
		utils.TrackError("auth", "2fa_admin_lookup")
		utils.InternalError(c, "Failed to look up account")
		return
	}
	if admin.TwoFactorEnabled {
		utils.BadRequest(c, "2FA is already enabled")
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      utils.TokenIssuer,
		AccountName: email,
	})
	if err != nil {
		utils.TrackError("auth", "2fa_secret_generation")
		utils.InternalError(c, "Failed to generate 2FA secret")
		return
	}

	utils.Success(c, gin.H{
		"secret":      key.Secret(),
		"otpauth_url": key.URL(),
	})
}

// Enable2FAHandler confirms the secret with a live code and switches 2FA on.
// Recovery codes are returned exactly once; only their hashes are stored.
func Enable2FAHandler(c *gin.Context) {
	adminID := c.GetString("admin_id")

	var req struct {
		Secret string `json:"secret" binding:"required"`
		Code   string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid Request")
		return
	}

	if !totp.Validate(req.Code, req.Secret) {
		utils.TrackError("auth", "invalid_2fa_code")
		utils.Unauthorized(c, "Invalid 2FA code")
		return
	}

	recoveryCodes, err := utils.GenerateRecoveryCodes()
	if err != nil {
		utils.TrackError("auth", "recovery_code_generation")
		utils.InternalError(c, "Failed to generate recovery codes")
		return
	}

	adminRepo := repository.GetAdminRepo(utils.MongoClient)
	if err := adminRepo.Enable2FA(adminID, req.Secret, utils.HashRecoveryCodes(recoveryCodes)); err != nil {
		utils.TrackError("database", "2fa_enable_failed")
		utils.InternalError(c, "Failed to enable 2FA")
		return
	}

	utils.Success(c, gin.H{
		"message":        "2FA enabled",
		"recovery_codes": recoveryCodes,
	})
}

// Verify2FAHandler checks a code against the caller's stored secret.
func Verify2FAHandler(c *gin.Context) {
	adminID := c.GetString("admin_id")

	var req TwoFactorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid Request")
		return
	}

	adminRepo := repository.GetAdminRepo(utils.MongoClient)
	admin, err := adminRepo.FindAdmin(adminID)
	if err != nil || admin == nil {
		utils.InternalError(c, "Failed to look up account")
		return
	}
	if !admin.TwoFactorEnabled {
		utils.BadRequest(c, "2FA is not enabled")
		return
	}

	if !totp.Validate(req.Code, admin.TwoFactorSecret) {
		utils.TrackError("auth", "invalid_2fa_code")
		utils.Unauthorized(c, "Invalid 2FA code")
		return
	}

	utils.Success(c, gin.H{"message": "Code verified"})
}

// Disable2FAHandler switches 2FA off after confirming a live code.
func Disable2FAHandler(c *gin.Context) {
	adminID := c.GetString("admin_id")

	var req TwoFactorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid Request")
		return
	}

	adminRepo := repository.GetAdminRepo(utils.MongoClient)
	admin, err := adminRepo.FindAdmin(adminID)
	if err != nil || admin == nil {
		utils.InternalError(c, "Failed to look up account")
		return
	}
	if !admin.TwoFactorEnabled {
		utils.BadRequest(c, "2FA is not enabled")
		return
	}

	if !totp.Validate(req.Code, admin.TwoFactorSecret) {
		utils.TrackError("auth", "invalid_2fa_code")
		utils.Unauthorized(c, "Invalid 2FA code")
		return
	}

	if err := adminRepo.Disable2FA(adminID); err != nil {
		utils.TrackError("database", "2fa_disable_failed")
		utils.InternalError(c, "Failed to disable 2FA")
		return
	}

	utils.Success(c, gin.H{"message": "2FA disabled"})
}

// UseRecoveryCodeHandler burns a recovery code in place of a TOTP code.
// Each code is single-use: the matching hash is removed on success.
func UseRecoveryCodeHandler(c *gin.Context) {
	adminID := c.GetString("admin_id")

	var req RecoveryCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid Request")
		return
	}

	adminRepo := repository.GetAdminRepo(utils.MongoClient)
	admin, err := adminRepo.FindAdmin(adminID)
	if err != nil || admin == nil {
		utils.InternalError(c, "Failed to look up account")
		return
	}
	if !admin.TwoFactorEnabled {
		utils.BadRequest(c, "2FA is not enabled")
		return
	}

	hashed := utils.HashString(req.RecoveryCode)
	remaining := make([]string, 0, len(admin.RecoveryCodes))
	matched := false
	for _, code := range admin.RecoveryCodes {
		if !matched && code == hashed {
			matched = true
			continue
		}
		remaining = append(remaining, code)
	}

	if !matched {
		utils.TrackError("auth", "invalid_recovery_code")
		utils.Unauthorized(c, "Invalid recovery code")
		return
	}

	if err := adminRepo.UpdateRecoveryCodes(adminID, remaining); err != nil {
		utils.TrackError("database", "recovery_code_update_failed")
		utils.InternalError(c, "Failed to update recovery codes")
		return
	}

	utils.Success(c, gin.H{
		"message":         "Recovery code accepted",
		"codes_remaining": len(remaining),
	})
}
