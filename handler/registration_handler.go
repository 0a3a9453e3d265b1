package handler

import (
	"context"
	"time"

	"main/dto"
	"main/model"
	"main/repository"
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func RegistrationHandler(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.TrackError("auth", "invalid_registration")
		utils.BadRequest(c, "Invalid Request: password must be at least 6 characters with 1 number and 1 special character")
		return
	}

	adminRepo := repository.GetAdminRepo(utils.MongoClient)

	exists, err := adminRepo.Exists(req.Username, req.Email)
	if err != nil {
		utils.TrackError("database", "registration_check_failed")
		utils.InternalError(c, "Failed to check registration")
		return
	}
	if exists {
		utils.TrackError("auth", "duplicate_registration")
		utils.Conflict(c, "Username or email already registered")
		return
	}

	hashedPassword, err := services.HashPassword(req.Password)
	if err != nil {
		utils.TrackError("auth", "password_hashing")
		utils.BadRequest(c, err.Error())
		return
	}

	admin := &model.Admin{
		AdminID:   utils.GenerateAdminID(),
		Username:  req.Username,
		Email:     req.Email,
		Password:  hashedPassword,
		CreatedAt: time.Now(),
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := adminRepo.AddAdmin(ctx, admin); err != nil {
		utils.TrackError("database", "admin_creation_failed")
		utils.InternalError(c, "Failed to create account")
		return
	}

	utils.TrackAuthAttempt("success", "registration")
	utils.Created(c, gin.H{
		"admin_id": admin.AdminID,
		"username": admin.Username,
		"email":    admin.Email,
	})
}
