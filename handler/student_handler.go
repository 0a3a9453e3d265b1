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

func StudentRegisterHandler(c *gin.Context) {
	var req dto.StudentRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.TrackError("auth", "invalid_student_registration")
		utils.BadRequest(c, "Invalid Request: password must be at least 6 characters with 1 number and 1 special character")
		return
	}

	studentRepo := repository.GetStudentRepo(utils.MongoClient)

	existing, err := studentRepo.FindByEmail(req.Email)
	if err != nil {
		utils.InternalError(c, "Failed to check registration")
		return
	}
	if existing != nil {
		utils.Conflict(c, "Email already registered")
		return
	}

	hashedPassword, err := services.HashPassword(req.Password)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	student := &model.Student{
		StudentID: utils.GenerateStudentID(),
		Name:      req.Name,
		Email:     req.Email,
		Password:  hashedPassword,
		Phone:     req.Phone,
		Institute: req.Institute,
		Status:    "active",
		CreatedAt: time.Now(),
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := studentRepo.AddStudent(ctx, student); err != nil {
		utils.TrackError("database", "student_creation_failed")
		utils.InternalError(c, "Failed to create account")
		return
	}

	utils.TrackAuthAttempt("success", "student_registration")
	utils.Created(c, gin.H{
		"student_id": student.StudentID,
		"name":       student.Name,
		"email":      student.Email,
	})
}

func StudentLoginHandler(c *gin.Context) {
	var req dto.StudentLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.TrackAuthAttempt("failure", "student_validation")
		utils.BadRequest(c, "Invalid Request")
		return
	}

	studentRepo := repository.GetStudentRepo(utils.MongoClient)
	student, err := studentRepo.FindByEmail(req.Email)
	if err != nil {
		utils.InternalError(c, "Failed to look up account")
		return
	}
	if student == nil {
		utils.TrackAuthAttempt("failure", "student_not_found")
		utils.Unauthorized(c, "Invalid credentials")
		return
	}

	checkPassword, err := services.VerifyPassword(student.Password, req.Password)
	if err != nil || !checkPassword {
		utils.TrackAuthAttempt("failure", "invalid_student_password")
		utils.Unauthorized(c, "Invalid credentials")
		return
	}

	token, err := services.GenerateStudentToken(student)
	if err != nil {
		utils.TrackError("auth", "student_token_generation")
		utils.InternalError(c, "Failed to issue token")
		return
	}

	utils.TrackAuthAttempt("success", "student_login")
	utils.Success(c, gin.H{
		"message": "Login successful",
		"token":   token,
		"student": gin.H{
			"id":    student.StudentID,
			"name":  student.Name,
			"email": student.Email,
		},
	})
}

func StudentProfileHandler(c *gin.Context) {
	studentID := c.GetString("student_id")

	studentRepo := repository.GetStudentRepo(utils.MongoClient)
	student, err := studentRepo.FindStudent(studentID)
	if err != nil {
		utils.InternalError(c, "Failed to fetch profile")
		return
	}
	if student == nil {
		utils.NotFound(c, "Account not found")
		return
	}

	utils.Success(c, student)
}

// StudentCertificatesHandler lists certificates issued to the caller's email.
func StudentCertificatesHandler(c *gin.Context) {
	email := c.GetString("student_email")

	certRepo := repository.GetCertificateRepo(utils.MongoClient)
	certs, err := certRepo.ListByStudentEmail(email)
	if err != nil {
		utils.InternalError(c, "Failed to fetch certificates")
		return
	}

	utils.Success(c, gin.H{"certificates": certs})
}
