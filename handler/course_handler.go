package handler

import (
	"time"

	"main/dto"
	"main/model"
	"main/repository"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// EnrollCourseHandler creates an enrollment record for the calling student.
func EnrollCourseHandler(c *gin.Context) {
	studentID := c.GetString("student_id")
	studentEmail := c.GetString("student_email")

	var req dto.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid Request")
		return
	}

	courseRepo := repository.GetCourseRepo(utils.MongoClient)

	existing, err := courseRepo.ListForStudent(studentID)
	if err != nil {
		utils.InternalError(c, "Failed to check enrollments")
		return
	}
	for _, course := range existing {
		if course.CourseName == req.CourseName && course.Status != model.CourseDropped {
			utils.Conflict(c, "Already enrolled in this course")
			return
		}
	}

	course := &model.Course{
		CourseID:     utils.GenerateStudentID(),
		StudentID:    studentID,
		StudentEmail: studentEmail,
		CourseName:   req.CourseName,
		CourseCode:   req.CourseCode,
		Institute:    req.Institute,
		Status:       model.CoursePending,
		Progress:     0,
		EnrolledAt:   time.Now(),
	}

	if err := courseRepo.AddEnrollment(course); err != nil {
		utils.TrackError("database", "enrollment_failed")
		utils.InternalError(c, "Failed to enroll")
		return
	}

	utils.Created(c, course)
}

func ListMyCoursesHandler(c *gin.Context) {
	studentID := c.GetString("student_id")

	courseRepo := repository.GetCourseRepo(utils.MongoClient)
	courses, err := courseRepo.ListForStudent(studentID)
	if err != nil {
		utils.InternalError(c, "Failed to fetch courses")
		return
	}

	utils.Success(c, gin.H{"courses": courses})
}

// UpdateCourseProgressHandler advances the caller's progress on a course.
// Progress of 100 marks the enrollment completed.
func UpdateCourseProgressHandler(c *gin.Context) {
	studentID := c.GetString("student_id")
	courseID := c.Param("courseId")

	var req dto.CourseProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid Request: progress must be between 0 and 100")
		return
	}

	courseRepo := repository.GetCourseRepo(utils.MongoClient)
	matched, err := courseRepo.UpdateProgress(studentID, courseID, req.Progress, req.Grade)
	if err != nil {
		utils.InternalError(c, "Failed to update progress")
		return
	}
	if !matched {
		utils.NotFound(c, "Enrollment not found")
		return
	}

	utils.Success(c, gin.H{
		"message":  "Progress updated",
		"progress": req.Progress,
	})
}
