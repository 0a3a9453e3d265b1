package handler

import (
	"time"

	"main/model"
	"main/repository"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type CreateInstituteRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Contact     string `json:"contact"`
	Location    string `json:"location"`
	Type        string `json:"type"`
	Website     string `json:"website"`
	Description string `json:"description"`
}

func CreateInstituteHandler(c *gin.Context) {
	var req CreateInstituteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid Request")
		return
	}

	instituteRepo := repository.GetInstituteRepo(utils.MongoClient)

	existing, err := instituteRepo.FindByName(req.Name)
	if err != nil {
		utils.InternalError(c, "Failed to check institute")
		return
	}
	if existing != nil {
		utils.Conflict(c, "Institute already registered")
		return
	}

	instituteType := req.Type
	if instituteType == "" {
		instituteType = "training_center"
	}

	institute := &model.Institute{
		InstituteID: utils.GenerateStudentID(),
		Name:        req.Name,
		Email:       req.Email,
		Contact:     req.Contact,
		Location:    req.Location,
		Type:        instituteType,
		Status:      "active",
		Website:     req.Website,
		Description: req.Description,
		CreatedAt:   time.Now(),
	}

	if err := instituteRepo.AddInstitute(institute); err != nil {
		utils.TrackError("database", "institute_creation_failed")
		utils.InternalError(c, "Failed to create institute")
		return
	}

	utils.Created(c, institute)
}

func ListInstitutesHandler(c *gin.Context) {
	instituteRepo := repository.GetInstituteRepo(utils.MongoClient)
	institutes, err := instituteRepo.ListInstitutes()
	if err != nil {
		utils.InternalError(c, "Failed to fetch institutes")
		return
	}

	utils.Success(c, gin.H{"institutes": institutes})
}

func GetInstituteHandler(c *gin.Context) {
	name := c.Param("name")

	instituteRepo := repository.GetInstituteRepo(utils.MongoClient)
	institute, err := instituteRepo.FindByName(name)
	if err != nil {
		utils.InternalError(c, "Failed to fetch institute")
		return
	}
	if institute == nil {
		utils.NotFound(c, "Institute not found")
		return
	}

	utils.Success(c, institute)
}
