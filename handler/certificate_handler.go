package handler

import (
	"log"
	"time"

	"main/dto"
	"main/model"
	"main/repository"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// CreateCertificateHandler issues a certificate. The UUID may be supplied by
// the caller (for imports) or minted here; either way it must be unique.
// An institute named on the certificate but never registered gets a
// placeholder record so stats and filters stay consistent.
func CreateCertificateHandler(c *gin.Context) {
	var req dto.CreateCertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.TrackError("certificate", "invalid_request")
		utils.BadRequest(c, "Invalid Request")
		return
	}

	certRepo := repository.GetCertificateRepo(utils.MongoClient)

	uuid := req.UUID
	if uuid == "" {
		uuid = utils.GenerateCertificateUUID()
	} else {
		existing, err := certRepo.GetCertificate(uuid)
		if err != nil {
			utils.InternalError(c, "Failed to check certificate")
			return
		}
		if existing != nil {
			utils.TrackError("certificate", "duplicate_uuid")
			utils.Conflict(c, "Certificate with this UUID already exists")
			return
		}
	}

	instituteRepo := repository.GetInstituteRepo(utils.MongoClient)
	if _, err := instituteRepo.EnsurePlaceholder(req.Institute); err != nil {
		log.Printf("Warning: Failed to ensure institute record for %q: %v", req.Institute, err)
	}

	now := time.Now()
	cert := &model.Certificate{
		UUID:             uuid,
		Student:          req.Student,
		StudentEmail:     req.StudentEmail,
		Course:           req.Course,
		Institute:        req.Institute,
		Date:             req.Date,
		Grade:            req.Grade,
		Instructor:       req.Instructor,
		Status:           model.CertificateIssued,
		GeneratedByAdmin: true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := certRepo.CreateCertificate(cert); err != nil {
		utils.TrackError("database", "certificate_creation_failed")
		utils.InternalError(c, "Failed to create certificate")
		return
	}

	if req.StudentEmail != "" {
		courseRepo := repository.GetCourseRepo(utils.MongoClient)
		if err := courseRepo.AttachCertificate(req.StudentEmail, req.Course, uuid); err != nil {
			log.Printf("Warning: Failed to link certificate %s to enrollment: %v", uuid, err)
		}
	}

	utils.Created(c, cert)
}

// normalizeListQuery clamps page and limit to the values the repository will
// actually query with, so the pagination arithmetic below matches the rows
// returned. The `default=` binding tag only covers absent parameters; an
// explicit ?limit=0 or ?limit=5000 arrives here as-is.
func normalizeListQuery(query *dto.CertificateListQuery) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit < 1 || query.Limit > 100 {
		query.Limit = 10
	}
}

// pageCount returns the number of pages needed for total rows at the given
// page size.
func pageCount(total int64, limit int) int64 {
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return pages
}

// ListCertificatesHandler returns a filtered, paginated certificate listing.
func ListCertificatesHandler(c *gin.Context) {
	var query dto.CertificateListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.BadRequest(c, "Invalid query parameters")
		return
	}
	normalizeListQuery(&query)

	certRepo := repository.GetCertificateRepo(utils.MongoClient)
	certs, total, err := certRepo.ListCertificates(query.Institute, query.Course, query.Student, query.Page, query.Limit)
	if err != nil {
		utils.TrackError("database", "certificate_list_failed")
		utils.InternalError(c, "Failed to fetch certificates")
		return
	}

	utils.Success(c, gin.H{
		"certificates": certs,
		"total":        total,
		"page":         query.Page,
		"limit":        query.Limit,
		"total_pages":  pageCount(total, query.Limit),
	})
}

func GetCertificateHandler(c *gin.Context) {
	uuid := c.Param("uuid")

	certRepo := repository.GetCertificateRepo(utils.MongoClient)
	cert, err := certRepo.GetCertificate(uuid)
	if err != nil {
		utils.InternalError(c, "Failed to fetch certificate")
		return
	}
	if cert == nil {
		utils.NotFound(c, "Certificate not found")
		return
	}

	utils.Success(c, cert)
}

func DeleteCertificateHandler(c *gin.Context) {
	uuid := c.Param("uuid")

	certRepo := repository.GetCertificateRepo(utils.MongoClient)
	deleted, err := certRepo.DeleteCertificate(uuid)
	if err != nil {
		utils.InternalError(c, "Failed to delete certificate")
		return
	}
	if !deleted {
		utils.NotFound(c, "Certificate not found")
		return
	}

	utils.Success(c, gin.H{"message": "Certificate deleted"})
}

// ValidateCertificateHandler is the public verification endpoint. Every
// successful lookup is recorded in the certificate's validation log.
func ValidateCertificateHandler(c *gin.Context) {
	uuid := c.Param("uuid")

	certRepo := repository.GetCertificateRepo(utils.MongoClient)
	cert, err := certRepo.GetCertificate(uuid)
	if err != nil {
		utils.InternalError(c, "Failed to validate certificate")
		return
	}
	if cert == nil {
		utils.TrackCertificateOperation("validate_miss")
		utils.NotFound(c, "Certificate not found")
		return
	}

	record := model.ValidationRecord{
		ValidatedAt: time.Now(),
		IPAddress:   c.ClientIP(),
		ClientAgent: utils.DescribeDevice(c.Request.UserAgent()),
	}
	if err := certRepo.AppendValidation(uuid, record); err != nil {
		log.Printf("Warning: Failed to record validation for %s: %v", uuid, err)
	}

	utils.Success(c, gin.H{
		"valid":       cert.Status == model.CertificateIssued,
		"certificate": cert,
	})
}
