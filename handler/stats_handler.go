package handler

import (
	"log"
	"time"

	"main/model"
	"main/repository"
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// StatsHandler aggregates platform-wide figures for the admin dashboard.
type StatsHandler struct {
	CertRepo       *repository.CertificateRepo
	StudentRepo    *repository.StudentRepo
	InstituteRepo  *repository.InstituteRepo
	Registry       *services.SessionRegistry
	SecurityEvents *services.SecurityEvents
}

func NewStatsHandler(
	certRepo *repository.CertificateRepo,
	studentRepo *repository.StudentRepo,
	instituteRepo *repository.InstituteRepo,
	registry *services.SessionRegistry,
	securityEvents *services.SecurityEvents,
) *StatsHandler {
	return &StatsHandler{
		CertRepo:       certRepo,
		StudentRepo:    studentRepo,
		InstituteRepo:  instituteRepo,
		Registry:       registry,
		SecurityEvents: securityEvents,
	}
}

// Overview returns certificate, enrollment, and security totals. Partial
// failures degrade the response rather than failing it: a missing aggregate
// is logged and its field left zero.
func (h *StatsHandler) Overview(c *gin.Context) {
	adminID := c.GetString("admin_id")

	var stats model.OverviewStats

	total, err := h.CertRepo.CountCertificates()
	if err != nil {
		log.Printf("Warning: Failed to count certificates: %v", err)
	}
	stats.Certificates.Total = total

	if byCourse, err := h.CertRepo.CountByField("course"); err == nil {
		stats.Certificates.ByCourse = byCourse
	} else {
		log.Printf("Warning: Failed to aggregate certificates by course: %v", err)
	}

	if byInstitute, err := h.CertRepo.CountByField("institute"); err == nil {
		stats.Certificates.ByInstitute = byInstitute
	} else {
		log.Printf("Warning: Failed to aggregate certificates by institute: %v", err)
	}

	if monthly, err := h.CertRepo.MonthlyIssuance(); err == nil {
		stats.Certificates.Monthly = monthly
	} else {
		log.Printf("Warning: Failed to aggregate monthly issuance: %v", err)
	}

	if students, err := h.StudentRepo.CountStudents(); err == nil {
		stats.Students = students
	} else {
		log.Printf("Warning: Failed to count students: %v", err)
	}

	if institutes, err := h.InstituteRepo.CountInstitutes(); err == nil {
		stats.Institutes = institutes
	} else {
		log.Printf("Warning: Failed to count institutes: %v", err)
	}

	failedLogins, recentFailures := h.SecurityEvents.Snapshot()
	stats.Security = model.SecurityStats{
		ActiveSessions: h.Registry.CountActiveSessions(adminID),
		FailedLogins:   failedLogins,
		RecentFailures: recentFailures,
	}

	utils.Success(c, stats)
}

// System reports host CPU and memory usage.
func (h *StatsHandler) System(c *gin.Context) {
	used, total := utils.GetMemoryUsage()

	utils.Success(c, model.SystemStats{
		CPUUsagePercent: utils.GetCPUUsage(),
		MemoryUsedMB:    used,
		MemoryTotalMB:   total,
		CheckedAt:       time.Now(),
	})
}
