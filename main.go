package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"main/handler"
	"main/middleware"
	"main/repository"
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Fatalf("Error loading .env file: %v", err)
	}

	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
		"ADMINS_COLLECTION",
		"CERTIFICATES_COLLECTION",
		"STUDENTS_COLLECTION",
		"COURSES_COLLECTION",
		"INSTITUTES_COLLECTION",
		"JWT_SECRET_KEY",
		"JWT_EXPIRATION_TIME",
		"PORT",
	}

	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	utils.InitValidator()
	utils.InitJWT()
	utils.InitMongoClient()
}

func setupRouter(registry *services.SessionRegistry, securityEvents *services.SecurityEvents) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestTracingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.RequestSizeLimiter(int64(utils.GetEnvAsInt("MAX_REQUEST_BYTES", 1<<20))))

	statsHandler := handler.NewStatsHandler(
		repository.GetCertificateRepo(utils.MongoClient),
		repository.GetStudentRepo(utils.MongoClient),
		repository.GetInstituteRepo(utils.MongoClient),
		registry,
		securityEvents,
	)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public routes (no authentication required)
	public := router.Group("/api")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/register", handler.RegistrationHandler)
			auth.POST("/login", handler.LoginHandler(registry, securityEvents))
			auth.POST("/logout", handler.LogoutHandler(registry))
			auth.POST("/forgot-password", handler.ForgotPasswordHandler)
			auth.POST("/reset-password", handler.ResetPasswordHandler(registry))
		}

		public.GET("/certificates/validate/:uuid", handler.ValidateCertificateHandler)

		students := public.Group("/students")
		{
			students.POST("/register", handler.StudentRegisterHandler)
			students.POST("/login", handler.StudentLoginHandler)
		}
	}

	// Admin routes (credential required)
	admin := router.Group("/api")
	admin.Use(middleware.AuthMiddleware(registry))
	{
		auth := admin.Group("/auth")
		{
			auth.GET("/sessions", handler.GetActiveSessions(registry))
			auth.DELETE("/sessions/:sessionId", handler.RevokeSessionHandler(registry))
			auth.POST("/sessions/logout-all", handler.LogoutAllSessions(registry))

			twoFactor := auth.Group("/2fa")
			{
				twoFactor.POST("/generate", handler.Generate2FASecretHandler)
				twoFactor.POST("/enable", handler.Enable2FAHandler)
				twoFactor.POST("/verify", handler.Verify2FAHandler)
				twoFactor.POST("/disable", handler.Disable2FAHandler)
				twoFactor.POST("/recovery", handler.UseRecoveryCodeHandler)
			}
		}

		certificates := admin.Group("/certificates")
		{
			certificates.POST("/", handler.CreateCertificateHandler)
			certificates.GET("/", handler.ListCertificatesHandler)
			certificates.GET("/:uuid", handler.GetCertificateHandler)
			certificates.DELETE("/:uuid", handler.DeleteCertificateHandler)
		}

		institutes := admin.Group("/institutes")
		{
			institutes.POST("/", handler.CreateInstituteHandler)
			institutes.GET("/", handler.ListInstitutesHandler)
			institutes.GET("/:name", handler.GetInstituteHandler)
		}

		stats := admin.Group("/stats")
		{
			stats.GET("/overview", statsHandler.Overview)
			stats.GET("/system", statsHandler.System)
		}
	}

	// Student routes (student token required)
	student := router.Group("/api/students")
	student.Use(middleware.StudentAuthMiddleware())
	{
		student.GET("/me", handler.StudentProfileHandler)
		student.GET("/me/certificates", handler.StudentCertificatesHandler)

		courses := student.Group("/me/courses")
		{
			courses.POST("/", handler.EnrollCourseHandler)
			courses.GET("/", handler.ListMyCoursesHandler)
			courses.PUT("/:courseId/progress", handler.UpdateCourseProgressHandler)
		}
	}

	return router
}

func main() {
	registry := services.NewSessionRegistry()
	registry.StartCleanupTask(utils.GetEnvAsDuration("SESSION_SWEEP_INTERVAL", 5*time.Minute))

	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		cache, err := services.NewSessionCache(redisURL)
		if err != nil {
			log.Printf("Warning: Redis session cache unavailable: %v", err)
		} else {
			services.GlobalSessionCache = cache
			log.Println("Redis session cache connected")
		}
	}

	securityEvents := services.NewSecurityEvents()

	router := setupRouter(registry, securityEvents)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	serverAddr := fmt.Sprintf(":%s", port)
	log.Printf("Server starting on %s", serverAddr)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
