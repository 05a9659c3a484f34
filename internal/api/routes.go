package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"eduPath/internal/advisor"
	"eduPath/internal/api/middleware"
	"eduPath/internal/application"
	"eduPath/internal/auth"
	"eduPath/internal/database"
	"eduPath/internal/refdata"
	"eduPath/internal/storage"
)

// RegisterRoutes wires every API route under /v1.
func RegisterRoutes(
	router *gin.Engine,
	db *gorm.DB,
	asynqClient *asynq.Client,
	authService *auth.AuthService,
	redisClient *redis.Client,
	logger *slog.Logger,
	assembler *application.Assembler,
	advisorClient *advisor.Client,
	storageClient *storage.Client,
	allowedOrigins []string,
	loginRateLimitPerHour int,
) {
	authHandler := NewAuthHandler(db, authService, redisClient, logger, loginRateLimitPerHour)
	profileHandler := NewProfileHandler(db, logger)
	universityHandler := NewUniversityHandler(db, logger)
	applicationHandler := NewApplicationHandler(db, assembler, asynqClient, logger)
	consultationHandler := NewConsultationHandler(db, advisorClient, logger)
	documentHandler := NewDocumentHandler(storageClient, logger)
	adminHandler := NewAdminHandler(db, redisClient, logger)
	wsHandler := NewWsHandler(redisClient, authService, logger, allowedOrigins)

	authMiddleware := middleware.AuthMiddleware(authService)
	adminOnly := middleware.RequireRole(database.RoleAdmin)

	v1 := router.Group("/v1")
	{
		v1.GET("/ws", wsHandler.HandleConnection)

		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.POST("/logout", authHandler.Logout)
		}

		metaGroup := v1.Group("/meta")
		{
			metaGroup.GET("/reference", referenceData)
			metaGroup.GET("/slots", slotData)
		}

		v1.GET("/universities", universityHandler.List)
		v1.GET("/universities/:id", universityHandler.Get)

		profileGroup := v1.Group("/profile")
		profileGroup.Use(authMiddleware)
		{
			profileGroup.GET("", profileHandler.Get)
			profileGroup.PUT("", profileHandler.Update)
		}

		applicationGroup := v1.Group("/applications")
		applicationGroup.Use(authMiddleware)
		{
			applicationGroup.POST("", applicationHandler.Submit)
			applicationGroup.POST("/draft/validate", applicationHandler.ValidateDraft)
			applicationGroup.GET("", applicationHandler.List)
			applicationGroup.GET("/:id", applicationHandler.Get)
			applicationGroup.GET("/:id/timeline", applicationHandler.Timeline)
		}

		documentGroup := v1.Group("/documents")
		documentGroup.Use(authMiddleware)
		{
			documentGroup.GET("", documentHandler.List)
			documentGroup.GET("/link", documentHandler.DownloadLink)
			documentGroup.DELETE("", documentHandler.Delete)
		}

		consultationGroup := v1.Group("/consultations")
		consultationGroup.Use(authMiddleware)
		{
			consultationGroup.POST("", consultationHandler.Generate)
			consultationGroup.GET("/latest", consultationHandler.Latest)
			consultationGroup.GET("", consultationHandler.History)
		}

		adminGroup := v1.Group("/admin")
		adminGroup.Use(authMiddleware, adminOnly)
		{
			adminGroup.GET("/applications", adminHandler.ListApplications)
			adminGroup.GET("/applications/:id", adminHandler.GetApplication)
			adminGroup.PATCH("/applications/:id", adminHandler.UpdateApplication)

			adminGroup.GET("/universities", adminHandler.ListUniversities)
			adminGroup.POST("/universities", adminHandler.CreateUniversity)
			adminGroup.PUT("/universities/:id", adminHandler.UpdateUniversity)
			adminGroup.DELETE("/universities/:id", adminHandler.DeleteUniversity)
			adminGroup.POST("/universities/:id/programs", adminHandler.CreateProgram)
			adminGroup.PUT("/programs/:id", adminHandler.UpdateProgram)
			adminGroup.DELETE("/programs/:id", adminHandler.DeleteProgram)

			adminGroup.GET("/students", adminHandler.ListStudents)
		}
	}
}

// referenceData serves the dropdown option lists the application form uses.
func referenceData(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"countries":             refdata.Countries,
		"destination_countries": refdata.DestinationCountries,
		"study_levels":          refdata.StudyLevels,
		"gender_options":        refdata.GenderOptions,
		"visa_options":          refdata.VisaOptions,
	})
}

// slotData serves the document slot table so clients can render upload
// sections without hardcoding limits.
func slotData(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"slots":          application.SlotNames(),
		"mandatory":      application.MandatorySlots(),
		"max_file_bytes": application.MaxFileSize,
	})
}
