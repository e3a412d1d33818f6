package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/redcell/readiness-backend/internal/handlers"
	"github.com/redcell/readiness-backend/internal/middleware"
)

type RouterConfig struct {
	ServiceName       string
	AllowOrigins      []string
	AuthHandler       *handlers.AuthHandler
	AuthMiddleware    *middleware.AuthMiddleware
	RosterHandler     *handlers.RosterHandler
	TrainingHandler   *handlers.TrainingHandler
	AssessmentHandler *handlers.AssessmentHandler
	ReportHandler     *handlers.ReportHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(otelgin.Middleware(cfg.ServiceName))

	// Cors
	allowOrigins := cfg.AllowOrigins
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"http://localhost:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/login", cfg.AuthHandler.Login)

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Auth
	protected.GET("/me", cfg.AuthHandler.Me)
	// Roster
	protected.GET("/roster", cfg.RosterHandler.List)
	protected.GET("/roster/:id", cfg.RosterHandler.Get)
	protected.POST("/roster/:id/avatar", cfg.RosterHandler.SetAvatar)
	// Training
	protected.GET("/training", cfg.TrainingHandler.List)
	protected.POST("/training/import", cfg.TrainingHandler.Import)
	// Assessments
	protected.GET("/assessments", cfg.AssessmentHandler.List)
	protected.GET("/assessments/:id", cfg.AssessmentHandler.Get)
	// Reports
	protected.GET("/reports/annual", cfg.ReportHandler.Annual)
	protected.GET("/reports/quarterly", cfg.ReportHandler.Quarterly)

	// ===============
	// || Admin     ||
	// ===============
	admin := protected.Group("/")
	admin.Use(cfg.AuthMiddleware.AdminRequired())
	admin.POST("/roster", cfg.RosterHandler.Create)
	admin.PUT("/roster/:id", cfg.RosterHandler.Update)
	admin.DELETE("/roster/:id", cfg.RosterHandler.Deactivate)
	admin.POST("/assessments", cfg.AssessmentHandler.Create)
	admin.POST("/assessments/import", cfg.AssessmentHandler.CreateFromCSV)
	admin.POST("/assessments/:id/questions", cfg.AssessmentHandler.ImportQuestions)
	admin.DELETE("/assessments/:id", cfg.AssessmentHandler.Delete)

	return router
}
