package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/redcell/readiness-backend/internal/db"
	"github.com/redcell/readiness-backend/internal/handlers"
	"github.com/redcell/readiness-backend/internal/logger"
	"github.com/redcell/readiness-backend/internal/matching"
	"github.com/redcell/readiness-backend/internal/middleware"
	"github.com/redcell/readiness-backend/internal/observability"
	"github.com/redcell/readiness-backend/internal/reports"
	"github.com/redcell/readiness-backend/internal/repos"
	"github.com/redcell/readiness-backend/internal/server"
	"github.com/redcell/readiness-backend/internal/services"
	"github.com/redcell/readiness-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	allowOrigins := utils.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000", log)
	serviceName := utils.GetEnv("SERVICE_NAME", "readiness-backend", log)

	// Tracing
	ctx := context.Background()
	shutdownOTel := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: serviceName,
		Environment: utils.GetEnv("DEPLOY_ENV", "development", log),
		Version:     utils.GetEnv("SERVICE_VERSION", "", log),
	})
	if shutdownOTel != nil {
		defer shutdownOTel(ctx)
	}

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	rosterRepo := repos.NewRosterRepo(thePG, log)
	trainingRepo := repos.NewTrainingRepo(thePG, log)
	assessmentRepo := repos.NewAssessmentRepo(thePG, log)
	categoryRepo := repos.NewCategoryRepo(thePG, log)

	// Services
	log.Info("Setting up Services from main...")
	aliases := matching.DefaultAliases()
	fileService, err := services.NewFileService(log)
	if err != nil {
		log.Error("Could not init FileService", "error", err)
		os.Exit(1)
	}
	avatarService, err := services.NewAvatarService(log, fileService)
	if err != nil {
		log.Error("Could not init AvatarService", "error", err)
		os.Exit(1)
	}
	ldapService := services.NewLDAPService(log)
	authService := services.NewAuthService(thePG, log, rosterRepo, ldapService, avatarService, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second)
	rosterService := services.NewRosterService(thePG, log, rosterRepo, trainingRepo, avatarService)
	trainingService := services.NewTrainingService(thePG, log, aliases, rosterRepo, trainingRepo, fileService)
	assessmentService := services.NewAssessmentService(thePG, log, assessmentRepo, categoryRepo)
	reportService := services.NewReportService(thePG, log, rosterRepo, trainingRepo, reports.DefaultAnnualPolicy())

	// Handlers
	log.Info("Setting up handlers from main...")
	authHandler := handlers.NewAuthHandler(log, authService)
	rosterHandler := handlers.NewRosterHandler(log, rosterService)
	trainingHandler := handlers.NewTrainingHandler(log, trainingService)
	assessmentHandler := handlers.NewAssessmentHandler(log, assessmentService)
	reportHandler := handlers.NewReportHandler(log, reportService)

	// Middleware
	log.Info("Setting up middleware from main...")
	authMiddleware := middleware.NewAuthMiddleware(log, authService, rosterRepo)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		ServiceName:       serviceName,
		AllowOrigins:      strings.Split(allowOrigins, ","),
		AuthHandler:       authHandler,
		AuthMiddleware:    authMiddleware,
		RosterHandler:     rosterHandler,
		TrainingHandler:   trainingHandler,
		AssessmentHandler: assessmentHandler,
		ReportHandler:     reportHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Warn("Server failed", "error", err)
	}
}
