// SOMNiA API
//
// Health-signal aggregation, sleep analytics, and insomnia risk scoring.
//
//	@title			SOMNiA API
//	@version		1.0
//	@description	Aggregates wearable health signals into daily feature vectors, scores sleep quality, and computes insomnia risk via an external predictive model.
//
//	@BasePath	/v1
//
//	@tag.name			users
//	@tag.description	User management endpoints
//
//	@tag.name			sleep-sessions
//	@tag.description	Sleep session listing with derived quality scores
//
//	@tag.name			insomnia-risk
//	@tag.description	Risk computation and history endpoints
//
//	@tag.name			sleep-analytics
//	@tag.description	Weekly pattern, statistics, and history summaries
//
//	@tag.name			recommendations
//	@tag.description	LLM-generated behavioral recommendations
package main

import (
	"context"
	"net/http"

	"github.com/somnia-app/somnia-api/internal/api"
	"github.com/somnia-app/somnia-api/internal/api/handler"
	"github.com/somnia-app/somnia-api/internal/config"
	"github.com/somnia-app/somnia-api/internal/inference"
	"github.com/somnia-app/somnia-api/internal/llm"
	"github.com/somnia-app/somnia-api/internal/logging"
	"github.com/somnia-app/somnia-api/internal/repository"
	"github.com/somnia-app/somnia-api/internal/seed"
	"github.com/somnia-app/somnia-api/internal/service"
	"github.com/somnia-app/somnia-api/internal/telemetry"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger := logging.NewLogger(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	// Initialize tracing (no-op when OTLP_ENDPOINT is unset)
	shutdownTracer, err := telemetry.InitTracer(context.Background(), cfg, "somnia-api")
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize tracer")
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			logger.Warn().Err(err).Msg("Failed to shut down tracer")
		}
	}()

	// Connect to database
	db, err := config.NewDatabase(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	// Auto-migrate database schema
	if err := db.AutoMigrate(seed.Models()...); err != nil {
		logger.Fatal().Err(err).Msg("Failed to migrate database")
	}
	logger.Info().Msg("Database migration completed")

	if cfg.Seed {
		logger.Info().Msg("Seeding database with sample data (SEED=true)")
		if err := seed.Run(db); err != nil {
			logger.Fatal().Err(err).Msg("Failed to seed database")
		}
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSleepSessionRepository(db)
	signalRepo := repository.NewSignalRepository(db)
	riskRepo := repository.NewRiskScoreRepository(db)

	// Initialize the predictive model client
	inferenceClient := inference.NewClient(cfg.AIServiceURL, cfg.AIServiceTimeout)

	// Initialize OpenAI client (may be nil if not configured)
	openaiClient := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIRecommendationsModel)
	if openaiClient == nil {
		logger.Warn().Msg("OpenAI API key not configured, recommendations endpoint will be unavailable")
	}

	// Initialize services
	userService := service.NewUserService(userRepo)
	sessionService := service.NewSleepSessionService(sessionRepo, userRepo)
	featureService := service.NewFeatureService(signalRepo, sessionRepo, logger)
	riskService := service.NewRiskService(featureService, inferenceClient, riskRepo, userRepo, logger)
	analyticsService := service.NewAnalyticsService(sessionRepo, userRepo, logger)
	recommendationService := service.NewRecommendationService(analyticsService, openaiClient, riskRepo, userRepo)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userService)
	sessionHandler := handler.NewSleepSessionHandler(sessionService)
	riskHandler := handler.NewRiskHandler(riskService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
	recommendationHandler := handler.NewRecommendationHandler(recommendationService)

	// Setup router
	router := api.NewRouter(logger, userHandler, sessionHandler, riskHandler, analyticsHandler, recommendationHandler)
	routerHandler := router.Setup()

	// Start server
	addr := ":" + cfg.Port
	logger.Info().Str("addr", addr).Msg("Starting server")
	if err := http.ListenAndServe(addr, routerHandler); err != nil {
		logger.Fatal().Err(err).Msg("Server failed")
	}
}
