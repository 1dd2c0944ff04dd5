package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	_ "github.com/somnia-app/somnia-api/docs"
	"github.com/somnia-app/somnia-api/internal/api/handler"
	"github.com/somnia-app/somnia-api/internal/api/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	logger                zerolog.Logger
	userHandler           *handler.UserHandler
	sleepSessionHandler   *handler.SleepSessionHandler
	riskHandler           *handler.RiskHandler
	analyticsHandler      *handler.AnalyticsHandler
	recommendationHandler *handler.RecommendationHandler
}

func NewRouter(
	logger zerolog.Logger,
	userHandler *handler.UserHandler,
	sleepSessionHandler *handler.SleepSessionHandler,
	riskHandler *handler.RiskHandler,
	analyticsHandler *handler.AnalyticsHandler,
	recommendationHandler *handler.RecommendationHandler,
) *Router {
	return &Router{
		logger:                logger,
		userHandler:           userHandler,
		sleepSessionHandler:   sleepSessionHandler,
		riskHandler:           riskHandler,
		analyticsHandler:      analyticsHandler,
		recommendationHandler: recommendationHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestLogger(rt.logger))
	r.Use(middleware.Tracing)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Users
		r.Route("/users", func(r chi.Router) {
			r.Post("/", rt.userHandler.Create)
			r.Get("/{userId}", rt.userHandler.GetByID)

			// Sleep sessions (nested under users)
			r.Get("/{userId}/sleep-sessions", rt.sleepSessionHandler.List)

			// Insomnia risk
			r.Route("/{userId}/insomnia-risk", func(r chi.Router) {
				r.Post("/", rt.riskHandler.Compute)
				r.Get("/latest", rt.riskHandler.Latest)
				r.Get("/history", rt.riskHandler.History)
			})

			// Sleep analytics; POST variants accept client-read sessions
			r.Route("/{userId}/sleep", func(r chi.Router) {
				r.Get("/weekly-pattern", rt.analyticsHandler.WeeklyPattern)
				r.Post("/weekly-pattern", rt.analyticsHandler.WeeklyPattern)
				r.Get("/statistics", rt.analyticsHandler.Statistics)
				r.Post("/statistics", rt.analyticsHandler.Statistics)
				r.Get("/history", rt.analyticsHandler.HistorySummary)
				r.Post("/history", rt.analyticsHandler.HistorySummary)
				r.Get("/recommendations", rt.recommendationHandler.Generate)
			})
		})
	})

	return r
}
