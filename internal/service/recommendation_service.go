package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/somnia-app/somnia-api/internal/domain"
	"github.com/somnia-app/somnia-api/internal/llm"
	"github.com/somnia-app/somnia-api/internal/repository"
)

// RecommendationService generates behavioral sleep recommendations.
type RecommendationService interface {
	// Generate creates recommendations for a user from their statistics,
	// weekly pattern, and latest risk score.
	Generate(ctx context.Context, userID uuid.UUID) (*domain.RecommendationsResponse, error)
}

type recommendationService struct {
	analytics AnalyticsService
	llmClient llm.RecommendationsLLM
	riskRepo  repository.RiskScoreRepository
	userRepo  repository.UserRepository
}

// NewRecommendationService creates a new RecommendationService.
func NewRecommendationService(
	analytics AnalyticsService,
	llmClient llm.RecommendationsLLM,
	riskRepo repository.RiskScoreRepository,
	userRepo repository.UserRepository,
) RecommendationService {
	return &recommendationService{
		analytics: analytics,
		llmClient: llmClient,
		riskRepo:  riskRepo,
		userRepo:  userRepo,
	}
}

func (s *recommendationService) Generate(ctx context.Context, userID uuid.UUID) (*domain.RecommendationsResponse, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	statistics, err := s.analytics.Statistics(ctx, userID, nil)
	if err != nil {
		return nil, err
	}

	pattern, err := s.analytics.WeeklyPattern(ctx, userID, nil)
	if err != nil {
		return nil, err
	}

	recCtx := &domain.RecommendationContext{
		Statistics:    *statistics,
		WeeklyPattern: pattern.Entries,
	}

	// The latest risk score is optional context; a user with no history
	// still gets recommendations.
	latest, err := s.riskRepo.Latest(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if latest != nil {
		response := latest.ToResponse()
		recCtx.LatestRisk = &response
	}

	output, err := s.llmClient.GenerateRecommendations(ctx, recCtx)
	if err != nil {
		return nil, err
	}

	return &domain.RecommendationsResponse{
		Recommendations: *output,
		Context:         *recCtx,
	}, nil
}
