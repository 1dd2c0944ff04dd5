package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/somnia-app/somnia-api/internal/domain"
	"github.com/somnia-app/somnia-api/internal/llm"
)

func newRecommendationFixture(t *testing.T) (RecommendationService, uuid.UUID, *MockRiskScoreRepository, *MockRecommendationsLLM) {
	t.Helper()

	userRepo := NewMockUserRepository()
	user := &domain.User{Timezone: "UTC"}
	if err := userRepo.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	sessionRepo := NewMockSleepSessionRepository()
	analytics := NewAnalyticsService(sessionRepo, userRepo, zerolog.Nop())
	riskRepo := NewMockRiskScoreRepository()
	llmClient := &MockRecommendationsLLM{
		output: &domain.RecommendationsOutput{
			Summary:      "sleep is stable",
			Observations: []string{"consistent bedtimes"},
			Guidance:     []string{"keep the schedule"},
		},
	}

	svc := NewRecommendationService(analytics, llmClient, riskRepo, userRepo)
	return svc, user.ID, riskRepo, llmClient
}

func TestRecommendationService_Generate(t *testing.T) {
	svc, userID, riskRepo, _ := newRecommendationFixture(t)

	riskRepo.Create(context.Background(), &domain.RiskScore{
		UserID:    userID,
		Risk:      0.35,
		CreatedAt: time.Now().UTC(),
		Source:    domain.RiskScoreSourceModel,
	})

	response, err := svc.Generate(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if response.Recommendations.Summary != "sleep is stable" {
		t.Errorf("unexpected output: %+v", response.Recommendations)
	}
	if response.Context.LatestRisk == nil || response.Context.LatestRisk.Risk != 0.35 {
		t.Errorf("latest risk not attached: %+v", response.Context.LatestRisk)
	}
	if len(response.Context.WeeklyPattern) != 7 {
		t.Errorf("weekly pattern entries = %d, want 7", len(response.Context.WeeklyPattern))
	}
}

func TestRecommendationService_GenerateWithoutRiskHistory(t *testing.T) {
	svc, userID, _, _ := newRecommendationFixture(t)

	response, err := svc.Generate(context.Background(), userID)
	if err != nil {
		t.Fatalf("a user with no risk history still gets recommendations: %v", err)
	}
	if response.Context.LatestRisk != nil {
		t.Errorf("LatestRisk should be nil, got %+v", response.Context.LatestRisk)
	}
}

func TestRecommendationService_LLMUnavailable(t *testing.T) {
	svc, userID, _, llmClient := newRecommendationFixture(t)
	llmClient.err = llm.ErrOpenAIUnavailable

	if _, err := svc.Generate(context.Background(), userID); !errors.Is(err, llm.ErrOpenAIUnavailable) {
		t.Fatalf("expected ErrOpenAIUnavailable, got %v", err)
	}
}

func TestRecommendationService_UnknownUser(t *testing.T) {
	svc, _, _, _ := newRecommendationFixture(t)

	if _, err := svc.Generate(context.Background(), uuid.New()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
