package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/somnia-app/somnia-api/internal/domain"
)

// MockSleepSessionService is a mock implementation of SleepSessionService
type MockSleepSessionService struct {
	listFunc func(ctx context.Context, userID uuid.UUID, filter domain.SleepSessionFilter) (*domain.SleepSessionListResponse, error)
}

func (m *MockSleepSessionService) List(ctx context.Context, userID uuid.UUID, filter domain.SleepSessionFilter) (*domain.SleepSessionListResponse, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, userID, filter)
	}
	return &domain.SleepSessionListResponse{
		Data:       []domain.SleepSessionResponse{},
		Pagination: domain.PaginationResponse{HasMore: false},
	}, nil
}

// MockRiskService is a mock implementation of RiskService
type MockRiskService struct {
	computeFunc func(ctx context.Context, userID uuid.UUID, windowDays int) (*domain.RiskScoreResponse, error)
	latestFunc  func(ctx context.Context, userID uuid.UUID) (*domain.RiskScoreResponse, error)
	historyFunc func(ctx context.Context, userID uuid.UUID, maxDays int) (*domain.RiskHistoryResponse, error)
}

func (m *MockRiskService) ComputeAndStore(ctx context.Context, userID uuid.UUID, windowDays int) (*domain.RiskScoreResponse, error) {
	if m.computeFunc != nil {
		return m.computeFunc(ctx, userID, windowDays)
	}
	return &domain.RiskScoreResponse{ID: uuid.New(), UserID: userID, Risk: 0.5, WindowDays: 21, Source: domain.RiskScoreSourceModel}, nil
}

func (m *MockRiskService) Latest(ctx context.Context, userID uuid.UUID) (*domain.RiskScoreResponse, error) {
	if m.latestFunc != nil {
		return m.latestFunc(ctx, userID)
	}
	return nil, domain.ErrNotFound
}

func (m *MockRiskService) History(ctx context.Context, userID uuid.UUID, maxDays int) (*domain.RiskHistoryResponse, error) {
	if m.historyFunc != nil {
		return m.historyFunc(ctx, userID, maxDays)
	}
	return &domain.RiskHistoryResponse{UserID: userID, MaxDays: maxDays, Days: []domain.RiskHistoryDay{}}, nil
}

// MockAnalyticsService is a mock implementation of AnalyticsService
type MockAnalyticsService struct {
	weeklyPatternFunc func(ctx context.Context, userID uuid.UUID, req *domain.SessionListRequest) (*domain.WeeklyPatternResponse, error)
	statisticsFunc    func(ctx context.Context, userID uuid.UUID, req *domain.SessionListRequest) (*domain.StatisticsSummary, error)
	historyFunc       func(ctx context.Context, userID uuid.UUID, req *domain.SessionListRequest) (*domain.SleepHistorySummary, error)
}

func (m *MockAnalyticsService) WeeklyPattern(ctx context.Context, userID uuid.UUID, req *domain.SessionListRequest) (*domain.WeeklyPatternResponse, error) {
	if m.weeklyPatternFunc != nil {
		return m.weeklyPatternFunc(ctx, userID, req)
	}
	return &domain.WeeklyPatternResponse{Fidelity: domain.FidelityUnavailable, Entries: make([]domain.WeeklyPatternEntry, 7)}, nil
}

func (m *MockAnalyticsService) Statistics(ctx context.Context, userID uuid.UUID, req *domain.SessionListRequest) (*domain.StatisticsSummary, error) {
	if m.statisticsFunc != nil {
		return m.statisticsFunc(ctx, userID, req)
	}
	return &domain.StatisticsSummary{Fidelity: domain.FidelityUnavailable}, nil
}

func (m *MockAnalyticsService) HistorySummary(ctx context.Context, userID uuid.UUID, req *domain.SessionListRequest) (*domain.SleepHistorySummary, error) {
	if m.historyFunc != nil {
		return m.historyFunc(ctx, userID, req)
	}
	return &domain.SleepHistorySummary{Fidelity: domain.FidelityUnavailable}, nil
}

// MockRecommendationService is a mock implementation of RecommendationService
type MockRecommendationService struct {
	generateFunc func(ctx context.Context, userID uuid.UUID) (*domain.RecommendationsResponse, error)
}

func (m *MockRecommendationService) Generate(ctx context.Context, userID uuid.UUID) (*domain.RecommendationsResponse, error) {
	if m.generateFunc != nil {
		return m.generateFunc(ctx, userID)
	}
	return &domain.RecommendationsResponse{}, nil
}
