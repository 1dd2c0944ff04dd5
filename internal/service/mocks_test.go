package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/somnia-app/somnia-api/internal/domain"
	"github.com/somnia-app/somnia-api/internal/inference"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	users map[uuid.UUID]*domain.User
	err   error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[uuid.UUID]*domain.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.err != nil {
		return m.err
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	user, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (m *MockUserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.users[id]
	return ok, nil
}

func (m *MockUserRepository) SetError(err error) {
	m.err = err
}

// MockSleepSessionRepository is a mock implementation of SleepSessionRepository
type MockSleepSessionRepository struct {
	sessions   []domain.SleepSession
	basic      *domain.BasicSleepStats
	listErr    error
	rangeErr   error
	basicErr   error
}

func NewMockSleepSessionRepository() *MockSleepSessionRepository {
	return &MockSleepSessionRepository{}
}

func (m *MockSleepSessionRepository) Create(ctx context.Context, session *domain.SleepSession) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	m.sessions = append(m.sessions, *session)
	return nil
}

func (m *MockSleepSessionRepository) List(ctx context.Context, userID uuid.UUID, filter domain.SleepSessionFilter) ([]domain.SleepSession, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []domain.SleepSession
	for i := range m.sessions {
		if m.sessions[i].UserID == userID {
			result = append(result, m.sessions[i])
		}
	}
	return result, nil
}

func (m *MockSleepSessionRepository) ListByStartRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.SleepSession, error) {
	if m.rangeErr != nil {
		return nil, m.rangeErr
	}
	var result []domain.SleepSession
	for i := range m.sessions {
		s := m.sessions[i]
		if s.UserID == userID && !s.StartTime.Before(from) && s.StartTime.Before(to) {
			result = append(result, s)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartTime.Before(result[j].StartTime)
	})
	return result, nil
}

func (m *MockSleepSessionRepository) BasicStats(ctx context.Context, userID uuid.UUID, from, to time.Time) (domain.BasicSleepStats, error) {
	if m.basicErr != nil {
		return domain.BasicSleepStats{}, m.basicErr
	}
	if m.basic != nil {
		return *m.basic, nil
	}
	var stats domain.BasicSleepStats
	for i := range m.sessions {
		s := m.sessions[i]
		if s.UserID == userID && !s.StartTime.Before(from) && s.StartTime.Before(to) {
			stats.SessionCount++
			stats.TotalSleepHours += s.EndTime.Sub(s.StartTime).Hours()
		}
	}
	return stats, nil
}

// MockSignalRepository is a mock implementation of SignalRepository
type MockSignalRepository struct {
	heartRates     []domain.HeartRateRecord
	steps          []domain.StepRecord
	exercises      []domain.ExerciseRecord
	bloodPressures []domain.BloodPressureRecord
	spo2           []domain.SpO2Record

	heartRateErr error
	stepsErr     error
}

func NewMockSignalRepository() *MockSignalRepository {
	return &MockSignalRepository{}
}

func (m *MockSignalRepository) HeartRates(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.HeartRateRecord, error) {
	if m.heartRateErr != nil {
		return nil, m.heartRateErr
	}
	return m.heartRates, nil
}

func (m *MockSignalRepository) Steps(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.StepRecord, error) {
	if m.stepsErr != nil {
		return nil, m.stepsErr
	}
	return m.steps, nil
}

func (m *MockSignalRepository) Exercises(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.ExerciseRecord, error) {
	return m.exercises, nil
}

func (m *MockSignalRepository) BloodPressures(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.BloodPressureRecord, error) {
	return m.bloodPressures, nil
}

func (m *MockSignalRepository) SpO2Readings(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.SpO2Record, error) {
	return m.spo2, nil
}

// MockRiskScoreRepository is a mock implementation of RiskScoreRepository
type MockRiskScoreRepository struct {
	scores []domain.RiskScore
	err    error
}

func NewMockRiskScoreRepository() *MockRiskScoreRepository {
	return &MockRiskScoreRepository{}
}

func (m *MockRiskScoreRepository) Create(ctx context.Context, score *domain.RiskScore) error {
	if m.err != nil {
		return m.err
	}
	if score.ID == uuid.Nil {
		score.ID = uuid.New()
	}
	if score.CreatedAt.IsZero() {
		score.CreatedAt = time.Now().UTC()
	}
	m.scores = append(m.scores, *score)
	return nil
}

func (m *MockRiskScoreRepository) Latest(ctx context.Context, userID uuid.UUID) (*domain.RiskScore, error) {
	if m.err != nil {
		return nil, m.err
	}
	var latest *domain.RiskScore
	for i := range m.scores {
		if m.scores[i].UserID != userID {
			continue
		}
		if latest == nil || m.scores[i].CreatedAt.After(latest.CreatedAt) {
			latest = &m.scores[i]
		}
	}
	if latest == nil {
		return nil, domain.ErrNotFound
	}
	return latest, nil
}

func (m *MockRiskScoreRepository) ListAll(ctx context.Context, userID uuid.UUID) ([]domain.RiskScore, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []domain.RiskScore
	for i := range m.scores {
		if m.scores[i].UserID == userID {
			result = append(result, m.scores[i])
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// MockInferenceClient records Predict calls and returns a canned result.
type MockInferenceClient struct {
	prediction *inference.Prediction
	err        error
	calls      int
}

func NewMockInferenceClient() *MockInferenceClient {
	return &MockInferenceClient{
		prediction: &inference.Prediction{Risk: 0.5},
	}
}

func (m *MockInferenceClient) Predict(ctx context.Context, window *domain.FeatureWindow) (*inference.Prediction, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.prediction, nil
}

// MockRecommendationsLLM is a mock implementation of llm.RecommendationsLLM
type MockRecommendationsLLM struct {
	output *domain.RecommendationsOutput
	err    error
}

func (m *MockRecommendationsLLM) GenerateRecommendations(ctx context.Context, recCtx *domain.RecommendationContext) (*domain.RecommendationsOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.output, nil
}
