package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/somnia-app/somnia-api/internal/domain"
	"github.com/somnia-app/somnia-api/internal/inference"
	"github.com/somnia-app/somnia-api/internal/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// DefaultHistoryMaxDays bounds the day-grouped risk history.
const DefaultHistoryMaxDays = 14

// RiskService runs the compute-and-store pipeline and serves risk history.
type RiskService interface {
	// ComputeAndStore builds the feature window, runs the sufficiency gate,
	// calls the model, and appends the score. History is only written after
	// a fully successful, well-formed model response.
	ComputeAndStore(ctx context.Context, userID uuid.UUID, windowDays int) (*domain.RiskScoreResponse, error)
	Latest(ctx context.Context, userID uuid.UUID) (*domain.RiskScoreResponse, error)
	History(ctx context.Context, userID uuid.UUID, maxDays int) (*domain.RiskHistoryResponse, error)
}

type riskService struct {
	features FeatureService
	client   inference.Client
	repo     repository.RiskScoreRepository
	userRepo repository.UserRepository
	logger   zerolog.Logger
}

func NewRiskService(features FeatureService, client inference.Client, repo repository.RiskScoreRepository, userRepo repository.UserRepository, logger zerolog.Logger) RiskService {
	return &riskService{
		features: features,
		client:   client,
		repo:     repo,
		userRepo: userRepo,
		logger:   logger,
	}
}

func (s *riskService) ComputeAndStore(ctx context.Context, userID uuid.UUID, windowDays int) (*domain.RiskScoreResponse, error) {
	tracer := otel.Tracer("somnia-api/risk")
	ctx, span := tracer.Start(ctx, "RiskService.ComputeAndStore",
		trace.WithAttributes(
			attribute.String("user.id", userID.String()),
		),
	)
	defer span.End()

	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	window, err := s.features.BuildWindow(ctx, userID, windowDays, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	// The gate runs strictly before any model traffic.
	if err := s.features.CheckSufficiency(window); err != nil {
		return nil, err
	}

	prediction, err := s.client.Predict(ctx, window)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Float64("risk.value", prediction.Risk))

	score := &domain.RiskScore{
		ID:         uuid.New(),
		UserID:     userID,
		Risk:       prediction.Risk,
		WindowDays: window.WindowDays,
		Source:     domain.RiskScoreSourceModel,
	}
	if err := s.repo.Create(ctx, score); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", userID.String()).
		Float64("risk", prediction.Risk).
		Int("window_days", window.WindowDays).
		Msg("risk score stored")

	response := score.ToResponse()
	response.Message = prediction.Message
	return &response, nil
}

func (s *riskService) Latest(ctx context.Context, userID uuid.UUID) (*domain.RiskScoreResponse, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	score, err := s.repo.Latest(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := score.ToResponse()
	return &response, nil
}

func (s *riskService) History(ctx context.Context, userID uuid.UUID, maxDays int) (*domain.RiskHistoryResponse, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	if maxDays <= 0 {
		maxDays = DefaultHistoryMaxDays
	}

	scores, err := s.repo.ListAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Scores arrive ordered by creation time, so grouping preserves day
	// order and the last score seen per day is the latest.
	var days []domain.RiskHistoryDay
	index := make(map[string]int)
	for i := range scores {
		key := scores[i].CreatedAt.UTC().Format("2006-01-02")
		idx, ok := index[key]
		if !ok {
			idx = len(days)
			index[key] = idx
			days = append(days, domain.RiskHistoryDay{Date: key})
		}
		days[idx].Avg += scores[i].Risk
		days[idx].Latest = scores[i].Risk
		days[idx].Samples++
	}
	for i := range days {
		days[i].Avg /= float64(days[i].Samples)
	}

	// Keep only the most recent maxDays day groups.
	if len(days) > maxDays {
		days = days[len(days)-maxDays:]
	}

	return &domain.RiskHistoryResponse{
		UserID:  userID,
		MaxDays: maxDays,
		Days:    days,
	}, nil
}
