package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/somnia-app/somnia-api/internal/domain"
	"github.com/somnia-app/somnia-api/internal/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultWindowDays is the feature window length the predictive model
	// was trained on.
	DefaultWindowDays = 21

	// sleepScoreTargetHours converts daily sleep hours into a 0-100 score.
	sleepScoreTargetHours = 8.0
)

// FeatureService builds the per-day feature window the risk model consumes.
type FeatureService interface {
	// BuildWindow assembles exactly windowDays day vectors, oldest first,
	// ending on the UTC calendar day of now. Days without data are all-zero.
	BuildWindow(ctx context.Context, userID uuid.UUID, windowDays int, now time.Time) (*domain.FeatureWindow, error)
	// CheckSufficiency fails with ErrInsufficientData unless every day in
	// the window carries data from at least one signal.
	CheckSufficiency(window *domain.FeatureWindow) error
}

type featureService struct {
	signals     repository.SignalRepository
	sessionRepo repository.SleepSessionRepository
	logger      zerolog.Logger
}

func NewFeatureService(signals repository.SignalRepository, sessionRepo repository.SleepSessionRepository, logger zerolog.Logger) FeatureService {
	return &featureService{
		signals:     signals,
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

// dayKey buckets a timestamp into its UTC calendar day.
func dayKey(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *featureService) BuildWindow(ctx context.Context, userID uuid.UUID, windowDays int, now time.Time) (*domain.FeatureWindow, error) {
	tracer := otel.Tracer("somnia-api/features")
	ctx, span := tracer.Start(ctx, "FeatureService.BuildWindow",
		trace.WithAttributes(
			attribute.String("user.id", userID.String()),
		),
	)
	defer span.End()

	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	span.SetAttributes(attribute.Int("window.days", windowDays))

	// The window ends with the UTC day of now, inclusive.
	to := dayKey(now).AddDate(0, 0, 1)
	from := to.AddDate(0, 0, -windowDays)

	window := &domain.FeatureWindow{
		UserID:     userID,
		WindowDays: windowDays,
		From:       from,
		To:         to,
		Days:       make([]domain.DailyFeatureVector, windowDays),
	}
	for i := range window.Days {
		window.Days[i] = domain.ZeroDailyFeatures(from.AddDate(0, 0, i))
	}

	// Which window slot a day key lands in. Out-of-range keys are skipped.
	slot := func(t time.Time) (int, bool) {
		idx := int(dayKey(t).Sub(from).Hours() / 24)
		if idx < 0 || idx >= windowDays {
			return 0, false
		}
		return idx, true
	}
	populated := make([]bool, windowDays)

	// Each signal is summarized independently: one failing fetch degrades
	// that signal to zero for the whole window, it never aborts the rest.
	s.summarizeHeartRate(ctx, window, slot, populated)
	s.summarizeSleep(ctx, window, slot, populated)
	s.summarizeSteps(ctx, window, slot, populated)
	s.summarizeExercise(ctx, window, slot, populated)
	s.summarizeBloodPressure(ctx, window, slot, populated)
	s.summarizeSpO2(ctx, window, slot, populated)

	for _, p := range populated {
		if p {
			window.PopulatedDays++
		}
	}
	span.SetAttributes(attribute.Int("window.populated_days", window.PopulatedDays))

	return window, nil
}

func (s *featureService) CheckSufficiency(window *domain.FeatureWindow) error {
	if window.PopulatedDays < window.WindowDays {
		return fmt.Errorf("%w: %d of %d days populated",
			domain.ErrInsufficientData, window.PopulatedDays, window.WindowDays)
	}
	return nil
}

func (s *featureService) summarizeHeartRate(ctx context.Context, w *domain.FeatureWindow, slot func(time.Time) (int, bool), populated []bool) {
	records, err := s.signals.HeartRates(ctx, w.UserID, w.From, w.To)
	if err != nil {
		s.logger.Warn().Err(err).Str("signal", "heart_rate").Msg("signal fetch failed, zeroing for window")
		return
	}

	type acc struct {
		sum      float64
		count    int
		min, max float64
	}
	buckets := make(map[int]*acc)
	for _, rec := range records {
		for _, sample := range rec.Samples {
			idx, ok := slot(sample.Time)
			if !ok {
				continue
			}
			a := buckets[idx]
			if a == nil {
				a = &acc{min: math.MaxFloat64}
				buckets[idx] = a
			}
			a.sum += sample.BeatsPerMinute
			a.count++
			a.min = math.Min(a.min, sample.BeatsPerMinute)
			a.max = math.Max(a.max, sample.BeatsPerMinute)
		}
	}

	for idx, a := range buckets {
		if a.count == 0 {
			continue
		}
		w.Days[idx].HRMean = a.sum / float64(a.count)
		w.Days[idx].HRMin = a.min
		w.Days[idx].HRMax = a.max
		populated[idx] = true
	}
}

func (s *featureService) summarizeSleep(ctx context.Context, w *domain.FeatureWindow, slot func(time.Time) (int, bool), populated []bool) {
	sessions, err := s.sessionRepo.ListByStartRange(ctx, w.UserID, w.From, w.To)
	if err != nil {
		s.logger.Warn().Err(err).Str("signal", "sleep").Msg("signal fetch failed, zeroing for window")
		return
	}

	for i := range sessions {
		idx, ok := slot(sessions[i].StartTime)
		if !ok {
			continue
		}
		w.Days[idx].SleepHours += sessions[i].DurationHours()
		populated[idx] = true
	}

	for idx := range w.Days {
		if w.Days[idx].SleepHours > 0 {
			ratio := math.Min(w.Days[idx].SleepHours/sleepScoreTargetHours, 1)
			w.Days[idx].SleepScore = math.Round(ratio * 100)
		}
	}
}

func (s *featureService) summarizeSteps(ctx context.Context, w *domain.FeatureWindow, slot func(time.Time) (int, bool), populated []bool) {
	records, err := s.signals.Steps(ctx, w.UserID, w.From, w.To)
	if err != nil {
		s.logger.Warn().Err(err).Str("signal", "steps").Msg("signal fetch failed, zeroing for window")
		return
	}

	for i := range records {
		idx, ok := slot(records[i].StartTime)
		if !ok {
			continue
		}
		w.Days[idx].StepsTotal += float64(records[i].Count)
		populated[idx] = true
	}
}

func (s *featureService) summarizeExercise(ctx context.Context, w *domain.FeatureWindow, slot func(time.Time) (int, bool), populated []bool) {
	records, err := s.signals.Exercises(ctx, w.UserID, w.From, w.To)
	if err != nil {
		s.logger.Warn().Err(err).Str("signal", "exercise").Msg("signal fetch failed, zeroing for window")
		return
	}

	for i := range records {
		idx, ok := slot(records[i].StartTime)
		if !ok {
			continue
		}
		w.Days[idx].ExerciseMinutes += records[i].Minutes()
		populated[idx] = true
	}
}

func (s *featureService) summarizeBloodPressure(ctx context.Context, w *domain.FeatureWindow, slot func(time.Time) (int, bool), populated []bool) {
	records, err := s.signals.BloodPressures(ctx, w.UserID, w.From, w.To)
	if err != nil {
		s.logger.Warn().Err(err).Str("signal", "blood_pressure").Msg("signal fetch failed, zeroing for window")
		return
	}

	type acc struct {
		sys, dia float64
		count    int
	}
	buckets := make(map[int]*acc)
	for i := range records {
		idx, ok := slot(records[i].Time)
		if !ok {
			continue
		}
		a := buckets[idx]
		if a == nil {
			a = &acc{}
			buckets[idx] = a
		}
		a.sys += records[i].SystolicMmHg
		a.dia += records[i].DiastolicMmHg
		a.count++
	}

	for idx, a := range buckets {
		if a.count == 0 {
			continue
		}
		w.Days[idx].BPSysMean = a.sys / float64(a.count)
		w.Days[idx].BPDiaMean = a.dia / float64(a.count)
		populated[idx] = true
	}
}

func (s *featureService) summarizeSpO2(ctx context.Context, w *domain.FeatureWindow, slot func(time.Time) (int, bool), populated []bool) {
	records, err := s.signals.SpO2Readings(ctx, w.UserID, w.From, w.To)
	if err != nil {
		s.logger.Warn().Err(err).Str("signal", "spo2").Msg("signal fetch failed, zeroing for window")
		return
	}

	type acc struct {
		sum      float64
		count    int
		min, max float64
	}
	buckets := make(map[int]*acc)
	for i := range records {
		idx, ok := slot(records[i].Time)
		if !ok {
			continue
		}
		a := buckets[idx]
		if a == nil {
			a = &acc{min: math.MaxFloat64}
			buckets[idx] = a
		}
		a.sum += records[i].Percentage
		a.count++
		a.min = math.Min(a.min, records[i].Percentage)
		a.max = math.Max(a.max, records[i].Percentage)
	}

	for idx, a := range buckets {
		if a.count == 0 {
			continue
		}
		w.Days[idx].SpO2Mean = a.sum / float64(a.count)
		w.Days[idx].SpO2Min = a.min
		w.Days[idx].SpO2Max = a.max
		populated[idx] = true
	}
}
