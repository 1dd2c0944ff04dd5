package service

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/somnia-app/somnia-api/internal/domain"
	"github.com/somnia-app/somnia-api/internal/repository"
	"github.com/somnia-app/somnia-api/internal/sleep"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	// TargetSleepHours is the nightly target used by debt and efficiency
	// heuristics.
	TargetSleepHours = 8.0

	historyWindowDays   = 30
	recentSessionsLimit = 10
)

// AnalyticsService derives sleep rollups from stored or client-supplied
// sessions. Every result is tagged with the fidelity of its source.
type AnalyticsService interface {
	WeeklyPattern(ctx context.Context, userID uuid.UUID, req *domain.SessionListRequest) (*domain.WeeklyPatternResponse, error)
	Statistics(ctx context.Context, userID uuid.UUID, req *domain.SessionListRequest) (*domain.StatisticsSummary, error)
	HistorySummary(ctx context.Context, userID uuid.UUID, req *domain.SessionListRequest) (*domain.SleepHistorySummary, error)
}

type analyticsService struct {
	sessionRepo repository.SleepSessionRepository
	userRepo    repository.UserRepository
	logger      zerolog.Logger
}

func NewAnalyticsService(sessionRepo repository.SleepSessionRepository, userRepo repository.UserRepository, logger zerolog.Logger) AnalyticsService {
	return &analyticsService{
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// resolveSessions picks the best available session source, in order:
// client-supplied payload, stored sessions, coarse stats. The result is
// always tagged so callers and clients can tell which formulas applied.
func (s *analyticsService) resolveSessions(ctx context.Context, userID uuid.UUID, req *domain.SessionListRequest, from, to time.Time) (domain.SessionSet, error) {
	if req != nil && len(req.Sessions) > 0 {
		sessions := make([]domain.SleepSession, 0, len(req.Sessions))
		for i := range req.Sessions {
			session, err := req.Sessions[i].ToSession()
			if err != nil {
				return domain.SessionSet{}, err
			}
			session.UserID = userID
			if session.StartTime.Before(to) && !session.StartTime.Before(from) {
				sessions = append(sessions, session)
			}
		}
		return domain.SessionSet{Fidelity: domain.FidelityDetailed, Sessions: sessions}, nil
	}

	sessions, err := s.sessionRepo.ListByStartRange(ctx, userID, from, to)
	if err != nil {
		s.logger.Warn().Err(err).Msg("session fetch failed, degrading to basic stats")
	} else if len(sessions) > 0 {
		return domain.SessionSet{Fidelity: domain.FidelityDetailed, Sessions: sessions}, nil
	}

	if req != nil && req.Basic != nil {
		return domain.SessionSet{Fidelity: domain.FidelityBasic, Basic: *req.Basic}, nil
	}

	basic, err := s.sessionRepo.BasicStats(ctx, userID, from, to)
	if err != nil || basic.SessionCount == 0 {
		return domain.SessionSet{Fidelity: domain.FidelityUnavailable}, nil
	}
	return domain.SessionSet{Fidelity: domain.FidelityBasic, Basic: basic}, nil
}

func (s *analyticsService) checkUser(ctx context.Context, userID uuid.UUID) error {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	return nil
}

func (s *analyticsService) WeeklyPattern(ctx context.Context, userID uuid.UUID, req *domain.SessionListRequest) (*domain.WeeklyPatternResponse, error) {
	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	from := dayKey(now).AddDate(0, 0, -6)
	to := dayKey(now).AddDate(0, 0, 1)

	set, err := s.resolveSessions(ctx, userID, req, from, to)
	if err != nil {
		return nil, err
	}

	return &domain.WeeklyPatternResponse{
		Fidelity: set.Fidelity,
		Entries:  weeklyPattern(set.Sessions, now),
	}, nil
}

// weeklyPattern always emits exactly 7 entries, oldest day first.
func weeklyPattern(sessions []domain.SleepSession, now time.Time) []domain.WeeklyPatternEntry {
	entries := make([]domain.WeeklyPatternEntry, 0, 7)

	for i := 6; i >= 0; i-- {
		day := dayKey(now.AddDate(0, 0, -i))

		var duration, qualitySum float64
		var qualityCount int
		for j := range sessions {
			if !dayKey(sessions[j].StartTime).Equal(day) {
				continue
			}
			duration += sessions[j].DurationHours()
			qualitySum += float64(sleep.QualityPercent(&sessions[j], sleep.IsNap(&sessions[j])))
			qualityCount++
		}

		avgQuality := 0
		if qualityCount > 0 {
			avgQuality = int(math.Round(qualitySum / float64(qualityCount)))
		}

		entries = append(entries, domain.WeeklyPatternEntry{
			Day:            day.Weekday().String()[:3],
			Date:           day.Format("Jan 2"),
			DurationHours:  duration,
			QualityPercent: avgQuality,
		})
	}

	return entries
}

func (s *analyticsService) Statistics(ctx context.Context, userID uuid.UUID, req *domain.SessionListRequest) (*domain.StatisticsSummary, error) {
	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}

	tracer := otel.Tracer("somnia-api/analytics")
	ctx, span := tracer.Start(ctx, "AnalyticsService.Statistics",
		trace.WithAttributes(
			attribute.String("user.id", userID.String()),
		),
	)
	defer span.End()

	now := time.Now().UTC()
	from := now.AddDate(-1, 0, 0)

	set, err := s.resolveSessions(ctx, userID, req, from, now)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("source.fidelity", string(set.Fidelity)))

	summary := &domain.StatisticsSummary{Fidelity: set.Fidelity}
	switch set.Fidelity {
	case domain.FidelityDetailed:
		weekAgo := now.AddDate(0, 0, -7)
		monthAgo := now.AddDate(0, 0, -30)
		summary.Weekly = weeklyStats(filterSince(set.Sessions, weekAgo))
		summary.Monthly = monthlyStats(filterSince(set.Sessions, monthAgo))
		summary.Yearly = yearlyStats(set.Sessions)
	case domain.FidelityBasic:
		fillBasicStatistics(summary, set.Basic)
	default:
		summary.Yearly.BestMonth = "N/A"
		summary.Yearly.WorstMonth = "N/A"
	}

	return summary, nil
}

func filterSince(sessions []domain.SleepSession, since time.Time) []domain.SleepSession {
	var out []domain.SleepSession
	for i := range sessions {
		if !sessions[i].StartTime.Before(since) {
			out = append(out, sessions[i])
		}
	}
	return out
}

func weeklyStats(sessions []domain.SleepSession) domain.WeeklyStats {
	if len(sessions) == 0 {
		return domain.WeeklyStats{}
	}

	var totalDuration float64
	startHours := make([]float64, 0, len(sessions))
	for i := range sessions {
		totalDuration += sessions[i].DurationHours()
		startHours = append(startHours, float64(sessions[i].StartTime.Hour()))
	}

	avgDuration := totalDuration / float64(len(sessions))

	return domain.WeeklyStats{
		AverageSleepScore: clampInt(int(math.Round(avgDuration*12.5)), 0, 100),
		SleepConsistency:  consistency(startHours),
		SleepDebt:         round1(TargetSleepHours - avgDuration),
		AverageDuration:   round1(avgDuration),
	}
}

// consistency penalizes variance in sleep start hour. Below 2 sessions the
// spread is undefined and the score pins to the neutral midpoint.
func consistency(startHours []float64) int {
	if len(startHours) < 2 {
		return 50
	}

	var sum float64
	for _, h := range startHours {
		sum += h
	}
	mean := sum / float64(len(startHours))

	var variance float64
	for _, h := range startHours {
		variance += (h - mean) * (h - mean)
	}
	variance /= float64(len(startHours))

	return clampInt(int(math.Round(100-math.Sqrt(variance)*10)), 0, 100)
}

func monthlyStats(sessions []domain.SleepSession) domain.MonthlyStats {
	if len(sessions) == 0 {
		return domain.MonthlyStats{}
	}

	// Sessions are ordered oldest first. The older half keeps the extra
	// element on odd counts; a missing newer half means no trend.
	split := len(sessions) - len(sessions)/2
	older := sessions[:split]
	newer := sessions[split:]

	olderAvg := meanDuration(older)
	newerAvg := olderAvg
	if len(newer) > 0 {
		newerAvg = meanDuration(newer)
	}

	trend := 0
	if olderAvg > 0 {
		trend = int(math.Round((newerAvg - olderAvg) / olderAvg * 100))
	}

	var totalDeep, totalSleep float64
	for i := range sessions {
		totalSleep += sessions[i].DurationHours()
		totalDeep += sessions[i].DeepSleepHours()
	}

	deepRatio := 0
	if totalSleep > 0 {
		deepRatio = int(math.Round(totalDeep / totalSleep * 100))
	}

	return domain.MonthlyStats{
		QualityTrend:   trend,
		DeepSleepRatio: deepRatio,
		AverageLatency: maxInt(5, int(math.Round(25-float64(len(sessions))*0.5))),
		TotalSessions:  len(sessions),
	}
}

func yearlyStats(sessions []domain.SleepSession) domain.YearlyStats {
	if len(sessions) == 0 {
		return domain.YearlyStats{BestMonth: "N/A", WorstMonth: "N/A"}
	}

	type monthAcc struct {
		total float64
		count int
	}
	months := make(map[string]*monthAcc)
	var totalHours float64

	for i := range sessions {
		month := sessions[i].StartTime.UTC().Month().String()
		duration := sessions[i].DurationHours()

		a := months[month]
		if a == nil {
			a = &monthAcc{}
			months[month] = a
		}
		a.total += duration
		a.count++
		totalHours += duration
	}

	best, worst := "N/A", "N/A"
	bestAvg, worstAvg := math.Inf(-1), math.Inf(1)
	for month, a := range months {
		avg := a.total / float64(a.count)
		if avg > bestAvg {
			bestAvg, best = avg, month
		}
		if avg < worstAvg {
			worstAvg, worst = avg, month
		}
	}

	return domain.YearlyStats{
		BestMonth:  best,
		WorstMonth: worst,
		TotalHours: int(math.Round(totalHours)),
	}
}

func fillBasicStatistics(summary *domain.StatisticsSummary, basic domain.BasicSleepStats) {
	avg := 0.0
	if basic.SessionCount > 0 {
		avg = basic.TotalSleepHours / float64(basic.SessionCount)
	}

	basicConsistency := basic.SessionCount * 12
	if basic.SessionCount >= 7 {
		basicConsistency = 85
	}

	trend := -3
	if avg > 7 {
		trend = 5
	} else if avg > 6 {
		trend = 0
	}

	summary.Weekly = domain.WeeklyStats{
		AverageSleepScore: clampInt(int(math.Round(avg*12.5)), 0, 100),
		SleepConsistency:  basicConsistency,
		SleepDebt:         round1(TargetSleepHours - avg),
		AverageDuration:   round1(avg),
	}
	summary.Monthly = domain.MonthlyStats{
		QualityTrend:   trend,
		DeepSleepRatio: int(math.Round(avg * 3)),
		AverageLatency: maxInt(5, int(math.Round(20-avg*2))),
		TotalSessions:  basic.SessionCount,
	}
	summary.Yearly = domain.YearlyStats{
		BestMonth:  "N/A",
		WorstMonth: "N/A",
		TotalHours: int(math.Round(basic.TotalSleepHours)),
	}
	if basic.SessionCount > 0 {
		summary.Yearly.BestMonth = "Current"
	}
}

func (s *analyticsService) HistorySummary(ctx context.Context, userID uuid.UUID, req *domain.SessionListRequest) (*domain.SleepHistorySummary, error) {
	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	from := now.AddDate(0, 0, -historyWindowDays)

	set, err := s.resolveSessions(ctx, userID, req, from, now)
	if err != nil {
		return nil, err
	}

	switch set.Fidelity {
	case domain.FidelityDetailed:
		return detailedHistory(set.Sessions, now), nil
	case domain.FidelityBasic:
		return basicHistory(set.Basic), nil
	default:
		return &domain.SleepHistorySummary{
			Fidelity:       domain.FidelityUnavailable,
			WeeklyPattern:  weeklyPattern(nil, now),
			RecentSessions: []domain.SleepSessionResponse{},
		}, nil
	}
}

func detailedHistory(sessions []domain.SleepSession, now time.Time) *domain.SleepHistorySummary {
	var totalSleepMinutes, totalDeepMinutes, totalInBedMinutes float64

	for i := range sessions {
		duration := sessions[i].DurationHours()
		totalSleepMinutes += duration * 60
		totalInBedMinutes += sessions[i].EndTime.Sub(sessions[i].StartTime).Minutes()

		if len(sessions[i].Stages) > 0 {
			totalDeepMinutes += sessions[i].DeepSleepHours() * 60
		} else {
			// No stages recorded; deep sleep estimated at 20% of sleep.
			totalDeepMinutes += duration * 60 * 0.2
		}
	}

	nights := float64(len(sessions))
	avgSleepHours := 0.0
	avgDeepHours := 0.0
	if nights > 0 {
		avgSleepHours = totalSleepMinutes / nights / 60
		avgDeepHours = totalDeepMinutes / nights / 60
	}

	bedEfficiency := 0.0
	if totalInBedMinutes > 0 {
		bedEfficiency = totalSleepMinutes / totalInBedMinutes
	}
	durationFactor := 0.0
	if avgSleepHours >= TargetSleepHours {
		durationFactor = 1
	} else if avgSleepHours > 0 {
		durationFactor = avgSleepHours / TargetSleepHours
	}

	// Most recent sessions first, capped.
	recent := make([]domain.SleepSessionResponse, 0, recentSessionsLimit)
	for i := len(sessions) - 1; i >= 0 && len(recent) < recentSessionsLimit; i-- {
		recent = append(recent, SessionResponse(&sessions[i]))
	}

	return &domain.SleepHistorySummary{
		Fidelity:         domain.FidelityDetailed,
		AverageSleepTime: round1(avgSleepHours),
		SleepEfficiency:  int(math.Round(bedEfficiency * durationFactor * 100)),
		DeepSleepHours:   round1(avgDeepHours),
		WeeklyPattern:    weeklyPattern(sessions, now),
		RecentSessions:   recent,
	}
}

func basicHistory(basic domain.BasicSleepStats) *domain.SleepHistorySummary {
	avg := 0.0
	if basic.SessionCount > 0 {
		avg = basic.TotalSleepHours / float64(basic.SessionCount)
	}

	// In-bed time is unknown here, so bed efficiency is assumed perfect
	// and only the duration factor applies.
	durationFactor := 0.0
	if avg >= TargetSleepHours {
		durationFactor = 1
	} else if avg > 0 {
		durationFactor = avg / TargetSleepHours
	}

	return &domain.SleepHistorySummary{
		Fidelity:         domain.FidelityBasic,
		AverageSleepTime: round1(avg),
		SleepEfficiency:  int(math.Round(durationFactor * 100)),
		DeepSleepHours:   round1(avg * 0.22),
		WeeklyPattern:    []domain.WeeklyPatternEntry{},
		RecentSessions:   []domain.SleepSessionResponse{},
	}
}

func meanDuration(sessions []domain.SleepSession) float64 {
	if len(sessions) == 0 {
		return 0
	}
	var total float64
	for i := range sessions {
		total += sessions[i].DurationHours()
	}
	return total / float64(len(sessions))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
