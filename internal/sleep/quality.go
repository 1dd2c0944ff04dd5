package sleep

import "github.com/somnia-app/somnia-api/internal/domain"

const (
	recommendedMinHours = 7.0
	recommendedMaxHours = 9.0

	durationWeight      = 0.4
	efficiencyWeight    = 0.4
	fragmentationWeight = 0.2
)

// linear maps v onto [0,1] across [lo, hi], clamping outside the range.
func linear(v, lo, hi float64) float64 {
	return clamp((v-lo)/(hi-lo), 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Quality scores a session in [0,1]. Naps are scored on duration alone with
// a sleep-inertia penalty; night sessions combine duration, efficiency and
// fragmentation sub-scores.
func Quality(s *domain.SleepSession, isNap bool) float64 {
	d := s.EndTime.Sub(s.StartTime).Hours()

	if isNap {
		return napQuality(d)
	}
	return nightQuality(s, d)
}

func napQuality(d float64) float64 {
	var durationScore float64
	switch {
	case d < 0.17:
		durationScore = 0.4
	case d >= 0.33 && d <= 0.5:
		// 20 to 30 minutes, optimal nap length
		durationScore = 1.0
	case d >= 0.9 && d <= 1.6:
		// full sleep cycle, roughly 90 minutes
		durationScore = 0.9
	case d >= 0.5 && d <= 1:
		// sleep inertia zone
		durationScore = linear(d, 0.5, 1) * 0.7
	case d > 2:
		durationScore = 0.3
	default:
		durationScore = linear(d, 0.17, 1.5)
	}

	var penalty float64
	switch {
	case d < 0.5:
		penalty = 0
	case d < 1:
		penalty = 0.2
	case d < 1.5:
		penalty = 0.3
	default:
		penalty = 0.4
	}

	return clamp(durationScore-penalty, 0, 1)
}

func nightQuality(s *domain.SleepSession, d float64) float64 {
	durationScore := 1.0
	if d < recommendedMinHours {
		durationScore = d / recommendedMinHours
	} else if d > recommendedMaxHours {
		durationScore = recommendedMaxHours / d
	}

	totalSeconds := s.EndTime.Sub(s.StartTime).Seconds()
	efficiency := 1.0
	if totalSeconds > 0 {
		efficiency = 1 - s.AwakeSeconds/totalSeconds
	}

	var efficiencyScore float64
	switch {
	case efficiency >= 0.95:
		efficiencyScore = 1
	case efficiency >= 0.9:
		efficiencyScore = 0.9
	case efficiency >= 0.85:
		efficiencyScore = 0.8
	case efficiency >= 0.8:
		efficiencyScore = 0.7
	default:
		efficiencyScore = 0.6
	}

	var fragmentationScore float64
	switch {
	case s.Awakenings <= 2:
		fragmentationScore = 1
	case s.Awakenings <= 4:
		fragmentationScore = 0.8
	case s.Awakenings <= 6:
		fragmentationScore = 0.6
	default:
		fragmentationScore = 0.4
	}

	return durationScore*durationWeight +
		efficiencyScore*efficiencyWeight +
		fragmentationScore*fragmentationWeight
}

// QualityPercent is Quality expressed as a 0-100 integer.
func QualityPercent(s *domain.SleepSession, isNap bool) int {
	return int(Quality(s, isNap)*100 + 0.5)
}
