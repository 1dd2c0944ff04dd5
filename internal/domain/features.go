package domain

import (
	"time"

	"github.com/google/uuid"
)

// DailyFeatureVector is one calendar day's summarized multi-signal snapshot.
// The JSON field names are part of the predictive-model contract and must
// match the feature columns the model was trained on.
type DailyFeatureVector struct {
	// Date is the UTC calendar day of the bucket. Internal only: the model
	// receives the days positionally, oldest first.
	Date time.Time `json:"-"`

	HRMean float64 `json:"hr_mean"`
	HRMin  float64 `json:"hr_min"`
	HRMax  float64 `json:"hr_max"`

	SpO2Mean float64 `json:"spo2_mean"`
	SpO2Min  float64 `json:"spo2_min"`
	SpO2Max  float64 `json:"spo2_max"`

	SleepHours float64 `json:"sleep_hours"`
	SleepScore float64 `json:"sleep_score"`

	StepsTotal      float64 `json:"steps_total"`
	ExerciseMinutes float64 `json:"exercise_minutes"`

	BPSysMean float64 `json:"bp_sys_mean"`
	BPDiaMean float64 `json:"bp_dia_mean"`

	// StressScore has no wearable source yet; the model expects the column
	// and tolerates null.
	StressScore *float64 `json:"stress_score"`
}

// ZeroDailyFeatures is the single canonical all-empty day vector. Every
// summarizer that needs an empty-day default goes through here so the
// zero-fill behavior cannot drift between signals.
func ZeroDailyFeatures(date time.Time) DailyFeatureVector {
	return DailyFeatureVector{Date: date}
}

// FeatureWindow is the aggregator output: exactly WindowDays vectors,
// oldest first, one per calendar day with no gaps.
type FeatureWindow struct {
	UserID        uuid.UUID
	WindowDays    int
	From          time.Time
	To            time.Time
	Days          []DailyFeatureVector
	PopulatedDays int
}
