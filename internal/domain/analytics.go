package domain

// SessionFidelity tags which data source an analytics result was computed
// from. The degrade path is a first-class value, not an exception branch.
type SessionFidelity string

const (
	FidelityDetailed    SessionFidelity = "detailed"
	FidelityBasic       SessionFidelity = "basic"
	FidelityUnavailable SessionFidelity = "unavailable"
)

// BasicSleepStats is the coarse fallback input shape: only a session count
// and a total-hours sum survive when per-session data is unavailable.
type BasicSleepStats struct {
	SessionCount    int     `json:"session_count"`
	TotalSleepHours float64 `json:"total_sleep_hours"`
}

// SessionSet is the tagged result of source resolution.
type SessionSet struct {
	Fidelity SessionFidelity
	Sessions []SleepSession
	Basic    BasicSleepStats
}

// WeeklyPatternEntry is one day of the trailing-7-day sleep pattern.
// Always present, zero-valued when the day had no sessions.
type WeeklyPatternEntry struct {
	Day            string  `json:"day" example:"Mon"`
	Date           string  `json:"date" example:"Jan 15"`
	DurationHours  float64 `json:"duration_hours"`
	QualityPercent int     `json:"quality_percent"`
}

// WeeklyPatternResponse is the weekly-pattern endpoint body.
type WeeklyPatternResponse struct {
	Fidelity SessionFidelity      `json:"fidelity"`
	Entries  []WeeklyPatternEntry `json:"entries"`
}

// WeeklyStats are the trailing-week statistics.
type WeeklyStats struct {
	AverageSleepScore int     `json:"average_sleep_score"`
	SleepConsistency  int     `json:"sleep_consistency"`
	SleepDebt         float64 `json:"sleep_debt"`
	AverageDuration   float64 `json:"average_duration"`
}

// MonthlyStats are the trailing-30-day statistics.
type MonthlyStats struct {
	QualityTrend   int `json:"quality_trend"`
	DeepSleepRatio int `json:"deep_sleep_ratio"`
	AverageLatency int `json:"average_latency"`
	TotalSessions  int `json:"total_sessions"`
}

// YearlyStats are the trailing-year statistics.
type YearlyStats struct {
	BestMonth  string `json:"best_month"`
	WorstMonth string `json:"worst_month"`
	TotalHours int    `json:"total_hours"`
}

// StatisticsSummary is the statistics endpoint body.
type StatisticsSummary struct {
	Fidelity SessionFidelity `json:"fidelity"`
	Weekly   WeeklyStats     `json:"weekly"`
	Monthly  MonthlyStats    `json:"monthly"`
	Yearly   YearlyStats     `json:"yearly"`
}

// SleepHistorySummary is the sleep-history summary body.
type SleepHistorySummary struct {
	Fidelity         SessionFidelity        `json:"fidelity"`
	AverageSleepTime float64                `json:"average_sleep_time"`
	SleepEfficiency  int                    `json:"sleep_efficiency"`
	DeepSleepHours   float64                `json:"deep_sleep_hours"`
	WeeklyPattern    []WeeklyPatternEntry   `json:"weekly_pattern"`
	RecentSessions   []SleepSessionResponse `json:"recent_sessions"`
}

// SessionListRequest is the optional request body for analytics endpoints:
// clients that read wearable data locally can submit raw sessions instead
// of relying on server-side records.
type SessionListRequest struct {
	Sessions []SessionPayload `json:"sessions"`
	Basic    *BasicSleepStats `json:"basic,omitempty"`
}

// RecommendationsOutput contains the structured output from the LLM.
type RecommendationsOutput struct {
	Summary      string   `json:"summary"`
	Observations []string `json:"observations"`
	Guidance     []string `json:"guidance"`
}

// RecommendationContext is the context object sent to the LLM.
type RecommendationContext struct {
	Statistics    StatisticsSummary    `json:"statistics"`
	WeeklyPattern []WeeklyPatternEntry `json:"weekly_pattern"`
	LatestRisk    *RiskScoreResponse   `json:"latest_risk,omitempty"`
}

// RecommendationsResponse is the recommendations endpoint body.
type RecommendationsResponse struct {
	Recommendations RecommendationsOutput `json:"recommendations"`
	Context         RecommendationContext `json:"context"`
}
