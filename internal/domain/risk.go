package domain

import (
	"time"

	"github.com/google/uuid"
)

// RiskScoreSourceModel marks scores produced by the external predictive
// service. Kept as a column so future heuristic fallbacks stay
// distinguishable in history.
const RiskScoreSourceModel = "AI_MODEL"

// RiskScore is one computed insomnia-risk value. Append-only: scores are
// never updated or deleted, every user-triggered computation is a new row.
type RiskScore struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index:idx_risk_scores_user_created" json:"user_id"`
	Risk       float64   `gorm:"not null" json:"risk"`
	WindowDays int       `gorm:"not null;default:21" json:"window_days"`
	Source     string    `gorm:"type:varchar(32);not null" json:"source"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index:idx_risk_scores_user_created,sort:desc" json:"created_at"`
}

func (RiskScore) TableName() string {
	return "insomnia_risk_scores"
}

// RiskScoreResponse is the response body for risk endpoints.
type RiskScoreResponse struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Risk       float64   `json:"risk"`
	WindowDays int       `json:"window_days"`
	Source     string    `json:"source"`
	CreatedAt  time.Time `json:"created_at"`
	Message    string    `json:"message,omitempty"`
}

func (r *RiskScore) ToResponse() RiskScoreResponse {
	return RiskScoreResponse{
		ID:         r.ID,
		UserID:     r.UserID,
		Risk:       r.Risk,
		WindowDays: r.WindowDays,
		Source:     r.Source,
		CreatedAt:  r.CreatedAt,
	}
}

// RiskHistoryDay is one calendar day of risk history: the mean of the day's
// scores and the value of the latest one.
type RiskHistoryDay struct {
	Date    string  `json:"date" example:"2024-01-15"`
	Avg     float64 `json:"avg"`
	Latest  float64 `json:"latest"`
	Samples int     `json:"samples"`
}

// RiskHistoryResponse is the day-grouped risk history, oldest day first.
type RiskHistoryResponse struct {
	UserID  uuid.UUID        `json:"user_id"`
	MaxDays int              `json:"max_days"`
	Days    []RiskHistoryDay `json:"days"`
}
