package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Sleep stage kinds, matching the Health Connect stage constants so ingested
// records keep their original values.
const (
	StageAwake    = 1
	StageSleeping = 2
	StageOutOfBed = 3
	StageLight    = 4
	StageDeep     = 5
	StageREM      = 6
)

type SleepSession struct {
	ID           uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID       uuid.UUID    `gorm:"type:uuid;not null;index:idx_sleep_sessions_user_start" json:"user_id"`
	StartTime    time.Time    `gorm:"not null;index:idx_sleep_sessions_user_start,sort:desc" json:"start_time"`
	EndTime      time.Time    `gorm:"not null" json:"end_time"`
	AwakeSeconds float64      `gorm:"not null;default:0" json:"awake_seconds"`
	Awakenings   int          `gorm:"not null;default:0" json:"awakenings"`
	Stages       []SleepStage `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"stages,omitempty"`
	CreatedAt    time.Time    `gorm:"autoCreateTime" json:"created_at"`
}

func (SleepSession) TableName() string {
	return "sleep_sessions"
}

type SleepStage struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;index" json:"session_id"`
	StartTime time.Time `gorm:"not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`
	Stage     int       `gorm:"type:smallint;not null" json:"stage"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
}

func (SleepStage) TableName() string {
	return "sleep_stages"
}

// DurationHours is the asleep time of the session: the sum of stage spans
// when stages exist, otherwise the full start-to-end span.
func (s *SleepSession) DurationHours() float64 {
	if len(s.Stages) > 0 {
		var total float64
		for _, st := range s.Stages {
			total += st.EndTime.Sub(st.StartTime).Hours()
		}
		return total
	}
	return s.EndTime.Sub(s.StartTime).Hours()
}

// DeepSleepHours sums the deep-stage spans of the session.
func (s *SleepSession) DeepSleepHours() float64 {
	var total float64
	for _, st := range s.Stages {
		if st.Stage == StageDeep {
			total += st.EndTime.Sub(st.StartTime).Hours()
		}
	}
	return total
}

// SleepSessionResponse is the response body for session listing. IsNap and
// QualityPercent are computed, never stored.
type SleepSessionResponse struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	DurationHours  float64   `json:"duration_hours"`
	AwakeSeconds   float64   `json:"awake_seconds"`
	Awakenings     int       `json:"awakenings"`
	IsNap          bool      `json:"is_nap"`
	QualityPercent int       `json:"quality_percent"`
	CreatedAt      time.Time `json:"created_at"`
}

// SleepSessionListResponse is the paginated session listing body.
type SleepSessionListResponse struct {
	Data       []SleepSessionResponse `json:"data"`
	Pagination PaginationResponse     `json:"pagination"`
}

// PaginationResponse contains cursor pagination metadata.
type PaginationResponse struct {
	NextCursor string `json:"next_cursor,omitempty"`
	HasMore    bool   `json:"has_more"`
}

// SleepSessionFilter contains filter parameters for listing sessions.
type SleepSessionFilter struct {
	From   *time.Time
	To     *time.Time
	Limit  int
	Cursor string
}

// SessionPayload is the ingestion adapter for client-supplied sessions.
// Upstream sources disagree on field names (start vs startTime vs
// start_time), so normalization happens here, once, before a session
// reaches any scoring or aggregation code.
type SessionPayload struct {
	Start        time.Time
	End          time.Time
	AwakeSeconds float64
	Awakenings   int
	Stages       []StagePayload
}

type StagePayload struct {
	Start time.Time
	End   time.Time
	Stage int
}

type rawSessionPayload struct {
	Start        *time.Time        `json:"start"`
	StartTime    *time.Time        `json:"startTime"`
	StartSnake   *time.Time        `json:"start_time"`
	End          *time.Time        `json:"end"`
	EndTime      *time.Time        `json:"endTime"`
	EndSnake     *time.Time        `json:"end_time"`
	AwakeSeconds *float64          `json:"awakeSeconds"`
	AwakeSnake   *float64          `json:"awake_seconds"`
	Awakenings   *int              `json:"awakenings"`
	Stages       []rawStagePayload `json:"stages"`
}

type rawStagePayload struct {
	Start      *time.Time `json:"start"`
	StartTime  *time.Time `json:"startTime"`
	StartSnake *time.Time `json:"start_time"`
	End        *time.Time `json:"end"`
	EndTime    *time.Time `json:"endTime"`
	EndSnake   *time.Time `json:"end_time"`
	Stage      int        `json:"stage"`
}

func firstTime(candidates ...*time.Time) (time.Time, bool) {
	for _, c := range candidates {
		if c != nil && !c.IsZero() {
			return *c, true
		}
	}
	return time.Time{}, false
}

func (p *SessionPayload) UnmarshalJSON(data []byte) error {
	var raw rawSessionPayload
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	start, okStart := firstTime(raw.Start, raw.StartTime, raw.StartSnake)
	end, okEnd := firstTime(raw.End, raw.EndTime, raw.EndSnake)
	if !okStart || !okEnd {
		return ErrInvalidInput
	}

	p.Start = start
	p.End = end
	if raw.AwakeSeconds != nil {
		p.AwakeSeconds = *raw.AwakeSeconds
	} else if raw.AwakeSnake != nil {
		p.AwakeSeconds = *raw.AwakeSnake
	}
	if raw.Awakenings != nil {
		p.Awakenings = *raw.Awakenings
	}

	p.Stages = nil
	for _, rs := range raw.Stages {
		ss, okS := firstTime(rs.Start, rs.StartTime, rs.StartSnake)
		se, okE := firstTime(rs.End, rs.EndTime, rs.EndSnake)
		if !okS || !okE {
			return ErrInvalidInput
		}
		p.Stages = append(p.Stages, StagePayload{Start: ss, End: se, Stage: rs.Stage})
	}
	return nil
}

// ToSession converts a normalized payload to the canonical session shape.
func (p *SessionPayload) ToSession() (SleepSession, error) {
	if !p.End.After(p.Start) {
		return SleepSession{}, ErrInvalidInput
	}
	s := SleepSession{
		StartTime:    p.Start.UTC(),
		EndTime:      p.End.UTC(),
		AwakeSeconds: p.AwakeSeconds,
		Awakenings:   p.Awakenings,
	}
	for _, st := range p.Stages {
		s.Stages = append(s.Stages, SleepStage{
			StartTime: st.Start.UTC(),
			EndTime:   st.End.UTC(),
			Stage:     st.Stage,
		})
	}
	return s, nil
}
