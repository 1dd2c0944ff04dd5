package domain

import (
	"time"

	"github.com/google/uuid"
)

// Wearable signal records. These are written by the ingestion pipeline (or
// the seed tooling) and are read-only to the aggregation core.

// HeartRateRecord is one wearable heart-rate reading session. A record can
// carry many samples taken during its time span.
type HeartRateRecord struct {
	ID        uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID         `gorm:"type:uuid;not null;index:idx_heart_rate_user_start" json:"user_id"`
	StartTime time.Time         `gorm:"not null;index:idx_heart_rate_user_start,sort:desc" json:"start_time"`
	EndTime   time.Time         `gorm:"not null" json:"end_time"`
	Samples   []HeartRateSample `gorm:"foreignKey:RecordID;constraint:OnDelete:CASCADE" json:"samples"`
	CreatedAt time.Time         `gorm:"autoCreateTime" json:"created_at"`
}

func (HeartRateRecord) TableName() string {
	return "heart_rate_records"
}

type HeartRateSample struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RecordID       uuid.UUID `gorm:"type:uuid;not null;index" json:"record_id"`
	Time           time.Time `gorm:"not null" json:"time"`
	BeatsPerMinute float64   `gorm:"not null" json:"beats_per_minute"`
}

func (HeartRateSample) TableName() string {
	return "heart_rate_samples"
}

// StepRecord is a step count over an interval.
type StepRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_steps_user_start" json:"user_id"`
	StartTime time.Time `gorm:"not null;index:idx_steps_user_start,sort:desc" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`
	Count     int       `gorm:"not null" json:"count"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (StepRecord) TableName() string {
	return "step_records"
}

// ExerciseRecord is one exercise session. DurationMinutes is preferred when
// the source reported it; otherwise the duration is derived from the bounds.
type ExerciseRecord struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index:idx_exercise_user_start" json:"user_id"`
	StartTime       time.Time `gorm:"not null;index:idx_exercise_user_start,sort:desc" json:"start_time"`
	EndTime         time.Time `gorm:"not null" json:"end_time"`
	ExerciseType    string    `gorm:"type:varchar(64)" json:"exercise_type"`
	DurationMinutes *float64  `json:"duration_minutes,omitempty"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ExerciseRecord) TableName() string {
	return "exercise_records"
}

// Minutes returns the explicit duration when present, else end-start.
func (e *ExerciseRecord) Minutes() float64 {
	if e.DurationMinutes != nil {
		return *e.DurationMinutes
	}
	return e.EndTime.Sub(e.StartTime).Minutes()
}

// BloodPressureRecord is a single blood-pressure measurement in mmHg.
type BloodPressureRecord struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index:idx_bp_user_time" json:"user_id"`
	Time          time.Time `gorm:"not null;index:idx_bp_user_time,sort:desc" json:"time"`
	SystolicMmHg  float64   `gorm:"not null" json:"systolic_mmhg"`
	DiastolicMmHg float64   `gorm:"not null" json:"diastolic_mmhg"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (BloodPressureRecord) TableName() string {
	return "blood_pressure_records"
}

// SpO2Record is a single blood-oxygen saturation measurement (percent).
type SpO2Record struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index:idx_spo2_user_time" json:"user_id"`
	Time       time.Time `gorm:"not null;index:idx_spo2_user_time,sort:desc" json:"time"`
	Percentage float64   `gorm:"not null" json:"percentage"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (SpO2Record) TableName() string {
	return "spo2_records"
}
