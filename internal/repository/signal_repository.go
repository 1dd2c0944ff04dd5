package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/somnia-app/somnia-api/internal/domain"
	"gorm.io/gorm"
)

// SignalRepository reads the raw wearable records the aggregation window is
// built from. All queries are bounded by [from, to) on the record's anchor
// time and returned oldest first.
type SignalRepository interface {
	HeartRates(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.HeartRateRecord, error)
	Steps(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.StepRecord, error)
	Exercises(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.ExerciseRecord, error)
	BloodPressures(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.BloodPressureRecord, error)
	SpO2Readings(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.SpO2Record, error)
}

type signalRepository struct {
	db *gorm.DB
}

func NewSignalRepository(db *gorm.DB) SignalRepository {
	return &signalRepository{db: db}
}

func (r *signalRepository) HeartRates(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.HeartRateRecord, error) {
	var records []domain.HeartRateRecord
	err := r.db.WithContext(ctx).
		Preload("Samples").
		Where("user_id = ? AND start_time >= ? AND start_time < ?", userID, from, to).
		Order("start_time ASC").
		Find(&records).Error
	return records, err
}

func (r *signalRepository) Steps(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.StepRecord, error) {
	var records []domain.StepRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND start_time >= ? AND start_time < ?", userID, from, to).
		Order("start_time ASC").
		Find(&records).Error
	return records, err
}

func (r *signalRepository) Exercises(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.ExerciseRecord, error) {
	var records []domain.ExerciseRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND start_time >= ? AND start_time < ?", userID, from, to).
		Order("start_time ASC").
		Find(&records).Error
	return records, err
}

func (r *signalRepository) BloodPressures(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.BloodPressureRecord, error) {
	var records []domain.BloodPressureRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND time >= ? AND time < ?", userID, from, to).
		Order("time ASC").
		Find(&records).Error
	return records, err
}

func (r *signalRepository) SpO2Readings(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.SpO2Record, error) {
	var records []domain.SpO2Record
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND time >= ? AND time < ?", userID, from, to).
		Order("time ASC").
		Find(&records).Error
	return records, err
}
