package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/somnia-app/somnia-api/internal/domain"
	"github.com/somnia-app/somnia-api/pkg/pagination"
	"gorm.io/gorm"
)

type SleepSessionRepository interface {
	Create(ctx context.Context, session *domain.SleepSession) error
	List(ctx context.Context, userID uuid.UUID, filter domain.SleepSessionFilter) ([]domain.SleepSession, error)
	ListByStartRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.SleepSession, error)
	BasicStats(ctx context.Context, userID uuid.UUID, from, to time.Time) (domain.BasicSleepStats, error)
}

type sleepSessionRepository struct {
	db *gorm.DB
}

func NewSleepSessionRepository(db *gorm.DB) SleepSessionRepository {
	return &sleepSessionRepository{db: db}
}

func (r *sleepSessionRepository) Create(ctx context.Context, session *domain.SleepSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sleepSessionRepository) List(ctx context.Context, userID uuid.UUID, filter domain.SleepSessionFilter) ([]domain.SleepSession, error) {
	query := r.db.WithContext(ctx).
		Preload("Stages").
		Where("user_id = ?", userID).
		Order("start_time DESC")

	if filter.From != nil {
		query = query.Where("start_time >= ?", filter.From)
	}
	if filter.To != nil {
		query = query.Where("start_time <= ?", filter.To)
	}

	if filter.Cursor != "" {
		cursor, err := pagination.DecodeCursor(filter.Cursor)
		if err == nil && cursor != nil {
			// DESC order: strictly older than the cursor row
			query = query.Where(
				"(start_time < ?) OR (start_time = ? AND id < ?)",
				cursor.StartTime, cursor.StartTime, cursor.ID,
			)
		}
	}

	// One extra row decides has_more
	limit := pagination.NormalizeLimit(filter.Limit)
	query = query.Limit(limit + 1)

	var sessions []domain.SleepSession
	if err := query.Find(&sessions).Error; err != nil {
		return nil, err
	}

	return sessions, nil
}

func (r *sleepSessionRepository) ListByStartRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.SleepSession, error) {
	var sessions []domain.SleepSession
	err := r.db.WithContext(ctx).
		Preload("Stages").
		Where("user_id = ? AND start_time >= ? AND start_time < ?", userID, from, to).
		Order("start_time ASC").
		Find(&sessions).Error
	return sessions, err
}

// BasicStats is the coarse aggregate used when per-session analytics are not
// needed or not possible. Duration is taken from the session bounds since
// stage rows are not loaded here.
func (r *sleepSessionRepository) BasicStats(ctx context.Context, userID uuid.UUID, from, to time.Time) (domain.BasicSleepStats, error) {
	var row struct {
		SessionCount    int
		TotalSleepHours float64
	}
	err := r.db.WithContext(ctx).
		Model(&domain.SleepSession{}).
		Select("COUNT(*) AS session_count, COALESCE(SUM(EXTRACT(EPOCH FROM (end_time - start_time)) / 3600), 0) AS total_sleep_hours").
		Where("user_id = ? AND start_time >= ? AND start_time < ?", userID, from, to).
		Scan(&row).Error
	if err != nil {
		return domain.BasicSleepStats{}, err
	}
	return domain.BasicSleepStats{
		SessionCount:    row.SessionCount,
		TotalSleepHours: row.TotalSleepHours,
	}, nil
}
