package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/somnia-app/somnia-api/internal/domain"
	"gorm.io/gorm"
)

// RiskScoreRepository is append-only: scores are created and read, never
// updated or deleted.
type RiskScoreRepository interface {
	Create(ctx context.Context, score *domain.RiskScore) error
	Latest(ctx context.Context, userID uuid.UUID) (*domain.RiskScore, error)
	ListAll(ctx context.Context, userID uuid.UUID) ([]domain.RiskScore, error)
}

type riskScoreRepository struct {
	db *gorm.DB
}

func NewRiskScoreRepository(db *gorm.DB) RiskScoreRepository {
	return &riskScoreRepository{db: db}
}

func (r *riskScoreRepository) Create(ctx context.Context, score *domain.RiskScore) error {
	return r.db.WithContext(ctx).Create(score).Error
}

func (r *riskScoreRepository) Latest(ctx context.Context, userID uuid.UUID) (*domain.RiskScore, error) {
	var score domain.RiskScore
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&score).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &score, nil
}

func (r *riskScoreRepository) ListAll(ctx context.Context, userID uuid.UUID) ([]domain.RiskScore, error) {
	var scores []domain.RiskScore
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&scores).Error
	return scores, err
}
