package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/somnia-app/somnia-api/internal/domain"
	"github.com/somnia-app/somnia-api/internal/repository"
	"github.com/somnia-app/somnia-api/internal/sleep"
	"github.com/somnia-app/somnia-api/pkg/pagination"
)

// SleepSessionService lists stored sessions with derived classification and
// quality attached. Sessions themselves are written by upstream ingestion.
type SleepSessionService interface {
	List(ctx context.Context, userID uuid.UUID, filter domain.SleepSessionFilter) (*domain.SleepSessionListResponse, error)
}

type sleepSessionService struct {
	repo     repository.SleepSessionRepository
	userRepo repository.UserRepository
}

func NewSleepSessionService(repo repository.SleepSessionRepository, userRepo repository.UserRepository) SleepSessionService {
	return &sleepSessionService{repo: repo, userRepo: userRepo}
}

func (s *sleepSessionService) List(ctx context.Context, userID uuid.UUID, filter domain.SleepSessionFilter) (*domain.SleepSessionListResponse, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	sessions, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	limit := pagination.NormalizeLimit(filter.Limit)
	hasMore := len(sessions) > limit

	// Trim to actual limit
	if hasMore {
		sessions = sessions[:limit]
	}

	response := &domain.SleepSessionListResponse{
		Data: make([]domain.SleepSessionResponse, len(sessions)),
		Pagination: domain.PaginationResponse{
			HasMore: hasMore,
		},
	}

	for i := range sessions {
		response.Data[i] = SessionResponse(&sessions[i])
	}

	// Set next cursor if there are more results
	if hasMore && len(sessions) > 0 {
		last := sessions[len(sessions)-1]
		cursor := &pagination.Cursor{
			ID:        last.ID,
			StartTime: last.StartTime,
		}
		response.Pagination.NextCursor = cursor.Encode()
	}

	return response, nil
}

// SessionResponse builds the response shape for one session, attaching the
// computed nap classification and quality score.
func SessionResponse(s *domain.SleepSession) domain.SleepSessionResponse {
	isNap := sleep.IsNap(s)
	return domain.SleepSessionResponse{
		ID:             s.ID,
		UserID:         s.UserID,
		StartTime:      s.StartTime,
		EndTime:        s.EndTime,
		DurationHours:  s.DurationHours(),
		AwakeSeconds:   s.AwakeSeconds,
		Awakenings:     s.Awakenings,
		IsNap:          isNap,
		QualityPercent: sleep.QualityPercent(s, isNap),
		CreatedAt:      s.CreatedAt,
	}
}
