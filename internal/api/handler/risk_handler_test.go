package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/somnia-app/somnia-api/internal/domain"
)

func TestRiskHandler_Compute(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		userID         string
		mockService    *MockRiskService
		wantStatusCode int
	}{
		{
			name:   "successful computation",
			userID: userID.String(),
			mockService: &MockRiskService{
				computeFunc: func(ctx context.Context, id uuid.UUID, windowDays int) (*domain.RiskScoreResponse, error) {
					return &domain.RiskScoreResponse{
						ID:         uuid.New(),
						UserID:     id,
						Risk:       0.42,
						WindowDays: 21,
						Source:     domain.RiskScoreSourceModel,
					}, nil
				},
			},
			wantStatusCode: http.StatusCreated,
		},
		{
			name:           "invalid UUID",
			userID:         "not-a-uuid",
			mockService:    &MockRiskService{},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:   "non-existing user",
			userID: uuid.New().String(),
			mockService: &MockRiskService{
				computeFunc: func(ctx context.Context, id uuid.UUID, windowDays int) (*domain.RiskScoreResponse, error) {
					return nil, domain.ErrNotFound
				},
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:   "insufficient data",
			userID: userID.String(),
			mockService: &MockRiskService{
				computeFunc: func(ctx context.Context, id uuid.UUID, windowDays int) (*domain.RiskScoreResponse, error) {
					return nil, fmt.Errorf("%w: 5 of 21 days populated", domain.ErrInsufficientData)
				},
			},
			wantStatusCode: http.StatusUnprocessableEntity,
		},
		{
			name:   "malformed model response",
			userID: userID.String(),
			mockService: &MockRiskService{
				computeFunc: func(ctx context.Context, id uuid.UUID, windowDays int) (*domain.RiskScoreResponse, error) {
					return nil, domain.ErrMalformedResponse
				},
			},
			wantStatusCode: http.StatusUnprocessableEntity,
		},
		{
			name:   "model service unavailable",
			userID: userID.String(),
			mockService: &MockRiskService{
				computeFunc: func(ctx context.Context, id uuid.UUID, windowDays int) (*domain.RiskScoreResponse, error) {
					return nil, fmt.Errorf("%w: connection refused", domain.ErrInferenceUnavailable)
				},
			},
			wantStatusCode: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewRiskHandler(tt.mockService)

			req := httptest.NewRequest(http.MethodPost, "/v1/users/"+tt.userID+"/insomnia-risk", nil)
			req = withUserIDParam(req, tt.userID)
			rec := httptest.NewRecorder()

			handler.Compute(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("Compute() status = %d, want %d, body: %s", rec.Code, tt.wantStatusCode, rec.Body.String())
			}

			if tt.wantStatusCode == http.StatusCreated {
				var response domain.RiskScoreResponse
				if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
					t.Errorf("Failed to decode response: %v", err)
				}
				if response.Risk != 0.42 {
					t.Errorf("Compute() risk = %v, want 0.42", response.Risk)
				}
			}
		})
	}
}

func TestRiskHandler_Latest(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		userID         string
		mockService    *MockRiskService
		wantStatusCode int
	}{
		{
			name:   "existing score",
			userID: userID.String(),
			mockService: &MockRiskService{
				latestFunc: func(ctx context.Context, id uuid.UUID) (*domain.RiskScoreResponse, error) {
					return &domain.RiskScoreResponse{ID: uuid.New(), UserID: id, Risk: 0.31}, nil
				},
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "no score yet",
			userID:         userID.String(),
			mockService:    &MockRiskService{},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:           "invalid UUID",
			userID:         "not-a-uuid",
			mockService:    &MockRiskService{},
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewRiskHandler(tt.mockService)

			req := httptest.NewRequest(http.MethodGet, "/v1/users/"+tt.userID+"/insomnia-risk/latest", nil)
			req = withUserIDParam(req, tt.userID)
			rec := httptest.NewRecorder()

			handler.Latest(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("Latest() status = %d, want %d, body: %s", rec.Code, tt.wantStatusCode, rec.Body.String())
			}
		})
	}
}

func TestRiskHandler_History(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		userID         string
		query          string
		mockService    *MockRiskService
		wantStatusCode int
		wantMaxDays    int
	}{
		{
			name:   "default window",
			userID: userID.String(),
			mockService: &MockRiskService{
				historyFunc: func(ctx context.Context, id uuid.UUID, maxDays int) (*domain.RiskHistoryResponse, error) {
					return &domain.RiskHistoryResponse{
						UserID:  id,
						MaxDays: 14,
						Days: []domain.RiskHistoryDay{
							{Date: "2024-01-15", Avg: 0.4, Latest: 0.5, Samples: 2},
						},
					}, nil
				},
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "invalid max_days",
			userID:         userID.String(),
			query:          "?max_days=many",
			mockService:    &MockRiskService{},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "negative max_days",
			userID:         userID.String(),
			query:          "?max_days=-3",
			mockService:    &MockRiskService{},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "invalid UUID",
			userID:         "not-a-uuid",
			mockService:    &MockRiskService{},
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewRiskHandler(tt.mockService)

			req := httptest.NewRequest(http.MethodGet, "/v1/users/"+tt.userID+"/insomnia-risk/history"+tt.query, nil)
			req = withUserIDParam(req, tt.userID)
			rec := httptest.NewRecorder()

			handler.History(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("History() status = %d, want %d, body: %s", rec.Code, tt.wantStatusCode, rec.Body.String())
			}

			if tt.wantStatusCode == http.StatusOK {
				var response domain.RiskHistoryResponse
				if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
					t.Errorf("Failed to decode response: %v", err)
				}
				if len(response.Days) != 1 {
					t.Errorf("History() returned %d days, want 1", len(response.Days))
				}
			}
		})
	}
}

func TestRiskHandler_History_PassesMaxDays(t *testing.T) {
	userID := uuid.New()
	var gotMaxDays int

	mockService := &MockRiskService{
		historyFunc: func(ctx context.Context, id uuid.UUID, maxDays int) (*domain.RiskHistoryResponse, error) {
			gotMaxDays = maxDays
			return &domain.RiskHistoryResponse{UserID: id, MaxDays: maxDays, Days: []domain.RiskHistoryDay{}}, nil
		},
	}
	handler := NewRiskHandler(mockService)

	req := httptest.NewRequest(http.MethodGet, "/v1/users/"+userID.String()+"/insomnia-risk/history?max_days=7", nil)
	req = withUserIDParam(req, userID.String())
	rec := httptest.NewRecorder()

	handler.History(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("History() status = %d, want %d", rec.Code, http.StatusOK)
	}
	if gotMaxDays != 7 {
		t.Errorf("History() maxDays = %d, want 7", gotMaxDays)
	}
}
