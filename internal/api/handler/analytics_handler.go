package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/somnia-app/somnia-api/internal/domain"
	"github.com/somnia-app/somnia-api/internal/service"
	"github.com/somnia-app/somnia-api/pkg/problem"
)

type AnalyticsHandler struct {
	service service.AnalyticsService
}

func NewAnalyticsHandler(service service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// decodeSessionList reads the optional session payload. GET requests and
// empty bodies yield a nil request, which selects server-side data.
func decodeSessionList(r *http.Request) (*domain.SessionListRequest, error) {
	if r.Body == nil {
		return nil, nil
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, nil
	}

	var req domain.SessionListRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// WeeklyPattern handles GET|POST /v1/users/{userId}/sleep/weekly-pattern
// @Summary Get the trailing 7-day sleep pattern
// @Description Per-day sleep duration and average quality for the trailing week. POST accepts client-read sessions in the body.
// @Tags sleep-analytics
// @Accept json
// @Produce json
// @Param userId path string true "User ID" format(uuid)
// @Param request body domain.SessionListRequest false "Client-supplied sessions"
// @Success 200 {object} domain.WeeklyPatternResponse
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/sleep/weekly-pattern [post]
func (h *AnalyticsHandler) WeeklyPattern(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	req, err := decodeSessionList(r)
	if err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	response, err := h.service.WeeklyPattern(r.Context(), userID, req)
	if err != nil {
		writeAnalyticsError(w, err, "Failed to build weekly pattern")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// Statistics handles GET|POST /v1/users/{userId}/sleep/statistics
// @Summary Get weekly, monthly, and yearly sleep statistics
// @Description Aggregated sleep statistics, tagged with the fidelity of the data source. POST accepts client-read sessions in the body.
// @Tags sleep-analytics
// @Accept json
// @Produce json
// @Param userId path string true "User ID" format(uuid)
// @Param request body domain.SessionListRequest false "Client-supplied sessions"
// @Success 200 {object} domain.StatisticsSummary
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/sleep/statistics [post]
func (h *AnalyticsHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	req, err := decodeSessionList(r)
	if err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	response, err := h.service.Statistics(r.Context(), userID, req)
	if err != nil {
		writeAnalyticsError(w, err, "Failed to compute statistics")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// HistorySummary handles GET|POST /v1/users/{userId}/sleep/history
// @Summary Get the sleep history summary
// @Description Average sleep time, efficiency, deep sleep, weekly pattern, and recent sessions over the trailing 30 days.
// @Tags sleep-analytics
// @Accept json
// @Produce json
// @Param userId path string true "User ID" format(uuid)
// @Param request body domain.SessionListRequest false "Client-supplied sessions"
// @Success 200 {object} domain.SleepHistorySummary
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/sleep/history [post]
func (h *AnalyticsHandler) HistorySummary(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	req, err := decodeSessionList(r)
	if err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	response, err := h.service.HistorySummary(r.Context(), userID, req)
	if err != nil {
		writeAnalyticsError(w, err, "Failed to build sleep history")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func writeAnalyticsError(w http.ResponseWriter, err error, detail string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		problem.NotFound("User not found").Write(w)
	case errors.Is(err, domain.ErrInvalidInput):
		problem.BadRequest("Invalid session payload").Write(w)
	default:
		problem.InternalError(detail).Write(w)
	}
}
