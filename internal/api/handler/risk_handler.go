package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/somnia-app/somnia-api/internal/domain"
	"github.com/somnia-app/somnia-api/internal/service"
	"github.com/somnia-app/somnia-api/pkg/problem"
)

type RiskHandler struct {
	service service.RiskService
}

func NewRiskHandler(service service.RiskService) *RiskHandler {
	return &RiskHandler{service: service}
}

// Compute handles POST /v1/users/{userId}/insomnia-risk
// @Summary Compute insomnia risk
// @Description Build the feature window, call the predictive model, and store the resulting score
// @Tags insomnia-risk
// @Produce json
// @Param userId path string true "User ID" format(uuid)
// @Success 201 {object} domain.RiskScoreResponse
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 422 {object} problem.Problem
// @Failure 502 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/insomnia-risk [post]
func (h *RiskHandler) Compute(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	response, err := h.service.ComputeAndStore(r.Context(), userID, 0)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			problem.NotFound("User not found").Write(w)
		case errors.Is(err, domain.ErrInsufficientData):
			// Malformed model responses also land here.
			problem.InsufficientData("Not enough health data to compute a risk score").Write(w)
		case errors.Is(err, domain.ErrInferenceUnavailable):
			problem.BadGateway("Predictive model service is unavailable").Write(w)
		default:
			problem.InternalError("Failed to compute risk score").Write(w)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(response)
}

// Latest handles GET /v1/users/{userId}/insomnia-risk/latest
// @Summary Get the latest risk score
// @Tags insomnia-risk
// @Produce json
// @Param userId path string true "User ID" format(uuid)
// @Success 200 {object} domain.RiskScoreResponse
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/insomnia-risk/latest [get]
func (h *RiskHandler) Latest(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	response, err := h.service.Latest(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("No risk score found").Write(w)
			return
		}
		problem.InternalError("Failed to get latest risk score").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// History handles GET /v1/users/{userId}/insomnia-risk/history
// @Summary Get day-grouped risk history
// @Description Risk scores grouped by calendar day with per-day average and latest value, oldest first
// @Tags insomnia-risk
// @Produce json
// @Param userId path string true "User ID" format(uuid)
// @Param max_days query int false "Maximum number of day groups (default 14)"
// @Success 200 {object} domain.RiskHistoryResponse
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/insomnia-risk/history [get]
func (h *RiskHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	maxDays := 0
	if maxDaysStr := r.URL.Query().Get("max_days"); maxDaysStr != "" {
		maxDays, err = strconv.Atoi(maxDaysStr)
		if err != nil || maxDays < 0 {
			problem.ValidationError("Invalid query parameters", []problem.FieldError{{
				Field:   "max_days",
				Message: "must be a non-negative integer",
			}}).Write(w)
			return
		}
	}

	response, err := h.service.History(r.Context(), userID, maxDays)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to get risk history").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
