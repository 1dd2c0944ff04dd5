package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/somnia-app/somnia-api/internal/domain"
	"github.com/somnia-app/somnia-api/internal/service"
	"github.com/somnia-app/somnia-api/pkg/problem"
)

type SleepSessionHandler struct {
	service service.SleepSessionService
}

func NewSleepSessionHandler(service service.SleepSessionService) *SleepSessionHandler {
	return &SleepSessionHandler{service: service}
}

// List handles GET /v1/users/{userId}/sleep-sessions
// @Summary List sleep sessions
// @Description List a user's sleep sessions with derived nap classification and quality scores
// @Tags sleep-sessions
// @Produce json
// @Param userId path string true "User ID" format(uuid)
// @Param from query string false "Start of time range (RFC3339)"
// @Param to query string false "End of time range (RFC3339)"
// @Param limit query int false "Page size (max 100)"
// @Param cursor query string false "Pagination cursor"
// @Success 200 {object} domain.SleepSessionListResponse
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/sleep-sessions [get]
func (h *SleepSessionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	filter, fieldErrors := parseListFilter(r)
	if fieldErrors != nil {
		problem.ValidationError("Invalid query parameters", fieldErrors).Write(w)
		return
	}

	response, err := h.service.List(r.Context(), userID, filter)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to list sleep sessions").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func parseListFilter(r *http.Request) (domain.SleepSessionFilter, []problem.FieldError) {
	var filter domain.SleepSessionFilter
	var fieldErrors []problem.FieldError

	// Parse 'from' parameter
	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			fieldErrors = append(fieldErrors, problem.FieldError{
				Field:   "from",
				Message: "must be a valid RFC3339 timestamp",
			})
		} else {
			filter.From = &from
		}
	}

	// Parse 'to' parameter
	if toStr := r.URL.Query().Get("to"); toStr != "" {
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			fieldErrors = append(fieldErrors, problem.FieldError{
				Field:   "to",
				Message: "must be a valid RFC3339 timestamp",
			})
		} else {
			filter.To = &to
		}
	}

	// Parse 'limit' parameter
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			fieldErrors = append(fieldErrors, problem.FieldError{
				Field:   "limit",
				Message: "must be a non-negative integer",
			})
		} else {
			filter.Limit = limit
		}
	}

	filter.Cursor = r.URL.Query().Get("cursor")

	return filter, fieldErrors
}
