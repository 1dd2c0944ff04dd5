package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/somnia-app/somnia-api/internal/domain"
	"github.com/somnia-app/somnia-api/internal/llm"
	"github.com/somnia-app/somnia-api/internal/service"
	"github.com/somnia-app/somnia-api/pkg/problem"
)

type RecommendationHandler struct {
	service service.RecommendationService
}

func NewRecommendationHandler(service service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{service: service}
}

// Generate handles GET /v1/users/{userId}/sleep/recommendations
// @Summary Generate behavioral sleep recommendations
// @Description LLM-generated, non-medical recommendations based on the user's statistics and latest risk score
// @Tags recommendations
// @Produce json
// @Param userId path string true "User ID" format(uuid)
// @Success 200 {object} domain.RecommendationsResponse
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 503 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/sleep/recommendations [get]
func (h *RecommendationHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	response, err := h.service.Generate(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			problem.NotFound("User not found").Write(w)
		case errors.Is(err, llm.ErrOpenAIUnavailable):
			problem.ServiceUnavailable("Recommendations are not available").Write(w)
		default:
			problem.InternalError("Failed to generate recommendations").Write(w)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
