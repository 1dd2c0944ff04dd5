// Package inference holds the HTTP client for the external insomnia
// prediction service.
package inference

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/somnia-app/somnia-api/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

const tracerName = "somnia-api/inference"

// Prediction is the parsed, validated model output.
type Prediction struct {
	Risk    float64
	Message string
}

// Client calls the predictive model service.
type Client interface {
	Predict(ctx context.Context, window *domain.FeatureWindow) (*Prediction, error)
}

type client struct {
	http *resty.Client
}

// NewClient builds a client for the model service at baseURL. The timeout
// bounds the whole call; a timeout surfaces as ErrInferenceUnavailable, not
// as a process failure.
func NewClient(baseURL string, timeout time.Duration) Client {
	return &client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Content-Type", "application/json"),
	}
}

type predictRequest struct {
	PersonID string                      `json:"person_id"`
	Days     []domain.DailyFeatureVector `json:"days"`
}

type predictResponse struct {
	PersonID     string   `json:"person_id"`
	InsomniaRisk *float64 `json:"insomnia_risk"`
	Message      string   `json:"message"`
}

func (c *client) Predict(ctx context.Context, window *domain.FeatureWindow) (*Prediction, error) {
	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "inference.Predict")
	defer span.End()
	span.SetAttributes(
		attribute.String("user.id", window.UserID.String()),
		attribute.Int("window.days", window.WindowDays),
	)

	req := predictRequest{
		PersonID: window.UserID.String(),
		Days:     window.Days,
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		Post("/predict")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInferenceUnavailable, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: status %d", domain.ErrInferenceUnavailable, resp.StatusCode())
	}

	// The body is decoded by hand so that a 2xx response with a missing or
	// non-numeric risk value maps to ErrMalformedResponse instead of a
	// zero-valued success.
	var out predictResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	if out.InsomniaRisk == nil || math.IsNaN(*out.InsomniaRisk) || math.IsInf(*out.InsomniaRisk, 0) {
		return nil, domain.ErrMalformedResponse
	}

	risk := *out.InsomniaRisk
	if risk < 0 {
		risk = 0
	} else if risk > 1 {
		risk = 1
	}

	return &Prediction{Risk: risk, Message: out.Message}, nil
}
