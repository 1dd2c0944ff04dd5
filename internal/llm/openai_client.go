package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/somnia-app/somnia-api/internal/domain"
)

var (
	// ErrOpenAIUnavailable indicates the OpenAI service is not configured or unavailable.
	ErrOpenAIUnavailable = errors.New("OpenAI service unavailable")
	// ErrOpenAIRequest indicates an error during the OpenAI API request.
	ErrOpenAIRequest = errors.New("OpenAI request failed")
	// ErrOpenAIResponse indicates an error parsing the OpenAI response.
	ErrOpenAIResponse = errors.New("failed to parse OpenAI response")
)

const systemPrompt = `You are a non-medical sleep tracking assistant.

You receive aggregated sleep statistics, a weekly sleep pattern, and optionally the user's latest insomnia risk score. You must base your conclusions only on the provided data.

Your goals:
- Describe the user's recent sleep in clear, neutral language.
- Highlight patterns in duration, quality, consistency, and sleep debt.
- If a risk score is present, relate the suggestions to the patterns that likely drive it.
- Give practical, behavioral suggestions to improve sleep habits.

Rules:
- Do NOT provide medical advice or diagnoses.
- Do NOT mention diseases, disorders, doctors, or treatment.
- Do NOT interpret the risk score as a diagnosis; treat it as a trend signal only.
- Focus only on behavior and routines (bedtime regularity, wind-down habits, handling naps, etc.).
- If data is limited or mixed, say that explicitly.
- Be concise and concrete.

You must respond as strict JSON with exactly this shape:

{
  "summary": "2-3 sentences summarizing the user's recent sleep.",
  "observations": [
    "3-6 bullet points about patterns in duration, quality, consistency, and sleep debt."
  ],
  "guidance": [
    "3-5 concrete, non-medical suggestions tailored to these numbers.",
    "Include at least one suggestion about schedule regularity if consistency is low.",
    "Include at least one suggestion about total sleep time if sleep debt is positive."
  ]
}

No extra fields. No comments. No backticks.`

const userPromptTemplate = `Here is JSON describing this user's sleep data.

- "statistics" contains weekly, monthly, and yearly aggregates.
- "weekly_pattern" lists the trailing 7 days with duration and quality per day.
- "latest_risk", when present, is the most recent insomnia risk score in [0,1].

JSON:

%s

Based on this data, respond in the required JSON format.`

// RecommendationsLLM is the interface for generating sleep recommendations using an LLM.
type RecommendationsLLM interface {
	// GenerateRecommendations takes a context object and returns LLM-generated recommendations.
	GenerateRecommendations(ctx context.Context, recCtx *domain.RecommendationContext) (*domain.RecommendationsOutput, error)
}

// OpenAIClient implements RecommendationsLLM using the OpenAI API.
type OpenAIClient struct {
	client openai.Client
	model  string
}

// NewOpenAIClient creates a new OpenAI client for generating recommendations.
// Returns nil if apiKey is empty.
func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	if apiKey == "" {
		return nil
	}

	if model == "" {
		model = "gpt-4o-mini"
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	return &OpenAIClient{
		client: client,
		model:  model,
	}
}

// GenerateRecommendations calls OpenAI to generate sleep recommendations.
func (c *OpenAIClient) GenerateRecommendations(ctx context.Context, recCtx *domain.RecommendationContext) (*domain.RecommendationsOutput, error) {
	if c == nil {
		return nil, ErrOpenAIUnavailable
	}

	contextJSON, err := json.MarshalIndent(recCtx, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to serialize context: %v", ErrOpenAIRequest, err)
	}

	userPrompt := fmt.Sprintf(userPromptTemplate, string(contextJSON))

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenAIRequest, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices in response", ErrOpenAIResponse)
	}

	content := resp.Choices[0].Message.Content

	var output domain.RecommendationsOutput
	if err := json.Unmarshal([]byte(content), &output); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenAIResponse, err)
	}

	return &output, nil
}
