package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultChatCompletionsURL = "https://api.openai.com/v1/chat/completions"

// BackendConfig configures the chat-completions endpoint and HTTP behavior.
type BackendConfig struct {
	BaseURL    string
	APIKey     string
	Model      string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// BackendScorer asks an OpenAI-compatible chat-completions endpoint for a
// structured {score, reasoning} verdict. One attempt per call, bounded by
// the configured timeout.
type BackendScorer struct {
	cfg BackendConfig
}

func NewBackendScorer(cfg BackendConfig) *BackendScorer {
	if cfg.HTTPClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 8 * time.Second
		}
		cfg.HTTPClient = &http.Client{Timeout: timeout}
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = defaultChatCompletionsURL
	}
	return &BackendScorer{cfg: cfg}
}

type chatCompletionRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat *respFormat   `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type respFormat struct {
	Type string `json:"type"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (s *BackendScorer) Score(ctx context.Context, in Input) (Result, error) {
	prompt := buildPrompt(in)

	payload := chatCompletionRequest{
		Model: s.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a tenant screening assistant. Reply with a JSON object only."},
			{Role: "user", Content: prompt},
		},
		ResponseFormat: &respFormat{Type: "json_object"},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Result{}, fmt.Errorf("marshal scoring request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.BaseURL, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("build scoring request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.cfg.HTTPClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("call scoring backend: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Result{}, fmt.Errorf("read scoring response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("scoring backend returned status %d", resp.StatusCode)
	}

	var cc chatCompletionResponse
	if err := json.Unmarshal(raw, &cc); err != nil {
		return Result{}, fmt.Errorf("decode scoring response: %w", err)
	}
	if len(cc.Choices) == 0 {
		return Result{}, fmt.Errorf("scoring backend returned no choices")
	}

	var out Result
	if err := json.Unmarshal([]byte(cc.Choices[0].Message.Content), &out); err != nil {
		return Result{}, fmt.Errorf("decode scoring verdict: %w", err)
	}
	if strings.TrimSpace(out.Reasoning) == "" {
		return Result{}, fmt.Errorf("scoring verdict has empty reasoning")
	}
	out.Score = clampScore(out.Score)

	return out, nil
}

func buildPrompt(in Input) string {
	return fmt.Sprintf(`Analyze this tenant profile for a rental property priced at RM%d/month.

Tenant Data:
- Occupation: %s
- Income: RM%d
- Pax: %d Adults, %d Kids
- Contract: %d months

Criteria:
1. Rent-to-Income Ratio (Ideal is < 30%%)
2. Employment Stability (Implied by occupation)
3. Family composition vs Property fit (Assuming average sized unit)

Return a JSON object with:
- score: Integer 0-100
- reasoning: A short sentence summarizing the risk assessment.`,
		in.MonthlyRent,
		in.Occupation,
		in.MonthlyIncome,
		in.PaxAdults,
		in.PaxKids,
		in.ContractPeriod,
	)
}
