package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"
)

// Fixed sampling configuration: low temperature for consistent structured
// output, generous output budget to avoid truncated JSON.
const (
	genTemperature     float32 = 0.3
	genTopP            float32 = 0.8
	genTopK            float32 = 40
	genMaxOutputTokens int32   = 4096
)

type ModelTier string

const (
	TierFast    ModelTier = "fast"
	TierCapable ModelTier = "capable"
)

// ModelCandidate names one generation endpoint and its capability tier.
type ModelCandidate struct {
	Name string
	Tier ModelTier
}

// defaultModelCandidates is tried strictly in order: newest fast models
// first, then the flash alias, then the capable variants and alias.
var defaultModelCandidates = []ModelCandidate{
	{Name: "models/gemini-2.5-flash", Tier: TierFast},
	{Name: "models/gemini-2.0-flash", Tier: TierFast},
	{Name: "models/gemini-flash-latest", Tier: TierFast},
	{Name: "models/gemini-2.5-pro", Tier: TierCapable},
	{Name: "models/gemini-pro-latest", Tier: TierCapable},
}

type generateFunc func(ctx context.Context, model, prompt string) (string, error)

// Analyzer tries each model candidate in order until one returns a reply
// that parses as JSON.
type Analyzer struct {
	candidates []ModelCandidate
	generate   generateFunc
}

// AllModelsFailedError is returned when every candidate failed; it wraps
// the last recorded failure.
type AllModelsFailedError struct {
	Last error
}

func (e *AllModelsFailedError) Error() string {
	if e.Last == nil {
		return "no model produced a usable response"
	}
	return fmt.Sprintf("all models failed, last error: %v", e.Last)
}

func (e *AllModelsFailedError) Unwrap() error { return e.Last }

// NewGeminiAnalyzer builds an Analyzer backed by the Gemini API.
func NewGeminiAnalyzer(ctx context.Context, apiKey string, httpTimeout time.Duration) (*Analyzer, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: httpTimeout},
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	gen := func(ctx context.Context, model, prompt string) (string, error) {
		resp, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), &genai.GenerateContentConfig{
			Temperature:     genai.Ptr(genTemperature),
			TopP:            genai.Ptr(genTopP),
			TopK:            genai.Ptr(genTopK),
			MaxOutputTokens: genMaxOutputTokens,
		})
		if err != nil {
			return "", err
		}
		return resp.Text(), nil
	}

	return &Analyzer{candidates: defaultModelCandidates, generate: gen}, nil
}

// Invoke sends the prompt to each candidate in order and returns the first
// reply that parses as JSON. Endpoint and decode failures are logged and
// recovered by advancing to the next candidate; only total exhaustion is
// fatal.
func (a *Analyzer) Invoke(ctx context.Context, prompt string) (AnalysisResult, error) {
	var lastErr error
	for _, candidate := range a.candidates {
		slog.Info("model attempt", "model", candidate.Name, "tier", candidate.Tier)

		reply, err := a.generate(ctx, candidate.Name, prompt)
		if err != nil {
			slog.Warn("model unavailable", "model", candidate.Name, "error", err)
			lastErr = err
			continue
		}

		cleaned := stripCodeFence(reply)
		var result AnalysisResult
		if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
			slog.Error("reply is not valid json", "model", candidate.Name, "error", err, "reply", truncate(cleaned, 500))
			lastErr = fmt.Errorf("invalid reply from %s: %w (reply: %s)", candidate.Name, err, truncate(cleaned, 500))
			continue
		}

		slog.Info("analysis completed", "model", candidate.Name)
		return result, nil
	}
	return nil, &AllModelsFailedError{Last: lastErr}
}

// stripCodeFence removes Markdown triple-backtick wrapping from a model
// reply: the segment after an opening fence is kept, a leading "json"
// language tag is dropped, and stray fence markers are removed.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		parts := strings.Split(text, "```")
		if len(parts) > 1 {
			text = parts[1]
		}
		if strings.HasPrefix(text, "json") {
			text = text[4:]
		}
	}
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
