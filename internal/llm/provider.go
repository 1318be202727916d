package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/claimguard/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Narrate rewrites a finished analysis as plain language without
	// altering any of its verdicts
	Narrate(ctx context.Context, req NarrateRequest) (*NarrateResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// NarrateRequest contains the input for LLM narration
type NarrateRequest struct {
	// Analysis is the finished deterministic analysis to restate
	Analysis model.Analysis

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// NarrateResponse contains the LLM's narrative output
type NarrateResponse struct {
	// Text is the generated narrative
	Text string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (OpenAI-compatible local runtimes included)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Model:     "",
		Timeout:   30,
		MaxTokens: 600,
	}
}

// BuildPrompt constructs the default narration prompt. The deterministic
// analysis is authoritative: the prompt forbids the model from changing
// verdicts, inventing variables, or citing sources beyond those scored.
func BuildPrompt(a model.Analysis) string {
	prompt := fmt.Sprintf(`You are restating a causal-claim analysis for a general reader. The analysis below is authoritative - you NEVER change its verdicts, labels, or numbers.

CRITICAL RULES:
1. Never say the claim is true or false - describe only what the analysis found.
2. DO NOT introduce variables, confounders, or sources beyond those listed.
3. Keep every number exactly as given (ladder rung, trust, confidence).
4. If no evidence sources were scored, state that explicitly.

Analysis:
- Claim: %q
- Domain: %s
- Ladder rung: %s
- Exposure (X): %s
- Outcome (Y): %s
- Confounders (Z): %s
- Effect identifiable: %v
- Aggregated trust: T(m, c) = (%.2f, %.2f)
- Sources scored: %d
`,
		a.TextClaim,
		a.Domain,
		a.Rung,
		a.Template.X,
		a.Template.Y,
		joinConfounders(a.Template.Z),
		a.Estimand.Identifiable,
		a.AggregatedTrust.M,
		a.AggregatedTrust.C,
		len(a.SourceTrust),
	)

	if a.Estimand.Identifiable && a.Estimand.Expression != "" {
		prompt += fmt.Sprintf("- Estimand: %s\n", a.Estimand.Expression)
	}

	prompt += "\nRewrite this in 3-4 plain sentences a non-statistician can follow."

	return prompt
}

// Helper functions

func joinConfounders(z []string) string {
	if len(z) == 0 {
		return "(none)"
	}
	return strings.Join(z, ", ")
}

// allowedURLs collects the source labels that look like URLs; the narrative
// must not cite anything outside this list
func allowedURLs(a model.Analysis) []string {
	var urls []string
	for _, t := range a.SourceTrust {
		if strings.HasPrefix(t.Source, "http://") || strings.HasPrefix(t.Source, "https://") {
			urls = append(urls, t.Source)
		}
	}
	return urls
}
