package llm

import (
	"context"
	"fmt"

	"github.com/ppiankov/claimguard/internal/model"
)

// Narrator wraps an optional provider and degrades gracefully: narration
// failures become warnings on the result, never errors for the caller. The
// deterministic analysis is computed before narration and is never altered
// by it.
type Narrator struct {
	provider Provider
	config   Config
}

// NewNarrator creates a narrator from configuration. An empty provider name
// yields a disabled narrator, not an error.
func NewNarrator(config Config) (*Narrator, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	return &Narrator{provider: provider, config: config}, nil
}

// IsEnabled reports whether a provider is configured
func (n *Narrator) IsEnabled() bool {
	return n.provider != nil
}

// ProviderName returns the configured provider name, empty when disabled
func (n *Narrator) ProviderName() string {
	if n.provider == nil {
		return ""
	}
	return n.provider.Name()
}

// Generate produces the optional narrative for a finished analysis. A nil
// result means narration is disabled. Failures land in the Warning field.
func (n *Narrator) Generate(ctx context.Context, analysis model.Analysis) (*model.LLMNarrative, error) {
	if n.provider == nil {
		return nil, nil
	}

	if !n.provider.IsAvailable(ctx) {
		return &model.LLMNarrative{
			Enabled:  false,
			Provider: n.provider.Name(),
			Warning:  fmt.Sprintf("LLM provider %s is not available; narrative skipped", n.provider.Name()),
		}, nil
	}

	resp, err := n.provider.Narrate(ctx, NarrateRequest{Analysis: analysis})
	if err != nil {
		return &model.LLMNarrative{
			Enabled:  true,
			Provider: n.provider.Name(),
			Model:    n.config.Model,
			Warning:  fmt.Sprintf("narrative generation failed: %v", err),
		}, nil
	}

	return &model.LLMNarrative{
		Enabled:  true,
		Provider: n.provider.Name(),
		Model:    resp.Model,
		Text:     resp.Text,
	}, nil
}
