package llm

import (
	"fmt"
	"strings"

	"github.com/ppiankov/claimguard/internal/model"
)

// NewProvider creates a new LLM provider based on configuration
func NewProvider(config Config) (Provider, error) {
	provider := strings.ToLower(config.Provider)

	switch provider {
	case "openai":
		return NewOpenAIProvider(config)

	case "anthropic", "claude":
		return NewAnthropicProvider(config)

	case "":
		// No provider configured - return nil (LLM disabled)
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, anthropic)", config.Provider)
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(modelConfig model.LLMConfig) Config {
	config := DefaultConfig()
	config.Provider = modelConfig.Provider
	config.Model = modelConfig.Model
	config.APIKey = modelConfig.APIKey
	config.BaseURL = modelConfig.BaseURL
	return config
}
