package llm

import (
	"context"
	"strings"
	"testing"

	"github.com/ppiankov/claimguard/internal/model"
)

// MockProvider implements the Provider interface for testing
type MockProvider struct {
	name      string
	available bool
	response  *NarrateResponse
	err       error
}

func (m *MockProvider) Name() string {
	return m.name
}

func (m *MockProvider) Narrate(ctx context.Context, req NarrateRequest) (*NarrateResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func (m *MockProvider) IsAvailable(ctx context.Context) bool {
	return m.available
}

func TestNewNarrator_DisabledProvider(t *testing.T) {
	narrator, err := NewNarrator(Config{Provider: ""})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if narrator.IsEnabled() {
		t.Error("Expected narrator to be disabled")
	}
	if narrator.ProviderName() != "" {
		t.Error("Expected empty provider name when disabled")
	}
}

func TestNewNarrator_UnknownProvider(t *testing.T) {
	if _, err := NewNarrator(Config{Provider: "palm"}); err == nil {
		t.Fatal("Expected error for unknown provider")
	}
}

func TestNarrator_Generate_Disabled(t *testing.T) {
	narrator := &Narrator{provider: nil, config: Config{}}

	narrative, err := narrator.Generate(context.Background(), testAnalysis())
	if err != nil {
		t.Errorf("Expected no error when disabled, got %v", err)
	}
	if narrative != nil {
		t.Error("Expected nil narrative when provider disabled")
	}
}

func TestNarrator_Generate_ProviderUnavailable(t *testing.T) {
	narrator := &Narrator{
		provider: &MockProvider{name: "test-provider", available: false},
		config:   Config{},
	}

	narrative, err := narrator.Generate(context.Background(), testAnalysis())
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if narrative == nil {
		t.Fatal("Expected narrative object with warning")
	}
	if narrative.Enabled {
		t.Error("Expected narrative to be marked as disabled")
	}
	if !strings.Contains(narrative.Warning, "not available") {
		t.Errorf("Expected warning about provider unavailability, got %q", narrative.Warning)
	}
}

func TestNarrator_Generate_Success(t *testing.T) {
	narrator := &Narrator{
		provider: &MockProvider{
			name:      "test-provider",
			available: true,
			response: &NarrateResponse{
				Text:       "This is a plain-language restatement.",
				Model:      "test-model",
				TokensUsed: 150,
			},
		},
		config: Config{Model: "test-model"},
	}

	narrative, err := narrator.Generate(context.Background(), testAnalysis())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if narrative == nil {
		t.Fatal("Expected narrative to be generated")
	}
	if !narrative.Enabled {
		t.Error("Expected narrative to be enabled")
	}
	if narrative.Provider != "test-provider" {
		t.Errorf("Expected provider 'test-provider', got '%s'", narrative.Provider)
	}
	if narrative.Model != "test-model" {
		t.Errorf("Expected model 'test-model', got '%s'", narrative.Model)
	}
	if narrative.Text != "This is a plain-language restatement." {
		t.Errorf("Unexpected narrative text: %q", narrative.Text)
	}
	if narrative.Warning != "" {
		t.Errorf("Expected no warning on success, got %q", narrative.Warning)
	}
}

func TestNarrator_Generate_ProviderErrorDegradesGracefully(t *testing.T) {
	narrator := &Narrator{
		provider: &MockProvider{
			name:      "test-provider",
			available: true,
			err:       &mockError{msg: "API rate limit exceeded"},
		},
		config: Config{Model: "test-model"},
	}

	narrative, err := narrator.Generate(context.Background(), testAnalysis())

	// Narration failures must never fail the analysis itself
	if err != nil {
		t.Errorf("Expected no error (graceful degradation), got %v", err)
	}
	if narrative == nil {
		t.Fatal("Expected narrative with error warning")
	}
	if !narrative.Enabled {
		t.Error("Expected narrative to be marked as enabled (but failed)")
	}
	if !strings.Contains(narrative.Warning, "failed") || !strings.Contains(narrative.Warning, "rate limit") {
		t.Errorf("Expected warning to mention the error, got %q", narrative.Warning)
	}
	if narrative.Text != "" {
		t.Errorf("Expected empty text on failure, got %q", narrative.Text)
	}
}

func TestNewProvider_Selection(t *testing.T) {
	provider, err := NewProvider(Config{Provider: ""})
	if err != nil {
		t.Fatalf("Expected no error for disabled provider, got %v", err)
	}
	if provider != nil {
		t.Error("Expected nil provider when disabled")
	}

	if _, err := NewProvider(Config{Provider: "openai", APIKey: "k"}); err != nil {
		t.Errorf("Expected openai provider to build, got %v", err)
	}
	if _, err := NewProvider(Config{Provider: "claude", APIKey: "k"}); err != nil {
		t.Errorf("Expected claude alias to build anthropic provider, got %v", err)
	}
	if _, err := NewProvider(Config{Provider: "mistral"}); err == nil {
		t.Error("Expected error for unsupported provider")
	}
}

func TestConfigFromModel(t *testing.T) {
	config := ConfigFromModel(model.LLMConfig{
		Provider: "openai",
		Model:    "gpt-4o-mini",
		APIKey:   "k",
		BaseURL:  "http://localhost:11434/v1",
	})

	if config.Provider != "openai" || config.Model != "gpt-4o-mini" {
		t.Errorf("Expected provider fields carried over, got %+v", config)
	}
	if config.Timeout <= 0 || config.MaxTokens <= 0 {
		t.Error("Expected defaults filled for timeout and max tokens")
	}
}

func TestBuildPrompt_BasicStructure(t *testing.T) {
	prompt := BuildPrompt(testAnalysis())

	requiredElements := []string{
		"CRITICAL RULES",
		"Never say the claim is true or false",
		"DO NOT introduce variables",
		"Coffee causes poor sleep",
		"Domain: health",
		"Ladder rung: L2",
		"Exposure (X): coffee",
		"Outcome (Y): sleep quality",
		"sleep, age, stress, workload",
		"T(m, c) = (0.70, 0.60)",
		"Sources scored: 1",
		"Estimand:",
	}

	for _, element := range requiredElements {
		if !strings.Contains(prompt, element) {
			t.Errorf("Expected prompt to contain '%s'", element)
		}
	}
}

func TestBuildPrompt_NoConfounders(t *testing.T) {
	a := testAnalysis()
	a.Template.Z = nil
	a.Estimand = model.EstimandResult{Identifiable: false, Reason: "Back-door not satisfied with available variables; require experiment or instrument."}

	prompt := BuildPrompt(a)

	if !strings.Contains(prompt, "Confounders (Z): (none)") {
		t.Error("Expected (none) placeholder for empty confounders")
	}
	if strings.Contains(prompt, "- Estimand:") {
		t.Error("Expected no estimand line when not identifiable")
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Provider != "" {
		t.Errorf("Expected provider to be empty (disabled), got '%s'", config.Provider)
	}
	if config.Timeout <= 0 {
		t.Error("Expected positive timeout")
	}
	if config.MaxTokens <= 0 {
		t.Error("Expected positive max tokens")
	}
}

func TestAllowedURLs_FiltersNonURLLabels(t *testing.T) {
	a := model.Analysis{
		SourceTrust: []model.TrustTuple{
			{Source: "https://example.com/study"},
			{Source: "Sleep study"},
			{Source: "http://example.org/paper"},
			{Source: "unknown"},
		},
	}

	urls := allowedURLs(a)

	if len(urls) != 2 {
		t.Fatalf("Expected 2 URLs, got %d: %v", len(urls), urls)
	}
	if urls[0] != "https://example.com/study" || urls[1] != "http://example.org/paper" {
		t.Errorf("Unexpected URLs: %v", urls)
	}
}

func TestExtractURLs_DeduplicatesAndTrims(t *testing.T) {
	text := "See https://example.com/a. Also https://example.com/a and https://example.com/b;"

	urls := extractURLs(text)

	if len(urls) != 2 {
		t.Fatalf("Expected 2 unique URLs, got %d: %v", len(urls), urls)
	}
	if urls[0] != "https://example.com/a" || urls[1] != "https://example.com/b" {
		t.Errorf("Expected trailing punctuation trimmed, got %v", urls)
	}
}

// Mock error type for testing
type mockError struct {
	msg string
}

func (e *mockError) Error() string {
	return e.msg
}
