package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/ppiankov/claimguard/internal/model"
	"github.com/ppiankov/claimguard/internal/pipeline"
)

var (
	analyzeDomain  string
	analyzeSources string
	outJSON        string
	analyzeTimeout time.Duration
	noCache        bool
	noRobots       bool
	llmEnabled     bool
	llmProvider    string
	llmModel       string
	llmBaseURL     string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <claim>",
	Short: "Analyze a single causal claim",
	Long: `Analyze places a causal claim under scrutiny:
- Classify the claim on Pearl's ladder (L1 association, L2 intervention, L3 counterfactual)
- Build an editable SCM template from the domain vocabulary
- Decide back-door identifiability and derive the adjustment formula
- Score trust in the provided evidence sources, probing their URLs
- Compose a deterministic plain-language explanation

Example:
  claimguard analyze "Coffee causes poor sleep"
  claimguard analyze "Rate cut improves market stability" --domain finance
  claimguard analyze "Coffee causes poor sleep" --sources sources.json --json analysis.json
  claimguard analyze "Coffee causes poor sleep" --llm openai --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Input flags
	analyzeCmd.Flags().StringVar(&analyzeDomain, "domain", "", "vocabulary domain (default from config)")
	analyzeCmd.Flags().StringVar(&analyzeSources, "sources", "", "JSON file with evidence sources")

	// Output flags
	analyzeCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")

	// HTTP flags
	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable URL signal cache (force fresh probes)")
	analyzeCmd.Flags().BoolVar(&noRobots, "no-robots", false, "skip robots.txt checks before probing")

	// LLM flags
	analyzeCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM narrative generation")
	analyzeCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic)")
	analyzeCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
	analyzeCmd.Flags().StringVar(&llmBaseURL, "llm-base-url", "", "base URL for openai-compatible endpoints")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	text := args[0]
	ctx, cancel := context.WithTimeout(cmd.Context(), analyzeTimeout)
	defer cancel()

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Analyzing: %s\n", text)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", analyzeTimeout)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", !noCache)
		fmt.Fprintln(os.Stderr)
	}

	// Apply flag overrides
	if noCache {
		cfg.Cache.Enabled = false
	}
	if noRobots {
		cfg.HTTP.RespectRobots = false
	}
	if err := applyLLMFlags(cfg); err != nil {
		return err
	}

	sources, err := readSources(analyzeSources)
	if err != nil {
		return err
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return eris.Wrap(err, "build pipeline")
	}

	analysis, err := p.Analyze(ctx, model.Claim{
		Text:    text,
		Domain:  analyzeDomain,
		Sources: sources,
	})
	if err != nil {
		return eris.Wrap(err, "analyze claim")
	}

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "✓ Classified rung: %s\n", analysis.Rung)
		fmt.Fprintf(os.Stderr, "✓ Built template: %s -> %s (%d confounders)\n",
			analysis.Template.X, analysis.Template.Y, len(analysis.Template.Z))
		fmt.Fprintf(os.Stderr, "✓ Scored %d sources\n", len(analysis.SourceTrust))
		if analysis.LLM != nil && analysis.LLM.Enabled {
			fmt.Fprintf(os.Stderr, "✓ Generated LLM narrative using %s/%s\n", analysis.LLM.Provider, analysis.LLM.Model)
		}
		fmt.Fprintln(os.Stderr)
	}

	renderer := pipeline.NewRenderer(cfg.Output.Verbose)
	renderer.RenderSummary(analysis)

	if outJSON != "" {
		if err := renderer.RenderJSON(analysis, outJSON); err != nil {
			return eris.Wrap(err, "render JSON")
		}
		fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", outJSON)
	}

	return nil
}

// applyLLMFlags wires the narrative provider from flags and environment.
// The provider stays disabled unless --llm is given.
func applyLLMFlags(cfg *model.Config) error {
	if !llmEnabled {
		cfg.LLM.Provider = ""
		return nil
	}

	cfg.LLM.Provider = llmProvider
	cfg.LLM.Model = llmModel
	if llmBaseURL != "" {
		cfg.LLM.BaseURL = llmBaseURL
	}

	// Get API key from environment
	switch llmProvider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	}

	return nil
}

// readSources loads evidence sources from a JSON file holding an array of
// source objects. An empty path means no sources.
func readSources(path string) ([]model.SourceRef, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "read sources file")
	}

	var sources []model.SourceRef
	if err := json.Unmarshal(data, &sources); err != nil {
		return nil, eris.Wrap(err, "parse sources file")
	}

	return sources, nil
}
