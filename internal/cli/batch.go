package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/ppiankov/claimguard/internal/pipeline"
	"github.com/ppiankov/claimguard/internal/worker"
)

var (
	batchConcurrency int
	batchDomain      string
	outputDir        string
	batchTimeout     time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Analyze multiple claims from a file in parallel",
	Long: `Batch analyzes multiple claims concurrently:
- Read claims from input file (one per line; lines starting with { are parsed as JSON claims)
- Analyze claims in parallel with configurable worker count
- Each analysis probes its evidence URLs concurrently
- Write one JSON analysis per claim

Example:
  claimguard batch claims.txt
  claimguard batch claims.txt --concurrency 10 --output-dir ./analyses
  claimguard batch claims.txt --domain finance --timeout 5m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Concurrency flags
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "number of concurrent workers (default from config)")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./claimguard-analyses", "output directory for analyses")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	// Input flags
	batchCmd.Flags().StringVar(&batchDomain, "domain", "", "vocabulary domain for claims that name none")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable URL signal cache (force fresh probes)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(cmd.Context(), batchTimeout)
	defer cancel()

	if noCache {
		cfg.Cache.Enabled = false
	}

	concurrency := batchConcurrency
	if concurrency <= 0 {
		concurrency = cfg.Concurrency.BatchWorkers
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  ClaimGuard Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	// Create output directory
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return eris.Wrap(err, "create output directory")
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return eris.Wrap(err, "build pipeline")
	}

	fmt.Fprintf(os.Stderr, "⚙️  Reading claims from file...\n")
	claims, err := worker.ReadClaimsFromFile(file)
	if err != nil {
		return eris.Wrap(err, "read claims")
	}

	if batchDomain != "" {
		for i := range claims {
			if claims[i].Domain == "" {
				claims[i].Domain = batchDomain
			}
		}
	}

	fmt.Fprintf(os.Stderr, "✓ Loaded %d claims\n", len(claims))
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "⚙️  Analyzing claims with %d workers...\n", concurrency)
	fmt.Fprintf(os.Stderr, "\n")

	processor := worker.NewBatchProcessor(p, concurrency)
	results := processor.ProcessClaims(ctx, claims)

	renderer := pipeline.NewRenderer(cfg.Output.Verbose)

	successCount := 0
	failureCount := 0

	for i, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Claim.Text, result.Error)
			continue
		}

		jsonPath := filepath.Join(outputDir, fmt.Sprintf("%03d-%s.json", i+1, sanitizeFilename(result.Claim.Text)))
		if err := renderer.RenderJSON(result.Analysis, jsonPath); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", result.Claim.Text, err)
			continue
		}

		successCount++
		fmt.Fprintf(os.Stderr, "✓ %s (rung: %s, trust: %.2f)\n",
			result.Claim.Text, result.Analysis.Rung, result.Analysis.AggregatedTrust.M)
	}

	// Summary
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d claims\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

// sanitizeFilename turns claim text into a safe, short file name stem
func sanitizeFilename(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "",
		"\"", "",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "-",
	)
	s = replacer.Replace(s)

	// Limit length
	if len(s) > 60 {
		s = s[:60]
	}
	if s == "" {
		s = "claim"
	}

	return s
}
