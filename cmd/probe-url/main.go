// Test program to demonstrate URL signal extraction
// This shows type inference, year inference and trust bonuses working
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ppiankov/claimguard/internal/model"
	"github.com/ppiankov/claimguard/internal/probe"
	"github.com/ppiankov/claimguard/internal/trust"
)

func main() {
	urls := os.Args[1:]
	if len(urls) == 0 {
		// Known hosts covering the inference rules
		urls = []string{
			"https://pubmed.ncbi.nlm.nih.gov/31234567/",
			"https://www.cdc.gov/sleep/about/index.html",
			"https://example.medium.com/coffee-and-sleep",
		}
	}

	cfg := model.DefaultConfig()
	analyzer := probe.NewAnalyzer(cfg.HTTP, cfg.Signals, nil)
	engine := trust.NewEngine(nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fmt.Println("=== URL Signal Probe ===")
	fmt.Println()

	for _, url := range urls {
		fmt.Printf("Probing: %s\n", url)
		fmt.Println(strings.Repeat("-", 60))

		sig := analyzer.Analyze(ctx, url)
		fmt.Printf("  Host:           %s\n", sig.Host)
		fmt.Printf("  TLD:            %s\n", sig.TLD)
		fmt.Printf("  Inferred type:  %s\n", sig.InferredType)
		if sig.InferredYear != 0 {
			fmt.Printf("  Inferred year:  %d\n", sig.InferredYear)
		}
		fmt.Printf("  Content OK:     %v (%d bytes)\n", sig.ContentOK, sig.ContentLength)
		fmt.Printf("  Details:        %s\n", sig.Details)

		tuple := engine.ScoreSource(model.SourceRef{URL: url}, &sig)
		fmt.Printf("  Trust:          T(m, c) = (%.2f, %.2f)\n", tuple.M, tuple.C)
		fmt.Printf("                  %s\n", tuple.Details)
		fmt.Println()
	}

	fmt.Println("=== Probe Complete ===")
	fmt.Println()
	fmt.Println("Note: signals depend on network access and page contents.")
	fmt.Println("Unreachable URLs degrade to unknown signals instead of failing.")
}
