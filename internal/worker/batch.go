package worker

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/claimguard/internal/model"
)

// ClaimAnalyzer runs a single claim analysis
type ClaimAnalyzer interface {
	Analyze(ctx context.Context, claim model.Claim) (*model.Analysis, error)
}

// AnalyzeJob wraps one claim for pool execution
type AnalyzeJob struct {
	Claim    model.Claim
	Analyzer ClaimAnalyzer
}

// Execute runs the analysis for the wrapped claim
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	analysis, err := j.Analyzer.Analyze(ctx, j.Claim)
	if err != nil {
		return &AnalyzeResult{
			Claim: j.Claim,
			Error: err,
		}
	}
	return &AnalyzeResult{
		Claim:    j.Claim,
		Analysis: analysis,
	}
}

// AnalyzeResult represents the result of one batch entry
type AnalyzeResult struct {
	Claim    model.Claim
	Analysis *model.Analysis
	Error    error
}

// GetError returns the error from the analysis result
func (r *AnalyzeResult) GetError() error {
	return r.Error
}

// BatchProcessor analyzes multiple claims concurrently
type BatchProcessor struct {
	analyzer    ClaimAnalyzer
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(analyzer ClaimAnalyzer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
	}
}

// ProcessClaims analyzes claims concurrently. Results arrive in completion
// order; each result carries its claim.
func (b *BatchProcessor) ProcessClaims(ctx context.Context, claims []model.Claim) []*AnalyzeResult {
	if len(claims) == 0 {
		return []*AnalyzeResult{}
	}

	pool := NewPoolWithContext(ctx, b.concurrency)
	pool.Start()

	for _, claim := range claims {
		pool.Submit(&AnalyzeJob{
			Claim:    claim,
			Analyzer: b.analyzer,
		})
	}

	results := pool.Wait()

	analyzeResults := make([]*AnalyzeResult, len(results))
	for i, result := range results {
		analyzeResults[i] = result.(*AnalyzeResult)
	}

	return analyzeResults
}

// ProcessFile reads claims from a file and analyzes them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*AnalyzeResult, error) {
	claims, err := ReadClaimsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read claims: %w", err)
	}

	return b.ProcessClaims(ctx, claims), nil
}

// ReadClaimsFromFile reads claims from a file, one per line. Lines starting
// with '{' are parsed as claim JSON (text, domain, sources); anything else
// is taken as bare claim text. Blank lines and # comments are skipped, and
// duplicate lines are dropped.
func ReadClaimsFromFile(filePath string) ([]model.Claim, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var claims []model.Claim
	seen := make(map[string]bool)
	lineNo := 0

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if seen[line] {
			continue
		}
		seen[line] = true

		if strings.HasPrefix(line, "{") {
			var claim model.Claim
			if err := json.Unmarshal([]byte(line), &claim); err != nil {
				return nil, fmt.Errorf("parse claim on line %d: %w", lineNo, err)
			}
			claims = append(claims, claim)
			continue
		}

		claims = append(claims, model.Claim{Text: line})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return claims, nil
}
