package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ppiankov/claimguard/internal/model"
)

// mockAnalyzer implements ClaimAnalyzer
type mockAnalyzer struct {
	failOn string
}

func (m *mockAnalyzer) Analyze(ctx context.Context, claim model.Claim) (*model.Analysis, error) {
	if m.failOn != "" && claim.Text == m.failOn {
		return nil, errors.New("analysis failed")
	}
	return &model.Analysis{
		TextClaim: claim.Text,
		Domain:    claim.Domain,
		Rung:      model.RungAssociation,
	}, nil
}

func TestBatchProcessor_ProcessClaims(t *testing.T) {
	processor := NewBatchProcessor(&mockAnalyzer{}, 3)

	claims := []model.Claim{
		{Text: "Coffee causes poor sleep", Domain: "health"},
		{Text: "Exercise reduces anxiety", Domain: "health"},
		{Text: "Rate cuts lift stock returns", Domain: "finance"},
	}

	results := processor.ProcessClaims(context.Background(), claims)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	seen := make(map[string]bool)
	for _, res := range results {
		if res.Error != nil {
			t.Errorf("expected no error, got %v", res.Error)
		}
		if res.Analysis == nil {
			t.Fatal("expected analysis attached to result")
		}
		if res.Analysis.TextClaim != res.Claim.Text {
			t.Errorf("expected analysis to match claim, got %q vs %q", res.Analysis.TextClaim, res.Claim.Text)
		}
		seen[res.Claim.Text] = true
	}

	for _, claim := range claims {
		if !seen[claim.Text] {
			t.Errorf("expected a result for claim %q", claim.Text)
		}
	}
}

func TestBatchProcessor_ProcessClaims_Empty(t *testing.T) {
	processor := NewBatchProcessor(&mockAnalyzer{}, 2)

	results := processor.ProcessClaims(context.Background(), nil)

	if results == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}

func TestBatchProcessor_ErrorsDoNotAbortBatch(t *testing.T) {
	processor := NewBatchProcessor(&mockAnalyzer{failOn: "bad claim"}, 2)

	claims := []model.Claim{
		{Text: "good claim"},
		{Text: "bad claim"},
		{Text: "another good claim"},
	}

	results := processor.ProcessClaims(context.Background(), claims)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	errCount := 0
	for _, res := range results {
		if res.GetError() != nil {
			errCount++
			if res.Claim.Text != "bad claim" {
				t.Errorf("expected failure only for bad claim, got %q", res.Claim.Text)
			}
		}
	}

	if errCount != 1 {
		t.Errorf("expected 1 failed entry, got %d", errCount)
	}
}

func writeClaimsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "claims.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write claims file: %v", err)
	}
	return path
}

func TestReadClaimsFromFile(t *testing.T) {
	path := writeClaimsFile(t, `# batch of claims
Coffee causes poor sleep

{"text": "Tweet sentiment moves stock returns", "domain": "finance"}
Coffee causes poor sleep
Exercise reduces anxiety
`)

	claims, err := ReadClaimsFromFile(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(claims) != 3 {
		t.Fatalf("expected 3 claims after dedup and comments, got %d", len(claims))
	}
	if claims[0].Text != "Coffee causes poor sleep" || claims[0].Domain != "" {
		t.Errorf("unexpected first claim: %+v", claims[0])
	}
	if claims[1].Text != "Tweet sentiment moves stock returns" || claims[1].Domain != "finance" {
		t.Errorf("expected JSON line parsed with domain, got %+v", claims[1])
	}
	if claims[2].Text != "Exercise reduces anxiety" {
		t.Errorf("unexpected third claim: %+v", claims[2])
	}
}

func TestReadClaimsFromFile_MalformedJSON(t *testing.T) {
	path := writeClaimsFile(t, "good claim\n{not json}\n")

	_, err := ReadClaimsFromFile(path)
	if err == nil {
		t.Fatal("expected error for malformed JSON line")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("expected line number in error, got %v", err)
	}
}

func TestReadClaimsFromFile_MissingFile(t *testing.T) {
	if _, err := ReadClaimsFromFile("/nonexistent/claims.txt"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestBatchProcessor_ProcessFile(t *testing.T) {
	path := writeClaimsFile(t, "Coffee causes poor sleep\nExercise reduces anxiety\n")

	processor := NewBatchProcessor(&mockAnalyzer{}, 2)

	results, err := processor.ProcessFile(context.Background(), path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 results, got %d", len(results))
	}
}

func TestBatchProcessor_ProcessFile_MissingFile(t *testing.T) {
	processor := NewBatchProcessor(&mockAnalyzer{}, 2)

	if _, err := processor.ProcessFile(context.Background(), "/nonexistent/claims.txt"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
