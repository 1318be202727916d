package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/claimguard/internal/model"
)

// Renderer writes analyses as JSON files and terminal text
type Renderer struct {
	verbose bool
}

// NewRenderer creates a new renderer
func NewRenderer(verbose bool) *Renderer {
	return &Renderer{verbose: verbose}
}

// RenderJSON writes the analysis as indented JSON
func (r *Renderer) RenderJSON(analysis *model.Analysis, path string) error {
	data, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}

// RenderText formats the analysis for the terminal. Verbose mode adds the
// per-source trust breakdown.
func (r *Renderer) RenderText(analysis *model.Analysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Claim:        %s\n", analysis.TextClaim)
	fmt.Fprintf(&b, "Domain:       %s\n", analysis.Domain)
	fmt.Fprintf(&b, "Rung:         %s\n", analysis.Rung)
	fmt.Fprintf(&b, "Exposure:     %s\n", analysis.Template.X)
	fmt.Fprintf(&b, "Outcome:      %s\n", analysis.Template.Y)

	confounders := "(none)"
	if len(analysis.Template.Z) > 0 {
		confounders = strings.Join(analysis.Template.Z, ", ")
	}
	fmt.Fprintf(&b, "Confounders:  %s\n", confounders)

	fmt.Fprintf(&b, "Identifiable: %v\n", analysis.Estimand.Identifiable)
	if analysis.Estimand.Identifiable {
		fmt.Fprintf(&b, "Estimand:     %s\n", analysis.Estimand.Expression)
	}

	fmt.Fprintf(&b, "Trust:        T(m, c) = (%.2f, %.2f) [%s]\n",
		analysis.AggregatedTrust.M, analysis.AggregatedTrust.C, analysis.AggregatedTrust.Details)

	if r.verbose && len(analysis.SourceTrust) > 0 {
		b.WriteString("Sources:\n")
		for _, t := range analysis.SourceTrust {
			fmt.Fprintf(&b, "  - %s: (%.2f, %.2f) %s\n", t.Source, t.M, t.C, t.Details)
		}
	}

	b.WriteString("\n")
	b.WriteString(analysis.Explanation)
	b.WriteString("\n")

	if analysis.LLM != nil {
		b.WriteString("\n")
		if analysis.LLM.Text != "" {
			fmt.Fprintf(&b, "LLM narrative (%s, %s):\n%s\n", analysis.LLM.Provider, analysis.LLM.Model, analysis.LLM.Text)
		}
		if analysis.LLM.Warning != "" {
			fmt.Fprintf(&b, "LLM warning: %s\n", analysis.LLM.Warning)
		}
	}

	return b.String()
}

// RenderSummary prints the analysis to stdout
func (r *Renderer) RenderSummary(analysis *model.Analysis) {
	fmt.Print(r.RenderText(analysis))
}
