package classify

import (
	"regexp"
	"strings"

	"github.com/ppiankov/claimguard/internal/model"
)

// rule pairs a compiled marker pattern with the rung it assigns
type rule struct {
	pattern *regexp.Regexp
	rung    model.Rung
}

// Classifier places a claim on Pearl's causal ladder by matching marker
// phrases. Counterfactual markers outrank causal verbs: "would have
// improved" is L3 even though "improved" alone reads as L2.
type Classifier struct {
	counterfactual []rule
	causal         []rule
}

// NewClassifier creates a classifier with all marker patterns compiled
func NewClassifier() *Classifier {
	return &Classifier{
		counterfactual: compileRules(model.RungCounterfactual, []string{
			`\bwhat if\b`,
			`\bhadn['’]t\b`,
			`\bhad\b.*\bnot\b`,
			`\bif\b.*\bhad\b`,
			`\bwould have\b`,
			`\bcould have\b`,
			`\bshould have\b`,
			`\bmight have\b`,
			`\bcounterfactual\b`,
		}),
		causal: compileRules(model.RungIntervention, []string{
			`\bcause(s|d)?\b`,
			`\bcausal\b`,
			`\baffect(s|ed|ing)?\b`,
			`\bimpact(s|ed|ing)?\b`,
			`\bleads? to\b`,
			`\bresults? in\b`,
			`\breduce(s|d)?\b`,
			`\bincrease(s|d)?\b`,
			`\bimprove(s|d)?\b`,
			`\bworsen(s|ed|ing)?\b`,
			`\bprevent(s|ed|ing)?\b`,
			`\bprotect(s|ed|ing)?\b`,
		}),
	}
}

// Classify returns the highest ladder rung whose markers appear in the
// claim. Claims with no markers, including empty text, are associational.
func (c *Classifier) Classify(text string) model.Rung {
	lower := strings.ToLower(text)

	for _, r := range c.counterfactual {
		if r.pattern.MatchString(lower) {
			return r.rung
		}
	}
	for _, r := range c.causal {
		if r.pattern.MatchString(lower) {
			return r.rung
		}
	}

	return model.RungAssociation
}

// compileRules compiles marker patterns in priority order
func compileRules(rung model.Rung, patterns []string) []rule {
	rules := make([]rule, 0, len(patterns))
	for _, p := range patterns {
		rules = append(rules, rule{pattern: regexp.MustCompile(p), rung: rung})
	}
	return rules
}
