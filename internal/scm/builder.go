package scm

import (
	"regexp"
	"strings"

	"github.com/ppiankov/claimguard/internal/model"
	"github.com/ppiankov/claimguard/internal/vocab"
)

// templateNote marks every generated template as a starting point, not a model
const templateNote = "Auto-generated SCM template based on domain vocabulary and " +
	"pattern-based extraction from the claim text. User can edit this at the UI level."

// verbPattern anchors a causal verb construction at the start of a claim.
// left and right are the submatch indices of the exposure and outcome phrases.
type verbPattern struct {
	re    *regexp.Regexp
	left  int
	right int
}

// Builder constructs SCM templates by pulling exposure and outcome phrases
// off causal verb constructions and aligning them with the domain vocabulary
type Builder struct {
	table    *vocab.Table
	patterns []verbPattern
}

// NewBuilder creates a builder over the given vocabulary table
func NewBuilder(table *vocab.Table) *Builder {
	return &Builder{
		table: table,
		patterns: []verbPattern{
			{regexp.MustCompile(`^(.+?)\s+(causes?|affects?|impacts?|increases?|reduces?|improves?|worsens?)\s+(.+)`), 1, 3},
			{regexp.MustCompile(`^(.+?)\s+leads?\s+to\s+(.+)`), 1, 2},
			{regexp.MustCompile(`^(.+?)\s+results?\s+in\s+(.+)`), 1, 2},
		},
	}
}

// Build returns the SCM template for a claim in the given domain. Alignment
// failures fall back to whole-claim vocabulary scans, so a template always
// comes back, even for an empty claim.
func (b *Builder) Build(text, domain string) model.ScmTemplate {
	entries := b.table.Resolve(domain)
	exposure, outcome := b.pickExposureAndOutcome(text, entries)

	z := make([]string, len(exposure.Confounders))
	copy(z, exposure.Confounders)

	return model.ScmTemplate{
		X:     exposure.Name,
		Y:     outcome,
		Z:     z,
		Edges: model.DeriveEdges(exposure.Name, outcome, z),
		Note:  templateNote,
	}
}

// pickExposureAndOutcome aligns extracted phrases with the vocabulary.
// An unalignable exposure phrase abandons the extraction entirely; an
// unalignable outcome phrase only falls back within the chosen exposure.
func (b *Builder) pickExposureAndOutcome(text string, entries []vocab.Exposure) (vocab.Exposure, string) {
	xPhrase, yPhrase := b.extractCandidates(text)
	if xPhrase == "" {
		return fallbackExposureAndOutcome(text, entries)
	}

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}

	name, ok := bestMatch(xPhrase, names)
	if !ok {
		return fallbackExposureAndOutcome(text, entries)
	}

	var exposure vocab.Exposure
	for _, e := range entries {
		if e.Name == name {
			exposure = e
			break
		}
	}

	if outcome, ok := bestMatch(yPhrase, exposure.Outcomes); ok {
		return exposure, outcome
	}

	// Outcome alignment failed: scan the whole claim for this exposure's
	// outcomes before settling on its first one
	lower := strings.ToLower(text)
	for _, y := range exposure.Outcomes {
		if strings.Contains(lower, strings.ToLower(y)) {
			return exposure, y
		}
	}
	return exposure, exposure.Outcomes[0]
}

// extractCandidates pulls (exposure phrase, outcome phrase) off the first
// matching verb pattern. Both are empty when no pattern yields two
// non-empty phrases.
func (b *Builder) extractCandidates(text string) (string, string) {
	lower := strings.ToLower(strings.TrimSpace(text))

	for _, p := range b.patterns {
		m := p.re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		left := trimTrailingPunct(strings.TrimSpace(m[p.left]))
		right := trimTrailingPunct(strings.TrimSpace(m[p.right]))
		if left != "" && right != "" {
			return left, right
		}
	}

	return "", ""
}

// fallbackExposureAndOutcome is the whole-claim containment scan: the first
// exposure named in the claim (else the first entry), then the first of its
// outcomes named in the claim (else its first outcome)
func fallbackExposureAndOutcome(text string, entries []vocab.Exposure) (vocab.Exposure, string) {
	lower := strings.ToLower(text)

	exposure := entries[0]
	for _, e := range entries {
		if strings.Contains(lower, strings.ToLower(e.Name)) {
			exposure = e
			break
		}
	}

	for _, y := range exposure.Outcomes {
		if strings.Contains(lower, strings.ToLower(y)) {
			return exposure, y
		}
	}
	return exposure, exposure.Outcomes[0]
}

// bestMatch maps a free-text phrase to the closest candidate. Substring
// containment either way scores the candidate's token count plus one;
// otherwise the token overlap counts. The first strictly-best candidate
// wins, and zero total overlap means no match.
func bestMatch(phrase string, candidates []string) (string, bool) {
	phrase = strings.ToLower(phrase)
	phraseTokens := tokenSet(phrase)

	best := ""
	bestScore := 0
	for _, cand := range candidates {
		candLower := strings.ToLower(cand)

		var score int
		if strings.Contains(phrase, candLower) || strings.Contains(candLower, phrase) {
			score = len(tokenSet(candLower)) + 1
		} else {
			score = overlap(phraseTokens, tokenSet(candLower))
		}

		if score > bestScore {
			bestScore = score
			best = cand
		}
	}

	if bestScore == 0 {
		return "", false
	}
	return best, true
}

var (
	trailingPunct = regexp.MustCompile(`[.,!?;:]+$`)
	wordToken     = regexp.MustCompile(`\w+`)
)

func trimTrailingPunct(s string) string {
	return trailingPunct.ReplaceAllString(s, "")
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range wordToken.FindAllString(s, -1) {
		set[tok] = struct{}{}
	}
	return set
}

func overlap(a, b map[string]struct{}) int {
	n := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			n++
		}
	}
	return n
}
