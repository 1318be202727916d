// Package explain renders the deterministic, human-readable narrative for a
// claim analysis: the ladder rung, the structural model, identifiability,
// and evidence trust, in that order.
package explain

import (
	"fmt"
	"strings"

	"github.com/ppiankov/claimguard/internal/model"
)

// Composer builds the five-paragraph explanation attached to every analysis
type Composer struct{}

// NewComposer creates a composer
func NewComposer() *Composer {
	return &Composer{}
}

// Compose renders the full narrative. It never fails: missing template
// fields fall back to generic wording so the explanation stays readable.
func (co *Composer) Compose(textClaim, domain string, rung model.Rung, tpl model.ScmTemplate, est model.EstimandResult, agg model.TrustTuple) string {
	return fmt.Sprintf("Claim: \"%s\"\n\n%s\n\n%s\n\n%s\n\n%s",
		textClaim,
		rungText(rung),
		scmText(domain, tpl),
		estimandText(est),
		trustText(agg),
	)
}

func rungText(rung model.Rung) string {
	switch rung {
	case model.RungAssociation:
		return "This is treated as an association-level (L1) claim: " +
			"it describes patterns or correlations without explicit causal or counterfactual language."
	case model.RungIntervention:
		return "This is treated as an intervention-level (L2) claim: " +
			"it uses causal language (e.g., 'affects', 'reduces', 'causes') " +
			"suggesting that changing the exposure would change the outcome."
	default:
		return "This is treated as a counterfactual-level (L3) claim: " +
			"it talks about what would have happened under a different hypothetical scenario."
	}
}

func scmText(domain string, tpl model.ScmTemplate) string {
	x := tpl.X
	if x == "" {
		x = "an exposure"
	}
	y := tpl.Y
	if y == "" {
		y = "an outcome"
	}

	if len(tpl.Z) == 0 {
		return fmt.Sprintf(
			"In the %s domain, the system models this claim with '%s' as the exposure (X) "+
				"and '%s' as the outcome (Y), but it does not currently include any confounders Z.",
			domain, x, y)
	}

	return fmt.Sprintf(
		"In the %s domain, the system models this claim with '%s' as the exposure (X) "+
			"and '%s' as the outcome (Y). It treats [%s] as confounders Z that affect both X and Y. "+
			"The SCM therefore includes edges Z → X, Z → Y, and X → Y.",
		domain, x, y, strings.Join(tpl.Z, ", "))
}

func estimandText(est model.EstimandResult) string {
	if est.Identifiable && est.Expression != "" {
		return fmt.Sprintf(
			"Under these assumptions, the causal effect P(Y | do(X)) is considered identifiable. "+
				"A valid estimand is: %s. Reason: %s",
			est.Expression, est.Reason)
	}

	reason := est.Reason
	if reason == "" {
		reason = "identifiability conditions are not met."
	}
	return fmt.Sprintf(
		"Given the available variables, the system cannot express P(Y | do(X)) using only observational quantities. "+
			"Reason: %s",
		reason)
}

func trustText(agg model.TrustTuple) string {
	if agg.M == 0 && agg.C == 0 && strings.Contains(strings.ToLower(agg.Details), "no sources") {
		return "No external evidence sources were provided, so the tool does not assign any trust score to this claim " +
			"(trust T(m, c) defaults to (0, 0), representing complete uncertainty about the reliability of the evidence)."
	}

	return fmt.Sprintf(
		"Based on the provided sources, the aggregated trust in the evidence supporting this claim is "+
			"T(m, c) = (%.2f, %.2f), where m reflects overall trustworthiness and c reflects confidence in that assessment.",
		agg.M, agg.C)
}
