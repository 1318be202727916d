package model

// TrustTuple carries the trust estimate T(m, c) for a source or an
// aggregate: m is the trust magnitude, c the confidence in that magnitude,
// both clamped to [0, 1]. Details spells out every input that produced them.
type TrustTuple struct {
	M       float64 `json:"m"`
	C       float64 `json:"c"`
	Source  string  `json:"Source"`  // URL, then title, then "unknown"; "aggregate" for combined tuples
	Details string  `json:"Details"` // Transparent breakdown of the scoring inputs
}

// Analysis is the complete result of analyzing one causal claim.
// Field names match the wire format of the analyze endpoint.
type Analysis struct {
	TextClaim string `json:"TextClaim"` // Claim text as received
	Domain    string `json:"Domain"`    // Vocabulary domain used
	Rung      Rung   `json:"Rung"`      // Causal ladder classification

	Template ScmTemplate    `json:"Template"` // Editable SCM sketch
	Estimand EstimandResult `json:"Estimand"` // Identifiability verdict

	SourceTrust     []TrustTuple `json:"SourceTrust"`     // One tuple per evidence source, input order
	AggregatedTrust TrustTuple   `json:"AggregatedTrust"` // Combined trust across sources

	Explanation string `json:"Explanation"` // Deterministic plain-language walkthrough

	LLM *LLMNarrative `json:"llm,omitempty"` // Optional LLM restatement (separate, never affects results)
}

// LLMNarrative contains an optional model-generated restatement of the
// deterministic explanation.
// CRITICAL: This never affects classification, scoring or identifiability
// and is clearly separated from the computed fields.
type LLMNarrative struct {
	Enabled  bool   `json:"enabled"`
	Provider string `json:"provider,omitempty"` // Provider that generated the text
	Model    string `json:"model,omitempty"`    // Model name
	Text     string `json:"text,omitempty"`     // Generated narrative
	Warning  string `json:"warning,omitempty"`  // Set when generation failed and was skipped
}
