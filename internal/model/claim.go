package model

// Rung identifies the level of Pearl's causal ladder a claim sits on
type Rung string

const (
	RungAssociation    Rung = "L1" // Associational claims ("is linked to", "correlates with")
	RungIntervention   Rung = "L2" // Interventional claims ("causes", "reduces", "leads to")
	RungCounterfactual Rung = "L3" // Counterfactual claims ("what if", "had not", "would have")
)

// Claim is one analysis request: the claim text, the vocabulary domain to
// interpret it in, and the evidence sources offered in support
type Claim struct {
	Text    string      `json:"text"`              // The claim text itself
	Domain  string      `json:"domain"`            // Vocabulary domain (e.g. "health", "finance")
	Sources []SourceRef `json:"sources,omitempty"` // Evidence backing the claim
}
