package model

import "encoding/json"

// Edge is a directed causal link between two named variables
type Edge struct {
	From string
	To   string
}

// MarshalJSON renders the edge as a two-element array ["from","to"]
func (e Edge) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{e.From, e.To})
}

// UnmarshalJSON reads the two-element array form back into an Edge
func (e *Edge) UnmarshalJSON(data []byte) error {
	var pair [2]string
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	e.From, e.To = pair[0], pair[1]
	return nil
}

// ScmTemplate is a structural causal model sketch: exposure X, outcome Y,
// candidate confounders Z, and the edges implied by them. Templates are
// starting points for the user to edit, not fitted models.
type ScmTemplate struct {
	X     string   `json:"X"`     // Exposure variable
	Y     string   `json:"Y"`     // Outcome variable
	Z     []string `json:"Z"`     // Candidate confounders
	Edges []Edge   `json:"Edges"` // Derived from X, Y, Z only
	Note  string   `json:"Note"`  // Provenance note shown to the user
}

// DeriveEdges returns the canonical edge set for an exposure, an outcome and
// a confounder list: the direct X-to-Y link plus a pair of links from every
// confounder into both X and Y. The result is a pure function of its inputs.
func DeriveEdges(x, y string, z []string) []Edge {
	edges := make([]Edge, 0, 1+2*len(z))
	edges = append(edges, Edge{From: x, To: y})
	for _, c := range z {
		edges = append(edges, Edge{From: c, To: x})
		edges = append(edges, Edge{From: c, To: y})
	}
	return edges
}

// EstimandResult reports whether the claimed effect is identifiable from
// observational data and, when it is, the adjustment formula to estimate it
type EstimandResult struct {
	Identifiable bool   `json:"Identifiable"`
	Expression   string `json:"Expression"` // Adjustment formula, empty when not identifiable
	Reason       string `json:"Reason"`     // Why identification succeeded or failed
}
