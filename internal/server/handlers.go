package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/ppiankov/claimguard/internal/model"
)

// analyzePayload is the wire form of an analysis request. Every field
// accepts both its PascalCase and snake_case spelling; the first non-empty
// value wins, matching the aliasing contract of the endpoint.
type analyzePayload struct {
	TextClaim      *string         `json:"TextClaim"`
	TextClaimSnake *string         `json:"text_claim"`
	Domain         *string         `json:"Domain"`
	DomainSnake    *string         `json:"domain"`
	Sources        []sourcePayload `json:"Sources"`
	SourcesSnake   []sourcePayload `json:"sources"`
}

// sourcePayload is the wire form of one evidence source
type sourcePayload struct {
	Title             *string `json:"Title"`
	TitleSnake        *string `json:"title"`
	URL               *string `json:"Url"`
	URLSnake          *string `json:"url"`
	Type              *string `json:"Type"`
	TypeSnake         *string `json:"type"`
	SampleSize        *int    `json:"SampleSize"`
	SampleSizeSnake   *int    `json:"sample_size"`
	Year              *int    `json:"Year"`
	YearSnake         *int    `json:"year"`
	PeerReviewed      *bool   `json:"PeerReviewed"`
	PeerReviewedSnake *bool   `json:"peer_reviewed"`
}

// toClaim collapses the aliased payload into the internal claim model
func (p analyzePayload) toClaim() model.Claim {
	raw := p.Sources
	if len(raw) == 0 {
		raw = p.SourcesSnake
	}

	sources := make([]model.SourceRef, 0, len(raw))
	for _, s := range raw {
		sources = append(sources, model.SourceRef{
			Title:        firstString(s.Title, s.TitleSnake),
			URL:          firstString(s.URL, s.URLSnake),
			Type:         firstString(s.Type, s.TypeSnake),
			SampleSize:   firstInt(s.SampleSize, s.SampleSizeSnake),
			Year:         firstInt(s.Year, s.YearSnake),
			PeerReviewed: firstBool(s.PeerReviewed, s.PeerReviewedSnake),
		})
	}

	return model.Claim{
		Text:    firstString(p.TextClaim, p.TextClaimSnake),
		Domain:  firstString(p.Domain, p.DomainSnake),
		Sources: sources,
	}
}

// firstString returns the first non-nil, non-empty value. Empty strings fall
// through to the next alias.
func firstString(vals ...*string) string {
	for _, v := range vals {
		if v != nil && *v != "" {
			return *v
		}
	}
	return ""
}

// firstInt returns the first non-nil, non-zero value, or nil when no alias
// carries one. Zero falls through like an absent field.
func firstInt(vals ...*int) *int {
	for _, v := range vals {
		if v != nil && *v != 0 {
			return v
		}
	}
	return nil
}

// firstBool reports whether any alias is set to true
func firstBool(vals ...*bool) bool {
	for _, v := range vals {
		if v != nil && *v {
			return true
		}
	}
	return false
}

// handleIdentity reports who is answering
func (s *Server) handleIdentity(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"service": ServiceName,
		"version": s.version,
	})
}

// handleAnalyzeClaim runs the full analysis for one claim
func (s *Server) handleAnalyzeClaim(w http.ResponseWriter, r *http.Request) {
	var payload analyzePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}

	analysis, err := s.pipeline.Analyze(r.Context(), payload.toClaim())
	if err != nil {
		zap.L().Error("analysis failed", zap.Error(err))
		http.Error(w, `{"error":"analysis failed"}`, http.StatusInternalServerError)
		return
	}

	// CRITICAL: narratives are CLI-only. The HTTP response carries computed
	// fields exclusively, whatever the pipeline configuration says.
	analysis.LLM = nil

	writeJSON(w, http.StatusOK, analysis)
}

// writeJSON encodes v with the standard JSON headers
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("encode response", zap.Error(err))
	}
}
