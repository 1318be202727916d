package trust

import (
	"fmt"
	"strings"

	"github.com/ppiankov/claimguard/internal/model"
)

// typeWeights maps the effective source type to its base trust
var typeWeights = map[model.SourceType]float64{
	model.SourcePeerReviewed: 0.9,
	model.SourceWhitepaper:   0.75,
	model.SourceNews:         0.6,
	model.SourceBlog:         0.4,
	model.SourceUnknown:      0.35,
}

// bonusTLDs are the institutional suffixes that raise trust and confidence
var bonusTLDs = map[string]struct{}{
	".edu":    {},
	".ac.uk":  {},
	".ac.in":  {},
	".gov":    {},
	".gov.uk": {},
	".gov.in": {},
}

// Engine scores evidence sources from declared metadata and probe signals,
// then combines them with the configured aggregator. Scoring is pure: the
// same source and signal always produce the same tuple.
type Engine struct {
	aggregator Aggregator
}

// NewEngine creates an engine; a nil aggregator defaults to the mean
func NewEngine(agg Aggregator) *Engine {
	if agg == nil {
		agg = MeanAggregator{}
	}
	return &Engine{aggregator: agg}
}

// ScoreAll scores every source in input order and aggregates the results.
// signals[i] carries the probe result for sources[i], nil when the source
// had no URL or the slice is short.
func (e *Engine) ScoreAll(sources []model.SourceRef, signals []*model.URLSignal) ([]model.TrustTuple, model.TrustTuple) {
	tuples := make([]model.TrustTuple, len(sources))
	for i, src := range sources {
		var sig *model.URLSignal
		if i < len(signals) {
			sig = signals[i]
		}
		tuples[i] = e.ScoreSource(src, sig)
	}
	return tuples, e.aggregator.Aggregate(tuples)
}

// ScoreSource computes the trust tuple for one source. Missing metadata
// scores neutral rather than failing; the Details string spells out every
// input that went into the numbers.
func (e *Engine) ScoreSource(src model.SourceRef, sig *model.URLSignal) model.TrustTuple {
	effective, origin := resolveType(src, sig)

	typeScore, ok := typeWeights[effective]
	if !ok {
		typeScore = typeWeights[model.SourceUnknown]
	}

	year := declaredOrInferredYear(src, sig)
	var yearScore float64
	var yearDetail string
	switch {
	case year == 0:
		yearScore, yearDetail = 0.5, "year: unknown"
	case year >= 2020:
		yearScore, yearDetail = 0.95, fmt.Sprintf("year≈%d", year)
	case year >= 2010:
		yearScore, yearDetail = 0.7, fmt.Sprintf("year≈%d", year)
	default:
		yearScore, yearDetail = 0.4, fmt.Sprintf("year≈%d", year)
	}

	var sampleScore float64
	var sampleDetail string
	switch {
	case src.SampleSize == nil || *src.SampleSize <= 0:
		sampleScore, sampleDetail = 0.5, "n: unknown"
	case *src.SampleSize >= 1000:
		sampleScore, sampleDetail = 0.95, fmt.Sprintf("n=%d", *src.SampleSize)
	case *src.SampleSize >= 200:
		sampleScore, sampleDetail = 0.75, fmt.Sprintf("n=%d", *src.SampleSize)
	case *src.SampleSize >= 50:
		sampleScore, sampleDetail = 0.6, fmt.Sprintf("n=%d", *src.SampleSize)
	default:
		sampleScore, sampleDetail = 0.4, fmt.Sprintf("n=%d", *src.SampleSize)
	}

	var domainBonus, confidenceBonus float64
	urlDetail := ""
	if sig != nil {
		urlDetail = sig.Details

		if _, ok := bonusTLDs[sig.TLD]; ok {
			domainBonus += 0.07
			confidenceBonus += 0.1
		}
		if sig.ContentOK && sig.ContentLength > 4000 {
			confidenceBonus += 0.1
		}
	}

	m := clamp((typeScore+yearScore+sampleScore)/3.0 + domainBonus)

	cBase := 0.3
	switch effective {
	case model.SourcePeerReviewed, model.SourceWhitepaper, model.SourceNews:
		cBase += 0.2
	}
	if year != 0 {
		cBase += 0.2
	}
	if src.SampleSize != nil && *src.SampleSize >= 50 {
		cBase += 0.1
	}
	c := clamp(cBase + confidenceBonus)

	details := fmt.Sprintf("type=%s (%s); %s; %s", effective, origin, yearDetail, sampleDetail)
	if urlDetail != "" {
		details += fmt.Sprintf("; url: %s", urlDetail)
	}

	return model.TrustTuple{M: m, C: c, Source: src.Label(), Details: details}
}

// resolveType decides the effective source type and records where it came
// from. The declared peer-review flag overrides the declared type; a
// peer-reviewed declaration against a blog-looking URL is downgraded.
func resolveType(src model.SourceRef, sig *model.URLSignal) (model.SourceType, string) {
	declared := strings.ToLower(strings.TrimSpace(src.Type))
	if src.PeerReviewed {
		declared = string(model.SourcePeerReviewed)
	}

	inferred := model.SourceUnknown
	if sig != nil && sig.InferredType != "" {
		inferred = sig.InferredType
	}

	if declared == "" {
		return inferred, "inferred from URL"
	}
	if declared == string(model.SourcePeerReviewed) && inferred == model.SourceBlog {
		return model.SourceWhitepaper, "user=peer-reviewed, URL looks like blog → downgraded to whitepaper"
	}
	return model.SourceType(declared), "user-provided"
}

// declaredOrInferredYear prefers a non-zero declared year, then the probe's
// guess, then unknown
func declaredOrInferredYear(src model.SourceRef, sig *model.URLSignal) int {
	if src.Year != nil && *src.Year != 0 {
		return *src.Year
	}
	if sig != nil {
		return sig.InferredYear
	}
	return 0
}

func clamp(v float64) float64 {
	return min(1.0, max(0.0, v))
}
