package probe

import (
	"sort"
	"strings"

	"github.com/ppiankov/claimguard/internal/model"
)

// TypeClassifier infers a source type from URL structure and page text
type TypeClassifier struct {
	academicTLDs []string
	govTLDs      []string
	newsHints    []string
	blogHints    []string
	allTLDs      []string
}

// commercialTLDs are recognized for labeling but carry no type signal
var commercialTLDs = []string{".org", ".com", ".net", ".info", ".xyz"}

// NewTypeClassifier creates a classifier from the configured hint lists
func NewTypeClassifier(cfg model.SignalConfig) *TypeClassifier {
	all := make([]string, 0, len(cfg.AcademicTLDs)+len(cfg.GovTLDs)+len(commercialTLDs))
	all = append(all, cfg.AcademicTLDs...)
	all = append(all, cfg.GovTLDs...)
	all = append(all, commercialTLDs...)

	// Longest suffix first so compound TLDs win over their tails
	sort.SliceStable(all, func(i, j int) bool {
		return len(all[i]) > len(all[j])
	})

	return &TypeClassifier{
		academicTLDs: cfg.AcademicTLDs,
		govTLDs:      cfg.GovTLDs,
		newsHints:    cfg.NewsHints,
		blogHints:    cfg.BlogHints,
		allTLDs:      all,
	}
}

// MatchTLD returns the recognized suffix the host ends with, or ""
func (c *TypeClassifier) MatchTLD(host string) string {
	hostLower := strings.ToLower(host)
	for _, suffix := range c.allTLDs {
		if strings.HasSuffix(hostLower, suffix) {
			return suffix
		}
	}
	return ""
}

// Classify applies the type inference rules in priority order: known
// publisher hosts, preprint archives, institutional TLDs, news hosts, then
// blog markers in the URL or the page's title and meta text.
func (c *TypeClassifier) Classify(host, path, pageText string) model.SourceType {
	hostLower := strings.ToLower(host)
	pathLower := strings.ToLower(path)
	combined := hostLower + " " + pathLower

	if strings.Contains(combined, "pubmed") ||
		strings.Contains(combined, "ncbi.nlm.nih.gov") ||
		strings.Contains(combined, "doi.org") {
		return model.SourcePeerReviewed
	}
	if strings.Contains(combined, "arxiv.org") {
		return model.SourceWhitepaper
	}

	// Government and academic portals read like institutional reports
	for _, suffix := range c.govTLDs {
		if strings.HasSuffix(hostLower, suffix) {
			return model.SourceWhitepaper
		}
	}
	for _, suffix := range c.academicTLDs {
		if strings.HasSuffix(hostLower, suffix) {
			return model.SourceWhitepaper
		}
	}

	for _, hint := range c.newsHints {
		if strings.Contains(hostLower, hint) {
			return model.SourceNews
		}
	}

	for _, hint := range c.blogHints {
		if strings.Contains(combined, hint) {
			return model.SourceBlog
		}
	}
	if strings.Contains(strings.ToLower(pageText), "blog") {
		return model.SourceBlog
	}

	return model.SourceUnknown
}
