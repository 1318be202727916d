package model

// SourceType classifies where a piece of evidence was published
type SourceType string

const (
	SourcePeerReviewed SourceType = "peer-reviewed" // Journals, PubMed, DOI-resolved papers
	SourceWhitepaper   SourceType = "whitepaper"    // Preprints, institutional and government reports
	SourceNews         SourceType = "news"          // Established news outlets
	SourceBlog         SourceType = "blog"          // Blogs and self-published posts
	SourceUnknown      SourceType = "unknown"       // No usable signal
)

// SourceRef describes one piece of user-supplied evidence. Every field is
// optional; missing metadata degrades the trust score instead of failing it.
type SourceRef struct {
	Title        string `json:"title,omitempty"`         // Human-readable label
	URL          string `json:"url,omitempty"`           // Where the evidence lives
	Type         string `json:"type,omitempty"`          // Declared source type (free text)
	SampleSize   *int   `json:"sample_size,omitempty"`   // Study sample size, nil when not stated
	Year         *int   `json:"year,omitempty"`          // Publication year, nil when not stated
	PeerReviewed bool   `json:"peer_reviewed,omitempty"` // Declared peer-review flag
}

// Label returns the display name for the source: URL, then title, then "unknown".
func (s SourceRef) Label() string {
	if s.URL != "" {
		return s.URL
	}
	if s.Title != "" {
		return s.Title
	}
	return "unknown"
}

// URLSignal is what the prober could learn about an evidence URL. A signal
// is always well formed: failures surface as an unknown type, a zero year
// and a Details string saying what went wrong.
type URLSignal struct {
	Host          string     `json:"host,omitempty"`   // Hostname, empty when the URL did not parse
	TLD           string     `json:"tld,omitempty"`    // Matched top-level domain suffix (e.g. ".gov")
	Scheme        string     `json:"scheme,omitempty"` // URL scheme
	InferredType  SourceType `json:"inferred_type"`    // Source type guessed from host, path and page text
	InferredYear  int        `json:"inferred_year,omitempty"` // Publication year guess, 0 when unknown
	ContentOK     bool       `json:"content_ok"`       // Whether the page was fetched and parsed
	ContentLength int        `json:"content_length"`   // Raw body length in bytes
	Details       string     `json:"details"`          // What was found, or why nothing was
}
