package probe

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/ppiankov/claimguard/internal/cache"
	"github.com/ppiankov/claimguard/internal/model"
)

// Detail strings for the degraded signal rungs
const (
	detailUnfetchable  = "URL present but could not fetch or parse."
	detailRobotsDenied = "Fetch disallowed by robots.txt."
	detailTooShort     = "Fetched but content too short to analyze."
	detailParseFailed  = "Fetched but HTML parsing failed."
)

// minContentLength is the smallest body worth reasoning about
const minContentLength = 500

// Analyzer turns evidence URLs into URL signals. Analyze never fails:
// every failure mode degrades to a well-formed unknown signal whose
// Details says what went wrong.
type Analyzer struct {
	fetcher    *Fetcher
	classifier *TypeClassifier
	store      *cache.SignalStore // nil disables caching
}

// NewAnalyzer creates an analyzer. A nil store disables signal caching.
func NewAnalyzer(httpCfg model.HTTPConfig, sigCfg model.SignalConfig, store *cache.SignalStore) *Analyzer {
	return &Analyzer{
		fetcher:    NewFetcher(httpCfg),
		classifier: NewTypeClassifier(sigCfg),
		store:      store,
	}
}

// Analyze fetches the URL best-effort and infers source type, publication
// year and content health from it
func (a *Analyzer) Analyze(ctx context.Context, rawURL string) model.URLSignal {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return model.URLSignal{
			Scheme:       "http",
			InferredType: model.SourceUnknown,
			Details:      detailUnfetchable,
		}
	}

	host := parsed.Hostname()
	sig := model.URLSignal{
		Host:         host,
		TLD:          a.classifier.MatchTLD(host),
		Scheme:       schemeOrDefault(parsed.Scheme),
		InferredType: model.SourceUnknown,
		Details:      detailUnfetchable,
	}

	if host == "" {
		return sig
	}

	if a.store != nil {
		if cached, ok := a.store.Get(rawURL); ok {
			return cached
		}
	}

	body, err := a.fetcher.Fetch(ctx, rawURL, host)
	if err != nil {
		if errors.Is(err, ErrRobotsDisallowed) {
			sig.Details = detailRobotsDenied
		}
		return a.remember(rawURL, sig)
	}

	sig.ContentLength = len(body)
	if sig.ContentLength < minContentLength {
		sig.Details = detailTooShort
		return a.remember(rawURL, sig)
	}

	page, err := parsePage(body)
	if err != nil {
		sig.Details = detailParseFailed
		return a.remember(rawURL, sig)
	}

	titleAndMeta := page.title + " " + page.meta
	year := extractYear(capString(titleAndMeta, yearTextCap))
	if year == 0 {
		year = extractYear(capString(string(body), yearContentCap))
	}

	sig.InferredType = a.classifier.Classify(host, parsed.Path, titleAndMeta)
	sig.InferredYear = year
	sig.ContentOK = true
	sig.Details = successDetails(sig)

	return a.remember(rawURL, sig)
}

// remember caches the signal when a store is configured
func (a *Analyzer) remember(rawURL string, sig model.URLSignal) model.URLSignal {
	if a.store != nil {
		a.store.Set(rawURL, sig)
	}
	return sig
}

// successDetails lists what the probe found, or says nothing stood out
func successDetails(sig model.URLSignal) string {
	var bits []string
	if sig.InferredType != model.SourceUnknown {
		bits = append(bits, fmt.Sprintf("type: %s", sig.InferredType))
	}
	if sig.InferredYear > 0 {
		bits = append(bits, fmt.Sprintf("year≈%d", sig.InferredYear))
	}
	if sig.TLD != "" {
		bits = append(bits, fmt.Sprintf("tld=%s", sig.TLD))
	}
	if len(bits) == 0 {
		bits = append(bits, "no strong signals")
	}
	return strings.Join(bits, "; ")
}

func schemeOrDefault(scheme string) string {
	if scheme == "" {
		return "http"
	}
	return scheme
}
