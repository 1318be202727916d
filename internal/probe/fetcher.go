package probe

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"

	"github.com/ppiankov/claimguard/internal/model"
	"github.com/ppiankov/claimguard/internal/util"
	"github.com/ppiankov/claimguard/internal/worker"
)

// ErrRobotsDisallowed marks a URL the site's robots.txt asked us not to fetch
var ErrRobotsDisallowed = errors.New("disallowed by robots.txt")

// Fetcher retrieves page content for signal extraction. It is polite:
// robots.txt aware, per-host rate limited and capped on body size.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	robots     *util.RobotsChecker // nil when robots checks are disabled
	limiter    *worker.Limiter
	lookupHost func(ctx context.Context, host string) error
}

// NewFetcher creates a fetcher from the outbound HTTP configuration
func NewFetcher(cfg model.HTTPConfig) *Fetcher {
	transport := &http.Transport{
		Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
	}
	if cfg.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	var robots *util.RobotsChecker
	if cfg.RespectRobots {
		robots = util.NewRobotsChecker(cfg.UserAgent, cfg.Timeout)
	}

	return &Fetcher{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent:  cfg.UserAgent,
		maxBytes:   cfg.MaxBodyBytes,
		robots:     robots,
		limiter:    worker.NewLimiter(cfg.RatePerHost, cfg.RateBurst),
		lookupHost: defaultLookupHost,
	}
}

// Fetch retrieves the body at the URL, honoring DNS sanity, robots.txt and
// the per-host rate limit. The host must already be known non-empty.
func (f *Fetcher) Fetch(ctx context.Context, rawURL, host string) ([]byte, error) {
	if err := f.lookupHost(ctx, host); err != nil {
		return nil, fmt.Errorf("resolve host: %w", err)
	}

	if f.robots != nil && !f.robots.IsAllowed(ctx, rawURL) {
		return nil, ErrRobotsDisallowed
	}

	if err := f.limiter.Wait(ctx, rawURL); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return body, nil
}

// defaultLookupHost rejects hosts that do not resolve before any request
// goes out
func defaultLookupHost(ctx context.Context, host string) error {
	_, err := net.DefaultResolver.LookupHost(ctx, host)
	return err
}
