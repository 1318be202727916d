package util

import (
	"net/http"
	"net/url"
	"testing"
)

func proxyFor(t *testing.T, fn func(*http.Request) (*url.URL, error), rawURL string) *url.URL {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	proxyURL, err := fn(req)
	if err != nil {
		t.Fatalf("Proxy func failed: %v", err)
	}
	return proxyURL
}

func TestNewProxyFunc_SchemeSelection(t *testing.T) {
	fn := NewProxyFunc("http://proxy-http:3128", "http://proxy-https:3128", "")

	httpsProxy := proxyFor(t, fn, "https://example.com/page")
	if httpsProxy == nil || httpsProxy.Host != "proxy-https:3128" {
		t.Errorf("Expected https proxy, got %v", httpsProxy)
	}

	httpProxy := proxyFor(t, fn, "http://example.com/page")
	if httpProxy == nil || httpProxy.Host != "proxy-http:3128" {
		t.Errorf("Expected http proxy, got %v", httpProxy)
	}
}

func TestNewProxyFunc_NoProxyBypass(t *testing.T) {
	fn := NewProxyFunc("http://proxy:3128", "", "internal.example.com, .corp.local")

	tests := []struct {
		url        string
		wantBypass bool
	}{
		{"http://internal.example.com/x", true},
		{"http://svc.internal.example.com/x", true},
		{"http://host.corp.local/x", true},
		{"http://example.com/x", false},
	}

	for _, tt := range tests {
		got := proxyFor(t, fn, tt.url)
		if tt.wantBypass && got != nil {
			t.Errorf("Expected %s to bypass proxy, got %v", tt.url, got)
		}
		if !tt.wantBypass && got == nil {
			t.Errorf("Expected %s to use proxy", tt.url)
		}
	}
}

func TestNewProxyFunc_WildcardBypassesEverything(t *testing.T) {
	fn := NewProxyFunc("http://proxy:3128", "", "*")

	if got := proxyFor(t, fn, "http://example.com/x"); got != nil {
		t.Errorf("Expected wildcard to bypass proxy, got %v", got)
	}
}
