package checker

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	"github.com/temoto/robotstxt"

	"github.com/lukemcguire/linkcheck/urlutil"
)

// maxRobotsBytes bounds how much of a robots.txt file is read.
const maxRobotsBytes = 512 * 1024

// RobotsPolicy decides whether a host's robots.txt forbids automated access
// to a URL. Rules are fetched once per scheme and host and kept for the run.
// Fetch and parse failures allow access.
type RobotsPolicy struct {
	client *http.Client

	mu    sync.Mutex
	rules map[string]*robotstxt.RobotsData // nil value means allow-all
}

// NewRobotsPolicy creates a RobotsPolicy that fetches robots.txt with client.
func NewRobotsPolicy(client *http.Client) *RobotsPolicy {
	return &RobotsPolicy{
		client: client,
		rules:  make(map[string]*robotstxt.RobotsData),
	}
}

// Allowed reports whether userAgent may fetch rawURL.
// A non-nil error explains why the rules could not be loaded; the returned
// decision is then always true.
func (r *RobotsPolicy) Allowed(ctx context.Context, rawURL, userAgent string) (bool, error) {
	if !urlutil.IsHTTPScheme(rawURL) {
		return true, nil
	}
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return true, fmt.Errorf("parse URL: %w", err)
	}
	if parsedURL.Host == "" {
		return true, nil
	}

	key := parsedURL.Scheme + "://" + parsedURL.Host

	r.mu.Lock()
	data, cached := r.rules[key]
	r.mu.Unlock()

	if !cached {
		data, err = r.fetch(ctx, key, userAgent)
		r.mu.Lock()
		r.rules[key] = data
		r.mu.Unlock()
		if err != nil {
			return true, err
		}
	}

	if data == nil {
		return true, nil
	}

	path := parsedURL.EscapedPath()
	if path == "" {
		path = "/"
	}
	return data.TestAgent(path, userAgent), nil
}

// fetch downloads and parses robots.txt for origin. A nil result with a nil
// error means the host publishes no usable rules.
func (r *RobotsPolicy) fetch(ctx context.Context, origin, userAgent string) (*robotstxt.RobotsData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, origin+"/robots.txt", nil)
	if err != nil {
		return nil, fmt.Errorf("create robots.txt request for %s: %w", origin, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch robots.txt for %s: %w", origin, err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Missing or failing robots.txt allows everything
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRobotsBytes))
	if err != nil {
		return nil, fmt.Errorf("read robots.txt body for %s: %w", origin, err)
	}

	data, err := robotstxt.FromStatusAndBytes(resp.StatusCode, body)
	if err != nil {
		return nil, fmt.Errorf("parse robots.txt for %s: %w", origin, err)
	}
	return data, nil
}
