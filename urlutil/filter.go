package urlutil

import (
	"net/url"
	"strings"
)

// HostMatches reports whether host equals domain or is a subdomain of it.
// Comparison is case-insensitive and ignores a trailing dot on either side.
func HostMatches(host string, domain string) bool {
	host = strings.TrimSuffix(strings.ToLower(host), ".")
	domain = strings.TrimSuffix(strings.ToLower(domain), ".")
	if host == "" || domain == "" {
		return false
	}

	return host == domain || strings.HasSuffix(host, "."+domain)
}

// Hostname extracts the hostname (without port) from a URL string.
// Returns an empty string when the URL cannot be parsed.
func Hostname(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(parsed.Hostname())
}

// IsHTTPScheme returns true if the URL has an http or https scheme.
// Returns false for empty strings, non-HTTP schemes, or unparseable URLs.
func IsHTTPScheme(rawURL string) bool {
	if rawURL == "" {
		return false
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	scheme := strings.ToLower(parsed.Scheme)
	return scheme == "http" || scheme == "https"
}

// Truncate shortens rawURL for display, keeping the first limit-3 bytes
// followed by "..." when it is longer than limit.
func Truncate(rawURL string, limit int) string {
	if limit <= 3 || len(rawURL) <= limit {
		return rawURL
	}
	return rawURL[:limit-3] + "..."
}
