package urlutil

import "strings"

// NormalizeTarget turns the target of a markdown link into an absolute URL
// that can be checked over the network.
//
// In-page anchors ("#top") and relative paths ("./x", "../x") are rejected.
// Protocol-relative targets ("//host/path") are rewritten to https.
// Anything that does not then start with http:// or https:// is rejected.
//
// The second return value reports whether the target should be checked.
func NormalizeTarget(target string) (string, bool) {
	if target == "" || IsLocalReference(target) {
		return "", false
	}

	if strings.HasPrefix(target, "//") {
		target = "https:" + target
	}

	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		return "", false
	}

	return target, true
}

// IsLocalReference reports whether target points inside the document or
// the repository instead of at a network location.
func IsLocalReference(target string) bool {
	return strings.HasPrefix(target, "#") ||
		strings.HasPrefix(target, "./") ||
		strings.HasPrefix(target, "../")
}
