package urlutil

import "testing"

func TestNormalizeTarget(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{
			name:     "https passes through",
			input:    "https://example.com/page",
			expected: "https://example.com/page",
			ok:       true,
		},
		{
			name:     "http passes through",
			input:    "http://example.com",
			expected: "http://example.com",
			ok:       true,
		},
		{
			name:     "protocol-relative becomes https",
			input:    "//example.com/a",
			expected: "https://example.com/a",
			ok:       true,
		},
		{
			name:     "fragment is kept",
			input:    "https://example.com/page#section",
			expected: "https://example.com/page#section",
			ok:       true,
		},
		{
			name:  "anchor rejected",
			input: "#top",
			ok:    false,
		},
		{
			name:  "dot relative rejected",
			input: "./docs/setup.md",
			ok:    false,
		},
		{
			name:  "parent relative rejected",
			input: "../LICENSE",
			ok:    false,
		},
		{
			name:  "bare relative rejected",
			input: "docs/setup.md",
			ok:    false,
		},
		{
			name:  "mailto rejected",
			input: "mailto:user@example.com",
			ok:    false,
		},
		{
			name:  "empty rejected",
			input: "",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeTarget(tt.input)
			if ok != tt.ok {
				t.Fatalf("NormalizeTarget(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if got != tt.expected {
				t.Errorf("NormalizeTarget(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestIsLocalReference(t *testing.T) {
	for _, target := range []string{"#section", "./x", "../x"} {
		if !IsLocalReference(target) {
			t.Errorf("IsLocalReference(%q) = false, want true", target)
		}
	}
	if IsLocalReference("https://example.com/#x") {
		t.Error("absolute URL with fragment should not be a local reference")
	}
}
