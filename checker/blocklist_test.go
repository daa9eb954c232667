package checker

import (
	"reflect"
	"testing"
)

func TestParseHostList(t *testing.T) {
	tests := []struct {
		raw  string
		want HostList
	}{
		{"openai.com,anthropic.com", HostList{"openai.com", "anthropic.com"}},
		{" OpenAI.com , ,anthropic.com. ", HostList{"openai.com", "anthropic.com"}},
		{"", nil},
	}

	for _, tt := range tests {
		if got := ParseHostList(tt.raw); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseHostList(%q) = %#v, want %#v", tt.raw, got, tt.want)
		}
	}
}

func TestHostListMatches(t *testing.T) {
	list := HostList{"openai.com", "www.anthropic.com", "127.0.0.1"}

	tests := []struct {
		host string
		want bool
	}{
		{"openai.com", true},
		{"platform.openai.com", true},
		{"OPENAI.COM", true},
		{"docs.anthropic.com", true},
		{"anthropic.com", true},
		{"127.0.0.1", true},
		{"10.0.0.1", false},
		{"notopenai.com", false},
		{"example.com", false},
		{"openai.com.evil.example", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			if got := list.Matches(tt.host); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.host, got, tt.want)
			}
		})
	}
}

func TestHostListEmpty(t *testing.T) {
	var list HostList
	if list.Matches("openai.com") {
		t.Error("empty list should match nothing")
	}
}
