package result

import (
	"testing"
	"time"
)

func TestSummaryAdd(t *testing.T) {
	statuses := []Status{
		StatusOK, StatusRedirect, StatusBlocked, StatusClientError, StatusServerError,
		StatusTimeout, StatusConnectionError, StatusError, StatusUnknownStatus, StatusOK,
	}

	s := Summary{Total: len(statuses)}
	for _, status := range statuses {
		s.Add(status)
	}

	if s.OK != 2 {
		t.Errorf("OK = %d, want 2", s.OK)
	}
	if s.Warnings != 2 {
		t.Errorf("Warnings = %d, want 2", s.Warnings)
	}
	if s.Errors != 6 {
		t.Errorf("Errors = %d, want 6", s.Errors)
	}
	if s.OK+s.Warnings+s.Errors != s.Total {
		t.Errorf("counters %d+%d+%d do not add up to total %d", s.OK, s.Warnings, s.Errors, s.Total)
	}
}

func TestSuccessRate(t *testing.T) {
	tests := []struct {
		summary Summary
		want    float64
	}{
		{Summary{}, 0},
		{Summary{Total: 3, OK: 1}, 33.3},
		{Summary{Total: 8, OK: 7}, 87.5},
		{Summary{Total: 5, OK: 5}, 100},
	}

	for _, tt := range tests {
		if got := tt.summary.SuccessRate(); got != tt.want {
			t.Errorf("SuccessRate(%+v) = %v, want %v", tt.summary, got, tt.want)
		}
	}
}

func TestBrokenLinksAndRedirects(t *testing.T) {
	res := &Result{Results: []LinkResult{
		{ProbeResult: ProbeResult{URL: "a", Status: StatusOK}},
		{ProbeResult: ProbeResult{URL: "b", Status: StatusRedirect}},
		{ProbeResult: ProbeResult{URL: "c", Status: StatusBlocked}},
		{ProbeResult: ProbeResult{URL: "d", Status: StatusServerError}},
	}}

	broken := res.BrokenLinks()
	if len(broken) != 2 || broken[0].URL != "c" || broken[1].URL != "d" {
		t.Errorf("BrokenLinks() = %+v, want c and d", broken)
	}

	redirects := res.Redirects()
	if len(redirects) != 1 || redirects[0].URL != "b" {
		t.Errorf("Redirects() = %+v, want b", redirects)
	}
}

func TestHasErrors(t *testing.T) {
	var nilResult *Result
	if nilResult.HasErrors() {
		t.Error("nil result should not have errors")
	}
	if (&Result{Summary: Summary{Warnings: 3}}).HasErrors() {
		t.Error("warnings alone should not count as errors")
	}
	if !(&Result{Summary: Summary{Errors: 1}}).HasErrors() {
		t.Error("expected HasErrors() = true")
	}
}

func TestSeconds(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want float64
	}{
		{1234 * time.Millisecond, 1.23},
		{1235*time.Millisecond + 500*time.Microsecond, 1.24},
		{0, 0},
	}

	for _, tt := range tests {
		if got := *Seconds(tt.d); got != tt.want {
			t.Errorf("Seconds(%v) = %v, want %v", tt.d, got, tt.want)
		}
	}
}
