package checker_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lukemcguire/linkcheck/checker"
	"github.com/lukemcguire/linkcheck/result"
)

// newTestServer serves a handful of endpoints covering each status family.
//
//	/ok        -> 200
//	/missing   -> 404
//	/broken    -> 500
//	/slow      -> 200 after 20ms
func newTestServer() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	})
	mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(20 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	})
	return httptest.NewServer(mux)
}

func testConfig() checker.Config {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg := checker.DefaultConfig()
	cfg.Timeout = 2 * time.Second
	cfg.Delay = 0
	cfg.Logger = logger
	return cfg
}

func links(base string) []checker.LinkReference {
	return []checker.LinkReference{
		{Text: "Home", URL: base + "/ok", LineNumber: 1},
		{Text: "Gone", URL: base + "/missing", LineNumber: 3},
		{Text: "AI", URL: "https://openai.com/blog", LineNumber: 4},
		{Text: "Down", URL: base + "/broken", LineNumber: 8},
		{Text: "Home again", URL: base + "/ok", LineNumber: 9},
	}
}

func assertTally(t *testing.T, s result.Summary) {
	t.Helper()
	if s.OK+s.Warnings+s.Errors != s.Total {
		t.Errorf("counters %d+%d+%d do not add up to total %d", s.OK, s.Warnings, s.Errors, s.Total)
	}
}

func TestRunEmptyLinks(t *testing.T) {
	var calls int32
	cfg := testConfig()
	cfg.Transport = roundTripCounter(&calls)

	res, err := checker.New(cfg, nil).Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if res.Summary.Total != 0 || res.Summary.OK != 0 || res.Summary.Warnings != 0 || res.Summary.Errors != 0 {
		t.Errorf("expected zero summary, got %+v", res.Summary)
	}
	if len(res.Results) != 0 {
		t.Errorf("expected no results, got %d", len(res.Results))
	}
	if calls != 0 {
		t.Errorf("expected no network calls, got %d", calls)
	}
}

func TestRunSequential(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	input := links(ts.URL)
	res, err := checker.New(testConfig(), nil).Run(context.Background(), input)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	wantStatus := []result.Status{
		result.StatusOK,
		result.StatusClientError,
		result.StatusBlocked,
		result.StatusServerError,
		result.StatusOK,
	}
	if len(res.Results) != len(wantStatus) {
		t.Fatalf("expected %d results, got %d", len(wantStatus), len(res.Results))
	}
	for i, got := range res.Results {
		if got.Status != wantStatus[i] {
			t.Errorf("result %d status = %v, want %v", i, got.Status, wantStatus[i])
		}
		if got.Text != input[i].Text || got.LineNumber != input[i].LineNumber || got.URL != input[i].URL {
			t.Errorf("result %d not merged with its link: %+v", i, got)
		}
	}

	s := res.Summary
	if s.Total != 5 || s.OK != 2 || s.Warnings != 1 || s.Errors != 2 {
		t.Errorf("unexpected summary %+v", s)
	}
	assertTally(t, s)
	if s.RunID == "" {
		t.Error("expected a run ID")
	}
	if s.CheckedAt.IsZero() {
		t.Error("expected CheckedAt to be captured")
	}
	if !res.HasErrors() {
		t.Error("expected HasErrors() = true")
	}
}

func TestRunDelayAfterEveryLink(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	cfg := testConfig()
	cfg.Delay = 40 * time.Millisecond

	input := []checker.LinkReference{
		{Text: "a", URL: ts.URL + "/ok", LineNumber: 1},
		{Text: "b", URL: ts.URL + "/ok", LineNumber: 2},
	}

	start := time.Now()
	if _, err := checker.New(cfg, nil).Run(context.Background(), input); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	// The pause also follows the last link
	if elapsed := time.Since(start); elapsed < 80*time.Millisecond {
		t.Errorf("run took %v, want at least 80ms for two delays", elapsed)
	}
}

func TestRunProgressEvents(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	input := links(ts.URL)
	progressCh := make(chan checker.CheckEvent, 2*len(input))

	res, err := checker.New(testConfig(), progressCh).Run(context.Background(), input)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	close(progressCh)

	var events []checker.CheckEvent
	for evt := range progressCh {
		events = append(events, evt)
	}
	if len(events) != 2*len(input) {
		t.Fatalf("expected %d events, got %d", 2*len(input), len(events))
	}

	for i := range input {
		before, after := events[2*i], events[2*i+1]
		if before.Kind != checker.EventChecking || before.Index != i+1 || before.Total != len(input) {
			t.Errorf("event %d: unexpected checking event %+v", 2*i, before)
		}
		if after.Kind != checker.EventChecked || after.Result == nil {
			t.Fatalf("event %d: unexpected checked event %+v", 2*i+1, after)
		}
		if after.Result.URL != input[i].URL || after.Checked != i+1 {
			t.Errorf("event %d: checked event out of order %+v", 2*i+1, after)
		}
	}

	last := events[len(events)-1]
	if last.Broken != res.Summary.Errors {
		t.Errorf("last event Broken = %d, want %d", last.Broken, res.Summary.Errors)
	}
}

func TestRunConcurrentKeepsOrder(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	cfg := testConfig()
	cfg.Concurrency = 3

	input := links(ts.URL)
	input = append(input,
		checker.LinkReference{Text: "Slow", URL: ts.URL + "/slow", LineNumber: 10},
		checker.LinkReference{Text: "Slow 2", URL: ts.URL + "/slow", LineNumber: 11},
	)
	progressCh := make(chan checker.CheckEvent, 2*len(input))

	res, err := checker.New(cfg, progressCh).Run(context.Background(), input)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if len(res.Results) != len(input) {
		t.Fatalf("expected %d results, got %d", len(input), len(res.Results))
	}
	for i, got := range res.Results {
		if got.URL != input[i].URL || got.LineNumber != input[i].LineNumber {
			t.Errorf("result %d out of order: %+v", i, got)
		}
	}

	s := res.Summary
	if s.OK != 4 || s.Warnings != 1 || s.Errors != 2 {
		t.Errorf("unexpected summary %+v", s)
	}
	assertTally(t, s)
	if len(progressCh) != 2*len(input) {
		t.Errorf("expected %d events, got %d", 2*len(input), len(progressCh))
	}
}

func TestRunCancellation(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	cfg := testConfig()
	cfg.Delay = time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := checker.New(cfg, nil).Run(ctx, links(ts.URL))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context.DeadlineExceeded, got %v", err)
	}
}

func roundTripCounter(calls *int32) http.RoundTripper {
	return roundTripFunc(func(req *http.Request) (*http.Response, error) {
		atomic.AddInt32(calls, 1)
		return nil, errors.New("unexpected request")
	})
}

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
