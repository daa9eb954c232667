package result

import (
	"math"
	"time"
)

// ProbeResult is the outcome of checking a single URL.
// Zero values mark optional fields as absent: StatusCode is 0 when no HTTP
// response was received and ResponseTime is nil when no request was made.
type ProbeResult struct {
	URL          string   `json:"url"`                     // The URL that was checked
	Status       Status   `json:"status"`                  // Classification of the outcome
	StatusCode   int      `json:"status_code,omitempty"`   // HTTP status code of the final response
	ResponseTime *float64 `json:"response_time,omitempty"` // Elapsed seconds, rounded to 2 decimals
	Error        string   `json:"error,omitempty"`         // Explanation for failure and blocked outcomes
	RedirectURL  string   `json:"redirect_url,omitempty"`  // Final URL, set only for redirects
}

// LinkResult is a ProbeResult merged with the link that produced it.
type LinkResult struct {
	Text       string `json:"text"`        // The markdown link label
	LineNumber int    `json:"line_number"` // 1-based line of the link in the document
	ProbeResult
}

// Summary holds the aggregate counters of a run.
// Once a run completes, OK + Warnings + Errors == Total.
type Summary struct {
	RunID     string    `json:"run_id"`
	Total     int       `json:"total"`
	OK        int       `json:"ok"`
	Warnings  int       `json:"warnings"`
	Errors    int       `json:"errors"`
	CheckedAt time.Time `json:"checked_at"`
}

// Add tallies one checked link according to its status severity.
func (s *Summary) Add(status Status) {
	switch status.Severity() {
	case SeverityOK:
		s.OK++
	case SeverityWarning:
		s.Warnings++
	default:
		s.Errors++
	}
}

// SuccessRate returns the percentage of working links rounded to one
// decimal, or 0 when nothing was checked.
func (s Summary) SuccessRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return math.Round(float64(s.OK)/float64(s.Total)*1000) / 10
}

// Result represents the complete output of a link check run.
type Result struct {
	Results  []LinkResult  `json:"results"` // One record per link, in document order
	Summary  Summary       `json:"summary"` // Aggregate statistics
	Duration time.Duration `json:"-"`       // Wall-clock time of the run
}

// BrokenLinks returns every result that is neither ok nor a redirect.
// Blocked links are included so they can be verified by hand.
func (r *Result) BrokenLinks() []LinkResult {
	var broken []LinkResult
	for _, link := range r.Results {
		if link.Status != StatusOK && link.Status != StatusRedirect {
			broken = append(broken, link)
		}
	}
	return broken
}

// Redirects returns every result with status redirect.
func (r *Result) Redirects() []LinkResult {
	var redirects []LinkResult
	for _, link := range r.Results {
		if link.Status == StatusRedirect {
			redirects = append(redirects, link)
		}
	}
	return redirects
}

// HasErrors reports whether any link ended in an error status.
func (r *Result) HasErrors() bool {
	return r != nil && r.Summary.Errors > 0
}

// Seconds converts d to seconds rounded to two decimals.
func Seconds(d time.Duration) *float64 {
	secs := math.Round(d.Seconds()*100) / 100
	return &secs
}
