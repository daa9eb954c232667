package result

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// WriteJSON writes the full run, summary and per-link records, as indented
// JSON to the writer.
func WriteJSON(w io.Writer, res *Result) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("write json output: %w", err)
	}
	return nil
}

// csvHeader is the column order of WriteCSV.
var csvHeader = []string{"line_number", "text", "url", "status", "status_code", "response_time", "error", "redirect_url"}

// WriteCSV writes one row per link as CSV to the writer.
// Always includes a header row, even if there are no links.
func WriteCSV(w io.Writer, links []LinkResult) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, link := range links {
		record := []string{
			strconv.Itoa(link.LineNumber),
			link.Text,
			link.URL,
			string(link.Status),
			statusCodeStr(link.StatusCode),
			responseTimeStr(link.ResponseTime),
			link.Error,
			link.RedirectURL,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record for %s: %w", link.URL, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}
	return nil
}

// statusCodeStr converts an HTTP status code to a string.
// Returns empty string for 0 (no HTTP status).
func statusCodeStr(code int) string {
	if code == 0 {
		return ""
	}
	return strconv.Itoa(code)
}

// responseTimeStr renders seconds without trailing zeros (0.1, 1.25).
// Returns empty string when no request was made.
func responseTimeStr(secs *float64) string {
	if secs == nil {
		return ""
	}
	return strconv.FormatFloat(*secs, 'f', -1, 64)
}
