package result

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Format selects the file layout of a saved report.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
)

// ParseFormat validates a report format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatMarkdown, FormatJSON, FormatCSV:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown report format %q (want markdown, json or csv)", name)
	}
}

// Extension returns the file extension used for auto-named reports.
func (f Format) Extension() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatCSV:
		return ".csv"
	default:
		return ".md"
	}
}

// TimestampLayout is the layout of the "Generated on" line.
const TimestampLayout = "2006-01-02T15:04:05"

// FormatSuccessRate renders the success percentage, e.g. "75.0%".
// An empty run renders as "0%".
func FormatSuccessRate(s Summary) string {
	if s.Total == 0 {
		return "0%"
	}
	return strconv.FormatFloat(s.SuccessRate(), 'f', 1, 64) + "%"
}

// FormatSummaryLine renders the one-line tally shown at the end of a run.
func FormatSummaryLine(s Summary) string {
	return fmt.Sprintf("📊 SUMMARY: %d/%d links working (%s)", s.OK, s.Total, FormatSuccessRate(s))
}

// DefaultReportPath returns reports/link_check_<YYYYMMDD_HHMMSS> with the
// extension of format.
func DefaultReportPath(now time.Time, format Format) string {
	return filepath.Join("reports", "link_check_"+now.Format("20060102_150405")+format.Extension())
}

// RenderReport renders res as a markdown report. Rendering is deterministic:
// the only timestamp is the one captured when the run started.
func RenderReport(res *Result) string {
	lines := []string{
		"# 🔗 Link Check Report",
		"Generated on: " + res.Summary.CheckedAt.Format(TimestampLayout),
		"",
		"## 📊 Summary",
		fmt.Sprintf("- **Total Links**: %d", res.Summary.Total),
		fmt.Sprintf("- **✅ Working**: %d", res.Summary.OK),
		fmt.Sprintf("- **⚠️ Warnings**: %d", res.Summary.Warnings),
		fmt.Sprintf("- **❌ Errors**: %d", res.Summary.Errors),
		"- **📈 Success Rate**: " + FormatSuccessRate(res.Summary),
		"",
	}

	if broken := res.BrokenLinks(); len(broken) > 0 {
		lines = append(lines, "## ❌ Broken Links")
		for _, link := range broken {
			lines = append(lines, linkHeading(link), "  - Status: "+string(link.Status))
			if link.Error != "" {
				lines = append(lines, "  - Error: "+link.Error)
			}
			lines = append(lines, "")
		}
	}

	if redirects := res.Redirects(); len(redirects) > 0 {
		lines = append(lines, "## ⚠️ Redirected Links")
		for _, link := range redirects {
			lines = append(lines, linkHeading(link), "  - Redirects to: "+link.RedirectURL, "")
		}
	}

	return strings.Join(lines, "\n")
}

func linkHeading(link LinkResult) string {
	return fmt.Sprintf("- **Line %d**: [%s](%s)", link.LineNumber, link.Text, link.URL)
}

// WriteReport writes res to w in the given format.
func WriteReport(w io.Writer, res *Result, format Format) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, res)
	case FormatCSV:
		return WriteCSV(w, res.Results)
	default:
		if _, err := io.WriteString(w, RenderReport(res)); err != nil {
			return fmt.Errorf("write markdown report: %w", err)
		}
		return nil
	}
}

// SaveReport writes res to path, creating parent directories as needed and
// replacing any existing file.
func SaveReport(res *Result, path string, format Format) error {
	var buf bytes.Buffer
	if err := WriteReport(&buf, res, format); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}
