package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lukemcguire/linkcheck/result"
)

var (
	titleStyle       = lipgloss.NewStyle().Bold(true)
	successStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	errorStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	headerStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	categoryStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	dimStyle         = lipgloss.NewStyle().Faint(true)
	cellStyle        = lipgloss.NewStyle()
	statusErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	statusWarnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// statusOrder defines the display order for non-ok statuses (most to least actionable).
var statusOrder = []result.Status{
	result.StatusClientError,
	result.StatusServerError,
	result.StatusTimeout,
	result.StatusConnectionError,
	result.StatusError,
	result.StatusUnknownStatus,
	result.StatusBlocked,
	result.StatusRedirect,
}

// statusLabel returns a human-readable heading for a status group.
func statusLabel(status result.Status) string {
	switch status {
	case result.StatusClientError:
		return "Client Errors (4xx)"
	case result.StatusServerError:
		return "Server Errors (5xx)"
	case result.StatusTimeout:
		return "Timeouts"
	case result.StatusConnectionError:
		return "Connection Failures"
	case result.StatusUnknownStatus:
		return "Unexpected Status Codes"
	case result.StatusBlocked:
		return "Blocked (verify manually)"
	case result.StatusRedirect:
		return "Redirects"
	default:
		return "Other Errors"
	}
}

// RenderSummary produces a Lip Gloss styled summary of a run.
func RenderSummary(res *result.Result) string {
	if res == nil {
		return errorStyle.Render("No results available.")
	}

	var builder strings.Builder

	grouped := make(map[result.Status][]result.LinkResult)
	for _, link := range res.Results {
		if link.Status == result.StatusOK {
			continue
		}
		grouped[link.Status] = append(grouped[link.Status], link)
	}

	for _, status := range statusOrder {
		links := grouped[status]
		if len(links) == 0 {
			continue
		}

		builder.WriteString(categoryStyle.Render(fmt.Sprintf("## %s (%d)", statusLabel(status), len(links))))
		builder.WriteString("\n")

		rows := make([][]string, 0, len(links))
		for _, link := range links {
			rows = append(rows, []string{strconv.Itoa(link.LineNumber), link.URL, detail(link)})
		}

		statusStyle := statusErrorStyle
		if status.Severity() == result.SeverityWarning {
			statusStyle = statusWarnStyle
		}

		statusTable := table.New().
			Border(lipgloss.RoundedBorder()).
			Headers("Line", "URL", "Detail").
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				if col == 2 { // Detail column
					return statusStyle
				}
				return cellStyle
			}).
			Rows(rows...)

		builder.WriteString(statusTable.Render())
		builder.WriteString("\n\n")
	}

	summaryLine := result.FormatSummaryLine(res.Summary)
	if res.Summary.Errors == 0 && res.Summary.Warnings == 0 {
		builder.WriteString(successStyle.Render(summaryLine))
	} else {
		builder.WriteString(titleStyle.Render(summaryLine))
	}
	builder.WriteString("\n")
	builder.WriteString(dimStyle.Render(fmt.Sprintf(
		"%d ok, %d warnings, %d errors in %s",
		res.Summary.OK,
		res.Summary.Warnings,
		res.Summary.Errors,
		res.Duration.Round(time.Millisecond),
	)))
	builder.WriteString("\n")

	return builder.String()
}

// detail describes a non-ok result in one cell.
func detail(link result.LinkResult) string {
	switch {
	case link.Status == result.StatusRedirect:
		return "→ " + link.RedirectURL
	case link.Error != "":
		return link.Error
	case link.StatusCode != 0:
		return strconv.Itoa(link.StatusCode)
	default:
		return string(link.Status)
	}
}
