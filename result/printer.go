package result

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lukemcguire/linkcheck/urlutil"
)

// displayURLLimit is the longest URL shown unabridged in progress lines.
const displayURLLimit = 60

// Printer writes colored console output for a link check run.
// Colors are dropped automatically when w is not a terminal.
type Printer struct {
	w io.Writer

	titleStyle   lipgloss.Style
	ruleStyle    lipgloss.Style
	stepStyle    lipgloss.Style
	infoStyle    lipgloss.Style
	okStyle      lipgloss.Style
	warningStyle lipgloss.Style
	errorStyle   lipgloss.Style
	boldStyle    lipgloss.Style
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	renderer := lipgloss.NewRenderer(w)
	return &Printer{
		w:            w,
		titleStyle:   renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		ruleStyle:    renderer.NewStyle().Foreground(lipgloss.Color("14")),
		stepStyle:    renderer.NewStyle().Foreground(lipgloss.Color("14")),
		infoStyle:    renderer.NewStyle().Foreground(lipgloss.Color("12")),
		okStyle:      renderer.NewStyle().Foreground(lipgloss.Color("10")),
		warningStyle: renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		errorStyle:   renderer.NewStyle().Foreground(lipgloss.Color("9")),
		boldStyle:    renderer.NewStyle().Bold(true),
	}
}

func (p *Printer) println(style lipgloss.Style, text string) {
	_, _ = fmt.Fprintln(p.w, style.Render(text))
}

// Header prints the banner shown before a run.
func (p *Printer) Header(title string) {
	p.println(p.titleStyle, title)
	p.println(p.ruleStyle, rule())
}

// Step prints a pipeline stage message such as "Extracting links".
func (p *Printer) Step(msg string) { p.println(p.stepStyle, msg) }

// Info prints an informational message.
func (p *Printer) Info(msg string) { p.println(p.infoStyle, msg) }

// Success prints a success message.
func (p *Printer) Success(msg string) { p.println(p.okStyle, msg) }

// Warning prints a warning message.
func (p *Printer) Warning(msg string) { p.println(p.warningStyle, msg) }

// Error prints an error message.
func (p *Printer) Error(msg string) { p.println(p.errorStyle, msg) }

// Progress prints the line shown before a link is probed.
func (p *Printer) Progress(index, total int, rawURL string) {
	_, _ = fmt.Fprintf(p.w, "  [%3d/%d] %s\n", index, total, urlutil.Truncate(rawURL, displayURLLimit))
}

// LinkStatus prints the line shown after a link is probed.
func (p *Printer) LinkStatus(link LinkResult) {
	switch link.Status {
	case StatusOK:
		p.println(p.okStyle, fmt.Sprintf("    ✅ OK (%d) - %ss", link.StatusCode, responseTimeStr(link.ResponseTime)))
	case StatusRedirect:
		p.println(p.warningStyle, fmt.Sprintf("    ⚠️  REDIRECT (%d) - %ss", link.StatusCode, responseTimeStr(link.ResponseTime)))
	case StatusBlocked:
		p.println(p.warningStyle, "    ⚠️  BLOCKED - "+link.Error)
	default:
		p.println(p.errorStyle, "    ❌ ERROR - "+errorDetail(link))
	}
}

// errorDetail explains an error result, falling back to the status when the
// probe recorded no message.
func errorDetail(link LinkResult) string {
	if link.Error != "" {
		return link.Error
	}
	detail := "Status: " + string(link.Status)
	if link.StatusCode != 0 {
		detail += " (" + strconv.Itoa(link.StatusCode) + ")"
	}
	return detail
}

// Summary prints the final tally and call-outs for errors and warnings.
func (p *Printer) Summary(s Summary) {
	_, _ = fmt.Fprintln(p.w)
	p.println(p.ruleStyle, rule())
	p.println(p.boldStyle, FormatSummaryLine(s))

	if s.Errors > 0 {
		p.Error(fmt.Sprintf("❌ %d broken links found", s.Errors))
	}
	if s.Warnings > 0 {
		p.Warning(fmt.Sprintf("⚠️  %d redirected links found", s.Warnings))
	}
	if s.Errors == 0 && s.Warnings == 0 {
		p.Success("✅ All links are working perfectly!")
	}
}

func rule() string { return strings.Repeat("=", 50) }
