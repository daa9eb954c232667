// Package tui provides the Bubble Tea terminal UI for linkcheck,
// displaying live progress and a styled summary of results.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lukemcguire/linkcheck/checker"
	"github.com/lukemcguire/linkcheck/result"
	"github.com/lukemcguire/linkcheck/urlutil"
)

// Model is the Bubble Tea model for the link check TUI.
type Model struct {
	ctx        context.Context
	cancel     context.CancelFunc
	checker    *checker.Checker
	links      []checker.LinkReference
	spinner    spinner.Model
	progressCh <-chan checker.CheckEvent

	checked  int
	broken   int
	total    int
	current  string
	quitting bool
	done     bool
	result   *result.Result
	err      error
	width    int
}

// NewModel creates a TUI model that runs chk over links and listens on progressCh.
func NewModel(ctx context.Context, cancel context.CancelFunc, chk *checker.Checker, links []checker.LinkReference, progressCh <-chan checker.CheckEvent) Model {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return Model{
		ctx:        ctx,
		cancel:     cancel,
		checker:    chk,
		links:      links,
		spinner:    spin,
		progressCh: progressCh,
		total:      len(links),
	}
}

// Init starts the spinner, the run, and the progress listener concurrently.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.startCheck(), waitForProgress(m.progressCh))
}

// startCheck returns a tea.Cmd that runs the checker and sends CheckDoneMsg.
func (m Model) startCheck() tea.Cmd {
	return func() tea.Msg {
		res, err := m.checker.Run(m.ctx, m.links)
		if err != nil {
			err = fmt.Errorf("check links: %w", err)
		}
		return CheckDoneMsg{Result: res, Err: err}
	}
}

// Update handles messages from the Bubble Tea runtime.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			m.cancel()
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case CheckProgressMsg:
		if msg.Checked > m.checked {
			m.checked = msg.Checked
			m.broken = msg.Broken
		}
		if msg.Total > 0 {
			m.total = msg.Total
		}
		m.current = msg.URL
		return m, waitForProgress(m.progressCh)

	case CheckDoneMsg:
		m.done = true
		m.result = msg.Result
		m.err = msg.Err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the current TUI state.
func (m Model) View() string {
	if m.done && m.result != nil {
		return RenderSummary(m.result)
	}
	if m.done && m.err != nil {
		return errorStyle.Render("Error: "+m.err.Error()) + "\n"
	}

	current := m.current
	if m.width > 4 {
		current = urlutil.Truncate(current, m.width-4)
	}
	return fmt.Sprintf("%s Checking links... %d/%d checked, %d broken\n%s\n",
		m.spinner.View(), m.checked, m.total, m.broken,
		dimStyle.Render("  "+current))
}

// HasErrors reports whether the run ended with error-classified links or
// did not complete.
func (m Model) HasErrors() bool {
	return m.result == nil || m.result.HasErrors()
}

// GetResult returns the run result for report generation.
func (m Model) GetResult() *result.Result {
	return m.result
}

// Err returns the error that ended the run, if any.
func (m Model) Err() error {
	return m.err
}
