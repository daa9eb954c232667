package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lukemcguire/linkcheck/checker"
	"github.com/lukemcguire/linkcheck/result"
)

// CheckProgressMsg reports progress for a single link.
type CheckProgressMsg struct {
	Checked int
	Broken  int
	Total   int
	URL     string
}

// CheckDoneMsg signals the run has completed.
type CheckDoneMsg struct {
	Result *result.Result
	Err    error
}

// waitForProgress returns a tea.Cmd that reads one event from the progress
// channel. The final result is delivered by startCheck, not by this channel.
func waitForProgress(ch <-chan checker.CheckEvent) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-ch
		if !ok {
			return nil
		}
		return CheckProgressMsg{
			Checked: evt.Checked,
			Broken:  evt.Broken,
			Total:   evt.Total,
			URL:     evt.Link.URL,
		}
	}
}
