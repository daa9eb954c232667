package checker

import "github.com/lukemcguire/linkcheck/result"

// EventKind distinguishes the two progress events emitted per link.
type EventKind int

const (
	// EventChecking is sent right before a link is probed.
	EventChecking EventKind = iota
	// EventChecked is sent once the link's result is known.
	EventChecked
)

// CheckEvent reports progress for a single link.
type CheckEvent struct {
	Kind    EventKind
	Index   int // 1-based position of the link in the document order
	Total   int
	Link    LinkReference
	Result  *result.LinkResult // Set for EventChecked
	Checked int                // Links finished so far
	Broken  int                // Error results so far
}
