package relocator

import "fmt"

type EventKind int

const (
	EventStarted EventKind = iota
	EventMoved
	EventSkipped
	EventFailed
	EventFinished
)

// Event reports the progress of a run. Source is the absolute path of the
// matched file, Name the final file name inside the root.
type Event struct {
	Kind   EventKind
	Root   string
	Ext    string
	Source string
	Name   string
	Err    error
	Result Result
}

// Result summarizes a run.
type Result struct {
	Moved   int
	Failed  int
	Skipped int
}

// String renders the event as a progress log line.
func (e Event) String() string {
	switch e.Kind {
	case EventStarted:
		return fmt.Sprintf("Current directory: %s\nMoving .%s files...", e.Root, e.Ext)
	case EventMoved:
		return fmt.Sprintf("Moved: %s -> %s", e.Source, e.Name)
	case EventSkipped:
		return fmt.Sprintf("Skipped (already in target directory): %s", e.Source)
	case EventFailed:
		return fmt.Sprintf("Failed to move %s: %v", e.Source, e.Err)
	case EventFinished:
		if e.Result.Failed > 0 {
			return fmt.Sprintf("Done! Moved %d file(s), %d failed", e.Result.Moved, e.Result.Failed)
		}
		return fmt.Sprintf("Done! Moved %d file(s)", e.Result.Moved)
	}
	return ""
}
