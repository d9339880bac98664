package engine

// EventKind identifies a change between two states.
type EventKind int

const (
	EventStarted   EventKind = iota + 1 // Mines placed, game moved to playing
	EventRevealed                       // A cell became revealed
	EventFlagged                        // A flag was placed
	EventUnflagged                      // A flag was removed
	EventWon
	EventLost
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventRevealed:
		return "revealed"
	case EventFlagged:
		return "flagged"
	case EventUnflagged:
		return "unflagged"
	case EventWon:
		return "won"
	case EventLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Event is a single observed change. Row and Col are set for cell events.
type Event struct {
	Kind     EventKind
	Row, Col int
}

// Diff lists the changes from prev to next: the start event first, then
// cell events in row-major order, then the terminal event. It returns nil
// when both are the same state or the boards have different shapes.
func Diff(prev, next *GameState) []Event {
	if prev == nil || next == nil || prev == next {
		return nil
	}
	if prev.rows != next.rows || prev.cols != next.cols {
		return nil
	}

	var events []Event
	if prev.status == StatusIdle && next.status != StatusIdle {
		events = append(events, Event{Kind: EventStarted})
	}

	for i := range next.cells {
		before, after := prev.cells[i], next.cells[i]
		switch {
		case !before.IsRevealed && after.IsRevealed:
			events = append(events, Event{Kind: EventRevealed, Row: after.Row, Col: after.Col})
		case !before.IsFlagged && after.IsFlagged:
			events = append(events, Event{Kind: EventFlagged, Row: after.Row, Col: after.Col})
		case before.IsFlagged && !after.IsFlagged:
			events = append(events, Event{Kind: EventUnflagged, Row: after.Row, Col: after.Col})
		}
	}

	if prev.status != next.status {
		switch next.status {
		case StatusWon:
			events = append(events, Event{Kind: EventWon})
		case StatusLost:
			events = append(events, Event{Kind: EventLost})
		}
	}

	return events
}

// Count returns how many events of the given kind are in events.
func Count(events []Event, kind EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
