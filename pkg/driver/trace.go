package driver

import "fmt"

// EventKind classifies a trace event.
type EventKind string

const (
	EventChoice    EventKind = "choice"    // heuristic chose a literal
	EventDefault   EventKind = "default"   // default heuristic chose a literal
	EventFallback  EventKind = "fallback"  // heuristic handed over control
	EventConflict  EventKind = "conflict"  // propagation failed
	EventBacktrack EventKind = "backtrack" // a decision was flipped
	EventRestart   EventKind = "restart"
	EventUnroll    EventKind = "unroll"
	EventModel     EventKind = "model" // a model was found
)

// Event is one step of a recorded run.
type Event struct {
	Seq   int       `json:"seq"`
	Kind  EventKind `json:"kind"`
	Lit   int       `json:"lit,omitempty"`
	Name  string    `json:"name,omitempty"`
	Level int       `json:"level"`
	Steps int       `json:"steps,omitempty"`
}

func (e Event) String() string {
	switch e.Kind {
	case EventFallback:
		return fmt.Sprintf("#%d %s %d steps", e.Seq, e.Kind, e.Steps)
	case EventModel, EventRestart:
		return fmt.Sprintf("#%d %s", e.Seq, e.Kind)
	}
	if e.Name != "" {
		return fmt.Sprintf("#%d %s %d %s", e.Seq, e.Kind, e.Lit, e.Name)
	}
	return fmt.Sprintf("#%d %s %d", e.Seq, e.Kind, e.Lit)
}

// recorder collects events when tracing is enabled.
type recorder struct {
	on     bool
	events []Event
}

func (r *recorder) add(e Event) {
	if !r.on {
		return
	}
	e.Seq = len(r.events) + 1
	r.events = append(r.events, e)
}
