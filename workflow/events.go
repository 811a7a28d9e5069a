package workflow

import "time"

// EventType identifies the kind of progress event.
type EventType string

const (
	// EventPhaseStart fires when a phase begins.
	EventPhaseStart EventType = "phase_start"

	// EventPhaseEnd fires when a phase completes successfully.
	EventPhaseEnd EventType = "phase_end"

	// EventBranchStart fires when a fanned-out branch begins.
	EventBranchStart EventType = "branch_start"

	// EventBranchEnd fires when a branch resolves, success or failure.
	EventBranchEnd EventType = "branch_end"

	// EventComplete is the terminal event of a successful run and
	// carries the final result.
	EventComplete EventType = "complete"

	// EventError is the terminal event of a failed run.
	EventError EventType = "error"
)

// Event is an observable occurrence during streaming execution.
type Event struct {
	Type      EventType `json:"type"`
	Phase     Phase     `json:"phase,omitempty"`
	Stage     Stage     `json:"stage,omitempty"`
	Error     string    `json:"error,omitempty"`
	Result    *Result   `json:"result,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// emit sends a progress event without blocking; a slow consumer drops
// progress events rather than stalling the run. Terminal events use
// emitFinal instead.
func emit(ch chan<- Event, e Event) {
	if ch == nil {
		return
	}
	e.Timestamp = time.Now()
	select {
	case ch <- e:
	default:
	}
}

// emitFinal blocks until the terminal event is delivered, so the
// consumer always observes the run's outcome.
func emitFinal(ch chan<- Event, e Event) {
	if ch == nil {
		return
	}
	e.Timestamp = time.Now()
	ch <- e
}
