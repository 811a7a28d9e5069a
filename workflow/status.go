package workflow

// Status is the terminal outcome of a workflow run.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"

	// StatusPartial is reserved for best-effort aggregation. The
	// pipeline is all-or-nothing, so this value is declared for the
	// result schema but never produced.
	StatusPartial Status = "partial"
)

// State is the orchestrator's position in the run lifecycle. States
// advance strictly in order; any non-terminal state may transition to
// StateFailed.
type State string

const (
	StateCreated          State = "created"
	StateResearching      State = "researching"
	StatePromptGenerating State = "prompt_generating"
	StateCreatingContent  State = "creating_content"
	StateAggregating      State = "aggregating"
	StateCompleted        State = "completed"
	StateFailed           State = "failed"
)

// stateOrder gives each state's position in the forward path.
var stateOrder = map[State]int{
	StateCreated:          0,
	StateResearching:      1,
	StatePromptGenerating: 2,
	StateCreatingContent:  3,
	StateAggregating:      4,
	StateCompleted:        5,
}

// Terminal reports whether the state is a terminal state.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateFailed
}

// CanTransition reports whether the state machine permits moving from s
// to next: one step forward along the ordered path, or to StateFailed
// from any non-terminal state.
func (s State) CanTransition(next State) bool {
	if s.Terminal() {
		return false
	}
	if next == StateFailed {
		return true
	}
	from, okFrom := stateOrder[s]
	to, okTo := stateOrder[next]
	return okFrom && okTo && to == from+1
}
