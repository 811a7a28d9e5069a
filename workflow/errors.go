package workflow

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

var (
	// ErrStageAttached indicates a second Attach for a stage key.
	ErrStageAttached = errors.New("workflow: stage already attached")

	// ErrCancelled indicates the run's context was cancelled.
	ErrCancelled = errors.New("workflow: cancelled")
)

// Phase names the ordered pipeline phases for failure reporting.
type Phase string

const (
	PhaseResearch         Phase = "research"
	PhasePromptGeneration Phase = "prompt_generation"
	PhaseContentCreation  Phase = "content_creation"
	PhaseAggregation      Phase = "aggregation"
)

// PreconditionError reports an internal contract violation: a phase
// entered without its required upstream artifact, or an illegal state
// transition. It is unreachable when phases run in order.
type PreconditionError struct {
	Phase   Phase
	Missing Stage  // the absent upstream artifact, if that is the violation
	Detail  string // otherwise a description of the violated contract
}

func (e *PreconditionError) Error() string {
	if e.Missing != "" {
		return fmt.Sprintf("workflow: phase %s requires artifact %q", e.Phase, e.Missing)
	}
	return fmt.Sprintf("workflow: phase %s: %s", e.Phase, e.Detail)
}

// ParallelError aggregates failures from a phase's concurrent branches.
// The map is keyed by the branch's stage.
type ParallelError struct {
	Errors map[Stage]error
}

func (e *ParallelError) Error() string {
	if len(e.Errors) == 1 {
		for stage, err := range e.Errors {
			return fmt.Sprintf("workflow: branch %q failed: %v", stage, err)
		}
	}
	stages := make([]string, 0, len(e.Errors))
	for stage := range e.Errors {
		stages = append(stages, string(stage))
	}
	sort.Strings(stages)
	return fmt.Sprintf("workflow: %d branches failed: %s", len(e.Errors), strings.Join(stages, ", "))
}

// Unwrap returns one branch error for errors.Is/As compatibility.
func (e *ParallelError) Unwrap() error {
	for _, err := range e.Errors {
		return err
	}
	return nil
}

// Failure is the structured error a run terminates with. It names the
// phase that failed and carries the cause and the time spent before
// failing.
type Failure struct {
	WorkflowID  string
	FailedPhase Phase
	Cause       error
	Elapsed     time.Duration
}

func (f *Failure) Error() string {
	return fmt.Sprintf("workflow %s failed at %s: %v", f.WorkflowID, f.FailedPhase, f.Cause)
}

// Unwrap returns the cause.
func (f *Failure) Unwrap() error {
	return f.Cause
}

// Cancelled reports whether the failure was caused by cancellation.
func (f *Failure) Cancelled() bool {
	return errors.Is(f.Cause, ErrCancelled)
}
