package workflow

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Context is the mutable accumulator for one workflow run. It owns the
// workflow id, the immutable topic, and a write-once artifact map keyed
// by stage. A Context belongs to exactly one run and is discarded once
// the result is built; Attach is safe to call from concurrent branches
// within a phase.
type Context struct {
	id    string
	topic string
	start time.Time

	mu        sync.Mutex
	artifacts map[Stage]Artifact
	marks     map[Stage]time.Time
	durations map[Stage]time.Duration
}

// NewContext creates a run context for the given topic with a fresh
// workflow id.
func NewContext(topic string) *Context {
	return &Context{
		id:        uuid.NewString(),
		topic:     topic,
		start:     time.Now(),
		artifacts: make(map[Stage]Artifact),
		marks:     make(map[Stage]time.Time),
		durations: make(map[Stage]time.Duration),
	}
}

// ID returns the workflow id.
func (c *Context) ID() string { return c.id }

// Topic returns the user's original topic.
func (c *Context) Topic() string { return c.topic }

// StartTime returns when the run context was created.
func (c *Context) StartTime() time.Time { return c.start }

// BeginStage records the wall-clock start of a stage so Attach can
// compute its duration.
func (c *Context) BeginStage(stage Stage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.marks[stage] = time.Now()
}

// Attach records the artifact under its stage key and the stage's
// elapsed duration. A stage key can be written exactly once; a second
// Attach for the same stage returns ErrStageAttached and leaves the
// first artifact untouched.
func (c *Context) Attach(a Artifact) error {
	stage := a.Stage()

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.artifacts[stage]; exists {
		return fmt.Errorf("stage %q: %w", stage, ErrStageAttached)
	}
	c.artifacts[stage] = a

	mark, ok := c.marks[stage]
	if !ok {
		mark = c.start
	}
	c.durations[stage] = time.Since(mark)
	return nil
}

// Lookup returns the artifact attached under the stage key, if any.
func (c *Context) Lookup(stage Stage) (Artifact, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	a, ok := c.artifacts[stage]
	return a, ok
}

// Has reports whether the stage has an artifact attached.
func (c *Context) Has(stage Stage) bool {
	_, ok := c.Lookup(stage)
	return ok
}

// Durations returns a copy of the per-stage elapsed durations recorded
// so far.
func (c *Context) Durations() map[Stage]time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[Stage]time.Duration, len(c.durations))
	for k, v := range c.durations {
		out[k] = v
	}
	return out
}
