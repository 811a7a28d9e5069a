package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateForwardPath(t *testing.T) {
	path := []State{
		StateCreated,
		StateResearching,
		StatePromptGenerating,
		StateCreatingContent,
		StateAggregating,
		StateCompleted,
	}

	for i := 0; i < len(path)-1; i++ {
		assert.True(t, path[i].CanTransition(path[i+1]),
			"%s -> %s should be allowed", path[i], path[i+1])
	}
}

func TestStateNoSkipping(t *testing.T) {
	assert.False(t, StateCreated.CanTransition(StatePromptGenerating))
	assert.False(t, StateResearching.CanTransition(StateCreatingContent))
	assert.False(t, StateCreated.CanTransition(StateCompleted))
}

func TestStateNoBackwards(t *testing.T) {
	assert.False(t, StateResearching.CanTransition(StateCreated))
	assert.False(t, StateAggregating.CanTransition(StateResearching))
}

func TestStateFailedFromAnyNonTerminal(t *testing.T) {
	for _, s := range []State{StateCreated, StateResearching, StatePromptGenerating, StateCreatingContent, StateAggregating} {
		assert.True(t, s.CanTransition(StateFailed), "%s -> failed should be allowed", s)
	}
}

func TestTerminalStatesAreFinal(t *testing.T) {
	assert.True(t, StateCompleted.Terminal())
	assert.True(t, StateFailed.Terminal())

	assert.False(t, StateCompleted.CanTransition(StateFailed))
	assert.False(t, StateFailed.CanTransition(StateResearching))
	assert.False(t, StateFailed.CanTransition(StateFailed))
}
