package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelar/contentforge"
	"github.com/avelar/contentforge/retry"
)

const testTopic = "space exploration and Mars missions"

// fakeBackend implements all four capabilities with overridable
// behavior and records the order of calls.
type fakeBackend struct {
	mu    sync.Mutex
	calls []string

	research    func(ctx context.Context) (string, error)
	imagePrompt func(ctx context.Context) (string, error)
	storyPrompt func(ctx context.Context) (string, error)
	image       func(ctx context.Context) (*contentforge.ImageRef, error)
	story       func(ctx context.Context) (string, error)
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		research: func(ctx context.Context) (string, error) {
			return "Mars missions summary: rover discoveries and crewed mission plans.", nil
		},
		imagePrompt: func(ctx context.Context) (string, error) {
			return "An astronaut on Mars at sunset, photorealistic.", nil
		},
		storyPrompt: func(ctx context.Context) (string, error) {
			return "Write a story about the first Mars colonists.", nil
		},
		image: func(ctx context.Context) (*contentforge.ImageRef, error) {
			return &contentforge.ImageRef{URL: "https://images.example/mars.png"}, nil
		},
		story: func(ctx context.Context) (string, error) {
			return "The colonists watched the blue sunset from Jezero crater.", nil
		},
	}
}

func (b *fakeBackend) record(name string) {
	b.mu.Lock()
	b.calls = append(b.calls, name)
	b.mu.Unlock()
}

func (b *fakeBackend) callOrder() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.calls...)
}

func (b *fakeBackend) Research(ctx context.Context, topic string, opts ...contentforge.Option) (string, error) {
	b.record("research")
	return b.research(ctx)
}

func (b *fakeBackend) GenerateImagePrompt(ctx context.Context, req contentforge.PromptRequest, opts ...contentforge.Option) (string, error) {
	b.record("image_prompt")
	return b.imagePrompt(ctx)
}

func (b *fakeBackend) GenerateStoryPrompt(ctx context.Context, req contentforge.PromptRequest, opts ...contentforge.Option) (string, error) {
	b.record("story_prompt")
	return b.storyPrompt(ctx)
}

func (b *fakeBackend) GenerateImage(ctx context.Context, prompt string, opts ...contentforge.ImageOption) (*contentforge.ImageRef, error) {
	b.record("image")
	return b.image(ctx)
}

func (b *fakeBackend) WriteStory(ctx context.Context, prompt string, opts ...contentforge.Option) (string, error) {
	b.record("story")
	return b.story(ctx)
}

func (b *fakeBackend) caps() contentforge.Capabilities {
	return contentforge.Capabilities{
		Researcher: b,
		Prompts:    b,
		Images:     b,
		Stories:    b,
	}
}

func indexOf(calls []string, name string) int {
	for i, c := range calls {
		if c == name {
			return i
		}
	}
	return -1
}

func TestNewRejectsMissingCapability(t *testing.T) {
	backend := newFakeBackend()
	caps := backend.caps()
	caps.Images = nil

	_, err := New(caps)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Images")
}

func TestRunHappyPath(t *testing.T) {
	backend := newFakeBackend()
	orc, err := New(backend.caps())
	require.NoError(t, err)

	result, err := orc.Run(context.Background(), testTopic)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "Mars missions summary: rover discoveries and crewed mission plans.", result.ResearchSummary)
	assert.Equal(t, "An astronaut on Mars at sunset, photorealistic.", result.ImagePrompt)
	assert.Equal(t, "Write a story about the first Mars colonists.", result.StoryPrompt)
	assert.Equal(t, "https://images.example/mars.png", result.GeneratedImage)
	assert.Equal(t, "The colonists watched the blue sunset from Jezero crater.", result.GeneratedStory)

	assert.Equal(t, StatusCompleted, result.Metadata.Status)
	assert.GreaterOrEqual(t, result.Metadata.ExecutionTime, 0.0)
	assert.False(t, result.Metadata.Timestamp.IsZero())

	_, err = uuid.Parse(result.Metadata.WorkflowID)
	assert.NoError(t, err)
}

func TestRunCallOrdering(t *testing.T) {
	backend := newFakeBackend()
	orc, err := New(backend.caps())
	require.NoError(t, err)

	_, err = orc.Run(context.Background(), testTopic)
	require.NoError(t, err)

	calls := backend.callOrder()
	require.Len(t, calls, 5)
	assert.Equal(t, "research", calls[0])

	// Both prompt calls resolve before either content branch starts.
	for _, prompt := range []string{"image_prompt", "story_prompt"} {
		for _, content := range []string{"image", "story"} {
			assert.Less(t, indexOf(calls, prompt), indexOf(calls, content),
				"%s must complete before %s", prompt, content)
		}
	}
}

func TestRunContentBranchesOverlap(t *testing.T) {
	backend := newFakeBackend()

	imageStarted := make(chan struct{})
	storyStarted := make(chan struct{})

	awaitPeer := func(mine chan struct{}, peer chan struct{}) error {
		close(mine)
		select {
		case <-peer:
			return nil
		case <-time.After(2 * time.Second):
			return fmt.Errorf("peer branch never started")
		}
	}

	backend.image = func(ctx context.Context) (*contentforge.ImageRef, error) {
		if err := awaitPeer(imageStarted, storyStarted); err != nil {
			return nil, err
		}
		return &contentforge.ImageRef{URL: "https://images.example/mars.png"}, nil
	}
	backend.story = func(ctx context.Context) (string, error) {
		if err := awaitPeer(storyStarted, imageStarted); err != nil {
			return "", err
		}
		return "story", nil
	}

	orc, err := New(backend.caps())
	require.NoError(t, err)

	_, err = orc.Run(context.Background(), testTopic)
	assert.NoError(t, err, "branches must run concurrently, not sequentially")
}

func TestRunResearchFailureShortCircuits(t *testing.T) {
	backend := newFakeBackend()
	backend.research = func(ctx context.Context) (string, error) {
		return "", contentforge.NewUnavailableError("backend down", 503, nil)
	}

	orc, err := New(backend.caps())
	require.NoError(t, err)

	result, err := orc.Run(context.Background(), testTopic)
	assert.Nil(t, result)

	var failure *Failure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, PhaseResearch, failure.FailedPhase)
	assert.NotEmpty(t, failure.WorkflowID)
	assert.True(t, contentforge.IsUnavailable(failure.Cause))

	// Nothing downstream ran.
	assert.Equal(t, []string{"research"}, backend.callOrder())
}

func TestRunBranchFailureWaitsForPeer(t *testing.T) {
	backend := newFakeBackend()
	backend.image = func(ctx context.Context) (*contentforge.ImageRef, error) {
		return nil, contentforge.NewInvalidResponseError("content policy rejection", 400, nil)
	}

	storyFinished := false
	backend.story = func(ctx context.Context) (string, error) {
		time.Sleep(20 * time.Millisecond)
		storyFinished = true
		return "story", nil
	}

	orc, err := New(backend.caps())
	require.NoError(t, err)

	_, err = orc.Run(context.Background(), testTopic)

	var failure *Failure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, PhaseContentCreation, failure.FailedPhase)

	var parallel *ParallelError
	require.ErrorAs(t, failure.Cause, &parallel)
	require.Contains(t, parallel.Errors, StageImage)
	assert.True(t, contentforge.IsInvalidResponse(parallel.Errors[StageImage]))

	// The join is a barrier: the healthy branch ran to completion.
	assert.True(t, storyFinished)
}

func TestRunCallTimeout(t *testing.T) {
	backend := newFakeBackend()
	backend.research = func(ctx context.Context) (string, error) {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(5 * time.Second):
			return "too late", nil
		}
	}

	orc, err := New(backend.caps(), WithCallTimeout(10*time.Millisecond))
	require.NoError(t, err)

	start := time.Now()
	_, err = orc.Run(context.Background(), testTopic)
	assert.Less(t, time.Since(start), time.Second)

	var failure *Failure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, PhaseResearch, failure.FailedPhase)
	assert.True(t, contentforge.IsTimeout(failure.Cause))
}

func TestRunOverallTimeout(t *testing.T) {
	backend := newFakeBackend()
	backend.story = func(ctx context.Context) (string, error) {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(5 * time.Second):
			return "too late", nil
		}
	}

	orc, err := New(backend.caps(), WithTimeout(30*time.Millisecond))
	require.NoError(t, err)

	start := time.Now()
	_, err = orc.Run(context.Background(), testTopic)
	assert.Less(t, time.Since(start), time.Second)

	var failure *Failure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, PhaseContentCreation, failure.FailedPhase)
}

func TestRunCancellation(t *testing.T) {
	backend := newFakeBackend()
	backend.research = func(ctx context.Context) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}

	orc, err := New(backend.caps())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err = orc.Run(ctx, testTopic)

	var failure *Failure
	require.ErrorAs(t, err, &failure)
	assert.True(t, failure.Cancelled())
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestRunRetriesFlakyCapability(t *testing.T) {
	backend := newFakeBackend()

	var attempts int
	backend.research = func(ctx context.Context) (string, error) {
		attempts++
		if attempts < 3 {
			return "", contentforge.NewUnavailableError("rate limited", 429, nil)
		}
		return "findings", nil
	}

	orc, err := New(backend.caps(), WithRetry(retry.Config{
		MaxAttempts:  5,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}))
	require.NoError(t, err)

	result, err := orc.Run(context.Background(), testTopic)
	require.NoError(t, err)
	assert.Equal(t, "findings", result.ResearchSummary)
	assert.Equal(t, 3, attempts)
}

func TestRunStreamEvents(t *testing.T) {
	backend := newFakeBackend()
	orc, err := New(backend.caps())
	require.NoError(t, err)

	var events []Event
	for ev := range orc.RunStream(context.Background(), testTopic) {
		events = append(events, ev)
	}

	require.NotEmpty(t, events)

	last := events[len(events)-1]
	assert.Equal(t, EventComplete, last.Type)
	require.NotNil(t, last.Result)
	assert.Equal(t, StatusCompleted, last.Result.Metadata.Status)

	var phaseStarts []Phase
	for _, ev := range events {
		assert.False(t, ev.Timestamp.IsZero())
		if ev.Type == EventPhaseStart {
			phaseStarts = append(phaseStarts, ev.Phase)
		}
	}
	assert.Equal(t, []Phase{PhaseResearch, PhasePromptGeneration, PhaseContentCreation}, phaseStarts)
}

func TestRunStreamTerminalError(t *testing.T) {
	backend := newFakeBackend()
	backend.research = func(ctx context.Context) (string, error) {
		return "", contentforge.NewUnavailableError("backend down", 503, nil)
	}

	orc, err := New(backend.caps())
	require.NoError(t, err)

	var events []Event
	for ev := range orc.RunStream(context.Background(), testTopic) {
		events = append(events, ev)
	}

	require.NotEmpty(t, events)
	last := events[len(events)-1]
	assert.Equal(t, EventError, last.Type)
	assert.Equal(t, PhaseResearch, last.Phase)
	assert.Contains(t, last.Error, "backend down")
	assert.Nil(t, last.Result)
}

func TestAggregateRequiresEveryStage(t *testing.T) {
	wfctx := NewContext(testTopic)
	require.NoError(t, wfctx.Attach(ResearchSummary{Text: "r"}))
	require.NoError(t, wfctx.Attach(ImagePrompt{Text: "ip"}))
	require.NoError(t, wfctx.Attach(StoryPrompt{Text: "sp"}))
	// StageImage deliberately missing.
	require.NoError(t, wfctx.Attach(GeneratedStory{Text: "s"}))

	_, err := aggregate(wfctx, time.Now())

	var pre *PreconditionError
	require.ErrorAs(t, err, &pre)
	assert.Equal(t, PhaseAggregation, pre.Phase)
	assert.Equal(t, StageImage, pre.Missing)
}

func TestParallelErrorMessage(t *testing.T) {
	single := &ParallelError{Errors: map[Stage]error{
		StageImage: errors.New("boom"),
	}}
	assert.Contains(t, single.Error(), "image")
	assert.Contains(t, single.Error(), "boom")

	double := &ParallelError{Errors: map[Stage]error{
		StageStory: errors.New("a"),
		StageImage: errors.New("b"),
	}}
	assert.Contains(t, double.Error(), "2 branches failed")
	assert.Contains(t, double.Error(), "image, story")
}
