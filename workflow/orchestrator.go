package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/avelar/contentforge"
	"github.com/avelar/contentforge/retry"
)

// Orchestrator runs the content-creation pipeline against a set of
// capability clients. It is safe for concurrent use; every run gets its
// own Context.
type Orchestrator struct {
	caps contentforge.Capabilities
	opts *Options
}

// New creates an orchestrator over the given capabilities.
func New(caps contentforge.Capabilities, opts ...Option) (*Orchestrator, error) {
	if err := caps.Validate(); err != nil {
		return nil, err
	}
	return &Orchestrator{caps: caps, opts: applyOptions(opts...)}, nil
}

// Run executes the pipeline synchronously. On success the returned
// error is nil; on failure it is always a *Failure naming the failed
// phase.
func (o *Orchestrator) Run(ctx context.Context, topic string) (*Result, error) {
	res, fail := o.run(ctx, topic, nil)
	if fail != nil {
		return nil, fail
	}
	return res, nil
}

// RunStream executes the pipeline and returns a channel of progress
// events. The channel is closed after a terminal EventComplete or
// EventError; the terminal event is always delivered.
func (o *Orchestrator) RunStream(ctx context.Context, topic string) <-chan Event {
	ch := make(chan Event, 64)
	go func() {
		defer close(ch)
		res, fail := o.run(ctx, topic, ch)
		if fail != nil {
			emitFinal(ch, Event{Type: EventError, Phase: fail.FailedPhase, Error: fail.Cause.Error()})
			return
		}
		emitFinal(ch, Event{Type: EventComplete, Result: res})
	}()
	return ch
}

func (o *Orchestrator) run(ctx context.Context, topic string, events chan<- Event) (*Result, *Failure) {
	wfctx := NewContext(topic)
	r := &run{o: o, wfctx: wfctx, events: events, state: StateCreated}

	runCtx := ctx
	if o.opts.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, o.opts.Timeout)
		defer cancel()
	}

	phases := []struct {
		state State
		phase Phase
		fn    func(context.Context) error
	}{
		{StateResearching, PhaseResearch, r.research},
		{StatePromptGenerating, PhasePromptGeneration, r.generatePrompts},
		{StateCreatingContent, PhaseContentCreation, r.createContent},
	}

	for _, p := range phases {
		if err := r.transition(p.state, p.phase); err != nil {
			return nil, r.fail(p.phase, err)
		}
		emit(events, Event{Type: EventPhaseStart, Phase: p.phase})

		phaseCtx := runCtx
		var cancel context.CancelFunc
		if o.opts.PhaseTimeout > 0 {
			phaseCtx, cancel = context.WithTimeout(runCtx, o.opts.PhaseTimeout)
		}
		err := p.fn(phaseCtx)
		if cancel != nil {
			cancel()
		}
		if err != nil {
			if ctx.Err() == context.Canceled {
				err = fmt.Errorf("%w: %v", ErrCancelled, err)
			}
			return nil, r.fail(p.phase, err)
		}
		emit(events, Event{Type: EventPhaseEnd, Phase: p.phase})
	}

	if err := r.transition(StateAggregating, PhaseAggregation); err != nil {
		return nil, r.fail(PhaseAggregation, err)
	}
	res, err := aggregate(wfctx, time.Now())
	if err != nil {
		return nil, r.fail(PhaseAggregation, err)
	}
	r.state = StateCompleted
	return res, nil
}

// run carries the per-execution state: the shared context, the state
// machine position, and the optional event sink.
type run struct {
	o      *Orchestrator
	wfctx  *Context
	events chan<- Event
	state  State
}

func (r *run) transition(next State, phase Phase) error {
	if !r.state.CanTransition(next) {
		return &PreconditionError{
			Phase:  phase,
			Detail: fmt.Sprintf("illegal transition %s -> %s", r.state, next),
		}
	}
	r.state = next
	return nil
}

func (r *run) fail(phase Phase, cause error) *Failure {
	r.state = StateFailed
	return &Failure{
		WorkflowID:  r.wfctx.ID(),
		FailedPhase: phase,
		Cause:       cause,
		Elapsed:     time.Since(r.wfctx.StartTime()),
	}
}

// research is the single-task research phase.
func (r *run) research(ctx context.Context) error {
	r.wfctx.BeginStage(StageResearch)
	summary, err := r.callText(ctx, func(ctx context.Context) (string, error) {
		return r.o.caps.Researcher.Research(ctx, r.wfctx.Topic())
	})
	if err != nil {
		return err
	}
	return r.wfctx.Attach(ResearchSummary{Text: summary})
}

// generatePrompts fans out the two independent prompt calls. They are
// cheap, so concurrency here is a latency optimization rather than a
// requirement.
func (r *run) generatePrompts(ctx context.Context) error {
	research, ok := r.wfctx.Lookup(StageResearch)
	if !ok {
		return &PreconditionError{Phase: PhasePromptGeneration, Missing: StageResearch}
	}
	req := contentforge.PromptRequest{
		Topic:    r.wfctx.Topic(),
		Research: research.(ResearchSummary).Text,
	}

	return r.join(ctx, []branch{
		{stage: StageImagePrompt, fn: func(ctx context.Context) error {
			r.wfctx.BeginStage(StageImagePrompt)
			prompt, err := r.callText(ctx, func(ctx context.Context) (string, error) {
				return r.o.caps.Prompts.GenerateImagePrompt(ctx, req)
			})
			if err != nil {
				return err
			}
			return r.wfctx.Attach(ImagePrompt{Text: prompt})
		}},
		{stage: StageStoryPrompt, fn: func(ctx context.Context) error {
			r.wfctx.BeginStage(StageStoryPrompt)
			prompt, err := r.callText(ctx, func(ctx context.Context) (string, error) {
				return r.o.caps.Prompts.GenerateStoryPrompt(ctx, req)
			})
			if err != nil {
				return err
			}
			return r.wfctx.Attach(StoryPrompt{Text: prompt})
		}},
	})
}

// createContent is the pipeline's mandatory fan-out: the image and
// story branches run concurrently and barrier-join before the phase
// resolves. The phase is all-or-nothing; a single failed branch fails
// the phase after the other branch resolves.
func (r *run) createContent(ctx context.Context) error {
	imagePrompt, ok := r.wfctx.Lookup(StageImagePrompt)
	if !ok {
		return &PreconditionError{Phase: PhaseContentCreation, Missing: StageImagePrompt}
	}
	storyPrompt, ok := r.wfctx.Lookup(StageStoryPrompt)
	if !ok {
		return &PreconditionError{Phase: PhaseContentCreation, Missing: StageStoryPrompt}
	}

	return r.join(ctx, []branch{
		{stage: StageImage, fn: func(ctx context.Context) error {
			r.wfctx.BeginStage(StageImage)
			ref, err := r.callImage(ctx, imagePrompt.(ImagePrompt).Text)
			if err != nil {
				return err
			}
			return r.wfctx.Attach(GeneratedImage{Ref: *ref})
		}},
		{stage: StageStory, fn: func(ctx context.Context) error {
			r.wfctx.BeginStage(StageStory)
			story, err := r.callText(ctx, func(ctx context.Context) (string, error) {
				return r.o.caps.Stories.WriteStory(ctx, storyPrompt.(StoryPrompt).Text)
			})
			if err != nil {
				return err
			}
			return r.wfctx.Attach(GeneratedStory{Text: story})
		}},
	})
}

type branch struct {
	stage Stage
	fn    func(context.Context) error
}

// join runs the branches concurrently and waits for all of them. Each
// branch writes to its own stage key, so the only shared write path is
// Context.Attach, which serializes internally.
func (r *run) join(ctx context.Context, branches []branch) error {
	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		errs = make(map[Stage]error)
	)

	for _, b := range branches {
		wg.Add(1)
		go func(b branch) {
			defer wg.Done()
			emit(r.events, Event{Type: EventBranchStart, Stage: b.stage})

			err := b.fn(ctx)

			mu.Lock()
			if err != nil {
				errs[b.stage] = err
			}
			mu.Unlock()

			ev := Event{Type: EventBranchEnd, Stage: b.stage}
			if err != nil {
				ev.Error = err.Error()
			}
			emit(r.events, ev)
		}(b)
	}
	wg.Wait()

	if len(errs) > 0 {
		return &ParallelError{Errors: errs}
	}
	return nil
}

// callText invokes a text capability with the per-call deadline and the
// configured retry policy.
func (r *run) callText(ctx context.Context, fn func(context.Context) (string, error)) (string, error) {
	invoke := func() (string, error) {
		callCtx, cancel := r.callContext(ctx)
		defer cancel()
		out, err := fn(callCtx)
		if err != nil {
			return "", coerceDeadline(callCtx, err)
		}
		return out, nil
	}
	if r.o.opts.Retry != nil {
		return retry.Do(ctx, *r.o.opts.Retry, invoke)
	}
	return invoke()
}

// callImage is callText for the image capability.
func (r *run) callImage(ctx context.Context, prompt string) (*contentforge.ImageRef, error) {
	invoke := func() (*contentforge.ImageRef, error) {
		callCtx, cancel := r.callContext(ctx)
		defer cancel()
		ref, err := r.o.caps.Images.GenerateImage(callCtx, prompt)
		if err != nil {
			return nil, coerceDeadline(callCtx, err)
		}
		if ref == nil || ref.IsZero() {
			return nil, contentforge.NewInvalidResponseError("image backend returned no image", 0, nil)
		}
		return ref, nil
	}
	if r.o.opts.Retry != nil {
		return retry.Do(ctx, *r.o.opts.Retry, invoke)
	}
	return invoke()
}

func (r *run) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.o.opts.CallTimeout > 0 {
		return context.WithTimeout(ctx, r.o.opts.CallTimeout)
	}
	return context.WithCancel(ctx)
}

// coerceDeadline maps an uncategorized deadline error to the timeout
// kind so a slow backend and an expired deadline look the same to the
// caller.
func coerceDeadline(callCtx context.Context, err error) error {
	if contentforge.KindOf(err) != "" {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || callCtx.Err() == context.DeadlineExceeded {
		return contentforge.NewTimeoutError("capability call exceeded deadline", err)
	}
	return err
}
