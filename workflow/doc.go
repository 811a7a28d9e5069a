// Package workflow implements the content-creation pipeline: research,
// prompt generation, and parallel content creation, aggregated into a
// single structured result.
//
// The Orchestrator runs three phases in strict order over a shared
// Context. The research phase is a single capability call. The
// prompt-generation phase fans out the image-prompt and story-prompt
// calls concurrently. The content-creation phase is the pipeline's
// mandatory fan-out: the image branch and the story branch run
// concurrently and are barrier-joined before the result is built.
//
//	orch, err := workflow.New(caps,
//	    workflow.WithTimeout(5*time.Minute),
//	    workflow.WithCallTimeout(2*time.Minute),
//	)
//	result, err := orch.Run(ctx, "space exploration and Mars missions")
//
// A failed phase short-circuits the run: the error returned by Run is
// always a *Failure naming the failed phase and carrying the cause.
// RunStream additionally emits progress events while the run executes.
package workflow
