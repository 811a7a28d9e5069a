// Package contentforge defines the capability-client contracts for the
// content-creation pipeline: web research, prompt optimization, image
// synthesis, and story writing.
//
// The package holds only the contracts and shared value types. The
// orchestration core lives in the workflow package; concrete backends
// live under provider/. Any implementation of the capability interfaces
// is substitutable, including deterministic test doubles:
//
//	caps := contentforge.Capabilities{
//	    Researcher: openaiClient,
//	    Prompts:    openaiClient,
//	    Images:     openaiClient,
//	    Stories:    anthropicClient,
//	}
//
//	orch, err := workflow.New(caps)
//	result, err := orch.Run(ctx, "space exploration and Mars missions")
//
// Capability failures are reported as *Error values carrying a kind
// (timeout, unavailable, invalid_response) and a retriable flag, so
// callers can make retry decisions without inspecting backend SDK
// error types.
package contentforge
