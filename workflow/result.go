package workflow

import "time"

// Metadata records execution details of a run.
type Metadata struct {
	WorkflowID    string    `json:"workflow_id"`
	Timestamp     time.Time `json:"timestamp"`
	ExecutionTime float64   `json:"execution_time_seconds"`
	Status        Status    `json:"status"`
}

// Result is the final structured output of a completed run. It is
// created once by the aggregator and never mutated.
type Result struct {
	ResearchSummary string   `json:"research_summary"`
	ImagePrompt     string   `json:"image_prompt"`
	StoryPrompt     string   `json:"story_prompt"`
	GeneratedImage  string   `json:"generated_image,omitempty"`
	GeneratedStory  string   `json:"generated_story"`
	Metadata        Metadata `json:"metadata"`
}

// aggregate builds the immutable Result from a fully populated context.
// Every expected stage key is read exactly once; a missing key is an
// internal contract violation, unreachable when the phases ran in
// order.
func aggregate(wfctx *Context, end time.Time) (*Result, error) {
	research, ok := wfctx.Lookup(StageResearch)
	if !ok {
		return nil, &PreconditionError{Phase: PhaseAggregation, Missing: StageResearch}
	}
	imagePrompt, ok := wfctx.Lookup(StageImagePrompt)
	if !ok {
		return nil, &PreconditionError{Phase: PhaseAggregation, Missing: StageImagePrompt}
	}
	storyPrompt, ok := wfctx.Lookup(StageStoryPrompt)
	if !ok {
		return nil, &PreconditionError{Phase: PhaseAggregation, Missing: StageStoryPrompt}
	}
	image, ok := wfctx.Lookup(StageImage)
	if !ok {
		return nil, &PreconditionError{Phase: PhaseAggregation, Missing: StageImage}
	}
	story, ok := wfctx.Lookup(StageStory)
	if !ok {
		return nil, &PreconditionError{Phase: PhaseAggregation, Missing: StageStory}
	}

	return &Result{
		ResearchSummary: research.(ResearchSummary).Text,
		ImagePrompt:     imagePrompt.(ImagePrompt).Text,
		StoryPrompt:     storyPrompt.(StoryPrompt).Text,
		GeneratedImage:  image.(GeneratedImage).Ref.String(),
		GeneratedStory:  story.(GeneratedStory).Text,
		Metadata: Metadata{
			WorkflowID:    wfctx.ID(),
			Timestamp:     wfctx.StartTime(),
			ExecutionTime: end.Sub(wfctx.StartTime()).Seconds(),
			Status:        StatusCompleted,
		},
	}, nil
}
