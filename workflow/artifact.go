package workflow

import "github.com/avelar/contentforge"

// Stage identifies the artifact a pipeline stage produces. Stages are
// the keys of the workflow Context's artifact map.
type Stage string

const (
	StageResearch    Stage = "research"
	StageImagePrompt Stage = "image_prompt"
	StageStoryPrompt Stage = "story_prompt"
	StageImage       Stage = "image"
	StageStory       Stage = "story"
)

// Artifact is an immutable piece of output produced by a stage.
// Each variant reports the stage it belongs to; Context.Attach uses
// that as the write-once key.
type Artifact interface {
	Stage() Stage
}

// ResearchSummary is the research phase's output.
type ResearchSummary struct {
	Text string
}

func (ResearchSummary) Stage() Stage { return StageResearch }

// ImagePrompt is an optimized prompt for image synthesis.
type ImagePrompt struct {
	Text string
}

func (ImagePrompt) Stage() Stage { return StageImagePrompt }

// StoryPrompt is an optimized prompt for story writing.
type StoryPrompt struct {
	Text string
}

func (StoryPrompt) Stage() Stage { return StageStoryPrompt }

// GeneratedImage is the image branch's output.
type GeneratedImage struct {
	Ref contentforge.ImageRef
}

func (GeneratedImage) Stage() Stage { return StageImage }

// GeneratedStory is the story branch's output.
type GeneratedStory struct {
	Text string
}

func (GeneratedStory) Stage() Stage { return StageStory }
