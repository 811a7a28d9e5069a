package contentforge

import "context"

// ImageRef references a generated image, either by URL or as inline
// base64 data. Exactly one of URL and Base64 is normally populated.
type ImageRef struct {
	// URL of the generated image, if the backend returned one.
	URL string `json:"url,omitempty"`
	// Base64 contains base64-encoded image data when the backend
	// returns bytes instead of a URL.
	Base64 string `json:"base64,omitempty"`
	// RevisedPrompt is the prompt the backend actually used.
	// DALL-E 3 rewrites prompts for better results.
	RevisedPrompt string `json:"revisedPrompt,omitempty"`
}

// String returns the URL if present, otherwise the base64 payload.
func (r ImageRef) String() string {
	if r.URL != "" {
		return r.URL
	}
	return r.Base64
}

// IsZero reports whether the reference carries no image at all.
func (r ImageRef) IsZero() bool {
	return r.URL == "" && r.Base64 == ""
}

// PromptRequest carries the inputs a prompt writer works from: the
// user's original topic and the research gathered about it.
type PromptRequest struct {
	Topic    string
	Research string
}

// Researcher gathers and synthesizes information about a topic.
type Researcher interface {
	// Research returns a written summary of findings for the topic.
	Research(ctx context.Context, topic string, opts ...Option) (string, error)
}

// PromptWriter turns research into prompts optimized for downstream
// generators. The two methods are independent and safe to call
// concurrently.
type PromptWriter interface {
	// GenerateImagePrompt produces a prompt for image synthesis.
	GenerateImagePrompt(ctx context.Context, req PromptRequest, opts ...Option) (string, error)

	// GenerateStoryPrompt produces a prompt for story writing.
	GenerateStoryPrompt(ctx context.Context, req PromptRequest, opts ...Option) (string, error)
}

// ImageGenerator creates an image from a text prompt.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string, opts ...ImageOption) (*ImageRef, error)
}

// StoryWriter writes prose from a story prompt.
type StoryWriter interface {
	WriteStory(ctx context.Context, prompt string, opts ...Option) (string, error)
}

// Capabilities bundles the capability clients a workflow run depends
// on. All four fields are required; the same client may back more than
// one field. Clients must be stateless between calls and must honor
// context cancellation promptly.
type Capabilities struct {
	Researcher Researcher
	Prompts    PromptWriter
	Images     ImageGenerator
	Stories    StoryWriter
}

// Validate reports the first missing capability, or nil if all are set.
func (c Capabilities) Validate() error {
	switch {
	case c.Researcher == nil:
		return ErrMissingCapability("Researcher")
	case c.Prompts == nil:
		return ErrMissingCapability("Prompts")
	case c.Images == nil:
		return ErrMissingCapability("Images")
	case c.Stories == nil:
		return ErrMissingCapability("Stories")
	}
	return nil
}
