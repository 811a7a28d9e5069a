// Package google provides Google GenAI-backed capability clients.
//
// The Client implements every capability: the text capabilities
// through Gemini and image generation through Imagen.
package google

import (
	"context"

	"google.golang.org/genai"

	"github.com/avelar/contentforge"
	"github.com/avelar/contentforge/internal/prompts"
)

const DefaultModel = "gemini-2.0-flash"
const DefaultImageModel = "imagen-3.0-generate-002"

// Client wraps the Google GenAI SDK to implement the capability
// interfaces.
type Client struct {
	client      *genai.Client
	model       string
	maxTokens   int
	temperature *float64
}

// New creates a new Google GenAI client with the given API key.
func New(ctx context.Context, apiKey string, opts ...ClientOption) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	c := &Client{
		client: client,
		model:  DefaultModel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ClientOption configures the Google client.
type ClientOption func(*Client)

// WithModel sets the default model for requests.
func WithModel(model string) ClientOption {
	return func(c *Client) {
		c.model = model
	}
}

// WithMaxTokens sets a default token cap for requests that don't
// specify one.
func WithMaxTokens(n int) ClientOption {
	return func(c *Client) {
		c.maxTokens = n
	}
}

// WithTemperature sets a default sampling temperature for requests
// that don't specify one.
func WithTemperature(t float64) ClientOption {
	return func(c *Client) {
		c.temperature = &t
	}
}

// complete sends an instructed generation request and returns the
// concatenated text parts of the first candidate.
func (c *Client) complete(ctx context.Context, instructions, input string, opts []contentforge.Option) (string, error) {
	options := contentforge.ApplyOptions(opts...)
	model := c.model
	if options.Model != "" {
		model = options.Model
	}
	if options.MaxTokens == 0 {
		options.MaxTokens = c.maxTokens
	}
	if options.Temperature == nil {
		options.Temperature = c.temperature
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: instructions}},
		},
	}
	if options.MaxTokens > 0 {
		config.MaxOutputTokens = int32(options.MaxTokens)
	}
	if options.Temperature != nil {
		temp := float32(*options.Temperature)
		config.Temperature = &temp
	}

	resp, err := c.client.Models.GenerateContent(ctx, model, genai.Text(input), config)
	if err != nil {
		return "", wrapError(err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", contentforge.NewInvalidResponseError("generation returned no candidates", 0, nil)
	}
	content := ""
	for _, part := range resp.Candidates[0].Content.Parts {
		content += part.Text
	}
	if content == "" {
		return "", contentforge.NewInvalidResponseError("generation returned empty content", 0, nil)
	}
	return content, nil
}

// Research gathers and synthesizes information about a topic.
func (c *Client) Research(ctx context.Context, topic string, opts ...contentforge.Option) (string, error) {
	return c.complete(ctx, prompts.Researcher, prompts.ResearchInput(topic), opts)
}

// GenerateImagePrompt produces a prompt optimized for image synthesis.
func (c *Client) GenerateImagePrompt(ctx context.Context, req contentforge.PromptRequest, opts ...contentforge.Option) (string, error) {
	return c.complete(ctx, prompts.ImagePrompt, prompts.PromptInput(req), opts)
}

// GenerateStoryPrompt produces a prompt optimized for story writing.
func (c *Client) GenerateStoryPrompt(ctx context.Context, req contentforge.PromptRequest, opts ...contentforge.Option) (string, error) {
	return c.complete(ctx, prompts.StoryPrompt, prompts.PromptInput(req), opts)
}

// WriteStory writes prose from a story prompt.
func (c *Client) WriteStory(ctx context.Context, prompt string, opts ...contentforge.Option) (string, error) {
	return c.complete(ctx, prompts.Writer, prompts.StoryInput(prompt), opts)
}

var _ contentforge.Researcher = (*Client)(nil)
var _ contentforge.PromptWriter = (*Client)(nil)
var _ contentforge.ImageGenerator = (*Client)(nil)
var _ contentforge.StoryWriter = (*Client)(nil)
