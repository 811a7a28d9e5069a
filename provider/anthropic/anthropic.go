// Package anthropic provides Anthropic-backed text capability clients.
//
// The Client implements the text capabilities: research, prompt
// writing, and story writing. Anthropic has no image API, so pair it
// with an image-capable provider when building a full bundle.
package anthropic

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/avelar/contentforge"
	"github.com/avelar/contentforge/internal/prompts"
)

const DefaultModel = "claude-sonnet-4-20250514"

// Client wraps the Anthropic SDK to implement the text capability
// interfaces.
type Client struct {
	client      *anthropic.Client
	model       string
	maxTokens   int
	temperature *float64
}

// New creates a new Anthropic client.
// It reads the API key from the ANTHROPIC_API_KEY environment variable.
func New(opts ...ClientOption) *Client {
	c := &Client{
		model: DefaultModel,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.client == nil {
		client := anthropic.NewClient()
		c.client = &client
	}
	return c
}

// ClientOption configures the Anthropic client.
type ClientOption func(*Client)

// WithAPIKey sets the API key explicitly instead of using the environment variable.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		client := anthropic.NewClient(option.WithAPIKey(key))
		c.client = &client
	}
}

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

// complete sends a system+user message pair and returns the
// concatenated text blocks of the response.
func (c *Client) complete(ctx context.Context, instructions, input string, opts []contentforge.Option) (string, error) {
	options := contentforge.ApplyOptions(opts...)
	model := c.model
	if options.Model != "" {
		model = options.Model
	}
	if options.Temperature == nil {
		options.Temperature = c.temperature
	}

	maxTokens := int64(4096)
	if c.maxTokens > 0 {
		maxTokens = int64(c.maxTokens)
	}
	if options.MaxTokens > 0 {
		maxTokens = int64(options.MaxTokens)
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: instructions},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(input)),
		},
	}
	if options.Temperature != nil {
		params.Temperature = anthropic.Float(*options.Temperature)
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", wrapError(err)
	}

	content := ""
	for _, block := range resp.Content {
		if block.Type == "text" {
			content += block.Text
		}
	}
	if content == "" {
		return "", contentforge.NewInvalidResponseError("message returned no text content", 0, nil)
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
var _ contentforge.StoryWriter = (*Client)(nil)
