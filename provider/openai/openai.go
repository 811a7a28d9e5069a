package openai

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/avelar/contentforge"
	"github.com/avelar/contentforge/internal/prompts"
)

const DefaultModel = "gpt-4o"
const DefaultImageModel = "dall-e-3"

// Client wraps the OpenAI SDK to implement every capability interface.
type Client struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature *float64
}

// New creates a new OpenAI client with the given API key.
func New(apiKey string, opts ...ClientOption) *Client {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	c := &Client{
		client: &client,
		model:  DefaultModel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ClientOption configures the OpenAI client.
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

// complete sends a system+user message pair and returns the assistant's
// text content.
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

	params := openai.ChatCompletionNewParams{
		Model: model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(instructions),
			openai.UserMessage(input),
		},
	}
	if options.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(options.MaxTokens))
	}
	if options.Temperature != nil {
		params.Temperature = openai.Float(*options.Temperature)
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", wrapError(err)
	}
	if len(resp.Choices) == 0 {
		return "", contentforge.NewInvalidResponseError("chat completion returned no choices", 0, nil)
	}
	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", contentforge.NewInvalidResponseError("chat completion returned empty content", 0, nil)
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
