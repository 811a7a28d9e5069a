package openai

import (
	"context"

	"github.com/openai/openai-go"

	"github.com/avelar/contentforge"
)

// GenerateImage generates an image from a text prompt using DALL-E.
func (c *Client) GenerateImage(ctx context.Context, prompt string, opts ...contentforge.ImageOption) (*contentforge.ImageRef, error) {
	options := contentforge.ApplyImageOptions(opts...)

	model := DefaultImageModel
	if options.Model != "" {
		model = options.Model
	}

	params := openai.ImageGenerateParams{
		Model:  openai.ImageModel(model),
		Prompt: prompt,
		N:      openai.Int(1), // DALL-E 3 only supports n=1
	}

	size := options.Size
	if size == "" {
		size = contentforge.ImageSize1024x1024
	}
	params.Size = openai.ImageGenerateParamsSize(size)

	if options.Quality != "" {
		params.Quality = openai.ImageGenerateParamsQuality(options.Quality)
	}
	if options.Style != "" {
		params.Style = openai.ImageGenerateParamsStyle(options.Style)
	}

	format := options.Format
	if format == "" {
		format = contentforge.ImageFormatURL
	}
	params.ResponseFormat = openai.ImageGenerateParamsResponseFormat(format)

	resp, err := c.client.Images.Generate(ctx, params)
	if err != nil {
		return nil, wrapError(err)
	}
	if len(resp.Data) == 0 {
		return nil, contentforge.NewInvalidResponseError("image generation returned no data", 0, nil)
	}

	img := resp.Data[0]
	ref := &contentforge.ImageRef{
		URL:           img.URL,
		Base64:        img.B64JSON,
		RevisedPrompt: img.RevisedPrompt,
	}
	if ref.IsZero() {
		return nil, contentforge.NewInvalidResponseError("image generation returned neither URL nor data", 0, nil)
	}
	return ref, nil
}
