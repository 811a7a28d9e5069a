package google

import (
	"context"
	"encoding/base64"

	"google.golang.org/genai"

	"github.com/avelar/contentforge"
)

// GenerateImage generates an image from a text prompt using Imagen.
// Imagen returns image bytes, so the reference carries base64 data
// rather than a URL. Quality, style, and format options have no Imagen
// equivalent and are ignored.
func (c *Client) GenerateImage(ctx context.Context, prompt string, opts ...contentforge.ImageOption) (*contentforge.ImageRef, error) {
	options := contentforge.ApplyImageOptions(opts...)

	model := DefaultImageModel
	if options.Model != "" {
		model = options.Model
	}

	config := &genai.GenerateImagesConfig{
		NumberOfImages: 1,
	}
	if options.Size != "" {
		config.AspectRatio = convertSizeToAspectRatio(options.Size)
	}

	resp, err := c.client.Models.GenerateImages(ctx, model, prompt, config)
	if err != nil {
		return nil, wrapError(err)
	}
	if len(resp.GeneratedImages) == 0 {
		return nil, contentforge.NewInvalidResponseError("image generation returned no images", 0, nil)
	}

	img := resp.GeneratedImages[0]
	if img.Image == nil || len(img.Image.ImageBytes) == 0 {
		return nil, contentforge.NewInvalidResponseError("image generation returned empty image data", 0, nil)
	}

	return &contentforge.ImageRef{
		Base64: base64.StdEncoding.EncodeToString(img.Image.ImageBytes),
	}, nil
}

// convertSizeToAspectRatio maps an image size to an Imagen aspect
// ratio string.
func convertSizeToAspectRatio(size contentforge.ImageSize) string {
	switch size {
	case contentforge.ImageSize1024x1024:
		return "1:1"
	case contentforge.ImageSize1024x1792:
		return "9:16" // Portrait
	case contentforge.ImageSize1792x1024:
		return "16:9" // Landscape
	default:
		return "1:1"
	}
}
