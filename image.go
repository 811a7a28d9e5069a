package contentforge

// ImageFormat specifies the output format for generated images.
// Honored by the DALL-E backend; the Imagen backend always returns
// base64 data.
type ImageFormat string

const (
	// ImageFormatURL returns images as URLs.
	ImageFormatURL ImageFormat = "url"
	// ImageFormatBase64 returns images as base64-encoded data.
	ImageFormatBase64 ImageFormat = "b64_json"
)

// ImageSize represents predefined image dimensions.
type ImageSize string

const (
	ImageSize1024x1024 ImageSize = "1024x1024"
	ImageSize1024x1792 ImageSize = "1024x1792" // Portrait
	ImageSize1792x1024 ImageSize = "1792x1024" // Landscape
)

// ImageQuality specifies the quality level for generated images.
// Honored by the DALL-E backend; the Imagen backend ignores it.
type ImageQuality string

const (
	ImageQualityStandard ImageQuality = "standard"
	ImageQualityHD       ImageQuality = "hd"
)

// ImageStyle specifies the visual style for generated images.
// Honored by the DALL-E backend; the Imagen backend ignores it.
type ImageStyle string

const (
	ImageStyleVivid   ImageStyle = "vivid"
	ImageStyleNatural ImageStyle = "natural"
)

// ImageOptions contains configuration for an image generation call.
type ImageOptions struct {
	Model   string
	Size    ImageSize
	Quality ImageQuality
	Style   ImageStyle
	Format  ImageFormat
}

// ImageOption is a functional option for configuring image generation calls.
type ImageOption func(*ImageOptions)

// WithImageModel sets the model to use for image generation.
func WithImageModel(model string) ImageOption {
	return func(o *ImageOptions) {
		o.Model = model
	}
}

// WithImageSize sets the dimensions for generated images.
func WithImageSize(size ImageSize) ImageOption {
	return func(o *ImageOptions) {
		o.Size = size
	}
}

// WithImageQuality sets the quality level for generated images.
// Supported values: "standard", "hd"
func WithImageQuality(q ImageQuality) ImageOption {
	return func(o *ImageOptions) {
		o.Quality = q
	}
}

// WithImageStyle sets the visual style for generated images.
// Supported values: "vivid", "natural"
func WithImageStyle(s ImageStyle) ImageOption {
	return func(o *ImageOptions) {
		o.Style = s
	}
}

// WithImageFormat sets the output format for generated images.
// Supported values: "url", "b64_json"
func WithImageFormat(f ImageFormat) ImageOption {
	return func(o *ImageOptions) {
		o.Format = f
	}
}

// ApplyImageOptions applies functional options to an ImageOptions struct.
func ApplyImageOptions(opts ...ImageOption) *ImageOptions {
	o := &ImageOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
