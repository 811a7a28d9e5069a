// Package openai provides OpenAI-backed capability clients.
//
// A single Client implements every capability: research and story
// writing through chat completions, and image generation through
// DALL-E. Build a full bundle with:
//
//	client := openai.New(apiKey)
//	caps := contentforge.Capabilities{
//		Researcher: client,
//		Prompts:    client,
//		Images:     client,
//		Stories:    client,
//	}
package openai
