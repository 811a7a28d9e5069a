// Package prompts holds the role instructions the providers share.
// Every backend gets the same instructions so switching providers does
// not change the pipeline's voice.
package prompts

import (
	"fmt"

	"github.com/avelar/contentforge"
)

// Role instructions for each capability. These are intentionally plain
// strings rather than templates; the variable parts travel in the user
// message.
const (
	Researcher = "You are a researcher specializing in gathering, analyzing, and " +
		"synthesizing information. When given a query, conduct thorough research, evaluate " +
		"sources for credibility, and provide a clear, well-structured summary of your " +
		"findings. Always explain the reasoning behind your conclusions."

	ImagePrompt = "You are a specialized prompt generator that creates optimized " +
		"prompts for image generation based on research data. Analyze the research to extract " +
		"key visual elements, then produce a detailed, specific image prompt: include style, " +
		"mood, composition, and lighting; mention key objects, characters, or scenes from the " +
		"research; add artistic techniques and aesthetic elements. Keep the prompt detailed " +
		"but focused, two to three sentences. Respond with the prompt only."

	StoryPrompt = "You are a specialized prompt generator that creates optimized " +
		"prompts for story writing based on research data. Analyze the research to extract " +
		"the most interesting narrative elements, then produce a compelling story prompt: " +
		"establish clear narrative direction and tone, include relevant context from the " +
		"research, and suggest character motivations and plot elements. Provide enough detail " +
		"to guide compelling storytelling. Respond with the prompt only."

	Writer = "You are a professional writer specializing in creating compelling, " +
		"well-structured content. When given a writing task, analyze the requirements to " +
		"understand the target audience, tone, purpose, and desired outcome. Craft clear, " +
		"engaging prose with attention to structure, flow, grammar, and style consistency."
)

// ResearchInput builds the research user message for a topic.
func ResearchInput(topic string) string {
	return "Research and gather comprehensive information about: " + topic
}

// PromptInput builds the prompt-generation user message from a request.
func PromptInput(req contentforge.PromptRequest) string {
	return fmt.Sprintf("Based on this research data about %q:\n\n%s", req.Topic, req.Research)
}

// StoryInput builds the story-writing user message from a story prompt.
func StoryInput(prompt string) string {
	return "Write a story: " + prompt
}
