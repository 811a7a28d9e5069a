package storage

import (
	"strings"
	"text/template"

	"github.com/avelar/contentforge/workflow"
)

// markdownTemplate is the result document layout. The image section is
// omitted entirely when no image was generated.
var markdownTemplate = template.Must(template.New("result").Parse(`# Generated Content

## Research Summary

{{.Result.ResearchSummary}}

{{if .ImageRef}}## Generated Image

![Generated image]({{.ImageRef}})

*Prompt: {{.Result.ImagePrompt}}*

{{end}}## Generated Story

{{.Result.GeneratedStory}}

*Prompt: {{.Result.StoryPrompt}}*

---

| | |
|---|---|
| Workflow ID | {{.Result.Metadata.WorkflowID}} |
| Created | {{.Result.Metadata.Timestamp.Format "2006-01-02 15:04:05"}} |
| Execution time | {{printf "%.2fs" .Result.Metadata.ExecutionTime}} |
| Status | {{.Result.Metadata.Status}} |
`))

func renderMarkdown(result *workflow.Result, imageRef string) (string, error) {
	var sb strings.Builder
	err := markdownTemplate.Execute(&sb, struct {
		Result   *workflow.Result
		ImageRef string
	}{Result: result, ImageRef: imageRef})
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}
