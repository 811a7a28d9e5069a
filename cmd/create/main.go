// Command create runs one content-creation workflow from the terminal
// and prints the result as formatted JSON.
//
// Usage:
//
//	OPENAI_API_KEY=sk-... go run ./cmd/create "space exploration and Mars missions"
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/avelar/contentforge/internal/config"
	"github.com/avelar/contentforge/internal/setup"
	"github.com/avelar/contentforge/storage"
	"github.com/avelar/contentforge/workflow"
)

func main() {
	save := flag.Bool("save", true, "save the result as a markdown document")
	stream := flag.Bool("stream", false, "print progress events while the workflow runs")
	flag.Parse()

	topic := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if topic == "" {
		fmt.Fprintln(os.Stderr, "usage: create [-save=false] [-stream] <topic>")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	logger := setup.Logger(cfg.LogLevel)

	ctx := context.Background()
	orchestrator, err := setup.Orchestrator(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to build orchestrator: %v", err)
	}

	result, err := run(ctx, orchestrator, topic, *stream)
	if err != nil {
		log.Fatalf("Workflow failed: %v", err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to serialize result: %v", err)
	}
	fmt.Println(string(out))

	if *save {
		store := storage.New(cfg.OutputDir, storage.WithLogger(logger))
		path, err := store.SaveResult(ctx, result)
		if err != nil {
			logger.Warn("failed to save markdown", "error", err)
		} else {
			fmt.Fprintf(os.Stderr, "result saved to %s\n", path)
		}
	}
}

// run executes the workflow, echoing progress events to stderr when
// streaming is enabled.
func run(ctx context.Context, orc *workflow.Orchestrator, topic string, stream bool) (*workflow.Result, error) {
	if !stream {
		return orc.Run(ctx, topic)
	}

	var result *workflow.Result
	var failure error
	for event := range orc.RunStream(ctx, topic) {
		switch event.Type {
		case workflow.EventComplete:
			result = event.Result
		case workflow.EventError:
			failure = fmt.Errorf("%s phase: %s", event.Phase, event.Error)
		default:
			fmt.Fprintf(os.Stderr, "[%s] %s %s%s\n",
				event.Timestamp.Format("15:04:05"), event.Type, event.Phase, event.Stage)
		}
	}
	if failure != nil {
		return nil, failure
	}
	return result, nil
}
