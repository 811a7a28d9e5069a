// Command mcp exposes the content-creation workflow as an MCP server
// over stdio, so MCP clients can trigger workflows as a tool.
//
// Configuration for Claude Desktop (~/Library/Application Support/Claude/claude_desktop_config.json):
//
//	{
//	    "mcpServers": {
//	        "contentforge": {
//	            "command": "go",
//	            "args": ["run", "./cmd/mcp"],
//	            "cwd": "/path/to/contentforge"
//	        }
//	    }
//	}
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/avelar/contentforge/internal/config"
	"github.com/avelar/contentforge/internal/setup"
	"github.com/avelar/contentforge/storage"
	"github.com/avelar/contentforge/workflow"
)

func main() {
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
	store := storage.New(cfg.OutputDir, storage.WithLogger(logger))

	s := server.NewMCPServer(
		"contentforge",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	tool := mcp.NewTool("create_content",
		mcp.WithDescription("Run the content-creation pipeline for a topic: research it, "+
			"then generate an image and a story about it. Returns the full result as JSON."),
		mcp.WithString("prompt",
			mcp.Required(),
			mcp.Description("The topic to create content about"),
		),
		mcp.WithBoolean("save_markdown",
			mcp.Description("Whether to save the result as a markdown document"),
			mcp.DefaultBool(true),
		),
	)

	s.AddTool(tool, createContentHandler(orchestrator, store))

	if err := server.ServeStdio(s); err != nil {
		log.Fatal(err)
	}
}

type createContentArgs struct {
	Prompt       string `json:"prompt"`
	SaveMarkdown *bool  `json:"save_markdown"`
}

func createContentHandler(orc *workflow.Orchestrator, store *storage.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args createContentArgs
		if req.Params.Arguments != nil {
			data, err := json.Marshal(req.Params.Arguments)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("failed to marshal arguments: %v", err)), nil
			}
			if err := json.Unmarshal(data, &args); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
			}
		}
		if args.Prompt == "" {
			return mcp.NewToolResultError("prompt is required"), nil
		}

		result, err := orc.Run(ctx, args.Prompt)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if args.SaveMarkdown == nil || *args.SaveMarkdown {
			if _, err := store.SaveResult(ctx, result); err != nil {
				// Persistence is best effort; the result still goes back.
				log.Printf("failed to save markdown: %v", err)
			}
		}

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to serialize result: %v", err)), nil
		}
		return mcp.NewToolResultText(string(out)), nil
	}
}
