// Package setup wires configuration into ready-to-use components:
// logger, capability clients, and the workflow orchestrator.
package setup

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/avelar/contentforge"
	"github.com/avelar/contentforge/internal/config"
	"github.com/avelar/contentforge/provider/anthropic"
	"github.com/avelar/contentforge/provider/google"
	"github.com/avelar/contentforge/provider/openai"
	"github.com/avelar/contentforge/retry"
	"github.com/avelar/contentforge/workflow"
)

// Logger creates a structured text logger at the configured level and
// installs it as the slog default.
func Logger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(log)
	return log
}

// Capabilities builds the capability bundle for the configured
// provider. Anthropic covers text only, so its bundle borrows OpenAI
// for image generation.
func Capabilities(ctx context.Context, cfg *config.Config) (contentforge.Capabilities, error) {
	switch cfg.Provider {
	case "openai":
		opts := []openai.ClientOption{openai.WithTemperature(cfg.Temperature)}
		if cfg.Model != "" {
			opts = append(opts, openai.WithModel(cfg.Model))
		}
		if cfg.MaxTokens > 0 {
			opts = append(opts, openai.WithMaxTokens(cfg.MaxTokens))
		}
		client := openai.New(cfg.OpenAIKey, opts...)
		return contentforge.Capabilities{
			Researcher: client,
			Prompts:    client,
			Images:     client,
			Stories:    client,
		}, nil

	case "anthropic":
		opts := []anthropic.ClientOption{
			anthropic.WithAPIKey(cfg.AnthropicKey),
			anthropic.WithTemperature(cfg.Temperature),
		}
		if cfg.Model != "" {
			opts = append(opts, anthropic.WithModel(cfg.Model))
		}
		if cfg.MaxTokens > 0 {
			opts = append(opts, anthropic.WithMaxTokens(cfg.MaxTokens))
		}
		client := anthropic.New(opts...)
		images := openai.New(cfg.OpenAIKey)
		return contentforge.Capabilities{
			Researcher: client,
			Prompts:    client,
			Images:     images,
			Stories:    client,
		}, nil

	case "google":
		opts := []google.ClientOption{google.WithTemperature(cfg.Temperature)}
		if cfg.Model != "" {
			opts = append(opts, google.WithModel(cfg.Model))
		}
		if cfg.MaxTokens > 0 {
			opts = append(opts, google.WithMaxTokens(cfg.MaxTokens))
		}
		client, err := google.New(ctx, cfg.GoogleKey, opts...)
		if err != nil {
			return contentforge.Capabilities{}, fmt.Errorf("create google client: %w", err)
		}
		return contentforge.Capabilities{
			Researcher: client,
			Prompts:    client,
			Images:     client,
			Stories:    client,
		}, nil

	default:
		return contentforge.Capabilities{}, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}

// Orchestrator builds the workflow orchestrator from configuration.
func Orchestrator(ctx context.Context, cfg *config.Config) (*workflow.Orchestrator, error) {
	caps, err := Capabilities(ctx, cfg)
	if err != nil {
		return nil, err
	}

	opts := []workflow.Option{
		workflow.WithCallTimeout(cfg.CallTimeout),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, workflow.WithTimeout(cfg.Timeout))
	}
	if cfg.Retry {
		opts = append(opts, workflow.WithRetry(retry.DefaultConfig()))
	}

	return workflow.New(caps, opts...)
}
