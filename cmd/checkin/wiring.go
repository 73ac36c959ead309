package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MikeSquared-Agency/checkin/internal/agent"
	"github.com/MikeSquared-Agency/checkin/internal/anthropic"
	"github.com/MikeSquared-Agency/checkin/internal/config"
	"github.com/MikeSquared-Agency/checkin/internal/gemini"
	"github.com/MikeSquared-Agency/checkin/internal/openai"
	"github.com/MikeSquared-Agency/checkin/internal/session"
)

// openStore opens the configured backend. The returned func releases it.
func openStore(ctx context.Context, cfg config.Config) (*session.Store, func(), error) {
	noop := func() {}

	var backend session.Backend
	closer := noop
	switch cfg.StoreDriver {
	case "memory":
		backend = session.NewMemoryBackend()
	case "file", "":
		fb := session.NewFileBackend(cfg.StorePath)
		slog.Info("file store", "path", fb.Path())
		backend = fb
	case "sqlite":
		sb, err := session.NewSQLiteBackend(ctx, cfg.StorePath)
		if err != nil {
			return nil, noop, fmt.Errorf("open sqlite store: %w", err)
		}
		backend = sb
		closer = func() { _ = sb.Close() }
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, noop, fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
		pb, err := session.NewPostgresBackend(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, fmt.Errorf("open postgres store: %w", err)
		}
		backend = pb
		closer = pb.Close
	default:
		return nil, noop, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	return session.New(backend, slog.Default()), closer, nil
}

// newGenerator returns the configured language model, or nil for local-only
// operation. The returned func releases the client.
func newGenerator(ctx context.Context, cfg config.Config) (agent.Generator, func(), error) {
	noop := func() {}
	switch cfg.AgentProvider {
	case "":
		return nil, noop, nil
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			return nil, noop, fmt.Errorf("ANTHROPIC_API_KEY is required for the anthropic provider")
		}
		slog.Info("anthropic agent ready", "model", cfg.AnthropicModel)
		return anthropic.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel), noop, nil
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, noop, fmt.Errorf("OPENAI_API_KEY is required for the openai provider")
		}
		slog.Info("openai agent ready", "model", cfg.OpenAIModel)
		return openai.NewGenerator(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel), noop, nil
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, noop, fmt.Errorf("GEMINI_API_KEY is required for the gemini provider")
		}
		g, err := gemini.NewGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, noop, err
		}
		slog.Info("gemini agent ready", "model", cfg.GeminiModel)
		return g, func() { _ = g.Close() }, nil
	default:
		return nil, noop, fmt.Errorf("unknown AGENT_PROVIDER %q", cfg.AgentProvider)
	}
}
