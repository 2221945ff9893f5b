package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"fsebot/internal/adapter/gemini"
	"fsebot/internal/app"
	"fsebot/internal/config"
	"fsebot/internal/logger"
)

func main() {
	slog.SetDefault(slog.New(logger.NewContextHandler(slog.NewJSONHandler(os.Stdout, nil))))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := app.Bootstrap(cfg)
	if err != nil {
		slog.Error("bootstrap failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	embedder, err := gemini.NewEmbedder(ctx, cfg.GeminiAPIKey, cfg.EmbeddingModel)
	if err != nil {
		slog.Error("failed to create embedder", "error", err)
		os.Exit(1)
	}
	defer embedder.Close()

	generator, err := gemini.NewGenerator(ctx, cfg.GeminiAPIKey, cfg.ChatModel)
	if err != nil {
		slog.Error("failed to create generator", "error", err)
		os.Exit(1)
	}
	defer generator.Close()

	a, err := app.New(cfg, db, embedder, generator)
	if err != nil {
		slog.Error("failed to build app", "error", err)
		os.Exit(1)
	}

	// Initial corpus load. An empty corpus is a valid serving state (the
	// no-relevant-context path handles it), so a failure here only warns.
	if n, err := a.Reloader.Reload(ctx); err != nil {
		slog.Warn("initial corpus load failed, serving with empty corpus", "error", err)
	} else {
		slog.Info("corpus loaded", "embeddings_loaded", n)
	}

	if cfg.EnableNSQReloads {
		consumer, err := app.StartReloadConsumer(cfg, a.Reloader)
		if err != nil {
			slog.Error("failed to start reload consumer", "error", err)
		} else {
			defer consumer.Stop()
		}
	}

	if err := a.Run(ctx); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
