package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"fsebot/features/admin"
	"fsebot/features/chat"
	"fsebot/internal/config"
	"fsebot/internal/corpus"
	"fsebot/internal/middleware"
	"fsebot/internal/retrieval"
	"fsebot/internal/sources"
)

type App struct {
	Handler  http.Handler
	Holder   *corpus.Holder
	Reloader *corpus.Reloader

	port int
}

func New(cfg *config.Config, db *sql.DB, embedder retrieval.Embedder, generator chat.Generator) (*App, error) {
	mapping, err := sources.Load(cfg.URLMappingsPath)
	if err != nil {
		return nil, fmt.Errorf("loading url mappings: %w", err)
	}

	holder := corpus.NewHolder()
	reloader := corpus.NewReloader(corpus.NewPostgresRepo(db), holder)

	queryLogger, err := retrieval.NewFileQueryLogger(cfg.QueryLogPath)
	if err != nil {
		slog.Warn("failed to create query logger, falling back to stdout", "error", err)
		queryLogger = retrieval.NewQueryLogger(os.Stdout)
	}

	retrievalService := retrieval.NewService(embedder,
		cfg.TopK, cfg.SimilarityThreshold, cfg.ConfidenceHigh, cfg.ConfidenceMedium, queryLogger)

	chatService := chat.NewService(retrievalService, generator, chat.NewPostgresRepo(db), holder, mapping)
	chatHandler := chat.NewHandler(chatService)
	adminHandler := admin.NewHandler(holder, reloader)

	// Middleware: CORS
	enableCORS := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}
			next(w, r)
		}
	}

	mux := http.NewServeMux()
	mux.Handle("POST /api/chat", middleware.CorrelationID(enableCORS(chatHandler.Chat)))
	mux.Handle("GET /api/health", middleware.CorrelationID(enableCORS(adminHandler.Health)))
	mux.Handle("POST /api/reload-embeddings", middleware.CorrelationID(enableCORS(adminHandler.Reload)))

	return &App{
		Handler:  mux,
		Holder:   holder,
		Reloader: reloader,
		port:     cfg.ServerPort,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", a.port),
		Handler: a.Handler,
	}

	go func() {
		<-ctx.Done()
		slog.Info("shutting down server...")
		if err := srv.Shutdown(context.Background()); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("server starting", "port", a.port)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}
