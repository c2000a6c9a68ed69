// Package app wires configuration, adapters, and the HTTP layer into a
// runnable service.
package app

import (
	"context"
	"log/slog"
	"time"

	"newschomp/internal/config"
	"newschomp/internal/infrastructure/fetch"
	"newschomp/internal/infrastructure/llm"
	"newschomp/internal/infrastructure/sources"
	"newschomp/internal/logging"
	"newschomp/internal/ports"
	"newschomp/internal/server"
	"newschomp/internal/session"
	"newschomp/internal/source"
	"newschomp/internal/usecase"
)

const shutdownGrace = 10 * time.Second

// Application holds the assembled service.
type Application struct {
	cfg    config.Config
	server *server.Server
	logger *slog.Logger
}

// New builds the full dependency graph.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	fetcher := fetch.New(nil)

	registry := source.NewRegistry()
	sources.RegisterAll(registry, fetcher, logging.Component(baseLogger, "sources"))

	var summarizer ports.Summarizer
	if cfg.OpenAI.APIKey != "" {
		summarizer = llm.NewSummarizer(cfg.OpenAI, logging.Component(baseLogger, "summarizer"))
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Registry:   registry,
		Summarizer: summarizer,
		Logger:     logging.Component(baseLogger, "pipeline"),
	})

	srv := server.New(pipeline, registry, session.NewStore(), cfg.Categories, logging.Component(baseLogger, "server"))

	return &Application{cfg: cfg, server: srv, logger: baseLogger}
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("listening", "addr", a.cfg.Server.Addr)
		errCh <- a.server.Start(a.cfg.Server.Addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return a.server.Shutdown(shutdownCtx)
}
