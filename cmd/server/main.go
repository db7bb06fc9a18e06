package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "portfolio-builder/internal/adapter/http"
	repo "portfolio-builder/internal/adapter/repository"
	"portfolio-builder/internal/adapter/sqlitestore"
	"portfolio-builder/internal/config"
	"portfolio-builder/internal/infrastructure/migration"
	"portfolio-builder/internal/usecase"
	infra "portfolio-builder/pkg/infrastructure"
	"portfolio-builder/pkg/pdf"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "go.uber.org/automaxprocs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := cfg.NewLogger(os.Stderr)
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// infra setup
	portfolios, exports, closeStore, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	primary, closePrimary := newRenderer(cfg.PDFBackend, cfg)
	defer closePrimary()
	fallback, closeFallback := newRenderer(cfg.PDFFallback, cfg)
	defer closeFallback()

	generator := pdf.NewGenerator(primary, fallback, pdf.Options{
		Attempts: cfg.RenderAttempts,
		Logger:   log,
	})
	if !generator.Available() {
		log.Warn("no PDF renderer available, PDF endpoints will answer 503", "renderers", generator.Renderers())
	}

	svc := usecase.NewService(portfolios, exports, generator, usecase.Options{
		DefaultTemplate: cfg.DefaultTemplate,
		OutputDir:       cfg.OutputDir,
		Logger:          log,
	})

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(recover.New())
	httpadapter.NewHandler(svc, generator.Renderers, log).Register(app)

	errc := make(chan error, 1)
	go func() {
		log.Info("server listening", "port", cfg.Port, "storage", cfg.StorageDriver, "renderers", generator.Renderers())
		errc <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.ShutdownWithContext(shutdownCtx)
}

func openStores(ctx context.Context, cfg config.Config, log *slog.Logger) (usecase.PortfolioStore, usecase.ExportStore, func(), error) {
	if cfg.StorageDriver == config.DriverPostgres {
		pool, err := infra.NewPostgresPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := migration.RunMigrations(ctx, pool, log); err != nil {
			pool.Close()
			return nil, nil, nil, fmt.Errorf("migrate: %w", err)
		}
		return repo.NewPortfolioRepo(pool), repo.NewExportsRepo(pool), pool.Close, nil
	}

	store, err := sqlitestore.Open(ctx, cfg.SQLitePath)
	if err != nil {
		return nil, nil, nil, err
	}
	closeStore := func() {
		if err := store.Close(); err != nil {
			log.Warn("close sqlite store", "error", err)
		}
	}
	return store, store, closeStore, nil
}

// newRenderer builds the renderer for a backend name. BackendNone yields a
// nil renderer.
func newRenderer(backend string, cfg config.Config) (pdf.Renderer, func()) {
	noop := func() {}
	switch backend {
	case config.BackendChromedp:
		return infra.NewChromedpRenderer(cfg.ChromePath, cfg.RenderTimeout), noop
	case config.BackendRod:
		r := infra.NewRodRenderer(cfg.ChromePath, cfg.RenderTimeout)
		return r, closer(r)
	case config.BackendText:
		return infra.NewTextRenderer(), noop
	}
	return nil, noop
}

func closer(c io.Closer) func() {
	return func() { _ = c.Close() }
}
