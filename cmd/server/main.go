package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"note-slides/internal/config"
	"note-slides/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/grafana/pyroscope-go"
	_ "go.uber.org/automaxprocs"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 25 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "note-slides: %v\n", err)
		os.Exit(1)
	}
}

// run serves until ctx is cancelled or the listener fails.
func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	profiler, err := startProfiling(cfg, log)
	if err != nil {
		log.Warn("profiling disabled", "err", err)
	}

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("open %s storage: %w", cfg.StorageDriver, err)
	}

	app := setupRouter(cfg, store)
	log.Info("starting NoteSlides", "port", cfg.AppPort, "storage", store.driver)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.Listen(fmt.Sprintf(":%d", cfg.AppPort))
	})
	g.Go(func() error {
		<-ctx.Done()
		return shutdown(app, profiler, store, log)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("graceful shutdown complete")
	return nil
}

// shutdown drains HTTP first so no request sees a closed store.
func shutdown(app *fiber.App, profiler *pyroscope.Profiler, store *backend, log *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	if profiler != nil {
		if err := profiler.Stop(); err != nil {
			log.Warn("pyroscope stop", "err", err)
		}
	}
	if err := store.close(ctx); err != nil {
		return fmt.Errorf("close storage: %w", err)
	}
	return nil
}
