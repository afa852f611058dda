package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	httpadapter "github.com/couchcryptid/messier-skychart/internal/adapter/http"
	"github.com/couchcryptid/messier-skychart/internal/catalog"
	"github.com/couchcryptid/messier-skychart/internal/chart"
	"github.com/couchcryptid/messier-skychart/internal/dashboard"
	"github.com/couchcryptid/messier-skychart/internal/observability"
	"github.com/couchcryptid/messier-skychart/web"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactive sky chart",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	addCatalogFlags(cmd)

	f := cmd.Flags()
	f.String("host", "127.0.0.1", "listen host (0.0.0.0 when PORT is set)")
	f.Int("port", 8050, "listen port")
	f.Bool("debug", false, "enable debug logging")
	f.Bool("watch", false, "reload the catalog when the CSV file changes")
	f.Bool("tracing", false, "export trace spans to stderr")
	f.Int("chart-cache-size", 128, "number of rendered charts to keep (0 disables)")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitTracing(ctx, cfg.TracingEnabled, os.Stderr, logger)
	if err != nil {
		logger.Error("failed to initialize tracing", "error", err)
		return err
	}
	defer observability.ShutdownTracing(context.Background(), shutdownTracing, logger)

	styles, err := loadStyles(cfg.StylesPath, logger)
	if err != nil {
		logger.Error("failed to load style table", "error", err)
		return err
	}

	loader, file := newLoader(cfg, logger, metrics)
	store := catalog.NewStore(metrics)

	ds, err := loader.Load(ctx)
	if err != nil {
		logger.Error("failed to load catalog", "error", err)
		return err
	}
	store.Set(ds)

	renderer := chart.NewRenderer(chart.NewAssembler(styles), cfg.ChartCacheSize, metrics)
	handler := dashboard.NewHandler(store, renderer, styles, web.Content, logger)
	srv := httpadapter.NewServer(cfg.Addr(), store, handler, nil, logger, metrics)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if cfg.Watch && file != nil {
		watcher := catalog.NewWatcher(file, loader, store, logger, metrics)
		g.Go(func() error { return watcher.Run(gctx) })
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped with error", "error", err)
		return err
	}
	logger.Info("shutdown complete")
	return nil
}
