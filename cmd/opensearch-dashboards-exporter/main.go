package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	versioncollector "github.com/prometheus/client_golang/prometheus/collectors/version"
	"github.com/prometheus/common/version"

	"github.com/osdash/opensearch-dashboards-exporter/internal/collector"
	"github.com/osdash/opensearch-dashboards-exporter/internal/config"
	"github.com/osdash/opensearch-dashboards-exporter/internal/dashboards"
	"github.com/osdash/opensearch-dashboards-exporter/internal/web"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional; defaults apply without one)")
	flag.Parse()

	// Credentials commonly live in a .env next to the binary; absence is fine.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env file", "err", err)
	}

	level := new(slog.LevelVar)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	slog.Info("opensearch-dashboards-exporter starting",
		"version", version.Version, "config", *configPath)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	level.Set(cfg.Level())
	slog.Info("config loaded",
		"listen_address", cfg.ListenAddress,
		"upstream_url", cfg.Upstream.URL,
		"fetch_timeout", cfg.Upstream.Timeout,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client := dashboards.New(cfg.Upstream)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collector.New(client),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		versioncollector.NewCollector("opensearch_dashboards_exporter"),
	)

	// Hot reload: log level and upstream settings apply live; a changed
	// listen address needs a restart.
	if *configPath != "" {
		go func() {
			if err := config.Watch(ctx, *configPath, func(updated *config.Config) {
				level.Set(updated.Level())
				client.Reconfigure(updated.Upstream)
				if updated.ListenAddress != cfg.ListenAddress {
					slog.Warn("listen_address changed in config; restart required to apply",
						"current", cfg.ListenAddress, "configured", updated.ListenAddress)
				}
			}); err != nil {
				slog.Error("config watcher stopped", "err", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:    cfg.ListenAddress,
		Handler: web.New(reg),
	}
	go func() {
		slog.Info("metrics server listening", "address", cfg.ListenAddress)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server stopped", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("opensearch-dashboards-exporter shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown incomplete", "err", err)
	}
}
