// Command familyvault wires the family records backend from configuration,
// creates its schema and serves cache metrics until interrupted.
//
//	familyvault -config familyvault.yaml            # migrate, then serve /metrics
//	familyvault -config familyvault.yaml -migrate   # migrate and exit
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goliatone/go-family-records/config"
	"github.com/goliatone/go-family-records/internal/telemetry"
	"github.com/goliatone/go-family-records/pkg/di"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v\n", err)
	}
}

func run() error {
	var (
		configPath  = flag.String("config", os.Getenv("FAMILYVAULT_CONFIG"), "path to the YAML configuration file")
		migrateOnly = flag.Bool("migrate", false, "create the schema and exit")
		metricsAddr = flag.String("metrics-addr", ":9090", "listen address of the /metrics endpoint")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := telemetry.SetupLogger(cfg.Logging.Format, cfg.Logging.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container, err := di.NewContainer(ctx, *cfg, di.WithLogger(logger))
	if err != nil {
		return err
	}
	defer container.Close()

	if err := container.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	if *migrateOnly {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              *metricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("metrics listening", "addr", *metricsAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
