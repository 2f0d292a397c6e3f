package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/openradius/raddecode/internal/audit"
	"github.com/openradius/raddecode/internal/config"
	"github.com/openradius/raddecode/internal/logger"
	"github.com/openradius/raddecode/internal/telemetry"
	"github.com/openradius/raddecode/pkg/httpapi"
	"github.com/openradius/raddecode/pkg/metrics"
	_ "github.com/openradius/raddecode/pkg/metrics/prometheus"
	"github.com/openradius/raddecode/pkg/radius/dictionary"
	"github.com/openradius/raddecode/pkg/radius/dictionary/loader"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the debug HTTP server exposing /decode and /metrics",
	Long: `Serve starts an HTTP server for ad-hoc decoding and Prometheus
scraping: POST a hex-encoded payload to /decode and get back the decoded
attributes as JSON, or scrape /metrics for decode counters.

When dictionary.source is "file" and dictionary.watch is true, the loaded
dictionary is swapped in place whenever the file changes on disk, without
interrupting requests already in flight.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}

	if err := logger.Init(logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format, Output: cfg.Logging.Output}); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry.Enabled {
		telCfg := telemetry.DefaultConfig()
		telCfg.Enabled = true
		telCfg.ServiceName = "raddecode"
		telCfg.ServiceVersion = Version
		telCfg.Endpoint = cfg.Telemetry.Endpoint
		telCfg.Insecure = cfg.Telemetry.Insecure
		telCfg.SampleRate = cfg.Telemetry.SampleRate
		shutdown, err := telemetry.Init(ctx, telCfg)
		if err != nil {
			return err
		}
		defer func() { _ = shutdown(context.Background()) }()
	}

	if cfg.Telemetry.Profiling.Enabled {
		shutdown, err := telemetry.InitProfiling(telemetry.ProfilingConfig{
			Enabled:        true,
			ServiceName:    "raddecode",
			ServiceVersion: Version,
			Endpoint:       cfg.Telemetry.Profiling.Endpoint,
			ProfileTypes:   cfg.Telemetry.Profiling.ProfileTypes,
		})
		if err != nil {
			return err
		}
		defer func() { _ = shutdown() }()
	}

	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
	}

	if cfg.Audit.Enabled {
		store, err := audit.Open(cfg.Audit.DSN)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
	}

	dict, err := BuildDictionary(ctx, &cfg.Dictionary)
	if err != nil {
		return err
	}

	serveDict := dict
	if cfg.Dictionary.Source == "file" && cfg.Dictionary.Watch {
		live := dictionary.NewLive(dict)
		serveDict = live
		go func() {
			if err := loader.Watch(ctx, cfg.Dictionary.Path, func(d *dictionary.Memory) {
				live.Store(d)
				logger.Info("dictionary reloaded", logger.DictPath(cfg.Dictionary.Path))
			}); err != nil {
				logger.Error("dictionary watch stopped", logger.Err(err))
			}
		}()
	}

	srv := &http.Server{
		Addr:    cfg.HTTPAPI.Addr,
		Handler: httpapi.NewRouter(serveDict),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
