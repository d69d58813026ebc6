// Command pulsecheck runs the task validation HTTP service.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"

	"github.com/go-redis/redis/v8"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	"github.com/openqpu/pulsecheck/pkg/api"
	"github.com/openqpu/pulsecheck/pkg/cache"
	"github.com/openqpu/pulsecheck/pkg/config"
	"github.com/openqpu/pulsecheck/pkg/device"
	"github.com/openqpu/pulsecheck/pkg/history"
	"github.com/openqpu/pulsecheck/pkg/observability"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := observability.NewLogger(cfg.Observability.LogLevel, os.Stdout)
	logger.WithFields(map[string]interface{}{
		"addr":        net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		"health_addr": net.JoinHostPort(cfg.Server.Host, cfg.Server.HealthPort),
		"profile_dir": cfg.Profiles.Dir,
	}).Info("Starting pulsecheck")

	ctx := context.Background()
	shutdown := observability.NewShutdownManager(logger, cfg.Server.ShutdownTimeout)

	if cfg.Observability.OTelEnabled {
		providers, err := observability.InitOTel(ctx, observability.OTelConfig{
			Enabled:        true,
			Endpoint:       cfg.Observability.OTelEndpoint,
			ServiceName:    cfg.Observability.OTelServiceName,
			ServiceVersion: cfg.Observability.OTelServiceVersion,
			Insecure:       cfg.Observability.OTelInsecure,
		}, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
		}
		shutdown.Register("otel", func(ctx context.Context) error {
			return observability.ShutdownOTel(ctx, providers, logger)
		})
	}

	var metrics *observability.Metrics
	if cfg.Observability.MetricsEnabled {
		metrics = observability.NewMetrics(prometheus.NewRegistry())
	}

	registry, err := device.NewRegistry(cfg.Profiles.Dir)
	if err != nil {
		return fmt.Errorf("failed to load device profiles: %w", err)
	}
	logger.WithField("profiles", registry.Names()).Info("Device profiles loaded")
	if metrics != nil {
		metrics.ProfilesLoaded.Set(float64(len(registry.Names())))
	}

	if cfg.Profiles.Watch && cfg.Profiles.Dir != "" {
		watchLog := logrus.New()
		if level, err := logrus.ParseLevel(cfg.Observability.LogLevel.String()); err == nil {
			watchLog.SetLevel(level)
		}
		watcher, err := device.NewWatcher(registry, watchLog)
		if err != nil {
			return fmt.Errorf("failed to watch profile directory: %w", err)
		}
		watchCtx, cancelWatch := context.WithCancel(ctx)
		go watcher.Run(watchCtx)
		shutdown.Register("profile watcher", func(context.Context) error {
			cancelWatch()
			return watcher.Close()
		})
	}

	var resultCache cache.Cache
	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		resultCache, err = cache.New(cfg.Cache)
		if err != nil {
			return fmt.Errorf("failed to initialize result cache: %w", err)
		}
		if rc, ok := resultCache.(*cache.RedisCache); ok {
			redisClient = rc.Client()
		}
		c := resultCache
		shutdown.Register("result cache", func(context.Context) error {
			return c.Close()
		})
	}

	var recorder history.Recorder = history.NopRecorder{}
	var db *sql.DB
	if cfg.History.Enabled {
		dbRecorder, err := history.Open(cfg.History)
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		recorder = dbRecorder
		db = dbRecorder.DB()
		shutdown.Register("history database", func(context.Context) error {
			return dbRecorder.Close()
		})

		retention, err := history.NewRetentionJob(dbRecorder, cfg.History, logger)
		if err != nil {
			return fmt.Errorf("failed to schedule history cleanup: %w", err)
		}
		retention.Start()
		shutdown.Register("history retention job", retention.Stop)
	}

	server := api.NewServer(registry, logger, api.Options{
		Cache:        resultCache,
		Recorder:     recorder,
		Metrics:      metrics,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
	})
	handler := server.Handler()
	if cfg.Observability.OTelEnabled {
		handler = otelhttp.NewHandler(handler, "pulsecheck")
	}

	apiServer := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	shutdown.Register("api server", apiServer.Shutdown)

	health := observability.NewHealthChecker(db, redisClient)
	healthMux := http.NewServeMux()
	healthMux.HandleFunc("/healthz", health.Liveness)
	healthMux.HandleFunc("/readyz", health.Readiness)
	if metrics != nil {
		healthMux.Handle("/metrics", metrics.Handler())
	}
	healthServer := &http.Server{
		Addr:    net.JoinHostPort(cfg.Server.Host, cfg.Server.HealthPort),
		Handler: healthMux,
	}
	shutdown.Register("health server", healthServer.Shutdown)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.WithField("addr", apiServer.Addr).Info("API server listening")
		if err := apiServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		logger.WithField("addr", healthServer.Addr).Info("Health server listening")
		if err := healthServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return shutdown.WaitForShutdown(gctx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("pulsecheck stopped")
	return nil
}
