// API server entry point for the molgraph comparison engine.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/turtacn/molgraph/internal/application/compare"
	"github.com/turtacn/molgraph/internal/config"
	"github.com/turtacn/molgraph/internal/infrastructure/database/redis"
	"github.com/turtacn/molgraph/internal/infrastructure/monitoring/logging"
	prom "github.com/turtacn/molgraph/internal/infrastructure/monitoring/prometheus"
	httpserver "github.com/turtacn/molgraph/internal/interfaces/http"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file (default: environment only)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(logging.LogConfig{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		OutputPaths: []string{cfg.Log.Output},
	})
	if err != nil {
		return err
	}
	logging.SetDefault(logger)
	logger.Info("starting molgraph API server", logging.Int("port", cfg.Server.Port))

	// Metrics.
	var (
		collector  prom.MetricsCollector
		appMetrics *prom.AppMetrics
	)
	if cfg.Metrics.Enabled {
		collector, err = prom.NewMetricsCollector(prom.CollectorConfig{
			Namespace:            "molgraph",
			EnableGoMetrics:      true,
			EnableProcessMetrics: true,
		}, logger)
		if err != nil {
			return err
		}
		appMetrics = prom.NewAppMetrics(collector)
	}

	// Service options.
	opts := []compare.Option{
		compare.WithGraphCacheSize(cfg.Cache.GraphLRUSize),
	}
	if appMetrics != nil {
		opts = append(opts, compare.WithMetrics(appMetrics))
	}

	// Optional shared result cache.  A missing Redis degrades to local-only
	// operation instead of refusing to start.
	if cfg.Cache.EnableRedis {
		client, err := redis.NewClient(cfg.Cache.Redis, logger)
		if err != nil {
			logger.Warn("Redis unavailable; running without shared result cache", logging.Err(err))
		} else {
			defer client.Close()
			cache := redis.NewCache(client, logger,
				redis.WithPrefix(cfg.Cache.Redis.KeyPrefix),
				redis.WithDefaultTTL(cfg.Cache.Redis.DefaultTTL),
			)
			opts = append(opts, compare.WithResultCache(cache))
		}
	}

	svc, err := compare.NewService(cfg.Engine, logger, opts...)
	if err != nil {
		return err
	}

	router := httpserver.NewRouter(httpserver.RouterConfig{
		Handler:     httpserver.NewCompareHandler(svc),
		Logger:      logger,
		Metrics:     appMetrics,
		Collector:   collector,
		MetricsPath: cfg.Metrics.Path,
		Mode:        cfg.Server.Mode,
	})
	server := httpserver.NewServer(cfg.Server, router, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("received shutdown signal", logging.String("signal", sig.String()))
	}

	return server.Stop(context.Background())
}
