package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"

	"github.com/tejusbharadwaj/mbdata/internal/api"
	"github.com/tejusbharadwaj/mbdata/internal/backend"
	"github.com/tejusbharadwaj/mbdata/internal/backend/web"
	"github.com/tejusbharadwaj/mbdata/internal/cache"
	"github.com/tejusbharadwaj/mbdata/internal/config"
	"github.com/tejusbharadwaj/mbdata/internal/database"
	server "github.com/tejusbharadwaj/mbdata/internal/grpc"
	"github.com/tejusbharadwaj/mbdata/internal/logging"
	"github.com/tejusbharadwaj/mbdata/internal/scheduler"
)

// Command mbdata serves economic time series from a data provider over gRPC.
//
// The service supports:
//   - Entity and series lookups by name, with batch error reporting
//   - Unified series: several series converted to one date axis
//   - Response caching (in-process LRU or Redis)
//   - Periodic archiving of selected series into TimescaleDB
//   - Prometheus metrics
//
// Usage:
//
//	mbdata [flags]
//
// The flags are:
//
//	-config string
//	      path to config file (default "config.yaml")
func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// Load configuration
	appConfig, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(appConfig.Logging)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	// Create a context that will be canceled on shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx, appConfig, logger); err != nil {
		logger.Fatalf("Service error: %v", err)
	}
}

func run(ctx context.Context, appConfig *config.Config, logger *logrus.Logger) error {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	b, err := newBackend(appConfig.Backend, registry, logger)
	if err != nil {
		return err
	}
	client := api.NewClient(b, logger)

	responseCache, err := cache.New(ctx, cache.Options{
		Type:          appConfig.Cache.Type,
		Size:          appConfig.Cache.Size,
		TTL:           appConfig.Cache.TTL,
		RedisAddr:     appConfig.Cache.RedisAddr,
		RedisPassword: appConfig.Cache.RedisPassword,
	})
	if err != nil {
		return fmt.Errorf("failed to create cache: %w", err)
	}

	var repo *database.PostgresRepo
	if appConfig.Database.Enabled {
		repo, err = database.NewPostgresRepo(ctx, appConfig.Database.ConnString())
		if err != nil {
			return fmt.Errorf("failed to create repository: %w", err)
		}
		defer repo.Close()
		if err := repo.EnsureSchema(ctx); err != nil {
			return err
		}
	}

	health := server.NewHealthChecker()
	srv, err := server.SetupServer(client, server.ServerConfig{
		RateLimit:      appConfig.Server.RateLimit,
		RateLimitBurst: appConfig.Server.RateLimitBurst,
	}, server.Dependencies{
		Cache:      responseCache,
		Registerer: registry,
		Logger:     logger,
		Health:     health,
	})
	if err != nil {
		return fmt.Errorf("failed to setup server: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", appConfig.Server.Host, appConfig.Server.Port)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	// Start background services
	errChan := make(chan error, 2)

	if appConfig.Scheduler.Enabled {
		if repo == nil {
			return errors.New("scheduler requires the database to be enabled")
		}
		sched := scheduler.NewScheduler(ctx, scheduler.Config{
			Spec:    appConfig.Scheduler.Spec,
			Series:  appConfig.Scheduler.Series,
			Timeout: appConfig.Scheduler.Timeout,
		}, client, repo, logger)
		if err := sched.Start(); err != nil {
			return fmt.Errorf("scheduler error: %w", err)
		}
		defer sched.Stop()
	}

	var metricsServer *http.Server
	if appConfig.Server.MetricsPort > 0 {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		metricsServer = &http.Server{
			Addr:              fmt.Sprintf("%s:%d", appConfig.Server.Host, appConfig.Server.MetricsPort),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- fmt.Errorf("metrics server error: %w", err)
			}
		}()
	}

	logger.WithFields(logrus.Fields{
		"addr":    addr,
		"backend": appConfig.Backend.Type,
		"cache":   appConfig.Cache.Type,
	}).Info("Starting gRPC server")

	go func() {
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	// Handle shutdown gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		shutdown(srv, health, metricsServer, logger)
		return err
	case sig := <-sigChan:
		logger.Printf("Received signal %v, initiating shutdown", sig)
	case <-ctx.Done():
		logger.Println("Context canceled, initiating shutdown")
	}
	shutdown(srv, health, metricsServer, logger)
	return nil
}

func newBackend(cfg config.BackendConfig, reg prometheus.Registerer, logger *logrus.Logger) (backend.Backend, error) {
	switch cfg.Type {
	case "web":
		transport := web.NewTransport(web.Config{
			BaseURL:        cfg.Web.BaseURL,
			Token:          cfg.Web.Token,
			Timeout:        cfg.Web.Timeout,
			RateLimit:      cfg.Web.RateLimit,
			RateLimitBurst: cfg.Web.RateLimitBurst,
		}, nil, logger, web.NewMetrics(reg))
		return web.New(transport, logger), nil
	case "com":
		// The desktop object model is only reachable through a native
		// binding, which this build does not link.
		return nil, errors.New("com backend requires a native database binding")
	default:
		return nil, fmt.Errorf("unknown backend type %q", cfg.Type)
	}
}

func shutdown(srv *grpc.Server, health *server.HealthChecker, metricsServer *http.Server, logger *logrus.Logger) {
	logger.Println("Gracefully stopping server...")
	health.Shutdown()
	srv.GracefulStop()
	if metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(ctx)
	}
	logger.Println("Server stopped")
}
