// Package server exposes the series client as the gRPC service
// mbdata.SeriesService. Messages are plain Go structs sent with a JSON
// codec; clients must use NewSeriesClient or the "json" content subtype.
package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/tejusbharadwaj/mbdata/internal/api"
	"github.com/tejusbharadwaj/mbdata/internal/cache"
	middleware "github.com/tejusbharadwaj/mbdata/internal/grpc/middlewares"
)

// ServerConfig holds configuration options for the gRPC server
type ServerConfig struct {
	RateLimit      float64 // Requests per second
	RateLimitBurst int     // Maximum burst size for rate limiting
}

// DefaultServerConfig returns a ServerConfig with sensible defaults
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		RateLimit:      5.0, // 5 requests per second
		RateLimitBurst: 10,  // Burst of 10 requests
	}
}

// Dependencies are the collaborators of the server besides the client.
// Every field is optional.
type Dependencies struct {
	Cache      cache.Cache
	Registerer prometheus.Registerer
	Logger     *logrus.Logger
	Health     *HealthChecker
}

// gRPC Server Configuration without the middleware (for development and debug only)
func ConfigureGRPCServer(
	client *api.Client,
	opts ...grpc.ServerOption,
) *grpc.Server {
	srv := grpc.NewServer(opts...)
	RegisterSeriesServer(srv, NewSeriesService(client, nil))
	return srv
}

// SetupServer initializes and configures the gRPC server with all middleware
func SetupServer(client *api.Client, config ServerConfig, deps Dependencies) (*grpc.Server, error) {
	if config.RateLimit <= 0 || config.RateLimitBurst <= 0 {
		return nil, fmt.Errorf("invalid rate limit %v with burst %d", config.RateLimit, config.RateLimitBurst)
	}
	logger := deps.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	requests, latency := middleware.NewMetrics()
	if deps.Registerer != nil {
		for _, c := range []prometheus.Collector{requests, latency} {
			if err := deps.Registerer.Register(c); err != nil {
				var are prometheus.AlreadyRegisteredError
				if !errors.As(err, &are) {
					return nil, err
				}
			}
		}
	}

	interceptors := []grpc.UnaryServerInterceptor{
		middleware.ContextMiddleware, // Add request ID first
		middleware.NewRateLimitingInterceptor(rate.Limit(config.RateLimit), config.RateLimitBurst),
		middleware.NewLoggingInterceptor(logger),
		middleware.NewMetricsInterceptor(requests, latency),
	}
	if deps.Cache != nil {
		// Cache last to avoid caching errors
		interceptors = append(interceptors, middleware.NewCachingInterceptor(deps.Cache, NewResponse, logger))
	}

	server := grpc.NewServer(grpc.UnaryInterceptor(chainUnaryInterceptors(interceptors...)))
	RegisterSeriesServer(server, NewSeriesService(client, logger))

	health := deps.Health
	if health == nil {
		health = NewHealthChecker()
	}
	health.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	health.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	grpc_health_v1.RegisterHealthServer(server, health)

	return server, nil
}

// chainUnaryInterceptors creates a single interceptor from multiple interceptors
func chainUnaryInterceptors(interceptors ...grpc.UnaryServerInterceptor) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		chain := handler
		for i := len(interceptors) - 1; i >= 0; i-- {
			interceptor := interceptors[i]
			chainedInterceptor := chain
			chain = func(currentCtx context.Context, currentReq interface{}) (interface{}, error) {
				return interceptor(currentCtx, currentReq, info, chainedInterceptor)
			}
		}
		return chain(ctx, req)
	}
}
