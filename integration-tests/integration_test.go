//go:build integration
// +build integration

package integration_test

import (
	"context"
	"net"
	"os"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/tejusbharadwaj/mbdata/internal/api"
	"github.com/tejusbharadwaj/mbdata/internal/backend/web"
	"github.com/tejusbharadwaj/mbdata/internal/cache"
	"github.com/tejusbharadwaj/mbdata/internal/config"
	"github.com/tejusbharadwaj/mbdata/internal/database"
	server "github.com/tejusbharadwaj/mbdata/internal/grpc"
	"github.com/tejusbharadwaj/mbdata/internal/models"
	"github.com/tejusbharadwaj/mbdata/internal/providertest"
	"github.com/tejusbharadwaj/mbdata/internal/scheduler"
)

const bufSize = 1024 * 1024

type stack struct {
	provider *providertest.WebServer
	client   *api.Client
	rpc      *server.SeriesClient
	registry *prometheus.Registry
}

func setupStack(t *testing.T) *stack {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	provider := providertest.NewWebServer(providertest.NewDataset())
	t.Cleanup(provider.Close)

	registry := prometheus.NewRegistry()
	transport := web.NewTransport(web.Config{
		BaseURL: provider.URL,
		Token:   "integration",
		Timeout: 5 * time.Second,
	}, nil, logger, web.NewMetrics(registry))
	client := api.NewClient(web.New(transport, logger), logger)

	lru, err := cache.NewLRU(128, time.Minute)
	require.NoError(t, err)

	srv, err := server.SetupServer(client, server.ServerConfig{RateLimit: 1000, RateLimitBurst: 1000}, server.Dependencies{
		Cache:      lru,
		Registerer: registry,
		Logger:     logger,
	})
	require.NoError(t, err)

	lis := bufconn.Listen(bufSize)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.GracefulStop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return &stack{
		provider: provider,
		client:   client,
		rpc:      server.NewSeriesClient(conn),
		registry: registry,
	}
}

func raise(b bool) *bool { return &b }

func TestSeriesEndToEnd(t *testing.T) {
	s := setupStack(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resp, err := s.rpc.GetSeries(ctx, &server.SeriesRequest{Names: []string{"usgdp", "uscpi"}})
	require.NoError(t, err)
	require.Len(t, resp.Series, 2)

	gdp, err := resp.Series[0].ToSeries()
	require.NoError(t, err)
	assert.Equal(t, "usnaac0169", gdp.PrimaryName())
	assert.Equal(t, 5, gdp.Len())
	assert.Equal(t, models.FrequencyQuarterly, gdp.Frequency())

	cpi, err := resp.Series[1].ToSeries()
	require.NoError(t, err)
	assert.True(t, models.IsMissing(cpi.Values()[1]))

	// Served from the response cache.
	requests := s.provider.Requests()
	_, err = s.rpc.GetSeries(ctx, &server.SeriesRequest{Names: []string{"usgdp", "uscpi"}})
	require.NoError(t, err)
	assert.Equal(t, requests, s.provider.Requests())

	count, err := testutil.GatherAndCount(s.registry, "mbdata_provider_requests_total", "mbdata_grpc_requests_total")
	require.NoError(t, err)
	assert.Positive(t, count)
}

func TestBatchErrorsEndToEnd(t *testing.T) {
	s := setupStack(t)
	ctx := context.Background()

	_, err := s.rpc.GetSeries(ctx, &server.SeriesRequest{Names: []string{"usgdp", "noseries!", "nothere"}})
	require.Error(t, err)
	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.NotFound, st.Code())
	assert.Equal(t, "failed to retrieve:\n\tnoseries! error_message: Not found\n\tnothere error_message: Not found", st.Message())

	resp, err := s.rpc.GetEntities(ctx, &server.EntitiesRequest{Names: []string{"usgdp", "noseries!"}, RaiseError: raise(false)})
	require.NoError(t, err)
	require.Len(t, resp.Entities, 2)
	assert.False(t, resp.Entities[0].IsError)
	assert.True(t, resp.Entities[1].IsError)
	assert.Equal(t, "Not found", resp.Entities[1].ErrorMessage)
}

func TestUnifiedSeriesEndToEnd(t *testing.T) {
	s := setupStack(t)
	ctx := context.Background()

	resp, err := s.rpc.GetUnifiedSeries(ctx, &server.UnifiedSeriesRequest{
		Entries: []models.SeriesEntry{
			models.Entry("usgdp"),
			{Name: "uscpi", MissingValueMethod: models.MissingValueNone},
		},
		Params: models.UnifyParams{
			Frequency:  models.FrequencyMonthly,
			Currency:   "USD",
			StartPoint: models.Date(2020, time.January, 1),
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Series, 2)
	for _, m := range resp.Series {
		assert.Len(t, m.Values, len(resp.Dates))
	}

	sent := s.provider.LastUnified()
	assert.Equal(t, "Monthly", sent["frequency"])
	assert.Equal(t, "USD", sent["currency"])

	_, err = s.rpc.GetUnifiedSeries(ctx, &server.UnifiedSeriesRequest{Entries: models.Entries("noseries!")})
	assert.Equal(t, codes.NotFound, status.Code(err))

	empty, err := s.rpc.GetUnifiedSeries(ctx, &server.UnifiedSeriesRequest{Entries: models.Entries("noseries!"), RaiseError: raise(false)})
	require.NoError(t, err)
	assert.Empty(t, empty.Dates)
	require.Len(t, empty.Series, 1)
	assert.True(t, empty.Series[0].IsError)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func TestSchedulerArchivesSeries(t *testing.T) {
	if os.Getenv("DB_HOST") == "" {
		t.Skip("DB_HOST not set")
	}
	cfg := config.DatabaseConfig{
		Host:              os.Getenv("DB_HOST"),
		Port:              5432,
		Name:              getEnvOrDefault("DB_NAME", "mbdata"),
		User:              getEnvOrDefault("DB_USER", "mbdata"),
		Password:          getEnvOrDefault("DB_PASSWORD", "mbdata"),
		SSLMode:           "disable",
		ConnectionTimeout: 5,
	}
	ctx := context.Background()

	repo, err := database.NewPostgresRepo(ctx, cfg.ConnString())
	require.NoError(t, err)
	defer repo.Close()
	require.NoError(t, repo.EnsureSchema(ctx))

	s := setupStack(t)
	sched := scheduler.NewScheduler(ctx, scheduler.Config{Series: []string{"usgdp", "noseries!"}}, s.client, repo, nil)
	res := sched.Refresh()
	assert.Equal(t, 1, res.Stored)
	assert.Equal(t, 5, res.Rows)
	assert.Equal(t, 1, res.Failed)

	obs, err := repo.QueryObservations(ctx, "usgdp",
		time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2021, 12, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, obs, 5)

	// Refreshing again overwrites rather than duplicating.
	sched.Refresh()
	obs, err = repo.QueryObservations(ctx, "usgdp",
		time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2021, 12, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, obs, 5)
}
