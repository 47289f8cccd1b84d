package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTransport(t *testing.T, h http.HandlerFunc, cfg Config, m *Metrics) *Transport {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	cfg.BaseURL = srv.URL
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	return NewTransport(cfg, nil, logger, m)
}

func TestTransportHeaders(t *testing.T) {
	var got http.Header
	tr := newTransport(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_, _ = w.Write([]byte(`{}`))
	}, Config{Token: "secret"}, nil)

	var dest map[string]any
	require.NoError(t, tr.Post(context.Background(), "/v1/x", map[string]int{"a": 1}, &dest))

	assert.Equal(t, "Bearer secret", got.Get("Authorization"))
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.Equal(t, "application/json", got.Get("Accept"))
	assert.NotEmpty(t, got.Get("X-Request-ID"))
}

func TestTransportQuery(t *testing.T) {
	var got url.Values
	tr := newTransport(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		_, _ = w.Write([]byte(`[]`))
	}, Config{}, nil)

	var dest []any
	require.NoError(t, tr.Get(context.Background(), "v1/entities/fetch", nameQuery([]string{"a", "b"}), &dest))
	assert.Equal(t, []string{"a", "b"}, got["n"])
}

func TestTransportErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr error
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
			wantErr: ErrStatus,
		},
		{
			name: "unauthorized",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
			wantErr: ErrStatus,
		},
		{
			name: "bad json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{not json`))
			},
			wantErr: ErrDecode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newTransport(t, tt.handler, Config{}, nil)
			var dest map[string]any
			err := tr.Get(context.Background(), "/v1/x", nil, &dest)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTransportStatusIncludesBody(t *testing.T) {
	tr := newTransport(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "token expired", http.StatusForbidden)
	}, Config{}, nil)

	var dest map[string]any
	err := tr.Get(context.Background(), "/v1/x", nil, &dest)
	require.ErrorIs(t, err, ErrStatus)
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "token expired")
}

func TestTransportUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	tr := NewTransport(Config{BaseURL: base, Timeout: time.Second}, nil, nil, nil)
	var dest map[string]any
	err := tr.Get(context.Background(), "/v1/x", nil, &dest)
	assert.ErrorIs(t, err, ErrRequest)
}

func TestTransportCancelledContext(t *testing.T) {
	tr := newTransport(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}, Config{RateLimit: 1, RateLimitBurst: 1}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var dest map[string]any
	err := tr.Get(ctx, "/v1/x", nil, &dest)
	assert.ErrorIs(t, err, ErrRequest)
}

func TestTransportMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	tr := newTransport(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}, Config{}, m)

	var dest map[string]any
	require.NoError(t, tr.Get(context.Background(), "/v1/x", nil, &dest))
	require.NoError(t, tr.Get(context.Background(), "/v1/x", nil, &dest))

	assert.Equal(t, float64(2), testutil.ToFloat64(m.Requests.WithLabelValues("/v1/x", "200")))
}
