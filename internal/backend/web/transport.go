package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

var (
	ErrRequest = errors.New("error making provider request")
	ErrStatus  = errors.New("error status from provider")
	ErrDecode  = errors.New("error decoding provider response")
)

// Config configures the HTTP transport.
type Config struct {
	BaseURL        string
	Token          string        // sent as a bearer token when set
	Timeout        time.Duration // whole-request timeout
	RateLimit      float64       // requests per second, <= 0 disables
	RateLimitBurst int
}

// Transport sends JSON requests to the provider's web API. It performs no
// retries.
type Transport struct {
	cfg     Config
	client  *http.Client
	limiter *rate.Limiter
	logger  *logrus.Logger
	metrics *Metrics
}

// NewHTTPClient returns an http.Client with explicit dial and handshake
// timeouts; http.DefaultClient has none.
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}

// NewTransport creates a Transport. A nil client gets NewHTTPClient with
// cfg.Timeout; metrics may be nil.
func NewTransport(cfg Config, client *http.Client, logger *logrus.Logger, metrics *Metrics) *Transport {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if client == nil {
		client = NewHTTPClient(cfg.Timeout)
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.RateLimitBurst
	if burst <= 0 {
		burst = 1
	}
	return &Transport{
		cfg:     cfg,
		client:  client,
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger,
		metrics: metrics,
	}
}

// Get issues a GET request and decodes the JSON answer into dest.
func (t *Transport) Get(ctx context.Context, path string, query url.Values, dest any) error {
	u := t.url(path)
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return t.do(ctx, http.MethodGet, path, u, nil, dest)
}

// Post sends body as JSON and decodes the JSON answer into dest.
func (t *Transport) Post(ctx context.Context, path string, body any, dest any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%w: encode body: %v", ErrRequest, err)
	}
	return t.do(ctx, http.MethodPost, path, t.url(path), b, dest)
}

func (t *Transport) url(path string) string {
	return strings.TrimRight(t.cfg.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

func (t *Transport) do(ctx context.Context, method, path, u string, body []byte, dest any) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrRequest, err)
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequest, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if t.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+t.cfg.Token)
	}

	start := time.Now()
	resp, err := t.client.Do(req)
	if err != nil {
		t.observe(path, "error", start)
		return fmt.Errorf("%w: %w", ErrRequest, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			t.logger.WithError(err).Warn("failed to close response body")
		}
	}()
	t.observe(path, strconv.Itoa(resp.StatusCode), start)

	t.logger.WithFields(logrus.Fields{
		"request_id": requestID,
		"method":     method,
		"path":       path,
		"status":     resp.StatusCode,
		"duration":   time.Since(start),
	}).Debug("provider request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: got %d: %s", ErrStatus, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(dest); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}

func (t *Transport) observe(path, code string, start time.Time) {
	if t.metrics == nil {
		return
	}
	t.metrics.Requests.WithLabelValues(path, code).Inc()
	t.metrics.Latency.WithLabelValues(path).Observe(time.Since(start).Seconds())
}
