// Package web implements backend.Backend over the provider's JSON web API.
//
// Endpoints used:
//   - GET  /v1/entities/fetch?n=<name>...         entity metadata
//   - GET  /v1/series/fetch?n=<name>...           series with observations
//   - POST /v1/series/fetch-unified-series        aligned series
//
// Every batch call is a single HTTP round trip. Items the provider cannot
// resolve come back with an errorText and are returned as error entities;
// HTTP, network and decoding failures are returned as errors.
//
// Example usage:
//
//	t := web.NewTransport(web.Config{BaseURL: "https://api.example.com"}, nil, logger, nil)
//	b := web.New(t, logger)
//	s, err := b.FetchOneSeries(ctx, "usgdp")
package web

import (
	"context"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/tejusbharadwaj/mbdata/internal/backend"
	"github.com/tejusbharadwaj/mbdata/internal/models"
	"github.com/tejusbharadwaj/mbdata/internal/unify"
)

const (
	entitiesPath = "/v1/entities/fetch"
	seriesPath   = "/v1/series/fetch"
	unifiedPath  = "/v1/series/fetch-unified-series"
)

// Backend adapts web API responses to models values.
type Backend struct {
	transport *Transport
	logger    *logrus.Logger
}

// New creates a web Backend on top of t.
func New(t *Transport, logger *logrus.Logger) *Backend {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Backend{transport: t, logger: logger}
}

func (b *Backend) FetchOneEntity(ctx context.Context, name string) (models.Entity, error) {
	entities, err := b.FetchEntities(ctx, []string{name})
	if err != nil {
		return models.Entity{}, err
	}
	return entities[0], nil
}

func (b *Backend) FetchEntities(ctx context.Context, names []string) ([]models.Entity, error) {
	if len(names) == 0 {
		return []models.Entity{}, nil
	}
	var resp []entityResponse
	if err := b.transport.Get(ctx, entitiesPath, nameQuery(names), &resp); err != nil {
		return nil, err
	}
	if len(resp) != len(names) {
		return nil, fmt.Errorf("%w: requested %d entities, got %d", ErrDecode, len(names), len(resp))
	}

	out := make([]models.Entity, len(names))
	for i, name := range names {
		out[i] = toEntity(name, resp[i])
	}
	b.logFetched("entities", out)
	return out, nil
}

func (b *Backend) FetchOneSeries(ctx context.Context, name string) (models.Series, error) {
	series, err := b.FetchSeries(ctx, []string{name})
	if err != nil {
		return models.Series{}, err
	}
	return series[0], nil
}

func (b *Backend) FetchSeries(ctx context.Context, names []string) ([]models.Series, error) {
	if len(names) == 0 {
		return []models.Series{}, nil
	}
	var resp []seriesResponse
	if err := b.transport.Get(ctx, seriesPath, nameQuery(names), &resp); err != nil {
		return nil, err
	}
	if len(resp) != len(names) {
		return nil, fmt.Errorf("%w: requested %d series, got %d", ErrDecode, len(names), len(resp))
	}

	out := make([]models.Series, len(names))
	for i, name := range names {
		s, err := toSeries(name, resp[i])
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	b.logFetched("series", seriesEntities(out))
	return out, nil
}

func (b *Backend) FetchUnifiedSeries(ctx context.Context, entries []models.SeriesEntry, params models.UnifyParams) (models.UnifiedSeries, error) {
	return unify.Run(ctx, b, entries, params)
}

// SubmitUnified implements unify.Submitter.
func (b *Backend) SubmitUnified(ctx context.Context, req unify.Request) (unify.Response, error) {
	body := &unifiedSeriesRequest{SeriesEntries: []*seriesEntryDTO{}}
	unify.Apply(req, body)

	var resp unifiedSeriesResponse
	if err := b.transport.Post(ctx, unifiedPath, body, &resp); err != nil {
		return unify.Response{}, err
	}
	if len(resp.Series) != len(req.Entries) {
		return unify.Response{}, fmt.Errorf("%w: requested %d series, got %d",
			unify.ErrMalformedResponse, len(req.Entries), len(resp.Series))
	}

	dates, err := parseDates(resp.Dates)
	if err != nil {
		return unify.Response{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	out := unify.Response{Dates: dates, Series: make([]models.Series, len(resp.Series))}
	for i, r := range resp.Series {
		// Unified answers carry no per-series dates; the shared axis applies.
		if r.ErrorText == "" && len(r.Dates) == 0 {
			r.Dates = resp.Dates
		}
		s, err := toSeries(req.Entries[i].Name, r)
		if err != nil {
			return unify.Response{}, err
		}
		out.Series[i] = s
	}
	return out, nil
}

func (b *Backend) logFetched(kind string, entities []models.Entity) {
	failed := 0
	for _, e := range entities {
		if e.IsError() {
			failed++
		}
	}
	b.logger.WithFields(logrus.Fields{
		"kind":   kind,
		"count":  len(entities),
		"failed": failed,
	}).Debug("fetched from web backend")
}

func nameQuery(names []string) url.Values {
	q := url.Values{}
	for _, n := range names {
		q.Add("n", n)
	}
	return q
}

func seriesEntities(series []models.Series) []models.Entity {
	out := make([]models.Entity, len(series))
	for i, s := range series {
		out[i] = s.Entity
	}
	return out
}

var _ backend.Backend = (*Backend)(nil)
