// Package api is the caller-facing entry point. It fetches through any
// backend.Backend and turns per-item failures into a *RetrievalError
// unless RaiseError(false) is given.
//
// Example usage:
//
//	client := api.NewClient(web.New(transport, logger), logger)
//	series, err := client.GetSeries(ctx, []string{"usgdp", "uscpi"})
//	var re *api.RetrievalError
//	if errors.As(err, &re) {
//		// some names could not be loaded
//	}
package api

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/tejusbharadwaj/mbdata/internal/backend"
	"github.com/tejusbharadwaj/mbdata/internal/models"
)

type options struct {
	raiseError bool
}

// Option changes how a single call reports item failures.
type Option func(*options)

// RaiseError controls whether item failures fail the call. The default is
// true; with false, failed items are returned inline as error values.
func RaiseError(raise bool) Option {
	return func(o *options) { o.raiseError = raise }
}

func buildOptions(opts []Option) options {
	o := options{raiseError: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Client fetches entities and series through a backend.
type Client struct {
	backend backend.Backend
	logger  *logrus.Logger
}

// NewClient creates a Client over b.
func NewClient(b backend.Backend, logger *logrus.Logger) *Client {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Client{backend: b, logger: logger}
}

// GetOneEntity fetches a single entity.
func (c *Client) GetOneEntity(ctx context.Context, name string, opts ...Option) (models.Entity, error) {
	entities, err := c.GetEntities(ctx, []string{name}, opts...)
	if err != nil {
		return models.Entity{}, err
	}
	return entities[0], nil
}

// GetEntities fetches entities in one round trip. The result has one
// element per name, in order.
func (c *Client) GetEntities(ctx context.Context, names []string, opts ...Option) ([]models.Entity, error) {
	entities, err := c.backend.FetchEntities(ctx, names)
	if err != nil {
		return nil, err
	}
	if err := c.check(buildOptions(opts), "entities", entities); err != nil {
		return nil, err
	}
	return entities, nil
}

// GetOneSeries fetches a single series.
func (c *Client) GetOneSeries(ctx context.Context, name string, opts ...Option) (models.Series, error) {
	series, err := c.GetSeries(ctx, []string{name}, opts...)
	if err != nil {
		return models.Series{}, err
	}
	return series[0], nil
}

// GetSeries fetches series in one round trip. The result has one element
// per name, in order.
func (c *Client) GetSeries(ctx context.Context, names []string, opts ...Option) ([]models.Series, error) {
	series, err := c.backend.FetchSeries(ctx, names)
	if err != nil {
		return nil, err
	}
	if err := c.check(buildOptions(opts), "series", seriesEntities(series)); err != nil {
		return nil, err
	}
	return series, nil
}

// GetUnifiedSeries fetches entries aligned on one date axis. Use
// models.Entries to build entries from plain names.
func (c *Client) GetUnifiedSeries(ctx context.Context, entries []models.SeriesEntry, params models.UnifyParams, opts ...Option) (models.UnifiedSeries, error) {
	u, err := c.backend.FetchUnifiedSeries(ctx, entries, params)
	if err != nil {
		return models.UnifiedSeries{}, err
	}
	if err := c.check(buildOptions(opts), "unified series", seriesEntities(u.Series())); err != nil {
		return models.UnifiedSeries{}, err
	}
	return u, nil
}

func (c *Client) check(o options, kind string, entities []models.Entity) error {
	re := collect(entities)
	if re == nil {
		return nil
	}
	c.logger.WithFields(logrus.Fields{
		"kind":   kind,
		"failed": re.Names(),
		"raised": o.raiseError,
	}).Info("items could not be retrieved")
	if !o.raiseError {
		return nil
	}
	return re
}
