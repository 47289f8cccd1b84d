// Package com implements backend.Backend over the desktop application's
// automation object model.
//
// The native objects are described by the interfaces in objects.go; a
// platform binding supplies a Database. Native calls do not take a
// context, so cancellation is only observed before each call.
package com

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/tejusbharadwaj/mbdata/internal/backend"
	"github.com/tejusbharadwaj/mbdata/internal/models"
	"github.com/tejusbharadwaj/mbdata/internal/unify"
)

var (
	// ErrNative wraps failures raised by the native database itself.
	ErrNative = errors.New("native database call failed")

	// ErrNilObject is returned when the binding hands back a nil object.
	ErrNilObject = errors.New("native database returned nil object")
)

// Backend adapts native objects to models values.
type Backend struct {
	db     Database
	logger *logrus.Logger
}

// New creates a Backend over db.
func New(db Database, logger *logrus.Logger) *Backend {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Backend{db: db, logger: logger}
}

func (b *Backend) FetchOneEntity(ctx context.Context, name string) (models.Entity, error) {
	if err := ctx.Err(); err != nil {
		return models.Entity{}, err
	}
	e, err := b.db.FetchOneEntity(name)
	if err != nil {
		return models.Entity{}, fmt.Errorf("%w: %v", ErrNative, err)
	}
	return toEntity(name, e)
}

func (b *Backend) FetchEntities(ctx context.Context, names []string) ([]models.Entity, error) {
	if len(names) == 0 {
		return []models.Entity{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	natives, err := b.db.FetchEntities(names)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNative, err)
	}
	if len(natives) != len(names) {
		return nil, fmt.Errorf("%w: requested %d entities, got %d", ErrNative, len(names), len(natives))
	}

	out := make([]models.Entity, len(names))
	for i, name := range names {
		if out[i], err = toEntity(name, natives[i]); err != nil {
			return nil, err
		}
	}
	b.logger.WithField("count", len(out)).Debug("fetched entities from native database")
	return out, nil
}

func (b *Backend) FetchOneSeries(ctx context.Context, name string) (models.Series, error) {
	if err := ctx.Err(); err != nil {
		return models.Series{}, err
	}
	s, err := b.db.FetchOneSeries(name)
	if err != nil {
		return models.Series{}, fmt.Errorf("%w: %v", ErrNative, err)
	}
	return toSeries(name, s)
}

func (b *Backend) FetchSeries(ctx context.Context, names []string) ([]models.Series, error) {
	if len(names) == 0 {
		return []models.Series{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	natives, err := b.db.FetchSeries(names)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNative, err)
	}
	if len(natives) != len(names) {
		return nil, fmt.Errorf("%w: requested %d series, got %d", ErrNative, len(names), len(natives))
	}

	out := make([]models.Series, len(names))
	for i, name := range names {
		if out[i], err = toSeries(name, natives[i]); err != nil {
			return nil, err
		}
	}
	b.logger.WithField("count", len(out)).Debug("fetched series from native database")
	return out, nil
}

func (b *Backend) FetchUnifiedSeries(ctx context.Context, entries []models.SeriesEntry, params models.UnifyParams) (models.UnifiedSeries, error) {
	return unify.Run(ctx, b, entries, params)
}

// SubmitUnified implements unify.Submitter. The shared date axis is taken
// from the first series that loaded.
func (b *Backend) SubmitUnified(ctx context.Context, req unify.Request) (unify.Response, error) {
	if err := ctx.Err(); err != nil {
		return unify.Response{}, err
	}
	builder := &requestBuilder{native: b.db.CreateUnifiedSeriesRequest()}
	unify.Apply(req, builder)
	if builder.err != nil {
		return unify.Response{}, builder.err
	}

	natives, err := b.db.FetchUnifiedSeries(builder.native)
	if err != nil {
		return unify.Response{}, fmt.Errorf("%w: %v", ErrNative, err)
	}
	if len(natives) != len(req.Entries) {
		return unify.Response{}, fmt.Errorf("%w: requested %d series, got %d",
			unify.ErrMalformedResponse, len(req.Entries), len(natives))
	}

	out := unify.Response{Series: make([]models.Series, len(natives))}
	for i, n := range natives {
		s, err := toSeries(req.Entries[i].Name, n)
		if err != nil {
			return unify.Response{}, err
		}
		out.Series[i] = s
		if out.Dates == nil && !s.IsError() {
			out.Dates = s.Dates()
		}
	}
	return out, nil
}

func toEntity(name string, e Entity) (models.Entity, error) {
	if e == nil {
		return models.Entity{}, fmt.Errorf("%w: entity %q", ErrNilObject, name)
	}
	if e.IsError() {
		return models.NewErrorEntity(name, e.ErrorMessage()), nil
	}
	return models.NewEntity(name, e.PrimaryName(), e.Title(), toMetadata(e.Metadata())), nil
}

func toSeries(name string, s Series) (models.Series, error) {
	if s == nil {
		return models.Series{}, fmt.Errorf("%w: series %q", ErrNilObject, name)
	}
	if s.IsError() {
		return models.NewErrorSeries(name, s.ErrorMessage()), nil
	}
	entity := models.NewEntity(name, s.PrimaryName(), s.Title(), toMetadata(s.Metadata()))
	out, err := models.NewSeries(entity, s.DatesAtStartOfPeriod(), s.Values())
	if err != nil {
		return models.Series{}, fmt.Errorf("%w: series %q: %v", ErrNative, name, err)
	}
	return out, nil
}

// toMetadata copies every native attribute so the result outlives the
// native object.
func toMetadata(md Metadata) *models.Metadata {
	if md == nil {
		return models.NewMetadata(nil)
	}
	raw := make(map[string]any)
	for _, n := range md.ListNames() {
		raw[n] = md.GetValues(n)
	}
	return models.NewMetadata(raw)
}

var _ backend.Backend = (*Backend)(nil)
