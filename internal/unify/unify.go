// Package unify builds unified series requests and aligns the provider's
// answer into a models.UnifiedSeries.
//
// The provider computes the shared calendar. This package only decides
// what is sent (explicitly set fields, nothing else) and checks that what
// comes back keeps one value per date for every loaded series.
package unify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/tejusbharadwaj/mbdata/internal/models"
)

var (
	ErrInvalidRequest    = errors.New("invalid unified series request")
	ErrMalformedResponse = errors.New("malformed unified series response")
)

var validate = validator.New()

// Request is a validated, provider-neutral unified series request.
type Request struct {
	Entries []models.SeriesEntry
	Params  models.UnifyParams
}

// Response is the provider's answer to a Request, already converted to
// models values. Series must be in request order.
type Response struct {
	Dates  []time.Time
	Series []models.Series
}

// Submitter sends a Request in a single round trip.
type Submitter interface {
	SubmitUnified(ctx context.Context, req Request) (Response, error)
}

// NewRequest validates entries and params and copies them into a Request.
func NewRequest(entries []models.SeriesEntry, params models.UnifyParams) (Request, error) {
	for i, e := range entries {
		if err := validate.Struct(e); err != nil {
			return Request{}, fmt.Errorf("%w: entry %d: %v", ErrInvalidRequest, i, err)
		}
	}
	if err := validate.Struct(params); err != nil {
		return Request{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	for _, bound := range []struct {
		label string
		point *models.StartOrEndPoint
	}{
		{"start point", params.StartPoint},
		{"end point", params.EndPoint},
	} {
		label, p := bound.label, bound.point
		if p == nil {
			continue
		}
		if err := validate.Struct(p); err != nil {
			return Request{}, fmt.Errorf("%w: %s: %v", ErrInvalidRequest, label, err)
		}
		if p.Mode == models.DatePointInTime && p.Time.IsZero() {
			return Request{}, fmt.Errorf("%w: %s: point in time without a date", ErrInvalidRequest, label)
		}
	}
	if s, e := params.StartPoint, params.EndPoint; s != nil && e != nil &&
		s.Mode == models.DatePointInTime && e.Mode == models.DatePointInTime && s.Time.After(e.Time) {
		return Request{}, fmt.Errorf("%w: start point after end point", ErrInvalidRequest)
	}

	req := Request{
		Entries: make([]models.SeriesEntry, len(entries)),
		Params:  params,
	}
	copy(req.Entries, entries)
	return req, nil
}

// Run validates the request, submits it once and aligns the response.
// Zero entries yield an empty result without contacting the provider.
func Run(ctx context.Context, s Submitter, entries []models.SeriesEntry, params models.UnifyParams) (models.UnifiedSeries, error) {
	if len(entries) == 0 {
		return models.NewUnifiedSeries(nil, nil)
	}
	req, err := NewRequest(entries, params)
	if err != nil {
		return models.UnifiedSeries{}, err
	}
	resp, err := s.SubmitUnified(ctx, req)
	if err != nil {
		return models.UnifiedSeries{}, err
	}
	return Align(req, resp)
}

// Align checks the response against the request and builds the result.
// Error series are stripped of observations and never contribute dates;
// if no series loaded, the shared axis is empty.
func Align(req Request, resp Response) (models.UnifiedSeries, error) {
	if len(resp.Series) != len(req.Entries) {
		return models.UnifiedSeries{}, fmt.Errorf("%w: requested %d series, got %d",
			ErrMalformedResponse, len(req.Entries), len(resp.Series))
	}

	series := make([]models.Series, len(resp.Series))
	loaded := 0
	for i, s := range resp.Series {
		if s.IsError() {
			series[i] = models.NewErrorSeries(s.Name(), s.ErrorMessage())
			continue
		}
		loaded++
		series[i] = s
	}

	dates := resp.Dates
	if loaded == 0 {
		dates = nil
	}

	u, err := models.NewUnifiedSeries(dates, series)
	if err != nil {
		return models.UnifiedSeries{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return u, nil
}
