// Package backend defines the capability set shared by the web and COM
// adapters.
//
// Implementations translate provider-native responses into models values.
// A name the provider cannot resolve is returned as an error entity or
// error series; the error return is reserved for transport and backend
// failures, which always fail the whole call.
package backend

import (
	"context"

	"github.com/tejusbharadwaj/mbdata/internal/models"
)

// Backend fetches entities and series from one provider transport.
type Backend interface {
	// FetchOneEntity fetches the metadata of a single entity.
	FetchOneEntity(ctx context.Context, name string) (models.Entity, error)

	// FetchEntities fetches several entities in one round trip. The result
	// has one element per name, in request order.
	FetchEntities(ctx context.Context, names []string) ([]models.Entity, error)

	// FetchOneSeries fetches a single series with its observations.
	FetchOneSeries(ctx context.Context, name string) (models.Series, error)

	// FetchSeries fetches several series in one round trip, in request order.
	FetchSeries(ctx context.Context, names []string) ([]models.Series, error)

	// FetchUnifiedSeries aligns the requested series on one date axis in a
	// single round trip.
	FetchUnifiedSeries(ctx context.Context, entries []models.SeriesEntry, params models.UnifyParams) (models.UnifiedSeries, error)
}
