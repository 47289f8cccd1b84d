// Package mbdata implements a client and gRPC service for economic time
// series held by a Macrobond-style data provider.
//
// # Architecture
//
// The service is structured into several key packages:
//   - models: Metadata, Entity, Series, UnifiedSeries and request descriptors
//   - backend: the provider interface with web (HTTP) and com (desktop
//     object model) adapters
//   - unify: validation and translation of unified series requests
//   - api: caller-facing client with batch error reporting
//   - grpc: gRPC service, middlewares and health checks
//   - cache: response caching in memory or Redis
//   - database: TimescaleDB archive of fetched observations
//   - scheduler: periodic refresh of configured series into the archive
//
// Key Features
//
//   - Batch errors:
//     Unknown or failing names produce error items in place. By default
//     any error item fails the whole call with a message listing every
//     failing name in request order; RaiseError(false) returns them inline.
//
//   - Unified series:
//     Several series converted to a common frequency, calendar, currency
//     and date range, with per-series conversion policies.
//
//   - Backend parity:
//     Both backends return identical results for identical requests.
//
// Example Usage
//
//	client := api.NewClient(web.New(transport, logger), logger)
//	u, err := client.GetUnifiedSeries(ctx, models.Entries("usgdp", "uscpi"), models.UnifyParams{
//	    Frequency:  models.FrequencyMonthly,
//	    StartPoint: models.Date(2020, time.January, 1),
//	})
//
// For more information about specific packages, see their respective
// documentation.
package mbdata
