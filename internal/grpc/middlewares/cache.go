package middleware

import (
	"context"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"

	"github.com/tejusbharadwaj/mbdata/internal/cache"
)

// NewCachingInterceptor serves repeated requests from c. newResponse
// returns an empty response value for a method; methods it does not know
// are never cached. Failed calls are not cached, and cache failures only
// cost a backend round trip.
func NewCachingInterceptor(
	c cache.Cache,
	newResponse func(fullMethod string) (interface{}, bool),
	logger *logrus.Logger,
) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		cached, ok := newResponse(info.FullMethod)
		if !ok {
			return handler(ctx, req)
		}
		key, err := cache.Key(info.FullMethod, req)
		if err != nil {
			return handler(ctx, req)
		}
		log := logger.WithFields(logrus.Fields{
			"request_id": RequestIDFromContext(ctx),
			"method":     info.FullMethod,
		})

		hit, err := c.Get(ctx, key, cached)
		if err != nil {
			log.WithError(err).Warn("cache lookup failed")
		}
		if hit {
			log.Debug("cache hit")
			return cached, nil
		}

		resp, err := handler(ctx, req)
		if err != nil {
			return nil, err
		}
		if err := c.Set(ctx, key, resp); err != nil {
			log.WithError(err).Warn("cache store failed")
		}
		return resp, nil
	}
}
