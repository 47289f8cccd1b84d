package server

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/tejusbharadwaj/mbdata/internal/api"
	"github.com/tejusbharadwaj/mbdata/internal/unify"
)

// SeriesService exposes an api.Client over gRPC.
type SeriesService struct {
	client    *api.Client
	validator *RequestValidator
	logger    *logrus.Logger
}

// NewSeriesService creates a new service instance
func NewSeriesService(client *api.Client, logger *logrus.Logger) *SeriesService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &SeriesService{
		client:    client,
		validator: NewRequestValidator(),
		logger:    logger,
	}
}

func (s *SeriesService) GetEntities(ctx context.Context, req *EntitiesRequest) (*EntitiesResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	entities, err := s.client.GetEntities(ctx, req.Names, api.RaiseError(raise(req.RaiseError)))
	if err != nil {
		return nil, s.toStatus(err)
	}
	out := &EntitiesResponse{Entities: make([]EntityMessage, len(entities))}
	for i, e := range entities {
		out.Entities[i] = entityMessage(e)
	}
	return out, nil
}

func (s *SeriesService) GetSeries(ctx context.Context, req *SeriesRequest) (*SeriesResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	series, err := s.client.GetSeries(ctx, req.Names, api.RaiseError(raise(req.RaiseError)))
	if err != nil {
		return nil, s.toStatus(err)
	}
	return &SeriesResponse{Series: seriesMessages(series)}, nil
}

func (s *SeriesService) GetUnifiedSeries(ctx context.Context, req *UnifiedSeriesRequest) (*UnifiedSeriesResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	u, err := s.client.GetUnifiedSeries(ctx, req.Entries, req.Params, api.RaiseError(raise(req.RaiseError)))
	if err != nil {
		return nil, s.toStatus(err)
	}
	dates := u.Dates()
	if dates == nil {
		dates = []time.Time{}
	}
	return &UnifiedSeriesResponse{Dates: dates, Series: seriesMessages(u.Series())}, nil
}

// toStatus maps client errors onto gRPC status codes.
func (s *SeriesService) toStatus(err error) error {
	var re *api.RetrievalError
	switch {
	case errors.As(err, &re):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, unify.ErrInvalidRequest):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	s.logger.WithError(err).Error("backend request failed")
	return status.Errorf(codes.Unavailable, "backend unavailable: %v", err)
}

var _ SeriesServer = (*SeriesService)(nil)
