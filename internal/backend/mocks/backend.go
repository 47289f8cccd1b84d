// Package mocks provides testify mocks of the backend interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/tejusbharadwaj/mbdata/internal/backend"
	"github.com/tejusbharadwaj/mbdata/internal/models"
)

// Backend is a mock of backend.Backend.
type Backend struct {
	mock.Mock
}

func (m *Backend) FetchOneEntity(ctx context.Context, name string) (models.Entity, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(models.Entity), args.Error(1)
}

func (m *Backend) FetchEntities(ctx context.Context, names []string) ([]models.Entity, error) {
	args := m.Called(ctx, names)
	entities, _ := args.Get(0).([]models.Entity)
	return entities, args.Error(1)
}

func (m *Backend) FetchOneSeries(ctx context.Context, name string) (models.Series, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(models.Series), args.Error(1)
}

func (m *Backend) FetchSeries(ctx context.Context, names []string) ([]models.Series, error) {
	args := m.Called(ctx, names)
	series, _ := args.Get(0).([]models.Series)
	return series, args.Error(1)
}

func (m *Backend) FetchUnifiedSeries(ctx context.Context, entries []models.SeriesEntry, params models.UnifyParams) (models.UnifiedSeries, error) {
	args := m.Called(ctx, entries, params)
	return args.Get(0).(models.UnifiedSeries), args.Error(1)
}

var _ backend.Backend = (*Backend)(nil)
