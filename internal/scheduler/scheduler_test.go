package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tejusbharadwaj/mbdata/internal/api"
	"github.com/tejusbharadwaj/mbdata/internal/models"
)

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) GetSeries(ctx context.Context, names []string, opts ...api.Option) ([]models.Series, error) {
	args := m.Called(ctx, names)
	series, _ := args.Get(0).([]models.Series)
	return series, args.Error(1)
}

type mockArchive struct {
	mock.Mock
}

func (m *mockArchive) StoreSeries(ctx context.Context, s models.Series) (int, error) {
	args := m.Called(ctx, s.Name())
	return args.Int(0), args.Error(1)
}

func series(t *testing.T, name string) models.Series {
	t.Helper()
	s, err := models.NewSeries(
		models.NewEntity(name, name, name, models.NewMetadata(nil)),
		[]time.Time{time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)},
		[]float64{1},
	)
	require.NoError(t, err)
	return s
}

func TestRefresh(t *testing.T) {
	fetcher := new(mockFetcher)
	archive := new(mockArchive)
	logger, hook := test.NewNullLogger()

	fetcher.On("GetSeries", mock.Anything, []string{"usgdp", "noseries!", "uscpi"}).Return([]models.Series{
		series(t, "usgdp"),
		models.NewErrorSeries("noseries!", "Not found"),
		series(t, "uscpi"),
	}, nil)
	archive.On("StoreSeries", mock.Anything, "usgdp").Return(5, nil)
	archive.On("StoreSeries", mock.Anything, "uscpi").Return(0, errors.New("connection refused"))

	s := NewScheduler(context.Background(), Config{Series: []string{"usgdp", "noseries!", "uscpi"}}, fetcher, archive, logger)
	res := s.Refresh()

	assert.Equal(t, RefreshResult{Stored: 1, Rows: 5, Failed: 2}, res)
	fetcher.AssertExpectations(t)
	archive.AssertExpectations(t)

	last := hook.LastEntry()
	require.NotNil(t, last)
	assert.Equal(t, "Refresh completed", last.Message)
	assert.Equal(t, logrus.InfoLevel, last.Level)
}

func TestRefreshFetchFailure(t *testing.T) {
	fetcher := new(mockFetcher)
	archive := new(mockArchive)
	logger, hook := test.NewNullLogger()

	fetcher.On("GetSeries", mock.Anything, mock.Anything).Return(nil, errors.New("backend down"))

	s := NewScheduler(context.Background(), Config{Series: []string{"usgdp", "uscpi"}}, fetcher, archive, logger)
	res := s.Refresh()

	assert.Equal(t, RefreshResult{Failed: 2}, res)
	archive.AssertNotCalled(t, "StoreSeries", mock.Anything, mock.Anything)
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestRefreshNothingConfigured(t *testing.T) {
	fetcher := new(mockFetcher)
	s := NewScheduler(context.Background(), Config{}, fetcher, new(mockArchive), nil)

	assert.Equal(t, RefreshResult{}, s.Refresh())
	fetcher.AssertNotCalled(t, "GetSeries", mock.Anything, mock.Anything)
}

func TestDefaults(t *testing.T) {
	s := NewScheduler(context.Background(), Config{}, nil, nil, nil)
	assert.Equal(t, DefaultSpec, s.config.Spec)
	assert.Equal(t, DefaultTimeout, s.config.Timeout)
}

func TestStartRejectsBadSpec(t *testing.T) {
	s := NewScheduler(context.Background(), Config{Spec: "every now and then"}, nil, nil, nil)
	assert.Error(t, s.Start())

	s = NewScheduler(context.Background(), Config{}, nil, nil, nil)
	require.NoError(t, s.Start())
	s.Stop()
}
