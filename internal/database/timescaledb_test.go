package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"math"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tejusbharadwaj/mbdata/internal/models"
)

func newMockRepo(t *testing.T) (*PostgresRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepoFromDB(db), mock
}

func day(d int) time.Time { return time.Date(2021, 1, d, 0, 0, 0, 0, time.UTC) }

func testSeries(t *testing.T) models.Series {
	t.Helper()
	s, err := models.NewSeries(
		models.NewEntity("usgdp", "usnaac0169", "GDP", nil),
		[]time.Time{day(1), day(2)},
		[]float64{1.5, math.NaN()},
	)
	require.NoError(t, err)
	return s
}

var upsertRe = regexp.QuoteMeta("INSERT INTO series_observations (series_name, time, value)")

func TestStoreSeries(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(upsertRe)
	prep.ExpectExec().WithArgs("usgdp", day(1), 1.5).WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().WithArgs("usgdp", day(2), nil).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	n, err := repo.StoreSeries(context.Background(), testSeries(t))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreSeriesRollsBackOnFailure(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(upsertRe)
	prep.ExpectExec().WithArgs("usgdp", day(1), 1.5).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := repo.StoreSeries(context.Background(), testSeries(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert observation usgdp@2021-01-01T00:00:00Z")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreErrorSeries(t *testing.T) {
	repo, mock := newMockRepo(t)

	_, err := repo.StoreSeries(context.Background(), models.NewErrorSeries("noseries!", "Not found"))
	assert.ErrorIs(t, err, ErrErrorSeries)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryObservations(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"time", "value"}).
		AddRow(day(1), 1.5).
		AddRow(day(2), nil)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT time, value FROM series_observations WHERE series_name = $1 AND time >= $2 AND time <= $3 ORDER BY time")).
		WithArgs("usgdp", day(1), day(31)).
		WillReturnRows(rows)

	obs, err := repo.QueryObservations(context.Background(), "usgdp", day(1), day(31))
	require.NoError(t, err)
	require.Len(t, obs, 2)
	assert.Equal(t, models.Observation{Series: "usgdp", Time: day(1), Value: 1.5}, obs[0])
	assert.True(t, models.IsMissing(obs[1].Value))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryObservationsUnbounded(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT time, value FROM series_observations WHERE series_name = $1 ORDER BY time")).
		WithArgs("uscpi").
		WillReturnRows(sqlmock.NewRows([]string{"time", "value"}))

	obs, err := repo.QueryObservations(context.Background(), "uscpi", time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Empty(t, obs)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS series_observations")).
		WillReturnResult(driver.ResultNoRows)
	require.NoError(t, repo.EnsureSchema(context.Background()))

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE")).WillReturnError(errors.New("permission denied"))
	err := repo.EnsureSchema(context.Background())
	assert.ErrorContains(t, err, "failed to create schema")
	require.NoError(t, mock.ExpectationsWereMet())
}
