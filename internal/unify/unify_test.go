package unify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tejusbharadwaj/mbdata/internal/models"
)

type stubSubmitter struct {
	calls int
	got   Request
	resp  Response
	err   error
}

func (s *stubSubmitter) SubmitUnified(_ context.Context, req Request) (Response, error) {
	s.calls++
	s.got = req
	return s.resp, s.err
}

// recorder is a RequestBuilder that records every setter call.
type recorder struct {
	calls  []string
	series map[string]*seriesRecorder
}

type seriesRecorder struct {
	calls []string
}

func (r *recorder) AddSeries(name string) SeriesBuilder {
	if r.series == nil {
		r.series = map[string]*seriesRecorder{}
	}
	r.calls = append(r.calls, "AddSeries:"+name)
	sr := &seriesRecorder{}
	r.series[name] = sr
	return sr
}

func (r *recorder) SetFrequency(f models.SeriesFrequency) {
	r.calls = append(r.calls, "Frequency:"+string(f))
}
func (r *recorder) SetWeekdays(models.SeriesWeekdays) { r.calls = append(r.calls, "Weekdays") }
func (r *recorder) SetCalendarMergeMode(m models.CalendarMergeMode) {
	r.calls = append(r.calls, "CalendarMergeMode:"+string(m))
}
func (r *recorder) SetCurrency(c string) { r.calls = append(r.calls, "Currency:"+c) }
func (r *recorder) SetStartPoint(p models.StartOrEndPoint) {
	r.calls = append(r.calls, "StartPoint:"+string(p.Mode))
}
func (r *recorder) SetEndPoint(p models.StartOrEndPoint) {
	r.calls = append(r.calls, "EndPoint:"+string(p.Mode))
}

func (s *seriesRecorder) SetVintage(time.Time) { s.calls = append(s.calls, "Vintage") }
func (s *seriesRecorder) SetMissingValueMethod(m models.SeriesMissingValueMethod) {
	s.calls = append(s.calls, "MissingValueMethod:"+string(m))
}
func (s *seriesRecorder) SetToLowerFrequencyMethod(m models.SeriesToLowerFrequencyMethod) {
	s.calls = append(s.calls, "ToLowerFrequencyMethod:"+string(m))
}
func (s *seriesRecorder) SetToHigherFrequencyMethod(m models.SeriesToHigherFrequencyMethod) {
	s.calls = append(s.calls, "ToHigherFrequencyMethod:"+string(m))
}
func (s *seriesRecorder) SetPartialPeriodsMethod(m models.SeriesPartialPeriodsMethod) {
	s.calls = append(s.calls, "PartialPeriodsMethod:"+string(m))
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func loaded(t *testing.T, name string, dates []time.Time, values ...float64) models.Series {
	t.Helper()
	s, err := models.NewSeries(models.NewEntity(name, name, name, nil), dates, values)
	require.NoError(t, err)
	return s
}

func TestRunNoEntries(t *testing.T) {
	sub := &stubSubmitter{}
	u, err := Run(context.Background(), sub, nil, models.UnifyParams{Frequency: models.FrequencyAnnual})
	require.NoError(t, err)
	assert.Empty(t, u.Dates())
	assert.Empty(t, u.Series())
	assert.Equal(t, 0, sub.calls, "no round trip for an empty request")
}

func TestRunSingleRoundTrip(t *testing.T) {
	dates := []time.Time{day(2000, 1, 1), day(2001, 1, 1)}
	sub := &stubSubmitter{resp: Response{
		Dates: dates,
		Series: []models.Series{
			loaded(t, "usgdp", dates, 1, 2),
			models.NewErrorSeries("noseries!", "noseries! : Not found"),
			loaded(t, "uscpi", dates, 3, models.Missing()),
		},
	}}

	entries := []models.SeriesEntry{
		models.Entry("usgdp"),
		{Name: "noseries!", MissingValueMethod: models.MissingValuePreviousValue},
		models.Entry("uscpi"),
	}
	u, err := Run(context.Background(), sub, entries, models.UnifyParams{})
	require.NoError(t, err)

	assert.Equal(t, 1, sub.calls)
	assert.Equal(t, entries, sub.got.Entries)
	assert.Equal(t, dates, u.Dates())
	require.Equal(t, 3, u.Len())
	assert.Equal(t, "usgdp", u.At(0).Name())
	assert.True(t, u.At(1).IsError())
	assert.Empty(t, u.At(1).Values())
	assert.Equal(t, "uscpi", u.At(2).Name())
	assert.Len(t, u.At(2).Values(), len(dates))
}

func TestRunOnlyErrorsKeepsAxisEmpty(t *testing.T) {
	sub := &stubSubmitter{resp: Response{
		Dates:  []time.Time{day(2000, 1, 1)},
		Series: []models.Series{models.NewErrorSeries("noseries!", "noseries! : Not found")},
	}}
	u, err := Run(context.Background(), sub, models.Entries("noseries!"), models.UnifyParams{})
	require.NoError(t, err)
	assert.Empty(t, u.Dates())
	assert.True(t, u.At(0).IsError())
	assert.Equal(t, "noseries! : Not found", u.At(0).ErrorMessage())
}

func TestRunTransportError(t *testing.T) {
	boom := errors.New("connection reset")
	sub := &stubSubmitter{err: boom}
	_, err := Run(context.Background(), sub, models.Entries("usgdp"), models.UnifyParams{})
	assert.ErrorIs(t, err, boom)
}

func TestRunMalformedResponse(t *testing.T) {
	dates := []time.Time{day(2000, 1, 1), day(2001, 1, 1)}

	tests := []struct {
		name string
		resp Response
	}{
		{
			name: "missing series",
			resp: Response{Dates: dates, Series: []models.Series{loaded(t, "usgdp", dates, 1, 2)}},
		},
		{
			name: "values not aligned",
			resp: Response{Dates: dates, Series: []models.Series{
				loaded(t, "usgdp", dates, 1, 2),
				loaded(t, "uscpi", dates[:1], 1),
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := &stubSubmitter{resp: tt.resp}
			_, err := Run(context.Background(), sub, models.Entries("usgdp", "uscpi"), models.UnifyParams{})
			assert.ErrorIs(t, err, ErrMalformedResponse)
		})
	}
}

func TestNewRequestValidation(t *testing.T) {
	tests := []struct {
		name    string
		entries []models.SeriesEntry
		params  models.UnifyParams
	}{
		{
			name:    "empty name",
			entries: []models.SeriesEntry{{Name: ""}},
		},
		{
			name:    "unknown missing value method",
			entries: []models.SeriesEntry{{Name: "usgdp", MissingValueMethod: "Guess"}},
		},
		{
			name:    "unknown frequency",
			entries: models.Entries("usgdp"),
			params:  models.UnifyParams{Frequency: "Hourly"},
		},
		{
			name:    "weekdays out of range",
			entries: models.Entries("usgdp"),
			params:  models.UnifyParams{Weekdays: 200},
		},
		{
			name:    "point in time without date",
			entries: models.Entries("usgdp"),
			params:  models.UnifyParams{StartPoint: &models.StartOrEndPoint{Mode: models.DatePointInTime}},
		},
		{
			name:    "unknown point mode",
			entries: models.Entries("usgdp"),
			params:  models.UnifyParams{EndPoint: &models.StartOrEndPoint{Mode: "Whenever"}},
		},
		{
			name:    "start after end",
			entries: models.Entries("usgdp"),
			params: models.UnifyParams{
				StartPoint: models.Date(2001, 1, 1),
				EndPoint:   models.Date(2000, 1, 1),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRequest(tt.entries, tt.params)
			assert.ErrorIs(t, err, ErrInvalidRequest)
		})
	}
}

func TestNewRequestReportsStartPointFirst(t *testing.T) {
	params := models.UnifyParams{
		StartPoint: &models.StartOrEndPoint{Mode: models.DatePointInTime},
		EndPoint:   &models.StartOrEndPoint{Mode: models.DatePointInTime},
	}
	for i := 0; i < 20; i++ {
		_, err := NewRequest(models.Entries("usgdp"), params)
		require.ErrorIs(t, err, ErrInvalidRequest)
		assert.Contains(t, err.Error(), "start point")
	}
}

func TestApplyForwardsOnlySetFields(t *testing.T) {
	vintage := day(2010, 1, 1)
	req, err := NewRequest([]models.SeriesEntry{
		{Name: "a", MissingValueMethod: models.MissingValuePreviousValue},
		models.Entry("b"),
		{
			Name:                    "c",
			Vintage:                 &vintage,
			ToLowerFrequencyMethod:  models.ToLowerAverage,
			ToHigherFrequencyMethod: models.ToHigherLinearInterpolation,
			PartialPeriodsMethod:    models.PartialPeriodsRepeatLast,
		},
	}, models.UnifyParams{
		Frequency:  models.FrequencyAnnual,
		Currency:   "USD",
		StartPoint: models.DataInAllSeries(),
	})
	require.NoError(t, err)

	rec := &recorder{}
	Apply(req, rec)

	assert.Equal(t, []string{
		"AddSeries:a", "AddSeries:b", "AddSeries:c",
		"Frequency:Annual", "Currency:USD", "StartPoint:DataInAllSeries",
	}, rec.calls)
	assert.Equal(t, []string{"MissingValueMethod:PreviousValue"}, rec.series["a"].calls)
	assert.Empty(t, rec.series["b"].calls)
	assert.Equal(t, []string{
		"Vintage",
		"ToLowerFrequencyMethod:Average",
		"ToHigherFrequencyMethod:LinearInterpolation",
		"PartialPeriodsMethod:RepeatLast",
	}, rec.series["c"].calls)
}

func TestApplyIndependentParams(t *testing.T) {
	req, err := NewRequest(models.Entries("a"), models.UnifyParams{Weekdays: models.MondayToFriday})
	require.NoError(t, err)

	rec := &recorder{}
	Apply(req, rec)
	assert.Equal(t, []string{"AddSeries:a", "Weekdays"}, rec.calls)
}
