package models

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

var (
	// ErrDateNotFound is returned by point lookups for a date that is not on
	// the series' time axis.
	ErrDateNotFound = errors.New("date not found in series")
	// ErrMalformedSeries means dates and values do not describe a valid axis.
	ErrMalformedSeries = errors.New("malformed series")
)

// Missing returns the sentinel used for absent observations.
func Missing() float64 { return math.NaN() }

// IsMissing reports whether v is the missing-value sentinel.
func IsMissing(v float64) bool { return math.IsNaN(v) }

// Series is an Entity with a time axis and aligned values.
type Series struct {
	Entity
	dates  []time.Time
	values []float64
}

// NewSeries creates a loaded series. Dates must be strictly ascending and
// as many as values.
func NewSeries(entity Entity, dates []time.Time, values []float64) (Series, error) {
	if entity.IsError() {
		return Series{}, fmt.Errorf("%w: %s: entity is an error", ErrMalformedSeries, entity.Name())
	}
	if len(dates) != len(values) {
		return Series{}, fmt.Errorf("%w: %s: %d dates, %d values",
			ErrMalformedSeries, entity.Name(), len(dates), len(values))
	}
	for i := 1; i < len(dates); i++ {
		if !dates[i].After(dates[i-1]) {
			return Series{}, fmt.Errorf("%w: %s: dates not ascending at index %d",
				ErrMalformedSeries, entity.Name(), i)
		}
	}
	s := Series{
		Entity: entity,
		dates:  make([]time.Time, len(dates)),
		values: make([]float64, len(values)),
	}
	copy(s.dates, dates)
	copy(s.values, values)
	return s, nil
}

// NewErrorSeries creates a series that failed to load. It has no
// observations.
func NewErrorSeries(name, message string) Series {
	return Series{
		Entity: NewErrorEntity(name, message),
		dates:  []time.Time{},
		values: []float64{},
	}
}

// Dates returns a copy of the time axis.
func (s Series) Dates() []time.Time {
	out := make([]time.Time, len(s.dates))
	copy(out, s.dates)
	return out
}

// Values returns a copy of the observations. Missing entries are NaN.
func (s Series) Values() []float64 {
	out := make([]float64, len(s.values))
	copy(out, s.values)
	return out
}

func (s Series) Len() int { return len(s.values) }

// StartDate is the first date, or the zero time for an empty series.
func (s Series) StartDate() time.Time {
	if len(s.dates) == 0 {
		return time.Time{}
	}
	return s.dates[0]
}

// EndDate is the last date, or the zero time for an empty series.
func (s Series) EndDate() time.Time {
	if len(s.dates) == 0 {
		return time.Time{}
	}
	return s.dates[len(s.dates)-1]
}

// Frequency is taken from the Frequency attribute. It is empty when the
// series is an error or the attribute is unknown.
func (s Series) Frequency() SeriesFrequency {
	if s.IsError() {
		return ""
	}
	raw := s.metadata.Text("Frequency")
	for _, f := range []SeriesFrequency{
		FrequencyAnnual, FrequencySemiAnnual, FrequencyQuarterly, FrequencyMonthly,
		FrequencyWeekly, FrequencyDaily, FrequencyBiMonthly,
	} {
		if strings.EqualFold(raw, string(f)) {
			return f
		}
	}
	return ""
}

// Weekdays is taken from the DayMask attribute, zero if absent.
func (s Series) Weekdays() SeriesWeekdays {
	if s.IsError() {
		return 0
	}
	v, ok := s.metadata.FirstValue("DayMask")
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case int:
		return SeriesWeekdays(n)
	case int32:
		return SeriesWeekdays(n)
	case int64:
		return SeriesWeekdays(n)
	case float64:
		return SeriesWeekdays(n)
	}
	return 0
}

// IndexAtDate returns the position of t on the time axis.
func (s Series) IndexAtDate(t time.Time) (int, error) {
	i := sort.Search(len(s.dates), func(i int) bool { return !s.dates[i].Before(t) })
	if i == len(s.dates) || !s.dates[i].Equal(t) {
		return -1, fmt.Errorf("%w: %s at %s", ErrDateNotFound, s.name, t.Format(time.RFC3339))
	}
	return i, nil
}

// ValueAtDate returns the observation at t, which may be missing.
func (s Series) ValueAtDate(t time.Time) (float64, error) {
	i, err := s.IndexAtDate(t)
	if err != nil {
		return 0, err
	}
	return s.values[i], nil
}

// UnifiedSeries is a set of series aligned on one shared date axis.
type UnifiedSeries struct {
	dates  []time.Time
	series []Series
}

// NewUnifiedSeries checks that every loaded series has one value per date
// and that error series carry no values.
func NewUnifiedSeries(dates []time.Time, series []Series) (UnifiedSeries, error) {
	for i, s := range series {
		if s.IsError() {
			if s.Len() != 0 {
				return UnifiedSeries{}, fmt.Errorf("%w: error series %d (%s) has values",
					ErrMalformedSeries, i, s.Name())
			}
			continue
		}
		if s.Len() != len(dates) {
			return UnifiedSeries{}, fmt.Errorf("%w: series %d (%s) has %d values for %d dates",
				ErrMalformedSeries, i, s.Name(), s.Len(), len(dates))
		}
	}
	u := UnifiedSeries{
		dates:  make([]time.Time, len(dates)),
		series: make([]Series, len(series)),
	}
	copy(u.dates, dates)
	copy(u.series, series)
	return u, nil
}

// Dates returns a copy of the shared axis.
func (u UnifiedSeries) Dates() []time.Time {
	out := make([]time.Time, len(u.dates))
	copy(out, u.dates)
	return out
}

// Series returns the series in request order.
func (u UnifiedSeries) Series() []Series {
	out := make([]Series, len(u.series))
	copy(out, u.series)
	return out
}

func (u UnifiedSeries) Len() int { return len(u.series) }

// At returns the i-th series.
func (u UnifiedSeries) At(i int) Series { return u.series[i] }

func (u UnifiedSeries) String() string {
	return fmt.Sprintf("UnifiedSeries of %d series", len(u.series))
}
