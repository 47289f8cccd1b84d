package models

import "time"

// SeriesEntry describes one series in a unified series request.
// Zero-valued method fields are left to the provider default.
type SeriesEntry struct {
	Name    string     `json:"name" validate:"required"`
	Vintage *time.Time `json:"vintage,omitempty"`

	MissingValueMethod      SeriesMissingValueMethod      `json:"missingValueMethod,omitempty" validate:"omitempty,oneof=None Auto PreviousValue Zero LinearInterpolation"`
	ToLowerFrequencyMethod  SeriesToLowerFrequencyMethod  `json:"toLowerFrequencyMethod,omitempty" validate:"omitempty,oneof=Auto Last First Flow PercentageChange Highest Lowest Average ConditionalPercentageChange"`
	ToHigherFrequencyMethod SeriesToHigherFrequencyMethod `json:"toHigherFrequencyMethod,omitempty" validate:"omitempty,oneof=Auto Same Distribute PercentageChange LinearInterpolation Pulse Quadratic Cubic"`
	PartialPeriodsMethod    SeriesPartialPeriodsMethod    `json:"partialPeriodsMethod,omitempty" validate:"omitempty,oneof=None Auto RepeatLast Zero"`
}

// Entry returns a SeriesEntry with every policy left to the provider.
func Entry(name string) SeriesEntry {
	return SeriesEntry{Name: name}
}

// Entries turns plain names into bare entries.
func Entries(names ...string) []SeriesEntry {
	out := make([]SeriesEntry, len(names))
	for i, n := range names {
		out[i] = Entry(n)
	}
	return out
}

// StartOrEndPoint bounds a unified series request. Time is only meaningful
// when Mode is DatePointInTime.
type StartOrEndPoint struct {
	Time time.Time        `json:"time,omitempty"`
	Mode CalendarDateMode `json:"mode" validate:"required,oneof=PointInTime DataInAllSeries DataInAnySeries"`
}

// PointInTime bounds the request at an explicit date.
func PointInTime(t time.Time) *StartOrEndPoint {
	return &StartOrEndPoint{Time: t, Mode: DatePointInTime}
}

// Date is a shorthand for PointInTime at midnight UTC.
func Date(year int, month time.Month, day int) *StartOrEndPoint {
	return PointInTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DataInAllSeries bounds the request where every series has data.
func DataInAllSeries() *StartOrEndPoint {
	return &StartOrEndPoint{Mode: DateDataInAllSeries}
}

// DataInAnySeries bounds the request where at least one series has data.
func DataInAnySeries() *StartOrEndPoint {
	return &StartOrEndPoint{Mode: DateDataInAnySeries}
}

// UnifyParams are the global parameters of a unified series request.
// Zero fields and nil points are not forwarded.
type UnifyParams struct {
	Frequency         SeriesFrequency   `json:"frequency,omitempty" validate:"omitempty,oneof=Highest Annual SemiAnnual Quarterly Monthly Weekly Daily Lowest QuarterlyOrMonthly MonthlyOrWeekly First Last BiMonthly"`
	Weekdays          SeriesWeekdays    `json:"weekdays,omitempty" validate:"omitempty,min=1,max=127"`
	CalendarMergeMode CalendarMergeMode `json:"calendarMergeMode,omitempty" validate:"omitempty,oneof=FullCalendar AvailableInAll AvailableInAny FirstSeries"`
	Currency          string            `json:"currency,omitempty" validate:"omitempty,len=3"`
	StartPoint        *StartOrEndPoint  `json:"startPoint,omitempty"`
	EndPoint          *StartOrEndPoint  `json:"endPoint,omitempty"`
}
