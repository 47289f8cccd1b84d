package com

import "time"

// The interfaces below mirror the desktop application's object model.
// A binding to the real automation server implements them; this package
// only consumes them.

// Database is the application's database object.
type Database interface {
	FetchOneEntity(name string) (Entity, error)
	FetchEntities(names []string) ([]Entity, error)
	FetchOneSeries(name string) (Series, error)
	FetchSeries(names []string) ([]Series, error)
	CreateUnifiedSeriesRequest() UnifiedSeriesRequest
	FetchUnifiedSeries(req UnifiedSeriesRequest) ([]Series, error)
}

// Metadata is the native metadata collection of an entity.
type Metadata interface {
	GetFirstValue(name string) (any, bool)
	GetValues(name string) []any
	ListNames() []string
}

// Entity is a native entity object.
type Entity interface {
	Name() string
	PrimaryName() string
	Title() string
	IsError() bool
	ErrorMessage() string
	Metadata() Metadata
}

// Series is a native series object. Missing values are NaN.
type Series interface {
	Entity
	Values() []float64
	DatesAtStartOfPeriod() []time.Time
}

// UnifiedSeriesRequest is the native request object. Enumerations are
// passed as the application's integer codes, dates as yyyy-mm-dd text.
type UnifiedSeriesRequest interface {
	AddSeries(name string) SeriesExpression
	SetFrequency(code int)
	SetWeekdays(mask int)
	SetCalendarMergeMode(code int)
	SetCurrency(currency string)
	SetStartDate(date string)
	SetStartDateMode(code int)
	SetEndDate(date string)
	SetEndDateMode(code int)
}

// SeriesExpression is one series inside a UnifiedSeriesRequest.
type SeriesExpression interface {
	SetVintage(t time.Time)
	SetMissingValueMethod(code int)
	SetToLowerFrequencyMethod(code int)
	SetToHigherFrequencyMethod(code int)
	SetPartialPeriodsMethod(code int)
}
