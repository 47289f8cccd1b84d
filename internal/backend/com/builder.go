package com

import (
	"fmt"
	"time"

	"github.com/tejusbharadwaj/mbdata/internal/models"
	"github.com/tejusbharadwaj/mbdata/internal/unify"
)

const nativeDateLayout = "2006-01-02"

// requestBuilder drives a native UnifiedSeriesRequest. The first
// untranslatable value is kept in err.
type requestBuilder struct {
	native UnifiedSeriesRequest
	err    error
}

type expressionBuilder struct {
	native SeriesExpression
	parent *requestBuilder
}

var (
	_ unify.RequestBuilder = (*requestBuilder)(nil)
	_ unify.SeriesBuilder  = (*expressionBuilder)(nil)
)

func (b *requestBuilder) fail(what string, v any) {
	if b.err == nil {
		b.err = fmt.Errorf("%w: no native code for %s %v", unify.ErrInvalidRequest, what, v)
	}
}

func (b *requestBuilder) AddSeries(name string) unify.SeriesBuilder {
	return &expressionBuilder{native: b.native.AddSeries(name), parent: b}
}

func (b *requestBuilder) SetFrequency(f models.SeriesFrequency) {
	c, ok := FrequencyCode(f)
	if !ok {
		b.fail("frequency", f)
		return
	}
	b.native.SetFrequency(c)
}

func (b *requestBuilder) SetWeekdays(w models.SeriesWeekdays) {
	if !w.Valid() {
		b.fail("weekdays", w)
		return
	}
	b.native.SetWeekdays(int(w))
}

func (b *requestBuilder) SetCalendarMergeMode(m models.CalendarMergeMode) {
	c, ok := CalendarMergeModeCode(m)
	if !ok {
		b.fail("calendar merge mode", m)
		return
	}
	b.native.SetCalendarMergeMode(c)
}

func (b *requestBuilder) SetCurrency(currency string) { b.native.SetCurrency(currency) }

func (b *requestBuilder) SetStartPoint(p models.StartOrEndPoint) {
	c, ok := DateModeCode(p.Mode)
	if !ok {
		b.fail("start point mode", p.Mode)
		return
	}
	b.native.SetStartDate(nativeDate(p))
	b.native.SetStartDateMode(c)
}

func (b *requestBuilder) SetEndPoint(p models.StartOrEndPoint) {
	c, ok := DateModeCode(p.Mode)
	if !ok {
		b.fail("end point mode", p.Mode)
		return
	}
	b.native.SetEndDate(nativeDate(p))
	b.native.SetEndDateMode(c)
}

func nativeDate(p models.StartOrEndPoint) string {
	if p.Mode != models.DatePointInTime {
		return ""
	}
	return p.Time.UTC().Format(nativeDateLayout)
}

func (e *expressionBuilder) SetVintage(t time.Time) { e.native.SetVintage(t) }

func (e *expressionBuilder) SetMissingValueMethod(m models.SeriesMissingValueMethod) {
	c, ok := MissingValueCode(m)
	if !ok {
		e.parent.fail("missing value method", m)
		return
	}
	e.native.SetMissingValueMethod(c)
}

func (e *expressionBuilder) SetToLowerFrequencyMethod(m models.SeriesToLowerFrequencyMethod) {
	c, ok := ToLowerFrequencyCode(m)
	if !ok {
		e.parent.fail("to lower frequency method", m)
		return
	}
	e.native.SetToLowerFrequencyMethod(c)
}

func (e *expressionBuilder) SetToHigherFrequencyMethod(m models.SeriesToHigherFrequencyMethod) {
	c, ok := ToHigherFrequencyCode(m)
	if !ok {
		e.parent.fail("to higher frequency method", m)
		return
	}
	e.native.SetToHigherFrequencyMethod(c)
}

func (e *expressionBuilder) SetPartialPeriodsMethod(m models.SeriesPartialPeriodsMethod) {
	c, ok := PartialPeriodsCode(m)
	if !ok {
		e.parent.fail("partial periods method", m)
		return
	}
	e.native.SetPartialPeriodsMethod(c)
}
