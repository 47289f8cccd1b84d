package unify

import (
	"time"

	"github.com/tejusbharadwaj/mbdata/internal/models"
)

// RequestBuilder is a provider-side unified series request under
// construction. Setters are only called for fields that were set.
type RequestBuilder interface {
	AddSeries(name string) SeriesBuilder
	SetFrequency(f models.SeriesFrequency)
	SetWeekdays(w models.SeriesWeekdays)
	SetCalendarMergeMode(m models.CalendarMergeMode)
	SetCurrency(currency string)
	SetStartPoint(p models.StartOrEndPoint)
	SetEndPoint(p models.StartOrEndPoint)
}

// SeriesBuilder is one series expression inside a RequestBuilder.
type SeriesBuilder interface {
	SetVintage(t time.Time)
	SetMissingValueMethod(m models.SeriesMissingValueMethod)
	SetToLowerFrequencyMethod(m models.SeriesToLowerFrequencyMethod)
	SetToHigherFrequencyMethod(m models.SeriesToHigherFrequencyMethod)
	SetPartialPeriodsMethod(m models.SeriesPartialPeriodsMethod)
}

// Apply registers every entry of req on b and forwards the fields that
// were explicitly set. Unset fields are never touched, so the provider
// default stays in effect.
func Apply(req Request, b RequestBuilder) {
	for _, e := range req.Entries {
		sb := b.AddSeries(e.Name)
		if e.Vintage != nil {
			sb.SetVintage(*e.Vintage)
		}
		if e.MissingValueMethod != "" {
			sb.SetMissingValueMethod(e.MissingValueMethod)
		}
		if e.ToLowerFrequencyMethod != "" {
			sb.SetToLowerFrequencyMethod(e.ToLowerFrequencyMethod)
		}
		if e.ToHigherFrequencyMethod != "" {
			sb.SetToHigherFrequencyMethod(e.ToHigherFrequencyMethod)
		}
		if e.PartialPeriodsMethod != "" {
			sb.SetPartialPeriodsMethod(e.PartialPeriodsMethod)
		}
	}

	p := req.Params
	if p.Frequency != "" {
		b.SetFrequency(p.Frequency)
	}
	if p.Weekdays != 0 {
		b.SetWeekdays(p.Weekdays)
	}
	if p.CalendarMergeMode != "" {
		b.SetCalendarMergeMode(p.CalendarMergeMode)
	}
	if p.Currency != "" {
		b.SetCurrency(p.Currency)
	}
	if p.StartPoint != nil {
		b.SetStartPoint(*p.StartPoint)
	}
	if p.EndPoint != nil {
		b.SetEndPoint(*p.EndPoint)
	}
}
