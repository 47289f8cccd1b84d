package web

import (
	"time"

	"github.com/tejusbharadwaj/mbdata/internal/models"
	"github.com/tejusbharadwaj/mbdata/internal/unify"
)

var (
	_ unify.RequestBuilder = (*unifiedSeriesRequest)(nil)
	_ unify.SeriesBuilder  = (*seriesEntryDTO)(nil)
)

func (r *unifiedSeriesRequest) AddSeries(name string) unify.SeriesBuilder {
	e := &seriesEntryDTO{Name: name}
	r.SeriesEntries = append(r.SeriesEntries, e)
	return e
}

func (r *unifiedSeriesRequest) SetFrequency(f models.SeriesFrequency) { r.Frequency = string(f) }

func (r *unifiedSeriesRequest) SetWeekdays(w models.SeriesWeekdays) { r.Weekdays = int(w) }

func (r *unifiedSeriesRequest) SetCalendarMergeMode(m models.CalendarMergeMode) {
	r.CalendarMergeMode = string(m)
}

func (r *unifiedSeriesRequest) SetCurrency(c string) { r.Currency = c }

func (r *unifiedSeriesRequest) SetStartPoint(p models.StartOrEndPoint) { r.StartPoint = toPoint(p) }

func (r *unifiedSeriesRequest) SetEndPoint(p models.StartOrEndPoint) { r.EndPoint = toPoint(p) }

func toPoint(p models.StartOrEndPoint) *pointDTO {
	dto := &pointDTO{Mode: string(p.Mode)}
	if p.Mode == models.DatePointInTime {
		dto.Time = p.Time.UTC().Format(dateLayout)
	}
	return dto
}

func (e *seriesEntryDTO) SetVintage(t time.Time) { e.Vintage = t.UTC().Format(dateLayout) }

func (e *seriesEntryDTO) SetMissingValueMethod(m models.SeriesMissingValueMethod) {
	e.MissingValueMethod = string(m)
}

func (e *seriesEntryDTO) SetToLowerFrequencyMethod(m models.SeriesToLowerFrequencyMethod) {
	e.ToLowerFrequencyMethod = string(m)
}

func (e *seriesEntryDTO) SetToHigherFrequencyMethod(m models.SeriesToHigherFrequencyMethod) {
	e.ToHigherFrequencyMethod = string(m)
}

func (e *seriesEntryDTO) SetPartialPeriodsMethod(m models.SeriesPartialPeriodsMethod) {
	e.PartialPeriodsMethod = string(m)
}
