package web

import (
	"fmt"
	"time"

	"github.com/tejusbharadwaj/mbdata/internal/models"
)

const dateLayout = "2006-01-02T15:04:05"

var dateLayouts = []string{time.RFC3339, dateLayout, "2006-01-02"}

type entityResponse struct {
	ErrorText string         `json:"errorText,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

type seriesResponse struct {
	entityResponse
	Values []*float64 `json:"values,omitempty"`
	Dates  []string   `json:"dates,omitempty"`
}

type unifiedSeriesResponse struct {
	Dates  []string         `json:"dates"`
	Series []seriesResponse `json:"series"`
}

type pointDTO struct {
	Mode string `json:"mode"`
	Time string `json:"time,omitempty"`
}

type seriesEntryDTO struct {
	Name                    string `json:"name"`
	Vintage                 string `json:"vintage,omitempty"`
	MissingValueMethod      string `json:"missingValueMethod,omitempty"`
	ToLowerFrequencyMethod  string `json:"toLowerFrequencyMethod,omitempty"`
	ToHigherFrequencyMethod string `json:"toHigherFrequencyMethod,omitempty"`
	PartialPeriodsMethod    string `json:"partialPeriodsMethod,omitempty"`
}

type unifiedSeriesRequest struct {
	Frequency         string            `json:"frequency,omitempty"`
	Weekdays          int               `json:"weekdays,omitempty"`
	CalendarMergeMode string            `json:"calendarMergeMode,omitempty"`
	Currency          string            `json:"currency,omitempty"`
	StartPoint        *pointDTO         `json:"startPoint,omitempty"`
	EndPoint          *pointDTO         `json:"endPoint,omitempty"`
	SeriesEntries     []*seriesEntryDTO `json:"seriesEntries"`
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

func parseDates(raw []string) ([]time.Time, error) {
	out := make([]time.Time, len(raw))
	for i, s := range raw {
		t, err := parseDate(s)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

func toEntity(name string, r entityResponse) models.Entity {
	if r.ErrorText != "" {
		return models.NewErrorEntity(name, r.ErrorText)
	}
	md := models.NewMetadata(r.Metadata)
	return models.NewEntity(name, md.Text("PrimName"), md.Text("FullDescription"), md)
}

func toSeries(name string, r seriesResponse) (models.Series, error) {
	if r.ErrorText != "" {
		return models.NewErrorSeries(name, r.ErrorText), nil
	}
	dates, err := parseDates(r.Dates)
	if err != nil {
		return models.Series{}, fmt.Errorf("%w: series %s: %v", ErrDecode, name, err)
	}
	values := make([]float64, len(r.Values))
	for i, v := range r.Values {
		if v == nil {
			values[i] = models.Missing()
			continue
		}
		values[i] = *v
	}
	s, err := models.NewSeries(toEntity(name, r.entityResponse), dates, values)
	if err != nil {
		return models.Series{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return s, nil
}
