package server

import (
	"time"

	"github.com/tejusbharadwaj/mbdata/internal/models"
)

// EntitiesRequest asks for entities or series by name. An empty list
// yields an empty response. RaiseError defaults to true.
type EntitiesRequest struct {
	Names      []string `json:"names" validate:"max=1000,dive,required"`
	RaiseError *bool    `json:"raiseError,omitempty"`
}

// SeriesRequest has the same shape as EntitiesRequest.
type SeriesRequest = EntitiesRequest

// UnifiedSeriesRequest asks for series aligned on one date axis.
type UnifiedSeriesRequest struct {
	Entries    []models.SeriesEntry `json:"entries" validate:"max=1000,dive"`
	Params     models.UnifyParams   `json:"params"`
	RaiseError *bool                `json:"raiseError,omitempty"`
}

func raise(flag *bool) bool { return flag == nil || *flag }

type EntityMessage struct {
	Name         string         `json:"name"`
	PrimaryName  string         `json:"primaryName,omitempty"`
	Title        string         `json:"title,omitempty"`
	IsError      bool           `json:"isError,omitempty"`
	ErrorMessage string         `json:"errorMessage,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

// SeriesMessage carries missing values as null.
type SeriesMessage struct {
	EntityMessage
	Dates  []time.Time `json:"dates,omitempty"`
	Values []*float64  `json:"values,omitempty"`
}

type EntitiesResponse struct {
	Entities []EntityMessage `json:"entities"`
}

type SeriesResponse struct {
	Series []SeriesMessage `json:"series"`
}

type UnifiedSeriesResponse struct {
	Dates  []time.Time     `json:"dates"`
	Series []SeriesMessage `json:"series"`
}

func entityMessage(e models.Entity) EntityMessage {
	if e.IsError() {
		return EntityMessage{Name: e.Name(), IsError: true, ErrorMessage: e.ErrorMessage()}
	}
	return EntityMessage{
		Name:        e.Name(),
		PrimaryName: e.PrimaryName(),
		Title:       e.Title(),
		Metadata:    e.Metadata().ToMap(),
	}
}

func seriesMessage(s models.Series) SeriesMessage {
	m := SeriesMessage{EntityMessage: entityMessage(s.Entity)}
	if s.IsError() {
		return m
	}
	m.Dates = s.Dates()
	values := s.Values()
	m.Values = make([]*float64, len(values))
	for i := range values {
		if models.IsMissing(values[i]) {
			continue
		}
		m.Values[i] = &values[i]
	}
	return m
}

func seriesMessages(series []models.Series) []SeriesMessage {
	out := make([]SeriesMessage, len(series))
	for i, s := range series {
		out[i] = seriesMessage(s)
	}
	return out
}

// ToEntity converts the message back into a models.Entity.
func (m EntityMessage) ToEntity() models.Entity {
	if m.IsError {
		return models.NewErrorEntity(m.Name, m.ErrorMessage)
	}
	return models.NewEntity(m.Name, m.PrimaryName, m.Title, models.NewMetadata(m.Metadata))
}

// ToSeries converts the message back into a models.Series.
func (m SeriesMessage) ToSeries() (models.Series, error) {
	if m.IsError {
		return models.NewErrorSeries(m.Name, m.ErrorMessage), nil
	}
	values := make([]float64, len(m.Values))
	for i, v := range m.Values {
		if v == nil {
			values[i] = models.Missing()
			continue
		}
		values[i] = *v
	}
	return models.NewSeries(m.EntityMessage.ToEntity(), m.Dates, values)
}
