package models

import "time"

// Observation is a single archived data point of a named series.
// Value is NaN when the provider reported no value.
type Observation struct {
	Series string    `json:"series"`
	Time   time.Time `json:"time"`
	Value  float64   `json:"value"`
}

// Observations flattens a loaded series into archive rows.
func Observations(s Series) []Observation {
	if s.IsError() {
		return nil
	}
	out := make([]Observation, len(s.dates))
	for i, d := range s.dates {
		out[i] = Observation{Series: s.name, Time: d, Value: s.values[i]}
	}
	return out
}
