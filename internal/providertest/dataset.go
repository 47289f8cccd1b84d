// Package providertest serves a small fixed dataset through fake provider
// endpoints so that both backends can be exercised without a live
// provider. It is imported by tests only.
package providertest

import (
	"math"
	"sort"
	"sync"
	"time"
)

// Error texts reported by the fake providers for unknown names.
const (
	NotFound        = "Not found"
	UnifiedNotFound = "noseries! : Not found"
)

// Record is one series known to a Dataset.
type Record struct {
	PrimaryName string
	Title       string
	Metadata    map[string]any
	Dates       []time.Time
	Values      []float64
}

// Dataset is a set of records keyed by every name they answer to.
type Dataset struct {
	mu      sync.RWMutex
	records map[string]Record
}

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

// NewDataset returns the default dataset: usgdp and uscpi, reachable
// through their primary names as well.
func NewDataset() *Dataset {
	d := &Dataset{records: make(map[string]Record)}
	d.Add([]string{"usgdp", "usnaac0169"}, Record{
		PrimaryName: "usnaac0169",
		Title:       "United States, Gross Domestic Product, Total, Current Prices, SA, USD",
		Metadata: map[string]any{
			"EntityType": "TimeSeries",
			"Class":      "stock",
			"Frequency":  "quarterly",
			"Currency":   "usd",
			"DayMask":    31,
			"Region":     []any{"us"},
		},
		Dates:  []time.Time{day(2020, 1, 1), day(2020, 4, 1), day(2020, 7, 1), day(2020, 10, 1), day(2021, 1, 1)},
		Values: []float64{21561.1, 19520.1, 21170.3, 21494.7, 22038.2},
	})
	d.Add([]string{"uscpi", "uspric2156"}, Record{
		PrimaryName: "uspric2156",
		Title:       "United States, Consumer Price Index, All Urban Consumers, All Items, SA",
		Metadata: map[string]any{
			"EntityType": "TimeSeries",
			"Class":      "stock",
			"Frequency":  "monthly",
			"DayMask":    31,
			"Region":     []any{"us", "na"},
		},
		Dates:  []time.Time{day(2020, 10, 1), day(2020, 11, 1), day(2020, 12, 1), day(2021, 1, 1)},
		Values: []float64{260.3, math.NaN(), 261.6, 262.2},
	})
	return d
}

// Add registers r under every name in names.
func (d *Dataset) Add(names []string, r Record) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, n := range names {
		d.records[n] = r
	}
}

// Lookup returns the record for name.
func (d *Dataset) Lookup(name string) (Record, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	r, ok := d.records[name]
	return r, ok
}

// Unified is the fake provider's answer to a unified request.
type Unified struct {
	Dates  []time.Time
	Found  []bool
	Values [][]float64
}

// Unify aligns the named series on the union of their dates, optionally
// cut to [start, end]. Gaps are NaN.
func (d *Dataset) Unify(names []string, start, end *time.Time) Unified {
	out := Unified{Found: make([]bool, len(names)), Values: make([][]float64, len(names))}
	records := make([]Record, len(names))
	seen := map[time.Time]bool{}
	for i, n := range names {
		r, ok := d.Lookup(n)
		if !ok {
			continue
		}
		out.Found[i] = true
		records[i] = r
		for _, t := range r.Dates {
			if (start != nil && t.Before(*start)) || (end != nil && t.After(*end)) {
				continue
			}
			if !seen[t] {
				seen[t] = true
				out.Dates = append(out.Dates, t)
			}
		}
	}
	sort.Slice(out.Dates, func(i, j int) bool { return out.Dates[i].Before(out.Dates[j]) })

	for i := range names {
		if !out.Found[i] {
			continue
		}
		byDate := make(map[time.Time]float64, len(records[i].Dates))
		for k, t := range records[i].Dates {
			byDate[t] = records[i].Values[k]
		}
		row := make([]float64, len(out.Dates))
		for k, t := range out.Dates {
			v, ok := byDate[t]
			if !ok {
				v = math.NaN()
			}
			row[k] = v
		}
		out.Values[i] = row
	}
	return out
}
