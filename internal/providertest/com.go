package providertest

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/tejusbharadwaj/mbdata/internal/backend/com"
)

// ErrUnknownRequest is returned when FetchUnifiedSeries receives a request
// that this database did not create.
var ErrUnknownRequest = errors.New("unified request not created by this database")

// ComDatabase is an in-memory com.Database backed by a Dataset.
type ComDatabase struct {
	data *Dataset

	mu    sync.Mutex
	calls int
	last  *ComRequest
	// FailWith makes every fetch fail with the given error when set.
	FailWith error
}

// NewComDatabase creates a ComDatabase over data.
func NewComDatabase(data *Dataset) *ComDatabase {
	return &ComDatabase{data: data}
}

// Calls is the number of fetch calls made so far.
func (db *ComDatabase) Calls() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.calls
}

// LastRequest is the last request passed to FetchUnifiedSeries.
func (db *ComDatabase) LastRequest() *ComRequest {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.last
}

func (db *ComDatabase) call() error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.calls++
	return db.FailWith
}

func (db *ComDatabase) FetchOneEntity(name string) (com.Entity, error) {
	if err := db.call(); err != nil {
		return nil, err
	}
	return db.entity(name, NotFound), nil
}

func (db *ComDatabase) FetchEntities(names []string) ([]com.Entity, error) {
	if err := db.call(); err != nil {
		return nil, err
	}
	out := make([]com.Entity, len(names))
	for i, n := range names {
		out[i] = db.entity(n, NotFound)
	}
	return out, nil
}

func (db *ComDatabase) FetchOneSeries(name string) (com.Series, error) {
	if err := db.call(); err != nil {
		return nil, err
	}
	return db.series(name), nil
}

func (db *ComDatabase) FetchSeries(names []string) ([]com.Series, error) {
	if err := db.call(); err != nil {
		return nil, err
	}
	out := make([]com.Series, len(names))
	for i, n := range names {
		out[i] = db.series(n)
	}
	return out, nil
}

func (db *ComDatabase) CreateUnifiedSeriesRequest() com.UnifiedSeriesRequest {
	return &ComRequest{Set: map[string]any{}}
}

func (db *ComDatabase) FetchUnifiedSeries(req com.UnifiedSeriesRequest) ([]com.Series, error) {
	if err := db.call(); err != nil {
		return nil, err
	}
	r, ok := req.(*ComRequest)
	if !ok {
		return nil, ErrUnknownRequest
	}
	db.mu.Lock()
	db.last = r
	db.mu.Unlock()

	names := make([]string, len(r.Series))
	for i, e := range r.Series {
		names[i] = e.Name
	}
	u := db.data.Unify(names, r.date("StartDate"), r.date("EndDate"))

	out := make([]com.Series, len(names))
	for i, n := range names {
		if !u.Found[i] {
			out[i] = &comSeries{comEntity: comEntity{name: n, err: UnifiedNotFound}}
			continue
		}
		rec, _ := db.data.Lookup(n)
		out[i] = &comSeries{comEntity: newComEntity(n, rec), dates: u.Dates, values: u.Values[i]}
	}
	return out, nil
}

func (db *ComDatabase) entity(name, notFound string) com.Entity {
	rec, ok := db.data.Lookup(name)
	if !ok {
		return &comEntity{name: name, err: notFound}
	}
	e := newComEntity(name, rec)
	return &e
}

func (db *ComDatabase) series(name string) com.Series {
	rec, ok := db.data.Lookup(name)
	if !ok {
		return &comSeries{comEntity: comEntity{name: name, err: NotFound}}
	}
	return &comSeries{comEntity: newComEntity(name, rec), dates: rec.Dates, values: rec.Values}
}

type comMetadata map[string][]any

func (m comMetadata) GetFirstValue(name string) (any, bool) {
	v, ok := m[name]
	if !ok || len(v) == 0 {
		return nil, false
	}
	return v[0], true
}

func (m comMetadata) GetValues(name string) []any { return m[name] }

func (m comMetadata) ListNames() []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

type comEntity struct {
	name, primary, title, err string
	md                        comMetadata
}

func newComEntity(name string, r Record) comEntity {
	md := comMetadata{
		"PrimName":        {r.PrimaryName},
		"FullDescription": {r.Title},
	}
	for k, v := range r.Metadata {
		if list, ok := v.([]any); ok {
			md[k] = list
			continue
		}
		md[k] = []any{v}
	}
	return comEntity{name: name, primary: r.PrimaryName, title: r.Title, md: md}
}

func (e *comEntity) Name() string         { return e.name }
func (e *comEntity) PrimaryName() string  { return e.primary }
func (e *comEntity) Title() string        { return e.title }
func (e *comEntity) IsError() bool        { return e.err != "" }
func (e *comEntity) ErrorMessage() string { return e.err }

func (e *comEntity) Metadata() com.Metadata {
	if e.md == nil {
		return nil
	}
	return e.md
}

type comSeries struct {
	comEntity
	dates  []time.Time
	values []float64
}

func (s *comSeries) Values() []float64                { return s.values }
func (s *comSeries) DatesAtStartOfPeriod() []time.Time { return s.dates }

// ComRequest records what was set on a unified request. Set holds the
// native value of every setter called, keyed by setter name without the
// "Set" prefix.
type ComRequest struct {
	Set    map[string]any
	Series []*ComExpression
}

// ComExpression records what was set on one series expression.
type ComExpression struct {
	Name string
	Set  map[string]any
}

func (r *ComRequest) AddSeries(name string) com.SeriesExpression {
	e := &ComExpression{Name: name, Set: map[string]any{}}
	r.Series = append(r.Series, e)
	return e
}

func (r *ComRequest) SetFrequency(code int)         { r.Set["Frequency"] = code }
func (r *ComRequest) SetWeekdays(mask int)          { r.Set["Weekdays"] = mask }
func (r *ComRequest) SetCalendarMergeMode(code int) { r.Set["CalendarMergeMode"] = code }
func (r *ComRequest) SetCurrency(currency string)   { r.Set["Currency"] = currency }
func (r *ComRequest) SetStartDate(date string)      { r.Set["StartDate"] = date }
func (r *ComRequest) SetStartDateMode(code int)     { r.Set["StartDateMode"] = code }
func (r *ComRequest) SetEndDate(date string)        { r.Set["EndDate"] = date }
func (r *ComRequest) SetEndDateMode(code int)       { r.Set["EndDateMode"] = code }

func (r *ComRequest) date(key string) *time.Time {
	s, _ := r.Set[key].(string)
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

func (e *ComExpression) SetVintage(t time.Time)             { e.Set["Vintage"] = t }
func (e *ComExpression) SetMissingValueMethod(code int)      { e.Set["MissingValueMethod"] = code }
func (e *ComExpression) SetToLowerFrequencyMethod(code int)  { e.Set["ToLowerFrequencyMethod"] = code }
func (e *ComExpression) SetToHigherFrequencyMethod(code int) { e.Set["ToHigherFrequencyMethod"] = code }
func (e *ComExpression) SetPartialPeriodsMethod(code int)    { e.Set["PartialPeriodsMethod"] = code }

var _ com.Database = (*ComDatabase)(nil)
