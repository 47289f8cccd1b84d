package providertest

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"
)

const wireLayout = "2006-01-02T15:04:05"

// WebServer is a fake provider web API backed by a Dataset.
type WebServer struct {
	*httptest.Server

	data *Dataset

	mu          sync.Mutex
	requests    int
	lastUnified map[string]any
}

// NewWebServer starts a WebServer. Callers must Close it.
func NewWebServer(data *Dataset) *WebServer {
	s := &WebServer{data: data}
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/entities/fetch", s.handleEntities)
	mux.HandleFunc("/v1/series/fetch", s.handleSeries)
	mux.HandleFunc("/v1/series/fetch-unified-series", s.handleUnified)
	s.Server = httptest.NewServer(mux)
	return s
}

// Requests is the number of requests served so far.
func (s *WebServer) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

// LastUnified is the decoded body of the last unified request.
func (s *WebServer) LastUnified() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUnified
}

func (s *WebServer) count() {
	s.mu.Lock()
	s.requests++
	s.mu.Unlock()
}

func (s *WebServer) handleEntities(w http.ResponseWriter, r *http.Request) {
	s.count()
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	names := r.URL.Query()["n"]
	out := make([]map[string]any, len(names))
	for i, n := range names {
		rec, ok := s.data.Lookup(n)
		if !ok {
			out[i] = map[string]any{"errorText": NotFound}
			continue
		}
		out[i] = map[string]any{"metadata": wireMetadata(rec)}
	}
	writeJSON(w, out)
}

func (s *WebServer) handleSeries(w http.ResponseWriter, r *http.Request) {
	s.count()
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	names := r.URL.Query()["n"]
	out := make([]map[string]any, len(names))
	for i, n := range names {
		rec, ok := s.data.Lookup(n)
		if !ok {
			out[i] = map[string]any{"errorText": NotFound}
			continue
		}
		out[i] = map[string]any{
			"metadata": wireMetadata(rec),
			"dates":    wireDates(rec.Dates),
			"values":   wireValues(rec.Values),
		}
	}
	writeJSON(w, out)
}

type wirePoint struct {
	Mode string `json:"mode"`
	Time string `json:"time"`
}

type wireUnifiedRequest struct {
	StartPoint    *wirePoint `json:"startPoint"`
	EndPoint      *wirePoint `json:"endPoint"`
	SeriesEntries []struct {
		Name string `json:"name"`
	} `json:"seriesEntries"`
}

func (s *WebServer) handleUnified(w http.ResponseWriter, r *http.Request) {
	s.count()
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	s.lastUnified = raw
	s.mu.Unlock()

	body, _ := json.Marshal(raw)
	var req wireUnifiedRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	names := make([]string, len(req.SeriesEntries))
	for i, e := range req.SeriesEntries {
		names[i] = e.Name
	}
	u := s.data.Unify(names, pointTime(req.StartPoint), pointTime(req.EndPoint))

	series := make([]map[string]any, len(names))
	for i, n := range names {
		if !u.Found[i] {
			series[i] = map[string]any{"errorText": UnifiedNotFound}
			continue
		}
		rec, _ := s.data.Lookup(n)
		series[i] = map[string]any{
			"metadata": wireMetadata(rec),
			"values":   wireValues(u.Values[i]),
		}
	}
	writeJSON(w, map[string]any{"dates": wireDates(u.Dates), "series": series})
}

func pointTime(p *wirePoint) *time.Time {
	if p == nil || p.Mode != "PointInTime" || p.Time == "" {
		return nil
	}
	t, err := time.Parse(wireLayout, p.Time)
	if err != nil {
		return nil
	}
	return &t
}

func wireMetadata(r Record) map[string]any {
	md := map[string]any{"PrimName": r.PrimaryName, "FullDescription": r.Title}
	for k, v := range r.Metadata {
		md[k] = v
	}
	return md
}

func wireDates(dates []time.Time) []string {
	out := make([]string, len(dates))
	for i, t := range dates {
		out[i] = t.Format(wireLayout)
	}
	return out
}

func wireValues(values []float64) []*float64 {
	out := make([]*float64, len(values))
	for i := range values {
		if math.IsNaN(values[i]) {
			continue
		}
		v := values[i]
		out[i] = &v
	}
	return out
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
