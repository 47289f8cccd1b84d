package models

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// Metadata maps attribute names to one or more values. A name is never
// stored with zero values. Metadata is read-only once built.
type Metadata struct {
	values map[string][]any
	names  []string
}

// NewMetadata builds Metadata from raw attributes. A []any value is treated
// as a list of values; empty lists are dropped. Numbers are stored as int
// when they are whole and as float64 otherwise, whatever their source type.
func NewMetadata(raw map[string]any) *Metadata {
	m := &Metadata{values: make(map[string][]any, len(raw))}
	for name, v := range raw {
		var vals []any
		switch tv := v.(type) {
		case []any:
			for _, e := range tv {
				vals = append(vals, normalizeNumber(e))
			}
		default:
			vals = []any{normalizeNumber(tv)}
		}
		if len(vals) == 0 {
			continue
		}
		m.values[name] = vals
		m.names = append(m.names, name)
	}
	sort.Strings(m.names)
	return m
}

// maxExactInt is the largest magnitude a float64 holds without losing
// integer precision.
const maxExactInt = 1 << 53

func normalizeNumber(v any) any {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
		if f, err := n.Float64(); err == nil {
			return normalizeFloat(f)
		}
		return n.String()
	case int8:
		return int(n)
	case int16:
		return int(n)
	case int32:
		return int(n)
	case int64:
		return int(n)
	case uint8:
		return int(n)
	case uint16:
		return int(n)
	case uint32:
		return int(n)
	case uint64:
		return int(n)
	case uint:
		return int(n)
	case float32:
		return normalizeFloat(float64(n))
	case float64:
		return normalizeFloat(n)
	}
	return v
}

func normalizeFloat(f float64) any {
	if f == math.Trunc(f) && math.Abs(f) <= maxExactInt {
		return int(f)
	}
	return f
}

// FirstValue returns the first value of name. ok is false when the name
// is unknown.
func (m *Metadata) FirstValue(name string) (any, bool) {
	if m == nil {
		return nil, false
	}
	vals, ok := m.values[name]
	if !ok {
		return nil, false
	}
	return vals[0], true
}

// Values returns every value of name, or an empty slice.
func (m *Metadata) Values(name string) []any {
	if m == nil {
		return []any{}
	}
	vals := m.values[name]
	out := make([]any, len(vals))
	copy(out, vals)
	return out
}

// Names lists the attribute names in sorted order.
func (m *Metadata) Names() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

// Len is the number of attributes.
func (m *Metadata) Len() int {
	if m == nil {
		return 0
	}
	return len(m.names)
}

// ToMap collapses single values to scalars and keeps lists otherwise.
func (m *Metadata) ToMap() map[string]any {
	out := make(map[string]any, m.Len())
	if m == nil {
		return out
	}
	for _, name := range m.names {
		vals := m.values[name]
		if len(vals) == 1 {
			out[name] = vals[0]
			continue
		}
		list := make([]any, len(vals))
		copy(list, vals)
		out[name] = list
	}
	return out
}

// Text returns the first value of name formatted as text, or "".
func (m *Metadata) Text(name string) string {
	v, ok := m.FirstValue(name)
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
