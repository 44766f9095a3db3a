package domain

import (
	"errors"
	"time"
)

// ErrShapeMismatch is returned when values and index lengths differ.
var ErrShapeMismatch = errors.New("values and index must have the same length")

// Series is the canonical container handed to metric functions.
// Index is nil for the purely positional form; when present it pairs one
// timestamp with each value.
type Series struct {
	Values []float64
	Index  []time.Time
}

// FromValues builds a positional series. Values are copied, no index semantics.
func FromValues(values []float64) *Series {
	v := make([]float64, len(values))
	copy(v, values)
	return &Series{Values: v}
}

// FromSeries builds a time-indexed series. Returns ErrShapeMismatch when
// lengths differ; no other validation is performed.
func FromSeries(values []float64, index []time.Time) (*Series, error) {
	if len(values) != len(index) {
		return nil, ErrShapeMismatch
	}
	v := make([]float64, len(values))
	copy(v, values)
	ts := make([]time.Time, len(index))
	copy(ts, index)
	return &Series{Values: v, Index: ts}, nil
}

// Len returns the number of observations.
func (s *Series) Len() int {
	return len(s.Values)
}

// HasIndex reports whether the series carries a time index.
func (s *Series) HasIndex() bool {
	return s.Index != nil
}

// Copy creates a deep copy of the series.
func (s *Series) Copy() *Series {
	c := &Series{Values: make([]float64, len(s.Values))}
	copy(c.Values, s.Values)
	if s.Index != nil {
		c.Index = make([]time.Time, len(s.Index))
		copy(c.Index, s.Index)
	}
	return c
}

// SliceTime returns the sub-series whose timestamps fall within [from, to]
// (inclusive). The receiver must be indexed.
func (s *Series) SliceTime(from, to time.Time) *Series {
	values := make([]float64, 0, len(s.Values))
	index := make([]time.Time, 0, len(s.Index))
	for i, ts := range s.Index {
		if !ts.Before(from) && !ts.After(to) {
			values = append(values, s.Values[i])
			index = append(index, ts)
		}
	}
	return &Series{Values: values, Index: index}
}

// IntersectRange restricts a and b to their overlapping time range.
// Both series must be indexed with ascending timestamps. Series that do not
// overlap at all, or that are empty to begin with, come back empty.
func IntersectRange(a, b *Series) (*Series, *Series) {
	if a.Len() == 0 || b.Len() == 0 {
		return &Series{Values: []float64{}, Index: []time.Time{}},
			&Series{Values: []float64{}, Index: []time.Time{}}
	}
	from := a.Index[0]
	if b.Index[0].After(from) {
		from = b.Index[0]
	}
	to := a.Index[len(a.Index)-1]
	if last := b.Index[len(b.Index)-1]; last.Before(to) {
		to = last
	}
	return a.SliceTime(from, to), b.SliceTime(from, to)
}

// IsChronological reports whether index is a genuine time-ordered index:
// non-empty, free of zero timestamps, and strictly increasing.
func IsChronological(index []time.Time) bool {
	if len(index) == 0 {
		return false
	}
	for i, ts := range index {
		if ts.IsZero() {
			return false
		}
		if i > 0 && !index[i-1].Before(ts) {
			return false
		}
	}
	return true
}
