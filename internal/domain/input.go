package domain

import "time"

// InputKind tags the concrete representation an Input arrived in.
type InputKind int

const (
	// KindArray is a raw numeric sequence with no identity beyond position.
	KindArray InputKind = iota
	// KindIndexedSeries is a one-dimensional sequence paired with an index.
	KindIndexedSeries
	// KindTable is a tabular frame: one or more value columns over an index.
	KindTable
)

// String returns the kind name used in error messages.
func (k InputKind) String() string {
	switch k {
	case KindArray:
		return "array"
	case KindIndexedSeries:
		return "indexed series"
	case KindTable:
		return "table"
	default:
		return "unknown"
	}
}

// Input is the tagged union of time-series-like representations accepted at
// the evaluation boundary. It is constructed once and matched on Kind
// downstream rather than re-inspecting shapes repeatedly.
type Input struct {
	Kind InputKind

	// Values is set for KindArray and KindIndexedSeries.
	Values []float64

	// Index is set for KindIndexedSeries and KindTable. Zero timestamps or
	// non-increasing entries mark an index that is positional rather than
	// chronological.
	Index []time.Time

	// Columns holds one value slice per column for KindTable.
	Columns [][]float64
}

// FromArray wraps a raw numeric sequence.
func FromArray(values []float64) *Input {
	return &Input{Kind: KindArray, Values: values}
}

// FromIndexed wraps a one-dimensional indexed series.
func FromIndexed(values []float64, index []time.Time) *Input {
	return &Input{Kind: KindIndexedSeries, Values: values, Index: index}
}

// FromTable wraps a tabular frame with one slice per column.
func FromTable(columns [][]float64, index []time.Time) *Input {
	return &Input{Kind: KindTable, Columns: columns, Index: index}
}
