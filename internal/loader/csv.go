// Package loader reads forecast series from CSV files.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"forecast-lab/internal/domain"
)

// ErrNoData is returned when a file holds no parseable rows.
var ErrNoData = errors.New("no valid data found in CSV")

// Date layouts tried in order when parsing the timestamp column.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ReadInput loads a series from a CSV file into the boundary representation.
// Two-column files (timestamp,value) produce an indexed series; one-column
// files produce a raw array. A non-numeric first row is treated as a header
// and skipped.
func ReadInput(path string) (*domain.Input, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	return readInput(file)
}

func readInput(r io.Reader) (*domain.Input, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var values []float64
	var index []time.Time
	row := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		row++

		var tsField, valField string
		switch len(record) {
		case 1:
			valField = record[0]
		case 2:
			tsField, valField = record[0], record[1]
		default:
			return nil, fmt.Errorf("row %d: expected 1 or 2 columns, got %d", row, len(record))
		}

		val, err := strconv.ParseFloat(strings.TrimSpace(valField), 64)
		if err != nil {
			if row == 1 {
				continue // header
			}
			return nil, fmt.Errorf("row %d: parse value %q: %w", row, valField, err)
		}

		if tsField != "" {
			ts, err := parseTimestamp(strings.TrimSpace(tsField))
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", row, err)
			}
			index = append(index, ts)
		}
		values = append(values, val)
	}

	if len(values) == 0 {
		return nil, ErrNoData
	}
	if index != nil {
		if len(index) != len(values) {
			return nil, fmt.Errorf("%w: %d timestamps for %d values", domain.ErrShapeMismatch, len(index), len(values))
		}
		return domain.FromIndexed(values, index), nil
	}
	return domain.FromArray(values), nil
}

// ReadPoints loads a two-column (timestamp,value) CSV as storable points
// under the given series ID.
func ReadPoints(path, seriesID string) ([]*domain.SeriesPoint, error) {
	in, err := ReadInput(path)
	if err != nil {
		return nil, err
	}
	if in.Kind != domain.KindIndexedSeries {
		return nil, fmt.Errorf("%s: series points require a timestamp column", path)
	}

	points := make([]*domain.SeriesPoint, len(in.Values))
	for i := range in.Values {
		points[i] = &domain.SeriesPoint{
			SeriesID:    seriesID,
			TimestampMs: in.Index[i].UnixMilli(),
			Value:       in.Values[i],
		}
	}
	return points, nil
}

// parseTimestamp parses a timestamp field as Unix milliseconds or one of the
// supported date layouts.
func parseTimestamp(s string) (time.Time, error) {
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), nil
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
