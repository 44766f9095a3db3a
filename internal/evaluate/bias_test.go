package evaluate

import (
	"errors"
	"math"
	"testing"

	"forecast-lab/internal/domain"
	"forecast-lab/internal/metrics"
)

func TestForecastBias_UnderPrediction(t *testing.T) {
	actual := domain.FromArray([]float64{100, 100})
	predicted := domain.FromArray([]float64{90, 90})

	got, err := ForecastBias(actual, predicted, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 100 * (200 - 180) / 200 = 10
	if math.Abs(got-10.0) > 1e-9 {
		t.Errorf("expected 10.0, got %f", got)
	}
}

func TestForecastBias_OverPrediction(t *testing.T) {
	actual := domain.FromArray([]float64{100, 100})
	predicted := domain.FromArray([]float64{110, 110})

	got, err := ForecastBias(actual, predicted, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 100 * (200 - 220) / 200 = -10
	if math.Abs(got+10.0) > 1e-9 {
		t.Errorf("expected -10.0, got %f", got)
	}
}

func TestForecastBias_NaNUnionRemoval(t *testing.T) {
	nan := math.NaN()
	actual := domain.FromArray([]float64{1, nan, 3})
	predicted := domain.FromArray([]float64{1, 2, nan})

	got, err := ForecastBias(actual, predicted, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Only the pair (1, 1) survives → bias 0
	if math.Abs(got) > 1e-9 {
		t.Errorf("expected 0, got %f", got)
	}
}

func TestForecastBias_ZeroBaseline(t *testing.T) {
	actual := domain.FromArray([]float64{1, -1})
	predicted := domain.FromArray([]float64{2, 2})

	_, err := ForecastBias(actual, predicted, true)
	if !errors.Is(err, ErrZeroBaseline) {
		t.Errorf("expected ErrZeroBaseline, got %v", err)
	}
}

func TestForecastBias_IndexedIntersect(t *testing.T) {
	actual := domain.FromIndexed([]float64{100, 100, 999}, days(1, 2, 3))
	predicted := domain.FromIndexed([]float64{90, 90}, days(1, 2))

	got, err := ForecastBias(actual, predicted, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Overlap days 1..2 only
	if math.Abs(got-10.0) > 1e-9 {
		t.Errorf("expected 10.0, got %f", got)
	}
}

func TestForecastBias_EmptyIndexedSeries(t *testing.T) {
	actual := domain.FromIndexed([]float64{}, nil)
	predicted := domain.FromIndexed([]float64{}, nil)

	_, err := ForecastBias(actual, predicted, true)
	if !errors.Is(err, metrics.ErrNoObservations) {
		t.Errorf("expected ErrNoObservations, got %v", err)
	}
}

func TestForecastBias_KindMismatch(t *testing.T) {
	actual := domain.FromArray([]float64{1, 2})
	predicted := domain.FromIndexed([]float64{1, 2}, days(1, 2))

	_, err := ForecastBias(actual, predicted, true)
	if !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("expected ErrTypeMismatch, got %v", err)
	}
}

func TestForecastBias_TableRejected(t *testing.T) {
	actual := domain.FromTable([][]float64{{1, 2}}, days(1, 2))
	predicted := domain.FromTable([][]float64{{1, 2}}, days(1, 2))

	_, err := ForecastBias(actual, predicted, true)
	if !errors.Is(err, ErrUnsupportedShape) {
		t.Errorf("expected ErrUnsupportedShape, got %v", err)
	}
}

func TestForecastBias_LengthMismatch(t *testing.T) {
	actual := domain.FromArray([]float64{1, 2, 3})
	predicted := domain.FromArray([]float64{1, 2})

	_, err := ForecastBias(actual, predicted, true)
	if !errors.Is(err, metrics.ErrLengthMismatch) {
		t.Errorf("expected ErrLengthMismatch, got %v", err)
	}
}

func TestForecastBias_NilInput(t *testing.T) {
	_, err := ForecastBias(nil, domain.FromArray([]float64{1}), true)
	if !errors.Is(err, ErrNilInput) {
		t.Errorf("expected ErrNilInput, got %v", err)
	}
}
