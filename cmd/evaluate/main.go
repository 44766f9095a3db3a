package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"forecast-lab/internal/decompose"
	"forecast-lab/internal/domain"
	"forecast-lab/internal/evaluate"
	"forecast-lab/internal/loader"
	"forecast-lab/internal/metrics"
	"forecast-lab/internal/reporting"
	"forecast-lab/internal/stationary"
	"forecast-lab/internal/storage"
	"forecast-lab/internal/storage/memory"
	"forecast-lab/internal/storage/migrations"
	pgstore "forecast-lab/internal/storage/postgres"
)

func main() {
	// Parse flags
	actualPath := flag.String("actual", "", "Actual series CSV (required)")
	predictedPath := flag.String("predicted", "", "Predicted series CSV (required)")
	insamplePath := flag.String("insample", "", "Insample series CSV (required for mase)")
	metricName := flag.String("metric", "mae", "Metric: mae, mse, rmse, mape, mase, forecast_bias, all")
	seasonality := flag.Int("m", 1, "Seasonality period for scale-dependent metrics")
	intersect := flag.Bool("intersect", true, "Restrict indexed series to overlapping time range")

	// Stationarity round trip
	stationaryMethod := flag.String("stationary-check", "", "Verify transform round trip on actual: detrend, logdiff")
	window := flag.Int("window", 0, "Moving-average window for detrend check (0 = linear fit)")

	// Storage
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL connection string")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage")
	persistResult := flag.Bool("persist", false, "Persist evaluation results to storage")
	runMigrations := flag.Bool("migrate", false, "Apply PostgreSQL migrations before persisting")

	// Output
	outputJSON := flag.Bool("json", false, "Output as JSON")
	reportFormat := flag.String("report", "", "Render stored results after evaluation: markdown, csv")

	flag.Parse()

	// Setup logger
	logger := log.New(os.Stderr, "[evaluate] ", log.LstdFlags)

	// Validate required flags
	if *actualPath == "" {
		logger.Fatal("--actual is required")
	}
	if *predictedPath == "" {
		logger.Fatal("--predicted is required")
	}

	*metricName = strings.ToLower(*metricName)
	if *reportFormat != "" && *reportFormat != "markdown" && *reportFormat != "csv" {
		logger.Fatalf("Invalid report format: %s. Must be markdown or csv", *reportFormat)
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, shutting down...", sig)
		cancel()
	}()

	// Load inputs
	actual, err := loader.ReadInput(*actualPath)
	if err != nil {
		logger.Fatalf("load actual: %v", err)
	}
	predicted, err := loader.ReadInput(*predictedPath)
	if err != nil {
		logger.Fatalf("load predicted: %v", err)
	}

	opts := evaluate.DefaultOptions()
	opts.M = *seasonality
	opts.Intersect = *intersect
	if *insamplePath != "" {
		insample, err := loader.ReadInput(*insamplePath)
		if err != nil {
			logger.Fatalf("load insample: %v", err)
		}
		opts.Insample = insample
	}

	// Optional stationarity round trip on the actual series
	if *stationaryMethod != "" {
		if err := checkStationaryRoundTrip(logger, actual.Values, *stationaryMethod, *window); err != nil {
			logger.Fatalf("stationarity check failed: %v", err)
		}
	}

	// Resolve requested metrics
	names, err := resolveMetricNames(*metricName, *insamplePath != "")
	if err != nil {
		logger.Fatal(err)
	}

	// Evaluate
	results := make([]*domain.EvaluationResult, 0, len(names))
	for _, name := range names {
		var value float64
		if name == evaluate.BiasName {
			value, err = evaluate.ForecastBias(actual, predicted, opts.Intersect)
		} else {
			metric, ok := metrics.ByName(name)
			if !ok {
				logger.Fatalf("Unknown metric: %s", name)
			}
			value, err = evaluate.Evaluate(metric, actual, predicted, opts)
		}
		if err != nil {
			logger.Fatalf("evaluate %s: %v", name, err)
		}

		now := time.Now()
		results = append(results, &domain.EvaluationResult{
			EvalID:       fmt.Sprintf("eval-%s-%d", name, now.UnixNano()),
			ActualID:     *actualPath,
			PredictedID:  *predictedPath,
			Metric:       name,
			SeasonalityM: opts.M,
			Intersect:    opts.Intersect,
			Value:        value,
			CreatedAtMs:  now.UnixMilli(),
		})
	}

	// Persist and report through a store when requested
	if *persistResult || *reportFormat != "" {
		var resultStore storage.EvaluationResultStore = memory.NewEvaluationResultStore()

		if !*useMemory {
			if *postgresDSN == "" {
				logger.Fatal("--postgres-dsn is required when not using --use-memory")
			}
			pool, err := pgstore.NewPool(ctx, *postgresDSN)
			if err != nil {
				logger.Fatalf("connect to postgres: %v", err)
			}
			defer pool.Close()

			if *runMigrations {
				if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
					logger.Fatalf("run migrations: %v", err)
				}
				logger.Println("Migrations applied")
			}

			resultStore = pgstore.NewEvaluationResultStore(pool)
		}

		for _, r := range results {
			if err := resultStore.Insert(ctx, r); err != nil {
				logger.Fatalf("persist result %s: %v", r.EvalID, err)
			}
		}

		if *reportFormat != "" {
			stored, err := resultStore.GetAll(ctx)
			if err != nil {
				logger.Fatalf("load stored results: %v", err)
			}
			report := reporting.Build(stored, time.Now())
			switch *reportFormat {
			case "markdown":
				fmt.Print(reporting.RenderMarkdown(report))
			case "csv":
				fmt.Print(reporting.RenderCSV(report.Rows))
			}
			return
		}
	}

	// Output results
	if *outputJSON {
		output, _ := json.MarshalIndent(results, "", "  ")
		fmt.Println(string(output))
	} else {
		printResults(results)
	}
}

// resolveMetricNames expands the -metric flag into concrete metric names.
// "all" runs the whole family; mase is included only when an insample series
// was provided.
func resolveMetricNames(name string, hasInsample bool) ([]string, error) {
	if name != "all" {
		if name == evaluate.BiasName {
			return []string{name}, nil
		}
		if _, ok := metrics.ByName(name); !ok {
			return nil, fmt.Errorf("invalid metric: %s. Must be mae, mse, rmse, mape, mase, forecast_bias, or all", name)
		}
		return []string{name}, nil
	}

	names := []string{metrics.MAE.Name, metrics.MSE.Name, metrics.RMSE.Name, metrics.MAPE.Name}
	if hasInsample {
		names = append(names, metrics.MASE.Name)
	}
	return append(names, evaluate.BiasName), nil
}

// checkStationaryRoundTrip transforms x, inverts the result, and logs the
// worst reconstruction error. The logdiff inverse reconstructs everything but
// the last observation.
func checkStationaryRoundTrip(logger *log.Logger, x []float64, method string, window int) error {
	result, err := stationary.MakeStationary(x, stationary.Method(method), decompose.Options{Window: window})
	if err != nil {
		return err
	}
	restored, err := result.Inverse(result.Stationary)
	if err != nil {
		return err
	}

	expected := x
	if result.Kind == stationary.MethodLogDiff {
		expected = x[:len(x)-1]
	}

	maxErr := 0.0
	for i := range restored {
		if diff := math.Abs(restored[i] - expected[i]); diff > maxErr {
			maxErr = diff
		}
	}
	logger.Printf("stationarity round trip (%s): %d points, max reconstruction error %.3e",
		method, len(restored), maxErr)
	return nil
}

// printResults outputs human-readable evaluation results.
func printResults(results []*domain.EvaluationResult) {
	fmt.Println()
	fmt.Println("=== Evaluation Results ===")
	for _, r := range results {
		fmt.Printf("%-15s %.6f\n", r.Metric+":", r.Value)
	}
	fmt.Println()
	if len(results) > 0 {
		fmt.Printf("Seasonality M:  %d\n", results[0].SeasonalityM)
		fmt.Printf("Intersect:      %t\n", results[0].Intersect)
	}
}
