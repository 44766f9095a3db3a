package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"forecast-lab/internal/loader"
	"forecast-lab/internal/storage"
	chstore "forecast-lab/internal/storage/clickhouse"
	"forecast-lab/internal/storage/memory"
	"forecast-lab/internal/storage/migrations"
)

func main() {
	// Parse flags
	csvPath := flag.String("csv", "", "Series CSV with timestamp,value columns (required)")
	seriesID := flag.String("series-id", "", "Series ID to store points under (required)")

	// Storage
	clickhouseDSN := flag.String("clickhouse-dsn", "", "ClickHouse connection string")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage")
	runMigrations := flag.Bool("migrate", false, "Apply ClickHouse migrations before inserting")

	flag.Parse()

	// Setup logger
	logger := log.New(os.Stderr, "[ingest] ", log.LstdFlags)

	// Validate required flags
	if *csvPath == "" {
		logger.Fatal("--csv is required")
	}
	if *seriesID == "" {
		logger.Fatal("--series-id is required")
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

	// Create store
	var pointStore storage.SeriesPointStore = memory.NewSeriesPointStore()

	if !*useMemory {
		if *clickhouseDSN == "" {
			logger.Fatal("--clickhouse-dsn is required when not using --use-memory")
		}

		conn, err := chstore.NewConn(ctx, *clickhouseDSN)
		if err != nil {
			logger.Fatalf("connect to clickhouse: %v", err)
		}
		defer conn.Close()

		if *runMigrations {
			if err := migrations.RunClickhouseMigrations(ctx, conn); err != nil {
				logger.Fatalf("run migrations: %v", err)
			}
			logger.Println("Migrations applied")
		}

		pointStore = chstore.NewSeriesPointStore(conn)
	}

	// Load and insert
	points, err := loader.ReadPoints(*csvPath, *seriesID)
	if err != nil {
		logger.Fatalf("load points: %v", err)
	}

	start := time.Now()
	if err := pointStore.InsertBulk(ctx, points); err != nil {
		logger.Fatalf("insert points: %v", err)
	}

	logger.Printf("Inserted %d points for series %s in %v", len(points), *seriesID, time.Since(start))
}
