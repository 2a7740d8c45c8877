package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"placegraph-backend/internal/app"
	"placegraph-backend/internal/data/graph"
	"placegraph-backend/internal/ingest"
	"placegraph-backend/internal/platform/logger"
	"placegraph-backend/internal/platform/neo4jdb"
)

func main() {
	var (
		file      = flag.String("file", "", "path to SavedPlaces.json (overrides SAVED_PLACES_FILE)")
		batchSize = flag.Int("batch-size", 0, "records per write transaction (overrides IMPORT_BATCH_SIZE)")
		reset     = flag.Bool("reset", false, "delete existing Place/Region data before importing")
	)
	flag.Parse()

	if err := run(*file, *batchSize, *reset); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}

func run(file string, batchSize int, reset bool) error {
	_ = godotenv.Load()

	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	cfg, err := app.LoadConfig()
	if err != nil {
		return err
	}
	if file != "" {
		cfg.InputFile = file
	}
	if batchSize > 0 {
		cfg.BatchSize = batchSize
	}

	ctx := context.Background()
	client, err := neo4jdb.New(neo4jdb.Config{
		URI:      cfg.Neo4jURI,
		User:     cfg.Neo4jUser,
		Password: cfg.Neo4jPassword,
		Database: cfg.Neo4jDatabase,
	}, log)
	if err != nil {
		return err
	}
	defer client.Close(ctx)

	runLog := log.With("run_id", uuid.New().String())
	runner := &ingest.Runner{
		Store:     graph.NewPlaceStore(client, runLog),
		Log:       runLog,
		InputFile: cfg.InputFile,
		BatchSize: cfg.BatchSize,
		Reset:     reset,
	}

	sum, err := runner.Run(ctx)
	if err != nil {
		return err
	}
	runLog.Info("import complete",
		"total", sum.Total,
		"accepted", sum.Accepted,
		"batches", sum.Batches,
	)
	for reason, n := range sum.Rejected {
		runLog.Warn("records rejected", "reason", reason, "count", n)
	}
	return nil
}
