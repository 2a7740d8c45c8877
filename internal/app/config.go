package app

import (
	"fmt"

	"placegraph-backend/internal/platform/envutil"
)

const (
	defaultInputFile = "data/GoogleMaps/SavedPlaces.json"
	defaultBatchSize = 100
)

type Config struct {
	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string
	Neo4jDatabase string
	InputFile     string
	BatchSize     int
}

// LoadConfig reads the environment. The URI and password have no sane
// defaults and missing values fail the run up front.
func LoadConfig() (Config, error) {
	cfg := Config{
		Neo4jURI:      envutil.String("NEO4J_URI", ""),
		Neo4jUser:     envutil.String("NEO4J_USER", "neo4j"),
		Neo4jPassword: envutil.String("NEO4J_PASSWORD", ""),
		Neo4jDatabase: envutil.String("NEO4J_DATABASE", ""),
		InputFile:     envutil.String("SAVED_PLACES_FILE", defaultInputFile),
		BatchSize:     envutil.Int("IMPORT_BATCH_SIZE", defaultBatchSize),
	}
	if cfg.Neo4jURI == "" {
		return cfg, fmt.Errorf("app: NEO4J_URI is required")
	}
	if cfg.Neo4jPassword == "" {
		return cfg, fmt.Errorf("app: NEO4J_PASSWORD is required")
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	return cfg, nil
}
