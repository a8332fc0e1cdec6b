package storage

import (
	"time"

	"runtests/internal/config"
	"runtests/internal/domain"
)

// Storage persists and loads test run results (e.g. for the failures viewer).
type Storage interface {
	Save(results []domain.TestResult, failures []domain.TestFailure, duration time.Duration, workers int) error
	Load() (*domain.TestResultsOutput, error)
	// SaveOutput writes the full output (e.g. after resolved marks change).
	SaveOutput(output *domain.TestResultsOutput) error
}

// Counter extracts per-result test case counts
type Counter interface {
	ParseTestCounts(result domain.TestResult) (passed, failed int)
}

// JSONStorage stores results in a JSON file under the configured output path.
type JSONStorage struct {
	cfg     *config.Config
	counter Counter
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config, counter Counter) *JSONStorage {
	return &JSONStorage{cfg: cfg, counter: counter}
}
