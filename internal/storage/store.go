package storage

import "context"

// Store defines transaction-like persistence operations for genetic algorithm
// runs: the run's identity, its per-generation best/average cost history, and
// the final population blob.
type Store interface {
	Init(ctx context.Context) error

	SaveRun(ctx context.Context, run RunRecord) error
	GetRun(ctx context.Context, runID string) (RunRecord, bool, error)

	SaveGenerationSummary(ctx context.Context, runID string, summaries []GenerationSummaryRecord) error
	GetGenerationSummaries(ctx context.Context, runID string) ([]GenerationSummaryRecord, bool, error)

	SaveFinalPopulation(ctx context.Context, runID string, population []byte) error
	GetFinalPopulation(ctx context.Context, runID string) ([]byte, bool, error)

	ListRuns(ctx context.Context) ([]RunRecord, error)
}
