package storage

// VersionedRecord is embedded by every record persisted through Store,
// decoupling the in-memory engine types from their serialized shape.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// RunRecord is the storage-layer identity of one Solve invocation.
type RunRecord struct {
	VersionedRecord
	RunID          string  `json:"run_id"`
	Mode           string  `json:"mode"`
	Problem        string  `json:"problem"`
	Seed           int64   `json:"seed"`
	PopulationSize int     `json:"population_size"`
	GenerationMax  int     `json:"generation_max"`
	Workers        int     `json:"workers"`
	StartedAtUnix  int64   `json:"started_at_unix"`
	FinishedAtUnix int64   `json:"finished_at_unix"`
	StopReason     string  `json:"stop_reason"`
	BestTotalCost  float64 `json:"best_total_cost"`
	Generations    int     `json:"generations"`
}

// GenerationSummaryRecord mirrors the two scalars the engine retains per
// historical generation for stall detection: best_total_cost and average_cost.
type GenerationSummaryRecord struct {
	VersionedRecord
	Generation    int     `json:"generation"`
	BestTotalCost float64 `json:"best_total_cost"`
	AverageCost   float64 `json:"average_cost"`
}
