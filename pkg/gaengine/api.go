// Package gaengine is the stable public facade over internal/ga and
// internal/storage: one entry point a CLI or another Go program can use to
// run, list, and cooperatively stop genetic-algorithm runs without reaching
// into the generic engine's type parameters directly.
package gaengine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"gaengine/internal/ga"
	"gaengine/internal/storage"
)

const defaultDBPath = "gaengine.db"

// ErrRunNotFound is returned by Stop when no run is registered under the
// given id (either it never existed or it already finished).
var ErrRunNotFound = errors.New("gaengine: run not found")

// ErrUnsupportedProblem is returned by Run for a Problem name other than
// "sphere", "sphere-reject", or "zdt1".
var ErrUnsupportedProblem = errors.New("gaengine: unsupported problem")

type Options struct {
	StoreKind string
	DBPath    string
}

// Client wraps a storage.Store plus a registry of in-flight runs' stop
// callbacks. The registry lives in this Client's memory, so Stop reaches only
// runs started through the same Client in the same process.
type Client struct {
	store storage.Store

	mu          sync.Mutex
	runs        map[string]func()
	initialized bool
}

// RunRequest configures one Solve invocation of a built-in demo problem.
type RunRequest struct {
	RunID       string
	Problem     string // "sphere", "sphere-reject", "zdt1"
	Population  int
	Generations int
	EliteCount  int // SOGA/IGA only; defaults to population/10 (min 1) when zero
	Seed        int64
}

// RunSummary is what Run reports once a Solve invocation has stopped.
type RunSummary struct {
	RunID         string
	Problem       string
	StopReason    string
	Generations   int
	BestTotalCost float64
	BestGenes     []float64

	// ParetoFrontSize is nonzero only for the NSGA-III problem: the size of
	// front 0 in the final generation.
	ParetoFrontSize int
}

// HistoryEntry is one generation's retained best/average cost.
type HistoryEntry struct {
	Generation    int
	BestTotalCost float64
	AverageCost   float64
}

func New(opts Options) (*Client, error) {
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	store, err := storage.NewStore(opts.StoreKind, dbPath)
	if err != nil {
		return nil, err
	}
	return &Client{store: store, runs: make(map[string]func())}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

func (c *Client) Init(ctx context.Context) error {
	return c.ensureInit(ctx)
}

// ensureInit lazily initializes the store on first use, mirroring
// pkg/protogonos.Client.ensurePolis's lazy-Init pattern so callers that
// never explicitly call Init still get a working Client.
func (c *Client) ensureInit(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.initialized {
		return nil
	}
	if err := c.store.Init(ctx); err != nil {
		return err
	}
	c.initialized = true
	return nil
}

// Run constructs the requested demo problem's Config, drives it to
// completion through internal/ga.Engine, and persists the run record and
// per-generation history to the configured Store.
func (c *Client) Run(ctx context.Context, req RunRequest) (RunSummary, error) {
	if err := c.ensureInit(ctx); err != nil {
		return RunSummary{}, err
	}
	if req.Population <= 0 {
		req.Population = 50
	}
	if req.Generations <= 0 {
		req.Generations = 100
	}
	if req.EliteCount <= 0 {
		req.EliteCount = req.Population / 10
		if req.EliteCount < 1 {
			req.EliteCount = 1
		}
	}
	if req.RunID == "" {
		req.RunID = uuid.New().String()
	}

	var cfg *ga.Config[[]float64, scratch]
	switch req.Problem {
	case "sphere":
		cfg = newSphereConfig(req.Population, req.EliteCount, req.Generations, req.Seed, false)
	case "sphere-reject":
		cfg = newSphereConfig(req.Population, req.EliteCount, req.Generations, req.Seed, true)
	case "zdt1":
		cfg = newZDT1Config(req.Population, req.Generations, req.Seed)
	default:
		return RunSummary{}, fmt.Errorf("%w: %s", ErrUnsupportedProblem, req.Problem)
	}

	engine, err := ga.NewEngine(cfg)
	if err != nil {
		return RunSummary{}, err
	}
	if err := c.registerRun(req.RunID, engine.RequestStop); err != nil {
		return RunSummary{}, err
	}
	defer c.unregisterRun(req.RunID)

	if cfg.Mode == ga.NSGA3 {
		return c.runNSGA3(ctx, req, cfg, engine)
	}
	return c.runSOGA(ctx, req, cfg, engine)
}

func (c *Client) runSOGA(ctx context.Context, req RunRequest, cfg *ga.Config[[]float64, scratch], engine *ga.Engine[[]float64, scratch]) (RunSummary, error) {
	started := time.Now().UTC()
	reason, err := engine.Solve(ctx)
	if err != nil {
		return RunSummary{}, err
	}

	gen := engine.Current()
	best := gen.Chromosomes[gen.BestChromosomeIndex]
	summary := RunSummary{
		RunID:         req.RunID,
		Problem:       req.Problem,
		StopReason:    reason.String(),
		Generations:   engine.GenerationStep(),
		BestTotalCost: gen.BestTotalCost,
		BestGenes:     best.Genes,
	}

	if err := c.persist(ctx, req, cfg.Mode.String(), started, summary, engine.History(), gen); err != nil {
		return RunSummary{}, err
	}
	return summary, nil
}

func (c *Client) runNSGA3(ctx context.Context, req RunRequest, cfg *ga.Config[[]float64, scratch], engine *ga.Engine[[]float64, scratch]) (RunSummary, error) {
	started := time.Now().UTC()
	reason, err := engine.Solve(ctx)
	if err != nil {
		return RunSummary{}, err
	}

	gen := engine.Current()
	front0 := gen.Fronts[0]
	summary := RunSummary{
		RunID:           req.RunID,
		Problem:         req.Problem,
		StopReason:      reason.String(),
		Generations:     engine.GenerationStep(),
		BestGenes:       gen.Chromosomes[front0[0]].Genes,
		ParetoFrontSize: len(front0),
	}

	if err := c.persist(ctx, req, cfg.Mode.String(), started, summary, engine.History(), gen); err != nil {
		return RunSummary{}, err
	}
	return summary, nil
}

// chromosomeRecord is the final-population-blob shape persisted by
// SaveFinalPopulation; ID lets a later lineage query correlate a persisted
// chromosome back to this run even if genes alone are not unique.
type chromosomeRecord struct {
	ID         string    `json:"id"`
	Genes      []float64 `json:"genes"`
	TotalCost  float64   `json:"total_cost,omitempty"`
	Objectives []float64 `json:"objectives,omitempty"`
}

func encodeFinalPopulation(gen *ga.Generation[[]float64, scratch]) ([]byte, error) {
	records := make([]chromosomeRecord, len(gen.Chromosomes))
	for i, c := range gen.Chromosomes {
		records[i] = chromosomeRecord{
			ID:         ga.NewChromosomeID(),
			Genes:      c.Genes,
			TotalCost:  c.TotalCost,
			Objectives: c.Objectives,
		}
	}
	return json.Marshal(records)
}

func (c *Client) persist(ctx context.Context, req RunRequest, mode string, started time.Time, summary RunSummary, history []ga.GenerationSummary, gen *ga.Generation[[]float64, scratch]) error {
	run := storage.RunRecord{
		RunID:          req.RunID,
		Mode:           mode,
		Problem:        req.Problem,
		Seed:           req.Seed,
		PopulationSize: req.Population,
		GenerationMax:  req.Generations,
		StartedAtUnix:  started.Unix(),
		FinishedAtUnix: time.Now().UTC().Unix(),
		StopReason:     summary.StopReason,
		BestTotalCost:  summary.BestTotalCost,
		Generations:    summary.Generations,
	}
	if err := c.store.SaveRun(ctx, run); err != nil {
		return err
	}

	population, err := encodeFinalPopulation(gen)
	if err != nil {
		return err
	}
	if err := c.store.SaveFinalPopulation(ctx, req.RunID, population); err != nil {
		return err
	}

	if len(history) == 0 {
		return nil
	}
	records := make([]storage.GenerationSummaryRecord, len(history))
	for i, h := range history {
		records[i] = storage.GenerationSummaryRecord{Generation: i, BestTotalCost: h.BestTotalCost, AverageCost: h.AverageCost}
	}
	return c.store.SaveGenerationSummary(ctx, req.RunID, records)
}

// Runs lists every persisted run record.
func (c *Client) Runs(ctx context.Context) ([]storage.RunRecord, error) {
	if err := c.ensureInit(ctx); err != nil {
		return nil, err
	}
	return c.store.ListRuns(ctx)
}

// History returns a run's retained per-generation best/average cost.
func (c *Client) History(ctx context.Context, runID string) ([]HistoryEntry, error) {
	if err := c.ensureInit(ctx); err != nil {
		return nil, err
	}
	records, ok, err := c.store.GetGenerationSummaries(ctx, runID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	entries := make([]HistoryEntry, len(records))
	for i, r := range records {
		entries[i] = HistoryEntry{Generation: r.Generation, BestTotalCost: r.BestTotalCost, AverageCost: r.AverageCost}
	}
	return entries, nil
}

// Stop cooperatively requests an in-flight run to halt; it returns at the
// next generation boundary with StopReason "UserRequest".
func (c *Client) Stop(runID string) error {
	c.mu.Lock()
	requestStop, ok := c.runs[runID]
	c.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	requestStop()
	return nil
}

func (c *Client) registerRun(runID string, requestStop func()) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.runs[runID]; exists {
		return fmt.Errorf("gaengine: run already active: %s", runID)
	}
	c.runs[runID] = requestStop
	return nil
}

func (c *Client) unregisterRun(runID string) {
	c.mu.Lock()
	delete(c.runs, runID)
	c.mu.Unlock()
}
