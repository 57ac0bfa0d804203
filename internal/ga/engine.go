package ga

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"gaengine/internal/rngpool"
)

// ErrSolveInitRequired is returned by SolveNext when called before SolveInit.
var ErrSolveInitRequired = errors.New("ga: SolveInit must run before SolveNext")

// Engine drives one genetic-algorithm run: generation 0 via SolveInit, then
// one transfer/vary/evaluate/rank/select/report cycle per SolveNext call.
// An Engine is not safe for concurrent SolveNext calls; RequestStop is the
// one method safe to call from another goroutine.
type Engine[G any, M any] struct {
	cfg *Config[G, M]
	rng *rngpool.Pool

	generationStep int
	current        *Generation[G, M]
	history        []GenerationSummary
	stop           stopState
	mo3            *mo3State

	userRequestStop atomic.Bool
}

// NewEngine validates cfg and constructs an Engine ready for SolveInit.
func NewEngine[G any, M any](cfg *Config[G, M]) (*Engine[G, M], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rng := rngpool.New()
	if cfg.Seed != 0 {
		rng = rngpool.NewSeeded(cfg.Seed)
	}
	e := &Engine[G, M]{cfg: cfg, rng: rng, generationStep: -1}
	if cfg.Mode == NSGA3 {
		e.mo3 = newMO3State()
	}
	return e, nil
}

// RequestStop asks the engine to halt after the in-flight generation
// completes. Safe to call from another goroutine.
func (e *Engine[G, M]) RequestStop() {
	e.userRequestStop.Store(true)
}

// Current returns the most recently completed generation, or nil before
// SolveInit has run.
func (e *Engine[G, M]) Current() *Generation[G, M] { return e.current }

// GenerationStep returns the index of the most recently completed
// generation (-1 before SolveInit, 0 after it).
func (e *Engine[G, M]) GenerationStep() int { return e.generationStep }

// History returns the retained best/average cost per generation, used for
// stall detection and available to callers for reporting.
func (e *Engine[G, M]) History() []GenerationSummary { return e.history }

// SolveInit builds, evaluates, and ranks generation zero.
func (e *Engine[G, M]) SolveInit(ctx context.Context) error {
	var timer chronometer
	timer.tic()
	gen := newGeneration[G, M](e.cfg.Population)

	if _, cancelled := initializePopulation(ctx, e.cfg, e.rng, gen); cancelled {
		return ctx.Err()
	}
	if len(gen.Chromosomes) == 0 {
		return fmt.Errorf("%w: initial population is empty", ErrInvariantViolation)
	}

	e.generationStep = 0
	e.finalizeObjectives(gen)
	e.rankPopulation(gen)
	e.finalizeGeneration(gen)

	if e.cfg.Mode == NSGA3 {
		if err := e.mo3.updateIdeal(e.reducedObjectivesOf(gen)); err != nil {
			return err
		}
	}

	elapsed, err := timer.toc()
	if err != nil {
		return err
	}
	gen.ExeTime = elapsed
	e.current = gen
	e.recordAndReport(gen)
	return nil
}

// SolveNext runs one full generational cycle and returns the stop reason
// observed after it (Undefined means keep iterating).
func (e *Engine[G, M]) SolveNext(ctx context.Context) (StopReason, error) {
	if e.current == nil {
		return Undefined, ErrSolveInitRequired
	}
	var timer chronometer
	timer.tic()
	e.generationStep++

	newGen := newGeneration[G, M](0)
	transferSurvivors(e.cfg, e.current, newGen)

	if _, cancelled := applyVariation(ctx, e.cfg, e.rng, e.generationStep, e.current, newGen); cancelled {
		return Undefined, ctx.Err()
	}

	e.finalizeObjectives(newGen)
	e.rankPopulation(newGen) // ranks the combined (survivors + offspring) set for selection

	selected, err := e.selectPopulation(newGen)
	if err != nil {
		return Undefined, err
	}

	e.rankPopulation(selected) // re-ranks the trimmed population for next round's transfer/variation
	e.finalizeGeneration(selected)
	elapsed, err := timer.toc()
	if err != nil {
		return Undefined, err
	}
	selected.ExeTime = elapsed

	e.current = selected
	e.recordAndReport(selected)

	reason := e.stop.evaluate(e.generationStep, e.cfg.GenerationMax, e.cfg.AverageStallMax, e.cfg.BestStallMax, e.userRequestStop.Load())
	return reason, nil
}

// Solve runs SolveInit followed by SolveNext until a non-Undefined stop
// reason is returned.
func (e *Engine[G, M]) Solve(ctx context.Context) (StopReason, error) {
	if err := e.SolveInit(ctx); err != nil {
		return Undefined, err
	}
	for {
		reason, err := e.SolveNext(ctx)
		if err != nil || reason != Undefined {
			return reason, err
		}
	}
}

func (e *Engine[G, M]) finalizeObjectives(gen *Generation[G, M]) {
	switch e.cfg.Mode {
	case SOGA:
		for i := range gen.Chromosomes {
			gen.Chromosomes[i].TotalCost = e.cfg.CalculateSOTotalFitness(gen.Chromosomes[i])
		}
	case IGA:
		e.cfg.CalculateIGATotalFitness(gen)
	case NSGA3:
		for i := range gen.Chromosomes {
			gen.Chromosomes[i].Objectives = e.cfg.CalculateMOObjectives(&gen.Chromosomes[i])
		}
	}
}

func (e *Engine[G, M]) rankPopulation(gen *Generation[G, M]) {
	if e.cfg.Mode == NSGA3 {
		objectives := make([][]float64, len(gen.Chromosomes))
		for i, c := range gen.Chromosomes {
			objectives[i] = c.Objectives
		}
		gen.Fronts = fastNonDominatedSort(objectives)
		rank := frontOf(gen.Fronts, len(gen.Chromosomes))
		gen.SelectionChanceCumulative = selectionChanceCumulative(rank)
		return
	}
	gen.SortedIndices = sortByTotalCost(gen.Chromosomes)
	rank := soRankFromSortedIndices(gen.SortedIndices)
	gen.SelectionChanceCumulative = selectionChanceCumulative(rank)
}

func (e *Engine[G, M]) finalizeGeneration(gen *Generation[G, M]) {
	if e.cfg.Mode == NSGA3 {
		return
	}
	best := gen.Chromosomes[0].TotalCost
	bestIdx := 0
	sum := 0.0
	for i, c := range gen.Chromosomes {
		sum += c.TotalCost
		if c.TotalCost <= best {
			best = c.TotalCost
			bestIdx = i
		}
	}
	gen.BestTotalCost = best
	gen.BestChromosomeIndex = bestIdx
	gen.AverageCost = sum / float64(len(gen.Chromosomes))
}

func (e *Engine[G, M]) selectPopulation(gen *Generation[G, M]) (*Generation[G, M], error) {
	if e.cfg.Mode == NSGA3 {
		return e.selectPopulationMO(gen)
	}
	return e.selectPopulationSO(gen), nil
}

// selectPopulationSO fills the elite slots from the previous generation's
// sorted rank, then the rest via
// rank-weighted sampling with a blocked set preventing repeats (spec §4.9).
func (e *Engine[G, M]) selectPopulationSO(gen *Generation[G, M]) *Generation[G, M] {
	selected := newGeneration[G, M](0)
	blocked := make(map[int]bool, e.cfg.Population)

	// The elites are the previous generation's top-E. transferSurvivors put
	// that generation at the front of gen: every member in order (SOGA), or
	// only the elites in sorted order (IGA).
	for i := 0; i < e.cfg.EliteCount; i++ {
		idx := i
		if e.cfg.Mode != IGA {
			idx = e.current.SortedIndices[i]
		}
		selected.Chromosomes = append(selected.Chromosomes, gen.Chromosomes[idx])
		blocked[idx] = true
	}

	rnd01 := func() float64 { return e.rng.Float64() }
	for _, idx := range pickSOParents(gen.SelectionChanceCumulative, e.cfg.Population-len(selected.Chromosomes), blocked, rnd01) {
		selected.Chromosomes = append(selected.Chromosomes, gen.Chromosomes[idx])
	}
	return selected
}

// selectPopulationMO runs the NSGA-III normalization/association/niching
// pipeline (spec §4.8), trimming the combined generation down to Population.
func (e *Engine[G, M]) selectPopulationMO(gen *Generation[G, M]) (*Generation[G, M], error) {
	if len(gen.Chromosomes) == e.cfg.Population {
		return gen, nil
	}

	reduced := e.reducedObjectivesOf(gen)
	if err := e.mo3.updateIdeal(reduced); err != nil {
		return nil, err
	}
	z := translate(reduced, e.mo3.idealObjectives)
	e.mo3.scalarize(z)
	intercepts := e.mo3.intercepts(z)
	normalized := normalize(z, intercepts)

	if err := e.mo3.ensureReferenceVectors(e.mo3.nRobj, e.cfg.Population, e.cfg.ReferenceVectorDivisions); err != nil {
		return nil, err
	}

	assoc, _, niche, distances := associate(normalized, e.mo3.referenceVectors)
	rnd01 := func() float64 { return e.rng.Float64() }
	selectedIdx := nicheSelect(gen.Fronts, e.cfg.Population, assoc, distances, niche, e.cfg.EnableReferenceVectors, len(gen.Chromosomes), rnd01)

	selected := newGeneration[G, M](0)
	for _, idx := range selectedIdx {
		selected.Chromosomes = append(selected.Chromosomes, gen.Chromosomes[idx])
	}
	return selected, nil
}

func (e *Engine[G, M]) reducedObjectivesOf(gen *Generation[G, M]) [][]float64 {
	reduced := make([][]float64, len(gen.Chromosomes))
	for i, c := range gen.Chromosomes {
		reduced[i] = reduceObjectives(c.Objectives, e.cfg.DistributionObjectiveReductions)
	}
	return reduced
}

func (e *Engine[G, M]) recordAndReport(gen *Generation[G, M]) {
	e.history = append(e.history, GenerationSummary{BestTotalCost: gen.BestTotalCost, AverageCost: gen.AverageCost})
	e.stop.update(e.history, e.cfg.TolStallBest, e.cfg.TolStallAverage)

	if e.cfg.Mode == NSGA3 {
		e.cfg.MOReportGeneration(e.generationStep, gen, gen.Fronts[0])
		return
	}
	e.cfg.SOReportGeneration(e.generationStep, gen, gen.Chromosomes[gen.BestChromosomeIndex].Genes)
}
