package ga

import (
	"context"

	"gaengine/internal/rngpool"
)

// initializePopulation seeds a fresh Generation: first the caller's
// UserInitialSolutions (evaluated sequentially, since init_population_try
// must run one at a time to reuse the same generation slice), then the
// remaining slots via the configured pool strategy. Rejected candidates are
// redrawn from InitGenes until EvalSolution/EvalSolutionIGA accepts them.
func initializePopulation[G any, M any](ctx context.Context, cfg *Config[G, M], rng *rngpool.Pool, gen *Generation[G, M]) (int, bool) {
	rnd01 := func() float64 { return rng.Float64() }

	gen.Chromosomes = gen.Chromosomes[:0]
	for _, genes := range cfg.UserInitialSolutions {
		if len(gen.Chromosomes) >= cfg.Population {
			break
		}
		var middle M
		accepted := false
		if cfg.Mode == IGA {
			accepted = cfg.EvalSolutionIGA(genes, &middle, gen)
		} else {
			accepted = cfg.EvalSolution(genes, &middle)
		}
		if accepted {
			gen.Chromosomes = append(gen.Chromosomes, Chromosome[G, M]{Genes: genes, Middle: middle})
		}
	}

	offset := len(gen.Chromosomes)
	nAdd := cfg.Population - offset
	if nAdd <= 0 {
		return 0, false
	}
	gen.Chromosomes = append(gen.Chromosomes, make([]Chromosome[G, M], nAdd)...)

	action := func(slot int) int {
		attempts := 0
		for {
			genes := cfg.InitGenes(rnd01)
			var middle M
			var accepted bool
			if cfg.Mode == IGA {
				accepted = cfg.EvalSolutionIGA(genes, &middle, gen)
			} else {
				accepted = cfg.EvalSolution(genes, &middle)
			}
			if accepted {
				gen.Chromosomes[slot] = Chromosome[G, M]{Genes: genes, Middle: middle}
				return attempts
			}
			attempts++
		}
	}

	return runPool(ctx, cfg, offset, nAdd, action)
}

// transferSurvivors copies last generation's chromosomes into newGen: every
// member for SOGA/NSGA3, or only the elites (by sorted rank) for IGA, whose
// final evaluation is assumed expensive enough to avoid re-scoring survivors.
func transferSurvivors[G any, M any](cfg *Config[G, M], lastGen, newGen *Generation[G, M]) {
	if cfg.Mode != IGA {
		newGen.Chromosomes = append(newGen.Chromosomes[:0], lastGen.Chromosomes...)
		return
	}
	newGen.Chromosomes = newGen.Chromosomes[:0]
	for i := 0; i < cfg.EliteCount; i++ {
		newGen.Chromosomes = append(newGen.Chromosomes, lastGen.Chromosomes[lastGen.SortedIndices[i]])
	}
}

// applyVariation fills cfg.offspringCount() child slots onto the end of
// newGen (already holding the transferred survivors), drawing parents from
// lastGen's selection table via crossover and optional mutation.
func applyVariation[G any, M any](ctx context.Context, cfg *Config[G, M], rng *rngpool.Pool, generationStep int, lastGen, newGen *Generation[G, M]) (int, bool) {
	rnd01 := func() float64 { return rng.Float64() }

	nAdd := cfg.offspringCount()
	offset := len(newGen.Chromosomes)
	newGen.Chromosomes = append(newGen.Chromosomes, make([]Chromosome[G, M], nAdd)...)

	shrinkScale := cfg.ShrinkScale
	if shrinkScale == nil {
		shrinkScale = DefaultShrinkScale
	}

	action := func(slot int) int {
		attempts := 0
		for {
			p1, p2 := pickCrossoverPair(lastGen.SelectionChanceCumulative, rnd01)
			childGenes := cfg.Crossover(lastGen.Chromosomes[p1].Genes, lastGen.Chromosomes[p2].Genes, rnd01)
			if rnd01() <= cfg.MutationRate {
				scale := shrinkScale(generationStep, rnd01)
				childGenes = cfg.Mutate(childGenes, rnd01, scale)
			}

			var middle M
			var accepted bool
			if cfg.Mode == IGA {
				accepted = cfg.EvalSolutionIGA(childGenes, &middle, newGen)
			} else {
				accepted = cfg.EvalSolution(childGenes, &middle)
			}
			if accepted {
				newGen.Chromosomes[slot] = Chromosome[G, M]{Genes: childGenes, Middle: middle}
				return attempts
			}
			attempts++
		}
	}

	return runPool(ctx, cfg, offset, nAdd, action)
}
