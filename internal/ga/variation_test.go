package ga

import (
	"context"
	"testing"

	"gaengine/internal/rngpool"
)

func TestInitializePopulationFillsToPopulationSize(t *testing.T) {
	cfg := newSphereConfig(20, 2, 10, 1)
	rng := rngpool.NewSeeded(1)
	gen := newGeneration[[]float64, sphereMiddle](cfg.Population)

	_, cancelled := initializePopulation(context.Background(), cfg, rng, gen)
	if cancelled {
		t.Fatal("did not expect cancellation")
	}
	if len(gen.Chromosomes) != cfg.Population {
		t.Fatalf("expected %d chromosomes, got %d", cfg.Population, len(gen.Chromosomes))
	}
}

func TestInitializePopulationHonorsUserInitialSolutions(t *testing.T) {
	cfg := newSphereConfig(5, 1, 10, 1)
	cfg.UserInitialSolutions = [][]float64{{1, 1, 1}, {2, 2, 2}}
	rng := rngpool.NewSeeded(1)
	gen := newGeneration[[]float64, sphereMiddle](cfg.Population)

	initializePopulation(context.Background(), cfg, rng, gen)
	if len(gen.Chromosomes) != 5 {
		t.Fatalf("expected 5 chromosomes, got %d", len(gen.Chromosomes))
	}
	if gen.Chromosomes[0].Genes[0] != 1 || gen.Chromosomes[1].Genes[0] != 2 {
		t.Fatalf("expected the user initial solutions to occupy the first slots, got %v", gen.Chromosomes[:2])
	}
}

func TestInitializePopulationRetriesRejectedCandidates(t *testing.T) {
	cfg := newSphereConfig(10, 1, 10, 1)
	cfg.EvalSolution = sphereEvalRejectNegativeFirst
	rng := rngpool.NewSeeded(7)
	gen := newGeneration[[]float64, sphereMiddle](cfg.Population)

	initializePopulation(context.Background(), cfg, rng, gen)
	for _, c := range gen.Chromosomes {
		if c.Genes[0] < 0 {
			t.Fatalf("expected every accepted gene to satisfy x[0] >= 0, got %v", c.Genes)
		}
	}
}

func TestTransferSurvivorsCopiesAllForSOGA(t *testing.T) {
	cfg := newSphereConfig(3, 1, 10, 1)
	last := &Generation[[]float64, sphereMiddle]{Chromosomes: []Chromosome[[]float64, sphereMiddle]{
		{Genes: []float64{1}}, {Genes: []float64{2}}, {Genes: []float64{3}},
	}}
	next := newGeneration[[]float64, sphereMiddle](0)
	transferSurvivors(cfg, last, next)
	if len(next.Chromosomes) != 3 {
		t.Fatalf("expected all 3 survivors transferred, got %d", len(next.Chromosomes))
	}
}

func TestTransferSurvivorsOnlyElitesForIGA(t *testing.T) {
	cfg := &Config[[]float64, sphereMiddle]{Mode: IGA, EliteCount: 2}
	last := &Generation[[]float64, sphereMiddle]{
		Chromosomes:   []Chromosome[[]float64, sphereMiddle]{{Genes: []float64{1}}, {Genes: []float64{2}}, {Genes: []float64{3}}},
		SortedIndices: []int{2, 0, 1},
	}
	next := newGeneration[[]float64, sphereMiddle](0)
	transferSurvivors(cfg, last, next)
	if len(next.Chromosomes) != 2 {
		t.Fatalf("expected 2 elites transferred, got %d", len(next.Chromosomes))
	}
	if next.Chromosomes[0].Genes[0] != 3 || next.Chromosomes[1].Genes[0] != 1 {
		t.Fatalf("expected elites in sorted_indices order, got %v", next.Chromosomes)
	}
}

func TestApplyVariationFillsOffspringSlots(t *testing.T) {
	cfg := newSphereConfig(20, 5, 10, 1)
	rng := rngpool.NewSeeded(3)
	lastGen := newGeneration[[]float64, sphereMiddle](cfg.Population)
	initializePopulation(context.Background(), cfg, rng, lastGen)
	for i := range lastGen.Chromosomes {
		lastGen.Chromosomes[i].TotalCost = sphereCost(lastGen.Chromosomes[i].Genes)
	}
	lastGen.SortedIndices = sortByTotalCost(lastGen.Chromosomes)
	rank := soRankFromSortedIndices(lastGen.SortedIndices)
	lastGen.SelectionChanceCumulative = selectionChanceCumulative(rank)

	newGen := newGeneration[[]float64, sphereMiddle](0)
	transferSurvivors(cfg, lastGen, newGen)
	offset := len(newGen.Chromosomes)

	_, cancelled := applyVariation(context.Background(), cfg, rng, 1, lastGen, newGen)
	if cancelled {
		t.Fatal("did not expect cancellation")
	}
	if len(newGen.Chromosomes) != offset+cfg.offspringCount() {
		t.Fatalf("expected %d total chromosomes, got %d", offset+cfg.offspringCount(), len(newGen.Chromosomes))
	}
}
