package ga

import "math"

// Shared fixtures for the seeded scenarios in spec §8: a 3-D sphere problem
// for SOGA (with an optional rejection rule), and a 2-objective ZDT-1-like
// problem for NSGA-III.

type sphereMiddle struct {
	Cost float64
}

func sphereInitGenes(rnd01 RandFunc) []float64 {
	genes := make([]float64, 3)
	for i := range genes {
		genes[i] = rnd01()*20 - 10
	}
	return genes
}

func sphereCrossover(a, b []float64, rnd01 RandFunc) []float64 {
	child := make([]float64, len(a))
	for i := range child {
		t := rnd01()
		child[i] = a[i]*t + b[i]*(1-t)
	}
	return child
}

func sphereMutate(genes []float64, rnd01 RandFunc, shrinkScale float64) []float64 {
	mutated := make([]float64, len(genes))
	copy(mutated, genes)
	idx := int(rnd01() * float64(len(mutated)))
	if idx >= len(mutated) {
		idx = len(mutated) - 1
	}
	delta := (rnd01()*2 - 1) * 10 * shrinkScale
	mutated[idx] += delta
	if mutated[idx] > 10 {
		mutated[idx] = 10
	}
	if mutated[idx] < -10 {
		mutated[idx] = -10
	}
	return mutated
}

func sphereCost(genes []float64) float64 {
	sum := 0.0
	for _, x := range genes {
		sum += x * x
	}
	return sum
}

func sphereEval(genes []float64, middle *sphereMiddle) bool {
	middle.Cost = sphereCost(genes)
	return true
}

func sphereEvalRejectNegativeFirst(genes []float64, middle *sphereMiddle) bool {
	if genes[0] < 0 {
		return false
	}
	middle.Cost = sphereCost(genes)
	return true
}

func sphereSOFitness(c Chromosome[[]float64, sphereMiddle]) float64 {
	return c.Middle.Cost
}

// newSphereConfig builds a ready-to-run SOGA config for the sphere problem,
// with report/fitness callbacks the caller can override after construction.
func newSphereConfig(population, elite, generationMax int, seed int64) *Config[[]float64, sphereMiddle] {
	return &Config[[]float64, sphereMiddle]{
		Mode:              SOGA,
		Population:        population,
		EliteCount:        elite,
		CrossoverFraction: 0.7,
		MutationRate:      0.1,
		GenerationMax:     generationMax,
		TolStallBest:      1e-9,
		TolStallAverage:   1e-9,
		BestStallMax:      10,
		AverageStallMax:   10,
		Seed:              seed,
		InitGenes:         sphereInitGenes,
		Mutate:            sphereMutate,
		Crossover:         sphereCrossover,
		EvalSolution:      sphereEval,

		CalculateSOTotalFitness: sphereSOFitness,
		SOReportGeneration:      func(int, *Generation[[]float64, sphereMiddle], []float64) {},
	}
}

func zdt1InitGenes(rnd01 RandFunc) []float64 {
	return []float64{rnd01()}
}

func zdt1Crossover(a, b []float64, rnd01 RandFunc) []float64 {
	t := rnd01()
	return []float64{a[0]*t + b[0]*(1-t)}
}

func zdt1Mutate(genes []float64, rnd01 RandFunc, shrinkScale float64) []float64 {
	x := genes[0] + (rnd01()*2-1)*0.2*shrinkScale
	if x < 0 {
		x = 0
	}
	if x > 1 {
		x = 1
	}
	return []float64{x}
}

func zdt1Eval(genes []float64, middle *sphereMiddle) bool {
	return true
}

func zdt1Objectives(c *Chromosome[[]float64, sphereMiddle]) []float64 {
	x := c.Genes[0]
	f2 := 1.0
	if x >= 0 {
		f2 = 1 - math.Sqrt(x)
	}
	return []float64{x, f2}
}

func newZDT1Config(population, generationMax int, seed int64) *Config[[]float64, sphereMiddle] {
	return &Config[[]float64, sphereMiddle]{
		Mode:              NSGA3,
		Population:        population,
		EliteCount:        0,
		CrossoverFraction: 0.9,
		MutationRate:      0.2,
		GenerationMax:     generationMax,
		TolStallBest:      1e-9,
		TolStallAverage:   1e-9,
		BestStallMax:      generationMax + 1,
		AverageStallMax:   generationMax + 1,
		Seed:              seed,
		InitGenes:         zdt1InitGenes,
		Mutate:            zdt1Mutate,
		Crossover:         zdt1Crossover,
		EvalSolution:      zdt1Eval,

		CalculateMOObjectives: zdt1Objectives,
		MOReportGeneration:    func(int, *Generation[[]float64, sphereMiddle], []int) {},
	}
}
