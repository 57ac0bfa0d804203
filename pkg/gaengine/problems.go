package gaengine

import (
	"math"

	"gaengine/internal/ga"
)

// scratch is the middle-cost type shared by every built-in demo problem.
// SOGA/IGA problems stash their scalar cost in Value; the NSGA-III problem
// leaves it unused since its objectives live on the chromosome directly.
type scratch struct {
	Value float64
}

const sphereDimensions = 3
const sphereBound = 10.0

func sphereInitGenes(rnd01 ga.RandFunc) []float64 {
	genes := make([]float64, sphereDimensions)
	for i := range genes {
		genes[i] = sphereBound * (2*rnd01() - 1)
	}
	return genes
}

func sphereCrossover(a, b []float64, rnd01 ga.RandFunc) []float64 {
	child := make([]float64, len(a))
	for i := range child {
		t := rnd01()
		child[i] = a[i] + t*(b[i]-a[i])
	}
	return child
}

func sphereMutate(genes []float64, rnd01 ga.RandFunc, shrinkScale float64) []float64 {
	mutated := make([]float64, len(genes))
	copy(mutated, genes)
	i := int(rnd01() * float64(len(mutated)))
	if i >= len(mutated) {
		i = len(mutated) - 1
	}
	delta := shrinkScale * sphereBound * (2*rnd01() - 1)
	mutated[i] += delta
	if mutated[i] > sphereBound {
		mutated[i] = sphereBound
	}
	if mutated[i] < -sphereBound {
		mutated[i] = -sphereBound
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

func sphereEval(genes []float64, middle *scratch) bool {
	middle.Value = sphereCost(genes)
	return true
}

// sphereEvalReject is the "sphere-reject" demo problem: candidates whose
// first gene is negative are rejected outright, exercising the engine's
// retry-until-accepted path in initializePopulation/applyVariation.
func sphereEvalReject(genes []float64, middle *scratch) bool {
	if genes[0] < 0 {
		return false
	}
	middle.Value = sphereCost(genes)
	return true
}

func sphereFitness(c ga.Chromosome[[]float64, scratch]) float64 {
	return c.Middle.Value
}

// newSphereConfig builds the SOGA sphere-minimization demo problem from
// spec.md's seeded scenario 1; reject selects the scenario-2 rejection
// variant in place of the always-accepting evaluator.
func newSphereConfig(population, eliteCount, generationMax int, seed int64, reject bool) *ga.Config[[]float64, scratch] {
	evalSolution := sphereEval
	if reject {
		evalSolution = sphereEvalReject
	}
	return &ga.Config[[]float64, scratch]{
		Mode:                    ga.SOGA,
		Population:              population,
		EliteCount:              eliteCount,
		CrossoverFraction:       0.7,
		MutationRate:            0.1,
		GenerationMax:           generationMax,
		TolStallBest:            1e-6,
		TolStallAverage:         1e-6,
		BestStallMax:            20,
		AverageStallMax:         20,
		MultiThreading:          true,
		NThreads:                4,
		Seed:                    seed,
		InitGenes:               sphereInitGenes,
		Mutate:                  sphereMutate,
		Crossover:               sphereCrossover,
		EvalSolution:            evalSolution,
		CalculateSOTotalFitness: sphereFitness,
		SOReportGeneration:      func(int, *ga.Generation[[]float64, scratch], []float64) {},
	}
}

// zdt1Dimensions is a reduced but faithful ZDT1: f1(x) = x1,
// f2(x) = g(x)*(1 - sqrt(x1/g(x))), g(x) = 1 + 9*sum(x2..xn)/(n-1), with
// every gene bounded to [0, 1] per the benchmark's definition.
const zdt1Dimensions = 5

func zdt1InitGenes(rnd01 ga.RandFunc) []float64 {
	genes := make([]float64, zdt1Dimensions)
	for i := range genes {
		genes[i] = rnd01()
	}
	return genes
}

func zdt1Crossover(a, b []float64, rnd01 ga.RandFunc) []float64 {
	child := make([]float64, len(a))
	for i := range child {
		t := rnd01()
		child[i] = a[i] + t*(b[i]-a[i])
	}
	return child
}

func zdt1Mutate(genes []float64, rnd01 ga.RandFunc, shrinkScale float64) []float64 {
	mutated := make([]float64, len(genes))
	copy(mutated, genes)
	i := int(rnd01() * float64(len(mutated)))
	if i >= len(mutated) {
		i = len(mutated) - 1
	}
	mutated[i] += shrinkScale * (2*rnd01() - 1)
	if mutated[i] > 1 {
		mutated[i] = 1
	}
	if mutated[i] < 0 {
		mutated[i] = 0
	}
	return mutated
}

func zdt1Eval(genes []float64, middle *scratch) bool {
	return true
}

func zdt1Objectives(c *ga.Chromosome[[]float64, scratch]) []float64 {
	x := c.Genes
	g := 1.0
	for _, xi := range x[1:] {
		g += 9 * xi / float64(len(x)-1)
	}
	f1 := x[0]
	f2 := g * (1 - math.Sqrt(f1/g))
	return []float64{f1, f2}
}

// newZDT1Config builds the NSGA-III ZDT1 demo problem, spec.md's seeded
// scenario 4.
func newZDT1Config(population, generationMax int, seed int64) *ga.Config[[]float64, scratch] {
	return &ga.Config[[]float64, scratch]{
		Mode:                   ga.NSGA3,
		Population:             population,
		CrossoverFraction:      0.9,
		MutationRate:           0.1,
		GenerationMax:          generationMax,
		TolStallBest:           1e-9,
		TolStallAverage:        1e-9,
		BestStallMax:           generationMax + 1,
		AverageStallMax:        generationMax + 1,
		EnableReferenceVectors: true,
		MultiThreading:         true,
		NThreads:               4,
		Seed:                   seed,
		InitGenes:              zdt1InitGenes,
		Mutate:                 zdt1Mutate,
		Crossover:              zdt1Crossover,
		EvalSolution:           zdt1Eval,
		CalculateMOObjectives:  zdt1Objectives,
		MOReportGeneration:     func(int, *ga.Generation[[]float64, scratch], []int) {},
	}
}
