package ga

import (
	"fmt"
	"log"
	"math"
	"sync"

	"gaengine/internal/matrix"
	"gaengine/internal/refvec"
)

// mo3State holds the NSGA-III running state that persists across
// generations: ideal/extreme objective tracking and the lazily generated
// reference vectors. It is owned by the Engine, never touched from a
// parallel section (spec §5).
type mo3State struct {
	nRobj int

	idealObjectives         []float64
	extremeObjectives       *matrix.Dense
	scalarizedObjectivesMin []float64

	referenceVectors *matrix.Dense
	divisions        int

	warnSingularOnce sync.Once
}

func newMO3State() *mo3State {
	return &mo3State{}
}

// reduceObjectives applies the optional caller reduction.
func reduceObjectives(objectives []float64, reduce ObjectiveReductionFunc) []float64 {
	if reduce == nil {
		return objectives
	}
	return reduce(objectives)
}

// updateIdeal bootstraps or tightens the running componentwise minimum.
func (s *mo3State) updateIdeal(reduced [][]float64) error {
	if len(reduced) == 0 || len(reduced[0]) == 0 {
		return fmt.Errorf("%w: zero reduced objectives", ErrInvariantViolation)
	}
	if s.idealObjectives == nil {
		s.nRobj = len(reduced[0])
		s.idealObjectives = append([]float64(nil), reduced[0]...)
	}
	for _, row := range reduced {
		if len(row) != s.nRobj {
			return fmt.Errorf("%w: objective vector size mismatch", ErrInvariantViolation)
		}
		for j, v := range row {
			if v < s.idealObjectives[j] {
				s.idealObjectives[j] = v
			}
		}
	}
	return nil
}

// translate builds Z[i,j] = reduced[i][j] - ideal[j].
func translate(reduced [][]float64, ideal []float64) *matrix.Dense {
	z := matrix.NewDense(len(reduced), len(ideal))
	for i, row := range reduced {
		for j, v := range row {
			z.Set(i, j, v-ideal[j])
		}
	}
	return z
}

// scalarize finds one extreme point per objective axis via the Chebyshev
// scalarization in spec §4.8 step 3, updating extremeObjectives in place.
func (s *mo3State) scalarize(z *matrix.Dense) {
	n := z.Cols()
	if s.extremeObjectives == nil {
		s.extremeObjectives = matrix.NewDense(n, n)
		s.scalarizedObjectivesMin = make([]float64, n)
		for i := range s.scalarizedObjectivesMin {
			s.scalarizedObjectivesMin[i] = math.Inf(1)
		}
	}

	for i := 0; i < n; i++ {
		w := make([]float64, n)
		for k := range w {
			w[k] = 1e-10
		}
		w[i] = 1.0

		minScalar := math.Inf(1)
		minIdx := -1
		for row := 0; row < z.Rows(); row++ {
			valMax := math.Inf(-1)
			for k := 0; k < n; k++ {
				if v := z.At(row, k) / w[k]; v > valMax {
					valMax = v
				}
			}
			if valMax < minScalar {
				minScalar = valMax
				minIdx = row
			}
		}
		if minIdx >= 0 && minScalar < s.scalarizedObjectivesMin[i] {
			s.scalarizedObjectivesMin[i] = minScalar
			s.extremeObjectives.SetRow(i, z.Row(minIdx))
		}
	}
}

// intercepts solves the hyperplane system, falling back to componentwise
// max-per-axis intercepts (logged once) when the system is singular.
func (s *mo3State) intercepts(z *matrix.Dense) []float64 {
	values, err := matrix.SolveHyperplaneIntercepts(s.extremeObjectives)
	if err == nil {
		return values
	}
	s.warnSingularOnce.Do(func() {
		log.Printf("ga: hyperplane intercept matrix is singular, falling back to componentwise max-per-axis intercepts")
	})
	return matrix.MaxPerAxisIntercepts(z)
}

// normalize divides every column of z by its intercept.
func normalize(z *matrix.Dense, intercepts []float64) *matrix.Dense {
	n := matrix.NewDense(z.Rows(), z.Cols())
	for i := 0; i < z.Rows(); i++ {
		for j := 0; j < z.Cols(); j++ {
			n.Set(i, j, z.At(i, j)/intercepts[j])
		}
	}
	return n
}

// ensureReferenceVectors generates the Das-Dennis lattice lazily, choosing
// the smallest division count whose row count exceeds the population when
// ReferenceVectorDivisions is 0 (auto-pick, starting from d=2).
func (s *mo3State) ensureReferenceVectors(nRobj, population, configuredDivisions int) error {
	if s.referenceVectors != nil {
		return nil
	}
	d := configuredDivisions
	if d <= 0 {
		d = 2
		for {
			count := binomial(nRobj+d-1, d)
			if count > population {
				break
			}
			d++
		}
	}
	vectors, err := refvec.DasDennis(nRobj, d)
	if err != nil {
		return err
	}
	s.referenceVectors = vectors
	s.divisions = d
	return nil
}

func binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	result := 1
	for i := 0; i < k; i++ {
		result = result * (n - i) / (i + 1)
	}
	return result
}

// associate computes, for each row of normalized objectives, the nearest
// reference vector (perpendicular distance) and returns the association and
// distance tables plus an initialized niche-count slice.
func associate(normalized, referenceVectors *matrix.Dense) (assoc []int, dist []float64, niche []int, distances *matrix.Dense) {
	nPop := normalized.Rows()
	nRef := referenceVectors.Rows()

	unit := make([][]float64, nRef)
	for j := 0; j < nRef; j++ {
		row := referenceVectors.Row(j)
		norm := 0.0
		for _, v := range row {
			norm += v * v
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			norm = 1
		}
		u := make([]float64, len(row))
		for k, v := range row {
			u[k] = v / norm
		}
		unit[j] = u
	}

	distances = matrix.NewDense(nPop, nRef)
	assoc = make([]int, nPop)
	dist = make([]float64, nPop)
	niche = make([]int, nRef)

	for i := 0; i < nPop; i++ {
		row := normalized.Row(i)
		bestJ := 0
		bestD := math.Inf(1)
		for j := 0; j < nRef; j++ {
			dot := 0.0
			for k, v := range row {
				dot += v * unit[j][k]
			}
			sumSq := 0.0
			for k, v := range row {
				proj := dot * unit[j][k]
				diff := v - proj
				sumSq += diff * diff
			}
			d := math.Sqrt(sumSq)
			distances.Set(i, j, d)
			if d < bestD {
				bestD = d
				bestJ = j
			}
		}
		assoc[i] = bestJ
		dist[i] = bestD
	}
	return assoc, dist, niche, distances
}

// nicheSelect runs the §4.8 step-7 fill-by-fronts + niching loop, returning
// the indices (into the combined generation) chosen for the new population.
func nicheSelect(fronts [][]int, population int, assoc []int, distances *matrix.Dense, niche []int, enableReferenceVectors bool, totalSize int, rnd01 RandFunc) []int {
	selected := make([]int, 0, population)

	lastFrontIndex := 0
	for lastFrontIndex < len(fronts) && len(selected)+len(fronts[lastFrontIndex]) <= population {
		selected = append(selected, fronts[lastFrontIndex]...)
		for _, i := range fronts[lastFrontIndex] {
			if enableReferenceVectors {
				niche[assoc[i]]++
			}
		}
		lastFrontIndex++
	}

	if len(selected) == population || lastFrontIndex >= len(fronts) {
		return selected
	}

	lastFront := append([]int(nil), fronts[lastFrontIndex]...)

	for len(selected) < population {
		if !enableReferenceVectors {
			idx := int(math.Floor(float64(len(lastFront)) * rnd01()))
			if idx >= len(lastFront) {
				idx = 0
			}
			selected = append(selected, lastFront[idx])
			lastFront = append(lastFront[:idx], lastFront[idx+1:]...)
			continue
		}

		minNicheIdx := indexOfMin(niche)
		var neighbors []int
		for _, i := range lastFront {
			if assoc[i] == minNicheIdx {
				neighbors = append(neighbors, i)
			}
		}
		if len(neighbors) == 0 {
			niche[minNicheIdx] = 10 * totalSize
			continue
		}

		var next int
		if niche[minNicheIdx] == 0 {
			next = neighbors[0]
			minVal := distances.At(neighbors[0], minNicheIdx)
			for _, i := range neighbors {
				if v := distances.At(i, minNicheIdx); v < minVal {
					minVal = v
					next = i
				}
			}
		} else {
			next = neighbors[int(math.Floor(float64(len(neighbors))*rnd01()))%len(neighbors)]
		}

		selected = append(selected, next)
		for idx, v := range lastFront {
			if v == next {
				lastFront = append(lastFront[:idx], lastFront[idx+1:]...)
				break
			}
		}
		niche[minNicheIdx]++
	}

	return selected
}

func indexOfMin(v []int) int {
	minIdx := 0
	for i, x := range v {
		if x < v[minIdx] {
			minIdx = i
		}
	}
	return minIdx
}
