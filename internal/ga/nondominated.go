package ga

// dominates reports whether a dominates b under pure minimization: no
// component of a exceeds the matching component of b, and at least one is
// strictly less. Equal vectors do not dominate each other.
func dominates(a, b []float64) bool {
	strictlyLess := false
	for k := range a {
		if a[k] > b[k] {
			return false
		}
		if a[k] < b[k] {
			strictlyLess = true
		}
	}
	return strictlyLess
}

// fastNonDominatedSort partitions n individuals (identified by index 0..n-1)
// into Pareto fronts given their objective vectors. Front 0 is dominated by
// nobody. Grounded on openGA.hpp's domination_set/dominated_count peeling.
func fastNonDominatedSort(objectives [][]float64) [][]int {
	n := len(objectives)
	dominationSet := make([][]int, n)
	dominatedCount := make([]int, n)

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			switch {
			case dominates(objectives[i], objectives[j]):
				dominationSet[i] = append(dominationSet[i], j)
				dominatedCount[j]++
			case dominates(objectives[j], objectives[i]):
				dominationSet[j] = append(dominationSet[j], i)
				dominatedCount[i]++
			}
		}
	}

	var fronts [][]int
	remaining := make([]int, n)
	copy(remaining, dominatedCount)

	var current []int
	for i := 0; i < n; i++ {
		if remaining[i] == 0 {
			current = append(current, i)
		}
	}

	for len(current) > 0 {
		fronts = append(fronts, current)
		var next []int
		for _, i := range current {
			for _, j := range dominationSet[i] {
				remaining[j]--
				if remaining[j] == 0 {
					next = append(next, j)
				}
			}
		}
		current = next
	}

	return fronts
}

// frontOf returns the front index of every individual, the "rank" used for
// selection probability.
func frontOf(fronts [][]int, n int) []int {
	rank := make([]int, n)
	for f, front := range fronts {
		for _, i := range front {
			rank[i] = f
		}
	}
	return rank
}
