// Package refvec generates the simplex-lattice reference vectors NSGA-III
// uses for niching, via the Das-Dennis recursive construction.
package refvec

import (
	"errors"

	"gaengine/internal/matrix"
)

// ErrInvalidDepth is returned when the number of objectives is less than 1.
var ErrInvalidDepth = errors.New("refvec: depth must be at least 1")

// IntegerLattice returns the unnormalized integer lattice points of the
// depth-dimensional simplex with divisions subdivisions per axis: every
// non-negative integer vector of length depth whose components sum to
// divisions. Grounded on generate_integerReferenceVectors.
func IntegerLattice(depth, divisions int) ([][]float64, error) {
	if depth < 1 {
		return nil, ErrInvalidDepth
	}
	if depth == 1 {
		return [][]float64{{float64(divisions)}}, nil
	}

	var result [][]float64
	for i := 0; i <= divisions; i++ {
		tail, err := IntegerLattice(depth-1, divisions-i)
		if err != nil {
			return nil, err
		}
		for _, v1 := range tail {
			v2 := make([]float64, len(v1)+1)
			v2[0] = float64(i)
			copy(v2[1:], v1)
			result = append(result, v2)
		}
	}
	return result, nil
}

// DasDennis returns the normalized reference vectors (each lattice point
// divided by divisions, so rows sum to 1) as a Dense matrix. Grounded on
// generate_referenceVectors.
func DasDennis(depth, divisions int) (*matrix.Dense, error) {
	lattice, err := IntegerLattice(depth, divisions)
	if err != nil {
		return nil, err
	}
	dense := matrix.FromRows(lattice)
	for i := 0; i < dense.Rows(); i++ {
		for j := 0; j < dense.Cols(); j++ {
			dense.Set(i, j, dense.At(i, j)/float64(divisions))
		}
	}
	return dense, nil
}
