package matrix

import (
	"errors"
	"math"
)

// ErrSingularIntercepts is returned by SolveHyperplaneIntercepts when a pivot
// of the extreme-objectives matrix is too close to zero to invert safely.
var ErrSingularIntercepts = errors.New("matrix: extreme objectives matrix is singular")

const pivotEpsilon = 1e-12

// SolveHyperplaneIntercepts solves A^T x = 1 for the square extreme-objectives
// matrix A via Doolittle LU decomposition without pivoting, then returns the
// per-axis intercepts 1/x. Unlike the unpivoted C++ original, a near-zero
// pivot is reported as ErrSingularIntercepts instead of silently dividing by
// zero; callers fall back to componentwise max-per-axis intercepts.
func SolveHyperplaneIntercepts(extreme *Dense) ([]float64, error) {
	if extreme.Rows() != extreme.Cols() {
		return nil, errors.New("matrix: extreme objectives must be square")
	}
	n := extreme.Rows()
	l := NewDense(n, n)
	u := NewDense(n, n)

	for i := 0; i < n; i++ {
		for k := i; k < n; k++ {
			sum := 0.0
			for j := 0; j < i; j++ {
				sum += l.At(i, j) * u.At(j, k)
			}
			u.Set(i, k, extreme.At(k, i)-sum)
		}
		if math.Abs(u.At(i, i)) < pivotEpsilon {
			return nil, ErrSingularIntercepts
		}
		for k := i; k < n; k++ {
			if i == k {
				l.Set(i, i, 1)
				continue
			}
			sum := 0.0
			for j := 0; j < i; j++ {
				sum += l.At(k, j) * u.At(j, i)
			}
			l.Set(k, i, (extreme.At(i, k)-sum)/u.At(i, i))
		}
	}

	y := make([]float64, n)
	for i := 0; i < n; i++ {
		sum := 0.0
		for k := 0; k < i; k++ {
			sum += l.At(i, k) * y[k]
		}
		y[i] = (1.0 - sum) / l.At(i, i)
	}

	x := make([]float64, n)
	for ii := 0; ii < n; ii++ {
		i := n - 1 - ii
		sum := 0.0
		for k := i + 1; k < n; k++ {
			sum += u.At(i, k) * x[k]
		}
		x[i] = (y[i] - sum) / u.At(i, i)
	}

	intercepts := make([]float64, n)
	for i := 0; i < n; i++ {
		if math.Abs(x[i]) < pivotEpsilon {
			return nil, ErrSingularIntercepts
		}
		intercepts[i] = 1.0 / x[i]
	}
	return intercepts, nil
}

// MaxPerAxisIntercepts is the fallback used when SolveHyperplaneIntercepts
// reports ErrSingularIntercepts: the maximum observed value on each objective
// column, clamped away from zero.
func MaxPerAxisIntercepts(objectives *Dense) []float64 {
	cols := objectives.Cols()
	intercepts := make([]float64, cols)
	for j := 0; j < cols; j++ {
		max := 0.0
		for i := 0; i < objectives.Rows(); i++ {
			if v := objectives.At(i, j); v > max {
				max = v
			}
		}
		if max < pivotEpsilon {
			max = pivotEpsilon
		}
		intercepts[j] = max
	}
	return intercepts
}
