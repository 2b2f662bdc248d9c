// Package distance computes Euclidean distances between feature vectors and
// the symmetric pairwise distance matrix over a set of entities.
package distance

import (
	"context"
	"fmt"
	"math"

	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"
)

// DimensionMismatchError reports two vectors of unequal length passed to Pairwise.
type DimensionMismatchError struct {
	Left  int
	Right int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("distance: dimension mismatch (%d vs %d)", e.Left, e.Right)
}

// InconsistentDimensionError reports a vector whose length differs from the first vector's.
type InconsistentDimensionError struct {
	Row      int // 0-based position in the input
	Expected int
	Actual   int
}

func (e *InconsistentDimensionError) Error() string {
	return fmt.Sprintf("distance: vector %d has dimension %d, expected %d", e.Row, e.Actual, e.Expected)
}

// Pairwise returns the Euclidean distance between a and b.
func Pairwise(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, &DimensionMismatchError{Left: len(a), Right: len(b)}
	}
	return euclidean(a, b), nil
}

// euclidean assumes len(a) == len(b). The sum of squares is kept relative to
// the largest component difference so squares of large scores cannot overflow.
func euclidean(a, b []float64) float64 {
	scale, ssq := 0.0, 1.0
	for k := range a {
		d := math.Abs(a[k] - b[k])
		if d == 0 {
			continue
		}
		if scale < d {
			r := scale / d
			ssq = 1 + ssq*r*r
			scale = d
		} else {
			r := d / scale
			ssq += r * r
		}
	}
	return scale * math.Sqrt(ssq)
}

func checkDimensions(vectors [][]float64) error {
	if len(vectors) == 0 {
		return nil
	}
	dim := len(vectors[0])
	for i, v := range vectors[1:] {
		if len(v) != dim {
			return &InconsistentDimensionError{Row: i + 1, Expected: dim, Actual: len(v)}
		}
	}
	return nil
}

// BuildMatrix computes the pairwise distance matrix. Each unordered pair is
// computed once and written to both [i][j] and [j][i]; the diagonal stays exactly zero.
func BuildMatrix(vectors [][]float64) (*Matrix, error) {
	if err := checkDimensions(vectors); err != nil {
		return nil, err
	}

	m := newMatrix(len(vectors))
	for i := range vectors {
		fillRow(m, vectors, i)
	}
	return m, nil
}

// BuildMatrixParallel produces the same matrix as BuildMatrix with rows spread
// over up to workers goroutines. Row i's goroutine owns cells [i][j] and [j][i]
// for j > i, so no cell is written twice.
func BuildMatrixParallel(ctx context.Context, vectors [][]float64, workers int) (*Matrix, error) {
	if workers <= 1 {
		return BuildMatrix(vectors)
	}
	if err := checkDimensions(vectors); err != nil {
		return nil, err
	}

	m := newMatrix(len(vectors))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range vectors {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return eris.Wrap(err, "distance: context cancelled")
			}
			fillRow(m, vectors, i)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return m, nil
}

func fillRow(m *Matrix, vectors [][]float64, i int) {
	for j := i + 1; j < len(vectors); j++ {
		d := euclidean(vectors[i], vectors[j])
		m.set(i, j, d)
		m.set(j, i, d)
	}
}
