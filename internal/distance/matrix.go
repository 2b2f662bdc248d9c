package distance

import "fmt"

// IndexError reports a row index outside the matrix.
type IndexError struct {
	Index int
	Size  int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("distance: row %d out of range (size %d)", e.Index, e.Size)
}

// Matrix is an immutable square distance matrix stored flat in row-major order.
type Matrix struct {
	n    int
	data []float64
}

func newMatrix(n int) *Matrix {
	return &Matrix{n: n, data: make([]float64, n*n)}
}

func (m *Matrix) set(i, j int, v float64) { m.data[i*m.n+j] = v }

// Size returns N for an N×N matrix.
func (m *Matrix) Size() int { return m.n }

// At returns the distance between entities i and j. Panics if either index is out of range.
func (m *Matrix) At(i, j int) float64 {
	if i < 0 || i >= m.n {
		panic(&IndexError{Index: i, Size: m.n})
	}
	if j < 0 || j >= m.n {
		panic(&IndexError{Index: j, Size: m.n})
	}
	return m.data[i*m.n+j]
}

// Row returns a copy of row i.
func (m *Matrix) Row(i int) ([]float64, error) {
	if i < 0 || i >= m.n {
		return nil, &IndexError{Index: i, Size: m.n}
	}
	out := make([]float64, m.n)
	copy(out, m.data[i*m.n:(i+1)*m.n])
	return out, nil
}

// Rows returns a copy of the matrix as nested slices.
func (m *Matrix) Rows() [][]float64 {
	out := make([][]float64, m.n)
	for i := range out {
		out[i] = make([]float64, m.n)
		copy(out[i], m.data[i*m.n:(i+1)*m.n])
	}
	return out
}

// RowMean returns the arithmetic mean of row i over all N entries, the zero diagonal included.
func (m *Matrix) RowMean(i int) (float64, error) {
	if i < 0 || i >= m.n {
		return 0, &IndexError{Index: i, Size: m.n}
	}
	var sum float64
	for _, v := range m.data[i*m.n : (i+1)*m.n] {
		sum += v
	}
	return sum / float64(m.n), nil
}

// RowMeans returns RowMean for every row.
func (m *Matrix) RowMeans() []float64 {
	out := make([]float64, m.n)
	for i := range out {
		out[i], _ = m.RowMean(i)
	}
	return out
}
