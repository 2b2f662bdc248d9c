package distance

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairwise_KnownValue(t *testing.T) {
	d, err := Pairwise([]float64{4, 3, 2, 1}, []float64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, 4.47, math.Round(d*100)/100)
	assert.InDelta(t, math.Sqrt(20), d, 1e-12)
}

func TestPairwise_Properties(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for trial := range 50 {
		dim := 1 + trial%7
		a := make([]float64, dim)
		b := make([]float64, dim)
		for k := range a {
			a[k] = rng.Float64()*10 - 5
			b[k] = rng.Float64()*10 - 5
		}

		ab, err := Pairwise(a, b)
		require.NoError(t, err)
		ba, err := Pairwise(b, a)
		require.NoError(t, err)
		aa, err := Pairwise(a, a)
		require.NoError(t, err)

		assert.Equal(t, ab, ba, "commutative")
		assert.Equal(t, 0.0, aa, "identity")
		assert.GreaterOrEqual(t, ab, 0.0)
	}
}

func TestPairwise_LargeScoresStayFinite(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"squares overflow", []float64{3e200, 4e200}, []float64{0, 0}, 5e200},
		{"mixed magnitudes", []float64{1e300, 1}, []float64{0, 0}, 1e300},
		{"tiny differences", []float64{3e-200, 4e-200}, []float64{0, 0}, 5e-200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Pairwise(tt.a, tt.b)
			require.NoError(t, err)
			assert.False(t, math.IsInf(d, 0))
			assert.InEpsilon(t, tt.want, d, 1e-12)
		})
	}
}

func TestPairwise_Empty(t *testing.T) {
	d, err := Pairwise(nil, []float64{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, d)
}

func TestPairwise_DimensionMismatch(t *testing.T) {
	_, err := Pairwise([]float64{1, 2}, []float64{1, 2, 3})
	require.Error(t, err)

	var dme *DimensionMismatchError
	require.True(t, errors.As(err, &dme))
	assert.Equal(t, 2, dme.Left)
	assert.Equal(t, 3, dme.Right)
}

func TestBuildMatrix_KnownValues(t *testing.T) {
	m, err := BuildMatrix([][]float64{{1, 2}, {4, 6}, {7, 1}})
	require.NoError(t, err)
	require.Equal(t, 3, m.Size())

	want := [][]float64{
		{0, 5.0, 6.0828},
		{5.0, 0, 5.8310},
		{6.0828, 5.8310, 0},
	}
	for i := range want {
		for j := range want[i] {
			assert.InDelta(t, want[i][j], m.At(i, j), 1e-4, "cell [%d][%d]", i, j)
		}
	}
	assert.InDelta(t, 5.0, m.At(0, 1), 1e-12)
	assert.InDelta(t, math.Sqrt(37), m.At(0, 2), 1e-12)
	assert.InDelta(t, math.Sqrt(34), m.At(1, 2), 1e-12)
}

func TestBuildMatrix_SymmetricZeroDiagonal(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	vectors := make([][]float64, 40)
	for i := range vectors {
		vectors[i] = []float64{rng.Float64(), rng.Float64(), rng.Float64()}
	}

	m, err := BuildMatrix(vectors)
	require.NoError(t, err)
	for i := 0; i < m.Size(); i++ {
		assert.Equal(t, 0.0, m.At(i, i))
		for j := 0; j < m.Size(); j++ {
			require.Equal(t, m.At(i, j), m.At(j, i))
		}
	}
}

func TestBuildMatrix_EdgeSizes(t *testing.T) {
	m, err := BuildMatrix(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Size())
	assert.Empty(t, m.Rows())

	m, err = BuildMatrix([][]float64{{0.3, 0.4}})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0}}, m.Rows())
}

func TestBuildMatrix_InconsistentDimension(t *testing.T) {
	_, err := BuildMatrix([][]float64{{1, 2}, {3, 4}, {5}})
	require.Error(t, err)

	var ide *InconsistentDimensionError
	require.True(t, errors.As(err, &ide))
	assert.Equal(t, 2, ide.Row)
	assert.Equal(t, 2, ide.Expected)
	assert.Equal(t, 1, ide.Actual)
}

func TestBuildMatrixParallel_MatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	vectors := make([][]float64, 57)
	for i := range vectors {
		vectors[i] = []float64{rng.Float64(), rng.Float64(), rng.Float64(), rng.Float64()}
	}

	seq, err := BuildMatrix(vectors)
	require.NoError(t, err)

	for _, workers := range []int{0, 1, 2, 8} {
		par, err := BuildMatrixParallel(context.Background(), vectors, workers)
		require.NoError(t, err)
		assert.Equal(t, seq.Rows(), par.Rows(), "workers=%d", workers)
	}
}

func TestBuildMatrixParallel_InconsistentDimension(t *testing.T) {
	_, err := BuildMatrixParallel(context.Background(), [][]float64{{1}, {1, 2}}, 4)
	var ide *InconsistentDimensionError
	require.True(t, errors.As(err, &ide))
}

func TestBuildMatrixParallel_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := BuildMatrixParallel(ctx, [][]float64{{1}, {2}, {3}}, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "context cancelled")
}
