package preprocessing

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesspalding/STAT543-grad/internal/data"
)

func normalizerMatrix(n int) *data.Matrix {
	rng := rand.New(rand.NewSource(11))
	m := &data.Matrix{
		Names:        []string{"Duration", "PageValues", "Weekend", "Month_Feb"},
		NumericCount: 2,
		X:            make([][]float64, n),
		Y:            make([]int, n),
	}
	for i := 0; i < n; i++ {
		m.X[i] = []float64{rng.Float64() * 100, rng.Float64() * 50, float64(i % 2), 1}
		m.Y[i] = i % 2
	}
	return m
}

func TestNormalizerLeavesIndicatorsAlone(t *testing.T) {
	m := normalizerMatrix(200)
	norm := NewNormalizer(DefaultEpsilon)
	require.NoError(t, norm.Fit(m))

	out, err := norm.Transform(m)
	require.NoError(t, err)

	for i := range out.X {
		assert.Equal(t, m.X[i][2], out.X[i][2])
		assert.Equal(t, 1.0, out.X[i][3])
	}
}

func TestNormalizerParametersAreReused(t *testing.T) {
	m := normalizerMatrix(200)
	norm := NewNormalizer(DefaultEpsilon)
	require.NoError(t, norm.Fit(m))

	first, err := norm.Transform(m)
	require.NoError(t, err)
	second, err := norm.Transform(m)
	require.NoError(t, err)
	assert.Equal(t, first.X, second.X)

	// The source matrix is never mutated.
	assert.Equal(t, normalizerMatrix(200).X, m.X)
}

func TestNormalizerFittedOnTrainAppliesToTest(t *testing.T) {
	m := normalizerMatrix(200)
	train, test, err := data.Partition(m, alternating(200))
	require.NoError(t, err)

	norm := NewNormalizer(DefaultEpsilon)
	require.NoError(t, norm.Fit(train))

	out, err := norm.Transform(test)
	require.NoError(t, err)
	assert.Equal(t, test.Rows(), out.Rows())
	assert.Len(t, norm.Lambdas(), 2)
}

func alternating(n int) []bool {
	assign := make([]bool, n)
	for i := range assign {
		assign[i] = i%2 == 0
	}
	return assign
}
