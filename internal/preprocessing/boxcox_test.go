package preprocessing

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoxCoxTransformIsPure(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	values := make([]float64, 500)
	for i := range values {
		values[i] = math.Exp(rng.NormFloat64())
	}

	bc := NewBoxCox(DefaultEpsilon)
	require.NoError(t, bc.Fit(values))

	first, err := bc.Transform(values)
	require.NoError(t, err)
	second, err := bc.Transform(values)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBoxCoxRecoversLogTransform(t *testing.T) {
	// Lognormal data is normalized by lambda = 0.
	rng := rand.New(rand.NewSource(42))
	values := make([]float64, 2000)
	for i := range values {
		values[i] = math.Exp(rng.NormFloat64())
	}

	bc := NewBoxCox(1e-9)
	require.NoError(t, bc.Fit(values))
	assert.InDelta(t, 0, bc.Lambda, 0.15)
}

func TestBoxCoxLambdaInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	values := make([]float64, 300)
	for i := range values {
		values[i] = rng.Float64() * 10
	}

	bc := NewBoxCox(DefaultEpsilon)
	require.NoError(t, bc.Fit(values))
	assert.GreaterOrEqual(t, bc.Lambda, -2.0)
	assert.LessOrEqual(t, bc.Lambda, 2.0)
}

func TestBoxCoxZeroLambdaIsLog(t *testing.T) {
	bc := &BoxCox{Lambda: 0, Epsilon: 1e-9, IsFitted: true}
	out, err := bc.Transform([]float64{1, math.E})
	require.NoError(t, err)
	assert.InDelta(t, 0, out[0], 1e-6)
	assert.InDelta(t, 1, out[1], 1e-6)
}

func TestBoxCoxRejectsNonPositive(t *testing.T) {
	bc := NewBoxCox(DefaultEpsilon)
	err := bc.Fit([]float64{1, 2, -5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-positive")
}

func TestBoxCoxRequiresFit(t *testing.T) {
	bc := NewBoxCox(DefaultEpsilon)
	_, err := bc.Transform([]float64{1, 2})
	require.Error(t, err)
}

func TestBoxCoxHandlesZeros(t *testing.T) {
	// Count columns in the dataset are mostly zero; the epsilon shift
	// keeps them inside the transform's domain.
	values := []float64{0, 0, 0, 1, 2, 5, 9, 0, 3, 0}
	bc := NewBoxCox(DefaultEpsilon)
	out, err := bc.FitTransform(values)
	require.NoError(t, err)
	for _, v := range out {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
	}
}
