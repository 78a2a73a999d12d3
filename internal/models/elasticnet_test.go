package models

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sparseSignalData has ten features of which only the first two carry
// signal, so the LASSO should zero most of the rest.
func sparseSignalData(n int, seed int64) ([][]float64, []int) {
	rng := rand.New(rand.NewSource(seed))
	X := make([][]float64, n)
	y := make([]int, n)
	for i := 0; i < n; i++ {
		row := make([]float64, 10)
		for j := range row {
			row[j] = rng.NormFloat64()
		}
		X[i] = row
		if 2*row[0]-2*row[1]+rng.NormFloat64()*0.5 > 0 {
			y[i] = 1
		}
	}
	return X, y
}

func countZeros(weights []float64) int {
	zeros := 0
	for _, w := range weights {
		if w == 0 {
			zeros++
		}
	}
	return zeros
}

func TestL1ProducesAtLeastAsManyZerosAsL2(t *testing.T) {
	X, y := sparseSignalData(300, 8)

	ridge := NewElasticNet(0, 0.05)
	require.NoError(t, ridge.Fit(X, y))
	lasso := NewElasticNet(1, 0.05)
	require.NoError(t, lasso.Fit(X, y))

	assert.Len(t, ridge.Coefficients().Weights, 10)
	assert.Len(t, lasso.Coefficients().Weights, 10)
	assert.GreaterOrEqual(t, countZeros(lasso.Coefficients().Weights), countZeros(ridge.Coefficients().Weights))
}

func TestLassoKeepsSignalFeatures(t *testing.T) {
	X, y := sparseSignalData(500, 12)

	lasso := NewElasticNet(1, 0.02)
	require.NoError(t, lasso.Fit(X, y))

	coef := lasso.Coefficients()
	assert.Greater(t, coef.Weights[0], 0.0)
	assert.Less(t, coef.Weights[1], 0.0)
}

func TestHugePenaltyZeroesEverything(t *testing.T) {
	X, y := sparseSignalData(200, 4)

	lasso := NewElasticNet(1, 100)
	require.NoError(t, lasso.Fit(X, y))

	assert.Equal(t, 10, countZeros(lasso.Coefficients().Weights))
}

func TestElasticNetRejectsBadHyperparameters(t *testing.T) {
	X, y := sparseSignalData(50, 1)

	assert.Error(t, NewElasticNet(-0.1, 1).Fit(X, y))
	assert.Error(t, NewElasticNet(1.1, 1).Fit(X, y))
	assert.Error(t, NewElasticNet(0.5, -1).Fit(X, y))
}

func TestElasticNetNames(t *testing.T) {
	assert.Equal(t, "Ridge", NewElasticNet(0, 1).GetName())
	assert.Equal(t, "LASSO", NewElasticNet(1, 1).GetName())
	assert.Equal(t, "ElasticNet", NewElasticNet(0.5, 1).GetName())
}

func TestLambdaPathIsDescending(t *testing.T) {
	X, y := sparseSignalData(100, 2)

	path := LambdaPath(X, y, 0.5, 100)
	require.Len(t, path, 100)
	for k := 1; k < len(path); k++ {
		assert.Less(t, path[k], path[k-1])
	}
	assert.Greater(t, path[0], 0.0)
}

func TestLambdaMaxZeroesThePath(t *testing.T) {
	// At the head of the path every penalized coefficient is zero.
	X, y := sparseSignalData(150, 6)

	path := LambdaPath(X, y, 1, 10)
	lasso := NewElasticNet(1, path[0]*1.2)
	require.NoError(t, lasso.Fit(X, y))
	assert.Equal(t, 10, countZeros(lasso.Coefficients().Weights))
}
