package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrossValidateLambdaIsSeeded(t *testing.T) {
	X, y := sparseSignalData(120, 21)

	first, err := CrossValidateLambda(X, y, 0.5, 4, 543)
	require.NoError(t, err)
	second, err := CrossValidateLambda(X, y, 0.5, 4, 543)
	require.NoError(t, err)

	assert.Equal(t, first.BestLambda, second.BestLambda)
	assert.Equal(t, first.MeanDeviance, second.MeanDeviance)
}

func TestCrossValidateLambdaPicksFromPath(t *testing.T) {
	X, y := sparseSignalData(120, 22)

	cv, err := CrossValidateLambda(X, y, 1, 4, 7)
	require.NoError(t, err)

	require.Len(t, cv.Lambdas, defaultNLambda)
	require.Len(t, cv.MeanDeviance, defaultNLambda)

	found := false
	for k, lambda := range cv.Lambdas {
		assert.False(t, math.IsNaN(cv.MeanDeviance[k]))
		if lambda == cv.BestLambda {
			found = true
			assert.Equal(t, cv.BestDeviance, cv.MeanDeviance[k])
		}
	}
	assert.True(t, found, "best lambda must be a grid point")
}

func TestFitElasticNetCVRefitsOnFullPartition(t *testing.T) {
	X, y := sparseSignalData(150, 23)

	model, cv, err := FitElasticNetCV(X, y, 0.5, 3, 543)
	require.NoError(t, err)

	assert.Equal(t, cv.BestLambda, model.Lambda)
	assert.Len(t, model.Coefficients().Weights, 10)
	assert.Len(t, model.PredictProba(X), 150)
}

func TestBinomialDevianceOfPerfectFitIsSmall(t *testing.T) {
	probs := []float64{0.999, 0.999, 0.001, 0.001}
	y := []int{1, 1, 0, 0}
	assert.Less(t, binomialDeviance(probs, y), 0.01)

	flipped := []int{0, 0, 1, 1}
	assert.Greater(t, binomialDeviance(probs, flipped), 10.0)
}
