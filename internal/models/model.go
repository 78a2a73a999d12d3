package models

import "math"

// Classifier is a binary purchase-intent model. Inputs must already be
// fully numeric (categoricals one-hot encoded) with a 0/1 outcome.
type Classifier interface {
	Fit(X [][]float64, y []int) error
	PredictProba(X [][]float64) []float64
	Coefficients() Coefficients
	GetName() string
	GetParams() map[string]any
}

// Coefficients is the fitted weight vector: an intercept plus one
// weight per feature column. Immutable once the fit returns.
type Coefficients struct {
	Intercept float64
	Weights   []float64
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

func linearPredict(X [][]float64, c Coefficients) []float64 {
	out := make([]float64, len(X))
	for i, row := range X {
		sum := c.Intercept
		for j, v := range row {
			sum += c.Weights[j] * v
		}
		out[i] = sum
	}
	return out
}

func predictProba(X [][]float64, c Coefficients) []float64 {
	out := linearPredict(X, c)
	for i, eta := range out {
		out[i] = sigmoid(eta)
	}
	return out
}

func checkTrainingData(X [][]float64, y []int) bool {
	if len(X) == 0 || len(X) != len(y) || len(X[0]) == 0 {
		return false
	}
	for _, label := range y {
		if label != 0 && label != 1 {
			return false
		}
	}
	return true
}
