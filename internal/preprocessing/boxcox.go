package preprocessing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

const (
	// DefaultEpsilon shifts every value before the power transform so
	// the strictly-positive domain requirement holds for zero-heavy
	// count and duration columns.
	DefaultEpsilon = 1e-4

	lambdaMin  = -2.0
	lambdaMax  = 2.0
	lambdaStep = 0.01
)

// BoxCox is a single-column power transform. Fit searches for the
// lambda in [-2, 2] whose transformed column is closest to normal by
// the profile log-likelihood; Transform applies the fitted lambda and
// epsilon shift to any column.
type BoxCox struct {
	Lambda   float64
	Epsilon  float64
	IsFitted bool
}

func NewBoxCox(epsilon float64) *BoxCox {
	if epsilon <= 0 {
		epsilon = DefaultEpsilon
	}
	return &BoxCox{Epsilon: epsilon}
}

// Fit selects lambda over a fixed grid, first occurrence winning ties.
func (b *BoxCox) Fit(values []float64) error {
	if len(values) == 0 {
		return fmt.Errorf("empty column")
	}

	shifted, err := b.shift(values)
	if err != nil {
		return err
	}

	logSum := 0.0
	for _, x := range shifted {
		logSum += math.Log(x)
	}

	bestLambda := lambdaMin
	bestLL := math.Inf(-1)
	transformed := make([]float64, len(shifted))
	for lambda := lambdaMin; lambda <= lambdaMax+lambdaStep/2; lambda += lambdaStep {
		applyPower(shifted, transformed, lambda)
		_, variance := stat.MeanVariance(transformed, nil)
		if variance <= 0 {
			continue
		}
		ll := -float64(len(shifted))/2*math.Log(variance) + (lambda-1)*logSum
		if ll > bestLL {
			bestLL = ll
			bestLambda = lambda
		}
	}

	if math.IsInf(bestLL, -1) {
		return fmt.Errorf("no lambda produced a finite likelihood (constant column?)")
	}

	b.Lambda = bestLambda
	b.IsFitted = true
	return nil
}

// Transform applies the fitted lambda. It is a pure function of the
// fitted parameters: transforming the same column twice yields
// identical output.
func (b *BoxCox) Transform(values []float64) ([]float64, error) {
	if !b.IsFitted {
		return nil, fmt.Errorf("BoxCox must be fitted before transform")
	}

	shifted, err := b.shift(values)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(shifted))
	applyPower(shifted, out, b.Lambda)
	return out, nil
}

func (b *BoxCox) FitTransform(values []float64) ([]float64, error) {
	if err := b.Fit(values); err != nil {
		return nil, err
	}
	return b.Transform(values)
}

func (b *BoxCox) shift(values []float64) ([]float64, error) {
	shifted := make([]float64, len(values))
	for i, v := range values {
		x := v + b.Epsilon
		if x <= 0 {
			return nil, fmt.Errorf("value %g at row %d is non-positive after epsilon shift", v, i)
		}
		shifted[i] = x
	}
	return shifted, nil
}

func applyPower(in, out []float64, lambda float64) {
	if math.Abs(lambda) < 1e-12 {
		for i, x := range in {
			out[i] = math.Log(x)
		}
		return
	}
	for i, x := range in {
		out[i] = (math.Pow(x, lambda) - 1) / lambda
	}
}
