package models

import (
	"fmt"
	"math"
)

// ElasticNet is binary logistic regression with the combined penalty
// lambda * (alpha*L1 + (1-alpha)/2 * L2), fitted by cyclic coordinate
// descent inside an IRLS outer loop. Alpha 0 is ridge, alpha 1 is
// LASSO.
type ElasticNet struct {
	Alpha    float64
	Lambda   float64
	MaxOuter int
	MaxInner int
	Tol      float64

	coef   Coefficients
	fitted bool
}

func NewElasticNet(alpha, lambda float64) *ElasticNet {
	return &ElasticNet{
		Alpha:    alpha,
		Lambda:   lambda,
		MaxOuter: 50,
		MaxInner: 500,
		Tol:      1e-7,
	}
}

func (m *ElasticNet) Fit(X [][]float64, y []int) error {
	if !checkTrainingData(X, y) {
		return fmt.Errorf("training data must be a non-empty numeric matrix with 0/1 outcomes")
	}
	if m.Alpha < 0 || m.Alpha > 1 {
		return fmt.Errorf("mixing weight must lie in [0,1], got %g", m.Alpha)
	}
	if m.Lambda < 0 {
		return fmt.Errorf("penalty strength must be non-negative, got %g", m.Lambda)
	}

	start := Coefficients{
		Intercept: startingIntercept(y),
		Weights:   make([]float64, len(X[0])),
	}
	coef, err := m.fitAt(X, y, m.Lambda, start)
	if err != nil {
		return err
	}

	m.coef = coef
	m.fitted = true
	return nil
}

// fitAt runs the penalized IRLS/coordinate-descent solve at one fixed
// lambda, starting from warm. It is the unit of work the lambda path
// and cross-validation reuse.
func (m *ElasticNet) fitAt(X [][]float64, y []int, lambda float64, warm Coefficients) (Coefficients, error) {
	n := len(X)
	p := len(X[0])
	nf := float64(n)

	beta0 := warm.Intercept
	beta := append([]float64(nil), warm.Weights...)
	if len(beta) != p {
		return Coefficients{}, fmt.Errorf("warm start has %d weights, expected %d", len(beta), p)
	}

	w := make([]float64, n)
	z := make([]float64, n)
	r := make([]float64, n)

	l1 := lambda * m.Alpha
	l2 := lambda * (1 - m.Alpha)

	for outer := 0; outer < m.MaxOuter; outer++ {
		// Quadratic approximation around the current coefficients.
		for i := 0; i < n; i++ {
			eta := beta0
			for j := 0; j < p; j++ {
				if beta[j] != 0 {
					eta += beta[j] * X[i][j]
				}
			}
			prob := sigmoid(eta)
			wi := prob * (1 - prob)
			if wi < minWeight {
				wi = minWeight
			}
			w[i] = wi
			z[i] = eta + (float64(y[i])-prob)/wi
			r[i] = z[i] - eta
		}

		outerDelta := 0.0

		for inner := 0; inner < m.MaxInner; inner++ {
			delta := 0.0

			// Unpenalized intercept update.
			var num, den float64
			for i := 0; i < n; i++ {
				num += w[i] * r[i]
				den += w[i]
			}
			shift := num / den
			if d := math.Abs(shift); d > delta {
				delta = d
			}
			beta0 += shift
			for i := 0; i < n; i++ {
				r[i] -= shift
			}

			for j := 0; j < p; j++ {
				var rho, norm float64
				for i := 0; i < n; i++ {
					xij := X[i][j]
					if xij == 0 {
						continue
					}
					rho += w[i] * xij * (r[i] + xij*beta[j])
					norm += w[i] * xij * xij
				}
				rho /= nf
				norm /= nf

				updated := softThreshold(rho, l1) / (norm + l2)
				if norm+l2 == 0 {
					updated = 0
				}
				if d := math.Abs(updated - beta[j]); d > 0 {
					if d > delta {
						delta = d
					}
					diff := updated - beta[j]
					for i := 0; i < n; i++ {
						if X[i][j] != 0 {
							r[i] -= diff * X[i][j]
						}
					}
					beta[j] = updated
				}
			}

			if delta > outerDelta {
				outerDelta = delta
			}
			if delta < m.Tol {
				break
			}
		}

		if outerDelta < m.Tol {
			break
		}
	}

	return Coefficients{Intercept: beta0, Weights: beta}, nil
}

func (m *ElasticNet) PredictProba(X [][]float64) []float64 {
	if !m.fitted {
		return nil
	}
	return predictProba(X, m.coef)
}

func (m *ElasticNet) Coefficients() Coefficients {
	return m.coef
}

func (m *ElasticNet) GetName() string {
	switch {
	case m.Alpha == 0:
		return "Ridge"
	case m.Alpha == 1:
		return "LASSO"
	default:
		return "ElasticNet"
	}
}

func (m *ElasticNet) GetParams() map[string]any {
	return map[string]any{"alpha": m.Alpha, "lambda": m.Lambda}
}

func softThreshold(value, threshold float64) float64 {
	switch {
	case value > threshold:
		return value - threshold
	case value < -threshold:
		return value + threshold
	default:
		return 0
	}
}

// LambdaPath builds the descending log-spaced penalty grid the
// cross-validation walks, starting just above the smallest lambda that
// zeroes every coefficient.
func LambdaPath(X [][]float64, y []int, alpha float64, nLambda int) []float64 {
	n := len(X)
	p := len(X[0])
	nf := float64(n)

	ybar := 0.0
	for _, label := range y {
		ybar += float64(label)
	}
	ybar /= nf

	maxCov := 0.0
	for j := 0; j < p; j++ {
		cov := 0.0
		for i := 0; i < n; i++ {
			cov += X[i][j] * (float64(y[i]) - ybar)
		}
		if c := math.Abs(cov) / nf; c > maxCov {
			maxCov = c
		}
	}

	// Pure ridge has no finite lambda that zeroes the path, so the
	// scale is floored the way glmnet floors it.
	a := alpha
	if a < 0.001 {
		a = 0.001
	}
	lambdaMax := maxCov / a
	if lambdaMax <= 0 {
		lambdaMax = 1
	}
	lambdaMin := lambdaMax * 1e-4

	path := make([]float64, nLambda)
	step := math.Log(lambdaMin/lambdaMax) / float64(nLambda-1)
	for k := range path {
		path[k] = lambdaMax * math.Exp(step*float64(k))
	}
	return path
}
