package models

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	defaultMaxIter = 100
	defaultTol     = 1e-8

	// minWeight keeps the IRLS working weights away from zero when a
	// probability saturates.
	minWeight = 1e-5

	// jitter keeps the normal equations solvable: each categorical's
	// full indicator block sums to the intercept column, so X'WX is
	// rank deficient without it.
	jitter = 1e-9
)

// Logistic is unpenalized binary logistic regression fitted by
// iteratively reweighted least squares.
type Logistic struct {
	MaxIter int
	Tol     float64

	coef   Coefficients
	fitted bool
}

func NewLogistic() *Logistic {
	return &Logistic{MaxIter: defaultMaxIter, Tol: defaultTol}
}

func (m *Logistic) Fit(X [][]float64, y []int) error {
	if !checkTrainingData(X, y) {
		return fmt.Errorf("training data must be a non-empty numeric matrix with 0/1 outcomes")
	}

	n := len(X)
	p := len(X[0])

	// Design matrix with a leading intercept column.
	design := mat.NewDense(n, p+1, nil)
	for i, row := range X {
		design.Set(i, 0, 1)
		for j, v := range row {
			design.Set(i, j+1, v)
		}
	}

	beta := make([]float64, p+1)
	beta[0] = startingIntercept(y)

	eta := make([]float64, n)
	w := make([]float64, n)
	z := make([]float64, n)

	for iter := 0; iter < m.MaxIter; iter++ {
		for i := 0; i < n; i++ {
			sum := beta[0]
			for j := 0; j < p; j++ {
				sum += beta[j+1] * X[i][j]
			}
			eta[i] = sum
			prob := sigmoid(sum)
			wi := prob * (1 - prob)
			if wi < minWeight {
				wi = minWeight
			}
			w[i] = wi
			z[i] = sum + (float64(y[i])-prob)/wi
		}

		next, err := solveWeightedLS(design, w, z)
		if err != nil {
			return fmt.Errorf("irls iteration %d: %w", iter, err)
		}

		delta := 0.0
		for j := range beta {
			if d := math.Abs(next[j] - beta[j]); d > delta {
				delta = d
			}
		}
		copy(beta, next)
		if delta < m.Tol {
			break
		}
	}

	m.coef = Coefficients{Intercept: beta[0], Weights: append([]float64(nil), beta[1:]...)}
	m.fitted = true
	return nil
}

func (m *Logistic) PredictProba(X [][]float64) []float64 {
	if !m.fitted {
		return nil
	}
	return predictProba(X, m.coef)
}

func (m *Logistic) Coefficients() Coefficients {
	return m.coef
}

func (m *Logistic) GetName() string {
	return "Logistic"
}

func (m *Logistic) GetParams() map[string]any {
	return map[string]any{"max_iter": m.MaxIter, "tol": m.Tol}
}

// solveWeightedLS solves (X'WX + jitter*I) beta = X'Wz.
func solveWeightedLS(design *mat.Dense, w, z []float64) ([]float64, error) {
	n, cols := design.Dims()

	a := mat.NewSymDense(cols, nil)
	b := mat.NewVecDense(cols, nil)
	for i := 0; i < n; i++ {
		wi := w[i]
		for j := 0; j < cols; j++ {
			xij := design.At(i, j)
			b.SetVec(j, b.AtVec(j)+wi*xij*z[i])
			for k := j; k < cols; k++ {
				a.SetSym(j, k, a.At(j, k)+wi*xij*design.At(i, k))
			}
		}
	}
	for j := 0; j < cols; j++ {
		a.SetSym(j, j, a.At(j, j)+jitter)
	}

	var chol mat.Cholesky
	if !chol.Factorize(a) {
		// Fall back to a dense LU solve when the jittered system is
		// still not positive definite.
		var sol mat.VecDense
		if err := sol.SolveVec(a, b); err != nil {
			return nil, fmt.Errorf("normal equations are singular: %w", err)
		}
		return vecToSlice(&sol), nil
	}

	var sol mat.VecDense
	if err := chol.SolveVecTo(&sol, b); err != nil {
		return nil, fmt.Errorf("cholesky solve failed: %w", err)
	}
	return vecToSlice(&sol), nil
}

func vecToSlice(v *mat.VecDense) []float64 {
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.AtVec(i)
	}
	return out
}

// startingIntercept seeds IRLS at the log-odds of the base rate.
func startingIntercept(y []int) float64 {
	pos := 0
	for _, label := range y {
		pos += label
	}
	rate := (float64(pos) + 0.5) / (float64(len(y)) + 1)
	return math.Log(rate / (1 - rate))
}
