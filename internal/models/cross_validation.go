package models

import (
	"fmt"
	"math"

	"github.com/jamesspalding/STAT543-grad/internal/evaluation"
)

const defaultNLambda = 100

// CVResult records one penalty-strength cross-validation: the lambda
// grid walked, the mean held-out deviance at each point, and the
// winner.
type CVResult struct {
	Lambdas      []float64
	MeanDeviance []float64
	BestLambda   float64
	BestDeviance float64
}

// CrossValidateLambda picks the penalty strength for an elastic net at
// the given mixing weight by k-fold cross-validation, minimizing mean
// held-out binomial deviance. The fold shuffle is explicitly seeded so
// the selection reproduces run to run. Ties go to the first occurrence
// along the descending lambda path.
func CrossValidateLambda(X [][]float64, y []int, alpha float64, nFolds int, seed int64) (*CVResult, error) {
	if !checkTrainingData(X, y) {
		return nil, fmt.Errorf("training data must be a non-empty numeric matrix with 0/1 outcomes")
	}

	path := LambdaPath(X, y, alpha, defaultNLambda)

	splitter := evaluation.NewKFoldSplitter(nFolds, seed)
	folds, err := splitter.Split(len(X))
	if err != nil {
		return nil, err
	}

	sums := make([]float64, len(path))
	template := NewElasticNet(alpha, 0)

	for f, heldOut := range folds {
		trainX, trainY, testX, testY := foldPartition(X, y, heldOut)
		if err := checkFoldOutcomes(trainY); err != nil {
			return nil, fmt.Errorf("fold %d: %w", f, err)
		}

		// Warm starts down the path: each lambda begins from the
		// previous solution.
		warm := Coefficients{
			Intercept: startingIntercept(trainY),
			Weights:   make([]float64, len(X[0])),
		}
		for k, lambda := range path {
			coef, err := template.fitAt(trainX, trainY, lambda, warm)
			if err != nil {
				return nil, fmt.Errorf("fold %d, lambda %g: %w", f, lambda, err)
			}
			warm = coef
			sums[k] += binomialDeviance(predictProba(testX, coef), testY)
		}
	}

	result := &CVResult{
		Lambdas:      path,
		MeanDeviance: make([]float64, len(path)),
		BestDeviance: math.Inf(1),
	}
	for k := range path {
		result.MeanDeviance[k] = sums[k] / float64(len(folds))
		if result.MeanDeviance[k] < result.BestDeviance {
			result.BestDeviance = result.MeanDeviance[k]
			result.BestLambda = path[k]
		}
	}

	return result, nil
}

// FitElasticNetCV selects lambda by cross-validation on the training
// partition, then refits once on the whole partition at the winner.
func FitElasticNetCV(X [][]float64, y []int, alpha float64, nFolds int, seed int64) (*ElasticNet, *CVResult, error) {
	cv, err := CrossValidateLambda(X, y, alpha, nFolds, seed)
	if err != nil {
		return nil, nil, err
	}

	model := NewElasticNet(alpha, cv.BestLambda)
	if err := model.Fit(X, y); err != nil {
		return nil, nil, err
	}
	return model, cv, nil
}

func foldPartition(X [][]float64, y []int, heldOut []int) (trainX [][]float64, trainY []int, testX [][]float64, testY []int) {
	held := make(map[int]bool, len(heldOut))
	for _, idx := range heldOut {
		held[idx] = true
	}

	for i := range X {
		if held[i] {
			testX = append(testX, X[i])
			testY = append(testY, y[i])
		} else {
			trainX = append(trainX, X[i])
			trainY = append(trainY, y[i])
		}
	}
	return
}

func checkFoldOutcomes(y []int) error {
	pos := 0
	for _, label := range y {
		pos += label
	}
	if pos == 0 || pos == len(y) {
		return fmt.Errorf("fold training partition contains a single outcome class")
	}
	return nil
}

// binomialDeviance is the mean -2 log-likelihood of the held-out rows.
func binomialDeviance(probs []float64, y []int) float64 {
	const eps = 1e-12
	dev := 0.0
	for i, p := range probs {
		p = math.Min(math.Max(p, eps), 1-eps)
		if y[i] == 1 {
			dev += -2 * math.Log(p)
		} else {
			dev += -2 * math.Log(1-p)
		}
	}
	return dev / float64(len(probs))
}
