// Package sweep runs the one-dimensional hyperparameter grid searches:
// mixing weight first, then decision threshold for the chosen model.
// Both are exhaustive scans, never joint, with max-kappa selection and
// first-occurrence tie-breaking in ascending grid order.
package sweep

import (
	"fmt"
	"sync"

	"github.com/jamesspalding/STAT543-grad/internal/data"
	"github.com/jamesspalding/STAT543-grad/internal/evaluation"
	"github.com/jamesspalding/STAT543-grad/internal/models"
)

// DefaultThreshold is the decision threshold every model comparison
// uses before the threshold sweep tunes it.
const DefaultThreshold = 0.5

// AlphaPoint is one grid point of the mixing-weight sweep: the elastic
// net fitted at alpha (lambda chosen by cross-validation) scored on the
// evaluation partition.
type AlphaPoint struct {
	Alpha   float64
	Lambda  float64
	Kappa   float64
	Model   *models.ElasticNet
	Metrics *evaluation.BinaryMetrics
}

// AlphaOptions carries the cross-validation settings threaded through
// every grid point, plus an optional worker count. Grid points are
// independent, so they may be fitted in parallel without changing the
// selected point.
type AlphaOptions struct {
	Folds   int
	CVSeed  int64
	Workers int
}

// AlphaGrid builds the [0,1] mixing-weight grid at the given step.
func AlphaGrid(step float64) []float64 {
	if step <= 0 || step > 1 {
		step = 0.05
	}
	var grid []float64
	steps := int(1/step + 0.5)
	for k := 0; k <= steps; k++ {
		alpha := float64(k) * step
		if alpha > 1 {
			alpha = 1
		}
		grid = append(grid, alpha)
	}
	return grid
}

// Alpha fits one cross-validated elastic net per mixing weight on the
// training partition and scores each at the default threshold on the
// evaluation partition.
func Alpha(train, test *data.Matrix, grid []float64, opts AlphaOptions) (AlphaPoint, []AlphaPoint, error) {
	if len(grid) == 0 {
		return AlphaPoint{}, nil, fmt.Errorf("empty mixing-weight grid")
	}
	if opts.Folds < 2 {
		opts.Folds = 10
	}

	points := make([]AlphaPoint, len(grid))
	errs := make([]error, len(grid))

	evalPoint := func(k int) {
		model, cv, err := models.FitElasticNetCV(train.X, train.Y, grid[k], opts.Folds, opts.CVSeed)
		if err != nil {
			errs[k] = err
			return
		}
		metrics, err := evaluation.Evaluate(model.PredictProba(test.X), test.Y, DefaultThreshold)
		if err != nil {
			errs[k] = err
			return
		}
		points[k] = AlphaPoint{
			Alpha:   grid[k],
			Lambda:  cv.BestLambda,
			Kappa:   metrics.Kappa,
			Model:   model,
			Metrics: metrics,
		}
	}

	if opts.Workers > 1 {
		runParallel(len(grid), opts.Workers, evalPoint)
	} else {
		for k := range grid {
			evalPoint(k)
		}
	}

	for k, err := range errs {
		if err != nil {
			return AlphaPoint{}, nil, fmt.Errorf("mixing weight %g: %w", grid[k], err)
		}
	}

	// Selection scans ascending grid order so parallel runs pick the
	// same point as sequential ones.
	best := points[0]
	for _, pt := range points[1:] {
		if pt.Kappa > best.Kappa {
			best = pt
		}
	}

	return best, points, nil
}

// runParallel fans indices out to a bounded worker pool and waits.
func runParallel(n, workers int, work func(int)) {
	if workers > n {
		workers = n
	}

	jobs := make(chan int, n)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := range jobs {
				work(k)
			}
		}()
	}

	for k := 0; k < n; k++ {
		jobs <- k
	}
	close(jobs)
	wg.Wait()
}

// ThresholdPoint is one grid point of the decision-threshold sweep.
type ThresholdPoint struct {
	Threshold float64
	Kappa     float64
	Metrics   *evaluation.BinaryMetrics
}

// Threshold scans a grid spanning the observed range of predicted
// probabilities, holding the model fixed. The default threshold is kept
// unless a grid point strictly beats its kappa.
func Threshold(probs []float64, y []int, points int) (ThresholdPoint, []ThresholdPoint, error) {
	if len(probs) == 0 {
		return ThresholdPoint{}, nil, fmt.Errorf("no predicted probabilities to sweep")
	}
	if points < 2 {
		points = 50
	}

	lo, hi := probs[0], probs[0]
	for _, p := range probs[1:] {
		if p < lo {
			lo = p
		}
		if p > hi {
			hi = p
		}
	}

	defaultMetrics, err := evaluation.Evaluate(probs, y, DefaultThreshold)
	if err != nil {
		return ThresholdPoint{}, nil, err
	}
	best := ThresholdPoint{Threshold: DefaultThreshold, Kappa: defaultMetrics.Kappa, Metrics: defaultMetrics}

	grid := make([]ThresholdPoint, points)
	step := (hi - lo) / float64(points-1)
	for k := 0; k < points; k++ {
		t := lo + step*float64(k)
		metrics, err := evaluation.Evaluate(probs, y, t)
		if err != nil {
			return ThresholdPoint{}, nil, err
		}
		grid[k] = ThresholdPoint{Threshold: t, Kappa: metrics.Kappa, Metrics: metrics}
		if grid[k].Kappa > best.Kappa {
			best = grid[k]
		}
	}

	return best, grid, nil
}
