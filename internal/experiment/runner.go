// Package experiment wires the full analysis together: load, encode,
// normalize, split, fit every model variant, sweep hyperparameters,
// and collect the results for reporting.
package experiment

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/jamesspalding/STAT543-grad/internal/config"
	"github.com/jamesspalding/STAT543-grad/internal/data"
	"github.com/jamesspalding/STAT543-grad/internal/evaluation"
	"github.com/jamesspalding/STAT543-grad/internal/models"
	"github.com/jamesspalding/STAT543-grad/internal/preprocessing"
	"github.com/jamesspalding/STAT543-grad/internal/sweep"
)

// VariantResult is one named model's score on the evaluation partition.
type VariantResult struct {
	Name      string
	Alpha     float64
	Lambda    float64
	Threshold float64
	Metrics   *evaluation.BinaryMetrics
}

// ColumnLambda pairs a continuous column with its fitted Box-Cox
// parameter, for the report.
type ColumnLambda struct {
	Column string
	Lambda float64
}

// Results is everything a single run produces.
type Results struct {
	Stats           map[string]any
	BoxCoxLambdas   []ColumnLambda
	Variants        []VariantResult
	AlphaPoints     []sweep.AlphaPoint
	ThresholdPoints []sweep.ThresholdPoint
	BestAlpha       sweep.AlphaPoint
	BestThreshold   sweep.ThresholdPoint
	FeatureNames    []string
	FinalModel      models.Coefficients
	TrainRows       int
	TestRows        int
}

type Runner struct {
	cfg *config.Config
	log zerolog.Logger
}

func NewRunner(cfg *config.Config, log zerolog.Logger) *Runner {
	return &Runner{cfg: cfg, log: log}
}

// Run executes the whole pipeline. The split assignment is drawn once
// and reused for every variant so the comparison is fair, and the
// normalizer parameters are fitted once (scope per config) and applied
// to both partitions.
func (r *Runner) Run() (*Results, error) {
	table, err := data.LoadCSV(r.cfg.Data)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	validator := data.NewDataValidator()
	stats := validator.Stats(table)
	r.log.Info().
		Int("rows", table.N).
		Interface("class_balance", map[string]any{"positives": stats["positives"], "negatives": stats["negatives"]}).
		Msg("dataset loaded")

	encoder := preprocessing.NewOneHotEncoder()
	encoded, err := encoder.FitTransform(table)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	if err := validator.ValidateMatrix(encoded); err != nil {
		return nil, fmt.Errorf("encoded matrix: %w", err)
	}
	r.log.Info().Int("features", encoded.Cols()).Int("continuous", encoded.NumericCount).Msg("features encoded")

	splitter := evaluation.NewBernoulliSplitter(r.cfg.SplitRatio, r.cfg.Seed)
	assign, err := splitter.Assign(encoded.Rows())
	if err != nil {
		return nil, fmt.Errorf("split: %w", err)
	}

	normalizer := preprocessing.NewNormalizer(r.cfg.Normalization.Epsilon)
	train, test, err := r.normalizeAndPartition(encoded, assign, normalizer)
	if err != nil {
		return nil, err
	}
	if err := validator.ValidateSplit(train, test); err != nil {
		return nil, err
	}
	r.log.Info().
		Int("train", train.Rows()).
		Int("test", test.Rows()).
		Str("normalizer_fit_on", r.cfg.Normalization.FitOn).
		Msg("partitions prepared")

	results := &Results{
		Stats:        stats,
		FeatureNames: encoded.Names,
		TrainRows:    train.Rows(),
		TestRows:     test.Rows(),
	}
	for j, lambda := range normalizer.Lambdas() {
		results.BoxCoxLambdas = append(results.BoxCoxLambdas, ColumnLambda{Column: encoded.Names[j], Lambda: lambda})
	}

	// Baseline: unpenalized logistic regression.
	logistic := models.NewLogistic()
	if err := logistic.Fit(train.X, train.Y); err != nil {
		return nil, fmt.Errorf("logistic fit: %w", err)
	}
	logisticMetrics, err := evaluation.Evaluate(logistic.PredictProba(test.X), test.Y, sweep.DefaultThreshold)
	if err != nil {
		return nil, err
	}
	results.Variants = append(results.Variants, VariantResult{
		Name:      "Logistic",
		Threshold: sweep.DefaultThreshold,
		Metrics:   logisticMetrics,
	})
	r.log.Info().Float64("kappa", logisticMetrics.Kappa).Float64("accuracy", logisticMetrics.Accuracy).Msg("logistic baseline evaluated")

	// Mixing-weight sweep. The grid includes both endpoints, so the
	// ridge and LASSO variants are read off the sweep by name.
	grid := sweep.AlphaGrid(r.cfg.Sweep.AlphaStep)
	bestAlpha, alphaPoints, err := sweep.Alpha(train, test, grid, sweep.AlphaOptions{
		Folds:   r.cfg.CrossValidation.Folds,
		CVSeed:  r.cfg.CrossValidation.Seed,
		Workers: r.cfg.Sweep.Workers,
	})
	if err != nil {
		return nil, fmt.Errorf("mixing-weight sweep: %w", err)
	}
	results.AlphaPoints = alphaPoints
	results.BestAlpha = bestAlpha
	r.log.Info().Float64("alpha", bestAlpha.Alpha).Float64("lambda", bestAlpha.Lambda).Float64("kappa", bestAlpha.Kappa).Msg("mixing-weight sweep done")

	for _, pt := range alphaPoints {
		switch pt.Alpha {
		case 0:
			results.Variants = append(results.Variants, VariantResult{
				Name: "Ridge", Alpha: 0, Lambda: pt.Lambda, Threshold: sweep.DefaultThreshold, Metrics: pt.Metrics,
			})
		case 1:
			results.Variants = append(results.Variants, VariantResult{
				Name: "LASSO", Alpha: 1, Lambda: pt.Lambda, Threshold: sweep.DefaultThreshold, Metrics: pt.Metrics,
			})
		}
	}
	results.Variants = append(results.Variants, VariantResult{
		Name: "ElasticNet (best alpha)", Alpha: bestAlpha.Alpha, Lambda: bestAlpha.Lambda,
		Threshold: sweep.DefaultThreshold, Metrics: bestAlpha.Metrics,
	})

	// Threshold sweep holds the selected model fixed.
	probs := bestAlpha.Model.PredictProba(test.X)
	bestThreshold, thresholdPoints, err := sweep.Threshold(probs, test.Y, r.cfg.Sweep.ThresholdPoints)
	if err != nil {
		return nil, fmt.Errorf("threshold sweep: %w", err)
	}
	results.ThresholdPoints = thresholdPoints
	results.BestThreshold = bestThreshold
	results.Variants = append(results.Variants, VariantResult{
		Name: "ElasticNet (tuned threshold)", Alpha: bestAlpha.Alpha, Lambda: bestAlpha.Lambda,
		Threshold: bestThreshold.Threshold, Metrics: bestThreshold.Metrics,
	})
	results.FinalModel = bestAlpha.Model.Coefficients()
	r.log.Info().Float64("threshold", bestThreshold.Threshold).Float64("kappa", bestThreshold.Kappa).Msg("threshold sweep done")

	return results, nil
}

// normalizeAndPartition applies the configured normalizer scope: fit on
// the full matrix before splitting or on the training partition only.
// The fitted parameters transform both sides either way.
func (r *Runner) normalizeAndPartition(encoded *data.Matrix, assign []bool, normalizer *preprocessing.Normalizer) (train, test *data.Matrix, err error) {
	switch r.cfg.Normalization.FitOn {
	case "full":
		if err := normalizer.Fit(encoded); err != nil {
			return nil, nil, fmt.Errorf("normalizer fit: %w", err)
		}
		normalized, err := normalizer.Transform(encoded)
		if err != nil {
			return nil, nil, fmt.Errorf("normalizer transform: %w", err)
		}
		return data.Partition(normalized, assign)
	case "train":
		rawTrain, rawTest, err := data.Partition(encoded, assign)
		if err != nil {
			return nil, nil, err
		}
		if err := normalizer.Fit(rawTrain); err != nil {
			return nil, nil, fmt.Errorf("normalizer fit: %w", err)
		}
		if train, err = normalizer.Transform(rawTrain); err != nil {
			return nil, nil, fmt.Errorf("normalizer transform: %w", err)
		}
		if test, err = normalizer.Transform(rawTest); err != nil {
			return nil, nil, fmt.Errorf("normalizer transform: %w", err)
		}
		return train, test, nil
	default:
		return nil, nil, fmt.Errorf("unknown normalization scope %q", r.cfg.Normalization.FitOn)
	}
}

// ExportSweeps writes both sweep grids as CSV files under dir.
func (r *Runner) ExportSweeps(results *Results, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	alphaRows := [][]string{{"Alpha", "Lambda", "Kappa", "Accuracy"}}
	for _, pt := range results.AlphaPoints {
		alphaRows = append(alphaRows, []string{
			fmt.Sprintf("%.2f", pt.Alpha),
			fmt.Sprintf("%.6g", pt.Lambda),
			fmt.Sprintf("%.4f", pt.Kappa),
			fmt.Sprintf("%.4f", pt.Metrics.Accuracy),
		})
	}
	if err := writeCSV(filepath.Join(dir, "alpha_sweep.csv"), alphaRows); err != nil {
		return err
	}

	thresholdRows := [][]string{{"Threshold", "Kappa", "Accuracy"}}
	for _, pt := range results.ThresholdPoints {
		thresholdRows = append(thresholdRows, []string{
			fmt.Sprintf("%.4f", pt.Threshold),
			fmt.Sprintf("%.4f", pt.Kappa),
			fmt.Sprintf("%.4f", pt.Metrics.Accuracy),
		})
	}
	return writeCSV(filepath.Join(dir, "threshold_sweep.csv"), thresholdRows)
}

func writeCSV(filename string, rows [][]string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	return nil
}
