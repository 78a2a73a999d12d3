package report

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesspalding/STAT543-grad/internal/evaluation"
	"github.com/jamesspalding/STAT543-grad/internal/experiment"
	"github.com/jamesspalding/STAT543-grad/internal/models"
	"github.com/jamesspalding/STAT543-grad/internal/sweep"
)

func sampleMetrics(threshold float64) *evaluation.BinaryMetrics {
	return &evaluation.BinaryMetrics{
		Threshold:  threshold,
		Accuracy:   0.9,
		Kappa:      0.6,
		Positive:   evaluation.ClassMetrics{Precision: 0.8, Recall: 0.7, Support: 10},
		Negative:   evaluation.ClassMetrics{Precision: 0.93, Recall: 0.96, Support: 30},
		Confusion:  evaluation.ConfusionMatrix{TP: 7, FP: 2, TN: 29, FN: 2},
		NumSamples: 40,
	}
}

func sampleResults() *experiment.Results {
	metrics := sampleMetrics(0.5)
	tuned := sampleMetrics(0.31)
	return &experiment.Results{
		Stats: map[string]any{"rows": 40, "positives": 12, "negatives": 28},
		BoxCoxLambdas: []experiment.ColumnLambda{
			{Column: "PageValues", Lambda: -0.12},
			{Column: "ExitRates", Lambda: 0.33},
		},
		Variants: []experiment.VariantResult{
			{Name: "Logistic", Threshold: 0.5, Metrics: metrics},
			{Name: "ElasticNet (tuned threshold)", Alpha: 0.35, Lambda: 0.004, Threshold: 0.31, Metrics: tuned},
		},
		AlphaPoints: []sweep.AlphaPoint{
			{Alpha: 0, Lambda: 0.01, Kappa: 0.5, Metrics: metrics},
			{Alpha: 0.35, Lambda: 0.004, Kappa: 0.6, Metrics: metrics},
			{Alpha: 1, Lambda: 0.002, Kappa: 0.55, Metrics: metrics},
		},
		ThresholdPoints: []sweep.ThresholdPoint{
			{Threshold: 0.2, Kappa: 0.4, Metrics: tuned},
			{Threshold: 0.31, Kappa: 0.6, Metrics: tuned},
			{Threshold: 0.5, Kappa: 0.5, Metrics: tuned},
		},
		BestAlpha:     sweep.AlphaPoint{Alpha: 0.35, Lambda: 0.004, Kappa: 0.6, Metrics: metrics},
		BestThreshold: sweep.ThresholdPoint{Threshold: 0.31, Kappa: 0.6, Metrics: tuned},
		FeatureNames:  []string{"PageValues", "ExitRates", "Month_Nov"},
		FinalModel:    models.Coefficients{Intercept: -1.2, Weights: []float64{0.9, -0.4, 0}},
		TrainRows:     28,
		TestRows:      12,
	}
}

func TestWriteReport(t *testing.T) {
	color.NoColor = true
	var sb strings.Builder
	require.NoError(t, Write(&sb, sampleResults()))
	out := sb.String()

	assert.Contains(t, out, "Online Shopper Purchase Intent")
	assert.Contains(t, out, "Sessions: 40 (train 28 / test 12)")
	assert.Contains(t, out, "Logistic")
	assert.Contains(t, out, "ElasticNet (tuned threshold)")
	assert.Contains(t, out, "PageValues")
	// The zero-weight feature is folded into the summary line.
	assert.Contains(t, out, "(1 features shrunk to exactly zero)")
	assert.Contains(t, out, "(Intercept)")
	assert.Contains(t, out, "Predicted purchase")
}

func TestCoefficientsSortedByMagnitude(t *testing.T) {
	color.NoColor = true
	var sb strings.Builder
	require.NoError(t, Write(&sb, sampleResults()))
	out := sb.String()

	// |0.9| for PageValues outranks |-0.4| for ExitRates.
	assert.Less(t, strings.Index(out, "+0.9000"), strings.Index(out, "-0.4000"))
}

func TestFormatTable(t *testing.T) {
	lines := formatTable(
		[]string{"Name", "Value"},
		[][]string{{"alpha", "0.35"}, {"lambda", "0.004"}},
		map[int]bool{1: true},
	)
	require.Len(t, lines, 3)
	assert.Equal(t, "Name    Value", lines[0])
	assert.Equal(t, "alpha    0.35", lines[1])
	assert.Equal(t, "lambda  0.004", lines[2])
}

func TestFormatTableEmpty(t *testing.T) {
	assert.Nil(t, formatTable(nil, nil, nil))
}
