package evaluation

import (
	"fmt"
	"math"
)

// ConfusionMatrix is the 2x2 cross-tabulation of predicted vs. actual
// labels, with "purchase" (1) as the positive class.
type ConfusionMatrix struct {
	TP int `json:"tp"`
	FP int `json:"fp"`
	TN int `json:"tn"`
	FN int `json:"fn"`
}

func (cm ConfusionMatrix) Total() int {
	return cm.TP + cm.FP + cm.TN + cm.FN
}

type ClassMetrics struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	Support   int     `json:"support"`
}

// BinaryMetrics is one evaluation of a model at one decision threshold.
// Created fresh per (model, threshold) pair, never mutated.
type BinaryMetrics struct {
	Threshold  float64         `json:"threshold"`
	Accuracy   float64         `json:"accuracy"`
	Kappa      float64         `json:"kappa"`
	Positive   ClassMetrics    `json:"positive"`
	Negative   ClassMetrics    `json:"negative"`
	Confusion  ConfusionMatrix `json:"confusion_matrix"`
	NumSamples int             `json:"num_samples"`
}

// Evaluate classifies each probability against the threshold
// (positive iff p >= t) and derives the full metric set.
func Evaluate(probs []float64, yTrue []int, threshold float64) (*BinaryMetrics, error) {
	if len(probs) != len(yTrue) {
		return nil, fmt.Errorf("probabilities and outcomes have different lengths: %d vs %d", len(probs), len(yTrue))
	}
	if len(probs) == 0 {
		return nil, fmt.Errorf("nothing to evaluate")
	}

	var cm ConfusionMatrix
	for i, p := range probs {
		pred := 0
		if p >= threshold {
			pred = 1
		}
		switch {
		case pred == 1 && yTrue[i] == 1:
			cm.TP++
		case pred == 1 && yTrue[i] == 0:
			cm.FP++
		case pred == 0 && yTrue[i] == 0:
			cm.TN++
		default:
			cm.FN++
		}
	}

	n := float64(cm.Total())
	return &BinaryMetrics{
		Threshold: threshold,
		Accuracy:  float64(cm.TP+cm.TN) / n,
		Kappa:     Kappa(cm),
		Positive: ClassMetrics{
			Precision: safeDivide(float64(cm.TP), float64(cm.TP+cm.FP)),
			Recall:    safeDivide(float64(cm.TP), float64(cm.TP+cm.FN)),
			Support:   cm.TP + cm.FN,
		},
		Negative: ClassMetrics{
			Precision: safeDivide(float64(cm.TN), float64(cm.TN+cm.FN)),
			Recall:    safeDivide(float64(cm.TN), float64(cm.TN+cm.FP)),
			Support:   cm.TN + cm.FP,
		},
		Confusion:  cm,
		NumSamples: cm.Total(),
	}, nil
}

// Kappa computes Cohen's chance-corrected agreement from the confusion
// matrix marginals. A matrix that collapses to a single predicted or
// actual class is degenerate: kappa is 0 by convention, not an error.
func Kappa(cm ConfusionMatrix) float64 {
	n := float64(cm.Total())
	if n == 0 {
		return 0
	}

	predPos := cm.TP + cm.FP
	predNeg := cm.TN + cm.FN
	actPos := cm.TP + cm.FN
	actNeg := cm.TN + cm.FP
	if predPos == 0 || predNeg == 0 || actPos == 0 || actNeg == 0 {
		return 0
	}

	observed := float64(cm.TP+cm.TN) / n
	expected := (float64(predPos)*float64(actPos) + float64(predNeg)*float64(actNeg)) / (n * n)
	if expected == 1 {
		return 0
	}
	return (observed - expected) / (1 - expected)
}

func safeDivide(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0.0
	}
	result := numerator / denominator
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0.0
	}
	return result
}

func (m *BinaryMetrics) FormatMetrics() string {
	result := fmt.Sprintf("Threshold: %.4f\n", m.Threshold)
	result += fmt.Sprintf("Accuracy: %.4f\n", m.Accuracy)
	result += fmt.Sprintf("Kappa: %.4f\n", m.Kappa)
	result += fmt.Sprintf("Purchase    - Precision: %.4f, Recall: %.4f (n=%d)\n",
		m.Positive.Precision, m.Positive.Recall, m.Positive.Support)
	result += fmt.Sprintf("No purchase - Precision: %.4f, Recall: %.4f (n=%d)\n",
		m.Negative.Precision, m.Negative.Recall, m.Negative.Support)
	return result
}
