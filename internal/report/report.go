// Package report renders the analysis results: a text report of model
// comparisons, the coefficient table of the selected model, and the two
// sweep plots.
package report

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/jamesspalding/STAT543-grad/internal/experiment"
)

var heading = color.New(color.FgCyan, color.Bold)

// Write renders the full text report to w.
func Write(w io.Writer, results *experiment.Results) error {
	if err := writeOverview(w, results); err != nil {
		return err
	}
	if err := writeVariants(w, results); err != nil {
		return err
	}
	if err := writeLambdas(w, results); err != nil {
		return err
	}
	if err := writeCoefficients(w, results); err != nil {
		return err
	}
	return writeConfusion(w, results)
}

func writeOverview(w io.Writer, results *experiment.Results) error {
	heading.Fprintln(w, "Online Shopper Purchase Intent")
	fmt.Fprintf(w, "Sessions: %v (train %d / test %d)\n", results.Stats["rows"], results.TrainRows, results.TestRows)
	fmt.Fprintf(w, "Purchases: %v, non-purchases: %v\n", results.Stats["positives"], results.Stats["negatives"])
	fmt.Fprintf(w, "Encoded features: %d\n\n", len(results.FeatureNames))
	return nil
}

func writeVariants(w io.Writer, results *experiment.Results) error {
	heading.Fprintln(w, "Model comparison (evaluation partition)")

	rows := make([][]string, 0, len(results.Variants))
	for _, v := range results.Variants {
		rows = append(rows, []string{
			v.Name,
			fmt.Sprintf("%.2f", v.Alpha),
			fmt.Sprintf("%.4g", v.Lambda),
			fmt.Sprintf("%.2f", v.Threshold),
			fmt.Sprintf("%.4f", v.Metrics.Accuracy),
			fmt.Sprintf("%.4f", v.Metrics.Kappa),
			fmt.Sprintf("%.4f", v.Metrics.Positive.Precision),
			fmt.Sprintf("%.4f", v.Metrics.Positive.Recall),
		})
	}
	right := map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true, 6: true, 7: true}
	for _, line := range formatTable(
		[]string{"Model", "Alpha", "Lambda", "Thresh", "Accuracy", "Kappa", "Precision+", "Recall+"},
		rows, right,
	) {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w)
	return nil
}

func writeLambdas(w io.Writer, results *experiment.Results) error {
	heading.Fprintln(w, "Box-Cox parameters")

	rows := make([][]string, 0, len(results.BoxCoxLambdas))
	for _, cl := range results.BoxCoxLambdas {
		rows = append(rows, []string{cl.Column, fmt.Sprintf("%.2f", cl.Lambda)})
	}
	for _, line := range formatTable([]string{"Column", "Lambda"}, rows, map[int]bool{1: true}) {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w)
	return nil
}

func writeCoefficients(w io.Writer, results *experiment.Results) error {
	heading.Fprintf(w, "Selected model coefficients (alpha=%.2f, lambda=%.4g)\n",
		results.BestAlpha.Alpha, results.BestAlpha.Lambda)

	type namedCoef struct {
		name   string
		weight float64
	}
	coefs := make([]namedCoef, 0, len(results.FinalModel.Weights))
	for j, weight := range results.FinalModel.Weights {
		coefs = append(coefs, namedCoef{name: results.FeatureNames[j], weight: weight})
	}
	sort.SliceStable(coefs, func(i, j int) bool {
		return math.Abs(coefs[i].weight) > math.Abs(coefs[j].weight)
	})

	rows := [][]string{{"(Intercept)", fmt.Sprintf("%+.4f", results.FinalModel.Intercept)}}
	zeroed := 0
	for _, c := range coefs {
		if c.weight == 0 {
			zeroed++
			continue
		}
		rows = append(rows, []string{c.name, fmt.Sprintf("%+.4f", c.weight)})
	}
	for _, line := range formatTable([]string{"Feature", "Weight"}, rows, map[int]bool{1: true}) {
		fmt.Fprintln(w, line)
	}
	if zeroed > 0 {
		fmt.Fprintf(w, "(%d features shrunk to exactly zero)\n", zeroed)
	}
	fmt.Fprintln(w)
	return nil
}

func writeConfusion(w io.Writer, results *experiment.Results) error {
	final := results.Variants[len(results.Variants)-1]
	cm := final.Metrics.Confusion

	heading.Fprintf(w, "Final confusion matrix (%s, threshold %.4f)\n", final.Name, final.Threshold)
	rows := [][]string{
		{"Predicted purchase", fmt.Sprintf("%d", cm.TP), fmt.Sprintf("%d", cm.FP)},
		{"Predicted no purchase", fmt.Sprintf("%d", cm.FN), fmt.Sprintf("%d", cm.TN)},
	}
	for _, line := range formatTable([]string{"", "Actual purchase", "Actual no purchase"}, rows, map[int]bool{1: true, 2: true}) {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w, strings.Repeat("-", 24))
	fmt.Fprint(w, final.Metrics.FormatMetrics())
	return nil
}
