package report

import (
	"image/color"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/jamesspalding/STAT543-grad/internal/experiment"
)

// SavePlots writes the two sweep plots (kappa vs. mixing weight and
// kappa vs. decision threshold) as PNGs under dir.
func SavePlots(results *experiment.Results, dir string) error {
	alphaXY := make(plotter.XYs, len(results.AlphaPoints))
	for i, pt := range results.AlphaPoints {
		alphaXY[i].X = pt.Alpha
		alphaXY[i].Y = pt.Kappa
	}
	if err := saveLinePlot(
		filepath.Join(dir, "kappa_vs_alpha.png"),
		"Kappa by Mixing Weight", "Alpha", "Kappa", alphaXY,
	); err != nil {
		return err
	}

	thresholdXY := make(plotter.XYs, len(results.ThresholdPoints))
	for i, pt := range results.ThresholdPoints {
		thresholdXY[i].X = pt.Threshold
		thresholdXY[i].Y = pt.Kappa
	}
	return saveLinePlot(
		filepath.Join(dir, "kappa_vs_threshold.png"),
		"Kappa by Decision Threshold", "Threshold", "Kappa", thresholdXY,
	)
}

func saveLinePlot(filename, title, xLabel, yLabel string, pts plotter.XYs) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	line, scatter, err := plotter.NewLinePoints(pts)
	if err != nil {
		return err
	}
	line.Color = color.RGBA{B: 255, A: 255}
	scatter.Color = color.RGBA{R: 255, A: 255}
	p.Add(line, scatter)
	p.Add(plotter.NewGrid())

	return p.Save(6*vg.Inch, 4*vg.Inch, filename)
}
