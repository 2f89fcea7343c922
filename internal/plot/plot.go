// Package plot writes publication figures for energy-volume fits and
// convergence series as PNG or SVG files.
package plot

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/qelab/internal/eos"
)

var (
	dataColor = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	fitColor  = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}
)

// EOSCurve writes a figure of the measured energies with the fitted
// Birch-Murnaghan curve drawn through them. The file format follows the
// path extension (.png, .svg, .pdf).
func EOSCurve(path, material string, volumes, energies []float64, p eos.Params) error {
	pl := plot.New()
	pl.Title.Text = material + " equation of state"
	pl.X.Label.Text = "Volume (Bohr³)"
	pl.Y.Label.Text = "Energy (Ry)"

	pts := make(plotter.XYs, len(volumes))
	for i := range volumes {
		pts[i].X = volumes[i]
		pts[i].Y = energies[i]
	}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	scatter.GlyphStyle.Color = dataColor
	scatter.GlyphStyle.Radius = vg.Points(3)

	fit := plotter.NewFunction(func(v float64) float64 {
		return eos.BirchMurnaghan(v, p)
	})
	fit.Color = fitColor
	fit.Samples = 200

	pl.Add(scatter, fit)
	pl.Legend.Add("calculated", scatter)
	pl.Legend.Add("fit", fit)
	pl.Legend.Top = true

	return pl.Save(6*vg.Inch, 4*vg.Inch, path)
}

// ConvergenceFigure writes a parameter-vs-deviation figure with the
// threshold drawn as a horizontal line.
func ConvergenceFigure(path, title, xLabel string, params, deviations []float64, threshold float64) error {
	pl := plot.New()
	pl.Title.Text = title
	pl.X.Label.Text = xLabel
	pl.Y.Label.Text = "|ΔE| (meV/atom)"

	pts := make(plotter.XYs, len(params))
	for i := range params {
		d := deviations[i]
		if d < 0 {
			d = -d
		}
		pts[i].X = params[i]
		pts[i].Y = d
	}
	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return err
	}
	line.Color = dataColor
	points.Color = dataColor

	thr := plotter.NewFunction(func(float64) float64 { return threshold })
	thr.Color = fitColor
	thr.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}

	pl.Add(line, points, thr)
	pl.Legend.Add("deviation", line)
	pl.Legend.Add("threshold", thr)

	return pl.Save(6*vg.Inch, 4*vg.Inch, path)
}
