package report

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/qelab/internal/convergence"
	"github.com/san-kum/qelab/internal/eos"
	"github.com/san-kum/qelab/internal/stability"
	"github.com/san-kum/qelab/internal/units"
)

// EOSFit renders a fitted equation of state as a labelled panel.
func EOSFit(material string, p eos.Params) string {
	var b strings.Builder
	b.WriteString(Title.Render("Birch-Murnaghan fit: "+material) + "\n")
	rows := []struct {
		label, value string
	}{
		{"E0", fmt.Sprintf("%.6f Ry", p.E0)},
		{"V0", fmt.Sprintf("%.3f Bohr^3", p.V0)},
		{"a (fcc)", fmt.Sprintf("%.4f Bohr", units.VolumeToLatticeFCC(p.V0))},
		{"B0", fmt.Sprintf("%.2f GPa", units.RyBohr3ToGPa(p.B0))},
		{"B0'", fmt.Sprintf("%.3f", p.BPrime)},
	}
	var body strings.Builder
	for _, r := range rows {
		body.WriteString(fmt.Sprintf("%s %s\n", Label.Render(fmt.Sprintf("%-8s", r.label)), Value.Render(r.value)))
	}
	b.WriteString(Panel.Render(strings.TrimRight(body.String(), "\n")))
	return b.String()
}

// EOSGraph plots the measured energies against the fitted curve in the
// terminal. Energies are shifted so the fitted minimum sits at zero.
func EOSGraph(volumes []float64, p eos.Params, width, height int) string {
	if len(volumes) == 0 {
		return ""
	}
	curve := eos.Curve(volumes, p)
	shifted := make([]float64, len(curve))
	for i, e := range curve {
		shifted[i] = units.RyToMeV(e - p.E0)
	}
	return asciigraph.Plot(shifted,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("E - E0 (meV) vs volume"),
	)
}

// Convergence renders a deviation table with a marker on the first
// converged entry.
func Convergence(params []float64, a convergence.Analysis, threshold float64, unit string) string {
	var b strings.Builder
	b.WriteString(Title.Render("Convergence") + "\n")
	for i, dev := range a.Deviations {
		marker := "  "
		style := Subtle
		switch {
		case a.Converged && i == a.Index:
			marker = Pass.Render("->")
			style = Value
		case float64(i) == a.Reference:
			marker = Label.Render("**")
		}
		b.WriteString(fmt.Sprintf("%s %10.4g  %s\n",
			marker, params[i], style.Render(fmt.Sprintf("%+.4f %s", dev, unit))))
	}
	if a.Converged {
		b.WriteString(Pass.Render(fmt.Sprintf("converged at %.4g (|dev| <= %g %s)", params[a.Index], threshold, unit)) + "\n")
	} else {
		b.WriteString(Warn.Render(fmt.Sprintf("not converged to %g %s before the reference", threshold, unit)) + "\n")
	}
	return b.String()
}

// ConvergenceGraph plots the absolute deviations on a log-friendly
// terminal graph.
func ConvergenceGraph(a convergence.Analysis, width, height int) string {
	if len(a.Deviations) == 0 {
		return ""
	}
	abs := make([]float64, len(a.Deviations))
	for i, d := range a.Deviations {
		if d < 0 {
			d = -d
		}
		abs[i] = d
	}
	return asciigraph.Plot(abs,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("|deviation| vs parameter index"),
	)
}

// Stability renders a Born criteria report.
func Stability(system string, r stability.Report) string {
	var b strings.Builder
	b.WriteString(Title.Render("Born stability: "+system) + "\n")
	var body strings.Builder
	for _, c := range r.Criteria {
		body.WriteString(fmt.Sprintf("%s %s\n", Mark(c.Satisfied), c.Name))
	}
	if r.Stable {
		body.WriteString(Pass.Render("mechanically stable"))
	} else {
		body.WriteString(Fail.Render("NOT mechanically stable"))
	}
	b.WriteString(Panel.Render(body.String()))
	return b.String()
}
