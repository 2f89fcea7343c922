package plot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/qelab/internal/eos"
)

func TestEOSCurve(t *testing.T) {
	p := eos.Params{E0: -15.85, V0: 270.0, B0: 0.0067, BPrime: 4.0}
	volumes := []float64{250, 260, 270, 280, 290}
	energies := eos.Curve(volumes, p)

	path := filepath.Join(t.TempDir(), "eos.png")
	if err := EOSCurve(path, "silicon", volumes, energies, p); err != nil {
		t.Fatalf("EOSCurve: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("figure not written: %v", err)
	}
	if info.Size() == 0 {
		t.Error("figure is empty")
	}
}

func TestConvergenceFigure(t *testing.T) {
	params := []float64{20, 30, 40, 50, 60}
	deviations := []float64{12.5, 3.1, -0.8, 0.2, 0}

	path := filepath.Join(t.TempDir(), "conv.svg")
	err := ConvergenceFigure(path, "cutoff convergence", "ecutwfc (Ry)", params, deviations, 1.0)
	if err != nil {
		t.Fatalf("ConvergenceFigure: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("figure not written: %v", err)
	}
}
