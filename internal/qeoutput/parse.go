// Package qeoutput extracts typed fields from the plain-text output of
// the pw.x engine.
//
// Each extractor matches the full output text independently and reports
// absence through a comma-ok return, so extractors can run in any order
// and in isolation. [Parse] bundles the common SCF fields into a Result.
package qeoutput

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/san-kum/qelab/internal/units"
)

var (
	energyRe     = regexp.MustCompile(`!\s+total energy\s+=\s+([-\d.]+)\s+Ry`)
	fermiRe      = regexp.MustCompile(`(?i)the Fermi energy is\s+([-\d.]+)\s+ev`)
	iterationsRe = regexp.MustCompile(`convergence has been achieved in\s+(\d+)\s+iterations`)
	volumeRe     = regexp.MustCompile(`unit-cell volume\s+=\s+([\d.]+)`)
	pressureRe   = regexp.MustCompile(`P=\s*([-\d.]+)`)
	forceRe      = regexp.MustCompile(`Total force\s+=\s+([\d.]+)`)
	bandEdgeRe   = regexp.MustCompile(`(?i)highest occupied, lowest unoccupied level \(ev\):\s+([-\d.]+)\s+([-\d.]+)`)
	timingRe     = regexp.MustCompile(`PWSCF\s+:\s+(.+?)\s+CPU\s+(.+?)\s+WALL`)
)

func matchFloat(re *regexp.Regexp, text string) (float64, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Converged reports whether the SCF cycle reached its threshold.
func Converged(text string) bool {
	return strings.Contains(strings.ToLower(text), "convergence has been achieved")
}

// TotalEnergy extracts the final total energy in Ry.
func TotalEnergy(text string) (float64, bool) {
	return matchFloat(energyRe, text)
}

// FermiEnergy extracts the Fermi energy in eV.
func FermiEnergy(text string) (float64, bool) {
	return matchFloat(fermiRe, text)
}

// Iterations extracts the SCF iteration count.
func Iterations(text string) (int, bool) {
	m := iterationsRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Volume extracts the unit-cell volume in Bohr^3.
func Volume(text string) (float64, bool) {
	return matchFloat(volumeRe, text)
}

// Pressure extracts the total pressure in kbar.
func Pressure(text string) (float64, bool) {
	return matchFloat(pressureRe, text)
}

// TotalForce extracts the total force in Ry/Bohr.
func TotalForce(text string) (float64, bool) {
	return matchFloat(forceRe, text)
}

// BandEdges extracts the valence-band maximum and conduction-band minimum
// in eV, printed for insulating occupations.
func BandEdges(text string) (vbm, cbm float64, ok bool) {
	m := bandEdgeRe.FindStringSubmatch(text)
	if m == nil {
		return 0, 0, false
	}
	vbm, err1 := strconv.ParseFloat(m[1], 64)
	cbm, err2 := strconv.ParseFloat(m[2], 64)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return vbm, cbm, true
}

// Timing extracts the CPU and wall time strings from the final report.
func Timing(text string) (cpu, wall string, ok bool) {
	m := timingRe.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}
	return strings.TrimSpace(m[1]), strings.TrimSpace(m[2]), true
}

// Result bundles the common SCF fields. Has* flags distinguish a missing
// field from a zero value.
type Result struct {
	Converged bool

	EnergyRy  float64
	EnergyEV  float64
	HasEnergy bool

	Iterations    int
	HasIterations bool

	FermiEV  float64
	HasFermi bool

	VolumeBohr3 float64
	HasVolume   bool

	PressureKbar float64
	HasPressure  bool

	ForceRyBohr float64
	HasForce    bool

	VBM    float64
	CBM    float64
	HasGap bool

	CPUTime  string
	WallTime string
}

// Parse runs every extractor over the output text.
func Parse(text string) Result {
	r := Result{Converged: Converged(text)}
	if e, ok := TotalEnergy(text); ok {
		r.EnergyRy = e
		r.EnergyEV = units.RyToEV(e)
		r.HasEnergy = true
	}
	if n, ok := Iterations(text); ok {
		r.Iterations = n
		r.HasIterations = true
	}
	if f, ok := FermiEnergy(text); ok {
		r.FermiEV = f
		r.HasFermi = true
	}
	if v, ok := Volume(text); ok {
		r.VolumeBohr3 = v
		r.HasVolume = true
	}
	if p, ok := Pressure(text); ok {
		r.PressureKbar = p
		r.HasPressure = true
	}
	if f, ok := TotalForce(text); ok {
		r.ForceRyBohr = f
		r.HasForce = true
	}
	if vbm, cbm, ok := BandEdges(text); ok {
		r.VBM, r.CBM = vbm, cbm
		r.HasGap = true
	}
	if cpu, wall, ok := Timing(text); ok {
		r.CPUTime, r.WallTime = cpu, wall
	}
	return r
}
