package units

import (
	"math"
	"testing"
)

func TestRoundTrips(t *testing.T) {
	tests := []struct {
		name    string
		forward func(float64) float64
		back    func(float64) float64
		value   float64
	}{
		{"bohr/angstrom", BohrToAngstrom, AngstromToBohr, 10.26},
		{"ry/ev", RyToEV, EVToRy, -15.85},
		{"rybohr3/gpa", RyBohr3ToGPa, GPaToRyBohr3, 0.0067},
	}

	for _, tt := range tests {
		got := tt.back(tt.forward(tt.value))
		if math.Abs(got-tt.value) > 1e-12*math.Abs(tt.value) {
			t.Errorf("%s: round trip of %g gave %g", tt.name, tt.value, got)
		}
	}
}

func TestKnownValues(t *testing.T) {
	if got := RyToEV(1.0); math.Abs(got-13.605693122994) > 1e-12 {
		t.Errorf("1 Ry = %g eV", got)
	}
	if got := KbarToGPa(10.0); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("10 kbar = %g GPa", got)
	}
	if got := RyToMeV(0.001); math.Abs(got-13.605693122994) > 1e-9 {
		t.Errorf("0.001 Ry = %g meV", got)
	}
}

func TestFCCLattice(t *testing.T) {
	// silicon: a = 5.43 A
	a := 5.43
	v := LatticeToVolumeFCC(a)
	if math.Abs(v-a*a*a/4) > 1e-12 {
		t.Errorf("volume of a=%g: got %g", a, v)
	}
	if got := VolumeToLatticeFCC(v); math.Abs(got-a) > 1e-12 {
		t.Errorf("lattice round trip: got %g, want %g", got, a)
	}
}
