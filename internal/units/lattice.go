package units

import "math"

// VolumeToLatticeFCC converts an FCC primitive cell volume to the
// conventional lattice parameter, V = a^3/4.
func VolumeToLatticeFCC(volume float64) float64 {
	return math.Cbrt(4.0 * volume)
}

// LatticeToVolumeFCC converts an FCC lattice parameter to the primitive
// cell volume.
func LatticeToVolumeFCC(a float64) float64 {
	return a * a * a / 4.0
}
