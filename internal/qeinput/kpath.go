package qeinput

import (
	"fmt"
	"strings"
)

// KPoint is a high-symmetry point in crystal-b coordinates.
type KPoint [3]float64

// PathPoint is one stop on a band-structure path; Points is the number of
// interpolated points to the next stop (0 terminates the path).
type PathPoint struct {
	Name   string
	Points int
}

// highSymmetry lists the standard high-symmetry points per lattice.
var highSymmetry = map[string]map[string]KPoint{
	"FCC": {
		"G": {0.000, 0.000, 0.000},
		"X": {0.500, 0.000, 0.500},
		"W": {0.500, 0.250, 0.750},
		"K": {0.375, 0.375, 0.750},
		"L": {0.500, 0.500, 0.500},
		"U": {0.625, 0.250, 0.625},
	},
	"BCC": {
		"G": {0.000, 0.000, 0.000},
		"H": {0.500, -0.500, 0.500},
		"N": {0.000, 0.000, 0.500},
		"P": {0.250, 0.250, 0.250},
	},
	"HEX": {
		"G": {0.000, 0.000, 0.000},
		"M": {0.500, 0.000, 0.000},
		"K": {0.333, 0.333, 0.000},
		"A": {0.000, 0.000, 0.500},
		"L": {0.500, 0.000, 0.500},
		"H": {0.333, 0.333, 0.500},
	},
	"CUBIC": {
		"G": {0.000, 0.000, 0.000},
		"X": {0.500, 0.000, 0.000},
		"M": {0.500, 0.500, 0.000},
		"R": {0.500, 0.500, 0.500},
	},
}

var defaultPaths = map[string][]PathPoint{
	"FCC":   {{"G", 20}, {"X", 10}, {"W", 10}, {"K", 20}, {"G", 20}, {"L", 0}},
	"BCC":   {{"G", 20}, {"H", 20}, {"N", 20}, {"G", 20}, {"P", 0}},
	"HEX":   {{"G", 20}, {"M", 20}, {"K", 20}, {"G", 20}, {"A", 0}},
	"CUBIC": {{"G", 20}, {"X", 20}, {"M", 20}, {"G", 20}, {"R", 0}},
}

// Lattices returns the supported crystal systems.
func Lattices() []string {
	return []string{"FCC", "BCC", "HEX", "CUBIC"}
}

// HighSymmetryPoint looks up a named point for a crystal system.
func HighSymmetryPoint(system, name string) (KPoint, bool) {
	points, ok := highSymmetry[system]
	if !ok {
		return KPoint{}, false
	}
	p, ok := points[name]
	return p, ok
}

// KPathCard renders a K_POINTS {crystal_b} card for a band-structure run.
// A nil path uses the default path for the crystal system.
func KPathCard(system string, path []PathPoint) (string, error) {
	points, ok := highSymmetry[system]
	if !ok {
		return "", fmt.Errorf("%w: unknown crystal system %q", ErrInvalidDeck, system)
	}
	if path == nil {
		path = defaultPaths[system]
	}

	var buf strings.Builder
	buf.WriteString("K_POINTS {crystal_b}\n")
	fmt.Fprintf(&buf, "%d\n", len(path))
	for _, stop := range path {
		p, ok := points[stop.Name]
		if !ok {
			return "", fmt.Errorf("%w: point %q not defined for %s", ErrInvalidDeck, stop.Name, system)
		}
		fmt.Fprintf(&buf, "  %.6f %.6f %.6f %d  ! %s\n", p[0], p[1], p[2], stop.Points, stop.Name)
	}
	return buf.String(), nil
}
