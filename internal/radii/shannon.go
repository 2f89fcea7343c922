// Package radii provides the Shannon effective ionic radii database.
//
// Radii are indexed by element symbol, oxidation state, and coordination
// number, and reported in Angstrom. A missing entry is a normal outcome,
// not an error: [Lookup] follows the comma-ok convention.
//
// Reference: R.D. Shannon, Acta Cryst. A32, 751 (1976).
package radii

import "sort"

// shannon maps element -> oxidation state -> coordination number -> radius.
var shannon = map[string]map[int]map[int]float64{
	// Alkali metals
	"Li": {1: {4: 0.59, 6: 0.76, 8: 0.92}},
	"Na": {1: {4: 0.99, 6: 1.02, 8: 1.18, 12: 1.39}},
	"K":  {1: {6: 1.38, 8: 1.51, 12: 1.64}},
	"Rb": {1: {6: 1.52, 8: 1.61, 12: 1.72}},
	"Cs": {1: {6: 1.67, 8: 1.74, 12: 1.88}},
	// Alkaline earth metals
	"Be": {2: {4: 0.27, 6: 0.45}},
	"Mg": {2: {4: 0.57, 6: 0.72, 8: 0.89}},
	"Ca": {2: {6: 1.00, 8: 1.12, 12: 1.34}},
	"Sr": {2: {6: 1.18, 8: 1.26, 12: 1.44}},
	"Ba": {2: {6: 1.35, 8: 1.42, 12: 1.61}},
	// Transition metals
	"Ti": {2: {6: 0.86}, 3: {6: 0.67}, 4: {4: 0.42, 6: 0.605, 8: 0.74}},
	"V":  {2: {6: 0.79}, 3: {6: 0.64}, 4: {6: 0.58}, 5: {4: 0.355, 6: 0.54}},
	"Cr": {2: {6: 0.80}, 3: {6: 0.615}, 6: {4: 0.26, 6: 0.44}},
	"Mn": {2: {4: 0.66, 6: 0.83}, 3: {6: 0.645}, 4: {4: 0.39, 6: 0.53}, 7: {4: 0.25}},
	"Fe": {2: {4: 0.63, 6: 0.78}, 3: {4: 0.49, 6: 0.645}},
	"Co": {2: {4: 0.58, 6: 0.745}, 3: {6: 0.61}},
	"Ni": {2: {4: 0.55, 6: 0.69}, 3: {6: 0.56}},
	"Cu": {1: {2: 0.46, 4: 0.60, 6: 0.77}, 2: {4: 0.57, 6: 0.73}},
	"Zn": {2: {4: 0.60, 6: 0.74, 8: 0.90}},
	"Zr": {4: {4: 0.59, 6: 0.72, 8: 0.84}},
	// Main group
	"Al": {3: {4: 0.39, 6: 0.535}},
	"Ga": {3: {4: 0.47, 6: 0.62}},
	"In": {3: {6: 0.80, 8: 0.92}},
	"Si": {4: {4: 0.26, 6: 0.40}},
	"Ge": {4: {4: 0.39, 6: 0.53}},
	"Sn": {2: {6: 0.93}, 4: {4: 0.55, 6: 0.69}},
	"Pb": {2: {6: 1.19, 8: 1.29}, 4: {4: 0.65, 6: 0.775}},
	// Anions
	"O":  {-2: {2: 1.35, 3: 1.36, 4: 1.38, 6: 1.40, 8: 1.42}},
	"S":  {-2: {6: 1.84}},
	"Se": {-2: {6: 1.98}},
	"Te": {-2: {6: 2.21}},
	"F":  {-1: {2: 1.285, 4: 1.31, 6: 1.33}},
	"Cl": {-1: {6: 1.81}},
	"Br": {-1: {6: 1.96}},
	"I":  {-1: {6: 2.20}},
	"N":  {-3: {4: 1.46}},
	// Lanthanides (+3 state)
	"La": {3: {6: 1.032, 8: 1.16, 12: 1.36}},
	"Ce": {3: {6: 1.01}, 4: {6: 0.87}},
	"Gd": {3: {6: 0.938}},
	"Yb": {2: {6: 1.02}, 3: {6: 0.868}},
}

// Lookup returns the Shannon ionic radius in Angstrom for an element at
// the given oxidation state and coordination number. The second return is
// false when the combination is not tabulated.
func Lookup(element string, oxidation, coordination int) (float64, bool) {
	byOxidation, ok := shannon[element]
	if !ok {
		return 0, false
	}
	byCoordination, ok := byOxidation[oxidation]
	if !ok {
		return 0, false
	}
	r, ok := byCoordination[coordination]
	return r, ok
}

// Elements returns the tabulated element symbols in sorted order.
func Elements() []string {
	names := make([]string, 0, len(shannon))
	for e := range shannon {
		names = append(names, e)
	}
	sort.Strings(names)
	return names
}

// States returns the tabulated (oxidation, coordination) pairs for an
// element, sorted by oxidation state then coordination.
func States(element string) [][2]int {
	byOxidation, ok := shannon[element]
	if !ok {
		return nil
	}
	var pairs [][2]int
	for ox, byCoord := range byOxidation {
		for cn := range byCoord {
			pairs = append(pairs, [2]int{ox, cn})
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})
	return pairs
}
