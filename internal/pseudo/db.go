// Package pseudo manages the pseudopotential files consumed by the
// engine: a per-functional database of tested files with recommended
// cutoffs, and a disk cache populated by parallel downloads.
//
// Sources: SSSP v1.3 Efficiency (PBE) and PSlibrary 1.0.0 (LDA, PBEsol).
package pseudo

import (
	"fmt"
	"sort"
)

// Entry describes one tested pseudopotential file.
type Entry struct {
	// ECutWfc is the recommended wavefunction cutoff in Ry.
	ECutWfc float64
	// Dual is the charge-density cutoff factor: ecutrho = ECutWfc * Dual.
	Dual float64
	// Filename is the upstream UPF file name.
	Filename string
}

// BaseURL is the upstream file server for all functionals.
const BaseURL = "https://pseudopotentials.quantum-espresso.org/upf_files/"

var db = map[string]map[string]Entry{
	"PBE": {
		"H":  {60, 8, "H.pbe-rrkjus_psl.1.0.0.UPF"},
		"He": {50, 4, "He.pbe-kjpaw_psl.1.0.0.UPF"},
		"Li": {40, 8, "Li.pbe-sl-rrkjus_psl.1.0.0.UPF"},
		"Be": {50, 8, "Be.pbe-n-rrkjus_psl.1.0.0.UPF"},
		"B":  {40, 8, "B.pbe-n-rrkjus_psl.1.0.0.UPF"},
		"C":  {45, 8, "C.pbe-n-kjpaw_psl.1.0.0.UPF"},
		"N":  {80, 8, "N.pbe-n-kjpaw_psl.1.0.0.UPF"},
		"O":  {75, 8, "O.pbe-n-kjpaw_psl.1.0.0.UPF"},
		"F":  {60, 8, "F.pbe-n-kjpaw_psl.1.0.0.UPF"},
		"Ne": {80, 4, "Ne.pbe-n-kjpaw_psl.1.0.0.UPF"},
		"Na": {40, 8, "Na.pbe-spn-kjpaw_psl.1.0.0.UPF"},
		"Mg": {35, 8, "Mg.pbe-spnl-kjpaw_psl.1.0.0.UPF"},
		"Al": {30, 8, "Al.pbe-nl-kjpaw_psl.1.0.0.UPF"},
		"Si": {40, 8, "Si.pbe-n-rrkjus_psl.1.0.0.UPF"},
		"P":  {35, 8, "P.pbe-nl-kjpaw_psl.1.0.0.UPF"},
		"S":  {40, 8, "S.pbe-nl-kjpaw_psl.1.0.0.UPF"},
		"Cl": {45, 8, "Cl.pbe-nl-kjpaw_psl.1.0.0.UPF"},
		"Ar": {60, 4, "Ar.pbe-n-kjpaw_psl.1.0.0.UPF"},
		"K":  {50, 8, "K.pbe-spn-kjpaw_psl.1.0.0.UPF"},
		"Ca": {35, 8, "Ca.pbe-spn-kjpaw_psl.1.0.0.UPF"},
		"Sc": {60, 8, "Sc.pbe-spn-kjpaw_psl.1.0.0.UPF"},
		"Ti": {60, 8, "Ti.pbe-spn-kjpaw_psl.1.0.0.UPF"},
		"V":  {55, 8, "V.pbe-spnl-kjpaw_psl.1.0.0.UPF"},
		"Cr": {60, 12, "Cr.pbe-spn-kjpaw_psl.1.0.0.UPF"},
		"Mn": {65, 12, "Mn.pbe-spn-kjpaw_psl.0.3.1.UPF"},
		"Fe": {90, 12, "Fe.pbe-spn-kjpaw_psl.1.0.0.UPF"},
		"Co": {55, 8, "Co.pbe-spn-kjpaw_psl.0.3.1.UPF"},
		"Ni": {60, 8, "Ni.pbe-n-kjpaw_psl.1.0.0.UPF"},
		"Cu": {55, 8, "Cu.pbe-dn-kjpaw_psl.1.0.0.UPF"},
		"Zn": {50, 8, "Zn.pbe-dnl-kjpaw_psl.1.0.0.UPF"},
		"Ga": {70, 8, "Ga.pbe-dn-kjpaw_psl.1.0.0.UPF"},
		"Ge": {45, 8, "Ge.pbe-dn-kjpaw_psl.1.0.0.UPF"},
		"As": {50, 8, "As.pbe-n-kjpaw_psl.1.0.0.UPF"},
		"Se": {50, 8, "Se.pbe-dn-kjpaw_psl.1.0.0.UPF"},
		"Br": {45, 8, "Br.pbe-n-kjpaw_psl.1.0.0.UPF"},
		"Kr": {50, 4, "Kr.pbe-dn-kjpaw_psl.1.0.0.UPF"},
		"Rb": {40, 8, "Rb.pbe-spn-kjpaw_psl.1.0.0.UPF"},
		"Sr": {40, 8, "Sr.pbe-spn-kjpaw_psl.1.0.0.UPF"},
		"Y":  {45, 8, "Y.pbe-spn-kjpaw_psl.1.0.0.UPF"},
		"Zr": {40, 8, "Zr.pbe-spn-kjpaw_psl.1.0.0.UPF"},
		"Nb": {50, 8, "Nb.pbe-spn-kjpaw_psl.1.0.0.UPF"},
		"Mo": {50, 8, "Mo.pbe-spn-kjpaw_psl.1.0.0.UPF"},
		"Tc": {50, 8, "Tc.pbe-spn-kjpaw_psl.0.3.1.UPF"},
		"Ru": {50, 8, "Ru.pbe-spn-kjpaw_psl.1.0.0.UPF"},
		"Rh": {50, 8, "Rh.pbe-spn-kjpaw_psl.1.0.0.UPF"},
		"Pd": {45, 8, "Pd.pbe-spn-kjpaw_psl.1.0.0.UPF"},
		"Ag": {45, 8, "Ag.pbe-n-kjpaw_psl.1.0.0.UPF"},
		"Cd": {50, 8, "Cd.pbe-dnl-kjpaw_psl.1.0.0.UPF"},
		"In": {50, 8, "In.pbe-dn-kjpaw_psl.1.0.0.UPF"},
		"Sn": {60, 8, "Sn.pbe-dn-kjpaw_psl.1.0.0.UPF"},
		"Sb": {55, 8, "Sb.pbe-n-kjpaw_psl.1.0.0.UPF"},
		"Te": {50, 8, "Te.pbe-n-kjpaw_psl.1.0.0.UPF"},
		"I":  {45, 8, "I.pbe-n-kjpaw_psl.1.0.0.UPF"},
		"Xe": {50, 4, "Xe.pbe-dn-kjpaw_psl.1.0.0.UPF"},
		"Cs": {40, 8, "Cs.pbe-spn-kjpaw_psl.1.0.0.UPF"},
		"Ba": {35, 8, "Ba.pbe-spn-kjpaw_psl.1.0.0.UPF"},
		"La": {55, 8, "La.pbe-spfn-kjpaw_psl.1.0.0.UPF"},
		"Ce": {55, 8, "Ce.pbe-spdn-kjpaw_psl.1.0.0.UPF"},
		"Hf": {50, 8, "Hf.pbe-spn-kjpaw_psl.1.0.0.UPF"},
		"Ta": {50, 8, "Ta.pbe-spn-kjpaw_psl.1.0.0.UPF"},
		"W":  {45, 8, "W.pbe-spn-kjpaw_psl.1.0.0.UPF"},
		"Re": {50, 8, "Re.pbe-spn-kjpaw_psl.1.0.0.UPF"},
		"Os": {50, 8, "Os.pbe-spn-kjpaw_psl.1.0.0.UPF"},
		"Ir": {50, 8, "Ir.pbe-n-kjpaw_psl.1.0.0.UPF"},
		"Pt": {50, 8, "Pt.pbe-spfn-kjpaw_psl.1.0.0.UPF"},
		"Au": {50, 8, "Au.pbe-spfn-kjpaw_psl.1.0.0.UPF"},
		"Hg": {50, 8, "Hg.pbe-dnl-kjpaw_psl.1.0.0.UPF"},
		"Tl": {50, 8, "Tl.pbe-dn-kjpaw_psl.1.0.0.UPF"},
		"Pb": {40, 8, "Pb.pbe-dn-kjpaw_psl.1.0.0.UPF"},
		"Bi": {50, 8, "Bi.pbe-dn-kjpaw_psl.1.0.0.UPF"},
	},
	"LDA": {
		"H":  {60, 8, "H.pz-rrkjus_psl.1.0.0.UPF"},
		"Li": {40, 8, "Li.pz-sl-rrkjus_psl.1.0.0.UPF"},
		"Be": {50, 8, "Be.pz-n-rrkjus_psl.1.0.0.UPF"},
		"B":  {40, 8, "B.pz-n-rrkjus_psl.1.0.0.UPF"},
		"C":  {45, 8, "C.pz-n-kjpaw_psl.1.0.0.UPF"},
		"N":  {80, 8, "N.pz-n-kjpaw_psl.1.0.0.UPF"},
		"O":  {75, 8, "O.pz-n-kjpaw_psl.1.0.0.UPF"},
		"F":  {60, 8, "F.pz-n-kjpaw_psl.1.0.0.UPF"},
		"Na": {40, 8, "Na.pz-spn-kjpaw_psl.1.0.0.UPF"},
		"Mg": {35, 8, "Mg.pz-spnl-kjpaw_psl.1.0.0.UPF"},
		"Al": {30, 8, "Al.pz-nl-kjpaw_psl.1.0.0.UPF"},
		"Si": {40, 8, "Si.pz-n-rrkjus_psl.1.0.0.UPF"},
		"P":  {35, 8, "P.pz-nl-kjpaw_psl.1.0.0.UPF"},
		"S":  {40, 8, "S.pz-nl-kjpaw_psl.1.0.0.UPF"},
		"Cl": {45, 8, "Cl.pz-nl-kjpaw_psl.1.0.0.UPF"},
		"K":  {50, 8, "K.pz-spn-kjpaw_psl.1.0.0.UPF"},
		"Ca": {35, 8, "Ca.pz-spn-kjpaw_psl.1.0.0.UPF"},
		"Ti": {60, 8, "Ti.pz-spn-kjpaw_psl.1.0.0.UPF"},
		"V":  {55, 8, "V.pz-spnl-kjpaw_psl.1.0.0.UPF"},
		"Cr": {60, 12, "Cr.pz-spn-kjpaw_psl.1.0.0.UPF"},
		"Mn": {65, 12, "Mn.pz-spn-kjpaw_psl.1.0.0.UPF"},
		"Fe": {90, 12, "Fe.pz-spn-kjpaw_psl.1.0.0.UPF"},
		"Co": {55, 8, "Co.pz-spn-kjpaw_psl.0.3.1.UPF"},
		"Ni": {60, 8, "Ni.pz-spn-kjpaw_psl.0.3.1.UPF"},
		"Cu": {55, 8, "Cu.pz-dn-kjpaw_psl.1.0.0.UPF"},
		"Zn": {50, 8, "Zn.pz-dn-kjpaw_psl.1.0.0.UPF"},
		"Ga": {70, 8, "Ga.pz-dn-kjpaw_psl.1.0.0.UPF"},
		"Ge": {45, 8, "Ge.pz-dn-kjpaw_psl.1.0.0.UPF"},
		"Sr": {40, 8, "Sr.pz-spn-kjpaw_psl.1.0.0.UPF"},
		"Zr": {40, 8, "Zr.pz-spn-kjpaw_psl.1.0.0.UPF"},
		"Ag": {45, 8, "Ag.pz-spn-kjpaw_psl.1.0.0.UPF"},
		"Ba": {35, 8, "Ba.pz-spn-kjpaw_psl.1.0.0.UPF"},
		"Au": {50, 8, "Au.pz-spfn-kjpaw_psl.1.0.0.UPF"},
		"Pb": {40, 8, "Pb.pz-dn-kjpaw_psl.1.0.0.UPF"},
	},
	"PBEsol": {
		"H":  {60, 8, "H.pbesol-rrkjus_psl.1.0.0.UPF"},
		"Li": {40, 8, "Li.pbesol-sl-rrkjus_psl.1.0.0.UPF"},
		"Be": {50, 8, "Be.pbesol-n-rrkjus_psl.1.0.0.UPF"},
		"B":  {40, 8, "B.pbesol-n-rrkjus_psl.1.0.0.UPF"},
		"C":  {45, 8, "C.pbesol-n-kjpaw_psl.1.0.0.UPF"},
		"N":  {80, 8, "N.pbesol-n-kjpaw_psl.1.0.0.UPF"},
		"O":  {75, 8, "O.pbesol-n-kjpaw_psl.1.0.0.UPF"},
		"F":  {60, 8, "F.pbesol-n-kjpaw_psl.1.0.0.UPF"},
		"Na": {40, 8, "Na.pbesol-spn-kjpaw_psl.1.0.0.UPF"},
		"Mg": {35, 8, "Mg.pbesol-spnl-kjpaw_psl.1.0.0.UPF"},
		"Al": {30, 8, "Al.pbesol-nl-kjpaw_psl.1.0.0.UPF"},
		"Si": {40, 8, "Si.pbesol-n-rrkjus_psl.1.0.0.UPF"},
		"P":  {35, 8, "P.pbesol-nl-kjpaw_psl.1.0.0.UPF"},
		"S":  {40, 8, "S.pbesol-nl-kjpaw_psl.1.0.0.UPF"},
		"Cl": {45, 8, "Cl.pbesol-nl-kjpaw_psl.1.0.0.UPF"},
		"K":  {50, 8, "K.pbesol-spn-kjpaw_psl.1.0.0.UPF"},
		"Ca": {35, 8, "Ca.pbesol-spn-kjpaw_psl.1.0.0.UPF"},
		"Ti": {60, 8, "Ti.pbesol-spn-kjpaw_psl.1.0.0.UPF"},
		"V":  {55, 8, "V.pbesol-spnl-kjpaw_psl.1.0.0.UPF"},
		"Cr": {60, 12, "Cr.pbesol-spn-kjpaw_psl.1.0.0.UPF"},
		"Mn": {65, 12, "Mn.pbesol-spn-kjpaw_psl.1.0.0.UPF"},
		"Fe": {90, 12, "Fe.pbesol-spn-kjpaw_psl.1.0.0.UPF"},
		"Co": {55, 8, "Co.pbesol-spn-kjpaw_psl.0.3.1.UPF"},
		"Ni": {60, 8, "Ni.pbesol-spn-kjpaw_psl.0.3.1.UPF"},
		"Cu": {55, 8, "Cu.pbesol-dn-kjpaw_psl.1.0.0.UPF"},
		"Zn": {50, 8, "Zn.pbesol-dn-kjpaw_psl.1.0.0.UPF"},
		"Ga": {70, 8, "Ga.pbesol-dn-kjpaw_psl.1.0.0.UPF"},
		"Ge": {45, 8, "Ge.pbesol-dn-kjpaw_psl.1.0.0.UPF"},
		"Sr": {40, 8, "Sr.pbesol-spn-kjpaw_psl.1.0.0.UPF"},
		"Y":  {45, 8, "Y.pbesol-spn-kjpaw_psl.1.0.0.UPF"},
		"Zr": {40, 8, "Zr.pbesol-spn-kjpaw_psl.1.0.0.UPF"},
		"Ag": {45, 8, "Ag.pbesol-spn-kjpaw_psl.1.0.0.UPF"},
		"Sn": {60, 8, "Sn.pbesol-dn-kjpaw_psl.1.0.0.UPF"},
		"Ba": {35, 8, "Ba.pbesol-spn-kjpaw_psl.1.0.0.UPF"},
		"La": {55, 8, "La.pbesol-spfn-kjpaw_psl.1.0.0.UPF"},
		"Pt": {50, 8, "Pt.pbesol-spfn-kjpaw_psl.1.0.0.UPF"},
		"Au": {50, 8, "Au.pbesol-spfn-kjpaw_psl.1.0.0.UPF"},
		"Pb": {40, 8, "Pb.pbesol-dn-kjpaw_psl.1.0.0.UPF"},
	},
}

// Functionals returns the supported exchange-correlation functionals.
func Functionals() []string {
	names := make([]string, 0, len(db))
	for f := range db {
		names = append(names, f)
	}
	sort.Strings(names)
	return names
}

// Elements returns the elements tabulated for a functional, sorted.
func Elements(functional string) ([]string, error) {
	table, ok := db[functional]
	if !ok {
		return nil, fmt.Errorf("pseudo: unknown functional %q", functional)
	}
	names := make([]string, 0, len(table))
	for e := range table {
		names = append(names, e)
	}
	sort.Strings(names)
	return names, nil
}

// Info returns the database entry for an element under a functional.
func Info(functional, element string) (Entry, bool) {
	table, ok := db[functional]
	if !ok {
		return Entry{}, false
	}
	e, ok := table[element]
	return e, ok
}

// RecommendedCutoffs returns the wavefunction and charge-density cutoffs
// for a set of elements: the maximum over the per-element recommendations.
// Elements missing from the table fall back to 60 Ry with the minimum
// dual of 4.
func RecommendedCutoffs(functional string, elements []string) (ecutwfc, ecutrho float64) {
	table := db[functional]
	maxWfc, maxDual := 0.0, 4.0
	for _, e := range elements {
		entry, ok := table[e]
		if !ok {
			if maxWfc < 60 {
				maxWfc = 60
			}
			continue
		}
		if entry.ECutWfc > maxWfc {
			maxWfc = entry.ECutWfc
		}
		if entry.Dual > maxDual {
			maxDual = entry.Dual
		}
	}
	if maxWfc == 0 {
		maxWfc = 60
	}
	return maxWfc, maxWfc * maxDual
}
