// Package stability checks Born mechanical-stability criteria on elastic
// constants and derives Voigt-average moduli.
package stability

import "math"

// Criterion is one named inequality of a Born stability check.
type Criterion struct {
	Name      string
	Satisfied bool
}

// Report is the outcome of a stability check. Stable is true only when
// every criterion holds.
type Report struct {
	Stable   bool
	Criteria []Criterion
}

func report(criteria []Criterion) Report {
	r := Report{Stable: true, Criteria: criteria}
	for _, c := range criteria {
		if !c.Satisfied {
			r.Stable = false
		}
	}
	return r
}

// CheckCubic evaluates the Born criteria for a cubic crystal. Elastic
// constants may be in any single pressure unit.
func CheckCubic(c11, c12, c44 float64) Report {
	return report([]Criterion{
		{"C11 > 0", c11 > 0},
		{"C11 - C12 > 0", c11-c12 > 0},
		{"C11 + 2*C12 > 0", c11+2*c12 > 0},
		{"C44 > 0", c44 > 0},
	})
}

// CheckHexagonal evaluates the Born criteria for a hexagonal crystal,
// with C66 derived as (C11-C12)/2.
func CheckHexagonal(c11, c12, c13, c33, c44 float64) Report {
	c66 := (c11 - c12) / 2
	return report([]Criterion{
		{"C11 > |C12|", c11 > math.Abs(c12)},
		{"C33*(C11+C12) > 2*C13^2", c33*(c11+c12) > 2*c13*c13},
		{"C44 > 0", c44 > 0},
		{"C66 > 0", c66 > 0},
	})
}

// VoigtBulkModulus returns the Voigt-average bulk modulus of a cubic
// crystal, B = (C11 + 2*C12)/3.
func VoigtBulkModulus(c11, c12 float64) float64 {
	return (c11 + 2*c12) / 3
}

// VoigtShearModulus returns the Voigt-average shear modulus of a cubic
// crystal, G = (C11 - C12 + 3*C44)/5.
func VoigtShearModulus(c11, c12, c44 float64) float64 {
	return (c11 - c12 + 3*c44) / 5
}
