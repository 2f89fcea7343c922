// Package eos fits equations of state to energy-volume data.
//
// The model is the third-order Birch-Murnaghan equation of state,
//
//	E(V) = E0 + (9*V0*B0/16) * [(eta-1)^3*B' + (eta-1)^2*(6-4*eta)]
//
// with eta = (V0/V)^(2/3). [Fit] estimates the four parameters from
// sampled (volume, energy) pairs by nonlinear least squares:
//
//	params, err := eos.Fit(volumes, energies, eos.DefaultFitOptions())
//	if err != nil { ... }
//	b0GPa := units.RyBohr3ToGPa(params.B0)
//
// Volumes and energies must be supplied in mutually consistent units; the
// fitted B0 comes back in those same units and any pressure-unit
// conversion is the caller's job.
package eos
