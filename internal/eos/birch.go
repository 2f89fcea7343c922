package eos

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"
)

var (
	// ErrInvalidInput marks malformed fit input: fewer than four samples,
	// mismatched array lengths, or a non-positive volume.
	ErrInvalidInput = errors.New("eos: invalid input")
	// ErrFitDiverged marks a least-squares solve that failed to converge
	// from the initial guess. The fit is a single attempt; retrying with a
	// different guess is up to the caller.
	ErrFitDiverged = errors.New("eos: fit did not converge")
)

// Params holds the four Birch-Murnaghan parameters: equilibrium energy,
// equilibrium volume, bulk modulus at equilibrium (in energy/volume
// units), and the dimensionless pressure derivative of the bulk modulus.
type Params struct {
	E0     float64
	V0     float64
	B0     float64
	BPrime float64
}

// BirchMurnaghan evaluates the third-order Birch-Murnaghan energy at
// volume v. At v == p.V0 the result is exactly p.E0.
func BirchMurnaghan(v float64, p Params) float64 {
	eta := math.Pow(p.V0/v, 2.0/3.0)
	d := eta - 1.0
	return p.E0 + 9.0*p.V0*p.B0/16.0*(d*d*d*p.BPrime+d*d*(6.0-4.0*eta))
}

// Curve evaluates the model over a volume grid.
func Curve(volumes []float64, p Params) []float64 {
	energies := make([]float64, len(volumes))
	for i, v := range volumes {
		energies[i] = BirchMurnaghan(v, p)
	}
	return energies
}

// FitOptions seeds the nonlinear solve. The bulk modulus seeds only start
// the solver; they do carry the unit assumption of the data, so callers
// working outside Ry/Bohr^3 should override them.
type FitOptions struct {
	// B0Init is the initial bulk modulus guess in the energy/volume unit
	// of the data. The default 0.0067 is roughly 100 GPa in Ry/Bohr^3.
	B0Init float64
	// BPrimeInit is the initial guess for the pressure derivative.
	BPrimeInit float64
	// MaxIterations bounds the solver; 0 leaves the stopping decision
	// to the convergence test alone.
	MaxIterations int
}

// DefaultFitOptions returns the documented seed values.
func DefaultFitOptions() FitOptions {
	return FitOptions{
		B0Init:     0.0067,
		BPrimeInit: 4.0,
	}
}

// Fit estimates Birch-Murnaghan parameters from sampled (volume, energy)
// pairs. It needs at least four samples with strictly positive volumes.
// Input is validated before any numeric work; a solver that fails to
// converge surfaces as ErrFitDiverged with no partial result.
func Fit(volumes, energies []float64, opts FitOptions) (Params, error) {
	if len(volumes) != len(energies) {
		return Params{}, fmt.Errorf("%w: %d volumes vs %d energies",
			ErrInvalidInput, len(volumes), len(energies))
	}
	if len(volumes) < 4 {
		return Params{}, fmt.Errorf("%w: need at least 4 samples, got %d",
			ErrInvalidInput, len(volumes))
	}
	for i, v := range volumes {
		if v <= 0 {
			return Params{}, fmt.Errorf("%w: volume %g at index %d",
				ErrInvalidInput, v, i)
		}
	}
	if opts.B0Init == 0 {
		opts.B0Init = DefaultFitOptions().B0Init
	}
	if opts.BPrimeInit == 0 {
		opts.BPrimeInit = DefaultFitOptions().BPrimeInit
	}

	iMin := floats.MinIdx(energies)
	x0 := []float64{energies[iMin], volumes[iMin], opts.B0Init, opts.BPrimeInit}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			p := Params{E0: x[0], V0: x[1], B0: x[2], BPrime: x[3]}
			var rss float64
			for i, v := range volumes {
				r := BirchMurnaghan(v, p) - energies[i]
				rss += r * r
			}
			return rss
		},
	}
	settings := &optimize.Settings{
		MajorIterations: opts.MaxIterations,
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-16,
			Relative:   1e-12,
			Iterations: 100,
		},
	}

	result, err := optimize.Minimize(problem, x0, settings, &optimize.NelderMead{})
	if err != nil {
		return Params{}, fmt.Errorf("%w: %v", ErrFitDiverged, err)
	}
	if result.Status == optimize.Failure || result.Status == optimize.IterationLimit {
		return Params{}, fmt.Errorf("%w: solver status %v", ErrFitDiverged, result.Status)
	}

	return Params{
		E0:     result.X[0],
		V0:     result.X[1],
		B0:     result.X[2],
		BPrime: result.X[3],
	}, nil
}
