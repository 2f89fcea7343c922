// Package convergence quantifies how a sequence of successive
// approximations approaches a reference value, typically SCF total
// energies against the most-converged sample.
package convergence

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidInput marks an empty sequence or non-positive options.
	ErrInvalidInput = errors.New("convergence: invalid input")
	// ErrReferenceIndex marks a reference index outside the sequence.
	ErrReferenceIndex = errors.New("convergence: reference index out of range")
)

// Options controls deviation computation. The zero value is not useful;
// start from DefaultOptions.
type Options struct {
	// ReferenceIndex selects the element deviations are measured against.
	// Negative values count from the end, so -1 is the last element.
	ReferenceIndex int
	// Scale is a multiplicative unit conversion applied to each
	// difference, e.g. units.RyToMeVFactor for Ry input and meV output.
	Scale float64
	// Divisor normalizes every deviation, e.g. the number of atoms for
	// per-atom quantities. Must be positive.
	Divisor float64
}

// DefaultOptions references the last element, applies no unit conversion,
// and no normalization.
func DefaultOptions() Options {
	return Options{ReferenceIndex: -1, Scale: 1, Divisor: 1}
}

// Analysis is the outcome of a convergence scan. Deviations has the same
// length as the input; deviation at the reference index is exactly zero.
// Index is only meaningful when Converged is true: non-convergence is an
// expected outcome, not an error.
type Analysis struct {
	Deviations []float64
	Reference  float64
	Converged  bool
	Index      int
}

// Analyze computes per-sample deviations from the reference element,
// rescaled by opts.Scale and divided by opts.Divisor, and scans indices
// in ascending order for the first deviation within threshold.
func Analyze(values []float64, threshold float64, opts Options) (Analysis, error) {
	if len(values) == 0 {
		return Analysis{}, fmt.Errorf("%w: empty sequence", ErrInvalidInput)
	}
	if threshold < 0 {
		return Analysis{}, fmt.Errorf("%w: negative threshold %g", ErrInvalidInput, threshold)
	}
	if opts.Divisor <= 0 {
		return Analysis{}, fmt.Errorf("%w: divisor %g", ErrInvalidInput, opts.Divisor)
	}
	if opts.Scale == 0 {
		return Analysis{}, fmt.Errorf("%w: zero scale", ErrInvalidInput)
	}

	ref := opts.ReferenceIndex
	if ref < 0 {
		ref += len(values)
	}
	if ref < 0 || ref >= len(values) {
		return Analysis{}, fmt.Errorf("%w: index %d for %d values",
			ErrReferenceIndex, opts.ReferenceIndex, len(values))
	}

	a := Analysis{
		Deviations: make([]float64, len(values)),
		Reference:  values[ref],
	}
	for i, v := range values {
		a.Deviations[i] = (v - a.Reference) * opts.Scale / opts.Divisor
	}
	for i, d := range a.Deviations {
		if math.Abs(d) <= threshold {
			a.Converged = true
			a.Index = i
			break
		}
	}
	return a, nil
}
