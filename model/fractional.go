package model

import "math"

// FractionalPart returns x − ⌊x⌋, always in [0, 1).
// For negative x the result is still measured from the floor:
// FractionalPart(−0.4) == 0.6. Gomory cuts depend on this definition.
func FractionalPart(x float64) float64 {
	f := x - math.Floor(x)
	if f >= 1 { // x within one ulp below an integer
		return 0
	}

	return f
}

// Deviation returns |x − round(x)|, the distance to the nearest integer.
func Deviation(x float64) float64 {
	return math.Abs(x - math.Round(x))
}

// IsIntegerFeasible reports whether every integer-constrained entry of x is
// within tol of an integer, and every binary entry is within tol of 0 or 1.
func IsIntegerFeasible(x []float64, spec IntegerSpec, tol float64) bool {
	var i int
	for _, i = range spec.Integer {
		if i < 0 || i >= len(x) {
			return false
		}
		if Deviation(x[i]) > tol {
			return false
		}
	}
	for _, i = range spec.Binary {
		if i < 0 || i >= len(x) {
			return false
		}
		if r := math.Round(x[i]); r != 0 && r != 1 {
			return false
		}
		if Deviation(x[i]) > tol {
			return false
		}
	}

	return true
}

// SelectBranchingVariable implements the most-fractional rule: among
// integer-constrained indices whose deviation exceeds tol it returns the one
// with the largest |x − round(x)|, lowest index on ties. ok is false when x is
// already integer feasible on the integer set.
func SelectBranchingVariable(x []float64, spec IntegerSpec, tol float64) (idx int, ok bool) {
	var (
		best = tol
		d    float64
	)
	idx = -1
	for _, i := range spec.Integer {
		if i < 0 || i >= len(x) {
			continue
		}
		d = Deviation(x[i])
		if d <= tol {
			continue
		}
		// Strictly larger deviation wins; equal deviation keeps the lower index.
		if d > best || (d == best && idx >= 0 && i < idx) {
			best, idx = d, i
		}
	}

	return idx, idx >= 0
}

// RoundIntegers returns a copy of x with integer-constrained entries rounded.
func RoundIntegers(x []float64, spec IntegerSpec) []float64 {
	out := append([]float64(nil), x...)
	for _, i := range spec.Integer {
		if i >= 0 && i < len(out) {
			out[i] = math.Round(out[i])
		}
	}

	return out
}
