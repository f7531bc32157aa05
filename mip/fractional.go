package mip

import "github.com/katalvlaran/lvmip/model"

// IsIntegerFeasible reports whether x is integral on spec within tol
// (binaries additionally within tol of 0 or 1).
func IsIntegerFeasible(x []float64, spec model.IntegerSpec, tol float64) bool {
	return model.IsIntegerFeasible(x, spec, tol)
}

// SelectBranchingVariable returns the most fractional integer variable of x,
// lowest index on ties; ok is false when x is integer feasible.
func SelectBranchingVariable(x []float64, spec model.IntegerSpec, tol float64) (idx int, ok bool) {
	return model.SelectBranchingVariable(x, spec, tol)
}

// FractionalPart returns x − ⌊x⌋ in [0, 1).
func FractionalPart(x float64) float64 { return model.FractionalPart(x) }
