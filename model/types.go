package model

import (
	"errors"
	"math"
)

// ErrInvalidInput is wrapped by every validation failure: dimension
// mismatches, out-of-range integer/binary indices, binary indices missing from
// the integer set, NaN data and inverted bounds.
var ErrInvalidInput = errors.New("model: invalid input")

// Sense is the canonical relation of a Constraint.
type Sense int

const (
	// LessEq encodes Coeffs·x ≤ RHS.
	LessEq Sense = iota
	// Equal encodes Coeffs·x = RHS.
	Equal
)

// String implements fmt.Stringer.
func (s Sense) String() string {
	switch s {
	case LessEq:
		return "<="
	case Equal:
		return "="
	default:
		return "?"
	}
}

// ObjectiveSense selects minimization or maximization of the objective.
type ObjectiveSense int

const (
	// Minimize is the zero value.
	Minimize ObjectiveSense = iota
	// Maximize is handled by the solver by negating the objective internally.
	Maximize
)

// String implements fmt.Stringer.
func (s ObjectiveSense) String() string {
	if s == Maximize {
		return "maximize"
	}

	return "minimize"
}

// Constraint is a linear constraint over the full variable vector.
// len(Coeffs) must equal the problem dimension.
type Constraint struct {
	Coeffs []float64
	Sense  Sense
	RHS    float64
	Name   string // optional, used in error messages
}

// Bounds holds per-variable lower and upper bounds.
// A nil Lower means all lower bounds are 0; a nil Upper means all upper
// bounds are +Inf. ±Inf entries are allowed.
type Bounds struct {
	Lower []float64
	Upper []float64
}

// IntegerSpec lists the variables restricted to integer values and the subset
// of them restricted to {0,1}. Binary ⊆ Integer.
type IntegerSpec struct {
	Integer []int
	Binary  []int
}

// Problem is a mixed-integer linear program:
//
//	minimize/maximize  Objective·x
//	subject to         Constraints
//	                   Bounds.Lower ≤ x ≤ Bounds.Upper
//	                   x_i ∈ ℤ for i ∈ Integers.Integer, x_i ∈ {0,1} for i ∈ Integers.Binary
type Problem struct {
	Sense       ObjectiveSense
	Objective   []float64
	Constraints []Constraint
	Bounds      Bounds
	Integers    IntegerSpec
}

// Dim returns the number of decision variables.
func (p *Problem) Dim() int { return len(p.Objective) }

// LowerBounds returns the effective lower bounds (defaults applied, binaries
// clamped to ≥ 0). The result is a fresh slice.
func (p *Problem) LowerBounds() []float64 {
	var (
		n   = p.Dim()
		out = make([]float64, n)
		i   int
	)
	if p.Bounds.Lower != nil {
		copy(out, p.Bounds.Lower)
	}
	for _, i = range p.Integers.Binary {
		if i >= 0 && i < n && out[i] < 0 {
			out[i] = 0
		}
	}

	return out
}

// UpperBounds returns the effective upper bounds (defaults applied, binaries
// clamped to ≤ 1). The result is a fresh slice.
func (p *Problem) UpperBounds() []float64 {
	var (
		n   = p.Dim()
		out = make([]float64, n)
		i   int
	)
	if p.Bounds.Upper != nil {
		copy(out, p.Bounds.Upper)
	} else {
		for i = range out {
			out[i] = math.Inf(1)
		}
	}
	for _, i = range p.Integers.Binary {
		if i >= 0 && i < n && out[i] > 1 {
			out[i] = 1
		}
	}

	return out
}

// ObjectiveValue evaluates Objective·x in the problem's own sense.
func (p *Problem) ObjectiveValue(x []float64) float64 {
	return Dot(p.Objective, x)
}

// Mask returns a dense membership table of the integer set for dimension n.
// Out-of-range indices are ignored (Validate reports them).
func (s IntegerSpec) Mask(n int) []bool {
	return indexMask(s.Integer, n)
}

// BinaryMask returns a dense membership table of the binary set.
func (s IntegerSpec) BinaryMask(n int) []bool {
	return indexMask(s.Binary, n)
}

func indexMask(idx []int, n int) []bool {
	out := make([]bool, n)
	for _, i := range idx {
		if i >= 0 && i < n {
			out[i] = true
		}
	}

	return out
}
