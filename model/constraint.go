package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// LE builds coeffs·x ≤ rhs.
func LE(coeffs []float64, rhs float64) Constraint {
	return Constraint{Coeffs: append([]float64(nil), coeffs...), Sense: LessEq, RHS: rhs}
}

// GE builds coeffs·x ≥ rhs, stored canonically as −coeffs·x ≤ −rhs.
func GE(coeffs []float64, rhs float64) Constraint {
	neg := append([]float64(nil), coeffs...)
	floats.Scale(-1, neg)

	return Constraint{Coeffs: neg, Sense: LessEq, RHS: -rhs}
}

// EQ builds coeffs·x = rhs.
func EQ(coeffs []float64, rhs float64) Constraint {
	return Constraint{Coeffs: append([]float64(nil), coeffs...), Sense: Equal, RHS: rhs}
}

// Named returns a copy of c carrying the given name.
func (c Constraint) Named(name string) Constraint {
	c.Name = name

	return c
}

// Clone returns a deep copy of c.
func (c Constraint) Clone() Constraint {
	c.Coeffs = append([]float64(nil), c.Coeffs...)

	return c
}

// Activity returns Coeffs·x.
func (c Constraint) Activity(x []float64) float64 {
	return Dot(c.Coeffs, x)
}

// Violation returns by how much x violates c (0 when satisfied).
// For LessEq it is max(0, a·x − b); for Equal it is |a·x − b|.
func (c Constraint) Violation(x []float64) float64 {
	d := c.Activity(x) - c.RHS
	if c.Sense == Equal {
		return math.Abs(d)
	}
	if d < 0 {
		return 0
	}

	return d
}

// Satisfied reports whether x satisfies c within tol.
func (c Constraint) Satisfied(x []float64, tol float64) bool {
	return c.Violation(x) <= tol
}

// IsZero reports whether all coefficients are exactly zero.
func (c Constraint) IsZero() bool {
	for _, a := range c.Coeffs {
		if a != 0 {
			return false
		}
	}

	return true
}

// String renders c compactly, e.g. "cap: 5x0 + 3x1 <= 7".
func (c Constraint) String() string {
	var (
		s     string
		first = true
	)
	for j, a := range c.Coeffs {
		if a == 0 {
			continue
		}
		switch {
		case first && a < 0:
			s += fmt.Sprintf("-%gx%d", -a, j)
		case first:
			s += fmt.Sprintf("%gx%d", a, j)
		case a < 0:
			s += fmt.Sprintf(" - %gx%d", -a, j)
		default:
			s += fmt.Sprintf(" + %gx%d", a, j)
		}
		first = false
	}
	if first {
		s = "0"
	}
	s = fmt.Sprintf("%s %s %g", s, c.Sense, c.RHS)
	if c.Name != "" {
		s = c.Name + ": " + s
	}

	return s
}

// Dot is floats.Dot tolerant to a shorter x (missing entries count as 0).
func Dot(a, x []float64) float64 {
	if len(a) == len(x) {
		return floats.Dot(a, x)
	}
	var (
		n   = min(len(a), len(x))
		sum float64
	)
	for j := 0; j < n; j++ {
		sum += a[j] * x[j]
	}

	return sum
}
