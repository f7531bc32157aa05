// Validation of a Problem before any LP is solved.
//
// Stages (fail fast, first violation wins):
//  1. Objective: non-empty, finite.
//  2. Constraints: coefficient count == dimension, finite data, known sense.
//  3. Bounds: length == dimension when present, no NaN, lower ≤ upper,
//     lower ≠ +Inf, upper ≠ −Inf.
//  4. IntegerSpec: indices in [0, n), no duplicates, Binary ⊆ Integer.
//
// Every error wraps ErrInvalidInput and names the offending item.

package model

import (
	"fmt"
	"math"
)

// Validate checks the structural invariants of p. It never solves anything.
func (p *Problem) Validate() error {
	var (
		n   = p.Dim()
		err error
	)
	if n == 0 {
		return fmt.Errorf("%w: empty objective (no variables)", ErrInvalidInput)
	}
	if p.Sense != Minimize && p.Sense != Maximize {
		return fmt.Errorf("%w: unknown objective sense %d", ErrInvalidInput, p.Sense)
	}
	if err = checkFinite("objective", p.Objective); err != nil {
		return err
	}

	for i, c := range p.Constraints {
		if err = validateConstraint(i, c, n); err != nil {
			return err
		}
	}

	if err = p.validateBounds(n); err != nil {
		return err
	}

	return p.Integers.Validate(n)
}

// Validate checks the index sets against dimension n.
func (s IntegerSpec) Validate(n int) error {
	var (
		seen = make([]bool, n)
		i    int
	)
	for _, i = range s.Integer {
		if i < 0 || i >= n {
			return fmt.Errorf("%w: integer index %d out of range [0,%d)", ErrInvalidInput, i, n)
		}
		if seen[i] {
			return fmt.Errorf("%w: integer index %d listed twice", ErrInvalidInput, i)
		}
		seen[i] = true
	}

	bin := make([]bool, n)
	for _, i = range s.Binary {
		if i < 0 || i >= n {
			return fmt.Errorf("%w: binary index %d out of range [0,%d)", ErrInvalidInput, i, n)
		}
		if !seen[i] {
			return fmt.Errorf("%w: binary index %d is not in the integer set", ErrInvalidInput, i)
		}
		if bin[i] {
			return fmt.Errorf("%w: binary index %d listed twice", ErrInvalidInput, i)
		}
		bin[i] = true
	}

	return nil
}

func validateConstraint(idx int, c Constraint, n int) error {
	label := fmt.Sprintf("constraint %d", idx)
	if c.Name != "" {
		label = fmt.Sprintf("constraint %d (%q)", idx, c.Name)
	}
	if len(c.Coeffs) != n {
		return fmt.Errorf("%w: %s: %d coefficients, want %d", ErrInvalidInput, label, len(c.Coeffs), n)
	}
	if c.Sense != LessEq && c.Sense != Equal {
		return fmt.Errorf("%w: %s: unknown sense %d", ErrInvalidInput, label, c.Sense)
	}
	if err := checkFinite(label, c.Coeffs); err != nil {
		return err
	}
	if math.IsNaN(c.RHS) || math.IsInf(c.RHS, 0) {
		return fmt.Errorf("%w: %s: right-hand side %v is not finite", ErrInvalidInput, label, c.RHS)
	}

	return nil
}

func (p *Problem) validateBounds(n int) error {
	lo, up := p.Bounds.Lower, p.Bounds.Upper
	if lo != nil && len(lo) != n {
		return fmt.Errorf("%w: %d lower bounds, want %d", ErrInvalidInput, len(lo), n)
	}
	if up != nil && len(up) != n {
		return fmt.Errorf("%w: %d upper bounds, want %d", ErrInvalidInput, len(up), n)
	}

	var (
		l, u = p.LowerBounds(), p.UpperBounds()
		j    int
	)
	for j = 0; j < n; j++ {
		switch {
		case math.IsNaN(l[j]) || math.IsNaN(u[j]):
			return fmt.Errorf("%w: variable %d: NaN bound", ErrInvalidInput, j)
		case math.IsInf(l[j], 1):
			return fmt.Errorf("%w: variable %d: lower bound is +Inf", ErrInvalidInput, j)
		case math.IsInf(u[j], -1):
			return fmt.Errorf("%w: variable %d: upper bound is -Inf", ErrInvalidInput, j)
		case l[j] > u[j]:
			return fmt.Errorf("%w: variable %d: lower bound %g > upper bound %g", ErrInvalidInput, j, l[j], u[j])
		}
	}

	return nil
}

func checkFinite(label string, v []float64) error {
	for j, a := range v {
		if math.IsNaN(a) || math.IsInf(a, 0) {
			return fmt.Errorf("%w: %s: coefficient %d is %v", ErrInvalidInput, label, j, a)
		}
	}

	return nil
}
