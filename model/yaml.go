package model

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// problemFile mirrors the YAML problem format.
type problemFile struct {
	Sense       string           `yaml:"sense"`
	Objective   []float64        `yaml:"objective"`
	Constraints []constraintFile `yaml:"constraints"`
	Bounds      *boundsFile      `yaml:"bounds"`
	Integers    []int            `yaml:"integers"`
	Binaries    []int            `yaml:"binaries"`
}

type constraintFile struct {
	Name   string    `yaml:"name"`
	Coeffs []float64 `yaml:"coeffs"`
	Op     string    `yaml:"op"`
	RHS    float64   `yaml:"rhs"`
}

type boundsFile struct {
	Lower []float64 `yaml:"lower"`
	Upper []float64 `yaml:"upper"`
}

// Load decodes a YAML problem description and validates it.
// Unknown keys are rejected. Binary indices missing from "integers" are
// added to the integer set, since a binary variable is integer by definition.
func Load(r io.Reader) (*Problem, error) {
	var (
		pf  problemFile
		dec = yaml.NewDecoder(r)
	)
	dec.KnownFields(true)
	if err := dec.Decode(&pf); err != nil {
		return nil, fmt.Errorf("%w: decode yaml: %v", ErrInvalidInput, err)
	}

	p := &Problem{Objective: pf.Objective}
	switch strings.ToLower(strings.TrimSpace(pf.Sense)) {
	case "", "min", "minimize":
		p.Sense = Minimize
	case "max", "maximize":
		p.Sense = Maximize
	default:
		return nil, fmt.Errorf("%w: unknown sense %q", ErrInvalidInput, pf.Sense)
	}

	for i, cf := range pf.Constraints {
		var c Constraint
		switch strings.TrimSpace(cf.Op) {
		case "<=", "", "le":
			c = LE(cf.Coeffs, cf.RHS)
		case ">=", "ge":
			c = GE(cf.Coeffs, cf.RHS)
		case "=", "==", "eq":
			c = EQ(cf.Coeffs, cf.RHS)
		default:
			return nil, fmt.Errorf("%w: constraint %d: unknown op %q", ErrInvalidInput, i, cf.Op)
		}
		p.Constraints = append(p.Constraints, c.Named(cf.Name))
	}

	if pf.Bounds != nil {
		p.Bounds = Bounds{Lower: pf.Bounds.Lower, Upper: pf.Bounds.Upper}
	}

	p.Integers.Integer = append(p.Integers.Integer, pf.Integers...)
	isInt := make(map[int]bool, len(pf.Integers))
	for _, i := range pf.Integers {
		isInt[i] = true
	}
	for _, i := range pf.Binaries {
		if !isInt[i] {
			p.Integers.Integer = append(p.Integers.Integer, i)
			isInt[i] = true
		}
	}
	p.Integers.Binary = append(p.Integers.Binary, pf.Binaries...)

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// LoadFile opens path and calls Load.
func LoadFile(path string) (*Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(f)
}
