package mip

import (
	"errors"
	"time"

	"github.com/katalvlaran/lvmip/cuts"
	"github.com/katalvlaran/lvmip/model"
)

// Sentinel errors.
var (
	// ErrInvalidInput wraps every validation failure; it is model.ErrInvalidInput.
	ErrInvalidInput = model.ErrInvalidInput

	// ErrBadMaxNodes indicates WithMaxNodes was given a non-positive value.
	ErrBadMaxNodes = errors.New("mip: MaxNodes must be positive")

	// ErrBadTimeLimit indicates WithTimeLimit was given a non-positive duration.
	ErrBadTimeLimit = errors.New("mip: TimeLimit must be positive")

	// ErrBadRelativeGap indicates WithRelativeGap was given a negative or NaN value.
	ErrBadRelativeGap = errors.New("mip: RelativeGap must be a non-negative number")

	// ErrBadIntegerTolerance indicates a tolerance outside (0, 0.5).
	ErrBadIntegerTolerance = errors.New("mip: IntegerTolerance must lie in (0, 0.5)")

	// ErrBadCuttingRounds indicates WithMaxCuttingRounds was given a negative value.
	ErrBadCuttingRounds = errors.New("mip: MaxCuttingRounds must be non-negative")

	// ErrNilOracle indicates WithOracle was given a nil Solver.
	ErrNilOracle = errors.New("mip: oracle is nil")

	// ErrBadNodeSelection indicates an unknown NodeSelection value.
	ErrBadNodeSelection = errors.New("mip: unknown node selection strategy")
)

// Status is the terminal state of a solve.
type Status int

const (
	// Unknown is the zero value, carried by the Result returned with an error.
	Unknown Status = iota
	// Optimal: the incumbent is optimal, or within RelativeGap of it.
	Optimal
	// Infeasible: no integer-feasible point exists.
	Infeasible
	// NodeLimitReached: MaxNodes nodes were explored before a proof.
	NodeLimitReached
	// TimeLimitReached: TimeLimit (or the context deadline) expired first.
	TimeLimitReached
	// Unbounded: the root relaxation is unbounded.
	Unbounded
	// Interrupted: the context was cancelled.
	Interrupted
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case Optimal:
		return "Optimal"
	case Infeasible:
		return "Infeasible"
	case NodeLimitReached:
		return "NodeLimitReached"
	case TimeLimitReached:
		return "TimeLimitReached"
	case Unbounded:
		return "Unbounded"
	case Interrupted:
		return "Interrupted"
	default:
		return "Unknown"
	}
}

// NodeSelection chooses which frontier node is expanded next.
type NodeSelection int

const (
	// BestBound pops the node with the smallest LP bound (ties: oldest).
	BestBound NodeSelection = iota
	// DepthFirst pops the most recently pushed node.
	DepthFirst
	// BreadthFirst pops the oldest node.
	BreadthFirst
)

// String implements fmt.Stringer.
func (s NodeSelection) String() string {
	switch s {
	case BestBound:
		return "best-bound"
	case DepthFirst:
		return "depth-first"
	case BreadthFirst:
		return "breadth-first"
	default:
		return "unknown"
	}
}

// Incumbent is reported to the IncumbentHook on every improvement.
type Incumbent struct {
	Solution       []float64
	ObjectiveValue float64 // in the problem's own sense
	Node           int     // creation ordinal of the node that produced it
	NodesExplored  int
}

// Result is the outcome of Solve or SolveBranchAndCut.
//
// Without an incumbent, Solution is nil, ObjectiveValue is +Inf (−Inf when
// maximizing) and RelativeGap is +Inf. BestBound is a valid bound on the
// optimum in the problem's own sense (lower when minimizing, upper when
// maximizing) whenever the solve did not end Infeasible or Unbounded.
type Result struct {
	Status         Status
	Solution       []float64
	ObjectiveValue float64
	BestBound      float64
	RelativeGap    float64
	NodesExplored  int
	ElapsedTime    time.Duration

	LPSolves         int
	OracleFailures   int
	IncumbentUpdates int
	PeakOpenNodes    int // most nodes held in the arena at once

	// Branch-and-cut only.
	CutsGenerated      int
	CuttingRounds      int // most rounds executed at a single node
	TotalCuttingRounds int
	CutsByFamily       map[cuts.Family]int
}

// HasSolution reports whether an incumbent was found.
func (r Result) HasSolution() bool { return r.Solution != nil }
