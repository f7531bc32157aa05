package cuts

import (
	"sort"

	"github.com/katalvlaran/lvmip/model"
)

// item is one binary variable of a knapsack row after complementation.
type item struct {
	j       int
	w       float64 // > 0
	v       float64 // LP value of x_j, or 1 − x_j when complemented
	negated bool
}

// cover separates minimal-cover inequalities from rows whose nonzero
// coefficients all sit on binary variables. A row a·x ≤ b is turned into a
// knapsack Σ w_i·x̃_i ≤ C with w = |a|, x̃_i = 1 − x_i where a_i < 0 and
// C = b + Σ_{a_i<0} |a_i|. Equalities contribute their ≤ side only.
//
// Complexity: O(r·n log n) for r rows.
func cover(in *Input) []scored {
	var (
		n     = len(in.LP.X)
		found []scored
	)
	for _, row := range in.Rows {
		if len(row.Coeffs) != n {
			continue
		}
		items, capacity, ok := knapsack(row, in.binMask, in.LP.X)
		if !ok {
			continue
		}
		s := greedyCover(items, capacity)
		if s == nil {
			continue
		}
		found = accept(found, coverCut(s, n), in)
	}

	return found
}

// knapsack extracts the complemented knapsack of row, or ok == false when the
// row is not a binary knapsack with at least two items.
func knapsack(row model.Constraint, binMask []bool, x []float64) (items []item, capacity float64, ok bool) {
	capacity = row.RHS
	for j, a := range row.Coeffs {
		if a == 0 {
			continue
		}
		if !binMask[j] {
			return nil, 0, false
		}
		it := item{j: j, w: a, v: x[j]}
		if a < 0 {
			it.w, it.v, it.negated = -a, 1-x[j], true
			capacity -= a
		}
		items = append(items, it)
	}
	if len(items) < 2 || capacity < 0 {
		return nil, 0, false
	}

	return items, capacity, true
}

// greedyCover builds a cover by LP value (desc), weight (desc), index (asc),
// then drops items while the remainder still exceeds capacity, trying the
// lowest LP value first. Returns nil when the whole row fits.
func greedyCover(items []item, capacity float64) []item {
	var total float64
	for _, it := range items {
		total += it.w
	}
	if total <= capacity+coverTol {
		return nil
	}

	order := append([]item(nil), items...)
	sort.SliceStable(order, func(a, b int) bool {
		if order[a].v != order[b].v {
			return order[a].v > order[b].v
		}
		if order[a].w != order[b].w {
			return order[a].w > order[b].w
		}

		return order[a].j < order[b].j
	})

	var (
		s      []item
		weight float64
	)
	for _, it := range order {
		s = append(s, it)
		weight += it.w
		if weight > capacity+coverTol {
			break
		}
	}

	// Removal order: lowest LP value, then lightest, then highest index.
	drop := append([]item(nil), s...)
	sort.SliceStable(drop, func(a, b int) bool {
		if drop[a].v != drop[b].v {
			return drop[a].v < drop[b].v
		}
		if drop[a].w != drop[b].w {
			return drop[a].w < drop[b].w
		}

		return drop[a].j > drop[b].j
	})
	removed := make(map[int]bool, len(drop))
	for _, it := range drop {
		if weight-it.w > capacity+coverTol {
			weight -= it.w
			removed[it.j] = true
		}
	}

	out := s[:0]
	for _, it := range s {
		if !removed[it.j] {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].j < out[b].j })

	return out
}

// coverTol guards the strict "weight exceeds capacity" test.
const coverTol = 1e-9

// coverCut renders Σ_{i∈S} x̃_i ≤ |S| − 1 in the original variables.
func coverCut(s []item, n int) model.Constraint {
	var (
		coeffs = make([]float64, n)
		rhs    = float64(len(s) - 1)
	)
	for _, it := range s {
		if it.negated {
			coeffs[it.j] = -1
			rhs--
		} else {
			coeffs[it.j] = 1
		}
	}

	return model.LE(coeffs, rhs).Named("cover")
}

// IsCover reports whether the items in subset (indices into weights) have a
// total weight strictly greater than capacity. Weights must be positive.
func IsCover(weights []float64, capacity float64, subset []int) bool {
	var total float64
	for _, i := range subset {
		if i < 0 || i >= len(weights) {
			return false
		}
		total += weights[i]
	}

	return total > capacity+coverTol
}

// IsMinimalCover reports whether subset is a cover and dropping any single
// item makes it fit the capacity.
func IsMinimalCover(weights []float64, capacity float64, subset []int) bool {
	if !IsCover(weights, capacity, subset) {
		return false
	}
	var total float64
	for _, i := range subset {
		total += weights[i]
	}
	for _, i := range subset {
		if total-weights[i] > capacity+coverTol {
			return false
		}
	}

	return true
}
