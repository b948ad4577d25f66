// Package minimize implements spec component J: the MinimizeConstraint, a
// post-propagator that enforces a (possibly lexicographic, multi-level)
// upper bound on the weighted sum of a set of literals, tightened after
// each model found (spec §4.J, grounded on
// original_source/libclasp/tests/minimize_test.cpp's shape for
// lexicographic multi-criteria optimization; the teacher has no analogue,
// so this package follows the same PostPropagator-attached-to-*solver.Solver
// idiom internal/ufs establishes).
package minimize

import "github.com/cdclgo/claspgo/solver"

// WeightedLit is one term of a minimize statement's weighted sum.
type WeightedLit struct {
	Lit    solver.Literal
	Weight int64
}

const priorityMinimize = 50

// Constraint enforces, independently per level (most significant first,
// spec §4.J "lexicographic weighted optimization"), that the sum of
// weighted literals true at that level does not exceed Bounds[level].
type Constraint struct {
	levels [][]WeightedLit
	bounds []int64 // bounds[i] == -1 means unbounded (no minimize statement reached that level yet)

	// trailPos is the trail index already scanned for newly-true literals.
	trailPos int
	sums     []int64 // running weighted sum of assigned-true literals, per level
}

// New builds a Constraint for the given levels (outermost first).
func New(levels [][]WeightedLit) *Constraint {
	bounds := make([]int64, len(levels))
	for i := range bounds {
		bounds[i] = -1
	}
	return &Constraint{levels: levels, bounds: bounds, sums: make([]int64, len(levels))}
}

// Priority implements solver.PostPropagator.
func (c *Constraint) Priority() int { return priorityMinimize }

// Reset implements solver.PostPropagator. The running sums are recomputed
// from scratch on the next Propagate rather than tracked incrementally
// through backtracking, trading a little propagation-time work for a much
// simpler undo story.
func (c *Constraint) Reset(s *solver.Solver) {
	c.trailPos = 0
	for i := range c.sums {
		c.sums[i] = 0
	}
}

// SetBound tightens the bound at level i to newBound (spec §4.J: called
// after a model is found, with that model's cost at this level minus one).
func (c *Constraint) SetBound(level int, newBound int64) {
	c.bounds[level] = newBound
}

// Bounds returns the current per-level bounds (-1 meaning unbounded).
func (c *Constraint) Bounds() []int64 { return append([]int64(nil), c.bounds...) }

// Cost computes the current weighted sum per level over s's full
// assignment (spec §4.J, used once a model is found to seed the next
// bound).
func (c *Constraint) Cost(s *solver.Solver) []int64 {
	cost := make([]int64, len(c.levels))
	for i, lv := range c.levels {
		var sum int64
		for _, wl := range lv {
			if s.LitValue(wl.Lit) == solver.True {
				sum += wl.Weight
			}
		}
		cost[i] = sum
	}
	return cost
}

// Propagate implements solver.PostPropagator: it re-scans the trail since
// Reset, and as soon as a level's running sum exceeds its bound, reports a
// conflict built from the true literals that pushed it over (spec §4.J).
func (c *Constraint) Propagate(s *solver.Solver) bool {
	trail := s.Trail()
	litLevel := map[solver.Literal]int{}
	litWeight := map[solver.Literal]int64{}
	for lv, terms := range c.levels {
		for _, wl := range terms {
			litLevel[wl.Lit] = lv
			litWeight[wl.Lit] = wl.Weight
		}
	}

	for ; c.trailPos < len(trail); c.trailPos++ {
		l := trail[c.trailPos]
		lv, ok := litLevel[l]
		if !ok {
			continue
		}
		c.sums[lv] += litWeight[l]
		if c.bounds[lv] >= 0 && c.sums[lv] > c.bounds[lv] {
			s.ReportConflict(c.buildConflict(s, lv))
			return false
		}
	}
	return true
}

// buildConflict materializes a throwaway clause over every currently-true
// literal of level lv that contributed to its sum, so ordinary 1-UIP
// analysis can resolve it like any other conflict.
func (c *Constraint) buildConflict(s *solver.Solver, lv int) *solver.Clause {
	var lits []solver.Literal
	for _, wl := range c.levels[lv] {
		if s.LitValue(wl.Lit) == solver.True {
			lits = append(lits, wl.Lit.Opposite())
		}
	}
	return solver.NewConflictClause(lits)
}
