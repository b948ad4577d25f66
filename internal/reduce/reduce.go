// Package reduce implements the LearntDB reduction policy of spec
// component G: partitioning learnt clauses into locked/free, scoring the
// free ones, and deciding how many to delete, plus the database's growth
// schedule. It operates purely on lightweight Score values so it never
// needs to know about the solver's actual Clause type (DESIGN NOTES:
// "Polymorphism over constraints" — the reducer is generic over whatever
// owns a score).
package reduce

// Metric selects how free (non-locked) learnt clauses are scored for
// deletion (spec §4.G: "score metric (activity, LBD, mixed)").
type Metric int

const (
	MetricActivity Metric = iota
	MetricLBD
	MetricMixed
)

// Score summarizes one learnt clause for the purpose of a reduction pass.
type Score struct {
	Index    int // caller-defined identifier, returned verbatim in Victims
	Activity float64
	LBD      int
	Locked   bool
}

// Policy holds the tunables of a reduction pass (spec §4.G).
type Policy struct {
	// Fraction of free (non-locked, non-protected) clauses removed per
	// reduction pass.
	Fraction float64
	// Metric used to rank free clauses for deletion (ascending score is
	// deleted first).
	Metric Metric
	// ProtectLBD protects any clause with LBD <= ProtectLBD from deletion
	// regardless of its score (spec: "protection of clauses with LBD <= k").
	ProtectLBD int
}

// DefaultPolicy mirrors the teacher's ReduceDB defaults: delete half of the
// non-locked clauses, ranked by activity, no LBD protection.
var DefaultPolicy = Policy{Fraction: 0.5, Metric: MetricActivity, ProtectLBD: 0}

// Victims returns the indices (as given in each Score.Index) of the
// clauses p chooses to delete from scores.
func (p Policy) Victims(scores []Score) []int {
	free := make([]Score, 0, len(scores))
	for _, s := range scores {
		if !s.Locked && s.LBD > p.ProtectLBD {
			free = append(free, s)
		}
	}
	if len(free) == 0 {
		return nil
	}

	less := func(a, b Score) bool {
		switch p.Metric {
		case MetricLBD:
			return a.LBD < b.LBD
		case MetricMixed:
			if a.LBD != b.LBD {
				return a.LBD < b.LBD
			}
			return a.Activity < b.Activity
		default:
			return a.Activity < b.Activity
		}
	}
	insertionSort(free, less)

	n := int(float64(len(free)) * p.Fraction)
	victims := make([]int, 0, n)
	for i := 0; i < n; i++ {
		victims = append(victims, free[i].Index)
	}
	return victims
}

// insertionSort keeps reduce free of a sort.Interface allocation for the
// common case of reducing a modest learnt DB; callers with very large
// databases should pre-sort and call Victims with Fraction=1 in batches.
func insertionSort(s []Score, less func(a, b Score) bool) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && less(s[j], s[j-1]); j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}

// GrowthSchedule describes how the maximum learnt-clause bound grows over
// time (spec §4.G: "The max-size bound grows by factor fGrow per
// configurable schedule (geometric/arithmetic/luby/none), capped by
// fMax*base").
type GrowthSchedule int

const (
	GrowNone GrowthSchedule = iota
	GrowArithmetic
	GrowGeometric
	GrowLuby
)

// Growth computes the next learnt-clause bound given the current one, the
// initial base, and how many reductions have already happened.
type Growth struct {
	Base     float64
	Grow     float64 // fGrow
	Max      float64 // fMax * base, precomputed by caller
	Schedule GrowthSchedule
}

// Next returns the bound to use after the nth reduction (n starts at 0 for
// the very first bound).
func (g Growth) Next(n int) float64 {
	var bound float64
	switch g.Schedule {
	case GrowArithmetic:
		bound = g.Base + g.Grow*float64(n)
	case GrowGeometric:
		bound = g.Base
		for i := 0; i < n; i++ {
			bound *= g.Grow
		}
	case GrowLuby:
		bound = g.Base * float64(Luby(g.Grow, n+1))
	default:
		return g.Base
	}
	if g.Max > 0 && bound > g.Max {
		return g.Max
	}
	return bound
}

// Luby returns the n-th element (1-indexed) of the Luby sequence scaled by
// factor: 1,1,2,1,1,2,4,1,1,2,1,1,2,4,8,... This is the standard MiniSAT/
// Glucose recurrence, also used by internal/restart for restart
// scheduling.
func Luby(factor float64, n int) int {
	x := n - 1 // the recurrence below is 0-indexed
	size, seq := 1, 0
	for size < x+1 {
		seq++
		size = 2*size + 1
	}
	for size-1 != x {
		size = (size - 1) / 2
		seq--
		x = x % size
	}
	return int(pow(factor, seq))
}

func pow(base float64, exp int) float64 {
	r := 1.0
	for i := 0; i < exp; i++ {
		r *= base
	}
	return r
}
