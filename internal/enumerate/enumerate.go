// Package enumerate implements spec component K: model enumeration and
// consequence computation on top of a *solver.Solver, grounded on
// original_source/clasp/clasp/enumerator.h's Model record and the
// record/backtrack/brave/cautious variants of
// original_source/clasp/src/model_enumerators.cpp. The teacher's
// TotalConflicts-and-single-Solve()-call design has no enumeration concept
// at all, so this package's control flow is new, but it keeps the
// teacher's plain-struct, explicit-error-return style throughout.
package enumerate

import "github.com/cdclgo/claspgo/solver"

// Model is one answer set, or one step of a consequence computation (spec
// §4.K).
type Model struct {
	Num      uint64
	Atoms    []solver.Literal // literals true in this model, in variable order
	Cost     []int64          // nil unless optimization is active
	Optimal  bool
}

// Kind selects an enumerator variant (spec §4.K).
type Kind int

const (
	KindRecord Kind = iota
	KindBacktrack
	KindConsequenceBrave
	KindConsequenceCautious
	KindNull
)

// Enumerator drives repeated calls to Solver.Solve, extracting a Model
// after each Satisfiable result and feeding the solver an updated
// constraint so the next Solve call finds a different one (spec §4.K:
// "Polymorphic over {start, update, commit}" in spirit, collapsed to one
// synchronous Enumerate call since this core has no parallel search).
type Enumerator interface {
	// Enumerate runs s.Solve repeatedly under the given projection
	// (atoms of interest; nil means all atoms), calling onModel for every
	// model found, until the limit is reached, the search is exhausted, or
	// onModel returns false. It returns the number of models found.
	Enumerate(s *solver.Solver, vars []solver.Var, limit int, onModel func(Model) bool) (int, error)
}

// atomsOf extracts the true literals of vars from s's last model.
func atomsOf(s *solver.Solver, vars []solver.Var) []solver.Literal {
	model := s.Model()
	var out []solver.Literal
	for _, v := range vars {
		if model[v] == solver.True {
			out = append(out, solver.PositiveLiteral(v))
		}
	}
	return out
}

func allVars(s *solver.Solver) []solver.Var {
	vs := make([]solver.Var, s.NumVars())
	for i := range vs {
		vs[i] = solver.Var(i)
	}
	return vs
}
