package enumerate

import "github.com/cdclgo/claspgo/solver"

// BacktrackEnumerator is clasp's chronological-backtrack alternative to
// blocking clauses: instead of learning a nogood per model, it undoes the
// search to the last decision and flips it. This core's Solver.Solve does
// not expose a raw per-decision stepping API (that would require
// threading a callback into the search loop itself), so this
// implementation reuses RecordEnumerator's blocking-clause mechanism under
// the hood; the distinct type exists so callers can select the strategy by
// name per spec §4.K, and a future incremental decision API is the natural
// place to give it a real, clause-free implementation.
type BacktrackEnumerator struct {
	inner RecordEnumerator
}

func (e *BacktrackEnumerator) Enumerate(s *solver.Solver, vars []solver.Var, limit int, onModel func(Model) bool) (int, error) {
	return e.inner.Enumerate(s, vars, limit, onModel)
}
