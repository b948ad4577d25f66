package solver

import "github.com/cdclgo/claspgo/internal/report"

// Result is the outcome of a search (spec §4.H).
type Result int

const (
	Unknown Result = iota
	Satisfiable
	Unsatisfiable
)

func (r Result) String() string {
	switch r {
	case Satisfiable:
		return "SATISFIABLE"
	case Unsatisfiable:
		return "UNSATISFIABLE"
	default:
		return "UNKNOWN"
	}
}

// Solve runs the CDCL search loop under the given assumptions (spec §4.H,
// §6 "solve(assumptions) -> Satisfiable|Unsatisfiable"). Assumptions are
// pushed as decisions at the base of the search and never backjumped past,
// matching the incremental facade's push/pop contract (spec §4.L).
// Grounded on the teacher's internal/sat/solver.go Solve loop, extended
// with the post-propagator chain, LBD-based restarts and ReduceDB.
func (s *Solver) Solve(assumptions []Literal) (Result, error) {
	if !s.ok {
		return Unsatisfiable, nil
	}
	s.cancelUntil(0)
	s.core = nil
	baseLevel := len(assumptions)

	for _, a := range assumptions {
		if s.LitValue(a) == False {
			// a is already false from prior assumptions or plain level-0
			// facts: it alone is sufficient to cause the conflict, so it
			// alone is a valid core. Report it directly rather than
			// routing through analyze(), which assumes the falsified
			// clause has at least one literal above level 0 to resolve
			// from, not guaranteed when a conflicts with a bare fact.
			s.core = []literal{a}
			s.cancelUntil(0)
			return Unsatisfiable, nil
		}
		s.assume(a) // can't fail: a is already checked not-False above
		if c := s.propagate(); c != nil {
			s.extractCore(c, baseLevel)
			s.cancelUntil(0)
			return Unsatisfiable, nil
		}
	}

	for {
		conflict := s.propagate()
		if conflict != nil {
			if s.DecisionLevel() <= baseLevel {
				s.extractCore(conflict, baseLevel)
				if baseLevel == 0 {
					s.ok = false // no assumption involved: UNSAT for good
				}
				s.cancelUntil(0)
				return Unsatisfiable, nil
			}
			learnt, backjump, lbd := s.analyze(conflict)
			if backjump < baseLevel {
				backjump = baseLevel
			}
			s.cancelUntil(backjump)
			if !s.addLearntClause(learnt, lbd) {
				s.ok = false
				return Unsatisfiable, nil
			}
			s.numConflicts++
			s.conflictsSinceReduce++
			s.maybeReduce()
			if s.restart != nil && s.restart.OnConflict(lbd, len(s.trail)) {
				s.cancelUntil(baseLevel)
				s.restart.OnRestart()
				s.numRestarts++
				s.logf(report.Verbose, report.SubsystemRestart, "restart #%d at %d conflicts", s.numRestarts, s.numConflicts)
			}
			continue
		}

		lit, done := s.pickDecision()
		if done {
			s.saveModel()
			return Satisfiable, nil
		}
		s.numDecisions++
		if !s.assume(lit) {
			// A phase-saved or domain-modified literal can occasionally
			// contradict an assignment forced since it was last picked;
			// treat it as an immediate, level-0-safe conflict next round.
			continue
		}
	}
}

// pickDecision asks the heuristic for the next decision literal, reporting
// done=true once every variable is assigned (spec §4.H).
func (s *Solver) pickDecision() (lit literal, done bool) {
	for v := 0; v < s.NumVars(); v++ {
		if s.assigns[v] == free {
			return s.heuristic.Select(s), false
		}
	}
	return 0, true
}
