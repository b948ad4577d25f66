package enumerate

import "github.com/cdclgo/claspgo/solver"

// RecordEnumerator blocks each model found by adding its negation as a
// clause, the simplest and most common enumeration strategy (spec §4.K,
// clasp's enum_record).
type RecordEnumerator struct {
	Vars []solver.Var // projection; nil means every variable
}

func (e *RecordEnumerator) Enumerate(s *solver.Solver, vars []solver.Var, limit int, onModel func(Model) bool) (int, error) {
	if vars == nil {
		vars = e.Vars
	}
	if vars == nil {
		vars = allVars(s)
	}

	found := 0
	for limit <= 0 || found < limit {
		res, err := s.Solve(nil)
		if err != nil {
			return found, err
		}
		if res != solver.Satisfiable {
			return found, nil
		}
		found++
		m := Model{Num: uint64(found), Atoms: atomsOf(s, vars)}
		if !onModel(m) {
			return found, nil
		}
		if !blockModel(s, vars) {
			return found, nil // no literal left to negate: search is exhausted
		}
	}
	return found, nil
}

// blockModel adds the clause that forbids exactly the current assignment
// of vars from recurring, returning false if that clause is trivially
// empty (every variable already forced, i.e. exhaustive search complete).
func blockModel(s *solver.Solver, vars []solver.Var) bool {
	model := s.Model()
	lits := make([]solver.Literal, 0, len(vars))
	for _, v := range vars {
		if model[v] == solver.True {
			lits = append(lits, solver.NegativeLiteral(v))
		} else {
			lits = append(lits, solver.PositiveLiteral(v))
		}
	}
	if len(lits) == 0 {
		return false
	}
	ok, err := s.AddClause(lits)
	return err == nil && ok
}

// NullEnumerator computes a single model and stops, for plain satisfiability
// checking (spec §4.K, clasp's nullEnumerator).
type NullEnumerator struct{}

func (NullEnumerator) Enumerate(s *solver.Solver, vars []solver.Var, limit int, onModel func(Model) bool) (int, error) {
	res, err := s.Solve(nil)
	if err != nil || res != solver.Satisfiable {
		return 0, err
	}
	if vars == nil {
		vars = allVars(s)
	}
	onModel(Model{Num: 1, Atoms: atomsOf(s, vars)})
	return 1, nil
}
