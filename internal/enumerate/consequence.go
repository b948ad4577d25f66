package enumerate

import "github.com/cdclgo/claspgo/solver"

// BraveEnumerator computes the union of every model's true atoms (spec
// §4.K: "consequence-brave", clasp's enum_brave). It enumerates until no
// model is left or limit models were found, then calls onModel once with
// the union; onModel's return value is not used.
type BraveEnumerator struct{}

func (BraveEnumerator) Enumerate(s *solver.Solver, vars []solver.Var, limit int, onModel func(Model) bool) (int, error) {
	if vars == nil {
		vars = allVars(s)
	}
	brave := make([]bool, len(vars))
	found := 0

	for limit <= 0 || found < limit {
		res, err := s.Solve(nil)
		if err != nil {
			return found, err
		}
		if res != solver.Satisfiable {
			break
		}
		found++
		model := s.Model()
		for i, v := range vars {
			if model[v] == solver.True {
				brave[i] = true
			}
		}
		if !blockModel(s, vars) {
			break
		}
	}

	var atoms []solver.Literal
	for i, v := range vars {
		if brave[i] {
			atoms = append(atoms, solver.PositiveLiteral(v))
		}
	}
	onModel(Model{Num: uint64(found), Atoms: atoms})
	return found, nil
}

// CautiousEnumerator computes the intersection of every model's true atoms
// (spec §4.K: "consequence-cautious", clasp's enum_cautious).
type CautiousEnumerator struct{}

func (CautiousEnumerator) Enumerate(s *solver.Solver, vars []solver.Var, limit int, onModel func(Model) bool) (int, error) {
	if vars == nil {
		vars = allVars(s)
	}
	var cautious []bool
	found := 0

	for limit <= 0 || found < limit {
		res, err := s.Solve(nil)
		if err != nil {
			return found, err
		}
		if res != solver.Satisfiable {
			break
		}
		found++
		model := s.Model()
		if cautious == nil {
			cautious = make([]bool, len(vars))
			for i, v := range vars {
				cautious[i] = model[v] == solver.True
			}
		} else {
			for i, v := range vars {
				if model[v] != solver.True {
					cautious[i] = false
				}
			}
		}
		if !blockModel(s, vars) {
			break
		}
	}

	var atoms []solver.Literal
	for i, v := range vars {
		if i < len(cautious) && cautious[i] {
			atoms = append(atoms, solver.PositiveLiteral(v))
		}
	}
	onModel(Model{Num: uint64(found), Atoms: atoms})
	return found, nil
}
