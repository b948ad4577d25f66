package solver_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cdclgo/claspgo/internal/enumerate"
	"github.com/cdclgo/claspgo/internal/testutil"
	"github.com/cdclgo/claspgo/solver"
)

// solveAll enumerates every model of ctx via RecordEnumerator's blocking
// clauses, the same "add a clause forbidding the last model" idiom the
// teacher's yass_test.go solveAll uses directly against sat.Solver.
func solveAll(t *testing.T, ctx *solver.SharedContext) [][]bool {
	t.Helper()
	s := ctx.Solver()
	var models [][]bool
	e := &enumerate.RecordEnumerator{}
	_, err := e.Enumerate(s, nil, 0, func(m enumerate.Model) bool {
		model := s.Model()
		bools := make([]bool, ctx.NumVars())
		for v := 0; v < ctx.NumVars(); v++ {
			bools[v] = model[v] == solver.True
		}
		models = append(models, bools)
		return true
	})
	if err != nil {
		t.Fatalf("Enumerate(): %s", err)
	}
	return models
}

// TestSolveAll verifies that the solver finds the exact set of models for
// every instance in internal/testutil.Corpus, mirroring the teacher's
// TestSolveAll structure (yass_test.go) but over an inline corpus rather
// than a testdata/ directory (see testutil's package comment).
func TestSolveAll(t *testing.T) {
	for _, tc := range testutil.Corpus {
		tc := tc
		t.Run(tc.Name, func(t *testing.T) {
			ctx := tc.Load(solver.DefaultOptions)
			if err := ctx.EndInit(); err != nil {
				t.Fatalf("EndInit(): %s", err)
			}

			got := solveAll(t, ctx)
			want := tc.ModelBools()

			if len(got) != len(want) {
				t.Errorf("model count: got %d, want %d", len(got), len(want))
			}
			if diff := cmp.Diff(testutil.ToSet(want), testutil.ToSet(got)); diff != "" {
				t.Errorf("model mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestSolve_trivialUnsat checks that a directly-contradictory instance
// reports Unsatisfiable without needing enumeration.
func TestSolve_trivialUnsat(t *testing.T) {
	ctx := solver.NewSharedContext(solver.DefaultOptions)
	v := ctx.AddVar(solver.VarTypeAtom)
	if _, err := ctx.AddClause([]solver.Literal{solver.PositiveLiteral(v)}); err != nil {
		t.Fatalf("AddClause(): %s", err)
	}
	if _, err := ctx.AddClause([]solver.Literal{solver.NegativeLiteral(v)}); err != nil {
		t.Fatalf("AddClause(): %s", err)
	}
	if err := ctx.EndInit(); err != nil {
		t.Fatalf("EndInit(): %s", err)
	}

	got, err := ctx.Solver().Solve(nil)
	if err != nil {
		t.Fatalf("Solve(): %s", err)
	}
	if got != solver.Unsatisfiable {
		t.Errorf("Solve(): got %s, want %s", got, solver.Unsatisfiable)
	}
}

// TestSolve_assumptionsConflict checks that an assumption literal
// contradicting a unit clause yields Unsatisfiable without corrupting the
// context for a later, non-conflicting Solve call (spec §4.L's
// push/pop-assumptions contract).
func TestSolve_assumptionsConflict(t *testing.T) {
	ctx := solver.NewSharedContext(solver.DefaultOptions)
	v := ctx.AddVar(solver.VarTypeAtom)
	if _, err := ctx.AddClause([]solver.Literal{solver.PositiveLiteral(v)}); err != nil {
		t.Fatalf("AddClause(): %s", err)
	}
	if err := ctx.EndInit(); err != nil {
		t.Fatalf("EndInit(): %s", err)
	}

	s := ctx.Solver()
	if got, err := s.Solve([]solver.Literal{solver.NegativeLiteral(v)}); err != nil || got != solver.Unsatisfiable {
		t.Errorf("Solve(assume ¬v): got %s, %v; want Unsatisfiable, nil", got, err)
	}
	if got, err := s.Solve(nil); err != nil || got != solver.Satisfiable {
		t.Errorf("Solve(): got %s, %v; want Satisfiable, nil", got, err)
	}
}

// TestSolve_coreDirectAssumptionConflict checks that an assumption
// contradicting a plain fact reports itself as its own (trivial) core.
func TestSolve_coreDirectAssumptionConflict(t *testing.T) {
	ctx := solver.NewSharedContext(solver.DefaultOptions)
	v := ctx.AddVar(solver.VarTypeAtom)
	if _, err := ctx.AddClause([]solver.Literal{solver.PositiveLiteral(v)}); err != nil {
		t.Fatalf("AddClause(): %s", err)
	}
	if err := ctx.EndInit(); err != nil {
		t.Fatalf("EndInit(): %s", err)
	}

	s := ctx.Solver()
	assumption := solver.NegativeLiteral(v)
	if got, err := s.Solve([]solver.Literal{assumption}); err != nil || got != solver.Unsatisfiable {
		t.Fatalf("Solve(assume ¬v): got %s, %v; want Unsatisfiable, nil", got, err)
	}
	core := s.Core()
	if len(core) != 1 || core[0] != assumption {
		t.Errorf("Core(): got %v, want [%v]", core, assumption)
	}
}

// TestSolve_coreAssumptionDrivenUnsat mirrors spec scenario S3: clauses
// {1,2}, {-1,3}, {-2,3} under assumption {-3} are UNSAT with core {-3},
// since the three clauses alone already force x3 true.
func TestSolve_coreAssumptionDrivenUnsat(t *testing.T) {
	ctx := solver.NewSharedContext(solver.DefaultOptions)
	x1 := solver.PositiveLiteral(ctx.AddVar(solver.VarTypeAtom))
	x2 := solver.PositiveLiteral(ctx.AddVar(solver.VarTypeAtom))
	x3 := solver.PositiveLiteral(ctx.AddVar(solver.VarTypeAtom))

	for _, cl := range [][]solver.Literal{
		{x1, x2},
		{x1.Opposite(), x3},
		{x2.Opposite(), x3},
	} {
		if _, err := ctx.AddClause(cl); err != nil {
			t.Fatalf("AddClause(%v): %s", cl, err)
		}
	}
	if err := ctx.EndInit(); err != nil {
		t.Fatalf("EndInit(): %s", err)
	}

	s := ctx.Solver()
	assumption := x3.Opposite()
	got, err := s.Solve([]solver.Literal{assumption})
	if err != nil {
		t.Fatalf("Solve(assume ¬x3): %s", err)
	}
	if got != solver.Unsatisfiable {
		t.Fatalf("Solve(assume ¬x3): got %s, want %s", got, solver.Unsatisfiable)
	}
	core := s.Core()
	if len(core) != 1 || core[0] != assumption {
		t.Errorf("Core(): got %v, want [%v] (spec S3: core = {-3})", core, assumption)
	}
}
