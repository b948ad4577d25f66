package facade_test

import (
	"testing"

	"github.com/cdclgo/claspgo/facade"
	"github.com/cdclgo/claspgo/solver"
)

// TestFacade_twoSteps drives two incremental steps, each adding a clause
// gated by its own step literal, and checks that both constraints hold
// once both steps are active (spec §4.L).
func TestFacade_twoSteps(t *testing.T) {
	f := facade.New(solver.DefaultOptions)

	step1, err := f.BeginStep()
	if err != nil {
		t.Fatalf("BeginStep(): %s", err)
	}
	va := f.Context().AddVar(solver.VarTypeAtom)
	if _, err := f.Context().AddClause([]solver.Literal{step1.Opposite(), solver.PositiveLiteral(va)}); err != nil {
		t.Fatalf("AddClause(): %s", err)
	}
	if err := f.EndStep(); err != nil {
		t.Fatalf("EndStep(): %s", err)
	}

	result, err := f.Solve(nil)
	if err != nil {
		t.Fatalf("Solve(): %s", err)
	}
	if result != solver.Satisfiable {
		t.Fatalf("Solve(): got %s, want %s", result, solver.Satisfiable)
	}
	if got := f.Model()[va]; got != solver.True {
		t.Errorf("var a after step 1: got %s, want true", got)
	}

	step2, err := f.BeginStep()
	if err != nil {
		t.Fatalf("BeginStep(): %s", err)
	}
	vb := f.Context().AddVar(solver.VarTypeAtom)
	if _, err := f.Context().AddClause([]solver.Literal{step2.Opposite(), solver.PositiveLiteral(vb)}); err != nil {
		t.Fatalf("AddClause(): %s", err)
	}
	if err := f.EndStep(); err != nil {
		t.Fatalf("EndStep(): %s", err)
	}

	result, err = f.Solve(nil)
	if err != nil {
		t.Fatalf("Solve(): %s", err)
	}
	if result != solver.Satisfiable {
		t.Fatalf("Solve(): got %s, want %s", result, solver.Satisfiable)
	}
	if got := f.Model()[va]; got != solver.True {
		t.Errorf("var a after step 2: got %s, want true", got)
	}
	if got := f.Model()[vb]; got != solver.True {
		t.Errorf("var b after step 2: got %s, want true", got)
	}
}

// TestFacade_solveFlagResetsAfterReturn checks that the facade's re-entrancy
// guard (spec §4.L) is cleared when Solve returns, so a second, sequential
// Solve call is not rejected.
func TestFacade_solveFlagResetsAfterReturn(t *testing.T) {
	f := facade.New(solver.DefaultOptions)
	if _, err := f.BeginStep(); err != nil {
		t.Fatalf("BeginStep(): %s", err)
	}
	if err := f.EndStep(); err != nil {
		t.Fatalf("EndStep(): %s", err)
	}
	if _, err := f.Solve(nil); err != nil {
		t.Fatalf("Solve(): %s", err)
	}
	// A second, independent facade/solve call is unaffected: solving is
	// only true while Solve's own call frame is on the stack, so this just
	// checks the flag resets correctly after a normal return.
	if _, err := f.Solve(nil); err != nil {
		t.Fatalf("Solve() after previous return: %s", err)
	}
}

// TestFacade_retractOutOfRange checks that Retract validates its step
// index rather than indexing out of bounds.
func TestFacade_retractOutOfRange(t *testing.T) {
	f := facade.New(solver.DefaultOptions)
	if err := f.Retract(0); err == nil {
		t.Errorf("Retract(0) on a facade with no steps: want error, got nil")
	}
}

// TestFacade_getCoreFiltersStepLiterals checks that GetCore reports only
// the extra assumption an UNSAT result hinged on, never the facade's own
// step literal that was silently prefixed onto every Solve call (spec §6
// "getCore() -> literals", §4.L).
func TestFacade_getCoreFiltersStepLiterals(t *testing.T) {
	f := facade.New(solver.DefaultOptions)

	if _, err := f.BeginStep(); err != nil {
		t.Fatalf("BeginStep(): %s", err)
	}
	v := f.Context().AddVar(solver.VarTypeAtom)
	if _, err := f.Context().AddClause([]solver.Literal{solver.PositiveLiteral(v)}); err != nil {
		t.Fatalf("AddClause(): %s", err)
	}
	if err := f.EndStep(); err != nil {
		t.Fatalf("EndStep(): %s", err)
	}

	extra := solver.NegativeLiteral(v)
	result, err := f.Solve([]solver.Literal{extra})
	if err != nil {
		t.Fatalf("Solve(): %s", err)
	}
	if result != solver.Unsatisfiable {
		t.Fatalf("Solve(): got %s, want %s", result, solver.Unsatisfiable)
	}

	core := f.GetCore()
	if len(core) != 1 || core[0] != extra {
		t.Errorf("GetCore(): got %v, want [%v] (the step literal must not appear)", core, extra)
	}
}
