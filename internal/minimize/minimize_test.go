package minimize

import (
	"testing"

	"github.com/cdclgo/claspgo/solver"
)

// TestConstraint_rejectsOverBoundSum checks that forcing two weighted
// literals true when their combined weight exceeds the level's bound is
// rejected as unsatisfiable.
func TestConstraint_rejectsOverBoundSum(t *testing.T) {
	ctx := solver.NewSharedContext(solver.DefaultOptions)
	va := ctx.AddVar(solver.VarTypeAtom)
	vb := ctx.AddVar(solver.VarTypeAtom)
	litA := solver.PositiveLiteral(va)
	litB := solver.PositiveLiteral(vb)

	c := New([][]WeightedLit{{{Lit: litA, Weight: 3}, {Lit: litB, Weight: 2}}})
	c.SetBound(0, 4)
	ctx.Solver().AddPostPropagator(c)

	if _, err := ctx.AddClause([]solver.Literal{litA}); err != nil {
		t.Fatalf("AddClause(): %s", err)
	}
	if _, err := ctx.AddClause([]solver.Literal{litB}); err != nil {
		t.Fatalf("AddClause(): %s", err)
	}
	if err := ctx.EndInit(); err != nil {
		t.Fatalf("EndInit(): %s", err)
	}

	result, err := ctx.Solver().Solve(nil)
	if err != nil {
		t.Fatalf("Solve(): %s", err)
	}
	if result != solver.Unsatisfiable {
		t.Errorf("Solve(): got %s, want %s (weight 3+2 exceeds bound 4)", result, solver.Unsatisfiable)
	}
}

// TestConstraint_acceptsAtBoundSum checks that a sum exactly at the bound
// is accepted.
func TestConstraint_acceptsAtBoundSum(t *testing.T) {
	ctx := solver.NewSharedContext(solver.DefaultOptions)
	va := ctx.AddVar(solver.VarTypeAtom)
	vb := ctx.AddVar(solver.VarTypeAtom)
	litA := solver.PositiveLiteral(va)
	litB := solver.PositiveLiteral(vb)

	c := New([][]WeightedLit{{{Lit: litA, Weight: 3}, {Lit: litB, Weight: 2}}})
	c.SetBound(0, 5)
	ctx.Solver().AddPostPropagator(c)

	if _, err := ctx.AddClause([]solver.Literal{litA}); err != nil {
		t.Fatalf("AddClause(): %s", err)
	}
	if _, err := ctx.AddClause([]solver.Literal{litB}); err != nil {
		t.Fatalf("AddClause(): %s", err)
	}
	if err := ctx.EndInit(); err != nil {
		t.Fatalf("EndInit(): %s", err)
	}

	result, err := ctx.Solver().Solve(nil)
	if err != nil {
		t.Fatalf("Solve(): %s", err)
	}
	if result != solver.Satisfiable {
		t.Errorf("Solve(): got %s, want %s (weight 3+2 equals bound 5)", result, solver.Satisfiable)
	}
	if got := c.Cost(ctx.Solver()); got[0] != 5 {
		t.Errorf("Cost(): got %v, want [5]", got)
	}
}

// TestConstraint_unboundedLevelNeverConflicts checks that a level with no
// bound set (-1, the New default) never reports a conflict regardless of
// how large its sum grows.
func TestConstraint_unboundedLevelNeverConflicts(t *testing.T) {
	ctx := solver.NewSharedContext(solver.DefaultOptions)
	va := ctx.AddVar(solver.VarTypeAtom)
	litA := solver.PositiveLiteral(va)

	c := New([][]WeightedLit{{{Lit: litA, Weight: 1000}}})
	ctx.Solver().AddPostPropagator(c)

	if _, err := ctx.AddClause([]solver.Literal{litA}); err != nil {
		t.Fatalf("AddClause(): %s", err)
	}
	if err := ctx.EndInit(); err != nil {
		t.Fatalf("EndInit(): %s", err)
	}

	result, err := ctx.Solver().Solve(nil)
	if err != nil {
		t.Fatalf("Solve(): %s", err)
	}
	if result != solver.Satisfiable {
		t.Errorf("Solve(): got %s, want %s (unbounded level)", result, solver.Satisfiable)
	}
}
