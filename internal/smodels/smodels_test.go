package smodels

import (
	"strings"
	"testing"

	"github.com/cdclgo/claspgo/solver"
)

// TestRead_basicRules checks a fact ("a.") and a rule with a positive body
// ("b :- a.") expressed as two basic rules, followed by a symbol table and
// empty compute statements.
func TestRead_basicRules(t *testing.T) {
	const src = "" +
		"1\n" + // tag: basic rule
		"1\n" + // head: atom 1
		"0 0\n" + // body: 0 literals, 0 negative
		"1\n" + // tag: basic rule
		"2\n" + // head: atom 2
		"1 0 1\n" + // body: 1 literal, 0 negative: atom 1 (positive)
		"0\n" + // end of rules
		"1 a\n" + // symbol table
		"2 b\n" +
		"0\n" + // end of symbols
		"0\n" + // compute B+ (empty)
		"0\n" // compute B- (empty)

	ctx := solver.NewSharedContext(solver.DefaultOptions)
	p, err := Read(strings.NewReader(src), ctx)
	if err != nil {
		t.Fatalf("Read(): %s", err)
	}
	if p.Names[1] != "a" || p.Names[2] != "b" {
		t.Errorf("symbol table: got %v, want {1:a, 2:b}", p.Names)
	}
	if err := ctx.EndInit(); err != nil {
		t.Fatalf("EndInit(): %s", err)
	}

	result, err := ctx.Solver().Solve(nil)
	if err != nil {
		t.Fatalf("Solve(): %s", err)
	}
	if result != solver.Satisfiable {
		t.Fatalf("Solve(): got %s, want %s", result, solver.Satisfiable)
	}
	model := ctx.Solver().Model()
	if model[p.Var(1)] != solver.True {
		t.Errorf("atom 1 (a): got %s, want true", model[p.Var(1)])
	}
	if model[p.Var(2)] != solver.True {
		t.Errorf("atom 2 (b): got %s, want true", model[p.Var(2)])
	}
}

// TestRead_computeStatements checks that B+/B- compute atoms become unit
// clauses forcing the expected truth values.
func TestRead_computeStatements(t *testing.T) {
	const src = "" +
		"0\n" + // end of rules (none)
		"0\n" + // end of symbols (none)
		"1 0\n" + // compute B+: atom 1
		"2 0\n" // compute B-: atom 2

	ctx := solver.NewSharedContext(solver.DefaultOptions)
	p, err := Read(strings.NewReader(src), ctx)
	if err != nil {
		t.Fatalf("Read(): %s", err)
	}
	if err := ctx.EndInit(); err != nil {
		t.Fatalf("EndInit(): %s", err)
	}
	result, err := ctx.Solver().Solve(nil)
	if err != nil {
		t.Fatalf("Solve(): %s", err)
	}
	if result != solver.Satisfiable {
		t.Fatalf("Solve(): got %s, want %s", result, solver.Satisfiable)
	}
	model := ctx.Solver().Model()
	if model[p.Var(1)] != solver.True {
		t.Errorf("atom 1 (B+): got %s, want true", model[p.Var(1)])
	}
	if model[p.Var(2)] != solver.False {
		t.Errorf("atom 2 (B-): got %s, want false", model[p.Var(2)])
	}
}

// TestRead_cardinalityDegenerate checks that a cardinality rule whose bound
// equals its literal count (each weight implicitly 1) is accepted as the
// equivalent normal body.
func TestRead_cardinalityDegenerate(t *testing.T) {
	const src = "" +
		"2\n" + // tag: cardinality rule
		"3\n" + // head: atom 3
		"2 2 0 1 2\n" + // bound=2, n=2, neg=0, atoms=[1,2]
		"0\n" +
		"0\n" +
		"0\n" +
		"0\n"

	ctx := solver.NewSharedContext(solver.DefaultOptions)
	if _, err := Read(strings.NewReader(src), ctx); err != nil {
		t.Fatalf("Read(): %s", err)
	}
}

// TestRead_weightRuleStrict checks that a weight rule whose bound is
// strictly less than the sum of its weights is rejected.
func TestRead_weightRuleStrict(t *testing.T) {
	const src = "" +
		"5\n" + // tag: weight rule
		"3\n" + // head: atom 3
		"1 2 0 1 2 3 4\n" + // bound=1, n=2, neg=0, atoms=[1,2], weights=[3,4]: 1 < 7
		"0\n" +
		"0\n" +
		"0\n" +
		"0\n"

	ctx := solver.NewSharedContext(solver.DefaultOptions)
	if _, err := Read(strings.NewReader(src), ctx); err == nil {
		t.Errorf("Read(): want error for a strict weight bound, got nil")
	}
}

// TestRead_choiceRule checks that a choice rule is accepted without error
// and registers variables for every head atom, even though (per this
// reader's documented simplification) it adds no constraining clause.
func TestRead_choiceRule(t *testing.T) {
	const src = "" +
		"3\n" + // tag: choice rule
		"2 1 2\n" + // heads: atoms 1, 2
		"0 0\n" + // body: empty
		"0\n" +
		"0\n" +
		"0\n" +
		"0\n"

	ctx := solver.NewSharedContext(solver.DefaultOptions)
	p, err := Read(strings.NewReader(src), ctx)
	if err != nil {
		t.Fatalf("Read(): %s", err)
	}
	if _, ok := p.atomVar[1]; !ok {
		t.Errorf("atom 1: expected a variable to be allocated")
	}
	if _, ok := p.atomVar[2]; !ok {
		t.Errorf("atom 2: expected a variable to be allocated")
	}
}
