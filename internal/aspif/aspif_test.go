package aspif

import (
	"strings"
	"testing"

	"github.com/cdclgo/claspgo/solver"
)

// TestRead_fact checks that a bodyless normal rule ("a.") becomes a unit
// clause forcing its head atom true.
func TestRead_fact(t *testing.T) {
	const src = "asp 1 0 0\n" +
		"1 0 1 1 0 0\n" + // rule: head={atom 1}, body: normal, 0 literals
		"0\n"

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
	v := p.Var(1)
	if got := ctx.Solver().Model()[v]; got != solver.True {
		t.Errorf("atom 1: got %s, want true", got)
	}
}

// TestRead_ruleWithBody checks that "b :- a." (normal body, one positive
// literal) becomes a "body -> head" clause and that forcing the body true
// forces the head true via propagation.
func TestRead_ruleWithBody(t *testing.T) {
	const src = "asp 1 0 0\n" +
		"1 0 1 2 0 1 1\n" + // head={atom 2}, body: normal, 1 literal: atom 1
		"0\n"

	ctx := solver.NewSharedContext(solver.DefaultOptions)
	p, err := Read(strings.NewReader(src), ctx)
	if err != nil {
		t.Fatalf("Read(): %s", err)
	}
	va := p.Var(1)
	if _, err := ctx.AddClause([]solver.Literal{solver.PositiveLiteral(va)}); err != nil {
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
		t.Fatalf("Solve(): got %s, want %s", result, solver.Satisfiable)
	}
	vb := p.Var(2)
	if got := ctx.Solver().Model()[vb]; got != solver.True {
		t.Errorf("atom 2: got %s, want true", got)
	}
}

// TestRead_integrityConstraint checks that a headless rule ("not a.",
// i.e. ":- a.") forces its body literal false.
func TestRead_integrityConstraint(t *testing.T) {
	const src = "asp 1 0 0\n" +
		"1 0 0 0 1 1\n" + // head={}, body: normal, 1 literal: atom 1
		"0\n"

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
	v := p.Var(1)
	if got := ctx.Solver().Model()[v]; got != solver.False {
		t.Errorf("atom 1: got %s, want false", got)
	}
}

// TestRead_weightBodyDegenerate checks that a weight body whose bound
// equals the sum of its weights is accepted as the equivalent normal body.
func TestRead_weightBodyDegenerate(t *testing.T) {
	const src = "asp 1 0 0\n" +
		// head={atom 2}, body: weight, bound=2, 2 lits: (atom 1, w=1), (atom 3, w=1)
		"1 0 1 2 1 2 2 1 1 3 1\n" +
		"0\n"

	ctx := solver.NewSharedContext(solver.DefaultOptions)
	if _, err := Read(strings.NewReader(src), ctx); err != nil {
		t.Fatalf("Read(): %s", err)
	}
}

// TestRead_weightBodyStrict checks that a weight body whose bound is
// strictly less than the sum of its weights is rejected: this reader only
// emits CNF clauses, which cannot express a true threshold body.
func TestRead_weightBodyStrict(t *testing.T) {
	const src = "asp 1 0 0\n" +
		// head={atom 2}, body: weight, bound=1, 2 lits: (atom 1, w=3), (atom 2, w=4): 1 < 7
		"1 0 1 2 1 1 2 1 3 2 4\n" +
		"0\n"

	ctx := solver.NewSharedContext(solver.DefaultOptions)
	if _, err := Read(strings.NewReader(src), ctx); err == nil {
		t.Errorf("Read(): want error for a strict weight bound, got nil")
	}
}

// TestMinimize checks that a #minimize statement's terms are collected
// under their priority level with the parsed literal and weight.
func TestMinimize(t *testing.T) {
	const src = "asp 1 0 0\n" +
		"2 0 1 1 5\n" + // priority 0, 1 term: literal 1, weight 5
		"0\n"

	ctx := solver.NewSharedContext(solver.DefaultOptions)
	p, err := Read(strings.NewReader(src), ctx)
	if err != nil {
		t.Fatalf("Read(): %s", err)
	}
	terms, ok := p.Minimize[0]
	if !ok || len(terms) != 1 {
		t.Fatalf("Minimize[0]: got %v, want one term", terms)
	}
	if terms[0].Weight != 5 {
		t.Errorf("term weight: got %d, want 5", terms[0].Weight)
	}
	wantVar := p.Var(1)
	if terms[0].Lit != solver.PositiveLiteral(wantVar) {
		t.Errorf("term literal: got %v, want positive literal of var %d", terms[0].Lit, wantVar)
	}
}

// TestRead_disjunctiveHeadRejected checks that a disjunctive rule with more
// than one head atom is rejected rather than silently under-constrained.
func TestRead_disjunctiveHeadRejected(t *testing.T) {
	const src = "asp 1 0 0\n" +
		"1 0 2 1 2 0 0\n" + // head={atom 1, atom 2}, empty body
		"0\n"

	ctx := solver.NewSharedContext(solver.DefaultOptions)
	if _, err := Read(strings.NewReader(src), ctx); err == nil {
		t.Errorf("Read(): want error for a disjunctive head, got nil")
	}
}
