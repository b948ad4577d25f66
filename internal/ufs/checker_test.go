package ufs

import (
	"testing"

	"github.com/cdclgo/claspgo/solver"
)

// TestChecker_rejectsPureLoop builds "a :- b. b :- a." with no other
// support for either atom (completion clauses alone let a SAT solver pick
// a=b=true, which has no ASP stable model) and checks that attaching a
// Checker rules that assignment out, leaving a=b=false as the only model.
func TestChecker_rejectsPureLoop(t *testing.T) {
	ctx := solver.NewSharedContext(solver.DefaultOptions)
	va := ctx.AddVar(solver.VarTypeAtom)
	vb := ctx.AddVar(solver.VarTypeAtom)
	litA := solver.PositiveLiteral(va)
	litB := solver.PositiveLiteral(vb)

	// Rule clauses (body -> head) and completion clauses (head -> body):
	// together they reduce to a<->b, i.e. (¬b∨a) and (¬a∨b).
	if _, err := ctx.AddClause([]solver.Literal{litB.Opposite(), litA}); err != nil {
		t.Fatalf("AddClause(): %s", err)
	}
	if _, err := ctx.AddClause([]solver.Literal{litA.Opposite(), litB}); err != nil {
		t.Fatalf("AddClause(): %s", err)
	}

	g := NewGraph()
	atomA := g.AddAtom(litA)
	atomB := g.AddAtom(litB)
	g.AddNormalBody(litB, []NodeID{atomB}, []NodeID{atomA}) // body of "a :- b."
	g.AddNormalBody(litA, []NodeID{atomA}, []NodeID{atomB}) // body of "b :- a."

	if err := ctx.EndInit(); err != nil {
		t.Fatalf("EndInit(): %s", err)
	}

	c := NewChecker(g, ReasonCommon)
	c.Attach(ctx.Solver())

	s := ctx.Solver()
	result, err := s.Solve([]solver.Literal{litA})
	if err != nil {
		t.Fatalf("Solve(assume a): %s", err)
	}
	if result != solver.Unsatisfiable {
		t.Errorf("Solve(assume a): got %s, want %s (a=true has no stable model)", result, solver.Unsatisfiable)
	}

	result, err = s.Solve(nil)
	if err != nil {
		t.Fatalf("Solve(): %s", err)
	}
	if result != solver.Satisfiable {
		t.Fatalf("Solve(): got %s, want %s", result, solver.Satisfiable)
	}
	model := s.Model()
	if model[va] != solver.False || model[vb] != solver.False {
		t.Errorf("model: got a=%s b=%s, want a=false b=false (the only stable model)", model[va], model[vb])
	}
}

// TestChecker_seedSourcesFactBackedAtom checks the base case of the
// recursive source-pointer definition (spec §4.I): a body with no positive
// predecessors (a "fact" body) is immediately ready, so Attach's initial
// seed pass must source every atom it heads without needing any trail
// activity.
func TestChecker_seedSourcesFactBackedAtom(t *testing.T) {
	ctx := solver.NewSharedContext(solver.DefaultOptions)
	litA := solver.PositiveLiteral(ctx.AddVar(solver.VarTypeAtom))
	litFact := solver.PositiveLiteral(ctx.AddVar(solver.VarTypeAtom))

	g := NewGraph()
	atomA := g.AddAtom(litA)
	g.AddNormalBody(litFact, nil, []NodeID{atomA})

	c := NewChecker(g, ReasonCommon)
	c.Attach(ctx.Solver())

	if !c.atoms[atomA].hasSource {
		t.Errorf("atom %d: want hasSource=true after seeding a fact-backed body, got false", atomA)
	}
}

// TestChecker_cyclicAtomsStartUnsourced checks that two atoms supported
// only by each other (a positive loop with no external fact) get no source
// at seed time: the base case never applies to either body, so neither
// should be marked sourced before any trail activity occurs.
func TestChecker_cyclicAtomsStartUnsourced(t *testing.T) {
	ctx := solver.NewSharedContext(solver.DefaultOptions)
	litA := solver.PositiveLiteral(ctx.AddVar(solver.VarTypeAtom))
	litB := solver.PositiveLiteral(ctx.AddVar(solver.VarTypeAtom))

	g := NewGraph()
	atomA := g.AddAtom(litA)
	atomB := g.AddAtom(litB)
	g.AddNormalBody(litB, []NodeID{atomB}, []NodeID{atomA})
	g.AddNormalBody(litA, []NodeID{atomA}, []NodeID{atomB})

	c := NewChecker(g, ReasonCommon)
	c.Attach(ctx.Solver())

	if c.atoms[atomA].hasSource || c.atoms[atomB].hasSource {
		t.Errorf("cyclic atoms should start unsourced, got a=%v b=%v",
			c.atoms[atomA].hasSource, c.atoms[atomB].hasSource)
	}
}
