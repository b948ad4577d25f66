// Package testutil provides the golden-corpus comparison idiom the
// teacher's yass_test.go uses (TestSolveAll's toString/toSet helpers over
// a testdata/ tree of *.cnf + *.cnf.models pairs), adapted to a small set
// of inline instances: the retrieval pack's copy of the teacher did not
// carry its testdata/ directory (only *.go files came through), so this
// corpus is hand-written in the same shape the teacher's loader expects
// rather than ported from files that do not exist in this tree.
package testutil

import (
	"strconv"
	"strings"

	"github.com/cdclgo/claspgo/solver"
)

// Case is one instance under test: a DIMACS CNF body plus every model it
// admits, listed as ±1-based literals one line per model (the same
// encoding yass's testdata/*.cnf.models fixtures use).
type Case struct {
	Name     string
	NumVars  int
	Clauses  [][]int // DIMACS-style signed literals
	Models   [][]int // nil/empty means UNSAT
}

// Corpus is a small set of hand-written pure-CNF instances: a SAT instance
// solved by unit propagation, a trivially UNSAT one, and a SAT instance with
// several models. It has no ASP (unfounded-set) case.
var Corpus = []Case{
	{
		// (x1 v x2) ^ (-x1 v x2) ^ (x1 v -x2): forces x1=x2=true.
		Name:    "unit-propagation-chain",
		NumVars: 2,
		Clauses: [][]int{{1, 2}, {-1, 2}, {1, -2}},
		Models:  [][]int{{1, 2}},
	},
	{
		// (x1) ^ (-x1): immediately contradictory.
		Name:    "trivial-unsat",
		NumVars: 1,
		Clauses: [][]int{{1}, {-1}},
		Models:  nil,
	},
	{
		// Two independent clauses, three satisfying pairs each: nine models.
		Name:    "two-free-clauses",
		NumVars: 4,
		Clauses: [][]int{{1, 2}, {3, 4}},
		Models: [][]int{
			{1, 2, 3, 4}, {1, 2, 3, -4}, {1, 2, -3, 4},
			{1, -2, 3, 4}, {1, -2, 3, -4}, {1, -2, -3, 4},
			{-1, 2, 3, 4}, {-1, 2, 3, -4}, {-1, 2, -3, 4},
		},
	},
}

// DIMACS renders c as a DIMACS CNF string.
func (c Case) DIMACS() string {
	var b strings.Builder
	b.WriteString("c ")
	b.WriteString(c.Name)
	b.WriteByte('\n')
	b.WriteString("p cnf ")
	b.WriteString(strconv.Itoa(c.NumVars))
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(len(c.Clauses)))
	b.WriteByte('\n')
	for _, clause := range c.Clauses {
		for _, l := range clause {
			b.WriteString(strconv.Itoa(l))
			b.WriteByte(' ')
		}
		b.WriteString("0\n")
	}
	return b.String()
}

// Load converts c's CNF clauses into solver.Literal slices over a fresh
// SharedContext, returning the context with the clauses already added.
func (c Case) Load(opts solver.Options) *solver.SharedContext {
	ctx := solver.NewSharedContext(opts)
	for i := 0; i < c.NumVars; i++ {
		ctx.AddVar(solver.VarTypeAtom)
	}
	for _, clause := range c.Clauses {
		lits := make([]solver.Literal, len(clause))
		for i, l := range clause {
			if l < 0 {
				lits[i] = solver.NegativeLiteral(solver.Var(-l - 1))
			} else {
				lits[i] = solver.PositiveLiteral(solver.Var(l - 1))
			}
		}
		ctx.AddClause(lits)
	}
	return ctx
}

// ToString renders a model (one bool per variable, index 0 = var 1) as a
// binary string the way the teacher's toString does, for use as a set key.
func ToString(model []bool) string {
	s := make([]byte, len(model))
	for i, b := range model {
		if b {
			s[i] = 1
		}
	}
	return string(s)
}

// ToSet converts a slice of models into a comparable set of binary strings
// (the teacher's toSet helper).
func ToSet(models [][]bool) map[string]struct{} {
	set := map[string]struct{}{}
	for _, m := range models {
		set[ToString(m)] = struct{}{}
	}
	return set
}

// ModelBools converts c's ±literal model encoding into the same []bool
// shape Solver.Model()/ToSet expect.
func (c Case) ModelBools() [][]bool {
	out := make([][]bool, len(c.Models))
	for i, m := range c.Models {
		bools := make([]bool, c.NumVars)
		for _, l := range m {
			bools[abs(l)-1] = l > 0
		}
		out[i] = bools
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
