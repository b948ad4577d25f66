// Package ufs implements spec component I: the positive Body-Atom
// Dependency Graph (PBDG) and the unfounded-set checker built on top of it,
// grounded on original_source/clasp/clasp/unfounded_check.h and
// original_source/libclasp/clasp/dependency_graph.h. The teacher has no
// equivalent (a plain SAT solver has no positive dependency structure at
// all); this package generalizes the teacher's internal/sat/solver.go
// watch-queue idioms (todo_/ufs_ as a resetSet-style id queue) into the ASP
// domain instead.
package ufs

import "github.com/cdclgo/claspgo/solver"

// NodeID indexes either the atom or body vector of a Graph, depending on
// context; the two id spaces are kept separate (unlike clasp's single
// NodeId space) because Go interfaces make "is this id an atom or a body"
// ambiguity easy to avoid by simply never mixing the two slices.
type NodeID int

// BodyLit is one positive predecessor of a body, with its weight (1 for a
// normal body's predecessors).
type BodyLit struct {
	Atom   NodeID
	Weight int
}

// BodyNode is one node of the dependency graph's body side (spec §4.I:
// "count of unsourced predecessors ... or weighted slack").
type BodyNode struct {
	Lit     solver.Literal
	Preds   []BodyLit
	Heads   []NodeID
	Bound   int // sum-of-weights threshold; len(Preds) for a normal body
	Weighted bool
}

// AtomNode is one node of the dependency graph's atom side.
type AtomNode struct {
	Lit              solver.Literal
	SupportingBodies []NodeID // bodies b with this atom in heads(b)
}

// Graph is a positive dependency graph for one non-HCF-free program (or one
// component of one): built once via AddAtom/AddNormalBody/AddWeightBody,
// then handed directly to NewChecker.
type Graph struct {
	Atoms  []AtomNode
	Bodies []BodyNode

	dependents [][]NodeID // per-atom: bodies that use it as a positive predecessor
}

// NewGraph returns an empty dependency graph.
func NewGraph() *Graph { return &Graph{} }

// AddAtom declares an atom node for solver literal lit and returns its id.
func (g *Graph) AddAtom(lit solver.Literal) NodeID {
	g.Atoms = append(g.Atoms, AtomNode{Lit: lit})
	g.dependents = append(g.dependents, nil)
	return NodeID(len(g.Atoms) - 1)
}

// AddNormalBody declares a normal (conjunctive) body depending positively
// on preds and supporting heads.
func (g *Graph) AddNormalBody(lit solver.Literal, preds []NodeID, heads []NodeID) NodeID {
	bl := make([]BodyLit, len(preds))
	for i, p := range preds {
		bl[i] = BodyLit{Atom: p, Weight: 1}
	}
	return g.addBody(BodyNode{Lit: lit, Preds: bl, Heads: heads, Bound: len(preds)})
}

// AddWeightBody declares a weight (or cardinality, bound==len(preds) with
// unit weights) body.
func (g *Graph) AddWeightBody(lit solver.Literal, preds []BodyLit, bound int, heads []NodeID) NodeID {
	return g.addBody(BodyNode{Lit: lit, Preds: preds, Heads: heads, Bound: bound, Weighted: true})
}

func (g *Graph) addBody(b BodyNode) NodeID {
	id := NodeID(len(g.Bodies))
	g.Bodies = append(g.Bodies, b)
	for _, p := range b.Preds {
		g.dependents[p.Atom] = append(g.dependents[p.Atom], id)
	}
	for _, h := range b.Heads {
		g.Atoms[h].SupportingBodies = append(g.Atoms[h].SupportingBodies, id)
	}
	return id
}
