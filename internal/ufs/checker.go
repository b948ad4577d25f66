package ufs

import "github.com/cdclgo/claspgo/solver"

// ReasonStrategy selects how the checker explains a forced falsity (spec
// §4.I): common, distinct and shared each materialize one clause per atom
// (shared does not build a single loop formula for the whole unfounded set;
// all three behave alike), only keeps a reason without a clause, and no
// skips reason computation entirely.
type ReasonStrategy int

const (
	ReasonCommon ReasonStrategy = iota
	ReasonDistinct
	ReasonShared
	ReasonOnly
	ReasonNo
)

// priorityReservedUfs matches clasp's priority_reserved_ufs constant: just
// above ordinary unit propagation, below lookahead (DESIGN.md Open
// Question decision).
const priorityReservedUfs = 100

type atomState struct {
	source    NodeID
	hasSource bool
	inTodo    bool
	inUfs     bool
}

type bodyState struct {
	unsourced int // normal bodies: count of positive preds still lacking a source
	slack     int // weight bodies: Bound minus the weight of sourced preds
	watchers  int // how many atoms currently use this body as their source
}

const noSource NodeID = -1

// Checker is clasp's DefaultUnfoundedCheck, generalized to a Go
// solver.PostPropagator (spec §4.I). It maintains a source pointer per atom
// into g and, whenever an atom loses its last possible source, falsifies
// every atom in the resulting unfounded set with a loop nogood.
type Checker struct {
	g *Graph

	atoms  []atomState
	bodies []bodyState

	todoQ []NodeID
	ufsQ  []NodeID

	strategy ReasonStrategy
	extID    int // id registered with the solver for ReasonOnly/ReasonNo

	// pendingReason caches the reason literals for the external-reason
	// strategies, indexed by the atom's negative literal id.
	pendingReason map[solver.Literal][]solver.Literal

	trailPos int // trail index already scanned for body/atom truth changes

	bodyOfTrueLit  map[solver.Literal]NodeID // lit -> body that just became true
	bodyOfFalseLit map[solver.Literal]NodeID // lit -> body that just became false
}

// NewChecker builds a Checker over g using the given reason strategy. It
// must be registered with a Solver via Attach before first use.
func NewChecker(g *Graph, st ReasonStrategy) *Checker {
	c := &Checker{
		g:        g,
		atoms:    make([]atomState, len(g.Atoms)),
		bodies:   make([]bodyState, len(g.Bodies)),
		strategy: st,
	}
	for i, b := range g.Bodies {
		if b.Weighted {
			c.bodies[i].slack = b.Bound
		} else {
			c.bodies[i].unsourced = len(b.Preds)
		}
	}
	for i := range c.atoms {
		c.atoms[i].source = noSource
	}
	c.bodyOfTrueLit = map[solver.Literal]NodeID{}
	c.bodyOfFalseLit = map[solver.Literal]NodeID{}
	for i, b := range g.Bodies {
		c.bodyOfTrueLit[b.Lit] = NodeID(i)
		c.bodyOfFalseLit[b.Lit.Opposite()] = NodeID(i)
	}
	return c
}

// Attach registers c as a post-propagator and, if its strategy needs one,
// as an external reason provider (spec §4.I, §6).
func (c *Checker) Attach(s *solver.Solver) {
	if c.strategy == ReasonOnly || c.strategy == ReasonNo {
		c.extID = s.RegisterExternalReason(c)
		c.pendingReason = map[solver.Literal][]solver.Literal{}
	}
	s.AddPostPropagator(c)
	c.seed(s)
}

// Priority implements solver.PostPropagator.
func (c *Checker) Priority() int { return priorityReservedUfs }

// Reset implements solver.PostPropagator; source pointers survive
// backtracking (they are re-validated lazily), so there is nothing to
// discard beyond the scan position.
func (c *Checker) Reset(s *solver.Solver) {
	if c.trailPos > 0 {
		c.trailPos = 0
	}
}

// seed runs the initial source-pointer search: every body with no
// unsourced/slack-blocking predecessors and not already false is a
// candidate source (spec §4.I, the base case of the recursive definition).
func (c *Checker) seed(s *solver.Solver) {
	for i := range c.g.Bodies {
		c.tryForwardSource(s, NodeID(i))
	}
	c.drainTodo(s)
}

// ExplainExternal implements propapi.ExternalReasonProvider for the
// ReasonOnly/ReasonNo strategies.
func (c *Checker) ExplainExternal(l solver.Literal, out []solver.Literal) []solver.Literal {
	return append(out, c.pendingReason[l]...)
}

func (c *Checker) isBodyFalse(s *solver.Solver, b NodeID) bool {
	return s.LitValue(c.g.Bodies[b].Lit) == solver.False
}

// setSource makes body b the source of atom a, propagating the change to
// every body that has a as a positive predecessor.
func (c *Checker) setSource(s *solver.Solver, a NodeID, b NodeID) {
	if c.atoms[a].hasSource && c.atoms[a].source == b {
		return
	}
	c.atoms[a].source = b
	c.atoms[a].hasSource = true
	c.bodies[b].watchers++
	for _, d := range c.g.dependents[a] {
		c.onPredSourced(s, d, a)
	}
}

func (c *Checker) onPredSourced(s *solver.Solver, b NodeID, a NodeID) {
	bn := &c.g.Bodies[b]
	if bn.Weighted {
		for _, p := range bn.Preds {
			if p.Atom == a {
				c.bodies[b].slack -= p.Weight
			}
		}
		if c.bodies[b].slack <= 0 {
			c.tryForwardSource(s, b)
		}
		return
	}
	c.bodies[b].unsourced--
	if c.bodies[b].unsourced == 0 {
		c.tryForwardSource(s, b)
	}
}

// removeSource clears a's source pointer, propagating the loss to every
// body that has a as a positive predecessor.
func (c *Checker) removeSource(s *solver.Solver, a NodeID) {
	if !c.atoms[a].hasSource {
		return
	}
	b := c.atoms[a].source
	c.atoms[a].hasSource = false
	c.bodies[b].watchers--
	for _, d := range c.g.dependents[a] {
		c.onPredUnsourced(d, a)
	}
}

func (c *Checker) onPredUnsourced(b NodeID, a NodeID) {
	bn := &c.g.Bodies[b]
	if bn.Weighted {
		for _, p := range bn.Preds {
			if p.Atom == a {
				c.bodies[b].slack += p.Weight
			}
		}
		if c.bodies[b].slack > 0 && c.bodies[b].watchers > 0 {
			c.forwardUnsource(b)
		}
		return
	}
	c.bodies[b].unsourced++
	if c.bodies[b].unsourced == 1 && c.bodies[b].watchers > 0 {
		c.forwardUnsource(b)
	}
}

// tryForwardSource makes b the source of every one of its heads that lacks
// one, once b itself is fully sourced (unsourced==0 / slack<=0) and not
// false.
func (c *Checker) tryForwardSource(s *solver.Solver, b NodeID) {
	bn := &c.g.Bodies[b]
	ready := bn.Weighted && c.bodies[b].slack <= 0 || !bn.Weighted && c.bodies[b].unsourced == 0
	if !ready || c.isBodyFalse(s, b) {
		return
	}
	for _, h := range bn.Heads {
		if !c.atoms[h].hasSource {
			c.setSource(s, h, b)
		}
	}
}

// forwardUnsource pushes every head currently sourced by b onto the todo
// queue: they need a new source.
func (c *Checker) forwardUnsource(b NodeID) {
	for _, h := range c.g.Bodies[b].Heads {
		if c.atoms[h].hasSource && c.atoms[h].source == b {
			c.pushTodo(h)
		}
	}
}

func (c *Checker) pushTodo(a NodeID) {
	if !c.atoms[a].inTodo {
		c.atoms[a].inTodo = true
		c.todoQ = append(c.todoQ, a)
	}
}

func (c *Checker) pushUfs(a NodeID) {
	if !c.atoms[a].inUfs {
		c.atoms[a].inUfs = true
		c.ufsQ = append(c.ufsQ, a)
	}
}

// drainTodo retries findSource for every atom on the todo queue, moving
// still-sourceless atoms to the unfounded-set queue (spec §4.I).
func (c *Checker) drainTodo(s *solver.Solver) {
	for len(c.todoQ) > 0 {
		a := c.todoQ[0]
		c.todoQ = c.todoQ[1:]
		c.atoms[a].inTodo = false
		if c.atoms[a].hasSource {
			continue // re-sourced transitively while queued
		}
		if !c.findSource(s, a) {
			c.pushUfs(a)
		}
	}
}

// findSource scans a's supporting bodies for one that is not false and
// fully sourced, making it a's source if found.
func (c *Checker) findSource(s *solver.Solver, a NodeID) bool {
	for _, b := range c.g.Atoms[a].SupportingBodies {
		bn := &c.g.Bodies[b]
		ready := bn.Weighted && c.bodies[b].slack <= 0 || !bn.Weighted && c.bodies[b].unsourced == 0
		if ready && !c.isBodyFalse(s, b) {
			c.setSource(s, a, b)
			return true
		}
	}
	return false
}
