// Package propapi defines the narrow interface post-propagators (the
// unfounded-set checker, the minimize constraint, the enumerator) use to
// interact with the solver that owns them, so those components can live in
// their own packages without importing the solver package (spec §6,
// "Post-propagator contract"; DESIGN NOTES, "replace inheritance with a
// small trait").
package propapi

import "github.com/cdclgo/claspgo/internal/lit"

// Host is implemented by the solver. It exposes exactly the primitives a
// post-propagator needs: reading the assignment, forcing literals, and
// finding out where in the trail/decision structure it currently stands.
type Host interface {
	// LitValue returns the current truth value of l.
	LitValue(l lit.Literal) lit.LBool

	// VarLevel returns the decision level at which v was assigned, or -1 if
	// v is currently unassigned.
	VarLevel(v lit.Var) int

	// DecisionLevel returns the current decision level (0 at the root).
	DecisionLevel() int

	// NumVars returns the number of problem variables.
	NumVars() int

	// Trail returns the literals assigned so far, in assignment order. The
	// returned slice must not be retained past the current propagation
	// step.
	Trail() []lit.Literal

	// TrailStart returns the trail index at which decision level d started.
	TrailStart(d int) int

	// Enqueue forces l to true with the given post-propagator as its
	// antecedent (identified by id, an opaque token previously returned by
	// RegisterExternalReason). It returns false if l is already false
	// (conflict).
	Enqueue(l lit.Literal, id int) bool

	// RegisterExternalReason lets a post-propagator register itself as a
	// reason-provider; the returned id is passed back to Enqueue and to the
	// propagator's Reason method whenever that antecedent needs explaining.
	RegisterExternalReason(p ExternalReasonProvider) int
}

// ExternalReasonProvider is implemented by a post-propagator that forces
// literals directly (bypassing clause learning), so the engine can ask it
// to explain a forced literal during conflict analysis.
type ExternalReasonProvider interface {
	// ExplainExternal appends the literals that justify why l was forced
	// (all of which must have been false at the time l was forced) to out
	// and returns the extended slice.
	ExplainExternal(l lit.Literal, out []lit.Literal) []lit.Literal
}
