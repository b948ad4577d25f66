// Package heuristic implements the decision heuristics of spec component F
// (VSIDS, VMTF, Berkmin, Domain, Lookahead) behind a common interface. Each
// variant is grounded on a different source: VSIDS on the teacher's
// internal/sat/ordering.go (itself built on github.com/rhartert/yagh),
// Berkmin on original_source/libclasp/clasp/heuristics.h's ClaspBerkmin, and
// VMTF/Domain on the shapes spec.md §4.F names directly.
package heuristic

import "github.com/cdclgo/claspgo/internal/lit"

// Env is the narrow, consumer-defined view of the solver a heuristic needs
// to pick a decision literal. The solver implements it; heuristic
// implementations never import the solver package (DESIGN NOTES: "replace
// inheritance with a small trait").
type Env interface {
	// VarValue returns the current value of v (Free if unassigned).
	VarValue(v lit.Var) lit.LBool
	// NumVars returns the number of declared variables.
	NumVars() int
}

// ConstraintType distinguishes ordinary clauses from ASP-specific
// constraints (loop nogoods, minimize constraints) for heuristics that
// weigh them differently (spec §4.F, ClaspBerkmin's loop-nogood handling).
type ConstraintType int

const (
	TypeStatic ConstraintType = iota
	TypeLearnt
	TypeLoopNogood
)

// Heuristic is the common interface every decision-heuristic variant
// implements (spec §4.F: "Polymorphic over {newConstraint, updateReason,
// undoUntil, bump, doSelect}").
type Heuristic interface {
	// AddVar registers a newly added variable with the heuristic.
	AddVar()

	// NewConstraint is called whenever a clause (static or learnt) is added
	// to the database, letting the heuristic update initial scores (e.g.
	// MOMS-like counts) or candidate caches (Berkmin).
	NewConstraint(lits []lit.Literal, t ConstraintType)

	// UpdateReason is called during conflict analysis for every antecedent
	// resolved against, giving heuristics that track "recently active"
	// nogoods (Berkmin) a chance to update their candidate cache.
	UpdateReason(lits []lit.Literal, resolveLit lit.Literal)

	// Bump increases the activity/score of the literal's variable. Called
	// once per literal seen during conflict resolution.
	Bump(l lit.Literal)

	// Decay applies the heuristic's lazy decay step. Called once per
	// conflict.
	Decay()

	// UndoLevel is called once per variable unassigned by a backtrack, in
	// the order they are undone (most recently assigned first), so the
	// heuristic can reinsert them into its candidate structure.
	UndoLevel(v lit.Var, undoneValue lit.LBool)

	// Select returns the next decision literal. The caller guarantees at
	// least one variable is still unassigned.
	Select(env Env) lit.Literal
}

// LevelScoped is implemented by heuristics that stack per-level state
// outside of the ordinary variable-undo path (spec §4.F, Domain: "level/
// factor/sign modifiers ... stack per decision level and are undone on
// backtrack"). The solver checks for this interface when backtracking and
// calls PopToLevel after it has undone the individual variables.
type LevelScoped interface {
	// PushLevel is called when a new decision level is opened.
	PushLevel()
	// PopToLevel discards any level-scoped state above level.
	PopToLevel(level int)
}
