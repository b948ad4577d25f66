// Package solver implements spec components B (SharedContext), C (Clause &
// WatchList), D (PropagationEngine), E (ConflictAnalyzer) and H (Search
// Loop): the CDCL core. It is grounded throughout on the teacher's
// internal/sat/solver.go and internal/sat/clauses.go, generalized to the
// priority-ordered post-propagator chain and ASP-specific hooks spec.md
// adds on top of plain SAT solving.
package solver

import (
	"github.com/cdclgo/claspgo/internal/config"
	"github.com/cdclgo/claspgo/internal/lit"
)

// Options is the solver's struct-of-tunables, re-exported from
// internal/config so callers configure a SharedContext without importing
// an internal package.
type Options = config.Options

// DefaultOptions mirrors the teacher's internal/sat.DefaultOptions.
var DefaultOptions = config.DefaultOptions

// Re-exported config enums, so callers configuring a Solver never need to
// import internal/config directly.
const (
	HeuristicVSIDS      = config.HeuristicVSIDS
	HeuristicVMTF       = config.HeuristicVMTF
	HeuristicBerkmin    = config.HeuristicBerkmin
	HeuristicDomain     = config.HeuristicDomain
	HeuristicLookahead  = config.HeuristicLookahead

	RestartGeometric  = config.RestartGeometric
	RestartLuby       = config.RestartLuby
	RestartDynamicLBD = config.RestartDynamicLBD
	RestartNone       = config.RestartNone
)

// Local short aliases, matching the teacher's internal/sat package where
// Literal/LBool/Var lived directly in the solver package; here they are
// re-exported from internal/lit so internal/heuristic can share the exact
// same representation without importing the solver package (internal/ufs,
// internal/minimize and internal/enumerate import solver and use the
// exported aliases below).
type (
	literal = lit.Literal
	lbool   = lit.LBool
	variable = lit.Var
)

const (
	free  = lit.Free
	true_ = lit.True
	false_ = lit.False
)

// Exported aliases so callers of this package (facade, cmd/claspgo) use
// the same vocabulary spec.md does without reaching into internal/lit.
type (
	Literal = lit.Literal
	LBool   = lit.LBool
	Var     = lit.Var
)

const (
	Free  = lit.Free
	True  = lit.True
	False = lit.False
)

// PositiveLiteral returns the positive literal of variable v.
func PositiveLiteral(v Var) Literal { return lit.Positive(v) }

// NegativeLiteral returns the negative literal of variable v.
func NegativeLiteral(v Var) Literal { return lit.Negative(v) }
