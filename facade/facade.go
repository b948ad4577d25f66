// Package facade implements spec component L: the incremental solving
// facade wrapping a solver.SharedContext through repeated
// start/solve/update steps, grounded on
// original_source/libclasp/clasp/clasp_facade.h's Prepare/solve/update
// lifecycle. The teacher's main.go performs a single, non-incremental
// dimacs.ParseDIMACS -> NewDefaultSolver -> Solve() -> print sequence; this
// package generalizes that exact call shape into the repeatable lifecycle
// spec §4.L requires, keeping the teacher's explicit-error-return,
// no-panics style throughout.
package facade

import (
	"fmt"

	"github.com/cdclgo/claspgo/internal/enumerate"
	"github.com/cdclgo/claspgo/internal/errs"
	"github.com/cdclgo/claspgo/internal/report"
	"github.com/cdclgo/claspgo/solver"
)

// Facade drives one incremental problem: a sequence of steps, each adding
// clauses and (optionally) a step literal that disables the previous
// step's rules once superseded (spec §4.L, "push/pop assumptions").
type Facade struct {
	ctx    *solver.SharedContext
	logger report.Logger

	step       int
	stepLits   []solver.Literal // one per completed step, assumed true to keep it active
	solving    bool
}

// New creates a Facade over a fresh SharedContext configured by opts.
func New(opts solver.Options) *Facade {
	return &Facade{ctx: solver.NewSharedContext(opts)}
}

// SetLogger attaches a report.Logger the underlying solver reports search
// progress through.
func (f *Facade) SetLogger(l report.Logger) {
	f.logger = l
	f.ctx.Solver().SetLogger(l)
}

// Context exposes the underlying SharedContext for problem construction
// (AddVar, AddClause, Freeze, ...).
func (f *Facade) Context() *solver.SharedContext { return f.ctx }

// BeginStep opens a new incremental step, returning the step's literal:
// every clause added during this step should include ¬stepLit as an extra
// disjunct if it should stop applying once the step is superseded (spec
// §4.L, §4.B "structural changes require unfreeze").
func (f *Facade) BeginStep() (solver.Literal, error) {
	if f.solving {
		return 0, errs.ErrAlreadySolving
	}
	v := f.ctx.AddVar(solver.VarTypeAtom)
	f.ctx.Freeze(v, solver.Free)
	lit := solver.PositiveLiteral(v)
	f.stepLits = append(f.stepLits, lit)
	f.step++
	return lit, nil
}

// EndStep finalizes the current step's structural changes (spec §4.B,
// EndInit).
func (f *Facade) EndStep() error {
	return f.ctx.EndInit()
}

// Solve runs search under every still-active step literal plus extra
// assumptions (spec §4.L, §6 "solve(assumptions)").
func (f *Facade) Solve(extra []solver.Literal) (solver.Result, error) {
	if f.solving {
		return solver.Unknown, errs.ErrAlreadySolving
	}
	f.solving = true
	defer func() { f.solving = false }()

	s := f.ctx.Solver()
	assumptions := make([]solver.Literal, 0, len(f.stepLits)+len(extra))
	for _, l := range f.stepLits {
		if s.LitValue(l) == solver.False && s.VarLevel(l.VarID()) == 0 {
			continue // retracted: forced false at the root by Retract
		}
		assumptions = append(assumptions, l)
	}
	assumptions = append(assumptions, extra...)
	return s.Solve(assumptions)
}

// Enumerate runs the given enumerator over the facade's solver and
// projection (spec §4.K). The enumerators call Solver.Solve(nil) directly,
// so step literals are not assumed during enumeration, and EndStep does not
// turn them into facts.
func (f *Facade) Enumerate(e enumerate.Enumerator, vars []solver.Var, limit int, onModel func(enumerate.Model) bool) (int, error) {
	return e.Enumerate(f.ctx.Solver(), vars, limit, onModel)
}

// Retract disables step i by forcing its literal false at the root level,
// the standard iclingo-style "forget a step" operation (spec §4.L). It
// requires decision level 0 and an Unfreeze beforehand if the step's
// variable was frozen for any other reason.
func (f *Facade) Retract(i int) error {
	if i < 0 || i >= len(f.stepLits) {
		return fmt.Errorf("%w: step %d out of range", errs.ErrMalformedInput, i)
	}
	ok, err := f.ctx.Solver().AddClause([]solver.Literal{f.stepLits[i].Opposite()})
	if err != nil {
		return err
	}
	if !ok {
		return errs.ErrUnsat
	}
	return nil
}

// Model returns the last satisfying assignment found (spec §4.K).
func (f *Facade) Model() []solver.LBool {
	m := f.ctx.Solver().Model()
	if m == nil {
		return nil
	}
	return m
}

// GetCore returns the subset of extra assumptions from the last Solve call
// that participated in an Unsatisfiable result (spec §6 "getCore() ->
// literals", §4.L). Step literals are filtered out: they are the facade's
// own bookkeeping, not assumptions a caller can act on. It is nil after a
// Satisfiable result.
func (f *Facade) GetCore() []solver.Literal {
	full := f.ctx.Solver().Core()
	if full == nil {
		return nil
	}
	isStep := make(map[solver.Literal]bool, len(f.stepLits))
	for _, l := range f.stepLits {
		isStep[l] = true
	}
	core := make([]solver.Literal, 0, len(full))
	for _, l := range full {
		if !isStep[l] {
			core = append(core, l)
		}
	}
	return core
}
