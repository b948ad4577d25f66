package solver

import "fmt"

// VarType classifies a variable the way an ASP program does: an atom, a
// body, or (after some program transformations) both (spec §3, "Variable").
type VarType uint8

const (
	VarTypeAtom VarType = iota
	VarTypeBody
	VarTypeBoth
)

// varInfo holds the per-variable metadata SharedContext is responsible for
// (spec §3: "type flags ... a 'no-antecedent' flag ... frozen status ...
// eliminated status ... preferred-value set").
type varInfo struct {
	typ          VarType
	noAntecedent bool
	frozen       bool
	eliminated   bool
	userValue    LBool // preferred value set explicitly by the user/facade
	savedValue   LBool // phase-saved value from the previous search
}

// SharedContext is the problem-wide store of spec component B: the
// variable vector, the (single, in this single-threaded core) attached
// Solver, the symbol table, and the frozen/initialized lifecycle. Grounded
// on the teacher's internal/sat/solver.go AddVariable/AddClause/Simplify,
// generalized per spec §4.B and the lifecycle of
// original_source/libclasp/clasp/clasp_facade.h.
type SharedContext struct {
	vars []varInfo

	symbols   map[string]Var
	names     map[Var]string

	initialized bool // endInit has been called

	solver *Solver
}

// NewSharedContext returns an empty problem store with its attached Solver
// configured per opts.
func NewSharedContext(opts Options) *SharedContext {
	ctx := &SharedContext{
		symbols: map[string]Var{},
		names:   map[Var]string{},
	}
	ctx.solver = newSolver(opts, ctx)
	return ctx
}

// Solver returns the single solver attached to this context.
func (ctx *SharedContext) Solver() *Solver { return ctx.solver }

// AddVar declares a new variable of the given type and returns its id
// (spec §6: "addVar(type, flags) -> VarId").
func (ctx *SharedContext) AddVar(t VarType) Var {
	v := Var(len(ctx.vars))
	ctx.vars = append(ctx.vars, varInfo{typ: t})
	ctx.solver.addVariable()
	return v
}

// SetSymbol associates name with v in the output symbol table (spec §6,
// the I/O layer's "required atom ids").
func (ctx *SharedContext) SetSymbol(v Var, name string) error {
	if other, ok := ctx.symbols[name]; ok && other != v {
		return fmt.Errorf("%w: %q already maps to variable %d", errDuplicateSymbol, name, other)
	}
	ctx.symbols[name] = v
	ctx.names[v] = name
	return nil
}

// Symbol returns the name associated with v, if any.
func (ctx *SharedContext) Symbol(v Var) (string, bool) {
	n, ok := ctx.names[v]
	return n, ok
}

var errDuplicateSymbol = fmt.Errorf("duplicate symbol")

// Freeze marks v as frozen and records defaultValue as its preferred value
// (spec §6: "freeze(atom, defaultValue)"). There is no variable elimination
// in this module, and the decision heuristics do not read the recorded
// value.
func (ctx *SharedContext) Freeze(v Var, defaultValue LBool) {
	ctx.vars[v].frozen = true
	ctx.vars[v].userValue = defaultValue
}

// Unfreeze allows v to participate in elimination again; used between
// incremental steps (spec §4.B: "after it, structural changes require an
// explicit unfreeze").
func (ctx *SharedContext) Unfreeze(v Var) {
	ctx.vars[v].frozen = false
	ctx.initialized = false
}

// IsFrozen reports whether v is exempt from elimination.
func (ctx *SharedContext) IsFrozen(v Var) bool { return ctx.vars[v].frozen }

// NumVars returns the number of declared variables.
func (ctx *SharedContext) NumVars() int { return len(ctx.vars) }

// AddClause adds a problem (non-learnt) clause (spec §6: "addClause(literals)
// -> bool"); returns false if the clause is trivially unsatisfiable,
// leaving the context permanently UNSAT.
func (ctx *SharedContext) AddClause(literals []Literal) (bool, error) {
	return ctx.solver.AddClause(literals)
}

// EndInit simplifies the clause database at the root level and marks the
// context initialized; a second call does nothing until Unfreeze clears the
// mark (spec §4.B). AddVar and AddClause do not check the mark: they accept
// structural changes after EndInit without Unfreeze.
func (ctx *SharedContext) EndInit() error {
	if ctx.initialized {
		return nil
	}
	if ok := ctx.solver.Simplify(); !ok {
		// Still a valid (UNSAT) state, not a logic error.
	}
	ctx.initialized = true
	return nil
}
