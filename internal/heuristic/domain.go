package heuristic

import "github.com/cdclgo/claspgo/internal/lit"

// DomMod is one domain-heuristic directive, as produced by an external
// "heuristic" rule in the ASP program (spec §4.F, Domain variant).
type DomMod struct {
	Var    lit.Var
	Sign   lit.LBool // Free means "no sign preference override"
	Factor float64   // while active, each Bump applies the VSIDS bump ceil(Factor) times
	Level  int32     // modifier priority, as in clasp's level/factor/sign
}

type domEntry struct {
	sign   lit.LBool
	factor float64
	level  int32
}

// Domain extends VSIDS with per-literal level/factor/sign modifiers that
// can be pushed and popped as decision levels open and close (spec §4.F).
type Domain struct {
	vsids *VSIDS
	mods  []domEntry // current modifier per variable, or zero value if none

	// stack records, per opened decision level, which variables had a
	// modifier installed or changed so PopToLevel can restore the previous
	// entry.
	stack      [][]domChange
	defaultMod domEntry
}

type domChange struct {
	v    lit.Var
	prev domEntry
}

// NewDomain returns a Domain heuristic wrapping a VSIDS instance with the
// given decay/phase-saving configuration.
func NewDomain(decay float64, phaseSaving bool) *Domain {
	return &Domain{vsids: NewVSIDS(decay, phaseSaving)}
}

func (h *Domain) AddVar() {
	h.vsids.AddVar()
	h.mods = append(h.mods, domEntry{factor: 1})
}

func (h *Domain) NewConstraint(lits []lit.Literal, t ConstraintType) {
	h.vsids.NewConstraint(lits, t)
}

func (h *Domain) UpdateReason(lits []lit.Literal, resolveLit lit.Literal) {
	h.vsids.UpdateReason(lits, resolveLit)
}

func (h *Domain) Bump(l lit.Literal) {
	v := l.VarID()
	factor := h.mods[v].factor
	if factor == 0 {
		factor = 1
	}
	for i := 0.0; i < factor; i++ {
		h.vsids.Bump(l)
	}
}

func (h *Domain) Decay() { h.vsids.Decay() }

func (h *Domain) UndoLevel(v lit.Var, undoneValue lit.LBool) {
	h.vsids.UndoLevel(v, undoneValue)
}

// PushLevel opens a new scope for modifier changes (spec §4.F).
func (h *Domain) PushLevel() {
	h.stack = append(h.stack, nil)
}

// PopToLevel discards modifier changes installed at any level above level.
func (h *Domain) PopToLevel(level int) {
	for len(h.stack) > level {
		changes := h.stack[len(h.stack)-1]
		h.stack = h.stack[:len(h.stack)-1]
		for i := len(changes) - 1; i >= 0; i-- {
			c := changes[i]
			h.mods[c.v] = c.prev
		}
	}
}

// Apply installs a domain modifier at the current decision level. Modifiers
// with a higher Level override ones with a lower Level already installed
// for the same variable (clasp's priority semantics); a lower-priority
// directive on an already-modified variable is ignored.
func (h *Domain) Apply(m DomMod) {
	cur := h.mods[m.Var]
	if cur.level > 0 && m.Level <= cur.level {
		return
	}
	if len(h.stack) == 0 {
		h.stack = append(h.stack, nil)
	}
	top := len(h.stack) - 1
	h.stack[top] = append(h.stack[top], domChange{v: m.Var, prev: cur})

	next := domEntry{sign: m.Sign, factor: m.Factor, level: m.Level}
	if next.factor == 0 {
		next.factor = 1
	}
	h.mods[m.Var] = next
}

func (h *Domain) Select(env Env) lit.Literal {
	l := h.vsids.Select(env)
	if mod := h.mods[l.VarID()]; mod.sign != lit.Free {
		if mod.sign == lit.True {
			return lit.Positive(l.VarID())
		}
		return lit.Negative(l.VarID())
	}
	return l
}
