package heuristic

import "github.com/cdclgo/claspgo/internal/lit"

// Prober is the extra capability the Lookahead heuristic needs from its
// environment: the ability to test-propagate a literal and report how many
// further literals that would force, backtracking the test immediately
// (spec §4.F, "Unit (lookahead)"). Solvers that want to support the
// Lookahead heuristic implement this in addition to Env.
type Prober interface {
	// Probe tentatively assumes l, propagates, counts the number of newly
	// implied literals, then undoes the assumption. conflict is true if
	// probing hit a conflict (in which case ¬l should be forced by the
	// caller, not handled here).
	Probe(l lit.Literal) (implied int, conflict bool)
}

// Lookahead implements the "Unit" heuristic of spec §4.F: it test-
// propagates each candidate literal of a restricted type set and picks the
// one maximizing the (max, min) of the two polarities' implication counts.
// Candidates are kept in a circular list so that ones which become
// assigned can be spliced out and later restored on backtrack, per the
// spec's "auxiliary structure is a circular candidate list with per-level
// splice/restore".
type Lookahead struct {
	fallback Heuristic // heuristic used once all candidates are exhausted

	candidates []lit.Var
	active     []bool // candidates[i] still eligible?

	// removed records, per decision level, the candidate indices spliced
	// out at that level so PopToLevel can restore them.
	removed [][]int
}

// NewLookahead returns a Lookahead heuristic restricted to the given
// candidate variables (e.g. atoms, per the restricted type set spec.md
// mentions), falling back to fb once every candidate has been decided.
func NewLookahead(candidates []lit.Var, fb Heuristic) *Lookahead {
	active := make([]bool, len(candidates))
	for i := range active {
		active[i] = true
	}
	return &Lookahead{fallback: fb, candidates: candidates, active: active}
}

func (h *Lookahead) AddVar() { h.fallback.AddVar() }

func (h *Lookahead) NewConstraint(lits []lit.Literal, t ConstraintType) {
	h.fallback.NewConstraint(lits, t)
}

func (h *Lookahead) UpdateReason(lits []lit.Literal, resolveLit lit.Literal) {
	h.fallback.UpdateReason(lits, resolveLit)
}

func (h *Lookahead) Bump(l lit.Literal) { h.fallback.Bump(l) }
func (h *Lookahead) Decay()             { h.fallback.Decay() }

func (h *Lookahead) UndoLevel(v lit.Var, undoneValue lit.LBool) {
	h.fallback.UndoLevel(v, undoneValue)
}

func (h *Lookahead) PushLevel() {
	h.removed = append(h.removed, nil)
	if ls, ok := h.fallback.(LevelScoped); ok {
		ls.PushLevel()
	}
}

func (h *Lookahead) PopToLevel(level int) {
	for len(h.removed) > level {
		idxs := h.removed[len(h.removed)-1]
		h.removed = h.removed[:len(h.removed)-1]
		for _, i := range idxs {
			h.active[i] = true
		}
	}
	if ls, ok := h.fallback.(LevelScoped); ok {
		ls.PopToLevel(level)
	}
}

func (h *Lookahead) Select(env Env) lit.Literal {
	prober, ok := env.(Prober)
	if !ok {
		return h.fallback.Select(env)
	}

	bestMax, bestMin := -1, -1
	bestVar := lit.Var(-1)
	bestSign := lit.True
	found := false

	for i, v := range h.candidates {
		if !h.active[i] {
			continue
		}
		if env.VarValue(v) != lit.Free {
			h.spliceOut(i)
			continue
		}
		pImplied, pConf := prober.Probe(lit.Positive(v))
		if pConf {
			return lit.Negative(v) // forced by failed-literal detection
		}
		nImplied, nConf := prober.Probe(lit.Negative(v))
		if nConf {
			return lit.Positive(v)
		}

		mx, mn, sign := pImplied, nImplied, lit.True
		if nImplied > mx {
			mx, mn, sign = nImplied, pImplied, lit.False
		}
		if !found || mx > bestMax || (mx == bestMax && mn > bestMin) {
			bestMax, bestMin, bestVar, bestSign, found = mx, mn, v, sign, true
		}
	}

	if !found {
		return h.fallback.Select(env)
	}
	if bestSign == lit.True {
		return lit.Positive(bestVar)
	}
	return lit.Negative(bestVar)
}

func (h *Lookahead) spliceOut(i int) {
	h.active[i] = false
	if len(h.removed) == 0 {
		h.removed = append(h.removed, nil)
	}
	top := len(h.removed) - 1
	h.removed[top] = append(h.removed[top], i)
}
