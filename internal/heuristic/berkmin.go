package heuristic

import "github.com/cdclgo/claspgo/internal/lit"

// hScore mirrors libclasp's HScore (original_source/libclasp/clasp/
// heuristics.h): occ is a MOMS-like signed occurrence count used as a
// tie-breaker, act/dec implement a lazily-applied exponential decay that
// is only paid the next time the variable is touched rather than eagerly
// on every conflict.
type hScore struct {
	occ int32
	act uint32
	dec uint32
}

func (s *hScore) decayed(globalDecay uint32) uint32 {
	if x := globalDecay - s.dec; x > 0 {
		s.act >>= min32(x, 31)
		s.dec = globalDecay
	}
	return s.act
}

func min32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}

// Berkmin is a simplified variant of the BerkMin Sat-Solver heuristic
// (original_source/libclasp/clasp/heuristics.h, ClaspBerkmin): branching
// literals are preferentially picked from the most recently learnt clause
// that is not yet satisfied, breaking ties with a MOMS-like occurrence
// score; when no such clause has a free literal (e.g. right after a
// restart, before any conflict occurred) it falls back to the globally
// most active free variable.
type Berkmin struct {
	scores []hScore
	decay  uint32

	phases      []lit.LBool
	phaseSaving bool

	// recentLearnts holds the literals of every learnt clause, most recent
	// last; maxCandidates bounds how far back Select scans.
	recentLearnts [][]lit.Literal
	maxCandidates int
}

// NewBerkmin returns a Berkmin heuristic that considers at most
// maxCandidates recently learnt clauses when searching for a branching
// literal (0 means consider all of them, per spec §4.F).
func NewBerkmin(maxCandidates int, phaseSaving bool) *Berkmin {
	return &Berkmin{maxCandidates: maxCandidates, phaseSaving: phaseSaving}
}

func (h *Berkmin) AddVar() {
	h.scores = append(h.scores, hScore{})
	h.phases = append(h.phases, lit.True)
}

func (h *Berkmin) NewConstraint(lits []lit.Literal, t ConstraintType) {
	for _, l := range lits {
		h.scores[l.VarID()].occ += sign(l)
	}
	if t == TypeLearnt || t == TypeLoopNogood {
		cp := make([]lit.Literal, len(lits))
		copy(cp, lits)
		h.recentLearnts = append(h.recentLearnts, cp)
	}
}

func sign(l lit.Literal) int32 {
	if l.IsPositive() {
		return 1
	}
	return -1
}

func (h *Berkmin) UpdateReason(lits []lit.Literal, resolveLit lit.Literal) {
	for _, l := range lits {
		h.scores[l.VarID()].occ += sign(l)
	}
}

func (h *Berkmin) Bump(l lit.Literal) {
	s := &h.scores[l.VarID()]
	s.decayed(h.decay)
	s.act++
}

func (h *Berkmin) Decay() {
	h.decay++
}

func (h *Berkmin) UndoLevel(v lit.Var, undoneValue lit.LBool) {
	if h.phaseSaving {
		h.phases[v] = undoneValue
	}
}

func (h *Berkmin) Select(env Env) lit.Literal {
	n := len(h.recentLearnts)
	limit := n
	if h.maxCandidates > 0 && h.maxCandidates < limit {
		limit = h.maxCandidates
	}
	for i := 0; i < limit; i++ {
		clause := h.recentLearnts[n-1-i]
		if v, ok := h.bestFreeOf(clause, env); ok {
			return h.decide(v)
		}
	}
	return h.decide(h.mostActiveFreeVar(env))
}

// bestFreeOf returns the free variable among clause with the highest
// decayed activity (MOMS occurrence breaking ties), if any literal of
// clause is still free.
func (h *Berkmin) bestFreeOf(clause []lit.Literal, env Env) (lit.Var, bool) {
	best := lit.Var(-1)
	var bestScore uint32
	var bestOcc int32
	found := false
	for _, l := range clause {
		v := l.VarID()
		if env.VarValue(v) != lit.Free {
			continue
		}
		s := &h.scores[v]
		sc := s.decayed(h.decay)
		occ := abs32(s.occ)
		if !found || sc > bestScore || (sc == bestScore && occ > bestOcc) {
			best, bestScore, bestOcc, found = v, sc, occ, true
		}
	}
	return best, found
}

func abs32(x int32) int32 {
	if x < 0 {
		return -x
	}
	return x
}

func (h *Berkmin) mostActiveFreeVar(env Env) lit.Var {
	best := lit.Var(-1)
	var bestScore uint32
	found := false
	for v := 0; v < env.NumVars(); v++ {
		if env.VarValue(lit.Var(v)) != lit.Free {
			continue
		}
		sc := h.scores[v].decayed(h.decay)
		if !found || sc > bestScore {
			best, bestScore, found = lit.Var(v), sc, true
		}
	}
	if !found {
		panic("berkmin: no free variable left to select")
	}
	return best
}

func (h *Berkmin) decide(v lit.Var) lit.Literal {
	if h.phases[v] == lit.False {
		return lit.Negative(v)
	}
	return lit.Positive(v)
}
