package heuristic

import (
	"github.com/rhartert/yagh"

	"github.com/cdclgo/claspgo/internal/lit"
)

// VSIDS is the classic exponentially-decaying activity heuristic, grounded
// on the teacher's internal/sat/ordering.go: a yagh indexed min-heap keyed
// on the negated score so that Pop returns the highest-activity variable,
// breaking ties on insertion order (yagh.IntMap is itself index-stable).
type VSIDS struct {
	heap *yagh.IntMap[float64]

	scores     []float64
	scoreInc   float64
	scoreDecay float64

	phases      []lit.LBool
	phaseSaving bool
}

// NewVSIDS returns a VSIDS heuristic with the given decay factor in (0, 1].
// If phaseSaving is true, variables are re-assigned the value they held
// before being undone rather than always defaulting to true.
func NewVSIDS(decay float64, phaseSaving bool) *VSIDS {
	return &VSIDS{
		heap:        yagh.New[float64](0),
		scoreInc:    1,
		scoreDecay:  decay,
		phaseSaving: phaseSaving,
	}
}

func (h *VSIDS) AddVar() {
	v := len(h.phases)
	h.scores = append(h.scores, 0)
	h.phases = append(h.phases, lit.True)
	h.heap.GrowBy(1)
	h.heap.Put(v, 0)
}

func (h *VSIDS) NewConstraint(lits []lit.Literal, t ConstraintType) {
	// VSIDS ignores constraint shape; bumping happens through Bump during
	// conflict analysis.
}

func (h *VSIDS) UpdateReason(lits []lit.Literal, resolveLit lit.Literal) {}

func (h *VSIDS) Bump(l lit.Literal) {
	v := int(l.VarID())
	newScore := h.scores[v] + h.scoreInc
	h.scores[v] = newScore
	if h.heap.Contains(v) {
		h.heap.Put(v, -newScore)
	}
	if newScore > 1e100 {
		h.rescale()
	}
}

func (h *VSIDS) Decay() {
	h.scoreInc /= h.scoreDecay
	if h.scoreInc > 1e100 {
		h.rescale()
	}
}

func (h *VSIDS) rescale() {
	h.scoreInc *= 1e-100
	for v, s := range h.scores {
		rescaled := s * 1e-100
		h.scores[v] = rescaled
		if h.heap.Contains(v) {
			h.heap.Put(v, -rescaled)
		}
	}
}

func (h *VSIDS) UndoLevel(v lit.Var, undoneValue lit.LBool) {
	if h.phaseSaving {
		h.phases[v] = undoneValue
	}
	h.heap.Put(int(v), -h.scores[v])
}

func (h *VSIDS) Select(env Env) lit.Literal {
	for {
		next, ok := h.heap.Pop()
		if !ok {
			panic("vsids: no free variable left to select")
		}
		v := lit.Var(next.Elem)
		if env.VarValue(v) != lit.Free {
			continue // already assigned, drop it until it's undone again
		}
		switch h.phases[v] {
		case lit.False:
			return lit.Negative(v)
		default:
			return lit.Positive(v)
		}
	}
}
