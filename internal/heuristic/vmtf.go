package heuristic

import "github.com/cdclgo/claspgo/internal/lit"

// VMTF ("variable move to front") keeps variables in a doubly-linked list
// ordered by recency of conflict involvement; decisions pick the first
// still-unassigned variable from the front of the list (spec §4.F).
type VMTF struct {
	next []int
	prev []int
	head int

	// linked marks variables that have been added to the list; it is set
	// but not otherwise read.
	linked []bool

	phases      []lit.LBool
	phaseSaving bool

	// pending accumulates the variables bumped during the current
	// conflict so Decay (called once per conflict) can splice them to the
	// front in bump order.
	pending []lit.Var
	maxMove int
}

const vmtfNil = -1

// NewVMTF returns a VMTF heuristic that moves up to maxMove variables to
// the front of the list per conflict (spec §4.F: "moves up to N literals to
// the front").
func NewVMTF(maxMove int) *VMTF {
	return &VMTF{head: vmtfNil, maxMove: maxMove}
}

func (h *VMTF) AddVar() {
	v := len(h.next)
	h.next = append(h.next, vmtfNil)
	h.prev = append(h.prev, vmtfNil)
	h.linked = append(h.linked, true)
	h.phases = append(h.phases, lit.True)

	// New variables are the most likely to matter next (they were just
	// introduced, e.g. by grounding); push to front.
	h.pushFront(v)
}

func (h *VMTF) pushFront(v int) {
	if h.head == vmtfNil {
		h.next[v] = vmtfNil
		h.prev[v] = vmtfNil
		h.head = v
		return
	}
	h.next[v] = h.head
	h.prev[v] = vmtfNil
	h.prev[h.head] = v
	h.head = v
}

func (h *VMTF) unlink(v int) {
	if h.prev[v] != vmtfNil {
		h.next[h.prev[v]] = h.next[v]
	} else {
		h.head = h.next[v]
	}
	if h.next[v] != vmtfNil {
		h.prev[h.next[v]] = h.prev[v]
	}
}

func (h *VMTF) NewConstraint(lits []lit.Literal, t ConstraintType) {}
func (h *VMTF) UpdateReason(lits []lit.Literal, resolveLit lit.Literal) {}

func (h *VMTF) Bump(l lit.Literal) {
	if len(h.pending) < h.maxMove {
		h.pending = append(h.pending, l.VarID())
	}
}

// Decay splices the conflict's bumped variables to the front, most
// recently seen last (so the very first literal resolved against ends up
// closest to the head), then clears the pending batch.
func (h *VMTF) Decay() {
	for i := len(h.pending) - 1; i >= 0; i-- {
		v := int(h.pending[i])
		h.unlink(v)
		h.pushFront(v)
	}
	h.pending = h.pending[:0]
}

func (h *VMTF) UndoLevel(v lit.Var, undoneValue lit.LBool) {
	if h.phaseSaving {
		h.phases[v] = undoneValue
	}
}

func (h *VMTF) Select(env Env) lit.Literal {
	for v := h.head; v != vmtfNil; v = h.next[v] {
		if env.VarValue(lit.Var(v)) != lit.Free {
			continue
		}
		switch h.phases[v] {
		case lit.False:
			return lit.Negative(lit.Var(v))
		default:
			return lit.Positive(lit.Var(v))
		}
	}
	panic("vmtf: no free variable left to select")
}
