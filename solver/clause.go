package solver

import "strings"

// clauseStatus packs the boolean flags of a clause into a single byte,
// grounded on the teacher's newer (incomplete, see DESIGN.md) top-level
// sat/clauses.go fragment rather than the older internal/sat/clauses.go,
// which used a separate bool field per flag.
type clauseStatus uint8

const (
	statusDeleted clauseStatus = 1 << iota
	statusLearnt
	statusProtected
)

// Clause is a generic watched-literal clause (spec §4.C). It always has at
// least two literals; unit and empty clauses are handled directly by
// newClause without allocating a Clause at all (spec: "unary implication
// (in-trail only)"). Binary and ternary clauses are not given a distinct
// boxed type: because Propagate's "look for a new literal to watch" loop
// only scans literals[2:], a 2- or 3-literal clause falls through it in
// O(1) automatically, which is the short-circuit spec §4.C describes for
// the binary/ternary variants.
type Clause struct {
	activity float64
	literals []literal
	litsRef  *[]literal // pooled backing allocation, see alloc.go

	// prevPos speeds up the search for a new watch by resuming from where
	// the previous search left off, rather than always starting at index 2.
	// Must stay in [2, len(literals)] ("sat/clauses.go" fragment).
	prevPos int

	lbd    uint32
	status clauseStatus
}

func (c *Clause) isLearnt() bool    { return c.status&statusLearnt != 0 }
func (c *Clause) isProtected() bool { return c.status&statusProtected != 0 }
func (c *Clause) setProtected(b bool) {
	if b {
		c.status |= statusProtected
	} else {
		c.status &^= statusProtected
	}
}

// LBD returns the clause's literal block distance (spec §4.E).
func (c *Clause) LBD() int { return int(c.lbd) }

// Activity returns the clause's current activity score.
func (c *Clause) Activity() float64 { return c.activity }

// newClause builds a clause from tmpLiterals. For non-learnt clauses it
// first simplifies against the current (root-level) assignment, removes
// duplicate/tautological literals, and may directly unit-propagate or
// report the clause as trivially satisfied instead of allocating — exactly
// the teacher's internal/sat/clauses.go NewClause.
//
// It returns (clause, ok): clause is nil if no Clause object was needed
// (satisfied, unit, or a conflict report piggy-backed on false); ok is
// false only if an empty/falsified clause makes the problem UNSAT.
func newClause(s *Solver, tmpLiterals []literal, learnt bool) (*Clause, bool) {
	size := len(tmpLiterals)

	if !learnt {
		seen := map[literal]struct{}{}
		for i := size - 1; i >= 0; i-- {
			if _, ok := seen[tmpLiterals[i].Opposite()]; ok {
				return nil, true // tautology
			}
			if _, ok := seen[tmpLiterals[i]]; ok {
				size--
				tmpLiterals[i], tmpLiterals[size] = tmpLiterals[size], tmpLiterals[i]
				continue
			}
			seen[tmpLiterals[i]] = struct{}{}

			switch s.LitValue(tmpLiterals[i]) {
			case True:
				return nil, true
			case False:
				size--
				tmpLiterals[i], tmpLiterals[size] = tmpLiterals[size], tmpLiterals[i]
			}
		}
		tmpLiterals = tmpLiterals[:size]
	}

	switch size {
	case 0:
		return nil, false
	case 1:
		return nil, s.enqueue(tmpLiterals[0], antecedent{})
	default:
		ref := allocLitSlice(size)
		c := &Clause{litsRef: ref, prevPos: 2}
		c.literals = (*ref)[:0]
		c.literals = append(c.literals, tmpLiterals...)

		if learnt {
			c.status |= statusLearnt
			maxLevel, wl := -1, -1
			for i, l := range c.literals {
				if level := s.level[l.VarID()]; level > maxLevel {
					maxLevel, wl = level, i
				}
			}
			c.literals[wl], c.literals[1] = c.literals[1], c.literals[wl]
		}

		s.Watch(c, c.literals[0].Opposite(), c.literals[1])
		s.Watch(c, c.literals[1].Opposite(), c.literals[0])
		return c, true
	}
}

// NewConflictClause builds a throwaway Clause wrapping lits (all of which
// must currently be false) purely so that 1-UIP analysis can resolve
// against it, for post-propagators (internal/minimize, internal/ufs) whose
// falsified constraint has no watched-literal representation of its own
// (spec §4.D, §4.J: "post-propagators report their conflict via the same
// Explain interface as an ordinary clause").
func NewConflictClause(lits []Literal) *Clause {
	return &Clause{literals: append([]literal(nil), lits...)}
}

func (c *Clause) locked(s *Solver) bool {
	ant := s.reason[c.literals[0].VarID()]
	return ant.clause == c
}

// Delete unwatches c and releases its literal storage back to the pool
// (spec §4.B, "Learnt clauses are ... destroyed by reduction").
func (c *Clause) Delete(s *Solver) {
	c.status |= statusDeleted
	s.Unwatch(c, c.literals[0].Opposite())
	s.Unwatch(c, c.literals[1].Opposite())
	c.literals = nil
	if c.litsRef != nil {
		freeLitSlice(c.litsRef)
		c.litsRef = nil
	}
}

// Simplify removes literals falsified at the root level and reports true
// if the clause is already satisfied at the root level (and can thus be
// dropped entirely).
func (c *Clause) Simplify(s *Solver) bool {
	k := 0
	for _, l := range c.literals {
		switch s.LitValue(l) {
		case True:
			return true
		case False:
			// drop
		default:
			c.literals[k] = l
			k++
		}
	}
	c.literals = c.literals[:k]
	return false
}

// Propagate is invoked when l's opposite (one of c's watched literals) has
// just become false. It returns true if c remains (or becomes) satisfiable
// without forcing anything; false if c now forces its remaining literal to
// be enqueued and that enqueue failed (conflict) — see spec §4.C.
func (c *Clause) Propagate(s *Solver, l literal) bool {
	opp := l.Opposite()
	if c.literals[0] == opp {
		c.literals[0], c.literals[1] = c.literals[1], opp
	}

	if s.LitValue(c.literals[0]) == True {
		s.Watch(c, l, c.literals[0])
		return true
	}

	if c.prevPos >= len(c.literals) {
		c.prevPos = 2
	}
	for i := c.prevPos; i < len(c.literals); i++ {
		if s.LitValue(c.literals[i]) != False {
			c.prevPos = i
			c.literals[1], c.literals[i] = c.literals[i], l.Opposite()
			s.Watch(c, c.literals[1].Opposite(), c.literals[0])
			return true
		}
	}
	for i := 2; i < c.prevPos; i++ {
		if s.LitValue(c.literals[i]) != False {
			c.prevPos = i
			c.literals[1], c.literals[i] = c.literals[i], l.Opposite()
			s.Watch(c, c.literals[1].Opposite(), c.literals[0])
			return true
		}
	}

	s.Watch(c, l, c.literals[0])
	return s.enqueue(c.literals[0], antecedent{clause: c})
}

// ExplainConflict appends every literal of c (all of them falsified, since
// c is the conflicting clause) to out and returns the extended slice (spec
// §4.C, "reason(lit) returns the set of falsified literals"). Bumps c's
// activity if it is learnt.
func (c *Clause) ExplainConflict(s *Solver, out []literal) []literal {
	if c.isLearnt() {
		s.bumpClauseActivity(c)
	}
	return append(out, c.literals...)
}

// ExplainAssign appends every literal of c but literals[0] (the one that
// was forced; the rest are falsified and forced it) to out. Bumps c's
// activity if it is learnt.
func (c *Clause) ExplainAssign(s *Solver, out []literal) []literal {
	if c.isLearnt() {
		s.bumpClauseActivity(c)
	}
	return append(out, c.literals[1:]...)
}

func (c *Clause) String() string {
	if len(c.literals) == 0 {
		return "Clause[]"
	}
	sb := strings.Builder{}
	sb.WriteString("Clause[")
	sb.WriteString(c.literals[0].String())
	for _, l := range c.literals[1:] {
		sb.WriteByte(' ')
		sb.WriteString(l.String())
	}
	sb.WriteByte(']')
	return sb.String()
}
