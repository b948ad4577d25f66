package ufs

import "github.com/cdclgo/claspgo/solver"

// Propagate implements solver.PostPropagator: it scans the trail for body
// literals that changed truth value since the last call, updates source
// pointers accordingly, and falsifies any atom that ends up without one
// (spec §4.I).
func (c *Checker) Propagate(s *solver.Solver) bool {
	trail := s.Trail()
	for ; c.trailPos < len(trail); c.trailPos++ {
		l := trail[c.trailPos]
		if b, ok := c.bodyOfFalseLit[l]; ok {
			c.forwardUnsource(b)
		}
		if b, ok := c.bodyOfTrueLit[l]; ok {
			c.tryForwardSource(s, b)
		}
	}
	c.drainTodo(s)

	// A pure positive-recursion loop with no external fact ever seeding it
	// (e.g. "a :- b. b :- a." alone) never triggers a bodyOfFalseLit event:
	// every atom in the loop can be made true together by unit propagation
	// of the completion clauses without any body literal ever going false,
	// so the incremental source-pointer machinery above never runs
	// findSource on them. clasp resolves this the same way: a candidate
	// model (the trail reaches a total assignment) gets one full recheck
	// of every atom that still lacks a source before being accepted.
	if len(c.ufsQ) == 0 && len(trail) == s.NumVars() {
		c.recheckTotalAssignment(s)
	}

	if len(c.ufsQ) == 0 {
		return true
	}
	ok := c.falsifyUnfoundedSet(s)
	for _, a := range c.ufsQ {
		c.atoms[a].inUfs = false
	}
	c.ufsQ = c.ufsQ[:0]
	return ok
}

// recheckTotalAssignment is the final-check fallback for loops that never
// produce a bodyOfFalseLit event (spec §4.I): every atom currently true but
// still lacking a source pointer is queued for unfounded-set propagation.
func (c *Checker) recheckTotalAssignment(s *solver.Solver) {
	for a := range c.atoms {
		if c.atoms[a].hasSource {
			continue
		}
		if s.LitValue(c.g.Atoms[a].Lit) != solver.True {
			continue
		}
		if !c.findSource(s, NodeID(a)) {
			c.pushUfs(NodeID(a))
		}
	}
}

// falsifyUnfoundedSet forces every atom in c.ufsQ to false, with a reason
// built from the external bodies of the set (spec §4.I: "Propagating U: for
// each a in U, force not-a with reason = external bodies of U").
func (c *Checker) falsifyUnfoundedSet(s *solver.Solver) bool {
	inU := map[NodeID]bool{}
	for _, a := range c.ufsQ {
		inU[a] = true
	}

	for _, a := range c.ufsQ {
		if s.LitValue(c.g.Atoms[a].Lit) == solver.False {
			continue // already false, nothing to propagate
		}
		reason := c.externalBodyLiterals(s, a, inU)
		if !c.assertFalse(s, a, reason) {
			return false
		}
	}
	return true
}

// externalBodyLiterals collects the literal of every supporting body of a
// that is not fully internal to U (a "body external to U" in clasp's
// terminology, see isExternal): these are the literals whose falsity
// justifies forcing a false. Whether each body is currently false is not
// checked here.
func (c *Checker) externalBodyLiterals(s *solver.Solver, a NodeID, inU map[NodeID]bool) []solver.Literal {
	var reason []solver.Literal
	for _, b := range c.g.Atoms[a].SupportingBodies {
		if c.isExternal(b, inU) {
			reason = append(reason, c.g.Bodies[b].Lit)
		}
	}
	return reason
}

// isExternal reports whether b has at least one positive predecessor
// outside of U, meaning b could still source an atom of U from the
// outside and must be named in the loop nogood.
func (c *Checker) isExternal(b NodeID, inU map[NodeID]bool) bool {
	for _, p := range c.g.Bodies[b].Preds {
		if !inU[p.Atom] {
			return true
		}
	}
	return false
}

// assertFalse forces a's literal to false via the configured reason
// strategy.
func (c *Checker) assertFalse(s *solver.Solver, a NodeID, reason []solver.Literal) bool {
	neg := c.g.Atoms[a].Lit.Opposite()
	if s.LitValue(c.g.Atoms[a].Lit) == solver.True {
		// a is already assigned true, so neg is already false: enqueue/
		// AddLoopNogood would just report that failure back as a bare
		// bool, which propagate() can't turn into a conflict clause. Build
		// the conflict directly so analyze() has something to resolve.
		lits := append([]solver.Literal{neg}, reason...)
		s.ReportConflict(solver.NewConflictClause(lits))
		return false
	}
	switch c.strategy {
	case ReasonNo:
		c.pendingReason[neg] = nil
		return s.Enqueue(neg, c.extID)
	case ReasonOnly:
		c.pendingReason[neg] = reason
		return s.Enqueue(neg, c.extID)
	default: // ReasonCommon, ReasonDistinct, ReasonShared: materialize a clause
		lits := append([]solver.Literal{neg}, reason...)
		return s.AddLoopNogood(lits)
	}
}
