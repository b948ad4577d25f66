package solver

// explainAntecedent appends v's reason literals (the falsified literals
// that forced it) to out and returns the extended slice. A decision or a
// "no-antecedent" variable (spec §3) contributes nothing.
func (s *Solver) explainAntecedent(v variable, out []literal) []literal {
	ant := s.reason[v]
	switch {
	case ant.clause != nil:
		return ant.clause.ExplainAssign(s, out)
	case ant.external:
		truthLit := PositiveLiteral(v)
		if s.assigns[v] != true_ {
			truthLit = NegativeLiteral(v)
		}
		return s.extProviders[ant.extID].ExplainExternal(truthLit, out)
	default:
		return out
	}
}

// analyze performs 1-UIP conflict-driven resolution starting from confl
// (spec §4.E). It returns the learnt clause (asserting literal first, the
// literal watching the backjump level second), the level to backjump to,
// and the clause's LBD.
func (s *Solver) analyze(confl *Clause) (learnt []literal, backjumpLevel int, lbd int) {
	seen := &s.analyzeSeen
	seen.Clear()

	learnt = append(s.tmpLits[:0], free_placeholder)
	pathC := 0
	idx := len(s.trail) - 1
	var p literal
	havP := false

	reasonBuf := make([]literal, 0, 8)

	for {
		var out []literal
		if !havP {
			out = confl.ExplainConflict(s, reasonBuf[:0])
		} else {
			out = s.explainAntecedent(p.VarID(), reasonBuf[:0])
			s.heuristic.UpdateReason(out, p)
		}
		reasonBuf = out[:0]

		for _, q := range out {
			v := q.VarID()
			if seen.Contains(v) || s.level[v] == 0 {
				continue
			}
			seen.Add(v)
			s.heuristic.Bump(q)
			if s.level[v] >= s.DecisionLevel() {
				pathC++
			} else {
				learnt = append(learnt, q)
			}
		}

		for !seen.Contains(s.trail[idx].VarID()) {
			idx--
		}
		p = s.trail[idx]
		idx--
		havP = true
		pathC--
		if pathC == 0 {
			break
		}
	}
	learnt[0] = p.Opposite()

	learnt = s.minimizeLearnt(learnt)

	lbd = s.computeLBD(learnt)

	backjumpLevel = 0
	if len(learnt) > 1 {
		maxI := 1
		for i := 2; i < len(learnt); i++ {
			if s.level[learnt[i].VarID()] > s.level[learnt[maxI].VarID()] {
				maxI = i
			}
		}
		learnt[1], learnt[maxI] = learnt[maxI], learnt[1]
		backjumpLevel = s.level[learnt[1].VarID()]
	}

	s.heuristic.Decay()
	s.decayClauseActivity()

	return learnt, backjumpLevel, lbd
}

// free_placeholder reserves learnt[0] for the asserting literal, filled in
// once p is known.
const free_placeholder = literal(-1)

// extractCore runs the same 1-UIP resolution as analyze over confl and
// keeps only the literals it traces back to decision levels 1..baseLevel:
// those are exactly the negations of the assumptions Solve pushed, so
// negating them back gives the unsat core (spec §4.L: "a conflict
// involving them resolves to a subset marked as the unsat core, as implied
// by the 1-UIP analysis restricted to assumption literals").
func (s *Solver) extractCore(confl *Clause, baseLevel int) {
	if baseLevel == 0 {
		s.core = nil
		return
	}
	learnt, _, _ := s.analyze(confl)
	core := make([]literal, 0, len(learnt))
	for _, l := range learnt {
		lv := s.level[l.VarID()]
		if lv == 0 || lv > baseLevel {
			continue
		}
		core = append(core, l.Opposite())
	}
	s.core = core
}

// minimizeLearnt drops literals whose antecedent is entirely subsumed by
// the seen set (spec §4.E "minimization"): a simple, linear-time pass over
// the tail of the learnt clause, not the recursive/stamp-based variant.
func (s *Solver) minimizeLearnt(learnt []literal) []literal {
	if len(learnt) <= 1 {
		return learnt
	}
	seen := &s.analyzeSeen
	k := 1
	for i := 1; i < len(learnt); i++ {
		l := learnt[i]
		if s.redundant(l, seen) {
			continue
		}
		learnt[k] = l
		k++
	}
	return learnt[:k]
}

// redundant reports whether l's antecedent literals are all already in
// seen, making l removable from the learnt clause.
func (s *Solver) redundant(l literal, seen *resetSet) bool {
	ant := s.reason[l.VarID()]
	if ant.clause == nil && !ant.external {
		return false // decision literal: never redundant
	}
	reasonBuf := make([]literal, 0, 8)
	reasonLits := s.explainAntecedent(l.VarID(), reasonBuf[:0])
	for _, q := range reasonLits {
		v := q.VarID()
		if s.level[v] != 0 && !seen.Contains(v) {
			return false
		}
	}
	return true
}

// computeLBD returns the number of distinct decision levels represented in
// learnt, excluding level 0 (spec §4.E, LBD scoring).
func (s *Solver) computeLBD(learnt []literal) int {
	var seenLevels []int
	for _, l := range learnt {
		lv := s.level[l.VarID()]
		if lv == 0 {
			continue
		}
		found := false
		for _, sl := range seenLevels {
			if sl == lv {
				found = true
				break
			}
		}
		if !found {
			seenLevels = append(seenLevels, lv)
		}
	}
	return len(seenLevels)
}
