package solver

import (
	"github.com/cdclgo/claspgo/internal/heuristic"
	"github.com/cdclgo/claspgo/internal/reduce"
	"github.com/cdclgo/claspgo/internal/report"
)

// addLearntClause builds a Clause from a freshly analyzed conflict, adds it
// to the learnt database, and enqueues its asserting literal (spec §4.E/G).
// A unit learnt clause (len(learnt) == 1) has no Clause representation at
// all, matching newClause's unit-clause shortcut.
func (s *Solver) addLearntClause(learnt []literal, lbd int) bool {
	c, ok := newClause(s, learnt, true)
	if !ok {
		return false
	}
	if c == nil {
		return true // unit clause, enqueued directly by newClause
	}
	c.lbd = uint32(lbd)
	s.learnts = append(s.learnts, c)
	s.heuristic.NewConstraint(c.literals, heuristic.TypeLearnt)
	return s.enqueue(c.literals[0], antecedent{clause: c})
}

// AddLoopNogood adds a clause derived by a post-propagator (the
// unfounded-set checker's common/distinct/shared reason strategies, spec
// §4.I) rather than by ordinary 1-UIP conflict analysis. lits must already
// be in "all-but-the-first falsified" form, exactly like a learnt clause.
func (s *Solver) AddLoopNogood(lits []Literal) bool {
	tmp := append([]literal(nil), lits...)
	c, ok := newClause(s, tmp, true)
	if !ok {
		s.ok = false
		return false
	}
	if c == nil {
		return true
	}
	c.lbd = uint32(s.computeLBD(c.literals))
	s.learnts = append(s.learnts, c)
	s.heuristic.NewConstraint(c.literals, heuristic.TypeLoopNogood)
	return s.enqueue(c.literals[0], antecedent{clause: c})
}

// maybeReduce triggers ReduceDB once the learnt count passes
// nextReduceBound, matching the teacher's reduction cadence but driven by
// internal/reduce's growth schedule (spec §4.G).
func (s *Solver) maybeReduce() {
	if float64(len(s.learnts)) < s.nextReduceBound {
		return
	}
	s.reduceDB()
	s.nextReduceBound = s.reduceGrowth.Next(int(s.nextReduceBound))
}

// reduceDB removes the lowest-scoring, unlocked, non-protected half (per
// reducePolicy) of the learnt database (spec §4.G: "ReduceDB removes a
// fraction of learnt clauses").
func (s *Solver) reduceDB() {
	scores := make([]reduce.Score, len(s.learnts))
	for i, c := range s.learnts {
		scores[i] = reduce.Score{
			Index:    i,
			Activity: c.Activity(),
			LBD:      c.LBD(),
			Locked:   c.locked(s),
		}
		if c.isProtected() {
			scores[i].Locked = true
		}
	}

	victims := s.reducePolicy.Victims(scores)
	if len(victims) == 0 {
		return
	}
	drop := make([]bool, len(s.learnts))
	for _, i := range victims {
		drop[i] = true
	}

	k := 0
	for i, c := range s.learnts {
		if drop[i] {
			c.Delete(s)
			continue
		}
		c.setProtected(false)
		s.learnts[k] = c
		k++
	}
	s.learnts = s.learnts[:k]
	s.logf(report.Normal, report.SubsystemReduce, "reduceDB: dropped %d, kept %d", len(victims), k)
}
