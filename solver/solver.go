package solver

import (
	"github.com/cdclgo/claspgo/internal/heuristic"
	"github.com/cdclgo/claspgo/internal/propapi"
	"github.com/cdclgo/claspgo/internal/reduce"
	"github.com/cdclgo/claspgo/internal/report"
	"github.com/cdclgo/claspgo/internal/restart"
)

// antecedent records why a literal was forced onto the trail: either a
// Clause (the common case), an external reason registered by a
// post-propagator (spec §6, ExternalReasonProvider), or neither (a decision,
// or a literal with no antecedent at all — spec §3's "no-antecedent flag").
type antecedent struct {
	clause   *Clause
	external bool
	extID    int
}

// watcher is one entry of a per-literal watch list: the watched clause plus
// a blocker literal that, if already true, lets propagateUnits skip
// dereferencing the clause at all (teacher's internal/sat/solver.go
// watch-list optimization).
type watcher struct {
	clause  *Clause
	blocker literal
}

// Solver is the CDCL engine: trail, watch lists, learnt-clause database,
// pluggable decision heuristic and restart schedule, plus the ordered
// post-propagator chain ASP extensions (internal/ufs, internal/minimize)
// attach to. Grounded on the teacher's internal/sat/solver.go, generalized
// per spec §4.D/E/H.
type Solver struct {
	opts Options
	ctx  *SharedContext

	assigns []lbool
	level   []int
	reason  []antecedent

	trail    []literal
	trailLim []int
	qHead    int

	watchers [][]watcher

	constraints []*Clause
	learnts     []*Clause

	clauseInc   float64
	clauseDecay float64

	heuristic heuristic.Heuristic
	restart   restart.Scheduler
	reducePolicy reduce.Policy
	reduceGrowth reduce.Growth
	nextReduceBound float64

	postProps []PostPropagator

	logger report.Logger

	extProviders []propapi.ExternalReasonProvider

	analyzeSeen resetSet
	tmpLits     []literal

	ok bool

	pendingConflict *Clause

	core []literal

	model []lbool

	numConflicts     int
	numDecisions     int
	numRestarts      int
	numPropagations  int
	conflictsSinceReduce int
}

func newSolver(opts Options, ctx *SharedContext) *Solver {
	s := &Solver{
		opts:        opts,
		ctx:         ctx,
		clauseInc:   1,
		clauseDecay: opts.ClauseDecay,
		ok:          true,
		reducePolicy: reduce.Policy{
			Fraction:   opts.ReduceFraction,
			Metric:     reduce.Metric(opts.ReduceMetric),
			ProtectLBD: opts.ReduceProtectLBD,
		},
		reduceGrowth: reduce.Growth{
			Base:     float64(opts.ReduceGrowBase),
			Grow:     opts.ReduceGrowFactor,
			Max:      1e9,
			Schedule: reduce.GrowGeometric,
		},
	}
	s.heuristic = newHeuristicFromOptions(opts)
	s.restart = newRestartFromOptions(opts)
	s.nextReduceBound = s.reduceGrowth.Next(0)
	return s
}

func newHeuristicFromOptions(opts Options) heuristic.Heuristic {
	switch opts.Heuristic {
	case HeuristicVMTF:
		return heuristic.NewVMTF(16)
	case HeuristicBerkmin:
		return heuristic.NewBerkmin(8, opts.PhaseSaving)
	case HeuristicDomain:
		return heuristic.NewDomain(opts.VarDecay, opts.PhaseSaving)
	case HeuristicLookahead:
		return heuristic.NewLookahead(nil, heuristic.NewVSIDS(opts.VarDecay, opts.PhaseSaving))
	default:
		return heuristic.NewVSIDS(opts.VarDecay, opts.PhaseSaving)
	}
}

func newRestartFromOptions(opts Options) restart.Scheduler {
	switch opts.Restart {
	case RestartLuby:
		return restart.NewLuby(opts.RestartLubyUnit)
	case RestartDynamicLBD:
		return restart.NewDynamicLBD(opts.LBDFactor, opts.LBDFastDecay, opts.LBDSlowDecay, opts.LBDMinConflicts)
	case RestartNone:
		return nil
	default:
		return restart.NewGeometric(opts.RestartBase, opts.RestartFactor)
	}
}

func (s *Solver) addVariable() {
	s.assigns = append(s.assigns, free)
	s.level = append(s.level, -1)
	s.reason = append(s.reason, antecedent{})
	s.watchers = append(s.watchers, nil, nil) // literal 2v and 2v+1
	s.analyzeSeen.Expand()
	s.heuristic.AddVar()
}

// NumVars returns the number of declared variables (propapi.Host).
func (s *Solver) NumVars() int { return len(s.assigns) }

// Stats is a snapshot of search counters for reporting (spec §6, "Event
// reporting"), matching the teacher's main.go TotalConflicts field.
type Stats struct {
	Conflicts     int
	Decisions     int
	Restarts      int
	Propagations  int
}

// Stats returns the solver's running counters.
func (s *Solver) Stats() Stats {
	return Stats{
		Conflicts:    s.numConflicts,
		Decisions:    s.numDecisions,
		Restarts:     s.numRestarts,
		Propagations: s.numPropagations,
	}
}

// LitValue returns l's current truth value (propapi.Host).
func (s *Solver) LitValue(l literal) lbool {
	v := s.assigns[l.VarID()]
	if v == free {
		return free
	}
	if l.IsPositive() {
		return v
	}
	return v.Opposite()
}

// VarValue returns v's current truth value (heuristic.Env).
func (s *Solver) VarValue(v variable) lbool { return s.assigns[v] }

// VarLevel returns the decision level v was assigned at, or -1 if
// unassigned (propapi.Host).
func (s *Solver) VarLevel(v variable) int { return s.level[v] }

// DecisionLevel returns the current decision level (propapi.Host,
// heuristic use via LevelScoped callers).
func (s *Solver) DecisionLevel() int { return len(s.trailLim) }

// Trail returns the current assignment trail (propapi.Host).
func (s *Solver) Trail() []literal { return s.trail }

// TrailStart returns the trail index at which decision level d began
// (propapi.Host).
func (s *Solver) TrailStart(d int) int {
	if d == 0 {
		return 0
	}
	return s.trailLim[d-1]
}

// RegisterExternalReason registers p and returns its id for use in
// Enqueue (propapi.Host).
func (s *Solver) RegisterExternalReason(p propapi.ExternalReasonProvider) int {
	s.extProviders = append(s.extProviders, p)
	return len(s.extProviders) - 1
}

// Enqueue lets a post-propagator assert l with an external reason
// (propapi.Host).
func (s *Solver) Enqueue(l literal, id int) bool {
	return s.enqueue(l, antecedent{external: true, extID: id})
}

// enqueue assigns l true with the given antecedent, failing (returning
// false) if l is already false.
func (s *Solver) enqueue(l literal, ant antecedent) bool {
	switch s.LitValue(l) {
	case true_:
		return true
	case false_:
		return false
	}
	v := l.VarID()
	if l.IsPositive() {
		s.assigns[v] = true_
	} else {
		s.assigns[v] = false_
	}
	s.level[v] = s.DecisionLevel()
	s.reason[v] = ant
	s.trail = append(s.trail, l)
	return true
}

// Watch registers c on watchLit's watch list with blocker as the
// quick-satisfiability hint.
func (s *Solver) Watch(c *Clause, watchLit literal, blocker literal) {
	s.watchers[watchLit] = append(s.watchers[watchLit], watcher{clause: c, blocker: blocker})
}

// Unwatch removes c from watchLit's watch list.
func (s *Solver) Unwatch(c *Clause, watchLit literal) {
	ws := s.watchers[watchLit]
	for i, w := range ws {
		if w.clause == c {
			ws[i] = ws[len(ws)-1]
			s.watchers[watchLit] = ws[:len(ws)-1]
			return
		}
	}
}

// AddClause adds a problem clause, returning false if the context is now
// permanently UNSAT (spec §6, addClause).
func (s *Solver) AddClause(lits []Literal) (bool, error) {
	if !s.ok {
		return false, nil
	}
	// newClause simplifies problem clauses against the root-level
	// assignment, so drop any search state (e.g. a model just found) first.
	s.cancelUntil(0)
	tmp := append([]literal(nil), lits...)
	c, ok := newClause(s, tmp, false)
	if !ok {
		s.ok = false
		return false, nil
	}
	if c != nil {
		s.constraints = append(s.constraints, c)
	}
	return true, nil
}

// Simplify removes satisfied clauses and root-falsified literals once the
// solver is at decision level 0 (spec §4.B, part of EndInit).
func (s *Solver) Simplify() bool {
	if !s.ok || s.DecisionLevel() > 0 {
		return s.ok
	}
	s.constraints = simplifyInPlace(s, s.constraints)
	s.learnts = simplifyInPlace(s, s.learnts)
	return s.ok
}

func simplifyInPlace(s *Solver, cs []*Clause) []*Clause {
	k := 0
	for _, c := range cs {
		if c.Simplify(s) {
			c.Delete(s)
			continue
		}
		cs[k] = c
		k++
	}
	return cs[:k]
}

// bumpClauseActivity bumps c's activity and rescales the whole learnt
// database if it overflows (spec §4.E, mirrors bumpVarActivity below).
func (s *Solver) bumpClauseActivity(c *Clause) {
	c.activity += s.clauseInc
	if c.activity > 1e100 {
		for _, l := range s.learnts {
			l.activity *= 1e-100
		}
		s.clauseInc *= 1e-100
	}
}

func (s *Solver) decayClauseActivity() {
	s.clauseInc /= s.clauseDecay
}

// assume pushes a new decision level and enqueues l as a decision literal.
func (s *Solver) assume(l literal) bool {
	s.trailLim = append(s.trailLim, len(s.trail))
	if ls, ok := s.heuristic.(heuristic.LevelScoped); ok {
		ls.PushLevel()
	}
	return s.enqueue(l, antecedent{})
}

// cancelUntil undoes all assignments made at decision levels above level.
func (s *Solver) cancelUntil(level int) {
	if s.DecisionLevel() <= level {
		return
	}
	start := s.trailLim[level]
	for i := len(s.trail) - 1; i >= start; i-- {
		l := s.trail[i]
		v := l.VarID()
		undone := s.assigns[v]
		s.assigns[v] = free
		s.level[v] = -1
		s.heuristic.UndoLevel(v, undone)
	}
	if ls, ok := s.heuristic.(heuristic.LevelScoped); ok {
		ls.PopToLevel(level)
	}
	s.trail = s.trail[:start]
	s.trailLim = s.trailLim[:level]
	if s.qHead > len(s.trail) {
		s.qHead = len(s.trail)
	}

	// The trail just shrank out from under every post-propagator's cached
	// scan position (e.g. internal/ufs and internal/minimize's trailPos):
	// let each resync before it is asked to propagate again.
	for _, p := range s.postProps {
		p.Reset(s)
	}
}

// SetLogger attaches a report.Logger the search loop reports progress
// through (spec §6). A nil logger (the default) disables reporting
// entirely.
func (s *Solver) SetLogger(l report.Logger) { s.logger = l }

func (s *Solver) logf(level report.Verbosity, sub report.Subsystem, format string, args ...any) {
	if s.logger != nil {
		s.logger.Logf(level, sub, format, args...)
	}
}

// Model returns the last saved satisfying assignment, valid only after
// Solve has returned SAT (spec §4.K, Enumerator.currentModel).
func (s *Solver) Model() []lbool { return s.model }

func (s *Solver) saveModel() {
	s.model = append(s.model[:0], s.assigns...)
}

// Core returns the subset of the assumptions passed to the most recent
// Solve call that were actually implicated in the UNSAT result (spec §6
// "getCore() -> literals", §4.L). It is only meaningful immediately after
// Solve returns Unsatisfiable with a non-empty assumptions slice; it is nil
// after a Satisfiable result or an assumption-free UNSAT.
func (s *Solver) Core() []Literal { return append([]Literal(nil), s.core...) }
