package solver

// PostPropagator is the hook ASP extensions (internal/ufs's unfounded-set
// checker, internal/minimize's bound tightening) attach to the solver
// through, running after unit propagation reaches a fixpoint but before a
// new decision is made (spec §4.D: "an ordered chain of post-propagators,
// each assigned a priority"). Grounded on
// original_source/libclasp/clasp/solver_types.h's PostPropagator and the
// teacher's absence of one (a plain SAT solver has no such hook; this is
// the ASP-specific generalization spec.md §4.D calls for).
type PostPropagator interface {
	// Priority orders the chain: lower values run first. Component I
	// (unfounded-set checking) and component J (minimize constraints) use
	// distinct, well-separated priorities (spec §4.D, §4.I, §4.J).
	Priority() int

	// Propagate runs the post-propagator's own fixpoint check against the
	// current trail. It returns true if nothing new was derived or
	// everything derived was consistent; false on conflict.
	Propagate(s *Solver) bool

	// Reset is called once the solver backtracks below the level this
	// post-propagator last ran at, letting it discard cached state.
	Reset(s *Solver)
}

// AddPostPropagator inserts p into the post-propagator chain, keeping it
// sorted by ascending Priority (spec §4.D).
func (s *Solver) AddPostPropagator(p PostPropagator) {
	i := 0
	for i < len(s.postProps) && s.postProps[i].Priority() <= p.Priority() {
		i++
	}
	s.postProps = append(s.postProps, nil)
	copy(s.postProps[i+1:], s.postProps[i:])
	s.postProps[i] = p
}
