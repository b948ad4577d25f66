// Package restart implements the restart schedules of spec component H:
// geometric, Luby, and dynamic-LBD restarts. Geometric/Luby are grounded on
// the teacher's own conflict-count growth loop (internal/sat/solver.go's
// Solve: "numConflicts += numConflicts / 10"); dynamic-LBD is grounded on
// DoOR-Team-gophersat's lbdStats together with the teacher's sat/avg.go EMA
// type.
package restart

import "github.com/cdclgo/claspgo/internal/reduce"

// Scheduler decides when the search loop should restart (spec §4.H).
type Scheduler interface {
	// OnConflict is called once per conflict with the LBD of the clause
	// just learnt and the current trail length. It returns true if the
	// search should restart now.
	OnConflict(lbd int, trailLen int) bool
	// OnRestart resets any per-run counters after a restart actually
	// happens.
	OnRestart()
}

// Geometric restarts every limit conflicts, growing limit by factor after
// each restart (the teacher's own default schedule).
type Geometric struct {
	Base   int
	Factor float64

	limit     int
	conflicts int
}

func NewGeometric(base int, factor float64) *Geometric {
	return &Geometric{Base: base, Factor: factor, limit: base}
}

func (g *Geometric) OnConflict(lbd, trailLen int) bool {
	g.conflicts++
	return g.conflicts >= g.limit
}

func (g *Geometric) OnRestart() {
	g.conflicts = 0
	g.limit = int(float64(g.limit) * g.Factor)
	if g.limit < g.Base {
		g.limit = g.Base
	}
}

// Luby restarts following the Luby sequence scaled by unit conflicts,
// the schedule shown to be optimal (up to a constant factor) for randomized
// restart strategies.
type Luby struct {
	Unit int

	n         int
	conflicts int
}

func NewLuby(unit int) *Luby {
	return &Luby{Unit: unit, n: 1}
}

func (l *Luby) OnConflict(lbd, trailLen int) bool {
	l.conflicts++
	return l.conflicts >= l.Unit*reduce.Luby(2, l.n)
}

func (l *Luby) OnRestart() {
	l.conflicts = 0
	l.n++
}

// DynamicLBD restarts based on two exponential moving averages of learnt-
// clause LBD (fast/slow), firing when the fast average spikes above the
// slow one by a factor k once enough conflicts have been observed since the
// last restart (spec §4.H: "restart when fast > k*slow and fast window is
// full").
type DynamicLBD struct {
	K          float64
	MinConflicts int // minimum conflicts since last restart before firing

	fast, slow ema
	conflicts  int
}

func NewDynamicLBD(k float64, fastDecay, slowDecay float64, minConflicts int) *DynamicLBD {
	return &DynamicLBD{
		K:            k,
		MinConflicts: minConflicts,
		fast:         ema{decay: fastDecay},
		slow:         ema{decay: slowDecay},
	}
}

func (d *DynamicLBD) OnConflict(lbd, trailLen int) bool {
	d.conflicts++
	d.fast.add(float64(lbd))
	d.slow.add(float64(lbd))
	return d.conflicts >= d.MinConflicts && d.fast.value > d.K*d.slow.value
}

func (d *DynamicLBD) OnRestart() {
	d.conflicts = 0
	d.fast = ema{decay: d.fast.decay}
}

// ema is the teacher's sat/avg.go exponential moving average, reused here
// (not exported: DynamicLBD's two averages are an implementation detail of
// the schedule, not a public type).
type ema struct {
	decay float64
	value float64
	init  bool
}

func (e *ema) add(x float64) {
	if !e.init {
		e.init = true
		e.value = x
		return
	}
	e.value = e.decay*e.value + x*(1-e.decay)
}
