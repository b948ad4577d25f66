// Package config collects the tunables that used to be scattered across the
// teacher's internal/sat.Options into one struct-of-tunables, following the
// teacher's own DefaultOptions idiom (internal/sat/solver.go). There is no
// flag/viper parsing here: cmd/claspgo owns translating CLI flags into an
// Options value, keeping the core solver free of any parsing dependency.
package config

import "time"

// HeuristicKind selects one of the decision heuristics implemented in
// internal/heuristic (spec §4.F).
type HeuristicKind int

const (
	HeuristicVSIDS HeuristicKind = iota
	HeuristicVMTF
	HeuristicBerkmin
	HeuristicDomain
	HeuristicLookahead
)

// RestartKind selects one of the restart schedules implemented in
// internal/restart (spec §4.H).
type RestartKind int

const (
	RestartGeometric RestartKind = iota
	RestartLuby
	RestartDynamicLBD
	RestartNone
)

// ReduceMetric mirrors internal/reduce.Metric, duplicated here rather than
// imported so that internal/config stays a leaf package with no dependency
// on the solver's internal packages (it is imported by solver, which
// re-exports Options to its callers).
type ReduceMetric int

const (
	ReduceByActivity ReduceMetric = iota
	ReduceByLBD
	ReduceMixed
)

// EnumerationKind selects one of the enumerator variants of internal/enumerate
// (spec §4.K).
type EnumerationKind int

const (
	EnumerateRecord EnumerationKind = iota
	EnumerateBacktrack
	EnumerateConsequencesBrave
	EnumerateConsequencesCautious
	EnumerateNone
)

// UnfoundedReasonStrategy selects one of the five unfounded-set reason
// strategies of internal/ufs (spec §4.I).
type UnfoundedReasonStrategy int

const (
	ReasonCommon UnfoundedReasonStrategy = iota
	ReasonDistinct
	ReasonShared
	ReasonOnly
	ReasonNo
)

// Options is the single struct-of-tunables threaded through SharedContext,
// Solver, and the ASP extension packages. Grounded on the teacher's
// internal/sat.Options / DefaultOptions.
type Options struct {
	Heuristic       HeuristicKind
	VarDecay        float64
	PhaseSaving     bool
	LookaheadEvery  int // number of decisions between lookahead probes, 0 = every decision

	Restart         RestartKind
	RestartBase     int
	RestartFactor   float64
	RestartLubyUnit int
	LBDFastDecay    float64
	LBDSlowDecay    float64
	LBDMinConflicts int
	LBDFactor       float64

	ReduceFraction   float64
	ReduceMetric     ReduceMetric
	ReduceProtectLBD int
	ReduceGrowBase   float64
	ReduceGrowFactor float64

	ClauseDecay float64

	Enumeration     EnumerationKind
	ModelLimit      int // 0 = unbounded
	UnfoundedReason UnfoundedReasonStrategy

	KeepFacts bool // lparse "--keep-facts" semantics (DESIGN.md Open Questions)

	Timeout time.Duration // 0 = unbounded
}

// DefaultOptions mirrors the teacher's internal/sat.DefaultOptions: sane
// defaults for a VSIDS/dynamic-LBD-restart/mixed-LBD-activity-reduction
// configuration.
var DefaultOptions = Options{
	Heuristic:   HeuristicVSIDS,
	VarDecay:    0.95,
	PhaseSaving: true,

	Restart:         RestartDynamicLBD,
	RestartBase:     100,
	RestartFactor:   1.5,
	RestartLubyUnit: 32,
	LBDFastDecay:    1.0 / 32,
	LBDSlowDecay:    1.0 / 4096,
	LBDMinConflicts: 10000,
	LBDFactor:       0.8,

	ReduceFraction:   0.5,
	ReduceMetric:     ReduceMixed,
	ReduceProtectLBD: 3,
	ReduceGrowBase:   4000,
	ReduceGrowFactor: 1.1,

	ClauseDecay: 0.999,

	Enumeration: EnumerateRecord,
	ModelLimit:  1,
}
