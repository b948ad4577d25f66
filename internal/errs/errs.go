// Package errs collects the sentinel errors shared across claspgo's
// packages, following the teacher's plain errors.New/fmt.Errorf style
// (internal/sat and internal/dimacs never introduce a custom error type,
// so neither does this package) rather than reaching for a third-party
// errors library the example pack never uses for this concern.
package errs

import "errors"

var (
	// ErrUnsat is returned by operations that discover the problem is
	// unsatisfiable and cannot be recovered from without backtracking
	// structural changes (spec §4.B, "the context becomes permanently
	// UNSAT").
	ErrUnsat = errors.New("claspgo: problem is unsatisfiable")

	// ErrFrozen names a structural change attempted on a context that has
	// already called EndInit without a matching Unfreeze (spec §4.B). No
	// function of this module returns it: SharedContext accepts such
	// changes.
	ErrFrozen = errors.New("claspgo: context is initialized; call Unfreeze before structural changes")

	// ErrNoModel names a model read before a Satisfiable result (spec
	// §4.K). No function of this module returns it: Solver.Model and
	// Facade.Model return nil instead.
	ErrNoModel = errors.New("claspgo: no model available")

	// ErrAlreadySolving is returned when Solve is called re-entrantly on a
	// facade that is already mid-search (spec §4.L).
	ErrAlreadySolving = errors.New("claspgo: solve already in progress")

	// ErrUnknownAtom names a failed symbol-table lookup. No function of
	// this module returns it: SharedContext.Symbol reports a miss through
	// its bool result.
	ErrUnknownAtom = errors.New("claspgo: unknown atom")

	// ErrMalformedInput is returned by the aspif/smodels/DIMACS readers on
	// a syntactically invalid input line.
	ErrMalformedInput = errors.New("claspgo: malformed input")
)
