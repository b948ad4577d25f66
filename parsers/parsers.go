// Package parsers adapts the teacher's parsers/parsers.go (a thin wrapper
// around github.com/rhartert/dimacs) to build a solver.SharedContext
// instead of the teacher's sat.Solver (spec §4.H "input layer", the
// plain-CNF entry point). The ASP-native aspif/smodels readers live in
// internal/aspif and internal/smodels.
package parsers

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/rhartert/dimacs"

	"github.com/cdclgo/claspgo/internal/errs"
	"github.com/cdclgo/claspgo/solver"
)

func reader(filename string, gzipped bool) (io.ReadCloser, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	rc := io.ReadCloser(file)
	if gzipped {
		rc, err = gzip.NewReader(rc)
		if err != nil {
			return nil, err
		}
	}
	return rc, nil
}

// LoadDIMACS parses the DIMACS CNF file and loads its formula into ctx: a
// plain-CNF instance is an ASP program with no rules, only constraints
// (spec §6).
func LoadDIMACS(filename string, gzipped bool, ctx *solver.SharedContext) error {
	r, err := reader(filename, gzipped)
	if err != nil {
		return fmt.Errorf("error reading file %q: %s", filename, err)
	}
	defer r.Close()

	b := &builder{ctx: ctx}
	return dimacs.ReadBuilder(r, b)
}

// builder wraps a SharedContext to implement dimacs.Builder.
type builder struct {
	ctx *solver.SharedContext
}

func (b *builder) Problem(problem string, nVars int, nClauses int) error {
	if problem != "cnf" {
		return fmt.Errorf("%w: not a CNF problem", errs.ErrMalformedInput)
	}
	for i := 0; i < nVars; i++ {
		b.ctx.AddVar(solver.VarTypeAtom)
	}
	return nil
}

func (b *builder) Clause(tmpClause []int) error {
	clause := make([]solver.Literal, len(tmpClause))
	for i, l := range tmpClause {
		if l < 0 {
			clause[i] = solver.NegativeLiteral(solver.Var(-l - 1))
		} else {
			clause[i] = solver.PositiveLiteral(solver.Var(l - 1))
		}
	}
	_, err := b.ctx.AddClause(clause)
	return err
}

func (b *builder) Comment(_ string) error {
	return nil // ignore comments
}

// ReadModels returns the list of models (if any) contained in the given
// DIMACS-style model file, matching the teacher's test-fixture format.
func ReadModels(filename string) ([][]bool, error) {
	r, err := reader(filename, false)
	if err != nil {
		return nil, fmt.Errorf("error reading file %q: %s", filename, err)
	}
	defer r.Close()

	b := &modelBuilder{}
	if err := dimacs.ReadBuilder(r, b); err != nil {
		return nil, err
	}

	return b.models, nil
}

// modelBuilder implements dimacs.Builder by collecting each clause line as
// one model row.
type modelBuilder struct {
	models [][]bool
}

func (b *modelBuilder) Problem(problem string, nVars int, nClauses int) error {
	return fmt.Errorf("%w: model files should not have problem lines", errs.ErrMalformedInput)
}

func (b *modelBuilder) Comment(_ string) error {
	return nil // ignore comments
}

func (b *modelBuilder) Clause(tmpClause []int) error {
	model := make([]bool, len(tmpClause))
	for i, l := range tmpClause {
		model[i] = l > 0
	}
	b.models = append(b.models, model)
	return nil
}
