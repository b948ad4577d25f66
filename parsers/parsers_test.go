package parsers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cdclgo/claspgo/solver"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%q): %s", path, err)
	}
	return path
}

// TestLoadDIMACS checks that a small CNF file is loaded into a
// SharedContext with the right variable count and clauses.
func TestLoadDIMACS(t *testing.T) {
	const cnf = "c a tiny unit-propagation instance\n" +
		"p cnf 2 3\n" +
		"1 2 0\n" +
		"-1 2 0\n" +
		"1 -2 0\n"
	path := writeTempFile(t, "instance.cnf", cnf)

	ctx := solver.NewSharedContext(solver.DefaultOptions)
	if err := LoadDIMACS(path, false, ctx); err != nil {
		t.Fatalf("LoadDIMACS(): %s", err)
	}
	if got := ctx.NumVars(); got != 2 {
		t.Fatalf("NumVars(): got %d, want 2", got)
	}
	if err := ctx.EndInit(); err != nil {
		t.Fatalf("EndInit(): %s", err)
	}

	result, err := ctx.Solver().Solve(nil)
	if err != nil {
		t.Fatalf("Solve(): %s", err)
	}
	if result != solver.Satisfiable {
		t.Fatalf("Solve(): got %s, want %s", result, solver.Satisfiable)
	}
	model := ctx.Solver().Model()
	if model[0] != solver.True || model[1] != solver.True {
		t.Errorf("model: got x1=%s x2=%s, want both true", model[0], model[1])
	}
}

// TestLoadDIMACS_notCNF checks that a non-"cnf" problem line is rejected.
func TestLoadDIMACS_notCNF(t *testing.T) {
	path := writeTempFile(t, "instance.cnf", "p wcnf 1 1\n1 0\n")

	ctx := solver.NewSharedContext(solver.DefaultOptions)
	if err := LoadDIMACS(path, false, ctx); err == nil {
		t.Errorf("LoadDIMACS(): want error for a non-cnf problem line, got nil")
	}
}

// TestReadModels checks that a DIMACS-style model file (one clause line per
// model, literals as ±variable indices) parses into the expected []bool
// rows.
func TestReadModels(t *testing.T) {
	path := writeTempFile(t, "instance.cnf.models", "1 2 0\n-1 2 0\n")

	models, err := ReadModels(path)
	if err != nil {
		t.Fatalf("ReadModels(): %s", err)
	}
	want := [][]bool{{true, true}, {false, true}}
	if len(models) != len(want) {
		t.Fatalf("ReadModels(): got %d models, want %d", len(models), len(want))
	}
	for i := range want {
		for j := range want[i] {
			if models[i][j] != want[i][j] {
				t.Errorf("model %d literal %d: got %v, want %v", i, j, models[i][j], want[i][j])
			}
		}
	}
}
