// Command claspgo is the CLI entry point, extended from the teacher's
// main.go: the same flag-based config struct, cpuprof/memprof via
// runtime/pprof, and "c "-prefixed output (spec §6, "External Interfaces"),
// now additionally accepting aspif/smodels ASP input and driving the
// search through the facade package's incremental lifecycle instead of a
// single non-incremental Solve() call.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/cdclgo/claspgo/facade"
	"github.com/cdclgo/claspgo/internal/aspif"
	"github.com/cdclgo/claspgo/internal/enumerate"
	"github.com/cdclgo/claspgo/internal/report"
	"github.com/cdclgo/claspgo/internal/smodels"
	"github.com/cdclgo/claspgo/parsers"
	"github.com/cdclgo/claspgo/solver"
)

var flagCPUProfile = flag.Bool(
	"cpuprof",
	false,
	"save pprof CPU profile in cpuprof",
)

var flagMemProfile = flag.Bool(
	"memprof",
	false,
	"save pprof memory profile in memprof",
)

var flagFormat = flag.String(
	"format",
	"auto",
	"input format: auto, cnf, aspif, or smodels",
)

var flagModels = flag.Int(
	"n",
	1,
	"number of models to enumerate (0 means all)",
)

var flagVerbose = flag.Bool(
	"v",
	false,
	"print per-restart search progress",
)

type config struct {
	instanceFile string
	format       string
	models       int
	verbose      bool
	memProfile   bool
	cpuProfile   bool
}

func parseConfig() (*config, error) {
	flag.Parse()

	if flag.NArg() == 0 || flag.Arg(0) == "" {
		return nil, fmt.Errorf("missing instance file")
	}
	return &config{
		instanceFile: flag.Arg(0),
		format:       *flagFormat,
		models:       *flagModels,
		verbose:      *flagVerbose,
		memProfile:   *flagMemProfile,
		cpuProfile:   *flagCPUProfile,
	}, nil
}

// detectFormat guesses the input format from the file extension, matching
// clingo/clasp's own "peek at the first non-comment character" convention
// closely enough for a CLI: .lp/.aspif -> aspif, .smodels -> smodels,
// everything else -> cnf.
func detectFormat(cfg *config) string {
	if cfg.format != "auto" {
		return cfg.format
	}
	switch strings.ToLower(filepath.Ext(cfg.instanceFile)) {
	case ".aspif", ".lp":
		return "aspif"
	case ".smodels":
		return "smodels"
	default:
		return "cnf"
	}
}

func run(cfg *config) error {
	level := report.Normal
	if cfg.verbose {
		level = report.Verbose
	}
	logger := report.NewStdLogger(level)

	f := facade.New(solver.DefaultOptions)
	f.SetLogger(logger)
	ctx := f.Context()

	format := detectFormat(cfg)
	switch format {
	case "cnf":
		if err := parsers.LoadDIMACS(cfg.instanceFile, strings.HasSuffix(cfg.instanceFile, ".gz"), ctx); err != nil {
			return fmt.Errorf("could not parse instance: %s", err)
		}
	case "aspif":
		file, err := os.Open(cfg.instanceFile)
		if err != nil {
			return fmt.Errorf("could not open instance: %s", err)
		}
		defer file.Close()
		if _, err := aspif.Read(file, ctx); err != nil {
			return fmt.Errorf("could not parse instance: %s", err)
		}
	case "smodels":
		file, err := os.Open(cfg.instanceFile)
		if err != nil {
			return fmt.Errorf("could not open instance: %s", err)
		}
		defer file.Close()
		if _, err := smodels.Read(file, ctx); err != nil {
			return fmt.Errorf("could not parse instance: %s", err)
		}
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	fmt.Printf("c variables:  %d\n", ctx.NumVars())

	if err := ctx.EndInit(); err != nil {
		return fmt.Errorf("could not finalize instance: %s", err)
	}

	t := time.Now()
	found := 0
	status := solver.Unsatisfiable
	_, err := f.Enumerate(&enumerate.RecordEnumerator{}, nil, cfg.models, func(m enumerate.Model) bool {
		found++
		status = solver.Satisfiable
		fmt.Printf("c model %d:\n", m.Num)
		printModel(ctx)
		return true
	})
	elapsed := time.Since(t)
	if err != nil {
		return fmt.Errorf("solve failed: %s", err)
	}
	if found == 0 {
		status = solver.Unsatisfiable
	}

	stats := ctx.Solver().Stats()
	fmt.Printf("c time (sec): %f\n", elapsed.Seconds())
	fmt.Printf("c models:     %d\n", found)
	fmt.Printf("c conflicts:  %d (%.2f /sec)\n", stats.Conflicts, float64(stats.Conflicts)/elapsed.Seconds())
	fmt.Printf("c decisions:  %d\n", stats.Decisions)
	fmt.Printf("c restarts:   %d\n", stats.Restarts)
	fmt.Printf("c status:     %s\n", status.String())

	return nil
}

func printModel(ctx *solver.SharedContext) {
	model := ctx.Solver().Model()
	fmt.Print("v")
	for v := 0; v < ctx.NumVars(); v++ {
		if model[v] == solver.True {
			fmt.Printf(" %d", v+1)
		} else {
			fmt.Printf(" -%d", v+1)
		}
	}
	fmt.Println(" 0")
}

func main() {
	cfg, err := parseConfig()
	if err != nil {
		log.Fatal(err)
	}

	if cfg.cpuProfile {
		file, err := os.Create("cpuprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(file)
		defer pprof.StopCPUProfile()
	}

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}

	if cfg.memProfile {
		file, err := os.Create("memprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.WriteHeapProfile(file)
		file.Close()
		return
	}
}
