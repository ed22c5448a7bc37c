package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/cnf-solvers/yasat/internal/dimacs"
	"github.com/cnf-solvers/yasat/internal/sat"
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

var flagTimeout = flag.Duration(
	"timeout",
	0,
	"abort the search after this much time has elapsed (0 disables the limit)",
)

var flagMaxConflicts = flag.Int64(
	"max-conflicts",
	-1,
	"abort the search after this many conflicts (negative disables the limit)",
)

func parseConfig() (*config, error) {
	flag.Parse()

	if flag.NArg() == 0 || flag.Arg(0) == "" {
		return nil, fmt.Errorf("missing instance file")
	}
	return &config{
		instanceFile: flag.Arg(0),
		memProfile:   *flagMemProfile,
		cpuProfile:   *flagCPUProfile,
		timeout:      *flagTimeout,
		maxConflicts: *flagMaxConflicts,
	}, nil
}

type config struct {
	instanceFile string
	memProfile   bool
	cpuProfile   bool
	timeout      time.Duration
	maxConflicts int64
}

func run(cfg *config) error {
	ctx := context.Background()
	if cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}

	s := sat.NewSolver(sat.Options{
		MaxConflicts: cfg.maxConflicts,
		Timeout:      -1,
		Context:      ctx,
	})

	gzipped := strings.HasSuffix(cfg.instanceFile, ".gz")
	if err := dimacs.LoadDIMACS(cfg.instanceFile, gzipped, s); err != nil {
		return fmt.Errorf("could not parse instance: %w", err)
	}

	fmt.Printf("c variables:  %d\n", s.NumVariables())
	fmt.Printf("c clauses:    %d\n", s.NumConstraints())

	t := time.Now()
	status := s.Solve()
	elapsed := time.Since(t)

	fmt.Printf("c time (sec): %f\n", elapsed.Seconds())
	fmt.Printf("c conflicts:  %d (%.2f /sec)\n", s.TotalConflicts, float64(s.TotalConflicts)/elapsed.Seconds())

	switch status {
	case sat.True:
		model := s.Models[len(s.Models)-1]
		if !s.Verify(model) {
			panic("sat: solver returned a model that does not satisfy the input formula")
		}
		fmt.Println("s SATISFIABLE")
		printModel(model)
	case sat.False:
		fmt.Println("s UNSATISFIABLE")
	default:
		fmt.Println("s UNKNOWN")
	}

	return nil
}

func printModel(model []bool) {
	var sb strings.Builder
	sb.WriteString("v")
	for i, v := range model {
		if v {
			fmt.Fprintf(&sb, " %d", i+1)
		} else {
			fmt.Fprintf(&sb, " -%d", i+1)
		}
	}
	sb.WriteString(" 0")
	fmt.Println(sb.String())
}

func main() {
	cfg, err := parseConfig()
	if err != nil {
		log.Fatal(err)
	}

	if cfg.cpuProfile {
		f, err := os.Create("cpuprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}

	if cfg.memProfile {
		f, err := os.Create("memprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.WriteHeapProfile(f)
		f.Close()
		return
	}
}
