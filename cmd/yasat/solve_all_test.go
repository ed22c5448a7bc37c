package main

import (
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cnf-solvers/yasat/internal/dimacs"
	"github.com/cnf-solvers/yasat/internal/sat"
	"github.com/cnf-solvers/yasat/parsers"
)

// This test suite evaluates the solver's correctness by checking that it
// finds the exact set of models for every instance in testdataDir, against
// models precomputed by hand from the instances' own propagation chains
// (see SPEC_FULL.md's concrete end-to-end scenarios).

var testdataDir = "testdata"

type testCase struct {
	instanceName string
	instanceFile string
	modelsFile   string
}

// listTestCases returns the list of test cases contained in the file tree
// rooted in the given directory.
func listTestCases(dir string) ([]testCase, error) {
	testCases := []testCase{}
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, ".cnf") {
			return nil // not an instance file
		}
		testCases = append(testCases, testCase{
			instanceName: d.Name(),
			instanceFile: path,
			modelsFile:   path + ".models",
		})
		return nil
	})

	return testCases, err
}

// toString returns a binary string representation of the given model. For
// example, model [true, false, false] results in string "100".
func toString(model []bool) string {
	s := make([]byte, 0, len(model))
	for _, b := range model {
		if b {
			s = append(s, '1')
		} else {
			s = append(s, '0')
		}
	}
	return string(s)
}

// toSet converts a slice of models into a set of models represented as
// binary strings (see toString).
func toSet(ms [][]bool) map[string]struct{} {
	set := map[string]struct{}{}
	for _, m := range ms {
		set[toString(m)] = struct{}{}
	}
	return set
}

// solveAll returns an unordered list of all the instance's models, blocking
// each model found with a clause that forbids it and re-solving.
func solveAll(s *sat.Solver) [][]bool {
	for s.Solve() == sat.True {
		model := s.Models[len(s.Models)-1]
		modelClause := make([]sat.Literal, s.NumVariables())
		for i, b := range model {
			if b { // literals are flipped to forbid this exact assignment
				modelClause[i] = sat.NegativeLiteral(i)
			} else {
				modelClause[i] = sat.PositiveLiteral(i)
			}
		}
		s.AddClause(modelClause)
	}
	return s.Models
}

// TestSolveAll verifies that the solver finds all the models of every
// instance under testdataDir, run in parallel.
func TestSolveAll(t *testing.T) {
	testCases, err := listTestCases(testdataDir)
	if err != nil {
		t.Fatalf("Error parsing test cases: %s", err)
	}

	for i := 0; i < len(testCases); i++ {
		tc := testCases[i]
		t.Run(tc.instanceName, func(t *testing.T) {
			t.Parallel()

			want, err := parsers.ReadModels(tc.modelsFile)
			if err != nil {
				t.Errorf("Model parsing error: %s", err)
			}

			s := sat.NewDefaultSolver()
			if err := dimacs.LoadDIMACS(tc.instanceFile, false, s); err != nil {
				t.Errorf("Instance parsing error: %s", err)
			}

			got := solveAll(s)

			for _, m := range got {
				if !s.Verify(m) {
					t.Errorf("model %v does not satisfy %s", m, tc.instanceName)
				}
			}

			if len(got) != len(want) {
				t.Errorf("Incorrect number of models: got %d, want %d", len(got), len(want))
			}
			if !cmp.Equal(toSet(got), toSet(want)) {
				t.Errorf("Model mismatch")
			}
		})
	}
}
