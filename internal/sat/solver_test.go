package sat

import "testing"

func TestSolve_EmptyFormula(t *testing.T) {
	s := NewDefaultSolver()
	s.AddVariable()

	if got := s.Solve(); got != True {
		t.Errorf("Solve() = %v, want True for a formula with no clauses", got)
	}
}

func TestSolve_EmptyClauseIsUnsat(t *testing.T) {
	s := NewDefaultSolver()
	s.AddVariable()

	if err := s.AddClause(nil); err != nil {
		t.Fatalf("AddClause(nil) returned error: %s", err)
	}

	if got := s.Solve(); got != False {
		t.Errorf("Solve() = %v, want False after adding the empty clause", got)
	}
}

func TestSolve_ContradictoryUnitClauses(t *testing.T) {
	s := NewDefaultSolver()
	v := s.AddVariable()

	if err := s.AddClause([]Literal{PositiveLiteral(v)}); err != nil {
		t.Fatalf("AddClause(x): %s", err)
	}
	if err := s.AddClause([]Literal{NegativeLiteral(v)}); err != nil {
		t.Fatalf("AddClause(!x): %s", err)
	}

	if got := s.Solve(); got != False {
		t.Errorf("Solve() = %v, want False for (x) and (!x)", got)
	}
}

func TestSolve_TautologicalClauseIsIgnored(t *testing.T) {
	s := NewDefaultSolver()
	v := s.AddVariable()

	if err := s.AddClause([]Literal{PositiveLiteral(v), NegativeLiteral(v)}); err != nil {
		t.Fatalf("AddClause(x, !x): %s", err)
	}

	if got := s.NumConstraints(); got != 0 {
		t.Fatalf("NumConstraints() = %d, want 0: a tautology should never be stored", got)
	}
	if got := s.Solve(); got != True {
		t.Errorf("Solve() = %v, want True", got)
	}
}

func TestSolve_UnitClauseSatisfiable(t *testing.T) {
	s := NewDefaultSolver()
	v := s.AddVariable()

	if err := s.AddClause([]Literal{PositiveLiteral(v)}); err != nil {
		t.Fatalf("AddClause: %s", err)
	}

	if got := s.Solve(); got != True {
		t.Fatalf("Solve() = %v, want True", got)
	}
	if !s.Verify(s.Models[len(s.Models)-1]) {
		t.Errorf("Verify() = false for the solver's own model")
	}
}

// TestSolve_ChainScenario mirrors the concrete (1 2), (-1 3), (-3) scenario:
// propagation alone should force x3=false, x1=false, x2=true.
func TestSolve_ChainScenario(t *testing.T) {
	s := NewDefaultSolver()
	x1 := s.AddVariable()
	x2 := s.AddVariable()
	x3 := s.AddVariable()

	must(t, s.AddClause([]Literal{PositiveLiteral(x1), PositiveLiteral(x2)}))
	must(t, s.AddClause([]Literal{NegativeLiteral(x1), PositiveLiteral(x3)}))
	must(t, s.AddClause([]Literal{NegativeLiteral(x3)}))

	if got := s.Solve(); got != True {
		t.Fatalf("Solve() = %v, want True", got)
	}

	model := s.Models[len(s.Models)-1]
	if model[x1] || !model[x2] || model[x3] {
		t.Errorf("model = %v, want [false true false]", model)
	}
	if !s.Verify(model) {
		t.Errorf("Verify() = false for a model the solver itself produced")
	}
}

func TestSolve_TwoVariableUnsat(t *testing.T) {
	s := NewDefaultSolver()
	x1 := s.AddVariable()
	x2 := s.AddVariable()

	must(t, s.AddClause([]Literal{PositiveLiteral(x1), PositiveLiteral(x2)}))
	must(t, s.AddClause([]Literal{PositiveLiteral(x1), NegativeLiteral(x2)}))
	must(t, s.AddClause([]Literal{NegativeLiteral(x1), PositiveLiteral(x2)}))
	must(t, s.AddClause([]Literal{NegativeLiteral(x1), NegativeLiteral(x2)}))

	if got := s.Solve(); got != False {
		t.Errorf("Solve() = %v, want False", got)
	}
}

// TestSolve_Pigeonhole32 encodes PHP(3,2): 3 pigeons, 2 holes, unsatisfiable.
func TestSolve_Pigeonhole32(t *testing.T) {
	s := NewDefaultSolver()

	// var(p, h) = p*2 + h, for p in {0,1,2}, h in {0,1}.
	var_ := func(p, h int) int { return p*2 + h }
	for i := 0; i < 6; i++ {
		s.AddVariable()
	}

	for p := 0; p < 3; p++ {
		must(t, s.AddClause([]Literal{
			PositiveLiteral(var_(p, 0)),
			PositiveLiteral(var_(p, 1)),
		}))
	}
	for h := 0; h < 2; h++ {
		for p1 := 0; p1 < 3; p1++ {
			for p2 := p1 + 1; p2 < 3; p2++ {
				must(t, s.AddClause([]Literal{
					NegativeLiteral(var_(p1, h)),
					NegativeLiteral(var_(p2, h)),
				}))
			}
		}
	}

	if got := s.Solve(); got != False {
		t.Errorf("Solve() = %v, want False for PHP(3,2)", got)
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("AddClause: %s", err)
	}
}
