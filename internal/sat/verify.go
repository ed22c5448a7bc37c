package sat

// Verify reports whether model satisfies every clause AddClause stored in
// the database (learned clauses are deliberately excluded: they are
// consequences of the original formula, not additional constraints, so
// checking them is redundant whenever the original clauses already pass).
// Clauses that AddClause did not store are not checked: unit clauses,
// tautologies and clauses already satisfied at the root level. A stored
// clause is checked in its root-simplified form, without the literals that
// were already false when it was added.
// model[v] is the truth value assigned to the variable with ID v.
//
// This mirrors the implicit contract the Python reference leaves
// unchecked: a returned assignment is trusted, never re-verified, before
// being reported as a solution.
func (s *Solver) Verify(model []bool) bool {
	for _, c := range s.constraints {
		if !clauseHolds(c, model) {
			return false
		}
	}
	return true
}

func clauseHolds(c *Clause, model []bool) bool {
	for _, l := range c.lits {
		v := l.VarID()
		if v >= len(model) {
			continue
		}
		if model[v] == l.IsPositive() {
			return true
		}
	}
	return false
}
