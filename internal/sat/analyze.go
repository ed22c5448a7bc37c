package sat

// Analyze derives a learned clause from a falsified clause by resolving it,
// in turn, against the reason clause of every implied (non-decision) trail
// entry, walked from the most recent entry to the oldest. This is the
// last-UIP-style full-resolution scheme of SPEC_FULL.md §4.4: unlike a
// first-UIP analyzer it does not stop at the current decision level's
// single implication point, and it carries no notion of decision levels at
// all — it simply keeps resolving for as long as the running clause still
// mentions an implied variable.
func (s *Solver) Analyze(conflict int32) []Literal {
	learnt := append(s.tmpLearnt[:0], s.clauses[conflict].Literals()...)

	// seenVar tracks which variables currently occur in learnt, so the scan
	// below doesn't have to re-walk the (growing) clause on every trail
	// entry.
	s.seenVar.Clear()
	for _, l := range learnt {
		s.seenVar.Add(l.VarID())
	}

	for i := len(s.trail) - 1; i >= 0; i-- {
		l := s.trail[i]
		v := l.VarID()
		r := s.reason[v]

		if r == reasonDecision {
			continue
		}
		if !s.seenVar.Contains(v) {
			continue
		}

		reasonLits := s.clauses[r].Literals()
		learnt = resolve(learnt, reasonLits, v)
		for _, rl := range reasonLits {
			if rl.VarID() != v {
				s.seenVar.Add(rl.VarID())
			}
		}
	}

	s.tmpLearnt = learnt
	out := make([]Literal, len(learnt))
	copy(out, learnt)
	return out
}

// containsVar reports whether any literal in lits is built on variable v.
func containsVar(lits []Literal, v int) bool {
	for _, l := range lits {
		if l.VarID() == v {
			return true
		}
	}
	return false
}
