package sat

// BacktrackToUnit undoes trail entries until the most recently popped
// variable appears in learnt, the clause just produced by Analyze. Per
// SPEC_FULL.md §4.5 this is guaranteed to terminate because learnt was
// derived by resolution over literals actually present on the trail.
func (s *Solver) BacktrackToUnit(learnt []Literal) {
	for {
		l := s.trail[len(s.trail)-1]
		s.undoLast()
		if containsVar(learnt, l.VarID()) {
			return
		}
	}
}

// BacktrackTo undoes decisions (and everything implied by them) until
// exactly targetDecisions decisions remain active. Root-level (decision 0)
// assignments made before any decision are never undone by this call.
func (s *Solver) BacktrackTo(targetDecisions int) {
	for s.nDecisions > targetDecisions {
		s.undoLast()
	}
}

// undoLast pops and undoes the single most recent trail entry: it clears
// the literal from vmap, drains its update log on both sides (disassigning
// the literal from every clause it touched and re-adopting it as a watch
// wherever the clause's watch count dropped below two and the literal is not
// already one of its watches), and returns the
// literal's variable to the decision order.
func (s *Solver) undoLast() {
	l := s.trail[len(s.trail)-1]
	s.trail = s.trail[:len(s.trail)-1]
	v := l.VarID()

	if s.reason[v] == reasonDecision {
		s.nDecisions--
	}

	s.assigns[l] = Unknown
	s.assigns[l.Opposite()] = Unknown
	s.reason[v] = reasonDecision

	s.order.Reinsert(v)

	opp := l.Opposite()

	for _, id := range s.updates[l] {
		c := s.clauses[id]
		c.DisassignTrue(l)
		if c.NumWatched() < 2 && !c.IsWatched(l) {
			c.addWatchLit(l)
			s.addWatch(id, l)
		}
	}
	s.updates[l] = s.updates[l][:0]

	for _, id := range s.updates[opp] {
		c := s.clauses[id]
		c.DisassignFalse(opp)
		if c.NumWatched() < 2 && !c.IsWatched(opp) {
			c.addWatchLit(opp)
			s.addWatch(id, opp)
		}
	}
	s.updates[opp] = s.updates[opp][:0]
}
