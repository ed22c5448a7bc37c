package sat

// enqueueUnit assigns literal l true, records reason (a clause ID, or
// reasonDecision), and pushes l onto the propagation worklist. It does not
// count l as a decision; assume does that. It reports
// false if l was already assigned false (a conflict at assignment time,
// used by AddClause to detect root-level contradictions before Propagate
// even runs).
func (s *Solver) enqueueUnit(l Literal, reason int32) bool {
	switch s.LitValue(l) {
	case False:
		return false
	case True:
		return true
	}

	v := l.VarID()
	s.assigns[l] = True
	s.assigns[l.Opposite()] = False
	s.reason[v] = reason
	s.trail = append(s.trail, l)
	s.unitQueue.Push(l)
	return true
}

// assume pushes a decision literal, per SPEC_FULL.md §4.5/§4.6's DECIDE
// state, and counts it as a decision.
func (s *Solver) assume(l Literal) bool {
	if !s.enqueueUnit(l, reasonDecision) {
		return false
	}
	s.nDecisions++
	return true
}

// Propagate runs unit propagation to closure and returns the ID of a
// falsified clause, or -1 if none was found. On returning -1 no clause in
// the database is unit under the current assignment. On returning a
// conflict, Propagate has already cleared the worklist itself.
func (s *Solver) Propagate() int32 {
	for s.unitQueue.Size() > 0 {
		l := s.unitQueue.Pop()

		// True side: every clause mentioning l directly is affected,
		// regardless of whether it is currently watching l.
		for _, id := range s.occ[l] {
			c := s.clauses[id]
			c.AssignTrue(l)
			s.logUpdate(id, l)
		}

		// False side: only clauses watching l's complement need attention;
		// every other occurrence of the complement remains lazily
		// "undecided" from the clause's point of view until discovered by
		// a later watch scan (see propagateWatch).
		opp := l.Opposite()
		watchers := s.watch[opp]
		pending := make([]int32, len(watchers))
		copy(pending, watchers)
		s.watch[opp] = s.watch[opp][:0]

		for i, id := range pending {
			if s.propagateWatch(id, opp) {
				s.watch[opp] = append(s.watch[opp], pending[i+1:]...)
				s.unitQueue.Clear()
				return id
			}
		}
	}
	return -1
}

// propagateWatch handles clause id after its watched literal falseLit has
// just become false. It implements SPEC_FULL.md §4.3 step 5 verbatim: move
// falseLit into the false partition, unconditionally drop it from the
// watch set (step 5b applies regardless of whether the clause turns out to
// already be satisfied), and search the clause's undecided literals for a
// replacement watch that is not already watched (step 5c), demoting any
// literal discovered to already be false along the way (step 5d). It
// returns true if the clause is now falsified (a conflict).
func (s *Solver) propagateWatch(id int32, falseLit Literal) bool {
	c := s.clauses[id]
	c.AssignFalse(falseLit)
	s.logUpdate(id, falseLit)
	c.removeWatchLit(falseLit)

	pos := 0
	for {
		u := c.undecided()
		if pos >= len(u) {
			break
		}
		cand := u[pos]
		if c.IsWatched(cand) {
			// cand is the clause's other watched literal: step 5c requires
			// a replacement not already watched, so it is never a candidate
			// here, whatever its value.
			pos++
			continue
		}
		switch s.LitValue(cand) {
		case True:
			// cand is already true but this clause's own partition hasn't
			// caught up yet (its occurrence walk, step 4, runs only once
			// cand itself is popped from the queue). It isn't a valid
			// replacement watch (step 5c asks for "unassigned"), but it
			// needs no demotion either: leave it undecided here and skip
			// it, exactly like an already-watched literal.
			pos++
		case False:
			// Lazily discovered false literal (step 5d): record it and
			// keep scanning from the same position, which now holds the
			// literal swapped in from the tail of the undecided region.
			c.AssignFalse(cand)
			s.logUpdate(id, cand)
		default:
			c.addWatchLit(cand)
			s.addWatch(id, cand)
			return false
		}
	}

	if c.Satisfied() {
		// No unwatched undecided literal was found, but the clause already
		// has a true literal (from before this call, or one routed through
		// the True case above): step 5e says do nothing. The clause is left
		// with a single watch; Solver.undoLast's "< 2" rule restores the
		// second one on backtrack.
		return false
	}
	if c.Falsified() {
		return true
	}
	if c.Unit() {
		s.enqueueUnit(c.UnitLiteral(), id)
	}
	return false
}
