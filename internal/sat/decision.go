package sat

import "github.com/rhartert/yagh"

// DecisionOrder selects the next unassigned variable to branch on. Per
// SPEC_FULL.md §4.5 the decision heuristic is intentionally primitive: a
// variable's priority is fixed at declaration time to the order in which
// AddVariable was called, never bumped by conflicts the way a VSIDS-style
// order would. The heap is kept only so that Reinsert/Pop on backtrack
// stay logarithmic rather than linear; its ordering key, not its presence,
// is what makes selection static.
type DecisionOrder struct {
	order *yagh.IntMap[int]
	next  int
}

// newDecisionOrder returns an empty DecisionOrder.
func newDecisionOrder() *DecisionOrder {
	return &DecisionOrder{order: yagh.New[int](0)}
}

// AddVar declares a new variable, assigning it the next priority in
// declaration order.
func (o *DecisionOrder) AddVar() {
	v := o.next
	o.next++
	o.order.GrowBy(1)
	o.order.Put(v, v)
}

// Reinsert returns v to the pool of candidate decisions. The solver calls
// this when v is unassigned by a backtrack.
func (o *DecisionOrder) Reinsert(v int) {
	o.order.Put(v, v)
}

// NextDecision pops variables in declaration order until it finds one that
// is still unassigned, and returns its positive literal: per SPEC_FULL.md
// §4.5 the solver has "complete freedom" over polarity, and this
// implementation always picks true first. It reports ok=false once every
// variable has been assigned (the formula is satisfied).
func (o *DecisionOrder) NextDecision(s *Solver) (Literal, bool) {
	for {
		next, ok := o.order.Pop()
		if !ok {
			return 0, false
		}
		if s.VarValue(next.Elem) != Unknown {
			continue // already assigned, left behind by a prior Reinsert gap
		}
		return PositiveLiteral(next.Elem), true
	}
}
