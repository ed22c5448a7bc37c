package sat

import "strings"

// Clause represents a disjunction of literals together with the dynamic
// partition of those literals into true, false, and undecided groups that
// the solver maintains as the search progresses.
//
// The literal order inside lits is not semantically meaningful: lits is
// partitioned in place into three contiguous regions
//
//	[0, nTrue)                  literals known to be true
//	[nTrue, len(lits)-nFalse)   literals not yet known to be false or true
//	[len(lits)-nFalse, len)     literals known to be false
//
// so that AssignTrue/AssignFalse/DisassignTrue/DisassignFalse run in time
// proportional to the size of the one region they search rather than requiring a
// separate set structure, per the "fixed-length array plus counters"
// pattern used throughout this package.
type Clause struct {
	lits   []Literal
	nTrue  int
	nFalse int

	// watched holds the (at most two) literals currently monitored by the
	// watch index. Per the specification (§3, §4.5) this set can shrink to
	// one or zero entries as watched literals turn false with no undecided
	// replacement available, and grows back on backtrack: it is not a
	// fixed-size pair the way a MiniSAT-style solver keeps it. A clause with
	// fewer than two literals is never built directly (see newClause); unit
	// facts are enqueued immediately instead.
	watched []Literal

	// learnt marks clauses produced by conflict analysis, as opposed to the
	// original clauses supplied by the input formula.
	learnt bool

	// sliceRef is only populated under the clausepool build tag; it lets
	// freeClause return the backing array to the right sync.Pool bucket.
	sliceRef *[]Literal
}

// newClause allocates a Clause over the given literals. The caller must
// ensure len(literals) >= 2 and that no literal repeats.
func newClause(literals []Literal, learnt bool) *Clause {
	c := allocClause(literals, learnt)
	c.watched = append(c.watched[:0], c.lits[0], c.lits[1])
	return c
}

// Literals returns the clause's literals (its immutable inner set). The
// returned slice is reordered internally by assignment and must not be
// retained across calls that mutate the clause.
func (c *Clause) Literals() []Literal {
	return c.lits
}

// Size returns the number of literals in the clause.
func (c *Clause) Size() int {
	return len(c.lits)
}

// Satisfied reports whether the clause has at least one true literal.
func (c *Clause) Satisfied() bool {
	return c.nTrue > 0
}

// Falsified reports whether every literal in the clause is false.
func (c *Clause) Falsified() bool {
	return c.nFalse == len(c.lits)
}

// Empty reports whether the clause has no literals at all (the contradiction
// learned when the formula is unsatisfiable).
func (c *Clause) Empty() bool {
	return len(c.lits) == 0
}

// Unit reports whether the clause has no true literal and exactly one
// undecided literal, i.e. it forces that literal true.
func (c *Clause) Unit() bool {
	return c.nTrue == 0 && len(c.lits)-c.nFalse-c.nTrue == 1
}

// UnitLiteral returns the clause's sole undecided literal. It must only be
// called when Unit() is true.
func (c *Clause) UnitLiteral() Literal {
	return c.lits[c.nTrue]
}

// undecided returns the slice of literals not yet known true or false.
func (c *Clause) undecided() []Literal {
	return c.lits[c.nTrue : len(c.lits)-c.nFalse]
}

// ContainsVar reports whether the clause mentions (either polarity of) v.
func (c *Clause) ContainsVar(v int) bool {
	for _, l := range c.lits {
		if l.VarID() == v {
			return true
		}
	}
	return false
}

// find returns the current index of l within region, or -1 if absent.
// Clauses are expected to stay small, so a linear scan over the one region
// the caller searches (the undecided region for AssignTrue/AssignFalse, the
// true or false region for DisassignTrue/DisassignFalse) is the natural
// implementation.
func (c *Clause) find(region []Literal, l Literal) int {
	for i, x := range region {
		if x == l {
			return i
		}
	}
	return -1
}

// AssignTrue moves literal l, currently undecided, into the true region.
// l must be a member of the clause's undecided literals.
func (c *Clause) AssignTrue(l Literal) {
	u := c.undecided()
	i := c.find(u, l)
	u[0], u[i] = u[i], u[0]
	c.nTrue++
}

// AssignFalse moves literal l, currently undecided, into the false region.
// l must be a member of the clause's undecided literals.
func (c *Clause) AssignFalse(l Literal) {
	u := c.undecided()
	last := len(u) - 1
	i := c.find(u, l)
	u[last], u[i] = u[i], u[last]
	c.nFalse++
}

// DisassignTrue moves literal l, currently in the true region, back to the
// undecided region. l need not be the literal most recently assigned true.
func (c *Clause) DisassignTrue(l Literal) {
	last := c.nTrue - 1
	i := c.find(c.lits[:c.nTrue], l)
	c.lits[last], c.lits[i] = c.lits[i], c.lits[last]
	c.nTrue--
}

// DisassignFalse moves literal l, currently in the false region, back to the
// undecided region. l need not be the literal most recently assigned false:
// propagateWatch demotes already-false literals lazily, so the false region
// is not kept in trail order.
func (c *Clause) DisassignFalse(l Literal) {
	first := len(c.lits) - c.nFalse
	i := first + c.find(c.lits[first:], l)
	c.lits[first], c.lits[i] = c.lits[i], c.lits[first]
	c.nFalse--
}

// IsWatched reports whether l is one of the clause's currently watched
// literals.
func (c *Clause) IsWatched(l Literal) bool {
	for _, w := range c.watched {
		if w == l {
			return true
		}
	}
	return false
}

// NumWatched returns how many watch slots are currently occupied. It can be
// less than two: see the watched field comment.
func (c *Clause) NumWatched() int {
	return len(c.watched)
}

// removeWatchLit drops l from the watched set.
func (c *Clause) removeWatchLit(l Literal) {
	for i, w := range c.watched {
		if w == l {
			c.watched[i] = c.watched[len(c.watched)-1]
			c.watched = c.watched[:len(c.watched)-1]
			return
		}
	}
}

// addWatchLit grows the watched set with l. The caller must ensure the
// clause does not already watch two literals.
func (c *Clause) addWatchLit(l Literal) {
	c.watched = append(c.watched, l)
}

// resolve returns the resolvent of c1 and c2 on variable v: the union of
// both clauses' literals with +v and -v removed and duplicates merged. It
// requires that one of c1, c2 contains the positive literal of v and the
// other contains the negative literal.
func resolve(c1, c2 []Literal, v int) []Literal {
	seen := make(map[Literal]bool, len(c1)+len(c2))
	out := make([]Literal, 0, len(c1)+len(c2))
	add := func(lits []Literal) {
		for _, l := range lits {
			if l.VarID() == v {
				continue
			}
			if seen[l] {
				continue
			}
			seen[l] = true
			out = append(out, l)
		}
	}
	add(c1)
	add(c2)
	return out
}

func (c *Clause) String() string {
	if len(c.lits) == 0 {
		return "Clause[]"
	}
	sb := strings.Builder{}
	sb.WriteString("Clause[")
	sb.WriteString(c.lits[0].String())
	for _, l := range c.lits[1:] {
		sb.WriteByte(' ')
		sb.WriteString(l.String())
	}
	sb.WriteByte(']')
	return sb.String()
}
