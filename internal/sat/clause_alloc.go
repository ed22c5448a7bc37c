//go:build !clausepool

package sat

// allocClause builds a Clause backed by a freshly allocated literal slice.
// See clause_allocpool.go for the pooled variant enabled by the clausepool
// build tag.
func allocClause(literals []Literal, learnt bool) *Clause {
	c := &Clause{}
	c.learnt = learnt
	c.lits = make([]Literal, 0, len(literals))
	c.lits = append(c.lits, literals...)
	return c
}

func freeClause(c *Clause) {}
