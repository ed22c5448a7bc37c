package sat

import (
	"context"
	"fmt"
	"time"
)

// reasonDecision marks a trail entry that has no reason clause: a decision,
// or a unit fact asserted at the root level (a unit clause given to
// AddClause, or a learnt unit clause). It is never a valid clause ID.
const reasonDecision = -1

// Solver holds the full mutable state of a CDCL search: the clause
// database, the occurrence and watch indexes, the trail, and the update
// log used to undo exactly the clauses a backtrack must revert.
type Solver struct {
	// Clause database. Original clauses occupy the prefix; learned clauses
	// are appended. A clause's entry in clauses never moves once appended
	// (stable handles), per SPEC_FULL.md §9's "growing clause database"
	// guidance.
	constraints []*Clause
	learnts     []*Clause
	clauses     []*Clause

	// occ[l] lists every clause (by ID) that mentions literal l. Append-only.
	occ [][]int32

	// watch[l] lists every clause (by ID) currently watching literal l.
	watch [][]int32

	// updates[l] lists every clause (by ID) whose partition was mutated
	// because l was assigned, not yet rolled back. Drained on backtrack.
	updates [][]int32

	// unitQueue is the propagation worklist: literals that have just been
	// assigned true and whose watchers have not yet been processed. This
	// realizes the specification's abstract "worklist of clauses known to
	// be unit" (SPEC_FULL.md §4.3) as a literal queue, the teacher's
	// equivalent encoding: a literal enqueued here stands for exactly the
	// clauses in watch[l.Opposite()], which is where a fresh assignment can
	// create a new unit clause.
	unitQueue *Queue[Literal]

	// assigns holds the current LBool value of every encoded literal; the
	// variable map (vmap) of the specification.
	assigns []LBool

	// Trail.
	trail      []Literal
	reason     []int32 // clause ID, or reasonDecision
	nDecisions int

	order *DecisionOrder

	// state names the driver phase run last occupied; see driverState.
	state driverState

	// unsat is set once an empty clause has been derived or learned.
	unsat bool

	// Search statistics.
	TotalConflicts  int64
	TotalDecisions  int64
	TotalIterations int64
	startTime       time.Time

	conflictRate EMA

	// Stop conditions.
	hasStopCond bool
	maxConflict int64
	timeout     time.Duration
	ctx         context.Context

	// Models records every satisfying assignment found; AddClause-ing a
	// blocking clause between calls to Solve enumerates all models, as in
	// the teacher's yass_test.go.
	Models [][]bool

	// seenVar is reused by Analyze to mark the variables that have occurred
	// in the clause being learnt, avoiding an allocation per conflict.
	seenVar *ResetSet

	// tmpLearnt is reused across calls to Analyze to avoid a per-conflict
	// allocation.
	tmpLearnt []Literal

	verbose bool
}

// Options configures a Solver. Unlike the MiniSAT-lineage solver this
// package is descended from, there is no variable- or clause-activity
// configuration: the decision heuristic is intentionally primitive and
// clauses are never deleted (see SPEC_FULL.md §1 Non-goals).
type Options struct {
	// MaxConflicts stops the search (returning Unknown) once this many
	// conflicts have been encountered. A negative value disables the limit.
	MaxConflicts int64

	// Timeout stops the search (returning Unknown) once this much time has
	// elapsed. A negative value disables the limit.
	Timeout time.Duration

	// ClauseCapacityHint pre-sizes the clause database's backing slices.
	ClauseCapacityHint int

	// Verbose enables the progress table printed during Solve.
	Verbose bool

	// Context, if non-nil, is polled between top-level search iterations
	// (the SEARCH state); its cancellation stops the search the same way
	// MaxConflicts/Timeout do, returning Unknown. This generalizes the
	// wall-clock Timeout to any externally supplied cancellation signal.
	Context context.Context
}

var DefaultOptions = Options{
	MaxConflicts: -1,
	Timeout:      -1,
}

// NewDefaultSolver returns a solver configured with DefaultOptions.
func NewDefaultSolver() *Solver {
	return NewSolver(DefaultOptions)
}

func NewSolver(opts Options) *Solver {
	s := &Solver{
		unitQueue:    NewQueue[Literal](128),
		maxConflict:  -1,
		timeout:      -1,
		seenVar:      &ResetSet{},
		order:        newDecisionOrder(),
		conflictRate: NewEMA(0.99),
		verbose:      opts.Verbose,
	}
	if opts.ClauseCapacityHint > 0 {
		s.constraints = make([]*Clause, 0, opts.ClauseCapacityHint)
		s.clauses = make([]*Clause, 0, opts.ClauseCapacityHint)
	}
	if opts.MaxConflicts >= 0 {
		s.hasStopCond = true
		s.maxConflict = opts.MaxConflicts
	}
	if opts.Timeout >= 0 {
		s.hasStopCond = true
		s.timeout = opts.Timeout
	}
	if opts.Context != nil {
		s.hasStopCond = true
		s.ctx = opts.Context
	}
	return s
}

func (s *Solver) shouldStop() bool {
	if !s.hasStopCond {
		return false
	}
	if s.maxConflict >= 0 && s.maxConflict <= s.TotalConflicts {
		return true
	}
	if s.timeout >= 0 && s.timeout <= time.Since(s.startTime) {
		return true
	}
	if s.ctx != nil && s.ctx.Err() != nil {
		return true
	}
	return false
}

func (s *Solver) NumVariables() int   { return len(s.assigns) / 2 }
func (s *Solver) NumAssigns() int     { return len(s.trail) }
func (s *Solver) NumConstraints() int { return len(s.constraints) }
func (s *Solver) NumLearnts() int     { return len(s.learnts) }

func (s *Solver) VarValue(v int) LBool    { return s.assigns[PositiveLiteral(v)] }
func (s *Solver) LitValue(l Literal) LBool { return s.assigns[l] }

// AddVariable declares a new variable and returns its zero-based ID.
func (s *Solver) AddVariable() int {
	v := s.NumVariables()

	s.occ = append(s.occ, nil, nil)
	s.watch = append(s.watch, nil, nil)
	s.updates = append(s.updates, nil, nil)
	s.assigns = append(s.assigns, Unknown, Unknown)
	s.reason = append(s.reason, reasonDecision)
	s.seenVar.Expand()
	s.order.AddVar()

	return v
}

func (s *Solver) addWatch(id int32, l Literal) {
	s.watch[l] = append(s.watch[l], id)
}

func (s *Solver) removeWatch(id int32, l Literal) {
	ws := s.watch[l]
	for i, w := range ws {
		if w == id {
			ws[i] = ws[len(ws)-1]
			s.watch[l] = ws[:len(ws)-1]
			return
		}
	}
}

func (s *Solver) addOcc(id int32, l Literal) {
	s.occ[l] = append(s.occ[l], id)
}

func (s *Solver) logUpdate(id int32, l Literal) {
	s.updates[l] = append(s.updates[l], id)
}

// registerClause assigns c a stable clause ID, records it in the occurrence
// index for every one of its literals, and registers its two initial
// watches. It must only be used for original (root-level) clauses, whose
// literals are all still Unknown at registration time (simplifyNewClause
// guarantees this) — see registerLearntClause for clauses adopted mid-search.
func (s *Solver) registerClause(c *Clause) int32 {
	id := int32(len(s.clauses))
	s.clauses = append(s.clauses, c)
	for _, l := range c.lits {
		s.addOcc(id, l)
	}
	s.addWatch(id, c.watched[0])
	s.addWatch(id, c.watched[1])
	return id
}

// registerLearntClause adopts a freshly analyzed clause into the clause
// database mid-search, where (unlike a root-level clause) every literal but
// one is already assigned false on the trail. It replays the trail in
// chronological order to bring the clause's true/false partition up to
// date with the rest of the database — as if the clause had been watching
// all along — logging an update entry for each literal it catches up on so
// a later backtrack past that literal's assignment correctly disassigns
// this clause and, per the "< 2" rule, re-adopts it as a watch.
//
// It registers exactly one watch: the clause's sole remaining undecided
// literal (the asserting literal Analyze guarantees). The second watch
// slot is left empty and is populated automatically the first time
// Solver.undoLast disassigns one of the clause's false literals.
func (s *Solver) registerLearntClause(c *Clause) int32 {
	id := int32(len(s.clauses))
	s.clauses = append(s.clauses, c)
	for _, l := range c.lits {
		s.addOcc(id, l)
	}

	inClause := make(map[Literal]bool, len(c.lits))
	for _, l := range c.lits {
		inClause[l] = true
	}
	for _, tl := range s.trail {
		fl := tl.Opposite()
		if inClause[fl] {
			c.AssignFalse(fl)
			s.logUpdate(id, fl)
		}
	}

	u := c.undecided()
	if len(u) != 1 {
		panic("sat: newly learnt clause is not unit after trail replay")
	}
	c.watched = append(c.watched[:0], u[0])
	s.addWatch(id, u[0])

	return id
}

// AddClause adds a clause to the problem. It must only be called at the
// root level (before any decision has been made). Tautological clauses and
// clauses already satisfied at the root level are silently discarded;
// clauses that simplify to the empty clause mark the solver unsat.
func (s *Solver) AddClause(literals []Literal) error {
	if s.nDecisions != 0 {
		return fmt.Errorf("sat: clauses can only be added at the root level")
	}

	lits, ok := simplifyNewClause(s, literals)
	if !ok {
		return nil // tautology or already satisfied: nothing to add
	}

	switch len(lits) {
	case 0:
		s.unsat = true
	case 1:
		if !s.enqueueUnit(lits[0], reasonDecision) {
			s.unsat = true
		}
	default:
		c := newClause(lits, false)
		s.registerClause(c)
		s.constraints = append(s.constraints, c)
	}
	return nil
}

// simplifyNewClause removes duplicate literals and literals already false
// at the root level, and reports ok=false if the clause is a tautology or
// already satisfied at the root level (in either case it need not be
// added at all).
func simplifyNewClause(s *Solver, literals []Literal) ([]Literal, bool) {
	seen := map[Literal]bool{}
	out := make([]Literal, 0, len(literals))
	for _, l := range literals {
		if seen[l] {
			continue
		}
		if seen[l.Opposite()] {
			return nil, false // tautology
		}
		switch s.LitValue(l) {
		case True:
			return nil, false // already satisfied
		case False:
			continue // discard
		}
		seen[l] = true
		out = append(out, l)
	}
	return out, true
}

func (s *Solver) decisionLevel() int { return s.nDecisions }

// driverState names the current phase of the CDCL driver loop run by
// Solver.run, matching SPEC_FULL.md §4.6's PREPROCESS/SEARCH/DECIDE/
// PROPAGATE/ANALYZE state machine one for one. It exists purely so tests
// can assert which phase the driver last occupied; it carries no behavior
// of its own.
type driverState int

const (
	statePreprocess driverState = iota
	stateSearch
	stateDecide
	statePropagate
	stateAnalyze
)

func (ds driverState) String() string {
	switch ds {
	case statePreprocess:
		return "PREPROCESS"
	case stateSearch:
		return "SEARCH"
	case stateDecide:
		return "DECIDE"
	case statePropagate:
		return "PROPAGATE"
	case stateAnalyze:
		return "ANALYZE"
	default:
		return "UNKNOWN"
	}
}

// State returns the driver phase Solve last occupied. Only meaningful to
// call after Solve has returned, or from a test harness inspecting a
// solver mid-search.
func (s *Solver) State() driverState { return s.state }

// record appends a learned clause to the database and enqueues its unit
// literal. After BacktrackToUnit the learnt literals are all falsified
// except for exactly one (the asserting literal), so the new clause is
// unit on arrival once registerLearntClause has caught its partition up to
// the trail. A learnt clause of a single literal is not stored: the solver
// backtracks to the root level and asserts that literal there as a fact.
func (s *Solver) record(lits []Literal) {
	if len(lits) == 1 {
		s.BacktrackTo(0)
		s.enqueueUnit(lits[0], reasonDecision)
		return
	}
	c := allocClause(lits, true)
	id := s.registerLearntClause(c)
	s.learnts = append(s.learnts, c)
	s.enqueueUnit(c.undecided()[0], id)
}

func (s *Solver) saveModel() {
	model := make([]bool, s.NumVariables())
	for i := range model {
		lb := s.VarValue(i)
		if lb == Unknown {
			panic("sat: attempted to save a partial assignment as a model")
		}
		model[i] = lb == True
	}
	s.Models = append(s.Models, model)
}

func (s *Solver) printSeparator() {
	fmt.Println("c ---------------------------------------------------------------------------")
}

func (s *Solver) printSearchHeader() {
	fmt.Println("c            time     iterations      conflicts      decisions        learnts")
}

func (s *Solver) printSearchStats() {
	fmt.Printf(
		"c %14.3fs %14d %14d %14d %14d\n",
		time.Since(s.startTime).Seconds(),
		s.TotalIterations,
		s.TotalConflicts,
		s.TotalDecisions,
		len(s.learnts))
}

// Solve runs the CDCL driver (PREPROCESS/SEARCH/DECIDE/PROPAGATE/ANALYZE,
// see SPEC_FULL.md §4.6) to completion and returns True (SAT), False
// (UNSAT), or Unknown if a configured stop condition (MaxConflicts,
// Timeout) was reached first.
func (s *Solver) Solve() LBool {
	s.startTime = time.Now()

	if s.verbose {
		s.printSeparator()
		s.printSearchHeader()
		s.printSeparator()
	}

	status := s.run()

	if s.verbose {
		s.printSearchStats()
		s.printSeparator()
	}

	s.BacktrackTo(0)
	return status
}

func (s *Solver) run() LBool {
	s.state = statePreprocess
	if s.unsat {
		return False
	}
	if conflict := s.Propagate(); conflict >= 0 {
		s.unsat = true
		return False
	}

	for {
		s.TotalIterations++
		if s.verbose && s.TotalIterations%10000 == 0 {
			s.printSearchStats()
		}

		s.state = stateSearch
		if s.NumAssigns() == s.NumVariables() {
			s.saveModel()
			return True
		}
		if s.shouldStop() {
			return Unknown
		}

		s.state = stateDecide
		l, ok := s.order.NextDecision(s)
		if !ok {
			s.saveModel()
			return True
		}
		s.assume(l)
		s.TotalDecisions++

		// PROPAGATE / ANALYZE, looping while conflicts keep occurring.
		for {
			s.state = statePropagate
			conflict := s.Propagate()
			if conflict < 0 {
				break
			}

			s.TotalConflicts++
			s.conflictRate.Add(1)

			if s.decisionLevel() == 0 {
				s.unsat = true
				return False
			}

			s.state = stateAnalyze
			learnt := s.Analyze(conflict)
			if len(learnt) == 0 {
				s.unsat = true
				return False
			}

			s.BacktrackToUnit(learnt)
			s.record(learnt)
		}
	}
}
