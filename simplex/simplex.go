// Package simplex solves linear programs with the tabular simplex method
// in exact rational arithmetic.
package simplex

import (
	"math/big"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"q.log/tabsimplex/model"
)

// State is the state of the pivoting loop. Every state but Ready is
// terminal.
type State int

const (
	Ready State = iota
	Optimal
	Unbounded
	Infeasible
	IterationLimit
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Optimal:
		return "optimal"
	case Unbounded:
		return "unbounded"
	case Infeasible:
		return "infeasible"
	case IterationLimit:
		return "iteration limit"
	}
	return "unknown"
}

// Step describes one pivot. Tableau is the live tableau and is only valid
// for the duration of the observer call.
type Step struct {
	Phase     int
	Iteration int
	Row, Col  int
	Leaving   int
	// Value is the row 0 rhs after the pivot.
	Value   *big.Rat
	Tableau *Tableau
}

type Option func(*Solver)

func WithRule(r Rule) Option {
	return func(s *Solver) { s.rule = r }
}

// WithMaxIterations caps the number of pivots over both phases.
// Zero means no cap.
func WithMaxIterations(n int) Option {
	return func(s *Solver) { s.maxIter = n }
}

// WithPhaseOne enables or disables the search for a feasible basis when
// the slack basis is not one. It is enabled by default; when disabled such
// problems fail with ErrInfeasibleStart.
func WithPhaseOne(enabled bool) Option {
	return func(s *Solver) { s.phaseOne = enabled }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Solver) { s.log = l }
}

// WithObserver registers a function called after every pivot.
func WithObserver(f func(Step)) Option {
	return func(s *Solver) { s.observe = f }
}

// Solver holds pivoting settings. It keeps no state between solves and
// may be shared.
type Solver struct {
	rule     Rule
	maxIter  int
	phaseOne bool
	log      logrus.FieldLogger
	observe  func(Step)
}

func NewSolver(opts ...Option) *Solver {
	s := &Solver{
		rule:     Dantzig,
		phaseOne: true,
		log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Result is the outcome of a solve.
type Result struct {
	State State
	// Tableau is the final tableau, including artificial columns when phase
	// one ran.
	Tableau            *Tableau
	Iterations         int
	PhaseOneIterations int

	problem  *model.Problem
	feasible bool
}

// Err maps non-optimal terminal states to errors.
func (r *Result) Err() error {
	switch r.State {
	case Optimal:
		return nil
	case Unbounded:
		return ErrUnbounded
	case Infeasible:
		return ErrInfeasible
	case IterationLimit:
		return ErrIterationLimit
	}
	return errors.Errorf("simplex: solve stopped in state %s", r.State)
}

// Solution returns the value of every structural variable at the final
// basis: the rhs of its row when basic, zero otherwise. It is nil when no
// feasible basis was reached.
func (r *Result) Solution() []*big.Rat {
	if !r.feasible {
		return nil
	}
	return r.Tableau.values()[:r.Tableau.NumStructural()]
}

// Objective returns the original objective at Solution, or nil.
func (r *Result) Objective() *big.Rat {
	x := r.Solution()
	if x == nil {
		return nil
	}
	return r.problem.Evaluate(x)
}

// Solve builds the standard form of p, finds a feasible basis if the slack
// basis is not one, and pivots to a terminal state. Only modeling and
// setup problems are returned as errors; unboundedness and infeasibility
// are reported through Result.State.
func (s *Solver) Solve(p *model.Problem) (*Result, error) {
	t, err := StandardForm(p)
	if err != nil {
		return nil, err
	}
	log := s.log.WithFields(logrus.Fields{
		"vars":        p.NumVars(),
		"constraints": p.NumConstraints(),
		"rule":        s.rule,
	})

	res := &Result{problem: p}
	if err := startViolation(t); err != nil {
		if !s.phaseOne {
			return nil, errors.Wrap(ErrInfeasibleStart, err.Error())
		}
		log.WithField("reason", err.Error()).Debug("slack basis is not feasible, running phase one")
		aux, state, n, err := s.phaseOneSolve(t)
		res.PhaseOneIterations = n
		if err != nil {
			return nil, err
		}
		if state != Ready {
			res.State, res.Tableau = state, aux
			log.WithField("state", state).Info("phase one stopped")
			return res, nil
		}
		t = aux
	}

	res.feasible = true
	res.State, res.Iterations = s.run(t, 2, res.PhaseOneIterations)
	res.Tableau = t
	log.WithFields(logrus.Fields{
		"state":      res.State,
		"iterations": res.PhaseOneIterations + res.Iterations,
	}).Info("solve finished")
	return res, nil
}

// Run pivots t until it is optimal, unbounded or the iteration cap is hit.
// It returns the terminal state and the number of pivots made.
//
// t must be canonical with a non-negative rhs. Run does not check this and
// makes no feasibility claim for other tableaus; Solve goes through phase
// one for them.
func (s *Solver) Run(t *Tableau) (State, int) {
	return s.run(t, 2, 0)
}

func (s *Solver) run(t *Tableau, phase, done int) (State, int) {
	iter := 0
	state := Ready
	for state == Ready {
		if s.maxIter > 0 && done+iter >= s.maxIter {
			state = IterationLimit
			break
		}
		state = s.step(t, phase, iter+1)
		if state == Ready {
			iter++
		}
	}
	return state, iter
}

// step makes at most one pivot. It returns Ready when a pivot was made.
func (s *Solver) step(t *Tableau, phase, iter int) State {
	col, ok := EnteringColumn(t, s.rule)
	if !ok {
		return Optimal
	}
	row, ok := LeavingRow(t, col, s.rule)
	if !ok {
		s.log.WithFields(logrus.Fields{"phase": phase, "col": col}).Debug("no leaving row")
		return Unbounded
	}

	leaving := t.basic[row-1]
	Pivot(t, row, col)

	value := t.RHS(0)
	s.log.WithFields(logrus.Fields{
		"phase":     phase,
		"iteration": iter,
		"row":       row,
		"entering":  col,
		"leaving":   leaving,
		"z":         value.RatString(),
	}).Debug("pivot")
	if s.observe != nil {
		s.observe(Step{
			Phase:     phase,
			Iteration: iter,
			Row:       row,
			Col:       col,
			Leaving:   leaving,
			Value:     value,
			Tableau:   t,
		})
	}
	return Ready
}
