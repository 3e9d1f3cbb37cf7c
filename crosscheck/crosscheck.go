// Package crosscheck solves a problem again with gonum's floating point
// simplex and compares the outcome with an exact solve.
package crosscheck

import (
	"fmt"
	"math"
	"math/big"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
	"q.log/tabsimplex/model"
	"q.log/tabsimplex/simplex"
)

var (
	ErrMismatch = errors.New("crosscheck: exact and floating point solves disagree")
	// ErrUndecided is returned when gonum cannot solve the problem at all,
	// typically because redundant equality rows make its constraint matrix
	// rank deficient. It says nothing about the exact result.
	ErrUndecided = errors.New("crosscheck: floating point solve is undecided")
)

// Objective returns the optimal objective value of p in floating point.
// Unbounded and infeasible problems return gonum's lp.ErrUnbounded and
// lp.ErrInfeasible; problems gonum cannot handle return ErrUndecided.
//
// The problem is handed to lp.Simplex already in standard form: the
// structural columns keep x >= 0 and every inequality gets one slack or
// surplus column.
func Objective(p *model.Problem) (float64, error) {
	sf, err := standardForm(p)
	if err != nil {
		return math.NaN(), err
	}
	if sf.unbounded {
		// A variable in no constraint that improves the objective: the
		// problem is unbounded as soon as the rest is feasible.
		if len(sf.b) == 0 {
			return math.Inf(-1), lp.ErrUnbounded
		}
		if _, err := sf.solve(); err != nil {
			return math.NaN(), err
		}
		return math.Inf(-1), lp.ErrUnbounded
	}
	if len(sf.b) == 0 {
		return 0, nil
	}

	opt, err := sf.solve()
	if err != nil {
		return math.NaN(), err
	}
	if p.Sense() == model.Maximize {
		opt = -opt
	}
	return opt, nil
}

// standard is minimize c·x subject to A x = b, x >= 0.
type standard struct {
	c, b []float64
	a    [][]float64
	// unbounded is set when a dropped column had a negative cost.
	unbounded bool
}

func standardForm(p *model.Problem) (*standard, error) {
	n := p.NumVars()
	cost := floats(p.ObjectiveCoefs())
	if p.Sense() == model.Maximize {
		for j := range cost {
			cost[j] = -cost[j]
		}
	}
	cons := p.Constraints()

	// gonum rejects all zero columns, so variables in no constraint are
	// dropped. They sit at zero unless their cost is negative.
	used := make([]bool, n)
	for _, con := range cons {
		for j, v := range con.Coefs {
			if v.Sign() != 0 {
				used[j] = true
			}
		}
	}
	sf := &standard{}
	var cols []int
	for j := 0; j < n; j++ {
		switch {
		case used[j]:
			cols = append(cols, j)
		case cost[j] < 0:
			sf.unbounded = true
		}
	}

	var slacks []float64
	for i, con := range cons {
		slack := 0.0
		switch con.Rel {
		case model.LessEq:
			slack = 1
		case model.GreaterEq:
			slack = -1
		}
		row := make([]float64, len(cols))
		zero := true
		for k, j := range cols {
			row[k] = float(con.Coefs[j])
			zero = zero && row[k] == 0
		}
		rhs := float(con.RHS)
		if zero && slack == 0 {
			if rhs != 0 {
				return nil, errors.Wrapf(lp.ErrInfeasible, "row %d reads 0 = %g", i+1, rhs)
			}
			continue
		}
		sf.a = append(sf.a, row)
		sf.b = append(sf.b, rhs)
		slacks = append(slacks, slack)
	}

	nslack := 0
	for _, s := range slacks {
		if s != 0 {
			nslack++
		}
	}
	k := len(cols)
	for i, s := range slacks {
		sf.a[i] = append(sf.a[i], make([]float64, nslack)...)
		if s != 0 {
			sf.a[i][k] = s
			k++
		}
	}
	sf.c = make([]float64, len(cols)+nslack)
	for k, j := range cols {
		sf.c[k] = cost[j]
	}
	return sf, nil
}

func (sf *standard) solve() (opt float64, err error) {
	m, width := len(sf.b), len(sf.c)
	if m > width {
		return math.NaN(), errors.Wrapf(ErrUndecided, "%d rows over %d columns", m, width)
	}
	a := mat.NewDense(m, width, nil)
	for i, row := range sf.a {
		a.SetRow(i, row)
	}

	// lp.Simplex panics on some ill-conditioned bases.
	defer func() {
		if r := recover(); r != nil {
			opt, err = math.NaN(), errors.Wrap(ErrUndecided, fmt.Sprint(r))
		}
	}()
	opt, _, err = lp.Simplex(sf.c, a, sf.b, 0, nil)
	switch {
	case err == nil, errors.Is(err, lp.ErrUnbounded), errors.Is(err, lp.ErrInfeasible):
		return opt, err
	}
	return math.NaN(), errors.Wrap(ErrUndecided, err.Error())
}

// Compare checks res against the floating point solve of p. Objective
// values must agree within tol, relative to their magnitude when it is
// above one. ErrUndecided is passed through when gonum has no answer.
func Compare(p *model.Problem, res *simplex.Result, tol float64) error {
	want, err := Objective(p)
	switch {
	case errors.Is(err, lp.ErrUnbounded):
		if res.State != simplex.Unbounded {
			return errors.Wrapf(ErrMismatch, "gonum reports unbounded, exact state is %s", res.State)
		}
		return nil
	case errors.Is(err, lp.ErrInfeasible):
		if res.State != simplex.Infeasible {
			return errors.Wrapf(ErrMismatch, "gonum reports infeasible, exact state is %s", res.State)
		}
		return nil
	case err != nil:
		return err
	}

	if res.State != simplex.Optimal {
		return errors.Wrapf(ErrMismatch, "gonum found optimum %g, exact state is %s", want, res.State)
	}
	got := float(res.Objective())
	if diff := math.Abs(got - want); diff > tol*math.Max(1, math.Abs(want)) {
		return errors.Wrapf(ErrMismatch, "objective %g, gonum %g", got, want)
	}
	return nil
}

func float(r *big.Rat) float64 {
	f, _ := r.Float64()
	return f
}

func floats(v []*big.Rat) []float64 {
	out := make([]float64, len(v))
	for i, r := range v {
		out[i] = float(r)
	}
	return out
}
