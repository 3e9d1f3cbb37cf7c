package simplex

import (
	"math/big"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"q.log/tabsimplex/ratmat"
)

// startViolation returns nil when the current basis of t is canonical and
// feasible, otherwise an error naming the first offending row.
func startViolation(t *Tableau) error {
	if err := t.CheckCanonical(); err != nil {
		return err
	}
	for i := 1; i <= len(t.basic); i++ {
		if rhs := t.RHS(i); rhs.Sign() < 0 {
			return errors.Errorf("row %d has negative rhs %s", i, rhs.RatString())
		}
	}
	return nil
}

// phaseOneSolve finds a feasible basis for t by minimizing the sum of
// artificial variables added to the rows that lack one. On success it
// returns a canonical tableau carrying the original objective, with the
// artificial columns locked, and the state Ready. Otherwise the state is
// Infeasible or IterationLimit and the tableau is the phase one tableau.
// t is modified.
func (s *Solver) phaseOneSolve(t *Tableau) (*Tableau, State, int, error) {
	if t.artificial != 0 {
		return nil, Ready, 0, errors.Wrap(ErrNotCanonical, "phase one needs a tableau without artificial columns")
	}
	rows, cols := t.m.Dims()
	for i, b := range t.basic {
		for r := 1; r < rows; r++ {
			if r != i+1 && t.m.Sign(r, b) != 0 {
				return nil, Ready, 0, errors.Wrapf(ErrNotCanonical, "column %d of row %d basic is not confined to its row", b, i+1)
			}
		}
	}

	minusOne := big.NewRat(-1, 1)
	one := big.NewRat(1, 1)
	var need []int
	for i := 1; i < rows; i++ {
		b := t.basic[i-1]
		rhs := t.RHS(i)
		if rhs.Sign() < 0 || (rhs.Sign() == 0 && t.m.Sign(i, b) < 0) {
			t.m.ScaleRow(i, minusOne)
		}
		if t.m.At(i, b).Cmp(one) != 0 {
			need = append(need, i)
		}
	}

	// Same rows, artificial columns inserted before the rhs.
	width := cols + len(need)
	aux := ratmat.NewDense(rows, width, nil)
	for r := 1; r < rows; r++ {
		row := t.m.Row(r)
		for j := 0; j < cols-1; j++ {
			aux.Set(r, j, row[j])
		}
		aux.Set(r, width-1, row[cols-1])
	}
	basic := t.Basic()
	for a, i := range need {
		col := cols - 1 + a
		aux.Set(i, col, one)
		aux.Set(0, col, one)
		basic[i-1] = col
	}
	for _, i := range need {
		aux.AddScaledRow(0, i, minusOne)
	}
	at := &Tableau{
		m:          aux,
		basic:      basic,
		structural: t.structural,
		slack:      t.slack,
		artificial: len(need),
	}
	s.log.WithField("artificials", len(need)).Debug("phase one tableau built")

	state, iters := s.run(at, 1, 0)
	switch state {
	case Optimal:
	case Unbounded:
		// The artificial sum is bounded below by zero.
		return nil, state, iters, errors.Wrap(ErrUnbounded, "phase one")
	default:
		return at, state, iters, nil
	}
	if w := at.RHS(0); w.Sign() != 0 {
		s.log.WithField("w", new(big.Rat).Neg(w).RatString()).Debug("artificial sum stays positive")
		return at, Infeasible, iters, nil
	}

	// Artificials still basic are at zero. Swap them for any real column
	// with a non-zero entry in their row; rows without one are redundant.
	nonArtificial := at.structural + at.slack
	for i := range at.basic {
		if at.Kind(at.basic[i]) != Artificial {
			continue
		}
		for j := 0; j < nonArtificial; j++ {
			if at.m.Sign(i+1, j) != 0 {
				s.log.WithFields(logrus.Fields{"row": i + 1, "entering": j}).Debug("driving artificial out")
				Pivot(at, i+1, j)
				iters++
				break
			}
		}
	}

	obj := t.m.Row(0)
	zero := new(big.Rat)
	for j := 0; j < width; j++ {
		aux.Set(0, j, zero)
	}
	for j := 0; j < cols-1; j++ {
		aux.Set(0, j, obj[j])
	}
	aux.Set(0, width-1, obj[cols-1])
	for i, b := range at.basic {
		if f := aux.At(0, b); f.Sign() != 0 {
			aux.AddScaledRow(0, i+1, f.Neg(f))
		}
	}
	at.lockArtificial = true
	return at, Ready, iters, nil
}
