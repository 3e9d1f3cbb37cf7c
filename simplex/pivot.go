package simplex

import (
	"math/big"

	"github.com/pkg/errors"
)

// Rule selects entering and leaving variables.
type Rule int

const (
	// Dantzig enters the most negative reduced cost and leaves the first
	// row reaching the minimum ratio. It can cycle on degenerate problems.
	Dantzig Rule = iota
	// Bland enters the lowest indexed negative reduced cost and leaves the
	// minimum-ratio row whose basic variable has the lowest index. It
	// always terminates.
	Bland
)

func (r Rule) String() string {
	switch r {
	case Dantzig:
		return "dantzig"
	case Bland:
		return "bland"
	}
	return "unknown"
}

// ParseRule is the inverse of Rule.String.
func ParseRule(s string) (Rule, error) {
	switch s {
	case "dantzig", "":
		return Dantzig, nil
	case "bland":
		return Bland, nil
	}
	return 0, errors.Wrapf(ErrUnknownRule, "%q", s)
}

// EnteringColumn picks the column to bring into the basis by scanning
// row 0 without the rhs. ok is false when no reduced cost is negative,
// that is when the tableau is optimal. Artificial columns are skipped
// once phase one is over.
func EnteringColumn(t *Tableau, rule Rule) (col int, ok bool) {
	col = -1
	var best *big.Rat
	for j := 0; j < t.rhsCol(); j++ {
		if t.locked(j) {
			continue
		}
		if t.m.Sign(0, j) >= 0 {
			continue
		}
		if rule == Bland {
			return j, true
		}
		v := t.m.At(0, j)
		if best == nil || v.Cmp(best) < 0 {
			best, col = v, j
		}
	}
	return col, col >= 0
}

// LeavingRow runs the minimum ratio test on column col over rows with a
// strictly positive entry. ok is false exactly when there is no such row,
// meaning the objective is unbounded along col. The rhs is expected to be
// non-negative; a negative one still takes part and wins the test.
func LeavingRow(t *Tableau, col int, rule Rule) (row int, ok bool) {
	row = -1
	var best *big.Rat
	rhs := t.rhsCol()
	for i := 1; i <= len(t.basic); i++ {
		if t.m.Sign(i, col) <= 0 {
			continue
		}
		ratio := new(big.Rat).Quo(t.m.At(i, rhs), t.m.At(i, col))
		switch {
		case best == nil:
		case ratio.Cmp(best) < 0:
		case ratio.Cmp(best) == 0 && rule == Bland && t.basic[i-1] < t.basic[row-1]:
		default:
			continue
		}
		best, row = ratio, i
	}
	return row, row >= 0
}

// Pivot makes column col the unit vector of row by Gauss-Jordan
// elimination and records col as the basic variable of that row.
// The entry at (row, col) must be non-zero.
func Pivot(t *Tableau, row, col int) {
	pivot := t.m.At(row, col)
	if pivot.Sign() == 0 {
		panic(errors.Wrapf(ErrZeroPivot, "(%d, %d)", row, col))
	}
	rows, _ := t.m.Dims()
	f := new(big.Rat)
	for r := 0; r < rows; r++ {
		if r == row {
			continue
		}
		if t.m.Sign(r, col) == 0 {
			continue
		}
		f.Quo(t.m.At(r, col), pivot)
		t.m.AddScaledRow(r, row, f.Neg(f))
	}
	t.m.DivRow(row, pivot)
	t.basic[row-1] = col
}

func (t *Tableau) locked(j int) bool {
	return t.lockArtificial && t.Kind(j) == Artificial
}
