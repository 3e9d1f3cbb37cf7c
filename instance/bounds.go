package instance

import (
	"math"
	"math/big"
	"strconv"

	"github.com/pkg/errors"
	"q.log/tabsimplex/model"
)

// ErrNegativeBound is returned for a variable allowed below zero. Every
// variable of a Problem is non-negative.
var ErrNegativeBound = errors.New("instance: variable lower bound below zero")

// NoBound reports whether v is the ±math.MaxFloat64 that GLPK reports for
// a missing bound.
func NoBound(v float64) bool {
	return v == -math.MaxFloat64 || v == math.MaxFloat64
}

// FloatRat converts v through its shortest decimal form, so 0.1 stays
// 1/10.
func FloatRat(v float64) *big.Rat {
	r, _ := new(big.Rat).SetString(strconv.FormatFloat(v, 'g', -1, 64))
	return r
}

// RowConstraints turns coefs bounded by lb and ub into constraints. A free
// row gives none and a row bounded on both sides gives two.
func RowConstraints(coefs []*big.Rat, lb, ub float64) []model.Constraint {
	con := func(row []*big.Rat, rel model.Relation, rhs float64) model.Constraint {
		return model.Constraint{Coefs: row, Rel: rel, RHS: FloatRat(rhs)}
	}
	switch {
	case NoBound(lb) && NoBound(ub):
		return nil
	case NoBound(lb):
		return []model.Constraint{con(coefs, model.LessEq, ub)}
	case NoBound(ub):
		return []model.Constraint{con(coefs, model.GreaterEq, lb)}
	case lb == ub:
		return []model.Constraint{con(coefs, model.Equal, lb)}
	}
	return []model.Constraint{
		con(coefs, model.GreaterEq, lb),
		con(copyRats(coefs), model.LessEq, ub),
	}
}

// ColumnConstraints turns the bounds of variable col out of n into
// constraints. x >= 0 is implied and gives nothing; a missing or negative
// lower bound cannot be expressed and fails with ErrNegativeBound.
func ColumnConstraints(name string, n, col int, lb, ub float64) ([]model.Constraint, error) {
	if NoBound(lb) || lb < 0 {
		return nil, errors.Wrapf(ErrNegativeBound, "%s has lower bound %s", name, boundString(lb))
	}
	var cons []model.Constraint
	if lb > 0 {
		cons = append(cons, model.Constraint{Coefs: unitRow(n, col), Rel: model.GreaterEq, RHS: FloatRat(lb)})
	}
	if !NoBound(ub) {
		cons = append(cons, model.Constraint{Coefs: unitRow(n, col), Rel: model.LessEq, RHS: FloatRat(ub)})
	}
	return cons, nil
}

func boundString(v float64) string {
	if NoBound(v) {
		return "-inf"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func unitRow(n, k int) []*big.Rat {
	row := make([]*big.Rat, n)
	for i := range row {
		row[i] = new(big.Rat)
	}
	row[k].SetInt64(1)
	return row
}

func copyRats(row []*big.Rat) []*big.Rat {
	out := make([]*big.Rat, len(row))
	for i, v := range row {
		out[i] = new(big.Rat).Set(v)
	}
	return out
}
