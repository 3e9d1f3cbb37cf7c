package simplex

import (
	"io"
	"math/big"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"q.log/tabsimplex/model"
	"q.log/tabsimplex/ratmat"
)

type row struct {
	coefs []*big.Rat
	rel   model.Relation
	rhs   *big.Rat
}

func le(rhs int64, coefs ...int64) row {
	return row{ratmat.Rats(coefs...), model.LessEq, ratmat.Int(rhs)}
}

func ge(rhs int64, coefs ...int64) row {
	return row{ratmat.Rats(coefs...), model.GreaterEq, ratmat.Int(rhs)}
}

func eq(rhs int64, coefs ...int64) row {
	return row{ratmat.Rats(coefs...), model.Equal, ratmat.Int(rhs)}
}

func newProblem(t *testing.T, sense model.Sense, obj []*big.Rat, rows ...row) *model.Problem {
	t.Helper()
	cons := make([]model.Constraint, len(rows))
	for i, r := range rows {
		cons[i] = model.Constraint{Coefs: r.coefs, Rel: r.rel, RHS: r.rhs}
	}
	p, err := model.NewProblem(model.Objective{Sense: sense, Coefs: obj}, cons)
	require.NoError(t, err)
	return p
}

// exampleProblem is max 3x1 + 2x2 s.t. x1 + x2 <= 4, x1 <= 2, x2 <= 3.
func exampleProblem(t *testing.T) *model.Problem {
	return newProblem(t, model.Maximize, ratmat.Rats(3, 2),
		le(4, 1, 1),
		le(2, 1, 0),
		le(3, 0, 1),
	)
}

// bealeProblem cycles under the largest coefficient rule.
func bealeProblem(t *testing.T) *model.Problem {
	r := big.NewRat
	return newProblem(t, model.Minimize,
		[]*big.Rat{r(-3, 4), r(20, 1), r(-1, 2), r(6, 1)},
		row{[]*big.Rat{r(1, 4), r(-8, 1), r(-1, 1), r(9, 1)}, model.LessEq, r(0, 1)},
		row{[]*big.Rat{r(1, 2), r(-12, 1), r(-1, 2), r(3, 1)}, model.LessEq, r(0, 1)},
		row{[]*big.Rat{r(0, 1), r(0, 1), r(1, 1), r(0, 1)}, model.LessEq, r(1, 1)},
	)
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func tableauRows(tb *Tableau) [][]string {
	r, _ := tb.Dims()
	out := make([][]string, r)
	for i := 0; i < r; i++ {
		for _, v := range tb.Matrix().Row(i) {
			out[i] = append(out[i], v.RatString())
		}
	}
	return out
}

func ratStrings(v []*big.Rat) []string {
	out := make([]string, len(v))
	for i, r := range v {
		out[i] = r.RatString()
	}
	return out
}
