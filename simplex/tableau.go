package simplex

import (
	"math/big"

	"github.com/pkg/errors"
	"q.log/tabsimplex/model"
	"q.log/tabsimplex/ratmat"
)

// ColumnKind tells what a tableau column stands for.
type ColumnKind int

const (
	Structural ColumnKind = iota
	Slack
	Artificial
	RHS
)

// Tableau is an LP in canonical form: row 0 is the objective row, rows
// 1..m are constraints and the last column is the right-hand side.
// basic[i] is the column of the variable basic in row i+1.
type Tableau struct {
	m          ratmat.Matrix
	basic      []int
	structural int
	slack      int
	artificial int

	// lockArtificial keeps artificial columns out of the basis in phase two.
	lockArtificial bool
}

// NewTableau wraps m, which must have len(basic)+1 rows and at least
// structural+len(basic)+1 columns. Columns past the slack block and before
// the rhs are artificial.
func NewTableau(m ratmat.Matrix, basic []int, structural int) (*Tableau, error) {
	r, c := m.Dims()
	rows := len(basic)
	if r != rows+1 || structural < 0 || c < structural+rows+1 {
		return nil, errors.Wrapf(ErrShape, "%dx%d matrix for %d structural variables and %d rows", r, c, structural, rows)
	}
	for i, b := range basic {
		if b < 0 || b >= c-1 {
			return nil, errors.Wrapf(ErrShape, "basic variable %d of row %d is not a column", b, i+1)
		}
	}
	return &Tableau{
		m:          m,
		basic:      append([]int(nil), basic...),
		structural: structural,
		slack:      rows,
		artificial: c - 1 - structural - rows,
	}, nil
}

// StandardForm builds the initial tableau of p with every slack/surplus
// variable basic. Equality rows have no slack variable, so their slack
// column is left at zero and the row is not canonical until phase one
// gives it an artificial. The slack block is thus not a plain identity: a
// 1 in an equality row would turn = into <=.
func StandardForm(p *model.Problem) (*Tableau, error) {
	if p == nil {
		return nil, ErrNilProblem
	}
	n, m := p.NumVars(), p.NumConstraints()
	cols := n + m + 1
	mat := ratmat.NewDense(m+1, cols, nil)

	for j, c := range p.ObjectiveCoefs() {
		if p.Sense() == model.Maximize {
			c.Neg(c)
		}
		mat.Set(0, j, c)
	}

	one, minusOne := big.NewRat(1, 1), big.NewRat(-1, 1)
	basic := make([]int, m)
	for i, c := range p.Constraints() {
		row := i + 1
		for j, v := range c.Coefs {
			mat.Set(row, j, v)
		}
		switch c.Rel {
		case model.LessEq:
			mat.Set(row, n+i, one)
		case model.GreaterEq:
			mat.Set(row, n+i, minusOne)
		}
		mat.Set(row, cols-1, c.RHS)
		basic[i] = n + i
	}

	return &Tableau{m: mat, basic: basic, structural: n, slack: m}, nil
}

// FromSpec validates obj and cons into a Problem and builds its standard
// form. Model errors are returned as they are.
func FromSpec(obj model.Objective, cons []model.Constraint, opts ...model.Option) (*model.Problem, *Tableau, error) {
	p, err := model.NewProblem(obj, cons, opts...)
	if err != nil {
		return nil, nil, err
	}
	t, err := StandardForm(p)
	if err != nil {
		return nil, nil, err
	}
	return p, t, nil
}

// Matrix exposes the underlying matrix. Callers must treat it as read-only.
func (t *Tableau) Matrix() ratmat.Matrix { return t.m }

func (t *Tableau) Dims() (r, c int) { return t.m.Dims() }

func (t *Tableau) At(i, j int) *big.Rat { return t.m.At(i, j) }

// Basic returns a copy of the basic-variable array.
func (t *Tableau) Basic() []int { return append([]int(nil), t.basic...) }

func (t *Tableau) NumStructural() int { return t.structural }
func (t *Tableau) NumSlack() int      { return t.slack }
func (t *Tableau) NumArtificial() int { return t.artificial }

// NumRows returns the number of constraint rows.
func (t *Tableau) NumRows() int { return len(t.basic) }

func (t *Tableau) rhsCol() int {
	_, c := t.m.Dims()
	return c - 1
}

// RHS returns the right-hand side of row i; row 0 holds the negated
// value of the objective being minimized.
func (t *Tableau) RHS(i int) *big.Rat { return t.m.At(i, t.rhsCol()) }

// Kind classifies column j.
func (t *Tableau) Kind(j int) ColumnKind {
	switch {
	case j < t.structural:
		return Structural
	case j < t.structural+t.slack:
		return Slack
	case j < t.rhsCol():
		return Artificial
	}
	return RHS
}

// Clone returns an independent copy of t.
func (t *Tableau) Clone() *Tableau {
	c := *t
	c.m = ratmat.Clone(t.m)
	c.basic = t.Basic()
	return &c
}

// CheckCanonical verifies that the column of every basic variable is the
// unit vector of its row, row 0 included.
func (t *Tableau) CheckCanonical() error {
	rows, _ := t.m.Dims()
	for i, b := range t.basic {
		for r := 0; r < rows; r++ {
			v := t.m.At(r, b)
			want := 0
			if r == i+1 {
				want = 1
			}
			if v.Cmp(big.NewRat(int64(want), 1)) != 0 {
				return errors.Wrapf(ErrNotCanonical, "column %d of row %d basic has %s at row %d", b, i+1, v.RatString(), r)
			}
		}
	}
	return nil
}

// values returns the current value of every column variable.
func (t *Tableau) values() []*big.Rat {
	_, c := t.m.Dims()
	x := make([]*big.Rat, c-1)
	for j := range x {
		x[j] = new(big.Rat)
	}
	for i, b := range t.basic {
		x[b] = t.RHS(i + 1)
	}
	return x
}
