package model

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ints(ns ...int64) []*big.Rat {
	out := make([]*big.Rat, len(ns))
	for i, n := range ns {
		out[i] = big.NewRat(n, 1)
	}
	return out
}

func example(t *testing.T) *Problem {
	t.Helper()
	p, err := NewProblem(
		Objective{Sense: Maximize, Coefs: ints(3, 2)},
		[]Constraint{
			{Coefs: ints(1, 1), Rel: LessEq, RHS: big.NewRat(4, 1)},
			{Coefs: ints(1, 0), Rel: LessEq, RHS: big.NewRat(2, 1)},
			{Coefs: ints(0, 1), Rel: LessEq, RHS: big.NewRat(3, 1)},
		},
	)
	require.NoError(t, err)
	return p
}

func TestNewProblem(t *testing.T) {
	p := example(t)
	assert.Equal(t, 2, p.NumVars())
	assert.Equal(t, 3, p.NumConstraints())
	assert.Equal(t, Maximize, p.Sense())
	assert.Equal(t, []string{"x1", "x2"}, p.VarNames())

	c := p.Constraint(1)
	assert.Equal(t, LessEq, c.Rel)
	assert.Equal(t, "2", c.RHS.RatString())
}

func TestNewProblemErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		obj  Objective
		cons []Constraint
		opts []Option
		want error
	}{
		{
			name: "unknown sense",
			obj:  Objective{Sense: "maximise", Coefs: ints(1)},
			want: ErrUnknownProblemType,
		},
		{
			name: "unknown relation",
			obj:  Objective{Sense: Minimize, Coefs: ints(1)},
			cons: []Constraint{{Coefs: ints(1), Rel: "<", RHS: big.NewRat(1, 1)}},
			want: ErrUnknownRestType,
		},
		{
			name: "coefficient length mismatch",
			obj:  Objective{Sense: Maximize, Coefs: ints(1, 2)},
			cons: []Constraint{{Coefs: ints(1, 2, 3), Rel: LessEq, RHS: big.NewRat(1, 1)}},
			want: ErrVarsMismatch,
		},
		{
			name: "empty objective",
			obj:  Objective{Sense: Maximize},
			want: ErrVarsMismatch,
		},
		{
			name: "name count mismatch",
			obj:  Objective{Sense: Maximize, Coefs: ints(1, 2)},
			opts: []Option{WithVarNames("a")},
			want: ErrVarsMismatch,
		},
		{
			name: "nil rhs",
			obj:  Objective{Sense: Maximize, Coefs: ints(1)},
			cons: []Constraint{{Coefs: ints(1), Rel: GreaterEq}},
			want: ErrMissingValue,
		},
		{
			name: "nil coefficient",
			obj:  Objective{Sense: Maximize, Coefs: []*big.Rat{nil}},
			want: ErrMissingValue,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p, err := NewProblem(tc.obj, tc.cons, tc.opts...)
			require.ErrorIs(t, err, tc.want)
			require.Nil(t, p)
		})
	}
}

func TestProblemIsImmutable(t *testing.T) {
	coefs := ints(3, 2)
	rhs := big.NewRat(4, 1)
	p, err := NewProblem(
		Objective{Sense: Maximize, Coefs: coefs},
		[]Constraint{{Coefs: ints(1, 1), Rel: LessEq, RHS: rhs}},
	)
	require.NoError(t, err)

	coefs[0].SetInt64(100)
	rhs.SetInt64(100)
	p.ObjectiveCoefs()[1].SetInt64(100)
	p.Constraint(0).Coefs[0].SetInt64(100)

	assert.Equal(t, "3", p.ObjectiveCoefs()[0].RatString())
	assert.Equal(t, "2", p.ObjectiveCoefs()[1].RatString())
	assert.Equal(t, "4", p.Constraint(0).RHS.RatString())
	assert.Equal(t, "1", p.Constraint(0).Coefs[0].RatString())
}

func TestParse(t *testing.T) {
	s, err := ParseSense("minimize")
	require.NoError(t, err)
	assert.Equal(t, Minimize, s)
	_, err = ParseSense("best")
	require.ErrorIs(t, err, ErrUnknownProblemType)

	for in, want := range map[string]Relation{"leq": LessEq, ">=": GreaterEq, "geq": GreaterEq, "eq": Equal, "=": Equal} {
		r, err := ParseRelation(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, r, in)
	}
	_, err = ParseRelation("lt")
	require.ErrorIs(t, err, ErrUnknownRestType)
}

func TestEvaluateAndCheck(t *testing.T) {
	p := example(t)

	assert.Equal(t, "10", p.Evaluate(ints(2, 2)).RatString())
	require.NoError(t, p.Check(ints(2, 2)))
	require.NoError(t, p.Check(ints(0, 0)))

	require.ErrorIs(t, p.Check(ints(3, 0)), ErrInfeasiblePoint)
	require.ErrorIs(t, p.Check(ints(-1, 0)), ErrInfeasiblePoint)
	require.ErrorIs(t, p.Check(ints(1)), ErrVarsMismatch)
}

func TestCheckEquality(t *testing.T) {
	p, err := NewProblem(
		Objective{Sense: Minimize, Coefs: ints(1, 1)},
		[]Constraint{
			{Coefs: ints(1, 1), Rel: Equal, RHS: big.NewRat(3, 1)},
			{Coefs: ints(1, 0), Rel: GreaterEq, RHS: big.NewRat(1, 2)},
		},
		WithVarNames("a", "b"),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, p.VarNames())

	require.NoError(t, p.Check([]*big.Rat{big.NewRat(1, 2), big.NewRat(5, 2)}))
	require.ErrorIs(t, p.Check(ints(1, 1)), ErrInfeasiblePoint)
	require.ErrorIs(t, p.Check(ints(0, 3)), ErrInfeasiblePoint)
}
