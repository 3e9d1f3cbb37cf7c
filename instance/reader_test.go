package instance

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"q.log/tabsimplex/model"
)

func ratStrings(v []*big.Rat) []string {
	out := make([]string, len(v))
	for i, r := range v {
		out[i] = r.RatString()
	}
	return out
}

func requireExample(t *testing.T, p *model.Problem) {
	t.Helper()
	assert.Equal(t, model.Maximize, p.Sense())
	assert.Equal(t, []string{"x1", "x2"}, p.VarNames())
	assert.Equal(t, []string{"3", "2"}, ratStrings(p.ObjectiveCoefs()))
	require.Equal(t, 3, p.NumConstraints())
	for i, want := range []struct {
		coefs []string
		rhs   string
	}{
		{[]string{"1", "1"}, "4"},
		{[]string{"1", "0"}, "2"},
		{[]string{"0", "1"}, "3"},
	} {
		c := p.Constraint(i)
		assert.Equal(t, want.coefs, ratStrings(c.Coefs))
		assert.Equal(t, model.LessEq, c.Rel)
		assert.Equal(t, want.rhs, c.RHS.RatString())
	}
}

func TestReadFile(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		p, err := ReadFile("testdata/example.lp", Text)
		require.NoError(t, err)
		requireExample(t, p)
	})

	t.Run("yaml", func(t *testing.T) {
		p, err := ReadFile("testdata/example.yaml", YAML)
		require.NoError(t, err)
		requireExample(t, p)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadFile("testdata/nope.lp", Text)
		require.Error(t, err)
	})

	t.Run("mps is not read here", func(t *testing.T) {
		_, err := ReadFile("testdata/example.lp", MPS)
		require.ErrorIs(t, err, ErrUnsupportedFormat)
	})
}

func TestParseDiet(t *testing.T) {
	p, err := ReadFile("testdata/diet.lp", Text)
	require.NoError(t, err)
	assert.Equal(t, model.Minimize, p.Sense())
	require.Equal(t, 6, p.NumConstraints())
	assert.Equal(t, model.GreaterEq, p.Constraint(0).Rel)
	assert.Equal(t, model.LessEq, p.Constraint(1).Rel)
	assert.Equal(t, []string{"2", "-3"}, ratStrings(p.Constraint(1).Coefs))
	assert.Equal(t, "9", p.Constraint(5).RHS.RatString())
}

func TestParseNumbersAndRelations(t *testing.T) {
	src := `vars: a b
obj: min 1/2 -0.25
rests:
1 1 eq 3/2
2 0 >= 1.5
0 1 <= 4
`
	p, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, p.VarNames())
	assert.Equal(t, []string{"1/2", "-1/4"}, ratStrings(p.ObjectiveCoefs()))
	assert.Equal(t, model.Equal, p.Constraint(0).Rel)
	assert.Equal(t, "3/2", p.Constraint(0).RHS.RatString())
	assert.Equal(t, model.GreaterEq, p.Constraint(1).Rel)
	assert.Equal(t, model.LessEq, p.Constraint(2).Rel)
}

func TestParseErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		src  string
		want error
	}{
		{"empty", "", ErrMalformed},
		{"no vars line", "obj: max 1\nrests:\n", ErrMalformed},
		{"no variables", "vars:\nobj: max 1\nrests:\n", ErrMalformed},
		{"bad variable name", "vars: 1x\nobj: max 1\nrests:\n", ErrMalformed},
		{"duplicate variable", "vars: x x\nobj: max 1 1\nrests:\n", ErrMalformed},
		{"unknown sense", "vars: x\nobj: best 1\nrests:\n", model.ErrUnknownProblemType},
		{"objective without coefficients", "vars: x\nobj: max\nrests:\n", ErrMalformed},
		{"bad number", "vars: x\nobj: max one\nrests:\n", ErrMalformed},
		{"objective length", "vars: x y\nobj: max 1\nrests:\n", model.ErrVarsMismatch},
		{"missing rests", "vars: x\nobj: max 1\n", ErrMalformed},
		{"unknown relation", "vars: x\nobj: max 1\nrests:\n1 lt 3\n", model.ErrUnknownRestType},
		{"short constraint", "vars: x\nobj: max 1\nrests:\nleq 3\n", ErrMalformed},
		{"constraint length", "vars: x y\nobj: max 1 1\nrests:\n1 leq 3\n", model.ErrVarsMismatch},
		{"bad rhs", "vars: x\nobj: max 1\nrests:\n1 leq three\n", ErrMalformed},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.src))
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestParseErrorCarriesLine(t *testing.T) {
	_, err := Parse(strings.NewReader("vars: x\nobj: max 1\nrests:\n1 leq 1\n1 leq x\n"))
	require.ErrorIs(t, err, ErrMalformed)
	assert.Contains(t, err.Error(), "line 5")
}

func TestParseYAML(t *testing.T) {
	p, err := ReadFile("testdata/unbounded.yaml", YAML)
	require.NoError(t, err)
	assert.Equal(t, model.Maximize, p.Sense())
	assert.Equal(t, []string{"x1", "x2"}, p.VarNames())
	assert.Equal(t, []string{"1", "-1"}, ratStrings(p.Constraint(0).Coefs))

	for _, tc := range []struct {
		name string
		src  string
		want error
	}{
		{"empty", "", ErrMalformed},
		{"unknown field", "objective: {sense: max, coefs: [1]}\nlimits: 3\n", ErrMalformed},
		{"bad number", "objective: {sense: max, coefs: [one]}\n", ErrMalformed},
		{"list as number", "objective: {sense: max, coefs: [[1]]}\n", ErrMalformed},
		{"unknown sense", "objective: {sense: up, coefs: [1]}\n", model.ErrUnknownProblemType},
		{"unknown relation", "objective: {sense: max, coefs: [1]}\nconstraints:\n  - {coefs: [1], rel: lt, rhs: 1}\n", model.ErrUnknownRestType},
		{"missing rhs", "objective: {sense: max, coefs: [1]}\nconstraints:\n  - {coefs: [1], rel: leq}\n", model.ErrMissingValue},
		{"length", "objective: {sense: max, coefs: [1, 2]}\nconstraints:\n  - {coefs: [1], rel: leq, rhs: 1}\n", model.ErrVarsMismatch},
		{"names", "vars: [a]\nobjective: {sense: max, coefs: [1, 2]}\n", model.ErrVarsMismatch},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseYAML(strings.NewReader(tc.src))
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestFormats(t *testing.T) {
	assert.Equal(t, YAML, DetectFormat("a/b.yml"))
	assert.Equal(t, YAML, DetectFormat("b.YAML"))
	assert.Equal(t, MPS, DetectFormat("afiro.mps"))
	assert.Equal(t, Text, DetectFormat("diet.lp"))
	assert.Equal(t, Text, DetectFormat("noext"))

	f, err := ParseFormat("auto", "x.yaml")
	require.NoError(t, err)
	assert.Equal(t, YAML, f)
	f, err = ParseFormat("text", "x.yaml")
	require.NoError(t, err)
	assert.Equal(t, Text, f)
	_, err = ParseFormat("json", "x.json")
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}
