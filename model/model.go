// Package model holds the validated description of a linear program:
// an objective and an ordered list of constraints over non-negative
// structural variables.
package model

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"
)

var (
	ErrUnknownProblemType = errors.New("model: unknown problem type")
	ErrUnknownRestType    = errors.New("model: unknown restriction type")
	ErrVarsMismatch       = errors.New("model: variables number mismatch")
	ErrMissingValue       = errors.New("model: missing value")
	ErrInfeasiblePoint    = errors.New("model: point violates the problem")
)

// Sense is the direction of optimization.
type Sense string

const (
	Maximize Sense = "max"
	Minimize Sense = "min"
)

// ParseSense accepts "max"/"maximize" and "min"/"minimize".
func ParseSense(s string) (Sense, error) {
	switch s {
	case "max", "maximize":
		return Maximize, nil
	case "min", "minimize":
		return Minimize, nil
	}
	return "", errors.Wrapf(ErrUnknownProblemType, "%q", s)
}

// Relation compares a constraint's left-hand side with its rhs.
type Relation string

const (
	LessEq    Relation = "<="
	GreaterEq Relation = ">="
	Equal     Relation = "="
)

// ParseRelation accepts the symbolic relations and the leq/geq/eq tokens.
func ParseRelation(s string) (Relation, error) {
	switch s {
	case "<=", "leq":
		return LessEq, nil
	case ">=", "geq":
		return GreaterEq, nil
	case "=", "==", "eq":
		return Equal, nil
	}
	return "", errors.Wrapf(ErrUnknownRestType, "%q", s)
}

type Objective struct {
	Sense Sense
	Coefs []*big.Rat
}

type Constraint struct {
	Coefs []*big.Rat
	Rel   Relation
	RHS   *big.Rat
}

// Problem is an immutable linear program. Build it with NewProblem.
type Problem struct {
	names []string
	obj   Objective
	cons  []Constraint
}

type Option func(*Problem)

// WithVarNames names the structural variables. The count is validated
// against the objective.
func WithVarNames(names ...string) Option {
	return func(p *Problem) {
		p.names = append([]string(nil), names...)
	}
}

// NewProblem validates obj and cons and returns a Problem holding deep
// copies of them.
func NewProblem(obj Objective, cons []Constraint, opts ...Option) (*Problem, error) {
	p := &Problem{}
	for _, opt := range opts {
		opt(p)
	}

	if obj.Sense != Maximize && obj.Sense != Minimize {
		return nil, errors.Wrapf(ErrUnknownProblemType, "%q", obj.Sense)
	}
	nvars := len(obj.Coefs)
	if nvars == 0 {
		return nil, errors.Wrap(ErrVarsMismatch, "objective has no coefficients")
	}
	if p.names != nil && len(p.names) != nvars {
		return nil, errors.Wrapf(ErrVarsMismatch, "%d variable names for %d objective coefficients", len(p.names), nvars)
	}
	coefs, err := copyRats(obj.Coefs)
	if err != nil {
		return nil, errors.WithMessage(err, "objective")
	}
	p.obj = Objective{Sense: obj.Sense, Coefs: coefs}

	p.cons = make([]Constraint, len(cons))
	for i, c := range cons {
		switch c.Rel {
		case LessEq, GreaterEq, Equal:
		default:
			return nil, errors.Wrapf(ErrUnknownRestType, "constraint %d: %q", i, c.Rel)
		}
		if len(c.Coefs) != nvars {
			return nil, errors.Wrapf(ErrVarsMismatch, "constraint %d has %d coefficients, objective has %d", i, len(c.Coefs), nvars)
		}
		coefs, err := copyRats(c.Coefs)
		if err != nil {
			return nil, errors.WithMessagef(err, "constraint %d", i)
		}
		if c.RHS == nil {
			return nil, errors.Wrapf(ErrMissingValue, "constraint %d: rhs", i)
		}
		p.cons[i] = Constraint{Coefs: coefs, Rel: c.Rel, RHS: new(big.Rat).Set(c.RHS)}
	}

	return p, nil
}

func copyRats(v []*big.Rat) ([]*big.Rat, error) {
	out := make([]*big.Rat, len(v))
	for i, r := range v {
		if r == nil {
			return nil, errors.Wrapf(ErrMissingValue, "coefficient %d", i)
		}
		out[i] = new(big.Rat).Set(r)
	}
	return out, nil
}

// NumVars returns the number of structural variables.
func (p *Problem) NumVars() int { return len(p.obj.Coefs) }

// NumConstraints returns the number of constraints.
func (p *Problem) NumConstraints() int { return len(p.cons) }

func (p *Problem) Sense() Sense { return p.obj.Sense }

// ObjectiveCoefs returns a copy of the objective coefficients.
func (p *Problem) ObjectiveCoefs() []*big.Rat {
	out, _ := copyRats(p.obj.Coefs)
	return out
}

// Constraint returns a copy of constraint i.
func (p *Problem) Constraint(i int) Constraint {
	c := p.cons[i]
	coefs, _ := copyRats(c.Coefs)
	return Constraint{Coefs: coefs, Rel: c.Rel, RHS: new(big.Rat).Set(c.RHS)}
}

// Constraints returns copies of every constraint in order.
func (p *Problem) Constraints() []Constraint {
	out := make([]Constraint, len(p.cons))
	for i := range p.cons {
		out[i] = p.Constraint(i)
	}
	return out
}

// VarNames returns the variable names, defaulting to x1..xn.
func (p *Problem) VarNames() []string {
	if p.names != nil {
		return append([]string(nil), p.names...)
	}
	names := make([]string, p.NumVars())
	for i := range names {
		names[i] = fmt.Sprintf("x%d", i+1)
	}
	return names
}

// Evaluate returns the objective value at x.
func (p *Problem) Evaluate(x []*big.Rat) *big.Rat {
	return dot(p.obj.Coefs, x)
}

// Check verifies that x is non-negative and satisfies every constraint.
func (p *Problem) Check(x []*big.Rat) error {
	if len(x) != p.NumVars() {
		return errors.Wrapf(ErrVarsMismatch, "point has %d values, problem has %d variables", len(x), p.NumVars())
	}
	for k, v := range x {
		if v.Sign() < 0 {
			return errors.Wrapf(ErrInfeasiblePoint, "variable %d is negative (%s)", k, v.RatString())
		}
	}
	for i, c := range p.cons {
		lhs := dot(c.Coefs, x)
		cmp := lhs.Cmp(c.RHS)
		ok := (c.Rel == LessEq && cmp <= 0) ||
			(c.Rel == GreaterEq && cmp >= 0) ||
			(c.Rel == Equal && cmp == 0)
		if !ok {
			return errors.Wrapf(ErrInfeasiblePoint, "constraint %d: %s %s %s does not hold",
				i, lhs.RatString(), c.Rel, c.RHS.RatString())
		}
	}
	return nil
}

func dot(a, b []*big.Rat) *big.Rat {
	sum := new(big.Rat)
	var tmp big.Rat
	for i := range a {
		sum.Add(sum, tmp.Mul(a[i], b[i]))
	}
	return sum
}
