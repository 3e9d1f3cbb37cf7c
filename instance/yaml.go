package instance

import (
	"io"
	"math/big"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"q.log/tabsimplex/model"
	"q.log/tabsimplex/ratmat"
)

// yamlRat decodes a YAML scalar such as 3, -1.5 or "2/3" exactly.
type yamlRat struct {
	*big.Rat
}

func (r *yamlRat) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return errors.Wrapf(ErrMalformed, "line %d: expected a number", n.Line)
	}
	v, err := ratmat.ParseRat(n.Value)
	if err != nil {
		return errors.Wrapf(ErrMalformed, "line %d: expected a number, got %q", n.Line, n.Value)
	}
	r.Rat = v
	return nil
}

type yamlObjective struct {
	Sense string    `yaml:"sense"`
	Coefs []yamlRat `yaml:"coefs"`
}

type yamlConstraint struct {
	Coefs []yamlRat `yaml:"coefs"`
	Rel   string    `yaml:"rel"`
	RHS   yamlRat   `yaml:"rhs"`
}

type yamlProblem struct {
	Vars        []string         `yaml:"vars,omitempty"`
	Objective   yamlObjective    `yaml:"objective"`
	Constraints []yamlConstraint `yaml:"constraints"`
}

// ParseYAML reads a problem such as
//
//	vars: [x1, x2]
//	objective:
//	  sense: max
//	  coefs: [3, 2]
//	constraints:
//	  - {coefs: [1, 1], rel: "<=", rhs: 4}
//	  - {coefs: [1, 0], rel: leq, rhs: 2}
//
// vars is optional.
func ParseYAML(r io.Reader) (*model.Problem, error) {
	var doc yamlProblem
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, ErrMalformed) {
			return nil, err
		}
		return nil, errors.Wrap(ErrMalformed, err.Error())
	}

	sense, err := model.ParseSense(doc.Objective.Sense)
	if err != nil {
		return nil, err
	}
	cons := make([]model.Constraint, len(doc.Constraints))
	for i, c := range doc.Constraints {
		rel, err := model.ParseRelation(c.Rel)
		if err != nil {
			return nil, errors.WithMessagef(err, "constraint %d", i)
		}
		cons[i] = model.Constraint{Coefs: rats(c.Coefs), Rel: rel, RHS: c.RHS.Rat}
	}

	var opts []model.Option
	if doc.Vars != nil {
		opts = append(opts, model.WithVarNames(doc.Vars...))
	}
	return model.NewProblem(model.Objective{Sense: sense, Coefs: rats(doc.Objective.Coefs)}, cons, opts...)
}

func rats(v []yamlRat) []*big.Rat {
	out := make([]*big.Rat, len(v))
	for i, r := range v {
		out[i] = r.Rat
	}
	return out
}
