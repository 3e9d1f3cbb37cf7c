// Package instance reads linear programs from files.
package instance

import (
	"bufio"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"q.log/tabsimplex/model"
	"q.log/tabsimplex/ratmat"
)

var (
	ErrMalformed         = errors.New("instance: malformed data")
	ErrUnsupportedFormat = errors.New("instance: unsupported format")
)

// Format names an input file format.
type Format string

const (
	Text Format = "text"
	YAML Format = "yaml"
	MPS  Format = "mps"
)

// ParseFormat maps a format name to a Format. "auto" and "" detect the
// format from filename.
func ParseFormat(name, filename string) (Format, error) {
	switch name {
	case "", "auto":
		return DetectFormat(filename), nil
	case string(Text), string(YAML), string(MPS):
		return Format(name), nil
	}
	return "", errors.Wrapf(ErrUnsupportedFormat, "%q", name)
}

// DetectFormat guesses the format from the file extension. Anything that
// is neither YAML nor MPS is read as text.
func DetectFormat(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return YAML
	case ".mps":
		return MPS
	}
	return Text
}

// ReadFile reads a problem in the text or YAML format.
func ReadFile(filename string, f Format) (*model.Problem, error) {
	var parse func(io.Reader) (*model.Problem, error)
	switch f {
	case Text:
		parse = Parse
	case YAML:
		parse = ParseYAML
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%s files are not read by this package", f)
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "instance: open problem file")
	}
	defer file.Close()

	p, err := parse(file)
	if err != nil {
		return nil, errors.WithMessage(err, filename)
	}
	return p, nil
}

var identifier = regexp.MustCompile(`^[A-Za-z_]\w*$`)

type lineReader struct {
	sc   *bufio.Scanner
	line int
}

// next returns the next non blank, non comment line, or "" at the end.
func (l *lineReader) next() string {
	for l.sc.Scan() {
		l.line++
		line := strings.TrimSpace(l.sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return line
	}
	return ""
}

func (l *lineReader) errorf(format string, args ...any) error {
	return errors.Wrapf(ErrMalformed, "line %d: "+format, append([]any{l.line}, args...)...)
}

// Parse reads a problem written as
//
//	vars: x1 x2
//	obj: min 3 8
//	rests:
//	1 1 geq 8
//	2 -3 leq 0
//
// Constraint lines hold the coefficients, a relation (leq, geq, eq, <=,
// >=, =) and the right-hand side. Numbers may be integers, decimals or
// fractions.
func Parse(r io.Reader) (*model.Problem, error) {
	lr := &lineReader{sc: bufio.NewScanner(r)}

	vars, err := lr.section("vars:")
	if err != nil {
		return nil, err
	}
	if len(vars) == 0 {
		return nil, lr.errorf("no variables declared")
	}
	seen := make(map[string]bool, len(vars))
	for _, v := range vars {
		if !identifier.MatchString(v) {
			return nil, lr.errorf("bad variable name %q", v)
		}
		if seen[v] {
			return nil, lr.errorf("variable %q declared twice", v)
		}
		seen[v] = true
	}

	obj, err := lr.section("obj:")
	if err != nil {
		return nil, err
	}
	if len(obj) < 2 {
		return nil, lr.errorf("objective needs a sense and coefficients")
	}
	sense, err := model.ParseSense(obj[0])
	if err != nil {
		return nil, errors.WithMessagef(err, "line %d", lr.line)
	}
	objCoefs, err := lr.numbers(obj[1:])
	if err != nil {
		return nil, err
	}

	rests, err := lr.section("rests:")
	if err != nil {
		return nil, err
	}
	if len(rests) != 0 {
		return nil, lr.errorf("unexpected %q after rests:", strings.Join(rests, " "))
	}

	var cons []model.Constraint
	for line := lr.next(); line != ""; line = lr.next() {
		c, err := lr.constraint(strings.Fields(line))
		if err != nil {
			return nil, err
		}
		cons = append(cons, c)
	}
	if err := lr.sc.Err(); err != nil {
		return nil, errors.Wrap(err, "instance: read problem")
	}

	return model.NewProblem(
		model.Objective{Sense: sense, Coefs: objCoefs},
		cons,
		model.WithVarNames(vars...),
	)
}

// section reads the next line, which must start with the given marker,
// and returns the fields after it.
func (l *lineReader) section(marker string) ([]string, error) {
	line := l.next()
	if line == "" {
		if err := l.sc.Err(); err != nil {
			return nil, errors.Wrap(err, "instance: read problem")
		}
		return nil, l.errorf("missing %q section", marker)
	}
	if !strings.HasPrefix(line, marker) {
		return nil, l.errorf("expected %q, got %q", marker, line)
	}
	return strings.Fields(strings.TrimPrefix(line, marker)), nil
}

func (l *lineReader) constraint(fields []string) (model.Constraint, error) {
	if len(fields) < 3 {
		return model.Constraint{}, l.errorf("constraint needs coefficients, a relation and a rhs")
	}
	rel, err := model.ParseRelation(fields[len(fields)-2])
	if err != nil {
		return model.Constraint{}, errors.WithMessagef(err, "line %d", l.line)
	}
	nums, err := l.numbers(append(fields[:len(fields)-2:len(fields)-2], fields[len(fields)-1]))
	if err != nil {
		return model.Constraint{}, err
	}
	return model.Constraint{
		Coefs: nums[:len(nums)-1],
		Rel:   rel,
		RHS:   nums[len(nums)-1],
	}, nil
}

func (l *lineReader) numbers(fields []string) ([]*big.Rat, error) {
	out := make([]*big.Rat, len(fields))
	for i, f := range fields {
		r, err := ratmat.ParseRat(f)
		if err != nil {
			return nil, l.errorf("expected a number, got %q", f)
		}
		out[i] = r
	}
	return out, nil
}
