// Package printer renders tableaux and solve results for terminals.
package printer

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"q.log/tabsimplex/ratmat"
	"q.log/tabsimplex/simplex"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
)

// Labels names the columns and rows of t. Structural columns use names
// (x1..xn when names is nil), then s1..sm, a1..ak and rhs. Rows are z
// followed by the basic variable of each constraint row.
func Labels(t *simplex.Tableau, names []string) (cols, rows []string) {
	_, c := t.Dims()
	cols = make([]string, c)
	for j := 0; j < c; j++ {
		cols[j] = columnLabel(t, names, j)
	}
	rows = []string{"z"}
	for _, b := range t.Basic() {
		rows = append(rows, cols[b])
	}
	return cols, rows
}

func columnLabel(t *simplex.Tableau, names []string, j int) string {
	switch t.Kind(j) {
	case simplex.Structural:
		if j < len(names) {
			return names[j]
		}
		return fmt.Sprintf("x%d", j+1)
	case simplex.Slack:
		return fmt.Sprintf("s%d", j-t.NumStructural()+1)
	case simplex.Artificial:
		return fmt.Sprintf("a%d", j-t.NumStructural()-t.NumSlack()+1)
	}
	return "rhs"
}

// Tableau writes t as a table with exact rational entries.
func Tableau(w io.Writer, t *simplex.Tableau, names []string) error {
	cols, rows := Labels(t, names)

	header := make([]any, 0, len(cols)+1)
	header = append(header, "")
	for _, c := range cols {
		header = append(header, c)
	}

	table := tablewriter.NewWriter(w)
	table.Header(header...)
	for i, label := range rows {
		line := []string{label}
		for _, v := range t.Matrix().Row(i) {
			line = append(line, v.RatString())
		}
		if err := table.Append(line); err != nil {
			return err
		}
	}
	return table.Render()
}

// Matrix writes a float approximation of t the way gonum formats matrices.
func Matrix(w io.Writer, t *simplex.Tableau) {
	f := mat.Formatted(ratmat.Float(t.Matrix()), mat.Prefix("    "), mat.Squeeze())
	fmt.Fprintf(w, "T = %v\n", f)
}

// Status writes a one line, coloured summary of res.
func Status(w io.Writer, res *simplex.Result) {
	switch res.State {
	case simplex.Optimal:
		green.Fprintf(w, "✓ optimal after %d pivots\n", res.PhaseOneIterations+res.Iterations)
	case simplex.Unbounded:
		red.Fprintln(w, "✗ unbounded: the objective has no finite optimum")
	case simplex.Infeasible:
		red.Fprintln(w, "✗ infeasible: no point satisfies every constraint")
	default:
		yellow.Fprintf(w, "⚠️  stopped: %s\n", res.State)
	}
}

// Solution writes the variable values and the objective value of res,
// when it has a feasible point.
func Solution(w io.Writer, res *simplex.Result, names []string) {
	x := res.Solution()
	if x == nil {
		return
	}
	for k, v := range x {
		name := fmt.Sprintf("x%d", k+1)
		if k < len(names) {
			name = names[k]
		}
		fmt.Fprintf(w, "%s = %s\n", name, v.RatString())
	}
	fmt.Fprintf(w, "objective = %s\n", res.Objective().RatString())
}

// Error writes a red title and the error to stderr and returns err
// annotated with the title.
func Error(title string, err error) error {
	red.Fprintf(os.Stderr, "%s\n\n", title)
	fmt.Fprintf(os.Stderr, "%v\n", err)
	return errors.WithMessage(err, title)
}
