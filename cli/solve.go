package cli

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"q.log/tabsimplex/crosscheck"
	"q.log/tabsimplex/model"
	"q.log/tabsimplex/printer"
	"q.log/tabsimplex/simplex"
)

const crossCheckTolerance = 1e-9

func newSolveCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve FILE",
		Short: "Solve a linear program and print the final tableau",
		Example: `  tabsimplex solve model.lp
  tabsimplex solve --rule bland --trace model.yaml
  TABSIMPLEX_MAX_ITERATIONS=20 tabsimplex solve model.mps`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(a.v)
			if err != nil {
				return printer.Error("Invalid configuration", err)
			}
			return a.solve(cmd.OutOrStdout(), args[0], cfg)
		},
	}

	addSolveFlags(cmd.Flags())
	return cmd
}

func addSolveFlags(flags *pflag.FlagSet) {
	addFormatFlag(flags)
	flags.String("rule", simplex.Dantzig.String(), "entering column rule: dantzig or bland")
	flags.Int("max-iterations", 0, "stop after this many pivots, 0 for no limit")
	flags.Bool("phase-one", true, "search for a feasible basis when the slack basis is not one")
	flags.Bool("trace", false, "print the tableau after every pivot")
	flags.Bool("cross-check", false, "compare the result with gonum's floating point simplex")
	flags.Bool("float-view", false, "also print the final tableau in floating point")
}

func (a *app) solve(out io.Writer, filename string, cfg Config) error {
	log := a.log.WithFields(logrus.Fields{
		"run":  uuid.NewString(),
		"file": filename,
	})

	p, err := a.read(filename, cfg.Format)
	if err != nil {
		return printer.Error("Cannot read problem", err)
	}
	names := p.VarNames()
	log.WithField("format", cfg.Format).Debug("problem loaded")

	opts := append(cfg.options(), simplex.WithLogger(log))
	var traceErr error
	if cfg.Trace {
		if err := traceStart(out, p, names); err != nil {
			return err
		}
		opts = append(opts, simplex.WithObserver(func(s simplex.Step) {
			if traceErr == nil {
				traceErr = traceStep(out, s, names)
			}
		}))
	}

	res, err := simplex.NewSolver(opts...).Solve(p)
	if err != nil {
		return printer.Error("Cannot solve problem", err)
	}
	if traceErr != nil {
		return traceErr
	}

	if cfg.Trace {
		fmt.Fprintln(out)
	}
	if err := printer.Tableau(out, res.Tableau, names); err != nil {
		return err
	}
	if cfg.FloatView {
		printer.Matrix(out, res.Tableau)
	}
	printer.Status(out, res)
	printer.Solution(out, res, names)

	if cfg.CrossCheck && res.State != simplex.IterationLimit {
		if err := crossCheck(log, p, res); err != nil {
			return err
		}
	}
	return res.Err()
}

// crossCheck fails only on a real disagreement. A problem gonum cannot
// decide is logged and let through.
func crossCheck(log logrus.FieldLogger, p *model.Problem, res *simplex.Result) error {
	err := crosscheck.Compare(p, res, crossCheckTolerance)
	switch {
	case err == nil:
		log.Info("cross-check passed")
		return nil
	case errors.Is(err, crosscheck.ErrUndecided):
		log.WithError(err).Warn("cross-check skipped")
		return nil
	}
	log.WithError(err).Warn("cross-check failed")
	return err
}

func traceStart(out io.Writer, p *model.Problem, names []string) error {
	t, err := simplex.StandardForm(p)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "initial tableau")
	return printer.Tableau(out, t, names)
}

func traceStep(out io.Writer, s simplex.Step, names []string) error {
	cols, _ := printer.Labels(s.Tableau, names)
	fmt.Fprintf(out, "\nphase %d, pivot %d: %s enters, %s leaves\n",
		s.Phase, s.Iteration, cols[s.Col], cols[s.Leaving])
	return printer.Tableau(out, s.Tableau, names)
}
