// Package cli implements the tabsimplex command line.
package cli

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"q.log/tabsimplex/instance"
	"q.log/tabsimplex/model"
)

// ReadFunc loads a problem from a file.
type ReadFunc func(filename string) (*model.Problem, error)

type Option func(*app)

// WithReader registers the reader used for files of format f.
func WithReader(f instance.Format, r ReadFunc) Option {
	return func(a *app) { a.readers[f] = r }
}

// WithVersion enables the --version flag.
func WithVersion(v string) Option {
	return func(a *app) { a.version = v }
}

// app is what every command shares: layered configuration, the logger and
// the problem readers.
type app struct {
	v       *viper.Viper
	log     *logrus.Logger
	readers map[instance.Format]ReadFunc
	version string
}

// NewRootCommand builds the command tree.
func NewRootCommand(opts ...Option) *cobra.Command {
	a := &app{
		v:   viper.New(),
		log: logrus.New(),
		readers: map[instance.Format]ReadFunc{
			instance.Text: func(f string) (*model.Problem, error) { return instance.ReadFile(f, instance.Text) },
			instance.YAML: func(f string) (*model.Problem, error) { return instance.ReadFile(f, instance.YAML) },
		},
	}
	for _, opt := range opts {
		opt(a)
	}

	root := &cobra.Command{
		Use:   "tabsimplex",
		Short: "Solve small linear programs exactly with the tabular simplex method",
		Long: `tabsimplex solves linear programs of the form

  max|min  c·x  subject to  A x (<=|>=|=) b,  x >= 0

with the tabular simplex method in exact rational arithmetic, printing the
tableau as it goes.

Settings come from flags, then TABSIMPLEX_* environment variables, then the
file given with --config.`,
		Version:       a.version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	root.PersistentFlags().String("config", "", "configuration file (yaml, json or toml)")
	root.PersistentFlags().String("log-level", "warning", "log level: debug, info, warning or error")

	root.AddCommand(newSolveCommand(a), newCheckCommand(a))
	return root
}

// Execute runs the root command. Errors have already been reported when
// it returns.
func Execute(opts ...Option) error {
	return NewRootCommand(opts...).Execute()
}

func (a *app) setup(cmd *cobra.Command) error {
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return errors.Wrap(err, "bind flags")
	}
	a.v.SetEnvPrefix("tabsimplex")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if file := a.v.GetString("config"); file != "" {
		a.v.SetConfigFile(file)
		if err := a.v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "read config %s", file)
		}
	}

	level, err := logrus.ParseLevel(a.v.GetString("log-level"))
	if err != nil {
		return err
	}
	a.log.SetLevel(level)
	a.log.SetOutput(cmd.ErrOrStderr())
	return nil
}

func (a *app) read(filename, format string) (*model.Problem, error) {
	f, err := instance.ParseFormat(format, filename)
	if err != nil {
		return nil, err
	}
	r, ok := a.readers[f]
	if !ok {
		return nil, errors.Wrapf(instance.ErrUnsupportedFormat, "no reader for %s files in this build", f)
	}
	return r(filename)
}

func addFormatFlag(flags *pflag.FlagSet) {
	flags.String("format", "auto", "input format: auto, text, yaml or mps")
}
