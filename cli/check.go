package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"q.log/tabsimplex/printer"
	"q.log/tabsimplex/simplex"
)

func newCheckCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check FILE",
		Short: "Validate a problem file and print its standard form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			p, err := a.read(args[0], a.v.GetString("format"))
			if err != nil {
				return printer.Error("Cannot read problem", err)
			}
			t, err := simplex.StandardForm(p)
			if err != nil {
				return printer.Error("Cannot build standard form", err)
			}

			fmt.Fprintf(out, "%s: %s, %d variables, %d constraints\n",
				args[0], p.Sense(), p.NumVars(), p.NumConstraints())
			return printer.Tableau(out, t, p.VarNames())
		},
	}
	addFormatFlag(cmd.Flags())
	return cmd
}
