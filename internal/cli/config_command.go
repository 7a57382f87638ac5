package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCommand(state *runState) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := state.cfg.YAML()
			if err != nil {
				return failure(err)
			}
			out := cmd.OutOrStdout()
			if len(state.cfg.Files) == 0 {
				fmt.Fprintln(out, "# no config files; built-in defaults and environment")
			}
			for _, f := range state.cfg.Files {
				fmt.Fprintf(out, "# %s\n", f)
			}
			_, err = out.Write(b)
			return failure(err)
		},
	}
}
