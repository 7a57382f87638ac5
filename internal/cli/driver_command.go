package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/blockmerge/blockmerge/internal/driver"
)

// newDriverCommand is the git merge driver entry point. In .git/config:
//
//	[merge "blockmerge"]
//		name = blockmerge outline merge
//		driver = blockmerge driver %O %A %B %L %P
func newDriverCommand(state *runState) *cobra.Command {
	return &cobra.Command{
		Use:   "driver <base> <ours> <theirs> [marker-size] [path]",
		Short: "Merge as a git merge driver, writing the result into <ours>",
		Long: "Merge as a git merge driver (driver = blockmerge driver %O %A %B %L %P). The result replaces <ours>; the exit code is 1 when conflicts remain.\n" +
			"The outline heuristics apply when [path] (or <ours>) matches the configured heuristics patterns.",
		Args: usageArgs(cobra.RangeArgs(3, 5)),
		RunE: func(cmd *cobra.Command, args []string) error {
			set := driver.FileSet{Base: args[0], Ours: args[1], Theirs: args[2]}
			opts := state.cfg.MergeOptions()
			if len(args) > 3 && args[3] != "" {
				n, err := strconv.Atoi(args[3])
				if err != nil || n <= 0 {
					return usageErrorf("invalid marker size %q", args[3])
				}
				opts.MarkerSize = n
			}
			set.Options = &opts
			if len(args) > 4 {
				set.Path = args[4]
			}

			rep, err := state.driver().MergeFile(cmd.Context(), set)
			if err != nil {
				return failure(err)
			}
			if !rep.Clean {
				fmt.Fprintf(cmd.ErrOrStderr(), "blockmerge: %d %s in %s\n", rep.Conflicts, plural(rep.Conflicts, "conflict", "conflicts"), rep.Path)
				return ExitError{Code: ExitConflicts, Err: ErrConflicts}
			}
			return nil
		},
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
