package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blockmerge/blockmerge/internal/driver"
	"github.com/blockmerge/blockmerge/internal/mergefile"
)

func newMergeFileCommand(state *runState) *cobra.Command {
	var (
		stdout     bool
		diff3      bool
		quiet      bool
		useOutline bool
		noOutline  bool
		labels     []string
	)

	cmd := &cobra.Command{
		Use:   "merge-file [flags] <ours> <base> <theirs>",
		Short: "Merge three files like git merge-file",
		Long: "Merge the changes that lead from <base> to <theirs> into <ours>, like git merge-file. The result replaces <ours> unless --stdout is given.\n" +
			"Up to three -L labels name ours, base and theirs in conflict markers. The outline heuristics apply to paths matching the configured\n" +
			"heuristics patterns; --outline and --no-outline force the choice.",
		Args: usageArgs(cobra.ExactArgs(3)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if useOutline && noOutline {
				return usageErrorf("--outline and --no-outline are mutually exclusive")
			}
			if len(labels) > 3 {
				return usageErrorf("at most three -L labels are allowed, got %d", len(labels))
			}

			opts := state.cfg.MergeOptions()
			for i, l := range labels {
				switch i {
				case 0:
					opts.OurLabel = l
				case 1:
					opts.BaseLabel = l
				case 2:
					opts.TheirLabel = l
				}
			}
			if diff3 {
				opts.Style = mergefile.StyleDiff3
			}

			set := driver.FileSet{Ours: args[0], Base: args[1], Theirs: args[2], Options: &opts}
			switch {
			case useOutline:
				set.Strategy = driver.StrategyOutline
			case noOutline:
				set.Strategy = driver.StrategyPlain
			}
			if stdout {
				set.Writer = cmd.OutOrStdout()
			}

			rep, err := state.driver().MergeFile(cmd.Context(), set)
			if err != nil {
				return failure(err)
			}
			if !rep.Clean {
				if !quiet {
					fmt.Fprintf(cmd.ErrOrStderr(), "blockmerge: %d %s in %s\n", rep.Conflicts, plural(rep.Conflicts, "conflict", "conflicts"), rep.Path)
				}
				return ExitError{Code: ExitConflicts, Err: ErrConflicts}
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&stdout, "stdout", "p", false, "write the result to stdout instead of <ours>")
	f.BoolVar(&diff3, "diff3", false, "show the base version inside conflict regions")
	f.Int("marker-size", mergefile.DefaultMarkerSize, "width of conflict markers")
	f.StringArrayVarP(&labels, "label", "L", nil, "conflict marker labels for ours, base and theirs, in that order (repeatable)")
	f.BoolVar(&useOutline, "outline", false, "always use the outline heuristics")
	f.BoolVar(&noOutline, "no-outline", false, "never use the outline heuristics")
	f.BoolVarP(&quiet, "quiet", "q", false, "do not warn about conflicts")
	return cmd
}
