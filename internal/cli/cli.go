// Package cli is the blockmerge command line: a git merge driver, a git merge-file work-alike, a conflict-marker check and a config dump.
//
// Exit codes follow git's merge tools: 0 when the result is clean, 1 when conflicts remain, 2 for usage errors and 3 for other failures.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/blockmerge/blockmerge/internal/config"
	"github.com/blockmerge/blockmerge/internal/driver"
	"github.com/blockmerge/blockmerge/internal/mergelog"
)

// Version is the blockmerge version. It is a var (not a const) so build tooling can override it with -ldflags "-X".
var Version = "0.3.0"

// RunOptions override standard I/O. If nil, defaults are used. Overriding is useful for testing.
type RunOptions struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	// Dir is where the nearest .blockmerge.yaml is searched from. Empty means the working directory.
	Dir string
}

// runState is shared by the commands of one Run.
type runState struct {
	configFile string
	dir        string

	cfg    *config.Config
	logger zerolog.Logger
}

// driver returns a merge driver for the loaded configuration.
func (s *runState) driver() *driver.Driver {
	return driver.New(s.cfg, s.logger)
}

// Run runs the CLI with args (typically os.Args, program name first). It returns the exit code and, for nonzero codes, the error that
// caused it. Run has already printed the error to opts.Err (or stderr); callers may pass the code to os.Exit.
func Run(args []string, opts *RunOptions) (int, error) {
	argv := args
	if len(argv) > 0 {
		argv = argv[1:]
	}

	var in io.Reader = os.Stdin
	var out io.Writer = os.Stdout
	var errW io.Writer = os.Stderr
	state := &runState{}
	if opts != nil {
		if opts.In != nil {
			in = opts.In
		}
		if opts.Out != nil {
			out = opts.Out
		}
		if opts.Err != nil {
			errW = opts.Err
		}
		state.dir = opts.Dir
	}
	defer mergelog.Close()

	root := newRootCommand(state)
	root.SetArgs(argv)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errW)

	err := root.ExecuteContext(context.Background())
	code := exitCodeFor(err)
	switch {
	case err == nil:
		return ExitClean, nil
	case errors.Is(err, ErrConflicts):
		// The command already reported the conflicts.
	case code == ExitUsage:
		fmt.Fprintf(errW, "blockmerge: %v\nRun 'blockmerge --help' for usage.\n", err)
	default:
		fmt.Fprintf(errW, "blockmerge: %v\n", err)
	}
	return code, err
}

func newRootCommand(state *runState) *cobra.Command {
	root := &cobra.Command{
		Use:           "blockmerge",
		Short:         "Three-way merges for outline documents",
		Long:          "blockmerge merges markdown and org outlines (logseq-style pages and journals) line by line, resolving the conflicts that concurrent appends to an outline produce.",
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.LoadOptions{
				ConfigFile: state.configFile,
				Dir:        state.dir,
				Flags:      cmd.Flags(),
			})
			if err != nil {
				// A bad value given on the command line is a usage mistake, not a broken config file.
				var verr *config.ValidationError
				if errors.As(err, &verr) && len(verr.Flags) > 0 {
					return UsageError{Message: err.Error()}
				}
				return failure(err)
			}
			state.cfg = cfg
			state.logger = mergelog.Logger().With().Str("command", cmd.Name()).Logger()
			return nil
		},
	}
	root.PersistentFlags().StringVar(&state.configFile, "config", "", "read configuration from this file as well")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return UsageError{Message: err.Error()}
	})

	root.AddCommand(
		newDriverCommand(state),
		newMergeFileCommand(state),
		newCheckCommand(state),
		newConfigCommand(state),
	)
	return root
}

// usageArgs turns cobra's positional argument errors into usage errors.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return UsageError{Message: err.Error()}
		}
		return nil
	}
}
