// Package driver runs merges on files: it is what git invokes as a merge driver and what the merge-file and check commands call.
//
// The merge itself is pure (see internal/mergefile); this package reads the three versions from disk, picks the plain or outline-aware
// strategy for the path, writes the result, and logs one event per file.
package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/rs/zerolog"

	"github.com/blockmerge/blockmerge/internal/config"
	"github.com/blockmerge/blockmerge/internal/mergefile"
	"github.com/blockmerge/blockmerge/internal/outline"
)

// Strategy selects the merge function.
type Strategy string

const (
	StrategyAuto    Strategy = ""        // outline if the path matches the configured heuristics, else plain
	StrategyPlain   Strategy = "plain"   // mergefile.Merge
	StrategyOutline Strategy = "outline" // mergefile.MergeWithHeuristics
)

// FileSet names the inputs and output of one merge.
type FileSet struct {
	Base   string // Common ancestor. A missing file is an empty ancestor (the file was added on both sides).
	Ours   string
	Theirs string

	// Output receives the result. Empty means Ours, like git merge-file.
	Output string

	// Writer, if non-nil, receives the result instead of any file.
	Writer io.Writer

	// Path is the path used to pick the strategy and to log, e.g. git's %P. Empty means Output (or Ours).
	Path string

	Strategy Strategy

	// Options, if non-nil, replace the options derived from the configuration.
	Options *mergefile.Options
}

// Report describes the outcome of one merge.
type Report struct {
	Path      string
	Strategy  Strategy // The strategy actually used (never StrategyAuto).
	Clean     bool
	Conflicts int
	Blocks    outline.Counts // Outline summary of the merged text.
}

// Driver merges files according to Config.
type Driver struct {
	Config *config.Config
	Logger zerolog.Logger
}

// New returns a Driver. A nil cfg means config.Default().
func New(cfg *config.Config, logger zerolog.Logger) *Driver {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Driver{Config: cfg, Logger: logger}
}

// MergeFile merges set and writes the result. A merge with conflicts is not an error: check Report.Clean.
func (d *Driver) MergeFile(ctx context.Context, set FileSet) (Report, error) {
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	output := set.Output
	if output == "" {
		output = set.Ours
	}
	path := set.Path
	if path == "" {
		path = output
	}

	base, err := readOptional(set.Base)
	if err != nil {
		return Report{}, err
	}
	ours, err := readRequired(set.Ours)
	if err != nil {
		return Report{}, err
	}
	theirs, err := readRequired(set.Theirs)
	if err != nil {
		return Report{}, err
	}

	opts := d.Config.MergeOptions()
	if set.Options != nil {
		opts = *set.Options
	}
	if err := opts.Validate(); err != nil {
		return Report{}, err
	}

	strategy := d.strategyFor(path, set.Strategy)
	var res mergefile.Result
	if strategy == StrategyOutline {
		res = mergefile.MergeWithHeuristics(ours, base, theirs, opts)
	} else {
		res = mergefile.Merge(ours, base, theirs, opts)
	}

	if set.Writer != nil {
		if _, err := io.WriteString(set.Writer, res.Text); err != nil {
			return Report{}, fmt.Errorf("write merge result for %s: %w", path, err)
		}
	} else if err := writePreservingMode(output, res.Text); err != nil {
		return Report{}, err
	}

	rep := Report{
		Path:      path,
		Strategy:  strategy,
		Clean:     res.Clean,
		Conflicts: res.Conflicts,
		Blocks:    outline.Count(res.Text, outline.KindFor(path)),
	}
	d.Logger.Info().
		Str("path", rep.Path).
		Str("strategy", string(rep.Strategy)).
		Bool("clean", rep.Clean).
		Int("conflicts", rep.Conflicts).
		Int("blocks", rep.Blocks.Blocks).
		Int("top_level", rep.Blocks.TopLevel).
		Msg("merged")
	return rep, nil
}

func (d *Driver) strategyFor(path string, requested Strategy) Strategy {
	switch requested {
	case StrategyPlain, StrategyOutline:
		return requested
	}
	if d.Config.UsesHeuristics(path) {
		return StrategyOutline
	}
	return StrategyPlain
}

func readOptional(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(b), nil
}

func readRequired(path string) (string, error) {
	if path == "" {
		return "", errors.New("driver: missing input path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(b), nil
}

// writePreservingMode overwrites path with text, keeping the permission bits of an existing file.
func writePreservingMode(path string, text string) error {
	mode := fs.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}
	if err := os.WriteFile(path, []byte(text), mode); err != nil {
		return fmt.Errorf("write merge result: %w", err)
	}
	return nil
}
