package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/blockmerge/blockmerge/internal/driver"
	"github.com/blockmerge/blockmerge/internal/markers"
)

func newCheckCommand(state *runState) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>...",
		Short: "Report files that still contain conflict markers",
		Long:  "Scan files for conflict regions left by a merge. Exits 1 if any file still contains conflict markers.",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			reports, err := state.driver().CheckFiles(cmd.Context(), args)
			out := cmd.OutOrStdout()
			p := newPainter(out)
			for _, r := range reports {
				writeCheckReport(out, p, r)
			}
			if err != nil {
				return failure(err)
			}

			conflicted := driver.Conflicted(reports)
			if len(conflicted) == 0 {
				return nil
			}
			regions := lo.SumBy(conflicted, func(r driver.CheckReport) int { return len(r.Regions) })
			fmt.Fprintf(out, "%d %s with conflict markers (%d %s)\n",
				len(conflicted), plural(len(conflicted), "file", "files"), regions, plural(regions, "region", "regions"))
			return ExitError{Code: ExitConflicts, Err: ErrConflicts}
		},
	}
}

func writeCheckReport(w io.Writer, p painter, r driver.CheckReport) {
	blocks := fmt.Sprintf("%d blocks, %d top-level", r.Blocks.Blocks, r.Blocks.TopLevel)
	if !r.Conflicted() {
		fmt.Fprintf(w, "%s: clean (%s)\n", p.ok(r.Path), blocks)
		return
	}

	spans := lo.Map(r.Regions, func(reg markers.Region, _ int) string {
		return fmt.Sprintf("%d-%d", reg.StartLine, reg.EndLine)
	})
	var parts []string
	if len(r.Regions) > 0 {
		parts = append(parts, fmt.Sprintf("%d conflict %s at lines %s", len(r.Regions), plural(len(r.Regions), "region", "regions"), strings.Join(spans, ", ")))
	}
	if r.ScanErr != nil {
		parts = append(parts, r.ScanErr.Error())
	}
	fmt.Fprintf(w, "%s: %s (%s)\n", p.bad(r.Path), strings.Join(parts, "; "), blocks)
}

// painter colours check output when it goes to a terminal.
type painter struct {
	color    bool
	okStyle  lipgloss.Style
	badStyle lipgloss.Style
}

func newPainter(w io.Writer) painter {
	f, ok := w.(*os.File)
	if !ok || f == nil || !term.IsTerminal(int(f.Fd())) {
		return painter{}
	}
	r := lipgloss.NewRenderer(w)
	return painter{
		color:    true,
		okStyle:  r.NewStyle().Foreground(lipgloss.Color("2")),
		badStyle: r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}

func (p painter) ok(s string) string {
	if !p.color {
		return s
	}
	return p.okStyle.Render(s)
}

func (p painter) bad(s string) string {
	if !p.color {
		return s
	}
	return p.badStyle.Render(s)
}
