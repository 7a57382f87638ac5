package driver

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/blockmerge/blockmerge/internal/markers"
	"github.com/blockmerge/blockmerge/internal/outline"
)

// CheckReport is the result of scanning one file for leftover conflict markers.
type CheckReport struct {
	Path    string
	Regions []markers.Region
	ScanErr error          // Non-nil if the file has an unclosed or malformed region.
	Blocks  outline.Counts // Outline summary of the file as it is now.
}

// Conflicted reports whether the file still contains conflict markers, well-formed or not.
func (r CheckReport) Conflicted() bool {
	return len(r.Regions) > 0 || r.ScanErr != nil
}

// CheckFiles scans paths concurrently, at most Config.Jobs at a time. Reports come back in the order of paths, duplicates removed. Files
// that cannot be read are left out of the reports; their errors are combined into the returned error.
func (d *Driver) CheckFiles(ctx context.Context, paths []string) ([]CheckReport, error) {
	paths = lo.Uniq(paths)
	reports := make([]CheckReport, len(paths))
	readOK := make([]bool, len(paths))

	var (
		mu   sync.Mutex
		errs *multierror.Error
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, d.Config.Jobs))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			b, err := os.ReadFile(path)
			if err != nil {
				mu.Lock()
				errs = multierror.Append(errs, fmt.Errorf("check %s: %w", path, err))
				mu.Unlock()
				return nil
			}

			text := string(b)
			regions, scanErr := markers.Scan(text, d.Config.MarkerSize)
			reports[i] = CheckReport{
				Path:    path,
				Regions: regions,
				ScanErr: scanErr,
				Blocks:  outline.Count(text, outline.KindFor(path)),
			}
			readOK[i] = true

			d.Logger.Debug().
				Str("path", path).
				Int("regions", len(regions)).
				AnErr("scan_error", scanErr).
				Msg("checked")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := lo.Filter(reports, func(_ CheckReport, i int) bool { return readOK[i] })
	return out, errs.ErrorOrNil()
}

// Conflicted returns the reports of files that still contain conflict markers.
func Conflicted(reports []CheckReport) []CheckReport {
	return lo.Filter(reports, func(r CheckReport, _ int) bool { return r.Conflicted() })
}
