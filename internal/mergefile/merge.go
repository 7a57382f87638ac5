package mergefile

import (
	"github.com/blockmerge/blockmerge/internal/diff3"
	"github.com/blockmerge/blockmerge/internal/lines"
)

// Result is the outcome of a merge.
type Result struct {
	Clean     bool   // True iff no region was written with conflict markers.
	Text      string // Merged text.
	Conflicts int    // Number of regions written with conflict markers.
}

// Merge merges ours and theirs against base. Conflicting regions are written with markers according to opts.
func Merge(ours, base, theirs string, opts Options) Result {
	opts = opts.withDefaults()
	hunks := diff3.Align(lines.Split(ours), lines.Split(base), lines.Split(theirs))

	a := newAssembler(opts)
	for _, h := range hunks {
		if h.IsConflict() {
			a.conflict(newConflict(h))
			continue
		}
		a.agreed(h.Agreed)
	}
	return a.result()
}

// MergeWithHeuristics is Merge tuned for outline documents: an empty base is replaced by the common prefix of ours and theirs, and conflicts caused by an added
// newline or by blocks appended on both sides are resolved. See the package documentation.
func MergeWithHeuristics(ours, base, theirs string, opts Options) Result {
	opts = opts.withDefaults()
	oursLines := lines.Split(ours)
	baseLines := lines.Split(base)
	theirsLines := lines.Split(theirs)
	if base == "" {
		// With nothing in common, keep the empty base: it still lines up with a side that is empty too.
		if prefix := synthesizeAncestor(oursLines, theirsLines); len(prefix) > 0 {
			baseLines = prefix
		}
	}
	hunks := diff3.Align(oursLines, baseLines, theirsLines)

	a := newAssembler(opts)
	for _, h := range hunks {
		if h.IsConflict() {
			resolveConflict(a, newConflict(h))
			continue
		}
		a.agreed(h.Agreed)
	}
	return a.result()
}
