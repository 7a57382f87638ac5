package diff3

import (
	"fmt"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Align aligns ours and theirs against base and returns the merge as hunks. The input slices are not modified; hunks reference fresh slices.
func Align(ours, base, theirs []string) []Hunk {
	enc := newLineEncoder()
	rBase := enc.encode(base)
	rOurs := enc.encode(ours)
	rTheirs := enc.encode(theirs)

	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0 // Always compute a minimal diff; merges must be deterministic.

	oursEdits := editsFromDiffs(dmp.DiffMainRunes(rBase, rOurs, false))
	theirsEdits := editsFromDiffs(dmp.DiffMainRunes(rBase, rTheirs, false))

	regions := sweep(oursEdits, theirsEdits, len(base))
	if err := validateRegions(regions, len(ours), len(base), len(theirs)); err != nil {
		panic(fmt.Errorf("Align: validate failed with %v", err))
	}

	hunks := buildHunks(regions, ours, base, theirs)
	if err := validateHunks(hunks); err != nil {
		panic(fmt.Errorf("Align: validate failed with %v", err))
	}
	return hunks
}

// lineEncoder maps each distinct line to a rune so that a character differ can diff line sequences.
type lineEncoder struct {
	ids  map[string]rune
	next rune
}

func newLineEncoder() *lineEncoder {
	return &lineEncoder{ids: map[string]rune{}, next: 1}
}

func (e *lineEncoder) encode(seq []string) []rune {
	out := make([]rune, len(seq))
	for i, line := range seq {
		id, ok := e.ids[line]
		if !ok {
			id = e.allocate()
			e.ids[line] = id
		}
		out[i] = id
	}
	return out
}

// allocate returns the next unused rune, skipping the surrogate range: diffmatchpatch round-trips runes through strings, and surrogates do not survive that.
func (e *lineEncoder) allocate() rune {
	if e.next >= 0xD800 && e.next <= 0xDFFF {
		e.next = 0xE000
	}
	id := e.next
	e.next++
	return id
}

// editsFromDiffs converts a base->side diff into edits. Consecutive inserts and deletes between two equalities form one edit.
func editsFromDiffs(diffs []diffmatchpatch.Diff) []edit {
	var edits []edit
	basePos, sidePos := 0, 0
	var pending *edit

	flush := func() {
		if pending == nil {
			return
		}
		edits = append(edits, *pending)
		pending = nil
	}

	for _, d := range diffs {
		n := utf8.RuneCountInString(d.Text)
		if n == 0 {
			continue
		}
		if d.Type == diffmatchpatch.DiffEqual {
			flush()
			basePos += n
			sidePos += n
			continue
		}
		if pending == nil {
			pending = &edit{base: span{basePos, basePos}, side: span{sidePos, sidePos}}
		}
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			basePos += n
			pending.base.end = basePos
		case diffmatchpatch.DiffInsert:
			sidePos += n
			pending.side.end = sidePos
		}
	}
	flush()
	return edits
}

// sweep walks the edits of both sides in base order and cuts base into regions. An edit that overlaps or touches an edit of the other side (transitively) shares
// a region with it; stretches of base without edits become unchanged regions.
func sweep(oursEdits, theirsEdits []edit, baseLen int) []region {
	var regions []region
	oursShift, theirsShift := 0, 0 // len(side) - len(base) accumulated over the edits consumed so far
	cursor := 0
	i, j := 0, 0

	emitUnchanged := func(end int) {
		if end <= cursor {
			return
		}
		regions = append(regions, region{
			base:   span{cursor, end},
			ours:   span{cursor + oursShift, end + oursShift},
			theirs: span{cursor + theirsShift, end + theirsShift},
		})
		cursor = end
	}

	for i < len(oursEdits) || j < len(theirsEdits) {
		// Start the region at whichever pending edit comes first in base.
		start := 0
		switch {
		case j >= len(theirsEdits):
			start = oursEdits[i].base.start
		case i >= len(oursEdits):
			start = theirsEdits[j].base.start
		default:
			start = min(oursEdits[i].base.start, theirsEdits[j].base.start)
		}
		emitUnchanged(start)

		r := region{base: span{start, start}}
		r.ours.start = start + oursShift
		r.theirs.start = start + theirsShift

		// Pull in every edit that starts at or before the current end of the region.
		for {
			if i < len(oursEdits) && oursEdits[i].base.start <= r.base.end {
				e := oursEdits[i]
				r.base.end = max(r.base.end, e.base.end)
				oursShift += e.side.len() - e.base.len()
				r.oursChanged = true
				i++
				continue
			}
			if j < len(theirsEdits) && theirsEdits[j].base.start <= r.base.end {
				e := theirsEdits[j]
				r.base.end = max(r.base.end, e.base.end)
				theirsShift += e.side.len() - e.base.len()
				r.theirsChanged = true
				j++
				continue
			}
			break
		}

		r.ours.end = r.base.end + oursShift
		r.theirs.end = r.base.end + theirsShift
		regions = append(regions, r)
		cursor = r.base.end
	}
	emitUnchanged(baseLen)
	return regions
}

// buildHunks turns regions into hunks, folding everything that merges cleanly into OpAgreed hunks.
func buildHunks(regions []region, ours, base, theirs []string) []Hunk {
	var hunks []Hunk
	var agreed []string

	flush := func() {
		if len(agreed) == 0 {
			return
		}
		hunks = append(hunks, Hunk{Op: OpAgreed, Agreed: agreed})
		agreed = nil
	}

	for _, r := range regions {
		oursLines := ours[r.ours.start:r.ours.end]
		theirsLines := theirs[r.theirs.start:r.theirs.end]
		switch {
		case !r.oursChanged && !r.theirsChanged:
			agreed = append(agreed, base[r.base.start:r.base.end]...)
		case !r.theirsChanged:
			agreed = append(agreed, oursLines...)
		case !r.oursChanged:
			agreed = append(agreed, theirsLines...)
		case equalLines(oursLines, theirsLines):
			agreed = append(agreed, oursLines...)
		default:
			flush()
			hunks = append(hunks, Hunk{
				Op:     OpConflict,
				Ours:   cloneLines(oursLines),
				Base:   cloneLines(base[r.base.start:r.base.end]),
				Theirs: cloneLines(theirsLines),
			})
		}
	}
	flush()
	return hunks
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// cloneLines copies s into a non-nil slice.
func cloneLines(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
