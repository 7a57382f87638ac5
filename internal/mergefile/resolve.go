package mergefile

import (
	"github.com/blockmerge/blockmerge/internal/diff3"
	"github.com/blockmerge/blockmerge/internal/lines"
)

// conflict is a conflicting region as it moves through the heuristics. Heuristics never modify a conflict; they return new ones.
type conflict struct {
	ours, base, theirs []string

	// settled counts leading base lines that a heuristic already emitted as agreed content. They remain in base (diff3-style markers still show the whole ancestor
	// region) but are no longer the ancestor's contribution to the conflict.
	settled int
}

func newConflict(h diff3.Hunk) conflict {
	return conflict{ours: h.Ours, base: h.Base, theirs: h.Theirs}
}

// unsettledBase returns the part of base that has not been emitted yet.
func (c conflict) unsettledBase() []string {
	return c.base[c.settled:]
}

// resolveConflict tries the outline heuristics on c and writes the outcome to a: resolved text, or a marker region if c could not be resolved.
func resolveConflict(a *assembler, c conflict) {
	if shared, rest, ok := absorbAddedNewline(c); ok {
		a.agreed([]string{shared})
		c = rest
	}
	if text, ok := appendBothBlocks(c); ok {
		a.resolved(text)
		return
	}
	a.conflict(c)
}

// absorbAddedNewline handles a region where base's first line is the last line of the file and both sides kept it, only terminating it to append more lines.
// It returns that line (as ours has it, terminator included) and the conflict without it. ok is false if the region does not have that shape.
func absorbAddedNewline(c conflict) (shared string, rest conflict, ok bool) {
	base := c.unsettledBase()
	if len(base) == 0 || len(c.ours) == 0 || len(c.theirs) == 0 {
		return "", c, false
	}
	oursFirst, _ := lines.TrimEOL(c.ours[0])
	theirsFirst, _ := lines.TrimEOL(c.theirs[0])
	if base[0] != oursFirst || base[0] != theirsFirst {
		return "", c, false
	}
	rest = conflict{
		ours:    c.ours[1:],
		base:    c.base,
		theirs:  c.theirs[1:],
		settled: c.settled + 1,
	}
	return c.ours[0], rest, true
}

// appendBothBlocks handles a region where both sides appended a new block and the ancestor had none. It returns both sides' text, ordered so that a nested block
// follows the block it was written under. ok is false if the region does not have that shape.
func appendBothBlocks(c conflict) (string, bool) {
	if !isEmptyOrMarkupOnly(lines.Join(c.unsettledBase())) {
		return "", false
	}
	oursText := lines.Join(c.ours)
	theirsText := lines.Join(c.theirs)
	if !startsWithBlock(oursText) || !startsWithBlock(theirsText) {
		return "", false
	}
	if !startsWithTopLevelBlock(oursText) && !startsWithTopLevelBlock(theirsText) {
		return "", false
	}

	// Theirs goes first whenever ours is top-level, including when both are.
	first, second := oursText, theirsText
	if startsWithTopLevelBlock(oursText) {
		first, second = theirsText, oursText
	}
	if !lines.HasEOL(first) {
		first += "\n"
	}
	return first + second, true
}
