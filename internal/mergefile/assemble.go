package mergefile

import "strings"

// assembler accumulates merged text and counts the regions written with markers.
type assembler struct {
	opts      Options
	b         strings.Builder
	conflicts int
}

func newAssembler(opts Options) *assembler {
	return &assembler{opts: opts}
}

// agreed appends lines verbatim.
func (a *assembler) agreed(fragments []string) {
	for _, f := range fragments {
		a.b.WriteString(f)
	}
}

// resolved appends text produced by a heuristic.
func (a *assembler) resolved(text string) {
	a.b.WriteString(text)
}

// conflict writes c as a marker region:
//
//	<<<<<<< ours
//	(ours)
//	||||||| base   (StyleDiff3 only)
//	(base)         (StyleDiff3 only)
//	=======
//	(theirs)
//	>>>>>>> theirs
func (a *assembler) conflict(c conflict) {
	a.conflicts++
	a.terminateLine()
	a.marker('<', a.opts.OurLabel)
	a.segment(c.ours)
	if a.opts.Style == StyleDiff3 {
		a.marker('|', a.opts.BaseLabel)
		a.segment(c.base)
	}
	a.marker('=', "")
	a.segment(c.theirs)
	a.marker('>', a.opts.TheirLabel)
}

func (a *assembler) marker(ch byte, label string) {
	for i := 0; i < a.opts.MarkerSize; i++ {
		a.b.WriteByte(ch)
	}
	if label != "" {
		a.b.WriteByte(' ')
		a.b.WriteString(label)
	}
	a.b.WriteByte('\n')
}

// segment writes the lines of one side of a conflict, terminating the last line if needed so the next marker starts a line.
func (a *assembler) segment(fragments []string) {
	for _, f := range fragments {
		a.b.WriteString(f)
	}
	a.terminateLine()
}

// terminateLine ends the current line if the text so far does not end with one.
func (a *assembler) terminateLine() {
	if a.b.Len() > 0 && !strings.HasSuffix(a.b.String(), "\n") {
		a.b.WriteByte('\n')
	}
}

func (a *assembler) result() Result {
	return Result{Clean: a.conflicts == 0, Text: a.b.String(), Conflicts: a.conflicts}
}
