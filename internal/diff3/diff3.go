package diff3

// Op says whether a hunk merged cleanly.
type Op int

const (
	OpAgreed Op = iota
	OpConflict
)

func (op Op) String() string {
	switch op {
	case OpAgreed:
		return "agreed"
	case OpConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// Hunk is one contiguous piece of a three-way merge.
//
// As an illustration: base is a journal page, ours appends a block at the end and theirs fixes a typo at the top. Align produces a single OpAgreed hunk with both
// edits applied. If both sides instead appended different blocks at the end, Align produces an OpAgreed hunk (the untouched page) followed by an OpConflict hunk
// whose Base is empty and whose Ours/Theirs are the two appended blocks.
type Hunk struct {
	Op Op

	Agreed []string // Merged lines when Op == OpAgreed; nil otherwise.

	Ours   []string // Our version of a conflicting region; nil when Op == OpAgreed.
	Base   []string // The ancestor's version of a conflicting region; nil when Op == OpAgreed.
	Theirs []string // Their version of a conflicting region; nil when Op == OpAgreed.
}

// IsConflict reports whether h is an OpConflict hunk.
func (h Hunk) IsConflict() bool {
	return h.Op == OpConflict
}

// span is a half-open range [start, end) of line indexes.
type span struct {
	start, end int
}

func (s span) len() int {
	return s.end - s.start
}

// region is a stretch of the merge expressed as ranges into each of the three inputs. Regions produced by sweep tile base, ours and theirs.
type region struct {
	base, ours, theirs span

	oursChanged   bool // ours has at least one edit inside the region
	theirsChanged bool // theirs has at least one edit inside the region
}

// edit is a maximal run of non-equal operations in a two-way diff from base to one side: base[base.start:base.end] became side[side.start:side.end].
type edit struct {
	base, side span
}
