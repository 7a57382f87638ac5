// Package diff3 aligns three line sequences (ours, base, theirs) into an ordered list of hunks, the way `diff3 -m` and `git merge-file` see them.
//
// Representation: Align returns []Hunk in document order. Each hunk has an Op:
//   - OpAgreed: lines every side agrees on after the merge. This covers regions no one changed, regions changed by only one side, and regions both sides changed
//     identically ("false conflicts"). The lines are in Hunk.Agreed.
//   - OpConflict: a region of base that both sides changed differently. Hunk.Ours, Hunk.Base and Hunk.Theirs hold the three versions of the region; any of them may be
//     empty (ex: both sides inserted different lines at the same spot, so Base is empty).
//
// Lines are whatever fragments the caller passes in; they are compared byte-for-byte and never split, trimmed or normalized (internal/lines produces suitable fragments).
//
// Invariants:
//   - Two consecutive hunks are never both OpAgreed.
//   - An OpAgreed hunk has len(Agreed) > 0 and nil Ours/Base/Theirs.
//   - An OpConflict hunk has nil Agreed and Ours != Theirs (element-wise).
//   - Hunks cover the inputs: walking the hunks consumes base, ours and theirs exactly once and in order (checked internally on every call).
//
// Algorithm: base is diffed against each side with github.com/sergi/go-diff (each distinct line is mapped to one rune, so the character differ becomes a line differ).
// The two edit lists are then swept together in base order; overlapping or touching edits from both sides form a conflict region. Regions touched by only one
// side take that side's lines.
//
// Example:
//
//	hunks := diff3.Align(lines.Split(ours), lines.Split(base), lines.Split(theirs))
//	for _, h := range hunks {
//		if h.Op == diff3.OpConflict {
//			// h.Ours, h.Base, h.Theirs
//		}
//	}
package diff3
