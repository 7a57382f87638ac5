// Package mergefile merges three revisions of a text file (ours, base, theirs) into one text, annotating unresolved regions with conflict markers.
//
// There are two entry points:
//   - Merge: plain three-way merge. Conflicting regions are written with git-style markers.
//   - MergeWithHeuristics: the same merge, tuned for outline documents (markdown / org files where every line starting with a run of "*" or "#" and a space
//     opens a block). It resolves a few conflicts that routinely show up when two devices edit the same outline without syncing in between.
//
// Both return a Result; Result.Clean is false iff at least one region was written with markers. Neither returns an error: every input is valid text.
//
// Outline heuristics, in the order they are tried on each conflicting region:
//  1. New file on both sides: if base is empty, the longest common line prefix of ours and theirs is used as base, so identical boilerplate (ex: front matter of
//     a journal page generated on two devices) is not reported as a conflict.
//  2. Added newline: if the region's base starts with a line that ours and theirs both kept, only adding a line terminator, that line is emitted once and removed
//     from the region. The rest of the region is still subject to 3.
//  3. Two appended blocks: if base contributed nothing to the region but block markup, both sides start with a block and at least one of them is a top-level
//     block ("** " or "## "), both sides are kept. A side that is not top-level goes first so it stays attached to the block above it; if both are top-level,
//     theirs goes first.
//
// If no heuristic applies, the region is written with markers exactly as Merge writes it, so the two entry points agree on any input where heuristics never fire.
//
// Example:
//
//	res := mergefile.MergeWithHeuristics(ours, base, theirs, mergefile.DefaultOptions())
//	if !res.Clean {
//		// res.Text contains <<<<<<< / ======= / >>>>>>> regions
//	}
package mergefile
