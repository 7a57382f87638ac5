package diff3

import "fmt"

// validateRegions checks that regions tile all three inputs in order and that unchanged regions have the same length on every side.
func validateRegions(regions []region, oursLen, baseLen, theirsLen int) error {
	var base, ours, theirs int
	for ri, r := range regions {
		if r.base.start != base || r.ours.start != ours || r.theirs.start != theirs {
			return fmt.Errorf("region[%d]: starts at base=%d ours=%d theirs=%d, want %d/%d/%d", ri, r.base.start, r.ours.start, r.theirs.start, base, ours, theirs)
		}
		if r.base.len() < 0 || r.ours.len() < 0 || r.theirs.len() < 0 {
			return fmt.Errorf("region[%d]: negative length", ri)
		}
		if !r.oursChanged && r.ours.len() != r.base.len() {
			return fmt.Errorf("region[%d]: unchanged ours side has length %d, base has %d", ri, r.ours.len(), r.base.len())
		}
		if !r.theirsChanged && r.theirs.len() != r.base.len() {
			return fmt.Errorf("region[%d]: unchanged theirs side has length %d, base has %d", ri, r.theirs.len(), r.base.len())
		}
		base, ours, theirs = r.base.end, r.ours.end, r.theirs.end
	}
	if base != baseLen || ours != oursLen || theirs != theirsLen {
		return fmt.Errorf("regions end at base=%d ours=%d theirs=%d, want %d/%d/%d", base, ours, theirs, baseLen, oursLen, theirsLen)
	}
	return nil
}

// validateHunks checks the Hunk invariants and returns an error on the first violation.
func validateHunks(hunks []Hunk) error {
	for hi, h := range hunks {
		switch h.Op {
		case OpAgreed:
			if len(h.Agreed) == 0 {
				return fmt.Errorf("hunk[%d]: OpAgreed requires len(Agreed) > 0", hi)
			}
			if h.Ours != nil || h.Base != nil || h.Theirs != nil {
				return fmt.Errorf("hunk[%d]: OpAgreed requires nil Ours/Base/Theirs", hi)
			}
			if hi > 0 && hunks[hi-1].Op == OpAgreed {
				return fmt.Errorf("hunk[%d]: consecutive OpAgreed hunks", hi)
			}
		case OpConflict:
			if h.Agreed != nil {
				return fmt.Errorf("hunk[%d]: OpConflict requires nil Agreed", hi)
			}
			if equalLines(h.Ours, h.Theirs) {
				return fmt.Errorf("hunk[%d]: OpConflict requires Ours != Theirs", hi)
			}
		default:
			return fmt.Errorf("hunk[%d]: unknown op %d", hi, h.Op)
		}
	}
	return nil
}
