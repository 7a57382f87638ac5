package mergefile

// synthesizeAncestor returns the longest common prefix of ours and theirs, line by line. It stands in for the base of a file that both sides created: lines that
// are byte-identical at the top of both versions then look unchanged rather than inserted twice.
func synthesizeAncestor(ours, theirs []string) []string {
	base := []string{}
	for i := 0; i < len(ours) && i < len(theirs); i++ {
		if ours[i] != theirs[i] {
			break
		}
		base = append(base, ours[i])
	}
	return base
}
