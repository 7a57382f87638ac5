package mergefile

import "regexp"

var (
	blockStartRE         = regexp.MustCompile(`^(\*+|#+) `)
	topLevelBlockStartRE = regexp.MustCompile(`^(\*\*|##) `)
	markupOnlyRE         = regexp.MustCompile(`^(#*|\**) ?(\r?\n)?$`)
)

// startsWithBlock reports whether s opens an outline block: a run of "*" or a run of "#", then a space.
func startsWithBlock(s string) bool {
	return blockStartRE.MatchString(s)
}

// startsWithTopLevelBlock reports whether s opens a block at the shallowest depth ("** " or "## ").
func startsWithTopLevelBlock(s string) bool {
	return topLevelBlockStartRE.MatchString(s)
}

// isEmptyOrMarkupOnly reports whether s is empty or nothing but block markup: a run of "#" or of "*", optionally followed by a single space and one line ending.
func isEmptyOrMarkupOnly(s string) bool {
	return markupOnlyRE.MatchString(s)
}
