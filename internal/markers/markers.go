// Package markers finds git-style conflict regions in merged text.
//
// A region looks like this (size 7, the diff3 base section is optional):
//
//	<<<<<<< ours
//	...
//	||||||| base
//	...
//	=======
//	...
//	>>>>>>> theirs
//
// A marker line starts with exactly size copies of its character, followed by the end of the line or by a space and a label. Lines that merely look similar
// (ex: a longer "========" setext underline) are content. Outside a region, stray "|", "=" and ">" markers are content as well; only "<" opens a region.
package markers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blockmerge/blockmerge/internal/lines"
)

var (
	// ErrUnterminated is returned when the text ends inside a region.
	ErrUnterminated = errors.New("markers: conflict region is not closed")

	// ErrMalformed is returned when markers appear out of order inside a region.
	ErrMalformed = errors.New("markers: malformed conflict region")
)

// Region is one conflict region. Content fields hold the lines between markers, terminators included.
type Region struct {
	StartLine int // 1-based line of the "<" marker.
	EndLine   int // 1-based line of the ">" marker.

	OurLabel   string
	BaseLabel  string // Empty unless HasBase.
	TheirLabel string

	Ours    string
	Base    string // Empty unless HasBase.
	Theirs  string
	HasBase bool // The region has a "|" (diff3) section.
}

type section int

const (
	outside section = iota
	inOurs
	inBase
	inTheirs
)

// Scan returns the conflict regions of text, in order. size is the marker width; values <= 0 mean 7.
func Scan(text string, size int) ([]Region, error) {
	if size <= 0 {
		size = 7
	}
	var regions []Region
	var cur Region
	var ours, base, theirs strings.Builder
	state := outside

	for i, line := range lines.Split(text) {
		lineNo := i + 1
		ch, label, isMarker := parseMarker(line, size)

		if state == outside {
			if isMarker && ch == '<' {
				cur = Region{StartLine: lineNo, OurLabel: label}
				ours.Reset()
				base.Reset()
				theirs.Reset()
				state = inOurs
			}
			continue
		}

		if !isMarker {
			switch state {
			case inOurs:
				ours.WriteString(line)
			case inBase:
				base.WriteString(line)
			case inTheirs:
				theirs.WriteString(line)
			}
			continue
		}

		switch {
		case state == inOurs && ch == '|':
			cur.HasBase = true
			cur.BaseLabel = label
			state = inBase
		case (state == inOurs || state == inBase) && ch == '=':
			state = inTheirs
		case state == inTheirs && ch == '>':
			cur.EndLine = lineNo
			cur.TheirLabel = label
			cur.Ours = ours.String()
			cur.Base = base.String()
			cur.Theirs = theirs.String()
			regions = append(regions, cur)
			state = outside
		default:
			return regions, fmt.Errorf("%w: unexpected %q marker at line %d (region opened at line %d)", ErrMalformed, string(ch), lineNo, cur.StartLine)
		}
	}

	if state != outside {
		return regions, fmt.Errorf("%w: region opened at line %d", ErrUnterminated, cur.StartLine)
	}
	return regions, nil
}

// parseMarker reports whether line is a marker line of the given size and, if so, its character and label.
func parseMarker(line string, size int) (ch byte, label string, ok bool) {
	body, _ := lines.TrimEOL(line)
	if len(body) < size {
		return 0, "", false
	}
	ch = body[0]
	if ch != '<' && ch != '|' && ch != '=' && ch != '>' {
		return 0, "", false
	}
	for i := 1; i < size; i++ {
		if body[i] != ch {
			return 0, "", false
		}
	}
	rest := body[size:]
	switch {
	case rest == "":
		return ch, "", true
	case rest[0] == ' ':
		return ch, rest[1:], true
	default:
		return 0, "", false
	}
}
