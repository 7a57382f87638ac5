// Package outline summarizes outline documents: how many blocks a file has and how many of them sit at the top level. The driver logs these
// counts per merged file and the check command prints them.
//
// A block is opened by a line of two or more "*" followed by a space ("** a", "*** b") in both markdown and org files; in markdown, headings
// of level 2 or deeper count as well. Top-level blocks are "** " lines and level-2 headings. Lines inside code blocks never count.
package outline

import (
	"bytes"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Kind is the syntax family of an outline document.
type Kind int

const (
	KindUnknown Kind = iota
	KindMarkdown
	KindOrg
)

func (k Kind) String() string {
	switch k {
	case KindMarkdown:
		return "markdown"
	case KindOrg:
		return "org"
	default:
		return "unknown"
	}
}

// Counts is the outline summary of one document.
type Counts struct {
	Blocks   int `json:"blocks" yaml:"blocks"`
	TopLevel int `json:"top_level" yaml:"top_level"`
}

// KindFor picks the Kind from the extension of path.
func KindFor(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return KindMarkdown
	case ".org":
		return KindOrg
	default:
		return KindUnknown
	}
}

var starBlockRE = regexp.MustCompile(`^(\*{2,}) `)

// Count returns the outline summary of text. KindUnknown yields zero Counts.
func Count(text string, kind Kind) Counts {
	switch kind {
	case KindMarkdown:
		return countMarkdown([]byte(text))
	case KindOrg:
		return countOrg(text)
	default:
		return Counts{}
	}
}

func countOrg(text string) Counts {
	var c Counts
	inBlock := false
	for _, line := range strings.Split(text, "\n") {
		upper := strings.ToUpper(strings.TrimSpace(line))
		switch {
		case strings.HasPrefix(upper, "#+BEGIN_"):
			inBlock = true
			continue
		case strings.HasPrefix(upper, "#+END_"):
			inBlock = false
			continue
		case inBlock:
			continue
		}
		c.add(starDepth(line))
	}
	return c
}

func countMarkdown(src []byte) Counts {
	src = stripFrontMatter(src)

	root := goldmark.New().Parser().Parse(text.NewReader(src))
	starts := lineStarts(src)
	skip := make(map[int]bool)
	skipLines := func(n ast.Node) {
		segs := n.Lines()
		for i := 0; i < segs.Len(); i++ {
			skip[lineOf(starts, segs.At(i).Start)] = true
		}
	}

	var c Counts
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Heading:
			c.add(n.Level)
			skipLines(n)
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			skipLines(n)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	for i, start := range starts {
		if skip[i] {
			continue
		}
		end := len(src)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		c.add(starDepth(string(src[start:end])))
	}
	return c
}

// add counts a block at depth, where depth 2 is the top level. Depths below 2 are ignored.
func (c *Counts) add(depth int) {
	if depth < 2 {
		return
	}
	c.Blocks++
	if depth == 2 {
		c.TopLevel++
	}
}

func starDepth(line string) int {
	m := starBlockRE.FindStringSubmatch(line)
	if m == nil {
		return 0
	}
	return len(m[1])
}

// stripFrontMatter blanks a leading "---" fenced YAML header so goldmark does not read its closing fence as a setext underline. Line
// offsets are preserved.
func stripFrontMatter(src []byte) []byte {
	if !bytes.HasPrefix(src, []byte("---\n")) && !bytes.HasPrefix(src, []byte("---\r\n")) {
		return src
	}
	starts := lineStarts(src)
	for i := 1; i < len(starts); i++ {
		end := len(src)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		if strings.TrimRight(string(src[starts[i]:end]), "\r\n") != "---" {
			continue
		}
		out := bytes.Clone(src)
		for j := 0; j < end; j++ {
			if out[j] != '\n' {
				out[j] = ' '
			}
		}
		return out
	}
	return src
}

// lineStarts returns the byte offset of each line of src.
func lineStarts(src []byte) []int {
	starts := []int{0}
	for i, b := range src {
		if b == '\n' && i+1 < len(src) {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func lineOf(starts []int, offset int) int {
	return sort.Search(len(starts), func(i int) bool { return starts[i] > offset }) - 1
}
