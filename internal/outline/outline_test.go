package outline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindFor(t *testing.T) {
	tests := []struct {
		path string
		want Kind
	}{
		{"pages/a.md", KindMarkdown},
		{"pages/A.MD", KindMarkdown},
		{"notes.markdown", KindMarkdown},
		{"journals/2024_01_01.org", KindOrg},
		{"logseq/config.edn", KindUnknown},
		{"README", KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, KindFor(tt.path))
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "markdown", KindMarkdown.String())
	assert.Equal(t, "org", KindOrg.String())
	assert.Equal(t, "unknown", KindUnknown.String())
}

func TestCount_Markdown(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Counts
	}{
		{name: "empty", text: "", want: Counts{}},
		{name: "star blocks", text: "** a\n*** b\n** c\n", want: Counts{Blocks: 3, TopLevel: 2}},
		{name: "headings", text: "# title\n## a\nbody\n### b\n", want: Counts{Blocks: 2, TopLevel: 1}},
		{name: "mixed", text: "## a\n** b\n*** c\n", want: Counts{Blocks: 3, TopLevel: 2}},
		{name: "single star is a list item", text: "* a\n* b\n", want: Counts{}},
		{name: "marker without space", text: "**bold**\n", want: Counts{}},
		{name: "fenced code is skipped", text: "** a\n```\n** not a block\n## nor this\n```\n** b\n", want: Counts{Blocks: 2, TopLevel: 2}},
		{name: "front matter is not a setext heading", text: "---\ntitle: X\n---\n** a\n", want: Counts{Blocks: 1, TopLevel: 1}},
		{name: "setext heading", text: "Title\n-----\n", want: Counts{Blocks: 1, TopLevel: 1}},
		{name: "crlf", text: "** a\r\n*** b\r\n", want: Counts{Blocks: 2, TopLevel: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Count(tt.text, KindMarkdown))
		})
	}
}

func TestCount_Org(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Counts
	}{
		{name: "empty", text: "", want: Counts{}},
		{name: "blocks", text: "#+TITLE: x\n** a\n*** b\n** c\nbody\n", want: Counts{Blocks: 3, TopLevel: 2}},
		{name: "headings are not markdown", text: "## a\n", want: Counts{}},
		{name: "src block is skipped", text: "** a\n#+begin_src go\n** x\n#+end_src\n** b", want: Counts{Blocks: 2, TopLevel: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Count(tt.text, KindOrg))
		})
	}
}

func TestCount_Unknown(t *testing.T) {
	assert.Equal(t, Counts{}, Count("** a\n## b\n", KindUnknown))
}

func TestLineOf(t *testing.T) {
	src := []byte("ab\ncd\n\nef")
	starts := lineStarts(src)
	assert.Equal(t, []int{0, 3, 6, 7}, starts)
	assert.Equal(t, 0, lineOf(starts, 1))
	assert.Equal(t, 1, lineOf(starts, 3))
	assert.Equal(t, 2, lineOf(starts, 6))
	assert.Equal(t, 3, lineOf(starts, 8))
}
