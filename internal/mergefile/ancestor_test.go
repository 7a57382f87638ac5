package mergefile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSynthesizeAncestor(t *testing.T) {
	tests := []struct {
		name   string
		ours   []string
		theirs []string
		want   []string
	}{
		{
			name:   "shared front matter",
			ours:   []string{"---\n", "title: X\n", "---\n", "** a\n"},
			theirs: []string{"---\n", "title: X\n", "---\n", "## b\n"},
			want:   []string{"---\n", "title: X\n", "---\n"},
		},
		{
			name:   "nothing shared",
			ours:   []string{"a\n"},
			theirs: []string{"b\n"},
			want:   []string{},
		},
		{
			name:   "terminator differs",
			ours:   []string{"a\n", "b\r\n"},
			theirs: []string{"a\n", "b\n"},
			want:   []string{"a\n"},
		},
		{
			name:   "one side is a prefix of the other",
			ours:   []string{"a\n", "b\n"},
			theirs: []string{"a\n", "b\n", "c\n"},
			want:   []string{"a\n", "b\n"},
		},
		{
			name:   "identical",
			ours:   []string{"a\n", "b"},
			theirs: []string{"a\n", "b"},
			want:   []string{"a\n", "b"},
		},
		{
			name:   "later lines match again",
			ours:   []string{"a\n", "x\n", "c\n"},
			theirs: []string{"a\n", "y\n", "c\n"},
			want:   []string{"a\n"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, synthesizeAncestor(tt.ours, tt.theirs))
		})
	}
}

func TestSynthesizeAncestor_DoesNotAlias(t *testing.T) {
	ours := []string{"a\n", "b\n"}
	theirs := []string{"a\n", "c\n"}
	base := synthesizeAncestor(ours, theirs)
	base[0] = "changed"
	assert.Equal(t, "a\n", ours[0])
	assert.Equal(t, "a\n", theirs[0])
}
