package mergefile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStartsWithBlock(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"* a", true},
		{"** a", true},
		{"**** deep", true},
		{"# title", true},
		{"## a", true},
		{"###### a\n", true},
		{"** ", true},
		{"**a", false},
		{"*# a", false},
		{" ** a", false},
		{"- a", false},
		{"", false},
		{"a ** b", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, startsWithBlock(tt.in), "startsWithBlock(%q)", tt.in)
	}
}

func TestStartsWithTopLevelBlock(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"** a", true},
		{"## a\nmore", true},
		{"** ", true},
		{"* a", false},
		{"# a", false},
		{"*** a", false},
		{"### a", false},
		{"**a", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, startsWithTopLevelBlock(tt.in), "startsWithTopLevelBlock(%q)", tt.in)
	}
}

func TestIsEmptyOrMarkupOnly(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", true},
		{" ", true},
		{"#", true},
		{"## ", true},
		{"**", true},
		{"*** ", true},
		{"#*", false},
		{"##  ", false},
		{"** a", false},
		{"\n", true},
		{"## \n", true},
		{"** \r\n", true},
		{"** \n\n", false},
		{"## a\n", false},
		{"text", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isEmptyOrMarkupOnly(tt.in), "isEmptyOrMarkupOnly(%q)", tt.in)
	}
}
