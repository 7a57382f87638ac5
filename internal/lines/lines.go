// Package lines splits text into line fragments that keep their own line terminators.
//
// A fragment is a maximal run of bytes ending in "\n" (a "\r" directly before the "\n" stays part of the fragment). Only the last fragment may lack a terminator,
// and only the split of the empty text contains an empty fragment:
//   - Split("") == []string{""}
//   - Split("a\n") == []string{"a\n"}
//   - Split("a\r\nb") == []string{"a\r\n", "b"}
//
// Invariant: Join(Split(s)) == s for every s. No line-ending normalization is performed, and a lone "\r" is an ordinary byte.
package lines

import "strings"

// Split splits text into line fragments. See the package documentation for the exact shape of the result.
func Split(text string) []string {
	if text == "" {
		return []string{""}
	}
	out := make([]string, 0, strings.Count(text, "\n")+1)
	for text != "" {
		idx := strings.IndexByte(text, '\n')
		if idx == -1 {
			out = append(out, text)
			break
		}
		out = append(out, text[:idx+1])
		text = text[idx+1:]
	}
	return out
}

// Join concatenates fragments.
func Join(fragments []string) string {
	return strings.Join(fragments, "")
}

// TrimEOL removes one trailing "\n" or "\r\n" from s, reporting whether one was removed.
func TrimEOL(s string) (string, bool) {
	if !strings.HasSuffix(s, "\n") {
		return s, false
	}
	s = s[:len(s)-1]
	return strings.TrimSuffix(s, "\r"), true
}

// HasEOL reports whether s ends in "\n".
func HasEOL(s string) bool {
	return strings.HasSuffix(s, "\n")
}
