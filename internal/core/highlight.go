package core

import (
	"strings"
	"unicode"
)

// Highlight returns the rows whose name contains needle, ignoring case and
// whitespace, so "hd 209458" matches "HD 209458b".
func Highlight(t *MasterTable, needle string) (*MasterTable, error) {
	key := foldName(needle)
	mask := make([]bool, t.Len())
	for i := range t.Planets {
		mask[i] = strings.Contains(foldName(t.Planets[i].Name), key)
	}
	return t.Filter(mask)
}

// foldName lowercases s and drops all whitespace.
func foldName(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
